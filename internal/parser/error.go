package parser

import (
	"fmt"

	"github.com/dedzsinator/go-matrix/internal/lexer"
)

// Error codes for parser errors.
const (
	ErrUnexpectedToken = "E_UNEXPECTED_TOKEN"
	ErrUnexpectedEof   = "E_UNEXPECTED_EOF"
	ErrNoPrefixParse   = "E_NO_PREFIX_PARSE"
	ErrInvalidLiteral  = "E_INVALID_LITERAL"
)

// ParseError represents a syntax error with position information.
// The parser aborts at the first unexpected token, so at most one of these
// is produced per parse.
type ParseError struct {
	Expected string // what the parser was looking for, empty if not applicable
	Found    string // the offending token's type or literal
	Message  string
	Code     string
	Span     lexer.Span
}

// NewParseError creates a parse error at the given span.
func NewParseError(span lexer.Span, message, code string) *ParseError {
	return &ParseError{Message: message, Code: code, Span: span}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d, col %d", e.Message, e.Span.Line, e.Span.Column)
}
