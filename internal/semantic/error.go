package semantic

import (
	"fmt"

	"github.com/dedzsinator/go-matrix/internal/lexer"
)

// SemanticError represents a type error with an optional source span.
type SemanticError struct {
	Message string
	Span    lexer.Span
}

// Error implements the error interface.
func (e *SemanticError) Error() string {
	if e.Span.Line > 0 {
		return fmt.Sprintf("%s at line %d, col %d", e.Message, e.Span.Line, e.Span.Column)
	}
	return e.Message
}
