package lexer

import "fmt"

// Span is a source range attached to every token and AST node.
// Start and End are byte offsets into the source; Line and Column are
// 1-based and reflect the position of Start. Invariant: Start <= End.
type Span struct {
	Start  int
	End    int
	Line   int
	Column int
}

// String returns the span in "line:col" form for error messages.
func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// Len returns the byte length of the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Token is a lexeme tagged with its type and source span.
type Token struct {
	Type    TokenType
	Literal string
	Span    Span
}

// NewToken creates a token with the given type, literal and span.
func NewToken(tokenType TokenType, literal string, span Span) Token {
	return Token{Type: tokenType, Literal: literal, Span: span}
}

// String returns a debug representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %s", t.Type, t.Literal, t.Span)
}
