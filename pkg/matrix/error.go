package matrix

import (
	"fmt"

	"github.com/dedzsinator/go-matrix/internal/interp"
	"github.com/dedzsinator/go-matrix/internal/lexer"
	"github.com/dedzsinator/go-matrix/internal/parser"
	"github.com/dedzsinator/go-matrix/internal/semantic"
)

// Phase identifies the pipeline stage that produced an error.
type Phase string

const (
	PhaseLex     Phase = "lexical"
	PhaseParse   Phase = "parse"
	PhaseType    Phase = "type"
	PhaseRuntime Phase = "runtime"
)

// Error is the single error type surfaced to embedders: a phase tag, a
// message, and the source position when one is known. The underlying
// phase-specific error remains reachable through Unwrap.
type Error struct {
	Phase   Phase
	Message string
	Span    lexer.Span
	Err     error
}

// Error implements the error interface in the CLI's reporting format.
func (e *Error) Error() string {
	if e.Span.Line > 0 {
		return fmt.Sprintf("%s error: %s at line %d, col %d",
			e.Phase, e.Message, e.Span.Line, e.Span.Column)
	}
	return fmt.Sprintf("%s error: %s", e.Phase, e.Message)
}

// Unwrap exposes the underlying phase-specific error.
func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError lifts a phase-specific error into the public Error type,
// extracting its message and span.
func wrapError(phase Phase, err error) *Error {
	wrapped := &Error{Phase: phase, Message: err.Error(), Err: err}

	switch e := err.(type) {
	case *lexer.LexError:
		wrapped.Message = e.Message
		wrapped.Span = e.Span
	case *parser.ParseError:
		wrapped.Message = e.Message
		wrapped.Span = e.Span
	case *semantic.SemanticError:
		wrapped.Message = e.Message
		wrapped.Span = e.Span
	case *interp.RuntimeError:
		wrapped.Message = fmt.Sprintf("%s: %s", e.Kind, e.Message)
		wrapped.Span = e.Span
	}
	return wrapped
}
