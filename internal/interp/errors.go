package interp

import (
	"fmt"

	"github.com/dedzsinator/go-matrix/internal/lexer"
)

// RuntimeErrorKind tags the failure classes of the evaluator.
type RuntimeErrorKind string

// Runtime error kinds. Runtime errors are fatal to the program; they are not
// catchable from within Matrix Language.
const (
	UndefinedVariable RuntimeErrorKind = "UndefinedVariable"
	TypeError         RuntimeErrorKind = "TypeError"
	DivisionByZero    RuntimeErrorKind = "DivisionByZero"
	IndexOutOfBounds  RuntimeErrorKind = "IndexOutOfBounds"
	WrongArity        RuntimeErrorKind = "WrongArity"
	NotCallable       RuntimeErrorKind = "NotCallable"
	FieldNotFound     RuntimeErrorKind = "FieldNotFound"
	Generic           RuntimeErrorKind = "Generic"
)

// RuntimeError represents an evaluation failure with position information.
// It is a value, not a panic: evaluation unwinds by returning it up the call
// stack.
type RuntimeError struct {
	Kind    RuntimeErrorKind
	Message string
	Span    lexer.Span
}

// NewRuntimeError creates a runtime error without position information.
// The evaluator attaches the offending node's span as the error propagates.
func NewRuntimeError(kind RuntimeErrorKind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Span.Line > 0 {
		return fmt.Sprintf("%s: %s at line %d, col %d", e.Kind, e.Message, e.Span.Line, e.Span.Column)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// withSpan fills in the span if the error does not carry one yet. The span
// closest to the failure site wins.
func (e *RuntimeError) withSpan(span lexer.Span) *RuntimeError {
	if e.Span.Line == 0 {
		e.Span = span
	}
	return e
}
