// Package matrix is the embeddable public surface of the Matrix Language
// implementation: the full source-to-value pipeline, plus an Interpreter
// type for embedders that need custom builtins, sinks or output routing.
package matrix

import (
	"io"
	"os"

	"github.com/dedzsinator/go-matrix/internal/ast"
	"github.com/dedzsinator/go-matrix/internal/interp"
	"github.com/dedzsinator/go-matrix/internal/ipc"
	"github.com/dedzsinator/go-matrix/internal/lexer"
	"github.com/dedzsinator/go-matrix/internal/parser"
	"github.com/dedzsinator/go-matrix/internal/semantic"
)

// Value is the runtime value produced by evaluation.
type Value = interp.Value

// BuiltinFunc is the contract for embedder-registered builtins.
type BuiltinFunc = interp.BuiltinFunc

// DirectiveSink receives @sim and @plot payloads.
type DirectiveSink = interp.DirectiveSink

// Program is a parsed Matrix Language program.
type Program = ast.Program

// Interpreter bundles the pipeline with a configured evaluator instance.
// Instances are single-threaded; create one per host thread.
type Interpreter struct {
	interp    *interp.Interpreter
	typeCheck bool
}

// Option configures an Interpreter.
type Option func(*config)

type config struct {
	output    io.Writer
	sink      interp.DirectiveSink
	typeCheck bool
}

// WithOutput routes builtin output (println) to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}

// WithSink replaces the reference file sink for @sim and @plot payloads.
func WithSink(sink DirectiveSink) Option {
	return func(c *config) {
		c.sink = sink
	}
}

// WithTypeCheck enables or disables the type checking phase. It is enabled
// by default; disabling it defers all checking to the runtime.
func WithTypeCheck(enabled bool) Option {
	return func(c *config) {
		c.typeCheck = enabled
	}
}

// New creates an Interpreter with the standard library registered and the
// reference IPC sink installed.
func New(opts ...Option) *Interpreter {
	c := &config{
		output:    os.Stdout,
		sink:      ipc.NewFileSink(),
		typeCheck: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return &Interpreter{
		interp:    interp.New(interp.WithOutput(c.output), interp.WithSink(c.sink)),
		typeCheck: c.typeCheck,
	}
}

// RegisterBuiltin records a built-in function under the given name.
// The function must honor the declared arity and must not retain the
// argument slice beyond the call.
func (m *Interpreter) RegisterBuiltin(name string, arity int, fn BuiltinFunc) {
	m.interp.RegisterBuiltin(name, arity, fn)
}

// EvalProgram type-checks (unless disabled) and evaluates a parsed program.
func (m *Interpreter) EvalProgram(program *Program) (Value, error) {
	if m.typeCheck {
		if err := semantic.NewAnalyzer().Analyze(program); err != nil {
			return nil, wrapError(PhaseType, err)
		}
	}
	val, err := m.interp.EvalProgram(program)
	if err != nil {
		return nil, wrapError(PhaseRuntime, err)
	}
	return val, nil
}

// Execute runs the full pipeline on source: lex, parse, type-check,
// evaluate.
func (m *Interpreter) Execute(source string) (Value, error) {
	program, err := ParseOnly(source)
	if err != nil {
		return nil, err
	}
	return m.EvalProgram(program)
}

// Execute runs source through a fresh default-configured Interpreter.
func Execute(source string) (Value, error) {
	return New().Execute(source)
}

// ParseOnly lexes and parses source without checking or evaluating it.
func ParseOnly(source string) (*Program, error) {
	program, err := parser.New(lexer.New(source)).ParseProgram()
	if err != nil {
		if lexErr, ok := err.(*lexer.LexError); ok {
			return nil, wrapError(PhaseLex, lexErr)
		}
		return nil, wrapError(PhaseParse, err)
	}
	return program, nil
}
