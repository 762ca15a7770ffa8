package interp

import (
	"fmt"
	"io"
	"os"

	"github.com/dedzsinator/go-matrix/internal/ast"
)

// DirectiveSink receives the evaluated payload of @sim and @plot blocks.
// OnDirective is called synchronously; a sink failure is logged and swallowed
// by the evaluator, never surfaced as a runtime error.
type DirectiveSink interface {
	OnDirective(kind string, value Value) error
}

// structInfo records a declared struct's field order for literal validation.
type structInfo struct {
	fields []string
}

// Interpreter executes Matrix Language AST nodes under a lexical environment.
// A single instance is single-threaded; independent instances may run in
// parallel host threads.
type Interpreter struct {
	env        *Environment
	output     io.Writer
	sink       DirectiveSink
	structs    map[string]*structInfo
	nextHandle int64
}

// Option configures an Interpreter during construction.
type Option func(*Interpreter)

// WithOutput directs builtin output (println) and sink-failure warnings to w.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		i.output = w
	}
}

// WithSink installs the directive sink invoked by @sim and @plot.
func WithSink(sink DirectiveSink) Option {
	return func(i *Interpreter) {
		i.sink = sink
	}
}

// New creates a new Interpreter with a fresh global environment seeded with
// the standard library.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		env:     NewEnvironment(),
		output:  os.Stdout,
		structs: make(map[string]*structInfo),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.registerStdlib()
	return i
}

// RegisterBuiltin records a built-in function under the given name.
// Builtins registered after construction shadow stdlib entries.
func (i *Interpreter) RegisterBuiltin(name string, arity int, fn BuiltinFunc) {
	i.env.Define(name, &BuiltinValue{Name: name, Arity: arity, Fn: fn})
}

// Environment exposes the global environment, primarily for tests and the
// embedder API.
func (i *Interpreter) Environment() *Environment {
	return i.env
}

// EvalProgram executes the program's items in order and returns the last
// item's value. Let bindings yield their bound value; type declarations
// yield unit.
func (i *Interpreter) EvalProgram(program *ast.Program) (Value, error) {
	var result Value = &UnitValue{}

	for _, item := range program.Items {
		val, err := i.evalItem(item)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return result, nil
}

// evalItem evaluates one top-level item in the global environment.
func (i *Interpreter) evalItem(item ast.Item) (Value, *RuntimeError) {
	switch node := item.(type) {
	case *ast.LetBinding:
		// Bind a placeholder first so the initializer can refer to the
		// name, then patch the binding with the final value.
		i.env.Define(node.Name.Value, &UnitValue{})
		val, err := i.evalExpression(node.Value, i.env)
		if err != nil {
			return nil, err
		}
		i.env.Define(node.Name.Value, val)
		return val, nil

	case *ast.FunctionDef:
		fn := &FunctionValue{Params: node.Params, Body: node.Body, Env: i.env}
		i.env.Define(node.Name.Value, fn)
		return &UnitValue{}, nil

	case *ast.StructDef:
		info := &structInfo{fields: make([]string, len(node.Fields))}
		for idx, f := range node.Fields {
			info.fields[idx] = f.Name.Value
		}
		i.structs[node.Name.Value] = info
		return &UnitValue{}, nil

	case *ast.EnumDef:
		i.defineEnum(node)
		return &UnitValue{}, nil

	case *ast.ExpressionItem:
		return i.evalExpression(node.Expression, i.env)
	}
	return nil, NewRuntimeError(Generic, "unknown item %T", item).withSpan(item.Pos())
}

// defineEnum binds variant constructors into the global environment.
// Payload-free variants bind the variant value directly; variants with a
// payload bind a constructor function of matching arity.
func (i *Interpreter) defineEnum(node *ast.EnumDef) {
	enumName := node.Name.Value
	for _, variant := range node.Variants {
		variantName := variant.Name.Value
		if len(variant.Types) == 0 {
			i.env.Define(variantName, &EnumValue{EnumName: enumName, Variant: variantName})
			continue
		}
		arity := len(variant.Types)
		i.env.Define(variantName, &BuiltinValue{
			Name:  variantName,
			Arity: arity,
			Fn: func(args []Value) (Value, *RuntimeError) {
				payload := make([]Value, len(args))
				copy(payload, args)
				return &EnumValue{EnumName: enumName, Variant: variantName, Payload: payload}, nil
			},
		})
	}
}

// evalExpression evaluates an expression under the given environment.
func (i *Interpreter) evalExpression(expr ast.Expression, env *Environment) (Value, *RuntimeError) {
	switch node := expr.(type) {
	case *ast.IntegerLiteral:
		return &IntegerValue{Value: node.Value}, nil
	case *ast.FloatLiteral:
		return &FloatValue{Value: node.Value}, nil
	case *ast.StringLiteral:
		return &StringValue{Value: node.Value}, nil
	case *ast.BooleanLiteral:
		return &BooleanValue{Value: node.Value}, nil
	case *ast.UnitLiteral:
		return &UnitValue{}, nil

	case *ast.Identifier:
		if val, ok := env.Get(node.Value); ok {
			return val, nil
		}
		return nil, NewRuntimeError(UndefinedVariable,
			"undefined variable: %s", node.Value).withSpan(node.Pos())

	case *ast.ArrayLiteral:
		elements := make([]Value, 0, len(node.Elements))
		for _, el := range node.Elements {
			val, err := i.evalExpression(el, env)
			if err != nil {
				return nil, err
			}
			elements = append(elements, val)
		}
		return &ArrayValue{Elements: elements}, nil

	case *ast.MatrixLiteral:
		rows := make([][]Value, 0, len(node.Rows))
		for _, row := range node.Rows {
			values := make([]Value, 0, len(row))
			for _, el := range row {
				val, err := i.evalExpression(el, env)
				if err != nil {
					return nil, err
				}
				values = append(values, val)
			}
			rows = append(rows, values)
		}
		return &MatrixValue{Rows: rows}, nil

	case *ast.StructLiteral:
		return i.evalStructLiteral(node, env)

	case *ast.BinaryExpression:
		return i.evalBinaryExpression(node, env)

	case *ast.UnaryExpression:
		return i.evalUnaryExpression(node, env)

	case *ast.CallExpression:
		return i.evalCallExpression(node, env)

	case *ast.FieldAccess:
		return i.evalFieldAccess(node, env)

	case *ast.IndexExpression:
		return i.evalIndexExpression(node, env)

	case *ast.LambdaExpression:
		// Closures capture the current environment by reference.
		return &FunctionValue{Params: node.Params, Body: node.Body, Env: env}, nil

	case *ast.IfExpression:
		return i.evalIfExpression(node, env)

	case *ast.LetExpression:
		child := NewEnclosedEnvironment(env)
		child.Define(node.Name.Value, &UnitValue{})
		val, err := i.evalExpression(node.Value, child)
		if err != nil {
			return nil, err
		}
		child.Define(node.Name.Value, val)
		return i.evalExpression(node.Body, child)

	case *ast.BlockExpression:
		return i.evalBlockExpression(node, env)

	case *ast.MatchExpression:
		return i.evalMatchExpression(node, env)

	case *ast.DirectiveExpression:
		return i.evalDirectiveExpression(node, env)
	}
	return nil, NewRuntimeError(Generic, "unknown expression %T", expr).withSpan(expr.Pos())
}

// evalStructLiteral validates the literal against the struct declaration:
// every declared field must be provided exactly once, in any order.
// Evaluation order is field declaration order.
func (i *Interpreter) evalStructLiteral(node *ast.StructLiteral, env *Environment) (Value, *RuntimeError) {
	info, ok := i.structs[node.Name.Value]
	if !ok {
		return nil, NewRuntimeError(TypeError,
			"unknown struct type: %s", node.Name.Value).withSpan(node.Pos())
	}

	provided := make(map[string]ast.Expression, len(node.Fields))
	for _, f := range node.Fields {
		if _, dup := provided[f.Name.Value]; dup {
			return nil, NewRuntimeError(TypeError,
				"duplicate field %s in %s literal", f.Name.Value, node.Name.Value).withSpan(f.Name.Pos())
		}
		provided[f.Name.Value] = f.Value
	}

	result := &StructValue{Name: node.Name.Value}
	for _, fieldName := range info.fields {
		expr, ok := provided[fieldName]
		if !ok {
			return nil, NewRuntimeError(TypeError,
				"missing field %s in %s literal", fieldName, node.Name.Value).withSpan(node.Pos())
		}
		delete(provided, fieldName)
		val, err := i.evalExpression(expr, env)
		if err != nil {
			return nil, err
		}
		result.Fields = append(result.Fields, StructFieldValue{Name: fieldName, Value: val})
	}
	for extra := range provided {
		return nil, NewRuntimeError(TypeError,
			"unknown field %s in %s literal", extra, node.Name.Value).withSpan(node.Pos())
	}
	return result, nil
}

// evalIfExpression evaluates the condition and then only the selected branch.
func (i *Interpreter) evalIfExpression(node *ast.IfExpression, env *Environment) (Value, *RuntimeError) {
	cond, err := i.evalExpression(node.Condition, env)
	if err != nil {
		return nil, err
	}
	b, ok := cond.(*BooleanValue)
	if !ok {
		return nil, NewRuntimeError(TypeError,
			"if condition must be Bool, got %s", cond.Type()).withSpan(node.Condition.Pos())
	}
	if b.Value {
		return i.evalExpression(node.Then, env)
	}
	return i.evalExpression(node.Else, env)
}

// evalBlockExpression evaluates statements sequentially in a child scope and
// yields the final expression's value, or unit when the block ends with a
// statement or trailing semicolon.
func (i *Interpreter) evalBlockExpression(node *ast.BlockExpression, env *Environment) (Value, *RuntimeError) {
	child := NewEnclosedEnvironment(env)
	var result Value = &UnitValue{}

	for idx, stmt := range node.Statements {
		switch s := stmt.(type) {
		case *ast.LetStatement:
			child.Define(s.Name.Value, &UnitValue{})
			val, err := i.evalExpression(s.Value, child)
			if err != nil {
				return nil, err
			}
			child.Define(s.Name.Value, val)
			result = &UnitValue{}
		case *ast.ExpressionStatement:
			val, err := i.evalExpression(s.Expression, child)
			if err != nil {
				return nil, err
			}
			if idx == len(node.Statements)-1 && !node.TrailingSemicolon {
				result = val
			} else {
				result = &UnitValue{}
			}
		}
	}
	return result, nil
}

// evalCallExpression evaluates the callee and dispatches on its kind.
func (i *Interpreter) evalCallExpression(node *ast.CallExpression, env *Environment) (Value, *RuntimeError) {
	callee, err := i.evalExpression(node.Callee, env)
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(node.Arguments))
	for _, arg := range node.Arguments {
		val, err := i.evalExpression(arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}

	switch fn := callee.(type) {
	case *BuiltinValue:
		if len(args) != fn.Arity {
			return nil, NewRuntimeError(WrongArity,
				"%s expects %d argument(s), got %d", fn.Name, fn.Arity, len(args)).withSpan(node.Pos())
		}
		result, err := fn.Fn(args)
		if err != nil {
			return nil, err.withSpan(node.Pos())
		}
		return result, nil

	case *FunctionValue:
		if len(args) != len(fn.Params) {
			return nil, NewRuntimeError(WrongArity,
				"function expects %d argument(s), got %d", len(fn.Params), len(args)).withSpan(node.Pos())
		}
		// A call scope chains to the captured environment, not the
		// caller's: lexical scoping.
		callEnv := NewEnclosedEnvironment(fn.Env)
		for idx, param := range fn.Params {
			callEnv.Define(param.Name.Value, args[idx])
		}
		return i.evalExpression(fn.Body, callEnv)
	}
	return nil, NewRuntimeError(NotCallable,
		"cannot call value of type %s", callee.Type()).withSpan(node.Pos())
}

// evalFieldAccess looks up a named field on a struct value.
func (i *Interpreter) evalFieldAccess(node *ast.FieldAccess, env *Environment) (Value, *RuntimeError) {
	object, err := i.evalExpression(node.Object, env)
	if err != nil {
		return nil, err
	}
	s, ok := object.(*StructValue)
	if !ok {
		return nil, NewRuntimeError(TypeError,
			"field access requires a struct, got %s", object.Type()).withSpan(node.Pos())
	}
	val, ok := s.Get(node.Field.Value)
	if !ok {
		return nil, NewRuntimeError(FieldNotFound,
			"%s has no field %s", s.Name, node.Field.Value).withSpan(node.Field.Pos())
	}
	return val, nil
}

// evalIndexExpression indexes arrays and matrices. A matrix index yields the
// row as an array, so m[i][j] chains two index expressions.
func (i *Interpreter) evalIndexExpression(node *ast.IndexExpression, env *Environment) (Value, *RuntimeError) {
	left, err := i.evalExpression(node.Left, env)
	if err != nil {
		return nil, err
	}
	indexVal, err := i.evalExpression(node.Index, env)
	if err != nil {
		return nil, err
	}
	index, ok := indexVal.(*IntegerValue)
	if !ok {
		return nil, NewRuntimeError(TypeError,
			"index must be Int, got %s", indexVal.Type()).withSpan(node.Index.Pos())
	}

	switch container := left.(type) {
	case *ArrayValue:
		if index.Value < 0 || index.Value >= int64(len(container.Elements)) {
			return nil, NewRuntimeError(IndexOutOfBounds,
				"index %d out of bounds for array of length %d",
				index.Value, len(container.Elements)).withSpan(node.Pos())
		}
		return container.Elements[index.Value], nil
	case *MatrixValue:
		if index.Value < 0 || index.Value >= int64(len(container.Rows)) {
			return nil, NewRuntimeError(IndexOutOfBounds,
				"row index %d out of bounds for matrix with %d row(s)",
				index.Value, len(container.Rows)).withSpan(node.Pos())
		}
		return &ArrayValue{Elements: container.Rows[index.Value]}, nil
	}
	return nil, NewRuntimeError(TypeError,
		"cannot index value of type %s", left.Type()).withSpan(node.Pos())
}

// evalMatchExpression evaluates the scrutinee and the first matching arm.
func (i *Interpreter) evalMatchExpression(node *ast.MatchExpression, env *Environment) (Value, *RuntimeError) {
	scrutinee, err := i.evalExpression(node.Scrutinee, env)
	if err != nil {
		return nil, err
	}

	for _, arm := range node.Arms {
		bindings := make(map[string]Value)
		if matchPattern(arm.Pattern, scrutinee, bindings) {
			armEnv := NewEnclosedEnvironment(env)
			for name, val := range bindings {
				armEnv.Define(name, val)
			}
			return i.evalExpression(arm.Body, armEnv)
		}
	}
	return nil, NewRuntimeError(Generic,
		"no pattern matched value %s", scrutinee.String()).withSpan(node.Pos())
}

// matchPattern reports whether value matches pattern, collecting bindings.
func matchPattern(pattern ast.Pattern, value Value, bindings map[string]Value) bool {
	switch p := pattern.(type) {
	case *ast.WildcardPattern:
		return true
	case *ast.IdentifierPattern:
		bindings[p.Name] = value
		return true
	case *ast.LiteralPattern:
		switch lit := p.Value.(type) {
		case *ast.IntegerLiteral:
			return valuesEqual(&IntegerValue{Value: lit.Value}, value)
		case *ast.FloatLiteral:
			return valuesEqual(&FloatValue{Value: lit.Value}, value)
		case *ast.StringLiteral:
			return valuesEqual(&StringValue{Value: lit.Value}, value)
		case *ast.BooleanLiteral:
			return valuesEqual(&BooleanValue{Value: lit.Value}, value)
		}
		return false
	case *ast.VariantPattern:
		ev, ok := value.(*EnumValue)
		if !ok || ev.Variant != p.Name || len(ev.Payload) != len(p.Args) {
			return false
		}
		for idx, arg := range p.Args {
			if !matchPattern(arg, ev.Payload[idx], bindings) {
				return false
			}
		}
		return true
	}
	return false
}

// evalDirectiveExpression evaluates the directive block eagerly, forwards
// the result to the configured sink, and yields a fresh physics world
// handle. Sink failure is logged and swallowed: the binding still succeeds.
func (i *Interpreter) evalDirectiveExpression(node *ast.DirectiveExpression, env *Environment) (Value, *RuntimeError) {
	val, err := i.evalBlockExpression(node.Block, env)
	if err != nil {
		return nil, err
	}
	if i.sink != nil {
		if sinkErr := i.sink.OnDirective(node.Name, val); sinkErr != nil {
			fmt.Fprintf(i.output, "warning: @%s sink failed: %v\n", node.Name, sinkErr)
		}
	}
	i.nextHandle++
	return &PhysicsWorldValue{Handle: i.nextHandle}, nil
}
