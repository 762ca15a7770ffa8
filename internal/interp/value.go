// Package interp provides the tree-walking evaluator and runtime for
// Matrix Language.
package interp

import (
	"strconv"
	"strings"

	"github.com/dedzsinator/go-matrix/internal/ast"
)

// Value represents a runtime value in the Matrix Language interpreter.
// All runtime values implement this interface.
type Value interface {
	// Type returns the language-level type name of the value.
	Type() string
	// String returns the display representation of the value.
	String() string
}

// BuiltinFunc is the contract for built-in function implementations.
// Implementations must honor their declared arity and must not retain the
// argument slice beyond the call.
type BuiltinFunc func(args []Value) (Value, *RuntimeError)

// IntegerValue represents an Int value.
type IntegerValue struct {
	Value int64
}

func (i *IntegerValue) Type() string { return "Int" }

func (i *IntegerValue) String() string { return strconv.FormatInt(i.Value, 10) }

// FloatValue represents a Float value.
type FloatValue struct {
	Value float64
}

func (f *FloatValue) Type() string { return "Float" }

func (f *FloatValue) String() string { return strconv.FormatFloat(f.Value, 'g', -1, 64) }

// BooleanValue represents a Bool value.
type BooleanValue struct {
	Value bool
}

func (b *BooleanValue) Type() string { return "Bool" }

func (b *BooleanValue) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// StringValue represents a String value.
type StringValue struct {
	Value string
}

func (s *StringValue) Type() string { return "String" }

// String returns the string contents themselves; quoting is left to callers
// that need a source-like rendering.
func (s *StringValue) String() string { return s.Value }

// UnitValue represents the unit value ().
type UnitValue struct{}

func (u *UnitValue) Type() string { return "Unit" }

func (u *UnitValue) String() string { return "()" }

// ArrayValue represents an array of values.
type ArrayValue struct {
	Elements []Value
}

func (a *ArrayValue) Type() string { return "Array" }

func (a *ArrayValue) String() string {
	elements := make([]string, len(a.Elements))
	for i, el := range a.Elements {
		elements[i] = displayElement(el)
	}
	return "[" + strings.Join(elements, ", ") + "]"
}

// MatrixValue represents a matrix as a slice of rows.
type MatrixValue struct {
	Rows [][]Value
}

func (m *MatrixValue) Type() string { return "Matrix" }

func (m *MatrixValue) String() string {
	rows := make([]string, len(m.Rows))
	for i, row := range m.Rows {
		elements := make([]string, len(row))
		for j, el := range row {
			elements[j] = displayElement(el)
		}
		rows[i] = "[" + strings.Join(elements, ", ") + "]"
	}
	return "[" + strings.Join(rows, ", ") + "]"
}

// StructFieldValue is a single named field of a struct value.
type StructFieldValue struct {
	Name  string
	Value Value
}

// StructValue represents a struct instance with ordered fields.
type StructValue struct {
	Name   string
	Fields []StructFieldValue
}

func (s *StructValue) Type() string { return s.Name }

func (s *StructValue) String() string {
	fields := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		fields[i] = f.Name + ": " + displayElement(f.Value)
	}
	return s.Name + " { " + strings.Join(fields, ", ") + " }"
}

// Get returns the named field's value.
func (s *StructValue) Get(name string) (Value, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// EnumValue represents an enum variant instance, optionally carrying a
// payload. Match expressions destructure these.
type EnumValue struct {
	EnumName string
	Variant  string
	Payload  []Value
}

func (e *EnumValue) Type() string { return e.EnumName }

func (e *EnumValue) String() string {
	if len(e.Payload) == 0 {
		return e.Variant
	}
	payload := make([]string, len(e.Payload))
	for i, v := range e.Payload {
		payload[i] = displayElement(v)
	}
	return e.Variant + "(" + strings.Join(payload, ", ") + ")"
}

// FunctionValue represents a user-defined function: its parameters, body and
// the environment captured at the point of its lambda. The captured
// environment is shared, not copied; any number of live closures may
// reference the same scope.
type FunctionValue struct {
	Params []*ast.Param
	Body   ast.Expression
	Env    *Environment
}

func (f *FunctionValue) Type() string { return "Function" }

func (f *FunctionValue) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	return "(" + strings.Join(params, ", ") + ") => <body>"
}

// BuiltinValue represents a registered built-in function.
type BuiltinValue struct {
	Name  string
	Arity int
	Fn    BuiltinFunc
}

func (b *BuiltinValue) Type() string { return "Builtin" }

func (b *BuiltinValue) String() string { return "<builtin " + b.Name + ">" }

// PhysicsWorldValue is an opaque handle to a physics world owned by an
// external collaborator.
type PhysicsWorldValue struct {
	Handle int64
}

func (p *PhysicsWorldValue) Type() string { return "PhysicsWorld" }

func (p *PhysicsWorldValue) String() string {
	return "<physics world #" + strconv.FormatInt(p.Handle, 10) + ">"
}

// PhysicsObjectValue is an opaque handle to an object owned by an external
// collaborator (rigid bodies, quantum circuits).
type PhysicsObjectValue struct {
	Handle int64
}

func (p *PhysicsObjectValue) Type() string { return "PhysicsObject" }

func (p *PhysicsObjectValue) String() string {
	return "<physics object #" + strconv.FormatInt(p.Handle, 10) + ">"
}

// displayElement renders a value for inclusion inside a container display.
// Strings are quoted so that ["a", "b"] round-trips readably.
func displayElement(v Value) string {
	if s, ok := v.(*StringValue); ok {
		return "\"" + s.Value + "\""
	}
	return v.String()
}

// valuesEqual reports structural equality between two values of the same
// kind. Values of different kinds are never equal, except Int/Float pairs
// which compare numerically after promotion.
func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case *IntegerValue:
		switch bv := b.(type) {
		case *IntegerValue:
			return av.Value == bv.Value
		case *FloatValue:
			return float64(av.Value) == bv.Value
		}
	case *FloatValue:
		switch bv := b.(type) {
		case *FloatValue:
			return av.Value == bv.Value
		case *IntegerValue:
			return av.Value == float64(bv.Value)
		}
	case *BooleanValue:
		if bv, ok := b.(*BooleanValue); ok {
			return av.Value == bv.Value
		}
	case *StringValue:
		if bv, ok := b.(*StringValue); ok {
			return av.Value == bv.Value
		}
	case *UnitValue:
		_, ok := b.(*UnitValue)
		return ok
	case *ArrayValue:
		bv, ok := b.(*ArrayValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i, el := range av.Elements {
			if !valuesEqual(el, bv.Elements[i]) {
				return false
			}
		}
		return true
	case *MatrixValue:
		bv, ok := b.(*MatrixValue)
		if !ok || len(av.Rows) != len(bv.Rows) {
			return false
		}
		for i, row := range av.Rows {
			if len(row) != len(bv.Rows[i]) {
				return false
			}
			for j, el := range row {
				if !valuesEqual(el, bv.Rows[i][j]) {
					return false
				}
			}
		}
		return true
	case *StructValue:
		bv, ok := b.(*StructValue)
		if !ok || av.Name != bv.Name || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for i, f := range av.Fields {
			if f.Name != bv.Fields[i].Name || !valuesEqual(f.Value, bv.Fields[i].Value) {
				return false
			}
		}
		return true
	case *EnumValue:
		bv, ok := b.(*EnumValue)
		if !ok || av.EnumName != bv.EnumName || av.Variant != bv.Variant || len(av.Payload) != len(bv.Payload) {
			return false
		}
		for i, v := range av.Payload {
			if !valuesEqual(v, bv.Payload[i]) {
				return false
			}
		}
		return true
	case *PhysicsWorldValue:
		bv, ok := b.(*PhysicsWorldValue)
		return ok && av.Handle == bv.Handle
	case *PhysicsObjectValue:
		bv, ok := b.(*PhysicsObjectValue)
		return ok && av.Handle == bv.Handle
	}
	return false
}
