// Package types defines the Matrix Language type model shared by the
// semantic analyzer and the embedder API.
package types

import "strings"

// Type is the interface implemented by all Matrix Language types.
type Type interface {
	// String returns the source-level spelling of the type.
	String() string

	// Equals reports structural equality with another type.
	Equals(other Type) bool
}

// PrimitiveType represents one of the built-in scalar types.
type PrimitiveType struct {
	name string
}

// The primitive types. These are singletons; compare with Equals or ==.
var (
	Int    = &PrimitiveType{name: "Int"}
	Float  = &PrimitiveType{name: "Float"}
	Bool   = &PrimitiveType{name: "Bool"}
	String = &PrimitiveType{name: "String"}
	Unit   = &PrimitiveType{name: "Unit"}
)

func (p *PrimitiveType) String() string { return p.name }

func (p *PrimitiveType) Equals(other Type) bool {
	o, ok := other.(*PrimitiveType)
	return ok && o.name == p.name
}

// AnyType is the gradual-typing escape hatch. Values typed Any satisfy every
// expected type and accept every operation; mismatches surface at runtime.
type AnyType struct{}

// Any is the singleton AnyType.
var Any = &AnyType{}

func (a *AnyType) String() string { return "Any" }

func (a *AnyType) Equals(other Type) bool {
	_, ok := other.(*AnyType)
	return ok
}

// ArrayType is a homogeneous array type: [T].
type ArrayType struct {
	Element Type
}

func NewArray(element Type) *ArrayType { return &ArrayType{Element: element} }

func (a *ArrayType) String() string { return "[" + a.Element.String() + "]" }

func (a *ArrayType) Equals(other Type) bool {
	o, ok := other.(*ArrayType)
	return ok && a.Element.Equals(o.Element)
}

// MatrixType is a rectangular matrix type: [[T]].
type MatrixType struct {
	Element Type
}

func NewMatrix(element Type) *MatrixType { return &MatrixType{Element: element} }

func (m *MatrixType) String() string { return "[[" + m.Element.String() + "]]" }

func (m *MatrixType) Equals(other Type) bool {
	o, ok := other.(*MatrixType)
	return ok && m.Element.Equals(o.Element)
}

// FunctionType is a function type: (T1, ..., Tn) -> R.
type FunctionType struct {
	Params []Type
	Return Type
}

func NewFunction(params []Type, ret Type) *FunctionType {
	return &FunctionType{Params: params, Return: ret}
}

func (f *FunctionType) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	return "(" + strings.Join(params, ", ") + ") -> " + f.Return.String()
}

func (f *FunctionType) Equals(other Type) bool {
	o, ok := other.(*FunctionType)
	if !ok || len(f.Params) != len(o.Params) {
		return false
	}
	for i, p := range f.Params {
		if !p.Equals(o.Params[i]) {
			return false
		}
	}
	return f.Return.Equals(o.Return)
}

// NamedType refers to a user-declared struct or enum, or to an opaque handle
// type such as PhysicsWorld.
type NamedType struct {
	Name string
}

func NewNamed(name string) *NamedType { return &NamedType{Name: name} }

func (n *NamedType) String() string { return n.Name }

func (n *NamedType) Equals(other Type) bool {
	o, ok := other.(*NamedType)
	return ok && o.Name == n.Name
}

// IsNumeric reports whether t is Int or Float.
func IsNumeric(t Type) bool {
	return Int.Equals(t) || Float.Equals(t)
}

// IsAny reports whether t is the Any escape hatch.
func IsAny(t Type) bool {
	_, ok := t.(*AnyType)
	return ok
}

// AssignableTo reports whether a value of type src may appear where dst is
// expected. Any is compatible in both directions; everything else requires
// structural equality, with Any inside compounds handled element-wise.
func AssignableTo(src, dst Type) bool {
	if IsAny(src) || IsAny(dst) {
		return true
	}
	switch d := dst.(type) {
	case *ArrayType:
		s, ok := src.(*ArrayType)
		return ok && AssignableTo(s.Element, d.Element)
	case *MatrixType:
		s, ok := src.(*MatrixType)
		return ok && AssignableTo(s.Element, d.Element)
	case *FunctionType:
		s, ok := src.(*FunctionType)
		if !ok || len(s.Params) != len(d.Params) {
			return false
		}
		for i, p := range s.Params {
			if !AssignableTo(d.Params[i], p) {
				return false
			}
		}
		return AssignableTo(s.Return, d.Return)
	}
	return src.Equals(dst)
}
