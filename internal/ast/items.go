package ast

import (
	"bytes"
	"strings"

	"github.com/dedzsinator/go-matrix/internal/lexer"
)

// Param is a function or lambda parameter with an optional type annotation.
type Param struct {
	Name *Identifier
	Type TypeExpression // nil when inferred
}

func (p *Param) String() string {
	if p.Type != nil {
		return p.Name.String() + ": " + p.Type.String()
	}
	return p.Name.String()
}

// LetBinding is a top-level binding: let name [: T] = value.
type LetBinding struct {
	Token lexer.Token // The LET token
	Name  *Identifier
	Type  TypeExpression // nil when inferred
	Value Expression
}

func (lb *LetBinding) itemNode()            {}
func (lb *LetBinding) TokenLiteral() string { return lb.Token.Literal }
func (lb *LetBinding) Pos() lexer.Span      { return lb.Token.Span }

func (lb *LetBinding) String() string {
	var out bytes.Buffer
	out.WriteString("let ")
	out.WriteString(lb.Name.String())
	if lb.Type != nil {
		out.WriteString(": ")
		out.WriteString(lb.Type.String())
	}
	out.WriteString(" = ")
	out.WriteString(lb.Value.String())
	return out.String()
}

// FunctionDef is a top-level named function definition:
// fn name(params) [-> T] => body.
type FunctionDef struct {
	Token      lexer.Token // The FN token
	Name       *Identifier
	Params     []*Param
	ReturnType TypeExpression // nil when inferred
	Body       Expression
}

func (fd *FunctionDef) itemNode()            {}
func (fd *FunctionDef) TokenLiteral() string { return fd.Token.Literal }
func (fd *FunctionDef) Pos() lexer.Span      { return fd.Token.Span }

func (fd *FunctionDef) String() string {
	var out bytes.Buffer
	params := make([]string, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = p.String()
	}
	out.WriteString("fn ")
	out.WriteString(fd.Name.String())
	out.WriteString("(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(")")
	if fd.ReturnType != nil {
		out.WriteString(" -> ")
		out.WriteString(fd.ReturnType.String())
	}
	out.WriteString(" => ")
	out.WriteString(fd.Body.String())
	return out.String()
}

// ExpressionItem wraps an expression appearing at the top level of a
// program. The program result is the value of the last such item.
type ExpressionItem struct {
	Expression Expression
}

func (ei *ExpressionItem) itemNode()            {}
func (ei *ExpressionItem) TokenLiteral() string { return ei.Expression.TokenLiteral() }
func (ei *ExpressionItem) String() string       { return ei.Expression.String() }
func (ei *ExpressionItem) Pos() lexer.Span      { return ei.Expression.Pos() }

// StructField is a single field declaration inside a struct definition.
type StructField struct {
	Name *Identifier
	Type TypeExpression
}

func (sf *StructField) String() string {
	return sf.Name.String() + ": " + sf.Type.String()
}

// StructDef declares a named struct type with ordered fields.
type StructDef struct {
	Token  lexer.Token // The STRUCT token
	Name   *Identifier
	Fields []*StructField
}

func (sd *StructDef) itemNode()            {}
func (sd *StructDef) TokenLiteral() string { return sd.Token.Literal }
func (sd *StructDef) Pos() lexer.Span      { return sd.Token.Span }

func (sd *StructDef) String() string {
	fields := make([]string, len(sd.Fields))
	for i, f := range sd.Fields {
		fields[i] = f.String()
	}
	return "struct " + sd.Name.String() + " { " + strings.Join(fields, ", ") + " }"
}

// EnumVariant is a single variant declaration inside an enum definition.
// Variants may carry zero or more payload types.
type EnumVariant struct {
	Name  *Identifier
	Types []TypeExpression
}

func (ev *EnumVariant) String() string {
	if len(ev.Types) == 0 {
		return ev.Name.String()
	}
	types := make([]string, len(ev.Types))
	for i, t := range ev.Types {
		types[i] = t.String()
	}
	return ev.Name.String() + "(" + strings.Join(types, ", ") + ")"
}

// EnumDef declares a named enum type with its variants.
type EnumDef struct {
	Token    lexer.Token // The ENUM token
	Name     *Identifier
	Variants []*EnumVariant
}

func (ed *EnumDef) itemNode()            {}
func (ed *EnumDef) TokenLiteral() string { return ed.Token.Literal }
func (ed *EnumDef) Pos() lexer.Span      { return ed.Token.Span }

func (ed *EnumDef) String() string {
	variants := make([]string, len(ed.Variants))
	for i, v := range ed.Variants {
		variants[i] = v.String()
	}
	return "enum " + ed.Name.String() + " { " + strings.Join(variants, ", ") + " }"
}
