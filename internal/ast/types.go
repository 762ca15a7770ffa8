package ast

import (
	"bytes"
	"strings"

	"github.com/dedzsinator/go-matrix/internal/lexer"
)

// NamedType is a type annotation referring to a type by name: a primitive
// (Int, Float, Bool, String, Unit) or a user-declared struct or enum.
type NamedType struct {
	Token lexer.Token // The type keyword or IDENT token
	Name  string
}

func (nt *NamedType) typeExpressionNode()  {}
func (nt *NamedType) TokenLiteral() string { return nt.Token.Literal }
func (nt *NamedType) String() string       { return nt.Name }
func (nt *NamedType) Pos() lexer.Span      { return nt.Token.Span }

// ArrayTypeNode is an array type annotation: [T].
type ArrayTypeNode struct {
	Token   lexer.Token // The '[' token
	Element TypeExpression
}

func (at *ArrayTypeNode) typeExpressionNode()  {}
func (at *ArrayTypeNode) TokenLiteral() string { return at.Token.Literal }
func (at *ArrayTypeNode) String() string       { return "[" + at.Element.String() + "]" }
func (at *ArrayTypeNode) Pos() lexer.Span      { return at.Token.Span }

// MatrixTypeNode is a matrix type annotation: [[T]].
type MatrixTypeNode struct {
	Token   lexer.Token // The outer '[' token
	Element TypeExpression
}

func (mt *MatrixTypeNode) typeExpressionNode()  {}
func (mt *MatrixTypeNode) TokenLiteral() string { return mt.Token.Literal }
func (mt *MatrixTypeNode) String() string       { return "[[" + mt.Element.String() + "]]" }
func (mt *MatrixTypeNode) Pos() lexer.Span      { return mt.Token.Span }

// FunctionTypeNode is a function type annotation: (T1, T2) -> R.
type FunctionTypeNode struct {
	Token  lexer.Token // The '(' token
	Params []TypeExpression
	Return TypeExpression
}

func (ft *FunctionTypeNode) typeExpressionNode()  {}
func (ft *FunctionTypeNode) TokenLiteral() string { return ft.Token.Literal }
func (ft *FunctionTypeNode) Pos() lexer.Span      { return ft.Token.Span }

func (ft *FunctionTypeNode) String() string {
	var out bytes.Buffer
	params := make([]string, len(ft.Params))
	for i, p := range ft.Params {
		params[i] = p.String()
	}
	out.WriteString("(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") -> ")
	out.WriteString(ft.Return.String())
	return out.String()
}
