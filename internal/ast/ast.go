// Package ast defines the Abstract Syntax Tree node types for Matrix Language.
package ast

import (
	"bytes"

	"github.com/dedzsinator/go-matrix/internal/lexer"
)

// Node is the base interface for all AST nodes.
// Every node carries the literal of the token it was built from, a string
// representation for debugging, and its source span for error reporting.
type Node interface {
	// TokenLiteral returns the literal value of the token this node is associated with.
	TokenLiteral() string

	// String returns a string representation of the node for debugging and testing.
	String() string

	// Pos returns the source span of the node.
	Pos() lexer.Span
}

// Expression represents any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement represents a node that appears in statement position inside a
// block: either a scoped let binding or an expression evaluated for its value.
type Statement interface {
	Node
	statementNode()
}

// Item represents a top-level declaration in a program.
type Item interface {
	Node
	itemNode()
}

// Pattern represents a match arm pattern.
type Pattern interface {
	Node
	patternNode()
}

// TypeExpression represents a source-level type annotation.
type TypeExpression interface {
	Node
	typeExpressionNode()
}

// Program is the root node of the AST: an ordered sequence of items.
type Program struct {
	Items []Item
}

func (p *Program) TokenLiteral() string {
	if len(p.Items) > 0 {
		return p.Items[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for i, item := range p.Items {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(item.String())
	}
	return out.String()
}

func (p *Program) Pos() lexer.Span {
	if len(p.Items) > 0 {
		return p.Items[0].Pos()
	}
	return lexer.Span{Line: 1, Column: 1}
}
