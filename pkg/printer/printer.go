// Package printer renders Matrix Language ASTs back to parseable source.
// It is used by the CLI fmt command and by round-trip tests: parsing the
// printed form of a program yields an equivalent AST.
package printer

import (
	"strings"

	"github.com/samber/lo"

	"github.com/dedzsinator/go-matrix/internal/ast"
)

// indentUnit is the indentation step for nested blocks.
const indentUnit = "    "

// Print renders a program, one item per line, with nested blocks indented.
func Print(program *ast.Program) string {
	items := lo.Map(program.Items, func(item ast.Item, _ int) string {
		return printItem(item, 0)
	})
	out := strings.Join(items, "\n")
	if out != "" {
		out += "\n"
	}
	return out
}

// PrintExpression renders a single expression at the top level.
func PrintExpression(expr ast.Expression) string {
	return printExpression(expr, 0)
}

func printItem(item ast.Item, depth int) string {
	switch node := item.(type) {
	case *ast.LetBinding:
		out := "let " + node.Name.Value
		if node.Type != nil {
			out += ": " + node.Type.String()
		}
		return out + " = " + printExpression(node.Value, depth)
	case *ast.FunctionDef:
		params := lo.Map(node.Params, func(p *ast.Param, _ int) string { return p.String() })
		out := "fn " + node.Name.Value + "(" + strings.Join(params, ", ") + ")"
		if node.ReturnType != nil {
			out += " -> " + node.ReturnType.String()
		}
		if block, ok := node.Body.(*ast.BlockExpression); ok {
			return out + " " + printBlock(block, depth)
		}
		return out + " => " + printExpression(node.Body, depth)
	case *ast.StructDef, *ast.EnumDef:
		return node.String()
	case *ast.ExpressionItem:
		return printExpression(node.Expression, depth)
	}
	return item.String()
}

func printExpression(expr ast.Expression, depth int) string {
	switch node := expr.(type) {
	case *ast.BlockExpression:
		return printBlock(node, depth)
	case *ast.IfExpression:
		return printIf(node, depth)
	case *ast.LetExpression:
		out := "let " + node.Name.Value
		if node.Type != nil {
			out += ": " + node.Type.String()
		}
		return out + " = " + printExpression(node.Value, depth) +
			" in " + printExpression(node.Body, depth)
	case *ast.LambdaExpression:
		params := lo.Map(node.Params, func(p *ast.Param, _ int) string { return p.String() })
		out := "(" + strings.Join(params, ", ") + ")"
		if node.ReturnType != nil {
			out += " -> " + node.ReturnType.String()
		}
		return out + " => " + printExpression(node.Body, depth)
	case *ast.MatchExpression:
		return printMatch(node, depth)
	case *ast.DirectiveExpression:
		return "@" + node.Name + " " + printBlock(node.Block, depth)
	}
	return expr.String()
}

func printBlock(block *ast.BlockExpression, depth int) string {
	if len(block.Statements) == 0 {
		return "{ }"
	}

	inner := strings.Repeat(indentUnit, depth+1)
	var sb strings.Builder
	sb.WriteString("{\n")
	for idx, stmt := range block.Statements {
		sb.WriteString(inner)
		switch s := stmt.(type) {
		case *ast.LetStatement:
			sb.WriteString("let " + s.Name.Value)
			if s.Type != nil {
				sb.WriteString(": " + s.Type.String())
			}
			sb.WriteString(" = " + printExpression(s.Value, depth+1))
		case *ast.ExpressionStatement:
			sb.WriteString(printExpression(s.Expression, depth+1))
		}
		if idx < len(block.Statements)-1 || block.TrailingSemicolon {
			sb.WriteString(";")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(strings.Repeat(indentUnit, depth) + "}")
	return sb.String()
}

func printIf(node *ast.IfExpression, depth int) string {
	cond := printExpression(node.Condition, depth)

	thenBlock, thenIsBlock := node.Then.(*ast.BlockExpression)
	if !thenIsBlock {
		return "if " + cond +
			" then " + printExpression(node.Then, depth) +
			" else " + printExpression(node.Else, depth)
	}

	out := "if " + cond + " " + printBlock(thenBlock, depth) + " else "
	switch alt := node.Else.(type) {
	case *ast.BlockExpression:
		return out + printBlock(alt, depth)
	case *ast.IfExpression:
		return out + printIf(alt, depth)
	}
	return out + printExpression(node.Else, depth)
}

func printMatch(node *ast.MatchExpression, depth int) string {
	inner := strings.Repeat(indentUnit, depth+1)
	var sb strings.Builder
	sb.WriteString("match " + printExpression(node.Scrutinee, depth) + " {\n")
	for _, arm := range node.Arms {
		sb.WriteString(inner)
		sb.WriteString(arm.Pattern.String() + " => " + printExpression(arm.Body, depth+1))
		sb.WriteString(",\n")
	}
	sb.WriteString(strings.Repeat(indentUnit, depth) + "}")
	return sb.String()
}
