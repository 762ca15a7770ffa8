package semantic

import (
	"github.com/dedzsinator/go-matrix/internal/ast"
	"github.com/dedzsinator/go-matrix/internal/types"
)

// inferExpression synthesizes the type of an expression. Errors are recorded
// on the analyzer; the returned type is Any after an error so that one
// mistake does not cascade.
func (a *Analyzer) inferExpression(expr ast.Expression, scope *SymbolTable) types.Type {
	switch node := expr.(type) {
	case *ast.IntegerLiteral:
		return types.Int
	case *ast.FloatLiteral:
		return types.Float
	case *ast.StringLiteral:
		return types.String
	case *ast.BooleanLiteral:
		return types.Bool
	case *ast.UnitLiteral:
		return types.Unit

	case *ast.Identifier:
		if t, ok := scope.Get(node.Value); ok {
			return t
		}
		a.addError(node.Pos(), "undefined variable: %s", node.Value)
		return types.Any

	case *ast.ArrayLiteral:
		return a.inferArrayLiteral(node, scope)

	case *ast.MatrixLiteral:
		return a.inferMatrixLiteral(node, scope)

	case *ast.StructLiteral:
		return a.inferStructLiteral(node, scope)

	case *ast.BinaryExpression:
		return a.inferBinaryExpression(node, scope)

	case *ast.UnaryExpression:
		return a.inferUnaryExpression(node, scope)

	case *ast.CallExpression:
		return a.inferCallExpression(node, scope)

	case *ast.FieldAccess:
		return a.inferFieldAccess(node, scope)

	case *ast.IndexExpression:
		return a.inferIndexExpression(node, scope)

	case *ast.LambdaExpression:
		return a.inferLambda(node, scope)

	case *ast.IfExpression:
		return a.inferIfExpression(node, scope)

	case *ast.LetExpression:
		return a.inferLetExpression(node, scope)

	case *ast.BlockExpression:
		return a.inferBlockExpression(node, scope)

	case *ast.MatchExpression:
		return a.inferMatchExpression(node, scope)

	case *ast.DirectiveExpression:
		// The block is checked independently; the expression's own value
		// is the opaque world handle.
		a.inferBlockExpression(node.Block, scope)
		return types.NewNamed("PhysicsWorld")
	}
	return types.Any
}

// checkExpression validates an expression against an expected type. Lambdas,
// conditionals, lets and blocks propagate the expectation inward; everything
// else infers and tests assignability.
func (a *Analyzer) checkExpression(expr ast.Expression, expected types.Type, scope *SymbolTable) {
	switch node := expr.(type) {
	case *ast.LambdaExpression:
		if fn, ok := expected.(*types.FunctionType); ok {
			a.checkLambda(node, fn, scope)
			return
		}
	case *ast.IfExpression:
		a.checkCondition(node.Condition, scope)
		a.checkExpression(node.Then, expected, scope)
		a.checkExpression(node.Else, expected, scope)
		return
	case *ast.LetExpression:
		child := a.bindLet(node.Name.Value, node.Type, node.Value, scope)
		a.checkExpression(node.Body, expected, child)
		return
	case *ast.ArrayLiteral:
		if arr, ok := expected.(*types.ArrayType); ok {
			for _, el := range node.Elements {
				a.checkExpression(el, arr.Element, scope)
			}
			return
		}
	}

	actual := a.inferExpression(expr, scope)
	if !types.AssignableTo(actual, expected) {
		a.addError(expr.Pos(), "type mismatch: expected %s, found %s", expected, actual)
	}
}

// checkCondition requires a Bool-typed conditional guard.
func (a *Analyzer) checkCondition(cond ast.Expression, scope *SymbolTable) {
	t := a.inferExpression(cond, scope)
	if !types.AssignableTo(t, types.Bool) {
		a.addError(cond.Pos(), "if condition must be Bool, found %s", t)
	}
}

func (a *Analyzer) inferArrayLiteral(node *ast.ArrayLiteral, scope *SymbolTable) types.Type {
	if len(node.Elements) == 0 {
		return types.NewArray(types.Any)
	}
	element := a.inferExpression(node.Elements[0], scope)
	for _, el := range node.Elements[1:] {
		t := a.inferExpression(el, scope)
		if !types.AssignableTo(t, element) {
			a.addError(el.Pos(),
				"array elements must share one type: expected %s, found %s", element, t)
		}
	}
	return types.NewArray(element)
}

func (a *Analyzer) inferMatrixLiteral(node *ast.MatrixLiteral, scope *SymbolTable) types.Type {
	if len(node.Rows) == 0 {
		return types.NewMatrix(types.Any)
	}
	width := len(node.Rows[0])
	var element types.Type

	for _, row := range node.Rows {
		if len(row) != width {
			a.addError(node.Pos(),
				"matrix rows must have equal length: expected %d, found %d", width, len(row))
		}
		for _, el := range row {
			t := a.inferExpression(el, scope)
			if element == nil {
				element = t
				continue
			}
			if !types.AssignableTo(t, element) {
				a.addError(el.Pos(),
					"matrix elements must share one type: expected %s, found %s", element, t)
			}
		}
	}
	if element == nil {
		element = types.Any
	}
	return types.NewMatrix(element)
}

// inferStructLiteral checks each field against its declaration; extra or
// missing fields are errors.
func (a *Analyzer) inferStructLiteral(node *ast.StructLiteral, scope *SymbolTable) types.Type {
	sig, ok := a.structs[node.Name.Value]
	if !ok {
		a.addError(node.Pos(), "unknown struct type: %s", node.Name.Value)
		return types.Any
	}

	seen := make(map[string]bool, len(node.Fields))
	for _, f := range node.Fields {
		declared, ok := sig.fields[f.Name.Value]
		if !ok {
			a.addError(f.Name.Pos(), "unknown field %s in %s literal", f.Name.Value, node.Name.Value)
			continue
		}
		if seen[f.Name.Value] {
			a.addError(f.Name.Pos(), "duplicate field %s in %s literal", f.Name.Value, node.Name.Value)
			continue
		}
		seen[f.Name.Value] = true
		a.checkExpression(f.Value, declared, scope)
	}
	for _, name := range sig.names {
		if !seen[name] {
			a.addError(node.Pos(), "missing field %s in %s literal", name, node.Name.Value)
		}
	}
	return types.NewNamed(node.Name.Value)
}

// inferBinaryExpression applies the operator typing rules: arithmetic wants
// matching numeric kinds (plus String concatenation for +), comparisons want
// matching operands and yield Bool, logical operators want Bool.
func (a *Analyzer) inferBinaryExpression(node *ast.BinaryExpression, scope *SymbolTable) types.Type {
	left := a.inferExpression(node.Left, scope)
	right := a.inferExpression(node.Right, scope)

	switch node.Operator {
	case "+", "-", "*", "/", "%", "^":
		if types.IsAny(left) || types.IsAny(right) {
			return types.Any
		}
		if node.Operator == "+" && types.String.Equals(left) && types.String.Equals(right) {
			return types.String
		}
		if !types.IsNumeric(left) || !types.IsNumeric(right) {
			a.addError(node.Pos(),
				"operator %s not defined for %s and %s", node.Operator, left, right)
			return types.Any
		}
		if !left.Equals(right) {
			a.addError(node.Pos(),
				"operator %s requires both operands of the same numeric type, found %s and %s",
				node.Operator, left, right)
			return types.Any
		}
		return left

	case "==", "!=", "<", "<=", ">", ">=":
		if !types.IsAny(left) && !types.IsAny(right) && !left.Equals(right) {
			a.addError(node.Pos(),
				"comparison %s requires both operands of the same type, found %s and %s",
				node.Operator, left, right)
		}
		return types.Bool

	case "&&", "||":
		if !types.AssignableTo(left, types.Bool) {
			a.addError(node.Left.Pos(), "operator %s requires Bool operands, found %s", node.Operator, left)
		}
		if !types.AssignableTo(right, types.Bool) {
			a.addError(node.Right.Pos(), "operator %s requires Bool operands, found %s", node.Operator, right)
		}
		return types.Bool

	case "??":
		if types.IsAny(left) || types.IsAny(right) {
			return types.Any
		}
		if !left.Equals(right) && !types.Unit.Equals(left) {
			a.addError(node.Pos(),
				"operator ?? requires both sides of the same type, found %s and %s", left, right)
		}
		return right
	}
	return types.Any
}

func (a *Analyzer) inferUnaryExpression(node *ast.UnaryExpression, scope *SymbolTable) types.Type {
	operand := a.inferExpression(node.Operand, scope)

	switch node.Operator {
	case "-":
		if types.IsAny(operand) {
			return types.Any
		}
		if !types.IsNumeric(operand) {
			a.addError(node.Pos(), "unary - requires a numeric operand, found %s", operand)
			return types.Any
		}
		return operand
	case "!":
		if !types.AssignableTo(operand, types.Bool) {
			a.addError(node.Pos(), "unary ! requires a Bool operand, found %s", operand)
		}
		return types.Bool
	}
	return types.Any
}

// inferCallExpression checks the callee's function type, argument arity and
// each argument against the corresponding parameter.
func (a *Analyzer) inferCallExpression(node *ast.CallExpression, scope *SymbolTable) types.Type {
	callee := a.inferExpression(node.Callee, scope)

	if types.IsAny(callee) {
		for _, arg := range node.Arguments {
			a.inferExpression(arg, scope)
		}
		return types.Any
	}

	fn, ok := callee.(*types.FunctionType)
	if !ok {
		a.addError(node.Pos(), "cannot call value of type %s", callee)
		return types.Any
	}
	if len(node.Arguments) != len(fn.Params) {
		a.addError(node.Pos(),
			"function expects %d argument(s), got %d", len(fn.Params), len(node.Arguments))
		return fn.Return
	}
	for idx, arg := range node.Arguments {
		a.checkExpression(arg, fn.Params[idx], scope)
	}
	return fn.Return
}

// inferFieldAccess resolves field access on declared structs. Named types
// without a declaration are opaque; access degrades to Any.
func (a *Analyzer) inferFieldAccess(node *ast.FieldAccess, scope *SymbolTable) types.Type {
	object := a.inferExpression(node.Object, scope)
	if types.IsAny(object) {
		return types.Any
	}
	named, ok := object.(*types.NamedType)
	if !ok {
		a.addError(node.Pos(), "field access requires a struct, found %s", object)
		return types.Any
	}
	sig, ok := a.structs[named.Name]
	if !ok {
		return types.Any
	}
	fieldType, ok := sig.fields[node.Field.Value]
	if !ok {
		a.addError(node.Field.Pos(), "%s has no field %s", named.Name, node.Field.Value)
		return types.Any
	}
	return fieldType
}

func (a *Analyzer) inferIndexExpression(node *ast.IndexExpression, scope *SymbolTable) types.Type {
	left := a.inferExpression(node.Left, scope)
	index := a.inferExpression(node.Index, scope)

	if !types.AssignableTo(index, types.Int) {
		a.addError(node.Index.Pos(), "index must be Int, found %s", index)
	}

	switch container := left.(type) {
	case *types.ArrayType:
		return container.Element
	case *types.MatrixType:
		return types.NewArray(container.Element)
	case *types.AnyType:
		return types.Any
	}
	a.addError(node.Pos(), "cannot index value of type %s", left)
	return types.Any
}

// inferLambda types a lambda from its own annotations, defaulting
// unannotated parameters to Any.
func (a *Analyzer) inferLambda(node *ast.LambdaExpression, scope *SymbolTable) types.Type {
	sig := a.lambdaSignature(node)

	child := NewEnclosedSymbolTable(scope)
	for idx, p := range node.Params {
		child.Define(p.Name.Value, sig.Params[idx])
	}

	if node.ReturnType != nil {
		a.checkExpression(node.Body, sig.Return, child)
		return sig
	}
	bodyType := a.inferExpression(node.Body, child)
	return types.NewFunction(sig.Params, bodyType)
}

// checkLambda checks a lambda against an expected function type: expected
// parameter types flow into unannotated parameters.
func (a *Analyzer) checkLambda(node *ast.LambdaExpression, expected *types.FunctionType, scope *SymbolTable) {
	if len(node.Params) != len(expected.Params) {
		a.addError(node.Pos(),
			"lambda has %d parameter(s), expected %d", len(node.Params), len(expected.Params))
		return
	}

	child := NewEnclosedSymbolTable(scope)
	for idx, p := range node.Params {
		paramType := expected.Params[idx]
		if p.Type != nil {
			declared := a.resolveType(p.Type)
			if !types.AssignableTo(declared, paramType) {
				a.addError(p.Name.Pos(),
					"parameter %s declared as %s, expected %s", p.Name.Value, declared, paramType)
			}
			paramType = declared
		}
		child.Define(p.Name.Value, paramType)
	}
	a.checkExpression(node.Body, expected.Return, child)
}

func (a *Analyzer) inferIfExpression(node *ast.IfExpression, scope *SymbolTable) types.Type {
	a.checkCondition(node.Condition, scope)

	thenType := a.inferExpression(node.Then, scope)
	elseType := a.inferExpression(node.Else, scope)

	if types.IsAny(thenType) {
		return elseType
	}
	if !types.AssignableTo(elseType, thenType) {
		a.addError(node.Pos(),
			"if branches must have the same type, found %s and %s", thenType, elseType)
	}
	return thenType
}

// bindLet checks a let initializer and returns a child scope with the name
// bound. A lambda initializer pre-binds its own signature so direct
// recursion resolves inside the initializer.
func (a *Analyzer) bindLet(name string, annotation ast.TypeExpression, value ast.Expression, scope *SymbolTable) *SymbolTable {
	child := NewEnclosedSymbolTable(scope)

	if annotation != nil {
		declared := a.resolveType(annotation)
		a.checkExpression(value, declared, child)
		child.Define(name, declared)
		return child
	}

	if lambda, ok := value.(*ast.LambdaExpression); ok {
		child.Define(name, a.lambdaSignature(lambda))
	}
	child.Define(name, a.inferExpression(value, child))
	return child
}

func (a *Analyzer) inferLetExpression(node *ast.LetExpression, scope *SymbolTable) types.Type {
	child := a.bindLet(node.Name.Value, node.Type, node.Value, scope)
	return a.inferExpression(node.Body, child)
}

func (a *Analyzer) inferBlockExpression(node *ast.BlockExpression, scope *SymbolTable) types.Type {
	child := NewEnclosedSymbolTable(scope)
	var result types.Type = types.Unit

	for idx, stmt := range node.Statements {
		switch s := stmt.(type) {
		case *ast.LetStatement:
			if s.Type != nil {
				declared := a.resolveType(s.Type)
				a.checkExpression(s.Value, declared, child)
				child.Define(s.Name.Value, declared)
			} else {
				if lambda, ok := s.Value.(*ast.LambdaExpression); ok {
					child.Define(s.Name.Value, a.lambdaSignature(lambda))
				}
				child.Define(s.Name.Value, a.inferExpression(s.Value, child))
			}
			result = types.Unit
		case *ast.ExpressionStatement:
			t := a.inferExpression(s.Expression, child)
			if idx == len(node.Statements)-1 && !node.TrailingSemicolon {
				result = t
			} else {
				result = types.Unit
			}
		}
	}
	return result
}

// inferMatchExpression types the scrutinee, binds each arm's pattern
// variables, and unifies the arm body types.
func (a *Analyzer) inferMatchExpression(node *ast.MatchExpression, scope *SymbolTable) types.Type {
	scrutinee := a.inferExpression(node.Scrutinee, scope)

	var result types.Type
	for _, arm := range node.Arms {
		child := NewEnclosedSymbolTable(scope)
		a.bindPattern(arm.Pattern, scrutinee, child)

		t := a.inferExpression(arm.Body, child)
		if result == nil || types.IsAny(result) {
			result = t
			continue
		}
		if !types.AssignableTo(t, result) {
			a.addError(arm.Body.Pos(),
				"match arms must have the same type, found %s and %s", result, t)
		}
	}
	if result == nil {
		result = types.Any
	}
	return result
}

// bindPattern introduces pattern variables into the arm's scope. Variant
// payloads bind their declared types when the variant is known; otherwise
// bindings degrade to Any.
func (a *Analyzer) bindPattern(pattern ast.Pattern, scrutinee types.Type, scope *SymbolTable) {
	switch p := pattern.(type) {
	case *ast.IdentifierPattern:
		scope.Define(p.Name, scrutinee)
	case *ast.VariantPattern:
		payload, known := a.variantPayload(p.Name)
		if known && len(payload) != len(p.Args) {
			a.addError(p.Pos(),
				"variant %s has %d payload value(s), pattern has %d", p.Name, len(payload), len(p.Args))
			known = false
		}
		for idx, arg := range p.Args {
			var argType types.Type = types.Any
			if known {
				argType = payload[idx]
			}
			a.bindPattern(arg, argType, scope)
		}
	}
}
