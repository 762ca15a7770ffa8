package interp

import (
	"math"

	"github.com/dedzsinator/go-matrix/internal/ast"
)

// evalBinaryExpression dispatches a binary operation on the operand value
// kinds. && and || short-circuit; ?? evaluates its right side only when the
// left side is unit.
func (i *Interpreter) evalBinaryExpression(node *ast.BinaryExpression, env *Environment) (Value, *RuntimeError) {
	switch node.Operator {
	case "&&", "||":
		return i.evalLogicalExpression(node, env)
	case "??":
		left, err := i.evalExpression(node.Left, env)
		if err != nil {
			return nil, err
		}
		if _, isUnit := left.(*UnitValue); isUnit {
			return i.evalExpression(node.Right, env)
		}
		return left, nil
	}

	left, err := i.evalExpression(node.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpression(node.Right, env)
	if err != nil {
		return nil, err
	}

	result, opErr := evalBinaryOp(node.Operator, left, right)
	if opErr != nil {
		return nil, opErr.withSpan(node.Pos())
	}
	return result, nil
}

// evalLogicalExpression implements short-circuiting && and ||.
func (i *Interpreter) evalLogicalExpression(node *ast.BinaryExpression, env *Environment) (Value, *RuntimeError) {
	left, err := i.evalExpression(node.Left, env)
	if err != nil {
		return nil, err
	}
	lb, ok := left.(*BooleanValue)
	if !ok {
		return nil, NewRuntimeError(TypeError,
			"operator %s requires Bool operands, got %s", node.Operator, left.Type()).withSpan(node.Left.Pos())
	}

	if node.Operator == "&&" && !lb.Value {
		return &BooleanValue{Value: false}, nil
	}
	if node.Operator == "||" && lb.Value {
		return &BooleanValue{Value: true}, nil
	}

	right, err := i.evalExpression(node.Right, env)
	if err != nil {
		return nil, err
	}
	rb, ok := right.(*BooleanValue)
	if !ok {
		return nil, NewRuntimeError(TypeError,
			"operator %s requires Bool operands, got %s", node.Operator, right.Type()).withSpan(node.Right.Pos())
	}
	return &BooleanValue{Value: rb.Value}, nil
}

// evalBinaryOp applies a non-logical binary operator to two values.
func evalBinaryOp(operator string, left, right Value) (Value, *RuntimeError) {
	switch operator {
	case "==":
		return &BooleanValue{Value: valuesEqual(left, right)}, nil
	case "!=":
		return &BooleanValue{Value: !valuesEqual(left, right)}, nil
	case "<", "<=", ">", ">=":
		return evalComparison(operator, left, right)
	}

	// String concatenation
	if operator == "+" {
		if ls, ok := left.(*StringValue); ok {
			rs, ok := right.(*StringValue)
			if !ok {
				return nil, NewRuntimeError(TypeError,
					"cannot add String and %s", right.Type())
			}
			return &StringValue{Value: ls.Value + rs.Value}, nil
		}
	}

	// Int × Int stays integral; mixed numeric promotes to Float.
	if li, lok := left.(*IntegerValue); lok {
		if ri, rok := right.(*IntegerValue); rok {
			return evalIntegerOp(operator, li.Value, ri.Value)
		}
	}
	lf, lok := numericAsFloat(left)
	rf, rok := numericAsFloat(right)
	if lok && rok {
		return evalFloatOp(operator, lf, rf)
	}

	return nil, NewRuntimeError(TypeError,
		"operator %s not defined for %s and %s", operator, left.Type(), right.Type())
}

// evalComparison implements ordering on numbers and strings.
func evalComparison(operator string, left, right Value) (Value, *RuntimeError) {
	if ls, ok := left.(*StringValue); ok {
		rs, ok := right.(*StringValue)
		if !ok {
			return nil, NewRuntimeError(TypeError,
				"cannot compare String with %s", right.Type())
		}
		return &BooleanValue{Value: compareOrdered(operator, ls.Value, rs.Value)}, nil
	}

	lf, lok := numericAsFloat(left)
	rf, rok := numericAsFloat(right)
	if !lok || !rok {
		return nil, NewRuntimeError(TypeError,
			"operator %s not defined for %s and %s", operator, left.Type(), right.Type())
	}
	return &BooleanValue{Value: compareOrdered(operator, lf, rf)}, nil
}

func compareOrdered[T int64 | float64 | string](operator string, a, b T) bool {
	switch operator {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	}
	return false
}

// evalIntegerOp applies an arithmetic operator to two Int operands.
// Division truncates toward zero; a zero divisor for / or % fails.
func evalIntegerOp(operator string, a, b int64) (Value, *RuntimeError) {
	switch operator {
	case "+":
		return &IntegerValue{Value: a + b}, nil
	case "-":
		return &IntegerValue{Value: a - b}, nil
	case "*":
		return &IntegerValue{Value: a * b}, nil
	case "/":
		if b == 0 {
			return nil, NewRuntimeError(DivisionByZero, "division by zero")
		}
		return &IntegerValue{Value: a / b}, nil
	case "%":
		if b == 0 {
			return nil, NewRuntimeError(DivisionByZero, "modulo by zero")
		}
		return &IntegerValue{Value: a % b}, nil
	case "^":
		return intPow(a, b)
	}
	return nil, NewRuntimeError(TypeError, "operator %s not defined for Int", operator)
}

// intPow raises an Int base to an Int exponent by repeated multiplication.
// A negative exponent leaves the integral domain and falls back to math.Pow.
func intPow(base, exp int64) (Value, *RuntimeError) {
	if exp < 0 {
		return &FloatValue{Value: math.Pow(float64(base), float64(exp))}, nil
	}
	result := int64(1)
	for n := int64(0); n < exp; n++ {
		result *= base
	}
	return &IntegerValue{Value: result}, nil
}

// evalFloatOp applies an arithmetic operator to two Float operands.
func evalFloatOp(operator string, a, b float64) (Value, *RuntimeError) {
	switch operator {
	case "+":
		return &FloatValue{Value: a + b}, nil
	case "-":
		return &FloatValue{Value: a - b}, nil
	case "*":
		return &FloatValue{Value: a * b}, nil
	case "/":
		if b == 0 {
			return nil, NewRuntimeError(DivisionByZero, "division by zero")
		}
		return &FloatValue{Value: a / b}, nil
	case "%":
		if b == 0 {
			return nil, NewRuntimeError(DivisionByZero, "modulo by zero")
		}
		return &FloatValue{Value: math.Mod(a, b)}, nil
	case "^":
		return &FloatValue{Value: math.Pow(a, b)}, nil
	}
	return nil, NewRuntimeError(TypeError, "operator %s not defined for Float", operator)
}

// evalUnaryExpression applies a prefix operator.
func (i *Interpreter) evalUnaryExpression(node *ast.UnaryExpression, env *Environment) (Value, *RuntimeError) {
	operand, err := i.evalExpression(node.Operand, env)
	if err != nil {
		return nil, err
	}

	switch node.Operator {
	case "-":
		switch v := operand.(type) {
		case *IntegerValue:
			return &IntegerValue{Value: -v.Value}, nil
		case *FloatValue:
			return &FloatValue{Value: -v.Value}, nil
		}
		return nil, NewRuntimeError(TypeError,
			"unary - requires a numeric operand, got %s", operand.Type()).withSpan(node.Pos())
	case "!":
		b, ok := operand.(*BooleanValue)
		if !ok {
			return nil, NewRuntimeError(TypeError,
				"unary ! requires a Bool operand, got %s", operand.Type()).withSpan(node.Pos())
		}
		return &BooleanValue{Value: !b.Value}, nil
	}
	return nil, NewRuntimeError(TypeError,
		"unknown unary operator %s", node.Operator).withSpan(node.Pos())
}

// numericAsFloat extracts a numeric value as float64, promoting Int.
func numericAsFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case *IntegerValue:
		return float64(n.Value), true
	case *FloatValue:
		return n.Value, true
	}
	return 0, false
}
