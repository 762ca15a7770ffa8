package interp

import (
	"fmt"
	"math"

	"github.com/spf13/cast"
)

// argAsFloat coerces a numeric argument to float64 for builtins that accept
// either numeric kind.
func argAsFloat(name string, arg Value) (float64, *RuntimeError) {
	switch v := arg.(type) {
	case *IntegerValue:
		return cast.ToFloat64(v.Value), nil
	case *FloatValue:
		return v.Value, nil
	}
	return 0, NewRuntimeError(TypeError,
		"%s expects Int or Float, got %s", name, arg.Type())
}

// floatBuiltin adapts a float64 function into a builtin that accepts either
// numeric kind and returns Float.
func floatBuiltin(name string, fn func(float64) float64) BuiltinFunc {
	return func(args []Value) (Value, *RuntimeError) {
		f, err := argAsFloat(name, args[0])
		if err != nil {
			return nil, err
		}
		return &FloatValue{Value: fn(f)}, nil
	}
}

// builtinAbs returns the absolute value of a number, preserving its kind.
func builtinAbs(args []Value) (Value, *RuntimeError) {
	switch v := args[0].(type) {
	case *IntegerValue:
		if v.Value < 0 {
			return &IntegerValue{Value: -v.Value}, nil
		}
		return v, nil
	case *FloatValue:
		return &FloatValue{Value: math.Abs(v.Value)}, nil
	}
	return nil, NewRuntimeError(TypeError,
		"abs expects Int or Float, got %s", args[0].Type())
}

// builtinPow raises base to exponent with the same kind rules as the ^
// operator: Int × Int stays integral, anything else is Float.
func builtinPow(args []Value) (Value, *RuntimeError) {
	if base, ok := args[0].(*IntegerValue); ok {
		if exp, ok := args[1].(*IntegerValue); ok {
			return intPow(base.Value, exp.Value)
		}
	}
	bf, err := argAsFloat("pow", args[0])
	if err != nil {
		return nil, err
	}
	ef, err := argAsFloat("pow", args[1])
	if err != nil {
		return nil, err
	}
	return &FloatValue{Value: math.Pow(bf, ef)}, nil
}

// builtinMin returns the smaller of two numbers. Mixed kinds promote to Float.
func builtinMin(args []Value) (Value, *RuntimeError) {
	return minMax("min", args, func(a, b float64) bool { return a < b })
}

// builtinMax returns the larger of two numbers. Mixed kinds promote to Float.
func builtinMax(args []Value) (Value, *RuntimeError) {
	return minMax("max", args, func(a, b float64) bool { return a > b })
}

func minMax(name string, args []Value, pick func(a, b float64) bool) (Value, *RuntimeError) {
	if l, ok := args[0].(*IntegerValue); ok {
		if r, ok := args[1].(*IntegerValue); ok {
			if pick(float64(l.Value), float64(r.Value)) {
				return l, nil
			}
			return r, nil
		}
	}
	lf, err := argAsFloat(name, args[0])
	if err != nil {
		return nil, err
	}
	rf, err := argAsFloat(name, args[1])
	if err != nil {
		return nil, err
	}
	if pick(lf, rf) {
		return &FloatValue{Value: lf}, nil
	}
	return &FloatValue{Value: rf}, nil
}

// builtinLen returns the length of an array, the row count of a matrix, or
// the byte length of a string.
func builtinLen(args []Value) (Value, *RuntimeError) {
	switch v := args[0].(type) {
	case *ArrayValue:
		return &IntegerValue{Value: int64(len(v.Elements))}, nil
	case *MatrixValue:
		return &IntegerValue{Value: int64(len(v.Rows))}, nil
	case *StringValue:
		return &IntegerValue{Value: int64(len(v.Value))}, nil
	}
	return nil, NewRuntimeError(TypeError,
		"len expects Array, Matrix or String, got %s", args[0].Type())
}

// builtinStr renders any value in its display form.
func builtinStr(args []Value) (Value, *RuntimeError) {
	return &StringValue{Value: args[0].String()}, nil
}

// builtinPrintln writes the argument's display form and a newline to the
// interpreter's output, returning unit.
func (i *Interpreter) builtinPrintln(args []Value) (Value, *RuntimeError) {
	if _, err := fmt.Fprintln(i.output, args[0].String()); err != nil {
		return nil, NewRuntimeError(Generic, "println: %v", err)
	}
	return &UnitValue{}, nil
}
