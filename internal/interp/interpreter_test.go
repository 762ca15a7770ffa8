package interp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dedzsinator/go-matrix/internal/parser"
)

// evalSource runs source through a fresh interpreter, without type checking,
// so that runtime failure behavior is observable.
func evalSource(t *testing.T, source string) (Value, error) {
	t.Helper()
	program, err := parser.Parse(source)
	require.NoError(t, err, "source must parse: %s", source)
	return New(WithOutput(&bytes.Buffer{})).EvalProgram(program)
}

// mustEval fails the test on runtime errors.
func mustEval(t *testing.T, source string) Value {
	t.Helper()
	val, err := evalSource(t, source)
	require.NoError(t, err, "source: %s", source)
	return val
}

// requireRuntimeError asserts evaluation fails with the given error kind.
func requireRuntimeError(t *testing.T, source string, kind RuntimeErrorKind) *RuntimeError {
	t.Helper()
	_, err := evalSource(t, source)
	require.Error(t, err, "source: %s", source)
	rtErr, ok := err.(*RuntimeError)
	require.True(t, ok, "expected *RuntimeError, got %T: %v", err, err)
	assert.Equal(t, kind, rtErr.Kind, "source: %s", source)
	return rtErr
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		source   string
		expected int64
	}{
		{`2 + 3 * 4`, 14},
		{`(2 + 3) * 4`, 20},
		{`10 - 2 - 3`, 5},
		{`7 / 2`, 3},
		{`0 - 7 / 2`, -3},
		{`10 % 3`, 1},
		{`2 ^ 10`, 1024},
		{`2 ^ 0`, 1},
		{`-5 + 3`, -2},
		{`abs(-5)`, 5},
		{`min(3, 7)`, 3},
		{`max(3, 7)`, 7},
		{`pow(2, 8)`, 256},
		{`len([1, 2, 3])`, 3},
		{`len("hello")`, 5},
		{`len([[1, 2], [3, 4]])`, 2},
	}
	for _, tt := range tests {
		val := mustEval(t, tt.source)
		intVal, ok := val.(*IntegerValue)
		require.True(t, ok, "%s: expected Int, got %s", tt.source, val.Type())
		assert.Equal(t, tt.expected, intVal.Value, "source: %s", tt.source)
	}
}

func TestFloatArithmetic(t *testing.T) {
	tests := []struct {
		source   string
		expected float64
	}{
		{`1.5 + 2.5`, 4.0},
		{`10.0 / 4.0`, 2.5},
		{`2.0 ^ 0.5`, 1.4142135623730951},
		{`1 + 2.5`, 3.5},  // mixed numerics promote
		{`2.5 * 2`, 5.0},  // in either order
		{`2 ^ -1`, 0.5},   // negative exponents leave the integral domain
		{`sqrt(16.0)`, 4}, // numeric builtins accept either kind
		{`sqrt(16)`, 4},
		{`floor(2.7)`, 2},
		{`ceil(2.1)`, 3},
	}
	for _, tt := range tests {
		val := mustEval(t, tt.source)
		floatVal, ok := val.(*FloatValue)
		require.True(t, ok, "%s: expected Float, got %s", tt.source, val.Type())
		assert.InDelta(t, tt.expected, floatVal.Value, 1e-12, "source: %s", tt.source)
	}
}

func TestBooleansAndComparison(t *testing.T) {
	tests := []struct {
		source   string
		expected bool
	}{
		{`true`, true},
		{`!true`, false},
		{`1 < 2`, true},
		{`2 <= 2`, true},
		{`3 > 4`, false},
		{`1 == 1`, true},
		{`1 != 1`, false},
		{`1 == 1.0`, true}, // numeric equality promotes
		{`"abc" == "abc"`, true},
		{`"abc" < "abd"`, true},
		{`[1, 2] == [1, 2]`, true},
		{`[1, 2] == [2, 1]`, false},
		{`true && false`, false},
		{`true || false`, true},
		{`1 < 2 && 2 < 3`, true},
	}
	for _, tt := range tests {
		val := mustEval(t, tt.source)
		boolVal, ok := val.(*BooleanValue)
		require.True(t, ok, "%s: expected Bool, got %s", tt.source, val.Type())
		assert.Equal(t, tt.expected, boolVal.Value, "source: %s", tt.source)
	}
}

func TestShortCircuit(t *testing.T) {
	// The right side would fail at runtime; short-circuiting must skip it.
	val := mustEval(t, `false && (1 / 0 == 0)`)
	assert.False(t, val.(*BooleanValue).Value)

	val = mustEval(t, `true || (1 / 0 == 0)`)
	assert.True(t, val.(*BooleanValue).Value)
}

func TestStrings(t *testing.T) {
	val := mustEval(t, `"foo" + "bar"`)
	assert.Equal(t, "foobar", val.(*StringValue).Value)

	val = mustEval(t, `str(42) + "!"`)
	assert.Equal(t, "42!", val.(*StringValue).Value)

	val = mustEval(t, `str(3.14)`)
	assert.Equal(t, "3.14", val.(*StringValue).Value)

	val = mustEval(t, `str(true)`)
	assert.Equal(t, "true", val.(*StringValue).Value)
}

func TestLetAndScoping(t *testing.T) {
	val := mustEval(t, `let x = 10 in let y = x + 5 in y`)
	assert.Equal(t, int64(15), val.(*IntegerValue).Value)

	// Shadowing in an inner scope leaves the outer binding untouched.
	val = mustEval(t, `let x = 1 in (let x = 2 in x) + x`)
	assert.Equal(t, int64(3), val.(*IntegerValue).Value)

	// Top-level bindings yield their value as the item result.
	val = mustEval(t, `let x = 42`)
	assert.Equal(t, int64(42), val.(*IntegerValue).Value)

	// The binding disappears when its scope is dropped.
	_, err := evalSource(t, `let unused = (let inner = 1 in inner) in inner`)
	require.Error(t, err)
}

func TestFunctionsAndClosures(t *testing.T) {
	val := mustEval(t, `let add = (a: Int, b: Int) => a + b in add(10, 20)`)
	assert.Equal(t, int64(30), val.(*IntegerValue).Value)

	val = mustEval(t, `let apply_twice = (f, x) => f(f(x)) in let inc = (x) => x + 1 in apply_twice(inc, 5)`)
	assert.Equal(t, int64(7), val.(*IntegerValue).Value)

	// Closures observe the captured scope's bindings at definition time.
	val = mustEval(t, `let n = 10 in let addN = (x) => x + n in let n = 99 in addN(1)`)
	assert.Equal(t, int64(11), val.(*IntegerValue).Value,
		"a later shadowing let must not change what the closure captured")

	// A closure escaping its defining scope keeps that scope alive.
	val = mustEval(t, `let make = (n) => (x) => x + n in let add5 = make(5) in add5(37)`)
	assert.Equal(t, int64(42), val.(*IntegerValue).Value)

	// Two closures from the same call share one captured frame.
	val = mustEval(t, `fn pair(n) { [(x) => x + n, (x) => x * n] }
let fs = pair(3)
fs[0](10) + fs[1](10)`)
	assert.Equal(t, int64(43), val.(*IntegerValue).Value)
}

func TestRecursion(t *testing.T) {
	val := mustEval(t, `fn fact(n: Int) -> Int => if n <= 1 then 1 else n * fact(n - 1)
fact(10)`)
	assert.Equal(t, int64(3628800), val.(*IntegerValue).Value)

	// let-bound lambdas see their own binding inside the initializer.
	val = mustEval(t, `let fib = (n) => if n < 2 then n else fib(n - 1) + fib(n - 2) in fib(10)`)
	assert.Equal(t, int64(55), val.(*IntegerValue).Value)
}

func TestIfExpression(t *testing.T) {
	val := mustEval(t, `if true then 1 else 0`)
	assert.Equal(t, int64(1), val.(*IntegerValue).Value)

	val = mustEval(t, `if 1 > 2 { 10 } else { 20 }`)
	assert.Equal(t, int64(20), val.(*IntegerValue).Value)

	// Only the selected branch evaluates.
	val = mustEval(t, `if true then 1 else 1 / 0`)
	assert.Equal(t, int64(1), val.(*IntegerValue).Value)

	requireRuntimeError(t, `if 1 then 2 else 3`, TypeError)
}

func TestBlocks(t *testing.T) {
	val := mustEval(t, `{ let a = 1; let b = 2; a + b }`)
	assert.Equal(t, int64(3), val.(*IntegerValue).Value)

	// A trailing semicolon yields unit.
	val = mustEval(t, `{ 1 + 1; }`)
	assert.IsType(t, &UnitValue{}, val)

	val = mustEval(t, `{ }`)
	assert.IsType(t, &UnitValue{}, val)

	// Block-local bindings do not leak.
	_, err := evalSource(t, `{ let hidden = 1; hidden }
hidden`)
	require.Error(t, err)
}

func TestArraysAndMatrices(t *testing.T) {
	val := mustEval(t, `[1, 2, 3]`)
	arr, ok := val.(*ArrayValue)
	require.True(t, ok)
	require.Len(t, arr.Elements, 3)
	assert.Equal(t, int64(2), arr.Elements[1].(*IntegerValue).Value)

	val = mustEval(t, `[1, 2, 3][0]`)
	assert.Equal(t, int64(1), val.(*IntegerValue).Value)

	val = mustEval(t, `[[1, 2], [3, 4]]`)
	mat, ok := val.(*MatrixValue)
	require.True(t, ok)
	require.Len(t, mat.Rows, 2)

	val = mustEval(t, `[[1, 2], [3, 4]][1][0]`)
	assert.Equal(t, int64(3), val.(*IntegerValue).Value)

	// Elements evaluate left to right.
	var buf bytes.Buffer
	program, err := parser.Parse(`[println(1), println(2), println(3)]`)
	require.NoError(t, err)
	_, err = New(WithOutput(&buf)).EvalProgram(program)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", buf.String())
}

func TestStructs(t *testing.T) {
	base := `struct Point { x: Int, y: Int }
`
	val := mustEval(t, base+`let p = Point { x: 1, y: 2 } in p.x + p.y`)
	assert.Equal(t, int64(3), val.(*IntegerValue).Value)

	// Fields may be written in any order; values keep declaration order.
	val = mustEval(t, base+`Point { y: 2, x: 1 }`)
	s := val.(*StructValue)
	assert.Equal(t, "x", s.Fields[0].Name)
	assert.Equal(t, "y", s.Fields[1].Name)

	requireRuntimeError(t, base+`Point { x: 1 }`, TypeError)
	requireRuntimeError(t, base+`Point { x: 1, y: 2, z: 3 }`, TypeError)
	requireRuntimeError(t, base+`let p = Point { x: 1, y: 2 } in p.z`, FieldNotFound)
	requireRuntimeError(t, `Ghost { x: 1 }`, TypeError)
}

func TestEnumsAndMatch(t *testing.T) {
	base := `enum Shape { Circle(Float), Rect(Float, Float), Empty }
`
	val := mustEval(t, base+`match Circle(2.0) {
	Circle(r) => r * r,
	Rect(w, h) => w * h,
	Empty => 0.0,
}`)
	assert.InDelta(t, 4.0, val.(*FloatValue).Value, 1e-12)

	val = mustEval(t, base+`match Rect(3.0, 4.0) { Circle(r) => r, Rect(w, h) => w * h, _ => 0.0 }`)
	assert.InDelta(t, 12.0, val.(*FloatValue).Value, 1e-12)

	val = mustEval(t, base+`match Empty { Empty => "none", _ => "some" }`)
	assert.Equal(t, "none", val.(*StringValue).Value)

	// Literal, binding and wildcard patterns.
	val = mustEval(t, `match 42 { 0 => "zero", n => str(n) }`)
	assert.Equal(t, "42", val.(*StringValue).Value)

	requireRuntimeError(t, base+`match Circle(1.0) { Empty => 0.0 }`, Generic)
}

func TestCoalesceOperator(t *testing.T) {
	val := mustEval(t, `() ?? 5`)
	assert.Equal(t, int64(5), val.(*IntegerValue).Value)

	val = mustEval(t, `3 ?? 5`)
	assert.Equal(t, int64(3), val.(*IntegerValue).Value)
}

func TestRuntimeErrorKinds(t *testing.T) {
	requireRuntimeError(t, `1 / 0`, DivisionByZero)
	requireRuntimeError(t, `1.0 / 0.0`, DivisionByZero)
	requireRuntimeError(t, `1 % 0`, DivisionByZero)
	requireRuntimeError(t, `undefined_var`, UndefinedVariable)
	requireRuntimeError(t, `[1, 2, 3][3]`, IndexOutOfBounds)
	requireRuntimeError(t, `[1, 2, 3][-1]`, IndexOutOfBounds)
	requireRuntimeError(t, `abs(1, 2)`, WrongArity)
	requireRuntimeError(t, `let f = (a) => a in f()`, WrongArity)
	requireRuntimeError(t, `5(1)`, NotCallable)
	requireRuntimeError(t, `1 + true`, TypeError)
	requireRuntimeError(t, `[1][true]`, TypeError)
}

func TestRuntimeErrorPositions(t *testing.T) {
	err := requireRuntimeError(t, "let ok = 1\n1 / 0", DivisionByZero)
	assert.Equal(t, 2, err.Span.Line)
}

func TestPrintln(t *testing.T) {
	var buf bytes.Buffer
	program, err := parser.Parse(`println("hello")
println(42)
println([1, 2])
println(vec3(1, 2, 3))`)
	require.NoError(t, err)
	interp := New(WithOutput(&buf))
	val, err := interp.EvalProgram(program)
	require.NoError(t, err)
	assert.IsType(t, &UnitValue{}, val)
	assert.Equal(t, "hello\n42\n[1, 2]\nVec3 { x: 1, y: 2, z: 3 }\n", buf.String())
}

func TestMathConstants(t *testing.T) {
	val := mustEval(t, `pi`)
	assert.InDelta(t, 3.141592653589793, val.(*FloatValue).Value, 1e-15)
	val = mustEval(t, `e`)
	assert.InDelta(t, 2.718281828459045, val.(*FloatValue).Value, 1e-15)
	val = mustEval(t, `tau`)
	assert.InDelta(t, 6.283185307179586, val.(*FloatValue).Value, 1e-15)
}

func TestVectorBuiltins(t *testing.T) {
	val := mustEval(t, `dot(vec3(1, 2, 3), vec3(4, 5, 6))`)
	assert.InDelta(t, 32.0, val.(*FloatValue).Value, 1e-12)

	val = mustEval(t, `magnitude(vec3(3, 4, 0))`)
	assert.InDelta(t, 5.0, val.(*FloatValue).Value, 1e-12)

	val = mustEval(t, `cross(vec3(1, 0, 0), vec3(0, 1, 0))`)
	z, ok := val.(*StructValue).Get("z")
	require.True(t, ok)
	assert.InDelta(t, 1.0, z.(*FloatValue).Value, 1e-12)

	val = mustEval(t, `magnitude(normalize(vec3(3, 4, 12)))`)
	assert.InDelta(t, 1.0, val.(*FloatValue).Value, 1e-12)

	// Arrays of three numerics are accepted as vectors.
	val = mustEval(t, `dot([1, 0, 0], [0, 0, 1])`)
	assert.InDelta(t, 0.0, val.(*FloatValue).Value, 1e-12)

	_, err := evalSource(t, `normalize(vec3(0, 0, 0))`)
	require.Error(t, err)
}

func TestPhysicsBuiltins(t *testing.T) {
	val := mustEval(t, `create_physics_world()`)
	world, ok := val.(*PhysicsWorldValue)
	require.True(t, ok)
	assert.Positive(t, world.Handle)

	val = mustEval(t, `let w = create_physics_world() in add_rigid_body(w, "sphere", 1.0, [0.0, 0.0, 0.0])`)
	assert.IsType(t, &PhysicsObjectValue{}, val)

	val = mustEval(t, `let w = create_physics_world() in physics_step(w)`)
	assert.IsType(t, &UnitValue{}, val)

	val = mustEval(t, `let w = create_physics_world() in set_gravity(w, vec3(0, -9.81, 0))`)
	assert.IsType(t, &UnitValue{}, val)

	// Distinct worlds get distinct handles.
	val = mustEval(t, `create_physics_world() == create_physics_world()`)
	assert.False(t, val.(*BooleanValue).Value)

	requireRuntimeError(t, `physics_step(42)`, TypeError)
}

func TestQuantumBuiltins(t *testing.T) {
	val := mustEval(t, `quantum_circuit(2)`)
	assert.IsType(t, &PhysicsObjectValue{}, val)

	val = mustEval(t, `let c = quantum_circuit(2) in { h(c, 0); x(c, 1); cnot(c, 0, 1); measure(c, 1) }`)
	assert.Equal(t, int64(0), val.(*IntegerValue).Value)

	requireRuntimeError(t, `quantum_circuit(0)`, Generic)
	requireRuntimeError(t, `h(42, 0)`, TypeError)
}

func TestRegisterBuiltin(t *testing.T) {
	program, err := parser.Parse(`double(21)`)
	require.NoError(t, err)

	i := New(WithOutput(&bytes.Buffer{}))
	i.RegisterBuiltin("double", 1, func(args []Value) (Value, *RuntimeError) {
		n, ok := args[0].(*IntegerValue)
		if !ok {
			return nil, NewRuntimeError(TypeError, "double expects Int")
		}
		return &IntegerValue{Value: n.Value * 2}, nil
	})

	val, err := i.EvalProgram(program)
	require.NoError(t, err)
	assert.Equal(t, int64(42), val.(*IntegerValue).Value)
}

func TestDeterminism(t *testing.T) {
	source := `fn fib(n) => if n < 2 then n else fib(n - 1) + fib(n - 2);
[fib(10), 2 ^ 16, str(12.5), len("abc")]`
	first := mustEval(t, source).String()
	second := mustEval(t, source).String()
	assert.Equal(t, first, second)
}
