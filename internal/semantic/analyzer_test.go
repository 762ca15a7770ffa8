package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dedzsinator/go-matrix/internal/parser"
)

// analyze is a test helper running the full front half of the pipeline.
func analyze(t *testing.T, source string) error {
	t.Helper()
	program, err := parser.Parse(source)
	require.NoError(t, err, "source must parse: %s", source)
	return NewAnalyzer().Analyze(program)
}

func TestAccepts(t *testing.T) {
	sources := []string{
		`2 + 3 * 4`,
		`let x = 10 in let y = x + 5 in y`,
		`let add = (a: Int, b: Int) => a + b in add(10, 20)`,
		`[1, 2, 3]`,
		`[[1, 2], [3, 4]]`,
		`if true then 1 else 0`,
		`1 / 0`, // division by zero is a runtime concern
		`let apply_twice = (f, x) => f(f(x)) in let inc = (x) => x + 1 in apply_twice(inc, 5)`,
		`abs(0 - 5)`,
		`"a" + "b"`,
		`1 < 2 && 3 >= 2`,
		`!false || true`,
		`let x: Float = 1.5`,
		`let xs: [Int] = [1, 2]`,
		`let m: [[Float]] = [[1.0], [2.0]]`,
		`let f: (Int, Int) -> Int = (a, b) => a + b`,
		`fn fact(n: Int) -> Int => if n <= 1 then 1 else n * fact(n - 1)`,
		`println(42)`,
		`println("hello") + 1`, // println is typed Any by design
		`str(3.14) + "!"`,
		`len([1, 2, 3]) + 1`,
		`sqrt(2) + 1.0`,
		`{ let a = 1; let b = a + 1; a + b }`,
		`pi * 2.0`,
		`vec3(1, 2, 3)`,
		`dot(vec3(1, 0, 0), vec3(0, 1, 0)) + 0.5`,
		`let w = create_physics_world() in physics_step(w)`,
		`let q = quantum_circuit(2) in measure(q, 0)`,
	}
	for _, src := range sources {
		assert.NoError(t, analyze(t, src), "source: %s", src)
	}
}

func TestRejects(t *testing.T) {
	tests := []struct {
		source  string
		message string
	}{
		{`let x: Int = "hello" in x`, "type mismatch"},
		{`1 + true`, "not defined"},
		{`1 + 2.0`, "same numeric type"},
		{`"a" - "b"`, "not defined"},
		{`if 1 then 2 else 3`, "must be Bool"},
		{`if true then 1 else "one"`, "same type"},
		{`true && 1`, "Bool operands"},
		{`!5`, "Bool operand"},
		{`-"x"`, "numeric operand"},
		{`undefined_var`, "undefined variable"},
		{`[1, "two"]`, "share one type"},
		{`[[1, 2], [3]]`, "equal length"},
		{`let f = (a: Int) => a in f(1, 2)`, "1 argument(s), got 2"},
		{`let f = (a: Int) => a in f(true)`, "type mismatch"},
		{`5(1)`, "cannot call"},
		{`[1, 2][true]`, "index must be Int"},
		{`1[0]`, "cannot index"},
		{`quantum_circuit(1.5)`, "type mismatch"},
		{`let xs: [Int] = [1, true]`, "type mismatch"},
	}
	for _, tt := range tests {
		err := analyze(t, tt.source)
		require.Error(t, err, "source: %s", tt.source)
		assert.Contains(t, err.Error(), tt.message, "source: %s", tt.source)
	}
}

func TestStructLiteralChecking(t *testing.T) {
	base := `struct Point { x: Int, y: Int }
`
	assert.NoError(t, analyze(t, base+`Point { x: 1, y: 2 }`))
	assert.NoError(t, analyze(t, base+`Point { y: 2, x: 1 }`), "field order is free")

	err := analyze(t, base+`Point { x: 1 }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing field y")

	err = analyze(t, base+`Point { x: 1, y: 2, z: 3 }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field z")

	err = analyze(t, base+`Point { x: true, y: 2 }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type mismatch")

	err = analyze(t, `Nowhere { x: 1 }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown struct type")
}

func TestFieldAccessChecking(t *testing.T) {
	base := `struct Point { x: Int, y: Int }
let p = Point { x: 1, y: 2 }
`
	assert.NoError(t, analyze(t, base+`p.x + p.y`))

	err := analyze(t, base+`p.z`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no field z")

	// Opaque named types (handles, Vec3) have no declaration; access degrades.
	assert.NoError(t, analyze(t, `vec3(1, 2, 3).x`))
}

func TestEnumChecking(t *testing.T) {
	base := `enum Shape { Circle(Float), Empty }
`
	assert.NoError(t, analyze(t, base+`Circle(1.5)`))
	assert.NoError(t, analyze(t, base+`match Circle(2.0) { Circle(r) => r * r, Empty => 0.0 }`))

	err := analyze(t, base+`Circle(true)`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type mismatch")

	err = analyze(t, base+`match Empty { Circle(r, extra) => r, Empty => 0.0 }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payload")
}

func TestMatchArmUnification(t *testing.T) {
	err := analyze(t, `match 1 { 0 => "zero", _ => 1 }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "same type")

	assert.NoError(t, analyze(t, `match 1 { 0 => "zero", _ => "other" }`))
}

func TestLambdaCheckedAgainstAnnotation(t *testing.T) {
	assert.NoError(t, analyze(t, `let f: (Int) -> Int = (a) => a + 1`),
		"expected parameter types flow into unannotated lambda parameters")

	err := analyze(t, `let f: (Int) -> Int = (a) => "nope"`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type mismatch")

	err = analyze(t, `let f: (Int) -> Int = (a, b) => a`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parameter")
}

func TestDirectiveTyping(t *testing.T) {
	assert.NoError(t, analyze(t, `let w: PhysicsWorld = @sim { 42 }`),
		"a directive binding's type is the opaque world handle")
	assert.NoError(t, analyze(t, `let w = @sim { let x = 1; x } in physics_step(w)`))

	err := analyze(t, `let w = @sim { undefined_inner }`)
	require.Error(t, err, "directive blocks are checked like ordinary blocks")
}

func TestRecursiveLetLambda(t *testing.T) {
	assert.NoError(t, analyze(t,
		`let fact = (n: Int) => if n <= 1 then 1 else n * fact(n - 1) in fact(5)`),
		"a let-bound lambda sees its own name inside the initializer")
}

func TestErrorsAccumulate(t *testing.T) {
	program, err := parser.Parse(`1 + true
"a" - "b"`)
	require.NoError(t, err)
	a := NewAnalyzer()
	require.Error(t, a.Analyze(program))
	assert.GreaterOrEqual(t, len(a.Errors()), 2, "the analyzer keeps checking past the first error")
}

func TestErrorCarriesSpan(t *testing.T) {
	program, err := parser.Parse("let ok = 1\n1 + true")
	require.NoError(t, err)
	analyzeErr := NewAnalyzer().Analyze(program)
	require.Error(t, analyzeErr)
	semErr, ok := analyzeErr.(*SemanticError)
	require.True(t, ok)
	assert.Equal(t, 2, semErr.Span.Line)
}
