package semantic

import "github.com/dedzsinator/go-matrix/internal/types"

// builtinTypes declares the standard library's type signatures as seen by
// the checker. Builtins whose full signature is not expressible in the type
// model (polymorphic arguments, kind-preserving results) use Any; Any
// results satisfy any expected type and defer checking to the runtime.
var builtinTypes = map[string]types.Type{
	// Math constants
	"pi":  types.Float,
	"e":   types.Float,
	"tau": types.Float,

	// Numeric: argument kind polymorphism is not expressible, results are
	// precise where the function always yields Float.
	"abs":   types.NewFunction([]types.Type{types.Any}, types.Any),
	"sqrt":  types.NewFunction([]types.Type{types.Any}, types.Float),
	"sin":   types.NewFunction([]types.Type{types.Any}, types.Float),
	"cos":   types.NewFunction([]types.Type{types.Any}, types.Float),
	"tan":   types.NewFunction([]types.Type{types.Any}, types.Float),
	"exp":   types.NewFunction([]types.Type{types.Any}, types.Float),
	"log":   types.NewFunction([]types.Type{types.Any}, types.Float),
	"floor": types.NewFunction([]types.Type{types.Any}, types.Float),
	"ceil":  types.NewFunction([]types.Type{types.Any}, types.Float),
	"pow":   types.NewFunction([]types.Type{types.Any, types.Any}, types.Any),
	"min":   types.NewFunction([]types.Type{types.Any, types.Any}, types.Any),
	"max":   types.NewFunction([]types.Type{types.Any, types.Any}, types.Any),

	// Containers and strings
	"len": types.NewFunction([]types.Type{types.Any}, types.Int),
	"str": types.NewFunction([]types.Type{types.Any}, types.String),

	// I/O: println accepts and returns Any by design.
	"println": types.NewFunction([]types.Type{types.Any}, types.Any),

	// Vector algebra
	"vec3":      types.NewFunction([]types.Type{types.Any, types.Any, types.Any}, types.NewNamed("Vec3")),
	"dot":       types.NewFunction([]types.Type{types.Any, types.Any}, types.Float),
	"cross":     types.NewFunction([]types.Type{types.Any, types.Any}, types.NewNamed("Vec3")),
	"magnitude": types.NewFunction([]types.Type{types.Any}, types.Float),
	"normalize": types.NewFunction([]types.Type{types.Any}, types.NewNamed("Vec3")),

	// Physics stubs
	"create_physics_world": types.NewFunction(nil, types.NewNamed("PhysicsWorld")),
	"add_rigid_body": types.NewFunction(
		[]types.Type{types.NewNamed("PhysicsWorld"), types.String, types.Any, types.Any},
		types.NewNamed("PhysicsObject")),
	"physics_step": types.NewFunction([]types.Type{types.NewNamed("PhysicsWorld")}, types.Unit),
	"set_gravity":  types.NewFunction([]types.Type{types.NewNamed("PhysicsWorld"), types.Any}, types.Unit),

	// Quantum stubs
	"quantum_circuit": types.NewFunction([]types.Type{types.Int}, types.NewNamed("PhysicsObject")),
	"h":               types.NewFunction([]types.Type{types.NewNamed("PhysicsObject"), types.Int}, types.Unit),
	"x":               types.NewFunction([]types.Type{types.NewNamed("PhysicsObject"), types.Int}, types.Unit),
	"cnot":            types.NewFunction([]types.Type{types.NewNamed("PhysicsObject"), types.Int, types.Int}, types.Unit),
	"measure":         types.NewFunction([]types.Type{types.NewNamed("PhysicsObject"), types.Int}, types.Int),
}
