package interp

import "math"

// registerStdlib seeds the global environment with the standard library:
// math constants and functions, container and string helpers, I/O, vector
// algebra, and the opaque handle constructors for the physics and quantum
// collaborators.
func (i *Interpreter) registerStdlib() {
	// Math constants
	i.env.Define("pi", &FloatValue{Value: math.Pi})
	i.env.Define("e", &FloatValue{Value: math.E})
	i.env.Define("tau", &FloatValue{Value: 2 * math.Pi})

	// Numeric
	i.RegisterBuiltin("abs", 1, builtinAbs)
	i.RegisterBuiltin("sqrt", 1, floatBuiltin("sqrt", math.Sqrt))
	i.RegisterBuiltin("sin", 1, floatBuiltin("sin", math.Sin))
	i.RegisterBuiltin("cos", 1, floatBuiltin("cos", math.Cos))
	i.RegisterBuiltin("tan", 1, floatBuiltin("tan", math.Tan))
	i.RegisterBuiltin("exp", 1, floatBuiltin("exp", math.Exp))
	i.RegisterBuiltin("log", 1, floatBuiltin("log", math.Log))
	i.RegisterBuiltin("floor", 1, floatBuiltin("floor", math.Floor))
	i.RegisterBuiltin("ceil", 1, floatBuiltin("ceil", math.Ceil))
	i.RegisterBuiltin("pow", 2, builtinPow)
	i.RegisterBuiltin("min", 2, builtinMin)
	i.RegisterBuiltin("max", 2, builtinMax)

	// Containers and strings
	i.RegisterBuiltin("len", 1, builtinLen)
	i.RegisterBuiltin("str", 1, builtinStr)

	// I/O
	i.RegisterBuiltin("println", 1, i.builtinPrintln)

	// Vector algebra
	i.RegisterBuiltin("vec3", 3, builtinVec3)
	i.RegisterBuiltin("dot", 2, builtinDot)
	i.RegisterBuiltin("cross", 2, builtinCross)
	i.RegisterBuiltin("magnitude", 1, builtinMagnitude)
	i.RegisterBuiltin("normalize", 1, builtinNormalize)

	// Physics stubs: handle constructors delegating to the external engine
	i.RegisterBuiltin("create_physics_world", 0, i.builtinCreatePhysicsWorld)
	i.RegisterBuiltin("add_rigid_body", 4, i.builtinAddRigidBody)
	i.RegisterBuiltin("physics_step", 1, builtinPhysicsStep)
	i.RegisterBuiltin("set_gravity", 2, builtinSetGravity)

	// Quantum stubs: circuit handle constructor and gate operations
	i.RegisterBuiltin("quantum_circuit", 1, i.builtinQuantumCircuit)
	i.RegisterBuiltin("h", 2, gateBuiltin("h"))
	i.RegisterBuiltin("x", 2, gateBuiltin("x"))
	i.RegisterBuiltin("cnot", 3, gateBuiltin("cnot"))
	i.RegisterBuiltin("measure", 2, builtinMeasure)
}
