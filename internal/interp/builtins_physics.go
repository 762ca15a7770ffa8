package interp

// Physics and quantum builtins are handle constructors and stubs: the
// returned handles are opaque tokens whose meaning belongs to the external
// engine. The evaluator only guarantees well-typed arguments and fresh
// handle allocation.

// builtinCreatePhysicsWorld allocates a fresh physics world handle.
func (i *Interpreter) builtinCreatePhysicsWorld(args []Value) (Value, *RuntimeError) {
	i.nextHandle++
	return &PhysicsWorldValue{Handle: i.nextHandle}, nil
}

// builtinAddRigidBody registers a rigid body in a world:
// add_rigid_body(world, shape, mass, position) -> object handle.
func (i *Interpreter) builtinAddRigidBody(args []Value) (Value, *RuntimeError) {
	if _, ok := args[0].(*PhysicsWorldValue); !ok {
		return nil, NewRuntimeError(TypeError,
			"add_rigid_body expects a PhysicsWorld, got %s", args[0].Type())
	}
	if _, ok := args[1].(*StringValue); !ok {
		return nil, NewRuntimeError(TypeError,
			"add_rigid_body expects a shape name, got %s", args[1].Type())
	}
	if _, err := argAsFloat("add_rigid_body", args[2]); err != nil {
		return nil, err
	}
	if _, _, _, err := vec3Components("add_rigid_body", args[3]); err != nil {
		return nil, err
	}
	i.nextHandle++
	return &PhysicsObjectValue{Handle: i.nextHandle}, nil
}

// builtinPhysicsStep advances a world one step. The stub validates the
// handle and returns unit; stepping is owned by the external engine.
func builtinPhysicsStep(args []Value) (Value, *RuntimeError) {
	if _, ok := args[0].(*PhysicsWorldValue); !ok {
		return nil, NewRuntimeError(TypeError,
			"physics_step expects a PhysicsWorld, got %s", args[0].Type())
	}
	return &UnitValue{}, nil
}

// builtinSetGravity configures a world's gravity vector.
func builtinSetGravity(args []Value) (Value, *RuntimeError) {
	if _, ok := args[0].(*PhysicsWorldValue); !ok {
		return nil, NewRuntimeError(TypeError,
			"set_gravity expects a PhysicsWorld, got %s", args[0].Type())
	}
	if _, _, _, err := vec3Components("set_gravity", args[1]); err != nil {
		return nil, err
	}
	return &UnitValue{}, nil
}

// builtinQuantumCircuit allocates a circuit handle with the given number of
// qubits.
func (i *Interpreter) builtinQuantumCircuit(args []Value) (Value, *RuntimeError) {
	qubits, ok := args[0].(*IntegerValue)
	if !ok {
		return nil, NewRuntimeError(TypeError,
			"quantum_circuit expects an Int qubit count, got %s", args[0].Type())
	}
	if qubits.Value < 1 {
		return nil, NewRuntimeError(Generic,
			"quantum_circuit requires at least 1 qubit, got %d", qubits.Value)
	}
	i.nextHandle++
	return &PhysicsObjectValue{Handle: i.nextHandle}, nil
}

// gateBuiltin builds a quantum gate stub: the first argument must be a
// circuit handle, remaining arguments are Int qubit indices.
func gateBuiltin(name string) BuiltinFunc {
	return func(args []Value) (Value, *RuntimeError) {
		if _, ok := args[0].(*PhysicsObjectValue); !ok {
			return nil, NewRuntimeError(TypeError,
				"%s expects a quantum circuit handle, got %s", name, args[0].Type())
		}
		for _, arg := range args[1:] {
			if _, ok := arg.(*IntegerValue); !ok {
				return nil, NewRuntimeError(TypeError,
					"%s expects Int qubit indices, got %s", name, arg.Type())
			}
		}
		return &UnitValue{}, nil
	}
}

// builtinMeasure measures a qubit. The stub validates arguments and reports
// the ground state; real measurement is owned by the external simulator.
func builtinMeasure(args []Value) (Value, *RuntimeError) {
	if _, ok := args[0].(*PhysicsObjectValue); !ok {
		return nil, NewRuntimeError(TypeError,
			"measure expects a quantum circuit handle, got %s", args[0].Type())
	}
	if _, ok := args[1].(*IntegerValue); !ok {
		return nil, NewRuntimeError(TypeError,
			"measure expects an Int qubit index, got %s", args[1].Type())
	}
	return &IntegerValue{Value: 0}, nil
}
