package interp

import "math"

// newVec3 builds the Vec3 struct value used by the vector builtins.
func newVec3(x, y, z float64) *StructValue {
	return &StructValue{
		Name: "Vec3",
		Fields: []StructFieldValue{
			{Name: "x", Value: &FloatValue{Value: x}},
			{Name: "y", Value: &FloatValue{Value: y}},
			{Name: "z", Value: &FloatValue{Value: z}},
		},
	}
}

// vec3Components extracts the three components from a Vec3 struct or a
// numeric array of length 3.
func vec3Components(name string, arg Value) (x, y, z float64, err *RuntimeError) {
	switch v := arg.(type) {
	case *StructValue:
		if v.Name != "Vec3" {
			break
		}
		components := [3]float64{}
		for idx, field := range []string{"x", "y", "z"} {
			fv, ok := v.Get(field)
			if !ok {
				return 0, 0, 0, NewRuntimeError(FieldNotFound, "Vec3 has no field %s", field)
			}
			f, cerr := argAsFloat(name, fv)
			if cerr != nil {
				return 0, 0, 0, cerr
			}
			components[idx] = f
		}
		return components[0], components[1], components[2], nil
	case *ArrayValue:
		if len(v.Elements) != 3 {
			return 0, 0, 0, NewRuntimeError(TypeError,
				"%s expects a vector of 3 components, got %d", name, len(v.Elements))
		}
		components := [3]float64{}
		for idx, el := range v.Elements {
			f, cerr := argAsFloat(name, el)
			if cerr != nil {
				return 0, 0, 0, cerr
			}
			components[idx] = f
		}
		return components[0], components[1], components[2], nil
	}
	return 0, 0, 0, NewRuntimeError(TypeError,
		"%s expects a Vec3 or a numeric array of length 3, got %s", name, arg.Type())
}

// builtinVec3 constructs a Vec3 from three numeric components.
func builtinVec3(args []Value) (Value, *RuntimeError) {
	x, err := argAsFloat("vec3", args[0])
	if err != nil {
		return nil, err
	}
	y, err := argAsFloat("vec3", args[1])
	if err != nil {
		return nil, err
	}
	z, err := argAsFloat("vec3", args[2])
	if err != nil {
		return nil, err
	}
	return newVec3(x, y, z), nil
}

// builtinDot returns the dot product of two vectors.
func builtinDot(args []Value) (Value, *RuntimeError) {
	ax, ay, az, err := vec3Components("dot", args[0])
	if err != nil {
		return nil, err
	}
	bx, by, bz, err := vec3Components("dot", args[1])
	if err != nil {
		return nil, err
	}
	return &FloatValue{Value: ax*bx + ay*by + az*bz}, nil
}

// builtinCross returns the cross product of two vectors.
func builtinCross(args []Value) (Value, *RuntimeError) {
	ax, ay, az, err := vec3Components("cross", args[0])
	if err != nil {
		return nil, err
	}
	bx, by, bz, err := vec3Components("cross", args[1])
	if err != nil {
		return nil, err
	}
	return newVec3(ay*bz-az*by, az*bx-ax*bz, ax*by-ay*bx), nil
}

// builtinMagnitude returns the Euclidean length of a vector.
func builtinMagnitude(args []Value) (Value, *RuntimeError) {
	x, y, z, err := vec3Components("magnitude", args[0])
	if err != nil {
		return nil, err
	}
	return &FloatValue{Value: math.Sqrt(x*x + y*y + z*z)}, nil
}

// builtinNormalize returns the unit vector in the argument's direction.
func builtinNormalize(args []Value) (Value, *RuntimeError) {
	x, y, z, err := vec3Components("normalize", args[0])
	if err != nil {
		return nil, err
	}
	length := math.Sqrt(x*x + y*y + z*z)
	if length == 0 {
		return nil, NewRuntimeError(Generic, "cannot normalize a zero vector")
	}
	return newVec3(x/length, y/length, z/length), nil
}
