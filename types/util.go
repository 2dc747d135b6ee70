package types

// IsVoid returns whether the type is `void` or `never`: types with no value.
func IsVoid(typ Type) bool {
	pt, ok := typ.(PrimitiveType)
	return ok && (pt == PrimTypeVoid || pt == PrimTypeNever)
}

// IsBasic returns whether the type is passed and returned in a register:
// integers, floats, booleans, characters, references, and pointers.
func IsBasic(typ Type) bool {
	switch v := typ.(type) {
	case PrimitiveType:
		return v != PrimTypeVoid && v != PrimTypeNever && v != PrimTypeStr
	case *RefType:
		return true
	}

	return false
}

// IsAggregate returns whether the type lives at an address: arrays, tuples,
// structs, and enums.
func IsAggregate(typ Type) bool {
	switch typ.(type) {
	case *ArrayType, *TupleType, *StructType, *EnumType:
		return true
	}

	return false
}

// IsIntegral returns whether the type is an integral type.
func IsIntegral(typ Type) bool {
	pt, ok := typ.(PrimitiveType)
	return ok && pt.IsIntegral()
}

// IsSigned returns whether the type is a signed integral type.
func IsSigned(typ Type) bool {
	pt, ok := typ.(PrimitiveType)
	return ok && pt.IsSigned()
}

// IsFloating returns whether the type is a floating-point type.
func IsFloating(typ Type) bool {
	pt, ok := typ.(PrimitiveType)
	return ok && pt.IsFloating()
}

// IsNumeric returns whether the type is integral or floating-point.
func IsNumeric(typ Type) bool {
	return IsIntegral(typ) || IsFloating(typ)
}

// IsOrdered returns whether values of the type can be compared with `<` and
// friends: numbers and characters.
func IsOrdered(typ Type) bool {
	return IsNumeric(typ) || typ == PrimTypeChar
}

// IsEquatable returns whether values of the type can be compared with `==`
// and `!=`: every basic type.
func IsEquatable(typ Type) bool {
	return IsBasic(typ)
}

// IntRange returns the inclusive range of values of an integral primitive.
// Unsigned maximums beyond the range of int64 are clamped.
func IntRange(pt PrimitiveType) (min int64, max uint64) {
	bits := pt.BitSize()

	if pt.IsSigned() {
		return -(1 << (bits - 1)), 1<<(bits-1) - 1
	}

	if bits == 64 {
		return 0, ^uint64(0)
	}

	return 0, 1<<bits - 1
}
