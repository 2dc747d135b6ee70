package types

import "fmt"

// RefKind is the reference state of a reference type.  This must be one of the
// enumerated reference kinds.
type RefKind int

// Enumeration of reference kinds.  A type which is not a RefType has no
// reference state.
const (
	RefShared RefKind = iota
	RefMutable
	RefPointer
)

// RefType represents a type with a reference state: a shared reference `&T`,
// a mutable reference `&mut T`, or a raw pointer `*T` of some pointer count.
// Repeated raw pointers are counted rather than nested.
type RefType struct {
	// The type referred to.  This is never itself a RefType.
	ElemType Type

	// The reference state of the type.
	Kind RefKind

	// The number of pointer indirections of a raw pointer.  This is always at
	// least 1 for raw pointers and 0 otherwise.
	Pointers int
}

func (rt *RefType) equals(other Type) bool {
	if ort, ok := other.(*RefType); ok {
		return rt.Kind == ort.Kind && rt.Pointers == ort.Pointers && Equals(rt.ElemType, ort.ElemType)
	}

	return false
}

func (rt *RefType) Size() int {
	return PointerSize
}

func (rt *RefType) Align() int {
	return PointerSize
}

func (rt *RefType) Repr() string {
	switch rt.Kind {
	case RefShared:
		return "&" + rt.ElemType.Repr()
	case RefMutable:
		return "&mut " + rt.ElemType.Repr()
	default:
		repr := rt.ElemType.Repr()
		for i := 0; i < rt.Pointers; i++ {
			repr = "*" + repr
		}

		return repr
	}
}

// -----------------------------------------------------------------------------

// RefError is returned when a reference operation is applied to a type in a
// reference state it is not defined for.
type RefError struct {
	Op   string
	Type Type
}

func (re *RefError) Error() string {
	return fmt.Sprintf("cannot %s type `%s`", re.Op, re.Type.Repr())
}

// AddReference makes a shared reference to a type.  This is valid for types
// with no reference state and for shared references (which are unchanged).
func AddReference(typ Type) (Type, error) {
	rt, ok := typ.(*RefType)
	if !ok {
		return &RefType{ElemType: typ, Kind: RefShared}, nil
	} else if rt.Kind == RefShared {
		return rt, nil
	}

	return nil, &RefError{Op: "take a reference to", Type: typ}
}

// ToMutable converts any reference or pointer to a mutable reference.
func ToMutable(typ Type) (Type, error) {
	if rt, ok := typ.(*RefType); ok {
		return &RefType{ElemType: rt.ElemType, Kind: RefMutable}, nil
	}

	return nil, &RefError{Op: "make mutable", Type: typ}
}

// AddPointer adds a level of raw pointer indirection to a type with no
// reference state or which is already a raw pointer.
func AddPointer(typ Type) (Type, error) {
	rt, ok := typ.(*RefType)
	if !ok {
		return &RefType{ElemType: typ, Kind: RefPointer, Pointers: 1}, nil
	} else if rt.Kind == RefPointer {
		return &RefType{ElemType: rt.ElemType, Kind: RefPointer, Pointers: rt.Pointers + 1}, nil
	}

	return nil, &RefError{Op: "take a pointer to", Type: typ}
}

// RemovePointer removes a level of raw pointer indirection.
func RemovePointer(typ Type) (Type, error) {
	if rt, ok := typ.(*RefType); ok && rt.Kind == RefPointer {
		if rt.Pointers == 1 {
			return rt.ElemType, nil
		}

		return &RefType{ElemType: rt.ElemType, Kind: RefPointer, Pointers: rt.Pointers - 1}, nil
	}

	return nil, &RefError{Op: "remove a pointer from", Type: typ}
}

// Dereference removes a shared or mutable reference.
func Dereference(typ Type) (Type, error) {
	if rt, ok := typ.(*RefType); ok && rt.Kind != RefPointer {
		return rt.ElemType, nil
	}

	return nil, &RefError{Op: "dereference", Type: typ}
}
