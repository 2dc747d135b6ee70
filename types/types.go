package types

import (
	"strconv"
	"strings"

	"github.com/SeppDev/eclipse-sub000/report"
)

// PointerSize is the size and alignment of references, raw pointers, `usize`
// and `isize` on every supported target.
const PointerSize = 8

// Type represents an Eclipse data type.  Every type seen by the analyzer is
// fully determined: user type paths are replaced by their concrete layouts.
type Type interface {
	// Returns whether this type is equal to the other type.  This should only
	// be called through Equals.
	equals(other Type) bool

	// Returns the size of this type in bytes.
	Size() int

	// Returns the alignment of this type in bytes.
	Align() int

	// Returns the representative string for this type.
	Repr() string
}

// Equals returns whether two types are equal.
func Equals(a, b Type) bool {
	return a.equals(b)
}

// -----------------------------------------------------------------------------

// PrimitiveType represents a primitive type.  This must be one of the
// enumerated primitive type values below.
type PrimitiveType int

// Enumeration of the different primitive types.
const (
	PrimTypeVoid = PrimitiveType(iota)
	PrimTypeNever
	PrimTypeBool
	PrimTypeChar
	PrimTypeStr
	PrimTypeI8
	PrimTypeI16
	PrimTypeI32
	PrimTypeI64
	PrimTypeIsize
	PrimTypeU8
	PrimTypeU16
	PrimTypeU32
	PrimTypeU64
	PrimTypeUsize
	PrimTypeF32
	PrimTypeF64
)

// primNames maps the source spelling of each primitive type to its value.
var primNames = map[string]PrimitiveType{
	"void":  PrimTypeVoid,
	"never": PrimTypeNever,
	"bool":  PrimTypeBool,
	"char":  PrimTypeChar,
	"str":   PrimTypeStr,
	"i8":    PrimTypeI8,
	"i16":   PrimTypeI16,
	"i32":   PrimTypeI32,
	"i64":   PrimTypeI64,
	"isize": PrimTypeIsize,
	"u8":    PrimTypeU8,
	"u16":   PrimTypeU16,
	"u32":   PrimTypeU32,
	"u64":   PrimTypeU64,
	"usize": PrimTypeUsize,
	"f32":   PrimTypeF32,
	"f64":   PrimTypeF64,
}

// LookupPrimitive returns the primitive type with the given source name.
func LookupPrimitive(name string) (PrimitiveType, bool) {
	pt, ok := primNames[name]
	return pt, ok
}

func (pt PrimitiveType) equals(other Type) bool {
	if opt, ok := other.(PrimitiveType); ok {
		return pt == opt
	}

	return false
}

func (pt PrimitiveType) Size() int {
	switch pt {
	case PrimTypeVoid, PrimTypeNever, PrimTypeStr:
		return 0
	case PrimTypeBool, PrimTypeI8, PrimTypeU8:
		return 1
	case PrimTypeI16, PrimTypeU16:
		return 2
	case PrimTypeI32, PrimTypeU32, PrimTypeF32, PrimTypeChar:
		return 4
	default:
		return 8
	}
}

func (pt PrimitiveType) Align() int {
	if size := pt.Size(); size > 0 {
		return size
	}

	return 1
}

func (pt PrimitiveType) Repr() string {
	for name, v := range primNames {
		if v == pt {
			return name
		}
	}

	report.ReportICE("unknown primitive type: %d", int(pt))
	return ""
}

// IsIntegral returns whether this primitive is an integral type.
func (pt PrimitiveType) IsIntegral() bool {
	return PrimTypeI8 <= pt && pt <= PrimTypeUsize
}

// IsSigned returns whether this primitive is a signed integral type.
func (pt PrimitiveType) IsSigned() bool {
	return PrimTypeI8 <= pt && pt <= PrimTypeIsize
}

// IsFloating returns whether this primitive type is a floating-point type.
func (pt PrimitiveType) IsFloating() bool {
	return pt == PrimTypeF32 || pt == PrimTypeF64
}

// BitSize returns the number of bits of an integral, character, or boolean
// primitive.
func (pt PrimitiveType) BitSize() int {
	if pt == PrimTypeBool {
		return 1
	}

	return pt.Size() * 8
}

// -----------------------------------------------------------------------------

// ArrayType represents a fixed-size array type: `[T; N]`.
type ArrayType struct {
	// The element type of the array.
	ElemType Type

	// The number of elements in the array.
	Len int
}

func (at *ArrayType) equals(other Type) bool {
	if oat, ok := other.(*ArrayType); ok {
		return at.Len == oat.Len && Equals(at.ElemType, oat.ElemType)
	}

	return false
}

func (at *ArrayType) Size() int {
	return at.Len * at.ElemType.Size()
}

func (at *ArrayType) Align() int {
	return at.ElemType.Align()
}

func (at *ArrayType) Repr() string {
	return "[" + at.ElemType.Repr() + "; " + strconv.Itoa(at.Len) + "]"
}

// -----------------------------------------------------------------------------

// TupleType represents a tuple type.  Tuple types always have at least two
// elements: the empty tuple is `void` and a single element tuple is its
// element.
type TupleType struct {
	// The element types of the tuple.
	ElementTypes []Type

	// The memoized layout of the tuple.
	layout *fieldLayout
}

// NewTupleType creates a new tuple type from its element types: it returns
// `void` for no elements and the element itself for a single element.
func NewTupleType(elemTypes []Type) Type {
	switch len(elemTypes) {
	case 0:
		return PrimTypeVoid
	case 1:
		return elemTypes[0]
	default:
		return &TupleType{ElementTypes: elemTypes}
	}
}

func (tt *TupleType) equals(other Type) bool {
	if ott, ok := other.(*TupleType); ok {
		if len(tt.ElementTypes) != len(ott.ElementTypes) {
			return false
		}

		for i, elemType := range tt.ElementTypes {
			if !Equals(elemType, ott.ElementTypes[i]) {
				return false
			}
		}

		return true
	}

	return false
}

func (tt *TupleType) getLayout() *fieldLayout {
	if tt.layout == nil {
		tt.layout = computeLayout(tt.ElementTypes)
	}

	return tt.layout
}

func (tt *TupleType) Size() int {
	return tt.getLayout().size
}

func (tt *TupleType) Align() int {
	return tt.getLayout().align
}

// Offset returns the byte offset of the element at index n.
func (tt *TupleType) Offset(n int) int {
	return tt.getLayout().offsets[n]
}

func (tt *TupleType) Repr() string {
	sb := strings.Builder{}

	sb.WriteRune('(')

	for i, elemType := range tt.ElementTypes {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(elemType.Repr())
	}

	sb.WriteRune(')')

	return sb.String()
}

// -----------------------------------------------------------------------------

// fieldLayout is the computed memory layout of a sequence of fields.
type fieldLayout struct {
	offsets []int
	size    int
	align   int
}

// computeLayout lays out a sequence of fields in order such that every field
// is aligned to its own alignment.  The alignment of the whole is the maximum
// field alignment and its size is rounded up to a multiple of it.
func computeLayout(fieldTypes []Type) *fieldLayout {
	layout := &fieldLayout{
		offsets: make([]int, len(fieldTypes)),
		align:   1,
	}

	size := 0
	for i, fieldType := range fieldTypes {
		fieldAlign := fieldType.Align()

		size = AlignUp(size, fieldAlign)
		layout.offsets[i] = size
		size += fieldType.Size()

		if fieldAlign > layout.align {
			layout.align = fieldAlign
		}
	}

	layout.size = AlignUp(size, layout.align)
	return layout
}

// AlignUp rounds n up to the next multiple of align.
func AlignUp(n, align int) int {
	if align <= 1 || n%align == 0 {
		return n
	}

	return n + align - n%align
}
