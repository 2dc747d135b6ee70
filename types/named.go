package types

import "github.com/SeppDev/eclipse-sub000/report"

// NamedType represents a user-defined type: a struct or an enum.
type NamedType interface {
	Type

	// The named type's name.
	Name() string

	// The key of the module the named type is defined in.
	ModuleKey() string

	// The span of the name of the named type's definition.
	DefSpan() *report.TextSpan

	// Color returns the color associated with this named type.  See the
	// infinite type checker for more information.
	Color() Color

	// SetColor sets the color of the named type.
	SetColor(color Color)
}

// Color is a special value associated with every named type.  Must be one of
// the enumerated color values.  See the infinite type checker for more
// information.
type Color byte

// Enumeration of possible named type colors.
const (
	ColorWhite Color = iota
	ColorGrey
	ColorBlack
)

// -----------------------------------------------------------------------------

// NamedTypeBase is the base type for all named types: structs and enums.
type NamedTypeBase struct {
	// The named type's name.
	name string

	// The key of the module the named type is defined in.
	moduleKey string

	// The span of the name in the type's definition.
	defSpan *report.TextSpan

	// The color associated with the named type.
	color Color
}

// NewNamedTypeBase creates a new named type base.
func NewNamedTypeBase(name, moduleKey string, defSpan *report.TextSpan) NamedTypeBase {
	return NamedTypeBase{
		name:      name,
		moduleKey: moduleKey,
		defSpan:   defSpan,
		color:     ColorWhite,
	}
}

func (nt *NamedTypeBase) equals(other Type) bool {
	if ont, ok := other.(NamedType); ok {
		return nt.name == ont.Name() && nt.moduleKey == ont.ModuleKey()
	}

	return false
}

func (nt *NamedTypeBase) Repr() string {
	return nt.name
}

func (nt *NamedTypeBase) Name() string {
	return nt.name
}

func (nt *NamedTypeBase) ModuleKey() string {
	return nt.moduleKey
}

func (nt *NamedTypeBase) DefSpan() *report.TextSpan {
	return nt.defSpan
}

func (nt *NamedTypeBase) Color() Color {
	return nt.color
}

func (nt *NamedTypeBase) SetColor(color Color) {
	nt.color = color
}

// -----------------------------------------------------------------------------

// StructType represents a structure type.
type StructType struct {
	NamedTypeBase

	// The list of fields of the struct in order.
	Fields []StructField

	// A mapping between field names and their index within the struct.
	Indices map[string]int

	// The memoized struct layout.
	layout *fieldLayout
}

// StructField represents a field of a structure type.
type StructField struct {
	// The field's name.
	Name string

	// The field's type.
	Type Type

	// The span of the field's name in its declaration.
	Span *report.TextSpan
}

// NewStructType creates a new struct type with no fields.  The fields are
// added once every named type of the program is known.
func NewStructType(name, moduleKey string, defSpan *report.TextSpan) *StructType {
	return &StructType{
		NamedTypeBase: NewNamedTypeBase(name, moduleKey, defSpan),
		Indices:       make(map[string]int),
	}
}

// AddField appends a field to the struct.  It returns false if a field of the
// same name already exists.
func (st *StructType) AddField(field StructField) bool {
	if _, ok := st.Indices[field.Name]; ok {
		return false
	}

	st.Indices[field.Name] = len(st.Fields)
	st.Fields = append(st.Fields, field)
	return true
}

func (st *StructType) getLayout() *fieldLayout {
	if st.layout == nil {
		fieldTypes := make([]Type, len(st.Fields))
		for i, field := range st.Fields {
			fieldTypes[i] = field.Type
		}

		st.layout = computeLayout(fieldTypes)
	}

	return st.layout
}

func (st *StructType) Size() int {
	return st.getLayout().size
}

func (st *StructType) Align() int {
	return st.getLayout().align
}

// Offset returns the byte offset of the field at index n.
func (st *StructType) Offset(n int) int {
	return st.getLayout().offsets[n]
}

// GetFieldByName returns the struct field corresponding to the given name if it
// exists in the struct along with its index.
func (st *StructType) GetFieldByName(name string) (StructField, int, bool) {
	if index, ok := st.Indices[name]; ok {
		return st.Fields[index], index, true
	}

	return StructField{}, -1, false
}

// -----------------------------------------------------------------------------

// EnumType represents an enumerated type.  An enum value is laid out as its
// tag followed by the payload of its variant: the size of the enum is that of
// the tag plus the largest payload.
type EnumType struct {
	NamedTypeBase

	// The variants of the enum in declaration order.  The tag of a variant is
	// its index.
	Variants []*EnumVariant

	// A mapping between variant names and their index.
	Indices map[string]int
}

// EnumVariant is a single variant of an enum type.
type EnumVariant struct {
	// The variant's name.
	Name string

	// The payload of the variant.  This is `void` for unit variants, and a
	// struct type (named after the variant) for struct-like variants.
	Payload Type

	// The payload element types of a tuple variant.  This is nil for unit and
	// struct-like variants.
	TupleElems []Type

	Span *report.TextSpan
}

// NewEnumType creates a new enum type with no variants.
func NewEnumType(name, moduleKey string, defSpan *report.TextSpan) *EnumType {
	return &EnumType{
		NamedTypeBase: NewNamedTypeBase(name, moduleKey, defSpan),
		Indices:       make(map[string]int),
	}
}

// AddVariant appends a variant to the enum.  It returns false if a variant of
// the same name already exists.
func (et *EnumType) AddVariant(variant *EnumVariant) bool {
	if _, ok := et.Indices[variant.Name]; ok {
		return false
	}

	et.Indices[variant.Name] = len(et.Variants)
	et.Variants = append(et.Variants, variant)
	return true
}

// GetVariant returns the variant with the given name and its tag.
func (et *EnumType) GetVariant(name string) (*EnumVariant, int, bool) {
	if index, ok := et.Indices[name]; ok {
		return et.Variants[index], index, true
	}

	return nil, -1, false
}

// TagType returns the type of the enum's tag: `u8` for up to 256 variants and
// `u32` beyond.
func (et *EnumType) TagType() PrimitiveType {
	if len(et.Variants) <= 256 {
		return PrimTypeU8
	}

	return PrimTypeU32
}

// PayloadOffset returns the byte offset of the payload within an enum value.
func (et *EnumType) PayloadOffset() int {
	return AlignUp(et.TagType().Size(), et.payloadAlign())
}

func (et *EnumType) payloadAlign() int {
	align := 1
	for _, variant := range et.Variants {
		if a := variant.Payload.Align(); a > align {
			align = a
		}
	}

	return align
}

func (et *EnumType) Size() int {
	maxPayload := 0
	for _, variant := range et.Variants {
		if size := variant.Payload.Size(); size > maxPayload {
			maxPayload = size
		}
	}

	return AlignUp(et.PayloadOffset()+maxPayload, et.Align())
}

func (et *EnumType) Align() int {
	if tagAlign := et.TagType().Align(); tagAlign > et.payloadAlign() {
		return tagAlign
	}

	return et.payloadAlign()
}
