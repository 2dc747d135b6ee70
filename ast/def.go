package ast

// Modifier is a single item modifier: `pub`, `static`, `async`, `unsafe`, or
// `extern "abi"`.
type Modifier struct {
	ASTBase

	// The token kind of the modifier keyword.
	Kind int

	// The ABI string of an `extern` modifier without its quotes.
	Value string
}

// Modifiers is the list of modifiers attached to an item.
type Modifiers []Modifier

// Has returns the modifier of the given kind if it is present.
func (ms Modifiers) Has(kind int) (Modifier, bool) {
	for _, m := range ms {
		if m.Kind == kind {
			return m, true
		}
	}

	return Modifier{}, false
}

// -----------------------------------------------------------------------------

// FuncDef is a function definition.
type FuncDef struct {
	ASTBase

	Modifiers Modifiers
	Name      Ident
	Params    []*Param

	// The return type of the function.  This is nil if the return type was
	// omitted: the function returns `void`.
	ReturnType TypeExpr

	// The body of the function.  This is nil for external functions.
	Body *Block
}

// Param is a function parameter.
type Param struct {
	ASTBase

	// Whether the parameter is passed by reference: `&x i32`.
	ByRef bool

	Mutable bool
	Name    Ident
	Type    TypeExpr
}

// StructDef is a structure type definition.
type StructDef struct {
	ASTBase

	Modifiers Modifiers
	Name      Ident
	Fields    []*FieldDecl
}

// FieldDecl is a named, typed field of a structure or a struct-like variant.
type FieldDecl struct {
	ASTBase

	Name Ident
	Type TypeExpr
}

// EnumDef is an enumerated type definition.
type EnumDef struct {
	ASTBase

	Modifiers Modifiers
	Name      Ident
	Variants  []*Variant
}

// Enumeration of variant kinds.
const (
	VariantUnit   = iota // A variant with no payload: `A`.
	VariantTuple         // A variant with a tuple payload: `B(i32, bool)`.
	VariantStruct        // A variant with named fields: `C { x: i32 }`.
)

// Variant is a single variant of an enumerated type.
type Variant struct {
	ASTBase

	Name Ident

	// The kind of the variant.  This must be one of the enumerated variant
	// kinds.
	Kind int

	// The payload types of a tuple variant.
	Payload []TypeExpr

	// The fields of a struct-like variant.
	Fields []*FieldDecl
}

// UseDecl is a `use` declaration.
type UseDecl struct {
	ASTBase

	Tree *UseTree
}

// UseTree is one node of the path tree of a `use` declaration.  For example,
// `use a::b::{c, d::e}` has the prefix `a::b` and two children, `c` and
// `d::e`.
type UseTree struct {
	ASTBase

	Prefix []Ident

	// The sub-trees of the tree.  If this is empty, then the tree is a leaf
	// and its prefix names the used item.
	Children []*UseTree
}

// Flatten returns every full path named by the tree.
func (ut *UseTree) Flatten() [][]Ident {
	if len(ut.Children) == 0 {
		return [][]Ident{ut.Prefix}
	}

	var paths [][]Ident
	for _, child := range ut.Children {
		for _, childPath := range child.Flatten() {
			path := make([]Ident, 0, len(ut.Prefix)+len(childPath))
			path = append(path, ut.Prefix...)
			path = append(path, childPath...)
			paths = append(paths, path)
		}
	}

	return paths
}
