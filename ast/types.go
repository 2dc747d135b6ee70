package ast

// TypeExpr is the interface implemented by all type labels.
type TypeExpr interface {
	ASTNode

	typeNode()
}

// PrimType is a primitive type label: `i32`, `bool`, `void`, etc.
type PrimType struct {
	ASTBase

	Name string
}

// TupleType is a tuple type label: `(i32, bool)`.  The empty tuple `()` is the
// unit type.
type TupleType struct {
	ASTBase

	Elems []TypeExpr
}

// ArrayType is a fixed-size array type label: `[i32; 4]`.
type ArrayType struct {
	ASTBase

	Elem TypeExpr
	Len  Ident
}

// SliceType is a slice type label: `[i32]`.
type SliceType struct {
	ASTBase

	Elem TypeExpr
}

// RefType is a reference type label: `&T`, `&mut T`, or `&'a T`.
type RefType struct {
	ASTBase

	Mutable bool

	// The lifetime of the reference without its leading quote.  This is empty
	// if no lifetime was specified.
	Lifetime string

	Elem TypeExpr
}

// PointerType is a raw pointer type label: `*T`.
type PointerType struct {
	ASTBase

	Elem TypeExpr
}

// SelfType is the `Self` type label.
type SelfType struct {
	ASTBase
}

// NamedType is a user-defined type label: `Point`, `geom::Point`.
type NamedType struct {
	ASTBase

	Path []Ident
}

func (*PrimType) typeNode()    {}
func (*TupleType) typeNode()   {}
func (*ArrayType) typeNode()   {}
func (*SliceType) typeNode()   {}
func (*RefType) typeNode()     {}
func (*PointerType) typeNode() {}
func (*SelfType) typeNode()    {}
func (*NamedType) typeNode()   {}
