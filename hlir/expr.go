package hlir

import "github.com/SeppDev/eclipse-sub000/types"

// IntLit is an integer or character literal.  Negative values are stored
// sign-extended; unsigned 64-bit values are stored by their bits.
type IntLit struct {
	ExprBase

	Value int64
}

// FloatLit is a floating-point literal.
type FloatLit struct {
	ExprBase

	Value float64
}

// BoolLit is a boolean literal.
type BoolLit struct {
	ExprBase

	Value bool
}

// StringLit is a string literal.  Its value is the decoded string contents.
// It has type `&str`.
type StringLit struct {
	ExprBase

	Value string
}

// VarRef is a reference to a local variable or parameter.
type VarRef struct {
	ExprBase

	Var *Variable
}

// Enumeration of unary operators.
const (
	OpNeg = iota
	OpNot
)

// Unary is a negation or logical not.
type Unary struct {
	ExprBase

	// The unary operator.  This must be one of the enumerated unary
	// operators.
	Op int

	Operand Expr
}

// Enumeration of binary operators.
const (
	OpAdd = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
)

// Binary is an arithmetic or bitwise binary operation.  Both operands and
// the result have the same type.
type Binary struct {
	ExprBase

	// The binary operator.  This must be one of the enumerated binary
	// operators.
	Op int

	Lhs, Rhs Expr
}

// Enumeration of comparison operators.
const (
	CmpEq = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

// Compare is a comparison.  Its type is always `bool`.
type Compare struct {
	ExprBase

	// The comparison operator.  This must be one of the enumerated
	// comparison operators.
	Op int

	// The type of both operands.
	OperandType types.Type

	Lhs, Rhs Expr
}

// Enumeration of logical operators.
const (
	LogicalAnd = iota
	LogicalOr
)

// Logical is a short-circuiting logical operation.
type Logical struct {
	ExprBase

	Op       int
	Lhs, Rhs Expr
}

// Ref takes the address of a place: `&x`, `&mut x`.  Operands which are not
// places are first stored in a temporary.
type Ref struct {
	ExprBase

	Operand Expr
}

// Deref loads through a reference or pointer: `*p`.  It is a place.
type Deref struct {
	ExprBase

	Operand Expr
}

// Call is a direct function call.
type Call struct {
	ExprBase

	// The codegen key of the called function.
	FuncKey string

	// The arguments of the call.  By-reference arguments are already wrapped
	// in Ref nodes.
	Args []Expr
}

// FieldAccess accesses a field of a struct or tuple place or value.  It is a
// place if its root is.
type FieldAccess struct {
	ExprBase

	Root Expr

	// The index and byte offset of the field.
	Index  int
	Offset int
}

// IndexAccess accesses an element of an array.  It is a place if its root is.
type IndexAccess struct {
	ExprBase

	Root  Expr
	Index Expr
}

// TupleLit constructs a tuple.
type TupleLit struct {
	ExprBase

	Elems []Expr
}

// ArrayLit constructs an array.
type ArrayLit struct {
	ExprBase

	Elems []Expr
}

// StructLit constructs a struct.  The fields are in declaration order.
type StructLit struct {
	ExprBase

	Fields []Expr
}

// EnumLit constructs an enum value from its tag and payload.
type EnumLit struct {
	ExprBase

	Tag int

	// The payload of the variant.  This is nil for unit variants.
	Payload Expr
}

// Block is a sequence of statements and an optional final value.
type Block struct {
	ExprBase

	Stmts []Node

	// The value of the block.  This is nil if the block has no value.
	Value Expr
}

// CondBranch is a condition and its body.
type CondBranch struct {
	Cond Expr
	Body *Block
}

// If is a conditional.  It has a value only if it has an else block and all
// its branches agree on a type.
type If struct {
	ExprBase

	Branches []*CondBranch

	// This may be nil.
	Else *Block
}

// While is a conditional loop.  It has no value.
type While struct {
	ExprBase

	Frame *LoopFrame
	Cond  Expr
	Body  *Block
}

// Loop is an unconditional loop.  Its value is given by `break` statements.
type Loop struct {
	ExprBase

	Frame *LoopFrame
	Body  *Block
}

// -----------------------------------------------------------------------------

// IsPlace returns whether an expression denotes a memory location.
func IsPlace(expr Expr) bool {
	switch v := expr.(type) {
	case *VarRef, *Deref:
		return true
	case *FieldAccess:
		return IsPlace(v.Root)
	case *IndexAccess:
		return IsPlace(v.Root)
	}

	return false
}
