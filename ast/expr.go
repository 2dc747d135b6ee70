package ast

import "github.com/SeppDev/eclipse-sub000/report"

// Expr is the interface implemented by all expression nodes.
type Expr interface {
	ASTNode

	exprNode()
}

// Enumeration of literal kinds.
const (
	LitInt = iota
	LitFloat
	LitBool
	LitString
	LitChar
)

// Literal is a single literal value.
type Literal struct {
	ASTBase

	// The kind of the literal.  This must be one of the enumerated literal
	// kinds.
	Kind int

	// The source text of the literal.  String and character literals keep
	// their quotes.
	Value string
}

// Identifier is a named value.
type Identifier struct {
	ASTBase

	Name string
}

// PathExpr is a `::` qualified path: `io::print`, `Color::Red`.  The first
// component may be `self` or `super`.
type PathExpr struct {
	ASTBase

	Components []Ident
}

// Oper is an operator used in the AST.
type Oper struct {
	// The token kind of the operator.
	Kind int

	// The spelling of the operator.
	Name string

	Span *report.TextSpan
}

// Unary is a prefix operator application: `-`, `!`, `&` or `*`.
type Unary struct {
	ASTBase

	Op Oper

	// Whether a `&` operator is a mutable reference: `&mut x`.
	Mutable bool

	Operand Expr
}

// Binary is a binary operator application.
type Binary struct {
	ASTBase

	Op  Oper
	Lhs Expr
	Rhs Expr
}

// Call is a function call expression.
type Call struct {
	ASTBase

	Func Expr
	Args []Expr
}

// Field is a field access expression: `x.f` or `t.0`.
type Field struct {
	ASTBase

	Root Expr
	Name Ident
}

// Index is an array index expression: `a[i]`.
type Index struct {
	ASTBase

	Root  Expr
	Index Expr
}

// Tuple is a tuple of zero or at least two elements.  The empty tuple is the
// unit value.
type Tuple struct {
	ASTBase

	Elems []Expr
}

// Paren is a single parenthesized expression.
type Paren struct {
	ASTBase

	Inner Expr
}

// ArrayLit is an array literal: `[1, 2, 3]`.
type ArrayLit struct {
	ASTBase

	Elems []Expr
}

// StructLit is a structure literal: `Point { x: 1, y: 2 }`.
type StructLit struct {
	ASTBase

	TypePath []Ident
	Fields   []*FieldInit
}

// FieldInit is a single field initializer of a structure literal.
type FieldInit struct {
	ASTBase

	Name  Ident
	Value Expr
}

// Block is a braced sequence of statements.  It is an expression: its value is
// the value of its final expression statement.
type Block struct {
	ASTBase

	Stmts []ASTNode
}

// If is a conditional with an optional else-if chain and else block.
type If struct {
	ASTBase

	// The `if` branch followed by every `else if` branch.
	Branches []*CondBranch

	// The else block.  This may be nil.
	Else *Block
}

// CondBranch is a condition and its body.
type CondBranch struct {
	ASTBase

	Cond Expr
	Body *Block
}

// While is a conditional loop.
type While struct {
	ASTBase

	Cond Expr
	Body *Block
}

// Loop is an unconditional loop.
type Loop struct {
	ASTBase

	Body *Block
}

func (*Literal) exprNode()    {}
func (*Identifier) exprNode() {}
func (*PathExpr) exprNode()   {}
func (*Unary) exprNode()      {}
func (*Binary) exprNode()     {}
func (*Call) exprNode()       {}
func (*Field) exprNode()      {}
func (*Index) exprNode()      {}
func (*Tuple) exprNode()      {}
func (*Paren) exprNode()      {}
func (*ArrayLit) exprNode()   {}
func (*StructLit) exprNode()  {}
func (*Block) exprNode()      {}
func (*If) exprNode()         {}
func (*While) exprNode()      {}
func (*Loop) exprNode()       {}
