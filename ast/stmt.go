package ast

// VarDecl is a variable declaration: `var mut x: i32 = 5`.
type VarDecl struct {
	ASTBase

	Mutable bool
	Name    Ident

	// The declared type of the variable.  This may be nil if the type is to be
	// inferred from the initializer.
	Type TypeExpr

	// The initializer of the variable.  This may be nil.
	Init Expr
}

// Assign is an assignment statement.  The operator is `=` or one of the
// compound assignment operators.
type Assign struct {
	ASTBase

	Target Expr
	Op     Oper
	Value  Expr
}

// Return is a return statement.  The value may be nil.
type Return struct {
	ASTBase

	Value Expr
}

// Break is a break statement.  The value may be nil.
type Break struct {
	ASTBase

	Value Expr
}

// Continue is a continue statement.  The value may be nil.
type Continue struct {
	ASTBase

	Value Expr
}
