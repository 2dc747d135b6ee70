package hlir

// VarDecl declares a local variable.
type VarDecl struct {
	NodeBase

	Var *Variable

	// The initializer of the variable.  This may be nil.
	Init Expr
}

// Assign stores a value into a place.  Compound assignments are expanded by
// the analyzer: `x += 1` is `x = x + 1`.
type Assign struct {
	NodeBase

	// The place being assigned.  This must be a place expression.
	Target Expr
	Value  Expr
}

// Return returns from the enclosing function.
type Return struct {
	NodeBase

	// The returned value.  This is nil for `void` returns.
	Value Expr
}

// Break jumps to the end of the enclosing loop.
type Break struct {
	NodeBase

	// The loop being exited.
	Loop *LoopFrame

	// The value the loop produces.  This is nil if the loop has no value.
	Value Expr
}

// Continue jumps to the start of the enclosing loop.
type Continue struct {
	NodeBase

	Loop *LoopFrame
}

// ExprStmt is an expression evaluated for its effects.
type ExprStmt struct {
	NodeBase

	Expr Expr
}

// LoopFrame is the control-flow information of a loop.  Its labels are
// allocated by the analyzer when the loop is entered.
type LoopFrame struct {
	// The label at the start of each iteration.
	Begin string

	// The label after the loop.
	End string

	// The key of the variable holding the loop's value.  This is empty if
	// the loop produces no value.
	ResultKey string
}
