package hlir

import (
	"github.com/SeppDev/eclipse-sub000/report"
	"github.com/SeppDev/eclipse-sub000/types"
)

// Function is a fully analyzed function.
type Function struct {
	// The source name of the function.
	Name string

	// The codegen key of the function.
	Key string

	// The display path of the file the function is defined in.
	File string

	// The parameters of the function in order.
	Params []*Variable

	// The return type of the function.
	ReturnType types.Type

	// The body of the function.  This is nil for external function
	// declarations.
	Body *Block

	// Every variable of the function keyed by variable key: parameters and
	// locals.
	Variables map[string]*Variable

	// The span of the function's definition.
	Span *report.TextSpan
}

// IsExternal returns whether the function is declared but not defined.
func (fn *Function) IsExternal() bool {
	return fn.Body == nil
}

// Variable is a local variable or parameter.
type Variable struct {
	// The unique key of the variable which replaces its source name.
	Key string

	// The source name of the variable.
	Name string

	// The type of the variable.  For by-reference parameters, this is the
	// reference type.
	Type types.Type

	// Whether the variable may be assigned to.
	Mutable bool

	// Whether the variable is a parameter.
	IsParam bool

	// The span of the variable's declaring name.
	Span *report.TextSpan
}

// -----------------------------------------------------------------------------

// Node is the interface implemented by all HLIR statements and expressions.
type Node interface {
	Span() *report.TextSpan
}

// NodeBase is the base struct of all HLIR nodes.
type NodeBase struct {
	span *report.TextSpan
}

// NewNodeBase creates a new node base with the given span.
func NewNodeBase(span *report.TextSpan) NodeBase {
	return NodeBase{span: span}
}

func (nb NodeBase) Span() *report.TextSpan {
	return nb.span
}

// Expr is the interface implemented by all HLIR expressions.  Every
// expression has a fully determined type.
type Expr interface {
	Node

	Type() types.Type
}

// ExprBase is the base struct of all HLIR expressions.
type ExprBase struct {
	NodeBase

	typ types.Type
}

// NewExprBase creates a new expression base.
func NewExprBase(span *report.TextSpan, typ types.Type) ExprBase {
	return ExprBase{NodeBase: NewNodeBase(span), typ: typ}
}

func (eb ExprBase) Type() types.Type {
	return eb.typ
}
