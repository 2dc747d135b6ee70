package ast

import (
	"github.com/SeppDev/eclipse-sub000/common"
	"github.com/SeppDev/eclipse-sub000/report"
)

// The abstract interface for all AST nodes.
type ASTNode interface {
	// The text span of the AST.
	Span() *report.TextSpan
}

// A utility base struct for all AST nodes.
type ASTBase struct {
	// The span over which the AST node occurs.
	span *report.TextSpan
}

// NewASTBaseOn creates a new AST base with the given span.
func NewASTBaseOn(span *report.TextSpan) ASTBase {
	return ASTBase{span: span}
}

// NewASTBaseOver creates a new AST base spanning over two spans.
func NewASTBaseOver(start, end *report.TextSpan) ASTBase {
	return ASTBase{span: report.SpanOver(start, end)}
}

func (ab ASTBase) Span() *report.TextSpan {
	return ab.span
}

// Ident is a located identifier name.
type Ident = common.Located[string]

// -----------------------------------------------------------------------------

// File is the AST of a single parsed source file.
type File struct {
	// The path of the file relative to the project root.
	Path common.Path

	// The top-level items of the file: function definitions, type
	// definitions, and use declarations.
	Items []ASTNode

	// The names imported by the file in the order they were declared.
	Imports []Ident
}
