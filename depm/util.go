package depm

import (
	"github.com/SeppDev/eclipse-sub000/ast"
	"github.com/SeppDev/eclipse-sub000/report"
)

// duplicateImport builds the diagnostic for a module imported twice by the
// same file.
func duplicateImport(file string, imp, prev ast.Ident) *report.Diagnostic {
	return &report.Diagnostic{
		Severity: report.SeverityError,
		Title:    "module `" + imp.Value + "` imported multiple times",
		File:     file,
		Span:     imp.Span,
		Secondary: []report.Label{
			{Span: prev.Span, Message: "first imported here"},
		},
	}
}

// raiseDuplicate panics with the error for a name defined twice in the same
// module.
func raiseDuplicate(kind string, name ast.Ident, prevSpan *report.TextSpan) {
	panic(report.Raise(name.Span, "%s `%s` defined multiple times", kind, name.Value).
		WithLabel(prevSpan, "previous definition here"))
}
