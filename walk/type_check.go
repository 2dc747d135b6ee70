package walk

import (
	"github.com/SeppDev/eclipse-sub000/hlir"
	"github.com/SeppDev/eclipse-sub000/report"
	"github.com/SeppDev/eclipse-sub000/types"
)

// mustEqual asserts that an inferred type equals its expected type.  A
// mismatch is a recoverable error: the inferred type is kept so that later
// nodes still check meaningfully.  `never` is equal to every type.
func (w *Walker) mustEqual(expected, actual types.Type, span *report.TextSpan) bool {
	if expected == nil || isNever(actual) || types.Equals(expected, actual) {
		return true
	}

	w.recError(span, "mismatched types: expected `%s`, but got `%s`", expected.Repr(), actual.Repr())
	return false
}

// mustBeBool asserts that an expression is a boolean.
func (w *Walker) mustBeBool(expr hlir.Expr) {
	w.mustEqual(types.PrimTypeBool, expr.Type(), expr.Span())
}

// isNever returns whether a type is the type of expressions which never
// produce a value: `return`, `break`, infinite loops.
func isNever(typ types.Type) bool {
	return typ == types.PrimTypeNever
}

// unifyBranches returns the common type of two branch types: `never` yields
// to the other type.
func unifyBranches(a, b types.Type) types.Type {
	if a == nil || isNever(a) {
		return b
	}

	return a
}

// autoDeref dereferences an expression until it is no longer a shared or
// mutable reference.  Raw pointers are never dereferenced implicitly.
func autoDeref(expr hlir.Expr) hlir.Expr {
	for {
		rt, ok := expr.Type().(*types.RefType)
		if !ok || rt.Kind == types.RefPointer {
			return expr
		}

		expr = &hlir.Deref{
			ExprBase: hlir.NewExprBase(expr.Span(), rt.ElemType),
			Operand:  expr,
		}
	}
}

// expectedElems returns the element types of an expected tuple type of the
// given length.  It returns nil if the expected type is not such a tuple.
func expectedElems(expected types.Type, n int) []types.Type {
	if tt, ok := expected.(*types.TupleType); ok && len(tt.ElementTypes) == n {
		return tt.ElementTypes
	}

	return nil
}
