package walk

import (
	"github.com/SeppDev/eclipse-sub000/ast"
	"github.com/SeppDev/eclipse-sub000/hlir"
	"github.com/SeppDev/eclipse-sub000/report"
	"github.com/SeppDev/eclipse-sub000/syntax"
	"github.com/SeppDev/eclipse-sub000/types"
)

// arithOps maps the tokens of arithmetic operators to their HLIR operators.
var arithOps = map[int]int{
	syntax.TOK_PLUS:  hlir.OpAdd,
	syntax.TOK_MINUS: hlir.OpSub,
	syntax.TOK_STAR:  hlir.OpMul,
	syntax.TOK_DIV:   hlir.OpDiv,
	syntax.TOK_MOD:   hlir.OpMod,
}

// bitwiseOps maps the tokens of bitwise operators to their HLIR operators.
var bitwiseOps = map[int]int{
	syntax.TOK_AMP:    hlir.OpBitAnd,
	syntax.TOK_PIPE:   hlir.OpBitOr,
	syntax.TOK_CARET:  hlir.OpBitXor,
	syntax.TOK_LSHIFT: hlir.OpShl,
	syntax.TOK_RSHIFT: hlir.OpShr,
}

// compareOps maps the tokens of comparison operators to their HLIR operators.
var compareOps = map[int]int{
	syntax.TOK_EQ:   hlir.CmpEq,
	syntax.TOK_NEQ:  hlir.CmpNe,
	syntax.TOK_LT:   hlir.CmpLt,
	syntax.TOK_LTEQ: hlir.CmpLe,
	syntax.TOK_GT:   hlir.CmpGt,
	syntax.TOK_GTEQ: hlir.CmpGe,
}

// walkBinary walks a binary operator application.
func (w *Walker) walkBinary(bin *ast.Binary, expected types.Type) hlir.Expr {
	switch bin.Op.Kind {
	case syntax.TOK_LAND, syntax.TOK_LOR:
		lhs := w.walkExpr(bin.Lhs, types.PrimTypeBool)
		w.mustBeBool(lhs)

		rhs := w.walkExpr(bin.Rhs, types.PrimTypeBool)
		w.mustBeBool(rhs)

		op := hlir.LogicalAnd
		if bin.Op.Kind == syntax.TOK_LOR {
			op = hlir.LogicalOr
		}

		return &hlir.Logical{
			ExprBase: hlir.NewExprBase(bin.Span(), types.PrimTypeBool),
			Op:       op,
			Lhs:      lhs,
			Rhs:      rhs,
		}
	}

	if _, ok := compareOps[bin.Op.Kind]; ok {
		lhs, rhs := w.walkOperands(bin.Lhs, bin.Rhs, nil)
		return w.checkCompare(bin.Op, lhs, rhs, bin.Span())
	}

	lhs, rhs := w.walkOperands(bin.Lhs, bin.Rhs, expected)
	return w.checkArith(bin.Op, lhs, rhs, bin.Span())
}

// walkOperands walks the operands of a binary operator.  The type of one
// operand is the expected type of the other: the left operand is walked first
// unless it is a numeric literal and the right operand is not.  This makes
// the literal in `1 + x` take the type of `x`.
func (w *Walker) walkOperands(lhsExpr, rhsExpr ast.Expr, expected types.Type) (hlir.Expr, hlir.Expr) {
	if isNumericLit(lhsExpr) && !isNumericLit(rhsExpr) {
		rhs := w.walkExpr(rhsExpr, expected)
		lhs := w.walkExpr(lhsExpr, rhs.Type())
		return lhs, rhs
	}

	lhs := w.walkExpr(lhsExpr, expected)
	rhs := w.walkExpr(rhsExpr, lhs.Type())
	return lhs, rhs
}

// isNumericLit returns whether an expression is a possibly negated and
// parenthesized numeric literal: an expression with no type of its own.
func isNumericLit(expr ast.Expr) bool {
	switch v := expr.(type) {
	case *ast.Literal:
		return v.Kind == ast.LitInt || v.Kind == ast.LitFloat
	case *ast.Paren:
		return isNumericLit(v.Inner)
	case *ast.Unary:
		return v.Op.Kind == syntax.TOK_MINUS && isNumericLit(v.Operand)
	}

	return false
}

// checkArith checks an arithmetic or bitwise operator application.  Both
// operands must have the same type which is the type of the result.
func (w *Walker) checkArith(op ast.Oper, lhs, rhs hlir.Expr, span *report.TextSpan) hlir.Expr {
	lhsType := lhs.Type()

	hop, ok := arithOps[op.Kind]
	if ok {
		if !types.IsNumeric(lhsType) {
			w.recError(lhs.Span(), "operator `%s` requires numeric operands, but got `%s`", op.Name, lhsType.Repr())
		}
	} else if hop, ok = bitwiseOps[op.Kind]; ok {
		isShift := hop == hlir.OpShl || hop == hlir.OpShr

		if !types.IsIntegral(lhsType) && (isShift || lhsType != types.PrimTypeBool) {
			w.recError(lhs.Span(), "operator `%s` requires integer operands, but got `%s`", op.Name, lhsType.Repr())
		}
	} else {
		report.ReportICE("unknown binary operator: `%s`", op.Name)
	}

	w.mustEqual(lhsType, rhs.Type(), rhs.Span())

	return &hlir.Binary{
		ExprBase: hlir.NewExprBase(span, lhsType),
		Op:       hop,
		Lhs:      lhs,
		Rhs:      rhs,
	}
}

// checkCompare checks a comparison.  Equality is defined on every basic type
// and ordering on numbers and characters.
func (w *Walker) checkCompare(op ast.Oper, lhs, rhs hlir.Expr, span *report.TextSpan) hlir.Expr {
	hop := compareOps[op.Kind]
	lhsType := lhs.Type()

	if hop == hlir.CmpEq || hop == hlir.CmpNe {
		if !types.IsEquatable(lhsType) {
			w.recError(lhs.Span(), "values of type `%s` cannot be compared for equality", lhsType.Repr())
		}
	} else if !types.IsOrdered(lhsType) {
		w.recError(lhs.Span(), "values of type `%s` cannot be ordered", lhsType.Repr())
	}

	w.mustEqual(lhsType, rhs.Type(), rhs.Span())

	return &hlir.Compare{
		ExprBase:    hlir.NewExprBase(span, types.PrimTypeBool),
		Op:          hop,
		OperandType: lhsType,
		Lhs:         lhs,
		Rhs:         rhs,
	}
}

// -----------------------------------------------------------------------------

// walkUnary walks a prefix operator application.
func (w *Walker) walkUnary(un *ast.Unary, expected types.Type) hlir.Expr {
	switch un.Op.Kind {
	case syntax.TOK_MINUS:
		return w.walkNeg(un, expected)
	case syntax.TOK_NOT:
		operand := w.walkExpr(un.Operand, types.PrimTypeBool)
		if operand.Type() != types.PrimTypeBool {
			w.recError(operand.Span(), "operator `!` requires a `bool` operand, but got `%s`", operand.Type().Repr())
		}

		return &hlir.Unary{
			ExprBase: hlir.NewExprBase(un.Span(), types.PrimTypeBool),
			Op:       hlir.OpNot,
			Operand:  operand,
		}
	case syntax.TOK_AMP:
		return w.walkRef(un, expected)
	case syntax.TOK_STAR:
		return w.walkDeref(un)
	}

	report.ReportICE("unknown unary operator: `%s`", un.Op.Name)
	return nil
}

// walkNeg walks a negation.  Negated literals are folded into literals.
func (w *Walker) walkNeg(un *ast.Unary, expected types.Type) hlir.Expr {
	if lit, ok := un.Operand.(*ast.Literal); ok {
		switch lit.Kind {
		case ast.LitInt:
			return w.walkIntLit(lit, un.Span(), expected, true)
		case ast.LitFloat:
			return w.walkFloatLit(lit, un.Span(), expected, true)
		}
	}

	operand := w.walkExpr(un.Operand, expected)
	if !types.IsSigned(operand.Type()) && !types.IsFloating(operand.Type()) {
		w.recError(operand.Span(), "cannot negate a value of type `%s`", operand.Type().Repr())
	}

	return &hlir.Unary{
		ExprBase: hlir.NewExprBase(un.Span(), operand.Type()),
		Op:       hlir.OpNeg,
		Operand:  operand,
	}
}

// walkRef walks a reference operation: `&x` or `&mut x`.  Taking a shared
// reference to a shared reference yields the same reference.  A shared
// reference can never be mutably borrowed through.
func (w *Walker) walkRef(un *ast.Unary, expected types.Type) hlir.Expr {
	var elemExpected types.Type
	if rt, ok := expected.(*types.RefType); ok && rt.Kind != types.RefPointer {
		elemExpected = rt.ElemType
	}

	operand := w.walkExpr(un.Operand, elemExpected)

	if rt, ok := operand.Type().(*types.RefType); ok && rt.Kind == types.RefShared {
		if un.Mutable {
			w.error(un.Span(), "cannot mutably borrow through a shared reference")
		}

		return operand
	}

	typ, err := types.AddReference(operand.Type())
	if err == nil && un.Mutable {
		typ, err = types.ToMutable(typ)

		if hlir.IsPlace(operand) {
			w.checkMutablePlace(operand, "mutably borrow")
		}
	}

	if err != nil {
		w.error(un.Span(), "%s", err)
	}

	return &hlir.Ref{ExprBase: hlir.NewExprBase(un.Span(), typ), Operand: operand}
}

// walkDeref walks a dereference: `*p`.  References are dereferenced and raw
// pointers lose one level of indirection.
func (w *Walker) walkDeref(un *ast.Unary) hlir.Expr {
	operand := w.walkExpr(un.Operand, nil)

	var typ types.Type
	var err error
	if rt, ok := operand.Type().(*types.RefType); ok && rt.Kind == types.RefPointer {
		typ, err = types.RemovePointer(rt)
	} else {
		typ, err = types.Dereference(operand.Type())
	}

	if err != nil {
		w.error(un.Span(), "%s", err)
	}

	return &hlir.Deref{ExprBase: hlir.NewExprBase(un.Span(), typ), Operand: operand}
}
