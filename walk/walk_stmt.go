package walk

import (
	"github.com/SeppDev/eclipse-sub000/ast"
	"github.com/SeppDev/eclipse-sub000/hlir"
	"github.com/SeppDev/eclipse-sub000/report"
	"github.com/SeppDev/eclipse-sub000/syntax"
	"github.com/SeppDev/eclipse-sub000/types"
)

// walkStmt walks a statement.
func (w *Walker) walkStmt(stmt ast.ASTNode) hlir.Node {
	switch v := stmt.(type) {
	case *ast.VarDecl:
		return w.walkVarDecl(v)
	case *ast.Assign:
		return w.walkAssign(v)
	case *ast.Return:
		return w.walkReturn(v)
	case *ast.Break:
		return w.walkBreak(v)
	case *ast.Continue:
		return w.walkContinue(v)
	case *ast.If:
		return &hlir.ExprStmt{NodeBase: hlir.NewNodeBase(v.Span()), Expr: w.walkIf(v, nil, false)}
	case *ast.Block:
		return &hlir.ExprStmt{NodeBase: hlir.NewNodeBase(v.Span()), Expr: w.walkBlock(v, nil, false)}
	case ast.Expr:
		return &hlir.ExprStmt{NodeBase: hlir.NewNodeBase(v.Span()), Expr: w.walkExpr(v, nil)}
	}

	report.ReportICE("unknown statement: %T", stmt)
	return nil
}

// walkVarDecl walks a local variable declaration.  The variable is declared
// after its initializer is walked: `var x = x + 1` refers to an outer `x`.
func (w *Walker) walkVarDecl(vd *ast.VarDecl) hlir.Node {
	var declType types.Type
	if vd.Type != nil {
		declType = w.table.ResolveType(w.mt, vd.Type)
	}

	var init hlir.Expr
	if vd.Init != nil {
		init = w.walkExpr(vd.Init, declType)

		if declType == nil {
			declType = init.Type()
		} else {
			w.mustEqual(declType, init.Type(), init.Span())
		}
	} else if declType == nil {
		w.error(vd.Name.Span, "cannot infer the type of `%s`: add a type label or an initializer", vd.Name.Value)
	} else if !vd.Mutable {
		w.warn(vd.Name.Span, "immutable variable `%s` is never initialized", vd.Name.Value)
	}

	if types.IsVoid(declType) {
		w.recError(vd.Name.Span, "variable `%s` cannot have type `%s`", vd.Name.Value, declType.Repr())
	}

	v := &hlir.Variable{
		Key:     w.ctx.Names.Next(),
		Name:    vd.Name.Value,
		Type:    declType,
		Mutable: vd.Mutable,
		Span:    vd.Name.Span,
	}
	w.defineLocal(v)

	return &hlir.VarDecl{NodeBase: hlir.NewNodeBase(vd.Span()), Var: v, Init: init}
}

// walkAssign walks an assignment statement.  Compound assignments are
// expanded into a binary operation on the target.
func (w *Walker) walkAssign(as *ast.Assign) hlir.Node {
	target := w.walkExpr(as.Target, nil)

	if !hlir.IsPlace(target) {
		w.error(target.Span(), "cannot assign to this expression")
	}

	w.checkMutablePlace(target, "mutate")

	var value hlir.Expr
	if opKind := syntax.CompoundOpOf(as.Op.Kind); opKind != -1 {
		rhs := w.walkExpr(as.Value, target.Type())

		op := ast.Oper{Kind: opKind, Name: as.Op.Name[:len(as.Op.Name)-1], Span: as.Op.Span}
		value = w.checkArith(op, target, rhs, as.Span())
	} else {
		value = w.walkExpr(as.Value, target.Type())
		w.mustEqual(target.Type(), value.Type(), value.Span())
	}

	return &hlir.Assign{NodeBase: hlir.NewNodeBase(as.Span()), Target: target, Value: value}
}

// checkMutablePlace reports an error if a place cannot be mutated.  The action
// names the mutation for error messages.
func (w *Walker) checkMutablePlace(place hlir.Expr, action string) {
	switch v := place.(type) {
	case *hlir.VarRef:
		if !v.Var.Mutable {
			w.ctx.Reporter.Report(&report.Diagnostic{
				Severity: report.SeverityError,
				Title:    "cannot " + action + " immutable variable `" + v.Var.Name + "`",
				File:     w.file,
				Span:     place.Span(),
				Secondary: []report.Label{
					{Span: v.Var.Span, Message: "declared here: consider making it `mut`"},
				},
			})
		}
	case *hlir.Deref:
		if rt, ok := v.Operand.Type().(*types.RefType); ok && rt.Kind == types.RefShared {
			w.recError(place.Span(), "cannot %s through a shared reference of type `%s`", action, rt.Repr())
		}
	case *hlir.FieldAccess:
		w.checkMutablePlace(v.Root, action)
	case *hlir.IndexAccess:
		w.checkMutablePlace(v.Root, action)
	}
}

// walkReturn walks a return statement.
func (w *Walker) walkReturn(ret *ast.Return) hlir.Node {
	hret := &hlir.Return{NodeBase: hlir.NewNodeBase(ret.Span())}

	if ret.Value == nil {
		if !types.IsVoid(w.fn.ReturnType) {
			w.recError(ret.Span(), "expected a return value of type `%s`", w.fn.ReturnType.Repr())
		}
	} else {
		hret.Value = w.walkExpr(ret.Value, w.fn.ReturnType)
		w.mustEqual(w.fn.ReturnType, hret.Value.Type(), hret.Value.Span())
	}

	return hret
}

// walkBreak walks a break statement.
func (w *Walker) walkBreak(brk *ast.Break) hlir.Node {
	if len(w.loops) == 0 {
		w.error(brk.Span(), "`break` outside of a loop")
	}

	info := w.loops[len(w.loops)-1]
	info.broken = true

	hbrk := &hlir.Break{NodeBase: hlir.NewNodeBase(brk.Span()), Loop: info.frame}

	if brk.Value == nil {
		if info.valueType != nil {
			w.recError(brk.Span(), "`break` without a value in a loop producing `%s`", info.valueType.Repr())
		}

		info.bareBreak = true
		return hbrk
	}

	if info.isWhile {
		w.error(brk.Value.Span(), "`break` with a value is only allowed inside `loop`")
	}

	expected := info.valueType
	if expected == nil {
		expected = info.expected
	}

	hbrk.Value = w.walkExpr(brk.Value, expected)

	if info.valueType == nil {
		info.valueType = hbrk.Value.Type()

		if info.bareBreak {
			w.recError(brk.Span(), "`break` with a value in a loop broken without one")
		}
	} else {
		w.mustEqual(info.valueType, hbrk.Value.Type(), hbrk.Value.Span())
	}

	return hbrk
}

// walkContinue walks a continue statement.
func (w *Walker) walkContinue(cont *ast.Continue) hlir.Node {
	if len(w.loops) == 0 {
		w.error(cont.Span(), "`continue` outside of a loop")
	}

	if cont.Value != nil {
		w.recError(cont.Value.Span(), "`continue` cannot carry a value")
	}

	return &hlir.Continue{NodeBase: hlir.NewNodeBase(cont.Span()), Loop: w.loops[len(w.loops)-1].frame}
}
