package walk

import (
	"github.com/SeppDev/eclipse-sub000/ast"
	"github.com/SeppDev/eclipse-sub000/hlir"
	"github.com/SeppDev/eclipse-sub000/report"
	"github.com/SeppDev/eclipse-sub000/types"
)

// walkIf walks an if expression.  If the if yields a value, then it must have
// an else block and all of its branches must agree on a type.
func (w *Walker) walkIf(ifExpr *ast.If, expected types.Type, yieldsValue bool) *hlir.If {
	hif := &hlir.If{}

	// The type of the arms so far: `never` while every arm diverges.
	var armType types.Type

	walkArm := func(body *ast.Block) *hlir.Block {
		hb := w.walkBlock(body, expected, yieldsValue)

		if yieldsValue && armType != nil && !isNever(armType) {
			w.mustEqual(armType, hb.Type(), armSpan(hb))
		}

		armType = unifyBranches(armType, hb.Type())
		return hb
	}

	for _, branch := range ifExpr.Branches {
		cond := w.walkExpr(branch.Cond, types.PrimTypeBool)
		w.mustBeBool(cond)

		hif.Branches = append(hif.Branches, &hlir.CondBranch{Cond: cond, Body: walkArm(branch.Body)})
	}

	if ifExpr.Else != nil {
		hif.Else = walkArm(ifExpr.Else)
	} else if yieldsValue {
		w.recError(ifExpr.Span(), "`if` used as a value must have an `else` block")
	}

	var typ types.Type = types.PrimTypeVoid
	switch {
	case ifExpr.Else == nil:
	case isNever(armType):
		typ = types.PrimTypeNever
	case yieldsValue:
		typ = armType
	}

	hif.ExprBase = hlir.NewExprBase(ifExpr.Span(), typ)
	return hif
}

// armSpan returns the span used to report a mismatched branch type: the span
// of the branch's value if it has one.
func armSpan(hb *hlir.Block) *report.TextSpan {
	if hb.Value != nil {
		return hb.Value.Span()
	}

	return hb.Span()
}

// -----------------------------------------------------------------------------

// newLoopFrame creates the frame of a new loop and allocates its labels.
func (w *Walker) newLoopFrame() *hlir.LoopFrame {
	return &hlir.LoopFrame{Begin: w.ctx.Names.Next(), End: w.ctx.Names.Next()}
}

// walkWhile walks a while loop.  While loops have no value.
func (w *Walker) walkWhile(wl *ast.While) *hlir.While {
	frame := w.newLoopFrame()

	cond := w.walkExpr(wl.Cond, types.PrimTypeBool)
	w.mustBeBool(cond)

	w.loops = append(w.loops, &loopInfo{frame: frame, isWhile: true})
	body := w.walkBlock(wl.Body, nil, false)
	w.loops = w.loops[:len(w.loops)-1]

	return &hlir.While{
		ExprBase: hlir.NewExprBase(wl.Span(), types.PrimTypeVoid),
		Frame:    frame,
		Cond:     cond,
		Body:     body,
	}
}

// walkLoop walks an unconditional loop.  The loop's type is the type of the
// values it is broken with: `void` if it is broken without a value, and
// `never` if it is never broken.
func (w *Walker) walkLoop(lp *ast.Loop, expected types.Type) *hlir.Loop {
	info := &loopInfo{frame: w.newLoopFrame(), expected: expected}

	w.loops = append(w.loops, info)
	body := w.walkBlock(lp.Body, nil, false)
	w.loops = w.loops[:len(w.loops)-1]

	var typ types.Type
	switch {
	case !info.broken:
		typ = types.PrimTypeNever
	case info.valueType != nil:
		typ = info.valueType
		info.frame.ResultKey = w.ctx.Names.Next()
	default:
		typ = types.PrimTypeVoid
	}

	return &hlir.Loop{
		ExprBase: hlir.NewExprBase(lp.Span(), typ),
		Frame:    info.frame,
		Body:     body,
	}
}
