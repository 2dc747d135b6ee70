package lower

import (
	"math"

	"github.com/SeppDev/eclipse-sub000/hlir"
	"github.com/SeppDev/eclipse-sub000/mir"
	"github.com/SeppDev/eclipse-sub000/report"
	"github.com/SeppDev/eclipse-sub000/types"
)

// lowerExpr lowers an expression and returns its value.  Basic values are
// immediates or registers; aggregates are returned as a pointer to their
// storage.  Expressions with no value return nil.
func (l *Lowerer) lowerExpr(expr hlir.Expr) mir.Value {
	switch v := expr.(type) {
	case *hlir.IntLit:
		return &mir.IntConst{Value: v.Value}
	case *hlir.FloatLit:
		return &mir.FloatConst{Value: v.Value}
	case *hlir.BoolLit:
		return &mir.BoolConst{Value: v.Value}
	case *hlir.StringLit:
		return l.lowerString(v)
	case *hlir.VarRef, *hlir.Deref, *hlir.FieldAccess, *hlir.IndexAccess:
		return l.loadValue(expr.Type(), l.lowerAddr(expr))
	case *hlir.Unary:
		return l.lowerUnary(v)
	case *hlir.Binary:
		lhs := l.lowerExpr(v.Lhs)
		rhs := l.lowerExpr(v.Rhs)
		return l.temp(&mir.BinaryOp{Op: v.Op, Type: v.Type(), Lhs: lhs, Rhs: rhs})
	case *hlir.Compare:
		lhs := l.lowerExpr(v.Lhs)
		rhs := l.lowerExpr(v.Rhs)
		return l.temp(&mir.CompareOp{Op: v.Op, Type: v.OperandType, Lhs: lhs, Rhs: rhs})
	case *hlir.Logical:
		return l.lowerLogical(v)
	case *hlir.Ref:
		return l.lowerAddr(v.Operand)
	case *hlir.Call:
		return l.lowerCall(v, nil)
	case *hlir.TupleLit, *hlir.ArrayLit, *hlir.StructLit, *hlir.EnumLit:
		if !isValueType(expr.Type()) {
			return nil
		}

		slot := l.allocTemp(expr.Type())
		l.lowerInto(expr, slot)
		return slot
	case *hlir.Block:
		return l.lowerBlock(v)
	case *hlir.If:
		return l.lowerIf(v)
	case *hlir.While:
		l.lowerWhile(v)
		return nil
	case *hlir.Loop:
		return l.lowerLoop(v)
	}

	report.ReportICE("unknown HLIR expression: %T", expr)
	return nil
}

// lowerAddr returns the address of an expression.  Places are addressed
// directly; other values are first stored in a temporary.
func (l *Lowerer) lowerAddr(expr hlir.Expr) mir.Value {
	switch v := expr.(type) {
	case *hlir.VarRef:
		return mir.NewRegister(v.Var.Key)
	case *hlir.Deref:
		return l.lowerExpr(v.Operand)
	case *hlir.FieldAccess:
		return l.offsetPtr(l.lowerAddr(v.Root), v.Offset)
	case *hlir.IndexAccess:
		base := l.lowerAddr(v.Root)
		index := l.lowerExpr(v.Index)

		return l.temp(&mir.GetElementPtr{
			ElemType:  v.Type(),
			Base:      base,
			Index:     index,
			IndexType: v.Index.Type(),
		})
	}

	value := l.lowerExpr(expr)
	if types.IsAggregate(expr.Type()) {
		return value
	}

	slot := l.allocTemp(expr.Type())
	l.storeValue(expr.Type(), value, slot)
	return slot
}

// lowerString lowers a string literal to the address of a global constant.
func (l *Lowerer) lowerString(sl *hlir.StringLit) mir.Value {
	name := ".str." + l.ctx.Names.Next()
	l.fn.Strings = append(l.fn.Strings, &mir.StringConst{Name: name, Value: sl.Value})

	return l.temp(&mir.Constant{Type: sl.Type(), Value: &mir.Global{Name: name}})
}

// lowerUnary lowers a negation or logical not.  Integers are negated by
// subtracting from zero and floats by subtracting from negative zero.
func (l *Lowerer) lowerUnary(un *hlir.Unary) mir.Value {
	operand := l.lowerExpr(un.Operand)

	if un.Op == hlir.OpNot {
		return l.temp(&mir.XorBool{Value: operand})
	}

	var zero mir.Value = &mir.IntConst{Value: 0}
	if types.IsFloating(un.Type()) {
		zero = &mir.FloatConst{Value: math.Copysign(0, -1)}
	}

	return l.temp(&mir.BinaryOp{Op: hlir.OpSub, Type: un.Type(), Lhs: zero, Rhs: operand})
}

// lowerLogical lowers a short-circuiting logical operator through a boolean
// slot: the right operand is only evaluated if the left operand does not
// decide the result.
func (l *Lowerer) lowerLogical(lg *hlir.Logical) mir.Value {
	slot := l.allocTemp(types.PrimTypeBool)

	lhs := l.lowerExpr(lg.Lhs)
	l.emit(&mir.Store{Type: types.PrimTypeBool, Value: lhs, Ptr: slot})

	rhsLabel, endLabel := l.ctx.Names.Next(), l.ctx.Names.Next()
	if lg.Op == hlir.LogicalAnd {
		l.emit(&mir.Branch{Cond: lhs, Then: rhsLabel, Else: endLabel})
	} else {
		l.emit(&mir.Branch{Cond: lhs, Then: endLabel, Else: rhsLabel})
	}

	l.label(rhsLabel)
	rhs := l.lowerExpr(lg.Rhs)
	l.storeValue(types.PrimTypeBool, rhs, slot)

	l.label(endLabel)
	return l.loadValue(types.PrimTypeBool, slot)
}

// lowerCall lowers a call.  Functions returning aggregates write their result
// to the destination if one is given and to a temporary otherwise.
func (l *Lowerer) lowerCall(call *hlir.Call, dest mir.Value) mir.Value {
	args := make([]*mir.Arg, len(call.Args))
	for i, arg := range call.Args {
		args[i] = &mir.Arg{Type: arg.Type(), Value: l.lowerExpr(arg)}
	}

	op := &mir.Call{ReturnType: call.Type(), Callee: call.FuncKey, Args: args}

	switch {
	case types.IsAggregate(call.Type()):
		if dest == nil {
			dest = l.allocTemp(call.Type())
		}

		op.Sret = dest
		l.emit(&mir.Define{Op: op})
		return dest
	case isValueType(call.Type()):
		return l.temp(op)
	default:
		l.emit(&mir.Define{Op: op})

		if call.Type() == types.PrimTypeNever {
			l.emit(&mir.Unreachable{})
		}

		return nil
	}
}

// -----------------------------------------------------------------------------

// lowerIf lowers a conditional.  Each branch gets a `yes` label for its body
// and a `no` label for the rest of the chain; every arm jumps to the `exit`
// label.  The value of the conditional is passed through a result slot.
func (l *Lowerer) lowerIf(ifExpr *hlir.If) mir.Value {
	var result mir.Value
	if isValueType(ifExpr.Type()) {
		result = l.allocTemp(ifExpr.Type())
	}

	exitLabel := l.ctx.Names.Next()

	lowerArm := func(body *hlir.Block) {
		value := l.lowerBlock(body)
		if result != nil {
			l.storeValue(ifExpr.Type(), value, result)
		}

		l.jump(exitLabel)
	}

	for _, branch := range ifExpr.Branches {
		yesLabel, noLabel := l.ctx.Names.Next(), l.ctx.Names.Next()

		cond := l.lowerExpr(branch.Cond)
		l.emit(&mir.Branch{Cond: cond, Then: yesLabel, Else: noLabel})

		l.label(yesLabel)
		lowerArm(branch.Body)

		l.label(noLabel)
	}

	if ifExpr.Else != nil {
		lowerArm(ifExpr.Else)
	}

	l.label(exitLabel)

	if result != nil {
		return l.loadValue(ifExpr.Type(), result)
	}

	return nil
}

// lowerWhile lowers a while loop.  The condition is evaluated at the start of
// every iteration.
func (l *Lowerer) lowerWhile(wl *hlir.While) {
	bodyLabel := l.ctx.Names.Next()

	l.label(wl.Frame.Begin)
	cond := l.lowerExpr(wl.Cond)
	l.emit(&mir.Branch{Cond: cond, Then: bodyLabel, Else: wl.Frame.End})

	l.label(bodyLabel)
	l.lowerBlock(wl.Body)
	l.jump(wl.Frame.Begin)

	l.label(wl.Frame.End)
}

// lowerLoop lowers an unconditional loop.  The loop's value is stored in its
// result slot by `break` statements.
func (l *Lowerer) lowerLoop(lp *hlir.Loop) mir.Value {
	var result mir.Value
	if lp.Frame.ResultKey != "" {
		result = l.define(lp.Frame.ResultKey, &mir.Allocate{Type: lp.Type()})
	}

	l.label(lp.Frame.Begin)
	l.lowerBlock(lp.Body)
	l.jump(lp.Frame.Begin)

	l.label(lp.Frame.End)

	if result != nil {
		return l.loadValue(lp.Type(), result)
	}

	return nil
}

// -----------------------------------------------------------------------------

// lowerInto evaluates an expression directly into the storage at an address.
// Aggregate literals are built field by field rather than copied.
func (l *Lowerer) lowerInto(expr hlir.Expr, dest mir.Value) {
	switch v := expr.(type) {
	case *hlir.TupleLit:
		tt := v.Type().(*types.TupleType)
		for i, elem := range v.Elems {
			l.lowerInto(elem, l.offsetPtr(dest, tt.Offset(i)))
		}
	case *hlir.StructLit:
		st := v.Type().(*types.StructType)
		for i, field := range v.Fields {
			l.lowerInto(field, l.offsetPtr(dest, st.Offset(i)))
		}
	case *hlir.ArrayLit:
		at := v.Type().(*types.ArrayType)
		for i, elem := range v.Elems {
			l.lowerInto(elem, l.offsetPtr(dest, i*at.ElemType.Size()))
		}
	case *hlir.EnumLit:
		et := v.Type().(*types.EnumType)
		l.emit(&mir.Store{Type: et.TagType(), Value: &mir.IntConst{Value: int64(v.Tag)}, Ptr: dest})

		if v.Payload != nil {
			l.lowerInto(v.Payload, l.offsetPtr(dest, et.PayloadOffset()))
		}
	case *hlir.Call:
		if types.IsAggregate(v.Type()) {
			l.lowerCall(v, dest)
		} else {
			l.storeValue(v.Type(), l.lowerCall(v, nil), dest)
		}
	default:
		l.storeValue(expr.Type(), l.lowerExpr(expr), dest)
	}
}
