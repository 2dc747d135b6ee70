package lower

import (
	"github.com/SeppDev/eclipse-sub000/hlir"
	"github.com/SeppDev/eclipse-sub000/mir"
	"github.com/SeppDev/eclipse-sub000/report"
	"github.com/SeppDev/eclipse-sub000/types"
)

// lowerStmt lowers a single statement.
func (l *Lowerer) lowerStmt(stmt hlir.Node) {
	switch v := stmt.(type) {
	case *hlir.VarDecl:
		slot := l.define(v.Var.Key, &mir.Allocate{Type: v.Var.Type})

		if v.Init != nil {
			l.lowerInto(v.Init, slot)
		}
	case *hlir.Assign:
		ptr := l.lowerAddr(v.Target)
		value := l.lowerExpr(v.Value)
		l.storeValue(v.Value.Type(), value, ptr)
	case *hlir.Return:
		if v.Value == nil {
			l.emit(&mir.Return{Type: types.PrimTypeVoid})
		} else {
			l.lowerReturnValue(v.Value)
		}
	case *hlir.Break:
		if v.Value != nil {
			value := l.lowerExpr(v.Value)
			l.storeValue(v.Value.Type(), value, mir.NewRegister(v.Loop.ResultKey))
		}

		l.jump(v.Loop.End)
	case *hlir.Continue:
		l.jump(v.Loop.Begin)
	case *hlir.ExprStmt:
		l.lowerExpr(v.Expr)
	default:
		report.ReportICE("unknown HLIR statement: %T", stmt)
	}
}

// lowerReturnValue returns a value from the function.  Aggregates are written
// through the out-pointer.
func (l *Lowerer) lowerReturnValue(expr hlir.Expr) {
	switch {
	case l.fn.Sret:
		l.lowerInto(expr, mir.NewRegister(mir.SretName))
		l.emit(&mir.Return{Type: types.PrimTypeVoid})
	case types.IsVoid(l.fn.ReturnType):
		l.lowerExpr(expr)

		if !l.terminated {
			l.emit(&mir.Return{Type: types.PrimTypeVoid})
		}
	case !isValueType(expr.Type()):
		l.lowerExpr(expr)

		if !l.terminated {
			l.emit(&mir.Unreachable{})
		}
	default:
		value := l.lowerExpr(expr)
		if !l.terminated {
			l.emit(&mir.Return{Type: l.fn.ReturnType, Value: value})
		}
	}
}

// lowerBlock lowers a block and returns its value.
func (l *Lowerer) lowerBlock(block *hlir.Block) mir.Value {
	for _, stmt := range block.Stmts {
		l.lowerStmt(stmt)
	}

	if block.Value != nil {
		return l.lowerExpr(block.Value)
	}

	return nil
}
