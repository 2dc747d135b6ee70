package walk

import (
	"github.com/SeppDev/eclipse-sub000/ast"
	"github.com/SeppDev/eclipse-sub000/hlir"
	"github.com/SeppDev/eclipse-sub000/types"
)

// walkBlock walks a block.  If the block yields a value, then its final
// expression statement becomes its value and is checked under the expected
// type.  A block which always exits early has the type `never`.
func (w *Walker) walkBlock(block *ast.Block, expected types.Type, yieldsValue bool) *hlir.Block {
	w.pushScope()
	defer w.popScope()

	hb := &hlir.Block{}
	diverges, warned := false, false

	for i, stmt := range block.Stmts {
		if diverges && !warned {
			w.warn(stmt.Span(), "unreachable code")
			warned = true
		}

		if i == len(block.Stmts)-1 && yieldsValue && yieldsAsValue(stmt) {
			hb.Value = w.walkExpr(stmt.(ast.Expr), expected)
			break
		}

		node := w.walkStmt(stmt)
		hb.Stmts = append(hb.Stmts, node)

		if isDivergent(node) {
			diverges = true
		}
	}

	var typ types.Type = types.PrimTypeVoid
	if hb.Value != nil {
		typ = hb.Value.Type()
	} else if diverges {
		typ = types.PrimTypeNever
	}

	hb.ExprBase = hlir.NewExprBase(block.Span(), typ)
	return hb
}

// yieldsAsValue returns whether a final block statement provides the value of
// its block.  An `if` without an `else` is always a statement.
func yieldsAsValue(stmt ast.ASTNode) bool {
	switch v := stmt.(type) {
	case *ast.If:
		return v.Else != nil
	case *ast.While:
		return false
	case ast.Expr:
		return true
	}

	return false
}

// isDivergent returns whether control never continues past a statement.
func isDivergent(node hlir.Node) bool {
	switch v := node.(type) {
	case *hlir.Return, *hlir.Break, *hlir.Continue:
		return true
	case *hlir.ExprStmt:
		return isNever(v.Expr.Type())
	}

	return false
}
