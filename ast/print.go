package ast

import (
	"fmt"
	"strings"
)

// Sexpr renders an expression as an S-expression: `(+ 1 (* 2 3))`.  It is
// used to display and compare expression trees.
func Sexpr(expr Expr) string {
	switch v := expr.(type) {
	case *Literal:
		return v.Value
	case *Identifier:
		return v.Name
	case *PathExpr:
		names := make([]string, len(v.Components))
		for i, comp := range v.Components {
			names[i] = comp.Value
		}

		return strings.Join(names, "::")
	case *Unary:
		op := v.Op.Name
		if v.Mutable {
			op += "mut"
		}

		return fmt.Sprintf("(%s %s)", op, Sexpr(v.Operand))
	case *Binary:
		return fmt.Sprintf("(%s %s %s)", v.Op.Name, Sexpr(v.Lhs), Sexpr(v.Rhs))
	case *Call:
		return fmt.Sprintf("(call %s%s)", Sexpr(v.Func), sexprList(v.Args))
	case *Field:
		return fmt.Sprintf("(. %s %s)", Sexpr(v.Root), v.Name.Value)
	case *Index:
		return fmt.Sprintf("(index %s %s)", Sexpr(v.Root), Sexpr(v.Index))
	case *Tuple:
		return fmt.Sprintf("(tuple%s)", sexprList(v.Elems))
	case *Paren:
		return fmt.Sprintf("(paren %s)", Sexpr(v.Inner))
	case *ArrayLit:
		return fmt.Sprintf("(array%s)", sexprList(v.Elems))
	case *StructLit:
		sb := &strings.Builder{}
		sb.WriteString("(struct ")
		for i, comp := range v.TypePath {
			if i > 0 {
				sb.WriteString("::")
			}
			sb.WriteString(comp.Value)
		}

		for _, fi := range v.Fields {
			fmt.Fprintf(sb, " (%s %s)", fi.Name.Value, Sexpr(fi.Value))
		}

		sb.WriteString(")")
		return sb.String()
	case *Block:
		return fmt.Sprintf("(block %d)", len(v.Stmts))
	case *If:
		sb := &strings.Builder{}
		sb.WriteString("(if")
		for _, branch := range v.Branches {
			fmt.Fprintf(sb, " %s %s", Sexpr(branch.Cond), Sexpr(branch.Body))
		}

		if v.Else != nil {
			fmt.Fprintf(sb, " else %s", Sexpr(v.Else))
		}

		sb.WriteString(")")
		return sb.String()
	case *While:
		return fmt.Sprintf("(while %s %s)", Sexpr(v.Cond), Sexpr(v.Body))
	case *Loop:
		return fmt.Sprintf("(loop %s)", Sexpr(v.Body))
	}

	return "?"
}

// sexprList renders a list of expressions, each preceded by a space.
func sexprList(exprs []Expr) string {
	sb := &strings.Builder{}
	for _, expr := range exprs {
		sb.WriteRune(' ')
		sb.WriteString(Sexpr(expr))
	}

	return sb.String()
}
