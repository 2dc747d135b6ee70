package walk

import (
	"strconv"

	"github.com/SeppDev/eclipse-sub000/ast"
	"github.com/SeppDev/eclipse-sub000/depm"
	"github.com/SeppDev/eclipse-sub000/hlir"
	"github.com/SeppDev/eclipse-sub000/report"
	"github.com/SeppDev/eclipse-sub000/types"
)

// walkExpr walks an expression and returns its HLIR.  The expected type is
// used to infer the types of literals: it may be nil if there is no
// expectation.  The caller is responsible for checking the resulting type
// against the expected type.
func (w *Walker) walkExpr(expr ast.Expr, expected types.Type) hlir.Expr {
	switch v := expr.(type) {
	case *ast.Literal:
		return w.walkLiteral(v, expected)
	case *ast.Identifier:
		return w.walkIdentifier(v)
	case *ast.PathExpr:
		return w.walkSymbolValue(w.table.ResolvePath(w.mt, v.Components), v.Span())
	case *ast.Unary:
		return w.walkUnary(v, expected)
	case *ast.Binary:
		return w.walkBinary(v, expected)
	case *ast.Call:
		return w.walkCall(v)
	case *ast.Field:
		return w.walkField(v)
	case *ast.Index:
		return w.walkIndex(v)
	case *ast.Paren:
		return w.walkExpr(v.Inner, expected)
	case *ast.Tuple:
		return w.walkTuple(v, expected)
	case *ast.ArrayLit:
		return w.walkArrayLit(v, expected)
	case *ast.StructLit:
		return w.walkStructLit(v)
	case *ast.Block:
		return w.walkBlock(v, expected, true)
	case *ast.If:
		return w.walkIf(v, expected, true)
	case *ast.While:
		return w.walkWhile(v)
	case *ast.Loop:
		return w.walkLoop(v, expected)
	}

	report.ReportICE("unknown expression: %T", expr)
	return nil
}

// walkIdentifier walks a named value: a local variable or a unit variant
// brought into scope by a use declaration.
func (w *Walker) walkIdentifier(ident *ast.Identifier) hlir.Expr {
	if v, ok := w.lookup(ident.Name); ok {
		return &hlir.VarRef{ExprBase: hlir.NewExprBase(ident.Span(), v.Type), Var: v}
	}

	sym := w.table.Lookup(w.mt, ident.Name)
	if sym == nil {
		w.error(ident.Span(), "undefined identifier: `%s`", ident.Name)
	}

	return w.walkSymbolValue(sym, ident.Span())
}

// walkSymbolValue converts a global symbol used as a value.  Only unit enum
// variants are values.
func (w *Walker) walkSymbolValue(sym *depm.Symbol, span *report.TextSpan) hlir.Expr {
	switch sym.Kind {
	case depm.SymVariant:
		if !types.IsVoid(sym.Variant.Payload) {
			w.error(span, "enum variant `%s::%s` requires a payload", sym.Type.Name(), sym.Name)
		}

		return &hlir.EnumLit{ExprBase: hlir.NewExprBase(span, sym.Type), Tag: sym.Tag}
	case depm.SymFunc:
		w.error(span, "function `%s` cannot be used as a value: did you mean to call it?", sym.Name)
	}

	w.error(span, "%s `%s` cannot be used as a value", sym.KindName(), sym.Name)
	return nil
}

// -----------------------------------------------------------------------------

// walkCall walks a call expression: a function call or the construction of a
// tuple enum variant.
func (w *Walker) walkCall(call *ast.Call) hlir.Expr {
	var sym *depm.Symbol

	switch v := call.Func.(type) {
	case *ast.Identifier:
		if _, ok := w.lookup(v.Name); ok {
			w.error(v.Span(), "variable `%s` is not a function", v.Name)
		}

		if sym = w.table.Lookup(w.mt, v.Name); sym == nil {
			w.error(v.Span(), "undefined identifier: `%s`", v.Name)
		}
	case *ast.PathExpr:
		sym = w.table.ResolvePath(w.mt, v.Components)
	case *ast.Field:
		w.error(v.Name.Span, "methods are not supported")
	default:
		w.error(call.Func.Span(), "expression is not callable")
	}

	switch sym.Kind {
	case depm.SymFunc:
		return w.walkFuncCall(sym.Func, call)
	case depm.SymVariant:
		if len(sym.Variant.TupleElems) > 0 {
			return w.walkVariantCall(sym, call)
		}

		w.error(call.Func.Span(), "enum variant `%s::%s` is not a tuple variant", sym.Type.Name(), sym.Name)
	}

	w.error(call.Func.Span(), "%s `%s` is not callable", sym.KindName(), sym.Name)
	return nil
}

// walkFuncCall walks a direct call to a function.  Arguments passed to
// by-reference parameters are referenced automatically.
func (w *Walker) walkFuncCall(sig *depm.FuncSig, call *ast.Call) hlir.Expr {
	if len(call.Args) != len(sig.Params) {
		w.error(call.Span(), "function `%s` expects %d arguments, but got %d", sig.Name, len(sig.Params), len(call.Args))
	}

	args := make([]hlir.Expr, len(call.Args))
	for i, argExpr := range call.Args {
		param := sig.Params[i]

		arg := w.walkExpr(argExpr, param.Type)
		w.mustEqual(param.Type, arg.Type(), arg.Span())

		if param.ByRef {
			kind := types.RefShared
			if param.Mutable {
				kind = types.RefMutable

				if hlir.IsPlace(arg) {
					w.checkMutablePlace(arg, "mutably borrow")
				}
			}

			arg = &hlir.Ref{
				ExprBase: hlir.NewExprBase(arg.Span(), &types.RefType{ElemType: param.Type, Kind: kind}),
				Operand:  arg,
			}
		}

		args[i] = arg
	}

	return &hlir.Call{
		ExprBase: hlir.NewExprBase(call.Span(), sig.ReturnType),
		FuncKey:  sig.Key,
		Args:     args,
	}
}

// walkVariantCall walks the construction of a tuple enum variant:
// `Shape::Circle(1.0)`.
func (w *Walker) walkVariantCall(sym *depm.Symbol, call *ast.Call) hlir.Expr {
	elemTypes := sym.Variant.TupleElems

	if len(call.Args) != len(elemTypes) {
		w.error(call.Span(), "enum variant `%s::%s` expects %d values, but got %d", sym.Type.Name(), sym.Name, len(elemTypes), len(call.Args))
	}

	elems := make([]hlir.Expr, len(call.Args))
	for i, argExpr := range call.Args {
		elems[i] = w.walkExpr(argExpr, elemTypes[i])
		w.mustEqual(elemTypes[i], elems[i].Type(), elems[i].Span())
	}

	payload := elems[0]
	if len(elems) > 1 {
		payload = &hlir.TupleLit{ExprBase: hlir.NewExprBase(call.Span(), sym.Variant.Payload), Elems: elems}
	}

	return &hlir.EnumLit{
		ExprBase: hlir.NewExprBase(call.Span(), sym.Type),
		Tag:      sym.Tag,
		Payload:  payload,
	}
}

// -----------------------------------------------------------------------------

// walkField walks a field access.  References are dereferenced automatically.
func (w *Walker) walkField(fld *ast.Field) hlir.Expr {
	root := autoDeref(w.walkExpr(fld.Root, nil))

	var index, offset int
	var typ types.Type

	switch rt := root.Type().(type) {
	case *types.StructType:
		field, n, ok := rt.GetFieldByName(fld.Name.Value)
		if !ok {
			w.error(fld.Name.Span, "struct `%s` has no field named `%s`", rt.Name(), fld.Name.Value)
		}

		index, offset, typ = n, rt.Offset(n), field.Type
	case *types.TupleType:
		n, err := strconv.Atoi(fld.Name.Value)
		if err != nil || n >= len(rt.ElementTypes) {
			w.error(fld.Name.Span, "tuple `%s` has no field named `%s`", rt.Repr(), fld.Name.Value)
		}

		index, offset, typ = n, rt.Offset(n), rt.ElementTypes[n]
	default:
		w.error(fld.Name.Span, "type `%s` has no fields", root.Type().Repr())
	}

	return &hlir.FieldAccess{
		ExprBase: hlir.NewExprBase(fld.Span(), typ),
		Root:     root,
		Index:    index,
		Offset:   offset,
	}
}

// walkIndex walks an array index.  References are dereferenced automatically.
func (w *Walker) walkIndex(ndx *ast.Index) hlir.Expr {
	root := autoDeref(w.walkExpr(ndx.Root, nil))

	at, ok := root.Type().(*types.ArrayType)
	if !ok {
		w.error(ndx.Root.Span(), "cannot index into a value of type `%s`", root.Type().Repr())
	}

	index := w.walkExpr(ndx.Index, types.PrimTypeI32)
	if !types.IsIntegral(index.Type()) {
		w.recError(index.Span(), "array index must be an integer, but got `%s`", index.Type().Repr())
	} else if lit, ok := index.(*hlir.IntLit); ok && (lit.Value < 0 || lit.Value >= int64(at.Len)) {
		w.recError(index.Span(), "index %d is out of bounds for an array of length %d", lit.Value, at.Len)
	}

	return &hlir.IndexAccess{
		ExprBase: hlir.NewExprBase(ndx.Span(), at.ElemType),
		Root:     root,
		Index:    index,
	}
}

// -----------------------------------------------------------------------------

// walkTuple walks a tuple literal.  The empty tuple is the unit value.
func (w *Walker) walkTuple(tup *ast.Tuple, expected types.Type) hlir.Expr {
	expectedTypes := expectedElems(expected, len(tup.Elems))

	elems := make([]hlir.Expr, len(tup.Elems))
	elemTypes := make([]types.Type, len(tup.Elems))
	for i, elemExpr := range tup.Elems {
		var elemExpected types.Type
		if expectedTypes != nil {
			elemExpected = expectedTypes[i]
		}

		elems[i] = w.walkExpr(elemExpr, elemExpected)
		elemTypes[i] = elems[i].Type()

		if types.IsVoid(elemTypes[i]) {
			w.recError(elems[i].Span(), "tuple elements cannot be of type `%s`", elemTypes[i].Repr())
		}
	}

	if len(elems) == 1 {
		return elems[0]
	}

	return &hlir.TupleLit{
		ExprBase: hlir.NewExprBase(tup.Span(), types.NewTupleType(elemTypes)),
		Elems:    elems,
	}
}

// walkArrayLit walks an array literal.  The element type is inferred from the
// first element and every later element is checked against it.
func (w *Walker) walkArrayLit(arr *ast.ArrayLit, expected types.Type) hlir.Expr {
	var elemType types.Type
	if at, ok := expected.(*types.ArrayType); ok {
		elemType = at.ElemType
	}

	if len(arr.Elems) == 0 {
		if elemType == nil {
			w.error(arr.Span(), "cannot infer the type of an empty array")
		}

		return &hlir.ArrayLit{ExprBase: hlir.NewExprBase(arr.Span(), &types.ArrayType{ElemType: elemType})}
	}

	elems := make([]hlir.Expr, len(arr.Elems))
	for i, elemExpr := range arr.Elems {
		elems[i] = w.walkExpr(elemExpr, elemType)

		if i == 0 {
			elemType = elems[0].Type()

			if types.IsVoid(elemType) {
				w.error(elems[0].Span(), "array elements cannot be of type `%s`", elemType.Repr())
			}
		} else {
			w.mustEqual(elemType, elems[i].Type(), elems[i].Span())
		}
	}

	return &hlir.ArrayLit{
		ExprBase: hlir.NewExprBase(arr.Span(), &types.ArrayType{ElemType: elemType, Len: len(elems)}),
		Elems:    elems,
	}
}

// walkStructLit walks a struct literal: the construction of a struct or of a
// struct-like enum variant.
func (w *Walker) walkStructLit(sl *ast.StructLit) hlir.Expr {
	sym := w.table.ResolvePath(w.mt, sl.TypePath)

	switch sym.Kind {
	case depm.SymType:
		if st, ok := sym.Type.(*types.StructType); ok {
			return w.walkStructFields(st, sl)
		}
	case depm.SymVariant:
		if st, ok := sym.Variant.Payload.(*types.StructType); ok {
			return &hlir.EnumLit{
				ExprBase: hlir.NewExprBase(sl.Span(), sym.Type),
				Tag:      sym.Tag,
				Payload:  w.walkStructFields(st, sl),
			}
		}
	}

	w.error(sl.Span(), "%s `%s` is not a struct", sym.KindName(), sym.Name)
	return nil
}

// walkStructFields walks the field initializers of a struct literal.  Every
// field must be initialized exactly once.
func (w *Walker) walkStructFields(st *types.StructType, sl *ast.StructLit) *hlir.StructLit {
	fields := make([]hlir.Expr, len(st.Fields))

	for _, init := range sl.Fields {
		field, n, ok := st.GetFieldByName(init.Name.Value)
		if !ok {
			w.recError(init.Name.Span, "struct `%s` has no field named `%s`", st.Name(), init.Name.Value)
			continue
		} else if fields[n] != nil {
			w.recError(init.Name.Span, "field `%s` is initialized multiple times", init.Name.Value)
			continue
		}

		fields[n] = w.walkExpr(init.Value, field.Type)
		w.mustEqual(field.Type, fields[n].Type(), fields[n].Span())
	}

	for n, value := range fields {
		if value == nil {
			w.recError(sl.Span(), "missing field `%s` in literal of struct `%s`", st.Fields[n].Name, st.Name())
		}
	}

	return &hlir.StructLit{ExprBase: hlir.NewExprBase(sl.Span(), st), Fields: fields}
}
