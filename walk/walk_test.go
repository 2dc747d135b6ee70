package walk

import (
	"testing"

	"github.com/SeppDev/eclipse-sub000/common"
	"github.com/SeppDev/eclipse-sub000/depm"
	"github.com/SeppDev/eclipse-sub000/hlir"
	"github.com/SeppDev/eclipse-sub000/report"
	"github.com/SeppDev/eclipse-sub000/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diagTitles(ctx *common.CompileContext, sev report.Severity) []string {
	var titles []string
	for _, diag := range ctx.Reporter.Diagnostics() {
		if diag.Severity == sev {
			titles = append(titles, diag.Title)
		}
	}

	return titles
}

// analyzeTest runs the front end over a single entry file.
func analyzeTest(t *testing.T, src string) ([]*hlir.Function, *common.CompileContext) {
	ctx := common.NewCompileContext(report.NewReporter(report.LogLevelSilent), common.DefaultTabSize)

	set := depm.ResolveModules(ctx, depm.NewMapResolver(map[string]string{"src/main.ecl": src}), common.EntryPath())
	table := depm.Collect(ctx, set)
	require.False(t, ctx.Reporter.AnyErrors(), diagTitles(ctx, report.SeverityError))

	return Analyze(ctx, table), ctx
}

// analyzeOK analyzes a source file which must have no errors.
func analyzeOK(t *testing.T, src string) map[string]*hlir.Function {
	fns, ctx := analyzeTest(t, src)
	require.False(t, ctx.Reporter.AnyErrors(), diagTitles(ctx, report.SeverityError))

	byName := make(map[string]*hlir.Function)
	for _, fn := range fns {
		byName[fn.Name] = fn
	}

	return byName
}

func TestVarDeclDefaultsToI32(t *testing.T) {
	fns := analyzeOK(t, "func main() { var x = 5 }")

	main := fns["main"]
	require.NotNil(t, main)
	require.Len(t, main.Body.Stmts, 1)

	decl, ok := main.Body.Stmts[0].(*hlir.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "x", decl.Var.Name)
	assert.Equal(t, types.PrimTypeI32, decl.Var.Type)

	lit, ok := decl.Init.(*hlir.IntLit)
	require.True(t, ok)
	assert.Equal(t, int64(5), lit.Value)
	assert.Same(t, decl.Var, main.Variables[decl.Var.Key])
}

func TestAssignToMutableVariable(t *testing.T) {
	fns := analyzeOK(t, "func main() { var mut x: i32 = 5; x = 2 }")

	stmts := fns["main"].Body.Stmts
	require.Len(t, stmts, 2)

	assign, ok := stmts[1].(*hlir.Assign)
	require.True(t, ok)

	ref, ok := assign.Target.(*hlir.VarRef)
	require.True(t, ok)
	assert.Same(t, stmts[0].(*hlir.VarDecl).Var, ref.Var)
}

func TestAssignToImmutableVariable(t *testing.T) {
	fns, ctx := analyzeTest(t, "func main() { var x = 5; x = 2 }")

	assert.Empty(t, fns)
	require.Equal(t, []string{"cannot mutate immutable variable `x`"}, diagTitles(ctx, report.SeverityError))

	diag := ctx.Reporter.Diagnostics()[0]
	require.Len(t, diag.Secondary, 1)
	assert.Equal(t, 1, diag.Secondary[0].Span.Start.Line)
	assert.Equal(t, 18, diag.Secondary[0].Span.Start.Col)
}

func TestFailedFunctionsAreOmitted(t *testing.T) {
	fns, ctx := analyzeTest(t, `
func bad() { var y: bool = 1 }
func main() {}
`)

	require.Len(t, fns, 1)
	assert.Equal(t, "main", fns[0].Name)
	assert.Equal(t, 1, ctx.Reporter.ErrorCount())
}

func TestVariableKeysAreUnique(t *testing.T) {
	fns := analyzeOK(t, `
func helper(a: i32) i32 { var b = a; { var b = 2; var c = b } return b }
func main() { var a = 1; { var a = 2 } var b = a }
`)

	keys := make(map[string]bool)
	for _, fn := range fns {
		for key := range fn.Variables {
			assert.False(t, keys[key], key)
			keys[key] = true
		}
	}

	assert.Len(t, keys, 7)

	// The final `a` refers to the outer declaration.
	stmts := fns["main"].Body.Stmts
	outer := stmts[0].(*hlir.VarDecl).Var
	last := stmts[2].(*hlir.VarDecl)
	assert.Same(t, outer, last.Init.(*hlir.VarRef).Var)
}

func TestLiteralTakesOperandType(t *testing.T) {
	fns := analyzeOK(t, `
func f(x: u8) u8 { return 1 + x }
func main() {}
`)

	ret := fns["f"].Body.Stmts[0].(*hlir.Return)
	bin, ok := ret.Value.(*hlir.Binary)
	require.True(t, ok)

	assert.Equal(t, hlir.OpAdd, bin.Op)
	assert.Equal(t, types.PrimTypeU8, bin.Type())
	assert.Equal(t, types.PrimTypeU8, bin.Lhs.Type())
}

func TestIfStatement(t *testing.T) {
	fns := analyzeOK(t, "func main() { if 1 == 2 { 3 } else { 4 } }")

	stmt := fns["main"].Body.Stmts[0].(*hlir.ExprStmt)
	ifExpr, ok := stmt.Expr.(*hlir.If)
	require.True(t, ok)
	assert.Equal(t, types.PrimTypeVoid, ifExpr.Type())

	require.Len(t, ifExpr.Branches, 1)
	cmp, ok := ifExpr.Branches[0].Cond.(*hlir.Compare)
	require.True(t, ok)
	assert.Equal(t, hlir.CmpEq, cmp.Op)
	assert.Equal(t, types.PrimTypeI32, cmp.OperandType)
	assert.NotNil(t, ifExpr.Else)
}

func TestIfAndLoopValues(t *testing.T) {
	fns := analyzeOK(t, `
func pick(c: bool) i32 { if c { 1 } else { 2 } }
func count() i32 {
	var mut i = 0
	loop {
		i += 1
		if i == 10 { break i }
	}
}
func main() {}
`)

	ifExpr, ok := fns["pick"].Body.Value.(*hlir.If)
	require.True(t, ok)
	assert.Equal(t, types.PrimTypeI32, ifExpr.Type())

	loop, ok := fns["count"].Body.Value.(*hlir.Loop)
	require.True(t, ok)
	assert.Equal(t, types.PrimTypeI32, loop.Type())
	assert.NotEmpty(t, loop.Frame.ResultKey)
	assert.NotEqual(t, loop.Frame.Begin, loop.Frame.End)

	assign := loop.Body.Stmts[0].(*hlir.Assign)
	bin, ok := assign.Value.(*hlir.Binary)
	require.True(t, ok)
	assert.Equal(t, hlir.OpAdd, bin.Op)
}

func TestDivergingBranches(t *testing.T) {
	fns := analyzeOK(t, `
func sign(x: i32) i32 {
	var s = if x < 0 { -1 } else if x == 0 { return 0 } else { 1 }
	return s
}
func abs(x: i32) i32 {
	var a = if x < 0 { return -x } else { x }
	a
}
func pick(c: bool) i32 {
	if c { return 1 } else { return 2 }
}
func main() { loop {} }
`)

	decl := fns["sign"].Body.Stmts[0].(*hlir.VarDecl)
	assert.Equal(t, types.PrimTypeI32, decl.Var.Type)

	decl = fns["abs"].Body.Stmts[0].(*hlir.VarDecl)
	assert.Equal(t, types.PrimTypeI32, decl.Var.Type)

	assert.Equal(t, types.PrimTypeNever, fns["pick"].Body.Value.Type())

	stmt := fns["main"].Body.Stmts[0].(*hlir.ExprStmt)
	assert.Equal(t, types.PrimTypeNever, stmt.Expr.Type())
}

func TestStringAndCharLiterals(t *testing.T) {
	fns := analyzeOK(t, `func main() { var s = "a\n\x41\""; var c = '\t' }`)

	stmts := fns["main"].Body.Stmts

	str, ok := stmts[0].(*hlir.VarDecl).Init.(*hlir.StringLit)
	require.True(t, ok)
	assert.Equal(t, "a\nA\"", str.Value)
	assert.Equal(t, "&str", str.Type().Repr())

	char, ok := stmts[1].(*hlir.VarDecl).Init.(*hlir.IntLit)
	require.True(t, ok)
	assert.Equal(t, types.PrimTypeChar, char.Type())
	assert.Equal(t, int64('\t'), char.Value)
}

func TestNegativeLiterals(t *testing.T) {
	fns := analyzeOK(t, "func main() { var a: i8 = -128; var b = -2.5 }")

	stmts := fns["main"].Body.Stmts
	assert.Equal(t, int64(-128), stmts[0].(*hlir.VarDecl).Init.(*hlir.IntLit).Value)
	assert.Equal(t, -2.5, stmts[1].(*hlir.VarDecl).Init.(*hlir.FloatLit).Value)
}

func TestByRefParameters(t *testing.T) {
	fns := analyzeOK(t, `
func inc(&mut x: i32) { *x += 1 }
func main() { var mut n = 0; inc(n) }
`)

	inc := fns["inc"]
	require.Len(t, inc.Params, 1)
	assert.Equal(t, "&mut i32", inc.Params[0].Type.Repr())

	call := fns["main"].Body.Stmts[1].(*hlir.ExprStmt).Expr.(*hlir.Call)
	require.Len(t, call.Args, 1)

	ref, ok := call.Args[0].(*hlir.Ref)
	require.True(t, ok)
	assert.Equal(t, "&mut i32", ref.Type().Repr())
	assert.Equal(t, inc.Key, call.FuncKey)
}

func TestFieldAccessAutoDerefs(t *testing.T) {
	fns := analyzeOK(t, `
struct P { x: u8, y: i32 }
func gety(p: &P) i32 { return p.y }
func main() { var t = (1, true); var b = t.1 }
`)

	ret := fns["gety"].Body.Stmts[0].(*hlir.Return)
	fa, ok := ret.Value.(*hlir.FieldAccess)
	require.True(t, ok)
	assert.Equal(t, 1, fa.Index)
	assert.Equal(t, 4, fa.Offset)

	_, ok = fa.Root.(*hlir.Deref)
	assert.True(t, ok)

	decl := fns["main"].Body.Stmts[1].(*hlir.VarDecl)
	assert.Equal(t, types.PrimTypeBool, decl.Var.Type)
}

func TestEnumConstruction(t *testing.T) {
	fns := analyzeOK(t, `
enum Shape { Circle(f64), Rect(f64, f64), Empty, Named { id: i32 } }
func main() {
	var a = Shape::Circle(1.0)
	var b = Shape::Rect(1.0, 2)
	var c = Shape::Empty
	var d = Shape::Named { id: 3 }
}
`)

	stmts := fns["main"].Body.Stmts
	require.Len(t, stmts, 4)

	for i, stmt := range stmts {
		lit, ok := stmt.(*hlir.VarDecl).Init.(*hlir.EnumLit)
		require.True(t, ok)
		assert.Equal(t, i, lit.Tag)
		assert.Equal(t, "Shape", lit.Type().Repr())
	}

	assert.IsType(t, &hlir.FloatLit{}, stmts[0].(*hlir.VarDecl).Init.(*hlir.EnumLit).Payload)
	assert.IsType(t, &hlir.TupleLit{}, stmts[1].(*hlir.VarDecl).Init.(*hlir.EnumLit).Payload)
	assert.Nil(t, stmts[2].(*hlir.VarDecl).Init.(*hlir.EnumLit).Payload)
	assert.IsType(t, &hlir.StructLit{}, stmts[3].(*hlir.VarDecl).Init.(*hlir.EnumLit).Payload)
}

func TestArrayLiteralAndIndex(t *testing.T) {
	fns := analyzeOK(t, "func main() { var a: [u8; 3] = [1, 2, 3]; var x = a[1] }")

	stmts := fns["main"].Body.Stmts
	arr := stmts[0].(*hlir.VarDecl).Init.(*hlir.ArrayLit)
	assert.Equal(t, "[u8; 3]", arr.Type().Repr())
	assert.Equal(t, types.PrimTypeU8, arr.Elems[2].Type())

	decl := stmts[1].(*hlir.VarDecl)
	assert.Equal(t, types.PrimTypeU8, decl.Var.Type)
	assert.IsType(t, &hlir.IndexAccess{}, decl.Init)
}

func TestExternFunctionIsDeclaration(t *testing.T) {
	fns := analyzeOK(t, `
extern "C" func abs(x: i32) i32
func main() i32 { return abs(-3) }
`)

	require.Contains(t, fns, "abs")
	assert.True(t, fns["abs"].IsExternal())
	assert.False(t, fns["main"].IsExternal())
}

func TestSharedReferenceToSharedReference(t *testing.T) {
	fns := analyzeOK(t, "func main() { var y = 7; var x = &y; var r = &x }")

	stmts := fns["main"].Body.Stmts
	require.Len(t, stmts, 3)

	r := stmts[2].(*hlir.VarDecl)
	assert.Equal(t, "&i32", r.Var.Type.Repr())

	// The shared reference is reused rather than borrowed again.
	_, isRef := r.Init.(*hlir.Ref)
	assert.False(t, isRef)
}

func TestUnreachableCodeWarns(t *testing.T) {
	_, ctx := analyzeTest(t, "func main() { return; var x = 1 }")

	assert.False(t, ctx.Reporter.AnyErrors())
	assert.Equal(t, []string{"unreachable code"}, diagTitles(ctx, report.SeverityWarning))
}

func TestAnalysisErrors(t *testing.T) {
	cases := []struct {
		src   string
		title string
	}{
		{"func main() { var x: bool = 1 }", "mismatched types: expected `bool`, but got `i32`"},
		{"func main() { var x = true + false }", "operator `+` requires numeric operands, but got `bool`"},
		{"func main() { var x = !5 }", "operator `!` requires a `bool` operand, but got `i32`"},
		{"func main() { break }", "`break` outside of a loop"},
		{"func main() { continue }", "`continue` outside of a loop"},
		{"func main() { while true { break 1 } }", "`break` with a value is only allowed inside `loop`"},
		{"func main() { loop { continue 1 } }", "`continue` cannot carry a value"},
		{"func main() { var x = 5; var y = x[0] }", "cannot index into a value of type `i32`"},
		{"func f(a: i32) {}\nfunc main() { f() }", "function `f` expects 1 arguments, but got 0"},
		{"func main() { y = 1 }", "undefined identifier: `y`"},
		{"func main() { var a = 1; var a = 2 }", "variable `a` already declared in this scope"},
		{"func main() { var x: u8 = 256 }", "integer literal `256` out of range for type `u8`"},
		{"func main() { var x: i8 = -129 }", "integer literal `-129` out of range for type `i8`"},
		{"func main() { var x: u32 = -1 }", "cannot negate a value of unsigned type `u32`"},
		{"func main() i32 { return }", "expected a return value of type `i32`"},
		{"func main() { var x = if true { 1 } }", "`if` used as a value must have an `else` block"},
		{"func main() { var x = if true { 1 } else { false } }", "mismatched types: expected `i32`, but got `bool`"},
		{"func main() { var x = 1; var r = &x; *r = 2 }", "cannot mutate through a shared reference of type `&i32`"},
		{"func main() { var x = 1; var r = &mut x }", "cannot mutably borrow immutable variable `x`"},
		{"func main() i32 { var y = 7; var mut x = &y; var r = &mut x; *r = 5; return y }", "cannot mutably borrow through a shared reference"},
		{"func main() { var x = *5 }", "cannot dereference type `i32`"},
		{"struct P { x: i32, y: i32 }\nfunc main() { var p = P { x: 1 } }", "missing field `y` in literal of struct `P`"},
		{"struct P { x: i32 }\nfunc main() { var p = P { x: 1 }; var z = p.z }", "struct `P` has no field named `z`"},
		{`func main() { var s = "\q" }`, "unknown escape sequence: `\\q`"},
		{"func main() { var a = [] }", "cannot infer the type of an empty array"},
		{"func main() { var a = [1, 2]; var b = a[2] }", "index 2 is out of bounds for an array of length 2"},
		{"func main() { var x }", "cannot infer the type of `x`: add a type label or an initializer"},
		{"func main() { var x = main }", "function `main` cannot be used as a value: did you mean to call it?"},
		{"func main() { var x = 1; x() }", "variable `x` is not a function"},
		{"func main() { loop { break 1; break } }", "`break` without a value in a loop producing `i32`"},
	}

	for _, c := range cases {
		fns, ctx := analyzeTest(t, c.src)

		titles := diagTitles(ctx, report.SeverityError)
		if assert.NotEmpty(t, titles, c.src) {
			assert.Equal(t, c.title, titles[0], c.src)
		}

		assert.Empty(t, fns, c.src)
	}
}
