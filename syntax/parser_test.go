package syntax

import (
	"testing"

	"github.com/SeppDev/eclipse-sub000/ast"
	"github.com/SeppDev/eclipse-sub000/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTestExpr(t *testing.T, src string) string {
	ctx := newTestContext()
	expr := ParseExpr(ctx, "test.ecl", Tokenize(ctx, "test.ecl", src))

	require.False(t, ctx.Reporter.AnyErrors(), "unexpected errors parsing `%s`: %v", src, ctx.Reporter.Diagnostics())
	require.NotNil(t, expr)
	return ast.Sexpr(expr)
}

func parseTestFile(src string) (*ast.File, bool, *common.CompileContext) {
	ctx := newTestContext()
	path := common.EntryPath()

	file, ok := Parse(ctx, path, Tokenize(ctx, path.FilePath(), src))
	return file, ok, ctx
}

func TestExprPrecedence(t *testing.T) {
	cases := []struct {
		src, want string
	}{
		{"1 + 2", "(+ 1 2)"},
		{"1 * 2 + 3", "(+ (* 1 2) 3)"},
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"a.b.c.d", "(. (. (. a b) c) d)"},
		{"a == b && c < d || e", "(|| (&& (== a b) (< c d)) e)"},
		{"1 << 2 + 3", "(<< 1 (+ 2 3))"},
		{"a & b ^ c | d", "(| (^ (& a b) c) d)"},
		{"-x * y", "(* (- x) y)"},
		{"!f(x)", "(! (call f x))"},
		{"*p.q", "(* (. p q))"},
		{"&mut a[0]", "(&mut (index a 0))"},
		{"&&x", "(& (& x))"},
		{"f(1, 2)(3)", "(call (call f 1 2) 3)"},
		{"(1 + 2) * 3", "(* (paren (+ 1 2)) 3)"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, parseTestExpr(t, c.src), c.src)
	}
}

func TestAtomForms(t *testing.T) {
	cases := []struct {
		src, want string
	}{
		{"()", "(tuple)"},
		{"(1,)", "(tuple 1)"},
		{"(1, true)", "(tuple 1 true)"},
		{"[1, 2, 3]", "(array 1 2 3)"},
		{"io::print", "io::print"},
		{"Point { x: 1, y: 2 }", "(struct Point (x 1) (y 2))"},
		{"geom::Point {}", "(struct geom::Point)"},
		{"t.0.1", "(. (. t 0) 1)"},
		{"t.0", "(. t 0)"},
		{"'c'", "'c'"},
		{`"hi"`, `"hi"`},
		{"loop { }", "(loop (block 0))"},
		{"while x { 1 }", "(while x (block 1))"},
		{"if a { 1 } else if b { 2 } else { 3 }", "(if a (block 1) b (block 1) else (block 1))"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, parseTestExpr(t, c.src), c.src)
	}
}

func TestStructLitDisallowedInCondition(t *testing.T) {
	// `x {}` in a condition is the condition followed by the body.
	assert.Equal(t, "(if x (block 0))", parseTestExpr(t, "if x {}"))

	// Parentheses allow them again.
	assert.Equal(t, "(while (== a (paren (struct P (v 1)))) (block 0))", parseTestExpr(t, "while a == (P { v: 1 }) {}"))
}

func TestFloatSplitFieldSpans(t *testing.T) {
	ctx := newTestContext()
	expr := ParseExpr(ctx, "test.ecl", Tokenize(ctx, "test.ecl", "t.0.1"))

	outer, ok := expr.(*ast.Field)
	require.True(t, ok)
	inner, ok := outer.Root.(*ast.Field)
	require.True(t, ok)

	assert.Equal(t, 2, inner.Name.Span.Start.Col)
	assert.Equal(t, 3, inner.Name.Span.End.Col)
	assert.Equal(t, 4, outer.Name.Span.Start.Col)
	assert.Equal(t, 5, outer.Name.Span.End.Col)
}

func TestParseIsDeterministic(t *testing.T) {
	src := "func main() { var mut x: i32 = 1 + 2 * 3; x -= 4 }"

	first, ok1, _ := parseTestFile(src)
	second, ok2, _ := parseTestFile(src)

	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestParseFunctionSignature(t *testing.T) {
	file, ok, _ := parseTestFile(`
pub func add(a: i32, mut b i32, &c: &'a mut [i32; 4]) i32 {
	return a + b
}

extern "C" func puts(s: &str) i32
`)

	require.True(t, ok)
	require.Len(t, file.Items, 2)

	add := file.Items[0].(*ast.FuncDef)
	assert.Equal(t, "add", add.Name.Value)
	_, isPub := add.Modifiers.Has(TOK_PUB)
	assert.True(t, isPub)

	require.Len(t, add.Params, 3)
	assert.True(t, add.Params[1].Mutable)
	assert.True(t, add.Params[2].ByRef)

	ref := add.Params[2].Type.(*ast.RefType)
	assert.Equal(t, "a", ref.Lifetime)
	assert.True(t, ref.Mutable)

	arr := ref.Elem.(*ast.ArrayType)
	assert.Equal(t, "4", arr.Len.Value)
	assert.Equal(t, "i32", arr.Elem.(*ast.PrimType).Name)

	assert.Equal(t, "i32", add.ReturnType.(*ast.PrimType).Name)
	require.NotNil(t, add.Body)
	require.Len(t, add.Body.Stmts, 1)
	assert.Equal(t, "(+ a b)", ast.Sexpr(add.Body.Stmts[0].(*ast.Return).Value))

	puts := file.Items[1].(*ast.FuncDef)
	abi, isExtern := puts.Modifiers.Has(TOK_EXTERN)
	require.True(t, isExtern)
	assert.Equal(t, "C", abi.Value)
	assert.Nil(t, puts.Body)
}

func TestParseTypeDefs(t *testing.T) {
	file, ok, _ := parseTestFile(`
struct Point { x: f64, y: f64 }

enum Shape {
	Empty,
	Circle(Point, f64),
	Rect { min: Point, max: Point },
}
`)

	require.True(t, ok)
	require.Len(t, file.Items, 2)

	point := file.Items[0].(*ast.StructDef)
	assert.Equal(t, "Point", point.Name.Value)
	assert.Len(t, point.Fields, 2)

	shape := file.Items[1].(*ast.EnumDef)
	require.Len(t, shape.Variants, 3)
	assert.Equal(t, ast.VariantUnit, shape.Variants[0].Kind)
	assert.Equal(t, ast.VariantTuple, shape.Variants[1].Kind)
	assert.Len(t, shape.Variants[1].Payload, 2)
	assert.Equal(t, ast.VariantStruct, shape.Variants[2].Kind)
	assert.Len(t, shape.Variants[2].Fields, 2)
}

func TestParseImportsAndUseTrees(t *testing.T) {
	file, ok, _ := parseTestFile(`
import math
import io
use math::{vec::Vec2, self::sqrt}
use super::util
`)

	require.True(t, ok)
	require.Len(t, file.Imports, 2)
	assert.Equal(t, "math", file.Imports[0].Value)
	assert.Equal(t, "io", file.Imports[1].Value)

	require.Len(t, file.Items, 2)
	paths := file.Items[0].(*ast.UseDecl).Tree.Flatten()
	require.Len(t, paths, 2)

	var names [][]string
	for _, path := range paths {
		var segs []string
		for _, seg := range path {
			segs = append(segs, seg.Value)
		}
		names = append(names, segs)
	}

	assert.Equal(t, [][]string{{"math", "vec", "Vec2"}, {"math", "self", "sqrt"}}, names)
}

func TestParseRecoversAcrossItems(t *testing.T) {
	file, ok, ctx := parseTestFile(`
func broken() {
	var = 5
}

func fine() {
	return
}

func alsoBroken( {
}
`)

	assert.False(t, ok)
	assert.Equal(t, 2, ctx.Reporter.ErrorCount())

	require.Len(t, file.Items, 1)
	assert.Equal(t, "fine", file.Items[0].(*ast.FuncDef).Name.Value)
}

func TestParseErrorMessages(t *testing.T) {
	cases := []struct {
		src, want string
	}{
		{"func f(a: i32 b: i32) {}", "expected `,` or `)`, but got identifier `b`"},
		{"func f() { var x = ; }", "expected expression, but got `;`"},
		{"func f() { return 1", "expected `}`, but got end of file"},
		{"pub pub func f() {}", "duplicate modifier `pub`"},
		{"pub import x", "modifiers are not allowed on imports"},
		{"use a::{}", "empty use group"},
		{"42", "expected item, but got integer literal `42`"},
	}

	for _, c := range cases {
		_, ok, ctx := parseTestFile(c.src)
		assert.False(t, ok, c.src)

		diags := ctx.Reporter.Diagnostics()
		require.NotEmpty(t, diags, c.src)
		assert.Equal(t, c.want, diags[0].Title, c.src)
	}
}

func TestDuplicateModifierLabelsFirst(t *testing.T) {
	_, _, ctx := parseTestFile("pub static pub func f() {}")

	diags := ctx.Reporter.Diagnostics()
	require.Len(t, diags, 1)
	require.Len(t, diags[0].Secondary, 1)
	assert.Equal(t, "first specified here", diags[0].Secondary[0].Message)
	assert.Equal(t, 0, diags[0].Secondary[0].Span.Start.Col)
}

func TestNewlineEndsPrefixableOperators(t *testing.T) {
	file, ok, ctx := parseTestFile(`
func main() {
	var mut x = 0
	var r = &mut x
	*r = 5
	var n = x
	-1
	var s = (x
		* 2)
	var t = x
		+ 1
	var u = [1, 2]
	[0]
	var v = f(
		x)
		.y
}
`)

	require.True(t, ok, "unexpected errors: %v", ctx.Reporter.Diagnostics())
	require.Len(t, file.Items, 1)

	stmts := file.Items[0].(*ast.FuncDef).Body.Stmts
	require.Len(t, stmts, 10)

	assert.Equal(t, "(&mut x)", ast.Sexpr(stmts[1].(*ast.VarDecl).Init))

	assign := stmts[2].(*ast.Assign)
	assert.Equal(t, "(* r)", ast.Sexpr(assign.Target))
	assert.Equal(t, "5", ast.Sexpr(assign.Value))

	assert.Equal(t, "x", ast.Sexpr(stmts[3].(*ast.VarDecl).Init))
	assert.Equal(t, "(- 1)", ast.Sexpr(stmts[4].(ast.Expr)))
	assert.Equal(t, "(paren (* x 2))", ast.Sexpr(stmts[5].(*ast.VarDecl).Init))
	assert.Equal(t, "(+ x 1)", ast.Sexpr(stmts[6].(*ast.VarDecl).Init))
	assert.Equal(t, "(. (call f x) y)", ast.Sexpr(stmts[9].(*ast.VarDecl).Init))
}
