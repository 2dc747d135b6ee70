package depm

import (
	"testing"

	"github.com/SeppDev/eclipse-sub000/common"
	"github.com/SeppDev/eclipse-sub000/report"
	"github.com/SeppDev/eclipse-sub000/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext() *common.CompileContext {
	return common.NewCompileContext(report.NewReporter(report.LogLevelSilent), common.DefaultTabSize)
}

// countingResolver counts how many times each file is read.
type countingResolver struct {
	*MapResolver

	reads map[string]int
}

func (cr *countingResolver) ReadFile(path common.Path) (string, error) {
	cr.reads[path.FilePath()]++
	return cr.MapResolver.ReadFile(path)
}

func moduleKeys(set *ModuleSet) []string {
	var keys []string
	for _, mod := range set.Order {
		keys = append(keys, mod.Key())
	}

	return keys
}

func diagTitles(ctx *common.CompileContext) []string {
	var titles []string
	for _, diag := range ctx.Reporter.Diagnostics() {
		titles = append(titles, diag.Title)
	}

	return titles
}

func TestResolveModuleRootsAndLeaves(t *testing.T) {
	ctx := newTestContext()
	fr := NewMapResolver(map[string]string{
		"src/main.ecl":          "import math\nimport io\nfunc main() {}",
		"src/math.ecl":          "import vec\npub func sq(x: i32) i32 { return x * x }",
		"src/math/vec.ecl":      "pub struct Vec2 { x: f64, y: f64 }",
		"src/io/mod.ecl":        "import fmt",
		"src/io/fmt.ecl":        "",
		"src/unreachable.ecl":   "this does not parse",
		"src/math/vec/mod.ecl2": "",
	})

	set := ResolveModules(ctx, fr, common.EntryPath())

	require.False(t, ctx.Reporter.AnyErrors(), diagTitles(ctx))
	assert.Equal(t, []string{"src/main", "src/math", "src/math/vec", "src/io/mod", "src/io/fmt"}, moduleKeys(set))

	require.NotNil(t, set.Entry)
	assert.Equal(t, set.Modules["src/math"], set.Entry.Imports["math"])
	assert.Equal(t, set.Modules["src/io/mod"], set.Entry.Imports["io"])
	assert.Equal(t, set.Modules["src/math"], set.Modules["src/math/vec"].Parent)

	src, ok := set.Lookup("src/math/vec.ecl")
	assert.True(t, ok)
	assert.Contains(t, src, "Vec2")
}

func TestResolveIsClosedUnderImports(t *testing.T) {
	ctx := newTestContext()
	set := ResolveModules(ctx, NewMapResolver(map[string]string{
		"src/main.ecl":   "import a\nimport b\nfunc main() {}",
		"src/a.ecl":      "import c",
		"src/a/c.ecl":    "",
		"src/b/mod.ecl":  "import d",
		"src/b/d.ecl":    "",
		"src/other.ecl":  "",
	}), common.EntryPath())

	require.False(t, ctx.Reporter.AnyErrors())

	for _, mod := range set.Order {
		for _, imported := range mod.Imports {
			assert.Contains(t, set.Modules, imported.Key())
		}
	}

	assert.Contains(t, set.Modules, "src/main")
	assert.NotContains(t, set.Modules, "src/other")
}

func TestResolveCyclicImports(t *testing.T) {
	ctx := newTestContext()
	fr := &countingResolver{
		MapResolver: NewMapResolver(map[string]string{
			"src/main.ecl":  "import a\nimport main\nfunc main() {}",
			"src/a/mod.ecl": "import mod\nimport main",
			"src/a/main.ecl": "",
		}),
		reads: make(map[string]int),
	}

	set := ResolveModules(ctx, fr, common.EntryPath())

	require.False(t, ctx.Reporter.AnyErrors(), diagTitles(ctx))
	assert.Equal(t, []string{"src/main", "src/a/mod", "src/a/main"}, moduleKeys(set))

	for file, n := range fr.reads {
		assert.Equal(t, 1, n, file)
	}

	assert.Equal(t, set.Entry, set.Entry.Imports["main"])
	aMod := set.Modules["src/a/mod"]
	assert.Equal(t, aMod, aMod.Imports["mod"])
	assert.Equal(t, set.Modules["src/a/main"], aMod.Imports["main"])
}

func TestResolveErrors(t *testing.T) {
	ctx := newTestContext()
	set := ResolveModules(ctx, NewMapResolver(map[string]string{
		"src/main.ecl":    "import dup\nimport missing\nimport bad\nimport ok\nimport ok\nfunc main() {}",
		"src/dup.ecl":     "",
		"src/dup/mod.ecl": "",
		"src/bad.ecl":     "func {",
		"src/ok.ecl":      "",
	}), common.EntryPath())

	titles := diagTitles(ctx)
	require.Len(t, titles, 4)
	assert.Equal(t, "ambiguous module `dup`: both `src/dup.ecl` and `src/dup/mod.ecl` exist", titles[0])
	assert.Equal(t, "unresolved module `missing`: neither `src/missing.ecl` nor `src/missing/mod.ecl` exist", titles[1])
	assert.Equal(t, "module `ok` imported multiple times", titles[2])
	assert.Equal(t, "src/bad.ecl", ctx.Reporter.Diagnostics()[3].File)

	// The module which failed to parse is dropped.
	assert.Equal(t, []string{"src/main", "src/ok"}, moduleKeys(set))
}

func TestResolveMissingEntry(t *testing.T) {
	ctx := newTestContext()
	set := ResolveModules(ctx, NewMapResolver(map[string]string{}), common.EntryPath())

	assert.Nil(t, set.Entry)
	assert.Equal(t, []string{"file not found: src/main.ecl"}, diagTitles(ctx))
}

// -----------------------------------------------------------------------------

func collectTest(t *testing.T, files map[string]string) (*GlobalTable, *common.CompileContext) {
	ctx := newTestContext()
	set := ResolveModules(ctx, NewMapResolver(files), common.EntryPath())
	require.False(t, ctx.Reporter.AnyErrors(), diagTitles(ctx))

	return Collect(ctx, set), ctx
}

func TestCollectSignaturesAndKeys(t *testing.T) {
	table, ctx := collectTest(t, map[string]string{
		"src/main.ecl": `
import geom
use geom::{Point, dist}

func helper(p: Point, &out: f64) {}
func main() i32 { return 0 }
extern "C" func puts(s: &str) i32
`,
		"src/geom.ecl": `
pub struct Point { x: f64, y: f64 }
pub func dist(a: Point, b: Point) f64 { return 0.0 }
`,
	})

	require.False(t, ctx.Reporter.AnyErrors(), diagTitles(ctx))

	mainMod := table.Modules["src/main"]
	require.NotNil(t, table.Main)
	assert.Equal(t, "main", table.Main.Key)
	assert.Equal(t, types.PrimTypeI32, table.Main.ReturnType)

	helper := mainMod.Funcs["helper"]
	require.Len(t, helper.Params, 2)
	assert.Equal(t, "Point", helper.Params[0].Type.Repr())
	assert.True(t, helper.Params[1].ByRef)
	assert.NotEqual(t, "main", helper.Key)

	puts := mainMod.Funcs["puts"]
	assert.Equal(t, "puts", puts.Key)
	assert.True(t, puts.Extern)

	assert.Equal(t, SymType, mainMod.Uses["Point"].Kind)
	assert.Equal(t, SymFunc, mainMod.Uses["dist"].Kind)

	// Keys are unique across the program.
	keys := make(map[string]bool)
	for _, mt := range table.Order {
		for _, fn := range mt.FuncOrder {
			assert.False(t, keys[fn.Key], fn.Key)
			keys[fn.Key] = true
		}
	}
}

func TestCollectErrors(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"func main() {}\nfunc main() {}", "function `main` defined multiple times"},
		{"struct A { x: i32 }\nenum A { B }\nfunc main() {}", "type `A` defined multiple times"},
		{"struct A { x: i32, x: bool }\nfunc main() {}", "field `x` defined multiple times"},
		{"struct A { b: B }\nstruct B { a: A }\nfunc main() {}", "type `A` has infinite size"},
		{"enum List { Nil, Cons(i32, List) }\nfunc main() {}", "type `List` has infinite size"},
		{"func f(x: Self) {}\nfunc main() {}", "`Self` is only allowed inside an implementation"},
		{"func f(x: [i32]) {}\nfunc main() {}", "slice types are not supported"},
		{"func f(x: &mut &i32) {}\nfunc main() {}", "cannot mutably borrow through a shared reference"},
		{"func f(x: Nope) {}\nfunc main() {}", "undefined symbol: `Nope`"},
		{"func f(x: str) {}\nfunc main() {}", "type `str` has no size: use `&str`"},
		{"async func main() {}", "async functions are not supported"},
		{"func helper() {}", "missing `main` function"},
		{"func main(x: i32) {}", "`main` must not take any parameters"},
		{"func main() bool { return true }", "`main` must return `void` or an integer type"},
		{"extern \"C\" func printf(x: i32) i32\nfunc main() {}", "external function cannot be named `printf`: the symbol is defined by the runtime"},
		{"extern \"C\" func print(x: i32)\nfunc main() {}", "external function cannot be named `print`: the symbol is defined by the runtime"},
	}

	for _, c := range cases {
		ctx := newTestContext()
		set := ResolveModules(ctx, NewMapResolver(map[string]string{"src/main.ecl": c.src}), common.EntryPath())
		require.False(t, ctx.Reporter.AnyErrors(), c.src)

		Collect(ctx, set)
		assert.Contains(t, diagTitles(ctx), c.want, c.src)
	}
}

func TestCollectPrivateFunction(t *testing.T) {
	ctx := newTestContext()
	set := ResolveModules(ctx, NewMapResolver(map[string]string{
		"src/main.ecl": "import util\nuse util::secret\nfunc main() {}",
		"src/util.ecl": "func secret() {}",
	}), common.EntryPath())

	Collect(ctx, set)
	assert.Equal(t, []string{"function `secret` is private to module `src::util`"}, diagTitles(ctx))
}

func TestCollectStaticWarns(t *testing.T) {
	table, ctx := collectTest(t, map[string]string{"src/main.ecl": "static func main() {}"})

	assert.False(t, ctx.Reporter.AnyErrors())
	assert.Equal(t, 1, ctx.Reporter.WarningCount())
	assert.NotNil(t, table.Main)
}

func TestResolveSuperPath(t *testing.T) {
	table, ctx := collectTest(t, map[string]string{
		"src/main.ecl":  "import a\npub struct Shared { v: i32 }\nfunc main() {}",
		"src/a.ecl":     "use super::Shared\npub func get(s: Shared) {}",
	})

	require.False(t, ctx.Reporter.AnyErrors(), diagTitles(ctx))

	get := table.Modules["src/a"].Funcs["get"]
	assert.Equal(t, table.Modules["src/main"].Types["Shared"], get.Params[0].Type)
}

func TestCollectSharedExterns(t *testing.T) {
	table, ctx := collectTest(t, map[string]string{
		"src/main.ecl": "import io\nextern \"C\" func puts(s: &str) i32\nfunc main() {}",
		"src/io.ecl":   "extern \"C\" func puts(s: &str) i32",
	})

	require.False(t, ctx.Reporter.AnyErrors(), diagTitles(ctx))
	assert.Equal(t, "puts", table.Modules["src/main"].Funcs["puts"].Key)
	assert.Equal(t, "puts", table.Modules["src/io"].Funcs["puts"].Key)
}

func TestCollectConflictingExterns(t *testing.T) {
	_, ctx := collectTest(t, map[string]string{
		"src/main.ecl": "import io\nextern \"C\" func puts(s: &str) i32\nfunc main() {}",
		"src/io.ecl":   "extern \"C\" func puts(s: &str, n: i32) i32",
	})

	assert.Equal(t, []string{"external function `puts` conflicts with its declaration in `src/main.ecl`"}, diagTitles(ctx))
}
