package codegen

import (
	"regexp"
	"strings"
	"testing"

	"github.com/SeppDev/eclipse-sub000/common"
	"github.com/SeppDev/eclipse-sub000/depm"
	"github.com/SeppDev/eclipse-sub000/lower"
	"github.com/SeppDev/eclipse-sub000/report"
	"github.com/SeppDev/eclipse-sub000/walk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTarget, _ = NewTarget("amd64", "linux")

// generateTest compiles a single entry file to LLVM IR.  The source must have
// no errors.
func generateTest(t *testing.T, src string) string {
	return generateFiles(t, map[string]string{"src/main.ecl": src})
}

// generateFiles compiles a whole project to LLVM IR.  The sources must have no
// errors.
func generateFiles(t *testing.T, files map[string]string) string {
	ctx := common.NewCompileContext(report.NewReporter(report.LogLevelSilent), common.DefaultTabSize)

	set := depm.ResolveModules(ctx, depm.NewMapResolver(files), common.EntryPath())
	table := depm.Collect(ctx, set)
	hfns := walk.Analyze(ctx, table)
	require.False(t, ctx.Reporter.AnyErrors())

	return Generate(testTarget, lower.LowerAll(ctx, hfns))
}

// funcText returns the text of the first function definition whose header
// matches a pattern.
func funcText(t *testing.T, module, header string) string {
	loc := regexp.MustCompile(header).FindStringIndex(module)
	require.NotNil(t, loc, "missing %q in:\n%s", header, module)

	start := loc[0]

	end := strings.Index(module[start:], "\n}\n")
	require.NotEqual(t, -1, end)

	return module[start : start+end+3]
}

func TestModuleStartsWithTripleAndPrologue(t *testing.T) {
	module := generateTest(t, "func main() {}")

	assert.True(t, strings.HasPrefix(module, "target triple = \"x86_64-unknown-linux-gnu\"\n\n"+prologue))
}

func TestEmptyMain(t *testing.T) {
	module := generateTest(t, "func main() {}")

	assert.Equal(t, "define void @main() {\nstart:\n\tret void\n}\n", funcText(t, module, `define void @main\(\)`))
	assert.Equal(t, 1, strings.Count(module, "define void @main()"))
}

func TestMainReturnsZero(t *testing.T) {
	module := generateTest(t, "func main() i32 { return 0 }")

	text := funcText(t, module, `define i32 @main\(\)`)
	assert.True(t, strings.HasSuffix(text, "\tret i32 0\n}\n"), text)
}

func TestVarDeclAllocaAndStore(t *testing.T) {
	module := generateTest(t, "func main() { var x = 5 }")

	assert.Contains(t, module, "alloca i32, align 4")
	assert.Contains(t, module, "store i32 5, ptr %")
}

func TestAssignStoresTwice(t *testing.T) {
	module := generateTest(t, "func main() { var mut x: i32 = 5; x = 2 }")
	text := funcText(t, module, `define void @main\(\)`)

	assert.Equal(t, 2, strings.Count(text, "\tstore i32 "))

	// Both stores go to the same slot.
	var slots []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "\tstore i32 ") {
			slots = append(slots, line[strings.LastIndex(line, " ")+1:])
		}
	}

	require.Len(t, slots, 2)
	assert.Equal(t, slots[0], slots[1])
}

func TestIfComparison(t *testing.T) {
	module := generateTest(t, "func main() { if 1 == 2 { 3 } else { 4 } }")
	text := funcText(t, module, `define void @main\(\)`)

	assert.Contains(t, text, "= icmp eq i32 1, 2")
	assert.Equal(t, 1, strings.Count(text, "br i1 "))
	assert.Equal(t, 2, strings.Count(text, "br label "))
}

func TestAllocasAreHoisted(t *testing.T) {
	module := generateTest(t, `
func count() i32 {
	var mut i = 0
	while i < 10 {
		var step = 2
		i += step
	}

	i
}

func main() {}
`)

	text := funcText(t, module, `define i32 @[a-z]+\(\)`)
	lines := strings.Split(text, "\n")

	// Every alloca directly follows `start:`.
	require.Equal(t, "start:", lines[1])
	assert.Contains(t, lines[2], "alloca i32")
	assert.Contains(t, lines[3], "alloca i32")
	assert.Equal(t, 2, strings.Count(text, "alloca"))
}

func TestSignAwareOpcodes(t *testing.T) {
	module := generateTest(t, `
func f(a: i32, b: i32, c: u32, d: u32, x: f64, y: f64) bool {
	var q = a / b % b
	var r = c / d % d
	var s = x / y
	var t = a >> 1
	var u = c >> 1
	a < b && c < d || x < y
}

func main() {}
`)

	for _, opcode := range []string{
		"sdiv i32", "srem i32", "udiv i32", "urem i32", "fdiv double",
		"ashr i32", "lshr i32", "icmp slt i32", "icmp ult i32", "fcmp olt double",
	} {
		assert.Contains(t, module, "= "+opcode+" ", opcode)
	}
}

func TestNegationAndNot(t *testing.T) {
	module := generateTest(t, `
func neg(a: i32, x: f32, b: bool) {
	var m = -a
	var n = -x
	var o = !b
}

func main() {}
`)

	assert.Contains(t, module, "= sub i32 0, %")
	assert.Contains(t, module, "= fsub float 0x8000000000000000, %")
	assert.Contains(t, module, "= xor i1 %")
	assert.Contains(t, module, ", true\n")
}

func TestAggregatesUseSretAndMemcpy(t *testing.T) {
	module := generateTest(t, `
struct Point { x: i32, y: i32 }

func origin() Point { Point { x: 1, y: 2 } }

func copy(p: Point) Point { p }

func main() {
	var p = copy(origin())
}
`)

	// Functions are emitted under generated keys.
	assert.Regexp(t, `define void @[a-z]+\(ptr sret\(\[8 x i8\]\) %0\) \{`, module)
	assert.Regexp(t, `define void @[a-z]+\(ptr sret\(\[8 x i8\]\) %0, ptr %[a-z]+\.arg\) \{`, module)
	assert.Contains(t, module, "= getelementptr inbounds i8, ptr %0, i64 4")
	assert.Contains(t, module, "call void @llvm.memcpy.p0.p0.i64(ptr %0, ptr %")
	assert.Regexp(t, `\tcall void @[a-z]+\(ptr sret\(\[8 x i8\]\) %[a-z]+\)\n`, module)
	assert.Regexp(t, `\tcall void @[a-z]+\(ptr sret\(\[8 x i8\]\) %[a-z]+, ptr %[a-z]+\)\n`, module)
}

func TestStringsAndExterns(t *testing.T) {
	module := generateTest(t, `
extern "C" func puts(s: &str) i32

func main() {
	puts("hi\n")
}
`)

	assert.Contains(t, module, "declare i32 @puts(ptr)\n")
	assert.Regexp(t, `@\.str\.[a-z]+ = private unnamed_addr constant \[4 x i8\] c"hi\\0A\\00"`, module)
	assert.Regexp(t, `= bitcast ptr @\.str\.[a-z]+ to ptr`, module)
	assert.Regexp(t, `= call i32 @puts\(ptr %[a-z]+\)`, module)
}

func TestSharedExternIsDeclaredOnce(t *testing.T) {
	module := generateFiles(t, map[string]string{
		"src/main.ecl": "import io\n\nextern \"C\" func puts(s: &str) i32\n\nfunc main() { puts(\"a\") }",
		"src/io.ecl":   "extern \"C\" func puts(s: &str) i32\n\npub func say() { puts(\"b\") }",
	})

	assert.Equal(t, 1, strings.Count(module, "declare i32 @puts(ptr)\n"))
}

func TestArrayIndexing(t *testing.T) {
	module := generateTest(t, `
func get(xs: [u8; 4], i: u8) u8 { xs[i] }

func main() {}
`)

	assert.Contains(t, module, "alloca [4 x i8], align 1")
	assert.Contains(t, module, "= zext i8 %")
	assert.Regexp(t, `= getelementptr inbounds i8, ptr %[a-z]+, i64 %cg\.1`, module)
}

func TestTupleTypes(t *testing.T) {
	module := generateTest(t, `
func main() {
	var a = (1, true)
	var b = ((1, 2), 3)
}
`)

	assert.Contains(t, module, "alloca { i32, i1 }, align 4")
	assert.Contains(t, module, "alloca [12 x i8], align 4")
}

func TestCallsPrint(t *testing.T) {
	module := generateTest(t, "func main() { print(42) }")

	assert.Contains(t, module, "\tcall void @print(i32 42)\n")
}

func TestGenerateIsDeterministic(t *testing.T) {
	src := `
enum Shape { Empty, Circle(f64), Rect(i32, i32) }

func area(r: i32) i32 {
	var mut total = 0
	var mut i = 0
	loop {
		if i == r { break total }
		total += i * 2
		i += 1
	}
}

func main() i32 {
	var s = Shape::Rect(1, 2)
	print(area(4))
	return 0
}
`

	assert.Equal(t, generateTest(t, src), generateTest(t, src))
}

func TestTargetTriples(t *testing.T) {
	tests := []struct {
		goarch, goos string
		expected     string
	}{
		{"amd64", "linux", "x86_64-unknown-linux-gnu"},
		{"arm64", "darwin", "arm64-apple-darwin"},
		{"amd64", "windows", "x86_64-pc-windows-msvc"},
		{"riscv64", "freebsd", "riscv64-unknown-freebsd"},
	}

	for _, test := range tests {
		target, err := NewTarget(test.goarch, test.goos)
		require.NoError(t, err)
		assert.Equal(t, test.expected, target.Triple())
		assert.Equal(t, 64, target.PointerBits)
	}
}

func TestNarrowPointerTargetsAreRejected(t *testing.T) {
	tests := []struct {
		goarch, goos string
		triple       string
	}{
		{"386", "linux", "i686-unknown-linux-gnu"},
		{"arm", "linux", "armv7-unknown-linux-gnueabihf"},
	}

	for _, test := range tests {
		_, err := NewTarget(test.goarch, test.goos)
		assert.EqualError(
			t, err,
			"unsupported target `"+test.triple+"`: only targets with 64-bit pointers are supported",
		)
	}
}

func TestUsizeLayoutMatchesTarget(t *testing.T) {
	module := generateTest(t, `
func second() usize {
	var a: [usize; 2] = [1, 2]
	a[1]
}

func main() {}
`)

	// Elements are stored 8 bytes apart and indexed as 8-byte integers.
	assert.Contains(t, module, "alloca [16 x i8], align 8")
	assert.Contains(t, module, "= getelementptr inbounds i8, ptr %")
	assert.Contains(t, module, ", i64 8\n")
	assert.Regexp(t, `= sext i32 1 to i64\n\t%[a-z]+ = getelementptr inbounds i64, ptr %[a-z]+, i64 %cg\.[0-9]+\n`, module)
	assert.Equal(t, 64, testTarget.PointerBits)
}
