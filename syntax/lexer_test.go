package syntax

import (
	"strings"
	"testing"

	"github.com/SeppDev/eclipse-sub000/common"
	"github.com/SeppDev/eclipse-sub000/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext() *common.CompileContext {
	return common.NewCompileContext(report.NewReporter(report.LogLevelSilent), common.DefaultTabSize)
}

func tokenKinds(toks []*Token) []int {
	kinds := make([]int, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}

	return kinds
}

func TestTokenizeEndsInSingleEOF(t *testing.T) {
	for _, src := range []string{"", "   \n\t", "func main() {}", "// only a comment"} {
		toks := Tokenize(newTestContext(), "test.ecl", src)

		require.NotEmpty(t, toks)
		assert.Equal(t, TOK_EOF, toks[len(toks)-1].Kind)

		for _, tok := range toks[:len(toks)-1] {
			assert.NotEqual(t, TOK_EOF, tok.Kind)
		}
	}
}

func TestTokenValuesReconstructSource(t *testing.T) {
	src := `func main() i32 {
	var mut x: i32 = 5 // five
	x += 2; /* block
	comment */ return x << 1
}`

	toks := Tokenize(newTestContext(), "test.ecl", src)

	sb := &strings.Builder{}
	for _, tok := range toks {
		sb.WriteString(tok.Value)
	}

	stripped := "funcmain()i32{varmutx:i32=5x+=2;returnx<<1}"
	assert.Equal(t, stripped, sb.String())
}

func TestTokenSpansDoNotOverlap(t *testing.T) {
	ctx := newTestContext()
	toks := Tokenize(ctx, "test.ecl", "var x = foo(1, 2.5) >>= 'c' + \"s\\\"t\"")

	for i := 1; i < len(toks); i++ {
		assert.LessOrEqual(t, toks[i-1].Span.End.Offset, toks[i].Span.Start.Offset)
		assert.LessOrEqual(t, toks[i].Span.Start.Offset, toks[i].Span.End.Offset)
	}

	assert.False(t, ctx.Reporter.AnyErrors())
}

func TestLongestMatchOperators(t *testing.T) {
	toks := Tokenize(newTestContext(), "test.ecl", "<<= << <= < :: : ... && &")

	assert.Equal(t, []int{
		TOK_LSHIFT_ASSIGN, TOK_LSHIFT, TOK_LTEQ, TOK_LT,
		TOK_DCOLON, TOK_COLON, TOK_ELLIPSIS, TOK_LAND, TOK_AMP, TOK_EOF,
	}, tokenKinds(toks))
}

func TestShorterOperatorFallback(t *testing.T) {
	// `..` is not an operator: it lexes as two dots.
	toks := Tokenize(newTestContext(), "test.ecl", "a..b")

	assert.Equal(t, []int{TOK_IDENT, TOK_DOT, TOK_DOT, TOK_IDENT, TOK_EOF}, tokenKinds(toks))
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks := Tokenize(newTestContext(), "test.ecl", "if iffy mut mutable self Self _x1")

	assert.Equal(t, []int{
		TOK_IF, TOK_IDENT, TOK_MUT, TOK_IDENT, TOK_SELF, TOK_IDENT, TOK_IDENT, TOK_EOF,
	}, tokenKinds(toks))
}

func TestNumericLiterals(t *testing.T) {
	toks := Tokenize(newTestContext(), "test.ecl", "12 3.25 1. t.0.1")

	assert.Equal(t, []int{
		TOK_INTLIT, TOK_FLOATLIT, TOK_INTLIT, TOK_DOT, TOK_IDENT, TOK_DOT, TOK_FLOATLIT, TOK_EOF,
	}, tokenKinds(toks))
	assert.Equal(t, "3.25", toks[1].Value)
	assert.Equal(t, "0.1", toks[6].Value)
}

func TestLifetimesAndCharLiterals(t *testing.T) {
	toks := Tokenize(newTestContext(), "test.ecl", "&'a mut x 'b' '\\n'")

	require.Equal(t, []int{
		TOK_AMP, TOK_LIFETIME, TOK_MUT, TOK_IDENT, TOK_CHARLIT, TOK_CHARLIT, TOK_EOF,
	}, tokenKinds(toks))
	assert.Equal(t, "'a", toks[1].Value)
	assert.Equal(t, "'b'", toks[4].Value)
	assert.Equal(t, `'\n'`, toks[5].Value)
}

func TestUnknownCharacterIsReported(t *testing.T) {
	ctx := newTestContext()
	toks := Tokenize(ctx, "test.ecl", "a $ b")

	assert.Equal(t, []int{TOK_IDENT, TOK_UNKNOWN, TOK_IDENT, TOK_EOF}, tokenKinds(toks))

	diags := ctx.Reporter.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, "unrecognized character: `$`", diags[0].Title)
	assert.Equal(t, 2, diags[0].Span.Start.Col)
}

func TestUnclosedLiteralsAreReported(t *testing.T) {
	ctx := newTestContext()
	toks := Tokenize(ctx, "test.ecl", `"abc`)

	assert.Equal(t, []int{TOK_STRINGLIT, TOK_EOF}, tokenKinds(toks))
	assert.Equal(t, 1, ctx.Reporter.ErrorCount())

	ctx = newTestContext()
	Tokenize(ctx, "test.ecl", "x /* never closed")
	assert.Equal(t, 1, ctx.Reporter.ErrorCount())
}

func TestPositionsTrackLinesAndTabs(t *testing.T) {
	toks := Tokenize(newTestContext(), "test.ecl", "a\n\tb\r\nc")

	require.Len(t, toks, 4)
	assert.Equal(t, report.TextPosition{Line: 1, Col: 0, Offset: 0}, toks[0].Span.Start)
	assert.Equal(t, report.TextPosition{Line: 2, Col: 4, Offset: 3}, toks[1].Span.Start)
	assert.Equal(t, 3, toks[2].Span.Start.Line)
	assert.Equal(t, 0, toks[2].Span.Start.Col)
}
