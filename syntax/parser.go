package syntax

import (
	"strings"

	"github.com/SeppDev/eclipse-sub000/ast"
	"github.com/SeppDev/eclipse-sub000/common"
	"github.com/SeppDev/eclipse-sub000/report"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse.

// Parser is the parser for an Eclipse source file.  It performs two tasks:
// syntax analysis producing the AST of the file and the discovery of the
// file's imports.  It is a recursive descent parser for statements and
// definitions and a Pratt parser for expressions.  All parsing functions
// assume that they begin with the parser centered on the first token of their
// production and must consume all tokens (including the last) of their
// production, leaving the parser on the next token.  Parsers are created once
// per file.
type Parser struct {
	ctx *common.CompileContext

	// The file being built.
	file *ast.File

	// The display path of the file used for error reporting.
	displayPath string

	// The token stream being parsed.  It always ends in an EOF token.
	toks []*Token
	ndx  int

	// The token the parser is positioned on.
	tok *Token

	// The token the parser was positioned on before the last call to next.
	lookbehind *Token

	// Whether struct literals are disallowed in the current expression
	// context: `if x {}` must not parse `x {}` as a struct literal.
	noStructLit bool

	// The number of enclosing parentheses and brackets.  Outside of them, an
	// operator which can also begin an expression does not continue the
	// expression onto a new line.
	nestDepth int

	// Whether any item of the file failed to parse.
	failed bool
}

// Parse parses the token stream of a file.  It returns the AST of the file
// and whether every item of the file parsed successfully.  Items which failed
// to parse are omitted from the AST.
func Parse(ctx *common.CompileContext, path common.Path, toks []*Token) (*ast.File, bool) {
	p := &Parser{
		ctx:         ctx,
		file:        &ast.File{Path: path},
		displayPath: path.FilePath(),
		toks:        toks,
		tok:         toks[0],
	}

	p.parseFile()

	return p.file, !p.failed
}

// ParseExpr parses a standalone expression from a token stream.  It returns
// nil if the expression failed to parse.
func ParseExpr(ctx *common.CompileContext, file string, toks []*Token) (expr ast.Expr) {
	p := &Parser{
		ctx:         ctx,
		displayPath: file,
		toks:        toks,
		tok:         toks[0],
	}

	defer ctx.Reporter.CatchErrors(file)

	e := p.parseExpr()
	p.want(TOK_EOF)

	expr = e
	return
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.  The parser never moves past the
// EOF token.
func (p *Parser) next() {
	p.lookbehind = p.tok

	if p.ndx < len(p.toks)-1 {
		p.ndx++
		p.tok = p.toks[p.ndx]
	}
}

// peek returns the token n tokens after the current token.
func (p *Parser) peek(n int) *Token {
	if p.ndx+n < len(p.toks) {
		return p.toks[p.ndx+n]
	}

	return p.toks[len(p.toks)-1]
}

// has returns whether the parser is on a token of the given kind.
func (p *Parser) has(kind int) bool {
	return p.tok.Kind == kind
}

// hasOneOf returns whether the parser is on a token of one of the given kinds.
func (p *Parser) hasOneOf(kinds ...int) bool {
	for _, kind := range kinds {
		if p.tok.Kind == kind {
			return true
		}
	}

	return false
}

// want asserts that the parser is on a token of the given kind, moves the
// parser forward, and returns the matched token.  If the parser is not on the
// right kind of token, the token is rejected.
func (p *Parser) want(kind int) *Token {
	return p.wantOneOf(kind)
}

// wantOneOf asserts that the parser is on a token of one of the given kinds,
// moves the parser forward, and returns the matched token.
func (p *Parser) wantOneOf(kinds ...int) *Token {
	if p.hasOneOf(kinds...) {
		p.next()
		return p.lookbehind
	}

	p.rejectExpecting(kinds...)
	return nil
}

// skipSemis consumes any number of optional semicolons.
func (p *Parser) skipSemis() {
	for p.has(TOK_SEMI) {
		p.next()
	}
}

// -----------------------------------------------------------------------------

// reject rejects the current token as unexpected.
func (p *Parser) reject() {
	p.error(p.tok, "unexpected %s", p.tok.Describe())
}

// rejectExpecting rejects the current token listing the expected token kinds.
func (p *Parser) rejectExpecting(kinds ...int) {
	p.rejectExpectingName(expectedString(kinds))
}

// rejectExpectingName rejects the current token listing a named expectation:
// eg. "expected expression, but got `;`".
func (p *Parser) rejectExpectingName(expected string) {
	p.error(p.tok, "expected %s, but got %s", expected, p.tok.Describe())
}

// error reports an error on the given token that aborts parsing the current
// item.
func (p *Parser) error(tok *Token, msg string, args ...interface{}) {
	panic(report.Raise(tok.Span, msg, args...))
}

// errorOn reports an error on the given span that aborts parsing the current
// item.
func (p *Parser) errorOn(span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(span, msg, args...))
}

// warn reports a warning on the given span.
func (p *Parser) warn(span *report.TextSpan, msg string, args ...interface{}) {
	p.ctx.Reporter.Warn(p.displayPath, span, msg, args...)
}

// expectedString builds the description of a set of expected token kinds:
// "`)`", "`,` or `)`", "`a`, `b` or `c`".
func expectedString(kinds []int) string {
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = KindString(kind)
	}

	if len(names) == 1 {
		return names[0]
	}

	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}

// spanFrom returns the span from the start token to the last consumed token.
func (p *Parser) spanFrom(start *Token) *report.TextSpan {
	return report.SpanOver(start.Span, p.lookbehind.Span)
}
