package syntax

import (
	"strings"

	"github.com/SeppDev/eclipse-sub000/common"
	"github.com/SeppDev/eclipse-sub000/report"
)

// Lexer is responsible for tokenizing a source file.  The lexer never fails:
// malformed input is reported and lexing continues so that the token stream
// always ends in exactly one EOF token.
type Lexer struct {
	ctx  *common.CompileContext
	file string

	src []rune
	ndx int

	tokBuff *strings.Builder

	// The current position of the lexer and the position of the start of the
	// token being lexed.
	pos, start report.TextPosition
}

// NewLexer creates a new lexer for the given source text.  The file is the
// display path used for reporting errors.
func NewLexer(ctx *common.CompileContext, file, src string) *Lexer {
	return &Lexer{
		ctx:     ctx,
		file:    file,
		src:     []rune(src),
		tokBuff: &strings.Builder{},
		pos:     report.TextPosition{Line: 1, Col: 0, Offset: 0},
	}
}

// Tokenize lexes a whole source file into a token stream terminated by an EOF
// token.
func Tokenize(ctx *common.CompileContext, file, src string) []*Token {
	l := NewLexer(ctx, file, src)

	var toks []*Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)

		if tok.Kind == TOK_EOF {
			return toks
		}
	}
}

// NextToken retrieves the next token from the input.  If the input has ended,
// this will be an EOF token.
func (l *Lexer) NextToken() *Token {
	for {
		c := l.peek()

		switch c {
		case -1:
			l.mark()
			return l.makeToken(TOK_EOF)
		case '\n', '\t', ' ', '\r', '\v', '\f':
			l.skip()
		case '/':
			if tok := l.lexCommentOrOper(); tok != nil {
				return tok
			}
		case '"':
			return l.lexQuoted('"', TOK_STRINGLIT, "string")
		case '\'':
			if l.isLifetime() {
				return l.lexLifetime()
			}

			return l.lexQuoted('\'', TOK_CHARLIT, "character")
		default:
			if isDecimalDigit(c) {
				return l.lexNumericLit()
			} else if isFirstIdentChar(c) {
				return l.lexIdentOrKeyword()
			} else {
				return l.lexPunctOrOper()
			}
		}
	}
}

// -----------------------------------------------------------------------------

// maxSymbolWidth is the length of the longest operator in symbolPatterns.
const maxSymbolWidth = 3

// symbolPatterns maps symbol strings (patterns) to their punctuation/operator
// token kind.
var symbolPatterns = map[string]int{
	"+": TOK_PLUS,
	"-": TOK_MINUS,
	"*": TOK_STAR,
	"/": TOK_DIV,
	"%": TOK_MOD,

	"==": TOK_EQ,
	"!=": TOK_NEQ,
	"<":  TOK_LT,
	">":  TOK_GT,
	"<=": TOK_LTEQ,
	">=": TOK_GTEQ,

	"&":  TOK_AMP,
	"|":  TOK_PIPE,
	"^":  TOK_CARET,
	"<<": TOK_LSHIFT,
	">>": TOK_RSHIFT,
	"~":  TOK_COMPL,

	"!":  TOK_NOT,
	"&&": TOK_LAND,
	"||": TOK_LOR,

	"=":   TOK_ASSIGN,
	"+=":  TOK_PLUS_ASSIGN,
	"-=":  TOK_MINUS_ASSIGN,
	"*=":  TOK_STAR_ASSIGN,
	"/=":  TOK_DIV_ASSIGN,
	"%=":  TOK_MOD_ASSIGN,
	"&=":  TOK_AMP_ASSIGN,
	"|=":  TOK_PIPE_ASSIGN,
	"^=":  TOK_CARET_ASSIGN,
	"<<=": TOK_LSHIFT_ASSIGN,
	">>=": TOK_RSHIFT_ASSIGN,

	"(":   TOK_LPAREN,
	")":   TOK_RPAREN,
	"{":   TOK_LBRACE,
	"}":   TOK_RBRACE,
	"[":   TOK_LBRACKET,
	"]":   TOK_RBRACKET,
	",":   TOK_COMMA,
	".":   TOK_DOT,
	"...": TOK_ELLIPSIS,
	";":   TOK_SEMI,
	":":   TOK_COLON,
	"::":  TOK_DCOLON,
	"->":  TOK_ARROW,
	"=>":  TOK_FATARROW,
	"?":   TOK_QUESTION,
	"@":   TOK_ATSIGN,
	"#":   TOK_HASH,
}

// lexPunctOrOper lexes a punctuation or operator symbol.  The longest prefix of
// the upcoming input which is a known symbol is used: if the maximal prefix is
// not a symbol, progressively shorter prefixes are tried.
func (l *Lexer) lexPunctOrOper() *Token {
	l.mark()

	for width := maxSymbolWidth; width > 0; width-- {
		if l.ndx+width > len(l.src) {
			continue
		}

		if kind, ok := symbolPatterns[string(l.src[l.ndx:l.ndx+width])]; ok {
			for i := 0; i < width; i++ {
				l.eat()
			}

			return l.makeToken(kind)
		}
	}

	l.eat()
	tok := l.makeToken(TOK_UNKNOWN)
	l.ctx.Reporter.Error(l.file, tok.Span, "unrecognized character: `%s`", tok.Value)
	return tok
}

// -----------------------------------------------------------------------------

// keywordPatterns maps keyword strings (patterns) to their keyword token kind.
var keywordPatterns = map[string]int{
	"if":       TOK_IF,
	"else":     TOK_ELSE,
	"elseif":   TOK_ELSEIF,
	"mut":      TOK_MUT,
	"var":      TOK_VAR,
	"false":    TOK_FALSE,
	"true":     TOK_TRUE,
	"super":    TOK_SUPER,
	"pub":      TOK_PUB,
	"static":   TOK_STATIC,
	"async":    TOK_ASYNC,
	"unsafe":   TOK_UNSAFE,
	"extern":   TOK_EXTERN,
	"enum":     TOK_ENUM,
	"struct":   TOK_STRUCT,
	"func":     TOK_FUNC,
	"import":   TOK_IMPORT,
	"use":      TOK_USE,
	"return":   TOK_RETURN,
	"result":   TOK_RESULT,
	"loop":     TOK_LOOP,
	"while":    TOK_WHILE,
	"break":    TOK_BREAK,
	"continue": TOK_CONTINUE,
	"self":     TOK_SELF,
}

// lexIdentOrKeyword lexes an identifier or a keyword.
func (l *Lexer) lexIdentOrKeyword() *Token {
	l.mark()
	l.eat()

	for c := l.peek(); isFirstIdentChar(c) || isDecimalDigit(c); c = l.peek() {
		l.eat()
	}

	if kind, ok := keywordPatterns[l.tokBuff.String()]; ok {
		return l.makeToken(kind)
	}

	return l.makeToken(TOK_IDENT)
}

// -----------------------------------------------------------------------------

// lexNumericLit lexes an integer or float literal.  A `.` only continues the
// literal if it is followed by a digit: `1.` is an integer and a dot.
func (l *Lexer) lexNumericLit() *Token {
	l.mark()

	for isDecimalDigit(l.peek()) {
		l.eat()
	}

	if l.peek() == '.' && isDecimalDigit(l.peekAhead(1)) {
		l.eat()

		for isDecimalDigit(l.peek()) {
			l.eat()
		}

		return l.makeToken(TOK_FLOATLIT)
	}

	return l.makeToken(TOK_INTLIT)
}

// -----------------------------------------------------------------------------

// lexQuoted lexes a string or character literal: everything up to the next
// unescaped closing quote.  The body is kept verbatim; escape sequences are
// interpreted later.
func (l *Lexer) lexQuoted(quote rune, kind int, name string) *Token {
	l.mark()
	l.eat()

	for {
		switch l.peek() {
		case -1:
			tok := l.makeToken(kind)
			l.ctx.Reporter.Error(
				l.file,
				report.NewSpan(tok.Span.Start, l.advanced(tok.Span.Start)),
				"unclosed %s literal", name,
			)
			return tok
		case '\\':
			l.eat()
			if l.peek() != -1 {
				l.eat()
			}
		case quote:
			l.eat()
			return l.makeToken(kind)
		default:
			l.eat()
		}
	}
}

// isLifetime returns whether the `'` the lexer is positioned on begins a
// lifetime (`'a`) rather than a character literal (`'a'`).
func (l *Lexer) isLifetime() bool {
	return isFirstIdentChar(l.peekAhead(1)) && l.peekAhead(2) != '\''
}

// lexLifetime lexes a lifetime: a `'` followed by an identifier.
func (l *Lexer) lexLifetime() *Token {
	l.mark()
	l.eat()

	for c := l.peek(); isFirstIdentChar(c) || isDecimalDigit(c); c = l.peek() {
		l.eat()
	}

	return l.makeToken(TOK_LIFETIME)
}

// -----------------------------------------------------------------------------

// lexCommentOrOper lexes a comment or an operator beginning with `/`.  It
// returns nil if a comment was skipped.
func (l *Lexer) lexCommentOrOper() *Token {
	switch l.peekAhead(1) {
	case '/':
		for c := l.peek(); c != '\n' && c != -1; c = l.peek() {
			l.skip()
		}

		return nil
	case '*':
		l.mark()
		l.skip()
		l.skip()

		for {
			switch l.peek() {
			case -1:
				l.ctx.Reporter.Error(
					l.file,
					report.NewSpan(l.start, l.advanced(l.start)),
					"unclosed block comment",
				)
				return nil
			case '*':
				l.skip()
				if l.peek() == '/' {
					l.skip()
					return nil
				}
			default:
				l.skip()
			}
		}
	default:
		return l.lexPunctOrOper()
	}
}

// -----------------------------------------------------------------------------

// mark sets the lexer's stored start position to its current position.
func (l *Lexer) mark() {
	l.start = l.pos
}

// makeToken produces a new token of the given kind from the lexer's state and
// resets the lexer to begin building the next token.
func (l *Lexer) makeToken(kind int) *Token {
	value := l.tokBuff.String()
	l.tokBuff.Reset()

	return &Token{
		Kind:  kind,
		Value: value,
		Span:  report.NewSpan(l.start, l.pos),
	}
}

// advanced returns the position one character after pos on the same line.
func (l *Lexer) advanced(pos report.TextPosition) report.TextPosition {
	pos.Col++
	pos.Offset++
	return pos
}

// -----------------------------------------------------------------------------

// eat moves the lexer forward one rune and writes the rune to the token buffer.
// Carriage returns are dropped.
func (l *Lexer) eat() rune {
	c := l.skip()
	if c != -1 && c != '\r' {
		l.tokBuff.WriteRune(c)
	}

	return c
}

// skip moves the lexer forward one rune but does not write the rune to the
// token buffer.  If the lexer is at the end of the input, -1 is returned.
func (l *Lexer) skip() rune {
	if l.ndx >= len(l.src) {
		return -1
	}

	c := l.src[l.ndx]
	l.ndx++
	l.updatePos(c)

	return c
}

// peek returns the next rune in the input without moving the lexer forward.
// If the lexer is at the end of the input, -1 is returned.
func (l *Lexer) peek() rune {
	return l.peekAhead(0)
}

// peekAhead returns the rune n runes ahead of the next rune.
func (l *Lexer) peekAhead(n int) rune {
	if l.ndx+n >= len(l.src) {
		return -1
	}

	return l.src[l.ndx+n]
}

// updatePos updates the lexer's position based on input character.
func (l *Lexer) updatePos(c rune) {
	switch c {
	case '\r':
		return
	case '\n':
		l.pos.Line++
		l.pos.Col = 0
	case '\t':
		l.pos.Col += l.ctx.TabSize
	default:
		l.pos.Col++
	}

	l.pos.Offset++
}

// -----------------------------------------------------------------------------

// isDecimalDigit returns whether c is a decimal digit.
func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

// isFirstIdentChar returns whether c could be the first rune of an identifier.
func isFirstIdentChar(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}
