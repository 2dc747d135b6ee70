package syntax

import "github.com/SeppDev/eclipse-sub000/report"

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The exact source text of the token.  String and character literals keep
	// their quotes: the source text (minus comments and whitespace) can always
	// be reconstructed from the token values.
	Value string

	// The text span over which the token exists.
	Span *report.TextSpan
}

// Enumeration of token kinds.
const (
	TOK_IF = iota
	TOK_ELSE
	TOK_ELSEIF
	TOK_MUT
	TOK_VAR
	TOK_FALSE
	TOK_TRUE
	TOK_SUPER
	TOK_PUB
	TOK_STATIC
	TOK_ASYNC
	TOK_UNSAFE
	TOK_EXTERN
	TOK_ENUM
	TOK_STRUCT
	TOK_FUNC
	TOK_IMPORT
	TOK_USE
	TOK_RETURN
	TOK_RESULT
	TOK_LOOP
	TOK_WHILE
	TOK_BREAK
	TOK_CONTINUE
	TOK_SELF

	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_DIV
	TOK_MOD

	TOK_EQ
	TOK_NEQ
	TOK_LT
	TOK_GT
	TOK_LTEQ
	TOK_GTEQ

	TOK_AMP
	TOK_PIPE
	TOK_CARET
	TOK_LSHIFT
	TOK_RSHIFT
	TOK_COMPL

	TOK_NOT
	TOK_LAND
	TOK_LOR

	TOK_ASSIGN
	TOK_PLUS_ASSIGN
	TOK_MINUS_ASSIGN
	TOK_STAR_ASSIGN
	TOK_DIV_ASSIGN
	TOK_MOD_ASSIGN
	TOK_AMP_ASSIGN
	TOK_PIPE_ASSIGN
	TOK_CARET_ASSIGN
	TOK_LSHIFT_ASSIGN
	TOK_RSHIFT_ASSIGN

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACE
	TOK_RBRACE
	TOK_LBRACKET
	TOK_RBRACKET
	TOK_COMMA
	TOK_DOT
	TOK_ELLIPSIS
	TOK_SEMI
	TOK_COLON
	TOK_DCOLON
	TOK_ARROW
	TOK_FATARROW
	TOK_QUESTION
	TOK_ATSIGN
	TOK_HASH

	TOK_IDENT
	TOK_INTLIT
	TOK_FLOATLIT
	TOK_CHARLIT
	TOK_STRINGLIT
	TOK_LIFETIME

	TOK_UNKNOWN
	TOK_EOF
)

// IsAssignOp returns whether the token kind is `=` or a compound assignment
// operator.
func IsAssignOp(kind int) bool {
	return TOK_ASSIGN <= kind && kind <= TOK_RSHIFT_ASSIGN
}

// CompoundOpOf returns the binary operator kind a compound assignment operator
// applies.  For example, `+=` applies `+`.  It returns -1 for plain `=`.
func CompoundOpOf(kind int) int {
	switch kind {
	case TOK_PLUS_ASSIGN:
		return TOK_PLUS
	case TOK_MINUS_ASSIGN:
		return TOK_MINUS
	case TOK_STAR_ASSIGN:
		return TOK_STAR
	case TOK_DIV_ASSIGN:
		return TOK_DIV
	case TOK_MOD_ASSIGN:
		return TOK_MOD
	case TOK_AMP_ASSIGN:
		return TOK_AMP
	case TOK_PIPE_ASSIGN:
		return TOK_PIPE
	case TOK_CARET_ASSIGN:
		return TOK_CARET
	case TOK_LSHIFT_ASSIGN:
		return TOK_LSHIFT
	case TOK_RSHIFT_ASSIGN:
		return TOK_RSHIFT
	default:
		return -1
	}
}

// kindNames maps the token kinds which do not have a fixed spelling to a
// descriptive name used in error messages.
var kindNames = map[int]string{
	TOK_IDENT:     "identifier",
	TOK_INTLIT:    "integer literal",
	TOK_FLOATLIT:  "float literal",
	TOK_CHARLIT:   "character literal",
	TOK_STRINGLIT: "string literal",
	TOK_LIFETIME:  "lifetime",
	TOK_UNKNOWN:   "unknown character",
	TOK_EOF:       "end of file",
}

// KindString returns the user-facing name of a token kind.  Keywords and
// operators are displayed as their spelling in backticks.
func KindString(kind int) string {
	if name, ok := kindNames[kind]; ok {
		return name
	}

	for spelling, k := range keywordPatterns {
		if k == kind {
			return "`" + spelling + "`"
		}
	}

	for spelling, k := range symbolPatterns {
		if k == kind {
			return "`" + spelling + "`"
		}
	}

	return "token"
}

// Describe returns the user-facing description of the token.
func (t *Token) Describe() string {
	switch t.Kind {
	case TOK_EOF:
		return "end of file"
	case TOK_IDENT, TOK_INTLIT, TOK_FLOATLIT, TOK_CHARLIT, TOK_STRINGLIT, TOK_LIFETIME, TOK_UNKNOWN:
		return kindNames[t.Kind] + " `" + t.Value + "`"
	default:
		return "`" + t.Value + "`"
	}
}
