package syntax

import (
	"strings"

	"github.com/SeppDev/eclipse-sub000/ast"
	"github.com/SeppDev/eclipse-sub000/report"
)

// bindingPower is the left and right binding power of an infix operator.  An
// operator whose right power exceeds its left power is left associative.
type bindingPower struct {
	left, right int
}

// postfixBP is the left binding power of the postfix operators: field access,
// calls, and indexing.
const postfixBP = 101

// prefixBP is the binding power prefix operators parse their operand with.
const prefixBP = 90

// infixBP is the binding power table for binary operators.
var infixBP = map[int]bindingPower{
	TOK_STAR: {70, 71},
	TOK_DIV:  {70, 71},
	TOK_MOD:  {70, 71},

	TOK_PLUS:  {60, 61},
	TOK_MINUS: {60, 61},

	TOK_LSHIFT: {55, 56},
	TOK_RSHIFT: {55, 56},

	TOK_AMP:   {50, 51},
	TOK_CARET: {48, 49},
	TOK_PIPE:  {46, 47},

	TOK_LT:   {40, 41},
	TOK_LTEQ: {40, 41},
	TOK_GT:   {40, 41},
	TOK_GTEQ: {40, 41},

	TOK_EQ:  {39, 40},
	TOK_NEQ: {39, 40},

	TOK_LAND: {30, 31},
	TOK_LOR:  {20, 21},
}

// lineSensitiveOps are the binary and postfix operators which are also prefix
// operators or begin an atom.  `*r = 5` on its own line is a new statement.
var lineSensitiveOps = map[int]bool{
	TOK_STAR:     true,
	TOK_MINUS:    true,
	TOK_AMP:      true,
	TOK_LAND:     true,
	TOK_LPAREN:   true,
	TOK_LBRACKET: true,
}

// startsLine returns whether the current token is the first on its line.
func (p *Parser) startsLine() bool {
	return p.lookbehind != nil && p.tok.Span.Start.Line > p.lookbehind.Span.End.Line
}

// expr := binop_expr ;
func (p *Parser) parseExpr() ast.Expr {
	return p.parseExprBP(0)
}

// expr_list := [expr {',' expr} [',']] ;
func (p *Parser) parseExprList(closer int) []ast.Expr {
	var exprs []ast.Expr

	for !p.has(closer) {
		exprs = append(exprs, p.parseExpr())

		if p.has(TOK_COMMA) {
			p.next()
		} else if !p.has(closer) {
			p.rejectExpecting(TOK_COMMA, closer)
		}
	}

	return exprs
}

// binop_expr := prefix_expr {postfix_op | binary_op binop_expr} ;
//
// parseExprBP is a Pratt parser: it parses operators whose left binding power
// is at least minBP.
func (p *Parser) parseExprBP(minBP int) ast.Expr {
	lhs := p.parsePrefixExpr()

	for {
		if lineSensitiveOps[p.tok.Kind] && p.nestDepth == 0 && p.startsLine() {
			break
		}

		if p.hasOneOf(TOK_DOT, TOK_LPAREN, TOK_LBRACKET) {
			if postfixBP < minBP {
				break
			}

			lhs = p.parsePostfix(lhs)
			continue
		}

		bp, ok := infixBP[p.tok.Kind]
		if !ok || bp.left < minBP {
			break
		}

		opTok := p.tok
		p.next()

		rhs := p.parseExprBP(bp.right)

		lhs = &ast.Binary{
			ASTBase: ast.NewASTBaseOver(lhs.Span(), rhs.Span()),
			Op: ast.Oper{
				Kind: opTok.Kind,
				Name: opTok.Value,
				Span: opTok.Span,
			},
			Lhs: lhs,
			Rhs: rhs,
		}
	}

	return lhs
}

// postfix_op := '.' ('IDENT' | 'INTLIT' | 'FLOATLIT') | '(' expr_list ')'
//	| '[' expr ']' ;
func (p *Parser) parsePostfix(root ast.Expr) ast.Expr {
	switch p.tok.Kind {
	case TOK_DOT:
		p.next()

		fieldTok := p.wantOneOf(TOK_IDENT, TOK_INTLIT, TOK_FLOATLIT)
		if fieldTok.Kind != TOK_FLOATLIT {
			return &ast.Field{
				ASTBase: ast.NewASTBaseOver(root.Span(), fieldTok.Span),
				Root:    root,
				Name:    ast.Ident{Value: fieldTok.Value, Span: fieldTok.Span},
			}
		}

		// `t.0.1` lexes the fields as the float `0.1`: split it into its two
		// tuple fields.
		dot := strings.IndexByte(fieldTok.Value, '.')
		firstEnd := fieldTok.Span.Start
		firstEnd.Col += dot
		firstEnd.Offset += dot
		secondStart := firstEnd
		secondStart.Col++
		secondStart.Offset++

		inner := &ast.Field{
			ASTBase: ast.NewASTBaseOver(root.Span(), report.NewSpan(fieldTok.Span.Start, firstEnd)),
			Root:    root,
			Name: ast.Ident{
				Value: fieldTok.Value[:dot],
				Span:  report.NewSpan(fieldTok.Span.Start, firstEnd),
			},
		}

		return &ast.Field{
			ASTBase: ast.NewASTBaseOver(root.Span(), fieldTok.Span),
			Root:    inner,
			Name: ast.Ident{
				Value: fieldTok.Value[dot+1:],
				Span:  report.NewSpan(secondStart, fieldTok.Span.End),
			},
		}
	case TOK_LPAREN:
		p.next()

		args := p.parseNested(func() []ast.Expr { return p.parseExprList(TOK_RPAREN) })
		p.want(TOK_RPAREN)

		return &ast.Call{
			ASTBase: ast.NewASTBaseOver(root.Span(), p.lookbehind.Span),
			Func:    root,
			Args:    args,
		}
	default:
		p.want(TOK_LBRACKET)

		index := p.parseNested(func() []ast.Expr { return []ast.Expr{p.parseExpr()} })[0]
		p.want(TOK_RBRACKET)

		return &ast.Index{
			ASTBase: ast.NewASTBaseOver(root.Span(), p.lookbehind.Span),
			Root:    root,
			Index:   index,
		}
	}
}

// parseNested runs a parsing function in a nested bracketed context in which
// struct literals are always allowed.
func (p *Parser) parseNested(f func() []ast.Expr) []ast.Expr {
	prevNoStructLit := p.noStructLit
	p.noStructLit = false
	p.nestDepth++
	defer func() {
		p.noStructLit = prevNoStructLit
		p.nestDepth--
	}()

	return f()
}

// -----------------------------------------------------------------------------

// prefix_expr := ('-' | '!' | '*' | '&' ['mut']) binop_expr<90> | atom ;
func (p *Parser) parsePrefixExpr() ast.Expr {
	switch p.tok.Kind {
	case TOK_MINUS, TOK_NOT, TOK_STAR, TOK_AMP:
		opTok := p.tok
		p.next()

		mutable := false
		if opTok.Kind == TOK_AMP && p.has(TOK_MUT) {
			p.next()
			mutable = true
		}

		operand := p.parseExprBP(prefixBP)

		return &ast.Unary{
			ASTBase: ast.NewASTBaseOver(opTok.Span, operand.Span()),
			Op: ast.Oper{
				Kind: opTok.Kind,
				Name: opTok.Value,
				Span: opTok.Span,
			},
			Mutable: mutable,
			Operand: operand,
		}
	case TOK_LAND:
		// `&&x` is lexed as a single token: it is two references.
		opTok := p.tok
		p.next()

		mutable := false
		if p.has(TOK_MUT) {
			p.next()
			mutable = true
		}

		operand := p.parseExprBP(prefixBP)

		outerSpan := report.NewSpan(opTok.Span.Start, opTok.Span.Start)
		outerSpan.End.Col++
		outerSpan.End.Offset++
		innerSpan := report.NewSpan(outerSpan.End, opTok.Span.End)

		inner := &ast.Unary{
			ASTBase: ast.NewASTBaseOver(innerSpan, operand.Span()),
			Op:      ast.Oper{Kind: TOK_AMP, Name: "&", Span: innerSpan},
			Mutable: mutable,
			Operand: operand,
		}

		return &ast.Unary{
			ASTBase: ast.NewASTBaseOver(opTok.Span, operand.Span()),
			Op:      ast.Oper{Kind: TOK_AMP, Name: "&", Span: outerSpan},
			Operand: inner,
		}
	}

	return p.parseAtom()
}

// atom := 'INTLIT' | 'FLOATLIT' | 'STRINGLIT' | 'CHARLIT' | 'true' | 'false'
//	| path_or_ident [struct_init] | tupled_expr | array_lit | if_expr
//	| while_expr | loop_expr | block ;
func (p *Parser) parseAtom() ast.Expr {
	startTok := p.tok

	switch p.tok.Kind {
	case TOK_INTLIT, TOK_FLOATLIT, TOK_STRINGLIT, TOK_CHARLIT, TOK_TRUE, TOK_FALSE:
		p.next()

		return &ast.Literal{
			ASTBase: ast.NewASTBaseOn(startTok.Span),
			Kind:    literalKinds[startTok.Kind],
			Value:   startTok.Value,
		}
	case TOK_IDENT, TOK_SELF, TOK_SUPER:
		return p.parsePathOrIdent()
	case TOK_LPAREN:
		return p.parseTupledExpr()
	case TOK_LBRACKET:
		p.next()

		elems := p.parseNested(func() []ast.Expr { return p.parseExprList(TOK_RBRACKET) })
		p.want(TOK_RBRACKET)

		return &ast.ArrayLit{
			ASTBase: ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span),
			Elems:   elems,
		}
	case TOK_IF:
		return p.parseIfExpr()
	case TOK_WHILE:
		return p.parseWhileExpr()
	case TOK_LOOP:
		return p.parseLoopExpr()
	case TOK_LBRACE:
		return p.parseBlock()
	}

	p.rejectExpectingName("expression")
	return nil
}

// literalKinds maps literal token kinds to AST literal kinds.
var literalKinds = map[int]int{
	TOK_INTLIT:    ast.LitInt,
	TOK_FLOATLIT:  ast.LitFloat,
	TOK_STRINGLIT: ast.LitString,
	TOK_CHARLIT:   ast.LitChar,
	TOK_TRUE:      ast.LitBool,
	TOK_FALSE:     ast.LitBool,
}

// path_or_ident := path_seg {'::' 'IDENT'} ;
func (p *Parser) parsePathOrIdent() ast.Expr {
	startTok := p.wantOneOf(TOK_IDENT, TOK_SELF, TOK_SUPER)

	if !p.has(TOK_DCOLON) {
		if startTok.Kind != TOK_IDENT {
			p.rejectExpecting(TOK_DCOLON)
		}

		ident := &ast.Identifier{
			ASTBase: ast.NewASTBaseOn(startTok.Span),
			Name:    startTok.Value,
		}

		if p.atStructInit() {
			return p.parseStructInit([]ast.Ident{{Value: startTok.Value, Span: startTok.Span}})
		}

		return ident
	}

	components := []ast.Ident{{Value: startTok.Value, Span: startTok.Span}}
	for p.has(TOK_DCOLON) {
		p.next()

		segTok := p.wantOneOf(TOK_IDENT, TOK_SUPER)
		components = append(components, ast.Ident{Value: segTok.Value, Span: segTok.Span})
	}

	if p.atStructInit() {
		return p.parseStructInit(components)
	}

	return &ast.PathExpr{
		ASTBase:    ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span),
		Components: components,
	}
}

// atStructInit returns whether the parser is positioned at the opening brace
// of a struct initializer: `{ }` or `{ name: ...`.
func (p *Parser) atStructInit() bool {
	if p.noStructLit || !p.has(TOK_LBRACE) {
		return false
	}

	return p.peek(1).Kind == TOK_RBRACE || p.peek(1).Kind == TOK_IDENT && p.peek(2).Kind == TOK_COLON
}

// struct_init := '{' [field_init {',' field_init} [',']] '}' ;
// field_init := 'IDENT' ':' expr ;
func (p *Parser) parseStructInit(typePath []ast.Ident) *ast.StructLit {
	p.want(TOK_LBRACE)

	prevNoStructLit := p.noStructLit
	p.noStructLit = false
	defer func() { p.noStructLit = prevNoStructLit }()

	var fields []*ast.FieldInit
	for !p.has(TOK_RBRACE) {
		nameTok := p.want(TOK_IDENT)
		p.want(TOK_COLON)
		value := p.parseExpr()

		fields = append(fields, &ast.FieldInit{
			ASTBase: ast.NewASTBaseOver(nameTok.Span, value.Span()),
			Name:    ast.Ident{Value: nameTok.Value, Span: nameTok.Span},
			Value:   value,
		})

		if p.has(TOK_COMMA) {
			p.next()
		} else if !p.has(TOK_RBRACE) {
			p.rejectExpecting(TOK_COMMA, TOK_RBRACE)
		}
	}

	p.want(TOK_RBRACE)

	return &ast.StructLit{
		ASTBase:  ast.NewASTBaseOver(typePath[0].Span, p.lookbehind.Span),
		TypePath: typePath,
		Fields:   fields,
	}
}

// tupled_expr := '(' [expr {',' expr} [',']] ')' ;
func (p *Parser) parseTupledExpr() ast.Expr {
	startTok := p.want(TOK_LPAREN)

	exprs := p.parseNested(func() []ast.Expr { return p.parseExprList(TOK_RPAREN) })
	trailingComma := p.lookbehind.Kind == TOK_COMMA

	p.want(TOK_RPAREN)
	span := ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span)

	if len(exprs) == 1 && !trailingComma {
		return &ast.Paren{ASTBase: span, Inner: exprs[0]}
	}

	return &ast.Tuple{ASTBase: span, Elems: exprs}
}
