package syntax

import (
	"github.com/SeppDev/eclipse-sub000/ast"
)

// block := '{' {stmt} '}' ;
func (p *Parser) parseBlock() *ast.Block {
	startTok := p.want(TOK_LBRACE)

	// Struct literals are always allowed inside a nested block, and newlines
	// end expressions again even if the block is nested in brackets.
	prevNoStructLit, prevNestDepth := p.noStructLit, p.nestDepth
	p.noStructLit, p.nestDepth = false, 0
	defer func() { p.noStructLit, p.nestDepth = prevNoStructLit, prevNestDepth }()

	var stmts []ast.ASTNode
	for !p.has(TOK_RBRACE) {
		if p.has(TOK_EOF) {
			p.rejectExpecting(TOK_RBRACE)
		}

		stmts = append(stmts, p.parseStmt())
		p.skipSemis()
	}

	p.want(TOK_RBRACE)

	return &ast.Block{
		ASTBase: ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span),
		Stmts:   stmts,
	}
}

// stmt := var_decl | return_stmt | break_stmt | continue_stmt | block_expr
//	| expr_assign_stmt ;
// block_expr := if_expr | while_expr | loop_expr | block ;
func (p *Parser) parseStmt() ast.ASTNode {
	switch p.tok.Kind {
	case TOK_VAR:
		return p.parseVarDecl()
	case TOK_RETURN:
		startTok := p.tok
		p.next()

		value := p.parseOptionalValue()

		return &ast.Return{
			ASTBase: ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span),
			Value:   value,
		}
	case TOK_BREAK:
		startTok := p.tok
		p.next()

		value := p.parseOptionalValue()

		return &ast.Break{
			ASTBase: ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span),
			Value:   value,
		}
	case TOK_CONTINUE:
		startTok := p.tok
		p.next()

		value := p.parseOptionalValue()

		return &ast.Continue{
			ASTBase: ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span),
			Value:   value,
		}
	case TOK_IF:
		return p.parseIfExpr()
	case TOK_WHILE:
		return p.parseWhileExpr()
	case TOK_LOOP:
		return p.parseLoopExpr()
	case TOK_LBRACE:
		return p.parseBlock()
	default:
		return p.parseExprAssignStmt()
	}
}

// parseOptionalValue parses the optional value of a `return`, `break` or
// `continue` statement.  The value is omitted if the statement is directly
// followed by a `;` or the end of the enclosing block.
func (p *Parser) parseOptionalValue() ast.Expr {
	if p.hasOneOf(TOK_SEMI, TOK_RBRACE, TOK_EOF) {
		return nil
	}

	return p.parseExpr()
}

// var_decl := 'var' ['mut'] 'IDENT' [':' type] ['=' expr] ;
func (p *Parser) parseVarDecl() *ast.VarDecl {
	startTok := p.want(TOK_VAR)

	mutable := false
	if p.has(TOK_MUT) {
		p.next()
		mutable = true
	}

	nameTok := p.want(TOK_IDENT)

	var typ ast.TypeExpr
	if p.has(TOK_COLON) {
		p.next()
		typ = p.parseType()
	}

	var init ast.Expr
	if p.has(TOK_ASSIGN) {
		p.next()
		init = p.parseExpr()
	}

	return &ast.VarDecl{
		ASTBase: ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span),
		Mutable: mutable,
		Name:    ast.Ident{Value: nameTok.Value, Span: nameTok.Span},
		Type:    typ,
		Init:    init,
	}
}

// expr_assign_stmt := expr [assign_op expr] ;
// assign_op := '=' | '+=' | '-=' | '*=' | '/=' | '%=' | '&=' | '|=' | '^='
//	| '<<=' | '>>=' ;
func (p *Parser) parseExprAssignStmt() ast.ASTNode {
	expr := p.parseExpr()

	if !IsAssignOp(p.tok.Kind) {
		return expr
	}

	opTok := p.tok
	p.next()

	value := p.parseExpr()

	return &ast.Assign{
		ASTBase: ast.NewASTBaseOver(expr.Span(), value.Span()),
		Target:  expr,
		Op: ast.Oper{
			Kind: opTok.Kind,
			Name: opTok.Value,
			Span: opTok.Span,
		},
		Value: value,
	}
}

// -----------------------------------------------------------------------------

// if_expr := 'if' cond_expr block {('else' 'if' | 'elseif') cond_expr block}
//	['else' block] ;
func (p *Parser) parseIfExpr() *ast.If {
	startTok := p.want(TOK_IF)

	branches := []*ast.CondBranch{p.parseCondBranch(startTok)}

	var elseBlock *ast.Block
	for {
		if p.has(TOK_ELSEIF) {
			branchTok := p.tok
			p.next()
			branches = append(branches, p.parseCondBranch(branchTok))
		} else if p.has(TOK_ELSE) {
			p.next()

			if p.has(TOK_IF) {
				branchTok := p.tok
				p.next()
				branches = append(branches, p.parseCondBranch(branchTok))
			} else {
				elseBlock = p.parseBlock()
				break
			}
		} else {
			break
		}
	}

	return &ast.If{
		ASTBase:  ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span),
		Branches: branches,
		Else:     elseBlock,
	}
}

// parseCondBranch parses the condition and body of a conditional branch.  The
// start token is the keyword beginning the branch which has already been
// consumed.
func (p *Parser) parseCondBranch(startTok *Token) *ast.CondBranch {
	cond := p.parseCondExpr()
	body := p.parseBlock()

	return &ast.CondBranch{
		ASTBase: ast.NewASTBaseOver(startTok.Span, body.Span()),
		Cond:    cond,
		Body:    body,
	}
}

// cond_expr := expr ;  (struct literals disallowed)
func (p *Parser) parseCondExpr() ast.Expr {
	prevNoStructLit := p.noStructLit
	p.noStructLit = true
	defer func() { p.noStructLit = prevNoStructLit }()

	return p.parseExpr()
}

// while_expr := 'while' cond_expr block ;
func (p *Parser) parseWhileExpr() *ast.While {
	startTok := p.want(TOK_WHILE)

	cond := p.parseCondExpr()
	body := p.parseBlock()

	return &ast.While{
		ASTBase: ast.NewASTBaseOver(startTok.Span, body.Span()),
		Cond:    cond,
		Body:    body,
	}
}

// loop_expr := 'loop' block ;
func (p *Parser) parseLoopExpr() *ast.Loop {
	startTok := p.want(TOK_LOOP)

	body := p.parseBlock()

	return &ast.Loop{
		ASTBase: ast.NewASTBaseOver(startTok.Span, body.Span()),
		Body:    body,
	}
}
