package syntax

import (
	"github.com/SeppDev/eclipse-sub000/ast"
	"github.com/SeppDev/eclipse-sub000/report"
)

// file := {item} 'EOF' ;
func (p *Parser) parseFile() {
	for !p.has(TOK_EOF) {
		if !p.parseItemGuarded() {
			p.failed = true
			p.skipToItemStart()
		}
	}
}

// parseItemGuarded parses a single item and catches any error raised while
// parsing it.  It returns whether the item parsed successfully.
func (p *Parser) parseItemGuarded() (ok bool) {
	defer p.ctx.Reporter.CatchErrors(p.displayPath)

	p.parseItem()
	return true
}

// itemStarts is the set of token kinds which can begin an item.
var itemStarts = []int{
	TOK_IMPORT, TOK_USE, TOK_FUNC, TOK_ENUM, TOK_STRUCT,
	TOK_PUB, TOK_STATIC, TOK_ASYNC, TOK_UNSAFE, TOK_EXTERN,
}

// skipToItemStart moves the parser forward at least one token and then on to
// the next token which can begin an item.
func (p *Parser) skipToItemStart() {
	p.next()

	for !p.has(TOK_EOF) && !p.hasOneOf(itemStarts...) {
		p.next()
	}
}

// item := {modifier} (import_decl | use_decl | func_def | enum_def | struct_def) {';'} ;
func (p *Parser) parseItem() {
	mods := p.parseModifiers()

	var item ast.ASTNode
	switch p.tok.Kind {
	case TOK_IMPORT:
		p.rejectModifiers(mods, "imports")
		p.parseImport()
	case TOK_USE:
		p.rejectModifiers(mods, "use declarations")
		item = p.parseUseDecl()
	case TOK_FUNC:
		item = p.parseFuncDef(mods)
	case TOK_ENUM:
		item = p.parseEnumDef(mods)
	case TOK_STRUCT:
		item = p.parseStructDef(mods)
	default:
		p.rejectExpectingName("item")
	}

	p.skipSemis()

	if item != nil {
		p.file.Items = append(p.file.Items, item)
	}
}

// modifier := 'pub' | 'static' | 'async' | 'unsafe' | 'extern' 'STRINGLIT' ;
func (p *Parser) parseModifiers() ast.Modifiers {
	var mods ast.Modifiers

	for p.hasOneOf(TOK_PUB, TOK_STATIC, TOK_ASYNC, TOK_UNSAFE, TOK_EXTERN) {
		modTok := p.tok
		p.next()

		mod := ast.Modifier{
			ASTBase: ast.NewASTBaseOn(modTok.Span),
			Kind:    modTok.Kind,
		}

		if modTok.Kind == TOK_EXTERN {
			abiTok := p.want(TOK_STRINGLIT)
			mod.ASTBase = ast.NewASTBaseOver(modTok.Span, abiTok.Span)
			mod.Value = abiTok.Value[1 : len(abiTok.Value)-1]
		}

		if prev, ok := mods.Has(mod.Kind); ok {
			panic(report.Raise(modTok.Span, "duplicate modifier `%s`", modTok.Value).
				WithLabel(prev.Span(), "first specified here"))
		}

		mods = append(mods, mod)
	}

	return mods
}

// rejectModifiers rejects any modifiers applied to an item which cannot have
// modifiers.
func (p *Parser) rejectModifiers(mods ast.Modifiers, itemKind string) {
	if len(mods) > 0 {
		p.errorOn(mods[0].Span(), "modifiers are not allowed on %s", itemKind)
	}
}

// -----------------------------------------------------------------------------

// import_decl := 'import' 'IDENT' ;
func (p *Parser) parseImport() {
	p.want(TOK_IMPORT)
	nameTok := p.want(TOK_IDENT)

	p.file.Imports = append(p.file.Imports, ast.Ident{
		Value: nameTok.Value,
		Span:  nameTok.Span,
	})
}

// use_decl := 'use' use_tree ;
func (p *Parser) parseUseDecl() *ast.UseDecl {
	startTok := p.want(TOK_USE)

	tree := p.parseUseTree()

	return &ast.UseDecl{
		ASTBase: ast.NewASTBaseOver(startTok.Span, tree.Span()),
		Tree:    tree,
	}
}

// use_tree := use_group | path_seg {'::' path_seg} ['::' use_group] ;
// use_group := '{' use_tree {',' use_tree} [','] '}' ;
// path_seg := 'IDENT' | 'self' | 'super' ;
func (p *Parser) parseUseTree() *ast.UseTree {
	startTok := p.tok

	var prefix []ast.Ident
	if !p.has(TOK_LBRACE) {
		for {
			segTok := p.wantOneOf(TOK_IDENT, TOK_SELF, TOK_SUPER)
			prefix = append(prefix, ast.Ident{Value: segTok.Value, Span: segTok.Span})

			if !p.has(TOK_DCOLON) {
				return &ast.UseTree{
					ASTBase: ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span),
					Prefix:  prefix,
				}
			}

			p.next()

			if p.has(TOK_LBRACE) {
				break
			}
		}
	}

	p.want(TOK_LBRACE)

	var children []*ast.UseTree
	for !p.has(TOK_RBRACE) {
		children = append(children, p.parseUseTree())

		if p.has(TOK_COMMA) {
			p.next()
		} else if !p.has(TOK_RBRACE) {
			p.rejectExpecting(TOK_COMMA, TOK_RBRACE)
		}
	}

	p.want(TOK_RBRACE)

	if len(children) == 0 {
		p.errorOn(p.spanFrom(startTok), "empty use group")
	}

	return &ast.UseTree{
		ASTBase:  ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span),
		Prefix:   prefix,
		Children: children,
	}
}
