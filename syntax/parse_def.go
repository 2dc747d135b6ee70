package syntax

import (
	"github.com/SeppDev/eclipse-sub000/ast"
)

// func_def := 'func' 'IDENT' '(' [param {',' param} [',']] ')' [type] (block | ε) ;
func (p *Parser) parseFuncDef(mods ast.Modifiers) *ast.FuncDef {
	startTok := p.want(TOK_FUNC)
	if len(mods) > 0 {
		startTok = &Token{Span: mods[0].Span()}
	}

	nameTok := p.want(TOK_IDENT)

	p.want(TOK_LPAREN)

	var params []*ast.Param
	for !p.has(TOK_RPAREN) {
		params = append(params, p.parseParam())

		if p.has(TOK_COMMA) {
			p.next()
		} else if !p.has(TOK_RPAREN) {
			p.rejectExpecting(TOK_COMMA, TOK_RPAREN)
		}
	}

	p.want(TOK_RPAREN)

	var retType ast.TypeExpr
	if !p.hasOneOf(TOK_LBRACE, TOK_SEMI, TOK_EOF) && !p.hasOneOf(itemStarts...) {
		retType = p.parseType()
	}

	var body *ast.Block
	if _, isExtern := mods.Has(TOK_EXTERN); !isExtern || p.has(TOK_LBRACE) {
		body = p.parseBlock()
	}

	return &ast.FuncDef{
		ASTBase:    ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span),
		Modifiers:  mods,
		Name:       ast.Ident{Value: nameTok.Value, Span: nameTok.Span},
		Params:     params,
		ReturnType: retType,
		Body:       body,
	}
}

// param := ['&'] ['mut'] 'IDENT' [':'] type ;
func (p *Parser) parseParam() *ast.Param {
	startTok := p.tok

	byRef := false
	if p.has(TOK_AMP) {
		p.next()
		byRef = true
	}

	mutable := false
	if p.has(TOK_MUT) {
		p.next()
		mutable = true
	}

	nameTok := p.want(TOK_IDENT)

	if p.has(TOK_COLON) {
		p.next()
	}

	typ := p.parseType()

	return &ast.Param{
		ASTBase: ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span),
		ByRef:   byRef,
		Mutable: mutable,
		Name:    ast.Ident{Value: nameTok.Value, Span: nameTok.Span},
		Type:    typ,
	}
}

// -----------------------------------------------------------------------------

// struct_def := 'struct' 'IDENT' '{' [field {',' field} [',']] '}' ;
func (p *Parser) parseStructDef(mods ast.Modifiers) *ast.StructDef {
	startTok := p.want(TOK_STRUCT)
	if len(mods) > 0 {
		startTok = &Token{Span: mods[0].Span()}
	}

	nameTok := p.want(TOK_IDENT)
	fields := p.parseFieldDecls()

	return &ast.StructDef{
		ASTBase:   ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span),
		Modifiers: mods,
		Name:      ast.Ident{Value: nameTok.Value, Span: nameTok.Span},
		Fields:    fields,
	}
}

// field_decls := '{' [field {',' field} [',']] '}' ;
// field := 'IDENT' ':' type ;
func (p *Parser) parseFieldDecls() []*ast.FieldDecl {
	p.want(TOK_LBRACE)

	var fields []*ast.FieldDecl
	for !p.has(TOK_RBRACE) {
		nameTok := p.want(TOK_IDENT)
		p.want(TOK_COLON)
		typ := p.parseType()

		fields = append(fields, &ast.FieldDecl{
			ASTBase: ast.NewASTBaseOver(nameTok.Span, p.lookbehind.Span),
			Name:    ast.Ident{Value: nameTok.Value, Span: nameTok.Span},
			Type:    typ,
		})

		if p.has(TOK_COMMA) {
			p.next()
		} else if !p.has(TOK_RBRACE) {
			p.rejectExpecting(TOK_COMMA, TOK_RBRACE)
		}
	}

	p.want(TOK_RBRACE)
	return fields
}

// enum_def := 'enum' 'IDENT' '{' [variant {',' variant} [',']] '}' ;
// variant := 'IDENT' ['(' type {',' type} ')' | field_decls] ;
func (p *Parser) parseEnumDef(mods ast.Modifiers) *ast.EnumDef {
	startTok := p.want(TOK_ENUM)
	if len(mods) > 0 {
		startTok = &Token{Span: mods[0].Span()}
	}

	nameTok := p.want(TOK_IDENT)

	p.want(TOK_LBRACE)

	var variants []*ast.Variant
	for !p.has(TOK_RBRACE) {
		variantTok := p.want(TOK_IDENT)

		variant := &ast.Variant{
			Name: ast.Ident{Value: variantTok.Value, Span: variantTok.Span},
			Kind: ast.VariantUnit,
		}

		switch p.tok.Kind {
		case TOK_LPAREN:
			p.next()
			variant.Kind = ast.VariantTuple

			for {
				variant.Payload = append(variant.Payload, p.parseType())

				if p.has(TOK_COMMA) {
					p.next()

					if !p.has(TOK_RPAREN) {
						continue
					}
				}

				break
			}

			p.want(TOK_RPAREN)
		case TOK_LBRACE:
			variant.Kind = ast.VariantStruct
			variant.Fields = p.parseFieldDecls()
		}

		variant.ASTBase = ast.NewASTBaseOver(variantTok.Span, p.lookbehind.Span)
		variants = append(variants, variant)

		if p.has(TOK_COMMA) {
			p.next()
		} else if !p.has(TOK_RBRACE) {
			p.rejectExpecting(TOK_COMMA, TOK_RBRACE)
		}
	}

	p.want(TOK_RBRACE)

	return &ast.EnumDef{
		ASTBase:   ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span),
		Modifiers: mods,
		Name:      ast.Ident{Value: nameTok.Value, Span: nameTok.Span},
		Variants:  variants,
	}
}
