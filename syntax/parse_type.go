package syntax

import (
	"github.com/SeppDev/eclipse-sub000/ast"
	"github.com/SeppDev/eclipse-sub000/report"
)

// primTypeNames is the set of primitive type names.
var primTypeNames = map[string]struct{}{
	"i8": {}, "i16": {}, "i32": {}, "i64": {}, "isize": {},
	"u8": {}, "u16": {}, "u32": {}, "u64": {}, "usize": {},
	"f32": {}, "f64": {},
	"bool": {}, "char": {}, "str": {},
	"void": {}, "never": {},
}

// type_label := prim_type | 'Self' | tuple_type | array_type | slice_type
//	| ref_type | pointer_type | named_type ;
func (p *Parser) parseType() ast.TypeExpr {
	switch p.tok.Kind {
	case TOK_IDENT:
		if _, ok := primTypeNames[p.tok.Value]; ok {
			p.next()
			return &ast.PrimType{
				ASTBase: ast.NewASTBaseOn(p.lookbehind.Span),
				Name:    p.lookbehind.Value,
			}
		} else if p.tok.Value == "Self" {
			p.next()
			return &ast.SelfType{ASTBase: ast.NewASTBaseOn(p.lookbehind.Span)}
		}

		return p.parseNamedType()
	case TOK_LPAREN:
		return p.parseTupleType()
	case TOK_LBRACKET:
		return p.parseArrayOrSliceType()
	case TOK_AMP:
		startTok := p.tok
		p.next()

		return p.parseRefTypeTail(startTok.Span)
	case TOK_LAND:
		// `&&T` is lexed as a single token: it is a reference to a reference.
		startTok := p.tok
		p.next()

		innerStart := startTok.Span.Start
		innerStart.Col++
		innerStart.Offset++

		inner := p.parseRefTypeTail(report.NewSpan(innerStart, startTok.Span.End))
		return &ast.RefType{
			ASTBase: ast.NewASTBaseOver(startTok.Span, inner.Span()),
			Elem:    inner,
		}
	case TOK_STAR:
		startTok := p.tok
		p.next()

		elem := p.parseType()
		return &ast.PointerType{
			ASTBase: ast.NewASTBaseOver(startTok.Span, elem.Span()),
			Elem:    elem,
		}
	}

	p.rejectExpectingName("type label")
	return nil
}

// ref_type := '&' ['LIFETIME'] ['mut'] type_label ;
//
// parseRefTypeTail parses a reference type after its leading `&`.
func (p *Parser) parseRefTypeTail(ampSpan *report.TextSpan) ast.TypeExpr {
	refType := &ast.RefType{}

	if p.has(TOK_LIFETIME) {
		refType.Lifetime = p.tok.Value[1:]
		p.next()
	}

	if p.has(TOK_MUT) {
		refType.Mutable = true
		p.next()
	}

	refType.Elem = p.parseType()
	refType.ASTBase = ast.NewASTBaseOver(ampSpan, refType.Elem.Span())
	return refType
}

// tuple_type := '(' [type_label {',' type_label} [',']] ')' ;
//
// A single parenthesized type label without a trailing comma is just that type.
func (p *Parser) parseTupleType() ast.TypeExpr {
	startTok := p.want(TOK_LPAREN)

	var elems []ast.TypeExpr
	trailingComma := false
	for !p.has(TOK_RPAREN) {
		elems = append(elems, p.parseType())

		trailingComma = p.has(TOK_COMMA)
		if trailingComma {
			p.next()
		} else if !p.has(TOK_RPAREN) {
			p.rejectExpecting(TOK_COMMA, TOK_RPAREN)
		}
	}

	p.want(TOK_RPAREN)

	if len(elems) == 1 && !trailingComma {
		return elems[0]
	}

	return &ast.TupleType{
		ASTBase: ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span),
		Elems:   elems,
	}
}

// array_type := '[' type_label ';' 'INTLIT' ']' ;
// slice_type := '[' type_label ']' ;
func (p *Parser) parseArrayOrSliceType() ast.TypeExpr {
	startTok := p.want(TOK_LBRACKET)

	elem := p.parseType()

	if p.has(TOK_SEMI) {
		p.next()

		lenTok := p.want(TOK_INTLIT)
		p.want(TOK_RBRACKET)

		return &ast.ArrayType{
			ASTBase: ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span),
			Elem:    elem,
			Len:     ast.Ident{Value: lenTok.Value, Span: lenTok.Span},
		}
	}

	p.want(TOK_RBRACKET)

	return &ast.SliceType{
		ASTBase: ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span),
		Elem:    elem,
	}
}

// named_type := 'IDENT' {('::' | '.') 'IDENT'} ;
func (p *Parser) parseNamedType() ast.TypeExpr {
	startTok := p.want(TOK_IDENT)

	path := []ast.Ident{{Value: startTok.Value, Span: startTok.Span}}
	for p.hasOneOf(TOK_DCOLON, TOK_DOT) {
		p.next()

		segTok := p.want(TOK_IDENT)
		path = append(path, ast.Ident{Value: segTok.Value, Span: segTok.Span})
	}

	return &ast.NamedType{
		ASTBase: ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span),
		Path:    path,
	}
}
