package parser

import (
	"github.com/dedzsinator/go-matrix/internal/ast"
	"github.com/dedzsinator/go-matrix/internal/lexer"
)

// parseItem parses one top-level item with curToken on its first token.
// On exit curToken is the item's last token.
func (p *Parser) parseItem() ast.Item {
	switch p.curToken.Type {
	case lexer.STRUCT:
		return p.parseStructDef()
	case lexer.ENUM:
		return p.parseEnumDef()
	case lexer.FN:
		if p.peekTokenIs(lexer.IDENT) {
			return p.parseFunctionDef()
		}
	case lexer.LET:
		return p.parseLetItem()
	}

	expr := p.parseExpression(LOWEST)
	if p.err != nil {
		return nil
	}
	return &ast.ExpressionItem{Expression: expr}
}

// parseLetItem parses a top-level let. The bare form is a LetBinding item;
// a let followed by `in` is a scoped binding expression.
func (p *Parser) parseLetItem() ast.Item {
	tok, name, typ, value := p.parseLetHeader()
	if p.err != nil {
		return nil
	}
	if p.peekTokenIs(lexer.IN) {
		expr := p.parseLetBody(tok, name, typ, value)
		if p.err != nil {
			return nil
		}
		return &ast.ExpressionItem{Expression: expr}
	}
	return &ast.LetBinding{Token: tok, Name: name, Type: typ, Value: value}
}

// parseFunctionDef parses fn name(params) [-> T] => body. A block body may
// stand in for the arrow form: fn name(params) [-> T] { ... }.
func (p *Parser) parseFunctionDef() ast.Item {
	def := &ast.FunctionDef{Token: p.curToken}
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	def.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	def.Params = p.parseFunctionParams()
	if p.err != nil {
		return nil
	}

	if p.peekTokenIs(lexer.ARROW) {
		p.nextToken()
		p.nextToken()
		def.ReturnType = p.parseTypeExpression()
		if p.err != nil {
			return nil
		}
	}

	switch {
	case p.peekTokenIs(lexer.FAT_ARROW):
		p.nextToken()
		p.nextToken()
		def.Body = p.parseExpression(LOWEST)
	case p.peekTokenIs(lexer.LBRACE):
		p.nextToken()
		def.Body = p.parseBlockExpression()
	default:
		p.peekError(lexer.FAT_ARROW)
	}
	if p.err != nil {
		return nil
	}
	return def
}

// parseStructDef parses struct Name { field: T, ... }.
func (p *Parser) parseStructDef() ast.Item {
	def := &ast.StructDef{Token: p.curToken}
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	def.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}

	for !p.peekTokenIs(lexer.RBRACE) {
		if !p.expectPeek(lexer.IDENT) {
			return nil
		}
		field := &ast.StructField{
			Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal},
		}
		if !p.expectPeek(lexer.COLON) {
			return nil
		}
		p.nextToken()
		field.Type = p.parseTypeExpression()
		if p.err != nil {
			return nil
		}
		def.Fields = append(def.Fields, field)

		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
		} else {
			break
		}
	}

	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}
	return def
}

// parseEnumDef parses enum Name { Variant, Variant(T1, T2), ... }.
func (p *Parser) parseEnumDef() ast.Item {
	def := &ast.EnumDef{Token: p.curToken}
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	def.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}

	for !p.peekTokenIs(lexer.RBRACE) {
		if !p.expectPeek(lexer.IDENT) {
			return nil
		}
		variant := &ast.EnumVariant{
			Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal},
		}

		if p.peekTokenIs(lexer.LPAREN) {
			p.nextToken()
			for !p.peekTokenIs(lexer.RPAREN) {
				p.nextToken()
				typ := p.parseTypeExpression()
				if p.err != nil {
					return nil
				}
				variant.Types = append(variant.Types, typ)
				if p.peekTokenIs(lexer.COMMA) {
					p.nextToken()
				} else {
					break
				}
			}
			if !p.expectPeek(lexer.RPAREN) {
				return nil
			}
		}
		def.Variants = append(def.Variants, variant)

		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
		} else {
			break
		}
	}

	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}
	return def
}
