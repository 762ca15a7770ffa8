package parser

import (
	"github.com/dedzsinator/go-matrix/internal/ast"
	"github.com/dedzsinator/go-matrix/internal/lexer"
)

// parseTypeExpression parses a type annotation with curToken on its first
// token. On exit curToken is the annotation's last token.
//
// Forms: primitive and user type names, [T] arrays, [[T]] matrices, and
// (T1, T2) -> R function types.
func (p *Parser) parseTypeExpression() ast.TypeExpression {
	switch p.curToken.Type {
	case lexer.INT_TYPE, lexer.FLOAT_TYPE, lexer.BOOL_TYPE, lexer.STRING_TYPE, lexer.UNIT_TYPE, lexer.IDENT:
		return &ast.NamedType{Token: p.curToken, Name: p.curToken.Literal}
	case lexer.LBRACK:
		return p.parseBracketType()
	case lexer.LPAREN:
		return p.parseFunctionType()
	}
	p.addErrorAt(p.curToken.Span, ErrUnexpectedToken,
		"expected type, found %s", describeToken(p.curToken))
	return nil
}

// parseBracketType parses [T] and [[T]] with curToken on the outer '['.
func (p *Parser) parseBracketType() ast.TypeExpression {
	tok := p.curToken

	if p.peekTokenIs(lexer.LBRACK) {
		p.nextToken() // inner '['
		p.nextToken()
		element := p.parseTypeExpression()
		if p.err != nil {
			return nil
		}
		if !p.expectPeek(lexer.RBRACK) || !p.expectPeek(lexer.RBRACK) {
			return nil
		}
		return &ast.MatrixTypeNode{Token: tok, Element: element}
	}

	p.nextToken()
	element := p.parseTypeExpression()
	if p.err != nil {
		return nil
	}
	if !p.expectPeek(lexer.RBRACK) {
		return nil
	}
	return &ast.ArrayTypeNode{Token: tok, Element: element}
}

// parseFunctionType parses (T1, ..., Tn) -> R with curToken on '('.
func (p *Parser) parseFunctionType() ast.TypeExpression {
	node := &ast.FunctionTypeNode{Token: p.curToken}

	for !p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		param := p.parseTypeExpression()
		if p.err != nil {
			return nil
		}
		node.Params = append(node.Params, param)
		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
		} else {
			break
		}
	}

	if !p.expectPeek(lexer.RPAREN) || !p.expectPeek(lexer.ARROW) {
		return nil
	}
	p.nextToken()
	node.Return = p.parseTypeExpression()
	if p.err != nil {
		return nil
	}
	return node
}
