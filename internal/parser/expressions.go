package parser

import (
	"unicode"
	"unicode/utf8"

	"github.com/dedzsinator/go-matrix/internal/ast"
	"github.com/dedzsinator/go-matrix/internal/lexer"
)

// parseIdentifierExpression parses an identifier reference, or a struct
// literal when a capitalized identifier is immediately followed by a brace
// that opens a field list or is empty: Point { x: 1, y: 2 }, Point { }.
// Any other brace, such as the body in `match Empty { ... }`, leaves the
// identifier as it is.
func (p *Parser) parseIdentifierExpression() ast.Expression {
	ident := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	if p.peekTokenIs(lexer.LBRACE) && startsUpper(ident.Value) {
		st := p.saveState()
		p.nextToken() // curToken is '{'
		isStruct := p.peekTokenIs(lexer.RBRACE)
		if !isStruct && p.peekTokenIs(lexer.IDENT) {
			p.nextToken()
			isStruct = p.peekTokenIs(lexer.COLON)
		}
		p.restoreState(st)
		if isStruct {
			return p.parseStructLiteral(ident)
		}
	}
	return ident
}

// parseStructLiteral parses Name { field: value, ... } with curToken on the
// struct name. Trailing commas are allowed.
func (p *Parser) parseStructLiteral(name *ast.Identifier) ast.Expression {
	lit := &ast.StructLiteral{Token: name.Token, Name: name}
	p.nextToken() // consume name, curToken is '{'

	for !p.peekTokenIs(lexer.RBRACE) {
		if !p.expectPeek(lexer.IDENT) {
			return nil
		}
		field := &ast.StructLiteralField{
			Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal},
		}
		if !p.expectPeek(lexer.COLON) {
			return nil
		}
		p.nextToken()
		field.Value = p.parseExpression(LOWEST)
		if p.err != nil {
			return nil
		}
		lit.Fields = append(lit.Fields, field)

		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
		} else {
			break
		}
	}

	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}
	return lit
}

// parseParenExpression disambiguates between the unit literal (), a
// parenthesised expression, and a lambda parameter list. The lambda form is
// attempted speculatively; if no arrow follows the closing parenthesis the
// parser rewinds and re-parses as a grouped expression.
func (p *Parser) parseParenExpression() ast.Expression {
	tok := p.curToken

	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken() // curToken is ')'
		if p.peekTokenIs(lexer.FAT_ARROW) || p.peekTokenIs(lexer.ARROW) {
			return p.parseLambdaRest(tok, []*ast.Param{})
		}
		return &ast.UnitLiteral{Token: tok}
	}

	st := p.saveState()
	params := p.parseFunctionParams()
	if p.err == nil && params != nil &&
		(p.peekTokenIs(lexer.FAT_ARROW) || p.peekTokenIs(lexer.ARROW)) {
		return p.parseLambdaRest(tok, params)
	}
	p.restoreState(st)

	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return expr
}

// parseLambdaRest parses the optional return annotation and the body of a
// lambda. curToken is the closing parenthesis of the parameter list.
func (p *Parser) parseLambdaRest(tok lexer.Token, params []*ast.Param) ast.Expression {
	lambda := &ast.LambdaExpression{Token: tok, Params: params}

	if p.peekTokenIs(lexer.ARROW) {
		p.nextToken()
		p.nextToken()
		lambda.ReturnType = p.parseTypeExpression()
		if p.err != nil {
			return nil
		}
	}
	if !p.expectPeek(lexer.FAT_ARROW) {
		return nil
	}
	p.nextToken()
	lambda.Body = p.parseExpression(LOWEST)
	return lambda
}

// parseFnLambda parses an anonymous function introduced by the fn keyword:
// fn(params) [-> T] => body. Named fn forms are items, handled by parseItem.
func (p *Parser) parseFnLambda() ast.Expression {
	tok := p.curToken
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	params := p.parseFunctionParams()
	if p.err != nil {
		return nil
	}
	return p.parseLambdaRest(tok, params)
}

// parseFunctionParams parses a parameter list with curToken on '('. Each
// parameter is an identifier with an optional type annotation. On exit
// curToken is the closing ')'. Returns nil when the list does not parse.
func (p *Parser) parseFunctionParams() []*ast.Param {
	params := []*ast.Param{}

	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		return params
	}

	for {
		if !p.expectPeek(lexer.IDENT) {
			return nil
		}
		param := &ast.Param{
			Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal},
		}
		if p.peekTokenIs(lexer.COLON) {
			p.nextToken()
			p.nextToken()
			param.Type = p.parseTypeExpression()
			if p.err != nil {
				return nil
			}
		}
		params = append(params, param)

		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return params
}

// parseBracketLiteral parses an array literal, or a matrix literal when
// every top-level element is itself a bracket literal.
func (p *Parser) parseBracketLiteral() ast.Expression {
	tok := p.curToken
	elements := p.parseExpressionList(lexer.RBRACK)
	if p.err != nil {
		return nil
	}

	if len(elements) > 0 {
		rows := make([][]ast.Expression, 0, len(elements))
		for _, el := range elements {
			row, ok := el.(*ast.ArrayLiteral)
			if !ok {
				rows = nil
				break
			}
			rows = append(rows, row.Elements)
		}
		if rows != nil {
			return &ast.MatrixLiteral{Token: tok, Rows: rows}
		}
	}

	return &ast.ArrayLiteral{Token: tok, Elements: elements}
}

// parseExpressionList parses a comma-separated expression list terminated by
// end. curToken is the opening delimiter on entry and end on exit.
func (p *Parser) parseExpressionList(end lexer.TokenType) []ast.Expression {
	list := []ast.Expression{}

	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}

	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))

	for p.err == nil && p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}

	if p.err != nil || !p.expectPeek(end) {
		return nil
	}
	return list
}

// parseBlockAsExpression adapts parseBlockExpression to the prefix registry.
func (p *Parser) parseBlockAsExpression() ast.Expression {
	block := p.parseBlockExpression()
	if block == nil {
		return nil
	}
	return block
}

// parseBlockExpression parses { stmt; stmt; expr } with curToken on '{'.
// Semicolons separate statements; a trailing semicolon makes the block yield
// Unit. On exit curToken is '}'.
func (p *Parser) parseBlockExpression() *ast.BlockExpression {
	block := &ast.BlockExpression{Token: p.curToken}
	p.nextToken()

	for !p.curTokenIs(lexer.RBRACE) {
		if p.curTokenIs(lexer.EOF) {
			p.addErrorAt(p.curToken.Span, ErrUnexpectedEof, "unterminated block, expected \"}\"")
			return nil
		}
		stmt := p.parseStatement()
		if p.err != nil {
			return nil
		}
		block.Statements = append(block.Statements, stmt)

		if p.peekTokenIs(lexer.SEMICOLON) {
			p.nextToken()
			p.nextToken()
			if p.curTokenIs(lexer.RBRACE) {
				block.TrailingSemicolon = true
			}
		} else if !p.expectPeek(lexer.RBRACE) {
			return nil
		}
	}
	return block
}

// parseStatement parses a single block statement: a let binding (statement
// or let-in expression form) or an expression.
func (p *Parser) parseStatement() ast.Statement {
	if p.curTokenIs(lexer.LET) {
		tok, name, typ, value := p.parseLetHeader()
		if p.err != nil {
			return nil
		}
		if p.peekTokenIs(lexer.IN) {
			expr := p.parseLetBody(tok, name, typ, value)
			if p.err != nil {
				return nil
			}
			return &ast.ExpressionStatement{Expression: expr}
		}
		return &ast.LetStatement{Token: tok, Name: name, Type: typ, Value: value}
	}

	expr := p.parseExpression(LOWEST)
	if p.err != nil {
		return nil
	}
	return &ast.ExpressionStatement{Expression: expr}
}

// parseLetHeader parses `let name [: T] = value` with curToken on LET.
// On exit curToken is the last token of the value expression.
func (p *Parser) parseLetHeader() (lexer.Token, *ast.Identifier, ast.TypeExpression, ast.Expression) {
	tok := p.curToken
	if !p.expectPeek(lexer.IDENT) {
		return tok, nil, nil, nil
	}
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	var typ ast.TypeExpression
	if p.peekTokenIs(lexer.COLON) {
		p.nextToken()
		p.nextToken()
		typ = p.parseTypeExpression()
		if p.err != nil {
			return tok, nil, nil, nil
		}
	}

	if !p.expectPeek(lexer.ASSIGN) {
		return tok, nil, nil, nil
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	return tok, name, typ, value
}

// parseLetBody consumes `in body` and builds the scoped binding expression.
func (p *Parser) parseLetBody(tok lexer.Token, name *ast.Identifier, typ ast.TypeExpression, value ast.Expression) ast.Expression {
	if !p.expectPeek(lexer.IN) {
		return nil
	}
	p.nextToken()
	body := p.parseExpression(LOWEST)
	if p.err != nil {
		return nil
	}
	return &ast.LetExpression{Token: tok, Name: name, Type: typ, Value: value, Body: body}
}

// parseLetExpression parses `let name [: T] = value in body` in expression
// position. The in clause is mandatory here; the bare form is a top-level
// item or block statement.
func (p *Parser) parseLetExpression() ast.Expression {
	tok, name, typ, value := p.parseLetHeader()
	if p.err != nil {
		return nil
	}
	return p.parseLetBody(tok, name, typ, value)
}

// parseIfExpression parses both accepted conditional forms:
// if cond { a } else { b } and if cond then a else b.
// The else branch is mandatory; else-if chains are allowed in the block form.
func (p *Parser) parseIfExpression() ast.Expression {
	expr := &ast.IfExpression{Token: p.curToken}
	p.nextToken()
	expr.Condition = p.parseExpression(LOWEST)
	if p.err != nil {
		return nil
	}

	if p.peekTokenIs(lexer.THEN) {
		p.nextToken()
		p.nextToken()
		expr.Then = p.parseExpression(LOWEST)
		if p.err != nil || !p.expectPeek(lexer.ELSE) {
			return nil
		}
		p.nextToken()
		expr.Else = p.parseExpression(LOWEST)
		return expr
	}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	expr.Then = p.parseBlockExpression()
	if p.err != nil || !p.expectPeek(lexer.ELSE) {
		return nil
	}

	if p.peekTokenIs(lexer.IF) {
		p.nextToken()
		expr.Else = p.parseIfExpression()
		return expr
	}
	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	expr.Else = p.parseBlockExpression()
	return expr
}

// parseMatchExpression parses match scrutinee { pattern => expr, ... }.
func (p *Parser) parseMatchExpression() ast.Expression {
	expr := &ast.MatchExpression{Token: p.curToken}
	p.nextToken()
	expr.Scrutinee = p.parseExpression(LOWEST)
	if p.err != nil || !p.expectPeek(lexer.LBRACE) {
		return nil
	}

	for !p.peekTokenIs(lexer.RBRACE) {
		p.nextToken()
		arm := &ast.MatchArm{}
		arm.Pattern = p.parsePattern()
		if p.err != nil || !p.expectPeek(lexer.FAT_ARROW) {
			return nil
		}
		p.nextToken()
		arm.Body = p.parseExpression(LOWEST)
		if p.err != nil {
			return nil
		}
		expr.Arms = append(expr.Arms, arm)

		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
		} else {
			break
		}
	}

	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}
	if len(expr.Arms) == 0 {
		p.addErrorAt(expr.Token.Span, ErrUnexpectedToken, "match expression requires at least one arm")
		return nil
	}
	return expr
}

// parsePattern parses a match arm pattern with curToken on its first token.
func (p *Parser) parsePattern() ast.Pattern {
	switch p.curToken.Type {
	case lexer.INT:
		lit := p.parseIntegerLiteral()
		if lit == nil {
			return nil
		}
		return &ast.LiteralPattern{Token: p.curToken, Value: lit}
	case lexer.FLOAT:
		lit := p.parseFloatLiteral()
		if lit == nil {
			return nil
		}
		return &ast.LiteralPattern{Token: p.curToken, Value: lit}
	case lexer.STRING:
		return &ast.LiteralPattern{Token: p.curToken, Value: p.parseStringLiteral()}
	case lexer.TRUE, lexer.FALSE:
		return &ast.LiteralPattern{Token: p.curToken, Value: p.parseBooleanLiteral()}
	case lexer.MINUS:
		return p.parseNegativePattern()
	case lexer.IDENT:
		if p.curToken.Literal == "_" {
			return &ast.WildcardPattern{Token: p.curToken}
		}
		if p.peekTokenIs(lexer.LPAREN) {
			return p.parseVariantPattern()
		}
		if startsUpper(p.curToken.Literal) {
			return &ast.VariantPattern{Token: p.curToken, Name: p.curToken.Literal}
		}
		return &ast.IdentifierPattern{Token: p.curToken, Name: p.curToken.Literal}
	}
	p.addErrorAt(p.curToken.Span, ErrUnexpectedToken,
		"expected pattern, found %s", describeToken(p.curToken))
	return nil
}

// parseNegativePattern parses a negated numeric literal pattern.
func (p *Parser) parseNegativePattern() ast.Pattern {
	minus := p.curToken
	p.nextToken()
	switch p.curToken.Type {
	case lexer.INT:
		lit, ok := p.parseIntegerLiteral().(*ast.IntegerLiteral)
		if !ok {
			return nil
		}
		lit.Value = -lit.Value
		lit.Token.Literal = "-" + lit.Token.Literal
		return &ast.LiteralPattern{Token: minus, Value: lit}
	case lexer.FLOAT:
		lit, ok := p.parseFloatLiteral().(*ast.FloatLiteral)
		if !ok {
			return nil
		}
		lit.Value = -lit.Value
		lit.Token.Literal = "-" + lit.Token.Literal
		return &ast.LiteralPattern{Token: minus, Value: lit}
	}
	p.addErrorAt(p.curToken.Span, ErrUnexpectedToken,
		"expected numeric literal after \"-\" in pattern, found %s", describeToken(p.curToken))
	return nil
}

// parseVariantPattern parses Variant(p1, p2, ...) with curToken on the name.
func (p *Parser) parseVariantPattern() ast.Pattern {
	pattern := &ast.VariantPattern{Token: p.curToken, Name: p.curToken.Literal}
	p.nextToken() // curToken is '('

	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		return pattern
	}

	for {
		p.nextToken()
		arg := p.parsePattern()
		if p.err != nil {
			return nil
		}
		pattern.Args = append(pattern.Args, arg)

		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return pattern
}

// parseDirectiveExpression parses @sim { ... } and @plot { ... }.
func (p *Parser) parseDirectiveExpression() ast.Expression {
	tok := p.curToken
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := p.curToken.Literal
	if name != "sim" && name != "plot" {
		p.addErrorAt(p.curToken.Span, ErrUnexpectedToken, "unknown directive @%s", name)
		return nil
	}
	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	block := p.parseBlockExpression()
	if p.err != nil {
		return nil
	}
	return &ast.DirectiveExpression{Token: tok, Name: name, Block: block}
}

// parseCallExpression parses callee(args) with curToken on '('.
func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	expr := &ast.CallExpression{Token: p.curToken, Callee: callee}
	expr.Arguments = p.parseExpressionList(lexer.RPAREN)
	if p.err != nil {
		return nil
	}
	return expr
}

// parseIndexExpression parses left[index] with curToken on '['.
func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	expr := &ast.IndexExpression{Token: p.curToken, Left: left}
	p.nextToken()
	expr.Index = p.parseExpression(LOWEST)
	if p.err != nil || !p.expectPeek(lexer.RBRACK) {
		return nil
	}
	return expr
}

// parseFieldAccess parses object.field with curToken on '.'.
func (p *Parser) parseFieldAccess(object ast.Expression) ast.Expression {
	expr := &ast.FieldAccess{Token: p.curToken, Object: object}
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	expr.Field = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	return expr
}

// startsUpper reports whether a name begins with an uppercase letter.
// Capitalized names followed by a brace are struct literals; capitalized
// names in pattern position are enum variants.
func startsUpper(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
