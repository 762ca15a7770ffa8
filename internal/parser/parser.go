// Package parser implements the Matrix Language parser.
//
// The parser is a recursive-descent parser with a Pratt-style precedence
// climb for expressions: prefix and infix parse functions are registered per
// token type and parseExpression threads precedence through the infix loop.
// It keeps a one-token lookahead buffer over the lexer and aborts at the
// first unexpected token.
package parser

import (
	"fmt"
	"strconv"

	"github.com/dedzsinator/go-matrix/internal/ast"
	"github.com/dedzsinator/go-matrix/internal/lexer"
)

// Precedence levels for operators (lowest to highest).
const (
	_ int = iota
	LOWEST
	COALESCE    // ??
	OR          // ||
	AND         // &&
	EQUALS      // == !=
	LESSGREATER // < <= > >=
	SUM         // + -
	PRODUCT     // * / %
	POWER       // ^ (right-associative)
	PREFIX      // -x, !x
	CALL        // function(args), array[index], obj.field
)

// precedences maps token types to their precedence levels.
var precedences = map[lexer.TokenType]int{
	lexer.QUESTION_QUESTION: COALESCE,
	lexer.PIPE_PIPE:         OR,
	lexer.AMP_AMP:           AND,
	lexer.EQ:                EQUALS,
	lexer.NOT_EQ:            EQUALS,
	lexer.LESS:              LESSGREATER,
	lexer.LESS_EQ:           LESSGREATER,
	lexer.GREATER:           LESSGREATER,
	lexer.GREATER_EQ:        LESSGREATER,
	lexer.PLUS:              SUM,
	lexer.MINUS:             SUM,
	lexer.ASTERISK:          PRODUCT,
	lexer.SLASH:             PRODUCT,
	lexer.PERCENT:           PRODUCT,
	lexer.CARET:             POWER,
	lexer.LPAREN:            CALL,
	lexer.LBRACK:            CALL,
	lexer.DOT:               CALL,
}

// prefixParseFn parses prefix expressions (literals, unary ops, grouping).
type prefixParseFn func() ast.Expression

// infixParseFn parses infix expressions (binary ops, calls, member access).
type infixParseFn func(ast.Expression) ast.Expression

// Parser represents the Matrix Language parser.
type Parser struct {
	l              *lexer.Lexer
	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
	curToken       lexer.Token
	peekToken      lexer.Token
	err            *ParseError
}

// state is a snapshot for speculative parsing. The lambda/grouping ambiguity
// after '(' is resolved by attempting the lambda form and rewinding on
// failure.
type state struct {
	lexerState lexer.State
	curToken   lexer.Token
	peekToken  lexer.Token
	err        *ParseError
}

// New creates a new Parser over the given lexer and primes the one-token
// lookahead buffer.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:              l,
		prefixParseFns: make(map[lexer.TokenType]prefixParseFn),
		infixParseFns:  make(map[lexer.TokenType]infixParseFn),
	}

	p.registerPrefix(lexer.INT, p.parseIntegerLiteral)
	p.registerPrefix(lexer.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(lexer.STRING, p.parseStringLiteral)
	p.registerPrefix(lexer.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(lexer.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(lexer.IDENT, p.parseIdentifierExpression)
	p.registerPrefix(lexer.MINUS, p.parseUnaryExpression)
	p.registerPrefix(lexer.EXCLAMATION, p.parseUnaryExpression)
	p.registerPrefix(lexer.LPAREN, p.parseParenExpression)
	p.registerPrefix(lexer.LBRACK, p.parseBracketLiteral)
	p.registerPrefix(lexer.LBRACE, p.parseBlockAsExpression)
	p.registerPrefix(lexer.IF, p.parseIfExpression)
	p.registerPrefix(lexer.LET, p.parseLetExpression)
	p.registerPrefix(lexer.FN, p.parseFnLambda)
	p.registerPrefix(lexer.MATCH, p.parseMatchExpression)
	p.registerPrefix(lexer.AT, p.parseDirectiveExpression)

	p.registerInfix(lexer.PLUS, p.parseBinaryExpression)
	p.registerInfix(lexer.MINUS, p.parseBinaryExpression)
	p.registerInfix(lexer.ASTERISK, p.parseBinaryExpression)
	p.registerInfix(lexer.SLASH, p.parseBinaryExpression)
	p.registerInfix(lexer.PERCENT, p.parseBinaryExpression)
	p.registerInfix(lexer.CARET, p.parseBinaryExpression)
	p.registerInfix(lexer.EQ, p.parseBinaryExpression)
	p.registerInfix(lexer.NOT_EQ, p.parseBinaryExpression)
	p.registerInfix(lexer.LESS, p.parseBinaryExpression)
	p.registerInfix(lexer.LESS_EQ, p.parseBinaryExpression)
	p.registerInfix(lexer.GREATER, p.parseBinaryExpression)
	p.registerInfix(lexer.GREATER_EQ, p.parseBinaryExpression)
	p.registerInfix(lexer.AMP_AMP, p.parseBinaryExpression)
	p.registerInfix(lexer.PIPE_PIPE, p.parseBinaryExpression)
	p.registerInfix(lexer.QUESTION_QUESTION, p.parseBinaryExpression)
	p.registerInfix(lexer.LPAREN, p.parseCallExpression)
	p.registerInfix(lexer.LBRACK, p.parseIndexExpression)
	p.registerInfix(lexer.DOT, p.parseFieldAccess)

	// Prime curToken and peekToken
	p.nextToken()
	p.nextToken()
	return p
}

// Parse is a convenience that lexes and parses source in one step.
func Parse(source string) (*ast.Program, error) {
	return New(lexer.New(source)).ParseProgram()
}

// ParseProgram parses the complete token stream into a Program.
// It returns the first syntax error encountered, if any.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{}

	for !p.curTokenIs(lexer.EOF) {
		if p.curTokenIs(lexer.SEMICOLON) {
			p.nextToken()
			continue
		}
		item := p.parseItem()
		if p.err != nil {
			// A lexical error is the root cause when one is present.
			if errs := p.l.Errors(); len(errs) > 0 {
				return nil, errs[0]
			}
			return nil, p.err
		}
		program.Items = append(program.Items, item)
		p.nextToken()
	}

	if errs := p.l.Errors(); len(errs) > 0 {
		return nil, errs[0]
	}
	return program, nil
}

// registerPrefix registers a prefix parse function for a token type.
func (p *Parser) registerPrefix(tokenType lexer.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

// registerInfix registers an infix parse function for a token type.
func (p *Parser) registerInfix(tokenType lexer.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

// nextToken advances the lookahead buffer.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t lexer.TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek advances if the peek token matches, otherwise records an error
// and returns false.
func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

// curPrecedence returns the precedence of the current token.
func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// peekPrecedence returns the precedence of the peek token.
func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// saveState captures parser and lexer state for speculative parsing.
func (p *Parser) saveState() state {
	return state{
		lexerState: p.l.SaveState(),
		curToken:   p.curToken,
		peekToken:  p.peekToken,
		err:        p.err,
	}
}

// restoreState rewinds the parser to a previously saved state.
func (p *Parser) restoreState(s state) {
	p.l.RestoreState(s.lexerState)
	p.curToken = s.curToken
	p.peekToken = s.peekToken
	p.err = s.err
}

// describeToken renders a token for error messages.
func describeToken(tok lexer.Token) string {
	if tok.Type == lexer.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", tok.Literal)
}

// peekError records an error about an unexpected peek token. Only the first
// error is kept; the parser aborts once err is set.
func (p *Parser) peekError(t lexer.TokenType) {
	if p.err != nil {
		return
	}
	code := ErrUnexpectedToken
	if p.peekToken.Type == lexer.EOF {
		code = ErrUnexpectedEof
	}
	p.err = &ParseError{
		Expected: t.String(),
		Found:    p.peekToken.Type.String(),
		Message:  fmt.Sprintf("expected %s, found %s", t, describeToken(p.peekToken)),
		Code:     code,
		Span:     p.peekToken.Span,
	}
}

// addErrorAt records a generic error at the given span.
func (p *Parser) addErrorAt(span lexer.Span, code, format string, args ...any) {
	if p.err != nil {
		return
	}
	p.err = NewParseError(span, fmt.Sprintf(format, args...), code)
}

// noPrefixParseFnError records an error for a token with no prefix parse rule.
func (p *Parser) noPrefixParseFnError() {
	if p.err != nil {
		return
	}
	code := ErrUnexpectedToken
	if p.curToken.Type == lexer.EOF {
		code = ErrUnexpectedEof
	}
	p.err = &ParseError{
		Expected: "expression",
		Found:    p.curToken.Type.String(),
		Message:  fmt.Sprintf("expected expression, found %s", describeToken(p.curToken)),
		Code:     code,
		Span:     p.curToken.Span,
	}
}

// parseExpression is the Pratt precedence climb. curToken is the first token
// of the expression on entry and its last token on exit.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	if p.err != nil {
		return nil
	}
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError()
		return nil
	}
	left := prefix()

	for p.err == nil && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addErrorAt(p.curToken.Span, ErrInvalidLiteral,
			"could not parse %q as integer", p.curToken.Literal)
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addErrorAt(p.curToken.Span, ErrInvalidLiteral,
			"could not parse %q as float", p.curToken.Literal)
		return nil
	}
	return &ast.FloatLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(lexer.TRUE)}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	expr := &ast.UnaryExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
	}
	p.nextToken()
	expr.Operand = p.parseExpression(PREFIX)
	return expr
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	expr := &ast.BinaryExpression{
		Token:    p.curToken,
		Left:     left,
		Operator: p.curToken.Literal,
	}
	precedence := p.curPrecedence()
	// ^ is right-associative: parse the right side at one level below
	if p.curTokenIs(lexer.CARET) {
		precedence--
	}
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	return expr
}
