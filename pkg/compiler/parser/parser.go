package parser

import (
	"fmt"
	"strconv"

	"github.com/urbancheese/py-to-asm/pkg/compiler/ast"
	"github.com/urbancheese/py-to-asm/pkg/compiler/lexer"
)

// ParseError reports a grammar violation at a specific token. The
// whole parse aborts on the first one; no partial tree is returned.
type ParseError struct {
	Token lexer.Token
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Token.Line, e.Token.Column, e.Msg)
}

// Parser consumes a token sequence by recursive descent, with one
// precedence-climbing ladder for binary expressions
// (comparison < additive < multiplicative < primary).
type Parser struct {
	tokens []lexer.Token
	pos    int
}

func NewParser(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse returns the top-level statement sequence.
func (p *Parser) Parse() ([]ast.Node, error) {
	var nodes []ast.Node
	for {
		p.skipNewlines()
		if p.isAtEnd() {
			return nodes, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, stmt)
	}
}

func (p *Parser) parseStatement() (ast.Node, error) {
	tok := p.current()

	if tok.Kind == lexer.KindIdentifier && p.peekNext().Text == "=" {
		node, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		p.consumeNewline()
		return node, nil
	}
	if tok.Kind == lexer.KindKeyword && tok.Text == "if" {
		return p.parseConditional()
	}

	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.consumeNewline()
	return node, nil
}

func (p *Parser) parseAssignment() (ast.Node, error) {
	name := p.consume()
	p.consume() // the '=' operator, guaranteed by the dispatch peek
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{Token: name, Name: name.Text, Value: value}, nil
}

func (p *Parser) parseConditional() (ast.Node, error) {
	ifTok := p.consume()
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	// Blank and comment-only lines between the header and the body
	// emit bare newlines before the Indent; skip the whole run.
	p.skipNewlines()

	if !p.check(lexer.KindIndent) {
		return nil, &ParseError{Token: p.current(), Msg: "expected indented block after if statement"}
	}
	p.consume()

	var body []ast.Node
	for {
		p.skipNewlines()
		if p.check(lexer.KindDedent) || p.isAtEnd() {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	if p.check(lexer.KindDedent) {
		p.consume()
	}

	return &ast.Conditional{Token: ifTok, Condition: condition, Body: body}, nil
}

func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseComparison()
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	expr, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.matchOperator("<", ">", "<=", ">=", "==", "!=") {
		op := p.previous()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryOp{Token: op, Operator: op.Text, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseTerm() (ast.Expr, error) {
	expr, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.matchOperator("+", "-") {
		op := p.previous()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryOp{Token: op, Operator: op.Text, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseFactor() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.matchOperator("*", "/") {
		op := p.previous()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryOp{Token: op, Operator: op.Text, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.current()
	switch tok.Kind {
	case lexer.KindNumber:
		p.consume()
		value, err := strconv.Atoi(tok.Text)
		if err != nil {
			return nil, &ParseError{Token: tok, Msg: fmt.Sprintf("invalid number literal %q", tok.Text)}
		}
		return &ast.NumberLiteral{Token: tok, Value: value}, nil
	case lexer.KindIdentifier:
		p.consume()
		return &ast.Variable{Token: tok, Name: tok.Text}, nil
	}
	return nil, &ParseError{Token: tok, Msg: fmt.Sprintf("unexpected token %s", tok)}
}

// Helper methods

func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Kind: lexer.KindEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekNext() lexer.Token {
	if p.pos+1 >= len(p.tokens) {
		return lexer.Token{Kind: lexer.KindEOF}
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.pos-1]
}

func (p *Parser) consume() lexer.Token {
	tok := p.current()
	p.pos++
	return tok
}

func (p *Parser) check(kind lexer.Kind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.current().Kind == kind
}

// matchOperator consumes the current token if it is an Operator whose
// text is one of ops.
func (p *Parser) matchOperator(ops ...string) bool {
	if !p.check(lexer.KindOperator) {
		return false
	}
	for _, op := range ops {
		if p.current().Text == op {
			p.consume()
			return true
		}
	}
	return false
}

func (p *Parser) skipNewlines() {
	for p.check(lexer.KindNewline) {
		p.consume()
	}
}

// consumeNewline eats one trailing newline if present; statements at
// end of input have none.
func (p *Parser) consumeNewline() {
	if p.check(lexer.KindNewline) {
		p.consume()
	}
}

func (p *Parser) isAtEnd() bool {
	return p.current().Kind == lexer.KindEOF
}
