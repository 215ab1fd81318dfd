// Package parser implements the Lox parser using Pratt parsing.
//
// Key patterns:
//   - Expression parsing: precedence table + prefixParseFns/infixParseFns
//   - Error recovery: parse functions return nil on a missing token; the
//     declaration loop calls synchronize() to skip to a statement boundary
//   - Non-fatal errors ("Invalid assignment target.", argument caps) are
//     recorded without discarding the expression
package parser

import (
	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/lexer"
)

// Precedence levels for operators (lowest to highest).
const (
	_ int = iota
	LOWEST
	ASSIGNMENT  // =
	LOGIC_OR    // or
	LOGIC_AND   // and
	EQUALS      // == !=
	LESSGREATER // < > <= >=
	SUM         // + -
	PRODUCT     // * /
	PREFIX      // -x, !x
	CALL        // function(args)
	MEMBER      // obj.property
)

// precedences maps token types to their precedence levels.
var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN:     ASSIGNMENT,
	lexer.OR:         LOGIC_OR,
	lexer.AND:        LOGIC_AND,
	lexer.EQ:         EQUALS,
	lexer.NOT_EQ:     EQUALS,
	lexer.LESS:       LESSGREATER,
	lexer.LESS_EQ:    LESSGREATER,
	lexer.GREATER:    LESSGREATER,
	lexer.GREATER_EQ: LESSGREATER,
	lexer.PLUS:       SUM,
	lexer.MINUS:      SUM,
	lexer.SLASH:      PRODUCT,
	lexer.ASTERISK:   PRODUCT,
	lexer.LPAREN:     CALL,
	lexer.DOT:        MEMBER,
}

// maxArgumentCount is the cap on call arguments and function parameters.
// Exceeding it is reported but does not abort the parse.
const maxArgumentCount = 255

// prefixParseFn parses prefix expressions (literals, unary ops, grouping).
type prefixParseFn func() ast.Expression

// infixParseFn parses infix expressions (binary ops, calls, member access).
type infixParseFn func(ast.Expression) ast.Expression

// Parser represents the Lox parser. It pulls tokens from the lexer one at
// a time, keeping a one-token lookahead.
type Parser struct {
	l              *lexer.Lexer
	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
	errors         []*ParseError
	prevToken      lexer.Token
	curToken       lexer.Token
	peekToken      lexer.Token
}

// New creates a new Parser reading from the given lexer.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.NUMBER: p.parseNumberLiteral,
		lexer.STRING: p.parseStringLiteral,
		lexer.TRUE:   p.parseBooleanLiteral,
		lexer.FALSE:  p.parseBooleanLiteral,
		lexer.NIL:    p.parseNilLiteral,
		lexer.IDENT:  p.parseVariable,
		lexer.THIS:   p.parseThis,
		lexer.LPAREN: p.parseGrouping,
		lexer.BANG:   p.parseUnary,
		lexer.MINUS:  p.parseUnary,
	}
	p.infixParseFns = map[lexer.TokenType]infixParseFn{
		lexer.ASSIGN:     p.parseAssignment,
		lexer.OR:         p.parseLogical,
		lexer.AND:        p.parseLogical,
		lexer.EQ:         p.parseBinary,
		lexer.NOT_EQ:     p.parseBinary,
		lexer.LESS:       p.parseBinary,
		lexer.LESS_EQ:    p.parseBinary,
		lexer.GREATER:    p.parseBinary,
		lexer.GREATER_EQ: p.parseBinary,
		lexer.PLUS:       p.parseBinary,
		lexer.MINUS:      p.parseBinary,
		lexer.SLASH:      p.parseBinary,
		lexer.ASTERISK:   p.parseBinary,
		lexer.LPAREN:     p.parseCall,
		lexer.DOT:        p.parseGet,
	}

	// Load curToken and peekToken
	p.nextToken()
	p.nextToken()

	return p
}

// Errors returns the list of parsing errors.
func (p *Parser) Errors() []*ParseError {
	return p.errors
}

// LexerErrors returns all lexer errors accumulated during tokenization.
// These must be checked in addition to parser errors for complete error
// reporting.
func (p *Parser) LexerErrors() []lexer.LexError {
	return p.l.Errors()
}

// addError records a parse error anchored at the given token.
func (p *Parser) addError(tok lexer.Token, message string) {
	p.errors = append(p.errors, &ParseError{Token: tok, Message: message})
}

// nextToken advances the token window by one.
func (p *Parser) nextToken() {
	p.prevToken = p.curToken
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// curTokenIs checks if the current token is of the given type.
func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

// match advances past the current token if it is one of the given types.
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.curTokenIs(t) {
			p.nextToken()
			return true
		}
	}
	return false
}

// consume advances past the current token if it has the expected type and
// returns it. Otherwise it records a parse error with the given message
// and reports failure; the caller abandons its production.
func (p *Parser) consume(t lexer.TokenType, message string) (lexer.Token, bool) {
	if p.curTokenIs(t) {
		tok := p.curToken
		p.nextToken()
		return tok, true
	}
	p.addError(p.curToken, message)
	return lexer.Token{}, false
}

// curPrecedence returns the precedence of the current token, or LOWEST.
func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// ParseProgram parses the token stream into a Program node. Parsing
// continues past errors so that a single pass surfaces as many as
// possible; failed declarations are dropped after synchronization.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.curTokenIs(lexer.EOF) {
		if stmt := p.parseDeclaration(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}

	return program
}

// synchronize discards tokens until a likely statement boundary: just
// past a semicolon, or just before a keyword that begins a statement.
func (p *Parser) synchronize() {
	p.nextToken()
	for !p.curTokenIs(lexer.EOF) {
		if p.prevToken.Type == lexer.SEMICOLON {
			return
		}
		switch p.curToken.Type {
		case lexer.CLASS, lexer.FUN, lexer.VAR, lexer.FOR,
			lexer.IF, lexer.WHILE, lexer.PRINT, lexer.RETURN:
			return
		}
		p.nextToken()
	}
}
