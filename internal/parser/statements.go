package parser

import (
	"fmt"

	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/lexer"
)

// parseDeclaration parses one top-level or block-level declaration. On a
// parse failure it synchronizes to the next statement boundary and
// returns nil; the caller drops the statement.
func (p *Parser) parseDeclaration() ast.Statement {
	var stmt ast.Statement
	switch {
	case p.match(lexer.CLASS):
		stmt = p.parseClassDeclaration()
	case p.match(lexer.FUN):
		stmt = p.parseFunctionDeclaration()
	case p.match(lexer.VAR):
		stmt = p.parseVarDeclaration()
	default:
		stmt = p.parseStatement()
	}
	if stmt == nil {
		p.synchronize()
	}
	return stmt
}

// parseClassDeclaration parses a class body: a name and a brace-delimited
// list of methods. The class keyword has already been consumed.
func (p *Parser) parseClassDeclaration() ast.Statement {
	classTok := p.prevToken

	name, ok := p.consume(lexer.IDENT, "Expected class name.")
	if !ok {
		return nil
	}
	if _, ok := p.consume(lexer.LBRACE, "Expected '{' before class body."); !ok {
		return nil
	}

	var methods []*ast.FunctionStatement
	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		method := p.parseFunction("method")
		if method == nil {
			return nil
		}
		methods = append(methods, method)
	}

	if _, ok := p.consume(lexer.RBRACE, "Expected '}' after class body."); !ok {
		return nil
	}

	return &ast.ClassStatement{Token: classTok, Name: name, Methods: methods}
}

// parseFunctionDeclaration parses a named function. The fun keyword has
// already been consumed.
func (p *Parser) parseFunctionDeclaration() ast.Statement {
	if fn := p.parseFunction("function"); fn != nil {
		return fn
	}
	return nil
}

// parseFunction parses the common body of function and method
// declarations: name, parameter list and brace-delimited body. kind is
// "function" or "method" and only affects error messages.
func (p *Parser) parseFunction(kind string) *ast.FunctionStatement {
	funTok := p.prevToken
	if kind == "method" {
		// Methods have no fun keyword; anchor the node at the name.
		funTok = p.curToken
	}

	name, ok := p.consume(lexer.IDENT, fmt.Sprintf("Expected %s name.", kind))
	if !ok {
		return nil
	}
	if _, ok := p.consume(lexer.LPAREN, fmt.Sprintf("Expected '(' after %s name.", kind)); !ok {
		return nil
	}

	var params []lexer.Token
	if !p.curTokenIs(lexer.RPAREN) {
		for {
			if len(params) >= maxArgumentCount {
				p.addError(p.curToken, "Can't have more than 255 parameters.")
			}
			param, ok := p.consume(lexer.IDENT, "Expected parameter name.")
			if !ok {
				return nil
			}
			params = append(params, param)
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}

	if _, ok := p.consume(lexer.RPAREN, "Expected ')' after parameters."); !ok {
		return nil
	}
	if _, ok := p.consume(lexer.LBRACE, fmt.Sprintf("Expected '{' before %s body.", kind)); !ok {
		return nil
	}

	body, ok := p.parseBlockBody()
	if !ok {
		return nil
	}

	return &ast.FunctionStatement{Token: funTok, Name: name, Params: params, Body: body}
}

// parseVarDeclaration parses a variable declaration with an optional
// initializer. The var keyword has already been consumed.
func (p *Parser) parseVarDeclaration() ast.Statement {
	varTok := p.prevToken

	name, ok := p.consume(lexer.IDENT, "Expected variable name!")
	if !ok {
		return nil
	}

	var initializer ast.Expression
	if p.match(lexer.ASSIGN) {
		initializer = p.parseExpression(LOWEST)
		if initializer == nil {
			return nil
		}
	}

	if _, ok := p.consume(lexer.SEMICOLON, "Expected ';' after variable declaration"); !ok {
		return nil
	}

	return &ast.VarStatement{Token: varTok, Name: name, Initializer: initializer}
}

// parseStatement parses a non-declaration statement.
func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.match(lexer.FOR):
		return p.parseForStatement()
	case p.match(lexer.IF):
		return p.parseIfStatement()
	case p.match(lexer.PRINT):
		return p.parsePrintStatement()
	case p.match(lexer.RETURN):
		return p.parseReturnStatement()
	case p.match(lexer.WHILE):
		return p.parseWhileStatement()
	case p.match(lexer.LBRACE):
		return p.parseBlockStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseForStatement desugars for-loop syntax into a while loop inside a
// block; there is no for node in the AST. A missing condition becomes the
// literal true.
func (p *Parser) parseForStatement() ast.Statement {
	forTok := p.prevToken

	if _, ok := p.consume(lexer.LPAREN, "Expected '(' after 'for'."); !ok {
		return nil
	}

	var initializer ast.Statement
	switch {
	case p.match(lexer.SEMICOLON):
		initializer = nil
	case p.match(lexer.VAR):
		initializer = p.parseVarDeclaration()
		if initializer == nil {
			return nil
		}
	default:
		initializer = p.parseExpressionStatement()
		if initializer == nil {
			return nil
		}
	}

	var condition ast.Expression
	if !p.curTokenIs(lexer.SEMICOLON) {
		condition = p.parseExpression(LOWEST)
		if condition == nil {
			return nil
		}
	} else {
		condition = &ast.BooleanLiteral{
			Token: lexer.NewToken(lexer.TRUE, "true", forTok.Pos),
			Value: true,
		}
	}
	if _, ok := p.consume(lexer.SEMICOLON, "Expected ';' after loop condition."); !ok {
		return nil
	}

	var increment ast.Expression
	if !p.curTokenIs(lexer.RPAREN) {
		increment = p.parseExpression(LOWEST)
		if increment == nil {
			return nil
		}
	}
	if _, ok := p.consume(lexer.RPAREN, "Expected ')' after clauses."); !ok {
		return nil
	}

	body := p.parseStatement()
	if body == nil {
		return nil
	}

	if increment != nil {
		body = &ast.BlockStatement{
			Token: forTok,
			Statements: []ast.Statement{
				body,
				&ast.ExpressionStatement{Token: forTok, Expression: increment},
			},
		}
	}
	body = &ast.WhileStatement{Token: forTok, Condition: condition, Body: body}
	if initializer != nil {
		body = &ast.BlockStatement{
			Token:      forTok,
			Statements: []ast.Statement{initializer, body},
		}
	}

	return body
}

func (p *Parser) parseIfStatement() ast.Statement {
	ifTok := p.prevToken

	if _, ok := p.consume(lexer.LPAREN, "Expected '(' after 'if'."); !ok {
		return nil
	}
	condition := p.parseExpression(LOWEST)
	if condition == nil {
		return nil
	}
	if _, ok := p.consume(lexer.RPAREN, "Expected ')' after if condition."); !ok {
		return nil
	}

	thenBranch := p.parseStatement()
	if thenBranch == nil {
		return nil
	}

	var elseBranch ast.Statement
	if p.match(lexer.ELSE) {
		elseBranch = p.parseStatement()
		if elseBranch == nil {
			return nil
		}
	}

	return &ast.IfStatement{Token: ifTok, Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

func (p *Parser) parsePrintStatement() ast.Statement {
	printTok := p.prevToken

	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	if _, ok := p.consume(lexer.SEMICOLON, "Expected ';' after value."); !ok {
		return nil
	}

	return &ast.PrintStatement{Token: printTok, Expression: value}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	keyword := p.prevToken

	var value ast.Expression
	if !p.curTokenIs(lexer.SEMICOLON) {
		value = p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
	}
	if _, ok := p.consume(lexer.SEMICOLON, "Expected ';' after return value."); !ok {
		return nil
	}

	return &ast.ReturnStatement{Token: keyword, Value: value}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	whileTok := p.prevToken

	if _, ok := p.consume(lexer.LPAREN, "Expected '(' after 'while'."); !ok {
		return nil
	}
	condition := p.parseExpression(LOWEST)
	if condition == nil {
		return nil
	}
	if _, ok := p.consume(lexer.RPAREN, "Expected ')' after condition."); !ok {
		return nil
	}

	body := p.parseStatement()
	if body == nil {
		return nil
	}

	return &ast.WhileStatement{Token: whileTok, Condition: condition, Body: body}
}

// parseBlockStatement parses a brace-delimited block. The opening brace
// has already been consumed.
func (p *Parser) parseBlockStatement() ast.Statement {
	braceTok := p.prevToken

	statements, ok := p.parseBlockBody()
	if !ok {
		return nil
	}

	return &ast.BlockStatement{Token: braceTok, Statements: statements}
}

// parseBlockBody parses declarations up to the closing brace and consumes
// it. Used by blocks and function bodies.
func (p *Parser) parseBlockBody() ([]ast.Statement, bool) {
	var statements []ast.Statement
	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		stmt := p.parseDeclaration()
		if stmt == nil {
			return nil, false
		}
		statements = append(statements, stmt)
	}
	if _, ok := p.consume(lexer.RBRACE, "Expected '}' after block."); !ok {
		return nil, false
	}
	return statements, true
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	firstTok := p.curToken

	expression := p.parseExpression(LOWEST)
	if expression == nil {
		return nil
	}
	if _, ok := p.consume(lexer.SEMICOLON, "Expected ';' after expression."); !ok {
		return nil
	}

	return &ast.ExpressionStatement{Token: firstTok, Expression: expression}
}
