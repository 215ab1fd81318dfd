package parser

import (
	"strconv"

	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/lexer"
)

// parseExpression is the core of the Pratt parser. It parses a prefix
// expression and then folds in infix operators whose precedence exceeds
// the given floor. Returns nil if the expression is malformed.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.addError(p.curToken, "Expected expression.")
		return nil
	}
	left := prefix()

	for left != nil && precedence < p.curPrecedence() {
		infix := p.infixParseFns[p.curToken.Type]
		if infix == nil {
			return left
		}
		left = infix(left)
	}

	return left
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()

	value, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.addError(tok, "Invalid number literal.")
		return nil
	}

	return &ast.NumberLiteral{Token: tok, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.StringLiteral{Token: tok, Value: tok.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.BooleanLiteral{Token: tok, Value: tok.Type == lexer.TRUE}
}

func (p *Parser) parseNilLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.NilLiteral{Token: tok}
}

func (p *Parser) parseVariable() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.VariableExpression{Token: tok, Depth: ast.GlobalDepth}
}

func (p *Parser) parseThis() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.ThisExpression{Token: tok, Depth: ast.GlobalDepth}
}

func (p *Parser) parseGrouping() ast.Expression {
	tok := p.curToken
	p.nextToken()

	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if _, ok := p.consume(lexer.RPAREN, "Expected ')' after expression."); !ok {
		return nil
	}

	return &ast.GroupingExpression{Token: tok, Expression: expr}
}

func (p *Parser) parseUnary() ast.Expression {
	operator := p.curToken
	p.nextToken()

	right := p.parseExpression(PREFIX)
	if right == nil {
		return nil
	}

	return &ast.UnaryExpression{Operator: operator, Right: right}
}

func (p *Parser) parseBinary(left ast.Expression) ast.Expression {
	operator := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()

	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}

	return &ast.BinaryExpression{Left: left, Operator: operator, Right: right}
}

func (p *Parser) parseLogical(left ast.Expression) ast.Expression {
	operator := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()

	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}

	return &ast.LogicalExpression{Left: left, Operator: operator, Right: right}
}

// parseAssignment lowers an assignment onto the expression parsed as its
// left-hand side. Only a bare variable or a property access is a valid
// target; anything else is reported but the expression is kept, since the
// parser is not confused about token positions.
func (p *Parser) parseAssignment(left ast.Expression) ast.Expression {
	equals := p.curToken
	p.nextToken()

	// Right-associative: a = b = c parses as a = (b = c).
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}

	switch target := left.(type) {
	case *ast.VariableExpression:
		return &ast.AssignExpression{Name: target.Token, Value: value, Depth: ast.GlobalDepth}
	case *ast.GetExpression:
		return &ast.SetExpression{Object: target.Object, Name: target.Name, Value: value}
	default:
		p.addError(equals, "Invalid assignment target.")
		return left
	}
}

func (p *Parser) parseCall(callee ast.Expression) ast.Expression {
	p.nextToken() // consume '('

	var arguments []ast.Expression
	if !p.curTokenIs(lexer.RPAREN) {
		for {
			if len(arguments) >= maxArgumentCount {
				p.addError(p.curToken, "Can't have more than 255 arguments.")
			}
			arg := p.parseExpression(LOWEST)
			if arg == nil {
				return nil
			}
			arguments = append(arguments, arg)
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}

	paren, ok := p.consume(lexer.RPAREN, "Expected ')' after arguments.")
	if !ok {
		return nil
	}

	return &ast.CallExpression{Callee: callee, Paren: paren, Arguments: arguments}
}

func (p *Parser) parseGet(object ast.Expression) ast.Expression {
	p.nextToken() // consume '.'

	name, ok := p.consume(lexer.IDENT, "Expected property name after '.'.")
	if !ok {
		return nil
	}

	return &ast.GetExpression{Object: object, Name: name}
}
