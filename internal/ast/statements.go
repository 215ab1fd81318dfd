package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/go-lox/internal/lexer"
)

// ExpressionStatement wraps an expression evaluated for its side effects.
type ExpressionStatement struct {
	Token      lexer.Token // The first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) String() string       { return es.Expression.String() + ";" }
func (es *ExpressionStatement) Pos() lexer.Position  { return es.Token.Pos }

// PrintStatement evaluates an expression and prints its rendering followed
// by a newline.
type PrintStatement struct {
	Token      lexer.Token // The PRINT token
	Expression Expression
}

func (ps *PrintStatement) statementNode()       {}
func (ps *PrintStatement) TokenLiteral() string { return ps.Token.Literal }
func (ps *PrintStatement) String() string       { return "(print " + ps.Expression.String() + ");" }
func (ps *PrintStatement) Pos() lexer.Position  { return ps.Token.Pos }

// VarStatement declares a variable with an optional initializer.
type VarStatement struct {
	Token       lexer.Token // The VAR token
	Name        lexer.Token // The IDENT token naming the variable
	Initializer Expression  // nil when no initializer was written
}

func (vs *VarStatement) statementNode()       {}
func (vs *VarStatement) TokenLiteral() string { return vs.Token.Literal }
func (vs *VarStatement) String() string {
	var out bytes.Buffer

	out.WriteString("(var ")
	out.WriteString(vs.Name.Literal)
	if vs.Initializer != nil {
		out.WriteString(" ")
		out.WriteString(vs.Initializer.String())
	}
	out.WriteString(");")

	return out.String()
}
func (vs *VarStatement) Pos() lexer.Position { return vs.Token.Pos }

// BlockStatement groups statements in a nested lexical scope.
type BlockStatement struct {
	Token      lexer.Token // The { token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer

	out.WriteString("{")
	for _, stmt := range bs.Statements {
		out.WriteString(stmt.String())
	}
	out.WriteString("}")

	return out.String()
}
func (bs *BlockStatement) Pos() lexer.Position { return bs.Token.Pos }

// IfStatement represents conditional execution with an optional else branch.
type IfStatement struct {
	Token      lexer.Token // The IF token
	Condition  Expression
	ThenBranch Statement
	ElseBranch Statement // nil when no else branch was written
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) String() string {
	var out bytes.Buffer

	out.WriteString("(if ")
	out.WriteString(is.Condition.String())
	out.WriteString(" ")
	out.WriteString(is.ThenBranch.String())
	if is.ElseBranch != nil {
		out.WriteString(" else ")
		out.WriteString(is.ElseBranch.String())
	}
	out.WriteString(")")

	return out.String()
}
func (is *IfStatement) Pos() lexer.Position { return is.Token.Pos }

// WhileStatement represents a condition-controlled loop. The parser also
// lowers for loops into this node wrapped in blocks.
type WhileStatement struct {
	Token     lexer.Token // The WHILE or FOR token
	Condition Expression
	Body      Statement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) String() string {
	return "(while " + ws.Condition.String() + " " + ws.Body.String() + ")"
}
func (ws *WhileStatement) Pos() lexer.Position { return ws.Token.Pos }

// FunctionStatement declares a named function or, inside a class body, a
// method. The body statements execute in a fresh scope holding the
// parameters.
type FunctionStatement struct {
	Token  lexer.Token   // The FUN token, or the name token for methods
	Name   lexer.Token   // The IDENT token naming the function
	Params []lexer.Token // Parameter name tokens
	Body   []Statement
}

func (fs *FunctionStatement) statementNode()       {}
func (fs *FunctionStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *FunctionStatement) String() string {
	var out bytes.Buffer

	params := make([]string, 0, len(fs.Params))
	for _, param := range fs.Params {
		params = append(params, param.Literal)
	}

	out.WriteString("(fun ")
	out.WriteString(fs.Name.Literal)
	out.WriteString("(")
	out.WriteString(strings.Join(params, " "))
	out.WriteString(") {")
	for _, stmt := range fs.Body {
		out.WriteString(stmt.String())
	}
	out.WriteString("})")

	return out.String()
}
func (fs *FunctionStatement) Pos() lexer.Position { return fs.Token.Pos }

// ReturnStatement unwinds the enclosing function invocation, optionally
// carrying a value.
type ReturnStatement struct {
	Token lexer.Token // The RETURN token, kept for error reporting
	Value Expression  // nil when no value was written
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) String() string {
	if rs.Value != nil {
		return "(return " + rs.Value.String() + ");"
	}
	return "(return);"
}
func (rs *ReturnStatement) Pos() lexer.Position { return rs.Token.Pos }

// ClassStatement declares a class: a name and a list of method
// declarations.
type ClassStatement struct {
	Token   lexer.Token // The CLASS token
	Name    lexer.Token // The IDENT token naming the class
	Methods []*FunctionStatement
}

func (cs *ClassStatement) statementNode()       {}
func (cs *ClassStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *ClassStatement) String() string {
	var out bytes.Buffer

	out.WriteString("(class ")
	out.WriteString(cs.Name.Literal)
	out.WriteString(" {")
	for _, method := range cs.Methods {
		out.WriteString(method.String())
	}
	out.WriteString("})")

	return out.String()
}
func (cs *ClassStatement) Pos() lexer.Position { return cs.Token.Pos }
