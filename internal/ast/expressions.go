package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/go-lox/internal/lexer"
)

// GlobalDepth marks a variable reference that the resolver did not find in
// any local scope. Such references resolve against the global environment
// at evaluation time.
const GlobalDepth = -1

// NumberLiteral represents a number literal value.
type NumberLiteral struct {
	Token lexer.Token // The NUMBER token
	Value float64     // The parsed numeric value
}

func (nl *NumberLiteral) expressionNode()      {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NumberLiteral) String() string       { return nl.Token.Literal }
func (nl *NumberLiteral) Pos() lexer.Position  { return nl.Token.Pos }

// StringLiteral represents a string literal value.
type StringLiteral struct {
	Token lexer.Token // The STRING token
	Value string      // The content without quotes
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) String() string       { return `"` + sl.Value + `"` }
func (sl *StringLiteral) Pos() lexer.Position  { return sl.Token.Pos }

// BooleanLiteral represents the literals true and false.
type BooleanLiteral struct {
	Token lexer.Token // The TRUE or FALSE token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) String() string       { return bl.Token.Literal }
func (bl *BooleanLiteral) Pos() lexer.Position  { return bl.Token.Pos }

// NilLiteral represents the literal nil.
type NilLiteral struct {
	Token lexer.Token // The NIL token
}

func (nl *NilLiteral) expressionNode()      {}
func (nl *NilLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NilLiteral) String() string       { return "nil" }
func (nl *NilLiteral) Pos() lexer.Position  { return nl.Token.Pos }

// VariableExpression represents a variable reference.
//
// Depth is the lexical distance recorded by the resolver: the number of
// enclosing scopes to skip to find the binding. GlobalDepth means the
// reference resolves against the global environment.
type VariableExpression struct {
	Token lexer.Token // The IDENT token
	Depth int
}

func (ve *VariableExpression) expressionNode()      {}
func (ve *VariableExpression) TokenLiteral() string { return ve.Token.Literal }
func (ve *VariableExpression) String() string       { return "(variable " + ve.Token.Literal + ")" }
func (ve *VariableExpression) Pos() lexer.Position  { return ve.Token.Pos }

// AssignExpression represents assignment to a named variable.
// Depth follows the same contract as VariableExpression.
type AssignExpression struct {
	Name  lexer.Token // The IDENT token naming the target
	Value Expression
	Depth int
}

func (ae *AssignExpression) expressionNode()      {}
func (ae *AssignExpression) TokenLiteral() string { return ae.Name.Literal }
func (ae *AssignExpression) String() string {
	return "(assign " + ae.Name.Literal + " " + ae.Value.String() + ")"
}
func (ae *AssignExpression) Pos() lexer.Position { return ae.Name.Pos }

// UnaryExpression represents a prefix operator applied to an operand.
type UnaryExpression struct {
	Operator lexer.Token // The ! or - token
	Right    Expression
}

func (ue *UnaryExpression) expressionNode()      {}
func (ue *UnaryExpression) TokenLiteral() string { return ue.Operator.Literal }
func (ue *UnaryExpression) String() string {
	return "(" + ue.Operator.Literal + " " + ue.Right.String() + ")"
}
func (ue *UnaryExpression) Pos() lexer.Position { return ue.Operator.Pos }

// BinaryExpression represents an infix arithmetic, comparison or equality
// operator applied to two operands.
type BinaryExpression struct {
	Left     Expression
	Operator lexer.Token
	Right    Expression
}

func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) TokenLiteral() string { return be.Operator.Literal }
func (be *BinaryExpression) String() string {
	return "(" + be.Operator.Literal + " " + be.Left.String() + " " + be.Right.String() + ")"
}
func (be *BinaryExpression) Pos() lexer.Position { return be.Operator.Pos }

// LogicalExpression represents the short-circuiting and / or operators.
type LogicalExpression struct {
	Left     Expression
	Operator lexer.Token // The AND or OR token
	Right    Expression
}

func (le *LogicalExpression) expressionNode()      {}
func (le *LogicalExpression) TokenLiteral() string { return le.Operator.Literal }
func (le *LogicalExpression) String() string {
	return "(" + le.Operator.Literal + " " + le.Left.String() + " " + le.Right.String() + ")"
}
func (le *LogicalExpression) Pos() lexer.Position { return le.Operator.Pos }

// GroupingExpression represents a parenthesized expression.
type GroupingExpression struct {
	Token      lexer.Token // The ( token
	Expression Expression
}

func (ge *GroupingExpression) expressionNode()      {}
func (ge *GroupingExpression) TokenLiteral() string { return ge.Token.Literal }
func (ge *GroupingExpression) String() string       { return "(group " + ge.Expression.String() + ")" }
func (ge *GroupingExpression) Pos() lexer.Position  { return ge.Token.Pos }

// CallExpression represents a call to a function or class.
// Paren is the closing parenthesis, kept for anchoring runtime errors.
type CallExpression struct {
	Callee    Expression
	Paren     lexer.Token
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Paren.Literal }
func (ce *CallExpression) String() string {
	var out bytes.Buffer

	args := make([]string, 0, len(ce.Arguments))
	for _, arg := range ce.Arguments {
		args = append(args, arg.String())
	}

	out.WriteString("(call ")
	out.WriteString(ce.Callee.String())
	out.WriteString(" [")
	out.WriteString(strings.Join(args, " "))
	out.WriteString("])")

	return out.String()
}
func (ce *CallExpression) Pos() lexer.Position { return ce.Paren.Pos }

// GetExpression represents a property read on an object.
type GetExpression struct {
	Object Expression
	Name   lexer.Token // The property name token
}

func (ge *GetExpression) expressionNode()      {}
func (ge *GetExpression) TokenLiteral() string { return ge.Name.Literal }
func (ge *GetExpression) String() string {
	return "(property " + ge.Object.String() + " " + ge.Name.Literal + ")"
}
func (ge *GetExpression) Pos() lexer.Position { return ge.Name.Pos }

// SetExpression represents a property write on an object.
type SetExpression struct {
	Object Expression
	Name   lexer.Token // The property name token
	Value  Expression
}

func (se *SetExpression) expressionNode()      {}
func (se *SetExpression) TokenLiteral() string { return se.Name.Literal }
func (se *SetExpression) String() string {
	return "(property set " + se.Object.String() + " " + se.Name.Literal + " " + se.Value.String() + ")"
}
func (se *SetExpression) Pos() lexer.Position { return se.Name.Pos }

// ThisExpression represents the keyword this inside a method body.
// Depth follows the same contract as VariableExpression.
type ThisExpression struct {
	Token lexer.Token // The THIS token
	Depth int
}

func (te *ThisExpression) expressionNode()      {}
func (te *ThisExpression) TokenLiteral() string { return te.Token.Literal }
func (te *ThisExpression) String() string       { return "this" }
func (te *ThisExpression) Pos() lexer.Position  { return te.Token.Pos }
