package parser

import (
	"fmt"

	"github.com/cwbudde/go-lox/internal/lexer"
)

// ParseError represents a single parse error anchored at a token.
type ParseError struct {
	Token   lexer.Token
	Message string
}

// Error formats the error in the canonical diagnostic form:
//
//	[line L] Error at 'lexeme': message
//
// with " at end" substituted when the offending token is EOF.
func (e *ParseError) Error() string {
	if e.Token.Type == lexer.EOF {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Token.Pos.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Pos.Line, e.Token.Lexeme(), e.Message)
}
