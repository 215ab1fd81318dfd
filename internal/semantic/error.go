package semantic

import (
	"fmt"

	"github.com/cwbudde/go-lox/internal/lexer"
)

// ResolveError represents a static-use error found during resolution.
type ResolveError struct {
	Token   lexer.Token
	Message string
}

// Error formats the error in the canonical diagnostic form:
//
//	[line L] Error at 'lexeme': message
//
// with " at end" substituted when the offending token is EOF.
func (e *ResolveError) Error() string {
	if e.Token.Type == lexer.EOF {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Token.Pos.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Pos.Line, e.Token.Lexeme(), e.Message)
}
