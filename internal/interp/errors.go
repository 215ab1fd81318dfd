package interp

import (
	"fmt"

	"github.com/cwbudde/go-lox/internal/lexer"
)

// RuntimeError represents a runtime error. It doubles as a signal value:
// the evaluator threads it outward through every enclosing evaluation, so
// the first runtime error aborts the run.
type RuntimeError struct {
	Token    lexer.Token
	Message  string
	hasToken bool
}

// newError creates a runtime error anchored at a token.
func newError(tok lexer.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Token:    tok,
		Message:  fmt.Sprintf(format, args...),
		hasToken: true,
	}
}

// newNativeError creates a runtime error raised by a native function,
// which has no token to anchor to.
func newNativeError(format string, args ...any) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...)}
}

// Type returns "ERROR".
func (e *RuntimeError) Type() string {
	return "ERROR"
}

// String returns the formatted error message.
func (e *RuntimeError) String() string {
	return e.Error()
}

// Error formats the error in the canonical diagnostic form. Token-anchored
// errors use the same shape as compile-time diagnostics; native errors use
// the "Runtime Error:" prefix.
func (e *RuntimeError) Error() string {
	if !e.hasToken {
		return fmt.Sprintf("Runtime Error: %s", e.Message)
	}
	if e.Token.Type == lexer.EOF {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Token.Pos.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Pos.Line, e.Token.Lexeme(), e.Message)
}

// isError checks if a value is a runtime error signal.
func isError(val Value) bool {
	if val != nil {
		return val.Type() == "ERROR"
	}
	return false
}
