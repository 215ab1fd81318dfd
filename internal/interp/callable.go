package interp

import (
	"fmt"

	"github.com/cwbudde/go-lox/internal/ast"
)

// Callable is implemented by every value that can be invoked: user
// functions, bound methods, classes and natives. The caller has already
// checked the argument count against Arity.
type Callable interface {
	Value
	Arity() int
	Call(i *Interpreter, arguments []Value) Value
}

// Function represents a user-declared function or method at runtime. It
// pairs the declaration with the environment captured where the
// declaration was evaluated.
type Function struct {
	Declaration *ast.FunctionStatement
	Closure     *Environment

	// IsInitializer is true only for methods named init; such functions
	// always produce the bound instance, whatever their body returns.
	IsInitializer bool
}

// Type returns "FUNCTION".
func (f *Function) Type() string {
	return "FUNCTION"
}

// String returns a debug rendering of the function.
func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.Declaration.Name.Literal)
}

// Arity returns the number of declared parameters.
func (f *Function) Arity() int {
	return len(f.Declaration.Params)
}

// Bind produces a fresh function whose closure is a new environment that
// defines this as the given instance on top of the original closure. The
// bound method is a distinct value from the method template.
func (f *Function) Bind(instance *Instance) *Function {
	environment := NewEnclosedEnvironment(f.Closure)
	environment.Define("this", instance)
	return &Function{
		Declaration:   f.Declaration,
		Closure:       environment,
		IsInitializer: f.IsInitializer,
	}
}

// Call executes the function body in a fresh child of the captured
// closure — never of the caller's environment — with parameters bound to
// the argument values. A normal completion produces nil; a return unwind
// produces the carried value. Initializers produce the bound instance
// regardless of how the body completes.
func (f *Function) Call(i *Interpreter, arguments []Value) Value {
	environment := NewEnclosedEnvironment(f.Closure)
	for idx, param := range f.Declaration.Params {
		environment.Define(param.Literal, arguments[idx])
	}

	for _, stmt := range f.Declaration.Body {
		result := i.execStatement(stmt, environment)
		if isError(result) {
			return result
		}
		if ret, ok := result.(*ReturnValue); ok {
			if f.IsInitializer {
				return f.boundThis()
			}
			return ret.Value
		}
	}

	if f.IsInitializer {
		return f.boundThis()
	}
	return &NilValue{}
}

// boundThis reads the instance an initializer is bound to. Binding placed
// this one scope above the body, so it sits at depth 0 in the closure.
func (f *Function) boundThis() Value {
	this, _ := f.Closure.GetAt(0, "this")
	return this
}

// NativeFunction represents a built-in function implemented in Go and
// pre-defined in the global environment.
type NativeFunction struct {
	Name  string
	arity int
	fn    func(i *Interpreter, arguments []Value) Value
}

// Type returns "NATIVE".
func (n *NativeFunction) Type() string {
	return "NATIVE"
}

// String returns a debug rendering of the native function.
func (n *NativeFunction) String() string {
	return fmt.Sprintf("<native fn %s>", n.Name)
}

// Arity returns the declared argument count.
func (n *NativeFunction) Arity() int {
	return n.arity
}

// Call invokes the Go implementation.
func (n *NativeFunction) Call(i *Interpreter, arguments []Value) Value {
	return n.fn(i, arguments)
}
