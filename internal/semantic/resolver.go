// Package semantic implements the static analysis pass that runs between
// parsing and evaluation. The resolver walks the AST once, annotating
// every variable and this reference with its lexical depth and reporting
// misuse of function and class constructs.
package semantic

import (
	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/lexer"
)

// FunctionType tracks what kind of function body encloses the statement
// being resolved.
type FunctionType int

const (
	FunctionNone FunctionType = iota
	FunctionFunction
	FunctionMethod
	FunctionInitializer
)

// ClassType tracks whether a class body encloses the node being resolved.
type ClassType int

const (
	ClassNone ClassType = iota
	ClassClass
)

// Resolver performs the lexical-scope resolution pass.
//
// Scopes is a stack of block scopes mapping each locally declared name to
// whether its initializer has finished resolving. The global scope is not
// on the stack: names that escape the stack stay at GlobalDepth and are
// late-bound at evaluation time.
type Resolver struct {
	scopes          []map[string]bool
	currentFunction FunctionType
	currentClass    ClassType
	errors          []*ResolveError
}

// NewResolver creates a resolver for a single run.
func NewResolver() *Resolver {
	return &Resolver{
		currentFunction: FunctionNone,
		currentClass:    ClassNone,
	}
}

// Errors returns all static-use errors found during resolution.
func (r *Resolver) Errors() []*ResolveError {
	return r.errors
}

// addError records a resolution error anchored at the given token.
// Resolution continues so that a single pass surfaces every error.
func (r *Resolver) addError(tok lexer.Token, message string) {
	r.errors = append(r.errors, &ResolveError{Token: tok, Message: message})
}

// Resolve walks the whole program, mutating depth annotations in place.
func (r *Resolver) Resolve(program *ast.Program) {
	for _, stmt := range program.Statements {
		r.resolveStatement(stmt)
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare adds a name to the innermost scope, marked as not yet defined.
// Redeclaring a name in the same local scope is an error; globals (no
// scope on the stack) have no such check.
func (r *Resolver) declare(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, exists := scope[name.Literal]; exists {
		r.addError(name, "A variable with this name already exists in this scope.")
	}
	scope[name.Literal] = false
}

// define marks a declared name as available for reading.
func (r *Resolver) define(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Literal] = true
}

// resolveLocal searches the scope stack from innermost to outermost for
// the name and returns its lexical distance from the current scope.
// Returns ast.GlobalDepth when the name is not locally bound.
func (r *Resolver) resolveLocal(name string) int {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			return len(r.scopes) - 1 - i
		}
	}
	return ast.GlobalDepth
}

func (r *Resolver) resolveStatement(stmt ast.Statement) {
	switch stmt := stmt.(type) {
	case *ast.BlockStatement:
		r.beginScope()
		for _, inner := range stmt.Statements {
			r.resolveStatement(inner)
		}
		r.endScope()

	case *ast.VarStatement:
		r.declare(stmt.Name)
		if stmt.Initializer != nil {
			r.resolveExpression(stmt.Initializer)
		}
		r.define(stmt.Name)

	case *ast.FunctionStatement:
		r.declare(stmt.Name)
		r.define(stmt.Name)
		r.resolveFunction(stmt, FunctionFunction)

	case *ast.ClassStatement:
		r.declare(stmt.Name)

		enclosingClass := r.currentClass
		r.currentClass = ClassClass

		r.beginScope()
		r.scopes[len(r.scopes)-1]["this"] = true
		for _, method := range stmt.Methods {
			functionType := FunctionMethod
			if method.Name.Literal == "init" {
				functionType = FunctionInitializer
			}
			r.resolveFunction(method, functionType)
		}
		r.endScope()

		r.currentClass = enclosingClass

	case *ast.ExpressionStatement:
		r.resolveExpression(stmt.Expression)

	case *ast.PrintStatement:
		r.resolveExpression(stmt.Expression)

	case *ast.IfStatement:
		r.resolveExpression(stmt.Condition)
		r.resolveStatement(stmt.ThenBranch)
		if stmt.ElseBranch != nil {
			r.resolveStatement(stmt.ElseBranch)
		}

	case *ast.WhileStatement:
		r.resolveExpression(stmt.Condition)
		r.resolveStatement(stmt.Body)

	case *ast.ReturnStatement:
		if r.currentFunction == FunctionNone {
			r.addError(stmt.Token, "Can't return from top-level code.")
		}
		if stmt.Value != nil {
			if r.currentFunction == FunctionInitializer {
				r.addError(stmt.Token, "Can't return a value from an initializer.")
			}
			r.resolveExpression(stmt.Value)
		}
	}
}

// resolveFunction resolves a function or method body in a fresh scope
// holding the parameters. The declaration's name has already been handled
// by the caller.
func (r *Resolver) resolveFunction(fn *ast.FunctionStatement, functionType FunctionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = functionType

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	for _, stmt := range fn.Body {
		r.resolveStatement(stmt)
	}
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveExpression(expr ast.Expression) {
	switch expr := expr.(type) {
	case *ast.VariableExpression:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][expr.Token.Literal]; declared && !defined {
				r.addError(expr.Token, "Can't read local variable in it's own initializer.")
			}
		}
		expr.Depth = r.resolveLocal(expr.Token.Literal)

	case *ast.AssignExpression:
		r.resolveExpression(expr.Value)
		expr.Depth = r.resolveLocal(expr.Name.Literal)

	case *ast.ThisExpression:
		if r.currentClass == ClassNone {
			r.addError(expr.Token, "Can't use 'this' outside of a class.")
			return
		}
		expr.Depth = r.resolveLocal(expr.Token.Literal)

	case *ast.UnaryExpression:
		r.resolveExpression(expr.Right)

	case *ast.BinaryExpression:
		r.resolveExpression(expr.Left)
		r.resolveExpression(expr.Right)

	case *ast.LogicalExpression:
		r.resolveExpression(expr.Left)
		r.resolveExpression(expr.Right)

	case *ast.GroupingExpression:
		r.resolveExpression(expr.Expression)

	case *ast.CallExpression:
		r.resolveExpression(expr.Callee)
		for _, arg := range expr.Arguments {
			r.resolveExpression(arg)
		}

	case *ast.GetExpression:
		r.resolveExpression(expr.Object)

	case *ast.SetExpression:
		r.resolveExpression(expr.Value)
		r.resolveExpression(expr.Object)
	}
}
