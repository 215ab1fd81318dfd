package interp

import (
	"fmt"
	"io"
	"time"

	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/lexer"
)

// unixEpoch is the reference point for the clock native.
var unixEpoch = time.Unix(0, 0)

// Interpreter walks the resolved AST and evaluates it directly. One
// interpreter carries the global environment across runs, which is what
// lets REPL lines see bindings from earlier lines.
type Interpreter struct {
	globals *Environment
	output  io.Writer
}

// New creates a new Interpreter writing print output to the given writer.
// The global environment is pre-populated with the native bindings.
func New(output io.Writer) *Interpreter {
	i := &Interpreter{
		globals: NewEnvironment(),
		output:  output,
	}
	i.globals.Define("clock", &NativeFunction{
		Name:  "clock",
		arity: 0,
		fn:    nativeClock,
	})
	return i
}

// Globals returns the global environment. Exposed for tests and tooling.
func (i *Interpreter) Globals() *Environment {
	return i.globals
}

// nativeClock returns the current wall time as seconds since the Unix
// epoch, with millisecond resolution.
func nativeClock(_ *Interpreter, _ []Value) Value {
	now := time.Now()
	if now.Before(unixEpoch) {
		return newNativeError("Unable to determine offset from UNIX epoch: Time is going backwards!")
	}
	return &NumberValue{Value: float64(now.UnixMilli()) / 1000.0}
}

// Interpret evaluates the program's statements in order under the global
// environment. The run aborts on the first runtime error, which is
// returned; a clean run returns nil.
func (i *Interpreter) Interpret(program *ast.Program) *RuntimeError {
	for _, stmt := range program.Statements {
		result := i.execStatement(stmt, i.globals)
		if err, ok := result.(*RuntimeError); ok {
			return err
		}
		if result != nil {
			// A return signal escaping to the top level means the resolver
			// pass was skipped or broken; well-formed input cannot get here.
			panic(fmt.Sprintf("interp: unhandled signal %s at top level", result.Type()))
		}
	}
	return nil
}

// execStatement executes a single statement under the given environment.
// It returns nil on normal completion, or a signal value (*RuntimeError
// or *ReturnValue) that the caller must propagate.
func (i *Interpreter) execStatement(stmt ast.Statement, env *Environment) Value {
	switch stmt := stmt.(type) {
	case *ast.ExpressionStatement:
		if result := i.evalExpression(stmt.Expression, env); isError(result) {
			return result
		}
		return nil

	case *ast.PrintStatement:
		value := i.evalExpression(stmt.Expression, env)
		if isError(value) {
			return value
		}
		fmt.Fprintf(i.output, "%s\n", value.String())
		return nil

	case *ast.VarStatement:
		var value Value = &NilValue{}
		if stmt.Initializer != nil {
			value = i.evalExpression(stmt.Initializer, env)
			if isError(value) {
				return value
			}
		}
		env.Define(stmt.Name.Literal, value)
		return nil

	case *ast.BlockStatement:
		scoped := NewEnclosedEnvironment(env)
		for _, inner := range stmt.Statements {
			if result := i.execStatement(inner, scoped); result != nil {
				return result
			}
		}
		return nil

	case *ast.IfStatement:
		condition := i.evalExpression(stmt.Condition, env)
		if isError(condition) {
			return condition
		}
		if isTruthy(condition) {
			return i.execStatement(stmt.ThenBranch, env)
		}
		if stmt.ElseBranch != nil {
			return i.execStatement(stmt.ElseBranch, env)
		}
		return nil

	case *ast.WhileStatement:
		for {
			condition := i.evalExpression(stmt.Condition, env)
			if isError(condition) {
				return condition
			}
			if !isTruthy(condition) {
				return nil
			}
			if result := i.execStatement(stmt.Body, env); result != nil {
				return result
			}
		}

	case *ast.FunctionStatement:
		fn := &Function{Declaration: stmt, Closure: env}
		env.Define(stmt.Name.Literal, fn)
		return nil

	case *ast.ReturnStatement:
		var value Value = &NilValue{}
		if stmt.Value != nil {
			value = i.evalExpression(stmt.Value, env)
			if isError(value) {
				return value
			}
		}
		return &ReturnValue{Value: value}

	case *ast.ClassStatement:
		// Define the name first so methods may refer to the class in
		// their bodies, then overwrite the binding with the class value.
		env.Define(stmt.Name.Literal, &NilValue{})
		methods := make(map[string]*Function, len(stmt.Methods))
		for _, method := range stmt.Methods {
			methods[method.Name.Literal] = &Function{
				Declaration:   method,
				Closure:       env,
				IsInitializer: method.Name.Literal == "init",
			}
		}
		env.Define(stmt.Name.Literal, NewClass(stmt.Name.Literal, methods))
		return nil

	default:
		panic(fmt.Sprintf("interp: unknown statement type %T", stmt))
	}
}

// evalExpression evaluates a single expression under the given
// environment. The result is never nil; runtime errors come back as
// *RuntimeError signal values.
func (i *Interpreter) evalExpression(expr ast.Expression, env *Environment) Value {
	switch expr := expr.(type) {
	case *ast.NumberLiteral:
		return &NumberValue{Value: expr.Value}

	case *ast.StringLiteral:
		return &StringValue{Value: expr.Value}

	case *ast.BooleanLiteral:
		return nativeBool(expr.Value)

	case *ast.NilLiteral:
		return &NilValue{}

	case *ast.GroupingExpression:
		return i.evalExpression(expr.Expression, env)

	case *ast.VariableExpression:
		return i.lookupVariable(expr.Token, expr.Depth, env)

	case *ast.ThisExpression:
		return i.lookupVariable(expr.Token, expr.Depth, env)

	case *ast.AssignExpression:
		return i.evalAssign(expr, env)

	case *ast.UnaryExpression:
		return i.evalUnary(expr, env)

	case *ast.BinaryExpression:
		return i.evalBinary(expr, env)

	case *ast.LogicalExpression:
		return i.evalLogical(expr, env)

	case *ast.CallExpression:
		return i.evalCall(expr, env)

	case *ast.GetExpression:
		return i.evalGet(expr, env)

	case *ast.SetExpression:
		return i.evalSet(expr, env)

	default:
		panic(fmt.Sprintf("interp: unknown expression type %T", expr))
	}
}

// lookupVariable reads a variable or this reference using the depth the
// resolver annotated. References without a local binding read the global
// environment directly.
func (i *Interpreter) lookupVariable(name lexer.Token, depth int, env *Environment) Value {
	var value Value
	var ok bool
	if depth == ast.GlobalDepth {
		value, ok = i.globals.Get(name.Literal)
	} else {
		value, ok = env.GetAt(depth, name.Literal)
	}
	if !ok {
		return newError(name, "Undefined variable '%s'.", name.Literal)
	}
	return value
}

func (i *Interpreter) evalAssign(expr *ast.AssignExpression, env *Environment) Value {
	value := i.evalExpression(expr.Value, env)
	if isError(value) {
		return value
	}

	var ok bool
	if expr.Depth == ast.GlobalDepth {
		ok = i.globals.Assign(expr.Name.Literal, value)
	} else {
		ok = env.AssignAt(expr.Depth, expr.Name.Literal, value)
	}
	if !ok {
		return newError(expr.Name, "Undefined variable '%s'.", expr.Name.Literal)
	}
	return value
}

func (i *Interpreter) evalUnary(expr *ast.UnaryExpression, env *Environment) Value {
	right := i.evalExpression(expr.Right, env)
	if isError(right) {
		return right
	}

	switch expr.Operator.Type {
	case lexer.MINUS:
		operand, err := numberOperand(expr.Operator, right)
		if err != nil {
			return err
		}
		return &NumberValue{Value: -operand}
	case lexer.BANG:
		return nativeBool(!isTruthy(right))
	default:
		panic(fmt.Sprintf("interp: invalid unary operator %s", expr.Operator.Type))
	}
}

func (i *Interpreter) evalBinary(expr *ast.BinaryExpression, env *Environment) Value {
	left := i.evalExpression(expr.Left, env)
	if isError(left) {
		return left
	}
	right := i.evalExpression(expr.Right, env)
	if isError(right) {
		return right
	}

	op := expr.Operator
	switch op.Type {
	case lexer.EQ:
		return nativeBool(valuesEqual(left, right))
	case lexer.NOT_EQ:
		return nativeBool(!valuesEqual(left, right))
	case lexer.PLUS:
		return evalPlus(op, left, right)
	}

	// The remaining operators are numeric-only.
	l, err := numberOperand(op, left)
	if err != nil {
		return err
	}
	r, err := numberOperand(op, right)
	if err != nil {
		return err
	}

	switch op.Type {
	case lexer.MINUS:
		return &NumberValue{Value: l - r}
	case lexer.ASTERISK:
		return &NumberValue{Value: l * r}
	case lexer.SLASH:
		// Division by zero follows IEEE-754: ±Inf or NaN, not an error.
		return &NumberValue{Value: l / r}
	case lexer.GREATER:
		return nativeBool(l > r)
	case lexer.GREATER_EQ:
		return nativeBool(l >= r)
	case lexer.LESS:
		return nativeBool(l < r)
	case lexer.LESS_EQ:
		return nativeBool(l <= r)
	default:
		panic(fmt.Sprintf("interp: invalid binary operator %s", op.Type))
	}
}

// evalPlus adds two numbers or concatenates two strings; every other
// combination is a runtime error.
func evalPlus(op lexer.Token, left, right Value) Value {
	if l, ok := left.(*NumberValue); ok {
		if r, ok := right.(*NumberValue); ok {
			return &NumberValue{Value: l.Value + r.Value}
		}
	}
	if l, ok := left.(*StringValue); ok {
		if r, ok := right.(*StringValue); ok {
			return &StringValue{Value: l.Value + r.Value}
		}
	}
	return newError(op, "Operands must be either two numbers or two strings.")
}

// numberOperand coerces nothing: the operand must already be a number.
func numberOperand(op lexer.Token, v Value) (float64, *RuntimeError) {
	if n, ok := v.(*NumberValue); ok {
		return n.Value, nil
	}
	return 0, newError(op, "Operand must be a number.")
}

func (i *Interpreter) evalLogical(expr *ast.LogicalExpression, env *Environment) Value {
	left := i.evalExpression(expr.Left, env)
	if isError(left) {
		return left
	}

	if expr.Operator.Type == lexer.OR {
		if isTruthy(left) {
			return left
		}
	} else {
		if !isTruthy(left) {
			return left
		}
	}

	return i.evalExpression(expr.Right, env)
}

func (i *Interpreter) evalCall(expr *ast.CallExpression, env *Environment) Value {
	callee := i.evalExpression(expr.Callee, env)
	if isError(callee) {
		return callee
	}

	arguments := make([]Value, 0, len(expr.Arguments))
	for _, arg := range expr.Arguments {
		value := i.evalExpression(arg, env)
		if isError(value) {
			return value
		}
		arguments = append(arguments, value)
	}

	function, ok := callee.(Callable)
	if !ok {
		return newError(expr.Paren, "Can only call functions and classes.")
	}
	if len(arguments) != function.Arity() {
		return newError(expr.Paren, "Expected %d arguments but got %d.", function.Arity(), len(arguments))
	}

	return function.Call(i, arguments)
}

func (i *Interpreter) evalGet(expr *ast.GetExpression, env *Environment) Value {
	object := i.evalExpression(expr.Object, env)
	if isError(object) {
		return object
	}

	instance, ok := object.(*Instance)
	if !ok {
		return newError(expr.Name, "Only instances have properties.")
	}
	return instance.Get(expr.Name)
}

func (i *Interpreter) evalSet(expr *ast.SetExpression, env *Environment) Value {
	object := i.evalExpression(expr.Object, env)
	if isError(object) {
		return object
	}

	instance, ok := object.(*Instance)
	if !ok {
		return newError(expr.Name, "Only instances have properties.")
	}

	value := i.evalExpression(expr.Value, env)
	if isError(value) {
		return value
	}
	instance.Set(expr.Name, value)
	return value
}
