package interp

import (
	"fmt"

	"github.com/cwbudde/go-lox/internal/lexer"
)

// Class represents a class at runtime: a name and a map from method name
// to the method's function template. A class is itself a callable;
// invoking it constructs an instance.
type Class struct {
	Name    string
	Methods map[string]*Function
}

// NewClass creates a class with the given name and method map.
func NewClass(name string, methods map[string]*Function) *Class {
	return &Class{Name: name, Methods: methods}
}

// FindMethod looks up a method template by name. Returns nil if the class
// does not define it.
func (c *Class) FindMethod(name string) *Function {
	return c.Methods[name]
}

// Type returns "CLASS".
func (c *Class) Type() string {
	return "CLASS"
}

// String returns the class name.
func (c *Class) String() string {
	return c.Name
}

// Arity returns the arity of the init method if the class declares one,
// else zero.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs a new instance of the class. If the class declares an
// init method, it is bound to the fresh instance and invoked with the
// given arguments; its return value is discarded — the instance is the
// result. Initializer failures abort the construction.
func (c *Class) Call(i *Interpreter, arguments []Value) Value {
	instance := NewInstance(c)
	if init := c.FindMethod("init"); init != nil {
		if result := init.Bind(instance).Call(i, arguments); isError(result) {
			return result
		}
	}
	return instance
}

// Instance represents a runtime instance of a class: a shared, mutable
// mapping from field name to value plus a reference to the class.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

// NewInstance creates a new instance of the given class with no fields.
func NewInstance(class *Class) *Instance {
	return &Instance{
		Class:  class,
		Fields: make(map[string]Value),
	}
}

// Type returns "INSTANCE".
func (o *Instance) Type() string {
	return "INSTANCE"
}

// String returns "<ClassName> instance".
func (o *Instance) String() string {
	return fmt.Sprintf("%s instance", o.Class.Name)
}

// Get reads a property: a field if one is set, else the named method
// bound to this instance. Each access produces a fresh bound method,
// distinct from the template and from earlier bindings.
func (o *Instance) Get(name lexer.Token) Value {
	if value, ok := o.Fields[name.Literal]; ok {
		return value
	}
	if method := o.Class.FindMethod(name.Literal); method != nil {
		return method.Bind(o)
	}
	return newError(name, "Undefined property %s.", name.Literal)
}

// Set writes a field. Fields spring into existence on first assignment.
func (o *Instance) Set(name lexer.Token, value Value) {
	o.Fields[name.Literal] = value
}
