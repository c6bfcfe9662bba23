package ratex

import (
	"fmt"
	"sort"
)

type Class struct {
	name    string
	methods map[string]*Function
}

func newClass(name string, methods map[string]*Function) *Class {
	return &Class{name: name, methods: methods}
}

func (c *Class) findMethod(name string) (*Function, bool) {
	method, ok := c.methods[name]
	return method, ok
}

// MethodNames lists the methods declared by the class.
func (c *Class) MethodNames() []string {
	names := make([]string, 0, len(c.methods))
	for name := range c.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call manufactures a new, field-less instance. Classes take no arguments.
func (c *Class) Call(in *Interpreter, args []Value) (Value, error) {
	return NewInstance(&Instance{Class: c, Fields: make(map[string]Value)}), nil
}

func (c *Class) Arity() int     { return 0 }
func (c *Class) Name() string   { return c.name }
func (c *Class) String() string { return c.name }

type Instance struct {
	Class  *Class
	Fields map[string]Value
}

// Get looks up a field, falling back to a method of the class bound to this
// instance.
func (i *Instance) Get(name string) (Value, error) {
	if val, ok := i.Fields[name]; ok {
		return val, nil
	}
	if method, ok := i.Class.findMethod(name); ok {
		return NewCallable(method.Bind(i)), nil
	}
	return NewNil(), newError(AccessUnknownField, Position{}, "undefined property '%s' on %s", name, i)
}

func (i *Instance) Set(name string, val Value) {
	i.Fields[name] = val
}

func (i *Instance) String() string {
	return fmt.Sprintf("%s instance", i.Class.name)
}
