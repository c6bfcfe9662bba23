package ratex

import "sort"

// Env is one lexical scope: a table of bindings plus a link to the
// enclosing scope. Children point at parents only, so the chain is a tree.
type Env struct {
	parent *Env
	values map[string]Value
}

func newEnv(parent *Env) *Env {
	return &Env{parent: parent, values: make(map[string]Value)}
}

// Define binds name in this scope, replacing any existing binding.
func (e *Env) Define(name string, val Value) {
	e.values[name] = val
}

// Get returns the nearest binding of name.
func (e *Env) Get(name string) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if val, ok := env.values[name]; ok {
			return val, nil
		}
	}
	return NewNil(), newError(UndefinedIdentifier, Position{}, "tried to access undefined identifier '%s'", name)
}

// Assign updates the nearest existing binding of name. It never creates one.
func (e *Env) Assign(name string, val Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = val
			return nil
		}
	}
	return newError(UndefinedIdentifier, Position{}, "tried to assign undefined identifier '%s'", name)
}

// GetAt reads name from the scope exactly distance hops up the chain.
func (e *Env) GetAt(distance int, name string) (Value, error) {
	env := e.ancestor(distance)
	if env != nil {
		if val, ok := env.values[name]; ok {
			return val, nil
		}
	}
	return NewNil(), newError(UndefinedIdentifier, Position{}, "tried to access undefined identifier '%s'", name)
}

// AssignAt writes name into the scope exactly distance hops up the chain.
func (e *Env) AssignAt(distance int, name string, val Value) error {
	env := e.ancestor(distance)
	if env == nil {
		return newError(UndefinedIdentifier, Position{}, "tried to assign undefined identifier '%s'", name)
	}
	env.values[name] = val
	return nil
}

func (e *Env) ancestor(distance int) *Env {
	env := e
	for i := 0; i < distance && env != nil; i++ {
		env = env.parent
	}
	return env
}

// Names lists the bindings of this scope only, sorted.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
