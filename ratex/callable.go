package ratex

import "fmt"

// Callable is implemented by every invocable value: user functions,
// builtins and classes. Arity is checked by the interpreter before Call.
type Callable interface {
	Call(in *Interpreter, args []Value) (Value, error)
	Arity() int
	Name() string
	String() string
}

// Function is a user-defined function or lambda paired with the scope that
// was active where it was defined.
type Function struct {
	decl    *FunctionDecl
	closure *Env
}

func newFunction(decl *FunctionDecl, closure *Env) *Function {
	return &Function{decl: decl, closure: closure}
}

func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	env := newEnv(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Name, args[i])
	}

	result, err := in.executeBlock(f.decl.Body, env)
	if err != nil {
		return NewNil(), err
	}
	if result.kind == flowReturn {
		return result.value, nil
	}
	return NewNil(), nil
}

func (f *Function) Arity() int { return len(f.decl.Params) }

func (f *Function) Name() string {
	if f.decl.Name == "" {
		return "lambda"
	}
	return f.decl.Name
}

func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.Name())
}

// Bind returns a copy of f whose scope defines this as inst.
func (f *Function) Bind(inst *Instance) *Function {
	env := newEnv(f.closure)
	env.Define("this", NewInstance(inst))
	return newFunction(f.decl, env)
}

// BuiltinFunc implements a host-provided function.
type BuiltinFunc func(in *Interpreter, args []Value) (Value, error)

type Builtin struct {
	name  string
	arity int
	fn    BuiltinFunc
}

// NewBuiltin wraps fn as a callable value of the given arity.
func NewBuiltin(name string, arity int, fn BuiltinFunc) Value {
	return NewCallable(&Builtin{name: name, arity: arity, fn: fn})
}

func (b *Builtin) Call(in *Interpreter, args []Value) (Value, error) {
	return b.fn(in, args)
}

func (b *Builtin) Arity() int     { return b.arity }
func (b *Builtin) Name() string   { return b.name }
func (b *Builtin) String() string { return fmt.Sprintf("<native fn %s>", b.name) }
