package ratex

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"time"
)

// Config controls interpreter output and execution bounds.
type Config struct {
	Stdout          io.Writer
	Logger          *slog.Logger
	RecursionLimit  int
	StrictOperators bool
	Clock           func() time.Time
}

// defaultRecursionLimit applies when Config.RecursionLimit is unset.
const defaultRecursionLimit = 10000

// Interpreter evaluates resolved programs. It owns the global scope, the
// current scope and the resolver's distance table; separate interpreters
// share nothing.
type Interpreter struct {
	config    Config
	out       io.Writer
	logger    *slog.Logger
	globals   *Env
	env       *Env
	locals    map[NodeID]int
	callStack []StackFrame
}

type flowKind int

const (
	flowNormal flowKind = iota
	flowBreak
	flowReturn
)

// flow is the completion of a statement: normal, a break heading for the
// innermost loop, or a return heading for the innermost call.
type flow struct {
	kind  flowKind
	value Value
}

// New constructs an Interpreter with sane defaults and registers built-ins.
func New(cfg Config) *Interpreter {
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.RecursionLimit <= 0 {
		cfg.RecursionLimit = defaultRecursionLimit
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	globals := newEnv(nil)
	in := &Interpreter{
		config:  cfg,
		out:     cfg.Stdout,
		logger:  cfg.Logger,
		globals: globals,
		env:     globals,
		locals:  make(map[NodeID]int),
	}
	registerBuiltins(in)
	return in
}

// Define binds a global.
func (in *Interpreter) Define(name string, val Value) {
	in.globals.Define(name, val)
}

// Globals lists the names bound in the global scope.
func (in *Interpreter) Globals() []string {
	return in.globals.Names()
}

// Global returns the value of a global binding.
func (in *Interpreter) Global(name string) (Value, bool) {
	val, err := in.globals.Get(name)
	return val, err == nil
}

// Resolve runs the static resolver over statements, recording variable
// distances in this interpreter. It must run before Interpret.
func (in *Interpreter) Resolve(statements []Statement) error {
	return Resolve(in, statements)
}

// resolve records that expr refers to a binding depth scopes up.
func (in *Interpreter) resolve(expr Expression, depth int) {
	in.locals[expr.ID()] = depth
}

// Interpret executes top-level statements in order. A stray top-level break
// ends its statement and nothing else; the first error stops execution.
func (in *Interpreter) Interpret(statements []Statement) error {
	for _, stmt := range statements {
		if _, err := in.execute(stmt); err != nil {
			in.logger.Debug("runtime error", "error", err)
			return err
		}
	}
	return nil
}

// Evaluate computes a single expression against the current scope.
func (in *Interpreter) Evaluate(expr Expression) (Value, error) {
	return in.evaluate(expr)
}

// Run parses, resolves and interprets source. Nothing executes when the
// source has syntax or resolution errors.
func (in *Interpreter) Run(source string) error {
	program, err := Parse(source)
	if err != nil {
		return err
	}
	if err := in.Resolve(program.Statements); err != nil {
		attachSource(err, source)
		return err
	}
	if err := in.Interpret(program.Statements); err != nil {
		attachSource(err, source)
		return err
	}
	return nil
}

// executeBlock runs statements in env and restores the caller's scope on
// every exit path.
func (in *Interpreter) executeBlock(statements []Statement, env *Env) (flow, error) {
	previous := in.env
	in.env = env
	defer func() {
		in.env = previous
	}()

	for _, stmt := range statements {
		result, err := in.execute(stmt)
		if err != nil {
			return flow{}, err
		}
		if result.kind != flowNormal {
			return result, nil
		}
	}
	return flow{}, nil
}

func (in *Interpreter) lookupVariable(name string, expr Expression) (Value, error) {
	if distance, ok := in.locals[expr.ID()]; ok {
		val, err := in.env.GetAt(distance, name)
		return val, in.locate(err, expr.Pos())
	}
	val, err := in.globals.Get(name)
	return val, in.locate(err, expr.Pos())
}

func (in *Interpreter) assignVariable(name string, expr Expression, val Value) error {
	if distance, ok := in.locals[expr.ID()]; ok {
		return in.locate(in.env.AssignAt(distance, name, val), expr.Pos())
	}
	return in.locate(in.globals.Assign(name, val), expr.Pos())
}

func (in *Interpreter) pushFrame(function string, pos Position) error {
	if len(in.callStack) >= in.config.RecursionLimit {
		return in.errorAt(RecursionLimitExceeded, pos, "recursion depth exceeded (limit %d)", in.config.RecursionLimit)
	}
	in.callStack = append(in.callStack, StackFrame{Function: function, Pos: pos})
	return nil
}

func (in *Interpreter) popFrame() {
	if len(in.callStack) == 0 {
		return
	}
	in.callStack = in.callStack[:len(in.callStack)-1]
}

func (in *Interpreter) errorAt(kind ErrorKind, pos Position, format string, args ...any) error {
	return in.locate(newError(kind, Position{}, format, args...), pos)
}

// locate stamps position and call stack onto errors that lack them.
func (in *Interpreter) locate(err error, pos Position) error {
	if err == nil {
		return nil
	}
	var rerr *Error
	if !errors.As(err, &rerr) {
		return err
	}
	if rerr.Pos.Line == 0 {
		rerr.Pos = pos
	}
	if rerr.Frames == nil && len(in.callStack) > 0 {
		rerr.Frames = make([]StackFrame, 0, len(in.callStack))
		for i := len(in.callStack) - 1; i >= 0; i-- {
			rerr.Frames = append(rerr.Frames, in.callStack[i])
		}
	}
	return rerr
}

// Run is the package-level form of Interpreter.Run.
func Run(in *Interpreter, source string) error {
	return in.Run(source)
}

// Check parses and resolves source without executing it.
func Check(source string) error {
	program, err := Parse(source)
	if err != nil {
		return err
	}
	in := New(Config{Stdout: io.Discard})
	if err := in.Resolve(program.Statements); err != nil {
		attachSource(err, source)
		return err
	}
	return nil
}
