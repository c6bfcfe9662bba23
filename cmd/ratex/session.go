package main

import (
	"bytes"
	"sort"
	"strings"

	"github.com/mgomes/ratex/ratex"
)

// session evaluates REPL input against one persistent interpreter and
// captures everything the program prints.
type session struct {
	config ratex.Config
	out    *bytes.Buffer
	interp *ratex.Interpreter
}

type sessionVar struct {
	Name  string
	Value string
}

func newSession(cfg ratex.Config) *session {
	s := &session{config: cfg, out: new(bytes.Buffer)}
	s.reset()
	return s
}

// reset discards every binding made so far.
func (s *session) reset() {
	cfg := s.config
	cfg.Stdout = s.out
	s.interp = ratex.New(cfg)
	s.out.Reset()
}

// prepare parses source. A missing trailing semicolon is tolerated; input
// that simply stops early reports incomplete so the caller can read more.
func (s *session) prepare(source string) (*ratex.Program, bool, error) {
	program, err := ratex.Parse(source)
	if err == nil {
		return program, false, nil
	}
	if !ratex.IsIncomplete(err) {
		return nil, false, err
	}
	if program, retryErr := ratex.Parse(source + ";"); retryErr == nil {
		return program, false, nil
	}
	return nil, true, err
}

// eval runs source and returns what it printed, followed by the value of a
// trailing expression statement.
func (s *session) eval(source string) (string, error) {
	program, incomplete, err := s.prepare(source)
	if incomplete || err != nil {
		return "", err
	}
	if err := s.interp.Resolve(program.Statements); err != nil {
		return "", err
	}

	var (
		last ratex.Value
		show bool
	)
	for _, stmt := range program.Statements {
		show = false
		if exprStmt, ok := stmt.(*ratex.ExprStmt); ok {
			val, err := s.interp.Evaluate(exprStmt.Expr)
			if err != nil {
				return s.flush(), err
			}
			last, show = val, true
			continue
		}
		if err := s.interp.Interpret([]ratex.Statement{stmt}); err != nil {
			return s.flush(), err
		}
	}

	out := s.flush()
	if show {
		if out != "" {
			out += "\n"
		}
		out += last.String()
	}
	return out, nil
}

func (s *session) flush() string {
	out := strings.TrimRight(s.out.String(), "\n")
	s.out.Reset()
	return out
}

func (s *session) vars() []sessionVar {
	names := s.interp.Globals()
	vars := make([]sessionVar, 0, len(names))
	for _, name := range names {
		val, ok := s.interp.Global(name)
		if !ok {
			continue
		}
		vars = append(vars, sessionVar{Name: name, Value: describeValue(val)})
	}
	return vars
}

// describeValue renders a binding for the vars panel; classes list their
// methods.
func describeValue(val ratex.Value) string {
	if val.Kind() != ratex.KindClass {
		return val.String()
	}
	class := val.Class()
	methods := class.MethodNames()
	if len(methods) == 0 {
		return "class " + class.Name()
	}
	return "class " + class.Name() + " (" + strings.Join(methods, ", ") + ")"
}

// complete lists keywords and globals starting with prefix.
func (s *session) complete(prefix string) []string {
	if prefix == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var completions []string
	add := func(word string) {
		if !strings.HasPrefix(word, prefix) {
			return
		}
		if _, ok := seen[word]; ok {
			return
		}
		seen[word] = struct{}{}
		completions = append(completions, word)
	}
	for _, kw := range ratex.Keywords() {
		add(kw)
	}
	for _, name := range s.interp.Globals() {
		add(name)
	}
	sort.Strings(completions)
	return completions
}
