package ratex

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func runProgram(t *testing.T, cfg Config, source string) ([]string, error) {
	t.Helper()
	var out bytes.Buffer
	cfg.Stdout = &out
	in := New(cfg)
	err := in.Run(source)
	return outputLines(out.String()), err
}

func outputLines(out string) []string {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func expectOutput(t *testing.T, source string, want ...string) {
	t.Helper()
	got, err := runProgram(t, Config{}, source)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestArithmetic(t *testing.T) {
	expectOutput(t, `
print 1 + 2;
print 10 / 4;
print 7 - 10;
print 2 * 3.5;
print 1 / 0;
print (1 + 2) * 3;
`, "3", "2.5", "-3", "7", "+Inf", "9")
}

func TestComparisons(t *testing.T) {
	expectOutput(t, `
print 1 < 2;
print 2 <= 1;
print 3 == 3;
print 3 != 3;
print false < true;
print true >= true;
print "a" == "a";
print "a" != "b";
`, "true", "false", "true", "false", "true", "true", "true", "true")
}

func TestStringConcatenation(t *testing.T) {
	expectOutput(t, `print "a" + "b";`, "ab")
}

func TestMismatchedOperandsYieldNil(t *testing.T) {
	expectOutput(t, `
print 1 + "a";
print "a" < "b";
print nil == nil;
print true + false;
print -"s";
`, "nil", "nil", "nil", "nil", "nil")
}

func TestStrictOperatorsRejectMismatchedOperands(t *testing.T) {
	_, err := runProgram(t, Config{StrictOperators: true}, `print 1 + "a";`)
	if !errors.Is(err, InvalidOperands) {
		t.Fatalf("expected InvalidOperands, got %v", err)
	}

	got, err := runProgram(t, Config{StrictOperators: true}, `print 1 + 2; print !nil;`)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if diff := cmp.Diff([]string{"3", "nil"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestUnaryOperators(t *testing.T) {
	expectOutput(t, `
print -3;
print -true;
print !true;
print !false;
print !"s";
print !0;
print !nil;
`, "-3", "false", "true", "false", "true", "true", "nil")
}

func TestLogicalShortCircuit(t *testing.T) {
	expectOutput(t, `
print nil or "x";
print "first" or boom();
print false and boom();
print 1 and 2;
`, "x", "first", "false", "2")
}

func TestShadowing(t *testing.T) {
	expectOutput(t, `var a = 1; { var a = 2; print a; } print a;`, "2", "1")
}

func TestClosureCapturesDefinitionScope(t *testing.T) {
	expectOutput(t, `
var a = "global";
{
  fun showA() { print a; }
  showA();
  var a = "block";
  showA();
}
`, "global", "global")
}

func TestClosureCounters(t *testing.T) {
	expectOutput(t, `
fun counter() {
  var i = 0;
  fun inc() { i = i + 1; return i; }
  return inc;
}
var c = counter();
print c();
print c();
var d = counter();
print d();
print c();
`, "1", "2", "1", "3")
}

func TestLambdas(t *testing.T) {
	expectOutput(t, `
var add = fun (a, b) { return a + b; };
print add(1, 2);
fun apply(f, x) { return f(x); }
var k = 10;
print apply(fun (n) { return n + k; }, 5);
`, "3", "15")
}

func TestClasses(t *testing.T) {
	expectOutput(t, `
class Point {
  getX() { return this.x; }
  setX(v) { this.x = v; }
}
var p = Point();
p.x = 5;
print p.getX();
var q = Point();
q.setX(7);
print q.getX();
print p.getX();
`, "5", "7", "5")
}

func TestMethodsStayBoundToInstance(t *testing.T) {
	expectOutput(t, `
class Box { get() { return this.v; } }
var b = Box();
b.v = 1;
var m = b.get;
b.v = 9;
print m();
b.get = "field";
print b.get;
`, "9", "field")
}

func TestLoopControl(t *testing.T) {
	expectOutput(t, `for (var i = 0; i < 3; i = i + 1) { if (i == 1) break; print i; }`, "0")

	expectOutput(t, `
for (var i = 0; i < 2; i = i + 1) {
  for (var j = 0; j < 5; j = j + 1) {
    if (j == 1) break;
    print i * 10 + j;
  }
}
`, "0", "10")

	expectOutput(t, `
var n = 0;
while (n < 3) { n = n + 1; }
print n;
`, "3")
}

func TestReturnUnwindsLoops(t *testing.T) {
	expectOutput(t, `
fun find() {
  var i = 0;
  while (true) {
    if (i == 3) return i;
    i = i + 1;
  }
}
print find();
fun nothing() { return; }
print nothing();
fun implicit() {}
print implicit();
`, "3", "nil", "nil")
}

func TestBreakDoesNotEscapeFunctionOrProgram(t *testing.T) {
	expectOutput(t, `
fun f() { break; print "unreachable"; }
print f();
print 1;
break;
print 2;
`, "nil", "1", "2")
}

func TestRecursion(t *testing.T) {
	expectOutput(t, `
fun fib(n) { if (n < 2) return n; return fib(n - 1) + fib(n - 2); }
print fib(15);
`, "610")
}

func TestAssignmentIsAnExpression(t *testing.T) {
	expectOutput(t, `var a; var b = a = 3; print a; print b;`, "3", "3")
}

func TestValueFormatting(t *testing.T) {
	expectOutput(t, `
fun f() {}
class Point {}
print f;
print clock;
print Point;
print Point();
print fun () {};
print nil;
`, "<fn f>", "<native fn clock>", "Point", "Point instance", "<fn lambda>", "nil")
}

func TestClockUsesConfiguredTime(t *testing.T) {
	got, err := runProgram(t, Config{Clock: func() time.Time { return time.Unix(42, 0) }}, "print clock();")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if diff := cmp.Diff([]string{"42"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		kind   ErrorKind
	}{
		{"undefined variable", "print nope;", UndefinedIdentifier},
		{"undefined assignment", "nope = 1;", UndefinedIdentifier},
		{"call number", "var x = 1; x();", InvalidFunctionCall},
		{"call instance", "class A {} var a = A(); a();", InvalidFunctionCall},
		{"get on string", `var s = "str"; print s.len;`, InvalidFunctionCall},
		{"set on number", "var n = 1; n.x = 2;", NonInstanceSet},
		{"unknown field", "class A {} print A().missing;", AccessUnknownField},
		{"class with arguments", "class A {} A(1);", IncompatibleArity},
		{"builtin with arguments", "clock(1);", IncompatibleArity},
		{"this outside class", "print this;", UndefinedIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runProgram(t, Config{}, tt.source)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
		})
	}
}

func TestArityMismatchSkipsBody(t *testing.T) {
	for _, call := range []string{"two(1);", "two(1, 2, 3);"} {
		var out bytes.Buffer
		in := New(Config{Stdout: &out})
		err := in.Run(`
var hits = 0;
fun two(a, b) { hits = hits + 1; print "ran"; }
` + call)
		if !errors.Is(err, IncompatibleArity) {
			t.Fatalf("%s: expected IncompatibleArity, got %v", call, err)
		}
		hits, ok := in.Global("hits")
		if !ok || hits.Number() != 0 {
			t.Fatalf("%s: body ran, hits = %v", call, hits)
		}
		if out.Len() != 0 {
			t.Fatalf("%s: unexpected output %q", call, out.String())
		}
	}
}

func TestRuntimeErrorCarriesFrames(t *testing.T) {
	_, err := runProgram(t, Config{}, `
fun inner() { return nope; }
fun outer() { return inner(); }
outer();
`)
	var rerr *Error
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if rerr.Kind != UndefinedIdentifier {
		t.Fatalf("expected UndefinedIdentifier, got %v", rerr.Kind)
	}
	if rerr.Pos != (Position{Line: 2, Column: 22}) {
		t.Fatalf("unexpected position %v", rerr.Pos)
	}
	names := make([]string, len(rerr.Frames))
	for i, frame := range rerr.Frames {
		names[i] = frame.Function
	}
	if diff := cmp.Diff([]string{"inner", "outer"}, names); diff != "" {
		t.Fatalf("frames mismatch (-want +got):\n%s", diff)
	}
	msg := err.Error()
	for _, want := range []string{"runtime error at 2:22", "at inner (3:22)", "at outer (4:1)", " 2 | fun inner() { return nope; }"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in:\n%s", want, msg)
		}
	}
}

func TestRecursionLimit(t *testing.T) {
	var out bytes.Buffer
	in := New(Config{Stdout: &out, RecursionLimit: 50})
	err := in.Run("fun r(n) { return r(n + 1); } r(0);")
	if !errors.Is(err, RecursionLimitExceeded) {
		t.Fatalf("expected RecursionLimitExceeded, got %v", err)
	}
	if !strings.Contains(err.Error(), "frames omitted") {
		t.Fatalf("expected elided frames in:\n%s", err.Error())
	}
	if in.env != in.globals {
		t.Fatalf("expected global scope to be restored")
	}
	if len(in.callStack) != 0 {
		t.Fatalf("expected empty call stack, got %d frames", len(in.callStack))
	}

	if err := in.Run("print 1;"); err != nil {
		t.Fatalf("interpreter unusable after recursion error: %v", err)
	}
	if out.String() != "1\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestDefaultRecursionLimitAllowsDeepPrograms(t *testing.T) {
	out, err := runProgram(t, Config{}, `
fun depth(n) {
  if (n == 0) return 0;
  return 1 + depth(n - 1);
}
print depth(1000);
print depth(5000);`)
	if err != nil {
		t.Fatalf("deep recursion failed under default config: %v", err)
	}
	if diff := cmp.Diff([]string{"1000", "5000"}, out); diff != "" {
		t.Fatalf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestDefaultRecursionLimitStopsRunawayRecursion(t *testing.T) {
	_, err := runProgram(t, Config{}, "fun r(n) { return r(n + 1); } r(0);")
	if !errors.Is(err, RecursionLimitExceeded) {
		t.Fatalf("expected RecursionLimitExceeded, got %v", err)
	}
	if !strings.Contains(err.Error(), "limit 10000") {
		t.Fatalf("expected default limit in:\n%s", err.Error())
	}
}

func TestBlockRestoresScopeOnError(t *testing.T) {
	in := New(Config{Stdout: &bytes.Buffer{}})
	err := in.Run("{ var inner = 1; { nope; } }")
	if !errors.Is(err, UndefinedIdentifier) {
		t.Fatalf("expected UndefinedIdentifier, got %v", err)
	}
	if in.env != in.globals {
		t.Fatalf("expected global scope to be restored")
	}
	if _, ok := in.Global("inner"); ok {
		t.Fatalf("block variable leaked into globals")
	}
}

func TestRunRefusesInvalidPrograms(t *testing.T) {
	tests := []struct {
		name   string
		source string
		kind   ErrorKind
	}{
		{"syntax error", `print "x"; print ;`, UnexpectedToken},
		{"resolution error", `print "x"; return 1;`, InvalidReturnLocation},
		{"lexical error", `print "x"; print @;`, UnknownToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runProgram(t, Config{}, tt.source)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
			if len(got) != 0 {
				t.Fatalf("expected no output, got %v", got)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	in := New(Config{Stdout: &bytes.Buffer{}})
	if err := in.Run("var x = 4;"); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	program, err := Parse("x * 2 + 1;")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if err := in.Resolve(program.Statements); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	val, err := in.Evaluate(program.Statements[0].(*ExprStmt).Expr)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if val.Kind() != KindNumber || val.Number() != 9 {
		t.Fatalf("expected 9, got %v", val)
	}
}

func TestInterpretersAreIsolated(t *testing.T) {
	first := New(Config{Stdout: &bytes.Buffer{}})
	second := New(Config{Stdout: &bytes.Buffer{}})
	if err := Run(first, "var only = 1;"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if _, ok := second.Global("only"); ok {
		t.Fatalf("global leaked between interpreters")
	}
	if diff := cmp.Diff([]string{"clock", "only"}, first.Globals()); diff != "" {
		t.Fatalf("globals mismatch (-want +got):\n%s", diff)
	}
}

func TestDefineHostGlobal(t *testing.T) {
	var out bytes.Buffer
	in := New(Config{Stdout: &out})
	in.Define("greeting", NewString("hello"))
	in.Define("double", NewBuiltin("double", 1, func(in *Interpreter, args []Value) (Value, error) {
		return NewNumber(args[0].Number() * 2), nil
	}))
	if err := in.Run("print greeting; print double(21);"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if diff := cmp.Diff([]string{"hello", "42"}, outputLines(out.String())); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}
