package ratex

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFormatted(t *testing.T, source string) []string {
	t.Helper()
	program, err := Parse(source)
	require.NoError(t, err)
	out := make([]string, len(program.Statements))
	for i, stmt := range program.Statements {
		out[i] = FormatStmt(stmt)
	}
	return out
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"precedence", "1 + 2 * 3;", "(; (+ 1 (* 2 3)))"},
		{"unary and grouping", "-123 * (45.67);", "(; (* (- 123) (group 45.67)))"},
		{"right associative assignment", "a = b = c;", "(; (= a (= b c)))"},
		{"property assignment", "obj.field = 3;", "(; (= (. obj field) 3))"},
		{"logical precedence", "a or b and c;", "(; (or a (and b c)))"},
		{"chained calls", "f(1, 2)(3);", "(; (call (call f 1 2) 3))"},
		{"method call", "p.getX();", "(; (call (. p getX)))"},
		{"bang binds tighter than equality", "print !true == false;", "(print (== (! true) false))"},
		{"comparison", "print 1 <= 2 != false;", "(print (!= (<= 1 2) false))"},
		{"string literal", `print "hi";`, `(print "hi")`},
		{"nil literal", "print nil;", "(print nil)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormatted(t, tt.source)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0])
		})
	}
}

func TestParseDeclarations(t *testing.T) {
	got := parseFormatted(t, `
var x;
var y = "s";
fun add(a, b) { return a + b; }
class P { get() { return this.x; } }
var f = fun (x) { print x; };
fun noop() { return; }
`)
	assert.Equal(t, []string{
		"(var x)",
		`(var y "s")`,
		"(fun add (a b) (return (+ a b)))",
		"(class P (get () (return (. this x))))",
		"(var f (fun (x) (print x)))",
		"(fun noop () (return))",
	}, got)
}

func TestParseControlFlow(t *testing.T) {
	got := parseFormatted(t, `
if (a) print 1; else print 2;
if (b) { print 3; }
while (c) break;
`)
	assert.Equal(t, []string{
		"(if-else a (print 1) (print 2))",
		"(if b (block (print 3)))",
		"(while c (break))",
	}, got)
}

func TestParseForDesugarsToWhile(t *testing.T) {
	got := parseFormatted(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	require.Len(t, got, 1)
	assert.Equal(t, "(block (var i 0) (while (< i 3) (block (print i) (; (= i (+ i 1))))))", got[0])

	got = parseFormatted(t, "for (;;) break;")
	require.Len(t, got, 1)
	assert.Equal(t, "(while true (break))", got[0])
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		kind   ErrorKind
	}{
		{"missing operand", "1 + ;", UnexpectedToken},
		{"missing variable name", "var = 3;", ExpectedToken},
		{"missing semicolon", "print 1", ExpectedToken},
		{"invalid assignment target", "1 = 2;", InvalidAssignment},
		{"grouped assignment target", "(a) = 2;", InvalidAssignment},
		{"unclosed block", "{ print 1;", ExpectedToken},
		{"bad method", "class A { 1 }", ExpectedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.source)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestParseRecoversAtStatementBoundary(t *testing.T) {
	program, err := Parse("var a = ; print 1; var b = 2;")
	require.Error(t, err)
	assert.ErrorIs(t, err, UnexpectedToken)
	require.Len(t, program.Statements, 2)
	assert.Equal(t, "(print 1)", FormatStmt(program.Statements[0]))
	assert.Equal(t, "(var b 2)", FormatStmt(program.Statements[1]))
}

func TestParseSurfacesLexicalErrors(t *testing.T) {
	program, err := Parse("var a = @1;")
	require.Error(t, err)
	assert.ErrorIs(t, err, UnknownToken)
	require.Len(t, program.Statements, 1)
}

func TestParseErrorRendersCodeFrame(t *testing.T) {
	_, err := Parse("print 1 +;")
	require.Error(t, err)

	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, Position{Line: 1, Column: 10}, perr.Pos)
	msg := err.Error()
	assert.Contains(t, msg, "parse error at 1:10")
	assert.Contains(t, msg, "--> line 1, column 10")
	assert.Contains(t, msg, " 1 | print 1 +;")
}

func TestParseAssignsDistinctNodeIDs(t *testing.T) {
	first, err := Parse("a;")
	require.NoError(t, err)
	second, err := Parse("a;")
	require.NoError(t, err)

	a := first.Statements[0].(*ExprStmt).Expr
	b := second.Statements[0].(*ExprStmt).Expr
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestIsIncomplete(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{"fun f() {", true},
		{"print 1 +", true},
		{`print "open`, true},
		{"/* still going", true},
		{"print 1 +;", false},
		{"print 1; )", false},
	}

	for _, tt := range tests {
		_, err := Parse(tt.source)
		require.Error(t, err, tt.source)
		assert.Equal(t, tt.want, IsIncomplete(err), tt.source)
	}
	assert.False(t, IsIncomplete(nil))
}
