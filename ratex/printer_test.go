package ratex

import "testing"

func TestFormatExpr(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"-123 * (45.67);", "(* (- 123) (group 45.67))"},
		{`"a" + "b";`, `(+ "a" "b")`},
		{"!x or y;", "(or (! x) y)"},
		{"a.b.c = d;", "(= (. (. a b) c) d)"},
		{"this.x;", "(. this x)"},
		{"fun (a, b) { return a; };", "(fun (a b) (return a))"},
	}

	for _, tt := range tests {
		program, err := Parse(tt.source)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.source, err)
		}
		expr := program.Statements[0].(*ExprStmt).Expr
		if got := FormatExpr(expr); got != tt.want {
			t.Fatalf("%q: expected %s, got %s", tt.source, tt.want, got)
		}
	}
}
