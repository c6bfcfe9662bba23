package ratex

import (
	"strconv"
	"strings"
)

// FormatExpr renders expr as a parenthesized prefix expression, e.g.
// (* (- 123) (group 45.67)).
func FormatExpr(expr Expression) string {
	var b strings.Builder
	writeExpr(&b, expr)
	return b.String()
}

// FormatStmt renders stmt in the same prefix form as FormatExpr.
func FormatStmt(stmt Statement) string {
	var b strings.Builder
	writeStmt(&b, stmt)
	return b.String()
}

func parenthesize(b *strings.Builder, name string, parts ...func()) {
	b.WriteByte('(')
	b.WriteString(name)
	for _, part := range parts {
		b.WriteByte(' ')
		part()
	}
	b.WriteByte(')')
}

func writeExpr(b *strings.Builder, expr Expression) {
	sub := func(e Expression) func() {
		return func() { writeExpr(b, e) }
	}
	word := func(s string) func() {
		return func() { b.WriteString(s) }
	}

	switch e := expr.(type) {
	case *LiteralExpr:
		if e.Value.Kind() == KindString {
			b.WriteString(strconv.Quote(e.Value.Str()))
			return
		}
		b.WriteString(e.Value.String())
	case *GroupingExpr:
		parenthesize(b, "group", sub(e.Expr))
	case *UnaryExpr:
		parenthesize(b, string(e.Operator), sub(e.Right))
	case *BinaryExpr:
		parenthesize(b, string(e.Operator), sub(e.Left), sub(e.Right))
	case *LogicalExpr:
		parenthesize(b, strings.ToLower(string(e.Operator)), sub(e.Left), sub(e.Right))
	case *VariableExpr:
		b.WriteString(e.Name)
	case *AssignExpr:
		parenthesize(b, "=", word(e.Name), sub(e.Value))
	case *ThisExpr:
		b.WriteString("this")
	case *CallExpr:
		parts := []func(){sub(e.Callee)}
		for _, arg := range e.Args {
			parts = append(parts, sub(arg))
		}
		parenthesize(b, "call", parts...)
	case *GetExpr:
		parenthesize(b, ".", sub(e.Object), word(e.Name))
	case *SetExpr:
		parenthesize(b, "=", func() { parenthesize(b, ".", sub(e.Object), word(e.Name)) }, sub(e.Value))
	case *LambdaExpr:
		writeFunction(b, "fun", e.Decl)
	default:
		b.WriteString("?")
	}
}

func writeStmt(b *strings.Builder, stmt Statement) {
	expr := func(e Expression) func() {
		return func() { writeExpr(b, e) }
	}
	sub := func(s Statement) func() {
		return func() { writeStmt(b, s) }
	}

	switch s := stmt.(type) {
	case *ExprStmt:
		parenthesize(b, ";", expr(s.Expr))
	case *PrintStmt:
		parenthesize(b, "print", expr(s.Expr))
	case *VarStmt:
		if s.Initializer == nil {
			parenthesize(b, "var", func() { b.WriteString(s.Name) })
			return
		}
		parenthesize(b, "var", func() { b.WriteString(s.Name) }, expr(s.Initializer))
	case *BlockStmt:
		parts := make([]func(), 0, len(s.Statements))
		for _, inner := range s.Statements {
			parts = append(parts, sub(inner))
		}
		parenthesize(b, "block", parts...)
	case *IfStmt:
		if s.Else == nil {
			parenthesize(b, "if", expr(s.Condition), sub(s.Then))
			return
		}
		parenthesize(b, "if-else", expr(s.Condition), sub(s.Then), sub(s.Else))
	case *WhileStmt:
		parenthesize(b, "while", expr(s.Condition), sub(s.Body))
	case *BreakStmt:
		b.WriteString("(break)")
	case *ReturnStmt:
		if s.Value == nil {
			b.WriteString("(return)")
			return
		}
		parenthesize(b, "return", expr(s.Value))
	case *FunctionStmt:
		writeFunction(b, "fun "+s.Decl.Name, s.Decl)
	case *ClassStmt:
		parts := make([]func(), 0, len(s.Methods))
		for _, method := range s.Methods {
			parts = append(parts, func() { writeFunction(b, method.Decl.Name, method.Decl) })
		}
		parenthesize(b, "class "+s.Name, parts...)
	default:
		b.WriteString("?")
	}
}

func writeFunction(b *strings.Builder, head string, decl *FunctionDecl) {
	names := make([]string, len(decl.Params))
	for i, param := range decl.Params {
		names[i] = param.Name
	}
	parts := []func(){func() { b.WriteString("(" + strings.Join(names, " ") + ")") }}
	for _, stmt := range decl.Body {
		parts = append(parts, func() { writeStmt(b, stmt) })
	}
	parenthesize(b, head, parts...)
}
