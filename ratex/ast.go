package ratex

import "sync/atomic"

// NodeID is the identity of an expression node. IDs are unique for the
// lifetime of the process, so resolution tables built from separately parsed
// programs never collide.
type NodeID uint64

var lastNodeID atomic.Uint64

func nextNodeID() NodeID {
	return NodeID(lastNodeID.Add(1))
}

type Node interface {
	Pos() Position
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	ID() NodeID
	exprNode()
}

type Program struct {
	Statements []Statement
}

func (p *Program) Pos() Position {
	if len(p.Statements) == 0 {
		return Position{}
	}
	return p.Statements[0].Pos()
}

type exprBase struct {
	id       NodeID
	position Position
}

func newExprBase(pos Position) exprBase {
	return exprBase{id: nextNodeID(), position: pos}
}

func (e *exprBase) ID() NodeID    { return e.id }
func (e *exprBase) Pos() Position { return e.position }
func (e *exprBase) exprNode()     {}

type stmtBase struct {
	position Position
}

func (s *stmtBase) Pos() Position { return s.position }
func (s *stmtBase) stmtNode()     {}

type Param struct {
	Name string
	Pos  Position
}

// FunctionDecl is the parameter list and body shared by named functions,
// methods and lambdas.
type FunctionDecl struct {
	Name   string
	Params []Param
	Body   []Statement
	Pos    Position
}

// Expressions

type BinaryExpr struct {
	exprBase
	Left     Expression
	Operator TokenType
	Right    Expression
}

type LogicalExpr struct {
	exprBase
	Left     Expression
	Operator TokenType
	Right    Expression
}

type UnaryExpr struct {
	exprBase
	Operator TokenType
	Right    Expression
}

type LiteralExpr struct {
	exprBase
	Value Value
}

type GroupingExpr struct {
	exprBase
	Expr Expression
}

type VariableExpr struct {
	exprBase
	Name string
}

type AssignExpr struct {
	exprBase
	Name  string
	Value Expression
}

type CallExpr struct {
	exprBase
	Callee Expression
	Args   []Expression
}

type GetExpr struct {
	exprBase
	Object Expression
	Name   string
}

type SetExpr struct {
	exprBase
	Object Expression
	Name   string
	Value  Expression
}

type ThisExpr struct {
	exprBase
}

type LambdaExpr struct {
	exprBase
	Decl *FunctionDecl
}

// Statements

type BlockStmt struct {
	stmtBase
	Statements []Statement
}

type ClassStmt struct {
	stmtBase
	Name    string
	Methods []*FunctionStmt
}

type ExprStmt struct {
	stmtBase
	Expr Expression
}

type IfStmt struct {
	stmtBase
	Condition Expression
	Then      Statement
	Else      Statement
}

type FunctionStmt struct {
	stmtBase
	Decl *FunctionDecl
}

type WhileStmt struct {
	stmtBase
	Condition Expression
	Body      Statement
}

type BreakStmt struct {
	stmtBase
}

type PrintStmt struct {
	stmtBase
	Expr Expression
}

type ReturnStmt struct {
	stmtBase
	Value Expression
}

type VarStmt struct {
	stmtBase
	Name        string
	Initializer Expression
}
