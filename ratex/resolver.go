package ratex

type functionKind int

const (
	functionNone functionKind = iota
	functionFunction
	functionMethod
)

// Resolver walks a program once before execution and tells the
// interpreter, for every local variable reference, how many scopes up its
// binding lives. References it cannot place are left for global lookup.
type Resolver struct {
	in              *Interpreter
	scopes          []map[string]bool
	currentFunction functionKind
}

// NewResolver returns a resolver that records distances into in.
func NewResolver(in *Interpreter) *Resolver {
	return &Resolver{in: in}
}

// Resolve runs a fresh resolver over statements. It stops at the first
// resolution error.
func Resolve(in *Interpreter, statements []Statement) error {
	return NewResolver(in).Resolve(statements)
}

func (r *Resolver) Resolve(statements []Statement) error {
	for _, stmt := range statements {
		if err := r.resolveStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name string, pos Position) error {
	if len(r.scopes) == 0 {
		return nil
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, exists := scope[name]; exists {
		return newError(RedeclareLocalVariable, pos, "variable '%s' already declared in this scope", name)
	}
	scope[name] = false
	return nil
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

func (r *Resolver) resolveLocal(expr Expression, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			depth := len(r.scopes) - 1 - i
			r.in.resolve(expr, depth)
			r.in.logger.Debug("resolved local", "name", name, "depth", depth, "pos", expr.Pos().String())
			return
		}
	}
}

func (r *Resolver) resolveStatements(statements []Statement) error {
	for _, stmt := range statements {
		if err := r.resolveStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) resolveStatement(stmt Statement) error {
	switch s := stmt.(type) {
	case *BlockStmt:
		r.beginScope()
		defer r.endScope()
		return r.resolveStatements(s.Statements)
	case *VarStmt:
		if err := r.declare(s.Name, s.Pos()); err != nil {
			return err
		}
		if s.Initializer != nil {
			if err := r.resolveExpression(s.Initializer); err != nil {
				return err
			}
		}
		r.define(s.Name)
		return nil
	case *FunctionStmt:
		if err := r.declare(s.Decl.Name, s.Pos()); err != nil {
			return err
		}
		r.define(s.Decl.Name)
		return r.resolveFunction(s.Decl, functionFunction)
	case *ClassStmt:
		if err := r.declare(s.Name, s.Pos()); err != nil {
			return err
		}
		r.define(s.Name)

		r.beginScope()
		defer r.endScope()
		r.scopes[len(r.scopes)-1]["this"] = true
		for _, method := range s.Methods {
			if err := r.resolveFunction(method.Decl, functionMethod); err != nil {
				return err
			}
		}
		return nil
	case *ExprStmt:
		return r.resolveExpression(s.Expr)
	case *PrintStmt:
		return r.resolveExpression(s.Expr)
	case *IfStmt:
		if err := r.resolveExpression(s.Condition); err != nil {
			return err
		}
		if err := r.resolveStatement(s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			return r.resolveStatement(s.Else)
		}
		return nil
	case *WhileStmt:
		if err := r.resolveExpression(s.Condition); err != nil {
			return err
		}
		return r.resolveStatement(s.Body)
	case *ReturnStmt:
		if r.currentFunction == functionNone {
			return newError(InvalidReturnLocation, s.Pos(), "cannot return from top-level code")
		}
		if s.Value != nil {
			return r.resolveExpression(s.Value)
		}
		return nil
	case *BreakStmt:
		return nil
	default:
		return nil
	}
}

func (r *Resolver) resolveFunction(decl *FunctionDecl, kind functionKind) error {
	enclosing := r.currentFunction
	r.currentFunction = kind
	defer func() {
		r.currentFunction = enclosing
	}()

	r.beginScope()
	defer r.endScope()
	for _, param := range decl.Params {
		if err := r.declare(param.Name, param.Pos); err != nil {
			return err
		}
		r.define(param.Name)
	}
	return r.resolveStatements(decl.Body)
}

func (r *Resolver) resolveExpression(expr Expression) error {
	switch e := expr.(type) {
	case *VariableExpr:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name]; ok && !defined {
				return newError(SelfReferencingInitializer, e.Pos(), "cannot read local variable '%s' in its own initializer", e.Name)
			}
		}
		r.resolveLocal(e, e.Name)
		return nil
	case *AssignExpr:
		if err := r.resolveExpression(e.Value); err != nil {
			return err
		}
		r.resolveLocal(e, e.Name)
		return nil
	case *ThisExpr:
		r.resolveLocal(e, "this")
		return nil
	case *BinaryExpr:
		if err := r.resolveExpression(e.Left); err != nil {
			return err
		}
		return r.resolveExpression(e.Right)
	case *LogicalExpr:
		if err := r.resolveExpression(e.Left); err != nil {
			return err
		}
		return r.resolveExpression(e.Right)
	case *UnaryExpr:
		return r.resolveExpression(e.Right)
	case *GroupingExpr:
		return r.resolveExpression(e.Expr)
	case *LiteralExpr:
		return nil
	case *CallExpr:
		if err := r.resolveExpression(e.Callee); err != nil {
			return err
		}
		for _, arg := range e.Args {
			if err := r.resolveExpression(arg); err != nil {
				return err
			}
		}
		return nil
	case *GetExpr:
		return r.resolveExpression(e.Object)
	case *SetExpr:
		if err := r.resolveExpression(e.Value); err != nil {
			return err
		}
		return r.resolveExpression(e.Object)
	case *LambdaExpr:
		return r.resolveFunction(e.Decl, functionFunction)
	default:
		return nil
	}
}
