package ratex

import "fmt"

func (in *Interpreter) execute(stmt Statement) (flow, error) {
	switch s := stmt.(type) {
	case *ExprStmt:
		_, err := in.evaluate(s.Expr)
		return flow{}, err
	case *PrintStmt:
		val, err := in.evaluate(s.Expr)
		if err != nil {
			return flow{}, err
		}
		fmt.Fprintln(in.out, val.String())
		return flow{}, nil
	case *VarStmt:
		val := NewNil()
		if s.Initializer != nil {
			var err error
			val, err = in.evaluate(s.Initializer)
			if err != nil {
				return flow{}, err
			}
		}
		in.env.Define(s.Name, val)
		return flow{}, nil
	case *BlockStmt:
		return in.executeBlock(s.Statements, newEnv(in.env))
	case *IfStmt:
		return in.executeIf(s)
	case *WhileStmt:
		return in.executeWhile(s)
	case *BreakStmt:
		return flow{kind: flowBreak}, nil
	case *ReturnStmt:
		val := NewNil()
		if s.Value != nil {
			var err error
			val, err = in.evaluate(s.Value)
			if err != nil {
				return flow{}, err
			}
		}
		return flow{kind: flowReturn, value: val}, nil
	case *FunctionStmt:
		in.env.Define(s.Decl.Name, NewCallable(newFunction(s.Decl, in.env)))
		return flow{}, nil
	case *ClassStmt:
		methods := make(map[string]*Function, len(s.Methods))
		for _, method := range s.Methods {
			methods[method.Decl.Name] = newFunction(method.Decl, in.env)
		}
		in.env.Define(s.Name, NewClass(newClass(s.Name, methods)))
		in.logger.Debug("class defined", "name", s.Name, "methods", len(methods))
		return flow{}, nil
	default:
		return flow{}, in.errorAt(UnexpectedToken, stmt.Pos(), "unsupported statement %T", stmt)
	}
}

func (in *Interpreter) executeIf(stmt *IfStmt) (flow, error) {
	cond, err := in.evaluate(stmt.Condition)
	if err != nil {
		return flow{}, err
	}
	if cond.Truthy() {
		return in.execute(stmt.Then)
	}
	if stmt.Else != nil {
		return in.execute(stmt.Else)
	}
	return flow{}, nil
}

// executeWhile absorbs a break from its body and passes a return outward.
func (in *Interpreter) executeWhile(stmt *WhileStmt) (flow, error) {
	for {
		cond, err := in.evaluate(stmt.Condition)
		if err != nil {
			return flow{}, err
		}
		if !cond.Truthy() {
			return flow{}, nil
		}
		result, err := in.execute(stmt.Body)
		if err != nil {
			return flow{}, err
		}
		switch result.kind {
		case flowBreak:
			return flow{}, nil
		case flowReturn:
			return result, nil
		}
	}
}
