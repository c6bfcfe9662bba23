package ratex

func (in *Interpreter) evaluate(expr Expression) (Value, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.Value, nil
	case *GroupingExpr:
		return in.evaluate(e.Expr)
	case *UnaryExpr:
		return in.evalUnary(e)
	case *BinaryExpr:
		return in.evalBinary(e)
	case *LogicalExpr:
		return in.evalLogical(e)
	case *VariableExpr:
		return in.lookupVariable(e.Name, e)
	case *AssignExpr:
		val, err := in.evaluate(e.Value)
		if err != nil {
			return NewNil(), err
		}
		if err := in.assignVariable(e.Name, e, val); err != nil {
			return NewNil(), err
		}
		return val, nil
	case *ThisExpr:
		return in.lookupVariable("this", e)
	case *CallExpr:
		return in.evalCall(e)
	case *GetExpr:
		return in.evalGet(e)
	case *SetExpr:
		return in.evalSet(e)
	case *LambdaExpr:
		return NewCallable(newFunction(e.Decl, in.env)), nil
	default:
		return NewNil(), in.errorAt(UnexpectedToken, expr.Pos(), "unsupported expression %T", expr)
	}
}

// evalLogical short-circuits and yields the deciding operand itself.
func (in *Interpreter) evalLogical(expr *LogicalExpr) (Value, error) {
	left, err := in.evaluate(expr.Left)
	if err != nil {
		return NewNil(), err
	}
	switch expr.Operator {
	case tokenOr:
		if left.Truthy() {
			return left, nil
		}
	case tokenAnd:
		if !left.Truthy() {
			return left, nil
		}
	default:
		return NewNil(), in.errorAt(InvalidLogicalOperation, expr.Pos(), "invalid logical operator %s", expr.Operator)
	}
	return in.evaluate(expr.Right)
}

func (in *Interpreter) evalCall(expr *CallExpr) (Value, error) {
	callee, err := in.evaluate(expr.Callee)
	if err != nil {
		return NewNil(), err
	}
	args := make([]Value, 0, len(expr.Args))
	for _, arg := range expr.Args {
		val, err := in.evaluate(arg)
		if err != nil {
			return NewNil(), err
		}
		args = append(args, val)
	}

	var fn Callable
	switch callee.Kind() {
	case KindFunction:
		fn = callee.Callable()
	case KindClass:
		fn = callee.Class()
	default:
		return NewNil(), in.errorAt(InvalidFunctionCall, expr.Pos(), "can only call functions and classes, got %s", callee.Kind())
	}
	if len(args) != fn.Arity() {
		return NewNil(), in.errorAt(IncompatibleArity, expr.Pos(), "%s expected %d arguments but got %d", fn.Name(), fn.Arity(), len(args))
	}

	if err := in.pushFrame(fn.Name(), expr.Pos()); err != nil {
		return NewNil(), err
	}
	defer in.popFrame()
	in.logger.Debug("call", "function", fn.Name(), "depth", len(in.callStack))

	val, err := fn.Call(in, args)
	if err != nil {
		return NewNil(), in.locate(err, expr.Pos())
	}
	return val, nil
}

func (in *Interpreter) evalGet(expr *GetExpr) (Value, error) {
	object, err := in.evaluate(expr.Object)
	if err != nil {
		return NewNil(), err
	}
	if object.Kind() != KindInstance {
		return NewNil(), in.errorAt(InvalidFunctionCall, expr.Pos(), "only instances have properties, got %s", object.Kind())
	}
	val, err := object.Instance().Get(expr.Name)
	return val, in.locate(err, expr.Pos())
}

func (in *Interpreter) evalSet(expr *SetExpr) (Value, error) {
	object, err := in.evaluate(expr.Object)
	if err != nil {
		return NewNil(), err
	}
	if object.Kind() != KindInstance {
		return NewNil(), in.errorAt(NonInstanceSet, expr.Pos(), "only instances have fields, got %s", object.Kind())
	}
	val, err := in.evaluate(expr.Value)
	if err != nil {
		return NewNil(), err
	}
	object.Instance().Set(expr.Name, val)
	return val, nil
}
