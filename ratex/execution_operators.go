package ratex

func (in *Interpreter) evalBinary(expr *BinaryExpr) (Value, error) {
	left, err := in.evaluate(expr.Left)
	if err != nil {
		return NewNil(), err
	}
	right, err := in.evaluate(expr.Right)
	if err != nil {
		return NewNil(), err
	}

	var (
		result Value
		ok     bool
	)
	switch {
	case left.Kind() == KindNumber && right.Kind() == KindNumber:
		result, ok = numberOperation(expr.Operator, left.Number(), right.Number())
	case left.Kind() == KindString && right.Kind() == KindString:
		result, ok = stringOperation(expr.Operator, left.Str(), right.Str())
	case left.Kind() == KindBool && right.Kind() == KindBool:
		result, ok = boolOperation(expr.Operator, left.Bool(), right.Bool())
	}
	if ok {
		return result, nil
	}
	return in.undefinedOperation(expr.Pos(), "unsupported operands %s %s %s", left.Kind(), expr.Operator, right.Kind())
}

func numberOperation(op TokenType, a, b float64) (Value, bool) {
	switch op {
	case tokenMinus:
		return NewNumber(a - b), true
	case tokenSlash:
		return NewNumber(a / b), true
	case tokenAsterisk:
		return NewNumber(a * b), true
	case tokenPlus:
		return NewNumber(a + b), true
	case tokenGT:
		return NewBool(a > b), true
	case tokenGTE:
		return NewBool(a >= b), true
	case tokenLT:
		return NewBool(a < b), true
	case tokenLTE:
		return NewBool(a <= b), true
	case tokenNotEQ:
		return NewBool(a != b), true
	case tokenEQ:
		return NewBool(a == b), true
	default:
		return NewNil(), false
	}
}

func stringOperation(op TokenType, a, b string) (Value, bool) {
	switch op {
	case tokenPlus:
		return NewString(a + b), true
	case tokenNotEQ:
		return NewBool(a != b), true
	case tokenEQ:
		return NewBool(a == b), true
	default:
		return NewNil(), false
	}
}

// boolOperation orders false before true.
func boolOperation(op TokenType, a, b bool) (Value, bool) {
	x, y := boolRank(a), boolRank(b)
	switch op {
	case tokenGT:
		return NewBool(x > y), true
	case tokenGTE:
		return NewBool(x >= y), true
	case tokenLT:
		return NewBool(x < y), true
	case tokenLTE:
		return NewBool(x <= y), true
	case tokenNotEQ:
		return NewBool(a != b), true
	case tokenEQ:
		return NewBool(a == b), true
	default:
		return NewNil(), false
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// evalUnary: minus negates numbers and inverts bools; bang keeps a bool
// as is, maps strings and numbers to true and nil to nil.
func (in *Interpreter) evalUnary(expr *UnaryExpr) (Value, error) {
	right, err := in.evaluate(expr.Right)
	if err != nil {
		return NewNil(), err
	}

	switch expr.Operator {
	case tokenMinus:
		switch right.Kind() {
		case KindNumber:
			return NewNumber(-right.Number()), nil
		case KindBool:
			return NewBool(!right.Bool()), nil
		}
	case tokenBang:
		switch right.Kind() {
		case KindBool:
			return right, nil
		case KindString, KindNumber:
			return NewBool(true), nil
		case KindNil:
			return NewNil(), nil
		}
	}
	return in.undefinedOperation(expr.Pos(), "unsupported operand %s%s", expr.Operator, right.Kind())
}

// undefinedOperation yields nil, or an InvalidOperands error when strict
// operators are enabled.
func (in *Interpreter) undefinedOperation(pos Position, format string, args ...any) (Value, error) {
	if in.config.StrictOperators {
		return NewNil(), in.errorAt(InvalidOperands, pos, format, args...)
	}
	return NewNil(), nil
}
