package ratex

import "strconv"

const (
	lowestPrec = iota
	precAssign
	precOr
	precAnd
	precEquality
	precComparison
	precSum
	precProduct
	precPrefix
	precCall
)

var precedences = map[TokenType]int{
	tokenAssign:   precAssign,
	tokenOr:       precOr,
	tokenAnd:      precAnd,
	tokenEQ:       precEquality,
	tokenNotEQ:    precEquality,
	tokenLT:       precComparison,
	tokenLTE:      precComparison,
	tokenGT:       precComparison,
	tokenGTE:      precComparison,
	tokenPlus:     precSum,
	tokenMinus:    precSum,
	tokenSlash:    precProduct,
	tokenAsterisk: precProduct,
	tokenLParen:   precCall,
	tokenDot:      precCall,
}

func (p *parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) parseExpression(precedence int) Expression {
	prefix := p.prefixFns[p.curToken.Type]
	if prefix == nil {
		p.errorUnexpected(p.curToken)
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for p.peekToken.Type != tokenEOF && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *parser) parseVariable() Expression {
	return &VariableExpr{exprBase: newExprBase(p.curToken.Pos), Name: p.curToken.Literal}
}

func (p *parser) parseNumberLiteral() Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addParseError(UnexpectedToken, p.curToken.Pos, "invalid number literal "+p.curToken.Literal)
		return nil
	}
	return &LiteralExpr{exprBase: newExprBase(p.curToken.Pos), Value: NewNumber(value)}
}

func (p *parser) parseStringLiteral() Expression {
	return &LiteralExpr{exprBase: newExprBase(p.curToken.Pos), Value: NewString(p.curToken.Literal)}
}

func (p *parser) parseBooleanLiteral() Expression {
	return &LiteralExpr{exprBase: newExprBase(p.curToken.Pos), Value: NewBool(p.curToken.Type == tokenTrue)}
}

func (p *parser) parseNilLiteral() Expression {
	return &LiteralExpr{exprBase: newExprBase(p.curToken.Pos), Value: NewNil()}
}

func (p *parser) parseThis() Expression {
	return &ThisExpr{exprBase: newExprBase(p.curToken.Pos)}
}

func (p *parser) parseGroupedExpression() Expression {
	pos := p.curToken.Pos
	p.nextToken()
	expr := p.parseExpression(lowestPrec)
	if expr == nil || !p.expectPeek(tokenRParen) {
		return nil
	}
	return &GroupingExpr{exprBase: newExprBase(pos), Expr: expr}
}

func (p *parser) parseLambda() Expression {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenLParen) {
		return nil
	}
	decl := p.parseFunctionRest("", pos)
	if decl == nil {
		return nil
	}
	return &LambdaExpr{exprBase: newExprBase(pos), Decl: decl}
}

func (p *parser) parsePrefixExpression() Expression {
	pos := p.curToken.Pos
	operator := p.curToken.Type
	p.nextToken()
	right := p.parseExpression(precPrefix)
	if right == nil {
		return nil
	}
	return &UnaryExpr{exprBase: newExprBase(pos), Operator: operator, Right: right}
}

func (p *parser) parseInfixExpression(left Expression) Expression {
	pos := p.curToken.Pos
	operator := p.curToken.Type
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &BinaryExpr{exprBase: newExprBase(pos), Left: left, Operator: operator, Right: right}
}

func (p *parser) parseLogicalExpression(left Expression) Expression {
	pos := p.curToken.Pos
	operator := p.curToken.Type
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &LogicalExpr{exprBase: newExprBase(pos), Left: left, Operator: operator, Right: right}
}

// parseAssignExpression is right-associative: `a = b = c` assigns c to b
// and then to a.
func (p *parser) parseAssignExpression(left Expression) Expression {
	pos := p.curToken.Pos
	p.nextToken()
	value := p.parseExpression(precAssign - 1)
	if value == nil {
		return nil
	}

	switch target := left.(type) {
	case *VariableExpr:
		return &AssignExpr{exprBase: newExprBase(target.Pos()), Name: target.Name, Value: value}
	case *GetExpr:
		return &SetExpr{exprBase: newExprBase(target.Pos()), Object: target.Object, Name: target.Name, Value: value}
	default:
		p.addParseError(InvalidAssignment, pos, "invalid assignment target")
		return nil
	}
}

func (p *parser) parseCallExpression(callee Expression) Expression {
	expr := &CallExpr{exprBase: newExprBase(callee.Pos()), Callee: callee, Args: []Expression{}}

	if p.peekToken.Type == tokenRParen {
		p.nextToken()
		return expr
	}

	p.nextToken()
	arg := p.parseExpression(lowestPrec)
	if arg == nil {
		return nil
	}
	expr.Args = append(expr.Args, arg)

	for p.peekToken.Type == tokenComma {
		p.nextToken()
		p.nextToken()
		arg := p.parseExpression(lowestPrec)
		if arg == nil {
			return nil
		}
		expr.Args = append(expr.Args, arg)
	}

	if !p.expectPeek(tokenRParen) {
		return nil
	}
	return expr
}

func (p *parser) parseGetExpression(object Expression) Expression {
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	return &GetExpr{exprBase: newExprBase(p.curToken.Pos), Object: object, Name: p.curToken.Literal}
}
