package ratex

func (p *parser) parseDeclaration() Statement {
	switch p.curToken.Type {
	case tokenVar:
		return p.parseVarStatement()
	case tokenClass:
		return p.parseClassStatement()
	case tokenFun:
		if p.peekToken.Type == tokenIdent {
			return p.parseFunctionStatement()
		}
		return p.parseStatement()
	default:
		return p.parseStatement()
	}
}

func (p *parser) parseStatement() Statement {
	switch p.curToken.Type {
	case tokenPrint:
		return p.parsePrintStatement()
	case tokenReturn:
		return p.parseReturnStatement()
	case tokenBreak:
		return p.parseBreakStatement()
	case tokenIf:
		return p.parseIfStatement()
	case tokenWhile:
		return p.parseWhileStatement()
	case tokenFor:
		return p.parseForStatement()
	case tokenLBrace:
		pos := p.curToken.Pos
		body, ok := p.parseBlockStatements()
		if !ok {
			return nil
		}
		return &BlockStmt{stmtBase: stmtBase{pos}, Statements: body}
	default:
		return p.parseExpressionStatement()
	}
}

func (p *parser) parseVarStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	stmt := &VarStmt{stmtBase: stmtBase{pos}, Name: p.curToken.Literal}

	if p.peekToken.Type == tokenAssign {
		p.nextToken()
		p.nextToken()
		stmt.Initializer = p.parseExpression(lowestPrec)
		if stmt.Initializer == nil {
			return nil
		}
	}

	if !p.expectPeek(tokenSemicolon) {
		return nil
	}
	return stmt
}

func (p *parser) parseFunctionStatement() Statement {
	pos := p.curToken.Pos
	p.nextToken()
	name := p.curToken.Literal
	if !p.expectPeek(tokenLParen) {
		return nil
	}
	decl := p.parseFunctionRest(name, pos)
	if decl == nil {
		return nil
	}
	return &FunctionStmt{stmtBase: stmtBase{pos}, Decl: decl}
}

// parseFunctionRest parses a parameter list and body. curToken must be the
// opening parenthesis.
func (p *parser) parseFunctionRest(name string, pos Position) *FunctionDecl {
	params := []Param{}
	if p.peekToken.Type == tokenRParen {
		p.nextToken()
	} else {
		if !p.expectPeek(tokenIdent) {
			return nil
		}
		params = append(params, Param{Name: p.curToken.Literal, Pos: p.curToken.Pos})
		for p.peekToken.Type == tokenComma {
			p.nextToken()
			if !p.expectPeek(tokenIdent) {
				return nil
			}
			params = append(params, Param{Name: p.curToken.Literal, Pos: p.curToken.Pos})
		}
		if !p.expectPeek(tokenRParen) {
			return nil
		}
	}

	if !p.expectPeek(tokenLBrace) {
		return nil
	}
	body, ok := p.parseBlockStatements()
	if !ok {
		return nil
	}
	return &FunctionDecl{Name: name, Params: params, Body: body, Pos: pos}
}

func (p *parser) parseClassStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	stmt := &ClassStmt{stmtBase: stmtBase{pos}, Name: p.curToken.Literal}
	if !p.expectPeek(tokenLBrace) {
		return nil
	}

	p.nextToken()
	for p.curToken.Type != tokenRBrace && p.curToken.Type != tokenEOF {
		if p.curToken.Type != tokenIdent {
			p.errorExpected(p.curToken, "method name")
			return nil
		}
		methodPos := p.curToken.Pos
		name := p.curToken.Literal
		if !p.expectPeek(tokenLParen) {
			return nil
		}
		decl := p.parseFunctionRest(name, methodPos)
		if decl == nil {
			return nil
		}
		stmt.Methods = append(stmt.Methods, &FunctionStmt{stmtBase: stmtBase{methodPos}, Decl: decl})
		p.nextToken()
	}

	if p.curToken.Type != tokenRBrace {
		p.errorExpected(p.curToken, tokenLabel(tokenRBrace))
		return nil
	}
	return stmt
}

// parseBlockStatements parses `{ declarations }`. curToken must be the
// opening brace and is left on the closing one.
func (p *parser) parseBlockStatements() ([]Statement, bool) {
	statements := []Statement{}
	p.nextToken()
	for p.curToken.Type != tokenRBrace && p.curToken.Type != tokenEOF {
		stmt := p.parseDeclaration()
		if stmt == nil {
			return nil, false
		}
		statements = append(statements, stmt)
		p.nextToken()
	}
	if p.curToken.Type != tokenRBrace {
		p.errorExpected(p.curToken, tokenLabel(tokenRBrace))
		return nil, false
	}
	return statements, true
}

func (p *parser) parsePrintStatement() Statement {
	pos := p.curToken.Pos
	p.nextToken()
	value := p.parseExpression(lowestPrec)
	if value == nil || !p.expectPeek(tokenSemicolon) {
		return nil
	}
	return &PrintStmt{stmtBase: stmtBase{pos}, Expr: value}
}

func (p *parser) parseReturnStatement() Statement {
	stmt := &ReturnStmt{stmtBase: stmtBase{p.curToken.Pos}}
	if p.peekToken.Type != tokenSemicolon {
		p.nextToken()
		stmt.Value = p.parseExpression(lowestPrec)
		if stmt.Value == nil {
			return nil
		}
	}
	if !p.expectPeek(tokenSemicolon) {
		return nil
	}
	return stmt
}

func (p *parser) parseBreakStatement() Statement {
	stmt := &BreakStmt{stmtBase: stmtBase{p.curToken.Pos}}
	if !p.expectPeek(tokenSemicolon) {
		return nil
	}
	return stmt
}

func (p *parser) parseIfStatement() Statement {
	pos := p.curToken.Pos
	condition := p.parseCondition()
	if condition == nil {
		return nil
	}

	p.nextToken()
	then := p.parseStatement()
	if then == nil {
		return nil
	}
	stmt := &IfStmt{stmtBase: stmtBase{pos}, Condition: condition, Then: then}

	if p.peekToken.Type == tokenElse {
		p.nextToken()
		p.nextToken()
		stmt.Else = p.parseStatement()
		if stmt.Else == nil {
			return nil
		}
	}
	return stmt
}

func (p *parser) parseWhileStatement() Statement {
	pos := p.curToken.Pos
	condition := p.parseCondition()
	if condition == nil {
		return nil
	}

	p.nextToken()
	body := p.parseStatement()
	if body == nil {
		return nil
	}
	return &WhileStmt{stmtBase: stmtBase{pos}, Condition: condition, Body: body}
}

// parseCondition parses `( expr )` following an if or while keyword.
func (p *parser) parseCondition() Expression {
	if !p.expectPeek(tokenLParen) {
		return nil
	}
	p.nextToken()
	condition := p.parseExpression(lowestPrec)
	if condition == nil || !p.expectPeek(tokenRParen) {
		return nil
	}
	return condition
}

// parseForStatement desugars `for (init; cond; incr) body` into
// `{ init; while (cond) { body; incr; } }`.
func (p *parser) parseForStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenLParen) {
		return nil
	}

	p.nextToken()
	var initializer Statement
	switch p.curToken.Type {
	case tokenSemicolon:
	case tokenVar:
		initializer = p.parseVarStatement()
		if initializer == nil {
			return nil
		}
	default:
		initializer = p.parseExpressionStatement()
		if initializer == nil {
			return nil
		}
	}

	p.nextToken()
	var condition Expression
	if p.curToken.Type != tokenSemicolon {
		condition = p.parseExpression(lowestPrec)
		if condition == nil || !p.expectPeek(tokenSemicolon) {
			return nil
		}
	} else {
		condition = &LiteralExpr{exprBase: newExprBase(p.curToken.Pos), Value: NewBool(true)}
	}

	p.nextToken()
	var increment Expression
	if p.curToken.Type != tokenRParen {
		increment = p.parseExpression(lowestPrec)
		if increment == nil || !p.expectPeek(tokenRParen) {
			return nil
		}
	}

	p.nextToken()
	body := p.parseStatement()
	if body == nil {
		return nil
	}

	if increment != nil {
		body = &BlockStmt{
			stmtBase:   stmtBase{body.Pos()},
			Statements: []Statement{body, &ExprStmt{stmtBase: stmtBase{increment.Pos()}, Expr: increment}},
		}
	}
	var loop Statement = &WhileStmt{stmtBase: stmtBase{pos}, Condition: condition, Body: body}
	if initializer != nil {
		loop = &BlockStmt{stmtBase: stmtBase{pos}, Statements: []Statement{initializer, loop}}
	}
	return loop
}

func (p *parser) parseExpressionStatement() Statement {
	pos := p.curToken.Pos
	expr := p.parseExpression(lowestPrec)
	if expr == nil || !p.expectPeek(tokenSemicolon) {
		return nil
	}
	return &ExprStmt{stmtBase: stmtBase{pos}, Expr: expr}
}
