package parser

import (
	"strconv"

	"jeko/ast"
	"jeko/lexer"
	"jeko/object"
	"jeko/token"
)

// A recursive-descent parser. Every expression node it makes gets a
// unique id from the nextId counter; the resolver and the evaluator use
// these ids to talk to one another about the same tree, so the tree
// must never be copied or re-parsed between the two passes.

type Parser struct {
	lex       *lexer.Lexer
	curToken  token.Token
	peekToken token.Token
	nextId    int

	Errors object.Errors
}

func New(source, input string) *Parser {
	p := &Parser{lex: lexer.New(source, input), Errors: object.Errors{}}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) Throw(errorID string, tok token.Token, args ...any) {
	p.Errors = append(p.Errors, object.CreateErr(errorID, tok, args...))
}

func (p *Parser) ErrorsExist() bool {
	return len(p.Errors) > 0
}

func (p *Parser) ParseProgram() []ast.Node {
	statements := []ast.Node{}
	for p.curToken.Type != token.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			statements = append(statements, stmt)
		} else {
			p.synchronize()
		}
	}
	return statements
}

func (p *Parser) newId() int {
	id := p.nextId
	p.nextId++
	return id
}

func (p *Parser) advance() {
	p.curToken = p.peekToken
	p.peekToken = p.lex.NextToken()
	if p.peekToken.Type == token.ILLEGAL {
		p.Throw(p.peekToken.Literal, p.peekToken)
	}
}

// On a parse error we bail out of the statement and skip forward to
// something that looks like a statement boundary, so that one mistake
// doesn't produce a cascade of phantom ones. A keyword that can start
// a statement is as good a boundary as a semicolon.
func (p *Parser) synchronize() {
	for p.curToken.Type != token.EOF {
		switch p.curToken.Type {
		case token.SEMICOLON, token.RBRACE:
			p.advance()
			return
		case token.VAR, token.FUN, token.CMD, token.CLASS, token.IF, token.WHILE,
			token.WAIT, token.BENCH, token.PRINT, token.INPUT, token.ERRORS,
			token.IMPORT, token.RETURN, token.BREAK, token.EXITS:
			return
		}
		p.advance()
	}
}

func (p *Parser) expect(tokenType token.TokenType) token.Token {
	if p.curToken.Type != tokenType {
		p.Throw("parse/expect", p.curToken, string(tokenType))
		return p.curToken
	}
	tok := p.curToken
	p.advance()
	return tok
}

func (p *Parser) curTokenIs(tokenType token.TokenType) bool {
	return p.curToken.Type == tokenType
}

func (p *Parser) match(tokenType token.TokenType) bool {
	if p.curToken.Type == tokenType {
		p.advance()
		return true
	}
	return false
}

// Statements

func (p *Parser) parseStatement() ast.Node {
	errCountBefore := len(p.Errors)
	var stmt ast.Node
	switch p.curToken.Type {
	case token.VAR:
		stmt = p.parseVarStatement()
	case token.FUN:
		stmt = p.parseFunctionStatement()
	case token.CMD:
		stmt = p.parseCmdFunctionStatement()
	case token.CLASS:
		stmt = p.parseClassStatement()
	case token.IF:
		stmt = p.parseIfStatement()
	case token.WHILE:
		stmt = p.parseWhileStatement()
	case token.WAIT:
		stmt = p.parseWaitStatement()
	case token.BENCH:
		stmt = p.parseBenchStatement()
	case token.PRINT:
		stmt = p.parsePrintStatement()
	case token.INPUT:
		stmt = p.parseInputStatement()
	case token.ERRORS:
		stmt = p.parseErrorsStatement()
	case token.IMPORT:
		stmt = p.parseImportStatement()
	case token.RETURN:
		stmt = p.parseReturnStatement()
	case token.BREAK:
		stmt = p.parseBreakStatement()
	case token.EXITS:
		stmt = p.parseExitsStatement()
	case token.LBRACE:
		stmt = p.parseBlockStatement()
	default:
		stmt = p.parseExpressionStatement()
	}
	if len(p.Errors) > errCountBefore {
		return nil
	}
	return stmt
}

func (p *Parser) parseVarStatement() ast.Node {
	varToken := p.expect(token.VAR)
	name := p.expect(token.IDENT)
	var initializer ast.Expression
	if p.match(token.ASSIGN) {
		initializer = p.parseExpression()
		if initializer == nil {
			return nil
		}
	} else {
		initializer = &ast.NilLiteral{Id: p.newId(), Token: name}
	}
	p.expect(token.SEMICOLON)
	return &ast.VarStatement{Token: varToken, Name: name, Initializer: initializer}
}

func (p *Parser) parseFunctionStatement() *ast.FunctionStatement {
	funToken := p.expect(token.FUN)
	name := p.expect(token.IDENT)
	params := p.parseParameterList()
	body := p.parseStatementBlock()
	return &ast.FunctionStatement{Token: funToken, Name: name, Params: params, Body: body}
}

func (p *Parser) parseCmdFunctionStatement() ast.Node {
	cmdToken := p.expect(token.CMD)
	name := p.expect(token.IDENT)
	p.expect(token.ASSIGN)
	if !p.curTokenIs(token.STRING) {
		p.Throw("parse/cmd/string", p.curToken)
		return nil
	}
	cmd := p.curToken.Literal
	p.advance()
	p.expect(token.SEMICOLON)
	return &ast.CmdFunctionStatement{Token: cmdToken, Name: name, Cmd: cmd}
}

func (p *Parser) parseClassStatement() ast.Node {
	classToken := p.expect(token.CLASS)
	name := p.expect(token.IDENT)
	var superclass ast.Expression
	if p.match(token.LT) {
		superclass = p.parseUnary()
	}
	p.expect(token.LBRACE)
	methods := []*ast.FunctionStatement{}
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		methods = append(methods, p.parseMethod())
	}
	p.expect(token.RBRACE)
	return &ast.ClassStatement{Token: classToken, Name: name, Superclass: superclass, Methods: methods}
}

// A method is a function declaration without the 'fun' in front of it.
func (p *Parser) parseMethod() *ast.FunctionStatement {
	name := p.expect(token.IDENT)
	params := p.parseParameterList()
	body := p.parseStatementBlock()
	return &ast.FunctionStatement{Token: name, Name: name, Params: params, Body: body}
}

func (p *Parser) parseIfStatement() ast.Node {
	ifToken := p.expect(token.IF)
	predicate := p.parseExpression()
	// `if x: stmt` is the short form; `if x { ... }` the long one.
	if p.match(token.COLON) {
		then := p.parseStatement()
		var els ast.Node
		if p.curTokenIs(token.ELSE) {
			p.advance()
			p.expect(token.COLON)
			els = p.parseStatement()
		}
		return &ast.IfShortStatement{Token: ifToken, Predicate: predicate, Then: then, Else: els}
	}
	then := p.parseBlockStatement()
	elifs := []ast.ElifBranch{}
	var els ast.Node
	for p.curTokenIs(token.ELIF) {
		p.advance()
		elifPredicate := p.parseExpression()
		elifBody := p.parseBlockStatement()
		elifs = append(elifs, ast.ElifBranch{Predicate: elifPredicate, Body: elifBody})
	}
	if p.match(token.ELSE) {
		if p.curTokenIs(token.IF) {
			els = p.parseIfStatement()
		} else {
			els = p.parseBlockStatement()
		}
	}
	return &ast.IfStatement{Token: ifToken, Predicate: predicate, Then: then, Elifs: elifs, Else: els}
}

func (p *Parser) parseWhileStatement() ast.Node {
	whileToken := p.expect(token.WHILE)
	condition := p.parseExpression()
	body := p.parseBlockStatement()
	return &ast.WhileStatement{Token: whileToken, Condition: condition, Body: body}
}

func (p *Parser) parseWaitStatement() ast.Node {
	waitToken := p.expect(token.WAIT)
	time := p.parseExpression()
	body := p.parseBlockStatement()
	var before *ast.BeforeClause
	if p.match(token.BEFORE) {
		beforeTime := p.parseExpression()
		beforeBody := p.parseBlockStatement()
		before = &ast.BeforeClause{Time: beforeTime, Body: beforeBody}
	}
	return &ast.WaitStatement{Token: waitToken, Time: time, Body: body, Before: before}
}

func (p *Parser) parseBenchStatement() ast.Node {
	benchToken := p.expect(token.BENCH)
	body := p.parseBlockStatement()
	return &ast.BenchStatement{Token: benchToken, Body: body}
}

func (p *Parser) parsePrintStatement() ast.Node {
	printToken := p.expect(token.PRINT)
	expression := p.parseExpression()
	if expression == nil {
		return nil
	}
	p.expect(token.SEMICOLON)
	return &ast.PrintStatement{Token: printToken, Expression: expression}
}

func (p *Parser) parseInputStatement() ast.Node {
	inputToken := p.expect(token.INPUT)
	prompt := p.parseExpression()
	if prompt == nil {
		return nil
	}
	p.expect(token.SEMICOLON)
	return &ast.InputStatement{Token: inputToken, Prompt: prompt}
}

func (p *Parser) parseErrorsStatement() ast.Node {
	errorsToken := p.expect(token.ERRORS)
	expression := p.parseExpression()
	if expression == nil {
		return nil
	}
	p.expect(token.SEMICOLON)
	return &ast.ErrorsStatement{Token: errorsToken, Expression: expression}
}

func (p *Parser) parseImportStatement() ast.Node {
	importToken := p.expect(token.IMPORT)
	expression := p.parseExpression()
	if expression == nil {
		return nil
	}
	p.expect(token.SEMICOLON)
	return &ast.ImportStatement{Token: importToken, Expression: expression}
}

func (p *Parser) parseReturnStatement() ast.Node {
	returnToken := p.expect(token.RETURN)
	var value ast.Expression
	if !p.curTokenIs(token.SEMICOLON) {
		value = p.parseExpression()
	}
	p.expect(token.SEMICOLON)
	return &ast.ReturnStatement{Token: returnToken, Value: value}
}

func (p *Parser) parseBreakStatement() ast.Node {
	breakToken := p.expect(token.BREAK)
	p.expect(token.SEMICOLON)
	return &ast.BreakStatement{Token: breakToken}
}

func (p *Parser) parseExitsStatement() ast.Node {
	exitsToken := p.expect(token.EXITS)
	p.expect(token.SEMICOLON)
	return &ast.ExitsStatement{Token: exitsToken}
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	braceToken := p.expect(token.LBRACE)
	statements := []ast.Node{}
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			statements = append(statements, stmt)
		} else {
			p.synchronize()
		}
	}
	p.expect(token.RBRACE)
	return &ast.BlockStatement{Token: braceToken, Statements: statements}
}

func (p *Parser) parseExpressionStatement() ast.Node {
	tok := p.curToken
	expression := p.parseExpression()
	if expression == nil {
		return nil
	}
	p.expect(token.SEMICOLON)
	return &ast.ExpressionStatement{Token: tok, Expression: expression}
}

func (p *Parser) parseParameterList() []token.Token {
	p.expect(token.LPAREN)
	params := []token.Token{}
	if !p.curTokenIs(token.RPAREN) {
		params = append(params, p.expect(token.IDENT))
		for p.match(token.COMMA) {
			params = append(params, p.expect(token.IDENT))
		}
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseStatementBlock() []ast.Node {
	p.expect(token.LBRACE)
	statements := []ast.Node{}
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			statements = append(statements, stmt)
		} else {
			p.synchronize()
		}
	}
	p.expect(token.RBRACE)
	return statements
}

// Expressions, from loosest precedence to tightest.

func (p *Parser) parseExpression() ast.Expression {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Expression {
	expression := p.parseOr()
	if p.curTokenIs(token.ASSIGN) {
		equals := p.curToken
		p.advance()
		value := p.parseAssignment()
		switch target := expression.(type) {
		case *ast.Identifier:
			return &ast.AssignExpression{Id: p.newId(), Token: equals, Name: target.Token, Value: value}
		case *ast.GetExpression:
			return &ast.SetExpression{Id: p.newId(), Token: equals, Object: target.Object,
				Name: target.Name, Value: value}
		default:
			p.Throw("parse/assign", equals)
		}
	}
	return expression
}

func (p *Parser) parseOr() ast.Expression {
	expression := p.parseAnd()
	for p.curTokenIs(token.OR) {
		operator := p.curToken
		p.advance()
		right := p.parseAnd()
		expression = &ast.LogicalExpression{Id: p.newId(), Token: operator, Left: expression,
			Operator: operator.Literal, Right: right}
	}
	return expression
}

func (p *Parser) parseAnd() ast.Expression {
	expression := p.parseEquality()
	for p.curTokenIs(token.AND) {
		operator := p.curToken
		p.advance()
		right := p.parseEquality()
		expression = &ast.LogicalExpression{Id: p.newId(), Token: operator, Left: expression,
			Operator: operator.Literal, Right: right}
	}
	return expression
}

func (p *Parser) parseEquality() ast.Expression {
	expression := p.parseComparison()
	for p.curTokenIs(token.EQ) || p.curTokenIs(token.NOT_EQ) {
		operator := p.curToken
		p.advance()
		right := p.parseComparison()
		expression = &ast.BinaryExpression{Id: p.newId(), Token: operator, Left: expression,
			Operator: operator.Literal, Right: right}
	}
	return expression
}

func (p *Parser) parseComparison() ast.Expression {
	expression := p.parseTerm()
	for p.curTokenIs(token.LT) || p.curTokenIs(token.LT_EQ) ||
		p.curTokenIs(token.GT) || p.curTokenIs(token.GT_EQ) {
		operator := p.curToken
		p.advance()
		right := p.parseTerm()
		expression = &ast.BinaryExpression{Id: p.newId(), Token: operator, Left: expression,
			Operator: operator.Literal, Right: right}
	}
	return expression
}

func (p *Parser) parseTerm() ast.Expression {
	expression := p.parseFactor()
	for p.curTokenIs(token.PLUS) || p.curTokenIs(token.MINUS) {
		operator := p.curToken
		p.advance()
		right := p.parseFactor()
		expression = &ast.BinaryExpression{Id: p.newId(), Token: operator, Left: expression,
			Operator: operator.Literal, Right: right}
	}
	return expression
}

func (p *Parser) parseFactor() ast.Expression {
	expression := p.parseUnary()
	for p.curTokenIs(token.STAR) || p.curTokenIs(token.SLASH) || p.curTokenIs(token.PERCENT) {
		operator := p.curToken
		p.advance()
		right := p.parseUnary()
		expression = &ast.BinaryExpression{Id: p.newId(), Token: operator, Left: expression,
			Operator: operator.Literal, Right: right}
	}
	return expression
}

func (p *Parser) parseUnary() ast.Expression {
	if p.curTokenIs(token.MINUS) || p.curTokenIs(token.BANG) || p.curTokenIs(token.NOT) {
		operator := p.curToken
		p.advance()
		right := p.parseUnary()
		return &ast.UnaryExpression{Id: p.newId(), Token: operator,
			Operator: operator.Literal, Right: right}
	}
	return p.parseCall()
}

func (p *Parser) parseCall() ast.Expression {
	expression := p.parsePrimary()
	for {
		if p.curTokenIs(token.LPAREN) {
			parenToken := p.curToken
			p.advance()
			arguments := []ast.Expression{}
			if !p.curTokenIs(token.RPAREN) {
				arguments = append(arguments, p.parseExpression())
				for p.match(token.COMMA) {
					arguments = append(arguments, p.parseExpression())
				}
			}
			p.expect(token.RPAREN)
			expression = &ast.CallExpression{Id: p.newId(), Token: parenToken,
				Callee: expression, Arguments: arguments}
		} else if p.curTokenIs(token.DOT) {
			dotToken := p.curToken
			p.advance()
			name := p.expect(token.IDENT)
			expression = &ast.GetExpression{Id: p.newId(), Token: dotToken,
				Object: expression, Name: name}
		} else {
			return expression
		}
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.curToken
	switch tok.Type {
	case token.INT:
		p.advance()
		value, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			p.Throw("parse/int", tok)
			return nil
		}
		return &ast.IntegerLiteral{Id: p.newId(), Token: tok, Value: value}
	case token.FLOAT:
		p.advance()
		value, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.Throw("parse/float", tok)
			return nil
		}
		return &ast.FloatLiteral{Id: p.newId(), Token: tok, Value: value}
	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Id: p.newId(), Token: tok, Value: tok.Literal}
	case token.TRUE:
		p.advance()
		return &ast.BooleanLiteral{Id: p.newId(), Token: tok, Value: true}
	case token.FALSE:
		p.advance()
		return &ast.BooleanLiteral{Id: p.newId(), Token: tok, Value: false}
	case token.NIL:
		p.advance()
		return &ast.NilLiteral{Id: p.newId(), Token: tok}
	case token.IDENT, token.SELF, token.SUPER:
		// 'self' and 'super' are ordinary identifiers as far as the
		// tree is concerned; what makes them special is where the
		// evaluator binds them.
		p.advance()
		return &ast.Identifier{Id: p.newId(), Token: tok, Value: tok.Literal}
	case token.LPAREN:
		p.advance()
		inner := p.parseExpression()
		p.expect(token.RPAREN)
		return &ast.GroupingExpression{Id: p.newId(), Token: tok, Inner: inner}
	case token.LBRACK:
		p.advance()
		elements := []ast.Expression{}
		if !p.curTokenIs(token.RBRACK) {
			elements = append(elements, p.parseExpression())
			for p.match(token.COMMA) {
				elements = append(elements, p.parseExpression())
			}
		}
		p.expect(token.RBRACK)
		return &ast.ArrayLiteral{Id: p.newId(), Token: tok, Elements: elements}
	case token.FUN:
		p.advance()
		params := p.parseParameterList()
		body := p.parseStatementBlock()
		return &ast.FuncExpression{Id: p.newId(), Token: tok, Params: params, Body: body}
	default:
		p.Throw("parse/expr", tok)
		p.advance()
		return nil
	}
}
