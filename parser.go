// parser.go — recursive-descent parser over the scanner's token stream.
//
// OVERVIEW
// --------
// One token of lookahead, precedence climbing for binary operators. Grammar
// levels from low to high precedence:
//
//	assignment → or → and → equality → comparison → term → factor
//	           → unary → call → primary
//
// Binary levels fold iteratively to the left, so `a < b < c` parses as
// `((a < b) < c)`. Assignment is right-recursive and only legal when the
// left-hand side parsed as a bare variable reference.
//
// A program is a sequence of declarations; a declaration is a function
// declaration, a variable declaration, or a plain statement. Parameter and
// argument lists are capped at 255 entries.
//
// Parsing is fail-fast: the first error aborts the whole parse and is
// surfaced as a single error value. There is no recovery or synchronization.
// Error strings ("[line L] Expect X.", "[line L] Error at 'x': Expect
// expression.", "Invalid assignment target.") are part of the wire format
// and must not be reworded.
package lox

import "fmt"

// Parser consumes a token stream produced by Scanner.ScanTokens.
type Parser struct {
	tokens  []Token
	current int
}

// NewParser creates a parser over tokens. The stream must end with EOF.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses a whole program: declarations until EOF.
func (p *Parser) Parse() ([]Statement, error) {
	var statements []Statement
	for !p.check(EOF) {
		st, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, st)
	}
	return statements, nil
}

// ParseExpression parses a single expression (evaluate/parse modes).
func (p *Parser) ParseExpression() (Expression, error) {
	return p.parseAssignment()
}

// ─────────────────────────── token basics ───────────────────────────

func (p *Parser) cur() Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current]
}

func (p *Parser) prev() Token { return p.tokens[p.current-1] }

func (p *Parser) check(tt TokenType) bool { return p.cur().Type == tt }

func (p *Parser) advance() { p.current++ }

// consume advances unconditionally and returns the consumed token.
func (p *Parser) consume() Token {
	p.advance()
	return p.prev()
}

func (p *Parser) match(tts ...TokenType) bool {
	for _, tt := range tts {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) isAtEnd() bool { return p.check(EOF) }

// expectExpression builds the "Expect expression." error for the given token.
func expectExpression(t Token) error {
	if t.Type == EOF {
		return fmt.Errorf("[line %d] Error at end: Expect expression.", t.Line)
	}
	return fmt.Errorf("[line %d] Error at '%s': Expect expression.", t.Line, t.Lexeme)
}

// ─────────────────────────── declarations ───────────────────────────

func (p *Parser) parseDeclaration() (Statement, error) {
	if p.match(FUN) {
		return p.parseFunctionDeclaration("function")
	}
	return p.parseVariableDeclaration()
}

func (p *Parser) parseFunctionDeclaration(kind string) (Statement, error) {
	tok := p.consume()
	if tok.Type != ID {
		return nil, fmt.Errorf("[line %d] Expect %s name.", p.cur().Line, kind)
	}
	name := tok.Lexeme

	if !p.check(LPAREN) {
		return nil, fmt.Errorf("[line %d] Expect '(' after %s name.", p.cur().Line, kind)
	}
	p.advance()

	var params []string
	if !p.check(RPAREN) {
		for {
			if len(params) >= 255 {
				return nil, fmt.Errorf("[line %d] Can't have more than 255 parameters.", p.cur().Line)
			}
			tok := p.consume()
			if tok.Type != ID {
				return nil, fmt.Errorf("[line %d] Expect parameter name.", p.cur().Line)
			}
			params = append(params, tok.Lexeme)
			if !p.match(COMMA) {
				break
			}
		}
	}

	if !p.check(RPAREN) {
		return nil, fmt.Errorf("[line %d] Expect ')' after parameters.", p.cur().Line)
	}
	p.advance()

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &FunctionStmt{Name: name, Params: params, Body: body}, nil
}

func (p *Parser) parseVariableDeclaration() (Statement, error) {
	if !p.match(VAR) {
		return p.parseStatement()
	}

	tok := p.consume()
	if tok.Type != ID {
		return nil, fmt.Errorf("[line %d] Expect variable name.", tok.Line)
	}

	var init Expression
	if p.match(ASSIGN) {
		var err error
		init, err = p.ParseExpression()
		if err != nil {
			return nil, err
		}
	}

	if !p.check(SEMICOLON) {
		return nil, fmt.Errorf("[line %d] Expect ';' after value.", p.cur().Line)
	}
	p.advance()

	return &VarStmt{Name: tok.Lexeme, Init: init}, nil
}

// ─────────────────────────── statements ───────────────────────────

func (p *Parser) parseStatement() (Statement, error) {
	switch {
	case p.match(PRINT):
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if !p.check(SEMICOLON) {
			return nil, fmt.Errorf("[line %d] Expect ';' after expression.", p.cur().Line)
		}
		p.advance()
		return &PrintStmt{Expr: expr}, nil

	case p.match(RETURN):
		var expr Expression
		if !p.check(SEMICOLON) {
			var err error
			expr, err = p.ParseExpression()
			if err != nil {
				return nil, err
			}
		}
		if !p.check(SEMICOLON) {
			return nil, fmt.Errorf("[line %d] Expect ';' after return value.", p.cur().Line)
		}
		p.advance()
		return &ReturnStmt{Expr: expr}, nil

	case p.match(LBRACE):
		var statements []Statement
		for !p.check(RBRACE) && !p.isAtEnd() {
			st, err := p.parseDeclaration()
			if err != nil {
				return nil, err
			}
			statements = append(statements, st)
		}
		if !p.check(RBRACE) {
			return nil, fmt.Errorf("[line %d] Expect '}' after block.", p.cur().Line)
		}
		p.advance()
		return &BlockStmt{Statements: statements}, nil

	case p.match(IF):
		if !p.check(LPAREN) {
			return nil, fmt.Errorf("[line %d] Expect '(' after 'if'.", p.cur().Line)
		}
		p.advance()
		cond, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if !p.check(RPAREN) {
			return nil, fmt.Errorf("[line %d] Expect ')' after if condition.", p.cur().Line)
		}
		p.advance()
		then, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		var elseBody Statement
		if p.match(ELSE) {
			elseBody, err = p.parseStatement()
			if err != nil {
				return nil, err
			}
		}
		return &IfStmt{Cond: cond, Then: then, Else: elseBody}, nil

	case p.match(WHILE):
		if !p.check(LPAREN) {
			return nil, fmt.Errorf("[line %d] Expect '(' after 'while'.", p.cur().Line)
		}
		p.advance()
		cond, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if !p.check(RPAREN) {
			return nil, fmt.Errorf("[line %d] Expect ')' after condition.", p.cur().Line)
		}
		p.advance()
		body, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		return &WhileStmt{Cond: cond, Body: body}, nil

	case p.match(FOR):
		return p.parseFor()

	default:
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if !p.check(SEMICOLON) {
			return nil, fmt.Errorf("[line %d] Expect ';' after value.", p.cur().Line)
		}
		p.advance()
		return &ExpressionStmt{Expr: expr}, nil
	}
}

// parseFor keeps `for` as a first-class construct rather than desugaring it
// to `while`: the initializer and all iterations share one scope at runtime.
func (p *Parser) parseFor() (Statement, error) {
	if !p.check(LPAREN) {
		return nil, fmt.Errorf("[line %d] Expect '(' after 'for'.", p.cur().Line)
	}
	p.advance()

	var init Statement
	if !p.check(SEMICOLON) {
		var err error
		init, err = p.parseVariableDeclaration()
		if err != nil {
			return nil, err
		}
	} else {
		p.advance()
	}

	var cond Expression
	if !p.check(SEMICOLON) {
		var err error
		cond, err = p.ParseExpression()
		if err != nil {
			return nil, err
		}
	}
	if !p.check(SEMICOLON) {
		return nil, fmt.Errorf("[line %d] Expect ';' after for condition.", p.cur().Line)
	}
	p.advance()

	var incr Expression
	if !p.check(RPAREN) {
		var err error
		incr, err = p.ParseExpression()
		if err != nil {
			return nil, err
		}
	}
	if !p.check(RPAREN) {
		return nil, fmt.Errorf("[line %d] Expect ')' after for clauses.", p.cur().Line)
	}
	p.advance()

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ForStmt{Init: init, Cond: cond, Incr: incr, Body: body}, nil
}

// ─────────────────────────── expressions ───────────────────────────

func (p *Parser) parseAssignment() (Expression, error) {
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	for p.match(ASSIGN) {
		target, ok := expr.(*VariableExpr)
		if !ok {
			return nil, fmt.Errorf("Invalid assignment target.")
		}
		value, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		expr = &AssignExpr{Name: target.Name, Value: value}
	}

	return expr, nil
}

func (p *Parser) parseOr() (Expression, error) {
	expr, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.match(OR) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		expr = &OrExpr{Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseAnd() (Expression, error) {
	expr, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.match(AND) {
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		expr = &AndExpr{Left: expr, Right: right}
	}
	return expr, nil
}

// binaryOps maps the token that folded a binary level to its operator.
var binaryOps = map[TokenType]BinaryOp{
	EQ:         OpEqual,
	NEQ:        OpNotEqual,
	GREATER:    OpGreater,
	GREATER_EQ: OpGreaterEqual,
	LESS:       OpLess,
	LESS_EQ:    OpLessEqual,
	PLUS:       OpPlus,
	MINUS:      OpMinus,
	STAR:       OpMultiply,
	SLASH:      OpDivide,
}

// parseBinaryLevel folds one precedence level left-associatively.
func (p *Parser) parseBinaryLevel(next func() (Expression, error), tts ...TokenType) (Expression, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(tts...) {
		op := binaryOps[p.prev().Type]
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseEquality() (Expression, error) {
	return p.parseBinaryLevel(p.parseComparison, EQ, NEQ)
}

func (p *Parser) parseComparison() (Expression, error) {
	return p.parseBinaryLevel(p.parseTerm, GREATER, GREATER_EQ, LESS, LESS_EQ)
}

func (p *Parser) parseTerm() (Expression, error) {
	return p.parseBinaryLevel(p.parseFactor, PLUS, MINUS)
}

func (p *Parser) parseFactor() (Expression, error) {
	return p.parseBinaryLevel(p.parseUnary, STAR, SLASH)
}

func (p *Parser) parseUnary() (Expression, error) {
	if p.match(MINUS, BANG) {
		op := UnaryMinus
		if p.prev().Type == BANG {
			op = UnaryNot
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op, Operand: operand}, nil
	}
	return p.parseCall()
}

func (p *Parser) parseCall() (Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.match(LPAREN) {
		args, err := p.finishCall()
		if err != nil {
			return nil, err
		}
		expr = &CallExpr{Callee: expr, Arguments: args}
	}
	return expr, nil
}

func (p *Parser) finishCall() ([]Expression, error) {
	var arguments []Expression

	if !p.check(RPAREN) {
		for {
			if len(arguments) >= 255 {
				return nil, fmt.Errorf("[line %d] Can't have more than 255 arguments.", p.cur().Line)
			}
			arg, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			arguments = append(arguments, arg)
			if !p.match(COMMA) {
				break
			}
		}
	}

	if !p.match(RPAREN) {
		return nil, fmt.Errorf("[line %d] Expect ')' after arguments.", p.cur().Line)
	}
	return arguments, nil
}

func (p *Parser) parsePrimary() (Expression, error) {
	tok := p.consume()
	switch tok.Type {
	case TRUE:
		return &LiteralExpr{Value: BoolLit(true)}, nil
	case FALSE:
		return &LiteralExpr{Value: BoolLit(false)}, nil
	case NUMBER:
		return &LiteralExpr{Value: NumberLit(tok.Literal.(float64))}, nil
	case STRING:
		return &LiteralExpr{Value: StringLit(tok.Literal.(string))}, nil
	case NIL:
		return &LiteralExpr{Value: NoneLit()}, nil
	case ID:
		return &VariableExpr{Name: tok.Lexeme}, nil
	case LPAREN:
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if !p.check(RPAREN) {
			return nil, expectExpression(p.cur())
		}
		p.advance()
		return &GroupingExpr{Inner: expr}, nil
	default:
		return nil, expectExpression(tok)
	}
}
