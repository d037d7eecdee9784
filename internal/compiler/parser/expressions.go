package parser

import (
	"strings"

	"github.com/omt-lang/dsl-lint/internal/compiler/ast"
	"github.com/omt-lang/dsl-lint/internal/compiler/lexer"
)

// --- transitions -----------------------------------------------------------

// parseTransitionFrom parses `IDENT -> IDENT (on trigger_spec | auto)
// (when expr)? ( action_block )? (else -> IDENT action_block?)?`. The
// from-state token has already been peeked but not consumed.
func (p *Parser) parseTransitionFrom(fromTok lexer.Token) *ast.Transition {
	p.advance() // consume the from-state identifier
	p.expect(lexer.TOKEN_ARROW, "expected '->' in transition")
	toTok := p.expect(lexer.TOKEN_IDENTIFIER, "expected destination state")

	t := &ast.Transition{Loc: ast.TokenLocation(fromTok), From: fromTok.Lexeme, To: toTok.Lexeme}

	switch {
	case p.check(lexer.TOKEN_AUTO):
		p.advance()
		t.Auto = true
	case p.check(lexer.TOKEN_ON):
		p.advance()
		t.Trigger = p.parseTriggerSpec()
	default:
		p.fail(p.peek(), "expected 'on <trigger>' or 'auto' in transition")
	}

	if p.check(lexer.TOKEN_WHEN) {
		p.advance()
		t.Guard = p.parseExpr()
	}

	if p.check(lexer.TOKEN_LPAREN) {
		t.Actions = p.parseActionBlock()
	}

	if p.check(lexer.TOKEN_ELSE) {
		elseTok := p.advance()
		p.expect(lexer.TOKEN_ARROW, "expected '->' after 'else'")
		targetTok := p.expect(lexer.TOKEN_IDENTIFIER, "expected fallback state after 'else ->'")
		fail := &ast.OnGuardFail{Loc: ast.TokenLocation(elseTok), Target: targetTok.Lexeme}
		if p.check(lexer.TOKEN_LPAREN) {
			fail.Actions = p.parseActionBlock()
		}
		t.OnGuardFail = fail
	}

	return t
}

// parseTriggerSpec parses `IDENT | 'timeout' ( IDENT )`. A trigger
// identifier that is fully upper-case names a message trigger;
// otherwise it names an actor-declared trigger.
func (p *Parser) parseTriggerSpec() ast.TriggerExpr {
	tok := p.peek()
	if tok.Kind == lexer.TOKEN_TIMEOUT {
		p.advance()
		p.openGroup(lexer.TOKEN_LPAREN, "expected '(' after 'timeout'")
		paramTok := p.expect(lexer.TOKEN_IDENTIFIER, "expected parameter name in timeout(...)")
		p.closeGroup(lexer.TOKEN_RPAREN, "expected ')' to close timeout(...)")
		return &ast.TimeoutTrigger{Loc: ast.TokenLocation(tok), ParamName: paramTok.Lexeme}
	}

	idTok := p.expect(lexer.TOKEN_IDENTIFIER, "expected a trigger name")
	if isFullyUpperCase(idTok.Lexeme) {
		return &ast.MessageTrigger{Loc: ast.TokenLocation(idTok), Name: idTok.Lexeme}
	}
	return &ast.NamedTrigger{Loc: ast.TokenLocation(idTok), Name: idTok.Lexeme}
}

// isFullyUpperCase reports whether s contains at least one cased letter
// and no lower-case letters.
func isFullyUpperCase(s string) bool {
	sawLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			sawLetter = true
		}
	}
	return sawLetter
}

// --- action blocks -----------------------------------------------------------

// parseActionBlock parses the parenthesized, zero-or-more sequence of
// actions attached to a transition or an else-clause.
func (p *Parser) parseActionBlock() []ast.ActionNode {
	p.openGroup(lexer.TOKEN_LPAREN, "expected '(' to open action block")
	var actions []ast.ActionNode
	for !p.check(lexer.TOKEN_RPAREN) && !p.isAtEnd() {
		actions = append(actions, p.parseAction())
	}
	p.closeGroup(lexer.TOKEN_RPAREN, "expected ')' to close action block")
	return actions
}

// parseAction parses a single action. The action keywords (store |
// compute | lookup | send | broadcast | append | append_block) are
// recognized by lower-cased identifier text, not by token kind — see
// lexer.ActionKeywords.
func (p *Parser) parseAction() ast.ActionNode {
	tok := p.peek()
	if tok.Kind != lexer.TOKEN_IDENTIFIER {
		p.fail(tok, "expected an action")
	}
	lowered := strings.ToLower(tok.Lexeme)

	switch lowered {
	case "store":
		return p.parseStoreAction(tok)
	case "compute":
		p.advance()
		name, expr := p.parseNamedAssignment()
		return &ast.ComputeAction{Loc: ast.TokenLocation(tok), Name: name, Expr: expr}
	case "lookup":
		p.advance()
		name, expr := p.parseNamedAssignment()
		return &ast.LookupAction{Loc: ast.TokenLocation(tok), Name: name, Expr: expr}
	case "send":
		p.advance()
		p.openGroup(lexer.TOKEN_LPAREN, "expected '(' after SEND")
		target := p.parseExpr()
		p.expect(lexer.TOKEN_COMMA, "expected ',' in SEND(target, message)")
		msgTok := p.expect(lexer.TOKEN_IDENTIFIER, "expected a message name in SEND(...)")
		p.closeGroup(lexer.TOKEN_RPAREN, "expected ')' to close SEND(...)")
		return &ast.SendAction{Loc: ast.TokenLocation(tok), Target: target, Message: msgTok.Lexeme}
	case "broadcast":
		p.advance()
		p.openGroup(lexer.TOKEN_LPAREN, "expected '(' after BROADCAST")
		msgTok := p.expect(lexer.TOKEN_IDENTIFIER, "expected a message name in BROADCAST(...)")
		p.expect(lexer.TOKEN_COMMA, "expected ',' in BROADCAST(message, targets)")
		targetsTok := p.expect(lexer.TOKEN_IDENTIFIER, "expected a target-list name in BROADCAST(...)")
		p.closeGroup(lexer.TOKEN_RPAREN, "expected ')' to close BROADCAST(...)")
		return &ast.BroadcastAction{Loc: ast.TokenLocation(tok), Message: msgTok.Lexeme, TargetList: targetsTok.Lexeme}
	case "append":
		p.advance()
		p.openGroup(lexer.TOKEN_LPAREN, "expected '(' after APPEND")
		listTok := p.expect(lexer.TOKEN_IDENTIFIER, "expected a list name in APPEND(...)")
		p.expect(lexer.TOKEN_COMMA, "expected ',' in APPEND(list, value)")
		value := p.parseExpr()
		p.closeGroup(lexer.TOKEN_RPAREN, "expected ')' to close APPEND(...)")
		return &ast.AppendAction{Loc: ast.TokenLocation(tok), List: listTok.Lexeme, Value: value}
	case "append_block":
		p.advance()
		typeTok := p.expect(lexer.TOKEN_IDENTIFIER, "expected a block type after APPEND_BLOCK")
		return &ast.AppendBlockAction{Loc: ast.TokenLocation(tok), BlockType: typeTok.Lexeme}
	default:
		// Bare assignment `ident = expr` is shorthand for a compute action.
		name, expr := p.parseNamedAssignment()
		return &ast.ComputeAction{Loc: ast.TokenLocation(tok), Name: name, Expr: expr}
	}
}

// parseStoreAction parses `store ident(, ident)*` (field list) or
// `STORE(ident, expr)` (single explicit assignment).
func (p *Parser) parseStoreAction(tok lexer.Token) *ast.StoreAction {
	p.advance() // 'store'/'STORE'
	action := &ast.StoreAction{Loc: ast.TokenLocation(tok)}

	if p.check(lexer.TOKEN_LPAREN) {
		p.openGroup(lexer.TOKEN_LPAREN, "expected '(' after STORE")
		nameTok := p.expect(lexer.TOKEN_IDENTIFIER, "expected a field name in STORE(...)")
		p.expect(lexer.TOKEN_COMMA, "expected ',' in STORE(name, expr)")
		expr := p.parseExpr()
		p.closeGroup(lexer.TOKEN_RPAREN, "expected ')' to close STORE(...)")
		action.Assignments = map[string]ast.ExprNode{nameTok.Lexeme: expr}
		action.AssignmentOrder = []string{nameTok.Lexeme}
		return action
	}

	action.Fields = append(action.Fields, p.expect(lexer.TOKEN_IDENTIFIER, "expected a field name after 'store'").Lexeme)
	for p.check(lexer.TOKEN_COMMA) {
		p.advance()
		action.Fields = append(action.Fields, p.expect(lexer.TOKEN_IDENTIFIER, "expected a field name").Lexeme)
	}
	return action
}

// parseNamedAssignment parses the common `ident = expr` tail shared by
// compute, lookup, and bare assignment actions.
func (p *Parser) parseNamedAssignment() (string, ast.ExprNode) {
	nameTok := p.expect(lexer.TOKEN_IDENTIFIER, "expected a name")
	p.expect(lexer.TOKEN_ASSIGN, "expected '=' in assignment")
	return nameTok.Lexeme, p.parseExpr()
}

// --- functions ---------------------------------------------------------------

func (p *Parser) parseFunction(isNative bool) *ast.FunctionDecl {
	start := p.peek()
	nameTok := p.expect(lexer.TOKEN_IDENTIFIER, "expected function name")
	decl := &ast.FunctionDecl{Loc: ast.TokenLocation(start), Name: nameTok.Lexeme, IsNative: isNative}

	p.openGroup(lexer.TOKEN_LPAREN, "expected '(' after function name")
	if !p.check(lexer.TOKEN_RPAREN) {
		decl.Params = append(decl.Params, p.parseField())
		for p.check(lexer.TOKEN_COMMA) {
			p.advance()
			decl.Params = append(decl.Params, p.parseField())
		}
	}
	p.closeGroup(lexer.TOKEN_RPAREN, "expected ')' to close function parameters")

	p.expect(lexer.TOKEN_ARROW, "expected '->' before return type")
	decl.ReturnType = p.parseType()

	if isNative {
		libTok := p.expect(lexer.TOKEN_STRING, "expected a library path string for a native function")
		decl.LibraryPath = asString(libTok)
		return decl
	}

	p.openGroup(lexer.TOKEN_LPAREN, "expected '(' to open function body")
	for !p.check(lexer.TOKEN_RPAREN) && !p.isAtEnd() {
		decl.Statements = append(decl.Statements, p.parseStatement())
	}
	p.closeGroup(lexer.TOKEN_RPAREN, "expected ')' to close function body")

	checkPurity(decl, p)
	return decl
}

// parseStatement parses one function-body statement: `return expr`,
// `if expr then stmts (else stmts)?`, `for ident in expr : stmt`, or
// `ident = expr`.
func (p *Parser) parseStatement() ast.FunctionStatement {
	tok := p.peek()
	switch tok.Kind {
	case lexer.TOKEN_RETURN:
		p.advance()
		return &ast.ReturnStmt{Loc: ast.TokenLocation(tok), Expr: p.parseExpr()}
	case lexer.TOKEN_IF:
		return p.parseIfStmt(tok)
	case lexer.TOKEN_FOR:
		return p.parseForStmt(tok)
	case lexer.TOKEN_IDENTIFIER:
		nameTok := p.advance()
		var index ast.ExprNode
		if p.check(lexer.TOKEN_LBRACKET) {
			p.openGroup(lexer.TOKEN_LBRACKET, "expected '['")
			index = p.parseExpr()
			p.closeGroup(lexer.TOKEN_RBRACKET, "expected ']'")
		}
		p.expect(lexer.TOKEN_ASSIGN, "expected '=' in assignment statement")
		return &ast.AssignmentStmt{Loc: ast.TokenLocation(nameTok), Name: nameTok.Lexeme, Index: index, Expr: p.parseExpr()}
	default:
		p.fail(tok, "expected 'return', 'if', 'for', or an assignment statement")
		return nil
	}
}

func (p *Parser) parseIfStmt(ifTok lexer.Token) *ast.IfStmt {
	p.advance() // 'if'
	cond := p.parseExpr()
	p.expect(lexer.TOKEN_THEN, "expected 'then' after if-condition")

	stmt := &ast.IfStmt{Loc: ast.TokenLocation(ifTok), Cond: cond}
	stmt.Then = append(stmt.Then, p.parseStatement())
	if p.check(lexer.TOKEN_ELSE) {
		p.advance()
		stmt.Else = append(stmt.Else, p.parseStatement())
	}
	return stmt
}

func (p *Parser) parseForStmt(forTok lexer.Token) *ast.ForStmt {
	p.advance() // 'for'
	varTok := p.expect(lexer.TOKEN_IDENTIFIER, "expected loop variable name")
	p.expect(lexer.TOKEN_IN, "expected 'in' after loop variable")
	iterable := p.parseExpr()
	p.expect(lexer.TOKEN_COLON, "expected ':' before for-body")
	body := p.parseStatement()
	return &ast.ForStmt{Loc: ast.TokenLocation(forTok), Var: varTok.Lexeme, Iterable: iterable, Body: body}
}

// --- expressions (Pratt / precedence-climbing, low to high) ------------------
//
// or < and < not (unary) < comparison (non-assoc) < additive (left) <
// multiplicative (left) < unary '-' < postfix chain < primary.

func (p *Parser) parseExpr() ast.ExprNode {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.ExprNode {
	left := p.parseAnd()
	for p.check(lexer.TOKEN_OR) {
		tok := p.advance()
		right := p.parseAnd()
		left = &ast.BinaryExpr{Loc: ast.TokenLocation(tok), Op: ast.OpOr, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.ExprNode {
	left := p.parseNot()
	for p.check(lexer.TOKEN_AND) {
		tok := p.advance()
		right := p.parseNot()
		left = &ast.BinaryExpr{Loc: ast.TokenLocation(tok), Op: ast.OpAnd, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseNot() ast.ExprNode {
	if p.check(lexer.TOKEN_NOT) {
		tok := p.advance()
		return &ast.UnaryExpr{Loc: ast.TokenLocation(tok), Op: ast.OpNot, Operand: p.parseNot()}
	}
	return p.parseComparison()
}

var comparisonOps = map[lexer.TokenKind]ast.BinaryOp{
	lexer.TOKEN_EQ:  ast.OpEq,
	lexer.TOKEN_NEQ: ast.OpNeq,
	lexer.TOKEN_LT:  ast.OpLt,
	lexer.TOKEN_GT:  ast.OpGt,
	lexer.TOKEN_LE:  ast.OpLe,
	lexer.TOKEN_GE:  ast.OpGe,
}

// parseComparison is non-associative: at most one comparison operator
// may appear at this level.
func (p *Parser) parseComparison() ast.ExprNode {
	left := p.parseAdditive()
	if op, ok := comparisonOps[p.peek().Kind]; ok {
		tok := p.advance()
		right := p.parseAdditive()
		return &ast.BinaryExpr{Loc: ast.TokenLocation(tok), Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.ExprNode {
	left := p.parseMultiplicative()
	for p.check(lexer.TOKEN_PLUS) || p.check(lexer.TOKEN_MINUS) {
		tok := p.advance()
		op := ast.OpAdd
		if tok.Kind == lexer.TOKEN_MINUS {
			op = ast.OpSub
		}
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Loc: ast.TokenLocation(tok), Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.ExprNode {
	left := p.parseUnaryMinus()
	for p.check(lexer.TOKEN_STAR) || p.check(lexer.TOKEN_SLASH) {
		tok := p.advance()
		op := ast.OpMul
		if tok.Kind == lexer.TOKEN_SLASH {
			op = ast.OpDiv
		}
		right := p.parseUnaryMinus()
		left = &ast.BinaryExpr{Loc: ast.TokenLocation(tok), Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnaryMinus() ast.ExprNode {
	if p.check(lexer.TOKEN_MINUS) {
		tok := p.advance()
		return &ast.UnaryExpr{Loc: ast.TokenLocation(tok), Op: ast.OpNeg, Operand: p.parseUnaryMinus()}
	}
	return p.parsePostfix()
}

// parsePostfix handles the call/field-access/index chain that follows a
// primary expression.
func (p *Parser) parsePostfix() ast.ExprNode {
	expr := p.parsePrimary()

	for {
		switch {
		case p.check(lexer.TOKEN_LPAREN):
			// A '(' whose first content is an action keyword opens an
			// action block, not a call argument list.
			if after := p.peekAhead(1); after.Kind == lexer.TOKEN_IDENTIFIER && lexer.ActionKeywords[strings.ToLower(after.Lexeme)] {
				return expr
			}
			ident, ok := expr.(*ast.Identifier)
			if !ok {
				p.fail(p.peek(), "only a bare name may be called")
			}
			p.openGroup(lexer.TOKEN_LPAREN, "expected '(' to open call arguments")
			var args []ast.ExprNode
			if !p.check(lexer.TOKEN_RPAREN) {
				args = append(args, p.parseExpr())
				for p.check(lexer.TOKEN_COMMA) {
					p.advance()
					args = append(args, p.parseExpr())
				}
			}
			p.closeGroup(lexer.TOKEN_RPAREN, "expected ')' to close call arguments")
			expr = &ast.CallExpr{Loc: expr.Location(), Callee: ident.Name, Args: args}
		case p.check(lexer.TOKEN_DOT):
			dotTok := p.advance()
			if p.check(lexer.TOKEN_LBRACE) {
				p.openGroup(lexer.TOKEN_LBRACE, "expected '{' after '.'")
				fieldExpr := p.parseExpr()
				p.closeGroup(lexer.TOKEN_RBRACE, "expected '}' to close dynamic field access")
				expr = &ast.DynamicFieldAccessExpr{Loc: ast.TokenLocation(dotTok), Receiver: expr, FieldExpr: fieldExpr}
			} else {
				fieldTok := p.expect(lexer.TOKEN_IDENTIFIER, "expected a field name after '.'")
				expr = &ast.FieldAccessExpr{Loc: ast.TokenLocation(dotTok), Receiver: expr, Field: fieldTok.Lexeme}
			}
		case p.check(lexer.TOKEN_LBRACKET):
			bracketTok := p.openGroup(lexer.TOKEN_LBRACKET, "expected '['")
			index := p.parseExpr()
			p.closeGroup(lexer.TOKEN_RBRACKET, "expected ']' to close index")
			expr = &ast.IndexExpr{Loc: ast.TokenLocation(bracketTok), Receiver: expr, Index: index}
		default:
			return expr
		}
	}
}

// parsePrimary parses a primary expression: literal, identifier
// (possibly a lambda), parenthesized/paren-struct expression, brace
// struct literal, list literal, or an if-then-else expression.
func (p *Parser) parsePrimary() ast.ExprNode {
	tok := p.peek()

	switch tok.Kind {
	case lexer.TOKEN_NUMBER:
		p.advance()
		if f, ok := tok.Literal.(float64); ok {
			return &ast.NumberLiteral{Loc: ast.TokenLocation(tok), IsFloat: true, Float: f}
		}
		return &ast.NumberLiteral{Loc: ast.TokenLocation(tok), Int: tok.Literal.(int64)}
	case lexer.TOKEN_STRING:
		p.advance()
		return &ast.StringLiteral{Loc: ast.TokenLocation(tok), Value: asString(tok)}
	case lexer.TOKEN_TRUE:
		p.advance()
		return &ast.BoolLiteral{Loc: ast.TokenLocation(tok), Value: true}
	case lexer.TOKEN_FALSE:
		p.advance()
		return &ast.BoolLiteral{Loc: ast.TokenLocation(tok), Value: false}
	case lexer.TOKEN_NULL:
		p.advance()
		return &ast.NullLiteral{Loc: ast.TokenLocation(tok)}
	case lexer.TOKEN_IF:
		return p.parseIfExpr(tok)
	case lexer.TOKEN_IDENTIFIER:
		p.advance()
		if p.check(lexer.TOKEN_FAT_ARROW) {
			p.advance()
			return &ast.LambdaExpr{Loc: ast.TokenLocation(tok), Param: tok.Lexeme, Body: p.parseExpr()}
		}
		return &ast.Identifier{Loc: ast.TokenLocation(tok), Name: tok.Lexeme}
	case lexer.TOKEN_LBRACE:
		return p.parseStructLiteral(tok)
	case lexer.TOKEN_LBRACKET:
		return p.parseListLiteral(tok)
	case lexer.TOKEN_LPAREN:
		return p.parseParenExprOrStruct(tok)
	default:
		p.fail(tok, "expected an expression")
		return nil
	}
}

func (p *Parser) parseIfExpr(ifTok lexer.Token) ast.ExprNode {
	p.advance() // 'if'
	cond := p.parseExpr()
	p.expect(lexer.TOKEN_THEN, "expected 'then' in if-expression")
	thenExpr := p.parseExpr()
	p.expect(lexer.TOKEN_ELSE, "expected 'else' in if-expression")
	elseExpr := p.parseExpr()
	return &ast.IfExpr{Loc: ast.TokenLocation(ifTok), Cond: cond, Then: thenExpr, Else: elseExpr}
}

// parseParenExprOrStruct disambiguates `( field = expr, ... )` (a
// paren-struct literal) from `( expr )` (a grouped expression) by
// looking two tokens past the '(': IDENT then '=' (not '==') means a
// paren-struct.
func (p *Parser) parseParenExprOrStruct(openTok lexer.Token) ast.ExprNode {
	afterParen := p.peekAhead(1)
	afterThat := p.peekAhead(2)
	if afterParen.Kind == lexer.TOKEN_IDENTIFIER && afterThat.Kind == lexer.TOKEN_ASSIGN {
		return p.parseParenStruct(openTok)
	}

	p.openGroup(lexer.TOKEN_LPAREN, "expected '('")
	expr := p.parseExpr()
	p.closeGroup(lexer.TOKEN_RPAREN, "expected ')' to close grouped expression")
	return expr
}

func (p *Parser) parseParenStruct(openTok lexer.Token) *ast.StructLiteral {
	p.openGroup(lexer.TOKEN_LPAREN, "expected '('")
	lit := &ast.StructLiteral{Loc: ast.TokenLocation(openTok), Paren: true}
	for !p.check(lexer.TOKEN_RPAREN) && !p.isAtEnd() {
		nameTok := p.expect(lexer.TOKEN_IDENTIFIER, "expected a field name")
		p.expect(lexer.TOKEN_ASSIGN, "expected '=' after field name")
		value := p.parseExpr()
		lit.Fields = append(lit.Fields, ast.StructField{Name: nameTok.Lexeme, Value: value})
		if p.check(lexer.TOKEN_COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.closeGroup(lexer.TOKEN_RPAREN, "expected ')' to close struct literal")
	return lit
}

// parseStructLiteral parses `{ field: expr | field | ...expr, ... }`.
func (p *Parser) parseStructLiteral(openTok lexer.Token) *ast.StructLiteral {
	p.openGroup(lexer.TOKEN_LBRACE, "expected '{'")
	lit := &ast.StructLiteral{Loc: ast.TokenLocation(openTok)}
	for !p.check(lexer.TOKEN_RBRACE) && !p.isAtEnd() {
		if p.check(lexer.TOKEN_SPREAD) {
			p.advance()
			lit.Fields = append(lit.Fields, ast.StructField{Spread: p.parseExpr()})
		} else {
			nameTok := p.expect(lexer.TOKEN_IDENTIFIER, "expected a field name")
			if p.check(lexer.TOKEN_COLON) {
				p.advance()
				value := p.parseExpr()
				lit.Fields = append(lit.Fields, ast.StructField{Name: nameTok.Lexeme, Value: value})
			} else {
				lit.Fields = append(lit.Fields, ast.StructField{Name: nameTok.Lexeme, Shorthand: true})
			}
		}
		if p.check(lexer.TOKEN_COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.closeGroup(lexer.TOKEN_RBRACE, "expected '}' to close struct literal")
	return lit
}

func (p *Parser) parseListLiteral(openTok lexer.Token) *ast.ListLiteral {
	p.openGroup(lexer.TOKEN_LBRACKET, "expected '['")
	lit := &ast.ListLiteral{Loc: ast.TokenLocation(openTok)}
	if !p.check(lexer.TOKEN_RBRACKET) {
		lit.Elements = append(lit.Elements, p.parseExpr())
		for p.check(lexer.TOKEN_COMMA) {
			p.advance()
			lit.Elements = append(lit.Elements, p.parseExpr())
		}
	}
	p.closeGroup(lexer.TOKEN_RBRACKET, "expected ']' to close list literal")
	return lit
}
