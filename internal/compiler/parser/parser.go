// Package parser implements a hand-written recursive-descent parser that
// turns a lexer.Token stream into an ast.Schema. There is no error
// recovery: the first ParseError aborts parsing (spec'd behavior — the
// PEG alternative this grammar was designed against is equivalent but
// not implemented here).
package parser

import (
	"strings"

	"github.com/omt-lang/dsl-lint/internal/compiler/ast"
	"github.com/omt-lang/dsl-lint/internal/compiler/lexer"
)

// Parser transforms a token stream into a Schema.
type Parser struct {
	tokens     []lexer.Token
	current    int
	groupDepth int
}

// New creates a Parser for the given token stream, as produced by
// lexer.Lexer.ScanTokens.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseSchema parses the full token stream into a Schema. It returns
// the first ParseError encountered, if any; there is no partial result
// on error.
func (p *Parser) ParseSchema() (schema *ast.Schema, err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*ParseError); ok {
				schema, err = nil, pe
				return
			}
			panic(r)
		}
	}()

	schema = &ast.Schema{}
	p.skipTopLevelSeparators()
	for !p.isAtEnd() {
		p.parseDeclaration(schema)
		p.skipTopLevelSeparators()
	}
	return schema, nil
}

// parseDeclaration dispatches on the declaration keyword at the top level.
func (p *Parser) parseDeclaration(schema *ast.Schema) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.TOKEN_TRANSACTION:
		schema.Transaction = p.parseTransaction()
	case lexer.TOKEN_IMPORTS:
		schema.Imports = append(schema.Imports, p.parseImports()...)
	case lexer.TOKEN_PARAMETERS:
		schema.Parameters = append(schema.Parameters, p.parseParameters()...)
	case lexer.TOKEN_ENUM:
		schema.Enums = append(schema.Enums, p.parseEnum())
	case lexer.TOKEN_MESSAGE:
		schema.Messages = append(schema.Messages, p.parseMessage())
	case lexer.TOKEN_BLOCK:
		schema.Blocks = append(schema.Blocks, p.parseBlockDecl())
	case lexer.TOKEN_ACTOR:
		schema.Actors = append(schema.Actors, p.parseActor())
	case lexer.TOKEN_FUNCTION:
		p.advance()
		schema.Functions = append(schema.Functions, p.parseFunction(false))
	case lexer.TOKEN_NATIVE:
		p.advance()
		p.expect(lexer.TOKEN_FUNCTION, "expected 'function' after 'native'")
		schema.Functions = append(schema.Functions, p.parseFunction(true))
	default:
		p.fail(tok, "expected a top-level declaration, got %s", tok.Kind)
	}
}

// --- transaction -------------------------------------------------------

func (p *Parser) parseTransaction() *ast.TransactionDecl {
	start := p.advance() // 'transaction'
	idTok := p.advance()
	if idTok.Kind != lexer.TOKEN_IDENTIFIER && idTok.Kind != lexer.TOKEN_NUMBER {
		p.fail(idTok, "expected transaction id")
	}
	nameTok := p.expect(lexer.TOKEN_STRING, "expected transaction name string")

	decl := &ast.TransactionDecl{
		Loc:  ast.TokenLocation(start),
		ID:   idTok.Lexeme,
		Name: asString(nameTok),
	}
	if p.check(lexer.TOKEN_STRING) {
		decl.Description = asString(p.advance())
	}
	return decl
}

// --- imports -------------------------------------------------------------

func (p *Parser) parseImports() []*ast.ImportDecl {
	start := p.advance() // 'imports'
	var imports []*ast.ImportDecl

	parseOne := func() *ast.ImportDecl {
		var parts []string
		first := p.expect(lexer.TOKEN_IDENTIFIER, "expected import path segment")
		parts = append(parts, first.Lexeme)
		for p.check(lexer.TOKEN_SLASH) {
			p.advance()
			seg := p.expect(lexer.TOKEN_IDENTIFIER, "expected import path segment")
			parts = append(parts, seg.Lexeme)
		}
		return &ast.ImportDecl{Loc: ast.TokenLocation(first), Path: strings.Join(parts, "/")}
	}

	imports = append(imports, parseOne())
	for p.check(lexer.TOKEN_COMMA) {
		p.advance()
		imports = append(imports, parseOne())
	}
	_ = start
	return imports
}

// --- parameters ------------------------------------------------------------

func (p *Parser) parseParameters() []*ast.ParameterDecl {
	p.advance() // 'parameters'
	p.openGroup(lexer.TOKEN_LPAREN, "expected '(' after 'parameters'")
	var params []*ast.ParameterDecl
	for !p.check(lexer.TOKEN_RPAREN) && !p.isAtEnd() {
		nameTok := p.expect(lexer.TOKEN_IDENTIFIER, "expected parameter name")
		p.expect(lexer.TOKEN_ASSIGN, "expected '=' after parameter name")

		decl := &ast.ParameterDecl{Loc: ast.TokenLocation(nameTok), Name: nameTok.Lexeme}
		valTok := p.advance()
		switch v := valTok.Literal.(type) {
		case int64:
			decl.ValueKind = ast.ParamInt
			decl.IntValue = v
		case float64:
			decl.ValueKind = ast.ParamFloat
			decl.FloatValue = v
		default:
			if valTok.Kind != lexer.TOKEN_IDENTIFIER {
				p.fail(valTok, "expected number or identifier as parameter value")
			}
			decl.ValueKind = ast.ParamString
			decl.StringValue = valTok.Lexeme
		}

		// An identifier followed by '=' is the next parameter, not a unit.
		if p.check(lexer.TOKEN_IDENTIFIER) && p.peekAhead(1).Kind != lexer.TOKEN_ASSIGN {
			decl.Unit = p.advance().Lexeme
		}
		if p.check(lexer.TOKEN_STRING) {
			decl.Description = asString(p.advance())
		}
		params = append(params, decl)
	}
	p.closeGroup(lexer.TOKEN_RPAREN, "expected ')' to close parameters block")
	return params
}

// --- enum ------------------------------------------------------------------

func (p *Parser) parseEnum() *ast.EnumDecl {
	start := p.advance() // 'enum'
	nameTok := p.expect(lexer.TOKEN_IDENTIFIER, "expected enum name")
	decl := &ast.EnumDecl{Loc: ast.TokenLocation(start), Name: nameTok.Lexeme}
	if p.check(lexer.TOKEN_STRING) {
		decl.Description = asString(p.advance())
	}

	p.openGroup(lexer.TOKEN_LPAREN, "expected '(' after enum name")
	for !p.check(lexer.TOKEN_RPAREN) && !p.isAtEnd() {
		valTok := p.expect(lexer.TOKEN_IDENTIFIER, "expected enum value name")
		value := &ast.EnumValue{Loc: ast.TokenLocation(valTok), Name: valTok.Lexeme}
		// A trailing comment is attached to this value; it must be read
		// from the raw stream before the next peek()/advance() silently
		// discards it as trivia.
		if p.current < len(p.tokens) && p.tokens[p.current].Kind == lexer.TOKEN_COMMENT {
			value.Comment = p.tokens[p.current].Lexeme
			p.current++
		}
		decl.Values = append(decl.Values, value)
	}
	p.closeGroup(lexer.TOKEN_RPAREN, "expected ')' to close enum body")
	return decl
}

// --- message / block -------------------------------------------------------

func (p *Parser) parseMessage() *ast.MessageDecl {
	start := p.advance() // 'message'
	nameTok := p.expect(lexer.TOKEN_IDENTIFIER, "expected message name")
	decl := &ast.MessageDecl{Loc: ast.TokenLocation(start), Name: nameTok.Lexeme}

	p.expect(lexer.TOKEN_FROM, "expected 'from' in message declaration")
	senderTok := p.expect(lexer.TOKEN_IDENTIFIER, "expected sender id")
	decl.Sender = senderTok.Lexeme

	p.expect(lexer.TOKEN_TO, "expected 'to' in message declaration")
	decl.Recipients = p.parseIdentList()

	if p.check(lexer.TOKEN_SIGNED) {
		p.advance()
		decl.Signed = true
	}

	decl.Fields = p.parseFieldBlock()
	return decl
}

func (p *Parser) parseBlockDecl() *ast.BlockDecl {
	start := p.advance() // 'block'
	nameTok := p.expect(lexer.TOKEN_IDENTIFIER, "expected block name")
	decl := &ast.BlockDecl{Loc: ast.TokenLocation(start), Name: nameTok.Lexeme}

	p.expect(lexer.TOKEN_BY, "expected 'by' in block declaration")
	decl.AppendedBy = p.parseIdentList()

	decl.Fields = p.parseFieldBlock()
	return decl
}

// parseIdentList parses `[ ID (, ID)* ]`.
func (p *Parser) parseIdentList() []string {
	p.openGroup(lexer.TOKEN_LBRACKET, "expected '['")
	var idents []string
	idents = append(idents, p.expect(lexer.TOKEN_IDENTIFIER, "expected identifier").Lexeme)
	for p.check(lexer.TOKEN_COMMA) {
		p.advance()
		idents = append(idents, p.expect(lexer.TOKEN_IDENTIFIER, "expected identifier").Lexeme)
	}
	p.closeGroup(lexer.TOKEN_RBRACKET, "expected ']'")
	return idents
}

// parseFieldBlock parses `( (field)* )`.
func (p *Parser) parseFieldBlock() []*ast.Field {
	p.openGroup(lexer.TOKEN_LPAREN, "expected '(' to open field block")
	var fields []*ast.Field
	for !p.check(lexer.TOKEN_RPAREN) && !p.isAtEnd() {
		fields = append(fields, p.parseField())
	}
	p.closeGroup(lexer.TOKEN_RPAREN, "expected ')' to close field block")
	return fields
}

func (p *Parser) parseField() *ast.Field {
	nameTok := p.expect(lexer.TOKEN_IDENTIFIER, "expected field name")
	typ := p.parseType()
	return &ast.Field{Loc: ast.TokenLocation(nameTok), Name: nameTok.Lexeme, Type: typ}
}

// parseType parses `ident | 'list' < type > | 'map' < type , type >`.
func (p *Parser) parseType() ast.TypeExpr {
	tok := p.peek()
	switch tok.Kind {
	case lexer.TOKEN_LIST:
		p.advance()
		p.expect(lexer.TOKEN_LT, "expected '<' after 'list'")
		elem := p.parseType()
		p.expect(lexer.TOKEN_GT, "expected '>' to close list type")
		return &ast.ListType{Loc: ast.TokenLocation(tok), Element: elem}
	case lexer.TOKEN_MAP:
		p.advance()
		p.expect(lexer.TOKEN_LT, "expected '<' after 'map'")
		key := p.parseType()
		p.expect(lexer.TOKEN_COMMA, "expected ',' between map key and value types")
		val := p.parseType()
		p.expect(lexer.TOKEN_GT, "expected '>' to close map type")
		return &ast.MapType{Loc: ast.TokenLocation(tok), Key: key, Value: val}
	case lexer.TOKEN_IDENTIFIER:
		p.advance()
		return &ast.SimpleType{Loc: ast.TokenLocation(tok), Name: tok.Lexeme}
	default:
		p.fail(tok, "expected a type name, 'list', or 'map'")
		return nil
	}
}

// --- actor -------------------------------------------------------------

func (p *Parser) parseActor() *ast.ActorDecl {
	start := p.advance() // 'actor'
	nameTok := p.expect(lexer.TOKEN_IDENTIFIER, "expected actor name")
	decl := &ast.ActorDecl{Loc: ast.TokenLocation(start), Name: nameTok.Lexeme}
	if p.check(lexer.TOKEN_STRING) {
		decl.Description = asString(p.advance())
	}

	p.openGroup(lexer.TOKEN_LPAREN, "expected '(' to open actor body")
	for !p.check(lexer.TOKEN_RPAREN) && !p.isAtEnd() {
		tok := p.peek()
		if tok.Kind != lexer.TOKEN_IDENTIFIER {
			p.fail(tok, "expected a store field, trigger, state, or transition in actor body")
		}
		next := p.peekAhead(1)
		switch {
		case next.Kind == lexer.TOKEN_ARROW:
			decl.Transitions = append(decl.Transitions, p.parseTransitionFrom(tok))
		case next.Kind == lexer.TOKEN_LPAREN:
			decl.Triggers = append(decl.Triggers, p.parseTriggerDecl())
		// A store field's type sits on its name's line; a name alone on
		// its line is a bare state.
		case (next.Kind == lexer.TOKEN_IDENTIFIER || next.Kind == lexer.TOKEN_LIST || next.Kind == lexer.TOKEN_MAP) && next.Line == tok.Line:
			decl.Store = append(decl.Store, p.parseField())
		default:
			decl.States = append(decl.States, p.parseStateDecl())
		}
	}
	p.closeGroup(lexer.TOKEN_RPAREN, "expected ')' to close actor body")
	return decl
}

func (p *Parser) parseTriggerDecl() *ast.TriggerDecl {
	nameTok := p.advance()
	decl := &ast.TriggerDecl{Loc: ast.TokenLocation(nameTok), Name: nameTok.Lexeme}

	p.openGroup(lexer.TOKEN_LPAREN, "expected '(' after trigger name")
	if !p.check(lexer.TOKEN_RPAREN) {
		decl.Params = append(decl.Params, p.parseField())
		for p.check(lexer.TOKEN_COMMA) {
			p.advance()
			decl.Params = append(decl.Params, p.parseField())
		}
	}
	p.closeGroup(lexer.TOKEN_RPAREN, "expected ')' to close trigger params")

	p.expect(lexer.TOKEN_IN, "expected 'in' after trigger params")
	decl.AllowedIn = p.parseIdentList()

	if p.check(lexer.TOKEN_STRING) {
		decl.Description = asString(p.advance())
	}
	return decl
}

func (p *Parser) parseStateDecl() *ast.StateDecl {
	nameTok := p.advance()
	decl := &ast.StateDecl{Loc: ast.TokenLocation(nameTok), Name: nameTok.Lexeme}
	for {
		if p.check(lexer.TOKEN_INITIAL) {
			p.advance()
			decl.Initial = true
			continue
		}
		if p.check(lexer.TOKEN_TERMINAL) {
			p.advance()
			decl.Terminal = true
			continue
		}
		break
	}
	if p.check(lexer.TOKEN_STRING) {
		decl.Description = asString(p.advance())
	}
	return decl
}

// --- token stream helpers ---------------------------------------------

// skipTrivia advances past COMMENT tokens unconditionally and NEWLINE
// tokens only while inside an open grouping, where the grammar allows
// multi-line expressions (spec.md §4.2.1/§4.2.3).
func (p *Parser) skipTrivia() {
	for p.current < len(p.tokens) {
		k := p.tokens[p.current].Kind
		if k == lexer.TOKEN_COMMENT || (k == lexer.TOKEN_NEWLINE && p.groupDepth > 0) {
			p.current++
			continue
		}
		break
	}
}

// skipTopLevelSeparators consumes the run of newline/comment tokens
// that separate top-level declarations.
func (p *Parser) skipTopLevelSeparators() {
	for p.current < len(p.tokens) {
		k := p.tokens[p.current].Kind
		if k == lexer.TOKEN_NEWLINE || k == lexer.TOKEN_COMMENT {
			p.current++
			continue
		}
		break
	}
}

func (p *Parser) isAtEnd() bool {
	p.skipTrivia()
	return p.current >= len(p.tokens) || p.tokens[p.current].Kind == lexer.TOKEN_EOF
}

// peek returns the next significant token without consuming it.
func (p *Parser) peek() lexer.Token {
	p.skipTrivia()
	if p.current >= len(p.tokens) {
		return lexer.Token{Kind: lexer.TOKEN_EOF}
	}
	return p.tokens[p.current]
}

// peekAhead returns the n-th significant token after the cursor
// (n=0 is equivalent to peek()), skipping trivia between each.
func (p *Parser) peekAhead(n int) lexer.Token {
	save := p.current
	saveDepth := p.groupDepth
	defer func() { p.current = save; p.groupDepth = saveDepth }()

	var tok lexer.Token
	for i := 0; i <= n; i++ {
		tok = p.peek()
		if tok.Kind == lexer.TOKEN_EOF {
			return tok
		}
		p.current++
	}
	return tok
}

// advance consumes and returns the next significant token.
func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if p.current < len(p.tokens) {
		p.current++
	}
	return tok
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return p.peek().Kind == kind
}

// expect consumes a token of the given kind or raises a ParseError.
func (p *Parser) expect(kind lexer.TokenKind, message string) lexer.Token {
	tok := p.peek()
	if tok.Kind != kind {
		p.fail(tok, "%s (got %s)", message, tok.Kind)
	}
	return p.advance()
}

// openGroup consumes an opening bracket and increments the grouping
// depth so that newlines become insignificant inside it.
func (p *Parser) openGroup(kind lexer.TokenKind, message string) lexer.Token {
	tok := p.expect(kind, message)
	p.groupDepth++
	return tok
}

// closeGroup consumes a closing bracket and decrements the grouping depth.
func (p *Parser) closeGroup(kind lexer.TokenKind, message string) lexer.Token {
	tok := p.expect(kind, message)
	if p.groupDepth > 0 {
		p.groupDepth--
	}
	return tok
}

// fail raises the parser's single fatal error via panic, unwound by
// ParseSchema's recover. There is no error recovery or synchronization.
func (p *Parser) fail(tok lexer.Token, format string, args ...interface{}) {
	panic(newParseError(tok, format, args...))
}

// asString extracts a string literal's decoded value.
func asString(tok lexer.Token) string {
	if s, ok := tok.Literal.(string); ok {
		return s
	}
	return tok.Lexeme
}
