package lexer

import "testing"

func scanSource(t *testing.T, source string) []Token {
	t.Helper()
	tokens, err := New(source).ScanTokens()
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	return tokens
}

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == TOKEN_EOF {
			continue
		}
		out = append(out, tok.Kind)
	}
	return out
}

func assertKinds(t *testing.T, got []TokenKind, want []TokenKind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d\nwant: %v\ngot:  %v", len(want), len(got), want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestLexer_Punctuation(t *testing.T) {
	tokens := scanSource(t, "(){}[],:")
	assertKinds(t, kinds(tokens), []TokenKind{
		TOKEN_LPAREN, TOKEN_RPAREN, TOKEN_LBRACE, TOKEN_RBRACE,
		TOKEN_LBRACKET, TOKEN_RBRACKET, TOKEN_COMMA, TOKEN_COLON,
	})
}

func TestLexer_TwoCharOperators(t *testing.T) {
	tokens := scanSource(t, "-> <- == != <= >= => ...")
	assertKinds(t, kinds(tokens), []TokenKind{
		TOKEN_ARROW, TOKEN_BACKARROW, TOKEN_EQ, TOKEN_NEQ,
		TOKEN_LE, TOKEN_GE, TOKEN_FAT_ARROW, TOKEN_SPREAD,
	})
}

func TestLexer_KeywordsAreCaseInsensitive(t *testing.T) {
	tokens := scanSource(t, "TRANSACTION Transaction transaction")
	for i, tok := range tokens {
		if tok.Kind == TOKEN_EOF {
			continue
		}
		if tok.Kind != TOKEN_TRANSACTION {
			t.Errorf("token %d: expected TOKEN_TRANSACTION, got %s", i, tok.Kind)
		}
	}
	if tokens[0].Lexeme != "TRANSACTION" {
		t.Errorf("expected lexeme to preserve original case, got %q", tokens[0].Lexeme)
	}
}

func TestLexer_ActionNamesAreIdentifiers(t *testing.T) {
	// store/compute/lookup/SEND/BROADCAST/APPEND/APPEND_BLOCK are
	// recognized by the parser from identifier text, not the lexer.
	tokens := scanSource(t, "store SEND broadcast")
	assertKinds(t, kinds(tokens), []TokenKind{TOKEN_IDENTIFIER, TOKEN_IDENTIFIER, TOKEN_IDENTIFIER})
}

func TestLexer_Identifiers(t *testing.T) {
	tokens := scanSource(t, "foo_bar Baz2 _leading")
	assertKinds(t, kinds(tokens), []TokenKind{TOKEN_IDENTIFIER, TOKEN_IDENTIFIER, TOKEN_IDENTIFIER})
}

func TestLexer_Numbers(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		isFloat bool
	}{
		{"integer", "42", false},
		{"negative integer", "-7", false},
		{"float", "3.14", true},
		{"negative float", "-0.5", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := scanSource(t, tt.source)
			if len(tokens) != 2 {
				t.Fatalf("expected number + eof, got %d tokens", len(tokens))
			}
			if tokens[0].Kind != TOKEN_NUMBER {
				t.Fatalf("expected TOKEN_NUMBER, got %s", tokens[0].Kind)
			}
			_, isFloat := tokens[0].Literal.(float64)
			if isFloat != tt.isFloat {
				t.Errorf("expected isFloat=%v, got literal %#v", tt.isFloat, tokens[0].Literal)
			}
		})
	}
}

func TestLexer_StringEscapes(t *testing.T) {
	tokens := scanSource(t, `"line1\nline2\ttab\"quote\\backslash"`)
	if tokens[0].Kind != TOKEN_STRING {
		t.Fatalf("expected TOKEN_STRING, got %s", tokens[0].Kind)
	}
	want := "line1\nline2\ttab\"quote\\backslash"
	if tokens[0].Literal != want {
		t.Errorf("expected %q, got %q", want, tokens[0].Literal)
	}
}

func TestLexer_UnterminatedStringIsFatal(t *testing.T) {
	_, err := New(`"unterminated`).ScanTokens()
	if err == nil {
		t.Fatal("expected a lex error for an unterminated string")
	}
}

func TestLexer_UnterminatedStringAcrossNewlineIsFatal(t *testing.T) {
	_, err := New("\"broken\nstring\"").ScanTokens()
	if err == nil {
		t.Fatal("expected a lex error for a string containing a raw newline")
	}
}

func TestLexer_CommentRunsToEndOfLine(t *testing.T) {
	tokens := scanSource(t, "IDENT # a trailing comment\nOTHER")
	assertKinds(t, kinds(tokens), []TokenKind{TOKEN_IDENTIFIER, TOKEN_COMMENT, TOKEN_NEWLINE, TOKEN_IDENTIFIER})
	if tokens[1].Lexeme[0] != '#' {
		t.Errorf("expected comment lexeme to retain leading '#', got %q", tokens[1].Lexeme)
	}
}

func TestLexer_UnexpectedCharacterIsFatal(t *testing.T) {
	_, err := New("@").ScanTokens()
	if err == nil {
		t.Fatal("expected a lex error for an unrecognized character")
	}
}

func TestLexer_LineColumnTracking(t *testing.T) {
	tokens := scanSource(t, "a\nb")
	// a, newline, b
	if tokens[0].Line != 1 || tokens[0].Column != 1 {
		t.Errorf("expected a at 1:1, got %d:%d", tokens[0].Line, tokens[0].Column)
	}
	if tokens[2].Line != 2 || tokens[2].Column != 1 {
		t.Errorf("expected b at 2:1, got %d:%d", tokens[2].Line, tokens[2].Column)
	}
}
