package lexer

import "fmt"

// TokenKind identifies the lexical class of a Token.
type TokenKind int

const (
	// TOKEN_EOF marks the end of the token stream.
	TOKEN_EOF TokenKind = iota
	// TOKEN_ERROR represents a lexical error encountered during scanning.
	TOKEN_ERROR
	// TOKEN_COMMENT contains comment text, including the leading '#'.
	TOKEN_COMMENT
	// TOKEN_NEWLINE represents a statement-separating line break.
	TOKEN_NEWLINE

	// TOKEN_STRING is a double-quoted string literal.
	TOKEN_STRING
	// TOKEN_NUMBER is an integer or float literal.
	TOKEN_NUMBER
	// TOKEN_IDENTIFIER is any non-keyword name.
	TOKEN_IDENTIFIER

	// Declaration keywords

	TOKEN_TRANSACTION
	TOKEN_IMPORTS
	TOKEN_PARAMETERS
	TOKEN_ENUM
	TOKEN_MESSAGE
	TOKEN_BLOCK
	TOKEN_ACTOR
	TOKEN_FUNCTION
	TOKEN_NATIVE

	// Modifiers (spec.md §3's closed modifier set)

	TOKEN_FROM
	TOKEN_TO
	TOKEN_BY
	TOKEN_IN
	TOKEN_ON
	TOKEN_AUTO
	TOKEN_WHEN
	TOKEN_WITH
	TOKEN_SIGNED
	TOKEN_INITIAL
	TOKEN_TERMINAL
	TOKEN_RETURN
	TOKEN_ELSE

	// Control flow / types

	TOKEN_IF
	TOKEN_THEN
	TOKEN_FOR
	TOKEN_LIST
	TOKEN_MAP
	TOKEN_TIMEOUT

	// Logical keywords

	TOKEN_AND
	TOKEN_OR
	TOKEN_NOT

	// Literal keywords

	TOKEN_TRUE
	TOKEN_FALSE
	TOKEN_NULL

	// Two-character operators

	TOKEN_ARROW     // ->
	TOKEN_BACKARROW // <-
	TOKEN_EQ        // ==
	TOKEN_NEQ       // !=
	TOKEN_LE        // <=
	TOKEN_GE        // >=
	TOKEN_FAT_ARROW // =>
	TOKEN_SPREAD    // ...

	// Single-character operators and punctuation

	TOKEN_LT
	TOKEN_GT
	TOKEN_PLUS
	TOKEN_MINUS
	TOKEN_STAR
	TOKEN_SLASH
	TOKEN_ASSIGN
	TOKEN_COLON
	TOKEN_COMMA
	TOKEN_DOT

	// Brackets

	TOKEN_LPAREN
	TOKEN_RPAREN
	TOKEN_LBRACKET
	TOKEN_RBRACKET
	TOKEN_LBRACE
	TOKEN_RBRACE
)

// tokenKindNames provides human-readable names for diagnostics and tests.
var tokenKindNames = map[TokenKind]string{
	TOKEN_EOF:          "EOF",
	TOKEN_ERROR:        "ERROR",
	TOKEN_COMMENT:      "COMMENT",
	TOKEN_NEWLINE:      "NEWLINE",
	TOKEN_STRING:       "STRING",
	TOKEN_NUMBER:       "NUMBER",
	TOKEN_IDENTIFIER:   "IDENTIFIER",
	TOKEN_TRANSACTION:  "transaction",
	TOKEN_IMPORTS:      "imports",
	TOKEN_PARAMETERS:   "parameters",
	TOKEN_ENUM:         "enum",
	TOKEN_MESSAGE:      "message",
	TOKEN_BLOCK:        "block",
	TOKEN_ACTOR:        "actor",
	TOKEN_FUNCTION:     "function",
	TOKEN_NATIVE:       "native",
	TOKEN_FROM:         "from",
	TOKEN_TO:           "to",
	TOKEN_BY:           "by",
	TOKEN_IN:           "in",
	TOKEN_ON:           "on",
	TOKEN_AUTO:         "auto",
	TOKEN_WHEN:         "when",
	TOKEN_WITH:         "with",
	TOKEN_SIGNED:       "signed",
	TOKEN_INITIAL:      "initial",
	TOKEN_TERMINAL:     "terminal",
	TOKEN_RETURN:       "return",
	TOKEN_ELSE:         "else",
	TOKEN_IF:           "if",
	TOKEN_THEN:         "then",
	TOKEN_FOR:          "for",
	TOKEN_LIST:         "list",
	TOKEN_MAP:          "map",
	TOKEN_TIMEOUT:      "timeout",
	TOKEN_AND:          "and",
	TOKEN_OR:           "or",
	TOKEN_NOT:          "not",
	TOKEN_TRUE:         "true",
	TOKEN_FALSE:        "false",
	TOKEN_NULL:         "null",
	TOKEN_ARROW:        "ARROW",
	TOKEN_BACKARROW:    "BACKARROW",
	TOKEN_EQ:           "EQ",
	TOKEN_NEQ:          "NEQ",
	TOKEN_LE:           "LE",
	TOKEN_GE:           "GE",
	TOKEN_FAT_ARROW:    "FAT_ARROW",
	TOKEN_SPREAD:       "SPREAD",
	TOKEN_LT:           "LT",
	TOKEN_GT:           "GT",
	TOKEN_PLUS:         "PLUS",
	TOKEN_MINUS:        "MINUS",
	TOKEN_STAR:         "STAR",
	TOKEN_SLASH:        "SLASH",
	TOKEN_ASSIGN:       "ASSIGN",
	TOKEN_COLON:        "COLON",
	TOKEN_COMMA:        "COMMA",
	TOKEN_DOT:          "DOT",
	TOKEN_LPAREN:       "LPAREN",
	TOKEN_RPAREN:       "RPAREN",
	TOKEN_LBRACKET:     "LBRACKET",
	TOKEN_RBRACKET:     "RBRACKET",
	TOKEN_LBRACE:       "LBRACE",
	TOKEN_RBRACE:       "RBRACE",
}

// String returns the display name of a TokenKind.
func (t TokenKind) String() string {
	if name, ok := tokenKindNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// Token is a single lexical unit with its source position.
type Token struct {
	Kind    TokenKind   `json:"kind"`
	Lexeme  string      `json:"lexeme"`
	Literal interface{} `json:"literal,omitempty"`
	Line    int         `json:"line"`
	Column  int         `json:"column"`
}

// String renders a Token for debug output and test failure messages.
func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s %q (%v) at %d:%d", t.Kind, t.Lexeme, t.Literal, t.Line, t.Column)
	}
	return fmt.Sprintf("%s %q at %d:%d", t.Kind, t.Lexeme, t.Line, t.Column)
}

// Keywords maps lower-cased keyword text to its TokenKind. Lookup is
// always performed on the lower-cased identifier text; the lexeme itself
// preserves the source's original casing.
var Keywords = map[string]TokenKind{
	"transaction":  TOKEN_TRANSACTION,
	"imports":      TOKEN_IMPORTS,
	"parameters":   TOKEN_PARAMETERS,
	"enum":         TOKEN_ENUM,
	"message":      TOKEN_MESSAGE,
	"block":        TOKEN_BLOCK,
	"actor":        TOKEN_ACTOR,
	"function":     TOKEN_FUNCTION,
	"native":       TOKEN_NATIVE,
	"from":         TOKEN_FROM,
	"to":           TOKEN_TO,
	"by":           TOKEN_BY,
	"in":           TOKEN_IN,
	"on":           TOKEN_ON,
	"auto":         TOKEN_AUTO,
	"when":         TOKEN_WHEN,
	"with":         TOKEN_WITH,
	"signed":       TOKEN_SIGNED,
	"initial":      TOKEN_INITIAL,
	"terminal":     TOKEN_TERMINAL,
	"return":       TOKEN_RETURN,
	"else":         TOKEN_ELSE,
	"if":           TOKEN_IF,
	"then":         TOKEN_THEN,
	"for":          TOKEN_FOR,
	"list":         TOKEN_LIST,
	"map":          TOKEN_MAP,
	"timeout":      TOKEN_TIMEOUT,
	"and":          TOKEN_AND,
	"or":           TOKEN_OR,
	"not":          TOKEN_NOT,
	"true":         TOKEN_TRUE,
	"false":        TOKEN_FALSE,
	"null":         TOKEN_NULL,
}

// ActionKeywords is the set of lower-cased identifier texts that open an
// action block rather than a function-call expression or a compute
// shorthand, per spec.md §4.2.3. These are ordinary TOKEN_IDENTIFIER
// tokens at the lexer level; the parser recognizes them by text so that
// `SEND(...)` parses identically whether it appears as a transition
// action or as an expression inside a function body (where it is then
// rejected by the purity check).
var ActionKeywords = map[string]bool{
	"store":        true,
	"compute":      true,
	"lookup":       true,
	"send":         true,
	"broadcast":    true,
	"append":       true,
	"append_block": true,
}

// LexError is a fatal, located error raised by the lexer. Lexing is
// single-pass and non-recoverable: the first LexError aborts scanning.
type LexError struct {
	Message string
	Line    int
	Column  int
}

// Error implements the error interface.
func (e LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}
