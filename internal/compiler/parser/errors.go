package parser

import (
	"fmt"

	"github.com/omt-lang/dsl-lint/internal/compiler/lexer"
)

// ParseError is the parser's single fatal error type. Every error
// carries the offending token, so it always has a line/column. Parsing
// performs no error recovery: the first ParseError aborts the parse.
type ParseError struct {
	Token   lexer.Token
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s (near %q)", e.Token.Line, e.Token.Column, e.Message, e.Token.Lexeme)
}

func newParseError(tok lexer.Token, format string, args ...interface{}) *ParseError {
	return &ParseError{Token: tok, Message: fmt.Sprintf(format, args...)}
}
