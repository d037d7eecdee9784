package validator

import (
	"strings"

	"github.com/omt-lang/dsl-lint/internal/compiler/ast"
	"github.com/omt-lang/dsl-lint/internal/compiler/lexer"
)

// reservedExtra names reserved identifiers beyond the lexer keyword
// table and the action-keyword set. spec.md §9 Open Question (a) only
// names `chain` as an example and leaves the rest to the implementer.
// buildContext separately reserves the action-keyword texts, since they
// are ordinary identifiers at the lexer level (see lexer.ActionKeywords)
// and would otherwise be usable as declared names despite having
// grammar-level meaning inside an action block.
var reservedExtra = []string{"chain"}

// schemaContext is pre-populated from the root schema and its imports
// before per-actor and per-function checks run (spec.md §4.3).
type schemaContext struct {
	messageNames   map[string]bool
	blockNames     map[string]bool
	enumNames      map[string]bool
	functionNames  map[string]bool
	parameterNames map[string]bool
	actorNames     map[string]bool
	reservedWords  map[string]bool
}

func buildContext(schemas []*ast.Schema) *schemaContext {
	ctx := &schemaContext{
		messageNames:   map[string]bool{},
		blockNames:     map[string]bool{},
		enumNames:      map[string]bool{},
		functionNames:  map[string]bool{},
		parameterNames: map[string]bool{},
		actorNames:     map[string]bool{},
		reservedWords:  map[string]bool{},
	}

	for kw := range lexer.Keywords {
		ctx.reservedWords[kw] = true
	}
	for kw := range lexer.ActionKeywords {
		ctx.reservedWords[kw] = true
	}
	for _, kw := range reservedExtra {
		ctx.reservedWords[strings.ToLower(kw)] = true
	}

	for _, schema := range schemas {
		for _, m := range schema.Messages {
			ctx.messageNames[m.Name] = true
		}
		for _, b := range schema.Blocks {
			ctx.blockNames[b.Name] = true
		}
		for _, e := range schema.Enums {
			ctx.enumNames[e.Name] = true
		}
		for _, f := range schema.Functions {
			ctx.functionNames[f.Name] = true
		}
		for _, p := range schema.Parameters {
			ctx.parameterNames[p.Name] = true
		}
		for _, a := range schema.Actors {
			ctx.actorNames[a.Name] = true
		}
	}
	return ctx
}

func (c *schemaContext) isReserved(name string) bool {
	return c.reservedWords[strings.ToLower(name)]
}
