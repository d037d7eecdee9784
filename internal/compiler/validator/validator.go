package validator

import (
	"strings"

	"github.com/omt-lang/dsl-lint/internal/compiler/ast"
)

// impureCalls is the validator's widened purity set (spec.md §4.3):
// STORE joins the parse-time set of {send, broadcast, append,
// append_block}. The check matches call names inside each function's
// own body; calls to other declared functions are not followed.
var impureCalls = map[string]bool{
	"send":         true,
	"broadcast":    true,
	"append":       true,
	"append_block": true,
	"store":        true,
}

// Validate runs every check of spec.md §4.3 over schemas[0] (the root
// schema) plus schemas[1:] (its resolved imports). It never mutates any
// schema and never panics; every check that can run, does.
func Validate(schemas []*ast.Schema) *Result {
	result := &Result{}
	if len(schemas) == 0 {
		return result
	}
	ctx := buildContext(schemas)

	for _, schema := range schemas {
		checkSchema(schema, ctx, result)
	}
	return result
}

// --- per-schema checks -------------------------------------------------------

func checkSchema(schema *ast.Schema, ctx *schemaContext, result *Result) {
	checkDuplicateNames(schema, result)
	checkReservedNames(schema, ctx, result)
	checkForbiddenObjectType(schema, result)

	for _, actor := range schema.Actors {
		checkActor(actor, ctx, result)
	}
	for _, fn := range schema.Functions {
		checkFunction(fn, result)
	}
}

func checkDuplicateNames(schema *ast.Schema, result *Result) {
	seen := map[string]map[string]bool{
		"enum": {}, "message": {}, "block": {}, "actor": {}, "function": {}, "parameter": {},
	}
	check := func(kind, name string, loc ast.SourceLocation) {
		if seen[kind][name] {
			result.addError(loc.Line, loc.Column, "duplicate %s name %q", kind, name)
			return
		}
		seen[kind][name] = true
	}
	for _, e := range schema.Enums {
		check("enum", e.Name, e.Loc)
	}
	for _, m := range schema.Messages {
		check("message", m.Name, m.Loc)
	}
	for _, b := range schema.Blocks {
		check("block", b.Name, b.Loc)
	}
	for _, a := range schema.Actors {
		check("actor", a.Name, a.Loc)
	}
	for _, f := range schema.Functions {
		check("function", f.Name, f.Loc)
	}
	for _, p := range schema.Parameters {
		check("parameter", p.Name, p.Loc)
	}
}

func checkReservedNames(schema *ast.Schema, ctx *schemaContext, result *Result) {
	reserve := func(kind, name string, loc ast.SourceLocation) {
		if ctx.isReserved(name) {
			result.addError(loc.Line, loc.Column, "%s name %q collides with a reserved identifier", kind, name)
		}
	}
	for _, e := range schema.Enums {
		reserve("enum", e.Name, e.Loc)
	}
	for _, m := range schema.Messages {
		reserve("message", m.Name, m.Loc)
		for _, f := range m.Fields {
			reserve("field", f.Name, f.Loc)
		}
	}
	for _, b := range schema.Blocks {
		reserve("block", b.Name, b.Loc)
		for _, f := range b.Fields {
			reserve("field", f.Name, f.Loc)
		}
	}
	for _, a := range schema.Actors {
		reserve("actor", a.Name, a.Loc)
		for _, f := range a.Store {
			reserve("field", f.Name, f.Loc)
		}
		for _, s := range a.States {
			reserve("state", s.Name, s.Loc)
		}
	}
	for _, f := range schema.Functions {
		reserve("function", f.Name, f.Loc)
		for _, p := range f.Params {
			reserve("field", p.Name, p.Loc)
		}
	}
	for _, p := range schema.Parameters {
		reserve("parameter", p.Name, p.Loc)
	}
}

func checkForbiddenObjectType(schema *ast.Schema, result *Result) {
	check := func(fields []*ast.Field) {
		for _, f := range fields {
			if typeContainsObject(f.Type) {
				result.addError(f.Loc.Line, f.Loc.Column, "field %q may not use the 'object' type", f.Name)
			}
		}
	}
	for _, m := range schema.Messages {
		check(m.Fields)
	}
	for _, b := range schema.Blocks {
		check(b.Fields)
	}
	for _, a := range schema.Actors {
		check(a.Store)
	}
}

func typeContainsObject(t ast.TypeExpr) bool {
	switch tt := t.(type) {
	case *ast.SimpleType:
		return strings.EqualFold(tt.Name, "object")
	case *ast.ListType:
		return typeContainsObject(tt.Element)
	case *ast.MapType:
		return typeContainsObject(tt.Key) || typeContainsObject(tt.Value)
	}
	return false
}

// --- per-actor checks --------------------------------------------------------

func checkActor(actor *ast.ActorDecl, ctx *schemaContext, result *Result) {
	stateNames := map[string]bool{}
	var initialState string
	initialCount := 0
	for _, s := range actor.States {
		if stateNames[s.Name] {
			result.addError(s.Loc.Line, s.Loc.Column, "duplicate state name %q in actor %q", s.Name, actor.Name)
		}
		stateNames[s.Name] = true
		if s.Initial {
			initialCount++
			initialState = s.Name
		}
	}

	switch {
	case initialCount == 0:
		result.addError(actor.Loc.Line, actor.Loc.Column, "actor %q has no initial state", actor.Name)
	case initialCount >= 2:
		result.addError(actor.Loc.Line, actor.Loc.Column, "actor %q has multiple initial states", actor.Name)
	}

	hasTerminal := false
	for _, s := range actor.States {
		if s.Terminal {
			hasTerminal = true
			break
		}
	}
	if !hasTerminal {
		result.addWarning(actor.Loc.Line, actor.Loc.Column, "actor %q has no terminal state", actor.Name)
	}

	triggerNames := map[string]bool{}
	for _, t := range actor.Triggers {
		triggerNames[t.Name] = true
	}

	stateNameList := sortedKeys(stateNames)
	for _, trans := range actor.Transitions {
		checkTransitionEndpoints(trans, stateNames, stateNameList, result)
		checkTrigger(trans.Trigger, ctx, triggerNames, result)
		checkActions(trans.Actions, ctx, result)
		if trans.OnGuardFail != nil {
			if !stateNames[trans.OnGuardFail.Target] {
				result.addError(trans.OnGuardFail.Loc.Line, trans.OnGuardFail.Loc.Column,
					"unknown state %q%s", trans.OnGuardFail.Target, suggestionSuffix(trans.OnGuardFail.Target, stateNameList))
			}
			checkActions(trans.OnGuardFail.Actions, ctx, result)
		}
	}

	if initialCount == 1 {
		checkReachability(actor, initialState, result)
	}
}

func checkTransitionEndpoints(trans *ast.Transition, stateNames map[string]bool, candidates []string, result *Result) {
	if !stateNames[trans.From] {
		result.addError(trans.Loc.Line, trans.Loc.Column, "unknown state %q%s", trans.From, suggestionSuffix(trans.From, candidates))
	}
	if !stateNames[trans.To] {
		result.addError(trans.Loc.Line, trans.Loc.Column, "unknown state %q%s", trans.To, suggestionSuffix(trans.To, candidates))
	}
}

func checkTrigger(trigger ast.TriggerExpr, ctx *schemaContext, triggerNames map[string]bool, result *Result) {
	switch t := trigger.(type) {
	case nil:
		// auto transition: nothing to resolve.
	case *ast.MessageTrigger:
		if !ctx.messageNames[t.Name] && !triggerNames[t.Name] {
			candidates := append(sortedKeys(ctx.messageNames), sortedKeys(triggerNames)...)
			result.addError(t.Loc.Line, t.Loc.Column, "unknown message or trigger %q%s", t.Name, suggestionSuffix(t.Name, candidates))
		}
	case *ast.NamedTrigger:
		if !triggerNames[t.Name] {
			result.addError(t.Loc.Line, t.Loc.Column, "unknown trigger %q%s", t.Name, suggestionSuffix(t.Name, sortedKeys(triggerNames)))
		}
	case *ast.TimeoutTrigger:
		if !ctx.parameterNames[t.ParamName] {
			result.addError(t.Loc.Line, t.Loc.Column, "unknown parameter %q%s", t.ParamName, suggestionSuffix(t.ParamName, sortedKeys(ctx.parameterNames)))
		}
	}
}

func checkActions(actions []ast.ActionNode, ctx *schemaContext, result *Result) {
	for _, action := range actions {
		switch a := action.(type) {
		case *ast.SendAction:
			if !ctx.messageNames[a.Message] {
				result.addError(a.Loc.Line, a.Loc.Column, "unknown message %q%s", a.Message, suggestionSuffix(a.Message, sortedKeys(ctx.messageNames)))
			}
		case *ast.BroadcastAction:
			if !ctx.messageNames[a.Message] {
				result.addError(a.Loc.Line, a.Loc.Column, "unknown message %q%s", a.Message, suggestionSuffix(a.Message, sortedKeys(ctx.messageNames)))
			}
		case *ast.AppendBlockAction:
			if !ctx.blockNames[a.BlockType] {
				result.addError(a.Loc.Line, a.Loc.Column, "unknown block %q%s", a.BlockType, suggestionSuffix(a.BlockType, sortedKeys(ctx.blockNames)))
			}
		}
	}
}

// checkReachability runs a BFS from the actor's unique initial state
// over (from -> to) transition edges; any other declared state not
// visited is a warning (spec.md §4.3, testable property 4 / S4).
func checkReachability(actor *ast.ActorDecl, initialState string, result *Result) {
	adjacency := map[string][]string{}
	for _, trans := range actor.Transitions {
		adjacency[trans.From] = append(adjacency[trans.From], trans.To)
	}

	visited := map[string]bool{initialState: true}
	queue := []string{initialState}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adjacency[cur] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	for _, s := range actor.States {
		if !visited[s.Name] {
			result.addWarning(s.Loc.Line, s.Loc.Column, "state %q is unreachable: no transition leads to it", s.Name)
		}
	}
}

// --- per-function checks -----------------------------------------------------

func checkFunction(fn *ast.FunctionDecl, result *Result) {
	if fn.IsNative {
		return
	}
	for _, stmt := range fn.Statements {
		checkStmtPurity(fn.Name, stmt, result)
	}
}

func checkStmtPurity(fnName string, stmt ast.FunctionStatement, result *Result) {
	switch s := stmt.(type) {
	case *ast.AssignmentStmt:
		checkExprPurity(fnName, s.Index, result)
		checkExprPurity(fnName, s.Expr, result)
	case *ast.ReturnStmt:
		checkExprPurity(fnName, s.Expr, result)
	case *ast.ForStmt:
		checkExprPurity(fnName, s.Iterable, result)
		checkStmtPurity(fnName, s.Body, result)
	case *ast.IfStmt:
		checkExprPurity(fnName, s.Cond, result)
		for _, inner := range s.Then {
			checkStmtPurity(fnName, inner, result)
		}
		for _, inner := range s.Else {
			checkStmtPurity(fnName, inner, result)
		}
	}
}

func checkExprPurity(fnName string, expr ast.ExprNode, result *Result) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.CallExpr:
		if impureCalls[strings.ToLower(e.Callee)] {
			result.addError(e.Loc.Line, e.Loc.Column,
				"function %q is impure: %q mutates state or sends messages at line %d", fnName, e.Callee, e.Loc.Line)
		}
		for _, arg := range e.Args {
			checkExprPurity(fnName, arg, result)
		}
	case *ast.BinaryExpr:
		checkExprPurity(fnName, e.Left, result)
		checkExprPurity(fnName, e.Right, result)
	case *ast.UnaryExpr:
		checkExprPurity(fnName, e.Operand, result)
	case *ast.FieldAccessExpr:
		checkExprPurity(fnName, e.Receiver, result)
	case *ast.DynamicFieldAccessExpr:
		checkExprPurity(fnName, e.Receiver, result)
		checkExprPurity(fnName, e.FieldExpr, result)
	case *ast.IndexExpr:
		checkExprPurity(fnName, e.Receiver, result)
		checkExprPurity(fnName, e.Index, result)
	case *ast.StructLiteral:
		for _, f := range e.Fields {
			checkExprPurity(fnName, f.Value, result)
			checkExprPurity(fnName, f.Spread, result)
		}
	case *ast.ListLiteral:
		for _, el := range e.Elements {
			checkExprPurity(fnName, el, result)
		}
	case *ast.IfExpr:
		checkExprPurity(fnName, e.Cond, result)
		checkExprPurity(fnName, e.Then, result)
		checkExprPurity(fnName, e.Else, result)
	case *ast.LambdaExpr:
		checkExprPurity(fnName, e.Body, result)
	}
}
