package parser

import (
	"strings"

	"github.com/omt-lang/dsl-lint/internal/compiler/ast"
	"github.com/omt-lang/dsl-lint/internal/compiler/lexer"
)

// impureCalls is the parse-time purity set (spec.md §4.2.4). It is
// narrower than the validator's widened set (§4.3, which additionally
// rejects STORE): parse-time enforcement is belt-and-suspenders, the
// validator is the source of truth.
var impureCalls = map[string]bool{
	"send":         true,
	"broadcast":    true,
	"append":       true,
	"append_block": true,
}

// checkPurity walks a just-closed function body and fails with a
// located error if it contains a call to one of impureCalls.
func checkPurity(fn *ast.FunctionDecl, p *Parser) {
	if fn.IsNative {
		return
	}
	for _, stmt := range fn.Statements {
		checkStmtPurity(stmt, p)
	}
}

func checkStmtPurity(stmt ast.FunctionStatement, p *Parser) {
	switch s := stmt.(type) {
	case *ast.AssignmentStmt:
		checkExprPurity(s.Index, p)
		checkExprPurity(s.Expr, p)
	case *ast.ReturnStmt:
		checkExprPurity(s.Expr, p)
	case *ast.ForStmt:
		checkExprPurity(s.Iterable, p)
		checkStmtPurity(s.Body, p)
	case *ast.IfStmt:
		checkExprPurity(s.Cond, p)
		for _, inner := range s.Then {
			checkStmtPurity(inner, p)
		}
		for _, inner := range s.Else {
			checkStmtPurity(inner, p)
		}
	}
}

func checkExprPurity(expr ast.ExprNode, p *Parser) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.CallExpr:
		if impureCalls[strings.ToLower(e.Callee)] {
			p.failAt(e.Location(), "function call to %q is impure: it mutates state or sends messages", e.Callee)
		}
		for _, arg := range e.Args {
			checkExprPurity(arg, p)
		}
	case *ast.BinaryExpr:
		checkExprPurity(e.Left, p)
		checkExprPurity(e.Right, p)
	case *ast.UnaryExpr:
		checkExprPurity(e.Operand, p)
	case *ast.FieldAccessExpr:
		checkExprPurity(e.Receiver, p)
	case *ast.DynamicFieldAccessExpr:
		checkExprPurity(e.Receiver, p)
		checkExprPurity(e.FieldExpr, p)
	case *ast.IndexExpr:
		checkExprPurity(e.Receiver, p)
		checkExprPurity(e.Index, p)
	case *ast.StructLiteral:
		for _, f := range e.Fields {
			checkExprPurity(f.Value, p)
			checkExprPurity(f.Spread, p)
		}
	case *ast.ListLiteral:
		for _, el := range e.Elements {
			checkExprPurity(el, p)
		}
	case *ast.IfExpr:
		checkExprPurity(e.Cond, p)
		checkExprPurity(e.Then, p)
		checkExprPurity(e.Else, p)
	case *ast.LambdaExpr:
		checkExprPurity(e.Body, p)
	}
}

// failAt raises a ParseError located at an AST node's source location
// rather than at a specific token.
func (p *Parser) failAt(loc ast.SourceLocation, format string, args ...interface{}) {
	p.fail(lexer.Token{Line: loc.Line, Column: loc.Column}, format, args...)
}
