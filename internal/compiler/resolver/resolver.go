// Package resolver resolves the `imports` declarations of a root .omt
// schema into the full set of schemas a lint run must validate
// together, per spec.md §4.4.
package resolver

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/omt-lang/dsl-lint/internal/compiler/ast"
	"github.com/omt-lang/dsl-lint/internal/compiler/lexer"
	"github.com/omt-lang/dsl-lint/internal/compiler/parser"
)

// Warning is a non-fatal resolution problem — currently just a missing
// import file — collected alongside the resolved schema set.
type Warning struct {
	Message string
	Path    string
}

// Result is the output of resolving one root schema's import closure.
type Result struct {
	// Schemas holds the root schema followed by every imported schema,
	// in the order each was first parsed (spec.md §4.4).
	Schemas  []*ast.Schema
	Warnings []Warning
	Graph    *ImportGraph
}

// Resolver walks `imports` declarations depth-first from a root schema,
// reading `.omt` files from fs rooted at protocolBase. It is grounded on
// the teacher's compiler-cache DependencyGraph (cache/dependencies.go):
// same visited-set cycle breaking and depth-first traversal, adapted
// here to resolve and parse files lazily instead of walking an
// already-built *ast.Program.
type Resolver struct {
	fs           afero.Fs
	protocolBase string
	graph        *ImportGraph
	visited      map[string]*ast.Schema
	order        []*ast.Schema
	warnings     []Warning
}

// New creates a Resolver that reads `.omt` files via fs, resolving
// import paths relative to protocolBase.
func New(fs afero.Fs, protocolBase string) *Resolver {
	return &Resolver{
		fs:           fs,
		protocolBase: protocolBase,
		graph:        NewImportGraph(),
		visited:      make(map[string]*ast.Schema),
	}
}

// Resolve parses rootPath and recursively resolves its imports, returning
// the full closure in first-parsed order.
func (r *Resolver) Resolve(rootPath string) (*Result, error) {
	rootAbs := r.absPath(rootPath)
	root, err := r.parseFile(rootAbs)
	if err != nil {
		return nil, err
	}
	if err := r.resolveImports(root, rootAbs); err != nil {
		return nil, err
	}
	return &Result{Schemas: r.order, Warnings: r.warnings, Graph: r.graph}, nil
}

func (r *Resolver) absPath(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(r.protocolBase, path))
}

func (r *Resolver) importPath(importDecl string) string {
	rel := strings.ReplaceAll(importDecl, "/", string(filepath.Separator)) + ".omt"
	return filepath.Clean(filepath.Join(r.protocolBase, rel))
}

func (r *Resolver) parseFile(absPath string) (*ast.Schema, error) {
	data, err := afero.ReadFile(r.fs, absPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", absPath, err)
	}

	tokens, lexErr := lexer.New(string(data)).ScanTokens()
	if lexErr != nil {
		return nil, fmt.Errorf("%s: %w", absPath, lexErr)
	}
	schema, parseErr := parser.New(tokens).ParseSchema()
	if parseErr != nil {
		return nil, fmt.Errorf("%s: %w", absPath, parseErr)
	}
	schema.SourcePath = absPath

	r.visited[absPath] = schema
	r.order = append(r.order, schema)
	return schema, nil
}

// resolveImports walks one schema's import declarations depth-first. A
// path already in r.visited is a no-op: the file was parsed once and is
// already in r.order, matching spec.md §4.4's "a second visit is a
// no-op" cycle-breaking rule.
func (r *Resolver) resolveImports(schema *ast.Schema, fromPath string) error {
	for _, imp := range schema.Imports {
		target := r.importPath(imp.Path)
		r.graph.AddEdge(fromPath, target)

		if _, seen := r.visited[target]; seen {
			continue
		}

		exists, err := afero.Exists(r.fs, target)
		if err != nil {
			return fmt.Errorf("checking %s: %w", target, err)
		}
		if !exists {
			r.warnings = append(r.warnings, Warning{
				Message: fmt.Sprintf("import %q not found: no such file %s", imp.Path, target),
				Path:    target,
			})
			continue
		}

		imported, err := r.parseFile(target)
		if err != nil {
			return err
		}
		if err := r.resolveImports(imported, target); err != nil {
			return err
		}
	}
	return nil
}
