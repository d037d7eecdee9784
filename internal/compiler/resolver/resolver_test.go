package resolver

import (
	"testing"

	"github.com/spf13/afero"
)

func writeFile(t *testing.T, fs afero.Fs, path, contents string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
}

func TestResolver_ResolvesDirectImport(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/protocol/root.omt", `
imports shared

message PING from A to [B] ()
`)
	writeFile(t, fs, "/protocol/shared.omt", `message SharedMsg from A to [B] ()`)

	result, err := New(fs, "/protocol").Resolve("root.omt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Schemas) != 2 {
		t.Fatalf("expected 2 resolved schemas, got %d", len(result.Schemas))
	}
	if len(result.Schemas[0].Messages) != 1 || result.Schemas[0].Messages[0].Name != "PING" {
		t.Errorf("expected root schema first in resolution order, got %+v", result.Schemas[0])
	}
	if len(result.Schemas[1].Messages) != 1 || result.Schemas[1].Messages[0].Name != "SharedMsg" {
		t.Errorf("expected imported schema second in resolution order, got %+v", result.Schemas[1])
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}
}

func TestResolver_MissingImportEmitsWarningAndContinues(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/protocol/root.omt", `
imports missing

message PING from A to [B] ()
`)

	result, err := New(fs, "/protocol").Resolve("root.omt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Schemas) != 1 {
		t.Fatalf("expected only the root schema resolved, got %d", len(result.Schemas))
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected one missing-import warning, got %v", result.Warnings)
	}
	if result.Warnings[0].Path == "" {
		t.Errorf("expected the warning to carry the unresolved path")
	}
}

// A imports B, B imports A: the cycle must not recurse forever, and each
// file is parsed exactly once.
func TestResolver_BreaksImportCycles(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/protocol/a.omt", `
imports b

message FromA from X to [Y] ()
`)
	writeFile(t, fs, "/protocol/b.omt", `
imports a

message FromB from X to [Y] ()
`)

	result, err := New(fs, "/protocol").Resolve("a.omt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Schemas) != 2 {
		t.Fatalf("expected exactly 2 schemas despite the cycle, got %d", len(result.Schemas))
	}
	if result.Schemas[0].Messages[0].Name != "FromA" {
		t.Errorf("expected a.omt first in resolution order, got %+v", result.Schemas[0])
	}
	if result.Schemas[1].Messages[0].Name != "FromB" {
		t.Errorf("expected b.omt second in resolution order, got %+v", result.Schemas[1])
	}
}

func TestResolver_TransitiveImportsResolveDepthFirst(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/protocol/root.omt", `
imports mid

message Root from X to [Y] ()
`)
	writeFile(t, fs, "/protocol/mid.omt", `
imports leaf

message Mid from X to [Y] ()
`)
	writeFile(t, fs, "/protocol/leaf.omt", `message Leaf from X to [Y] ()`)

	result, err := New(fs, "/protocol").Resolve("root.omt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Schemas) != 3 {
		t.Fatalf("expected 3 resolved schemas, got %d", len(result.Schemas))
	}
	names := []string{
		result.Schemas[0].Messages[0].Name,
		result.Schemas[1].Messages[0].Name,
		result.Schemas[2].Messages[0].Name,
	}
	want := []string{"Root", "Mid", "Leaf"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("resolution order[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestResolver_ImportGraphTracksEdges(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/protocol/root.omt", `
imports shared

message Root from X to [Y] ()
`)
	writeFile(t, fs, "/protocol/shared.omt", `message Shared from X to [Y] ()`)

	result, err := New(fs, "/protocol").Resolve("root.omt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rootPath := result.Schemas[0].SourcePath
	sharedPath := result.Schemas[1].SourcePath

	imports := result.Graph.Imports(rootPath)
	if len(imports) != 1 || imports[0] != sharedPath {
		t.Errorf("expected root to import shared, got %v", imports)
	}
	importedBy := result.Graph.ImportedBy(sharedPath)
	if len(importedBy) != 1 || importedBy[0] != rootPath {
		t.Errorf("expected shared to be imported by root, got %v", importedBy)
	}
}

func TestResolver_UnparsableImportSurfacesAsError(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/protocol/root.omt", `
imports broken

message Root from X to [Y] ()
`)
	writeFile(t, fs, "/protocol/broken.omt", `message from ???`)

	_, err := New(fs, "/protocol").Resolve("root.omt")
	if err == nil {
		t.Fatal("expected a parse error from the broken import to surface")
	}
}
