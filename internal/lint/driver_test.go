package lint

import (
	"testing"
	"time"

	"github.com/spf13/afero"
)

func writeFile(t *testing.T, fs afero.Fs, path, contents string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
}

const validSchema = `
transaction 1 "Escrow"

message DEPOSIT from Payer to [Escrow] signed (
	amount uint
)

actor Escrow (
	balance uint
	Idle initial
	Holding
	Done terminal

	Idle -> Holding on DEPOSIT (
		compute balance = balance + 1
	)
	Holding -> Done on RELEASE ()
)
message RELEASE from Escrow to [Payer] ()
`

func TestDriver_LintFile_ValidSchemaHasNoErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/protocol/root.omt", validSchema)

	report, err := New(fs, "/protocol", nil).LintFile("root.omt", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.HasErrors() {
		t.Errorf("expected no errors, got %+v", report.Result)
	}
}

func TestDriver_LintFile_ParseErrorIsReported(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/protocol/broken.omt", `message from ???`)

	report, err := New(fs, "/protocol", nil).LintFile("broken.omt", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.ParseError == "" {
		t.Fatal("expected a parse error to be reported")
	}
	if !report.HasErrors() {
		t.Error("expected HasErrors to be true for a parse error")
	}
}

func TestDriver_LintFile_ReportsResolverWarnings(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/protocol/root.omt", `
imports missing

message PING from A to [B] ()
`)

	report, err := New(fs, "/protocol", nil).LintFile("root.omt", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Warnings) != 1 {
		t.Fatalf("expected one missing-import warning, got %v", report.Warnings)
	}
}

func TestDriver_LintFile_FixAppliesObviousTypoCorrection(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := `
actor A (
	IDLE initial
	RUNNING
	DONE terminal

	IDEL -> RUNNING auto
)
`
	writeFile(t, fs, "/protocol/root.omt", src)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	report, err := New(fs, "/protocol", nil).LintFile("root.omt", Options{Fix: true, Now: now})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.FixesMade != 1 {
		t.Fatalf("expected exactly one fix to be applied, got %d", report.FixesMade)
	}
	if report.HasErrors() {
		t.Errorf("expected no errors after fixing the typo, got %+v", report.Result)
	}

	fixed, err := afero.ReadFile(fs, "/protocol/root.omt")
	if err != nil {
		t.Fatalf("reading fixed file: %v", err)
	}
	if !contains(string(fixed), "IDLE -> RUNNING auto") {
		t.Errorf("expected IDEL to be corrected to IDLE, got:\n%s", fixed)
	}
}

func TestDriver_LintFile_FixCreatesBackupTriplet(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := `
actor A (
	IDLE initial
	RUNNING
	DONE terminal

	IDEL -> RUNNING auto
)
`
	writeFile(t, fs, "/protocol/root.omt", src)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	_, err := New(fs, "/protocol", nil).LintFile("root.omt", Options{Fix: true, Now: now})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, suffix := range []string{".orig", ".bak", ".fixed-hash"} {
		path := "/protocol/.root.omt" + suffix
		exists, err := afero.Exists(fs, path)
		if err != nil {
			t.Fatalf("checking %s: %v", path, err)
		}
		if !exists {
			t.Errorf("expected %s to exist after a fix", path)
		}
	}

	orig, err := afero.ReadFile(fs, "/protocol/.root.omt.orig")
	if err != nil {
		t.Fatalf("reading .orig: %v", err)
	}
	if string(orig) != src {
		t.Errorf(".orig should hold the pre-fix content, got:\n%s", orig)
	}
}

func TestDriver_DiscoverAll_FindsTransactionFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/protocol/transactions/escrow/transaction.omt", validSchema)
	writeFile(t, fs, "/protocol/transactions/swap/transaction.omt", validSchema)
	writeFile(t, fs, "/protocol/notes.txt", "irrelevant")

	files, err := New(fs, "/protocol", nil).DiscoverAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 transaction files, got %v", files)
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (func() bool {
		for i := 0; i+len(substr) <= len(s); i++ {
			if s[i:i+len(substr)] == substr {
				return true
			}
		}
		return false
	})()
}
