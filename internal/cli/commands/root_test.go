package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}
	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}

	expectedCommands := []string{"version", "completion"}
	for _, expected := range expectedCommands {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == expected {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected command %s to be registered", expected)
		}
	}

	for _, flag := range []string{"all", "fix", "interactive", "verbose", "json", "no-color", "protocol-root"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag to be registered", flag)
		}
	}
}

func TestNewVersionCommand(t *testing.T) {
	Version = "1.0.0-test"
	GitCommit = "abc123"
	BuildDate = "2026-01-01"
	GoVersion = "go1.23"

	cmd := NewVersionCommand()

	if cmd.Use != "version" {
		t.Errorf("expected Use to be 'version', got %s", cmd.Use)
	}
	if cmd.Run == nil {
		t.Fatal("version command Run function is nil")
	}
	cmd.Run(cmd, []string{})
}

func TestRootCommand_NoArgsPrintsUsageAndFails(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--no-color"})

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected an error when no files and no --all are given")
	}
	if errOut.Len() == 0 {
		t.Error("expected a usage message on stderr")
	}
}

func TestRootCommand_LintsValidFileWithNoErrors(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "transaction.omt")
	if err := os.WriteFile(path, []byte(`
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
`), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--no-color", path})

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v (stderr: %s)", err, errOut.String())
	}
}

func TestExecute(t *testing.T) {
	Version = "test"
	GitCommit = "test"
	BuildDate = "test"
	GoVersion = "test"

	cmd := NewRootCommand()
	if cmd == nil {
		t.Error("NewRootCommand returned nil")
	}
}
