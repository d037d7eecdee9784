package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestFormatError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		opts     ErrorOptions
		contains []string
	}{
		{
			name: "basic error",
			opts: ErrorOptions{
				Level:   ErrorLevelError,
				Context: "UNKNOWN STATE",
				Problem: "Cannot find state 'IDEL'.",
			},
			contains: []string{
				"❌",
				"UNKNOWN STATE",
				"Cannot find state 'IDEL'.",
			},
		},
		{
			name: "error with suggestions",
			opts: ErrorOptions{
				Level:       ErrorLevelError,
				Context:     "UNKNOWN STATE",
				Problem:     "Cannot find state 'IDEL'.",
				Suggestions: []string{"IDLE"},
			},
			contains: []string{
				"Did you mean: IDLE?",
			},
		},
		{
			name: "error with help commands",
			opts: ErrorOptions{
				Level:   ErrorLevelError,
				Context: "PARSE ERROR",
				Problem: "unexpected token",
				HelpCommands: []string{
					"Fix automatically: dsl-lint --fix transaction.omt",
				},
			},
			contains: []string{
				"→ Fix automatically: dsl-lint --fix transaction.omt",
			},
		},
		{
			name: "warning message",
			opts: ErrorOptions{
				Level:   ErrorLevelWarning,
				Problem: "import not found",
			},
			contains: []string{
				"⚠️",
				"import not found",
			},
		},
		{
			name: "info message",
			opts: ErrorOptions{
				Level:   ErrorLevelInfo,
				Problem: "linting finished",
			},
			contains: []string{
				"ℹ️",
				"linting finished",
			},
		},
		{
			name: "error with consequence",
			opts: ErrorOptions{
				Level:       ErrorLevelError,
				Context:     "PARSE ERROR",
				Problem:     "malformed actor body",
				Consequence: "remaining declarations in this file were not checked",
			},
			contains: []string{
				"malformed actor body",
				"remaining declarations in this file were not checked",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatError(tt.opts)

			for _, expected := range tt.contains {
				if !strings.Contains(result, expected) {
					t.Errorf("FormatError() output missing expected string:\nExpected to contain: %q\nGot: %q", expected, result)
				}
			}
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := ParseErrorMessage("transactions/escrow/transaction.omt", "unexpected token RPAREN", true)

	for _, exp := range []string{"PARSE ERROR", "transactions/escrow/transaction.omt", "unexpected token RPAREN"} {
		if !strings.Contains(result, exp) {
			t.Errorf("ParseErrorMessage() missing expected string: %q", exp)
		}
	}
}

func TestMissingImportWarning(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := MissingImportWarning("root.omt", "shared/types", true)

	for _, exp := range []string{"MISSING IMPORT", "root.omt", `"shared/types"`} {
		if !strings.Contains(result, exp) {
			t.Errorf("MissingImportWarning() missing expected string: %q", exp)
		}
	}
}

func TestUsageError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := UsageError("usage: dsl-lint [--all | FILE ...] [--fix]", true)

	for _, exp := range []string{"USAGE", "usage: dsl-lint", "dsl-lint --help"} {
		if !strings.Contains(result, exp) {
			t.Errorf("UsageError() missing expected string: %q", exp)
		}
	}
}

func TestWriteError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	opts := ErrorOptions{
		Level:   ErrorLevelError,
		Context: "TEST ERROR",
		Problem: "This is a test",
	}

	WriteError(&buf, opts)

	output := buf.String()
	if !strings.Contains(output, "TEST ERROR") {
		t.Errorf("WriteError() did not write to buffer correctly")
	}
}

func TestFormatSuccess(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := FormatSuccess("No errors found", true)

	if !strings.Contains(result, "✓") {
		t.Errorf("FormatSuccess() missing checkmark")
	}
	if !strings.Contains(result, "No errors found") {
		t.Errorf("FormatSuccess() missing message")
	}
}

func TestWriteSuccess(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	WriteSuccess(&buf, "Test success", true)

	output := buf.String()
	if !strings.Contains(output, "✓") {
		t.Errorf("WriteSuccess() missing checkmark")
	}
	if !strings.Contains(output, "Test success") {
		t.Errorf("WriteSuccess() missing message")
	}
}
