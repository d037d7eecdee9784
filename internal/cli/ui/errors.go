package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ErrorLevel represents the severity of a rendered message.
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures the error message formatting.
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Consequence  string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatError creates a standardized error message with suggestions and help commands.
//
// Example output for Context "UNKNOWN STATE", Problem "Cannot find state
// 'IDEL'.", Suggestions ["IDLE"] and one help command:
//
//	❌ UNKNOWN STATE: Cannot find state 'IDEL'.
//	   Cannot find state 'IDEL'.
//
//	   Did you mean: IDLE?
//
//	   → Fix automatically: dsl-lint --fix path/to/transaction.omt
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	var headerColor, bodyColor *color.Color
	var symbol string

	switch opts.Level {
	case ErrorLevelError:
		headerColor = color.New(color.FgRed, color.Bold)
		bodyColor = color.New(color.FgRed)
		symbol = "❌"
	case ErrorLevelWarning:
		headerColor = color.New(color.FgYellow, color.Bold)
		bodyColor = color.New(color.FgYellow)
		symbol = "⚠️"
	case ErrorLevelInfo:
		headerColor = color.New(color.FgCyan, color.Bold)
		bodyColor = color.New(color.FgCyan)
		symbol = "ℹ️"
	}

	if opts.NoColor {
		headerColor.DisableColor()
		bodyColor.DisableColor()
	}

	if opts.Context != "" {
		headerColor.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(opts.Context), opts.Problem)
	} else {
		headerColor.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	if opts.Problem != "" && opts.Context != "" {
		bodyColor.Fprintf(&b, "   %s\n", opts.Problem)
	}

	if opts.Consequence != "" {
		b.WriteString("\n")
		bodyColor.Fprintf(&b, "   %s\n", opts.Consequence)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		yellow := color.New(color.FgYellow)
		if opts.NoColor {
			yellow.DisableColor()
		}
		yellow.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		cyan := color.New(color.FgCyan)
		if opts.NoColor {
			cyan.DisableColor()
		}
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteError writes a formatted error message to the writer.
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// FormatSuccess creates a success message.
func FormatSuccess(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer.
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// ParseErrorMessage formats a fatal lex/parse failure for a single file
// (spec.md §4.5 step 1: `"parse error: <msg>"` at its line).
func ParseErrorMessage(path string, message string, noColor bool) string {
	opts := ErrorOptions{
		Level:   ErrorLevelError,
		Context: "PARSE ERROR",
		Problem: fmt.Sprintf("%s: parse error: %s", path, message),
		NoColor: noColor,
	}
	return FormatError(opts)
}

// MissingImportWarning formats spec.md §4.4's missing-import case: a
// printed warning, resolution continuing with the remaining imports.
func MissingImportWarning(path string, importPath string, noColor bool) string {
	opts := ErrorOptions{
		Level:   ErrorLevelWarning,
		Context: "MISSING IMPORT",
		Problem: fmt.Sprintf("%s: import %q not found", path, importPath),
		NoColor: noColor,
	}
	return FormatError(opts)
}

// UsageError formats the CLI's no-arguments case (spec.md §6.2: "No
// arguments → print usage, exit 1").
func UsageError(usage string, noColor bool) string {
	opts := ErrorOptions{
		Level:   ErrorLevelError,
		Context: "USAGE",
		Problem: usage,
		HelpCommands: []string{
			"Get help: dsl-lint --help",
		},
		NoColor: noColor,
	}
	return FormatError(opts)
}
