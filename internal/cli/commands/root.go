package commands

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/omt-lang/dsl-lint/internal/cli/config"
	"github.com/omt-lang/dsl-lint/internal/cli/ui"
	"github.com/omt-lang/dsl-lint/internal/lint"
)

// Version information - set at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

type rootFlags struct {
	all          bool
	fix          bool
	interactive  bool
	verbose      bool
	json         bool
	noColor      bool
	protocolRoot string
}

// NewRootCommand builds the `dsl-lint` command tree (spec.md §6.2).
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "dsl-lint [--all | FILE ...] [--fix]",
		Short: "Lint and auto-fix distributed transaction protocol files",
		Long: color.CyanString(`dsl-lint - transaction protocol DSL linter

Parses, resolves imports for, and validates .omt transaction protocol
files, optionally auto-fixing obvious typos in place with session-aware
backups.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags)
		},
	}

	rootCmd.Flags().BoolVar(&flags.all, "all", false, "discover and process every transactions/*/transaction.omt under the protocol root")
	rootCmd.Flags().BoolVar(&flags.fix, "fix", false, "apply obvious fixes in place, with backups")
	rootCmd.Flags().BoolVar(&flags.interactive, "interactive", false, "confirm each fix before applying it")
	rootCmd.Flags().BoolVar(&flags.verbose, "verbose", false, "emit structured debug logging")
	rootCmd.Flags().BoolVar(&flags.json, "json", false, "print the validation result as JSON instead of text")
	rootCmd.Flags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	rootCmd.Flags().StringVar(&flags.protocolRoot, "protocol-root", "", "protocol root directory (overrides config/env)")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

func runLint(cmd *cobra.Command, args []string, flags *rootFlags) error {
	cfg, err := config.Load(flags.protocolRoot)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	var logger *zap.Logger
	if flags.verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
	} else {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	fs := afero.NewOsFs()
	driver := lint.New(fs, cfg.ProtocolRoot, logger)

	var files []string
	if flags.all {
		files, err = driver.DiscoverAll()
		if err != nil {
			return fmt.Errorf("discovering transaction files: %w", err)
		}
	} else if len(args) == 0 {
		fmt.Fprint(cmd.ErrOrStderr(), ui.UsageError("usage: dsl-lint [--all | FILE ...] [--fix]", flags.noColor))
		return errExitNonZero
	} else {
		files = args
	}

	totalErrors, totalWarnings := 0, 0
	for _, f := range files {
		report, err := driver.LintFile(f, lint.Options{Fix: flags.fix && confirmFix(flags)})
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			totalErrors++
			continue
		}

		if report.ParseError != "" {
			totalErrors++
			if flags.json {
				printJSONReport(cmd, report)
				continue
			}
			fmt.Fprint(cmd.OutOrStdout(), ui.ParseErrorMessage(report.Path, report.ParseError, flags.noColor))
			continue
		}

		if flags.json {
			printJSONReport(cmd, report)
		} else {
			for _, w := range report.Warnings {
				fmt.Fprint(cmd.OutOrStdout(), ui.MissingImportWarning(report.Path, w.Path, flags.noColor))
			}
			if report.Result != nil {
				for _, d := range report.Result.Errors {
					fmt.Fprintf(cmd.OutOrStdout(), "%s:%d: error: %s\n", report.Path, d.Line, d.Message)
				}
				for _, d := range report.Result.Warnings {
					fmt.Fprintf(cmd.OutOrStdout(), "%s:%d: warning: %s\n", report.Path, d.Line, d.Message)
				}
			}
		}

		totalWarnings += len(report.Warnings)
		if report.Result != nil {
			totalErrors += len(report.Result.Errors)
			totalWarnings += len(report.Result.Warnings)
		}
	}

	if totalErrors > 0 || totalWarnings > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%d error(s), %d warning(s)\n", totalErrors, totalWarnings)
	}

	if totalErrors > 0 {
		return errExitNonZero
	}
	return nil
}

// jsonDiagnostic mirrors spec.md §6.4's persisted diagnostic shape.
type jsonDiagnostic struct {
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Severity string `json:"severity"`
}

// jsonReport mirrors spec.md §6.4's persisted validation-result shape
// for a single file.
type jsonReport struct {
	Path        string           `json:"path"`
	ParseError  string           `json:"parse_error,omitempty"`
	Errors      []jsonDiagnostic `json:"errors"`
	Warnings    []jsonDiagnostic `json:"warnings"`
	HasErrors   bool             `json:"has_errors"`
	HasWarnings bool             `json:"has_warnings"`
}

func printJSONReport(cmd *cobra.Command, report *lint.FileReport) {
	out := jsonReport{Path: report.Path, ParseError: report.ParseError}
	if report.Result != nil {
		for _, d := range report.Result.Errors {
			out.Errors = append(out.Errors, jsonDiagnostic{Message: d.Message, Line: d.Line, Severity: "error"})
		}
		for _, d := range report.Result.Warnings {
			out.Warnings = append(out.Warnings, jsonDiagnostic{Message: d.Message, Line: d.Line, Severity: "warning"})
		}
	}
	out.HasErrors = len(out.Errors) > 0 || report.ParseError != ""
	out.HasWarnings = len(out.Warnings) > 0

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}

// confirmFix asks for interactive confirmation when --interactive is
// set, defaulting to "apply" when the flag isn't set at all.
func confirmFix(flags *rootFlags) bool {
	if !flags.interactive {
		return true
	}
	apply := false
	prompt := &survey.Confirm{Message: "Apply auto-fixes to this file?", Default: true}
	if err := survey.AskOne(prompt, &apply); err != nil {
		return false
	}
	return apply
}

// errExitNonZero is a sentinel cobra error that carries no message of
// its own: the driver already printed diagnostics, so Execute's
// caller only needs the exit code, not a duplicated "Error: ..." line.
var errExitNonZero = fmt.Errorf("")

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the dsl-lint version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)

			titleColor.Print("dsl-lint version: ")
			valueColor.Println(Version)

			titleColor.Print("Git commit: ")
			valueColor.Println(GitCommit)

			titleColor.Print("Build date: ")
			valueColor.Println(BuildDate)

			titleColor.Print("Go version: ")
			valueColor.Println(goVer)
		},
	}
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		if err.Error() == "" {
			return err
		}
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
