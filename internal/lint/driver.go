// Package lint implements the lint driver of spec.md §4.5: lex, parse,
// resolve imports, validate, and optionally auto-fix a protocol's
// `.omt` source files, with session-aware backups.
package lint

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/omt-lang/dsl-lint/internal/compiler/lexer"
	"github.com/omt-lang/dsl-lint/internal/compiler/parser"
	"github.com/omt-lang/dsl-lint/internal/compiler/resolver"
	"github.com/omt-lang/dsl-lint/internal/compiler/validator"
)

// Options configures one lint driver run.
type Options struct {
	Fix bool
	Now time.Time
}

// FileReport is the lint outcome for a single `.omt` file.
type FileReport struct {
	Path       string
	ParseError string
	Result     *validator.Result
	Warnings   []resolver.Warning
	FixesMade  int
}

// Driver runs the lint pipeline against files read through fs, rooted
// at protocolBase. Matches spec.md §5's synchronous, single-threaded
// scheduling: one file completes lex→parse→resolve→validate→fix before
// the next begins.
type Driver struct {
	fs           afero.Fs
	protocolBase string
	logger       *zap.Logger
	sessionID    string
}

// New creates a Driver. A nil logger falls back to zap.NewNop(), so
// callers that don't pass --verbose pay no logging cost.
func New(fs afero.Fs, protocolBase string, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		fs:           fs,
		protocolBase: protocolBase,
		logger:       logger,
		sessionID:    uuid.NewString(),
	}
}

// LintFile runs the pipeline for a single `.omt` file, absolute or
// relative to the driver's protocol base.
func (d *Driver) LintFile(path string, opts Options) (*FileReport, error) {
	d.logger.Debug("linting file", zap.String("session", d.sessionID), zap.String("path", path))

	absPath := path
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(d.protocolBase, absPath)
	}

	source, err := afero.ReadFile(d.fs, absPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", absPath, err)
	}

	report := &FileReport{Path: absPath}

	tokens, lexErr := lexer.New(string(source)).ScanTokens()
	if lexErr != nil {
		report.ParseError = lexErr.Error()
		return report, nil
	}

	_, parseErr := parser.New(tokens).ParseSchema()
	if parseErr != nil {
		report.ParseError = parseErr.Error()
		return report, nil
	}

	res, err := resolver.New(d.fs, d.protocolBase).Resolve(absPath)
	if err != nil {
		return nil, fmt.Errorf("resolving imports for %s: %w", absPath, err)
	}
	report.Warnings = res.Warnings

	result := validator.Validate(res.Schemas)
	report.Result = result

	if opts.Fix && result.HasErrors() {
		fixes := BuildFixes(result)
		if len(fixes) > 0 {
			now := opts.Now
			if now.IsZero() {
				now = time.Now()
			}
			fixed := ApplyFixes(string(source), fixes)
			if err := applyBackupPolicy(d.fs, absPath, source, []byte(fixed), now); err != nil {
				return nil, fmt.Errorf("managing backups for %s: %w", absPath, err)
			}
			if err := afero.WriteFile(d.fs, absPath, []byte(fixed), 0o644); err != nil {
				return nil, fmt.Errorf("writing %s: %w", absPath, err)
			}
			report.FixesMade = len(fixes)

			// Re-validate the fixed content so the caller's exit-code
			// decision (spec.md §4.5: "exit 0 iff no errors remain after
			// auto-fix") reflects the post-fix diagnostic set.
			fixedTokens, fixedLexErr := lexer.New(fixed).ScanTokens()
			if fixedLexErr == nil {
				if _, fixedParseErr := parser.New(fixedTokens).ParseSchema(); fixedParseErr == nil {
					fixedRes, resErr := resolver.New(d.fs, d.protocolBase).Resolve(absPath)
					if resErr == nil {
						report.Result = validator.Validate(fixedRes.Schemas)
						report.Warnings = fixedRes.Warnings
					}
				}
			}
		}
	}

	d.logger.Debug("lint finished",
		zap.String("session", d.sessionID),
		zap.String("path", absPath),
		zap.Int("fixes", report.FixesMade),
	)
	return report, nil
}

// DiscoverAll finds every `transactions/*/transaction.omt` file under
// the driver's protocol base, per spec.md §6.2's `--all` semantics.
func (d *Driver) DiscoverAll() ([]string, error) {
	matches, err := afero.Glob(d.fs, filepath.Join(d.protocolBase, "transactions", "*", "transaction.omt"))
	if err != nil {
		return nil, fmt.Errorf("discovering transaction files: %w", err)
	}
	return matches, nil
}

// HasErrors reports whether this file's report carries any error-level
// diagnostic or a parse failure — either of which fails the driver's
// overall exit code (spec.md §4.5, §7). A read failure is not part of
// the report: LintFile returns it as its error instead.
func (r *FileReport) HasErrors() bool {
	if r.ParseError != "" {
		return true
	}
	return r.Result != nil && r.Result.HasErrors()
}
