package lint

import (
	"regexp"
	"sort"
	"strings"

	"github.com/omt-lang/dsl-lint/internal/compiler/validator"
)

// Fix is one word-boundary text substitution to apply to a single line
// (spec.md §4.5 step 4).
type Fix struct {
	Line    int
	OldText string
	NewText string
}

// BuildFixes uses these patterns to scan a diagnostic's suggestion text
// for the single "Did you mean 'X'?" form (validator.typo's
// unique-candidate case) and turn it into a Fix against the unknown
// name that produced it.
//
// The validator doesn't expose its raw "unknown name" separately from
// the suggestion, so BuildFixes re-derives the unknown identifier
// from the diagnostic message itself: every unresolved-reference
// message this package's diagnostics produce quotes the offending name
// in single or double quotes before the optional suggestion.
var quotedNameRe = regexp.MustCompile(`['"]([A-Za-z_][A-Za-z0-9_]*)['"]`)
var didYouMeanRe = regexp.MustCompile(`Did you mean '([A-Za-z_][A-Za-z0-9_]*)'\?`)

// BuildFixes derives the set of obvious fixes from a validation result.
// An "obvious" fix is one whose diagnostic carries exactly one
// suggested replacement, produced when the validator found a unique
// closest candidate within Levenshtein distance 2 (spec.md §4.5 step 4,
// validator.suggestionSuffix's unique-best case).
func BuildFixes(result *validator.Result) []Fix {
	var fixes []Fix
	for _, d := range result.Errors {
		suggestion := didYouMeanRe.FindStringSubmatch(d.Message)
		if suggestion == nil {
			continue
		}
		names := quotedNameRe.FindAllStringSubmatch(d.Message, -1)
		if len(names) == 0 {
			continue
		}
		oldText := names[0][1]
		newText := suggestion[1]
		if oldText == newText {
			continue
		}
		fixes = append(fixes, Fix{Line: d.Line, OldText: oldText, NewText: newText})
	}
	return fixes
}

// wordBoundaryPattern matches word when it is not immediately preceded
// or followed by another identifier character.
func wordBoundaryPattern(word string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`)
}

// ApplyFixes rewrites source text by applying fixes scoped to their
// line, word-boundary substitution, left-to-right against the line's
// original text so overlapping replacements never compound (spec.md
// §4.5 step 5).
func ApplyFixes(source string, fixes []Fix) string {
	if len(fixes) == 0 {
		return source
	}

	byLine := map[int][]Fix{}
	for _, f := range fixes {
		byLine[f.Line] = append(byLine[f.Line], f)
	}

	lines := strings.Split(source, "\n")
	for lineNo, lineFixes := range byLine {
		idx := lineNo - 1
		if idx < 0 || idx >= len(lines) {
			continue
		}
		lines[idx] = applyAgainstOriginal(lines[idx], lineFixes)
	}
	return strings.Join(lines, "\n")
}

// applyAgainstOriginal computes every fix's replacement ranges against
// the untouched original line text, then stitches the final line
// together from those ranges in order — this is what guarantees fixes
// are "applied left-to-right against the same original text" rather
// than against each other's output (spec.md §4.5 step 5).
func applyAgainstOriginal(original string, fixes []Fix) string {
	type replacement struct {
		start, end int
		text       string
	}
	var reps []replacement
	for _, f := range fixes {
		for _, loc := range wordBoundaryPattern(f.OldText).FindAllStringIndex(original, -1) {
			reps = append(reps, replacement{start: loc[0], end: loc[1], text: f.NewText})
		}
	}
	sort.Slice(reps, func(i, j int) bool { return reps[i].start < reps[j].start })

	var b strings.Builder
	cursor := 0
	for _, r := range reps {
		if r.start < cursor {
			continue // overlapping with an earlier replacement; skip
		}
		b.WriteString(original[cursor:r.start])
		b.WriteString(r.text)
		cursor = r.end
	}
	b.WriteString(original[cursor:])
	return b.String()
}
