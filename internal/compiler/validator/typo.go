package validator

import (
	"fmt"
	"sort"
	"strings"
)

// maxSuggestDistance is the Levenshtein threshold at or below which an
// unknown-identifier diagnostic gets a "Did you mean" suggestion
// (spec.md §4.3.1).
const maxSuggestDistance = 2

// maxListedOptions is the largest candidate set that gets spelled out
// as "Valid options: ..." rather than summarized by count.
const maxListedOptions = 5

// levenshteinDistance computes the edit distance between two strings,
// case-insensitively, via the standard 3-matrix dynamic program.
// Grounded on the same algorithm the teacher uses for CLI command-name
// suggestions (internal/cli/ui/fuzzy.go), reimplemented here so the
// validator carries no dependency on the CLI layer.
func levenshteinDistance(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = min3(del, ins, sub)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// suggestionSuffix implements spec.md §4.3.1: a unique closest-≤2
// candidate becomes "Did you mean 'X'?"; otherwise a short candidate
// list or a bare count, depending on how many candidates exist.
func suggestionSuffix(unknown string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}

	type scored struct {
		name string
		dist int
	}
	scores := make([]scored, len(candidates))
	for i, c := range candidates {
		scores[i] = scored{name: c, dist: levenshteinDistance(unknown, c)}
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].dist < scores[j].dist })

	best, bestDist := scores[0].name, scores[0].dist
	uniqueBest := len(scores) == 1 || scores[1].dist > bestDist
	if bestDist <= maxSuggestDistance && uniqueBest {
		return fmt.Sprintf(" Did you mean '%s'?", best)
	}
	if len(candidates) <= maxListedOptions {
		sorted := append([]string(nil), candidates...)
		sort.Strings(sorted)
		return fmt.Sprintf(" Valid options: %s", strings.Join(sorted, ", "))
	}
	return fmt.Sprintf(" %d defined in schema", len(candidates))
}

// sortedKeys returns the keys of a string set in sorted order, for use
// as a stable candidate list.
func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
