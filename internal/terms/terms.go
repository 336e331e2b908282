// Package terms extracts candidate LCSH heading strings from free-form
// model output. Extraction runs an ordered chain of strategies, each tried
// only if the previous one produced nothing; the final keyword-default
// strategy always yields at least one candidate, so the pipeline never
// stalls with an empty set.
package terms

import (
	"strings"
)

// Strategy is a pure extraction pass over the full response text.
type Strategy func(text string) []string

// Chain is the default strategy order: structured section scan, aggressive
// line scan, regex sweep, keyword defaults.
var Chain = []Strategy{
	SectionStrategy,
	AggressiveStrategy,
	RegexStrategy,
	DefaultStrategy,
}

// Extract runs the strategy chain and returns the de-duplicated candidate
// terms. Duplicates collapse to the first occurrence, so output order is
// first-seen order within the winning strategy.
func Extract(text string) []string {
	for _, s := range Chain {
		if found := s(text); len(found) > 0 {
			return dedupe(found)
		}
	}
	return nil
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// sectionStart matches headers that open the recommendations section.
func sectionStart(line string) bool {
	l := strings.ToLower(line)
	return strings.Contains(l, "recommended lcsh terms") || strings.Contains(l, "lcsh recommendations")
}

// sectionEnd matches lines that close the recommendations section.
func sectionEnd(line string) bool {
	l := strings.ToLower(line)
	for _, prefix := range []string{"subject", "api validation", "special considerations"} {
		if strings.HasPrefix(l, prefix) {
			return true
		}
	}
	return false
}

// stripAnnotation drops a trailing parenthetical and any trailing
// punctuation from a candidate line.
func stripAnnotation(line string) string {
	if i := strings.Index(line, "("); i >= 0 {
		line = line[:i]
	}
	return strings.TrimRight(strings.TrimSpace(line), ".:,")
}

var statusWords = []string{"verified", "modified", "not verified"}

func hasStatusAnnotation(line string) bool {
	if !strings.Contains(line, "(") || !strings.Contains(line, ")") {
		return false
	}
	for _, w := range statusWords {
		if strings.Contains(line, w) {
			return true
		}
	}
	return false
}

// SectionStrategy scans only the gated recommendations section, trying four
// per-line patterns in order: annotated term with subdivisions, plain
// subdivision line, personal name (next line carries a 600 field), and
// geographic heading (next line carries a 651 field).
func SectionStrategy(text string) []string {
	lines := strings.Split(text, "\n")
	var found []string
	inSection := false

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if sectionStart(line) {
			inSection = true
			continue
		}
		if sectionEnd(line) {
			inSection = false
			continue
		}
		if !inSection {
			continue
		}

		// Term followed by a validation-status parenthetical.
		if hasStatusAnnotation(line) {
			term := strings.TrimSpace(line[:strings.Index(line, "(")])
			if term != "" && strings.Contains(term, "--") {
				found = append(found, term)
				continue
			}
		}

		// Subdivision line, short enough to be a heading.
		if strings.Contains(line, "--") && len(strings.Fields(line)) <= 10 {
			if term := stripAnnotation(line); term != "" {
				found = append(found, term)
				continue
			}
		}

		// Personal name: the following line carries the MARC 600 field.
		if i < len(lines)-1 && strings.Contains(lines[i+1], "600 ") {
			if term := stripAnnotation(line); term != "" && strings.Contains(term, ",") {
				found = append(found, term)
				continue
			}
		}

		// Geographic heading: the following line carries the MARC 651 field.
		if i < len(lines)-1 && strings.Contains(lines[i+1], "651 ") {
			if term := stripAnnotation(line); term != "" {
				found = append(found, term)
				continue
			}
		}
	}

	return found
}

// AggressiveStrategy scans every line, skipping bullets, comments, and
// colon-terminated labels, and accepts subdivision lines or short
// comma-containing lines (likely personal names).
func AggressiveStrategy(text string) []string {
	var found []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasSuffix(line, ":") {
			continue
		}
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "-") {
			continue
		}

		if strings.Contains(line, "--") {
			if term := stripAnnotation(line); term != "" {
				found = append(found, term)
			}
		} else if strings.Contains(line, ",") && len(strings.Fields(line)) <= 5 {
			if term := stripAnnotation(line); term != "" {
				found = append(found, term)
			}
		}
	}
	return found
}
