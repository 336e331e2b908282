package terms

import (
	"regexp"
	"strings"
)

var (
	// Subdivision chains: "Motion pictures--Japan--History".
	subdivisionRe = regexp.MustCompile(`([A-Z][a-zA-Z\s]+(?:--[a-zA-Z\s]+)+)`)

	// Personal names: "Kurosawa, Akira" or "Kurosawa, Akira, 1910-1998".
	personalNameRe = regexp.MustCompile(`([A-Z][a-z]+,\s+[A-Z][a-z]+(?:,\s+\d{4}-\d{4})?)`)

	// Bare capitalized lines that might be headings on their own.
	bareLineRe = regexp.MustCompile(`(?m)^([A-Z][a-zA-Z\s]+)$`)
)

// RegexStrategy sweeps the whole text with three independent patterns and
// unions the matches: subdivision chains, personal names, and bare
// capitalized lines of 3-5 words.
func RegexStrategy(text string) []string {
	var found []string

	for _, m := range subdivisionRe.FindAllStringSubmatch(text, -1) {
		found = append(found, strings.TrimSpace(m[1]))
	}
	for _, m := range personalNameRe.FindAllStringSubmatch(text, -1) {
		found = append(found, strings.TrimSpace(m[1]))
	}
	for _, m := range bareLineRe.FindAllStringSubmatch(text, -1) {
		t := strings.TrimSpace(m[1])
		if n := len(strings.Fields(t)); n >= 3 && n <= 5 {
			found = append(found, t)
		}
	}

	return found
}
