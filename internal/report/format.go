// Package report formats validation results and assembles the final
// user-visible Markdown report.
package report

import (
	"fmt"
	"strings"

	"github.com/catalogkit/lcsh-assistant/internal/lcsh"
)

// VerifiedThreshold is the similarity score at or above which a heading is
// considered a confirmed authority match. The boundary is inclusive.
const VerifiedThreshold = 0.85

const closingNote = "Note: All suggested LCSH terms have been validated using the LCSH API. " +
	"Terms with a similarity score of 0.85 or higher are considered valid."

// Badge returns the display label for a similarity score.
func Badge(score float64) string {
	if score >= VerifiedThreshold {
		return "✓ Verified"
	}
	return "⚠️ Low similarity"
}

// FormatValidation renders a validation result as a Markdown block. An error
// result renders as a single "API Error" line.
func FormatValidation(res lcsh.Result) string {
	if res.Error != "" {
		return fmt.Sprintf("API Error: %s", res.Error)
	}

	var sb strings.Builder
	sb.WriteString("## API Validation Results\n\n")
	for _, rec := range res.Recommendations {
		sb.WriteString(fmt.Sprintf("### %s (%s)\n", rec.Term, Badge(rec.SimilarityScore)))
		sb.WriteString(fmt.Sprintf("- **ID**: %s\n", rec.ID))
		sb.WriteString(fmt.Sprintf("- **URL**: %s\n", rec.URL))
		sb.WriteString(fmt.Sprintf("- **Similarity Score**: %g\n\n", rec.SimilarityScore))
	}
	return sb.String()
}

// BuildReport combines the model narrative with the formatted validation
// block into the final displayable report.
func BuildReport(narrative, validation string) string {
	return fmt.Sprintf("# LCSH Recommendations\n\n%s\n\n%s\n\n%s\n", narrative, validation, closingNote)
}
