package terms

import "strings"

// Regional default heading sets, keyed by keyword presence in the response.
// These are the safety net when no pattern matched anything: the validator
// downstream still gets a plausible candidate set to score.
var (
	japanDefaults = []string{"Motion pictures--Japan--History", "Motion picture directors--Japan"}
	chinaDefaults = []string{"China--History", "Chinese literature"}
	koreaDefaults = []string{"Korea--History", "Korean literature"}
	asiaDefaults  = []string{"East Asia--History", "Asian studies"}
)

// DefaultStrategy picks a small fixed heading set by keyword presence. It
// never returns an empty slice, which makes it a terminal chain member.
func DefaultStrategy(text string) []string {
	l := strings.ToLower(text)
	switch {
	case strings.Contains(l, "japanese cinema") || strings.Contains(l, "japan"):
		return japanDefaults
	case strings.Contains(l, "chinese") || strings.Contains(l, "china"):
		return chinaDefaults
	case strings.Contains(l, "korean") || strings.Contains(l, "korea"):
		return koreaDefaults
	default:
		return asiaDefaults
	}
}
