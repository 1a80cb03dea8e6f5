package excel

import (
	"strings"
)

// MatchSheetName finds a sheet whose name contains the wanted substring,
// case-insensitively, preferring an exact match. Returns "" when nothing
// matches. Mirrors the loose sheet detection spreadsheets in the wild need
// ("Questionnaire - details" vs "details").
func MatchSheetName(names []string, wanted string) string {
	if wanted == "" {
		return ""
	}
	lowered := strings.ToLower(strings.TrimSpace(wanted))
	for _, name := range names {
		if strings.ToLower(strings.TrimSpace(name)) == lowered {
			return name
		}
	}
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), lowered) {
			return name
		}
	}
	return ""
}
