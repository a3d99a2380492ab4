package transcript

import (
	"regexp"
	"strings"

	"meeting-minutes/internal/models"
)

var hintLine = regexp.MustCompile(`^(.*?)\s*\((Client|Internal)\)\s*$`)

// ParseHints extracts participant hints from free-text lines of the form
// "Name (RoleTag)". Lines without a recognized tag are ignored for mapping
// purposes; callers keep the raw block verbatim for the extraction prompt.
func ParseHints(raw string) []models.ParticipantHint {
	var hints []models.ParticipantHint
	for _, line := range strings.Split(raw, "\n") {
		m := hintLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if name == "" {
			continue
		}
		hints = append(hints, models.ParticipantHint{
			Name: name,
			Role: models.Role(m[2]),
		})
	}
	return hints
}

// NamesByRole returns the hint names carrying the given role, in input order.
func NamesByRole(hints []models.ParticipantHint, role models.Role) []string {
	var names []string
	for _, h := range hints {
		if h.Role == role {
			names = append(names, h.Name)
		}
	}
	return names
}
