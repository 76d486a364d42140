package filter

import (
	"strings"

	"jobradar/internal/domain"
)

// preTargetedSources are connectors whose searches are already scoped to
// junior/grad roles, so only an IT-role match is required. Adding a new
// pre-curated source means extending this list by hand.
var preTargetedSources = map[string]bool{
	"CompanyCareers": true,
	"GovtCareers":    true,
}

// IsRelevant decides whether a listing is an in-scope junior/graduate IT
// role. Exclusion checks run against the title only; positive checks run
// against title+summary.
func IsRelevant(l domain.Listing) bool {
	title := strings.ToLower(l.Title)
	if title == "" {
		return false
	}
	combined := title + " " + strings.ToLower(l.Summary)

	if nonITTitle.MatchString(title) || seniorTitle.MatchString(title) {
		return false
	}

	if preTargetedSources[l.Source] {
		return anyMatch(techRolePatterns, combined)
	}

	hasLevel := anyMatch(levelPatterns, combined)
	hasRole := anyMatch(techRolePatterns, combined)
	strongTech := strongTechTitle.MatchString(title)

	return (hasRole || strongTech) && (hasLevel || strongTech)
}
