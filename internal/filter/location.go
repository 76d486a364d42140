package filter

import "strings"

// PassesLocation keeps a listing whose canonical location mentions one of the
// target cities. The literal "Australia" means the source could not resolve a
// location at list level (GradConnection, targeted Seek searches) and passes
// through; those listings get caught by the relevance filter instead.
func PassesLocation(location string, targets []string, includeRemote bool) bool {
	loc := strings.ToLower(strings.TrimSpace(location))
	if loc == "australia" {
		return true
	}

	wanted := make([]string, 0, len(targets)+2)
	for _, t := range targets {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			wanted = append(wanted, t)
		}
	}
	if includeRemote {
		wanted = append(wanted, "remote", "hybrid")
	}

	for _, w := range wanted {
		if strings.Contains(loc, w) {
			return true
		}
	}
	return false
}
