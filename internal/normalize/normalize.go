package normalize

import (
	"errors"
	"log"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"jobradar/internal/domain"
)

const summaryMaxLen = 500

// locationAlias maps a lower-cased fragment to its canonical city label.
// First containment match wins; the table is checked in order.
type locationAlias struct {
	Fragment  string
	Canonical string
}

var locationAliases = []locationAlias{
	{"adelaide", "Adelaide"},
	{"sa", "Adelaide"},
	{"south australia", "Adelaide"},
	{"melbourne", "Melbourne"},
	{"vic", "Melbourne"},
	{"victoria", "Melbourne"},
	{"remote", "Remote"},
	{"hybrid", "Hybrid"},
	{"australia", "Australia"},
}

var levelKeywords = map[string][]string{
	"Graduate":    {"graduate", "grad "},
	"Junior":      {"junior", "jr "},
	"Entry":       {"entry", "entry-level", "entry level"},
	"Associate":   {"associate"},
	"EarlyCareer": {"early career", "cadet"},
}

var roleKeywords = map[string][]string{
	"SWE": {
		"software engineer", "software developer", "backend", "frontend",
		"full stack", "fullstack", "web developer", "devops", "platform engineer",
	},
	"Architecture": {
		"architect",
	},
	"Program": {
		"graduate program", "graduate programme", "rotation program",
		"rotational", "internship", "cadet program",
	},
}

// tagOrder keeps tag output deterministic (map iteration is not).
var tagOrder = []string{
	"Graduate", "Junior", "Entry", "Associate", "EarlyCareer",
	"SWE", "Architecture", "Program",
}

var titleCaser = cases.Title(language.English)

// CleanText collapses consecutive whitespace (including NBSP) to single
// spaces and trims the result.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// Truncate caps s at max characters. The cut lands on a rune boundary so
// multibyte text never leaves invalid UTF-8 behind.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// Location maps raw free text to a canonical label via the alias table,
// falling back to a Title-cased copy of the input.
func Location(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	for _, a := range locationAliases {
		if strings.Contains(key, a.Fragment) {
			return a.Canonical
		}
	}
	return titleCaser.String(strings.TrimSpace(raw))
}

// Tags scans the lower-cased title+summary against the level and role tables
// and returns every tag with at least one substring hit.
func Tags(title, summary string) []string {
	combined := strings.ToLower(title + " " + summary)

	keywords := make(map[string][]string, len(levelKeywords)+len(roleKeywords))
	for tag, phrases := range levelKeywords {
		keywords[tag] = phrases
	}
	for tag, phrases := range roleKeywords {
		keywords[tag] = phrases
	}

	var tags []string
	for _, tag := range tagOrder {
		for _, p := range keywords[tag] {
			if strings.Contains(combined, p) {
				tags = append(tags, tag)
				break
			}
		}
	}
	return tags
}

// Normalize converts a raw job record into a Listing. Missing fields default
// rather than fail; the hash identity is fixed here and never changes.
func Normalize(raw domain.RawJob, source string) (domain.Listing, error) {
	if source == "" {
		return domain.Listing{}, errors.New("source name is required")
	}

	title := CleanText(raw.Title)
	company := CleanText(raw.Company)
	if company == "" {
		company = "Unknown"
	}
	location := Location(raw.Location)
	url := strings.TrimSpace(raw.URL)

	summary := Truncate(CleanText(raw.Summary), summaryMaxLen)

	return domain.Listing{
		Source:     source,
		Title:      title,
		Company:    company,
		Location:   location,
		URL:        url,
		Summary:    summary,
		DateFound:  time.Now(),
		Tags:       Tags(title, summary),
		VisaScore:  -1,
		HashID:     domain.HashID(url, title, company, location),
	}, nil
}

// NormalizeMany normalizes a batch from one source, skipping records that
// fail instead of aborting the batch.
func NormalizeMany(raws []domain.RawJob, source string) []domain.Listing {
	out := make([]domain.Listing, 0, len(raws))
	for _, r := range raws {
		l, err := Normalize(r, source)
		if err != nil {
			log.Printf("[normalize] skipping bad record from %s: %v", source, err)
			continue
		}
		out = append(out, l)
	}
	return out
}
