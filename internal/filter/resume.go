package filter

import (
	"regexp"
	"strings"

	"jobradar/internal/domain"
)

// DefaultResumeExcludes lists technologies outside the target skill profile
// (mobile-native, legacy enterprise platforms, embedded/hardware, proprietary
// ecosystems). The list is data: config can replace it wholesale.
var DefaultResumeExcludes = []string{
	"ios", "swift", "objective-c", "objective c", "ruby on rails", "laravel",
	"php", "mulesoft", "salesforce", "zoho", "deluge", "objectstar", "cobol",
	"abap", "mainframe", "flutter", "dart", "kotlin", "embedded", "firmware",
	"fpga", "vhdl", "verilog", "sap", "servicenow", "pega", "mendix",
	"outsystems",
}

// ResumeFilter hard-excludes listings mentioning out-of-stack technologies.
// No positive signal is required to pass.
type ResumeFilter struct {
	re *regexp.Regexp
}

// NewResumeFilter builds a filter over the given exclusion terms,
// word-boundary matched. A list with no usable terms falls back to the
// defaults; `\b()\b` would match everything and reject every listing.
func NewResumeFilter(terms []string) *ResumeFilter {
	quoted := quoteTerms(terms)
	if len(quoted) == 0 {
		quoted = quoteTerms(DefaultResumeExcludes)
	}
	return &ResumeFilter{
		re: regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`),
	}
}

func quoteTerms(terms []string) []string {
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(strings.ToLower(t)))
	}
	return quoted
}

// Fits reports whether the listing avoids every excluded technology.
func (f *ResumeFilter) Fits(l domain.Listing) bool {
	combined := strings.ToLower(l.Title + " " + l.Summary)
	return !f.re.MatchString(combined)
}
