package visa

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobradar/internal/domain"
)

func score(title, summary string) domain.Listing {
	l := domain.Listing{Title: title, Summary: summary, VisaScore: -1}
	Score(&l)
	return l
}

func TestScoreNeutral(t *testing.T) {
	l := score("Graduate Software Engineer", "join our Adelaide team")
	assert.Equal(t, 2, l.VisaScore)
	assert.Equal(t, NoSignals, l.VisaReason)
}

func TestScoreSignals(t *testing.T) {
	cases := []struct {
		name      string
		title     string
		summary   string
		wantScore int
		wantWords string
	}{
		{
			name:      "citizenship floor",
			summary:   "must be an Australian citizen",
			wantScore: 0,
			wantWords: "[-] Australian citizen required",
		},
		{
			name:      "clearance",
			summary:   "Baseline clearance required for this role",
			wantScore: 0,
			wantWords: "[-] Baseline clearance required",
		},
		{
			name:      "sponsorship ceiling",
			summary:   "visa sponsorship available, international candidates welcome",
			wantScore: 5, // stacked positives clamp at 5
			wantWords: "[+] Visa sponsorship available",
		},
		{
			name:      "485 mention",
			summary:   "485 visa holders encouraged to apply",
			wantScore: 4,
			wantWords: "[+] 485 visa mentioned",
		},
		{
			name:      "soft negative",
			summary:   "full working rights essential",
			wantScore: 1,
			wantWords: "[-] Full working rights mentioned",
		},
		{
			name:      "mixed signals stack",
			summary:   "security clearance preferred but we sponsor visa applicants",
			wantScore: 2, // 2 - 3 + 3
			wantWords: "[-] Security clearance required; [+] Visa sponsorship available",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := score(tc.title, tc.summary)
			assert.Equal(t, tc.wantScore, l.VisaScore)
			assert.Contains(t, l.VisaReason, tc.wantWords)
		})
	}
}

func TestScoreClampedToRange(t *testing.T) {
	// several hard negatives together still floor at 0
	l := score("", "australian citizen only, nv1 and top secret clearance required")
	assert.Equal(t, 0, l.VisaScore)

	// stacked positives ceiling at 5
	l = score("", "visa sponsorship available, sponsor visa, international students, 485 welcome")
	assert.Equal(t, 5, l.VisaScore)
}

func TestScoreNegativesListedBeforePositives(t *testing.T) {
	l := score("", "visa sponsorship available but security clearance required")
	assert.Regexp(t, `^\[-\] .*; \[\+\] `, l.VisaReason)
}

func TestScoreAllInPlace(t *testing.T) {
	in := []domain.Listing{
		{Title: "A", Summary: "visa sponsorship available", VisaScore: -1},
		{Title: "B", VisaScore: -1},
	}
	out := ScoreAll(in)
	if out[0].VisaScore != 5 {
		t.Errorf("expected 5, got %d", out[0].VisaScore)
	}
	if out[1].VisaScore != 2 {
		t.Errorf("expected 2, got %d", out[1].VisaScore)
	}
	assert.Equal(t, in[0].VisaScore, out[0].VisaScore, "scores in place, same backing array")
}
