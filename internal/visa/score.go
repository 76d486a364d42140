// Heuristic 485 visa friendliness scoring.
//
// Score range 0-5:
//
//	0-1  negative signals present (citizen/PR required, clearance)
//	2-3  no clear signals (neutral)
//	4-5  positive signals present (sponsorship, international candidates)
package visa

import (
	"strings"

	"jobradar/internal/domain"
)

const (
	baseScore = 2 // neutral starting point, slightly pessimistic
	minScore  = 0
	maxScore  = 5

	// NoSignals is the reason attached when no phrase fired.
	NoSignals = "No specific signals found"
)

// Signal is one scoring rule: a lower-cased phrase, its score delta, and the
// label appended to the listing's visa reason when it fires.
type Signal struct {
	Phrase string
	Delta  int
	Label  string
}

var hardNegatives = []Signal{
	{"australian citizen", -4, "Australian citizen required"},
	{"must be a citizen", -4, "Australian citizen required"},
	{"citizen only", -4, "Citizen only"},
	{"citizenship required", -4, "Citizenship required"},
	{"nv1", -4, "NV1 clearance required"},
	{"nv2", -4, "NV2 clearance required"},
	{"top secret", -4, "Security clearance required"},
	{"secret clearance", -4, "Security clearance required"},
	{"baseline clearance", -3, "Baseline clearance required"},
	{"security clearance", -3, "Security clearance required"},
	{"pr only", -3, "Permanent residents only"},
	{"permanent resident only", -3, "Permanent residents only"},
	{"must hold permanent", -3, "Permanent residence required"},
}

var softNegatives = []Signal{
	{"full working rights", -1, "Full working rights mentioned (may exclude temporary visas)"},
	{"permanent work rights", -2, "Permanent work rights required"},
	{"must have full working rights", -2, "Full working rights required"},
}

var positives = []Signal{
	{"visa sponsorship", +3, "Visa sponsorship available"},
	{"sponsorship available", +3, "Visa sponsorship available"},
	{"sponsor visa", +3, "Visa sponsorship available"},
	{"international candidates", +2, "International candidates welcome"},
	{"international students", +2, "International students welcome"},
	{"welcome international", +2, "International candidates welcome"},
	{"temporary visa", +2, "Temporary visa accepted"},
	{"temporary work visa", +2, "Temporary visa accepted"},
	{"work rights in australia", +1, "Work rights in Australia mentioned"},
	{"485", +2, "485 visa mentioned"},
	{"graduate visa", +2, "Graduate visa (485) mentioned"},
}

// Score computes and attaches visa_score + visa_reason in place. Every
// matching signal stacks; the total is clamped to [0, 5]. Returns the listing
// for chaining.
func Score(l *domain.Listing) *domain.Listing {
	text := strings.ToLower(l.Title + " " + l.Summary)
	score := baseScore
	var reasons []string

	apply := func(signals []Signal, mark string) {
		for _, s := range signals {
			if strings.Contains(text, s.Phrase) {
				score += s.Delta
				reasons = append(reasons, mark+" "+s.Label)
			}
		}
	}

	apply(hardNegatives, "[-]")
	apply(softNegatives, "[-]")
	apply(positives, "[+]")

	if score < minScore {
		score = minScore
	}
	if score > maxScore {
		score = maxScore
	}

	l.VisaScore = score
	if len(reasons) > 0 {
		l.VisaReason = strings.Join(reasons, "; ")
	} else {
		l.VisaReason = NoSignals
	}
	return l
}

// ScoreAll scores every listing in place and returns the same slice. It does
// not filter or reorder.
func ScoreAll(listings []domain.Listing) []domain.Listing {
	for i := range listings {
		Score(&listings[i])
	}
	return listings
}
