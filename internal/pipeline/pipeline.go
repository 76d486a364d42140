package pipeline

import (
	"log"
	"sort"
	"strings"

	"jobradar/internal/config"
	"jobradar/internal/dedupe"
	"jobradar/internal/domain"
	"jobradar/internal/filter"
	"jobradar/internal/visa"
)

// Pipeline runs one batch of collected listings through the filtering,
// deduplication, and scoring stages, in order, single-pass.
type Pipeline struct {
	Cfg     config.Config
	Deduper *dedupe.Deduper
	Resume  *filter.ResumeFilter
}

func New(cfg config.Config, d *dedupe.Deduper) *Pipeline {
	return &Pipeline{
		Cfg:     cfg,
		Deduper: d,
		Resume:  filter.NewResumeFilter(cfg.Filters.ResumeExclude),
	}
}

// Run filters, dedupes, scores, and sorts the collected listings. A stage
// that empties the set ends the run early; that is a normal outcome, not an
// error. When persist is false the dedupe state file is left untouched.
func (p *Pipeline) Run(listings []domain.Listing, persist bool) ([]domain.Listing, error) {
	if len(listings) == 0 {
		log.Printf("[pipeline] no listings collected")
		return nil, nil
	}

	kept := keep(listings, func(l domain.Listing) bool {
		return filter.PassesLocation(l.Location, p.Cfg.Locations.Primary, p.Cfg.Locations.IncludeRemote)
	})
	log.Printf("[pipeline] after location filter: %d (removed %d off-target)",
		len(kept), len(listings)-len(kept))
	if len(kept) == 0 {
		return nil, nil
	}

	before := len(kept)
	kept = keep(kept, func(l domain.Listing) bool {
		return l.Title != "" && filter.IsRelevant(l)
	})
	log.Printf("[pipeline] after relevance filter: %d (removed %d non-tech)",
		len(kept), before-len(kept))
	if len(kept) == 0 {
		return nil, nil
	}

	before = len(kept)
	kept = keep(kept, p.Resume.Fits)
	log.Printf("[pipeline] after resume fit filter: %d (removed %d outside stack)",
		len(kept), before-len(kept))
	if len(kept) == 0 {
		return nil, nil
	}

	fresh, err := p.Deduper.Deduplicate(kept, persist)
	if err != nil {
		return nil, err
	}
	if len(fresh) == 0 {
		return nil, nil
	}

	scored := visa.ScoreAll(fresh)

	// high visa score first, then alphabetically by title
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].VisaScore != scored[j].VisaScore {
			return scored[i].VisaScore > scored[j].VisaScore
		}
		return strings.ToLower(scored[i].Title) < strings.ToLower(scored[j].Title)
	})

	return scored, nil
}

// keep returns a new slice with the listings passing pred; the input is never
// mutated.
func keep(in []domain.Listing, pred func(domain.Listing) bool) []domain.Listing {
	out := make([]domain.Listing, 0, len(in))
	for _, l := range in {
		if pred(l) {
			out = append(out, l)
		}
	}
	return out
}
