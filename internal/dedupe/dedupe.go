package dedupe

import (
	"fmt"
	"log"

	"jobradar/internal/domain"
)

// Deduper filters listings already seen in prior runs (or earlier in the same
// batch, e.g. one job returned by two search terms).
type Deduper struct {
	Store Store
}

func New(store Store) *Deduper {
	return &Deduper{Store: store}
}

// Deduplicate returns the listings whose hash has not been seen before. When
// persist is true and anything new was found, the full seen-set is written
// back in one replace.
func (d *Deduper) Deduplicate(listings []domain.Listing, persist bool) ([]domain.Listing, error) {
	seen := d.Store.Load()
	sessionSeen := make(map[string]bool)

	fresh := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if seen[l.HashID] || sessionSeen[l.HashID] {
			continue
		}
		sessionSeen[l.HashID] = true
		fresh = append(fresh, l)
	}

	if persist && len(sessionSeen) > 0 {
		for h := range sessionSeen {
			seen[h] = true
		}
		if err := d.Store.Replace(seen); err != nil {
			return nil, fmt.Errorf("persist dedupe state: %w", err)
		}
	}

	log.Printf("[dedupe] %d collected -> %d new (filtered %d duplicates)",
		len(listings), len(fresh), len(listings)-len(fresh))
	return fresh, nil
}

// ResetState clears the persisted seen-set entirely.
func (d *Deduper) ResetState() error {
	if err := d.Store.Reset(); err != nil {
		return fmt.Errorf("reset dedupe state: %w", err)
	}
	log.Printf("[dedupe] state cleared")
	return nil
}
