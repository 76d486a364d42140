package scrape

import (
	"context"
	"log"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"jobradar/internal/config"
	"jobradar/internal/domain"
	"jobradar/internal/normalize"
	"jobradar/internal/scrape/adzuna"
	"jobradar/internal/scrape/companycareers"
	"jobradar/internal/scrape/emailalerts"
	"jobradar/internal/scrape/gradconnection"
	"jobradar/internal/scrape/linkedin"
	"jobradar/internal/scrape/prosple"
	"jobradar/internal/scrape/seek"
	"jobradar/internal/scrape/types"
	"jobradar/internal/secrets"
)

const fetchTimeout = 2 * time.Minute

// Collect runs every enabled connector and returns the normalized listings
// from all of them. Connectors run concurrently; a failing source logs and
// contributes nothing. The pipeline downstream stays sequential.
func Collect(ctx context.Context, cfg config.Config, locations []string) []domain.Listing {
	var fetchers []types.Fetcher

	if cfg.Sources.Adzuna.Enabled {
		fetchers = append(fetchers, adzuna.New(locations, cfg.Sources.Adzuna.RatePerSec))
	}
	if cfg.Sources.Seek.Enabled {
		fetchers = append(fetchers, seek.New(locations, cfg.Sources.Seek.RatePerSec))
	}
	if cfg.Sources.Prosple.Enabled {
		fetchers = append(fetchers, prosple.New(locations, cfg.Sources.Prosple.RatePerSec))
	}
	if cfg.Sources.GradConnection.Enabled {
		fetchers = append(fetchers, gradconnection.New(cfg.Sources.GradConnection.RatePerSec))
	}
	if cfg.Sources.LinkedIn.Enabled {
		fetchers = append(fetchers, linkedin.New(locations, cfg.Sources.LinkedIn.RatePerSec))
	}
	if cfg.Sources.CompanyCareers.Enabled {
		fetchers = append(fetchers, companycareers.New(cfg.Sources.CompanyCareers.RatePerSec))
	}
	if cfg.Sources.EmailAlerts.Enabled {
		fetchers = append(fetchers, emailalerts.New(emailalerts.Config{
			Host:     cfg.IMAP.Host,
			Port:     cfg.IMAP.Port,
			Username: cfg.IMAP.Username,
			Password: imapPassword(cfg),
			Mailbox:  cfg.IMAP.Mailbox,
		}))
	}

	results := make(chan types.Result, len(fetchers))

	var g errgroup.Group
	for _, f := range fetchers {
		f := f
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, fetchTimeout)
			defer cancel()

			log.Printf("[%s] running...", f.Name())
			res, err := f.Fetch(fctx)
			if err != nil {
				log.Printf("[%s] error: %v", f.Name(), err)
				return nil // best-effort: don't cancel siblings
			}
			results <- res
			return nil
		})
	}

	_ = g.Wait()
	close(results)

	var listings []domain.Listing
	for res := range results {
		normalized := normalize.NormalizeMany(res.Jobs, res.Source)
		log.Printf("[collect] %s -> %d listings", res.Source, len(normalized))
		listings = append(listings, normalized...)
	}

	log.Printf("[collect] total collected: %d listings", len(listings))
	return listings
}

func imapPassword(cfg config.Config) string {
	if pw, err := secrets.GetIMAPPassword(secrets.IMAPKeyringAccount(cfg.IMAP.Username, cfg.IMAP.Host)); err == nil {
		return pw
	}
	return os.Getenv("IMAP_PASSWORD")
}
