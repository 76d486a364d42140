// LinkedIn renders job cards server-side for public search pages; the first
// page of results needs no authentication. f_TPR=r86400 restricts results to
// the last 24 hours.
package linkedin

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobradar/internal/domain"
	"jobradar/internal/normalize"
	"jobradar/internal/scrape/types"
	"jobradar/internal/scrape/util"
)

const baseURL = "https://www.linkedin.com/jobs/search/"

var locationQueries = map[string]string{
	"Adelaide":  "Adelaide, South Australia, Australia",
	"Melbourne": "Melbourne, Victoria, Australia",
}

var searchTerms = []string{
	"junior software engineer",
	"graduate developer",
	"graduate software engineer",
	"junior developer",
	"associate software engineer",
	"entry level software developer",
	"graduate program technology",
}

type Connector struct {
	hc        *http.Client
	lim       *util.HostLimiter
	locations []string
}

func New(locations []string, ratePerSec float64) *Connector {
	return &Connector{
		hc:        util.NewHTTPClient(),
		lim:       util.NewHostLimiter(ratePerSec, 1),
		locations: locations,
	}
}

func (c *Connector) Name() string { return "LinkedIn" }

func (c *Connector) Fetch(ctx context.Context) (types.Result, error) {
	res := types.Result{Source: c.Name()}
	seen := map[string]bool{}

	for _, location := range c.locations {
		locQuery := locationQueries[location]
		if locQuery == "" {
			locQuery = location
		}
		for _, term := range searchTerms {
			jobs, err := c.search(ctx, term, locQuery, location)
			if err != nil {
				log.Printf("[linkedin] %s / %q: %v", location, term, err)
				continue
			}
			added := 0
			for _, j := range jobs {
				if seen[j.URL] {
					continue
				}
				seen[j.URL] = true
				res.Jobs = append(res.Jobs, j)
				added++
			}
			log.Printf("[linkedin] %s / %q -> %d jobs (%d new)", location, term, len(jobs), added)
		}
	}

	return res, nil
}

func (c *Connector) search(ctx context.Context, keywords, locQuery, locationLabel string) ([]domain.RawJob, error) {
	params := url.Values{}
	params.Set("keywords", keywords)
	params.Set("location", locQuery)
	params.Set("f_TPR", "r86400")

	resp, err := util.Get(ctx, c.hc, c.lim, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var jobs []domain.RawJob
	doc.Find("div.base-card").Each(func(_ int, card *goquery.Selection) {
		title := normalize.CleanText(card.Find("h3.base-search-card__title").First().Text())
		if title == "" {
			return
		}

		href, _ := card.Find("a.base-card__full-link").First().Attr("href")
		href = stripTracking(href)
		if href == "" {
			return
		}

		company := normalize.CleanText(card.Find("h4.base-search-card__subtitle").First().Text())
		loc := normalize.CleanText(card.Find("span.job-search-card__location").First().Text())
		if loc == "" {
			loc = locationLabel
		}
		posted, _ := card.Find("time").First().Attr("datetime")

		jobs = append(jobs, domain.RawJob{
			Title:      title,
			Company:    company,
			Location:   loc,
			URL:        href,
			DatePosted: posted,
		})
	})

	return jobs, nil
}

// stripTracking drops the query string; LinkedIn job URLs are stable without
// their tracking parameters.
func stripTracking(u string) string {
	if i := strings.IndexByte(u, '?'); i >= 0 {
		u = u[:i]
	}
	return strings.TrimSpace(u)
}
