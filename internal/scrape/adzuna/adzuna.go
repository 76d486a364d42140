// Adzuna aggregates Indeed, Jora, and 50+ other boards behind one free JSON
// API (250 requests/hour on the free tier), which sidesteps the
// scraper-hostile boards entirely. Key: https://developer.adzuna.com/signup
package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"

	"jobradar/internal/domain"
	"jobradar/internal/normalize"
	"jobradar/internal/scrape/types"
	"jobradar/internal/scrape/util"
)

const apiURL = "https://api.adzuna.com/v1/api/jobs/au/search/1"

var searchTerms = []string{
	"junior software engineer",
	"graduate developer",
	"associate software engineer",
	"entry level software developer",
	"graduate technology program",
	"junior developer",
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

func (c *Connector) Name() string { return "Adzuna" }

func (c *Connector) Fetch(ctx context.Context) (types.Result, error) {
	res := types.Result{Source: c.Name()}

	appID := os.Getenv("ADZUNA_APP_ID")
	appKey := os.Getenv("ADZUNA_APP_KEY")
	if appID == "" || appKey == "" {
		log.Printf("[adzuna] ADZUNA_APP_ID or ADZUNA_APP_KEY not set, skipping")
		return res, nil
	}

	seen := map[string]bool{}
	for _, location := range c.locations {
		for _, term := range searchTerms {
			jobs, err := c.search(ctx, appID, appKey, term, location, seen)
			if err != nil {
				log.Printf("[adzuna] %s / %q: %v", location, term, err)
				continue
			}
			log.Printf("[adzuna] %s / %q -> %d jobs", location, term, len(jobs))
			res.Jobs = append(res.Jobs, jobs...)
		}
	}
	return res, nil
}

type searchResponse struct {
	Results []struct {
		Title   string `json:"title"`
		Company struct {
			DisplayName string `json:"display_name"`
		} `json:"company"`
		Location struct {
			DisplayName string `json:"display_name"`
		} `json:"location"`
		RedirectURL string `json:"redirect_url"`
		Description string `json:"description"`
		Created     string `json:"created"`
	} `json:"results"`
}

func (c *Connector) search(ctx context.Context, appID, appKey, query, location string, seen map[string]bool) ([]domain.RawJob, error) {
	params := url.Values{}
	params.Set("app_id", appID)
	params.Set("app_key", appKey)
	params.Set("what", query)
	params.Set("where", location)
	params.Set("results_per_page", "20")
	params.Set("sort_by", "date")
	params.Set("max_days_old", "1") // only the last 24 hours
	params.Set("content-type", "application/json")

	resp, err := util.Get(ctx, c.hc, c.lim, apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var data searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("adzuna decode: %w", err)
	}

	var jobs []domain.RawJob
	for _, item := range data.Results {
		if item.RedirectURL == "" || seen[item.RedirectURL] {
			continue
		}
		seen[item.RedirectURL] = true

		summary := normalize.Truncate(item.Description, 400)
		loc := item.Location.DisplayName
		if loc == "" {
			loc = location
		}

		jobs = append(jobs, domain.RawJob{
			Title:      item.Title,
			Company:    item.Company.DisplayName,
			Location:   loc,
			URL:        item.RedirectURL,
			Summary:    summary,
			DatePosted: item.Created,
		})
	}
	return jobs, nil
}
