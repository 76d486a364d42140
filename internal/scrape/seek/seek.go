// Seek exposes the same JSON search API its own website uses; no login or
// HTML parsing required.
package seek

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"jobradar/internal/domain"
	"jobradar/internal/scrape/types"
	"jobradar/internal/scrape/util"
)

const apiURL = "https://www.seek.com.au/api/jobsearch/v5/search"

var locationQueries = map[string]string{
	"Adelaide":  "Adelaide SA 5000",
	"Melbourne": "Melbourne VIC 3000",
}

var searchTerms = []string{
	"junior software engineer",
	"graduate developer",
	"entry level software developer",
	"associate software engineer",
	"graduate software program",
	"junior developer",
}

// Targeted employer searches run Australia-wide so roles at these companies
// and agencies surface regardless of office location. Their results carry the
// location sentinel "Australia" to pass the pipeline's location filter.
var employerSearches = []string{
	"Deloitte graduate technology",
	"KPMG technology graduate",
	"PwC graduate program technology",
	"EY technology graduate",
	"Accenture associate developer",
	"Accenture graduate technology",
	"Canva software engineer",
	"Canva graduate developer",
	"SA government software developer",
	"SA government ICT graduate",
	"VIC government software developer",
	"VIC government ICT graduate",
	"APS graduate ICT",
	"Australian government graduate technology",
}

var headers = map[string]string{
	"Accept":  "application/json, text/plain, */*",
	"Referer": "https://www.seek.com.au/",
	"Origin":  "https://www.seek.com.au",
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

func (c *Connector) Name() string { return "Seek" }

func (c *Connector) Fetch(ctx context.Context) (types.Result, error) {
	res := types.Result{Source: c.Name()}

	for _, location := range c.locations {
		where := locationQueries[location]
		if where == "" {
			where = location
		}
		for _, term := range searchTerms {
			jobs, err := c.search(ctx, term, where, location, "")
			if err != nil {
				log.Printf("[seek] %s / %q: %v", location, term, err)
				continue
			}
			log.Printf("[seek] %s / %q -> %d jobs", location, term, len(jobs))
			res.Jobs = append(res.Jobs, jobs...)
		}
	}

	for _, term := range employerSearches {
		jobs, err := c.search(ctx, term, "", "Australia", "Australia")
		if err != nil {
			log.Printf("[seek] employer / %q: %v", term, err)
			continue
		}
		log.Printf("[seek] employer / %q -> %d jobs", term, len(jobs))
		res.Jobs = append(res.Jobs, jobs...)
	}

	return res, nil
}

type searchResponse struct {
	Data []struct {
		ID          json.Number `json:"id"`
		Title       string      `json:"title"`
		CompanyName string      `json:"companyName"`
		Advertiser  struct {
			Description string `json:"description"`
		} `json:"advertiser"`
		Locations []struct {
			Label string `json:"label"`
		} `json:"locations"`
		Teaser string `json:"teaser"`
	} `json:"data"`
}

func (c *Connector) search(ctx context.Context, keywords, where, locationLabel, locationOverride string) ([]domain.RawJob, error) {
	params := url.Values{}
	params.Set("siteKey", "AU-Main")
	params.Set("sourcesystem", "houston")
	params.Set("page", "1")
	params.Set("pageSize", "20")
	params.Set("keywords", keywords)
	params.Set("locale", "en-AU")
	params.Set("sortMode", "ListedDate") // newest first
	if where != "" {
		params.Set("where", where)
	}

	resp, err := util.Get(ctx, c.hc, c.lim, apiURL+"?"+params.Encode(), headers)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var data searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("seek decode: %w", err)
	}

	var jobs []domain.RawJob
	for _, item := range data.Data {
		if item.Title == "" {
			continue
		}

		company := item.CompanyName
		if company == "" {
			company = item.Advertiser.Description
		}

		loc := locationOverride
		if loc == "" {
			loc = locationLabel
			if len(item.Locations) > 0 && item.Locations[0].Label != "" {
				loc = item.Locations[0].Label
			}
		}

		jobURL := ""
		if item.ID.String() != "" {
			jobURL = "https://www.seek.com.au/job/" + item.ID.String()
		}

		jobs = append(jobs, domain.RawJob{
			Title:    item.Title,
			Company:  company,
			Location: loc,
			URL:      jobURL,
			Summary:  item.Teaser,
		})
	}
	return jobs, nil
}
