// Direct company career pages. Amazon/AWS works through the amazon.jobs
// public JSON API; the Big 4, Accenture, and Canva are covered by targeted
// Seek searches since their own portals are JS-rendered with no public API.
package companycareers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"jobradar/internal/domain"
	"jobradar/internal/scrape/types"
	"jobradar/internal/scrape/util"
)

const amazonSearchURL = "https://www.amazon.jobs/en/search.json"

var gradQueries = []string{
	"graduate software engineer",
	"junior software developer",
	"associate software engineer",
	"technology graduate",
	"graduate technology program",
}

type Connector struct {
	hc  *http.Client
	lim *util.HostLimiter
}

func New(ratePerSec float64) *Connector {
	return &Connector{
		hc:  util.NewHTTPClient(),
		lim: util.NewHostLimiter(ratePerSec, 1),
	}
}

func (c *Connector) Name() string { return "CompanyCareers" }

func (c *Connector) Fetch(ctx context.Context) (types.Result, error) {
	res := types.Result{Source: c.Name()}
	seen := map[string]bool{}

	for _, q := range gradQueries {
		jobs, err := c.searchAmazon(ctx, q, seen)
		if err != nil {
			log.Printf("[companycareers] amazon query %q: %v", q, err)
			continue
		}
		res.Jobs = append(res.Jobs, jobs...)
	}

	log.Printf("[companycareers] Amazon/AWS -> %d jobs", len(res.Jobs))
	return res, nil
}

type amazonResponse struct {
	Jobs []struct {
		IDIcims            json.Number `json:"id_icims"`
		JobID              json.Number `json:"job_id"`
		Title              string      `json:"title"`
		BusinessCategory   string      `json:"business_category"`
		NormalizedLocation string      `json:"normalized_location"`
		DescriptionShort   string      `json:"description_short"`
		PostedDate         string      `json:"posted_date"`
	} `json:"jobs"`
}

func (c *Connector) searchAmazon(ctx context.Context, query string, seen map[string]bool) ([]domain.RawJob, error) {
	params := url.Values{}
	params.Set("base_query", query)
	params.Set("loc_query", "Australia")
	params.Set("job_count", "20")
	params.Set("result_limit", "20")

	resp, err := util.Get(ctx, c.hc, c.lim, amazonSearchURL+"?"+params.Encode(), map[string]string{
		"Accept": "application/json, */*",
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var data amazonResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("amazon.jobs decode: %w", err)
	}

	var jobs []domain.RawJob
	for _, job := range data.Jobs {
		jobID := job.IDIcims.String()
		if jobID == "" {
			jobID = job.JobID.String()
		}
		if jobID == "" || seen[jobID] {
			continue
		}
		seen[jobID] = true

		company := "Amazon"
		cat := strings.ToLower(job.BusinessCategory)
		if strings.Contains(cat, "aws") || strings.Contains(cat, "cloud") {
			company = "Amazon Web Services (AWS)"
		}

		loc := job.NormalizedLocation
		if loc == "" {
			loc = "Australia"
		}

		jobs = append(jobs, domain.RawJob{
			Title:      job.Title,
			Company:    company,
			Location:   loc,
			URL:        "https://www.amazon.jobs/en/jobs/" + jobID,
			Summary:    job.DescriptionShort,
			DatePosted: job.PostedDate,
		})
	}
	return jobs, nil
}
