// Prosple is a graduate/early-career board rendered with Next.js; every
// search result is embedded in the page's __NEXT_DATA__ JSON block, so no
// card scraping is needed. Search ignores location server-side; results are
// filtered to the target cities here.
package prosple

import (
	"context"
	"encoding/json"
	"io"
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

const baseURL = "https://au.prosple.com/search-jobs/"

var searchTerms = []string{
	"graduate software",
	"junior developer",
	"graduate program technology",
	"software engineer graduate",
}

// cityKeywords maps a configured city to the substrings that identify it in
// Prosple's location strings.
var cityKeywords = map[string][]string{
	"Adelaide":  {"adelaide", "south australia"},
	"Melbourne": {"melbourne", "victoria"},
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

func (c *Connector) Name() string { return "Prosple" }

func (c *Connector) Fetch(ctx context.Context) (types.Result, error) {
	res := types.Result{Source: c.Name()}
	seen := map[string]bool{}

	var keywords []string
	for _, loc := range c.locations {
		kws := cityKeywords[loc]
		if len(kws) == 0 {
			kws = []string{strings.ToLower(loc)}
		}
		keywords = append(keywords, kws...)
	}

	for _, term := range searchTerms {
		jobs, err := c.fetchPage(ctx, term)
		if err != nil {
			log.Printf("[prosple] %q: %v", term, err)
			continue
		}

		kept := 0
		for _, j := range jobs {
			if seen[j.URL] {
				continue
			}
			loc := strings.ToLower(j.Location)
			match := false
			for _, kw := range keywords {
				if strings.Contains(loc, kw) {
					match = true
					break
				}
			}
			if !match {
				continue
			}
			seen[j.URL] = true
			res.Jobs = append(res.Jobs, j)
			kept++
		}
		log.Printf("[prosple] %q -> %d total, kept %d in target cities", term, len(jobs), kept)
	}

	return res, nil
}

func (c *Connector) fetchPage(ctx context.Context, search string) ([]domain.RawJob, error) {
	params := url.Values{}
	params.Set("search", search)

	resp, err := util.Get(ctx, c.hc, c.lim, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return parseNextData(resp.Body)
}

type nextData struct {
	Props struct {
		PageProps struct {
			InitialResult struct {
				Opportunities []opportunity `json:"opportunities"`
			} `json:"initialResult"`
		} `json:"pageProps"`
	} `json:"props"`
}

type opportunity struct {
	Title          string `json:"title"`
	ParentEmployer struct {
		Title          string `json:"title"`
		AdvertiserName string `json:"advertiserName"`
	} `json:"parentEmployer"`
	GeoAddresses []struct {
		Locality string `json:"locality"`
		Region   string `json:"region"`
	} `json:"geoAddresses"`
	DetailPageURL string `json:"detailPageURL"`
	// overview is not always an object; decoded tolerantly below
	Overview json.RawMessage `json:"overview"`
}

// parseNextData pulls the opportunity list out of the page's __NEXT_DATA__
// script block.
func parseNextData(r io.Reader) ([]domain.RawJob, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	script := doc.Find("script#__NEXT_DATA__").First()
	if script.Length() == 0 {
		return nil, nil
	}

	var data nextData
	if err := json.Unmarshal([]byte(script.Text()), &data); err != nil {
		return nil, err
	}

	var jobs []domain.RawJob
	for _, opp := range data.Props.PageProps.InitialResult.Opportunities {
		title := normalize.CleanText(opp.Title)
		if title == "" || opp.DetailPageURL == "" {
			continue
		}

		company := strings.TrimSpace(opp.ParentEmployer.Title)
		if company == "" {
			company = strings.TrimSpace(opp.ParentEmployer.AdvertiserName)
		}

		jobs = append(jobs, domain.RawJob{
			Title:    title,
			Company:  company,
			Location: oppLocation(opp),
			URL:      "https://au.prosple.com" + opp.DetailPageURL,
			Summary:  oppSummary(opp.Overview),
		})
	}
	return jobs, nil
}

// oppLocation joins the cities of an opportunity, showing only the target
// cities when any are present and falling back to "Australia" when the
// listing carries no usable geo data.
func oppLocation(opp opportunity) string {
	var cities []string
	seen := map[string]bool{}
	for _, g := range opp.GeoAddresses {
		city := g.Locality
		if city == "" {
			city = g.Region
		}
		if city == "" || seen[city] {
			continue
		}
		seen[city] = true
		cities = append(cities, city)
	}

	var targets []string
	for _, c := range cities {
		switch strings.ToLower(c) {
		case "adelaide", "melbourne":
			targets = append(targets, c)
		}
	}
	if len(targets) > 0 {
		return strings.Join(targets, ", ")
	}
	if len(cities) > 0 {
		return strings.Join(cities, ", ")
	}
	return "Australia"
}

func oppSummary(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var overview struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(raw, &overview); err != nil {
		return ""
	}
	return overview.Summary
}
