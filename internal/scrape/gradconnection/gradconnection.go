// GradConnection serves the same 20 server-rendered cards regardless of the
// location/discipline URL parameters (they are JavaScript-driven), and the
// cards carry no location data. We take what is visible, pre-filter titles
// for IT relevance, and mark location "Australia" so the pipeline's location
// filter passes these through.
package gradconnection

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

const baseURL = "https://au.gradconnection.com/jobs/"

var searchTerms = []string{
	"software",
	"technology graduate",
	"junior developer",
}

// Title keywords signalling an IT-relevant role; cards failing this never
// leave the connector.
var itTitleKeywords = []string{
	"software", "developer", "engineer", "engineering",
	"data", "cyber", "security", "network", "cloud",
	"devops", "platform", "backend", "frontend", "full stack",
	"fullstack", "web", "mobile", "app", "technology", "tech",
	"it ", " it", "information technology",
	"computer", "systems", "graduate program", "technology graduate",
	"internship", "cadet", "rotational", "rotation",
	"architect",
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

func (c *Connector) Name() string { return "GradConnection" }

func (c *Connector) Fetch(ctx context.Context) (types.Result, error) {
	res := types.Result{Source: c.Name()}
	seen := map[string]bool{}

	for _, term := range searchTerms {
		jobs, err := c.fetchPage(ctx, term)
		if err != nil {
			log.Printf("[gradconnection] %q: %v", term, err)
			continue
		}
		for _, j := range jobs {
			if seen[j.URL] {
				continue
			}
			seen[j.URL] = true
			res.Jobs = append(res.Jobs, j)
		}
		log.Printf("[gradconnection] %q -> %d parsed, %d unique so far", term, len(jobs), len(seen))
	}

	return res, nil
}

func (c *Connector) fetchPage(ctx context.Context, keyword string) ([]domain.RawJob, error) {
	params := url.Values{}
	params.Set("keyword", keyword)

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
	doc.Find("div.campaign-box").Each(func(_ int, card *goquery.Selection) {
		titleA := card.Find("a.box-header-title").First()
		if titleA.Length() == 0 {
			return
		}
		title := normalize.CleanText(titleA.Text())
		href, _ := titleA.Attr("href")
		if title == "" || href == "" {
			return
		}
		if !strings.HasPrefix(href, "http") {
			href = "https://au.gradconnection.com" + href
		}

		titleLower := strings.ToLower(title)
		relevant := false
		for _, kw := range itTitleKeywords {
			if strings.Contains(titleLower, kw) {
				relevant = true
				break
			}
		}
		if !relevant {
			return
		}

		company := normalize.CleanText(card.Find("div.box-employer-name p.box-header-para").First().Text())
		summary := normalize.Truncate(normalize.CleanText(card.Find("div.job-description, div.box-description").First().Text()), 300)

		jobs = append(jobs, domain.RawJob{
			Title:    title,
			Company:  company,
			Location: "Australia", // real location unknown at list level
			URL:      href,
			Summary:  summary,
		})
	})

	return jobs, nil
}
