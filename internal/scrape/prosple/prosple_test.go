package prosple

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageWithNextData(payload string) string {
	return fmt.Sprintf(`<!DOCTYPE html><html><head></head><body>
<div id="__next">rendered app</div>
<script id="__NEXT_DATA__" type="application/json">%s</script>
</body></html>`, payload)
}

func TestParseNextData(t *testing.T) {
	payload := `{
  "props": {
    "pageProps": {
      "initialResult": {
        "opportunities": [
          {
            "title": " Graduate Software Engineer ",
            "parentEmployer": {"title": "Acme", "advertiserName": "Acme Pty Ltd"},
            "geoAddresses": [
              {"locality": "Adelaide", "region": "South Australia"},
              {"locality": "Adelaide", "region": "South Australia"},
              {"locality": "Sydney", "region": "New South Wales"}
            ],
            "detailPageURL": "/graduate-employers/acme/jobs/grad-swe-1",
            "overview": {"summary": "Build software with us."}
          },
          {
            "title": "Technology Graduate Program",
            "parentEmployer": {"title": "", "advertiserName": "Beta Recruiting"},
            "geoAddresses": [{"locality": "", "region": "Victoria"}],
            "detailPageURL": "/graduate-employers/beta/jobs/tech-grad-2",
            "overview": "not an object"
          },
          {
            "title": "",
            "detailPageURL": "/graduate-employers/ghost/jobs/3"
          },
          {
            "title": "No Link Role",
            "detailPageURL": ""
          },
          {
            "title": "Remote Graduate Developer",
            "parentEmployer": null,
            "geoAddresses": [],
            "detailPageURL": "/graduate-employers/gamma/jobs/4"
          }
        ]
      }
    }
  }
}`

	jobs, err := parseNextData(strings.NewReader(pageWithNextData(payload)))
	require.NoError(t, err)
	require.Len(t, jobs, 3, "empty titles and missing links are dropped")

	assert.Equal(t, "Graduate Software Engineer", jobs[0].Title)
	assert.Equal(t, "Acme", jobs[0].Company)
	assert.Equal(t, "Adelaide", jobs[0].Location, "target city preferred over other geo entries")
	assert.Equal(t, "https://au.prosple.com/graduate-employers/acme/jobs/grad-swe-1", jobs[0].URL)
	assert.Equal(t, "Build software with us.", jobs[0].Summary)

	assert.Equal(t, "Beta Recruiting", jobs[1].Company, "advertiser name backs up a blank employer title")
	assert.Equal(t, "Victoria", jobs[1].Location, "region fills in for a missing locality")
	assert.Equal(t, "", jobs[1].Summary, "non-object overview reads as empty")

	assert.Equal(t, "Australia", jobs[2].Location, "no geo data falls back to the country")
}

func TestParseNextDataMissingScript(t *testing.T) {
	jobs, err := parseNextData(strings.NewReader("<html><body><p>no app here</p></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestParseNextDataBadJSON(t *testing.T) {
	_, err := parseNextData(strings.NewReader(pageWithNextData("{not json")))
	assert.Error(t, err)
}
