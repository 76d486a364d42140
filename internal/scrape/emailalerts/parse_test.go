package emailalerts

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobLink(t *testing.T) {
	cases := []struct {
		name string
		href string
		want string
	}{
		{
			name: "linkedin job with tracking",
			href: "https://www.linkedin.com/jobs/view/1234567890?refId=abc&trk=email",
			want: "https://www.linkedin.com/jobs/view/1234567890",
		},
		{
			name: "linkedin comm path",
			href: "https://www.linkedin.com/comm/jobs/view/987?tracking=1",
			want: "https://www.linkedin.com/comm/jobs/view/987",
		},
		{
			name: "seek job",
			href: "https://www.seek.com.au/job/7654321?type=standard",
			want: "https://www.seek.com.au/job/7654321",
		},
		{
			name: "linkedin non-job page",
			href: "https://www.linkedin.com/feed/",
			want: "",
		},
		{
			name: "unrelated site",
			href: "https://example.com/jobs/view/1",
			want: "",
		},
		{
			name: "unsubscribe link",
			href: "https://www.seek.com.au/settings/unsubscribe",
			want: "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, jobLink(tc.href))
		})
	}
}

func simpleHTMLMessage(body string) string {
	return "From: LinkedIn Job Alerts <jobalerts-noreply@linkedin.com>\r\n" +
		"To: me@example.com\r\n" +
		"Subject: new jobs for you\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		body
}

func TestExtractJobsMergesAnchors(t *testing.T) {
	raw := simpleHTMLMessage(`
<html><body>
  <a href="https://www.linkedin.com/jobs/view/111?trk=logo"><img src="logo.png"></a>
  <a href="https://www.linkedin.com/jobs/view/111?trk=title">Graduate Software Engineer</a>
  <a href="https://www.seek.com.au/job/222?type=promoted">Junior Developer</a>
  <a href="https://www.linkedin.com/unsubscribe">Unsubscribe</a>
</body></html>`)

	jobs := extractJobs(raw)
	require.Len(t, jobs, 2)

	assert.Equal(t, "https://www.linkedin.com/jobs/view/111", jobs[0].URL)
	assert.Equal(t, "Graduate Software Engineer", jobs[0].Title, "longest anchor text wins")
	assert.Equal(t, "https://www.seek.com.au/job/222", jobs[1].URL)
	assert.Equal(t, "Junior Developer", jobs[1].Title)
}

func TestExtractJobsMultipartBase64(t *testing.T) {
	html := `<html><body><a href="https://www.seek.com.au/job/333?x=1">Graduate Data Analyst</a></body></html>`
	encoded := base64.StdEncoding.EncodeToString([]byte(html))

	raw := "From: Seek <noreply@s.seek.com.au>\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: multipart/alternative; boundary=BOUNDARY\r\n" +
		"\r\n" +
		"--BOUNDARY\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"plain text version\r\n" +
		"--BOUNDARY\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"Content-Transfer-Encoding: base64\r\n" +
		"\r\n" +
		encoded + "\r\n" +
		"--BOUNDARY--\r\n"

	jobs := extractJobs(raw)
	require.Len(t, jobs, 1)
	assert.Equal(t, "https://www.seek.com.au/job/333", jobs[0].URL)
	assert.Equal(t, "Graduate Data Analyst", jobs[0].Title)
}

func TestExtractJobsNoHTMLPart(t *testing.T) {
	raw := "From: someone@example.com\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"see https://www.seek.com.au/job/444\r\n"

	assert.Empty(t, extractJobs(raw))
}

func TestExtractJobsManyLinksKeepOrder(t *testing.T) {
	var anchors strings.Builder
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&anchors, `<a href="https://www.seek.com.au/job/%d">Job %d</a>`, 100+i, i)
	}
	jobs := extractJobs(simpleHTMLMessage("<html><body>" + anchors.String() + "</body></html>"))

	require.Len(t, jobs, 5)
	for i, j := range jobs {
		assert.Equal(t, fmt.Sprintf("https://www.seek.com.au/job/%d", 100+i), j.URL)
	}
}
