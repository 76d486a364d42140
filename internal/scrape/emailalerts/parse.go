package emailalerts

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobradar/internal/domain"
	"jobradar/internal/normalize"
)

// extractJobs pulls job listings out of a raw alert email: the HTML part is
// scanned for anchors pointing at LinkedIn or Seek job pages, anchor text
// becoming the title. Multiple anchors to the same job merge on URL.
func extractJobs(raw string) []domain.RawJob {
	htmlBody := htmlPart(raw)
	if htmlBody == "" {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return nil
	}

	byURL := map[string]*domain.RawJob{}
	var order []string

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		jobURL := jobLink(href)
		if jobURL == "" {
			return
		}

		j, ok := byURL[jobURL]
		if !ok {
			j = &domain.RawJob{URL: jobURL}
			byURL[jobURL] = j
			order = append(order, jobURL)
		}

		// Longest anchor text wins; logo anchors have none.
		if txt := normalize.CleanText(a.Text()); len(txt) > len(j.Title) {
			j.Title = txt
		}
	})

	jobs := make([]domain.RawJob, 0, len(order))
	for _, u := range order {
		jobs = append(jobs, *byURL[u])
	}
	return jobs
}

// jobLink canonicalizes an anchor href to a job page URL, or returns ""
// when the anchor is not a job link.
func jobLink(href string) string {
	href = strings.TrimSpace(href)
	low := strings.ToLower(href)

	isLinkedIn := strings.Contains(low, "linkedin.com") &&
		(strings.Contains(low, "/jobs/view/") || strings.Contains(low, "/comm/jobs/view/"))
	isSeek := strings.Contains(low, "seek.com.au/job/")
	if !isLinkedIn && !isSeek {
		return ""
	}

	// tracking params make the same job look unique
	if i := strings.IndexByte(href, '?'); i >= 0 {
		href = href[:i]
	}
	return href
}

// htmlPart returns the text/html body of an RFC822 message, decoding
// base64/quoted-printable transfer encodings and walking nested multiparts.
func htmlPart(raw string) string {
	msg, err := mail.ReadMessage(strings.NewReader(raw))
	if err != nil {
		return ""
	}
	body, _ := io.ReadAll(io.LimitReader(msg.Body, 6<<20))
	return findHTML(msg.Header.Get("Content-Type"), msg.Header.Get("Content-Transfer-Encoding"), body)
}

func findHTML(contentType, cte string, body []byte) string {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	mediaType = strings.ToLower(mediaType)

	if strings.HasPrefix(mediaType, "multipart/") {
		boundary := params["boundary"]
		if boundary == "" {
			return ""
		}
		mr := multipart.NewReader(bytes.NewReader(body), boundary)
		for {
			p, err := mr.NextPart()
			if err != nil {
				return ""
			}
			b, _ := io.ReadAll(io.LimitReader(p, 6<<20))
			if out := findHTML(p.Header.Get("Content-Type"), p.Header.Get("Content-Transfer-Encoding"), b); out != "" {
				return out
			}
		}
	}

	if strings.HasPrefix(mediaType, "text/html") {
		return string(decodeTransferEncoding(body, cte))
	}
	return ""
}

func decodeTransferEncoding(b []byte, cte string) []byte {
	switch strings.ToLower(strings.TrimSpace(cte)) {
	case "base64":
		out, _ := io.ReadAll(io.LimitReader(
			base64.NewDecoder(base64.StdEncoding, bytes.NewReader(b)), 6<<20))
		return out
	case "quoted-printable":
		out, _ := io.ReadAll(io.LimitReader(
			quotedprintable.NewReader(bytes.NewReader(b)), 6<<20))
		return out
	default:
		return b
	}
}
