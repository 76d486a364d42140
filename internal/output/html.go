package output

import (
	"bytes"
	"html/template"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"jobradar/internal/domain"
	"jobradar/internal/normalize"
)

const htmlReport = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>JobRadar - {{.RunDate}}</title>
  <style>
    body { font-family: Arial, sans-serif; font-size: 13px; margin: 20px; }
    h1   { color: #2c3e50; }
    table { border-collapse: collapse; width: 100%; }
    th   { background: #2c3e50; color: white; padding: 8px; text-align: left; }
    td   { border: 1px solid #ddd; padding: 6px; vertical-align: top; }
    tr:nth-child(even) { background: #f9f9f9; }
    .score-high { color: green; font-weight: bold; }
    .score-low  { color: red; font-weight: bold; }
    .score-mid  { color: #888; }
    a { color: #2980b9; }
  </style>
</head>
<body>
  <h1>JobRadar - Junior/Grad Tech Jobs</h1>
  <p>{{.Cities}} | Run date: {{.RunDate}} | {{.Count}} listings</p>
  <table>
    <thead>
      <tr>
        <th>Date</th><th>Source</th><th>Title</th><th>Company</th>
        <th>Location</th><th>Summary</th><th>Tags</th>
        <th>Visa Score</th><th>Visa Reason</th>
      </tr>
    </thead>
    <tbody>
{{- range .Rows}}
      <tr>
        <td>{{.Date}}</td>
        <td>{{.Source}}</td>
        <td><a href="{{.URL}}" target="_blank">{{.Title}}</a></td>
        <td>{{.Company}}</td>
        <td>{{.Location}}</td>
        <td>{{.Summary}}</td>
        <td>{{.Tags}}</td>
        <td class="{{.ScoreClass}}">{{.Score}}</td>
        <td>{{.Reason}}</td>
      </tr>
{{- end}}
    </tbody>
  </table>
</body>
</html>
`

var htmlTmpl = template.Must(template.New("report").Parse(htmlReport))

type htmlRow struct {
	Date       string
	Source     string
	URL        string
	Title      string
	Company    string
	Location   string
	Summary    string
	Tags       string
	Score      string
	ScoreClass string
	Reason     string
}

func scoreClass(score int) string {
	switch {
	case score >= 4:
		return "score-high"
	case score <= 1:
		return "score-low"
	default:
		return "score-mid"
	}
}

func scoreLabel(score int) string {
	if score < 0 {
		return "-"
	}
	return strconv.Itoa(score)
}

// SaveHTML writes jobs_YYYY-MM-DD.html under dir and returns the path.
func SaveHTML(dir string, listings []domain.Listing, cities []string, runDate time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := runFile(dir, "html", runDate)

	rows := make([]htmlRow, 0, len(listings))
	for _, l := range listings {
		summary := normalize.Truncate(l.Summary, 200)
		rows = append(rows, htmlRow{
			Date:       l.DateFound.Format(dateLayout),
			Source:     l.Source,
			URL:        l.URL,
			Title:      l.Title,
			Company:    l.Company,
			Location:   l.Location,
			Summary:    summary,
			Tags:       strings.Join(l.Tags, ", "),
			Score:      scoreLabel(l.VisaScore),
			ScoreClass: scoreClass(l.VisaScore),
			Reason:     l.VisaReason,
		})
	}

	var buf bytes.Buffer
	err := htmlTmpl.Execute(&buf, struct {
		RunDate string
		Cities  string
		Count   int
		Rows    []htmlRow
	}{
		RunDate: runDate.Format(dateLayout),
		Cities:  strings.Join(cities, " & "),
		Count:   len(listings),
		Rows:    rows,
	})
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	log.Printf("[output] HTML saved -> %s", path)
	return path, nil
}
