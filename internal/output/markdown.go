package output

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"jobradar/internal/domain"
)

// SaveMarkdown writes jobs_YYYY-MM-DD.md under dir and returns the path.
func SaveMarkdown(dir string, listings []domain.Listing, cities []string, runDate time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := runFile(dir, "md", runDate)

	var b strings.Builder
	fmt.Fprintf(&b, "# JobRadar - %s\n\n", runDate.Format(dateLayout))
	fmt.Fprintf(&b, "*%s | %d listings*\n\n", strings.Join(cities, " & "), len(listings))
	b.WriteString("| Date | Source | Title | Company | Location | Tags | Visa | Visa Reason |\n")
	b.WriteString("|------|--------|-------|---------|----------|------|------|-------------|\n")

	for _, l := range listings {
		fmt.Fprintf(&b, "| %s | %s | [%s](%s) | %s | %s | %s | %s | %s |\n",
			l.DateFound.Format(dateLayout),
			l.Source,
			mdEscape(l.Title),
			l.URL,
			mdEscape(l.Company),
			mdEscape(l.Location),
			strings.Join(l.Tags, ", "),
			scoreLabel(l.VisaScore),
			mdEscape(l.VisaReason),
		)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", err
	}
	log.Printf("[output] Markdown saved -> %s", path)
	return path, nil
}

// mdEscape keeps pipes in titles or reasons from breaking the table.
func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
