// Package output writes run results to the output directory in CSV, HTML,
// and Markdown form. File names carry the run date so consecutive runs on
// the same day overwrite each other.
package output

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"jobradar/internal/domain"
)

const dateLayout = "2006-01-02"

func runFile(dir, ext string, runDate time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("jobs_%s.%s", runDate.Format(dateLayout), ext))
}

var csvHeader = []string{
	"source", "title", "company", "location", "url",
	"date_found", "summary", "tags", "visa_score", "visa_reason", "hash_id",
}

// SaveCSV writes jobs_YYYY-MM-DD.csv under dir and returns the path.
func SaveCSV(dir string, listings []domain.Listing, runDate time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := runFile(dir, "csv", runDate)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, l := range listings {
		rec := []string{
			l.Source,
			l.Title,
			l.Company,
			l.Location,
			l.URL,
			l.DateFound.Format(dateLayout),
			l.Summary,
			strings.Join(l.Tags, "|"),
			strconv.Itoa(l.VisaScore),
			l.VisaReason,
			l.HashID,
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	log.Printf("[output] CSV saved -> %s", path)
	return path, nil
}
