package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobradar/internal/domain"
)

var testRunDate = time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

func sampleListings() []domain.Listing {
	return []domain.Listing{
		{
			Source:     "Seek",
			Title:      "Graduate Software Engineer",
			Company:    "Acme",
			Location:   "Adelaide",
			URL:        "https://example.com/j/1",
			Summary:    "visa sponsorship available",
			DateFound:  testRunDate,
			Tags:       []string{"Graduate", "SWE"},
			VisaScore:  5,
			VisaReason: "[+] Visa sponsorship available",
			HashID:     "abc123",
		},
		{
			Source:     "LinkedIn",
			Title:      "Junior Developer | Platform",
			Company:    "Beta",
			Location:   "Melbourne",
			URL:        "https://example.com/j/2",
			DateFound:  testRunDate,
			VisaScore:  2,
			VisaReason: "No specific signals found",
			HashID:     "def456",
		},
	}
}

func TestSaveCSV(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveCSV(dir, sampleListings(), testRunDate)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "jobs_2026-08-30.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two records")

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "Graduate Software Engineer", rows[1][1])
	assert.Equal(t, "Graduate|SWE", rows[1][7], "tags joined with pipe")
	assert.Equal(t, "5", rows[1][8])
	assert.Equal(t, "abc123", rows[1][10])
}

func TestSaveHTML(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveHTML(dir, sampleListings(), []string{"Adelaide", "Melbourne"}, testRunDate)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "jobs_2026-08-30.html"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(b)

	assert.Contains(t, html, "Adelaide &amp; Melbourne")
	assert.Contains(t, html, `<a href="https://example.com/j/1"`)
	assert.Contains(t, html, `class="score-high">5<`)
	assert.Contains(t, html, `class="score-mid">2<`)
	assert.Contains(t, html, "2 listings")
}

func TestSaveMarkdown(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveMarkdown(dir, sampleListings(), []string{"Adelaide"}, testRunDate)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "jobs_2026-08-30.md"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	md := string(b)

	assert.Contains(t, md, "# JobRadar - 2026-08-30")
	assert.Contains(t, md, "[Graduate Software Engineer](https://example.com/j/1)")
	// a pipe inside a title must not break the table
	assert.Contains(t, md, `Junior Developer \| Platform`)

	for _, line := range strings.Split(strings.TrimSpace(md), "\n")[4:] {
		assert.True(t, strings.HasPrefix(line, "|"), "table row: %q", line)
	}
}

func TestScoreClass(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{5, "score-high"},
		{4, "score-high"},
		{3, "score-mid"},
		{2, "score-mid"},
		{1, "score-low"},
		{0, "score-low"},
	}
	for _, tc := range cases {
		if got := scoreClass(tc.score); got != tc.want {
			t.Errorf("scoreClass(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}
