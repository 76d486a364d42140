package domain

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"
)

// RawJob is what a connector hands over: best-effort strings scraped from a
// board, any of which may be empty.
type RawJob struct {
	Title      string
	Company    string
	Location   string
	URL        string
	Summary    string
	DatePosted string
}

// Listing is a normalised job listing from any source.
type Listing struct {
	Source     string
	Title      string
	Company    string
	Location   string
	URL        string
	Summary    string
	DateFound  time.Time
	Tags       []string
	VisaScore  int // -1 = not yet scored; 0-5 once scored
	VisaReason string
	HashID     string
}

// HashID returns the stable identity of a listing: the URL when present,
// otherwise title|company|location. Case and surrounding whitespace of the
// URL do not change the result.
func HashID(url, title, company, location string) string {
	key := strings.ToLower(strings.TrimSpace(url))
	if key == "" {
		key = strings.ToLower(title + "|" + company + "|" + location)
	}
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}
