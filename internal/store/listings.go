package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"jobradar/internal/domain"
)

const dateLayout = "2006-01-02"

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS listings (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  hash_id TEXT NOT NULL,
  source TEXT NOT NULL,
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  location TEXT NOT NULL,
  url TEXT NOT NULL,
  summary TEXT NOT NULL DEFAULT '',
  date_found TEXT NOT NULL,
  tags TEXT NOT NULL DEFAULT '',
  visa_score INTEGER NOT NULL DEFAULT -1,
  visa_reason TEXT NOT NULL DEFAULT ''
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_listings_hash_id
ON listings(hash_id);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_listings_date_found
ON listings(date_found DESC);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

// InsertListingIfNew archives a scored listing; a hash collision means it was
// archived by an earlier run and is left alone.
func InsertListingIfNew(ctx context.Context, db *sql.DB, l domain.Listing) (added bool, err error) {
	res, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO listings(hash_id, source, title, company, location, url, summary, date_found, tags, visa_score, visa_reason)
VALUES(?,?,?,?,?,?,?,?,?,?,?);`,
		l.HashID,
		l.Source,
		l.Title,
		l.Company,
		l.Location,
		l.URL,
		l.Summary,
		l.DateFound.Format(dateLayout),
		strings.Join(l.Tags, "|"),
		l.VisaScore,
		l.VisaReason,
	)
	if err != nil {
		return false, fmt.Errorf("insert listing: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ArchiveRun inserts every listing of a finished run.
func ArchiveRun(ctx context.Context, db *sql.DB, listings []domain.Listing) (added int, err error) {
	for _, l := range listings {
		ok, ierr := InsertListingIfNew(ctx, db, l)
		if ierr != nil {
			return added, ierr
		}
		if ok {
			added++
		}
	}
	return added, nil
}

// LatestRunDate returns the most recent date_found in the archive, or the
// zero time when the archive is empty.
func LatestRunDate(ctx context.Context, db *sql.DB) (time.Time, error) {
	var d sql.NullString
	err := db.QueryRowContext(ctx, `SELECT MAX(date_found) FROM listings;`).Scan(&d)
	if err != nil {
		return time.Time{}, err
	}
	if !d.Valid || d.String == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, d.String)
}

// ListRun returns the archived listings for one run date, sorted the way the
// pipeline emits them: visa score descending, then title.
func ListRun(ctx context.Context, db *sql.DB, day time.Time) ([]domain.Listing, error) {
	rows, err := db.QueryContext(ctx, `
SELECT hash_id, source, title, company, location, url, summary, date_found, tags, visa_score, visa_reason
FROM listings
WHERE date_found = ?
ORDER BY visa_score DESC, LOWER(title) ASC;`,
		day.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Listing
	for rows.Next() {
		var l domain.Listing
		var dateStr, tags string
		if err := rows.Scan(
			&l.HashID,
			&l.Source,
			&l.Title,
			&l.Company,
			&l.Location,
			&l.URL,
			&l.Summary,
			&dateStr,
			&tags,
			&l.VisaScore,
			&l.VisaReason,
		); err != nil {
			return nil, err
		}
		l.DateFound, _ = time.Parse(dateLayout, dateStr)
		if tags != "" {
			l.Tags = strings.Split(tags, "|")
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// CleanupOldListings drops archive rows older than three months.
func CleanupOldListings(db *sql.DB) (deleted int64, err error) {
	res, err := db.Exec(`
DELETE FROM listings
WHERE date_found < date('now', '-3 months');
`)
	if err != nil {
		return 0, fmt.Errorf("cleanup old listings: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
