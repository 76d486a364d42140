package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobradar/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "jobradar.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db))
	return db
}

func TestInsertListingIfNew(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	l := domain.Listing{
		Source:     "Seek",
		Title:      "Graduate Software Engineer",
		Company:    "Acme",
		Location:   "Adelaide",
		URL:        "https://example.com/j/1",
		DateFound:  time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		Tags:       []string{"Graduate", "SWE"},
		VisaScore:  5,
		VisaReason: "[+] Visa sponsorship available",
		HashID:     "abc123",
	}

	added, err := InsertListingIfNew(ctx, db, l)
	require.NoError(t, err)
	assert.True(t, added)

	// same hash again is ignored
	added, err = InsertListingIfNew(ctx, db, l)
	require.NoError(t, err)
	assert.False(t, added)
}

func TestArchiveAndListRun(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	batch := []domain.Listing{
		{
			Source: "Seek", Title: "Junior Developer", Company: "Beta",
			Location: "Melbourne", URL: "https://example.com/j/2",
			DateFound: day, VisaScore: 2, VisaReason: "No specific signals found",
			HashID: "bbb",
		},
		{
			Source: "Seek", Title: "Graduate Software Engineer", Company: "Acme",
			Location: "Adelaide", URL: "https://example.com/j/1",
			DateFound: day, Tags: []string{"Graduate", "SWE"}, VisaScore: 5,
			VisaReason: "[+] Visa sponsorship available", HashID: "aaa",
		},
	}

	added, err := ArchiveRun(ctx, db, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	latest, err := LatestRunDate(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, day, latest)

	got, err := ListRun(ctx, db, day)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// high score first
	assert.Equal(t, "Graduate Software Engineer", got[0].Title)
	assert.Equal(t, []string{"Graduate", "SWE"}, got[0].Tags)
	assert.Equal(t, 5, got[0].VisaScore)
	assert.Equal(t, day, got[0].DateFound)
	assert.Equal(t, "Junior Developer", got[1].Title)
	assert.Nil(t, got[1].Tags)
}

func TestLatestRunDateEmpty(t *testing.T) {
	db := openTestDB(t)

	latest, err := LatestRunDate(context.Background(), db)
	require.NoError(t, err)
	assert.True(t, latest.IsZero())
}

func TestCleanupOldListings(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	old := domain.Listing{
		Source: "Seek", Title: "Stale", Company: "Acme", Location: "Adelaide",
		URL: "https://example.com/j/old", HashID: "old",
		DateFound: time.Now().AddDate(0, -4, 0),
	}
	fresh := domain.Listing{
		Source: "Seek", Title: "Fresh", Company: "Acme", Location: "Adelaide",
		URL: "https://example.com/j/new", HashID: "new",
		DateFound: time.Now(),
	}

	_, err := InsertListingIfNew(ctx, db, old)
	require.NoError(t, err)
	_, err = InsertListingIfNew(ctx, db, fresh)
	require.NoError(t, err)

	deleted, err := CleanupOldListings(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}
