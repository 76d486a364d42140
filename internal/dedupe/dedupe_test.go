package dedupe

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobradar/internal/domain"
)

func listing(url string) domain.Listing {
	return domain.Listing{
		Title:  "Graduate Engineer",
		URL:    url,
		HashID: domain.HashID(url, "Graduate Engineer", "Acme", "Adelaide"),
	}
}

func TestDeduplicateFirstRunKeepsAll(t *testing.T) {
	d := New(NewMemoryStore())

	in := []domain.Listing{listing("https://a/1"), listing("https://a/2")}
	fresh, err := d.Deduplicate(in, true)
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
}

func TestDeduplicateSecondRunEmpty(t *testing.T) {
	d := New(NewMemoryStore())
	in := []domain.Listing{listing("https://a/1"), listing("https://a/2")}

	_, err := d.Deduplicate(in, true)
	require.NoError(t, err)

	again, err := d.Deduplicate(in, true)
	require.NoError(t, err)
	assert.Empty(t, again, "re-running the same batch should yield nothing new")
}

func TestDeduplicateWithinBatch(t *testing.T) {
	d := New(NewMemoryStore())

	// same job found by two search terms
	in := []domain.Listing{listing("https://a/1"), listing("https://a/1")}
	fresh, err := d.Deduplicate(in, true)
	require.NoError(t, err)
	assert.Len(t, fresh, 1)
}

func TestDeduplicateDryRunDoesNotPersist(t *testing.T) {
	store := NewMemoryStore()
	d := New(store)
	in := []domain.Listing{listing("https://a/1")}

	_, err := d.Deduplicate(in, false)
	require.NoError(t, err)
	assert.Empty(t, store.Load(), "dry run must leave the seen-set untouched")

	fresh, err := d.Deduplicate(in, true)
	require.NoError(t, err)
	assert.Len(t, fresh, 1, "listing should still count as new on the next real run")
}

func TestResetState(t *testing.T) {
	d := New(NewMemoryStore())
	in := []domain.Listing{listing("https://a/1")}

	_, err := d.Deduplicate(in, true)
	require.NoError(t, err)
	require.NoError(t, d.ResetState())

	fresh, err := d.Deduplicate(in, true)
	require.NoError(t, err)
	assert.Len(t, fresh, 1)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "seen_jobs.json")
	s := NewFileStore(path)

	assert.Empty(t, s.Load(), "missing state file reads as empty")

	require.NoError(t, s.Replace(map[string]bool{"aaa": true, "bbb": true}))
	assert.Equal(t, map[string]bool{"aaa": true, "bbb": true}, s.Load())

	// the on-disk form is a sorted JSON array
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var hashes []string
	require.NoError(t, json.Unmarshal(b, &hashes))
	assert.Equal(t, []string{"aaa", "bbb"}, hashes)
}

func TestFileStoreCorruptReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen_jobs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewFileStore(path)
	assert.Empty(t, s.Load())
}

func TestFileStoreReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen_jobs.json")
	s := NewFileStore(path)

	require.NoError(t, s.Replace(map[string]bool{"aaa": true}))
	require.NoError(t, s.Reset())
	assert.Empty(t, s.Load())

	// resetting twice is fine
	require.NoError(t, s.Reset())
}
