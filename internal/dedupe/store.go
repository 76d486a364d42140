package dedupe

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"
)

// Store holds the set of hash IDs seen in previous runs.
type Store interface {
	// Load returns the full seen-set. Absent or unreadable state reads as
	// empty; Load never fails the run.
	Load() map[string]bool
	// Replace overwrites the persisted set in its entirety.
	Replace(seen map[string]bool) error
	// Reset deletes the persisted set.
	Reset() error
}

// FileStore keeps the seen-set as a JSON array of hashes on disk, sorted on
// write for stable diffs. Writes go through a temp file + rename and are
// guarded by a flock against a concurrent reader in the same process tree.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Load() map[string]bool {
	seen := make(map[string]bool)

	b, err := os.ReadFile(s.Path)
	if err != nil {
		return seen
	}

	var hashes []string
	if err := json.Unmarshal(b, &hashes); err != nil {
		// corrupt state reads as empty rather than failing the run
		return seen
	}
	for _, h := range hashes {
		seen[h] = true
	}
	return seen
}

func (s *FileStore) Replace(seen map[string]bool) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}

	lock := flock.New(s.Path + ".lock")
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	hashes := make([]string, 0, len(seen))
	for h := range seen {
		hashes = append(hashes, h)
	}
	sort.Strings(hashes)

	b, err := json.MarshalIndent(hashes, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path)
}

func (s *FileStore) Reset() error {
	err := os.Remove(s.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryStore is an in-process Store for tests.
type MemoryStore struct {
	seen map[string]bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{seen: make(map[string]bool)}
}

func (s *MemoryStore) Load() map[string]bool {
	out := make(map[string]bool, len(s.seen))
	for h := range s.seen {
		out[h] = true
	}
	return out
}

func (s *MemoryStore) Replace(seen map[string]bool) error {
	s.seen = make(map[string]bool, len(seen))
	for h := range seen {
		s.seen[h] = true
	}
	return nil
}

func (s *MemoryStore) Reset() error {
	s.seen = make(map[string]bool)
	return nil
}
