package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"wikibot/internal/models"
)

// Loader supplies a fresh feed entry when the cached one is stale.
type Loader interface {
	LoadToday(ctx context.Context) (models.FeedEntry, error)
}

// Store is the single cache slot holding the last fetched feed entry.
// There is one slot per deployment, overwritten on each refresh; runs are
// serialized by the external timer, so no locking.
type Store struct {
	Path string
	Now  func() time.Time
}

func NewStore(path string) *Store {
	return &Store{Path: path, Now: time.Now}
}

// GetOrRefresh returns the cached entry while it is still today's and
// otherwise asks the loader, overwriting the slot with whatever it returns.
// Any read problem counts as a miss, not as an error.
func (s *Store) GetOrRefresh(ctx context.Context, loader Loader) (models.FeedEntry, error) {
	if entry, ok := s.read(); ok {
		return entry, nil
	}

	entry, err := loader.LoadToday(ctx)
	if err != nil {
		return models.FeedEntry{}, err
	}
	if err := s.write(entry); err != nil {
		return models.FeedEntry{}, err
	}
	return entry, nil
}

func (s *Store) read() (models.FeedEntry, bool) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return models.FeedEntry{}, false
	}
	var entry models.FeedEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return models.FeedEntry{}, false
	}
	updated, err := entry.UpdatedTime()
	if err != nil {
		return models.FeedEntry{}, false
	}
	if dateOf(updated) != dateOf(s.Now()) {
		return models.FeedEntry{}, false
	}
	return entry, true
}

func (s *Store) write(entry models.FeedEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("write cache %s: %w", s.Path, err)
	}
	return nil
}

func dateOf(t time.Time) string {
	return t.Format("2006-01-02")
}
