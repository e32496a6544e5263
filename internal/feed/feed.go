package feed

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"wikibot/internal/models"
)

// ErrNoEntryToday means no item in the upstream feed carries today's date.
var ErrNoEntryToday = errors.New("no feed entry for today")

type WikiFeed struct {
	URL    string
	Client *http.Client
	Now    func() time.Time
}

func NewWikiFeed(feedURL string, timeout time.Duration) *WikiFeed {
	return &WikiFeed{URL: feedURL, Client: newHTTPClient(timeout), Now: time.Now}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}

// LoadToday fetches the feed and returns the item whose updated date equals
// the current calendar date. Items with unparseable timestamps are skipped,
// since the scan only has to find today's item.
func (f *WikiFeed) LoadToday(ctx context.Context) (models.FeedEntry, error) {
	fp := gofeed.NewParser()
	fp.Client = f.Client

	parsed, err := fp.ParseURLWithContext(f.URL, ctx)
	if err != nil {
		return models.FeedEntry{}, fmt.Errorf("fetch feed: %w", err)
	}

	today := dateOf(f.Now())
	for _, item := range parsed.Items {
		ts, err := time.Parse(models.UpdatedLayout, item.Updated)
		if err != nil {
			continue
		}
		if dateOf(ts) == today {
			return models.FeedEntry{Updated: item.Updated, Summary: item.Description}, nil
		}
	}
	return models.FeedEntry{}, ErrNoEntryToday
}

func dateOf(t time.Time) string {
	return t.Format("2006-01-02")
}
