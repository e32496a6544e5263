package models

import "time"

// Layout of the feed's updated timestamps.
const UpdatedLayout = "2006-01-02T15:04:05Z"

// FeedEntry is one day's feed item, as delivered upstream and as persisted
// in the cache slot. Updated keeps the feed's raw %Y-%m-%dT%H:%M:%SZ string.
type FeedEntry struct {
	Updated string `json:"updated"`
	Summary string `json:"summary"`
}

// UpdatedTime parses the raw updated timestamp. The timestamp always
// corresponds to the day the entry is about.
func (e FeedEntry) UpdatedTime() (time.Time, error) {
	return time.Parse(UpdatedLayout, e.Updated)
}

type Image struct {
	URL     string
	AltText string
}

// EventRecord is one historical event parsed out of a feed entry.
// Links never contains the year link or the image link.
type EventRecord struct {
	Text     string
	Year     int
	Links    []string
	YearLink string
	Image    *Image
}
