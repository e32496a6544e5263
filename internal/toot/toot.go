package toot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"wikibot/internal/models"
)

// Media is a downloaded image ready to attach to a status.
type Media struct {
	Data        []byte
	Description string
}

// Format renders the toot text for one event record.
func Format(rec models.EventRecord, today time.Time) string {
	text := fmt.Sprintf("Heute vor %d Jahren:\n\n%s", today.Year()-rec.Year, rec.Text)
	if len(rec.Links) > 0 {
		text = text + "\n\n" + rec.Links[0]
	}
	return text
}

// DownloadMedia fetches the image an event record points at, carrying the
// alt text along as the accessibility description. A nil image yields a
// nil payload without error.
func DownloadMedia(ctx context.Context, client *http.Client, img *models.Image) (*Media, error) {
	if img == nil {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, img.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download image %s: HTTP %d", img.URL, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Media{Data: data, Description: img.AltText}, nil
}
