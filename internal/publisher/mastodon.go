package publisher

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mattn/go-mastodon"

	"wikibot/internal/toot"
)

// Mastodon posts finished toots with a fixed visibility.
type Mastodon struct {
	client     *mastodon.Client
	visibility string
}

func New(server, accessToken, visibility string) *Mastodon {
	return &Mastodon{
		client: mastodon.NewClient(&mastodon.Config{
			Server:      server,
			AccessToken: accessToken,
		}),
		visibility: visibility,
	}
}

// Publish uploads the media payload (if any) and posts the status,
// returning the id of the new toot.
func (p *Mastodon) Publish(ctx context.Context, text string, media *toot.Media) (string, error) {
	var mediaIDs []mastodon.ID

	if media != nil {
		att, err := p.client.UploadMediaFromMedia(ctx, &mastodon.Media{
			File:        bytes.NewReader(media.Data),
			Description: media.Description,
		})
		if err != nil {
			return "", fmt.Errorf("upload media: %w", err)
		}
		mediaIDs = append(mediaIDs, att.ID)
	}

	status, err := p.client.PostStatus(ctx, &mastodon.Toot{
		Status:     text,
		MediaIDs:   mediaIDs,
		Visibility: p.visibility,
	})
	if err != nil {
		return "", fmt.Errorf("post status: %w", err)
	}
	return string(status.ID), nil
}
