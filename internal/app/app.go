package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"wikibot/internal/cache"
	"wikibot/internal/config"
	"wikibot/internal/feed"
	"wikibot/internal/parser"
	"wikibot/internal/publisher"
	"wikibot/internal/schedule"
	"wikibot/internal/toot"
)

// Publisher sends a finished toot to the network.
type Publisher interface {
	Publish(ctx context.Context, text string, media *toot.Media) (string, error)
}

type BotApp struct {
	config    *config.BotConfig
	store     *cache.Store
	loader    cache.Loader
	publisher Publisher
	client    *http.Client
	out       io.Writer
	now       func() time.Time
}

type RunOptions struct {
	DryRun bool
	Item   *int
}

func NewBotApp(cfg *config.BotConfig) *BotApp {
	timeout := time.Duration(cfg.Feed.TimeoutSec) * time.Second

	bot := &BotApp{
		config: cfg,
		store:  cache.NewStore(cfg.Cache.Path),
		loader: feed.NewWikiFeed(cfg.Feed.URL, timeout),
		client: &http.Client{Timeout: timeout},
		out:    os.Stdout,
		now:    time.Now,
	}
	if cfg.AccessToken != "" {
		bot.publisher = publisher.New(cfg.Mastodon.APIBaseURL, cfg.AccessToken, cfg.Mastodon.Visibility)
	}
	return bot
}

// Run executes one bot invocation: refresh the cached feed entry, parse it,
// pick this hour's record, format it and toot it. In dry-run mode the
// formatted text is printed instead of published.
func (a *BotApp) Run(ctx context.Context, opts RunOptions) error {
	entry, err := a.store.GetOrRefresh(ctx, a.loader)
	if err != nil {
		return err
	}

	records, err := parser.Parse(entry, a.config.Feed.BaseURL)
	if err != nil {
		return err
	}

	table := schedule.Table(a.config.Schedule)
	if err := table.Validate(len(records)); err != nil {
		return err
	}

	now := a.now()
	idx, ok := table.Select(opts.Item, now.Hour())
	if !ok {
		fmt.Fprintf(a.out, "%s: Nothing to toot about.\n", now.Format(time.RFC3339))
		return nil
	}
	if idx < 0 || idx >= len(records) {
		return fmt.Errorf("item index %d out of range (feed entry has %d events)", idx, len(records))
	}

	record := records[idx]
	text := toot.Format(record, now)

	if opts.DryRun {
		fmt.Fprintln(a.out, text)
		return nil
	}

	media, err := toot.DownloadMedia(ctx, a.client, record.Image)
	if err != nil {
		return err
	}

	if _, err := a.publisher.Publish(ctx, text, media); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s: Successfully tooted!\n", a.now().Format(time.RFC3339))
	return nil
}
