package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"wikibot/internal/app"
	"wikibot/internal/config"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "only print the content of the toot")
	item := flag.Int("item", -1, "feed item to toot about, overriding the schedule")
	cfgPath := flag.String("config", "config.yaml", "path to YAML config")
	flag.Parse()

	// Best effort, credentials may come from the real environment instead.
	godotenv.Load()

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		panic(err)
	}

	if !*dryRun {
		cfg.AccessToken = os.Getenv("MASTODON_ACCESS_TOKEN")
		if cfg.AccessToken == "" {
			panic("Mastodon access token missing. Please provide it as environment variable MASTODON_ACCESS_TOKEN")
		}
	}

	opts := app.RunOptions{DryRun: *dryRun}
	if *item >= 0 {
		opts.Item = item
	}

	bot := app.NewBotApp(cfg)

	if err := bot.Run(context.Background(), opts); err != nil {
		panic(err)
	}
}
