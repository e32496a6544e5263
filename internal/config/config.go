package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

const (
	DefaultFeedURL    = "https://de.wikipedia.org/w/api.php?action=featuredfeed&feed=onthisday&feedformat=atom"
	DefaultBaseURL    = "https://de.wikipedia.org"
	DefaultCachePath  = "/tmp/wikibot.cache"
	DefaultAPIBaseURL = "https://chaos.social"
	DefaultVisibility = "unlisted"
	DefaultTimeoutSec = 20
)

type FeedConfig struct {
	URL        string `yaml:"url"`
	BaseURL    string `yaml:"base_url"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

type CacheConfig struct {
	Path string `yaml:"path"`
}

type MastodonConfig struct {
	APIBaseURL string `yaml:"api_base_url"`
	Visibility string `yaml:"visibility"`
}

type BotConfig struct {
	Feed     FeedConfig     `yaml:"feed"`
	Cache    CacheConfig    `yaml:"cache"`
	Mastodon MastodonConfig `yaml:"mastodon"`
	Schedule map[int]int    `yaml:"schedule"`

	// Set from the environment by the caller, never read from the file.
	AccessToken string `yaml:"-"`
}

func DefaultSchedule() map[int]int {
	return map[int]int{8: 0, 10: 1, 12: 2, 14: 3, 16: 4}
}

// LoadConfig reads the YAML config at path. A missing file is not an error:
// the bot runs on defaults alone. A present but unreadable or invalid file is.
func LoadConfig(path string) (*BotConfig, error) {
	var cfg BotConfig

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *BotConfig) {
	if cfg.Feed.URL == "" {
		cfg.Feed.URL = DefaultFeedURL
	}
	if cfg.Feed.BaseURL == "" {
		cfg.Feed.BaseURL = DefaultBaseURL
	}
	if cfg.Feed.TimeoutSec <= 0 {
		cfg.Feed.TimeoutSec = DefaultTimeoutSec
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = DefaultCachePath
	}
	if cfg.Mastodon.APIBaseURL == "" {
		cfg.Mastodon.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.Mastodon.Visibility == "" {
		cfg.Mastodon.Visibility = DefaultVisibility
	}
	if cfg.Schedule == nil {
		cfg.Schedule = DefaultSchedule()
	}
}

func validate(cfg *BotConfig) error {
	switch cfg.Mastodon.Visibility {
	case "public", "unlisted", "private":
	default:
		return fmt.Errorf("invalid visibility %q", cfg.Mastodon.Visibility)
	}
	for hour, idx := range cfg.Schedule {
		if hour < 0 || hour > 23 {
			return fmt.Errorf("schedule hour %d out of range", hour)
		}
		if idx < 0 {
			return fmt.Errorf("schedule index %d for hour %d is negative", idx, hour)
		}
	}
	return nil
}
