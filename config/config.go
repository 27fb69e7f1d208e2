package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gilliek/go-opml/opml"
	"github.com/pelletier/go-toml/v2"

	"github.com/univac-1/ai-info-rss-feed/internal"
)

// Config is everything the pipeline needs to run: the configured sources and
// the concurrency bounds, overridable through the environment.
type Config struct {
	Sources         []internal.Source
	FeedConcurrency int
	OgConcurrency   int
}

// Load reads the feed list at path. A ".opml" extension selects the OPML
// loader; anything else is treated as a TOML document mapping category names
// to lists of feed URLs. An empty list is valid.
func Load(path string) (*Config, error) {
	var (
		sources []internal.Source
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".opml":
		sources, err = loadOPML(path)
	default:
		sources, err = loadTOML(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load feed list %s: %w", path, err)
	}

	c := &Config{
		Sources:         sources,
		FeedConcurrency: getInt("FEED_FETCH_CONCURRENCY", internal.FeedFetchConcurrency),
		OgConcurrency:   getInt("OG_FETCH_CONCURRENCY", internal.OgFetchConcurrency),
	}
	if c.FeedConcurrency <= 0 {
		return nil, fmt.Errorf("FEED_FETCH_CONCURRENCY must be positive")
	}
	if c.OgConcurrency <= 0 {
		return nil, fmt.Errorf("OG_FETCH_CONCURRENCY must be positive")
	}
	return c, nil
}

func loadTOML(path string) ([]internal.Source, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var byCategory map[string][]string
	if err := toml.Unmarshal(raw, &byCategory); err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var sources []internal.Source
	for _, category := range categories {
		for _, feedURL := range byCategory[category] {
			sources = append(sources, internal.Source{
				FeedURL:  feedURL,
				Category: category,
			})
		}
	}
	return sources, nil
}

func loadOPML(path string) ([]internal.Source, error) {
	doc, err := opml.NewOPMLFromFile(path)
	if err != nil {
		return nil, err
	}

	var sources []internal.Source
	for _, outline := range doc.Body.Outlines {
		if outline.XMLURL != "" {
			sources = append(sources, internal.Source{
				FeedURL:  outline.XMLURL,
				Category: "uncategorized",
			})
			continue
		}

		category := outline.Title
		if category == "" {
			category = outline.Text
		}
		for _, sub := range outline.Outlines {
			if sub.XMLURL == "" {
				continue
			}
			sources = append(sources, internal.Source{
				FeedURL:  sub.XMLURL,
				Category: category,
			})
		}
	}
	return sources, nil
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}
