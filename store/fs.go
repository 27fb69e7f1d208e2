package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/go-multierror"
	jsoniter "github.com/json-iterator/go"

	"github.com/univac-1/ai-info-rss-feed/internal"
	"github.com/univac-1/ai-info-rss-feed/textutil"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// isoDateLayout renders timestamps with millisecond precision in UTC.
const isoDateLayout = "2006-01-02T15:04:05.000Z"

// FsStore writes the distribution set and the per-source blog summary to the
// site directories. Directory creation is idempotent.
type FsStore struct {
	log          *slog.Logger
	feedsDir     string
	blogFeedsDir string
}

func NewFsStore(log *slog.Logger, feedsDir, blogFeedsDir string) *FsStore {
	return &FsStore{log: log, feedsDir: feedsDir, blogFeedsDir: blogFeedsDir}
}

// WriteDistribution stores the three rendered formats under the feeds
// directory. All write errors are collected before returning.
func (s *FsStore) WriteDistribution(set internal.DistributionSet) error {
	s.log.Info("writing feed distribution set", slog.String("dir", s.feedsDir))

	if err := os.MkdirAll(s.feedsDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", s.feedsDir, err)
	}

	var errs *multierror.Error
	for _, out := range []struct {
		name string
		body string
	}{
		{"atom.xml", set.Atom},
		{"rss.xml", set.RSS},
		{"feed.json", set.JSON},
	} {
		path := filepath.Join(s.feedsDir, out.name)
		if err := os.WriteFile(path, []byte(out.body), 0o644); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("write %s: %w", out.name, err))
		}
	}
	return errs.ErrorOrNil()
}

type blogFeedItem struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	ContentHTML string `json:"content_html"`
	Link        string `json:"link"`
	ISODate     string `json:"isoDate"`
	HatenaCount int    `json:"hatenaCount"`
	OgImageURL  string `json:"ogImageUrl"`
}

type blogFeed struct {
	Title         string         `json:"title"`
	Link          string         `json:"link"`
	LinkMd5Hash   string         `json:"linkMd5Hash"`
	OgImageURL    string         `json:"ogImageUrl"`
	OgDescription string         `json:"ogDescription"`
	Items         []blogFeedItem `json:"items"`
}

// WriteBlogFeeds stores the per-source summary document. Each source carries
// its OG metadata and its ten most recent entries, newest first.
func (s *FsStore) WriteBlogFeeds(feeds []internal.Source, ogMap map[string]internal.OgObject, countMap map[string]int) error {
	s.log.Info("writing blog feed summaries",
		slog.String("dir", s.blogFeedsDir),
		slog.Int("feeds", len(feeds)),
	)

	blogFeeds := make([]blogFeed, 0, len(feeds))
	for _, feed := range feeds {
		og := ogMap[feed.SiteLink]
		blogFeeds = append(blogFeeds, blogFeed{
			Title:         feed.Title,
			Link:          feed.SiteLink,
			LinkMd5Hash:   textutil.MD5Hex(feed.SiteLink),
			OgImageURL:    og.ImageURL,
			OgDescription: og.Description,
			Items:         blogFeedItems(feed, ogMap, countMap),
		})
	}

	if err := os.MkdirAll(s.blogFeedsDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", s.blogFeedsDir, err)
	}

	body, err := json.MarshalIndent(blogFeeds, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(s.blogFeedsDir, "blog-feeds.json")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write blog-feeds.json: %w", err)
	}
	return nil
}

func blogFeedItems(feed internal.Source, ogMap map[string]internal.OgObject, countMap map[string]int) []blogFeedItem {
	dated := make([]internal.Entry, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		if e.PublishedAt == nil {
			continue
		}
		dated = append(dated, e)
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].PublishedAt.After(*dated[j].PublishedAt)
	})
	if len(dated) > internal.BlogSummaryItems {
		dated = dated[:internal.BlogSummaryItems]
	}

	items := make([]blogFeedItem, 0, len(dated))
	for _, e := range dated {
		summary := e.RawSummary
		if summary == "" {
			summary = e.RawContent
		}
		items = append(items, blogFeedItem{
			Title:       e.Title,
			Summary:     textutil.Clip(textutil.CleanHTML(summary), internal.MaxDescriptionLength),
			ContentHTML: textutil.Clip(e.RawContent, internal.MaxContentLength),
			Link:        e.Link,
			ISODate:     e.PublishedAt.UTC().Format(isoDateLayout),
			HatenaCount: countMap[e.Link],
			OgImageURL:  ogMap[e.Link].ImageURL,
		})
	}
	return items
}
