package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/univac-1/ai-info-rss-feed/charset"
	"github.com/univac-1/ai-info-rss-feed/internal"
)

// Crawler fetches configured feeds under a bounded degree of parallelism.
type Crawler struct {
	log         *slog.Logger
	client      *http.Client
	concurrency int
}

func New(log *slog.Logger, concurrency int) *Crawler {
	return &Crawler{
		log:         log,
		client:      &http.Client{Timeout: internal.FeedFetchTimeout},
		concurrency: concurrency,
	}
}

// FetchFeeds retrieves every source concurrently, bounded by the configured
// limit, and returns the subset that responded with 200 and parsed into at
// least one entry. Failed sources are logged and dropped; the call returns
// only after every fetch has resolved.
func (c *Crawler) FetchFeeds(ctx context.Context, sources []internal.Source) []internal.Source {
	c.log.Info("fetching feeds", slog.Int("count", len(sources)))

	// One slot per source, written only by its own task; the map-free join
	// below keeps this lock-free.
	results := make([]*internal.Source, len(sources))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			fetched, err := c.fetchFeed(ctx, src)
			if err != nil {
				c.log.Warn("feed fetch failed",
					slog.String("url", src.FeedURL),
					slog.Any("err", err),
				)
				return nil
			}
			results[i] = fetched
			c.log.Info("feed fetched",
				slog.String("url", src.FeedURL),
				slog.Int("entries", len(fetched.Entries)),
			)
			return nil
		})
	}
	g.Wait()

	feeds := make([]internal.Source, 0, len(sources))
	for _, r := range results {
		if r != nil {
			feeds = append(feeds, *r)
		}
	}
	c.log.Info("feed fetch complete", slog.Int("fetched", len(feeds)))
	return feeds
}

func (c *Crawler) fetchFeed(ctx context.Context, src internal.Source) (*internal.Source, error) {
	ctx, cancel := context.WithTimeout(ctx, internal.FeedFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.FeedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, */*")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	body := charset.Decode(raw, charset.FromContentType(resp.Header.Get("Content-Type")))

	parsed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		return nil, err
	}
	if len(parsed.Items) == 0 {
		return nil, errors.New("feed has no entries")
	}

	out := src
	out.Title = parsed.Title
	if out.Title == "" {
		out.Title = "Unknown"
	}
	out.SiteLink = parsed.Link
	out.Entries = make([]internal.Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		out.Entries = append(out.Entries, newEntry(item, out))
	}
	return &out, nil
}

// newEntry normalizes one gofeed item; every external field is treated as
// optional. Content falls back to the summary when the feed has no structured
// content element.
func newEntry(item *gofeed.Item, src internal.Source) internal.Entry {
	e := internal.Entry{
		Title:      item.Title,
		Link:       item.Link,
		Published:  item.Published,
		RawSummary: item.Description,
		RawContent: item.Content,
		Categories: item.Categories,
		FeedTitle:  src.Title,
		FeedLink:   src.SiteLink,
		Category:   src.Category,
	}
	if e.RawContent == "" {
		e.RawContent = item.Description
	}
	if item.Author != nil {
		e.Author = item.Author.Name
	}
	if item.PublishedParsed != nil {
		t := item.PublishedParsed.UTC()
		e.PublishedAt = &t
	} else if item.UpdatedParsed != nil {
		t := item.UpdatedParsed.UTC()
		e.PublishedAt = &t
	}
	return e
}
