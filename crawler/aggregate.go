package crawler

import (
	"log/slog"
	"sort"
	"time"

	"github.com/univac-1/ai-info-rss-feed/internal"
	"github.com/univac-1/ai-info-rss-feed/textutil"
)

// Aggregate flattens the fetched feeds into a single time-filtered sequence,
// newest first. Entries without a resolvable date never make it in, and ties
// keep their encounter order.
func (c *Crawler) Aggregate(feeds []internal.Source, cutoff time.Time) []internal.Entry {
	c.log.Info("aggregating feeds", slog.Int("feeds", len(feeds)))

	var items []internal.Entry
	for _, feed := range feeds {
		for _, e := range feed.Entries {
			if e.PublishedAt == nil || e.PublishedAt.Before(cutoff) {
				continue
			}
			e.CleanSummary = textutil.CleanHTML(e.RawSummary)
			e.CleanContent = textutil.CleanHTML(e.RawContent)
			items = append(items, e)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(*items[j].PublishedAt)
	})

	c.log.Info("aggregation complete", slog.Int("entries", len(items)))
	return items
}
