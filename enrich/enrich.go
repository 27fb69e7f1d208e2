package enrich

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/univac-1/ai-info-rss-feed/hatena"
	"github.com/univac-1/ai-info-rss-feed/internal"
	"github.com/univac-1/ai-info-rss-feed/og"
)

// Result carries the three enrichment maps, all keyed by exact link string.
type Result struct {
	ItemOg     map[string]internal.OgObject
	ItemCounts map[string]int
	BlogOg     map[string]internal.OgObject
}

// MergedOg combines the entry and blog OG maps into one lookup table.
func (r *Result) MergedOg() map[string]internal.OgObject {
	merged := make(map[string]internal.OgObject, len(r.ItemOg)+len(r.BlogOg))
	for k, v := range r.ItemOg {
		merged[k] = v
	}
	for k, v := range r.BlogOg {
		merged[k] = v
	}
	return merged
}

// Orchestrator runs the enrichment fetches over the aggregated entries and
// the source feeds. Unlike the per-URL fetchers underneath, an error at this
// level is fatal to the whole run.
type Orchestrator struct {
	log    *slog.Logger
	og     *og.Fetcher
	hatena *hatena.Client
}

func NewOrchestrator(log *slog.Logger, ogf *og.Fetcher, hc *hatena.Client) *Orchestrator {
	return &Orchestrator{log: log, og: ogf, hatena: hc}
}

// Run performs, in sequence: OG lookups for every entry link, bookmark counts
// for every entry link, and OG lookups for every source feed link.
func (o *Orchestrator) Run(ctx context.Context, items []internal.Entry, feeds []internal.Source) (*Result, error) {
	o.log.Info("enrichment started",
		slog.Int("entries", len(items)),
		slog.Int("feeds", len(feeds)),
	)

	itemLinks := make([]string, 0, len(items))
	for _, item := range items {
		if item.Link != "" {
			itemLinks = append(itemLinks, item.Link)
		}
	}
	blogLinks := make([]string, 0, len(feeds))
	for _, feed := range feeds {
		if feed.SiteLink != "" {
			blogLinks = append(blogLinks, feed.SiteLink)
		}
	}

	itemOg, err := o.og.FetchAll(ctx, itemLinks)
	if err != nil {
		return nil, fmt.Errorf("entry og fetch: %w", err)
	}
	itemCounts, err := o.hatena.Counts(ctx, itemLinks)
	if err != nil {
		return nil, fmt.Errorf("hatena count fetch: %w", err)
	}
	blogOg, err := o.og.FetchAll(ctx, blogLinks)
	if err != nil {
		return nil, fmt.Errorf("blog og fetch: %w", err)
	}

	o.log.Info("enrichment complete",
		slog.Int("entry_og", len(itemOg)),
		slog.Int("counts", len(itemCounts)),
		slog.Int("blog_og", len(blogOg)),
	)
	return &Result{ItemOg: itemOg, ItemCounts: itemCounts, BlogOg: blogOg}, nil
}
