package internal

import "time"

// Source is one configured feed origin. FeedURL and Category come from the
// feed list; the rest is filled in after a successful fetch.
type Source struct {
	FeedURL  string
	Category string

	Title    string
	SiteLink string
	Entries  []Entry
}

// Entry is a single article taken from a feed. PublishedAt is resolved once
// at parse time and is nil when the feed carried no usable date.
type Entry struct {
	Title       string
	Link        string
	Published   string
	PublishedAt *time.Time
	RawSummary  string
	RawContent  string

	CleanSummary string
	CleanContent string

	Author     string
	Categories []string

	FeedTitle string
	FeedLink  string
	Category  string
}

// OgObject holds Open Graph preview metadata for a URL. A zero value and a
// missing map entry mean the same thing.
type OgObject struct {
	ImageURL    string
	Description string
}

type FeedLinks struct {
	Atom string
	RSS  string
	JSON string
}

// AggregatedFeed is the single normalized model every renderer reads from.
type AggregatedFeed struct {
	Title       string
	Description string
	Language    string
	Link        string
	Updated     time.Time
	Generator   string
	Copyright   string
	FeedLinks   FeedLinks
	Image       string
	Favicon     string
	Items       []RenderItem
}

// RenderItem is the enriched per-entry projection consumed by the renderers.
type RenderItem struct {
	Title       string
	Link        string
	Description string
	Content     string
	Published   string
	Date        *time.Time
	FeedTitle   string
	FeedLink    string
	Category    string
	Categories  []string
	Author      string
	OgImageURL  string
	HatenaCount int
}

// DistributionSet is the rendered output in all three wire formats.
type DistributionSet struct {
	Atom string
	RSS  string
	JSON string
}
