package render

import (
	"time"

	"github.com/univac-1/ai-info-rss-feed/internal"
	"github.com/univac-1/ai-info-rss-feed/textutil"
)

// SiteBaseURL is where the generated site is published.
const SiteBaseURL = "https://univac-1.github.io/ai-info-rss-feed/"

const (
	siteTitle       = "AI関連情報RSS"
	siteDescription = "AI関連情報をまとめたRSSフィード"
	siteLanguage    = "ja"
	siteGenerator   = "univac-1/ai-info-rss-feed"
)

// BuildAggregatedFeed projects the aggregated entries into the normalized
// model the renderers consume. Truncation limits and enrichment lookups are
// applied here exactly once so every output format agrees.
func BuildAggregatedFeed(items []internal.Entry, ogMap map[string]internal.OgObject, countMap map[string]int, now time.Time) internal.AggregatedFeed {
	f := internal.AggregatedFeed{
		Title:       siteTitle,
		Description: siteDescription,
		Language:    siteLanguage,
		Link:        SiteBaseURL,
		Updated:     now,
		Generator:   siteGenerator,
		Copyright:   siteGenerator,
		FeedLinks: internal.FeedLinks{
			Atom: SiteBaseURL + "feeds/atom.xml",
			RSS:  SiteBaseURL + "feeds/rss.xml",
			JSON: SiteBaseURL + "feeds/feed.json",
		},
		Image:   SiteBaseURL + "images/icon.png",
		Favicon: SiteBaseURL + "images/favicon.ico",
		Items:   make([]internal.RenderItem, 0, len(items)),
	}

	for _, item := range items {
		f.Items = append(f.Items, internal.RenderItem{
			Title:       item.Title,
			Link:        item.Link,
			Description: textutil.Truncate(item.CleanSummary, internal.MaxDescriptionLength),
			Content:     textutil.Truncate(item.CleanContent, internal.MaxContentLength),
			Published:   item.Published,
			Date:        item.PublishedAt,
			FeedTitle:   item.FeedTitle,
			FeedLink:    item.FeedLink,
			Category:    item.Category,
			Categories:  item.Categories,
			Author:      item.Author,
			OgImageURL:  ogMap[item.Link].ImageURL,
			HatenaCount: countMap[item.Link],
		})
	}
	return f
}

// entryTitle renders the fixed "<entry title> | <source feed title>" form.
func entryTitle(item internal.RenderItem) string {
	return item.Title + " | " + item.FeedTitle
}
