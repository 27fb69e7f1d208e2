package render

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/univac-1/ai-info-rss-feed/internal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type jsonFeed struct {
	Version     string         `json:"version"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	HomePageURL string         `json:"home_page_url"`
	FeedURL     string         `json:"feed_url"`
	Language    string         `json:"language"`
	Items       []jsonFeedItem `json:"items"`
}

type jsonFeedItem struct {
	ID            string           `json:"id"`
	URL           string           `json:"url"`
	Title         string           `json:"title"`
	ContentHTML   string           `json:"content_html"`
	Summary       string           `json:"summary"`
	DatePublished string           `json:"date_published"`
	Authors       []jsonFeedAuthor `json:"authors"`
	Tags          []string         `json:"tags"`
}

type jsonFeedAuthor struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// JSONFeed serializes the aggregated feed as a JSON Feed 1.1 document.
// The date_published field carries the entry's original published string
// verbatim. Pure function: no network or filesystem access.
func JSONFeed(f internal.AggregatedFeed) (string, error) {
	out := jsonFeed{
		Version:     "https://jsonfeed.org/version/1.1",
		Title:       f.Title,
		Description: f.Description,
		HomePageURL: f.Link,
		FeedURL:     f.Link + "feed.json",
		Language:    f.Language,
		Items:       make([]jsonFeedItem, 0, len(f.Items)),
	}

	for _, item := range f.Items {
		out.Items = append(out.Items, jsonFeedItem{
			ID:            item.Link,
			URL:           item.Link,
			Title:         item.Title,
			ContentHTML:   item.Content,
			Summary:       item.Description,
			DatePublished: item.Published,
			Authors: []jsonFeedAuthor{
				{Name: item.FeedTitle, URL: item.FeedLink},
			},
			Tags: []string{item.Category},
		})
	}

	body, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(body), nil
}
