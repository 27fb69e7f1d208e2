package render

import (
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/require"

	"github.com/univac-1/ai-info-rss-feed/internal"
)

var renderNow = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

func sampleItems() []internal.Entry {
	published := time.Date(2026, 8, 24, 9, 30, 0, 0, time.UTC)
	return []internal.Entry{{
		Title:        "First Post",
		Link:         "https://x.test/a",
		Published:    "Mon, 24 Aug 2026 09:30:00 +0000",
		PublishedAt:  &published,
		CleanSummary: strings.Repeat("s", 250),
		CleanContent: strings.Repeat("c", 600),
		FeedTitle:    "Example Blog",
		FeedLink:     "https://blog.example.test/",
		Category:     "ai",
	}}
}

func TestBuildAggregatedFeed(t *testing.T) {
	ogMap := map[string]internal.OgObject{
		"https://x.test/a": {ImageURL: "https://img.test/a.png"},
	}
	countMap := map[string]int{"https://x.test/a": 12}

	f := BuildAggregatedFeed(sampleItems(), ogMap, countMap, renderNow)

	require.Equal(t, "AI関連情報RSS", f.Title)
	require.Equal(t, SiteBaseURL+"feeds/atom.xml", f.FeedLinks.Atom)
	require.Len(t, f.Items, 1)

	item := f.Items[0]
	require.Len(t, []rune(item.Description), 203)
	require.True(t, strings.HasSuffix(item.Description, "..."))
	require.Len(t, []rune(item.Content), 503)
	require.True(t, strings.HasSuffix(item.Content, "..."))
	require.Equal(t, "https://img.test/a.png", item.OgImageURL)
	require.Equal(t, 12, item.HatenaCount)
}

func TestBuildAggregatedFeedShortFieldsUnchanged(t *testing.T) {
	items := sampleItems()
	items[0].CleanSummary = "short summary"
	items[0].CleanContent = strings.Repeat("z", 500)

	f := BuildAggregatedFeed(items, nil, nil, renderNow)
	require.Equal(t, "short summary", f.Items[0].Description)
	require.Equal(t, strings.Repeat("z", 500), f.Items[0].Content)
	// Absent enrichment means empty image and zero count.
	require.Empty(t, f.Items[0].OgImageURL)
	require.Zero(t, f.Items[0].HatenaCount)
}

func TestRSSRoundTrip(t *testing.T) {
	f := BuildAggregatedFeed(sampleItems(), nil, nil, renderNow)
	out := RSS(f, renderNow)

	parsed, err := gofeed.NewParser().ParseString(out)
	require.NoError(t, err)
	require.Equal(t, "AI関連情報RSS", parsed.Title)
	require.Len(t, parsed.Items, 1)

	item := parsed.Items[0]
	require.Equal(t, "First Post | Example Blog", item.Title)
	require.Equal(t, "https://x.test/a", item.Link)
	require.Equal(t, "Mon, 24 Aug 2026 09:30:00 +0000", item.Published)
	require.NotNil(t, item.PublishedParsed)
	require.Equal(t, time.Date(2026, 8, 24, 9, 30, 0, 0, time.UTC), item.PublishedParsed.UTC())
}

func TestRSSEscapesAndCDATA(t *testing.T) {
	items := sampleItems()
	items[0].Title = `Tom & Jerry <"quoted">`
	items[0].CleanSummary = "a & b"
	items[0].CleanContent = "<b>hi & bye</b>"

	f := BuildAggregatedFeed(items, nil, nil, renderNow)
	out := RSS(f, renderNow)

	require.Contains(t, out, "Tom &amp; Jerry &lt;&quot;quoted&quot;&gt;")
	require.Contains(t, out, "<description>a &amp; b</description>")
	// CDATA content is written unescaped.
	require.Contains(t, out, "<content:encoded><![CDATA[<b>hi & bye</b>]]></content:encoded>")
}

func TestAtom(t *testing.T) {
	f := BuildAggregatedFeed(sampleItems(), nil, nil, renderNow)
	out := Atom(f, renderNow)

	parsed, err := gofeed.NewParser().ParseString(out)
	require.NoError(t, err)
	require.Len(t, parsed.Items, 1)
	require.Equal(t, "First Post | Example Blog", parsed.Items[0].Title)

	require.Contains(t, out, "<updated>2026-08-24T09:30:00Z</updated>")
	require.Contains(t, out, "<published>2026-08-24T09:30:00Z</published>")
	require.Contains(t, out, `<category term="ai"/>`)
	require.Contains(t, out, "<name>Example Blog</name>")
}

func TestAtomMissingDateFallsBackToNow(t *testing.T) {
	items := sampleItems()
	items[0].PublishedAt = nil
	items[0].Published = ""

	f := BuildAggregatedFeed(items, nil, nil, renderNow)
	out := Atom(f, renderNow)
	require.Contains(t, out, "<updated>2026-08-25T12:00:00Z</updated>")
}

func TestJSONFeed(t *testing.T) {
	f := BuildAggregatedFeed(sampleItems(), nil, map[string]int{"https://x.test/a": 5}, renderNow)
	out, err := JSONFeed(f)
	require.NoError(t, err)

	var decoded struct {
		Version string `json:"version"`
		Title   string `json:"title"`
		FeedURL string `json:"feed_url"`
		Items   []struct {
			ID            string `json:"id"`
			URL           string `json:"url"`
			Title         string `json:"title"`
			DatePublished string `json:"date_published"`
			Authors       []struct {
				Name string `json:"name"`
				URL  string `json:"url"`
			} `json:"authors"`
			Tags []string `json:"tags"`
		} `json:"items"`
	}
	require.NoError(t, json.UnmarshalFromString(out, &decoded))

	require.Equal(t, "https://jsonfeed.org/version/1.1", decoded.Version)
	require.Equal(t, "AI関連情報RSS", decoded.Title)
	require.Equal(t, SiteBaseURL+"feed.json", decoded.FeedURL)
	require.Len(t, decoded.Items, 1)

	item := decoded.Items[0]
	require.Equal(t, "https://x.test/a", item.ID)
	// The original published string is emitted verbatim.
	require.Equal(t, "Mon, 24 Aug 2026 09:30:00 +0000", item.DatePublished)
	require.Equal(t, "Example Blog", item.Authors[0].Name)
	require.Equal(t, []string{"ai"}, item.Tags)
}

func TestEmptyFeedStillValid(t *testing.T) {
	f := BuildAggregatedFeed(nil, nil, nil, renderNow)

	atomOut := Atom(f, renderNow)
	parsed, err := gofeed.NewParser().ParseString(atomOut)
	require.NoError(t, err)
	require.Empty(t, parsed.Items)

	rssOut := RSS(f, renderNow)
	parsed, err = gofeed.NewParser().ParseString(rssOut)
	require.NoError(t, err)
	require.Empty(t, parsed.Items)

	jsonOut, err := JSONFeed(f)
	require.NoError(t, err)
	require.Contains(t, jsonOut, `"items": []`)
}
