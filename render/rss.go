package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/univac-1/ai-info-rss-feed/internal"
)

// rfc822Layout matches the pubDate format RSS 2.0 expects.
const rfc822Layout = "Mon, 02 Jan 2006 15:04:05 -0700"

// RSS serializes the aggregated feed as RSS 2.0 with the atom, content and
// dc extension namespaces. Pure function: no network or filesystem access.
func RSS(f internal.AggregatedFeed, now time.Time) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<rss version=\"2.0\" xmlns:atom=\"http://www.w3.org/2005/Atom\" xmlns:content=\"http://purl.org/rss/1.0/modules/content/\" xmlns:dc=\"http://purl.org/dc/elements/1.1/\">\n")
	b.WriteString("  <channel>\n")
	fmt.Fprintf(&b, "    <title>%s</title>\n", escapeXML(f.Title))
	fmt.Fprintf(&b, "    <link>%s</link>\n", escapeXML(f.Link))
	fmt.Fprintf(&b, "    <description>%s</description>\n", escapeXML(f.Description))
	fmt.Fprintf(&b, "    <language>%s</language>\n", escapeXML(f.Language))
	fmt.Fprintf(&b, "    <lastBuildDate>%s</lastBuildDate>\n", now.UTC().Format(rfc822Layout))
	fmt.Fprintf(&b, "    <generator>%s</generator>\n", escapeXML(f.Generator))
	b.WriteString("    <docs>https://validator.w3.org/feed/docs/rss2.html</docs>\n")
	b.WriteString("    <image>\n")
	fmt.Fprintf(&b, "      <url>%s</url>\n", escapeXML(f.Image))
	fmt.Fprintf(&b, "      <title>%s</title>\n", escapeXML(f.Title))
	fmt.Fprintf(&b, "      <link>%s</link>\n", escapeXML(f.Link))
	b.WriteString("    </image>\n")
	if f.Copyright != "" {
		fmt.Fprintf(&b, "    <copyright>%s</copyright>\n", escapeXML(f.Copyright))
	}
	fmt.Fprintf(&b, "    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\"/>\n", escapeXML(f.FeedLinks.RSS))

	for _, item := range f.Items {
		b.WriteString("    <item>\n")
		fmt.Fprintf(&b, "      <title>%s</title>\n", escapeXML(entryTitle(item)))
		fmt.Fprintf(&b, "      <link>%s</link>\n", escapeXML(item.Link))
		fmt.Fprintf(&b, "      <description>%s</description>\n", escapeXML(item.Description))
		fmt.Fprintf(&b, "      <content:encoded><![CDATA[%s]]></content:encoded>\n", item.Content)

		pubDate := now
		if item.Date != nil {
			pubDate = *item.Date
		}
		fmt.Fprintf(&b, "      <pubDate>%s</pubDate>\n", pubDate.UTC().Format(rfc822Layout))

		if item.Category != "" {
			fmt.Fprintf(&b, "      <category>%s</category>\n", escapeXML(item.Category))
		}

		if item.FeedTitle != "" {
			fmt.Fprintf(&b, "      <dc:creator>%s</dc:creator>\n", escapeXML(item.FeedTitle))
		} else if item.Author != "" {
			fmt.Fprintf(&b, "      <dc:creator>%s</dc:creator>\n", escapeXML(item.Author))
		}

		if item.FeedLink != "" && item.FeedTitle != "" {
			fmt.Fprintf(&b, "      <source url=\"%s\">%s</source>\n", escapeXML(item.FeedLink), escapeXML(item.FeedTitle))
		}

		fmt.Fprintf(&b, "      <guid isPermaLink=\"true\">%s</guid>\n", escapeXML(item.Link))

		if item.OgImageURL != "" {
			fmt.Fprintf(&b, "      <enclosure url=\"%s\" type=\"image/jpeg\" length=\"0\"/>\n", escapeXML(item.OgImageURL))
		}
		b.WriteString("    </item>\n")
	}

	b.WriteString("  </channel>\n")
	b.WriteString("</rss>")
	return b.String()
}
