package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/univac-1/ai-info-rss-feed/internal"
)

// Atom serializes the aggregated feed as an Atom 1.0 document. Pure function:
// no network or filesystem access.
func Atom(f internal.AggregatedFeed, now time.Time) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<feed xmlns=\"http://www.w3.org/2005/Atom\">\n")
	fmt.Fprintf(&b, "  <id>%s</id>\n", escapeXML(f.Link))
	fmt.Fprintf(&b, "  <title type=\"html\">%s</title>\n", escapeXML(f.Title))
	fmt.Fprintf(&b, "  <updated>%s</updated>\n", f.Updated.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "  <generator>%s</generator>\n", escapeXML(f.Generator))
	if f.Description != "" {
		fmt.Fprintf(&b, "  <subtitle type=\"html\">%s</subtitle>\n", escapeXML(f.Description))
	}
	fmt.Fprintf(&b, "  <link href=\"%s\"/>\n", escapeXML(f.Link))
	fmt.Fprintf(&b, "  <link href=\"%s\" rel=\"self\" type=\"application/atom+xml\"/>\n", escapeXML(f.FeedLinks.Atom))
	fmt.Fprintf(&b, "  <icon>%s</icon>\n", escapeXML(f.Favicon))
	fmt.Fprintf(&b, "  <logo>%s</logo>\n", escapeXML(f.Image))
	if f.Copyright != "" {
		fmt.Fprintf(&b, "  <rights>%s</rights>\n", escapeXML(f.Copyright))
	}

	for _, item := range f.Items {
		b.WriteString("  <entry>\n")
		fmt.Fprintf(&b, "    <title type=\"html\">%s</title>\n", escapeXML(entryTitle(item)))
		fmt.Fprintf(&b, "    <link href=\"%s\"/>\n", escapeXML(item.Link))
		fmt.Fprintf(&b, "    <id>%s</id>\n", escapeXML(item.Link))

		ts := atomTimestamp(item, now)
		fmt.Fprintf(&b, "    <updated>%s</updated>\n", ts)
		fmt.Fprintf(&b, "    <published>%s</published>\n", ts)

		if item.Description != "" {
			fmt.Fprintf(&b, "    <summary type=\"html\">%s</summary>\n", escapeXML(item.Description))
		}
		fmt.Fprintf(&b, "    <content type=\"html\"><![CDATA[%s]]></content>\n", item.Content)

		if item.Category != "" {
			fmt.Fprintf(&b, "    <category term=\"%s\"/>\n", escapeXML(item.Category))
		}

		if item.FeedTitle != "" {
			b.WriteString("    <author>\n")
			fmt.Fprintf(&b, "      <name>%s</name>\n", escapeXML(item.FeedTitle))
			if item.FeedLink != "" {
				fmt.Fprintf(&b, "      <uri>%s</uri>\n", escapeXML(item.FeedLink))
			}
			b.WriteString("    </author>\n")
		} else if item.Author != "" {
			b.WriteString("    <author>\n")
			fmt.Fprintf(&b, "      <name>%s</name>\n", escapeXML(item.Author))
			b.WriteString("    </author>\n")
		}

		if item.OgImageURL != "" {
			fmt.Fprintf(&b, "    <link rel=\"enclosure\" href=\"%s\" type=\"image/jpeg\"/>\n", escapeXML(item.OgImageURL))
		}
		b.WriteString("  </entry>\n")
	}

	b.WriteString("</feed>")
	return b.String()
}

// atomTimestamp resolves the one canonical date, falling back to the raw
// published string and finally to render time.
func atomTimestamp(item internal.RenderItem, now time.Time) string {
	if item.Date != nil {
		return item.Date.UTC().Format(time.RFC3339)
	}
	if item.Published != "" {
		return escapeXML(item.Published)
	}
	return now.UTC().Format(time.RFC3339)
}
