package textutil

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// CleanHTML strips markup from an HTML fragment and returns plain text with
// entities decoded and all whitespace runs collapsed to single spaces.
// Malformed markup degrades to best-effort extraction; it never errors.
func CleanHTML(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapse(fragment)
	}
	doc.Find("script, style").Remove()

	var sb strings.Builder
	for _, node := range doc.Nodes {
		collectText(node, &sb)
	}
	return collapse(sb.String())
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// collapse squeezes every run of Unicode whitespace (NBSP included) into a
// single space and trims the ends.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate cuts s to max characters and appends "..." when something was
// removed. Strings at or under the limit come back unchanged.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// Clip hard-cuts s to max characters without an ellipsis.
func Clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// MD5Hex returns the lowercase hex MD5 digest of s.
func MD5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
