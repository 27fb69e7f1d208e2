package render

import "strings"

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// escapeXML escapes text destined for XML element or attribute content.
// CDATA blocks are written unescaped.
func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
