package blogservice

import "regexp"

var (
	scriptTagPattern    = regexp.MustCompile(`(?is)<\s*script[^>]*>(.*?)<\s*/\s*script\s*>`)
	eventAttrPattern    = regexp.MustCompile(`(?i)\son\w+\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)
	javascriptRefScheme = regexp.MustCompile(`(?i)(href|src)\s*=\s*(["']?)\s*javascript:[^"'\s>]*`)
)

// CleanHTML strips script tags, inline event handlers and javascript: URLs
// from user-submitted rich text. Applied before any body or comment is
// persisted.
func CleanHTML(html string) string {
	out := scriptTagPattern.ReplaceAllString(html, "")
	out = eventAttrPattern.ReplaceAllString(out, "")
	out = javascriptRefScheme.ReplaceAllString(out, `$1=$2`)
	return out
}
