// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize cleans admin-entered HTML (class descriptions) before
// it is persisted or returned to clients.
package htmlsanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

// policy allows the formatting a rich-text description needs and nothing
// executable. Built once; bluemonday policies are safe for concurrent use.
var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("table", "thead", "tbody", "tr", "th", "td")
	p.AllowAttrs("colspan", "rowspan").OnElements("th", "td")
	p.AllowAttrs("style").OnElements("table", "th", "td")
	return p
}

// Sanitize strips scripts, event handlers, and unknown markup from s,
// keeping the standard formatting tags.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}
