// Package htmlsanitize cleans rich-text content before it reaches a
// template. Blog posts and course descriptions arrive from the API as
// HTML written in an editor we do not control, so everything is run
// through a bluemonday policy before being marked safe for rendering.
package htmlsanitize

import (
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy is a UGC policy extended with the attributes the platform's
// editor emits: classes and basic layout styles on tables.
var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("table", "thead", "tbody", "tr", "th", "td", "p", "span", "div")
	p.AllowStyles("width", "text-align").OnElements("table", "tr", "th", "td")
	return p
}

// Sanitize strips dangerous markup from HTML, keeping the formatting
// vocabulary the editor produces (headings, lists, tables, links,
// images, code blocks).
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return policy.Sanitize(html)
}

// SanitizeToHTML sanitizes and marks the result safe for templates.
func SanitizeToHTML(html string) template.HTML {
	return template.HTML(Sanitize(html))
}

// IsPlainText reports whether s contains no HTML tags. A lone < or >
// (as in "5 < 10") does not count as markup.
func IsPlainText(s string) bool {
	lt := strings.IndexByte(s, '<')
	if lt < 0 {
		return true
	}
	return strings.IndexByte(s[lt:], '>') < 0
}

// PlainTextToHTML escapes plain text and wraps it in a paragraph,
// converting newlines to <br>.
func PlainTextToHTML(text string) string {
	if text == "" {
		return ""
	}
	escaped := template.HTMLEscapeString(text)
	return "<p>" + strings.ReplaceAll(escaped, "\n", "<br>") + "</p>"
}

// PrepareForDisplay renders content that may be either plain text or
// HTML: plain text is escaped and paragraph-wrapped, HTML is
// sanitized.
func PrepareForDisplay(content string) template.HTML {
	if content == "" {
		return ""
	}
	if IsPlainText(content) {
		return template.HTML(PlainTextToHTML(content))
	}
	return SanitizeToHTML(content)
}
