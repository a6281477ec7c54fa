package content

import (
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

var (
	policyOnce  sync.Once
	emailPolicy *bluemonday.Policy
)

// fragmentPolicy allows the markup the email fragments are built from: paragraphs, headings,
// article containers, bullet lists and read-more links, with inline styles and classes.
func fragmentPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowElements("p", "h3", "h4", "div", "ul", "li", "span", "strong", "br")

		p.AllowAttrs("class").Matching(regexp.MustCompile(`^[a-zA-Z0-9\- ]+$`)).Globally()
		p.AllowStyles(
			"margin", "margin-left", "margin-right", "margin-top", "margin-bottom",
			"padding", "padding-left",
			"font-size", "font-weight", "line-height", "color", "background-color",
			"border", "border-top", "border-radius", "list-style", "text-decoration",
		).Globally()

		p.AllowAttrs("href").OnElements("a")
		p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
		p.AllowAttrs("rel").Matching(regexp.MustCompile(`^[a-z ]+$`)).OnElements("a")
		p.AllowURLSchemes("http", "https")
		p.RequireParseableURLs(true)
		emailPolicy = p
	})
	return emailPolicy
}

// Sanitize removes from a generated HTML fragment all markup the email fragments are not built from
func Sanitize(fragment string) string {
	return strings.TrimSpace(fragmentPolicy().Sanitize(fragment))
}

// StripTags returns the plain text of an HTML snippet, used for feed summaries
func StripTags(s string) string {
	text := html.UnescapeString(bluemonday.StrictPolicy().Sanitize(s))
	return strings.Join(strings.Fields(text), " ")
}
