package content

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/umputun/signalist/pkg/domain"
)

// welcome paragraph limits
const (
	welcomeSentences = 2
	welcomeMinWords  = 35
	welcomeMaxWords  = 50
	minBulletPoints  = 3
)

// openings already rendered by the welcome layout header
var welcomeOpenings = []string{"willkommen", "welcome"}

// sentence end: terminal punctuation followed by a capitalized word or the end of text
var sentenceEndRe = regexp.MustCompile(`[.!?]+["')\]]*(?:\s+["'(]?\p{Lu}|\s*$)`)

// FormatError lists everything wrong with a generated HTML fragment
type FormatError struct {
	Fragment string
	Problems []string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s fragment: %s", e.Fragment, strings.Join(e.Problems, "; "))
}

// Is makes the error match domain.ErrMalformedResponse
func (e *FormatError) Is(target error) bool { return target == domain.ErrMalformedResponse }

// ValidateWelcome checks the personalized welcome intro: exactly one paragraph of two sentences,
// 35-50 words, with at least one <strong> term and no leading "Willkommen"/"Welcome".
func ValidateWelcome(fragment string) error {
	nodes, err := parseFragment(fragment)
	if err != nil {
		return &FormatError{Fragment: "welcome", Problems: []string{err.Error()}}
	}

	var problems []string
	var paras []*html.Node
	for _, n := range nodes {
		switch n.Type {
		case html.TextNode:
			if strings.TrimSpace(n.Data) != "" {
				problems = append(problems, "text outside paragraph")
			}
		case html.ElementNode:
			if n.DataAtom == atom.P {
				paras = append(paras, n)
				continue
			}
			problems = append(problems, fmt.Sprintf("unexpected top-level <%s>", n.Data))
		}
	}
	if len(paras) != 1 {
		problems = append(problems, fmt.Sprintf("expected exactly one paragraph, got %d", len(paras)))
		return &FormatError{Fragment: "welcome", Problems: problems}
	}

	text := textOf(paras[0])
	if words := countWords(text); words < welcomeMinWords || words > welcomeMaxWords {
		problems = append(problems, fmt.Sprintf("expected %d-%d words, got %d", welcomeMinWords, welcomeMaxWords, words))
	}
	if sentences := countSentences(text); sentences != welcomeSentences {
		problems = append(problems, fmt.Sprintf("expected %d sentences, got %d", welcomeSentences, sentences))
	}
	if !hasText(findAll(paras[0], atom.Strong)) {
		problems = append(problems, "no <strong> personalized term")
	}
	lower := strings.ToLower(text)
	for _, opening := range welcomeOpenings {
		if strings.HasPrefix(lower, opening) {
			problems = append(problems, fmt.Sprintf("must not start with %q", opening))
		}
	}

	if len(problems) > 0 {
		return &FormatError{Fragment: "welcome", Problems: problems}
	}
	return nil
}

// ValidateDigest checks the news digest: a sequence of sections, each an <h3> heading followed by
// one or more div.dark-info-box articles. Headings must not repeat. Every article has one <h4> title,
// at least three bullet points, a "Fazit" takeaway box and one http(s) read-more link.
func ValidateDigest(fragment string) error {
	nodes, err := parseFragment(fragment)
	if err != nil {
		return &FormatError{Fragment: "digest", Problems: []string{err.Error()}}
	}

	type section struct {
		heading  string
		articles []*html.Node
	}

	var problems []string
	var sections []*section
	for _, n := range nodes {
		switch n.Type {
		case html.TextNode:
			if strings.TrimSpace(n.Data) != "" {
				problems = append(problems, "text outside sections")
			}
		case html.ElementNode:
			switch {
			case n.DataAtom == atom.H3:
				heading := textOf(n)
				if heading == "" {
					problems = append(problems, "empty section heading")
				}
				sections = append(sections, &section{heading: heading})
			case n.DataAtom == atom.Div && hasClass(n, "dark-info-box"):
				if len(sections) == 0 {
					problems = append(problems, "article before first section heading")
					continue
				}
				cur := sections[len(sections)-1]
				cur.articles = append(cur.articles, n)
			case n.DataAtom == atom.Div:
				// section divider
				if textOf(n) != "" {
					problems = append(problems, "unexpected content outside articles")
				}
			default:
				problems = append(problems, fmt.Sprintf("unexpected top-level <%s>", n.Data))
			}
		}
	}

	if len(sections) == 0 {
		problems = append(problems, "no section headings")
	}

	seen := map[string]bool{}
	for _, s := range sections {
		key := strings.ToLower(s.heading)
		if seen[key] {
			problems = append(problems, fmt.Sprintf("repeated section heading %q", s.heading))
		}
		seen[key] = true

		if len(s.articles) == 0 {
			problems = append(problems, fmt.Sprintf("section %q has no articles", s.heading))
		}
		for i, a := range s.articles {
			for _, p := range checkArticle(a) {
				problems = append(problems, fmt.Sprintf("section %q article %d: %s", s.heading, i+1, p))
			}
		}
	}

	if len(problems) > 0 {
		return &FormatError{Fragment: "digest", Problems: problems}
	}
	return nil
}

func checkArticle(article *html.Node) []string {
	var problems []string

	titles := findAll(article, atom.H4)
	if len(titles) != 1 || textOf(titles[0]) == "" {
		problems = append(problems, fmt.Sprintf("expected one title, got %d", len(titles)))
	}

	bullets := 0
	for _, ul := range findAll(article, atom.Ul) {
		if n := len(children(ul, atom.Li)); n > bullets {
			bullets = n
		}
	}
	if bullets < minBulletPoints {
		problems = append(problems, fmt.Sprintf("expected at least %d bullet points, got %d", minBulletPoints, bullets))
	}

	takeaway := false
	for _, div := range findAll(article, atom.Div) {
		if strings.Contains(textOf(div), "Fazit") && len(findAll(div, atom.A)) == 0 {
			takeaway = true
			break
		}
	}
	if !takeaway {
		problems = append(problems, "no takeaway box")
	}

	links := 0
	for _, a := range findAll(article, atom.A) {
		if u, err := url.Parse(attr(a, "href")); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
			links++
		}
	}
	if links != 1 {
		problems = append(problems, fmt.Sprintf("expected one read-more link, got %d", links))
	}
	return problems
}

func parseFragment(fragment string) ([]*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return nodes, nil
}

// textOf returns the whitespace-normalized text content of n
func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// findAll returns all descendants of n with the given tag
func findAll(n *html.Node, a atom.Atom) []*html.Node {
	var res []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			res = append(res, c)
		}
		res = append(res, findAll(c, a)...)
	}
	return res
}

func children(n *html.Node, a atom.Atom) []*html.Node {
	var res []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			res = append(res, c)
		}
	}
	return res
}

func hasText(nodes []*html.Node) bool {
	for _, n := range nodes {
		if textOf(n) != "" {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// countWords counts tokens carrying at least one letter or digit, so dashes and emoji don't count
func countWords(text string) int {
	count := 0
	for _, w := range strings.Fields(text) {
		if strings.IndexFunc(w, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) >= 0 {
			count++
		}
	}
	return count
}

func countSentences(text string) int {
	return len(sentenceEndRe.FindAllStringIndex(strings.TrimSpace(text), -1))
}
