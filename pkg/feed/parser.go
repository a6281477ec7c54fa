package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/signalist/pkg/content"
	"github.com/umputun/signalist/pkg/domain"
)

// Parser downloads RSS/Atom feeds and converts their entries to news items
type Parser struct {
	client    *http.Client
	userAgent string
}

// NewParser makes a parser with a shared keep-alive client
func NewParser(timeout time.Duration, userAgent string) *Parser {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 10
	return &Parser{client: &http.Client{Timeout: timeout, Transport: transport}, userAgent: userAgent}
}

// Parse returns the items of the feed at url. Entries without link or title are skipped.
func (p *Parser) Parse(ctx context.Context, url string) ([]domain.NewsItem, error) {
	req, err := content.NewRequest(ctx, url, p.userAgent, content.AcceptFeed)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed: unexpected status code: %d", resp.StatusCode)
	}

	f, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	res := make([]domain.NewsItem, 0, len(f.Items))
	for _, it := range f.Items {
		if n, ok := newsItem(f.Title, it); ok {
			res = append(res, n)
		}
	}
	return res, nil
}

// newsItem converts a feed entry, the summary is the plain-text description or content
func newsItem(source string, it *gofeed.Item) (domain.NewsItem, bool) {
	headline := strings.TrimSpace(it.Title)
	if it.Link == "" || headline == "" {
		return domain.NewsItem{}, false
	}

	summary := it.Description
	if summary == "" {
		summary = it.Content
	}
	n := domain.NewsItem{
		Headline: headline,
		Summary:  content.Excerpt(content.StripTags(summary), summaryLimit),
		URL:      it.Link,
		Source:   source,
	}
	switch {
	case it.PublishedParsed != nil:
		n.Published = *it.PublishedParsed
	case it.UpdatedParsed != nil:
		n.Published = *it.UpdatedParsed
	}
	return n, true
}
