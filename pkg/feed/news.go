// Package feed collects market news for the daily digest from RSS/Atom feeds.
package feed

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/signalist/pkg/content"
	"github.com/umputun/signalist/pkg/domain"
)

//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor

// summaryLimit is the maximum summary length passed to the digest prompt
const summaryLimit = 500

// Extractor returns the text of an article
type Extractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// Params configures Source
type Params struct {
	Feeds      []string
	MaxItems   int
	MaxWorkers int
	Extractor  Extractor // optional, fills summaries of items published without one
}

// Source gathers the latest news from all configured feeds
type Source struct {
	parser *Parser
	Params
}

// NewSource makes a news source reading feeds with parser
func NewSource(parser *Parser, params Params) *Source {
	if params.MaxItems <= 0 {
		params.MaxItems = 6
	}
	if params.MaxWorkers <= 0 {
		params.MaxWorkers = 4
	}
	return &Source{parser: parser, Params: params}
}

// News fetches all feeds concurrently and returns the newest unique items, at most MaxItems.
// A failing feed is logged and skipped, an error is returned only if every feed failed.
func (s *Source) News(ctx context.Context) ([]domain.NewsItem, error) {
	if len(s.Feeds) == 0 {
		return nil, fmt.Errorf("no news feeds configured: %w", domain.ErrValidation)
	}

	var mu sync.Mutex
	var all []domain.NewsItem
	failed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.MaxWorkers)
	for _, url := range s.Feeds {
		g.Go(func() error {
			items, err := s.parser.Parse(gctx, url)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				lgr.Printf("[WARN] failed to read news feed %s: %v", url, err)
				failed++
				return nil
			}
			lgr.Printf("[DEBUG] news feed %s: %d items", url, len(items))
			all = append(all, items...)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	if failed == len(s.Feeds) {
		return nil, fmt.Errorf("all %d news feeds failed: %w", failed, domain.ErrExternalService)
	}

	items := latestUnique(all, s.MaxItems)
	if s.Extractor != nil {
		s.fillSummaries(ctx, items)
	}
	return items, nil
}

// fillSummaries extracts article text for items without summary
func (s *Source) fillSummaries(ctx context.Context, items []domain.NewsItem) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.MaxWorkers)
	for i := range items {
		if items[i].Summary != "" {
			continue
		}
		g.Go(func() error {
			text, err := s.Extractor.Extract(gctx, items[i].URL)
			if err != nil {
				lgr.Printf("[DEBUG] no article text for %s: %v", items[i].URL, err)
				return nil
			}
			items[i].Summary = content.Excerpt(text, summaryLimit)
			return nil
		})
	}
	_ = g.Wait()
}

// latestUnique drops items with repeated URLs and returns the newest limit items
func latestUnique(items []domain.NewsItem, limit int) []domain.NewsItem {
	seen := make(map[string]bool, len(items))
	res := make([]domain.NewsItem, 0, len(items))
	for _, item := range items {
		if seen[item.URL] {
			continue
		}
		seen[item.URL] = true
		res = append(res, item)
	}

	sort.SliceStable(res, func(i, j int) bool { return res[i].Published.After(res[j].Published) })
	if len(res) > limit {
		res = res[:limit]
	}
	return res
}
