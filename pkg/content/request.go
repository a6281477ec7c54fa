package content

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
)

// Accept headers of the two kinds of documents fetched for digests
const (
	AcceptArticle = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	AcceptFeed    = "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,*/*;q=0.5"
)

var acceptLanguages = []string{"en-US,en;q=0.9", "en-GB,en;q=0.9", "en-US,en;q=0.9,de;q=0.8"}

// NewRequest makes a GET request carrying browser-like headers, some news sites
// reject clients without them. Accept-Encoding is left to the transport.
func NewRequest(ctx context.Context, url, userAgent, accept string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))]) //nolint:gosec // header variation only
	req.Header.Set("Cache-Control", "no-cache")
	return req, nil
}
