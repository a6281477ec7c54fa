package content

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/markusmobius/go-trafilatura"
)

// HTTPExtractor downloads news articles and pulls their main text with trafilatura.
// Used to fill summaries of feed items published with a headline only.
type HTTPExtractor struct {
	client    *http.Client
	userAgent string
}

// NewHTTPExtractor makes an extractor, an empty userAgent gets a generic one
func NewHTTPExtractor(timeout time.Duration, userAgent string) *HTTPExtractor {
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (compatible; Signalist/1.0)"
	}
	return &HTTPExtractor{client: &http.Client{Timeout: timeout}, userAgent: userAgent}
}

// Extract retrieves the article at urlStr and returns its main text
func (e *HTTPExtractor) Extract(ctx context.Context, urlStr string) (string, error) {
	u, err := url.Parse(urlStr)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid article url %q", urlStr)
	}

	req, err := NewRequest(ctx, urlStr, e.userAgent, AcceptArticle)
	if err != nil {
		return "", err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", urlStr, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("get %s: status %d", urlStr, resp.StatusCode)
	}

	res, err := trafilatura.Extract(resp.Body, trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		ExcludeTables:   true,
		Deduplicate:     true,
		OriginalURL:     u,
	})
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", urlStr, err)
	}
	if res == nil {
		return "", fmt.Errorf("extract %s: no content", urlStr)
	}
	text := strings.TrimSpace(res.ContentText)
	if text == "" {
		return "", fmt.Errorf("extract %s: no content", urlStr)
	}
	return text, nil
}

// Excerpt shortens text to at most limit runes, cutting at a word boundary
func Excerpt(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	cut := string(runes[:limit])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, ",;:.- ") + "..."
}
