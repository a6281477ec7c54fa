package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/signalist/pkg/domain"
	"github.com/umputun/signalist/pkg/feed/mocks"
)

// rssWith builds an rss document with items "title|link|description|day"
func rssWith(items ...string) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>Wire</title>`)
	for _, it := range items {
		parts := strings.Split(it, "|")
		pub := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, len(parts[3])).Format(time.RFC1123Z)
		fmt.Fprintf(&sb, `<item><title>%s</title><link>%s</link><description>%s</description><pubDate>%s</pubDate></item>`,
			parts[0], parts[1], parts[2], pub)
	}
	sb.WriteString(`</channel></rss>`)
	return sb.String()
}

func feedServer(t *testing.T, feeds map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := feeds[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
}

func TestSource_News(t *testing.T) {
	// day offset is encoded by the length of the last field, longer is newer
	server := feedServer(t, map[string]string{
		"/a.xml": rssWith("Chips rally|http://n.com/chips|Chips up|xxx", "Oil slips|http://n.com/oil|Oil down|x"),
		"/b.xml": rssWith("Chips rally again|http://n.com/chips|dup|xxxx", "Fed holds|http://n.com/fed|Rates flat|xx"),
	})
	defer server.Close()

	src := NewSource(NewParser(5*time.Second, "test"), Params{
		Feeds:    []string{server.URL + "/a.xml", server.URL + "/b.xml", server.URL + "/missing.xml"},
		MaxItems: 2,
	})

	items, err := src.News(context.Background())
	require.NoError(t, err, "one failing feed doesn't fail the digest")
	require.Len(t, items, 2)
	assert.Equal(t, "http://n.com/chips", items[0].URL, "newest first")
	assert.Equal(t, "http://n.com/fed", items[1].URL)
}

func TestSource_News_Dedup(t *testing.T) {
	server := feedServer(t, map[string]string{
		"/a.xml": rssWith("One|http://n.com/1|s|x", "One copy|http://n.com/1|s|xx", "Two|http://n.com/2|s|xxx"),
	})
	defer server.Close()

	items, err := NewSource(NewParser(time.Second, "test"), Params{Feeds: []string{server.URL + "/a.xml"}}).News(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	urls := []string{items[0].URL, items[1].URL}
	assert.ElementsMatch(t, []string{"http://n.com/1", "http://n.com/2"}, urls)
}

func TestSource_News_AllFeedsFailed(t *testing.T) {
	server := feedServer(t, map[string]string{})
	defer server.Close()

	src := NewSource(NewParser(time.Second, "test"), Params{Feeds: []string{server.URL + "/x.xml", server.URL + "/y.xml"}})
	_, err := src.News(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExternalService)
	assert.Contains(t, err.Error(), "all 2 news feeds failed")
}

func TestSource_News_NoFeeds(t *testing.T) {
	_, err := NewSource(NewParser(time.Second, "test"), Params{}).News(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSource_News_FillSummaries(t *testing.T) {
	server := feedServer(t, map[string]string{
		"/a.xml": rssWith("Empty|http://n.com/empty||x", "Full|http://n.com/full|Has summary|xx", "Broken|http://n.com/broken||xxx"),
	})
	defer server.Close()

	extractor := &mocks.ExtractorMock{
		ExtractFunc: func(ctx context.Context, url string) (string, error) {
			if url == "http://n.com/broken" {
				return "", errors.New("blocked")
			}
			return "Extracted   article text about markets.", nil
		},
	}

	src := NewSource(NewParser(time.Second, "test"), Params{Feeds: []string{server.URL + "/a.xml"}, Extractor: extractor})
	items, err := src.News(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)

	byURL := map[string]domain.NewsItem{}
	for _, it := range items {
		byURL[it.URL] = it
	}
	assert.Equal(t, "Extracted article text about markets.", byURL["http://n.com/empty"].Summary)
	assert.Equal(t, "Has summary", byURL["http://n.com/full"].Summary)
	assert.Empty(t, byURL["http://n.com/broken"].Summary)
	assert.Len(t, extractor.ExtractCalls(), 2, "only items without summary are extracted")
}

func TestLatestUnique(t *testing.T) {
	now := time.Now()
	items := []domain.NewsItem{
		{URL: "a", Published: now.Add(-time.Hour)},
		{URL: "b", Published: now},
		{URL: "a", Published: now.Add(time.Hour)},
		{URL: "c", Published: now.Add(-2 * time.Hour)},
	}
	res := latestUnique(items, 2)
	require.Len(t, res, 2)
	assert.Equal(t, "b", res[0].URL)
	assert.Equal(t, "a", res[1].URL)
}
