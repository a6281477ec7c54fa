package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const marketsRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
	<title>Market Wire</title>
	<link>http://example.com</link>
	<description>Markets</description>
	<item>
		<title>Chipmakers rally after earnings</title>
		<link>http://example.com/chips</link>
		<description><![CDATA[<p>Semiconductor stocks <b>climbed</b> on Tuesday &amp; beat estimates.</p>]]></description>
		<pubDate>Tue, 03 Jan 2006 15:04:05 -0700</pubDate>
	</item>
	<item>
		<title>Oil slips</title>
		<link>http://example.com/oil</link>
		<content:encoded><![CDATA[<p>Crude prices fell as inventories grew.</p>]]></content:encoded>
		<pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
	</item>
	<item>
		<title>No link item</title>
		<description>skipped</description>
	</item>
</channel>
</rss>`

func TestParser_Parse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Signalist/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(marketsRSS))
	}))
	defer server.Close()

	parser := NewParser(5*time.Second, "Signalist/1.0")
	items, err := parser.Parse(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, items, 2, "item without link is skipped")

	assert.Equal(t, "Chipmakers rally after earnings", items[0].Headline)
	assert.Equal(t, "http://example.com/chips", items[0].URL)
	assert.Equal(t, "Semiconductor stocks climbed on Tuesday & beat estimates.", items[0].Summary)
	assert.Equal(t, "Market Wire", items[0].Source)
	assert.False(t, items[0].Published.IsZero())

	assert.Equal(t, "Oil slips", items[1].Headline)
	assert.Equal(t, "Crude prices fell as inventories grew.", items[1].Summary, "content is used without description")
}

func TestParser_Parse_AtomFeed(t *testing.T) {
	atomContent := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Atom Markets</title>
	<link href="http://example.com"/>
	<entry>
		<title>Fed holds rates</title>
		<link href="http://example.com/fed"/>
		<id>urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a</id>
		<updated>2006-01-02T15:04:05Z</updated>
		<summary>The central bank kept rates unchanged.</summary>
	</entry>
</feed>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(atomContent))
	}))
	defer server.Close()

	items, err := NewParser(5*time.Second, "test").Parse(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Fed holds rates", items[0].Headline)
	assert.Equal(t, "http://example.com/fed", items[0].URL)
	assert.Equal(t, "The central bank kept rates unchanged.", items[0].Summary)
	assert.Equal(t, time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC), items[0].Published.UTC())
}

func TestParser_Parse_Errors(t *testing.T) {
	t.Run("HTTP error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := NewParser(5*time.Second, "test").Parse(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code: 500")
	})

	t.Run("Invalid XML", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not xml"))
		}))
		defer server.Close()

		_, err := NewParser(5*time.Second, "test").Parse(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse feed")
	})

	t.Run("Timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte("too late"))
		}))
		defer server.Close()

		_, err := NewParser(100*time.Millisecond, "test").Parse(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("Invalid URL", func(t *testing.T) {
		_, err := NewParser(5*time.Second, "test").Parse(context.Background(), "not-a-url")
		require.Error(t, err)
	})
}
