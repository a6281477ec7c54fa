package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.EventPublished("app/user.created", nil)
	m.EventPublished("app/user.created", errors.New("down"))
	m.EventHandled("app/user.created", "ok")
	m.EventHandled("app/user.created", "duplicate")
	m.Generation("html", time.Second, nil)
	m.EmailSent("welcome", nil)

	assert.InDelta(t, 1, testutil.ToFloat64(m.eventsPublished.WithLabelValues("app/user.created", "ok")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.eventsPublished.WithLabelValues("app/user.created", "error")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.eventsHandled.WithLabelValues("app/user.created", "duplicate")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.generations.WithLabelValues("html", "ok")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.emailsSent.WithLabelValues("welcome", "ok")), 0.001)
	assert.Equal(t, 1, testutil.CollectAndCount(m.generationTime))
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.EventPublished("x", nil)
		m.EventHandled("x", "ok")
		m.Generation("json", time.Millisecond, nil)
		m.EmailSent("x", nil)
	})
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.EmailSent("welcome-layout", nil)

	ts := httptest.NewServer(Handler(reg))
	defer ts.Close()

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `signalist_emails_sent_total{layout="welcome-layout",status="ok"} 1`)
}
