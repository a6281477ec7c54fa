package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/signalist/pkg/config"
	"github.com/umputun/signalist/pkg/email"
	"github.com/umputun/signalist/pkg/events"
)

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "invalid-config-*.yml")
	require.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	_, err = tmpFile.WriteString("invalid: yaml: content: [")
	require.NoError(t, err)
	tmpFile.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err = run(ctx, Opts{Config: tmpFile.Name()})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_ServerStartStop(t *testing.T) {
	t.Setenv("DB_PATH", t.TempDir())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- run(ctx, Opts{Config: "testdata/config.yml"}) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:18765/ping")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "pong"
	}, 5*time.Second, 50*time.Millisecond)

	// event webhook is protected by the configured secret
	resp, err := http.Post("http://127.0.0.1:18765/api/v1/events", "application/json",
		strings.NewReader(`{"name":"app/user.deleted","data":{"email":"max@example.com"}}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = http.Get("http://127.0.0.1:18765/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server shutdown timeout")
	}
}

func TestMakeTransport(t *testing.T) {
	tr, consumer, closeFn := makeTransport(config.EventsConfig{Transport: "memory"})
	defer closeFn()
	assert.IsType(t, &events.MemoryTransport{}, tr)
	assert.Nil(t, consumer)

	tr, consumer, closeFn = makeTransport(config.EventsConfig{Transport: "kafka",
		Kafka: config.KafkaConfig{Brokers: []string{"127.0.0.1:9092"}, Topic: "t", GroupID: "g"}})
	defer closeFn()
	assert.IsType(t, &events.KafkaTransport{}, tr)
	assert.NotNil(t, consumer)
}

func TestMakeDeduplicator(t *testing.T) {
	dd, closeFn, err := makeDeduplicator(context.Background(), config.EventsConfig{Dedup: "none"}, nil)
	require.NoError(t, err)
	closeFn()
	assert.Nil(t, dd)

	_, _, err = makeDeduplicator(context.Background(), config.EventsConfig{Dedup: "redis",
		Redis: config.RedisConfig{Addr: "127.0.0.1:1"}}, nil)
	require.Error(t, err, "unreachable redis fails startup")
}

func TestMakeSender(t *testing.T) {
	assert.IsType(t, &email.LogSender{}, makeSender(config.EmailConfig{Provider: "log"}, nil))
	assert.IsType(t, &email.SMTPSender{}, makeSender(config.EmailConfig{Provider: "smtp", Host: "smtp.example.com",
		Port: 587, From: "news@example.com"}, nil))
}

func TestSetupLog(t *testing.T) {
	t.Run("debug mode enabled", func(t *testing.T) {
		setupLog(true)
	})

	t.Run("debug mode disabled", func(t *testing.T) {
		setupLog(false)
	})

	t.Run("with secrets", func(t *testing.T) {
		setupLog(true, "secret1", "secret2")
	})
}
