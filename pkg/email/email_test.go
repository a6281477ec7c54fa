package email

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/signalist/pkg/domain"
)

func TestMessage_Body(t *testing.T) {
	m := Message{To: "max@example.com", Subject: WelcomeSubject, Layout: LayoutWelcome,
		Fields: map[string]any{"name": "Max", "intro": "<p>Hallo Max</p>"}}
	body, err := m.Body()
	require.NoError(t, err)
	assert.Contains(t, body, "Welcome aboard Max")
	assert.Contains(t, body, "<p>Hallo Max</p>")
	assert.NotContains(t, body, "{{")

	_, err = Message{Layout: LayoutNewsSummary, Fields: map[string]any{"date": "today"}}.Body()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "newsContent")
}

func TestLayouts_Placeholders(t *testing.T) {
	assert.Equal(t, []string{"name", "intro"}, LayoutWelcome.Placeholders())
	assert.Equal(t, []string{"date", "newsContent"}, LayoutNewsSummary.Placeholders())
}

func TestNewsSubjectFor(t *testing.T) {
	assert.Equal(t, "📈 Market News Summary Today - 2025-01-02", NewsSubjectFor("2025-01-02"))
}

func TestSMTPSender_Send(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	var gotAuth smtp.Auth
	s := NewSMTPSender(SMTPParams{Host: "smtp.example.com", Port: 2525, From: "news@example.com", FromName: "Signalist"})
	s.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo, gotMsg = addr, a, from, to, msg
		return nil
	}

	err := s.Send(context.Background(), Message{To: "max@example.com", Subject: NewsSubjectFor("Jan 2"), Layout: LayoutNewsSummary,
		Fields: map[string]any{"date": "Jan 2", "newsContent": "<h3>Markt</h3>"}})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:2525", gotAddr)
	assert.Nil(t, gotAuth, "no auth without username")
	assert.Equal(t, "news@example.com", gotFrom)
	assert.Equal(t, []string{"max@example.com"}, gotTo)

	msg := string(gotMsg)
	assert.Contains(t, msg, "From: \"Signalist\" <news@example.com>\r\n")
	assert.Contains(t, msg, "To: max@example.com\r\n")
	assert.Contains(t, msg, "Subject: =?utf-8?q?")
	assert.Contains(t, msg, "Content-Type: text/html; charset=UTF-8\r\n")
	assert.Contains(t, msg, "<h3>Markt</h3>")
	headers, _, found := strings.Cut(msg, "\r\n\r\n")
	require.True(t, found)
	assert.NotContains(t, headers, "<html")
}

func TestSMTPSender_SendWithAuth(t *testing.T) {
	var gotAuth smtp.Auth
	s := NewSMTPSender(SMTPParams{Host: "localhost", Port: 25, Username: "u", Password: "p", From: "a@example.com"})
	s.send = func(_ string, a smtp.Auth, _ string, _ []string, _ []byte) error {
		gotAuth = a
		return nil
	}
	require.NoError(t, s.Send(context.Background(), Message{To: "b@example.com", Subject: WelcomeSubject, Layout: LayoutWelcome,
		Fields: map[string]any{"name": "B", "intro": "<p>x</p>"}}))
	assert.NotNil(t, gotAuth)
}

func TestSMTPSender_SendErrors(t *testing.T) {
	s := NewSMTPSender(SMTPParams{Host: "smtp.example.com", Port: 25, From: "a@example.com"})
	s.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("connection refused") }

	msg := Message{To: "b@example.com", Subject: WelcomeSubject, Layout: LayoutWelcome, Fields: map[string]any{"name": "B", "intro": "x"}}
	err := s.Send(context.Background(), msg)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExternalService)
	assert.Contains(t, err.Error(), "connection refused")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.Send(ctx, msg)
	assert.ErrorIs(t, err, context.Canceled)

	err = s.Send(context.Background(), Message{To: "b@example.com", Layout: LayoutWelcome})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogSender_Send(t *testing.T) {
	l := &LogSender{}
	require.NoError(t, l.Send(context.Background(), Message{To: "b@example.com", Subject: WelcomeSubject, Layout: LayoutWelcome,
		Fields: map[string]any{"name": "B", "intro": "x"}}))
	require.Error(t, l.Send(context.Background(), Message{Layout: LayoutWelcome}))
}
