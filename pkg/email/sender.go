package email

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/signalist/pkg/domain"
	"github.com/umputun/signalist/pkg/metrics"
)

// SMTPParams configures SMTPSender
type SMTPParams struct {
	Host     string
	Port     int
	Username string // auth is skipped when empty
	Password string
	From     string
	FromName string
	Metrics  *metrics.Metrics
}

// SMTPSender delivers messages through an SMTP server
type SMTPSender struct {
	SMTPParams
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender makes a sender for the given server
func NewSMTPSender(params SMTPParams) *SMTPSender {
	return &SMTPSender{SMTPParams: params, send: smtp.SendMail}
}

// Send renders the message and sends it as an html email
func (s *SMTPSender) Send(ctx context.Context, m Message) (err error) {
	defer func() { s.Metrics.EmailSent(m.Layout.Name, err) }()
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := m.Body()
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}
	addr := net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
	if err := s.send(addr, auth, s.From, []string{m.To}, s.buildMessage(m.To, m.Subject, body)); err != nil {
		return fmt.Errorf("send email to %s via %s: %w: %w", m.To, addr, domain.ErrExternalService, err)
	}
	lgr.Printf("[INFO] sent %q to %s", m.Subject, m.To)
	return nil
}

func (s *SMTPSender) buildMessage(to, subject, body string) []byte {
	from := (&mail.Address{Name: s.FromName, Address: s.From}).String()
	var sb strings.Builder
	sb.WriteString("From: " + from + "\r\n")
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	sb.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	sb.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	sb.WriteString("\r\n")
	return []byte(sb.String())
}

// LogSender logs messages instead of sending, used in development
type LogSender struct {
	Metrics *metrics.Metrics
}

// Send renders the message and logs it
func (l *LogSender) Send(_ context.Context, m Message) (err error) {
	defer func() { l.Metrics.EmailSent(m.Layout.Name, err) }()
	body, err := m.Body()
	if err != nil {
		return err
	}
	lgr.Printf("[INFO] email to %s, subject %q, %d bytes", m.To, m.Subject, len(body))
	lgr.Printf("[DEBUG] email body: %s", body)
	return nil
}
