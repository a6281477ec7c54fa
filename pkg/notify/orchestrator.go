// Package notify turns delivered domain events into personalized emails. Each event is
// handled on its own: a failed render, generation or send aborts only that event.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/signalist/pkg/content"
	"github.com/umputun/signalist/pkg/domain"
	"github.com/umputun/signalist/pkg/email"
	"github.com/umputun/signalist/pkg/llm"
	"github.com/umputun/signalist/pkg/metrics"
	"github.com/umputun/signalist/pkg/prompt"
)

//go:generate moq -out mocks/generator.go -pkg mocks -skip-ensure -fmt goimports . Generator
//go:generate moq -out mocks/sender.go -pkg mocks -skip-ensure -fmt goimports . Sender
//go:generate moq -out mocks/news_source.go -pkg mocks -skip-ensure -fmt goimports . NewsSource
//go:generate moq -out mocks/user_store.go -pkg mocks -skip-ensure -fmt goimports . UserStore

const digestDateFormat = "January 2, 2006"

// Generator produces content for a rendered prompt
type Generator interface {
	Generate(ctx context.Context, p prompt.Rendered, f llm.Format) (llm.Content, error)
}

// Sender delivers an email
type Sender interface {
	Send(ctx context.Context, m email.Message) error
}

// NewsSource returns the news to summarize in the digest
type NewsSource interface {
	News(ctx context.Context) ([]domain.NewsItem, error)
}

// UserStore lists digest recipients and forgets deleted users
type UserStore interface {
	ListUsers(ctx context.Context) ([]domain.UserProfile, error)
	DeleteUser(ctx context.Context, email string) error
}

// Params configures Orchestrator
type Params struct {
	Templates *prompt.Store // built-in templates if nil
	Generator Generator
	Sender    Sender
	News      NewsSource
	Users     UserStore
	Metrics   *metrics.Metrics
	Now       func() time.Time // time.Now if nil
}

// Orchestrator handles user lifecycle and digest events
type Orchestrator struct {
	Params
}

// New makes an orchestrator
func New(params Params) *Orchestrator {
	if params.Templates == nil {
		params.Templates = prompt.DefaultStore()
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &Orchestrator{Params: params}
}

// Events returns the names of the events handled by the orchestrator
func (o *Orchestrator) Events() []string {
	return []string{domain.EventUserCreated, domain.EventUserDeleted, domain.EventDailyNews}
}

// Handle processes a delivered event. Failures are logged and returned, unknown events are ignored.
func (o *Orchestrator) Handle(ctx context.Context, e domain.Event) error {
	var err error
	switch e.Name {
	case domain.EventUserCreated:
		err = o.sendWelcome(ctx, e)
	case domain.EventUserDeleted:
		err = o.forgetUser(ctx, e)
	case domain.EventDailyNews:
		err = o.sendDigest(ctx)
	default:
		lgr.Printf("[DEBUG] ignore event %s (%s)", e.Name, e.ID)
		return nil
	}
	if err != nil {
		lgr.Printf("[ERROR] event %s (%s) aborted: %v", e.Name, e.ID, err)
		return err
	}
	return nil
}

// sendWelcome generates the personalized intro and sends the welcome email
func (o *Orchestrator) sendWelcome(ctx context.Context, e domain.Event) error {
	profile, err := domain.ProfileFromPayload(e.Data)
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}

	intro, err := o.generate(ctx, prompt.WelcomeEmail, WelcomeValues(profile), content.ValidateWelcome)
	if err != nil {
		return fmt.Errorf("welcome intro for %s: %w", profile.Email, err)
	}

	msg := email.Message{
		To:      profile.Email,
		Subject: email.WelcomeSubject,
		Layout:  email.LayoutWelcome,
		Fields:  map[string]any{"name": profile.Name, "intro": intro},
	}
	if err := o.Sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send welcome email to %s: %w", profile.Email, err)
	}
	lgr.Printf("[INFO] welcome email sent to %s", profile.Email)
	return nil
}

// sendDigest summarizes the latest news once and sends the digest to every user.
// A failed send to one user doesn't stop the others.
func (o *Orchestrator) sendDigest(ctx context.Context) error {
	users, err := o.Users.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	if len(users) == 0 {
		lgr.Printf("[INFO] no users for news digest")
		return nil
	}

	news, err := o.News.News(ctx)
	if err != nil {
		return fmt.Errorf("gather news: %w", err)
	}
	if len(news) == 0 {
		lgr.Printf("[INFO] no news for digest, skipped")
		return nil
	}

	summary, err := o.generate(ctx, prompt.NewsDigest, map[string]any{"newsData": news}, content.ValidateDigest)
	if err != nil {
		return fmt.Errorf("news digest: %w", err)
	}

	date := o.Now().UTC().Format(digestDateFormat)
	sent := 0
	for _, u := range users {
		msg := email.Message{
			To:      u.Email,
			Subject: email.NewsSubjectFor(date),
			Layout:  email.LayoutNewsSummary,
			Fields:  map[string]any{"date": date, "newsContent": summary},
		}
		if err := o.Sender.Send(ctx, msg); err != nil {
			lgr.Printf("[WARN] can't send news digest to %s: %v", u.Email, err)
			continue
		}
		sent++
	}
	lgr.Printf("[INFO] news digest with %d articles sent to %d of %d users", len(news), sent, len(users))
	if sent == 0 {
		return fmt.Errorf("news digest not sent to any of %d users: %w", len(users), domain.ErrExternalService)
	}
	return nil
}

// forgetUser removes a deleted account from the digest recipients
func (o *Orchestrator) forgetUser(ctx context.Context, e domain.Event) error {
	addr, _ := e.Data["email"].(string)
	if addr == "" {
		return fmt.Errorf("event payload has no email: %w", domain.ErrValidation)
	}
	if err := o.Users.DeleteUser(ctx, addr); err != nil {
		return fmt.Errorf("delete user %s: %w", addr, err)
	}
	lgr.Printf("[INFO] removed deleted user %s", addr)
	return nil
}

// generate renders the named template, asks for an html fragment, checks it with validate
// and returns the sanitized fragment
func (o *Orchestrator) generate(ctx context.Context, name string, values map[string]any, validate func(string) error) (string, error) {
	tmpl, err := o.Templates.Get(name)
	if err != nil {
		return "", err
	}
	rendered, err := prompt.Render(tmpl, values)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}

	st := time.Now()
	res, err := o.Generator.Generate(ctx, rendered, llm.FormatHTML)
	if err == nil {
		err = validate(res.Text)
	}
	o.Metrics.Generation(string(llm.FormatHTML), time.Since(st), err)
	if err != nil {
		return "", fmt.Errorf("generate %s: %w", name, err)
	}
	lgr.Printf("[DEBUG] generated %s in %v, %d bytes", name, time.Since(st), len(res.Text))
	return content.Sanitize(res.Text), nil
}

// WelcomeValues builds the welcome prompt values from a profile
func WelcomeValues(p domain.UserProfile) map[string]any {
	var sb strings.Builder
	sb.WriteString("- Name: " + p.Name + "\n")
	sb.WriteString("- Country: " + p.Country + "\n")
	sb.WriteString("- Investment goals: " + string(p.InvestmentGoals) + "\n")
	sb.WriteString("- Risk tolerance: " + string(p.RiskTolerance) + "\n")
	sb.WriteString("- Preferred industry: " + string(p.PreferredIndustry))
	return map[string]any{"userProfile": sb.String(), "name": p.Name}
}
