package notify

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/signalist/pkg/domain"
	"github.com/umputun/signalist/pkg/email"
	"github.com/umputun/signalist/pkg/llm"
	"github.com/umputun/signalist/pkg/notify/mocks"
	"github.com/umputun/signalist/pkg/prompt"
)

const welcomeReply = `<p class="mobile-text" style="margin: 0 0 30px 0; font-size: 16px; line-height: 1.6; color: #CCDADC;">` +
	`Danke, dass du bei Signalist dabei bist! Als <strong>wachstumsorientierter Anleger</strong> mit ` +
	`<strong>mittlerer Risikobereitschaft</strong> und Fokus auf <strong>Technologie</strong> bekommst du bei uns ` +
	`Echtzeit-Alarme, klare Kennzahlen und verständliche Analysen zu genau den Tech-Unternehmen, die dein Portfolio ` +
	`langfristig nach vorne bringen können und dich interessieren.</p>`

var maxProfile = domain.UserProfile{
	Email:             "max@example.com",
	Name:              "Max Mustermann",
	Country:           "US",
	InvestmentGoals:   domain.GoalGrowth,
	RiskTolerance:     domain.RiskMedium,
	PreferredIndustry: domain.IndustryTechnology,
}

func digestReply(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../content/testdata/digest.html")
	require.NoError(t, err)
	return string(data)
}

func okSender() *mocks.SenderMock {
	return &mocks.SenderMock{SendFunc: func(ctx context.Context, m email.Message) error { return nil }}
}

func TestOrchestrator_UserCreated(t *testing.T) {
	gen := &mocks.GeneratorMock{GenerateFunc: func(ctx context.Context, p prompt.Rendered, f llm.Format) (llm.Content, error) {
		return llm.Content{Format: f, Text: welcomeReply}, nil
	}}
	sender := okSender()
	o := New(Params{Generator: gen, Sender: sender})

	err := o.Handle(context.Background(), domain.Event{ID: "e1", Name: domain.EventUserCreated, Data: maxProfile.Payload()})
	require.NoError(t, err)

	require.Len(t, gen.GenerateCalls(), 1)
	call := gen.GenerateCalls()[0]
	assert.Equal(t, llm.FormatHTML, call.F)
	assert.Equal(t, prompt.WelcomeEmail, call.P.Name)
	assert.Contains(t, call.P.Text, "- Investment goals: Growth")
	assert.Contains(t, call.P.Text, "- Preferred industry: Technology")
	assert.Contains(t, call.P.Text, `"Welcome aboard Max Mustermann"`)
	assert.NotContains(t, call.P.Text, "{{")

	require.Len(t, sender.SendCalls(), 1)
	msg := sender.SendCalls()[0].M
	assert.Equal(t, "max@example.com", msg.To)
	assert.Equal(t, email.WelcomeSubject, msg.Subject)
	assert.Equal(t, email.LayoutWelcome.Name, msg.Layout.Name)
	assert.Equal(t, "Max Mustermann", msg.Fields["name"])
	intro, ok := msg.Fields["intro"].(string)
	require.True(t, ok)
	assert.Contains(t, intro, "<strong>Technologie</strong>")

	body, err := msg.Body()
	require.NoError(t, err)
	assert.Contains(t, body, "Welcome aboard Max Mustermann")
	assert.Contains(t, body, "Echtzeit-Alarme")
}

func TestOrchestrator_UserCreated_Failures(t *testing.T) {
	tests := []struct {
		name    string
		data    map[string]any
		gen     func(ctx context.Context, p prompt.Rendered, f llm.Format) (llm.Content, error)
		sendErr error
		errIs   error
		sends   int
	}{
		{
			name: "no email in payload",
			data: map[string]any{"name": "Max"},
			gen: func(ctx context.Context, p prompt.Rendered, f llm.Format) (llm.Content, error) {
				return llm.Content{Text: welcomeReply}, nil
			},
			errIs: domain.ErrValidation,
		},
		{
			name: "generation unavailable",
			data: maxProfile.Payload(),
			gen: func(ctx context.Context, p prompt.Rendered, f llm.Format) (llm.Content, error) {
				return llm.Content{}, &llm.UnavailableError{Err: errors.New("timeout")}
			},
			errIs: domain.ErrExternalService,
		},
		{
			name: "reply starts with welcome",
			data: maxProfile.Payload(),
			gen: func(ctx context.Context, p prompt.Rendered, f llm.Format) (llm.Content, error) {
				return llm.Content{Text: strings.Replace(welcomeReply, "Danke, dass du bei Signalist dabei bist!",
					"Willkommen bei Signalist, schön dass du da bist!", 1)}, nil
			},
			errIs: domain.ErrMalformedResponse,
		},
		{
			name: "send failed",
			data: maxProfile.Payload(),
			gen: func(ctx context.Context, p prompt.Rendered, f llm.Format) (llm.Content, error) {
				return llm.Content{Text: welcomeReply}, nil
			},
			sendErr: domain.ErrExternalService,
			errIs:   domain.ErrExternalService,
			sends:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &mocks.SenderMock{SendFunc: func(ctx context.Context, m email.Message) error { return tt.sendErr }}
			o := New(Params{Generator: &mocks.GeneratorMock{GenerateFunc: tt.gen}, Sender: sender})

			err := o.Handle(context.Background(), domain.Event{ID: "e1", Name: domain.EventUserCreated, Data: tt.data})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.errIs)
			assert.Len(t, sender.SendCalls(), tt.sends)
		})
	}
}

func TestOrchestrator_MissingPlaceholder(t *testing.T) {
	gen := &mocks.GeneratorMock{}
	store := prompt.NewStore(prompt.Template{Name: prompt.WelcomeEmail, Body: "Profil {{userProfile}}, Ziel {{watchlist}}"})
	o := New(Params{Templates: store, Generator: gen, Sender: okSender()})

	err := o.Handle(context.Background(), domain.Event{ID: "e1", Name: domain.EventUserCreated, Data: maxProfile.Payload()})
	require.Error(t, err)
	var perr *prompt.MissingPlaceholderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, []string{"watchlist"}, perr.Keys)
	assert.Empty(t, gen.GenerateCalls(), "nothing is sent to the generation service")
}

func TestOrchestrator_DailyNews(t *testing.T) {
	news := []domain.NewsItem{
		{Headline: "Tech-Aktien legen zu", Summary: "Der Nasdaq stieg um 2%.", URL: "https://example.com/a", Source: "Reuters",
			Published: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)},
	}
	gen := &mocks.GeneratorMock{GenerateFunc: func(ctx context.Context, p prompt.Rendered, f llm.Format) (llm.Content, error) {
		return llm.Content{Format: f, Text: digestReply(t)}, nil
	}}
	users := &mocks.UserStoreMock{ListUsersFunc: func(ctx context.Context) ([]domain.UserProfile, error) {
		return []domain.UserProfile{maxProfile, {Email: "erika@example.com", Name: "Erika"}, {Email: "bad@example.com"}}, nil
	}}
	sender := &mocks.SenderMock{SendFunc: func(ctx context.Context, m email.Message) error {
		if m.To == "bad@example.com" {
			return errors.New("mailbox unavailable")
		}
		return nil
	}}
	source := &mocks.NewsSourceMock{NewsFunc: func(ctx context.Context) ([]domain.NewsItem, error) { return news, nil }}

	o := New(Params{Generator: gen, Sender: sender, News: source, Users: users,
		Now: func() time.Time { return time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC) }})
	err := o.Handle(context.Background(), domain.Event{ID: "e2", Name: domain.EventDailyNews})
	require.NoError(t, err, "a failed recipient doesn't fail the digest")

	require.Len(t, gen.GenerateCalls(), 1, "digest is generated once for all users")
	p := gen.GenerateCalls()[0].P
	assert.Equal(t, prompt.NewsDigest, p.Name)
	assert.Contains(t, p.Text, `"headline": "Tech-Aktien legen zu"`)
	assert.Contains(t, p.Text, `"url": "https://example.com/a"`)

	calls := sender.SendCalls()
	require.Len(t, calls, 3)
	assert.Equal(t, "max@example.com", calls[0].M.To)
	assert.Equal(t, "erika@example.com", calls[1].M.To)
	assert.Equal(t, "📈 Market News Summary Today - October 14, 2026", calls[0].M.Subject)
	assert.Equal(t, email.LayoutNewsSummary.Name, calls[0].M.Layout.Name)
	assert.Equal(t, "October 14, 2026", calls[0].M.Fields["date"])
	assert.Contains(t, calls[0].M.Fields["newsContent"], "dark-info-box")
}

func TestOrchestrator_DailyNews_Skips(t *testing.T) {
	t.Run("no users", func(t *testing.T) {
		users := &mocks.UserStoreMock{ListUsersFunc: func(ctx context.Context) ([]domain.UserProfile, error) { return nil, nil }}
		source := &mocks.NewsSourceMock{}
		o := New(Params{Generator: &mocks.GeneratorMock{}, Sender: okSender(), News: source, Users: users})
		require.NoError(t, o.Handle(context.Background(), domain.Event{Name: domain.EventDailyNews}))
		assert.Empty(t, source.NewsCalls())
	})

	t.Run("no news", func(t *testing.T) {
		users := &mocks.UserStoreMock{ListUsersFunc: func(ctx context.Context) ([]domain.UserProfile, error) {
			return []domain.UserProfile{maxProfile}, nil
		}}
		source := &mocks.NewsSourceMock{NewsFunc: func(ctx context.Context) ([]domain.NewsItem, error) { return nil, nil }}
		gen := &mocks.GeneratorMock{}
		o := New(Params{Generator: gen, Sender: okSender(), News: source, Users: users})
		require.NoError(t, o.Handle(context.Background(), domain.Event{Name: domain.EventDailyNews}))
		assert.Empty(t, gen.GenerateCalls())
	})
}

func TestOrchestrator_DailyNews_Failures(t *testing.T) {
	users := &mocks.UserStoreMock{ListUsersFunc: func(ctx context.Context) ([]domain.UserProfile, error) {
		return []domain.UserProfile{maxProfile}, nil
	}}
	news := &mocks.NewsSourceMock{NewsFunc: func(ctx context.Context) ([]domain.NewsItem, error) {
		return []domain.NewsItem{{Headline: "h", URL: "https://example.com/h"}}, nil
	}}

	t.Run("news source down", func(t *testing.T) {
		source := &mocks.NewsSourceMock{NewsFunc: func(ctx context.Context) ([]domain.NewsItem, error) {
			return nil, domain.ErrExternalService
		}}
		o := New(Params{Generator: &mocks.GeneratorMock{}, Sender: okSender(), News: source, Users: users})
		err := o.Handle(context.Background(), domain.Event{Name: domain.EventDailyNews})
		assert.ErrorIs(t, err, domain.ErrExternalService)
	})

	t.Run("malformed digest", func(t *testing.T) {
		gen := &mocks.GeneratorMock{GenerateFunc: func(ctx context.Context, p prompt.Rendered, f llm.Format) (llm.Content, error) {
			return llm.Content{Text: `<h3>Marktüberblick</h3><p>Nur ein Absatz</p>`}, nil
		}}
		sender := okSender()
		o := New(Params{Generator: gen, Sender: sender, News: news, Users: users})
		err := o.Handle(context.Background(), domain.Event{Name: domain.EventDailyNews})
		assert.ErrorIs(t, err, domain.ErrMalformedResponse)
		assert.Empty(t, sender.SendCalls())
	})

	t.Run("all sends failed", func(t *testing.T) {
		gen := &mocks.GeneratorMock{GenerateFunc: func(ctx context.Context, p prompt.Rendered, f llm.Format) (llm.Content, error) {
			return llm.Content{Text: digestReply(t)}, nil
		}}
		sender := &mocks.SenderMock{SendFunc: func(ctx context.Context, m email.Message) error { return errors.New("smtp down") }}
		o := New(Params{Generator: gen, Sender: sender, News: news, Users: users})
		err := o.Handle(context.Background(), domain.Event{Name: domain.EventDailyNews})
		assert.ErrorIs(t, err, domain.ErrExternalService)
	})
}

func TestOrchestrator_UserDeleted(t *testing.T) {
	users := &mocks.UserStoreMock{DeleteUserFunc: func(ctx context.Context, email string) error { return nil }}
	o := New(Params{Users: users})

	require.NoError(t, o.Handle(context.Background(), domain.Event{Name: domain.EventUserDeleted,
		Data: map[string]any{"email": "max@example.com"}}))
	require.Len(t, users.DeleteUserCalls(), 1)
	assert.Equal(t, "max@example.com", users.DeleteUserCalls()[0].Email)

	err := o.Handle(context.Background(), domain.Event{Name: domain.EventUserDeleted, Data: map[string]any{}})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, users.DeleteUserCalls(), 1)
}

func TestOrchestrator_UnknownEvent(t *testing.T) {
	o := New(Params{})
	assert.NoError(t, o.Handle(context.Background(), domain.Event{Name: "app/unknown"}))
	assert.Equal(t, []string{domain.EventUserCreated, domain.EventUserDeleted, domain.EventDailyNews}, o.Events())
}

func TestWelcomeValues(t *testing.T) {
	v := WelcomeValues(maxProfile)
	assert.Equal(t, "Max Mustermann", v["name"])
	assert.Equal(t, "- Name: Max Mustermann\n- Country: US\n- Investment goals: Growth\n- Risk tolerance: Medium\n"+
		"- Preferred industry: Technology", v["userProfile"])
}
