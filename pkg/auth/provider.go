package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/umputun/signalist/pkg/domain"
)

// ProviderError is a failed provider call, Message comes from the provider reply when available
type ProviderError struct {
	Op      string
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("auth provider %s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("auth provider %s: status %d: %s", e.Op, e.Status, e.Message)
}

// Is makes the error match domain.ErrExternalService
func (e *ProviderError) Is(target error) bool { return target == domain.ErrExternalService }

// HTTPProvider talks to an email/password authentication service over its REST API
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProvider makes a provider client for the API at baseURL
func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// SignUp creates an account and returns its first session
func (p *HTTPProvider) SignUp(ctx context.Context, email, password, name string) (domain.Session, error) {
	var res domain.Session
	body := map[string]string{"email": email, "password": password, "name": name}
	if err := p.call(ctx, "sign-up", "/sign-up/email", "", body, &res); err != nil {
		return domain.Session{}, err
	}
	return res, nil
}

// SignIn opens a session for the given credentials
func (p *HTTPProvider) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	var res domain.Session
	body := map[string]string{"email": email, "password": password}
	if err := p.call(ctx, "sign-in", "/sign-in/email", "", body, &res); err != nil {
		return domain.Session{}, err
	}
	return res, nil
}

// SignOut ends the session
func (p *HTTPProvider) SignOut(ctx context.Context, token string) error {
	return p.call(ctx, "sign-out", "/sign-out", token, struct{}{}, nil)
}

// SendDeleteVerification asks the provider to email a confirmation link. The account is deleted
// by the provider once the link is followed, then the user lands on callbackURL.
func (p *HTTPProvider) SendDeleteVerification(ctx context.Context, token, callbackURL string) error {
	body := map[string]string{"callbackURL": callbackURL}
	return p.call(ctx, "delete-user", "/delete-user", token, body, nil)
}

func (p *HTTPProvider) call(ctx context.Context, op, path, token string, body, res any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("make %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("auth provider %s: %w: %w", op, domain.ErrExternalService, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read %s response: %w: %w", op, domain.ErrExternalService, err)
	}
	if resp.StatusCode >= 300 {
		return &ProviderError{Op: op, Status: resp.StatusCode, Message: errorMessage(data)}
	}
	if res == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, res); err != nil {
		return fmt.Errorf("decode %s response: %w: %w", op, domain.ErrExternalService, err)
	}
	return nil
}

// errorMessage pulls the message out of an error reply like {"message": "..."} or {"error": "..."}
func errorMessage(data []byte) string {
	var reply struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &reply); err != nil {
		return ""
	}
	if reply.Message != "" {
		return reply.Message
	}
	return reply.Error
}
