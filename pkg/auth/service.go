// Package auth implements account sign-up, sign-in, sign-out and the delete request on top of
// an external authentication provider. Operations never return errors, failures are reported
// in the uniform domain.Result.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pkgz/lgr"
	"github.com/go-playground/validator/v10"

	"github.com/umputun/signalist/pkg/domain"
)

//go:generate moq -out mocks/provider.go -pkg mocks -skip-ensure -fmt goimports . Provider
//go:generate moq -out mocks/publisher.go -pkg mocks -skip-ensure -fmt goimports . Publisher
//go:generate moq -out mocks/user_store.go -pkg mocks -skip-ensure -fmt goimports . UserStore

// messages returned in failed results
const (
	MsgSignUpFailed  = "Sign up failed"
	MsgSignInFailed  = "Sign in failed"
	MsgSignOutFailed = "Sign out failed"
	MsgDeleteFailed  = "Failed to send verification email"
)

// GoodbyePath is the landing page after the provider deleted the account
const GoodbyePath = "/goodbye"

var errNoSession = errors.New("no session")

// Provider is the external authentication provider
type Provider interface {
	SignUp(ctx context.Context, email, password, name string) (domain.Session, error)
	SignIn(ctx context.Context, email, password string) (domain.Session, error)
	SignOut(ctx context.Context, token string) error
	SendDeleteVerification(ctx context.Context, token, callbackURL string) error
}

// Publisher publishes domain events
type Publisher interface {
	Publish(ctx context.Context, name string, data map[string]any) error
}

// UserStore keeps profiles of signed-up users
type UserStore interface {
	SaveUser(ctx context.Context, p domain.UserProfile) error
}

// Params configures Service. Users is optional.
type Params struct {
	Provider Provider
	Events   Publisher
	Users    UserStore
	BaseURL  string // public url of the app, the delete confirmation lands on BaseURL/goodbye
}

// Service forwards account operations to the provider
type Service struct {
	Params
	validate *validator.Validate
}

// SignUpResult is the sign-up outcome followed by the independent outcome of the
// "user created" publish. Event is nil when the event was published or sign-up failed.
type SignUpResult struct {
	domain.Result
	Published bool  `json:"-"`
	Event     error `json:"-"`
}

// NewService makes an account service
func NewService(params Params) *Service {
	return &Service{Params: params, validate: validator.New()}
}

// SignUp creates the account with the provider. On success the profile is stored and
// the "user created" event published, neither of which changes the sign-up result.
func (s *Service) SignUp(ctx context.Context, req domain.SignUpRequest) SignUpResult {
	req.ApplyDefaults()
	if err := s.validate.Struct(req); err != nil {
		lgr.Printf("[WARN] sign up rejected for %s: %v", req.Email, err)
		return SignUpResult{Result: domain.Fail(MsgSignUpFailed)}
	}

	profile := req.Profile()
	session, err := s.Provider.SignUp(ctx, profile.Email, req.Password, profile.Name)
	if err != nil {
		lgr.Printf("[WARN] sign up failed for %s: %v", profile.Email, err)
		return SignUpResult{Result: domain.Fail(MsgSignUpFailed)}
	}
	lgr.Printf("[INFO] signed up %s", profile.Email)

	if s.Users != nil {
		if err := s.Users.SaveUser(ctx, profile); err != nil {
			lgr.Printf("[WARN] can't store profile of %s: %v", profile.Email, err)
		}
	}

	res := SignUpResult{Result: domain.Ok(session)}
	if err := s.Events.Publish(ctx, domain.EventUserCreated, profile.Payload()); err != nil {
		lgr.Printf("[WARN] can't publish %s for %s: %v", domain.EventUserCreated, profile.Email, err)
		res.Event = err
		return res
	}
	res.Published = true
	return res
}

// SignIn opens a session
func (s *Service) SignIn(ctx context.Context, creds domain.Credentials) domain.Result {
	if err := s.validate.Struct(creds); err != nil {
		lgr.Printf("[WARN] sign in rejected: %v", err)
		return domain.Fail(MsgSignInFailed)
	}
	session, err := s.Provider.SignIn(ctx, creds.Email, creds.Password)
	if err != nil {
		lgr.Printf("[WARN] sign in failed for %s: %v", creds.Email, err)
		return domain.Fail(MsgSignInFailed)
	}
	return domain.Ok(session)
}

// SignOut ends the session
func (s *Service) SignOut(ctx context.Context, token string) domain.Result {
	if err := s.withSession(token, func() error { return s.Provider.SignOut(ctx, token) }); err != nil {
		lgr.Printf("[WARN] sign out failed: %v", err)
		return domain.Fail(MsgSignOutFailed)
	}
	return domain.Ok(nil)
}

// RequestDeleteAccount asks the provider to email a deletion confirmation link.
// The account stays until the link is followed.
func (s *Service) RequestDeleteAccount(ctx context.Context, token string) domain.Result {
	callback := s.BaseURL + GoodbyePath
	err := s.withSession(token, func() error { return s.Provider.SendDeleteVerification(ctx, token, callback) })
	if err != nil {
		lgr.Printf("[WARN] delete account request failed: %v", err)
		return domain.Fail(MsgDeleteFailed)
	}
	lgr.Printf("[INFO] delete account verification sent, callback %s", callback)
	return domain.Ok(nil)
}

// withSession runs fn for a non-empty token, turning a provider panic into an error
func (s *Service) withSession(token string, fn func() error) (err error) {
	if token == "" {
		return errNoSession
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panic: %v", r)
		}
	}()
	return fn()
}
