// Package server exposes account operations, symbol mapping and event delivery over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/signalist/pkg/auth"
	"github.com/umputun/signalist/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/accounts.go -pkg mocks -skip-ensure -fmt goimports . AccountService
//go:generate moq -out mocks/symbols.go -pkg mocks -skip-ensure -fmt goimports . SymbolMapper
//go:generate moq -out mocks/events.go -pkg mocks -skip-ensure -fmt goimports . EventReceiver
//go:generate moq -out mocks/digest.go -pkg mocks -skip-ensure -fmt goimports . DigestTrigger

// Server represents HTTP server instance
type Server struct {
	Params

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// AccountService runs account operations
type AccountService interface {
	SignUp(ctx context.Context, req domain.SignUpRequest) auth.SignUpResult
	SignIn(ctx context.Context, creds domain.Credentials) domain.Result
	SignOut(ctx context.Context, token string) domain.Result
	RequestDeleteAccount(ctx context.Context, token string) domain.Result
}

// SymbolMapper finds the TradingView symbol of a stock
type SymbolMapper interface {
	MapSymbol(ctx context.Context, info domain.SymbolInfo) (domain.SymbolMapping, error)
}

// EventReceiver handles events delivered by the external bus
type EventReceiver interface {
	Deliver(ctx context.Context, e domain.Event) error
}

// DigestTrigger publishes the news digest trigger on demand
type DigestTrigger interface {
	TriggerDigest(ctx context.Context) error
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// Params configures Server. Digest and Metrics are optional.
type Params struct {
	Config        ConfigProvider
	Accounts      AccountService
	Symbols       SymbolMapper
	Events        EventReceiver
	Digest        DigestTrigger
	Metrics       http.Handler
	WebhookSecret string // required in X-Signalist-Key on event delivery if set
	Version       string
	Debug         bool
}

// New initializes a new server instance
func New(params Params) *Server {
	s := &Server{
		Params: params,
		router: routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.Config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("signalist", "umputun", s.Version))
	s.router.Use(rest.Ping)

	if s.Debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("POST /auth/sign-up", s.signUpHandler)
		r.HandleFunc("POST /auth/sign-in", s.signInHandler)
		r.HandleFunc("POST /auth/sign-out", s.signOutHandler)
		r.HandleFunc("POST /auth/delete-account", s.deleteAccountHandler)

		r.HandleFunc("POST /symbols/map", s.mapSymbolHandler)

		// endpoints called by the event bus and schedulers, not by users
		r.Group().Route(func(hooks *routegroup.Bundle) {
			hooks.Use(s.webhookAuth)
			hooks.HandleFunc("POST /events", s.deliverEventHandler)
			hooks.HandleFunc("POST /digest", s.triggerDigestHandler)
		})
	})

	s.router.HandleFunc("GET "+auth.GoodbyePath, s.goodbyeHandler)

	if s.Metrics != nil {
		s.router.Handle("GET /metrics", s.Metrics)
	}
}
