package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/umputun/signalist/pkg/auth"
	"github.com/umputun/signalist/pkg/domain"
)

const (
	sessionCookie = "session_token"
	webhookHeader = "X-Signalist-Key"
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.Version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// signUpHandler creates an account. The reply is always a result object, the publish
// outcome of the "user created" event is not part of it.
func (s *Server) signUpHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderJSON(w, r, http.StatusBadRequest, domain.Fail(auth.MsgSignUpFailed))
		return
	}

	res := s.Accounts.SignUp(r.Context(), req)
	if !res.Success {
		renderJSON(w, r, http.StatusBadRequest, res.Result)
		return
	}
	if session, ok := res.Data.(domain.Session); ok {
		setSessionCookie(w, session.Token)
	}
	renderJSON(w, r, http.StatusOK, res.Result)
}

// signInHandler opens a session and sets the session cookie
func (s *Server) signInHandler(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		renderJSON(w, r, http.StatusBadRequest, domain.Fail(auth.MsgSignInFailed))
		return
	}

	res := s.Accounts.SignIn(r.Context(), creds)
	if !res.Success {
		renderJSON(w, r, http.StatusUnauthorized, res)
		return
	}
	if session, ok := res.Data.(domain.Session); ok {
		setSessionCookie(w, session.Token)
	}
	renderJSON(w, r, http.StatusOK, res)
}

// signOutHandler ends the session and clears the session cookie
func (s *Server) signOutHandler(w http.ResponseWriter, r *http.Request) {
	res := s.Accounts.SignOut(r.Context(), sessionToken(r))
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	renderJSON(w, r, resultCode(res, http.StatusUnauthorized), res)
}

// deleteAccountHandler requests the emailed deletion confirmation
func (s *Server) deleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	res := s.Accounts.RequestDeleteAccount(r.Context(), sessionToken(r))
	renderJSON(w, r, resultCode(res, http.StatusBadGateway), res)
}

// mapSymbolHandler returns the TradingView symbol for a stock
func (s *Server) mapSymbolHandler(w http.ResponseWriter, r *http.Request) {
	var info domain.SymbolInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}

	mapping, err := s.Symbols.MapSymbol(r.Context(), info)
	if err != nil {
		log.Printf("[WARN] failed to map symbol %s: %v", info.Symbol, err)
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, mapping)
}

// deliverEventHandler is called by the event bus for every delivered event. A failed handler
// is reported with 500 so the bus can deliver the event again.
func (s *Server) deliverEventHandler(w http.ResponseWriter, r *http.Request) {
	var e domain.Event
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		renderError(w, r, fmt.Errorf("invalid event: %w", err), http.StatusBadRequest)
		return
	}
	if e.Name == "" {
		renderError(w, r, errors.New("event name is required"), http.StatusBadRequest)
		return
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}

	if err := s.Events.Deliver(r.Context(), e); err != nil {
		log.Printf("[ERROR] event %s (%s) delivery failed: %v", e.Name, e.ID, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"status": "ok", "id": e.ID})
}

// triggerDigestHandler publishes the news digest trigger right away
func (s *Server) triggerDigestHandler(w http.ResponseWriter, r *http.Request) {
	if s.Digest == nil {
		renderError(w, r, errors.New("digest scheduler is disabled"), http.StatusServiceUnavailable)
		return
	}
	if err := s.Digest.TriggerDigest(r.Context()); err != nil {
		renderError(w, r, err, http.StatusBadGateway)
		return
	}
	renderJSON(w, r, http.StatusAccepted, map[string]string{"status": "triggered"})
}

// goodbyeHandler is the landing page after the account was deleted
func (s *Server) goodbyeHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(goodbyePage))
}

// webhookAuth checks the shared secret, a no-op if the secret is not configured
func (s *Server) webhookAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.WebhookSecret != "" {
			key := r.Header.Get(webhookHeader)
			if subtle.ConstantTimeCompare([]byte(key), []byte(s.WebhookSecret)) != 1 {
				renderError(w, r, errors.New("unauthorized"), http.StatusUnauthorized)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// sessionToken returns the bearer token or the session cookie value
func sessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie(sessionCookie); err == nil {
		return c.Value
	}
	return ""
}

func setSessionCookie(w http.ResponseWriter, token string) {
	if token == "" {
		return
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: token, Path: "/", HttpOnly: true,
		SameSite: http.SameSiteLaxMode})
}

// resultCode is 200 for a successful result and failCode otherwise
func resultCode(res domain.Result, failCode int) int {
	if res.Success {
		return http.StatusOK
	}
	return failCode
}

// errorCode maps an error class to the response status
func errorCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrMalformedResponse):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrExternalService):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}

const goodbyePage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Account Deleted - Signalist</title>
</head>
<body style="margin: 0; min-height: 100vh; display: flex; align-items: center; justify-content: center; background-color: #111827; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;">
<div style="max-width: 28rem; width: 100%; margin: 0 auto; padding: 2rem; background-color: #1f2937; border-radius: 0.5rem; border: 1px solid #374151; text-align: center;">
<h1 style="font-size: 1.875rem; font-weight: 700; color: #eab308; margin: 0 0 1rem 0;">Account Deleted</h1>
<p style="color: #d1d5db; margin: 0 0 1rem 0;">Your account has been permanently deleted. We're sorry to see you go.</p>
<p style="color: #9ca3af; font-size: 0.875rem; margin: 0;">All your data, including watchlists and alerts, has been removed from our system.</p>
<div style="margin-top: 2rem;">
<a href="/sign-in" style="display: inline-block; background-color: #eab308; color: #111827; font-weight: 500; padding: 0.75rem 1.5rem; border-radius: 0.5rem; text-decoration: none;">Return to Home</a>
</div>
</div>
</body>
</html>`
