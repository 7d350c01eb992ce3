// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureConnect Contributors

package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/samber/oops"

	"github.com/secureconnect/secureconnect/internal/auth"
	"github.com/secureconnect/secureconnect/internal/observability"
	"github.com/secureconnect/secureconnect/pkg/errutil"
)

// User-facing messages. Authentication failures stay generic so the
// response never reveals which factor failed.
const (
	msgRegistered         = "User registered successfully"
	msgLoginSuccess       = "Login successful"
	msgLogoutSuccess      = "Logged out successfully"
	msgUsernameTaken      = "Username already exists"
	msgInvalidCredentials = "Invalid username or password"
	msgInvalidToken       = "Invalid token"
	msgNotAuthenticated   = "Not authenticated"
	msgServerError        = "Server error"
	msgBadRequestBody     = "Invalid request body"
)

// response is the JSON envelope every auth endpoint returns.
type response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	User    *userPayload      `json:"user,omitempty"`
	Token   string            `json:"token,omitempty"`
}

type userPayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Handlers serves the /api/auth endpoints.
type Handlers struct {
	service      *auth.Service
	tokenTTL     time.Duration
	secureCookie bool
	logger       *slog.Logger
	metrics      *observability.Metrics
}

// NewHandlers creates the auth API handlers. tokenTTL sets the session
// cookie lifetime and should match the token codec's TTL. secureCookie
// adds the Secure attribute for production deployments. metrics may be
// nil when no observability server is running.
func NewHandlers(service *auth.Service, tokenTTL time.Duration, secureCookie bool, logger *slog.Logger, metrics *observability.Metrics) (*Handlers, error) {
	if service == nil {
		return nil, oops.Code("HANDLERS_INVALID").Errorf("auth service is required")
	}
	if tokenTTL <= 0 {
		return nil, oops.Code("HANDLERS_INVALID").Errorf("token TTL must be positive, got %s", tokenTTL)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		service:      service,
		tokenTTL:     tokenTTL,
		secureCookie: secureCookie,
		logger:       logger,
		metrics:      metrics,
	}, nil
}

// countAuth records one authentication operation outcome.
func (h *Handlers) countAuth(operation, outcome string) {
	if h.metrics != nil {
		h.metrics.AuthAttempts.WithLabelValues(operation, outcome).Inc()
	}
}

// Register handles POST /api/auth/register.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: msgBadRequestBody})
		return
	}

	_, err := h.service.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeAuthError(w, "register", err)
		return
	}

	h.countAuth("register", "success")
	writeJSON(w, http.StatusCreated, response{Success: true, Message: msgRegistered})
}

// Login handles POST /api/auth/login. On success the session token is
// returned in the body and set as an HTTP-only cookie.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: msgBadRequestBody})
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeAuthError(w, "login", err)
		return
	}

	h.countAuth("login", "success")
	http.SetCookie(w, h.sessionCookie(token, h.tokenTTL))
	writeJSON(w, http.StatusOK, response{
		Success: true,
		Message: msgLoginSuccess,
		User:    &userPayload{ID: user.ID, Username: user.Username},
		Token:   token,
	})
}

// Logout handles POST /api/auth/logout. The cookie is cleared even when
// no session exists; logout is idempotent.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(TokenCookie); err == nil && c.Value != "" {
		if err := h.service.Logout(c.Value); err != nil {
			errutil.LogError(h.logger, "logout", err)
		}
	}

	h.countAuth("logout", "success")
	http.SetCookie(w, h.sessionCookie("", -time.Second))
	writeJSON(w, http.StatusOK, response{Success: true, Message: msgLogoutSuccess})
}

// Me handles GET /api/auth/me. The identity comes from the verified
// session cookie.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(TokenCookie)
	if err != nil || c.Value == "" {
		h.countAuth("me", "rejected")
		writeJSON(w, http.StatusUnauthorized, response{Success: false, Message: msgNotAuthenticated})
		return
	}

	identity, err := h.service.CurrentUser(c.Value)
	if err != nil {
		h.countAuth("me", "rejected")
		writeJSON(w, http.StatusUnauthorized, response{Success: false, Message: msgInvalidToken})
		return
	}

	h.countAuth("me", "success")
	writeJSON(w, http.StatusOK, response{
		Success: true,
		User:    &userPayload{ID: identity.ID, Username: identity.Username},
	})
}

// sessionCookie builds the auth_token cookie. A non-positive maxAge
// clears it.
func (h *Handlers) sessionCookie(token string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

// writeAuthError maps service errors to the HTTP envelope and records
// the operation outcome. Anything not in the expected taxonomy is
// logged and surfaced as a generic server error.
func (h *Handlers) writeAuthError(w http.ResponseWriter, operation string, err error) {
	var verr *auth.ValidationError
	switch {
	case errors.As(err, &verr):
		h.countAuth(operation, "rejected")
		writeJSON(w, http.StatusBadRequest, response{Success: false, Errors: verr.Fields})
	case errors.Is(err, auth.ErrUsernameTaken):
		h.countAuth(operation, "rejected")
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: msgUsernameTaken})
	case errors.Is(err, auth.ErrInvalidCredentials):
		h.countAuth(operation, "rejected")
		writeJSON(w, http.StatusUnauthorized, response{Success: false, Message: msgInvalidCredentials})
	case errors.Is(err, auth.ErrInvalidToken):
		h.countAuth(operation, "rejected")
		writeJSON(w, http.StatusUnauthorized, response{Success: false, Message: msgInvalidToken})
	default:
		h.countAuth(operation, "error")
		errutil.LogError(h.logger, "auth request failed", err)
		writeJSON(w, http.StatusInternalServerError, response{Success: false, Message: msgServerError})
	}
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	//nolint:errcheck // response write error means the client went away
	json.NewEncoder(w).Encode(body)
}
