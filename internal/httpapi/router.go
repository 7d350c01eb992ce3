// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureConnect Contributors

package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/secureconnect/secureconnect/internal/observability"
)

// RouterConfig carries the router's collaborators. Metrics may be nil
// when no observability server is running.
type RouterConfig struct {
	Handlers *Handlers
	Gate     *Gate
	Logger   *slog.Logger
	Metrics  *observability.Metrics
}

// NewRouter builds the application router: request id, logging, and
// metrics middleware, the request gate, the auth API, and minimal page
// responders for the routes the gate acts on.
func NewRouter(cfg RouterConfig) (chi.Router, error) {
	if cfg.Handlers == nil {
		return nil, fmt.Errorf("handlers are required")
	}
	if cfg.Gate == nil {
		cfg.Gate = NewGate()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(CountRequests(cfg.Metrics))
	r.Use(cfg.Gate.Middleware)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", cfg.Handlers.Register)
		r.Post("/login", cfg.Handlers.Login)
		r.Post("/logout", cfg.Handlers.Logout)
		r.Get("/me", cfg.Handlers.Me)
	})

	// Page routes exist so the gate has something to protect. Rendering
	// belongs to the frontend; these return a plain shell.
	for _, page := range []string{"/", "/login", "/signup", "/dashboard"} {
		r.Get(page, pageHandler(page))
	}

	return r, nil
}

func pageHandler(page string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		//nolint:errcheck // response write error means the client went away
		fmt.Fprintf(w, "secureconnect %s\n", page)
	}
}
