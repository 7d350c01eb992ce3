// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureConnect Contributors

// Package httpapi provides the HTTP surface: the chi router, the
// authentication API handlers, and the request gate middleware.
package httpapi

import (
	"net/http"

	"github.com/gobwas/glob"
)

// Decision is the gate's verdict for a request path.
type Decision int

const (
	// Pass lets the request through unchanged.
	Pass Decision = iota
	// RedirectLogin sends the client to the login page.
	RedirectLogin
	// RedirectDashboard sends an already-authenticated client to the
	// dashboard instead of a public-only page.
	RedirectDashboard
)

// String returns the decision name for logging.
func (d Decision) String() string {
	switch d {
	case Pass:
		return "pass"
	case RedirectLogin:
		return "redirect_login"
	case RedirectDashboard:
		return "redirect_dashboard"
	default:
		return "unknown"
	}
}

const (
	// LoginPath is where unauthenticated requests to protected paths
	// are redirected.
	LoginPath = "/login"
	// DashboardPath is where authenticated requests to public-only
	// pages are redirected.
	DashboardPath = "/dashboard"
	// LogoutPath must stay reachable in every token state, or a
	// logged-in client could never clear its session. The gate
	// guarantees this by passing the whole auth API through.
	LogoutPath = "/api/auth/logout"

	// TokenCookie is the session cookie name.
	TokenCookie = "auth_token"
)

// Gate decides, per request path and token presence, whether a request
// passes or is redirected. It looks only at whether a token cookie is
// present. Token validity is checked downstream by the endpoints that
// need an identity, so a forged cookie gets past the gate but fails at
// every authenticated endpoint.
type Gate struct {
	matcher []glob.Glob
	public  []glob.Glob
	pages   []glob.Glob
}

// NewGate creates a Gate covering the application's routes.
func NewGate() *Gate {
	return &Gate{
		matcher: compileGlobs("/", "/login", "/signup", "/dashboard", "/api/auth/*"),
		public:  compileGlobs("/login", "/signup", "/api/auth/*"),
		// Only the public pages bounce authenticated clients to the
		// dashboard. The auth API stays reachable with a session:
		// /api/auth/me and /api/auth/logout are called while logged in.
		pages: compileGlobs("/login", "/signup"),
	}
}

func compileGlobs(patterns ...string) []glob.Glob {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		globs = append(globs, glob.MustCompile(p, '/'))
	}
	return globs
}

func matchAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// Covers reports whether the gate applies to the given path at all.
// Paths outside the matcher always pass.
func (g *Gate) Covers(path string) bool {
	return matchAny(g.matcher, path)
}

// Decide returns the verdict for a request path and token presence.
func (g *Gate) Decide(path string, hasToken bool) Decision {
	if !g.Covers(path) {
		return Pass
	}

	if matchAny(g.public, path) {
		if hasToken && matchAny(g.pages, path) {
			return RedirectDashboard
		}
		return Pass
	}

	if !hasToken {
		return RedirectLogin
	}
	return Pass
}

// Middleware applies the gate to every request. Redirects use 307 so
// the client preserves the request method.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hasToken := false
		if c, err := r.Cookie(TokenCookie); err == nil && c.Value != "" {
			hasToken = true
		}

		switch g.Decide(r.URL.Path, hasToken) {
		case RedirectLogin:
			http.Redirect(w, r, LoginPath, http.StatusTemporaryRedirect)
		case RedirectDashboard:
			http.Redirect(w, r, DashboardPath, http.StatusTemporaryRedirect)
		default:
			next.ServeHTTP(w, r)
		}
	})
}
