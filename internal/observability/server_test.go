// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureConnect Contributors

package observability

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startTestServer(t *testing.T, ready ReadinessChecker) *Server {
	t.Helper()

	srv := NewServer("127.0.0.1:0", ready)
	_, err := srv.Start()
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Stop(ctx)
	})

	return srv
}

func httpGet(t *testing.T, url string) (int, string) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func TestServerLiveness(t *testing.T) {
	srv := startTestServer(t, nil)

	status, body := httpGet(t, fmt.Sprintf("http://%s/healthz/liveness", srv.Addr()))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok\n", body)
}

func TestServerReadiness(t *testing.T) {
	var ready atomic.Bool
	srv := startTestServer(t, func() bool { return ready.Load() })

	status, body := httpGet(t, fmt.Sprintf("http://%s/healthz/readiness", srv.Addr()))
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "not ready\n", body)

	ready.Store(true)

	status, body = httpGet(t, fmt.Sprintf("http://%s/healthz/readiness", srv.Addr()))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok\n", body)
}

func TestServerReadinessNilChecker(t *testing.T) {
	srv := startTestServer(t, nil)

	status, _ := httpGet(t, fmt.Sprintf("http://%s/healthz/readiness", srv.Addr()))
	assert.Equal(t, http.StatusOK, status)
}

func TestServerMetricsEndpoint(t *testing.T) {
	srv := startTestServer(t, nil)

	srv.Metrics().AuthAttempts.WithLabelValues("login", "success").Inc()
	srv.Metrics().HTTPRequests.WithLabelValues("/api/auth/login", "200").Inc()

	status, body := httpGet(t, fmt.Sprintf("http://%s/metrics", srv.Addr()))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "secureconnect_auth_attempts_total")
	assert.Contains(t, body, `operation="login"`)
	assert.Contains(t, body, "secureconnect_http_requests_total")
	assert.Contains(t, body, "go_goroutines")
}

func TestServerDoubleStart(t *testing.T) {
	srv := startTestServer(t, nil)

	_, err := srv.Start()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "already running"))
}

func TestServerStopIdempotent(t *testing.T) {
	srv := NewServer("127.0.0.1:0", nil)
	_, err := srv.Start()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, srv.Stop(ctx))
	require.NoError(t, srv.Stop(ctx))
}
