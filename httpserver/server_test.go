package httpserver

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/ruteri/kyc-onboarding-backend/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingRoutes struct{}

func (pingRoutes) RegisterRoutes(r chi.Router) {
	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := New(&api.HTTPServerConfig{
		ListenAddr: "127.0.0.1:0",
		Log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, pingRoutes{})
	require.NoError(t, err)
	return srv
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestServer_MountsRoutes(t *testing.T) {
	srv := newTestServer(t)

	w := get(srv, "/api/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	assert.Equal(t, http.StatusOK, get(srv, "/livez").Code)
}

func TestServer_DrainAndUndrain(t *testing.T) {
	srv := newTestServer(t)

	assert.Equal(t, http.StatusOK, get(srv, "/readyz").Code)

	w := get(srv, "/drain")
	assert.JSONEq(t, `{"status":"draining"}`, w.Body.String())
	assert.Equal(t, http.StatusServiceUnavailable, get(srv, "/readyz").Code)

	w = get(srv, "/drain")
	assert.JSONEq(t, `{"status":"already draining"}`, w.Body.String())

	w = get(srv, "/undrain")
	assert.JSONEq(t, `{"status":"ready"}`, w.Body.String())
	assert.Equal(t, http.StatusOK, get(srv, "/readyz").Code)
}

func TestServer_ReadinessCheck(t *testing.T) {
	srv := newTestServer(t)

	available := false
	srv.SetReadinessCheck(func(ctx context.Context) bool { return available })

	w := get(srv, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"dependencies unavailable"}`, w.Body.String())

	available = true
	assert.Equal(t, http.StatusOK, get(srv, "/readyz").Code)
}
