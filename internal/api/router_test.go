package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantlab/volguard/internal/api/handlers"
	"github.com/quantlab/volguard/pkg/config"
	"github.com/quantlab/volguard/pkg/logger"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{Env: "development", LogLevel: "error", LogFormat: "json"}
	log := logger.New(cfg)

	// DB 없이 기동하는 구성 - 리포트 엔드포인트는 503
	validationHandler := handlers.NewValidationHandler(nil, log)
	stressHandler := handlers.NewStressHandler(nil, cfg, log)
	hub := NewHub(zerolog.Nop())

	return NewRouter(validationHandler, stressHandler, hub, log)
}

func TestRouter_Health(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status"`)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestRouter_ValidationWithoutDatabase(t *testing.T) {
	router := testRouter(t)

	for _, path := range []string{"/api/v1/validation/latest", "/api/v1/validation/reports"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "database disabled")
	}
}

func TestRouter_ValidationInvalidLimit(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/validation/reports?limit=bogus", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// DB 미구성 검사가 limit 검증보다 먼저 수행됨
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
