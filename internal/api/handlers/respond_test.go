package handlers

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantlab/volguard/pkg/config"
	"github.com/quantlab/volguard/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	cfg := &config.Config{Env: "development", LogLevel: "error", LogFormat: "json"}
	return logger.New(cfg)
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, testLogger(t), http.StatusOK, map[string]int{"count": 1})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"count":1}`, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, testLogger(t), http.StatusBadRequest, "invalid limit")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid limit"}`, rec.Body.String())
}

// 인코딩 불가 값(가공되지 않은 NaN)이 넘어와도 패닉 없이 로그만 남아야 함
func TestWriteJSON_EncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		writeJSON(rec, testLogger(t), http.StatusOK, map[string]float64{"value": math.NaN()})
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}
