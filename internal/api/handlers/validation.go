package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/quantlab/volguard/internal/audit"
	"github.com/quantlab/volguard/pkg/logger"
)

// ValidationHandler serves stored model validation reports
type ValidationHandler struct {
	repo   *audit.Repository
	logger *logger.Logger
}

// NewValidationHandler creates a new validation handler
// repo may be nil when the database is disabled
func NewValidationHandler(repo *audit.Repository, log *logger.Logger) *ValidationHandler {
	return &ValidationHandler{repo: repo, logger: log}
}

// GetLatest returns the most recent validation report
// GET /api/v1/validation/latest
func (h *ValidationHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		writeError(w, h.logger, http.StatusServiceUnavailable, "database disabled")
		return
	}

	reports, err := h.repo.RecentReports(r.Context(), 1)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load latest report")
		writeError(w, h.logger, http.StatusInternalServerError, "failed to load report")
		return
	}

	if len(reports) == 0 {
		writeError(w, h.logger, http.StatusNotFound, "no validation reports")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, reports[0])
}

// ListReports returns recent validation reports
// GET /api/v1/validation/reports?limit=20
func (h *ValidationHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		writeError(w, h.logger, http.StatusServiceUnavailable, "database disabled")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 200 {
			writeError(w, h.logger, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	reports, err := h.repo.RecentReports(r.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list reports")
		writeError(w, h.logger, http.StatusInternalServerError, "failed to list reports")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"count":   len(reports),
		"reports": reports,
	})
}

// writeJSON 상태 헤더 이후의 인코딩 실패는 복구 불가 - 로그로만 남김
func writeJSON(w http.ResponseWriter, log *logger.Logger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, log *logger.Logger, status int, msg string) {
	writeJSON(w, log, status, map[string]string{"error": msg})
}
