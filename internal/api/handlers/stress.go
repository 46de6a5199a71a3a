package handlers

import (
	"net/http"
	"time"

	"github.com/quantlab/volguard/internal/marketdata"
	"github.com/quantlab/volguard/internal/stress"
	"github.com/quantlab/volguard/pkg/config"
	"github.com/quantlab/volguard/pkg/logger"
)

// StressHandler runs historical stress scenarios on demand
type StressHandler struct {
	market *marketdata.Client
	config *config.Config
	logger *logger.Logger
}

// NewStressHandler creates a new stress handler
func NewStressHandler(market *marketdata.Client, cfg *config.Config, log *logger.Logger) *StressHandler {
	return &StressHandler{market: market, config: cfg, logger: log}
}

// Run runs the standard scenarios against a symbol's return history
// GET /api/v1/stress?symbol=069500
func (h *StressHandler) Run(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		symbol = h.config.Validation.Symbol
	}

	scenarios := stress.StandardScenarios()

	// 가장 이른 시나리오부터 현재까지의 이력 필요
	from := scenarios[0].Start
	to := time.Now()

	bars, err := h.market.FetchDailyPrices(r.Context(), symbol, from, to)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch prices for stress run")
		writeError(w, h.logger, http.StatusBadGateway, "failed to fetch price history")
		return
	}

	closes, err := marketdata.CloseSeries(bars)
	if err != nil {
		h.logger.WithError(err).Error("Invalid price series")
		writeError(w, h.logger, http.StatusInternalServerError, "invalid price series")
		return
	}

	records := stress.AnalyzeAll(marketdata.LogReturns(closes), scenarios)

	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"symbol":    symbol,
		"scenarios": records,
	})
}
