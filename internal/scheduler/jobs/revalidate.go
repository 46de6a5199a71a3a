package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/quantlab/volguard/internal/api"
	"github.com/quantlab/volguard/internal/audit"
	"github.com/quantlab/volguard/internal/forecast"
	"github.com/quantlab/volguard/internal/marketdata"
	"github.com/quantlab/volguard/internal/risk"
	"github.com/quantlab/volguard/internal/stress"
	"github.com/quantlab/volguard/pkg/config"
	"github.com/quantlab/volguard/pkg/logger"
)

// revalidationLookback 검증에 사용할 이력 길이
// Basel 250일 윈도우 + 워밍업 여유를 위해 3년
const revalidationLookback = 3 * 365 * 24 * time.Hour

// RevalidationJob reruns the full validation pipeline daily
// Schedule: 6:30 PM (장 마감 후 일별 시세 확정 시점)
type RevalidationJob struct {
	market    *marketdata.Client
	validator *forecast.Validator
	writer    *audit.Writer
	repo      *audit.Repository // nil when DB disabled
	hub       *api.Hub          // nil when API not running
	config    *config.Config
	logger    *logger.Logger
}

// NewRevalidationJob creates a new revalidation job
func NewRevalidationJob(
	market *marketdata.Client,
	validator *forecast.Validator,
	writer *audit.Writer,
	repo *audit.Repository,
	hub *api.Hub,
	cfg *config.Config,
	log *logger.Logger,
) *RevalidationJob {
	return &RevalidationJob{
		market:    market,
		validator: validator,
		writer:    writer,
		repo:      repo,
		hub:       hub,
		config:    cfg,
		logger:    log,
	}
}

// Name returns the job name
func (j *RevalidationJob) Name() string {
	return "daily_revalidation"
}

// Schedule returns the cron schedule (6:30 PM daily, with seconds)
func (j *RevalidationJob) Schedule() string {
	return "0 30 18 * * *"
}

// Run executes the validation pipeline
func (j *RevalidationJob) Run(ctx context.Context) error {
	symbol := j.config.Validation.Symbol
	j.logger.WithField("symbol", symbol).Info("Starting scheduled revalidation")

	to := time.Now()
	from := to.Add(-revalidationLookback)

	bars, err := j.market.FetchDailyPrices(ctx, symbol, from, to)
	if err != nil {
		return fmt.Errorf("fetch prices: %w", err)
	}
	if len(bars) < 2 {
		return fmt.Errorf("not enough price data for %s: %d bars", symbol, len(bars))
	}

	// 원본 시세 CSV 보관 (재현성)
	if err := marketdata.SaveCSV(j.config.Market.DataDir, symbol, bars); err != nil {
		j.logger.WithError(err).Warn("Failed to save price CSV")
	}

	closes, err := marketdata.CloseSeries(bars)
	if err != nil {
		return fmt.Errorf("invalid price series: %w", err)
	}
	returns := marketdata.LogReturns(closes)

	dist := risk.Normal()
	if nu := j.config.Validation.StudentTNu; nu > 0 {
		dist = risk.StudentT(nu)
	}

	models := []forecast.Forecaster{
		forecast.NewRollingVolForecaster(j.config.Validation.VolWindow),
	}

	reports := j.validator.ValidateAll(models, returns, forecast.Config{
		Symbol:      symbol,
		Alpha:       j.config.Validation.Alpha,
		Dist:        dist,
		Calibrate:   true,
		BaselWindow: j.config.Validation.BaselWin,
	})
	if len(reports) == 0 {
		return fmt.Errorf("all model validations failed for %s", symbol)
	}

	records := stress.AnalyzeAll(returns, stress.StandardScenarios())

	if _, err := j.writer.WriteSummary(reports, records); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	if j.repo != nil {
		for _, report := range reports {
			if err := j.repo.SaveReport(ctx, report); err != nil {
				return fmt.Errorf("save report %s: %w", report.Model, err)
			}
		}
	}

	if j.hub != nil {
		for _, report := range reports {
			j.hub.Broadcast(api.RunEvent{
				Type:      "validation_completed",
				Symbol:    symbol,
				Model:     report.Model,
				Timestamp: time.Now().Format(time.RFC3339),
			})
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"models": len(reports),
	}).Info("Scheduled revalidation completed")

	return nil
}
