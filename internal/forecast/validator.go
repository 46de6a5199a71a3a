package forecast

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/quantlab/volguard/internal/backtest"
	"github.com/quantlab/volguard/internal/risk"
)

// =============================================================================
// Model Validator
// =============================================================================

// Config 검증 파이프라인 설정
type Config struct {
	Symbol      string            // 검증 대상 심볼 (리포트 표기용)
	Alpha       float64           // 신뢰수준 (예: 0.99)
	Dist        risk.Distribution // 손실 분포
	Calibrate   bool              // 분산 매칭 캘리브레이션 적용 여부
	BaselWindow int               // traffic light 윈도우 (0 = 250)
}

// ValidationReport 모델 검증 리포트
// 파이프라인 전체 결과의 요약 - 저장소/API가 소비하는 값
type ValidationReport struct {
	Model          string                        `json:"model"`
	Symbol         string                        `json:"symbol"`
	Alpha          float64                       `json:"alpha"`
	Distribution   string                        `json:"distribution"`
	Calibrated     bool                          `json:"calibrated"`
	From           time.Time                     `json:"from"`
	To             time.Time                     `json:"to"`
	SampleCount    int                           `json:"sample_count"`
	BreachCount    int                           `json:"breach_count"`
	BreachRate     float64                       `json:"breach_rate"`
	Kupiec         backtest.KupiecResult         `json:"kupiec"`
	Christoffersen backtest.ChristoffersenResult `json:"christoffersen"`
	Lights         backtest.LightSummary         `json:"traffic_lights"`
	CreatedAt      time.Time                     `json:"created_at"`
}

// Validator 모델 적정성 검증기
// ⭐ SSOT: 예측 → VaR → 위반 → 규제 백테스트 파이프라인은 여기서만 조립
// 상태 없음 - 여러 모델을 동시에 검증해도 안전
type Validator struct {
	engine *risk.Engine
	log    zerolog.Logger
}

// NewValidator 새 검증기 생성
func NewValidator(engine *risk.Engine, log zerolog.Logger) *Validator {
	return &Validator{
		engine: engine,
		log:    log.With().Str("component", "forecast.validator").Logger(),
	}
}

// Validate 단일 모델의 꼬리 리스크 예측 적정성 검증
//
// 파이프라인: 예측 → (선택) 캘리브레이션 → VaR/CVaR → 위반 탐지 →
// Kupiec POF + Christoffersen 독립성 + Basel traffic light
func (v *Validator) Validate(model Forecaster, returns risk.Series, cfg Config) (*ValidationReport, error) {
	sigma, err := model.Forecast(returns)
	if err != nil {
		return nil, fmt.Errorf("forecast failed for %s: %w", model.Name(), err)
	}

	if cfg.Calibrate {
		// 예측 도메인으로 제한한 수익률에 분산 매칭
		alignedReturns, alignedSigma := risk.Align(returns, sigma)
		sigma, err = v.engine.Calibrate(alignedReturns, alignedSigma)
		if err != nil {
			return nil, fmt.Errorf("calibration failed for %s: %w", model.Name(), err)
		}
	}

	tail, err := v.engine.TailRisk(returns, sigma, cfg.Alpha, cfg.Dist)
	if err != nil {
		return nil, fmt.Errorf("tail risk failed for %s: %w", model.Name(), err)
	}

	breaches := v.engine.Breaches(tail.Returns, tail.VaR)

	window := cfg.BaselWindow
	if window <= 0 {
		window = backtest.DefaultBaselWindow
	}

	report := &ValidationReport{
		Model:          model.Name(),
		Symbol:         cfg.Symbol,
		Alpha:          cfg.Alpha,
		Distribution:   cfg.Dist.String(),
		Calibrated:     cfg.Calibrate,
		SampleCount:    breaches.Len(),
		BreachCount:    breaches.Count(),
		BreachRate:     breaches.Rate(),
		Kupiec:         backtest.Kupiec(breaches, cfg.Alpha),
		Christoffersen: backtest.Christoffersen(breaches),
		Lights:         backtest.Summarize(backtest.TrafficLight(breaches, window)),
		CreatedAt:      time.Now(),
	}

	if breaches.Len() > 0 {
		report.From = breaches.Time(0)
		report.To = breaches.Time(breaches.Len() - 1)
	}

	v.log.Info().
		Str("model", model.Name()).
		Float64("alpha", cfg.Alpha).
		Int("samples", report.SampleCount).
		Int("breaches", report.BreachCount).
		Float64("breach_rate", report.BreachRate).
		Bool("kupiec_degenerate", report.Kupiec.Degenerate).
		Msg("model validation completed")

	return report, nil
}

// ValidateAll 여러 모델을 같은 설정으로 검증
// 실패한 모델은 건너뛰고 로그만 남김 (다중 모델 비교 유지)
func (v *Validator) ValidateAll(models []Forecaster, returns risk.Series, cfg Config) []*ValidationReport {
	reports := make([]*ValidationReport, 0, len(models))
	for _, model := range models {
		report, err := v.Validate(model, returns, cfg)
		if err != nil {
			v.log.Warn().Err(err).Str("model", model.Name()).Msg("validation failed")
			continue
		}
		reports = append(reports, report)
	}
	return reports
}
