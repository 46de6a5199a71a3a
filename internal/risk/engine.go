package risk

// =============================================================================
// RiskEngine - 순수 계산기
// =============================================================================

// Engine 리스크 엔진 (순수 계산기)
// ⭐ SSOT: 데이터 수집/예측기 실행은 상위 레이어(forecast)에서 조립
// internal/risk는 순수 계산만 담당. 상태 없음 - 여러 시나리오/모델을
// 동시에 평가해도 안전
type Engine struct{}

// NewEngine 새 리스크 엔진 생성
func NewEngine() *Engine {
	return &Engine{}
}

// TailRisk 파라메트릭 VaR/CVaR 계산
func (e *Engine) TailRisk(returns, sigma Series, alpha float64, dist Distribution) (*TailRisk, error) {
	return ParametricTailRisk(returns, sigma, alpha, dist)
}

// Breaches VaR 위반 탐지
func (e *Engine) Breaches(returns, varSeries Series) Breaches {
	return DetectBreaches(returns, varSeries)
}

// Calibrate 분산 매칭 캘리브레이션
func (e *Engine) Calibrate(returns, sigma Series) (Series, error) {
	return CalibrateVolatility(returns, sigma)
}
