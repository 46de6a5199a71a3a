package forecast

import (
	"github.com/quantlab/volguard/internal/risk"
)

// =============================================================================
// Volatility Forecaster Contract
// =============================================================================

// Forecaster 변동성 예측기 계약
// ⭐ SSOT: 외부 예측기 (GARCH 계열, ML 워크포워드)는 이 인터페이스로만
// 연결됨. 코어는 모델 적합을 하지 않음 - 예측 시계열만 소비
//
// 반환 시계열은 양수 1-스텝 변동성 예측이어야 하며, 수익률 시계열의
// 타임스탬프 도메인(또는 워밍업으로 짧아진 부분집합)을 사용해야 함.
// 코어는 소비 전에 항상 inner join으로 정렬함
type Forecaster interface {
	// Name 모델 식별자 (리포트/저장소 키)
	Name() string
	// Forecast 수익률 시계열로부터 변동성 예측 시계열 생성
	Forecast(returns risk.Series) (risk.Series, error)
}
