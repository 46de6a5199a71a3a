package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/quantlab/volguard/internal/risk"
)

// =============================================================================
// Rolling Realized-Vol Forecaster (reference implementation)
// =============================================================================

// RollingVolForecaster 직전 윈도우의 실현 변동성을 다음 날 예측으로 쓰는
// 기준 모델. GARCH/ML 예측기의 비교 기준선 역할
type RollingVolForecaster struct {
	Window int
}

// NewRollingVolForecaster creates a rolling realized-vol forecaster
func NewRollingVolForecaster(window int) *RollingVolForecaster {
	if window <= 0 {
		window = 21
	}
	return &RollingVolForecaster{Window: window}
}

// Name returns the model identifier
func (f *RollingVolForecaster) Name() string {
	return fmt.Sprintf("rolling_vol_%d", f.Window)
}

// Forecast 시점 t의 예측 = [t-window, t) 구간 수익률의 RMS
// 현재 시점 수익률은 포함하지 않음 (1-스텝 선행 예측)
//
// marketdata.RealizedVol의 sqrt(Σr²) 합산 규약과 달리 여기는 윈도우 평균
// sqrt(Σr²/W)을 쓴다 - 일별 σ 스케일의 예측치가 필요하기 때문. 한쪽을
// 다른 쪽에 맞추지 말 것
func (f *RollingVolForecaster) Forecast(returns risk.Series) (risk.Series, error) {
	if returns.Len() <= f.Window {
		return risk.Series{}, fmt.Errorf("need more than %d observations, got %d",
			f.Window, returns.Len())
	}

	times := make([]time.Time, 0, returns.Len()-f.Window)
	values := make([]float64, 0, returns.Len()-f.Window)

	sumSq := 0.0
	for i := 0; i < f.Window; i++ {
		r := returns.At(i).Value
		sumSq += r * r
	}

	for i := f.Window; i < returns.Len(); i++ {
		times = append(times, returns.At(i).Time)
		values = append(values, math.Sqrt(sumSq/float64(f.Window)))

		// 윈도우 슬라이드
		old := returns.At(i - f.Window).Value
		curr := returns.At(i).Value
		sumSq += curr*curr - old*old
	}

	return risk.SeriesFrom(times, values)
}
