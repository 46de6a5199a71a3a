package risk

import (
	"errors"

	"gonum.org/v1/gonum/stat"
)

// =============================================================================
// Volatility Calibration (variance matching)
// =============================================================================

// ErrDegenerateCalibration 예측 변동성 평균이 0이라 스케일이 정의되지 않을 때
var ErrDegenerateCalibration = errors.New("degenerate calibration: mean forecast volatility is zero")

// CalibrateVolatility 분산 매칭 캘리브레이션
//
//	calibrated = sigma × (std(returns) / mean(sigma))
//
// 학습된 예측기의 체계적 과대/과소 추정 편향을 보정. 시계열의 형태는
// 유지하고 장기 평균 크기만 실현 수익률 분산에 맞춤
func CalibrateVolatility(returns, sigma Series) (Series, error) {
	if sigma.Len() == 0 {
		return Series{}, ErrDegenerateCalibration
	}

	meanSigma := stat.Mean(sigma.Values(), nil)
	if meanSigma == 0 {
		return Series{}, ErrDegenerateCalibration
	}

	scale := stat.StdDev(returns.Values(), nil) / meanSigma

	points := make([]Point, sigma.Len())
	for i := 0; i < sigma.Len(); i++ {
		p := sigma.At(i)
		points[i] = Point{Time: p.Time, Value: p.Value * scale}
	}

	return Series{points: points}, nil
}
