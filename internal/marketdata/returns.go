package marketdata

import (
	"math"
	"time"

	"github.com/quantlab/volguard/internal/risk"
)

// =============================================================================
// Returns & Realized Volatility
// =============================================================================

// LogReturns 종가 시계열로부터 일별 로그 수익률 계산
//
//	r_t = ln(P_t / P_{t-1})
//
// 첫 관측치는 선행 가격이 없어 제외됨
func LogReturns(prices risk.Series) risk.Series {
	if prices.Len() < 2 {
		return risk.Series{}
	}

	times := make([]time.Time, 0, prices.Len()-1)
	values := make([]float64, 0, prices.Len()-1)

	for i := 1; i < prices.Len(); i++ {
		prev := prices.At(i - 1).Value
		curr := prices.At(i)
		if prev <= 0 || curr.Value <= 0 {
			continue
		}
		times = append(times, curr.Time)
		values = append(values, math.Log(curr.Value/prev))
	}

	returns, _ := risk.SeriesFrom(times, values)
	return returns
}

// DefaultVolWindow 실현 변동성 기본 롤링 윈도우 (약 1 거래월)
const DefaultVolWindow = 21

// RealizedVol 롤링 실현 변동성
//
//	σ_t = sqrt(Σ r²)  (직전 window개 수익률, 현재 포함)
//
// 워밍업 구간 (처음 window-1개)은 결과에서 제외됨
func RealizedVol(returns risk.Series, window int) risk.Series {
	if window <= 0 {
		window = DefaultVolWindow
	}
	if returns.Len() < window {
		return risk.Series{}
	}

	times := make([]time.Time, 0, returns.Len()-window+1)
	values := make([]float64, 0, returns.Len()-window+1)

	sumSq := 0.0
	for i := 0; i < returns.Len(); i++ {
		r := returns.At(i).Value
		sumSq += r * r
		if i >= window {
			old := returns.At(i - window).Value
			sumSq -= old * old
		}
		if i >= window-1 {
			times = append(times, returns.At(i).Time)
			values = append(values, math.Sqrt(sumSq))
		}
	}

	rv, _ := risk.SeriesFrom(times, values)
	return rv
}
