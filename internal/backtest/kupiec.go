package backtest

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/quantlab/volguard/internal/risk"
)

// =============================================================================
// Kupiec Proportion-of-Failures Test
// =============================================================================

// chi2 자유도 1의 카이제곱 분포 (LR 검정 공용)
var chi2 = distuv.ChiSquared{K: 1}

// KupiecResult Kupiec POF 검정 결과
// Degenerate=true이면 LRStat/PValue는 NaN (x=0 또는 x=T, 우도비 미정의)
// Observed/Expected는 항상 채워짐
type KupiecResult struct {
	LRStat     float64 `json:"lr_stat"`
	PValue     float64 `json:"p_value"`
	Observed   int     `json:"observed"`
	Expected   float64 `json:"expected"`
	Degenerate bool    `json:"degenerate"`
}

// Kupiec 관측 위반율이 명목 위반율 p = 1-α와 같다는 귀무가설 검정
//
//	LR = -2·[(T-x)·ln(1-p) + x·ln(p) - (T-x)·ln(1-x/T) - x·ln(x/T)]
//
// x=0 또는 x=T이면 우도비가 log(0)을 포함하므로 검정 미정의 -
// NaN 통계량을 반환하고 Degenerate를 표시 (에러 아님, 유효하지만
// 극단적인 데이터)
func Kupiec(breaches risk.Breaches, alpha float64) KupiecResult {
	T := breaches.Len()
	x := breaches.Count()
	p := 1 - alpha

	result := KupiecResult{
		Observed: x,
		Expected: float64(T) * p,
	}

	if x == 0 || x == T {
		result.LRStat = math.NaN()
		result.PValue = math.NaN()
		result.Degenerate = true
		return result
	}

	tf := float64(T)
	xf := float64(x)

	lr := -2 * ((tf-xf)*math.Log(1-p) + xf*math.Log(p) -
		(tf-xf)*math.Log(1-xf/tf) - xf*math.Log(xf/tf))

	result.LRStat = lr
	result.PValue = chi2.Survival(lr)
	return result
}
