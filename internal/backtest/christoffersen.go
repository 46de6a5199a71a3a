package backtest

import (
	"math"

	"github.com/quantlab/volguard/internal/risk"
)

// =============================================================================
// Christoffersen Independence Test
// =============================================================================

// ChristoffersenResult Christoffersen 독립성 검정 결과
// 전이 횟수(n00..n11)를 함께 보고 - 위반 군집 여부 진단용
type ChristoffersenResult struct {
	LRStat float64 `json:"lr_stat"`
	PValue float64 `json:"p_value"`
	N00    int     `json:"n00"`
	N01    int     `json:"n01"`
	N10    int     `json:"n10"`
	N11    int     `json:"n11"`
}

// safeLog guarded logarithm: ln(0) → 0
// ⭐ 의도된 정책 결정 (수치 오류 아님): 전이 버킷이 비어 있을 때
// 해당 우도 항을 0으로 처리해 LR 통계량을 유한하게 유지한다.
// "고치지" 말 것 - 규제 구현 관행과 일치해야 함
func safeLog(x float64) float64 {
	if x > 0 {
		return math.Log(x)
	}
	return 0
}

// Christoffersen 위반이 시계열적으로 독립이라는 귀무가설 검정
//
// 인접 타임스탬프 쌍의 1차 마르코프 전이 횟수 n00, n01, n10, n11을
// 집계한다 (첫 관측치는 선행 관측이 없어 제외). 조건부 위반 확률
// π0 = n01/(n00+n01), π1 = n11/(n10+n11)은 분모가 0이면 0으로 둔다.
// 신뢰수준 α와 무관 - 위반 군집만 측정
func Christoffersen(breaches risk.Breaches) ChristoffersenResult {
	var n00, n01, n10, n11 int

	for i := 1; i < breaches.Len(); i++ {
		prev := breaches.Hit(i - 1)
		curr := breaches.Hit(i)

		switch {
		case !prev && !curr:
			n00++
		case !prev && curr:
			n01++
		case prev && !curr:
			n10++
		default:
			n11++
		}
	}

	result := ChristoffersenResult{N00: n00, N01: n01, N10: n10, N11: n11}

	total := n00 + n01 + n10 + n11
	if total == 0 {
		// 관측치 2개 미만 - 전이 없음, 검정 미정의
		result.LRStat = math.NaN()
		result.PValue = math.NaN()
		return result
	}

	var pi0, pi1 float64
	if n00+n01 > 0 {
		pi0 = float64(n01) / float64(n00+n01)
	}
	if n10+n11 > 0 {
		pi1 = float64(n11) / float64(n10+n11)
	}
	pi := float64(n01+n11) / float64(total)

	l0 := float64(n00+n10)*safeLog(1-pi) + float64(n01+n11)*safeLog(pi)
	l1 := float64(n00)*safeLog(1-pi0) + float64(n01)*safeLog(pi0) +
		float64(n10)*safeLog(1-pi1) + float64(n11)*safeLog(pi1)

	lr := -2 * (l0 - l1)

	result.LRStat = lr
	result.PValue = chi2.Survival(lr)
	return result
}
