package risk

import (
	"math"
	"time"
)

// =============================================================================
// Parametric VaR / CVaR
// =============================================================================

// VaRConvention VaR 부호 규약
// ⭐ SSOT: Loss를 양수로 표현 (VaR=0.05 → 5% 손실 가능)
// 전체 시스템에서 이 규약을 일관되게 사용
const VaRConvention = "loss_positive"

// TailRisk 파라메트릭 VaR/CVaR 계산 결과
// Returns/VaR/CVaR는 같은 타임스탬프 도메인 (sigma와 inner join)
type TailRisk struct {
	Alpha   float64      `json:"alpha"`
	Dist    Distribution `json:"-"`
	Returns Series       `json:"-"` // 정렬된 실현 수익률
	VaR     Series       `json:"-"` // 손실, 양수
	CVaR    Series       `json:"-"` // 손실, 양수
}

// ParametricTailRisk 변동성 예측 시계열로부터 VaR/CVaR 시계열 계산
//
//	VaR[t]  = z · σ[t]
//	CVaR[t] = cvarFactor(α) · σ[t]
//
// returns와 sigma는 타임스탬프 inner join으로 정렬됨. 순수 함수 -
// 동일 입력에 대해 항상 비트 동일한 출력
func ParametricTailRisk(returns, sigma Series, alpha float64, dist Distribution) (*TailRisk, error) {
	z, err := dist.Quantile(alpha)
	if err != nil {
		return nil, err
	}

	factor, err := dist.cvarFactor(alpha)
	if err != nil {
		return nil, err
	}

	alignedReturns, alignedSigma := Align(returns, sigma)

	n := alignedSigma.Len()
	varPoints := make([]Point, n)
	cvarPoints := make([]Point, n)
	for i := 0; i < n; i++ {
		p := alignedSigma.At(i)
		varPoints[i] = Point{Time: p.Time, Value: z * p.Value}
		cvarPoints[i] = Point{Time: p.Time, Value: factor * p.Value}
	}

	return &TailRisk{
		Alpha:   alpha,
		Dist:    dist,
		Returns: alignedReturns,
		VaR:     Series{points: varPoints},
		CVaR:    Series{points: cvarPoints},
	}, nil
}

// =============================================================================
// Breach Detection
// =============================================================================

// Breaches VaR 위반 지표 시계열 (파생 시계열, 생성 후 불변)
type Breaches struct {
	times []time.Time
	hits  []bool
}

// DetectBreaches 실현 수익률이 -VaR를 하회한 시점 탐지
// returns와 varSeries는 내부에서 inner join으로 정렬됨
func DetectBreaches(returns, varSeries Series) Breaches {
	r, v := Align(returns, varSeries)

	n := r.Len()
	times := make([]time.Time, n)
	hits := make([]bool, n)
	for i := 0; i < n; i++ {
		times[i] = r.At(i).Time
		hits[i] = r.At(i).Value < -v.At(i).Value
	}

	return Breaches{times: times, hits: hits}
}

// BreachesFrom constructs a breach series directly (테스트/시뮬레이션용)
func BreachesFrom(times []time.Time, hits []bool) Breaches {
	copiedTimes := make([]time.Time, len(times))
	copy(copiedTimes, times)
	copiedHits := make([]bool, len(hits))
	copy(copiedHits, hits)
	return Breaches{times: copiedTimes, hits: copiedHits}
}

// Len returns the number of observations
func (b Breaches) Len() int {
	return len(b.hits)
}

// Hit returns whether the i-th observation is a breach
func (b Breaches) Hit(i int) bool {
	return b.hits[i]
}

// Time returns the i-th timestamp
func (b Breaches) Time(i int) time.Time {
	return b.times[i]
}

// Count returns the total breach count
func (b Breaches) Count() int {
	count := 0
	for _, hit := range b.hits {
		if hit {
			count++
		}
	}
	return count
}

// Rate 경험적 위반율 = 위반 횟수 / 관측 수
// 빈 시계열이면 NaN - 호출자는 Len()을 먼저 확인해야 함
func (b Breaches) Rate() float64 {
	if len(b.hits) == 0 {
		return math.NaN()
	}
	return float64(b.Count()) / float64(len(b.hits))
}
