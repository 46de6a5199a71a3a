package stress

import (
	"encoding/json"
	"math"
	"time"

	"github.com/quantlab/volguard/internal/risk"
)

// =============================================================================
// Stress Scenario Analyzer
// =============================================================================

// Scenario 고정 위기 구간 (양끝 포함)
type Scenario struct {
	Name  string    `json:"name"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Record 시나리오별 스트레스 분석 결과
// DayCount=0이면 나머지 통계는 NaN - 호출자는 DayCount를 먼저 확인
type Record struct {
	Name           string    `json:"name"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	DayCount       int       `json:"day_count"`
	WorstDay       float64   `json:"worst_day"`
	CumulativeLoss float64   `json:"cumulative_loss"`
	AvgDailyLoss   float64   `json:"avg_daily_loss"`
}

// StandardScenarios 표준 산업 스트레스 시나리오
func StandardScenarios() []Scenario {
	return []Scenario{
		{
			Name:  "GFC_2008",
			Start: time.Date(2008, 9, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2009, 3, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			Name:  "COVID_2020",
			Start: time.Date(2020, 2, 15, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2020, 4, 30, 0, 0, 0, 0, time.UTC),
		},
	}
}

// Analyze 수익률 시계열을 시나리오 구간으로 제한해 손실 통계 계산
// 구간에 관측치가 없으면 에러 대신 DayCount=0, NaN 통계를 반환
func Analyze(returns risk.Series, scenario Scenario) Record {
	window := returns.Between(scenario.Start, scenario.End)

	record := Record{
		Name:     scenario.Name,
		Start:    scenario.Start,
		End:      scenario.End,
		DayCount: window.Len(),
	}

	if window.Len() == 0 {
		record.WorstDay = math.NaN()
		record.CumulativeLoss = math.NaN()
		record.AvgDailyLoss = math.NaN()
		return record
	}

	worst := math.Inf(1)
	sum := 0.0
	for i := 0; i < window.Len(); i++ {
		r := window.At(i).Value
		if r < worst {
			worst = r
		}
		sum += r
	}

	record.WorstDay = worst
	record.CumulativeLoss = sum
	record.AvgDailyLoss = sum / float64(window.Len())
	return record
}

// AnalyzeAll 모든 시나리오 분석
func AnalyzeAll(returns risk.Series, scenarios []Scenario) []Record {
	records := make([]Record, 0, len(scenarios))
	for _, scenario := range scenarios {
		records = append(records, Analyze(returns, scenario))
	}
	return records
}

// Drawdown 시나리오 구간의 누적 드로다운 시계열
//
//	dd[t] = Π(1+r) - 1  (구간 시작부터의 누적곱)
//
// 시각화 레이어(대시보드)에 제공하는 값
func Drawdown(returns risk.Series, scenario Scenario) risk.Series {
	window := returns.Between(scenario.Start, scenario.End)

	times := make([]time.Time, 0, window.Len())
	values := make([]float64, 0, window.Len())

	cum := 1.0
	for i := 0; i < window.Len(); i++ {
		p := window.At(i)
		cum *= 1 + p.Value
		times = append(times, p.Time)
		values = append(values, cum-1)
	}

	// Between의 결과는 원 시계열의 부분열이므로 순서 보장
	dd, _ := risk.SeriesFrom(times, values)
	return dd
}

// =============================================================================
// JSON encoding (NaN-safe)
// =============================================================================

// nanFloat NaN을 null로 직렬화하는 float64
// DayCount=0 레코드의 NaN 통계는 유효한 결과 - encoding/json은 NaN을 거부함
type nanFloat float64

func (f nanFloat) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(f)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(f))
}

func (f *nanFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = nanFloat(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = nanFloat(v)
	return nil
}

// recordJSON Record의 와이어 표현
type recordJSON struct {
	Name           string    `json:"name"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	DayCount       int       `json:"day_count"`
	WorstDay       nanFloat  `json:"worst_day"`
	CumulativeLoss nanFloat  `json:"cumulative_loss"`
	AvgDailyLoss   nanFloat  `json:"avg_daily_loss"`
}

// MarshalJSON encodes NaN statistics as null
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		Name:           r.Name,
		Start:          r.Start,
		End:            r.End,
		DayCount:       r.DayCount,
		WorstDay:       nanFloat(r.WorstDay),
		CumulativeLoss: nanFloat(r.CumulativeLoss),
		AvgDailyLoss:   nanFloat(r.AvgDailyLoss),
	})
}

// UnmarshalJSON restores null statistics as NaN
func (r *Record) UnmarshalJSON(data []byte) error {
	var wire recordJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	r.Name = wire.Name
	r.Start = wire.Start
	r.End = wire.End
	r.DayCount = wire.DayCount
	r.WorstDay = float64(wire.WorstDay)
	r.CumulativeLoss = float64(wire.CumulativeLoss)
	r.AvgDailyLoss = float64(wire.AvgDailyLoss)
	return nil
}
