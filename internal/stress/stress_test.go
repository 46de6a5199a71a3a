package stress

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantlab/volguard/internal/risk"
)

func dailySeries(t *testing.T, start time.Time, values []float64) risk.Series {
	t.Helper()
	times := make([]time.Time, len(values))
	for i := range values {
		times[i] = start.AddDate(0, 0, i)
	}
	s, err := risk.SeriesFrom(times, values)
	require.NoError(t, err)
	return s
}

func TestStandardScenarios(t *testing.T) {
	scenarios := StandardScenarios()
	require.Len(t, scenarios, 2)

	assert.Equal(t, "GFC_2008", scenarios[0].Name)
	assert.Equal(t, time.Date(2008, 9, 1, 0, 0, 0, 0, time.UTC), scenarios[0].Start)
	assert.Equal(t, time.Date(2009, 3, 31, 0, 0, 0, 0, time.UTC), scenarios[0].End)

	assert.Equal(t, "COVID_2020", scenarios[1].Name)
	assert.Equal(t, time.Date(2020, 2, 15, 0, 0, 0, 0, time.UTC), scenarios[1].Start)
	assert.Equal(t, time.Date(2020, 4, 30, 0, 0, 0, 0, time.UTC), scenarios[1].End)
}

func TestAnalyze(t *testing.T) {
	start := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	returns := dailySeries(t, start, []float64{-0.01, 0.02, -0.03})

	scenario := Scenario{
		Name:  "test_window",
		Start: start,
		End:   start.AddDate(0, 0, 2),
	}

	record := Analyze(returns, scenario)

	assert.Equal(t, 3, record.DayCount)
	assert.InDelta(t, -0.03, record.WorstDay, 1e-12)
	assert.InDelta(t, -0.02, record.CumulativeLoss, 1e-12)
	assert.InDelta(t, -0.02/3, record.AvgDailyLoss, 1e-12)
}

func TestAnalyze_InclusiveBounds(t *testing.T) {
	start := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	returns := dailySeries(t, start, []float64{-0.01, 0.02, -0.03, 0.01})

	// 구간 [start+1, start+2] - 양끝 포함 2개
	record := Analyze(returns, Scenario{
		Name:  "inner",
		Start: start.AddDate(0, 0, 1),
		End:   start.AddDate(0, 0, 2),
	})

	assert.Equal(t, 2, record.DayCount)
	assert.InDelta(t, -0.03, record.WorstDay, 1e-12)
	assert.InDelta(t, -0.01, record.CumulativeLoss, 1e-12)
}

func TestAnalyze_EmptyWindow(t *testing.T) {
	start := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	returns := dailySeries(t, start, []float64{-0.01, 0.02})

	record := Analyze(returns, Scenario{
		Name:  "out_of_range",
		Start: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, 0, record.DayCount)
	assert.True(t, math.IsNaN(record.WorstDay))
	assert.True(t, math.IsNaN(record.CumulativeLoss))
	assert.True(t, math.IsNaN(record.AvgDailyLoss))
}

func TestAnalyzeAll(t *testing.T) {
	start := time.Date(2008, 9, 1, 0, 0, 0, 0, time.UTC)
	returns := dailySeries(t, start, []float64{-0.05, 0.01, -0.02})

	records := AnalyzeAll(returns, StandardScenarios())
	require.Len(t, records, 2)

	// GFC 구간에는 데이터가 있고 COVID 구간에는 없음
	assert.Equal(t, 3, records[0].DayCount)
	assert.Equal(t, 0, records[1].DayCount)
}

func TestDrawdown(t *testing.T) {
	start := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	returns := dailySeries(t, start, []float64{-0.01, 0.02, -0.03})

	dd := Drawdown(returns, Scenario{
		Name:  "dd",
		Start: start,
		End:   start.AddDate(0, 0, 2),
	})

	require.Equal(t, 3, dd.Len())

	// 누적곱 기반: 0.99-1, 0.99·1.02-1, 0.99·1.02·0.97-1
	assert.InDelta(t, -0.01, dd.At(0).Value, 1e-12)
	assert.InDelta(t, 0.99*1.02-1, dd.At(1).Value, 1e-12)
	assert.InDelta(t, 0.99*1.02*0.97-1, dd.At(2).Value, 1e-12)
}

// 빈 구간 레코드(NaN 통계)도 JSON 경계를 통과해야 함
func TestRecordJSON_EmptyWindow(t *testing.T) {
	start := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	returns := dailySeries(t, start, []float64{-0.01, 0.02})

	scenario := Scenario{
		Name:  "before_history",
		Start: start.AddDate(-1, 0, 0),
		End:   start.AddDate(-1, 0, 10),
	}

	record := Analyze(returns, scenario)
	require.Equal(t, 0, record.DayCount)
	require.True(t, math.IsNaN(record.WorstDay))

	data, err := json.Marshal(record)
	require.NoError(t, err)

	body := string(data)
	assert.True(t, strings.Contains(body, `"worst_day":null`), "NaN 통계량은 null로 직렬화: %s", body)
	assert.True(t, strings.Contains(body, `"day_count":0`))

	var decoded Record
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 0, decoded.DayCount)
	assert.True(t, math.IsNaN(decoded.WorstDay))
	assert.True(t, math.IsNaN(decoded.CumulativeLoss))
	assert.True(t, math.IsNaN(decoded.AvgDailyLoss))
	assert.Equal(t, record.Name, decoded.Name)
}

// 정상 레코드는 값 그대로 왕복
func TestRecordJSON_RoundTrip(t *testing.T) {
	start := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	returns := dailySeries(t, start, []float64{-0.01, 0.02, -0.03})

	record := Analyze(returns, Scenario{Name: "test_window", Start: start, End: start.AddDate(0, 0, 2)})

	data, err := json.Marshal(record)
	require.NoError(t, err)

	var decoded Record
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 3, decoded.DayCount)
	assert.InDelta(t, -0.03, decoded.WorstDay, 1e-12)
	assert.InDelta(t, -0.02, decoded.CumulativeLoss, 1e-12)
}
