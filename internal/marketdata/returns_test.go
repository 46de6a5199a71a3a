package marketdata

import (
	"math"
	"testing"
	"time"

	"github.com/quantlab/volguard/internal/risk"
)

func testSeries(t *testing.T, values []float64) risk.Series {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	times := make([]time.Time, len(values))
	for i := range values {
		times[i] = base.AddDate(0, 0, i)
	}
	s, err := risk.SeriesFrom(times, values)
	if err != nil {
		t.Fatalf("SeriesFrom() error = %v", err)
	}
	return s
}

func TestLogReturns(t *testing.T) {
	prices := testSeries(t, []float64{100, 110, 99})

	returns := LogReturns(prices)
	if returns.Len() != 2 {
		t.Fatalf("LogReturns() len = %d, want 2", returns.Len())
	}

	if got, want := returns.At(0).Value, math.Log(110.0/100.0); math.Abs(got-want) > 1e-12 {
		t.Errorf("returns[0] = %v, want %v", got, want)
	}
	if got, want := returns.At(1).Value, math.Log(99.0/110.0); math.Abs(got-want) > 1e-12 {
		t.Errorf("returns[1] = %v, want %v", got, want)
	}

	// 첫 관측치는 제외되므로 타임스탬프는 두 번째 가격부터
	if !returns.At(0).Time.Equal(prices.At(1).Time) {
		t.Errorf("returns[0] time = %v, want %v", returns.At(0).Time, prices.At(1).Time)
	}
}

func TestLogReturns_SkipsNonPositivePrices(t *testing.T) {
	prices := testSeries(t, []float64{100, 0, 110, 121})

	returns := LogReturns(prices)
	// 0 가격과 인접한 두 수익률은 건너뜀
	if returns.Len() != 1 {
		t.Fatalf("LogReturns() len = %d, want 1", returns.Len())
	}
	if got, want := returns.At(0).Value, math.Log(121.0/110.0); math.Abs(got-want) > 1e-12 {
		t.Errorf("returns[0] = %v, want %v", got, want)
	}
}

func TestLogReturns_TooShort(t *testing.T) {
	if got := LogReturns(testSeries(t, []float64{100})); got.Len() != 0 {
		t.Errorf("LogReturns() len = %d, want 0", got.Len())
	}
}

func TestRealizedVol(t *testing.T) {
	returns := testSeries(t, []float64{0.01, 0.02, 0.03})

	rv := RealizedVol(returns, 2)
	if rv.Len() != 2 {
		t.Fatalf("RealizedVol() len = %d, want 2", rv.Len())
	}

	// σ[1] = sqrt(0.01² + 0.02²), σ[2] = sqrt(0.02² + 0.03²)
	want1 := math.Sqrt(0.01*0.01 + 0.02*0.02)
	want2 := math.Sqrt(0.02*0.02 + 0.03*0.03)
	if math.Abs(rv.At(0).Value-want1) > 1e-12 {
		t.Errorf("rv[0] = %v, want %v", rv.At(0).Value, want1)
	}
	if math.Abs(rv.At(1).Value-want2) > 1e-12 {
		t.Errorf("rv[1] = %v, want %v", rv.At(1).Value, want2)
	}

	// 워밍업 제외: 첫 결과는 returns[window-1] 시점
	if !rv.At(0).Time.Equal(returns.At(1).Time) {
		t.Errorf("rv[0] time = %v, want %v", rv.At(0).Time, returns.At(1).Time)
	}
}

func TestRealizedVol_TooShort(t *testing.T) {
	returns := testSeries(t, []float64{0.01, 0.02})
	if got := RealizedVol(returns, 21); got.Len() != 0 {
		t.Errorf("RealizedVol() len = %d, want 0", got.Len())
	}
}
