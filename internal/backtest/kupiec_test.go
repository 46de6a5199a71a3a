package backtest

import (
	"math"
	"testing"
	"time"

	"github.com/quantlab/volguard/internal/risk"
)

func breachSeries(t *testing.T, hits []bool) risk.Breaches {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	times := make([]time.Time, len(hits))
	for i := range hits {
		times[i] = base.AddDate(0, 0, i)
	}
	return risk.BreachesFrom(times, hits)
}

// breachesWithCount 길이 n, 앞쪽 x개가 위반인 시계열
func breachesWithCount(t *testing.T, n, x int) risk.Breaches {
	t.Helper()
	hits := make([]bool, n)
	for i := 0; i < x; i++ {
		hits[i] = true
	}
	return breachSeries(t, hits)
}

func TestKupiec_ExactNominalRate(t *testing.T) {
	// T=1000, α=0.99 → 기대 위반 10회. 정확히 10회면 LR=0, p=1
	result := Kupiec(breachesWithCount(t, 1000, 10), 0.99)

	if result.Degenerate {
		t.Fatal("Kupiec() should not be degenerate with 0 < x < T")
	}
	if result.Observed != 10 {
		t.Errorf("Observed = %d, want 10", result.Observed)
	}
	if math.Abs(result.Expected-10) > 1e-9 {
		t.Errorf("Expected = %v, want 10", result.Expected)
	}
	if math.Abs(result.LRStat) > 1e-9 {
		t.Errorf("LRStat = %v, want 0 at exact nominal rate", result.LRStat)
	}
	if math.Abs(result.PValue-1) > 1e-9 {
		t.Errorf("PValue = %v, want 1", result.PValue)
	}
}

func TestKupiec_TooManyBreaches(t *testing.T) {
	// 기대 10회인데 30회 관측 - 강하게 기각
	result := Kupiec(breachesWithCount(t, 1000, 30), 0.99)

	if result.Degenerate {
		t.Fatal("unexpected degenerate result")
	}
	if result.LRStat <= 0 {
		t.Errorf("LRStat = %v, want > 0", result.LRStat)
	}
	if result.PValue >= 0.01 {
		t.Errorf("PValue = %v, want < 0.01 for gross miscalibration", result.PValue)
	}
}

func TestKupiec_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		n, x int
	}{
		{name: "zero breaches", n: 500, x: 0},
		{name: "all breaches", n: 500, x: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Kupiec(breachesWithCount(t, tt.n, tt.x), 0.99)

			if !result.Degenerate {
				t.Fatal("Kupiec() should be degenerate")
			}
			if !math.IsNaN(result.LRStat) || !math.IsNaN(result.PValue) {
				t.Errorf("degenerate stats = %v / %v, want NaN", result.LRStat, result.PValue)
			}
			// Observed/Expected는 항상 채워짐
			if result.Observed != tt.x {
				t.Errorf("Observed = %d, want %d", result.Observed, tt.x)
			}
			if math.Abs(result.Expected-float64(tt.n)*0.01) > 1e-9 {
				t.Errorf("Expected = %v, want %v", result.Expected, float64(tt.n)*0.01)
			}
		})
	}
}
