package backtest

import (
	"testing"
	"time"

	"github.com/quantlab/volguard/internal/risk"
)

// clusteredBreaches 길이 255, 위치 100부터 k개 위반
// 윈도우 250 기준으로 분류 가능한 시점(250~254)의 직전 윈도우는 모두
// 위반 k개를 포함함
func clusteredBreaches(t *testing.T, k int) risk.Breaches {
	t.Helper()
	hits := make([]bool, 255)
	for i := 0; i < k; i++ {
		hits[100+i] = true
	}
	return breachSeries(t, hits)
}

func TestTrafficLight_Boundaries(t *testing.T) {
	tests := []struct {
		name     string
		breaches int
		want     Light
	}{
		{name: "3 breaches green", breaches: 3, want: LightGreen},
		{name: "4 breaches green boundary", breaches: 4, want: LightGreen},
		{name: "5 breaches yellow boundary", breaches: 5, want: LightYellow},
		{name: "9 breaches yellow boundary", breaches: 9, want: LightYellow},
		{name: "10 breaches red boundary", breaches: 10, want: LightRed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := TrafficLight(clusteredBreaches(t, tt.breaches), 250)

			if len(points) != 5 {
				t.Fatalf("TrafficLight() len = %d, want 5", len(points))
			}
			for i, p := range points {
				if p.Breaches != tt.breaches {
					t.Errorf("points[%d].Breaches = %d, want %d", i, p.Breaches, tt.breaches)
				}
				if p.Light != tt.want {
					t.Errorf("points[%d].Light = %s, want %s", i, p.Light, tt.want)
				}
			}
		})
	}
}

func TestTrafficLight_ShortSeries(t *testing.T) {
	// 윈도우보다 짧거나 같은 시계열은 분류할 시점이 없음
	if points := TrafficLight(breachesWithCount(t, 250, 5), 250); points != nil {
		t.Errorf("TrafficLight() = %d points, want nil", len(points))
	}
	if points := TrafficLight(breachesWithCount(t, 10, 2), 250); points != nil {
		t.Errorf("TrafficLight() = %d points, want nil", len(points))
	}
}

func TestTrafficLight_ExcludesCurrentDay(t *testing.T) {
	// 윈도우는 [i-window, i) - 현재 시점의 위반은 집계에 미포함
	hits := make([]bool, 6)
	hits[5] = true
	points := TrafficLight(breachSeries(t, hits), 5)

	if len(points) != 1 {
		t.Fatalf("TrafficLight() len = %d, want 1", len(points))
	}
	if points[0].Breaches != 0 {
		t.Errorf("Breaches = %d, want 0 (current day excluded)", points[0].Breaches)
	}
}

func TestTrafficLight_SlidingWindow(t *testing.T) {
	// 위반이 윈도우 밖으로 밀려나면 집계에서 빠짐
	hits := make([]bool, 8)
	hits[0] = true
	points := TrafficLight(breachSeries(t, hits), 3)

	// i=3: [0,3) → 1, i=4: [1,4) → 0, 이후 0
	wantCounts := []int{1, 0, 0, 0, 0}
	if len(points) != len(wantCounts) {
		t.Fatalf("TrafficLight() len = %d, want %d", len(points), len(wantCounts))
	}
	for i, want := range wantCounts {
		if points[i].Breaches != want {
			t.Errorf("points[%d].Breaches = %d, want %d", i, points[i].Breaches, want)
		}
	}
}

func TestTrafficLight_Timestamps(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := TrafficLight(breachesWithCount(t, 255, 0), 250)

	if len(points) != 5 {
		t.Fatalf("TrafficLight() len = %d, want 5", len(points))
	}
	if !points[0].Time.Equal(base.AddDate(0, 0, 250)) {
		t.Errorf("first classified time = %v, want %v", points[0].Time, base.AddDate(0, 0, 250))
	}
}

func TestSummarize(t *testing.T) {
	points := []LightPoint{
		{Light: LightGreen},
		{Light: LightGreen},
		{Light: LightYellow},
		{Light: LightRed},
	}

	summary := Summarize(points)
	if summary.Green != 2 || summary.Yellow != 1 || summary.Red != 1 {
		t.Errorf("Summarize() = %+v, want {2 1 1}", summary)
	}
}
