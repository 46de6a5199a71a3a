package backtest

import (
	"time"

	"github.com/quantlab/volguard/internal/risk"
)

// =============================================================================
// Basel Traffic Light (rolling)
// =============================================================================

// DefaultBaselWindow Basel 규제 기본 윈도우 (250 거래일)
const DefaultBaselWindow = 250

// Light Basel traffic light 등급
type Light string

const (
	LightGreen  Light = "GREEN"
	LightYellow Light = "YELLOW"
	LightRed    Light = "RED"
)

// LightPoint 시점별 traffic light 분류
type LightPoint struct {
	Time     time.Time `json:"time"`
	Breaches int       `json:"breaches"` // 직전 윈도우 내 위반 횟수
	Light    Light     `json:"light"`
}

// LightSummary 등급별 시점 수 집계
type LightSummary struct {
	Green  int `json:"green"`
	Yellow int `json:"yellow"`
	Red    int `json:"red"`
}

// TrafficLight 롤링 Basel traffic light 분류
//
// 인덱스 window부터 각 시점 i에 대해 직전 윈도우 [i-window, i)의 위반
// 횟수를 집계한다 (현재 시점 제외):
//
//	≤4 → GREEN, 5~9 → YELLOW, ≥10 → RED
//
// 처음 window개 시점은 이력이 부족해 분류하지 않음 - GREEN으로
// 기본 처리하지 않고 결과에서 생략
func TrafficLight(breaches risk.Breaches, window int) []LightPoint {
	if window <= 0 {
		window = DefaultBaselWindow
	}
	if breaches.Len() <= window {
		return nil
	}

	points := make([]LightPoint, 0, breaches.Len()-window)

	// 초기 윈도우 합
	count := 0
	for i := 0; i < window; i++ {
		if breaches.Hit(i) {
			count++
		}
	}

	for i := window; i < breaches.Len(); i++ {
		points = append(points, LightPoint{
			Time:     breaches.Time(i),
			Breaches: count,
			Light:    classify(count),
		})

		// 윈도우 슬라이드: [i-window+1, i+1)
		if breaches.Hit(i - window) {
			count--
		}
		if breaches.Hit(i) {
			count++
		}
	}

	return points
}

// classify 위반 횟수 → 등급 (경계 포함: 4는 GREEN, 9는 YELLOW)
func classify(count int) Light {
	switch {
	case count <= 4:
		return LightGreen
	case count <= 9:
		return LightYellow
	default:
		return LightRed
	}
}

// Summarize 등급별 시점 수 집계
func Summarize(points []LightPoint) LightSummary {
	var summary LightSummary
	for _, p := range points {
		switch p.Light {
		case LightGreen:
			summary.Green++
		case LightYellow:
			summary.Yellow++
		case LightRed:
			summary.Red++
		}
	}
	return summary
}
