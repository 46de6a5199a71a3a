package risk

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// Time-indexed Series
// =============================================================================

var (
	// ErrUnorderedSeries 타임스탬프가 엄격히 증가하지 않을 때
	ErrUnorderedSeries = errors.New("series timestamps must be strictly increasing")
	// ErrLengthMismatch 타임스탬프/값 길이가 다를 때
	ErrLengthMismatch = errors.New("timestamps and values must have the same length")
)

// Point 시계열의 한 관측치
type Point struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// Series 시간 인덱스 시계열
// ⭐ SSOT: 타임스탬프는 엄격히 증가, 중복 없음. 생성 후 불변으로 취급
type Series struct {
	points []Point
}

// NewSeries creates a Series from points, validating timestamp order
func NewSeries(points []Point) (Series, error) {
	for i := 1; i < len(points); i++ {
		if !points[i].Time.After(points[i-1].Time) {
			return Series{}, fmt.Errorf("%w: index %d (%s) not after index %d (%s)",
				ErrUnorderedSeries,
				i, points[i].Time.Format("2006-01-02"),
				i-1, points[i-1].Time.Format("2006-01-02"))
		}
	}

	copied := make([]Point, len(points))
	copy(copied, points)
	return Series{points: copied}, nil
}

// SeriesFrom creates a Series from parallel timestamp/value slices
func SeriesFrom(times []time.Time, values []float64) (Series, error) {
	if len(times) != len(values) {
		return Series{}, fmt.Errorf("%w: %d timestamps, %d values",
			ErrLengthMismatch, len(times), len(values))
	}

	points := make([]Point, len(times))
	for i := range times {
		points[i] = Point{Time: times[i], Value: values[i]}
	}
	return NewSeries(points)
}

// Len returns the number of observations
func (s Series) Len() int {
	return len(s.points)
}

// At returns the i-th observation
func (s Series) At(i int) Point {
	return s.points[i]
}

// Times returns a copy of the timestamp index
func (s Series) Times() []time.Time {
	times := make([]time.Time, len(s.points))
	for i, p := range s.points {
		times[i] = p.Time
	}
	return times
}

// Values returns a copy of the values
func (s Series) Values() []float64 {
	values := make([]float64, len(s.points))
	for i, p := range s.points {
		values[i] = p.Value
	}
	return values
}

// Points returns a copy of all observations
func (s Series) Points() []Point {
	copied := make([]Point, len(s.points))
	copy(copied, s.points)
	return copied
}

// Between restricts the series to [from, to] (양끝 포함)
func (s Series) Between(from, to time.Time) Series {
	var points []Point
	for _, p := range s.points {
		if p.Time.Before(from) || p.Time.After(to) {
			continue
		}
		points = append(points, p)
	}
	return Series{points: points}
}

// =============================================================================
// Alignment (Inner Join)
// =============================================================================

// Align inner-joins two series on timestamp
// ⭐ SSOT: 시계열 정렬은 이 함수에서만 - 컴포넌트별로 재구현하지 않음
// 타임스탬프가 일치하지 않으면 결과는 조용히 짧아지므로, 호출자는
// 반환된 길이를 확인해야 함
func Align(a, b Series) (Series, Series) {
	var left, right []Point

	i, j := 0, 0
	for i < len(a.points) && j < len(b.points) {
		ta, tb := a.points[i].Time, b.points[j].Time
		switch {
		case ta.Equal(tb):
			left = append(left, a.points[i])
			right = append(right, b.points[j])
			i++
			j++
		case ta.Before(tb):
			i++
		default:
			j++
		}
	}

	return Series{points: left}, Series{points: right}
}
