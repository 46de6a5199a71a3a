package marketdata

import (
	"time"

	"github.com/quantlab/volguard/internal/risk"
)

// PriceBar 일별 가격 데이터
type PriceBar struct {
	Symbol string    `json:"symbol"`
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// CloseSeries 종가 시계열 추출
func CloseSeries(bars []PriceBar) (risk.Series, error) {
	times := make([]time.Time, len(bars))
	values := make([]float64, len(bars))
	for i, bar := range bars {
		times[i] = bar.Date
		values[i] = bar.Close
	}
	return risk.SeriesFrom(times, values)
}
