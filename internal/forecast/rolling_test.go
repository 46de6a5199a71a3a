package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quantlab/volguard/internal/risk"
)

func dailySeries(t *testing.T, values []float64) risk.Series {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	times := make([]time.Time, len(values))
	for i := range values {
		times[i] = base.AddDate(0, 0, i)
	}
	s, err := risk.SeriesFrom(times, values)
	require.NoError(t, err)
	return s
}

func TestRollingVolForecaster_Forecast(t *testing.T) {
	f := NewRollingVolForecaster(2)
	returns := dailySeries(t, []float64{0.01, 0.03, -0.02, 0.02})

	sigma, err := f.Forecast(returns)
	require.NoError(t, err)
	require.Equal(t, 2, sigma.Len())

	// t=2 예측: 직전 윈도우 [0.01, 0.03]의 RMS
	want2 := math.Sqrt((0.01*0.01 + 0.03*0.03) / 2)
	require.InDelta(t, want2, sigma.At(0).Value, 1e-12)
	require.True(t, sigma.At(0).Time.Equal(returns.At(2).Time))

	// t=3 예측: [0.03, -0.02]의 RMS - 현재 수익률은 미포함
	want3 := math.Sqrt((0.03*0.03 + 0.02*0.02) / 2)
	require.InDelta(t, want3, sigma.At(1).Value, 1e-12)
}

func TestRollingVolForecaster_NotEnoughData(t *testing.T) {
	f := NewRollingVolForecaster(21)
	returns := dailySeries(t, make([]float64, 21))

	_, err := f.Forecast(returns)
	require.Error(t, err)
}

func TestRollingVolForecaster_Defaults(t *testing.T) {
	f := NewRollingVolForecaster(0)
	require.Equal(t, 21, f.Window)
	require.Equal(t, "rolling_vol_21", f.Name())
}
