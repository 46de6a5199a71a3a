package audit

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantlab/volguard/internal/backtest"
	"github.com/quantlab/volguard/internal/forecast"
	"github.com/quantlab/volguard/internal/stress"
)

func TestWriter_WriteSummary(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, zerolog.Nop())

	reports := []*forecast.ValidationReport{
		{
			Model:        "rolling_vol_21",
			Symbol:       "069500",
			Alpha:        0.99,
			Distribution: "normal",
			From:         time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC),
			To:           time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
			SampleCount:  740,
			BreachCount:  9,
			BreachRate:   9.0 / 740.0,
			Kupiec:       backtest.KupiecResult{LRStat: 0.32, PValue: 0.57, Observed: 9, Expected: 7.4},
			Christoffersen: backtest.ChristoffersenResult{
				LRStat: 0.11, PValue: 0.74, N00: 722, N01: 8, N10: 8, N11: 1,
			},
			Lights:    backtest.LightSummary{Green: 480, Yellow: 10},
			CreatedAt: time.Now(),
		},
	}

	records := []stress.Record{
		{
			Name:           "GFC_2008",
			DayCount:       143,
			WorstDay:       -0.11,
			CumulativeLoss: -0.35,
			AvgDailyLoss:   -0.0024,
		},
		{
			Name:     "COVID_2020",
			DayCount: 0,
			WorstDay: math.NaN(), CumulativeLoss: math.NaN(), AvgDailyLoss: math.NaN(),
		},
	}

	path, err := w.WriteSummary(reports, records)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "rolling_vol_21")
	assert.Contains(t, text, "069500")
	assert.Contains(t, text, "kupiec")
	assert.Contains(t, text, "christoffersen")
	assert.Contains(t, text, "GFC_2008")
	// DayCount=0 시나리오는 통계 대신 no-observations 표기
	assert.Contains(t, text, "no observations in window")
	assert.False(t, strings.Contains(strings.Split(text, "COVID_2020")[1], "NaN"))
}

func TestWriter_WriteSummary_DegenerateKupiec(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, zerolog.Nop())

	reports := []*forecast.ValidationReport{
		{
			Model:        "rolling_vol_21",
			Symbol:       "069500",
			Alpha:        0.99,
			Distribution: "normal",
			SampleCount:  100,
			Kupiec: backtest.KupiecResult{
				LRStat: math.NaN(), PValue: math.NaN(),
				Observed: 0, Expected: 1.0, Degenerate: true,
			},
		},
	}

	path, err := w.WriteSummary(reports, nil)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "degenerate")
}
