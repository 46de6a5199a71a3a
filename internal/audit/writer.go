package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/quantlab/volguard/internal/forecast"
	"github.com/quantlab/volguard/internal/stress"
)

// =============================================================================
// Report Writer
// =============================================================================

// Writer 검증 리포트 텍스트 요약 작성기
// ⭐ SSOT: 리포트 파일 생성은 여기서만
type Writer struct {
	dir string
	log zerolog.Logger
}

// NewWriter creates a new report writer
func NewWriter(dir string, log zerolog.Logger) *Writer {
	return &Writer{
		dir: dir,
		log: log.With().Str("component", "audit.writer").Logger(),
	}
}

// WriteSummary writes a plain-text validation summary to <dir>/validation_<date>.txt
func (w *Writer) WriteSummary(reports []*forecast.ValidationReport, stressRecords []stress.Record) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir failed: %w", err)
	}

	var b strings.Builder

	b.WriteString("VOLGUARD MODEL VALIDATION SUMMARY\n")
	b.WriteString("=================================\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format(time.RFC3339)))

	for _, r := range reports {
		b.WriteString(fmt.Sprintf("[%s] %s VaR%.0f%% (%s)\n",
			r.Symbol, r.Model, r.Alpha*100, r.Distribution))
		b.WriteString(fmt.Sprintf("  period        : %s ~ %s (%d obs)\n",
			r.From.Format("2006-01-02"), r.To.Format("2006-01-02"), r.SampleCount))
		b.WriteString(fmt.Sprintf("  breaches      : %d (rate %.4f, expected %.4f)\n",
			r.BreachCount, r.BreachRate, 1-r.Alpha))

		if r.Kupiec.Degenerate {
			b.WriteString(fmt.Sprintf("  kupiec        : degenerate (observed %d, expected %.2f)\n",
				r.Kupiec.Observed, r.Kupiec.Expected))
		} else {
			b.WriteString(fmt.Sprintf("  kupiec        : LR=%.4f p=%.4f\n",
				r.Kupiec.LRStat, r.Kupiec.PValue))
		}

		b.WriteString(fmt.Sprintf("  christoffersen: LR=%.4f p=%.4f (n00=%d n01=%d n10=%d n11=%d)\n",
			r.Christoffersen.LRStat, r.Christoffersen.PValue,
			r.Christoffersen.N00, r.Christoffersen.N01,
			r.Christoffersen.N10, r.Christoffersen.N11))
		b.WriteString(fmt.Sprintf("  traffic light : GREEN=%d YELLOW=%d RED=%d\n\n",
			r.Lights.Green, r.Lights.Yellow, r.Lights.Red))
	}

	if len(stressRecords) > 0 {
		b.WriteString("STRESS SCENARIOS\n")
		b.WriteString("----------------\n")
		for _, rec := range stressRecords {
			if rec.DayCount == 0 {
				b.WriteString(fmt.Sprintf("[%s] no observations in window\n", rec.Name))
				continue
			}
			b.WriteString(fmt.Sprintf("[%s] days=%d worst=%.4f cum=%.4f avg=%.6f\n",
				rec.Name, rec.DayCount, rec.WorstDay, rec.CumulativeLoss, rec.AvgDailyLoss))
		}
	}

	path := filepath.Join(w.dir, fmt.Sprintf("validation_%s.txt", time.Now().Format("20060102")))
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write report failed: %w", err)
	}

	w.log.Info().Str("path", path).Int("models", len(reports)).Msg("validation summary written")
	return path, nil
}
