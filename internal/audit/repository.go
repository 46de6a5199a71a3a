package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quantlab/volguard/internal/forecast"
)

// =============================================================================
// Validation Report Repository
// =============================================================================

// Repository persists validation report summaries
// ⭐ SSOT: 검증 리포트 영속화는 여기서만 - 요약 값만 저장 (시계열 저장 안 함)
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SaveReport saves a validation report summary row
func (r *Repository) SaveReport(ctx context.Context, report *forecast.ValidationReport) error {
	detailJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	query := `
		INSERT INTO audit.validation_reports (
			symbol, model, alpha, distribution, calibrated,
			period_from, period_to, sample_count, breach_count, breach_rate,
			kupiec_lr, kupiec_p, christoffersen_lr, christoffersen_p,
			lights_green, lights_yellow, lights_red, detail, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		          $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (symbol, model, alpha, period_to) DO UPDATE SET
			breach_count = EXCLUDED.breach_count,
			breach_rate = EXCLUDED.breach_rate,
			kupiec_lr = EXCLUDED.kupiec_lr,
			kupiec_p = EXCLUDED.kupiec_p,
			christoffersen_lr = EXCLUDED.christoffersen_lr,
			christoffersen_p = EXCLUDED.christoffersen_p,
			lights_green = EXCLUDED.lights_green,
			lights_yellow = EXCLUDED.lights_yellow,
			lights_red = EXCLUDED.lights_red,
			detail = EXCLUDED.detail,
			created_at = EXCLUDED.created_at
	`

	_, err = r.pool.Exec(ctx, query,
		report.Symbol, report.Model, report.Alpha, report.Distribution, report.Calibrated,
		report.From, report.To, report.SampleCount, report.BreachCount, report.BreachRate,
		report.Kupiec.LRStat, report.Kupiec.PValue,
		report.Christoffersen.LRStat, report.Christoffersen.PValue,
		report.Lights.Green, report.Lights.Yellow, report.Lights.Red,
		detailJSON, report.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save validation report: %w", err)
	}

	return nil
}

// RecentReports returns the most recent report summaries
func (r *Repository) RecentReports(ctx context.Context, limit int) ([]forecast.ValidationReport, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT detail
		FROM audit.validation_reports
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query validation reports: %w", err)
	}
	defer rows.Close()

	var reports []forecast.ValidationReport
	for rows.Next() {
		var detailJSON []byte
		if err := rows.Scan(&detailJSON); err != nil {
			return nil, fmt.Errorf("failed to scan validation report: %w", err)
		}

		var report forecast.ValidationReport
		if err := json.Unmarshal(detailJSON, &report); err != nil {
			return nil, fmt.Errorf("failed to unmarshal validation report: %w", err)
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}
