package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantlab/volguard/internal/audit"
	"github.com/quantlab/volguard/internal/forecast"
	"github.com/quantlab/volguard/internal/risk"
	"github.com/quantlab/volguard/pkg/config"
	"github.com/quantlab/volguard/pkg/database"
	"github.com/quantlab/volguard/pkg/logger"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "변동성 모델 적정성 검증 실행",
	Long: `변동성 예측 모델의 VaR 적정성을 검증합니다.

이 명령어는:
- 일별 시세 조회 (Naver Finance, CSV 폴백)
- 로그 수익률 및 변동성 예측 생성
- 파라메트릭 VaR/CVaR 산출 및 위반 탐지
- Kupiec POF + Christoffersen 독립성 검정
- Basel traffic light 분류
- 텍스트 리포트 저장 (DB 활성화 시 DB에도 저장)

Example:
  go run ./cmd/volguard validate --symbol 069500 --from 2020-01-01
  go run ./cmd/volguard validate --alpha 0.975 --dist t --nu 5
  go run ./cmd/volguard validate --csv --symbol 069500`,
	RunE: runValidate,
}

var (
	validateSymbol    string
	validateFrom      string
	validateTo        string
	validateAlpha     float64
	validateDist      string
	validateNu        float64
	validateWindow    int
	validateBaselWin  int
	validateCalibrate bool
	validateCSV       bool
)

func init() {
	rootCmd.AddCommand(validateCmd)

	// Flags
	validateCmd.Flags().StringVar(&validateSymbol, "symbol", "", "검증 대상 심볼 (기본: 설정값)")
	validateCmd.Flags().StringVar(&validateFrom, "from", "", "시작 날짜 (YYYY-MM-DD, 기본: 3년 전)")
	validateCmd.Flags().StringVar(&validateTo, "to", "", "종료 날짜 (YYYY-MM-DD, 기본: 오늘)")
	validateCmd.Flags().Float64Var(&validateAlpha, "alpha", 0, "신뢰수준 (기본: 설정값)")
	validateCmd.Flags().StringVar(&validateDist, "dist", "normal", "손실 분포 (normal|t)")
	validateCmd.Flags().Float64Var(&validateNu, "nu", 0, "Student-t 자유도 (dist=t일 때 필수)")
	validateCmd.Flags().IntVar(&validateWindow, "window", 0, "실현 변동성 윈도우 (기본: 설정값)")
	validateCmd.Flags().IntVar(&validateBaselWin, "basel-window", 0, "traffic light 윈도우 (기본: 설정값)")
	validateCmd.Flags().BoolVar(&validateCalibrate, "calibrate", true, "분산 매칭 캘리브레이션 적용")
	validateCmd.Flags().BoolVar(&validateCSV, "csv", false, "네트워크 대신 저장된 CSV 사용")
}

func runValidate(cmd *cobra.Command, args []string) error {
	fmt.Println("=== VolGuard Model Validation ===")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	symbol := validateSymbol
	if symbol == "" {
		symbol = cfg.Validation.Symbol
	}
	alpha := validateAlpha
	if alpha == 0 {
		alpha = cfg.Validation.Alpha
	}
	window := validateWindow
	if window <= 0 {
		window = cfg.Validation.VolWindow
	}
	baselWin := validateBaselWin
	if baselWin <= 0 {
		baselWin = cfg.Validation.BaselWin
	}

	nu := validateNu
	if nu == 0 {
		nu = cfg.Validation.StudentTNu
	}
	dist, err := risk.ParseDistribution(validateDist, nu)
	if err != nil {
		return err
	}

	to := time.Now()
	if validateTo != "" {
		to, err = time.Parse("2006-01-02", validateTo)
		if err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
	}
	from := to.AddDate(-3, 0, 0)
	if validateFrom != "" {
		from, err = time.Parse("2006-01-02", validateFrom)
		if err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
	}

	market, closeMarket, err := buildMarketClient(cfg, log)
	if err != nil {
		return err
	}
	defer closeMarket()

	returns, err := loadReturns(cmd.Context(), cfg, market, symbol, from, to, validateCSV)
	if err != nil {
		return err
	}

	fmt.Printf("\n📅 Period: %s ~ %s (%d returns)\n",
		from.Format("2006-01-02"), to.Format("2006-01-02"), returns.Len())
	fmt.Printf("🎯 VaR%.1f%% %s, window %d days\n\n", alpha*100, dist, window)

	validator := forecast.NewValidator(risk.NewEngine(), log.Zerolog())

	models := []forecast.Forecaster{
		forecast.NewRollingVolForecaster(window),
	}

	reports := validator.ValidateAll(models, returns, forecast.Config{
		Symbol:      symbol,
		Alpha:       alpha,
		Dist:        dist,
		Calibrate:   validateCalibrate,
		BaselWindow: baselWin,
	})
	if len(reports) == 0 {
		return fmt.Errorf("all model validations failed")
	}

	for _, report := range reports {
		printReport(report)
	}

	writer := audit.NewWriter(cfg.Validation.ReportDir, log.Zerolog())
	path, err := writer.WriteSummary(reports, nil)
	if err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	fmt.Printf("📝 Report saved: %s\n", path)

	if cfg.Database.Enabled {
		db, err := database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		repo := audit.NewRepository(db.Pool)
		for _, report := range reports {
			if err := repo.SaveReport(cmd.Context(), report); err != nil {
				return fmt.Errorf("save report: %w", err)
			}
		}
		fmt.Println("💾 Reports persisted to database")
	}

	return nil
}

func printReport(r *forecast.ValidationReport) {
	fmt.Printf("📊 %s\n", r.Model)
	fmt.Printf("  Samples:  %d (%s ~ %s)\n",
		r.SampleCount, r.From.Format("2006-01-02"), r.To.Format("2006-01-02"))
	fmt.Printf("  Breaches: %d (rate %.4f, expected %.4f)\n",
		r.BreachCount, r.BreachRate, 1-r.Alpha)

	if r.Kupiec.Degenerate {
		fmt.Printf("  Kupiec:   degenerate (observed %d, expected %.2f)\n",
			r.Kupiec.Observed, r.Kupiec.Expected)
	} else {
		fmt.Printf("  Kupiec:   LR=%.4f p=%.4f", r.Kupiec.LRStat, r.Kupiec.PValue)
		if r.Kupiec.PValue >= 0.05 {
			fmt.Print(" ✅")
		} else {
			fmt.Print(" ❌")
		}
		fmt.Println()
	}

	fmt.Printf("  Christoffersen: LR=%.4f p=%.4f\n",
		r.Christoffersen.LRStat, r.Christoffersen.PValue)
	fmt.Printf("  Traffic light:  🟢 %d  🟡 %d  🔴 %d\n\n",
		r.Lights.Green, r.Lights.Yellow, r.Lights.Red)
}
