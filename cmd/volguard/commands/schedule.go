package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quantlab/volguard/internal/audit"
	"github.com/quantlab/volguard/internal/forecast"
	"github.com/quantlab/volguard/internal/risk"
	"github.com/quantlab/volguard/internal/scheduler"
	"github.com/quantlab/volguard/internal/scheduler/jobs"
	"github.com/quantlab/volguard/pkg/config"
	"github.com/quantlab/volguard/pkg/database"
	"github.com/quantlab/volguard/pkg/logger"
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "일별 재검증 스케줄러 시작",
	Long: `매 거래일 장 마감 후 검증 파이프라인을 재실행하는 스케줄러를 시작합니다.

Jobs:
  daily_revalidation - 18:30 시세 조회 → 검증 → 리포트 저장

Example:
  go run ./cmd/volguard schedule
  go run ./cmd/volguard schedule --run-now`,
	RunE: runSchedule,
}

var scheduleRunNow bool

func init() {
	rootCmd.AddCommand(scheduleCmd)

	// Flags
	scheduleCmd.Flags().BoolVar(&scheduleRunNow, "run-now", false, "시작 직후 즉시 1회 실행")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	fmt.Println("=== VolGuard Scheduler ===")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	var repo *audit.Repository
	if cfg.Database.Enabled {
		db, err := database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		repo = audit.NewRepository(db.Pool)
		log.Info("Connected to database")
	}

	market, closeMarket, err := buildMarketClient(cfg, log)
	if err != nil {
		return err
	}
	defer closeMarket()

	validator := forecast.NewValidator(risk.NewEngine(), log.Zerolog())
	writer := audit.NewWriter(cfg.Validation.ReportDir, log.Zerolog())

	job := jobs.NewRevalidationJob(market, validator, writer, repo, nil, cfg, log)

	sched := scheduler.New(log)
	if err := sched.AddJob(job); err != nil {
		return fmt.Errorf("add job: %w", err)
	}

	sched.Start()
	defer sched.Stop()

	if scheduleRunNow {
		if err := sched.RunJob(job.Name()); err != nil {
			return fmt.Errorf("run job: %w", err)
		}
	}

	fmt.Printf("\n✅ Scheduler running (%s @ %s)\n", job.Name(), job.Schedule())
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}
