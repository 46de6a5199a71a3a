package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantlab/volguard/internal/api"
	"github.com/quantlab/volguard/internal/api/handlers"
	"github.com/quantlab/volguard/internal/audit"
	"github.com/quantlab/volguard/pkg/config"
	"github.com/quantlab/volguard/pkg/database"
	"github.com/quantlab/volguard/pkg/logger"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- 검증 리포트 조회 엔드포인트 제공
- 스트레스 시나리오 온디맨드 실행
- WebSocket 실행 이벤트 스트림 제공

Endpoints:
  GET /health                     - Health check
  GET /api/v1/validation/latest   - 최신 검증 리포트
  GET /api/v1/validation/reports  - 검증 리포트 목록
  GET /api/v1/stress              - 스트레스 시나리오 실행
  GET /ws                         - 실행 이벤트 스트림

Example:
  go run ./cmd/volguard api
  go run ./cmd/volguard api --port 8087`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: 설정값)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== VolGuard API Server ===")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}

	log := logger.New(cfg)
	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 검증 리포트 조회는 DB가 있을 때만 동작
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

	hub := api.NewHub(log.Zerolog())
	defer hub.Close()

	validationHandler := handlers.NewValidationHandler(repo, log)
	stressHandler := handlers.NewStressHandler(market, cfg, log)

	router := api.NewRouter(validationHandler, stressHandler, hub, log)
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET /health")
	fmt.Println("  GET /api/v1/validation/latest")
	fmt.Println("  GET /api/v1/validation/reports")
	fmt.Println("  GET /api/v1/stress")
	fmt.Println("  GET /ws")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
