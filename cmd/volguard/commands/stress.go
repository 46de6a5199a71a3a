package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantlab/volguard/internal/stress"
	"github.com/quantlab/volguard/pkg/config"
	"github.com/quantlab/volguard/pkg/logger"
)

// stressCmd represents the stress command
var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "역사적 스트레스 시나리오 분석",
	Long: `표준 위기 구간(GFC 2008, COVID 2020)에 대한 손실 통계를 계산합니다.

각 시나리오별로:
- 관측 거래일 수
- 최악 일일 수익률
- 누적 손실 / 평균 일일 손실
- 최대 드로다운

Example:
  go run ./cmd/volguard stress --symbol 069500
  go run ./cmd/volguard stress --csv`,
	RunE: runStress,
}

var (
	stressSymbol string
	stressCSV    bool
)

func init() {
	rootCmd.AddCommand(stressCmd)

	// Flags
	stressCmd.Flags().StringVar(&stressSymbol, "symbol", "", "분석 대상 심볼 (기본: 설정값)")
	stressCmd.Flags().BoolVar(&stressCSV, "csv", false, "네트워크 대신 저장된 CSV 사용")
}

func runStress(cmd *cobra.Command, args []string) error {
	fmt.Println("=== VolGuard Stress Scenarios ===")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	symbol := stressSymbol
	if symbol == "" {
		symbol = cfg.Validation.Symbol
	}

	scenarios := stress.StandardScenarios()

	market, closeMarket, err := buildMarketClient(cfg, log)
	if err != nil {
		return err
	}
	defer closeMarket()

	// 가장 이른 시나리오 시작부터 조회
	returns, err := loadReturns(cmd.Context(), cfg, market, symbol, scenarios[0].Start, time.Now(), stressCSV)
	if err != nil {
		return err
	}

	fmt.Printf("\n📈 Symbol: %s (%d returns)\n\n", symbol, returns.Len())

	for _, scenario := range scenarios {
		record := stress.Analyze(returns, scenario)

		fmt.Printf("🌪  %s (%s ~ %s)\n",
			record.Name,
			record.Start.Format("2006-01-02"),
			record.End.Format("2006-01-02"))

		if record.DayCount == 0 {
			fmt.Println("  No observations in window")
			fmt.Println()
			continue
		}

		fmt.Printf("  Trading days:    %d\n", record.DayCount)
		fmt.Printf("  Worst day:       %+.4f%%\n", record.WorstDay*100)
		fmt.Printf("  Cumulative loss: %+.4f%%\n", record.CumulativeLoss*100)
		fmt.Printf("  Avg daily loss:  %+.6f%%\n", record.AvgDailyLoss*100)

		dd := stress.Drawdown(returns, scenario)
		maxDD := 0.0
		for i := 0; i < dd.Len(); i++ {
			if v := dd.At(i).Value; v < maxDD {
				maxDD = v
			}
		}
		fmt.Printf("  Max drawdown:    %+.4f%%\n\n", maxDD*100)
	}

	return nil
}
