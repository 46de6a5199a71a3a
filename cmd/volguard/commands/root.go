package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "volguard",
	Short: "VolGuard - 변동성 예측 모델 적정성 검증 엔진",
	Long: `VolGuard Unified CLI

변동성 예측 모델의 꼬리 리스크(VaR/CVaR) 적정성을 규제 관행
(Kupiec POF, Christoffersen 독립성, Basel traffic light)으로 검증합니다.

Usage:
  go run ./cmd/volguard [command]

Examples:
  go run ./cmd/volguard validate --symbol 069500 --from 2020-01-01
  go run ./cmd/volguard stress --symbol 069500
  go run ./cmd/volguard api
  go run ./cmd/volguard schedule`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
