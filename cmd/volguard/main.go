package main

import (
	"os"

	"github.com/quantlab/volguard/cmd/volguard/commands"
)

// main is the entry point for the VolGuard CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/volguard [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
