package main

import (
	"os"

	"github.com/wonny/pmanalytics/cmd/fundboard/commands"
)

// main is the entry point for the fundboard CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/fundboard [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
