package config_test

import (
	"fmt"

	"github.com/wonny/pmanalytics/pkg/config"
)

// Example demonstrates how to use the config package
func Example() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}

	fmt.Printf("Environment: %s\n", cfg.Env)
	fmt.Printf("Min confidence: %.2f\n", cfg.Dashboard.MinConfidenceScore)
	fmt.Printf("Export dir: %s\n", cfg.Export.Dir)
}
