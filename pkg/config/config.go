package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Dataset & export
	Dataset DatasetConfig
	Export  ExportConfig

	// Dashboard presentation
	Dashboard DashboardConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatasetConfig holds fund fixture configuration
type DatasetConfig struct {
	Path string // empty = embedded fixture
}

// ExportConfig holds static export configuration
type ExportConfig struct {
	Dir string
}

// DashboardConfig holds KPI and chart parameters
type DashboardConfig struct {
	// MinConfidenceScore is the data-quality threshold (0.0 ~ 1.0)
	MinConfidenceScore float64
	DonutRadius        float64
	// BarMinStubPct is the minimum visible bar height in percent
	BarMinStubPct float64
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		Dataset: DatasetConfig{
			Path: getEnv("DATASET_PATH", ""),
		},

		Export: ExportConfig{
			Dir: getEnv("EXPORT_DIR", "dist"),
		},

		Dashboard: DashboardConfig{
			MinConfidenceScore: getEnvAsFloat("MIN_CONFIDENCE_SCORE", 0.95),
			DonutRadius:        getEnvAsFloat("DONUT_RADIUS", 40),
			BarMinStubPct:      getEnvAsFloat("BAR_MIN_STUB_PCT", 2),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are within range
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	for name, v := range map[string]float64{
		"MIN_CONFIDENCE_SCORE": c.Dashboard.MinConfidenceScore,
		"DONUT_RADIUS":         c.Dashboard.DonutRadius,
		"BAR_MIN_STUB_PCT":     c.Dashboard.BarMinStubPct,
	} {
		// NaN은 모든 범위 비교를 통과하므로 먼저 거부
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be a finite number, got %v", name, v)
		}
	}

	if c.Dashboard.MinConfidenceScore < 0 || c.Dashboard.MinConfidenceScore > 1 {
		return fmt.Errorf("MIN_CONFIDENCE_SCORE must be between 0 and 1, got %v", c.Dashboard.MinConfidenceScore)
	}

	if c.Dashboard.DonutRadius <= 0 {
		return fmt.Errorf("DONUT_RADIUS must be positive, got %v", c.Dashboard.DonutRadius)
	}

	if c.Dashboard.BarMinStubPct < 0 || c.Dashboard.BarMinStubPct > 100 {
		return fmt.Errorf("BAR_MIN_STUB_PCT must be between 0 and 100, got %v", c.Dashboard.BarMinStubPct)
	}

	if c.Export.Dir == "" {
		return fmt.Errorf("EXPORT_DIR must not be empty")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}
