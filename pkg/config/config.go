package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Market data source
	Market MarketConfig

	// Risk validation defaults
	Validation ValidationConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL     string
	Enabled bool

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// MarketConfig holds market data source configuration
type MarketConfig struct {
	ChartBaseURL string        // Naver Finance 차트 API
	PageBaseURL  string        // Naver Finance 일별 시세 페이지 (HTML fallback)
	RatePerSec   float64       // 초당 요청 수 제한
	CacheTTL     time.Duration // 가격 캐시 TTL
	DataDir      string        // CSV 저장 경로
}

// ValidationConfig holds risk validation defaults
// 기본값은 규제 관행을 따름: 99% VaR, Basel 250일 윈도우
type ValidationConfig struct {
	Symbol     string  // 기본 검증 대상 심볼
	Alpha      float64 // 신뢰수준 (예: 0.99)
	VolWindow  int     // 실현 변동성 롤링 윈도우 (일)
	BaselWin   int     // Basel traffic light 윈도우 (일)
	ReportDir  string  // 리포트 저장 경로
	StudentTNu float64 // Student-t 자유도 (0 = normal만 사용)
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8087"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			Enabled:         getEnvAsBool("DB_ENABLED", false),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		// Market data
		Market: MarketConfig{
			ChartBaseURL: getEnv("MARKET_CHART_BASE_URL", "https://fchart.stock.naver.com"),
			PageBaseURL:  getEnv("MARKET_PAGE_BASE_URL", "https://finance.naver.com"),
			RatePerSec:   getEnvAsFloat("MARKET_RATE_PER_SEC", 5.0),
			CacheTTL:     getEnvAsDuration("MARKET_CACHE_TTL", "6h"),
			DataDir:      getEnv("MARKET_DATA_DIR", "data/raw"),
		},

		// Validation defaults
		Validation: ValidationConfig{
			Symbol:     getEnv("VALIDATION_SYMBOL", "069500"), // KODEX 200
			Alpha:      getEnvAsFloat("VALIDATION_ALPHA", 0.99),
			VolWindow:  getEnvAsInt("VALIDATION_VOL_WINDOW", 21),
			BaselWin:   getEnvAsInt("VALIDATION_BASEL_WINDOW", 250),
			ReportDir:  getEnv("VALIDATION_REPORT_DIR", "reports"),
			StudentTNu: getEnvAsFloat("VALIDATION_STUDENT_T_NU", 0),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Database.Enabled && c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required when DB_ENABLED=true")
	}

	if c.Validation.Alpha <= 0 || c.Validation.Alpha >= 1 {
		return fmt.Errorf("VALIDATION_ALPHA must be in (0, 1)")
	}

	if c.Validation.BaselWin <= 0 {
		return fmt.Errorf("VALIDATION_BASEL_WINDOW must be > 0")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
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

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
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

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	d, err := time.ParseDuration(valueStr)
	if err != nil {
		fallback, _ := time.ParseDuration(defaultValue)
		return fallback
	}
	return d
}
