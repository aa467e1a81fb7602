package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Dan9191/finhealth/internal/analytics"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port           string
	DBConn         string
	LogLevel       string
	JWTSecret      string
	KeyRateURL     string // DailyInfo-style SOAP endpoint with a KeyRate operation; empty disables reference rates
	KeyRateMargin  float64
	HMACSecret     string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	ReportCacheTTL time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string

	AnomalyScanSchedule string
	ForecastHorizon     int
	Assumptions         analytics.Assumptions
}

// NewConfig loads configuration from a .env file (when present) and environment variables
func NewConfig() (*Config, error) {
	// Missing .env is fine; the process environment is used as is
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		DBConn:              getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=finhealth sslmode=disable"),
		LogLevel:            getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:           getEnv("JWT_SECRET", "secret"),
		KeyRateURL:          getEnv("KEY_RATE_URL", ""),
		HMACSecret:          getEnv("HMAC_SECRET", "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6"),
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		SMTPHost:            getEnv("SMTP_HOST", ""),
		SMTPPort:            getEnv("SMTP_PORT", "587"),
		SMTPUsername:        getEnv("SMTP_USERNAME", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
		SenderEmail:         getEnv("SENDER_EMAIL", "alerts@finhealth.local"),
		AnomalyScanSchedule: getEnv("ANOMALY_SCAN_SCHEDULE", "0 6 * * *"),
	}

	defaults := analytics.DefaultAssumptions()
	p := &parser{}
	cfg.KeyRateMargin = p.float("KEY_RATE_MARGIN", 5.0)
	cfg.RedisDB = p.int("REDIS_DB", 0)
	cfg.ReportCacheTTL = p.duration("REPORT_CACHE_TTL", 15*time.Minute)
	cfg.ForecastHorizon = p.int("FORECAST_HORIZON", analytics.DefaultHorizon)
	cfg.Assumptions = analytics.Assumptions{
		FixedAssetBuffer:       p.float("FIXED_ASSET_BUFFER", defaults.FixedAssetBuffer),
		LiabilityFactor:        p.float("LIABILITY_FACTOR", defaults.LiabilityFactor),
		DebtServiceFactor:      p.float("DEBT_SERVICE_FACTOR", defaults.DebtServiceFactor),
		ReceivablesRatio:       p.float("RECEIVABLES_RATIO", defaults.ReceivablesRatio),
		PayablesRatio:          p.float("PAYABLES_RATIO", defaults.PayablesRatio),
		SurvivalSentinel:       p.float("SURVIVAL_SENTINEL", defaults.SurvivalSentinel),
		AnomalyContamination:   p.float("ANOMALY_CONTAMINATION", defaults.AnomalyContamination),
		AnomalyMaxTransactions: p.int("ANOMALY_MAX_TRANSACTIONS", defaults.AnomalyMaxTransactions),
		MaxHorizon:             p.int("MAX_FORECAST_HORIZON", defaults.MaxHorizon),
	}
	if p.err != nil {
		return nil, p.err
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.HMACSecret == "" {
		return nil, fmt.Errorf("HMAC_SECRET is required")
	}
	if cfg.ForecastHorizon < 1 {
		return nil, fmt.Errorf("FORECAST_HORIZON must be positive, got %d", cfg.ForecastHorizon)
	}
	if m := cfg.Assumptions.MaxHorizon; m < 1 || m > analytics.HorizonLimit {
		return nil, fmt.Errorf("MAX_FORECAST_HORIZON must be in [1, %d], got %d", analytics.HorizonLimit, m)
	}
	if cfg.ForecastHorizon > cfg.Assumptions.MaxHorizon {
		return nil, fmt.Errorf("FORECAST_HORIZON %d exceeds MAX_FORECAST_HORIZON %d", cfg.ForecastHorizon, cfg.Assumptions.MaxHorizon)
	}
	if c := cfg.Assumptions.AnomalyContamination; c <= 0 || c >= 0.5 {
		return nil, fmt.Errorf("ANOMALY_CONTAMINATION must be in (0, 0.5), got %v", c)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// parser keeps the first numeric parse error
type parser struct {
	err error
}

func (p *parser) float(key string, def float64) float64 {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
	}
	return v
}

func (p *parser) int(key string, def int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
	}
	return v
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
	}
	return v
}
