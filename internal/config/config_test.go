package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 3, cfg.ForecastHorizon)
	assert.Equal(t, 15*time.Minute, cfg.ReportCacheTTL)
	assert.Equal(t, 1000.0, cfg.Assumptions.FixedAssetBuffer)
	assert.Equal(t, 0.5, cfg.Assumptions.LiabilityFactor)
	assert.Equal(t, 0.05, cfg.Assumptions.AnomalyContamination)
	assert.Equal(t, 60, cfg.Assumptions.MaxHorizon)
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LIABILITY_FACTOR", "0.65")
	t.Setenv("ANOMALY_MAX_TRANSACTIONS", "500")
	t.Setenv("REPORT_CACHE_TTL", "1h")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 0.65, cfg.Assumptions.LiabilityFactor)
	assert.Equal(t, 500, cfg.Assumptions.AnomalyMaxTransactions)
	assert.Equal(t, time.Hour, cfg.ReportCacheTTL)
}

func TestNewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		msg   string
	}{
		{"bad float", "LIABILITY_FACTOR", "half", "invalid LIABILITY_FACTOR"},
		{"bad int", "FORECAST_HORIZON", "three", "invalid FORECAST_HORIZON"},
		{"bad duration", "REPORT_CACHE_TTL", "soon", "invalid REPORT_CACHE_TTL"},
		{"zero horizon", "FORECAST_HORIZON", "0", "FORECAST_HORIZON must be positive"},
		{"contamination out of range", "ANOMALY_CONTAMINATION", "0.6", "ANOMALY_CONTAMINATION"},
		{"max horizon too large", "MAX_FORECAST_HORIZON", "100000", "MAX_FORECAST_HORIZON must be in"},
		{"horizon above max", "FORECAST_HORIZON", "61", "exceeds MAX_FORECAST_HORIZON"},
		{"empty jwt secret", "JWT_SECRET", "", "JWT_SECRET is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := NewConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestNewConfig_KeyRateDisabledByDefault(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.KeyRateURL)
	assert.Equal(t, 5.0, cfg.KeyRateMargin)

	t.Setenv("KEY_RATE_URL", "https://rates.example.com/DailyInfo.asmx")
	cfg, err = NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://rates.example.com/DailyInfo.asmx", cfg.KeyRateURL)
}
