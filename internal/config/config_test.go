package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 3, cfg.MaxSplitPayments)
	assert.Equal(t, int64(1), cfg.SnowflakeNode)
	assert.False(t, cfg.RegisterOpenOnStart)
	assert.True(t, decimal.RequireFromString("0.18").Equal(cfg.TaxRateDecimal()))
	assert.True(t, cfg.OpeningFloat().IsZero())
	assert.False(t, cfg.MailEnabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("TAX_RATE", "0.05")
	t.Setenv("MAX_SPLIT_PAYMENTS", "5")
	t.Setenv("REGISTER_OPEN_ON_START", "true")
	t.Setenv("REGISTER_OPENING_FLOAT", "2500")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, 5, cfg.MaxSplitPayments)
	assert.True(t, cfg.RegisterOpenOnStart)
	assert.True(t, cfg.IsProduction())
	assert.True(t, decimal.RequireFromString("0.05").Equal(cfg.TaxRateDecimal()))
	assert.True(t, decimal.NewFromInt(2500).Equal(cfg.OpeningFloat()))
}

func TestTaxRateDecimal_Invalid(t *testing.T) {
	assert.True(t, (&Config{TaxRate: "abc"}).TaxRateDecimal().IsZero())
	assert.True(t, (&Config{TaxRate: "-0.1"}).TaxRateDecimal().IsZero())
}
