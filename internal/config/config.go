package config

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field maps 1:1 to a documented env var.
type Config struct {
	// Server
	Port           int    `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"` // development | production
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`

	// Logging
	LogLevel string `mapstructure:"LOG_LEVEL"`
	LogFile  string `mapstructure:"LOG_FILE"`

	// Pricing & settlement
	TaxRate          string `mapstructure:"TAX_RATE"`
	MaxSplitPayments int    `mapstructure:"MAX_SPLIT_PAYMENTS"`
	SnowflakeNode    int64  `mapstructure:"SNOWFLAKE_NODE"`

	// Register
	RegisterOpenOnStart  bool   `mapstructure:"REGISTER_OPEN_ON_START"`
	RegisterOpeningFloat string `mapstructure:"REGISTER_OPENING_FLOAT"`

	// Auth
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`

	// Rate limiting
	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`

	// SMTP
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`

	// Business
	BusinessName       string `mapstructure:"BUSINESS_NAME"`
	ReceiptStoragePath string `mapstructure:"RECEIPT_STORAGE_PATH"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	setDefaults(v)

	// Optional .env file for local development, does not fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 8000)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("WORKER_POOL_SIZE", 2)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("TAX_RATE", "0.18")
	v.SetDefault("MAX_SPLIT_PAYMENTS", 3)
	v.SetDefault("SNOWFLAKE_NODE", 1)
	v.SetDefault("REGISTER_OPEN_ON_START", false)
	v.SetDefault("REGISTER_OPENING_FLOAT", "0")
	v.SetDefault("JWT_SECRET", "dev-secret-change-me")
	v.SetDefault("JWT_EXPIRATION_HOURS", 8)
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("BUSINESS_NAME", "Salon Flow")
	v.SetDefault("RECEIPT_STORAGE_PATH", "/tmp/salonpos/receipts")
}

// TaxRateDecimal parses TAX_RATE. Invalid or negative values fall back to zero.
func (c *Config) TaxRateDecimal() decimal.Decimal {
	return parseNonNegative(c.TaxRate)
}

// OpeningFloat parses REGISTER_OPENING_FLOAT.
func (c *Config) OpeningFloat() decimal.Decimal {
	return parseNonNegative(c.RegisterOpeningFloat)
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// MailEnabled reports whether SMTP is configured.
func (c *Config) MailEnabled() bool { return c.SMTPHost != "" }

func parseNonNegative(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
