// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		// Path to the SQLite database file.
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"data" yaml:"data"`

	Ledger struct {
		// BaselineFloat is the constant opening balance of the Bank pool.
		BaselineFloat int64 `mapstructure:"baseline_float" yaml:"baseline_float"`
		// Payday is the default next income date (YYYY-MM-DD), used when no
		// payday has been stored in the settings table yet.
		Payday string `mapstructure:"payday" yaml:"payday"`
	} `mapstructure:"ledger" yaml:"ledger"`

	Mail struct {
		Server         string `mapstructure:"server" yaml:"server"`
		Sender         string `mapstructure:"sender" yaml:"sender"`
		Username       string `mapstructure:"username" yaml:"username"`
		Password       string `mapstructure:"password" yaml:"-"` // never serialized
		Limit          int    `mapstructure:"limit" yaml:"limit"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	} `mapstructure:"mail" yaml:"mail"`

	Recurring struct {
		// WeeklyDedup limits Weekly rules to one emission per ISO week.
		// Off by default to preserve the legacy fire-every-evaluation
		// behavior.
		WeeklyDedup bool `mapstructure:"weekly_dedup" yaml:"weekly_dedup"`
	} `mapstructure:"recurring" yaml:"recurring"`

	Ingest struct {
		// ReviewFile holds fetched candidates between `ingest fetch` and
		// `ingest import`.
		ReviewFile string `mapstructure:"review_file" yaml:"review_file"`
		// CategoriesFile maps counterparty keywords to categories.
		CategoriesFile string `mapstructure:"categories_file" yaml:"categories_file"`
	} `mapstructure:"ingest" yaml:"ingest"`
}

// LoadEnv loads a .env file silently if one exists in the current or parent
// directory. Called before logging is configured, so it must not log.
func LoadEnv() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then config file, then CASHFLOW_* environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.cashflow")
	v.AddConfigPath(".cashflow")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CASHFLOW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The mailbox app password always comes from the environment, unprefixed,
	// so it never lands in a config file.
	if err := v.BindEnv("mail.password", "MAIL_APP_PASSWORD"); err != nil {
		fmt.Printf("Warning: failed to bind MAIL_APP_PASSWORD environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.path", "cashflow.db")

	v.SetDefault("ledger.baseline_float", 0)
	v.SetDefault("ledger.payday", "")

	v.SetDefault("mail.server", "imap.gmail.com:993")
	v.SetDefault("mail.sender", "noreply.livin@bankmandiri.co.id")
	v.SetDefault("mail.limit", 10)
	v.SetDefault("mail.timeout_seconds", 30)

	v.SetDefault("recurring.weekly_dedup", false)

	v.SetDefault("ingest.review_file", "import_review.yaml")
	v.SetDefault("ingest.categories_file", "categories.yaml")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Ledger.BaselineFloat < 0 {
		return fmt.Errorf("ledger.baseline_float must not be negative, got: %d", config.Ledger.BaselineFloat)
	}

	if config.Mail.Limit < 1 || config.Mail.Limit > 200 {
		return fmt.Errorf("mail.limit must be between 1 and 200, got: %d", config.Mail.Limit)
	}

	if config.Mail.TimeoutSeconds < 1 || config.Mail.TimeoutSeconds > 300 {
		return fmt.Errorf("mail.timeout_seconds must be between 1 and 300, got: %d", config.Mail.TimeoutSeconds)
	}

	return nil
}

// ConfigureLoggingFromConfig builds the shared logrus logger from the Config.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
