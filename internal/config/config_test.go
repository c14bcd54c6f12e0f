package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfigDefaults(t *testing.T) {
	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "cashflow.db", cfg.Data.Path)
	assert.Equal(t, int64(0), cfg.Ledger.BaselineFloat)
	assert.Equal(t, "imap.gmail.com:993", cfg.Mail.Server)
	assert.Equal(t, "noreply.livin@bankmandiri.co.id", cfg.Mail.Sender)
	assert.Equal(t, 10, cfg.Mail.Limit)
	assert.Equal(t, 30, cfg.Mail.TimeoutSeconds)
	assert.False(t, cfg.Recurring.WeeklyDedup)
	assert.Equal(t, "import_review.yaml", cfg.Ingest.ReviewFile)
}

func TestInitializeConfigEnvOverrides(t *testing.T) {
	t.Setenv("CASHFLOW_LOG_LEVEL", "debug")
	t.Setenv("CASHFLOW_LEDGER_BASELINE_FLOAT", "2500000")
	t.Setenv("CASHFLOW_RECURRING_WEEKLY_DEDUP", "true")
	t.Setenv("MAIL_APP_PASSWORD", "secret-app-password")

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, int64(2500000), cfg.Ledger.BaselineFloat)
	assert.True(t, cfg.Recurring.WeeklyDedup)
	assert.Equal(t, "secret-app-password", cfg.Mail.Password,
		"app password binds from the unprefixed environment variable")
}

func TestInitializeConfigValidation(t *testing.T) {
	t.Setenv("CASHFLOW_LOG_LEVEL", "chatty")
	_, err := InitializeConfig()
	assert.ErrorContains(t, err, "invalid log level")
}

func TestInitializeConfigRejectsBadMailLimit(t *testing.T) {
	t.Setenv("CASHFLOW_MAIL_LIMIT", "0")
	_, err := InitializeConfig()
	assert.ErrorContains(t, err, "mail.limit")
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	cfg, err := InitializeConfig()
	require.NoError(t, err)

	logger := ConfigureLoggingFromConfig(cfg)
	assert.Equal(t, "info", logger.GetLevel().String())
}
