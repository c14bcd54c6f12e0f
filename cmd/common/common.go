// Package common wires the shared application state every subcommand needs:
// configuration, logging, the store and the evaluation-cycle preamble.
package common

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rygrffth/cashflow/internal/config"
	"github.com/rygrffth/cashflow/internal/ledger"
	"github.com/rygrffth/cashflow/internal/logging"
	"github.com/rygrffth/cashflow/internal/recurring"
	"github.com/rygrffth/cashflow/internal/savings"
	"github.com/rygrffth/cashflow/internal/store"
	"github.com/rygrffth/cashflow/internal/store/sqlite"
)

// App is the per-invocation application state.
type App struct {
	Cfg   *config.Config
	Log   logging.Logger
	Store store.Store
}

// Open loads configuration, opens the store and runs the recurring scheduler
// so generated transactions are visible to whatever command follows. The
// caller must Close.
func Open() (*App, error) {
	cfg, err := config.InitializeConfig()
	if err != nil {
		return nil, err
	}
	logger := logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))

	st, err := sqlite.New(cfg.Data.Path)
	if err != nil {
		return nil, err
	}

	sched := recurring.NewScheduler(st, logger, cfg.Recurring.WeeklyDedup)
	generated, err := sched.Run(context.Background(), time.Now())
	if err != nil {
		st.Close()
		return nil, err
	}
	if generated > 0 {
		logger.Info("Recurring rules generated transactions",
			logging.F(logging.FieldCount, generated))
	}

	return &App{Cfg: cfg, Log: logger, Store: st}, nil
}

// Close releases the store.
func (a *App) Close() {
	if err := a.Store.Close(); err != nil {
		a.Log.WithError(err).Warn("Failed to close store")
	}
}

// Baseline returns the configured Bank opening balance as a decimal.
func (a *App) Baseline() decimal.Decimal {
	return decimal.NewFromInt(a.Cfg.Ledger.BaselineFloat)
}

// NextPayday resolves the next income date: the stored setting wins over the
// configured default; with neither, today (which clamps days-remaining to 1).
func (a *App) NextPayday(ctx context.Context) time.Time {
	stored, err := a.Store.GetSetting(ctx, store.SettingPayday)
	if err != nil {
		a.Log.WithError(err).Warn("Failed to read payday setting")
	}
	for _, candidate := range []string{stored, a.Cfg.Ledger.Payday} {
		if candidate == "" {
			continue
		}
		if parsed, err := time.Parse("2006-01-02", candidate); err == nil {
			return parsed
		}
		a.Log.Warn("Ignoring unparseable payday",
			logging.F(logging.FieldDate, candidate))
	}
	return time.Now()
}

// Engine builds a ledger engine over the current store snapshot.
func (a *App) Engine(ctx context.Context) (*ledger.Engine, error) {
	transactions, err := a.Store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	cash, err := a.Store.CashPoolValue(ctx)
	if err != nil {
		return nil, err
	}
	collected, err := savings.NewManager(a.Store, a.Log).TotalCollected(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.New(transactions, a.Baseline(), cash, collected, a.NextPayday(ctx), time.Now()), nil
}
