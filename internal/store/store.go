// Package store provides abstractions for persistent ledger data.
package store

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rygrffth/cashflow/internal/models"
)

// Store is the durable record of transactions, receivables, recurring rules,
// savings goals and the cash pool. The ledger engine recomputes everything
// from it on every cycle; nothing is cached on this side. Implementations own
// all persistence-format decisions.
//
// The store is a shared, externally-owned resource: no exclusive access is
// assumed, and concurrent writers follow last-write-wins.
type Store interface {
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	InsertTransaction(ctx context.Context, t *models.Transaction) error
	UpdateTransaction(ctx context.Context, t *models.Transaction) error

	ListReceivables(ctx context.Context) ([]models.Receivable, error)
	GetReceivable(ctx context.Context, id string) (*models.Receivable, error)
	InsertReceivable(ctx context.Context, r *models.Receivable) error
	UpdateReceivable(ctx context.Context, r *models.Receivable) error

	ListRecurringRules(ctx context.Context) ([]models.RecurringRule, error)
	InsertRecurringRule(ctx context.Context, r *models.RecurringRule) error
	SetRecurringRuleActive(ctx context.Context, id string, active bool) error

	ListSavingsGoals(ctx context.Context) ([]models.SavingsGoal, error)
	GetSavingsGoal(ctx context.Context, id string) (*models.SavingsGoal, error)
	InsertSavingsGoal(ctx context.Context, g *models.SavingsGoal) error
	UpdateSavingsGoal(ctx context.Context, g *models.SavingsGoal) error
	DeleteSavingsGoal(ctx context.Context, id string) error
	AppendSavingsHistory(ctx context.Context, e *models.SavingsEntry) error
	ListSavingsHistory(ctx context.Context, goalID string) ([]models.SavingsEntry, error)

	// CashPoolValue returns the value of the most recent cash event, or zero
	// when no event has been recorded yet.
	CashPoolValue(ctx context.Context) (decimal.Decimal, error)
	AppendCashEvent(ctx context.Context, e *models.CashEvent) error
	ListCashEvents(ctx context.Context, limit int) ([]models.CashEvent, error)

	ListBudgetTargets(ctx context.Context) ([]models.BudgetTarget, error)
	SetBudgetTarget(ctx context.Context, category string, target decimal.Decimal) error

	// GetSetting returns the stored value for key, or "" when unset.
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error

	Close() error
}

// SettingPayday is the settings key holding the next income date.
const SettingPayday = "tanggal_gajian"
