// Package savings manages goal-based saving with an append-only history of
// deposits and withdrawals.
package savings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rygrffth/cashflow/internal/currencyutils"
	"github.com/rygrffth/cashflow/internal/dateutils"
	"github.com/rygrffth/cashflow/internal/errs"
	"github.com/rygrffth/cashflow/internal/logging"
	"github.com/rygrffth/cashflow/internal/models"
	"github.com/rygrffth/cashflow/internal/store"
)

// Manager handles savings goal lifecycle and contributions.
type Manager struct {
	store  store.Store
	logger logging.Logger
}

// NewManager builds a savings goal manager.
func NewManager(s store.Store, logger logging.Logger) *Manager {
	return &Manager{store: s, logger: logger}
}

// Create registers a new goal starting today with nothing collected.
func (m *Manager) Create(ctx context.Context, name string, target decimal.Decimal, targetDate, category string, priority int, note string) (*models.SavingsGoal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.NewValidation("name", "must not be empty")
	}
	if !currencyutils.IsPositive(target) {
		return nil, errs.NewValidation("target", "must be greater than zero")
	}
	if priority < 1 || priority > 5 {
		return nil, errs.NewValidation("priority", "must be between 1 and 5")
	}

	g := &models.SavingsGoal{
		Name:       name,
		Target:     target,
		Collected:  decimal.Zero,
		StartDate:  dateutils.ToISO(time.Now()),
		TargetDate: targetDate,
		Category:   category,
		Priority:   priority,
		Note:       note,
		Status:     models.GoalActive,
	}
	if err := m.store.InsertSavingsGoal(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to create savings goal: %w", err)
	}

	m.logger.Info("Created savings goal",
		logging.F(logging.FieldGoal, name),
		logging.F(logging.FieldAmount, target.String()))
	return g, nil
}

// Deposit adds to a goal and appends a history entry. Reaching the target
// marks the goal Completed.
func (m *Manager) Deposit(ctx context.Context, goalID string, amount decimal.Decimal, note string) (*models.SavingsGoal, error) {
	if !currencyutils.IsPositive(amount) {
		return nil, errs.NewValidation("amount", "must be greater than zero")
	}

	g, err := m.store.GetSavingsGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}

	g.Collected = g.Collected.Add(amount)
	if g.Collected.GreaterThanOrEqual(g.Target) {
		g.Status = models.GoalCompleted
	}
	if err := m.store.UpdateSavingsGoal(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to update savings goal: %w", err)
	}

	if err := m.appendHistory(ctx, g.ID, amount, models.SavingsDeposit, note); err != nil {
		return nil, err
	}

	m.logger.Info("Savings deposit",
		logging.F(logging.FieldGoal, g.Name),
		logging.F(logging.FieldAmount, amount.String()))
	return g, nil
}

// Withdraw takes from a goal. A goal that reached Completed stays Completed
// even when the withdrawal drops the balance back under target.
func (m *Manager) Withdraw(ctx context.Context, goalID string, amount decimal.Decimal, note string) (*models.SavingsGoal, error) {
	if !currencyutils.IsPositive(amount) {
		return nil, errs.NewValidation("amount", "must be greater than zero")
	}

	g, err := m.store.GetSavingsGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(g.Collected) {
		return nil, errs.NewValidation("amount", "exceeds collected balance")
	}

	g.Collected = g.Collected.Sub(amount)
	if err := m.store.UpdateSavingsGoal(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to update savings goal: %w", err)
	}

	if err := m.appendHistory(ctx, g.ID, amount, models.SavingsWithdrawal, note); err != nil {
		return nil, err
	}

	m.logger.Info("Savings withdrawal",
		logging.F(logging.FieldGoal, g.Name),
		logging.F(logging.FieldAmount, amount.String()))
	return g, nil
}

// Remove deletes a goal and its history.
func (m *Manager) Remove(ctx context.Context, goalID string) error {
	return m.store.DeleteSavingsGoal(ctx, goalID)
}

// TotalCollected sums the collected balance across every goal; the ledger
// engine subtracts it from total assets.
func (m *Manager) TotalCollected(ctx context.Context) (decimal.Decimal, error) {
	goals, err := m.store.ListSavingsGoals(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, g := range goals {
		total = total.Add(g.Collected)
	}
	return total, nil
}

func (m *Manager) appendHistory(ctx context.Context, goalID string, amount decimal.Decimal, entryType models.SavingsEntryType, note string) error {
	err := m.store.AppendSavingsHistory(ctx, &models.SavingsEntry{
		GoalID: goalID,
		Date:   dateutils.ToISO(time.Now()),
		Amount: amount,
		Type:   entryType,
		Note:   note,
	})
	if err != nil {
		return fmt.Errorf("failed to append savings history: %w", err)
	}
	return nil
}
