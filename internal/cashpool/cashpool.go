// Package cashpool manages the physical cash on hand. The pool is a single
// scalar tracked as an append-only event log; the current value is the most
// recent event.
package cashpool

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rygrffth/cashflow/internal/currencyutils"
	"github.com/rygrffth/cashflow/internal/dateutils"
	"github.com/rygrffth/cashflow/internal/errs"
	"github.com/rygrffth/cashflow/internal/logging"
	"github.com/rygrffth/cashflow/internal/models"
	"github.com/rygrffth/cashflow/internal/store"
)

// Pool exposes the cash pool value and its mutations.
type Pool struct {
	store  store.Store
	logger logging.Logger
}

// NewPool builds a cash pool service.
func NewPool(s store.Store, logger logging.Logger) *Pool {
	return &Pool{store: s, logger: logger}
}

// Current reads the present pool value, zero when never set.
func (p *Pool) Current(ctx context.Context) (decimal.Decimal, error) {
	return p.store.CashPoolValue(ctx)
}

// Set records a new absolute pool value (count correction or manual top-up).
func (p *Pool) Set(ctx context.Context, value decimal.Decimal, note string) error {
	if value.IsNegative() {
		return errs.NewValidation("value", "must not be negative")
	}
	err := p.store.AppendCashEvent(ctx, &models.CashEvent{
		Value: value,
		Date:  dateutils.ToISO(time.Now()),
		Note:  note,
	})
	if err != nil {
		return fmt.Errorf("failed to set cash pool: %w", err)
	}
	p.logger.Info("Cash pool set", logging.F(logging.FieldAmount, value.String()))
	return nil
}

// Adjust shifts the pool by a signed delta, recording the resulting absolute
// value. Used by cash-sourced transaction entry. The pool may not go
// negative.
func (p *Pool) Adjust(ctx context.Context, delta decimal.Decimal, note string) (decimal.Decimal, error) {
	current, err := p.store.CashPoolValue(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	next := current.Add(delta)
	if next.IsNegative() {
		return decimal.Zero, errs.NewValidation("amount", "exceeds cash on hand")
	}
	err = p.store.AppendCashEvent(ctx, &models.CashEvent{
		Value: next,
		Date:  dateutils.ToISO(time.Now()),
		Note:  note,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to adjust cash pool: %w", err)
	}
	return next, nil
}

// Withdraw models an ATM withdrawal: a bank expense and a matching cash
// income land in the ledger, and the pool value rises by the amount.
func (p *Pool) Withdraw(ctx context.Context, amount decimal.Decimal, note string) error {
	if !currencyutils.IsPositive(amount) {
		return errs.NewValidation("amount", "must be greater than zero")
	}

	today := dateutils.ToISO(time.Now())
	bankSide := &models.Transaction{
		Date:      today,
		Direction: models.DirectionExpense,
		Category:  models.CategoryCashWithdrawal,
		Amount:    amount,
		Note:      "Tarik tunai - " + note,
		Status:    models.StatusCleared,
		Source:    models.SourceBank,
	}
	if err := p.store.InsertTransaction(ctx, bankSide); err != nil {
		return fmt.Errorf("failed to record withdrawal expense: %w", err)
	}

	cashSide := &models.Transaction{
		Date:      today,
		Direction: models.DirectionIncome,
		Category:  models.CategoryCashWithdrawal,
		Amount:    amount,
		Note:      "Dari ATM - " + note,
		Status:    models.StatusCleared,
		Source:    models.SourceCash,
	}
	if err := p.store.InsertTransaction(ctx, cashSide); err != nil {
		return fmt.Errorf("failed to record withdrawal income: %w", err)
	}

	if _, err := p.Adjust(ctx, amount, "Tarik tunai - "+note); err != nil {
		return err
	}

	p.logger.Info("Cash withdrawal",
		logging.F(logging.FieldAmount, amount.String()))
	return nil
}

// Log returns the newest events first, at most limit rows.
func (p *Pool) Log(ctx context.Context, limit int) ([]models.CashEvent, error) {
	return p.store.ListCashEvents(ctx, limit)
}
