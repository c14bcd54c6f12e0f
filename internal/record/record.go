// Package record validates and appends user-entered transactions.
package record

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rygrffth/cashflow/internal/cashpool"
	"github.com/rygrffth/cashflow/internal/currencyutils"
	"github.com/rygrffth/cashflow/internal/errs"
	"github.com/rygrffth/cashflow/internal/ledger"
	"github.com/rygrffth/cashflow/internal/logging"
	"github.com/rygrffth/cashflow/internal/models"
	"github.com/rygrffth/cashflow/internal/store"
)

// Recorder appends transactions after validating the paying pool can cover
// them. Cash-sourced rows also move the cash pool.
type Recorder struct {
	store    store.Store
	pool     *cashpool.Pool
	logger   logging.Logger
	baseline decimal.Decimal
}

// NewRecorder builds a recorder. baseline is the Bank pool's opening balance.
func NewRecorder(s store.Store, pool *cashpool.Pool, logger logging.Logger, baseline decimal.Decimal) *Recorder {
	return &Recorder{store: s, pool: pool, logger: logger, baseline: baseline}
}

// Record validates and appends one transaction. An expense larger than its
// pool's balance is rejected with no mutation. Pending settlements skip the
// sufficiency check; they draw nothing until cleared.
func (r *Recorder) Record(ctx context.Context, t *models.Transaction) error {
	if !currencyutils.IsPositive(t.Amount) {
		return errs.NewValidation("amount", "must be greater than zero")
	}
	if t.Category == "" {
		return errs.NewValidation("category", "must not be empty")
	}
	if t.Direction != models.DirectionExpense && t.Direction != models.DirectionIncome {
		return errs.NewValidation("direction", "must be Pengeluaran or Pemasukan")
	}
	if t.Date == "" {
		t.Date = time.Now().Format("2006-01-02")
	}
	if t.Status == "" {
		t.Status = models.StatusCleared
	}

	if t.IsActiveExpense() {
		if err := r.checkSufficiency(ctx, t); err != nil {
			return err
		}
	}

	if err := r.store.InsertTransaction(ctx, t); err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}

	if t.EffectiveSource() == models.SourceCash && !t.IsPendingSettlement() {
		delta := t.Amount
		if t.Direction == models.DirectionExpense {
			delta = delta.Neg()
		}
		if _, err := r.pool.Adjust(ctx, delta, t.Note); err != nil {
			return err
		}
	}

	r.logger.Info("Recorded transaction",
		logging.F(logging.FieldCategory, t.Category),
		logging.F(logging.FieldAmount, t.Amount.String()),
		logging.F(logging.FieldSource, string(t.EffectiveSource())))
	return nil
}

// Settle clears a pending Scheduled Settlement. From this point the
// transaction counts toward balances, bucketed by today rather than its entry
// date. Cash-sourced settlements draw from the pool now, not at entry.
func (r *Recorder) Settle(ctx context.Context, id string, today time.Time) (*models.Transaction, error) {
	t, err := r.store.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.IsPendingSettlement() {
		return nil, errs.NewValidation("id", "not a pending scheduled settlement")
	}

	if err := r.checkSufficiency(ctx, t); err != nil {
		return nil, err
	}

	t.Status = models.StatusCleared
	t.SettledDate = today.Format("2006-01-02")
	if err := r.store.UpdateTransaction(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to settle transaction: %w", err)
	}

	if t.EffectiveSource() == models.SourceCash {
		if _, err := r.pool.Adjust(ctx, t.Amount.Neg(), t.Note); err != nil {
			return nil, err
		}
	}

	r.logger.Info("Settled transaction",
		logging.F(logging.FieldAmount, t.Amount.String()),
		logging.F(logging.FieldSource, string(t.EffectiveSource())))
	return t, nil
}

func (r *Recorder) checkSufficiency(ctx context.Context, t *models.Transaction) error {
	if t.Direction != models.DirectionExpense {
		return nil
	}

	switch t.EffectiveSource() {
	case models.SourceCash:
		current, err := r.pool.Current(ctx)
		if err != nil {
			return err
		}
		if t.Amount.GreaterThan(current) {
			return errs.NewValidation("amount",
				fmt.Sprintf("exceeds cash on hand (%s)", currencyutils.FormatRupiah(current)))
		}
	default:
		transactions, err := r.store.ListTransactions(ctx)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		engine := ledger.New(transactions, r.baseline, decimal.Zero, decimal.Zero, time.Now(), time.Now())
		balance := engine.BankBalance()
		if t.Amount.GreaterThan(balance) {
			return errs.NewValidation("amount",
				fmt.Sprintf("exceeds bank balance (%s)", currencyutils.FormatRupiah(balance)))
		}
	}
	return nil
}
