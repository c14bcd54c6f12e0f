// Package receivable tracks money lent to third parties, mirroring each
// lifecycle step into the transaction ledger.
package receivable

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

// Tracker manages receivables and their mirrored ledger transactions.
type Tracker struct {
	store  store.Store
	logger logging.Logger
}

// NewTracker builds a receivable tracker.
func NewTracker(s store.Store, logger logging.Logger) *Tracker {
	return &Tracker{store: s, logger: logger}
}

// Create records money lent today as an Outstanding receivable plus its
// mirrored Piutang expense. Validation failures leave no state behind.
func (t *Tracker) Create(ctx context.Context, debtor string, amount decimal.Decimal, dueDate, note string) (*models.Receivable, error) {
	debtor = strings.TrimSpace(debtor)
	if debtor == "" {
		return nil, errs.NewValidation("debtor", "name must not be empty")
	}
	if !currencyutils.IsPositive(amount) {
		return nil, errs.NewValidation("amount", "must be greater than zero")
	}

	today := dateutils.ToISO(time.Now())
	r := &models.Receivable{
		Date:    today,
		Debtor:  debtor,
		Amount:  amount,
		Note:    note,
		Status:  models.ReceivableOutstanding,
		DueDate: dueDate,
	}
	if err := t.store.InsertReceivable(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create receivable: %w", err)
	}

	mirror := &models.Transaction{
		Date:      today,
		Direction: models.DirectionExpense,
		Category:  models.CategoryReceivable,
		Amount:    amount,
		Note:      "Piutang: " + debtor,
		Status:    models.StatusCleared,
	}
	if err := t.store.InsertTransaction(ctx, mirror); err != nil {
		return nil, fmt.Errorf("failed to mirror receivable into ledger: %w", err)
	}

	t.logger.Info("Created receivable",
		logging.F(logging.FieldDebtor, debtor),
		logging.F(logging.FieldAmount, amount.String()))
	return r, nil
}

// MarkRepaid closes an outstanding receivable and mirrors the repayment as a
// Piutang Kembali income. Marking an already-repaid receivable is a no-op.
func (t *Tracker) MarkRepaid(ctx context.Context, id string) (*models.Receivable, error) {
	r, err := t.store.GetReceivable(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.IsOutstanding() {
		return r, nil
	}

	today := dateutils.ToISO(time.Now())
	r.Status = models.ReceivableRepaid
	r.RepaidDate = today
	if err := t.store.UpdateReceivable(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to mark receivable repaid: %w", err)
	}

	mirror := &models.Transaction{
		Date:      today,
		Direction: models.DirectionIncome,
		Category:  models.CategoryReceivableRepaid,
		Amount:    r.Amount,
		Note:      "Lunas: " + r.Debtor,
		Status:    models.StatusCleared,
	}
	if err := t.store.InsertTransaction(ctx, mirror); err != nil {
		return nil, fmt.Errorf("failed to mirror repayment into ledger: %w", err)
	}

	t.logger.Info("Receivable repaid",
		logging.F(logging.FieldDebtor, r.Debtor),
		logging.F(logging.FieldAmount, r.Amount.String()))
	return r, nil
}

// Overdue returns outstanding receivables whose due date has passed. Used
// for alerting only; nothing is mutated.
func (t *Tracker) Overdue(ctx context.Context, today time.Time) ([]models.Receivable, error) {
	all, err := t.store.ListReceivables(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := dateutils.ToISO(today)
	var out []models.Receivable
	for _, r := range all {
		if r.IsOutstanding() && r.DueDate != "" && r.DueDate < cutoff {
			out = append(out, r)
		}
	}
	return out, nil
}
