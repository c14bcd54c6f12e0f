package record

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rygrffth/cashflow/internal/cashpool"
	"github.com/rygrffth/cashflow/internal/errs"
	"github.com/rygrffth/cashflow/internal/logging"
	"github.com/rygrffth/cashflow/internal/models"
	"github.com/rygrffth/cashflow/internal/store/sqlite"
)

func newRecorder(t *testing.T, baseline int64) (*Recorder, *sqlite.SQLiteStore, *cashpool.Pool) {
	t.Helper()
	s, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	pool := cashpool.NewPool(s, &logging.MockLogger{})
	return NewRecorder(s, pool, &logging.MockLogger{}, decimal.NewFromInt(baseline)), s, pool
}

func TestRecordValidation(t *testing.T) {
	r, s, _ := newRecorder(t, 1000000)
	ctx := context.Background()

	var vErr *errs.ValidationError
	require.ErrorAs(t, r.Record(ctx, &models.Transaction{
		Direction: models.DirectionExpense, Category: "Makanan", Amount: decimal.Zero,
	}), &vErr)
	require.ErrorAs(t, r.Record(ctx, &models.Transaction{
		Direction: models.DirectionExpense, Amount: decimal.NewFromInt(1000),
	}), &vErr)
	require.ErrorAs(t, r.Record(ctx, &models.Transaction{
		Direction: "Transfer", Category: "Makanan", Amount: decimal.NewFromInt(1000),
	}), &vErr)

	txs, err := s.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestRecordDefaultsDateAndStatus(t *testing.T) {
	r, s, _ := newRecorder(t, 1000000)
	ctx := context.Background()

	require.NoError(t, r.Record(ctx, &models.Transaction{
		Direction: models.DirectionExpense,
		Category:  "Makanan",
		Amount:    decimal.NewFromInt(10000),
	}))

	txs, err := s.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.NotEmpty(t, txs[0].Date)
	assert.Equal(t, models.StatusCleared, txs[0].Status)
}

func TestRecordRejectsInsufficientBankBalance(t *testing.T) {
	r, s, _ := newRecorder(t, 100000)
	ctx := context.Background()

	var vErr *errs.ValidationError
	require.ErrorAs(t, r.Record(ctx, &models.Transaction{
		Direction: models.DirectionExpense,
		Category:  "Elektronik",
		Amount:    decimal.NewFromInt(100001),
	}), &vErr)

	txs, err := s.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs, "rejected expense leaves no state")
}

func TestRecordRejectsInsufficientCash(t *testing.T) {
	r, _, pool := newRecorder(t, 1000000)
	ctx := context.Background()
	require.NoError(t, pool.Set(ctx, decimal.NewFromInt(20000), ""))

	var vErr *errs.ValidationError
	require.ErrorAs(t, r.Record(ctx, &models.Transaction{
		Direction: models.DirectionExpense,
		Category:  "Makanan",
		Amount:    decimal.NewFromInt(50000),
		Source:    models.SourceCash,
	}), &vErr)
}

func TestRecordCashExpenseMovesPool(t *testing.T) {
	r, _, pool := newRecorder(t, 1000000)
	ctx := context.Background()
	require.NoError(t, pool.Set(ctx, decimal.NewFromInt(100000), ""))

	require.NoError(t, r.Record(ctx, &models.Transaction{
		Direction: models.DirectionExpense,
		Category:  "Makanan",
		Amount:    decimal.NewFromInt(30000),
		Source:    models.SourceCash,
	}))

	v, err := pool.Current(ctx)
	require.NoError(t, err)
	assert.True(t, v.Equal(decimal.NewFromInt(70000)))

	require.NoError(t, r.Record(ctx, &models.Transaction{
		Direction: models.DirectionIncome,
		Category:  "Lainnya",
		Amount:    decimal.NewFromInt(5000),
		Source:    models.SourceCash,
	}))

	v, err = pool.Current(ctx)
	require.NoError(t, err)
	assert.True(t, v.Equal(decimal.NewFromInt(75000)))
}

func TestRecordPendingSettlementSkipsSufficiency(t *testing.T) {
	r, s, _ := newRecorder(t, 1000)
	ctx := context.Background()

	require.NoError(t, r.Record(ctx, &models.Transaction{
		Direction: models.DirectionExpense,
		Category:  models.CategoryScheduledSettlement,
		Amount:    decimal.NewFromInt(5000000),
		Status:    models.StatusPending,
		DueDate:   "2025-12-01",
	}), "pending settlements draw nothing until cleared")

	txs, err := s.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestRecordPendingCashSettlementLeavesPool(t *testing.T) {
	r, _, pool := newRecorder(t, 1000000)
	ctx := context.Background()
	require.NoError(t, pool.Set(ctx, decimal.NewFromInt(100000), ""))

	require.NoError(t, r.Record(ctx, &models.Transaction{
		Direction: models.DirectionExpense,
		Category:  models.CategoryScheduledSettlement,
		Amount:    decimal.NewFromInt(40000),
		Status:    models.StatusPending,
		Source:    models.SourceCash,
		DueDate:   "2025-12-01",
	}))

	v, err := pool.Current(ctx)
	require.NoError(t, err)
	assert.True(t, v.Equal(decimal.NewFromInt(100000)),
		"pending settlement contributes nothing until cleared")
}

func TestSettleClearsPendingSettlement(t *testing.T) {
	r, s, _ := newRecorder(t, 1000000)
	ctx := context.Background()

	tx := &models.Transaction{
		Date:      "2025-08-01",
		Direction: models.DirectionExpense,
		Category:  models.CategoryScheduledSettlement,
		Amount:    decimal.NewFromInt(50000),
		Status:    models.StatusPending,
		DueDate:   "2025-08-25",
	}
	require.NoError(t, r.Record(ctx, tx))

	today := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	settled, err := r.Settle(ctx, tx.ID, today)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCleared, settled.Status)
	assert.Equal(t, "2025-08-20", settled.SettledDate)
	assert.Equal(t, "2025-08-20", settled.EffectiveDate(),
		"cleared settlements bucket by settled date, not entry date")

	stored, err := s.GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCleared, stored.Status)
	assert.Equal(t, "2025-08-20", stored.SettledDate)
}

func TestSettleCashSettlementDrawsPool(t *testing.T) {
	r, _, pool := newRecorder(t, 1000000)
	ctx := context.Background()
	require.NoError(t, pool.Set(ctx, decimal.NewFromInt(100000), ""))

	tx := &models.Transaction{
		Date:      "2025-08-01",
		Direction: models.DirectionExpense,
		Category:  models.CategoryScheduledSettlement,
		Amount:    decimal.NewFromInt(40000),
		Status:    models.StatusPending,
		Source:    models.SourceCash,
	}
	require.NoError(t, r.Record(ctx, tx))

	_, err := r.Settle(ctx, tx.ID, time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	v, err := pool.Current(ctx)
	require.NoError(t, err)
	assert.True(t, v.Equal(decimal.NewFromInt(60000)),
		"cash settlements draw the pool when cleared")
}

func TestSettleRejectsNonPendingTransactions(t *testing.T) {
	r, _, _ := newRecorder(t, 1000000)
	ctx := context.Background()

	tx := &models.Transaction{
		Direction: models.DirectionExpense,
		Category:  "Makanan",
		Amount:    decimal.NewFromInt(10000),
	}
	require.NoError(t, r.Record(ctx, tx))

	today := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	var vErr *errs.ValidationError
	_, err := r.Settle(ctx, tx.ID, today)
	require.ErrorAs(t, err, &vErr)

	_, err = r.Settle(ctx, "missing-id", today)
	require.Error(t, err)
}
