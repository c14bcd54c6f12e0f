package receivable

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rygrffth/cashflow/internal/dateutils"
	"github.com/rygrffth/cashflow/internal/errs"
	"github.com/rygrffth/cashflow/internal/ledger"
	"github.com/rygrffth/cashflow/internal/logging"
	"github.com/rygrffth/cashflow/internal/models"
	"github.com/rygrffth/cashflow/internal/store/sqlite"
)

func newTracker(t *testing.T) (*Tracker, *sqlite.SQLiteStore) {
	t.Helper()
	s, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewTracker(s, &logging.MockLogger{}), s
}

func TestCreateValidation(t *testing.T) {
	tracker, s := newTracker(t)
	ctx := context.Background()

	_, err := tracker.Create(ctx, "  ", decimal.NewFromInt(1000), "", "")
	var vErr *errs.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "debtor", vErr.Field)

	_, err = tracker.Create(ctx, "Budi", decimal.Zero, "", "")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "amount", vErr.Field)

	// Nothing was written.
	receivables, err := s.ListReceivables(ctx)
	require.NoError(t, err)
	assert.Empty(t, receivables)
	txs, err := s.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestCreateMirrorsExpense(t *testing.T) {
	tracker, s := newTracker(t)
	ctx := context.Background()

	r, err := tracker.Create(ctx, "Budi", decimal.NewFromInt(200000), "2025-12-01", "makan siang")
	require.NoError(t, err)
	assert.Equal(t, models.ReceivableOutstanding, r.Status)

	txs, err := s.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, models.DirectionExpense, txs[0].Direction)
	assert.Equal(t, models.CategoryReceivable, txs[0].Category)
	assert.Equal(t, "Piutang: Budi", txs[0].Note)
	assert.True(t, txs[0].Amount.Equal(decimal.NewFromInt(200000)))
}

// Lending reduces the operational float by the amount; repayment restores it.
func TestReceivableRoundTripRestoresFloat(t *testing.T) {
	tracker, s := newTracker(t)
	ctx := context.Background()
	baseline := decimal.NewFromInt(1000000)

	floatNow := func() decimal.Decimal {
		txs, err := s.ListTransactions(ctx)
		require.NoError(t, err)
		e := ledger.New(txs, baseline, decimal.Zero, decimal.Zero, time.Now(), time.Now())
		return e.OperationalFloat()
	}

	before := floatNow()

	r, err := tracker.Create(ctx, "Sari", decimal.NewFromInt(150000), "", "")
	require.NoError(t, err)
	assert.True(t, floatNow().Equal(before.Sub(decimal.NewFromInt(150000))))

	_, err = tracker.MarkRepaid(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, floatNow().Equal(before), "repayment restores the float, net zero")
}

func TestMarkRepaidIsIdempotent(t *testing.T) {
	tracker, s := newTracker(t)
	ctx := context.Background()

	r, err := tracker.Create(ctx, "Sari", decimal.NewFromInt(50000), "", "")
	require.NoError(t, err)

	repaid, err := tracker.MarkRepaid(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReceivableRepaid, repaid.Status)
	assert.NotEmpty(t, repaid.RepaidDate)

	// Repeating never double-credits.
	_, err = tracker.MarkRepaid(ctx, r.ID)
	require.NoError(t, err)

	txs, err := s.ListTransactions(ctx)
	require.NoError(t, err)
	incomes := 0
	for _, tx := range txs {
		if tx.Direction == models.DirectionIncome {
			incomes++
		}
	}
	assert.Equal(t, 1, incomes)
}

func TestOverdue(t *testing.T) {
	tracker, s := newTracker(t)
	ctx := context.Background()
	today := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.InsertReceivable(ctx, &models.Receivable{
		Date: "2025-07-01", Debtor: "Lama", Amount: decimal.NewFromInt(10000),
		Status: models.ReceivableOutstanding, DueDate: "2025-08-01",
	}))
	require.NoError(t, s.InsertReceivable(ctx, &models.Receivable{
		Date: "2025-08-10", Debtor: "Baru", Amount: decimal.NewFromInt(10000),
		Status: models.ReceivableOutstanding, DueDate: "2025-09-01",
	}))
	require.NoError(t, s.InsertReceivable(ctx, &models.Receivable{
		Date: "2025-06-01", Debtor: "Selesai", Amount: decimal.NewFromInt(10000),
		Status: models.ReceivableRepaid, DueDate: "2025-07-01",
		RepaidDate: dateutils.ToISO(today),
	}))

	overdue, err := tracker.Overdue(ctx, today)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "Lama", overdue[0].Debtor)
}
