package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rygrffth/cashflow/internal/models"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

var testToday = time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

func newEngine(txs []models.Transaction, baseline, cash, savings int64, nextIncome time.Time) *Engine {
	return New(txs, d(baseline), d(cash), d(savings), nextIncome, testToday)
}

func TestActiveExpenseExcludesPendingSettlements(t *testing.T) {
	txs := []models.Transaction{
		{Date: "2025-08-01", Direction: models.DirectionExpense, Category: "Makanan",
			Amount: d(50000), Status: models.StatusCleared},
		{Date: "2025-08-02", Direction: models.DirectionExpense, Category: models.CategoryScheduledSettlement,
			Amount: d(200000), Status: models.StatusPending, DueDate: "2025-09-01"},
	}
	e := newEngine(txs, 0, 0, 0, testToday.AddDate(0, 0, 5))

	assert.True(t, e.ActiveExpenseTotal().Equal(d(50000)),
		"pending settlement stays out of the expense total")

	// After clearing, the settlement counts once, at its settled date.
	txs[1].Status = models.StatusCleared
	txs[1].SettledDate = "2025-09-01"
	e = newEngine(txs, 0, 0, 0, testToday.AddDate(0, 0, 5))
	assert.True(t, e.ActiveExpenseTotal().Equal(d(250000)))
	assert.Equal(t, "2025-09-01", txs[1].EffectiveDate())
}

func TestPendingSettlementTotalAndNextDue(t *testing.T) {
	txs := []models.Transaction{
		{Direction: models.DirectionExpense, Category: models.CategoryScheduledSettlement,
			Amount: d(100000), Status: models.StatusPending, DueDate: "2025-09-10"},
		{Direction: models.DirectionExpense, Category: models.CategoryScheduledSettlement,
			Amount: d(50000), Status: models.StatusPending, DueDate: "2025-09-02"},
		{Direction: models.DirectionExpense, Category: models.CategoryScheduledSettlement,
			Amount: d(25000), Status: models.StatusPending},
	}
	e := newEngine(txs, 0, 0, 0, testToday)

	total, nextDue := e.PendingSettlementTotal()
	assert.True(t, total.Equal(d(175000)))
	assert.Equal(t, "2025-09-02", nextDue)
}

func TestBankBalanceIgnoresCashRows(t *testing.T) {
	txs := []models.Transaction{
		{Direction: models.DirectionIncome, Amount: d(1000000), Status: models.StatusCleared},
		{Direction: models.DirectionExpense, Amount: d(300000), Status: models.StatusCleared},
		{Direction: models.DirectionExpense, Amount: d(40000), Status: models.StatusCleared,
			Source: models.SourceCash},
	}
	e := newEngine(txs, 500000, 60000, 0, testToday)

	assert.True(t, e.BankBalance().Equal(d(1200000)), "500000 + 1000000 - 300000")
	assert.True(t, e.TotalAssets().Equal(d(1260000)))
}

func TestDailyLimit(t *testing.T) {
	e := newEngine(nil, 300000, 0, 0, testToday.AddDate(0, 0, 3))
	assert.Equal(t, 3, e.DaysRemaining())
	assert.True(t, e.DailyLimit().Equal(d(100000)))
}

func TestDaysRemainingClampedToOne(t *testing.T) {
	// Payday today (0 days out) still divides by 1, never by zero.
	e := newEngine(nil, 300000, 0, 0, testToday)
	assert.Equal(t, 1, e.DaysRemaining())
	assert.True(t, e.DailyLimit().Equal(d(300000)))

	// A payday in the past behaves the same.
	e = newEngine(nil, 300000, 0, 0, testToday.AddDate(0, 0, -10))
	assert.Equal(t, 1, e.DaysRemaining())
}

func TestOperationalFloatSubtractsSavings(t *testing.T) {
	e := newEngine(nil, 1000000, 200000, 450000, testToday)
	assert.True(t, e.OperationalFloat().Equal(d(750000)))
}

func TestWindowedSpendBucketsByEffectiveDate(t *testing.T) {
	txs := []models.Transaction{
		// Today, bank.
		{Date: "2025-08-20", Direction: models.DirectionExpense, Amount: d(10000),
			Status: models.StatusCleared},
		// Today, cash.
		{Date: "2025-08-20", Direction: models.DirectionExpense, Amount: d(5000),
			Status: models.StatusCleared, Source: models.SourceCash},
		// Same ISO week (2025-08-18 is the Monday), not today.
		{Date: "2025-08-18", Direction: models.DirectionExpense, Amount: d(20000),
			Status: models.StatusCleared},
		// Same month, earlier week.
		{Date: "2025-08-02", Direction: models.DirectionExpense, Amount: d(40000),
			Status: models.StatusCleared},
		// Cleared settlement entered last month but settled today.
		{Date: "2025-07-15", Direction: models.DirectionExpense,
			Category: models.CategoryScheduledSettlement, Amount: d(7000),
			Status: models.StatusCleared, SettledDate: "2025-08-20"},
		// Pending settlement never counts.
		{Date: "2025-08-20", Direction: models.DirectionExpense,
			Category: models.CategoryScheduledSettlement, Amount: d(99999),
			Status: models.StatusPending},
		// Unparseable date is skipped.
		{Date: "soon", Direction: models.DirectionExpense, Amount: d(11111),
			Status: models.StatusCleared},
	}
	e := newEngine(txs, 0, 0, 0, testToday)

	day := e.WindowedSpend(WindowDay)
	assert.True(t, day.Bank.Equal(d(17000)), "10000 + settled 7000")
	assert.True(t, day.Cash.Equal(d(5000)))
	assert.True(t, day.Total.Equal(d(22000)))

	week := e.WindowedSpend(WindowWeek)
	assert.True(t, week.Total.Equal(d(42000)))

	month := e.WindowedSpend(WindowMonth)
	assert.True(t, month.Total.Equal(d(82000)))
}

func TestSimulate(t *testing.T) {
	e := newEngine(nil, 300000, 0, 0, testToday.AddDate(0, 0, 3))

	sim := e.Simulate(d(25000))
	assert.True(t, sim.DailyLimit.Equal(d(100000)))
	assert.True(t, sim.Remaining.Equal(d(75000)))
	assert.InDelta(t, 25.0, sim.PercentUsed, 0.001)
	// (300000 - 25000) / 2 remaining days.
	assert.True(t, sim.NextDayLimit.Equal(d(137500)))
}

func TestSimulateLastDayKeepsLimit(t *testing.T) {
	e := newEngine(nil, 100000, 0, 0, testToday)
	sim := e.Simulate(d(30000))
	assert.True(t, sim.NextDayLimit.Equal(sim.DailyLimit),
		"with one day remaining the next-day limit is unchanged")
}

func TestSimulateZeroLimitGuardsPercent(t *testing.T) {
	e := newEngine(nil, 0, 0, 0, testToday.AddDate(0, 0, 5))
	sim := e.Simulate(d(10000))
	assert.Equal(t, 0.0, sim.PercentUsed, "zero limit reports 0% instead of dividing")
}

func TestMonthProjection(t *testing.T) {
	txs := []models.Transaction{
		{Date: "2025-08-05", Direction: models.DirectionExpense, Amount: d(200000),
			Status: models.StatusCleared},
		{Date: "2025-08-15", Direction: models.DirectionExpense, Amount: d(200000),
			Status: models.StatusCleared},
	}
	e := newEngine(txs, 0, 0, 0, testToday)

	p := e.MonthProjection()
	// 400000 spent over 20 elapsed days, extended over 31 days.
	assert.True(t, p.AveragePerDay.Equal(d(20000)))
	assert.True(t, p.MonthEnd.Equal(d(620000)))
}
