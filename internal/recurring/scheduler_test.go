package recurring

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rygrffth/cashflow/internal/logging"
	"github.com/rygrffth/cashflow/internal/models"
	"github.com/rygrffth/cashflow/internal/store/sqlite"
)

var schedToday = time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()
	s, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func addRule(t *testing.T, s *sqlite.SQLiteStore, name string, freq models.Frequency, startDate string) {
	t.Helper()
	require.NoError(t, s.InsertRecurringRule(context.Background(), &models.RecurringRule{
		Name:      name,
		Category:  "Tagihan",
		Amount:    decimal.NewFromInt(150000),
		StartDate: startDate,
		Frequency: freq,
		Active:    true,
	}))
}

func TestMonthlyRuleFiresOncePerMonth(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	addRule(t, s, "Internet", models.FrequencyMonthly, "2025-01-05")

	sched := NewScheduler(s, &logging.MockLogger{}, false)

	n, err := sched.Run(ctx, schedToday)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// A second evaluation in the same month generates nothing.
	n, err = sched.Run(ctx, schedToday)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	txs, err := s.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "2025-08-05", txs[0].Date)
	assert.Equal(t, "2025-08-05", txs[0].SettledDate)
	assert.Equal(t, "[Auto] Internet", txs[0].Note)
	assert.Equal(t, models.StatusCleared, txs[0].Status)
}

func TestMonthlyRuleBeforeAnchorDaySkips(t *testing.T) {
	s := newTestStore(t)
	addRule(t, s, "Sewa", models.FrequencyMonthly, "2025-01-25")

	sched := NewScheduler(s, &logging.MockLogger{}, false)
	n, err := sched.Run(context.Background(), schedToday)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "anchor day 25 is still in the future on the 20th")
}

func TestMonthlyRuleMissingDaySkipsCycle(t *testing.T) {
	s := newTestStore(t)
	addRule(t, s, "Langganan", models.FrequencyMonthly, "2025-01-31")

	sched := NewScheduler(s, &logging.MockLogger{}, false)
	february := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	n, err := sched.Run(context.Background(), february)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "day 31 does not exist in February; no clamping")
}

func TestInactiveAndUnparseableRulesSkipped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertRecurringRule(ctx, &models.RecurringRule{
		Name: "Off", Category: "Tagihan", Amount: decimal.NewFromInt(1000),
		StartDate: "2025-01-05", Frequency: models.FrequencyMonthly, Active: false,
	}))
	addRule(t, s, "Broken", models.FrequencyMonthly, "bukan tanggal")

	logger := &logging.MockLogger{}
	sched := NewScheduler(s, logger, false)
	n, err := sched.Run(ctx, schedToday)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.True(t, logger.HasMessage("Skipping rule with unparseable start date"))
}

func TestWeeklyRuleFiresEveryEvaluation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	addRule(t, s, "Bensin", models.FrequencyWeekly, "2025-01-06")

	sched := NewScheduler(s, &logging.MockLogger{}, false)
	for i := 0; i < 3; i++ {
		n, err := sched.Run(ctx, schedToday)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	}

	txs, err := s.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, txs, 3, "three evaluations in one day emit three rows")
}

func TestWeeklyDedupLimitsToOnePerWeek(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	addRule(t, s, "Bensin", models.FrequencyWeekly, "2025-01-06")

	sched := NewScheduler(s, &logging.MockLogger{}, true)

	n, err := sched.Run(ctx, schedToday)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = sched.Run(ctx, schedToday)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// Next ISO week fires again.
	n, err = sched.Run(ctx, schedToday.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUnknownFrequencySkipped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.InsertRecurringRule(ctx, &models.RecurringRule{
		Name: "Aneh", Category: "Tagihan", Amount: decimal.NewFromInt(1000),
		StartDate: "2025-01-05", Frequency: "Harian", Active: true,
	}))

	sched := NewScheduler(s, &logging.MockLogger{}, false)
	n, err := sched.Run(ctx, schedToday)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
