// Package ledger computes balances, windowed spend and the daily spending
// limit from the full transaction set. The engine is pure: it holds a
// snapshot taken at construction and never writes anything back.
package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rygrffth/cashflow/internal/dateutils"
	"github.com/rygrffth/cashflow/internal/models"
)

// Window selects the calendar bucket for spend aggregation.
type Window string

const (
	WindowDay   Window = "day"
	WindowWeek  Window = "isoWeek"
	WindowMonth Window = "month"
)

// Engine evaluates one snapshot of ledger state. Construct a fresh one per
// cycle; nothing is cached across snapshots.
type Engine struct {
	transactions     []models.Transaction
	baseline         decimal.Decimal
	cashPool         decimal.Decimal
	savingsCollected decimal.Decimal
	nextIncome       time.Time
	today            time.Time
}

// New builds an engine over a transaction snapshot. baseline is the constant
// opening balance of the Bank pool, nextIncome the next payday.
func New(transactions []models.Transaction, baseline, cashPool, savingsCollected decimal.Decimal, nextIncome, today time.Time) *Engine {
	return &Engine{
		transactions:     transactions,
		baseline:         baseline,
		cashPool:         cashPool,
		savingsCollected: savingsCollected,
		nextIncome:       nextIncome,
		today:            today,
	}
}

// ActiveExpenseTotal sums every expense except Scheduled Settlements that are
// still Pending.
func (e *Engine) ActiveExpenseTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range e.transactions {
		if e.transactions[i].IsActiveExpense() {
			total = total.Add(e.transactions[i].Amount)
		}
	}
	return total
}

// IncomeTotal sums every income transaction.
func (e *Engine) IncomeTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range e.transactions {
		if e.transactions[i].Direction == models.DirectionIncome {
			total = total.Add(e.transactions[i].Amount)
		}
	}
	return total
}

// PendingSettlementTotal sums Pending Scheduled Settlements and returns the
// earliest due date among them ("" when none carries one).
func (e *Engine) PendingSettlementTotal() (decimal.Decimal, string) {
	total := decimal.Zero
	nextDue := ""
	for i := range e.transactions {
		t := &e.transactions[i]
		if !t.IsPendingSettlement() {
			continue
		}
		total = total.Add(t.Amount)
		due := strings.TrimSpace(t.DueDate)
		if due == "" {
			continue
		}
		if nextDue == "" || due < nextDue {
			nextDue = due
		}
	}
	return total, nextDue
}

// BankBalance is baseline + bank income - active bank expenses. Cash-sourced
// rows mutate the cash pool instead and are excluded here.
func (e *Engine) BankBalance() decimal.Decimal {
	balance := e.baseline
	for i := range e.transactions {
		t := &e.transactions[i]
		if t.EffectiveSource() != models.SourceBank {
			continue
		}
		switch {
		case t.Direction == models.DirectionIncome:
			balance = balance.Add(t.Amount)
		case t.IsActiveExpense():
			balance = balance.Sub(t.Amount)
		}
	}
	return balance
}

// TotalAssets is the bank balance plus the physical cash pool.
func (e *Engine) TotalAssets() decimal.Decimal {
	return e.BankBalance().Add(e.cashPool)
}

// OperationalFloat is what remains spendable after savings commitments.
func (e *Engine) OperationalFloat() decimal.Decimal {
	return e.TotalAssets().Sub(e.savingsCollected)
}

// DaysRemaining counts whole days until the next income event, clamped to a
// minimum of 1 so the daily limit division is always defined.
func (e *Engine) DaysRemaining() int {
	return dateutils.DaysUntil(e.nextIncome, e.today)
}

// DailyLimit is the operational float spread evenly over the remaining days,
// truncated to whole rupiah.
func (e *Engine) DailyLimit() decimal.Decimal {
	days := decimal.NewFromInt(int64(e.DaysRemaining()))
	return e.OperationalFloat().Div(days).Truncate(0)
}

// SpendBreakdown is a windowed expense sum split by source.
type SpendBreakdown struct {
	Bank  decimal.Decimal
	Cash  decimal.Decimal
	Total decimal.Decimal
}

// WindowedSpend sums active expenses whose effective date falls inside the
// given window around today. Rows without a parseable date are skipped.
func (e *Engine) WindowedSpend(w Window) SpendBreakdown {
	out := SpendBreakdown{Bank: decimal.Zero, Cash: decimal.Zero, Total: decimal.Zero}
	for i := range e.transactions {
		t := &e.transactions[i]
		if !t.IsActiveExpense() {
			continue
		}
		when, ok := t.EffectiveTime()
		if !ok {
			continue
		}
		var in bool
		switch w {
		case WindowDay:
			in = dateutils.SameDay(when, e.today)
		case WindowWeek:
			in = dateutils.SameISOWeek(when, e.today)
		case WindowMonth:
			in = dateutils.SameMonth(when, e.today)
		}
		if !in {
			continue
		}
		if t.EffectiveSource() == models.SourceCash {
			out.Cash = out.Cash.Add(t.Amount)
		} else {
			out.Bank = out.Bank.Add(t.Amount)
		}
		out.Total = out.Total.Add(t.Amount)
	}
	return out
}

// Simulation is the pure what-if result for a hypothetical today-spend.
// Nothing is committed.
type Simulation struct {
	Spend        decimal.Decimal
	DailyLimit   decimal.Decimal
	Remaining    decimal.Decimal
	PercentUsed  float64
	NextDayLimit decimal.Decimal
}

// Simulate projects the effect of spending the given amount today. The
// percentage guards a zero daily limit by reporting 0 instead of dividing.
func (e *Engine) Simulate(spend decimal.Decimal) Simulation {
	limit := e.DailyLimit()
	sim := Simulation{
		Spend:        spend,
		DailyLimit:   limit,
		Remaining:    limit.Sub(spend),
		NextDayLimit: limit,
	}
	if !limit.IsZero() {
		pct, _ := spend.Div(limit).Mul(decimal.NewFromInt(100)).Float64()
		sim.PercentUsed = pct
	}
	if days := e.DaysRemaining(); days > 1 {
		adjusted := e.OperationalFloat().Sub(spend)
		sim.NextDayLimit = adjusted.Div(decimal.NewFromInt(int64(days - 1))).Truncate(0)
	}
	return sim
}

// Projection extrapolates this month's spending pace to month end.
type Projection struct {
	AveragePerDay decimal.Decimal
	MonthEnd      decimal.Decimal
}

// MonthProjection divides the month's active spend by the days elapsed and
// extends that average over the whole month.
func (e *Engine) MonthProjection() Projection {
	spent := e.WindowedSpend(WindowMonth).Total
	elapsed := decimal.NewFromInt(int64(e.today.Day()))
	avg := spent.Div(elapsed).Truncate(0)

	daysInMonth := time.Date(e.today.Year(), e.today.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return Projection{
		AveragePerDay: avg,
		MonthEnd:      avg.Mul(decimal.NewFromInt(int64(daysInMonth))),
	}
}
