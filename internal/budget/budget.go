// Package budget tracks per-category monthly spending targets. Progress is
// derived from the transaction set on every read, never stored.
package budget

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rygrffth/cashflow/internal/currencyutils"
	"github.com/rygrffth/cashflow/internal/dateutils"
	"github.com/rygrffth/cashflow/internal/errs"
	"github.com/rygrffth/cashflow/internal/store"
)

// Health buckets a category's month-to-date spend against its target.
type Health string

const (
	HealthOK   Health = "ok"
	HealthNear Health = "near" // 80% of target or more
	HealthOver Health = "over"
)

// nearThreshold is the share of target at which a category turns "near".
var nearThreshold = decimal.NewFromFloat(0.8)

// Status is one category's month-to-date standing.
type Status struct {
	Category string
	Target   decimal.Decimal
	Spent    decimal.Decimal
	Health   Health
}

// Tracker reads and evaluates budget targets.
type Tracker struct {
	store store.Store
}

// NewTracker builds a budget tracker.
func NewTracker(s store.Store) *Tracker {
	return &Tracker{store: s}
}

// SetTarget creates or replaces a category's monthly target.
func (t *Tracker) SetTarget(ctx context.Context, category string, target decimal.Decimal) error {
	if category == "" {
		return errs.NewValidation("category", "must not be empty")
	}
	if !currencyutils.IsPositive(target) {
		return errs.NewValidation("target", "must be greater than zero")
	}
	return t.store.SetBudgetTarget(ctx, category, target)
}

// MonthStatus evaluates every target against active expenses whose effective
// date falls in today's month.
func (t *Tracker) MonthStatus(ctx context.Context, today time.Time) ([]Status, error) {
	targets, err := t.store.ListBudgetTargets(ctx)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, nil
	}

	transactions, err := t.store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	spent := make(map[string]decimal.Decimal, len(targets))
	for i := range transactions {
		tx := &transactions[i]
		if !tx.IsActiveExpense() {
			continue
		}
		when, ok := tx.EffectiveTime()
		if !ok || !dateutils.SameMonth(when, today) {
			continue
		}
		current, ok := spent[tx.Category]
		if !ok {
			current = decimal.Zero
		}
		spent[tx.Category] = current.Add(tx.Amount)
	}

	out := make([]Status, 0, len(targets))
	for _, target := range targets {
		s := Status{
			Category: target.Category,
			Target:   target.Target,
			Spent:    decimal.Zero,
		}
		if v, ok := spent[target.Category]; ok {
			s.Spent = v
		}
		switch {
		case s.Spent.GreaterThan(s.Target):
			s.Health = HealthOver
		case s.Spent.GreaterThanOrEqual(s.Target.Mul(nearThreshold)):
			s.Health = HealthNear
		default:
			s.Health = HealthOK
		}
		out = append(out, s)
	}
	return out, nil
}
