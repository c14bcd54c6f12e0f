// Package recurring evaluates recurring expense rules and emits the
// transactions they are due to generate.
package recurring

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rygrffth/cashflow/internal/dateutils"
	"github.com/rygrffth/cashflow/internal/logging"
	"github.com/rygrffth/cashflow/internal/models"
	"github.com/rygrffth/cashflow/internal/store"
)

// Scheduler runs once per evaluation cycle, before the ledger engine reads
// the transaction set, so generated rows land in the same cycle's balances.
type Scheduler struct {
	store       store.Store
	logger      logging.Logger
	weeklyDedup bool
}

// NewScheduler builds a scheduler. weeklyDedup limits Weekly rules to one
// emission per ISO week; when false, Weekly rules fire on every evaluation,
// matching the legacy behavior of an external once-daily trigger.
func NewScheduler(s store.Store, logger logging.Logger, weeklyDedup bool) *Scheduler {
	return &Scheduler{store: s, logger: logger, weeklyDedup: weeklyDedup}
}

// Run evaluates every rule against today and inserts the transactions that
// are due. A rule that cannot be evaluated is logged and skipped; only store
// failures abort the batch. Returns the number of transactions generated.
func (s *Scheduler) Run(ctx context.Context, today time.Time) (int, error) {
	rules, err := s.store.ListRecurringRules(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load recurring rules: %w", err)
	}
	if len(rules) == 0 {
		return 0, nil
	}

	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load transactions: %w", err)
	}

	generated := 0
	for i := range rules {
		rule := &rules[i]
		if !rule.Active {
			continue
		}

		target, ok := s.targetDate(rule, transactions, today)
		if !ok {
			continue
		}

		tx := models.Transaction{
			Date:        dateutils.ToISO(target),
			Direction:   models.DirectionExpense,
			Category:    rule.Category,
			Amount:      rule.Amount,
			Note:        "[Auto] " + rule.Name,
			Status:      models.StatusCleared,
			SettledDate: dateutils.ToISO(target),
		}
		if err := s.store.InsertTransaction(ctx, &tx); err != nil {
			return generated, fmt.Errorf("failed to insert generated transaction for rule %s: %w", rule.Name, err)
		}
		transactions = append(transactions, tx)
		generated++

		s.logger.Info("Generated recurring transaction",
			logging.F(logging.FieldRule, rule.Name),
			logging.F(logging.FieldDate, tx.Date),
			logging.F(logging.FieldAmount, rule.Amount.String()))
	}
	return generated, nil
}

// targetDate decides whether a rule fires this cycle and on which date.
func (s *Scheduler) targetDate(rule *models.RecurringRule, transactions []models.Transaction, today time.Time) (time.Time, bool) {
	start, err := time.Parse(dateutils.LayoutISO, rule.StartDate)
	if err != nil {
		s.logger.Warn("Skipping rule with unparseable start date",
			logging.F(logging.FieldRule, rule.Name),
			logging.F(logging.FieldDate, rule.StartDate))
		return time.Time{}, false
	}

	switch rule.Frequency {
	case models.FrequencyMonthly:
		target, ok := dateutils.MonthAnchor(today, start.Day())
		if !ok {
			// Day does not exist this month (e.g. 31 in February); skip the
			// cycle rather than clamp.
			return time.Time{}, false
		}
		if target.After(today) {
			return time.Time{}, false
		}
		if generatedThisMonth(rule, transactions, today) {
			return time.Time{}, false
		}
		return target, true

	case models.FrequencyWeekly:
		if s.weeklyDedup && generatedThisWeek(rule, transactions, today) {
			return time.Time{}, false
		}
		return today, true

	default:
		return time.Time{}, false
	}
}

// generatedThisMonth reports whether a transaction for this rule already
// exists in today's calendar month. A match is a row in the rule's category
// whose note contains the rule's name; the containment check is approximate
// and shared with the weekly variant.
func generatedThisMonth(rule *models.RecurringRule, transactions []models.Transaction, today time.Time) bool {
	for i := range transactions {
		t := &transactions[i]
		if !matchesRule(rule, t) {
			continue
		}
		if when, ok := t.EffectiveTime(); ok && dateutils.SameMonth(when, today) {
			return true
		}
	}
	return false
}

func generatedThisWeek(rule *models.RecurringRule, transactions []models.Transaction, today time.Time) bool {
	for i := range transactions {
		t := &transactions[i]
		if !matchesRule(rule, t) {
			continue
		}
		if when, ok := t.EffectiveTime(); ok && dateutils.SameISOWeek(when, today) {
			return true
		}
	}
	return false
}

func matchesRule(rule *models.RecurringRule, t *models.Transaction) bool {
	return t.Category == rule.Category && strings.Contains(t.Note, rule.Name)
}
