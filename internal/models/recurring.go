package models

import "github.com/shopspring/decimal"

// Frequency controls how often a recurring rule fires.
type Frequency string

const (
	// FrequencyMonthly fires once per calendar month on the start date's day.
	FrequencyMonthly Frequency = "Bulanan"
	// FrequencyWeekly fires on every evaluation. See recurring.Scheduler for
	// the optional per-ISO-week dedup.
	FrequencyWeekly Frequency = "Mingguan"
)

// RecurringRule is a template for automatically generated expenses.
type RecurringRule struct {
	ID        string
	Name      string
	Category  string
	Amount    decimal.Decimal
	StartDate string // YYYY-MM-DD; its day-of-month anchors Monthly rules
	Frequency Frequency
	Active    bool
	Note      string
}
