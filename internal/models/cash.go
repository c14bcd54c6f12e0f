package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashEvent records one mutation of the physical cash pool. The pool is
// event-sourced: each event stores the new absolute value, and the current
// value is the most recent event. The history doubles as the audit trail.
type CashEvent struct {
	ID        string
	Value     decimal.Decimal // absolute value after the mutation
	Date      string          // YYYY-MM-DD
	Note      string
	CreatedAt time.Time
}
