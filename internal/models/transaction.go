// Package models provides the data structures used throughout the application.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates whether a transaction moves money out or in.
type Direction string

const (
	// DirectionExpense is an outgoing transaction.
	DirectionExpense Direction = "Pengeluaran"
	// DirectionIncome is an incoming transaction.
	DirectionIncome Direction = "Pemasukan"
)

// Status indicates whether a transaction has cleared against a balance.
type Status string

const (
	// StatusCleared means the transaction counts toward balances.
	StatusCleared Status = "Cleared"
	// StatusPending means the transaction is recorded but not yet settled.
	// Only meaningful for Scheduled Settlement transactions.
	StatusPending Status = "Pending"
)

// Source identifies the cash pool a transaction draws from.
type Source string

const (
	// SourceBank is the institutional balance.
	SourceBank Source = "Bank"
	// SourceCash is the physical cash pool.
	SourceCash Source = "Cash"
)

// Reserved categories with special handling in the ledger.
const (
	// CategoryScheduledSettlement marks deferred payments. While Pending they
	// contribute to no balance or window; once Cleared they are bucketed by
	// their settled date instead of their entry date.
	CategoryScheduledSettlement = "Scheduled Settlement"

	// CategoryReceivable is the mirrored expense created when money is lent.
	CategoryReceivable = "Piutang"
	// CategoryReceivableRepaid is the mirrored income created on repayment.
	CategoryReceivableRepaid = "Piutang Kembali"

	// CategoryCashWithdrawal is used for the paired ATM-withdrawal entries.
	CategoryCashWithdrawal = "Tarik Tunai"

	// CategoryOther is the default category for imported candidates.
	CategoryOther = "Lainnya"
)

// Transaction is the atomic ledger event. Dates are ISO strings (YYYY-MM-DD);
// empty strings mean "not set". Amounts are whole rupiah.
type Transaction struct {
	ID          string          `csv:"-"`
	Date        string          `csv:"Tanggal"`
	Direction   Direction       `csv:"Tipe"`
	Category    string          `csv:"Kategori"`
	Amount      decimal.Decimal `csv:"Nominal"`
	Note        string          `csv:"Catatan"`
	Status      Status          `csv:"Status"`
	DueDate     string          `csv:"Tenggat_Waktu"`
	SettledDate string          `csv:"Tanggal_Bayar"`
	Source      Source          `csv:"Sumber"`
}

// EffectiveSource resolves the cash pool for this transaction.
// Rows written before source tracking existed have no source; they are Bank.
func (t *Transaction) EffectiveSource() Source {
	if t.Source == SourceCash {
		return SourceCash
	}
	return SourceBank
}

// IsPendingSettlement reports whether this is a Scheduled Settlement that has
// not cleared yet. Such transactions are excluded from every aggregate.
func (t *Transaction) IsPendingSettlement() bool {
	return t.Category == CategoryScheduledSettlement && t.Status == StatusPending
}

// IsActiveExpense reports whether this transaction counts toward the
// active-expense aggregate.
func (t *Transaction) IsActiveExpense() bool {
	return t.Direction == DirectionExpense && !t.IsPendingSettlement()
}

// EffectiveDate is the date used for all time bucketing: the settled date for
// cleared Scheduled Settlements that carry one, the entry date otherwise.
func (t *Transaction) EffectiveDate() string {
	if t.Category == CategoryScheduledSettlement && t.Status == StatusCleared &&
		strings.TrimSpace(t.SettledDate) != "" {
		return t.SettledDate
	}
	return t.Date
}

// EffectiveTime parses EffectiveDate. The second return value is false when
// the date is absent or unparseable; callers skip such rows from windows.
func (t *Transaction) EffectiveTime() (time.Time, bool) {
	d := strings.TrimSpace(t.EffectiveDate())
	if d == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse("2006-01-02", d)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
