package models

import "github.com/shopspring/decimal"

// ReceivableStatus is the lifecycle state of money lent to a third party.
type ReceivableStatus string

const (
	// ReceivableOutstanding means the debt has not been repaid.
	ReceivableOutstanding ReceivableStatus = "Belum Lunas"
	// ReceivableRepaid is terminal.
	ReceivableRepaid ReceivableStatus = "Lunas"
)

// Receivable records money lent to a third party. Every Outstanding receivable
// has exactly one mirrored Piutang expense in the transaction ledger, created
// at the same moment; repayment mirrors a Piutang Kembali income.
type Receivable struct {
	ID         string
	Date       string // YYYY-MM-DD, when the money was lent
	Debtor     string
	Amount     decimal.Decimal
	Note       string
	Status     ReceivableStatus
	DueDate    string
	RepaidDate string
}

// IsOutstanding reports whether the debt is still open.
func (r *Receivable) IsOutstanding() bool {
	return r.Status == ReceivableOutstanding
}
