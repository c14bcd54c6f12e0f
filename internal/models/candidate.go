package models

import "github.com/shopspring/decimal"

// ImportCandidate is a transaction proposed by the email ingestor, awaiting
// review before it enters the ledger. Candidates with a zero amount are
// discarded by the ingestor and never surfaced.
type ImportCandidate struct {
	Date      string
	Direction Direction
	Category  string
	Amount    decimal.Decimal
	Note      string
	Subject   string
}

// Transaction converts an accepted candidate into a ledger transaction.
// Imported rows are always Cleared and settle on their own date.
func (c *ImportCandidate) Transaction() Transaction {
	return Transaction{
		Date:        c.Date,
		Direction:   c.Direction,
		Category:    c.Category,
		Amount:      c.Amount,
		Note:        c.Note,
		Status:      StatusCleared,
		SettledDate: c.Date,
		Source:      SourceBank,
	}
}
