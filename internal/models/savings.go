package models

import "github.com/shopspring/decimal"

// GoalStatus is the lifecycle state of a savings goal.
type GoalStatus string

const (
	// GoalActive means the goal is still being saved toward.
	GoalActive GoalStatus = "Aktif"
	// GoalCompleted is set when a deposit reaches the target. Withdrawals
	// after completion do not revert it.
	GoalCompleted GoalStatus = "Selesai"
)

// SavingsGoal is a named target with progressive contributions. Collected
// amounts are counted out of the operational float by the ledger engine.
type SavingsGoal struct {
	ID         string
	Name       string
	Target     decimal.Decimal
	Collected  decimal.Decimal
	StartDate  string
	TargetDate string
	Category   string
	Priority   int // 1 (highest) to 5
	Note       string
	Status     GoalStatus
}

// SavingsEntryType distinguishes goal history entries.
type SavingsEntryType string

const (
	// SavingsDeposit adds to a goal.
	SavingsDeposit SavingsEntryType = "Setor"
	// SavingsWithdrawal takes from a goal.
	SavingsWithdrawal SavingsEntryType = "Tarik"
)

// SavingsEntry is an audit record of a single deposit or withdrawal
// against a goal.
type SavingsEntry struct {
	ID     string
	GoalID string
	Date   string
	Amount decimal.Decimal
	Type   SavingsEntryType
	Note   string
}
