package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveSourceDefaultsToBank(t *testing.T) {
	assert.Equal(t, SourceBank, (&Transaction{}).EffectiveSource(),
		"rows written before source tracking are Bank")
	assert.Equal(t, SourceBank, (&Transaction{Source: SourceBank}).EffectiveSource())
	assert.Equal(t, SourceCash, (&Transaction{Source: SourceCash}).EffectiveSource())
}

func TestPendingSettlementClassification(t *testing.T) {
	pending := &Transaction{
		Direction: DirectionExpense,
		Category:  CategoryScheduledSettlement,
		Status:    StatusPending,
	}
	assert.True(t, pending.IsPendingSettlement())
	assert.False(t, pending.IsActiveExpense())

	cleared := &Transaction{
		Direction: DirectionExpense,
		Category:  CategoryScheduledSettlement,
		Status:    StatusCleared,
	}
	assert.False(t, cleared.IsPendingSettlement())
	assert.True(t, cleared.IsActiveExpense())

	// Pending status is only meaningful for scheduled settlements.
	ordinary := &Transaction{
		Direction: DirectionExpense,
		Category:  "Makanan",
		Status:    StatusPending,
	}
	assert.True(t, ordinary.IsActiveExpense())
}

func TestEffectiveDate(t *testing.T) {
	settled := &Transaction{
		Date:        "2025-07-15",
		Category:    CategoryScheduledSettlement,
		Status:      StatusCleared,
		SettledDate: "2025-08-20",
	}
	assert.Equal(t, "2025-08-20", settled.EffectiveDate(),
		"cleared settlements bucket at their settled date")

	noSettled := &Transaction{
		Date:     "2025-07-15",
		Category: CategoryScheduledSettlement,
		Status:   StatusCleared,
	}
	assert.Equal(t, "2025-07-15", noSettled.EffectiveDate())

	ordinary := &Transaction{Date: "2025-07-15", SettledDate: "2025-08-20"}
	assert.Equal(t, "2025-07-15", ordinary.EffectiveDate(),
		"settled date only matters for scheduled settlements")
}

func TestEffectiveTime(t *testing.T) {
	tx := &Transaction{Date: "2025-08-20"}
	when, ok := tx.EffectiveTime()
	assert.True(t, ok)
	assert.Equal(t, 2025, when.Year())

	_, ok = (&Transaction{Date: ""}).EffectiveTime()
	assert.False(t, ok)

	_, ok = (&Transaction{Date: "besok"}).EffectiveTime()
	assert.False(t, ok)
}
