// Package importer commits reviewed candidates into the ledger, skipping
// rows that already exist.
package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rygrffth/cashflow/internal/logging"
	"github.com/rygrffth/cashflow/internal/models"
	"github.com/rygrffth/cashflow/internal/store"
)

// notePrefixLen is how much of the candidate note participates in duplicate
// detection.
const notePrefixLen = 20

// NoteLooselyMatches reports whether an existing note is considered the same
// as a candidate note: the existing note must contain the candidate's first
// 20 characters, case-sensitively. This is a deliberate approximation; see
// the tests for the false-positive and false-negative shapes it allows.
func NoteLooselyMatches(existing, candidate string) bool {
	prefix := candidate
	if len(prefix) > notePrefixLen {
		prefix = prefix[:notePrefixLen]
	}
	return strings.Contains(existing, prefix)
}

// IsDuplicate reports whether a candidate is already present in the stored
// transactions: identical amount, identical date string and a loosely
// matching note.
func IsDuplicate(c *models.ImportCandidate, existing []models.Transaction) bool {
	for i := range existing {
		t := &existing[i]
		if t.Amount.Equal(c.Amount) && t.Date == c.Date && NoteLooselyMatches(t.Note, c.Note) {
			return true
		}
	}
	return false
}

// Importer writes reviewed candidates to the store.
type Importer struct {
	store  store.Store
	logger logging.Logger
}

// NewImporter builds an importer.
func NewImporter(s store.Store, logger logging.Logger) *Importer {
	return &Importer{store: s, logger: logger}
}

// Result summarizes one import batch.
type Result struct {
	Inserted int
	Skipped  int
}

// Import commits candidates, silently skipping duplicates. Re-running the
// same batch inserts zero rows. Newly inserted rows join the duplicate
// baseline, so a batch that repeats a candidate inserts it once.
func (imp *Importer) Import(ctx context.Context, candidates []models.ImportCandidate) (Result, error) {
	existing, err := imp.store.ListTransactions(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load transactions: %w", err)
	}

	var res Result
	for i := range candidates {
		c := &candidates[i]
		if IsDuplicate(c, existing) {
			res.Skipped++
			imp.logger.Debug("Skipping duplicate candidate",
				logging.F(logging.FieldDate, c.Date),
				logging.F(logging.FieldAmount, c.Amount.String()))
			continue
		}

		tx := c.Transaction()
		if err := imp.store.InsertTransaction(ctx, &tx); err != nil {
			return res, fmt.Errorf("failed to insert imported transaction: %w", err)
		}
		existing = append(existing, tx)
		res.Inserted++
	}

	imp.logger.Info("Import finished",
		logging.F(logging.FieldCount, res.Inserted),
		logging.F("skipped", res.Skipped))
	return res, nil
}
