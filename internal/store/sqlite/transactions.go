package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rygrffth/cashflow/internal/models"
)

// ListTransactions returns every ledger transaction, oldest first.
func (s *SQLiteStore) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tanggal, tipe, kategori, nominal, catatan, status, tenggat_waktu, tanggal_bayar, sumber
		 FROM transactions ORDER BY tanggal, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var t models.Transaction
		var amount int64
		if err := rows.Scan(&t.ID, &t.Date, &t.Direction, &t.Category, &amount,
			&t.Note, &t.Status, &t.DueDate, &t.SettledDate, &t.Source); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Amount = decimal.NewFromInt(amount)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	t := &models.Transaction{}
	var amount int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, tanggal, tipe, kategori, nominal, catatan, status, tenggat_waktu, tanggal_bayar, sumber
		 FROM transactions WHERE id = ?`, id).
		Scan(&t.ID, &t.Date, &t.Direction, &t.Category, &amount,
			&t.Note, &t.Status, &t.DueDate, &t.SettledDate, &t.Source)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("transaction not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	t.Amount = decimal.NewFromInt(amount)
	return t, nil
}

// InsertTransaction persists a new transaction, assigning an ID when unset.
func (s *SQLiteStore) InsertTransaction(ctx context.Context, t *models.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Source == "" {
		t.Source = models.SourceBank
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, tanggal, tipe, kategori, nominal, catatan, status, tenggat_waktu, tanggal_bayar, sumber)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Date, t.Direction, t.Category, t.Amount.IntPart(),
		t.Note, t.Status, t.DueDate, t.SettledDate, t.Source)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// UpdateTransaction rewrites an existing transaction row.
func (s *SQLiteStore) UpdateTransaction(ctx context.Context, t *models.Transaction) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions
		 SET tanggal = ?, tipe = ?, kategori = ?, nominal = ?, catatan = ?, status = ?, tenggat_waktu = ?, tanggal_bayar = ?, sumber = ?
		 WHERE id = ?`,
		t.Date, t.Direction, t.Category, t.Amount.IntPart(),
		t.Note, t.Status, t.DueDate, t.SettledDate, t.Source, t.ID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("transaction not found: %s", t.ID)
	}
	return nil
}
