package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rygrffth/cashflow/internal/models"
)

func (s *SQLiteStore) ListReceivables(ctx context.Context) ([]models.Receivable, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tanggal, nama, nominal, catatan, status, tenggat, tanggal_lunas
		 FROM receivables ORDER BY tanggal, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list receivables: %w", err)
	}
	defer rows.Close()

	var out []models.Receivable
	for rows.Next() {
		var r models.Receivable
		var amount int64
		if err := rows.Scan(&r.ID, &r.Date, &r.Debtor, &amount, &r.Note,
			&r.Status, &r.DueDate, &r.RepaidDate); err != nil {
			return nil, fmt.Errorf("failed to scan receivable: %w", err)
		}
		r.Amount = decimal.NewFromInt(amount)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetReceivable(ctx context.Context, id string) (*models.Receivable, error) {
	r := &models.Receivable{}
	var amount int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, tanggal, nama, nominal, catatan, status, tenggat, tanggal_lunas
		 FROM receivables WHERE id = ?`, id).
		Scan(&r.ID, &r.Date, &r.Debtor, &amount, &r.Note, &r.Status, &r.DueDate, &r.RepaidDate)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("receivable not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receivable: %w", err)
	}
	r.Amount = decimal.NewFromInt(amount)
	return r, nil
}

func (s *SQLiteStore) InsertReceivable(ctx context.Context, r *models.Receivable) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO receivables (id, tanggal, nama, nominal, catatan, status, tenggat, tanggal_lunas)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Date, r.Debtor, r.Amount.IntPart(), r.Note, r.Status, r.DueDate, r.RepaidDate)
	if err != nil {
		return fmt.Errorf("failed to insert receivable: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpdateReceivable(ctx context.Context, r *models.Receivable) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE receivables
		 SET tanggal = ?, nama = ?, nominal = ?, catatan = ?, status = ?, tenggat = ?, tanggal_lunas = ?
		 WHERE id = ?`,
		r.Date, r.Debtor, r.Amount.IntPart(), r.Note, r.Status, r.DueDate, r.RepaidDate, r.ID)
	if err != nil {
		return fmt.Errorf("failed to update receivable: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update receivable: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("receivable not found: %s", r.ID)
	}
	return nil
}
