package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rygrffth/cashflow/internal/models"
)

func (s *SQLiteStore) ListRecurringRules(ctx context.Context) ([]models.RecurringRule, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, nama, kategori, nominal, tanggal_mulai, frekuensi, aktif, catatan
		 FROM recurring_rules ORDER BY nama, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring rules: %w", err)
	}
	defer rows.Close()

	var out []models.RecurringRule
	for rows.Next() {
		var r models.RecurringRule
		var amount int64
		if err := rows.Scan(&r.ID, &r.Name, &r.Category, &amount,
			&r.StartDate, &r.Frequency, &r.Active, &r.Note); err != nil {
			return nil, fmt.Errorf("failed to scan recurring rule: %w", err)
		}
		r.Amount = decimal.NewFromInt(amount)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) InsertRecurringRule(ctx context.Context, r *models.RecurringRule) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO recurring_rules (id, nama, kategori, nominal, tanggal_mulai, frekuensi, aktif, catatan)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.Category, r.Amount.IntPart(), r.StartDate, r.Frequency, r.Active, r.Note)
	if err != nil {
		return fmt.Errorf("failed to insert recurring rule: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SetRecurringRuleActive(ctx context.Context, id string, active bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE recurring_rules SET aktif = ? WHERE id = ?`, active, id)
	if err != nil {
		return fmt.Errorf("failed to update recurring rule: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update recurring rule: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("recurring rule not found: %s", id)
	}
	return nil
}
