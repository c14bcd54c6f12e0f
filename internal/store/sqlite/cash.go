package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rygrffth/cashflow/internal/models"
)

// CashPoolValue returns the value carried by the most recent cash event,
// or zero when the pool has never been set.
func (s *SQLiteStore) CashPoolValue(ctx context.Context) (decimal.Decimal, error) {
	var value int64
	err := s.db.QueryRowContext(ctx,
		`SELECT nominal FROM cash_events ORDER BY created_at DESC, id DESC LIMIT 1`).
		Scan(&value)
	if err == sql.ErrNoRows {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read cash pool: %w", err)
	}
	return decimal.NewFromInt(value), nil
}

func (s *SQLiteStore) AppendCashEvent(ctx context.Context, e *models.CashEvent) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cash_events (id, nominal, tanggal, catatan, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Value.IntPart(), e.Date, e.Note, e.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to append cash event: %w", err)
	}
	return nil
}

// ListCashEvents returns the newest events first, at most limit rows.
// A non-positive limit returns the full history.
func (s *SQLiteStore) ListCashEvents(ctx context.Context, limit int) ([]models.CashEvent, error) {
	query := `SELECT id, nominal, tanggal, catatan, created_at
		 FROM cash_events ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash events: %w", err)
	}
	defer rows.Close()

	var out []models.CashEvent
	for rows.Next() {
		var e models.CashEvent
		var value, created int64
		if err := rows.Scan(&e.ID, &value, &e.Date, &e.Note, &created); err != nil {
			return nil, fmt.Errorf("failed to scan cash event: %w", err)
		}
		e.Value = decimal.NewFromInt(value)
		e.CreatedAt = time.Unix(0, created)
		out = append(out, e)
	}
	return out, rows.Err()
}
