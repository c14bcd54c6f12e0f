package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rygrffth/cashflow/internal/models"
)

func (s *SQLiteStore) ListBudgetTargets(ctx context.Context) ([]models.BudgetTarget, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kategori, target FROM budget_targets ORDER BY kategori`)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget targets: %w", err)
	}
	defer rows.Close()

	var out []models.BudgetTarget
	for rows.Next() {
		var b models.BudgetTarget
		var target int64
		if err := rows.Scan(&b.ID, &b.Category, &target); err != nil {
			return nil, fmt.Errorf("failed to scan budget target: %w", err)
		}
		b.Target = decimal.NewFromInt(target)
		out = append(out, b)
	}
	return out, rows.Err()
}

// SetBudgetTarget creates or replaces the monthly target for a category.
func (s *SQLiteStore) SetBudgetTarget(ctx context.Context, category string, target decimal.Decimal) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budget_targets (id, kategori, target) VALUES (?, ?, ?)
		 ON CONFLICT(kategori) DO UPDATE SET target = excluded.target`,
		uuid.New().String(), category, target.IntPart())
	if err != nil {
		return fmt.Errorf("failed to set budget target: %w", err)
	}
	return nil
}
