package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rygrffth/cashflow/internal/models"
)

const savingsGoalColumns = `id, nama, target_nominal, nominal_terkumpul, tanggal_mulai, tanggal_target, kategori, prioritas, catatan, status`

func scanSavingsGoal(scan func(dest ...any) error) (*models.SavingsGoal, error) {
	g := &models.SavingsGoal{}
	var target, collected int64
	err := scan(&g.ID, &g.Name, &target, &collected, &g.StartDate,
		&g.TargetDate, &g.Category, &g.Priority, &g.Note, &g.Status)
	if err != nil {
		return nil, err
	}
	g.Target = decimal.NewFromInt(target)
	g.Collected = decimal.NewFromInt(collected)
	return g, nil
}

func (s *SQLiteStore) ListSavingsGoals(ctx context.Context) ([]models.SavingsGoal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+savingsGoalColumns+` FROM savings_goals ORDER BY prioritas, nama, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list savings goals: %w", err)
	}
	defer rows.Close()

	var out []models.SavingsGoal
	for rows.Next() {
		g, err := scanSavingsGoal(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan savings goal: %w", err)
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetSavingsGoal(ctx context.Context, id string) (*models.SavingsGoal, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+savingsGoalColumns+` FROM savings_goals WHERE id = ?`, id)
	g, err := scanSavingsGoal(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("savings goal not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get savings goal: %w", err)
	}
	return g, nil
}

func (s *SQLiteStore) InsertSavingsGoal(ctx context.Context, g *models.SavingsGoal) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.Status == "" {
		g.Status = models.GoalActive
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO savings_goals (`+savingsGoalColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.Target.IntPart(), g.Collected.IntPart(), g.StartDate,
		g.TargetDate, g.Category, g.Priority, g.Note, g.Status)
	if err != nil {
		return fmt.Errorf("failed to insert savings goal: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpdateSavingsGoal(ctx context.Context, g *models.SavingsGoal) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE savings_goals
		 SET nama = ?, target_nominal = ?, nominal_terkumpul = ?, tanggal_mulai = ?,
		     tanggal_target = ?, kategori = ?, prioritas = ?, catatan = ?, status = ?
		 WHERE id = ?`,
		g.Name, g.Target.IntPart(), g.Collected.IntPart(), g.StartDate,
		g.TargetDate, g.Category, g.Priority, g.Note, g.Status, g.ID)
	if err != nil {
		return fmt.Errorf("failed to update savings goal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update savings goal: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("savings goal not found: %s", g.ID)
	}
	return nil
}

// DeleteSavingsGoal removes a goal together with its history rows via the
// ON DELETE CASCADE foreign key.
func (s *SQLiteStore) DeleteSavingsGoal(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM savings_goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete savings goal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete savings goal: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("savings goal not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) AppendSavingsHistory(ctx context.Context, e *models.SavingsEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO savings_history (id, goal_id, tanggal, nominal, tipe, catatan)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.GoalID, e.Date, e.Amount.IntPart(), e.Type, e.Note)
	if err != nil {
		return fmt.Errorf("failed to append savings history: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListSavingsHistory(ctx context.Context, goalID string) ([]models.SavingsEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, goal_id, tanggal, nominal, tipe, catatan
		 FROM savings_history WHERE goal_id = ? ORDER BY tanggal, id`, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list savings history: %w", err)
	}
	defer rows.Close()

	var out []models.SavingsEntry
	for rows.Next() {
		var e models.SavingsEntry
		var amount int64
		if err := rows.Scan(&e.ID, &e.GoalID, &e.Date, &amount, &e.Type, &e.Note); err != nil {
			return nil, fmt.Errorf("failed to scan savings history: %w", err)
		}
		e.Amount = decimal.NewFromInt(amount)
		out = append(out, e)
	}
	return out, rows.Err()
}
