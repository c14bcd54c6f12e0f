package sqlite

import (
	"database/sql"
	"fmt"
)

// migrations run in order on every open; each statement is idempotent.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		tanggal TEXT NOT NULL,
		tipe TEXT NOT NULL,
		kategori TEXT NOT NULL,
		nominal INTEGER NOT NULL,
		catatan TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Cleared',
		tenggat_waktu TEXT NOT NULL DEFAULT '',
		tanggal_bayar TEXT NOT NULL DEFAULT '',
		sumber TEXT NOT NULL DEFAULT 'Bank'
	)`,
	`CREATE TABLE IF NOT EXISTS receivables (
		id TEXT PRIMARY KEY,
		tanggal TEXT NOT NULL,
		nama TEXT NOT NULL,
		nominal INTEGER NOT NULL,
		catatan TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Belum Lunas',
		tenggat TEXT NOT NULL DEFAULT '',
		tanggal_lunas TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS recurring_rules (
		id TEXT PRIMARY KEY,
		nama TEXT NOT NULL,
		kategori TEXT NOT NULL,
		nominal INTEGER NOT NULL,
		tanggal_mulai TEXT NOT NULL,
		frekuensi TEXT NOT NULL,
		aktif INTEGER NOT NULL DEFAULT 1,
		catatan TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS savings_goals (
		id TEXT PRIMARY KEY,
		nama TEXT NOT NULL,
		target_nominal INTEGER NOT NULL,
		nominal_terkumpul INTEGER NOT NULL DEFAULT 0,
		tanggal_mulai TEXT NOT NULL DEFAULT '',
		tanggal_target TEXT NOT NULL DEFAULT '',
		kategori TEXT NOT NULL DEFAULT '',
		prioritas INTEGER NOT NULL DEFAULT 3,
		catatan TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Aktif'
	)`,
	`CREATE TABLE IF NOT EXISTS savings_history (
		id TEXT PRIMARY KEY,
		goal_id TEXT NOT NULL REFERENCES savings_goals(id) ON DELETE CASCADE,
		tanggal TEXT NOT NULL,
		nominal INTEGER NOT NULL,
		tipe TEXT NOT NULL,
		catatan TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS cash_events (
		id TEXT PRIMARY KEY,
		nominal INTEGER NOT NULL,
		tanggal TEXT NOT NULL,
		catatan TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS budget_targets (
		id TEXT PRIMARY KEY,
		kategori TEXT NOT NULL UNIQUE,
		target INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_tanggal ON transactions(tanggal)`,
	`CREATE INDEX IF NOT EXISTS idx_savings_history_goal ON savings_history(goal_id)`,
}

func runMigrations(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
