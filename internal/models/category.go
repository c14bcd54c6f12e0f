package models

import "github.com/shopspring/decimal"

// CategoryConfig maps counterparty keywords to a category name. Loaded from
// the categories YAML file and used to refine imported candidates.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig is the top-level structure of the categories YAML file.
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}

// BudgetTarget is a per-category monthly spending cap. Progress is derived
// from the current month's active expenses, never stored.
type BudgetTarget struct {
	ID       string
	Category string
	Target   decimal.Decimal
}
