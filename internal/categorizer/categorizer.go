// Package categorizer refines imported candidates by matching counterparty
// keywords against a user-maintained category file.
package categorizer

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rygrffth/cashflow/internal/logging"
	"github.com/rygrffth/cashflow/internal/models"
)

// Categorizer maps note keywords to category names. Matching is
// case-insensitive substring containment, first configured category wins.
type Categorizer struct {
	categories []models.CategoryConfig
	logger     logging.Logger
}

// New builds a categorizer from an already-loaded config.
func New(cfg *models.CategoriesConfig, logger logging.Logger) *Categorizer {
	return &Categorizer{categories: cfg.Categories, logger: logger}
}

// LoadFile reads the categories YAML file. A missing file is not an error;
// it yields an empty categorizer that leaves every candidate untouched.
func LoadFile(path string, logger logging.Logger) (*Categorizer, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Debug("No categories file, keywords disabled",
			logging.F(logging.FieldFile, path))
		return New(&models.CategoriesConfig{}, logger), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read categories file: %w", err)
	}

	var cfg models.CategoriesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse categories file: %w", err)
	}
	return New(&cfg, logger), nil
}

// Categorize returns the category for a note, or "" when no keyword matches.
func (c *Categorizer) Categorize(note string) string {
	lower := strings.ToLower(note)
	for _, cat := range c.categories {
		for _, kw := range cat.Keywords {
			if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
				return cat.Name
			}
		}
	}
	return ""
}

// Apply rewrites the category of candidates still carrying the default one.
// Hand-edited categories are left alone.
func (c *Categorizer) Apply(candidates []models.ImportCandidate) {
	for i := range candidates {
		if candidates[i].Category != models.CategoryOther {
			continue
		}
		if match := c.Categorize(candidates[i].Note); match != "" {
			candidates[i].Category = match
		}
	}
}
