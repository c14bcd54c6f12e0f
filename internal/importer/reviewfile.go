package importer

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rygrffth/cashflow/internal/models"
)

// reviewEntry is one candidate as stored in the review file. Amounts are
// plain whole-rupiah integers so the file stays hand-editable.
type reviewEntry struct {
	Date      string `yaml:"date"`
	Direction string `yaml:"direction"`
	Category  string `yaml:"category"`
	Amount    int64  `yaml:"amount"`
	Note      string `yaml:"note"`
	Subject   string `yaml:"subject,omitempty"`
}

// reviewFile is the YAML document written between fetch and import. The user
// may edit categories, notes or remove entries before committing.
type reviewFile struct {
	Candidates []reviewEntry `yaml:"candidates"`
}

// WriteReviewFile serializes fetched candidates for manual review.
func WriteReviewFile(path string, candidates []models.ImportCandidate) error {
	rf := reviewFile{Candidates: make([]reviewEntry, 0, len(candidates))}
	for _, c := range candidates {
		rf.Candidates = append(rf.Candidates, reviewEntry{
			Date:      c.Date,
			Direction: string(c.Direction),
			Category:  c.Category,
			Amount:    c.Amount.IntPart(),
			Note:      c.Note,
			Subject:   c.Subject,
		})
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("failed to serialize review file: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write review file: %w", err)
	}
	return nil
}

// ReadReviewFile loads a possibly hand-edited review file.
func ReadReviewFile(path string) ([]models.ImportCandidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read review file: %w", err)
	}
	var rf reviewFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse review file: %w", err)
	}

	candidates := make([]models.ImportCandidate, 0, len(rf.Candidates))
	for _, e := range rf.Candidates {
		candidates = append(candidates, models.ImportCandidate{
			Date:      e.Date,
			Direction: models.Direction(e.Direction),
			Category:  e.Category,
			Amount:    decimal.NewFromInt(e.Amount),
			Note:      e.Note,
			Subject:   e.Subject,
		})
	}
	return candidates, nil
}
