// Package ingest fetches bank notification emails and turns them into
// transaction candidates for review.
package ingest

import (
	"time"

	"github.com/rygrffth/cashflow/internal/errs"
	"github.com/rygrffth/cashflow/internal/logging"
	"github.com/rygrffth/cashflow/internal/mailbox"
	"github.com/rygrffth/cashflow/internal/mailparser"
	"github.com/rygrffth/cashflow/internal/models"
)

// Ingestor runs the fetch pipeline: connect, search by trusted sender,
// extract candidates.
type Ingestor struct {
	mailbox mailbox.Mailbox
	logger  logging.Logger
	sender  string
	limit   int
}

// NewIngestor builds an ingestor reading from the given trusted sender,
// keeping at most limit of the most recent messages.
func NewIngestor(mb mailbox.Mailbox, logger logging.Logger, sender string, limit int) *Ingestor {
	return &Ingestor{mailbox: mb, logger: logger, sender: sender, limit: limit}
}

// Fetch connects to the mailbox and extracts candidates from the most recent
// matching messages, newest last. A connection or authentication failure
// aborts the whole fetch with no partial list. A message that fails
// extraction is skipped and the batch continues.
func (ing *Ingestor) Fetch(today time.Time) ([]models.ImportCandidate, error) {
	session, err := ing.mailbox.Connect()
	if err != nil {
		return nil, err
	}
	defer session.Close()

	ids, err := session.SearchBySender(ing.sender)
	if err != nil {
		return nil, err
	}
	if ing.limit > 0 && len(ids) > ing.limit {
		ids = ids[len(ids)-ing.limit:]
	}

	ing.logger.Info("Fetching notification messages",
		logging.F(logging.FieldSender, ing.sender),
		logging.F(logging.FieldCount, len(ids)))

	var candidates []models.ImportCandidate
	for _, id := range ids {
		msg, err := session.FetchMessage(id)
		if err != nil {
			ing.logger.WithError(&errs.ExtractionError{Field: "message", Err: err}).
				Warn("Skipping unreadable message")
			continue
		}

		body := msg.Body
		if msg.IsHTML {
			body = mailparser.HTMLToText(body)
		}

		candidate, ok := mailparser.Parse(msg.Subject, body, today)
		if !ok {
			ing.logger.WithError(&errs.ExtractionError{Subject: msg.Subject, Field: "candidate"}).
				Debug("Message yielded no candidate",
					logging.F(logging.FieldSubject, msg.Subject))
			continue
		}
		candidates = append(candidates, *candidate)
	}
	return candidates, nil
}
