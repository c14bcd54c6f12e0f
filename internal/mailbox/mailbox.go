// Package mailbox abstracts the email account bank notifications are read
// from.
package mailbox

// Message is one fetched notification. Body is the plain-text part when the
// message carries one; otherwise the raw HTML part with IsHTML set, left for
// the caller to strip.
type Message struct {
	Subject string
	Body    string
	IsHTML  bool
}

// Mailbox opens authenticated sessions against a mail server. Connecting is
// the only fallible setup step; a connection or authentication failure means
// no session and no partial results.
type Mailbox interface {
	Connect() (Session, error)
}

// Session is one authenticated connection to the inbox.
type Session interface {
	// SearchBySender returns the ids of messages from the given address,
	// oldest first.
	SearchBySender(sender string) ([]uint32, error)
	// FetchMessage retrieves and decodes one message.
	FetchMessage(id uint32) (*Message, error)
	Close() error
}
