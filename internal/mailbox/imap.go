package mailbox

import (
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"

	"github.com/rygrffth/cashflow/internal/errs"
)

// IMAPMailbox connects to an IMAP server over TLS.
type IMAPMailbox struct {
	server   string // host:port
	username string
	password string
	timeout  time.Duration
}

var _ Mailbox = (*IMAPMailbox)(nil)

// NewIMAP builds a mailbox for the given server and credentials. timeout
// bounds the dial; zero disables the bound.
func NewIMAP(server, username, password string, timeout time.Duration) *IMAPMailbox {
	return &IMAPMailbox{
		server:   server,
		username: username,
		password: password,
		timeout:  timeout,
	}
}

// Connect dials, authenticates and selects the inbox read-only.
func (m *IMAPMailbox) Connect() (Session, error) {
	dialer := &net.Dialer{Timeout: m.timeout}
	c, err := client.DialWithDialerTLS(dialer, m.server, nil)
	if err != nil {
		return nil, &errs.ConnectionError{Target: "mailbox", Err: err}
	}

	if err := c.Login(m.username, m.password); err != nil {
		c.Logout()
		return nil, &errs.ConnectionError{Target: "mailbox", Err: fmt.Errorf("login failed: %w", err)}
	}

	if _, err := c.Select("INBOX", true); err != nil {
		c.Logout()
		return nil, &errs.ConnectionError{Target: "mailbox", Err: fmt.Errorf("failed to select inbox: %w", err)}
	}

	return &imapSession{client: c}, nil
}

type imapSession struct {
	client *client.Client
}

func (s *imapSession) SearchBySender(sender string) ([]uint32, error) {
	criteria := imap.NewSearchCriteria()
	criteria.Header.Add("From", sender)

	ids, err := s.client.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return ids, nil
}

func (s *imapSession) FetchMessage(id uint32) (*Message, error) {
	seqset := new(imap.SeqSet)
	seqset.AddNum(id)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{section.FetchItem()}

	messages := make(chan *imap.Message, 1)
	if err := s.client.Fetch(seqset, items, messages); err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}

	msg := <-messages
	if msg == nil {
		return nil, fmt.Errorf("message %d not returned by server", id)
	}
	body := msg.GetBody(section)
	if body == nil {
		return nil, fmt.Errorf("message %d has no body section", id)
	}

	return decodeMessage(body)
}

func (s *imapSession) Close() error {
	return s.client.Logout()
}

// decodeMessage walks the MIME parts, preferring text/plain over text/html.
func decodeMessage(raw io.Reader) (*Message, error) {
	mr, err := mail.CreateReader(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}

	subject, err := mr.Header.Subject()
	if err != nil {
		subject = ""
	}

	var plainBody, htmlBody string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read message part: %w", err)
		}

		inline, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, err := inline.ContentType()
		if err != nil {
			continue
		}

		switch {
		case strings.HasPrefix(contentType, "text/plain") && plainBody == "":
			data, err := io.ReadAll(part.Body)
			if err == nil {
				plainBody = string(data)
			}
		case strings.HasPrefix(contentType, "text/html") && htmlBody == "":
			data, err := io.ReadAll(part.Body)
			if err == nil {
				htmlBody = string(data)
			}
		}
	}

	if plainBody != "" {
		return &Message{Subject: subject, Body: plainBody}, nil
	}
	return &Message{Subject: subject, Body: htmlBody, IsHTML: true}, nil
}
