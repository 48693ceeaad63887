// Package notify delivers outbound notifications. The only implementation
// today is a logging stub; a real transport slots in behind the Mailer
// interface.
package notify

import (
	"context"
	"fmt"
	"log"
)

type Email struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, e Email) error
}

// LogMailer writes the message to the log instead of sending it.
type LogMailer struct {
	logger *log.Logger
}

func NewLogMailer(logger *log.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, e Email) error {
	if e.To == "" {
		return fmt.Errorf("email has no recipient")
	}
	if m != nil && m.logger != nil {
		m.logger.Printf("[Mail] to=%s subject=%q\n%s", e.To, e.Subject, e.Body)
	}
	return nil
}
