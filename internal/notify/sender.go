package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// SMTPSender delivers messages through an SMTP server with PLAIN auth.
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (s SMTPSender) Send(ctx context.Context, m Message) error {
	addr := net.JoinHostPort(s.Host, strconv.Itoa(s.Port))

	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, s.From, []string{m.Recipient}, s.render(m))
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("sending mail to %s: %w", m.Recipient, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s SMTPSender) render(m Message) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", s.From)
	fmt.Fprintf(&b, "To: %s\r\n", m.Recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", m.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(m.Body, "\n", "\r\n"))

	return []byte(b.String())
}

// LogSender writes messages to the log instead of sending them. It is used
// when no SMTP server is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, m Message) error {
	log.Info().
		Str("kind", string(m.Kind)).
		Str("recipient", m.Recipient).
		Str("subject", m.Subject).
		Msg(m.Body)

	return nil
}
