package outreach

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends outreach mail through the configured SMTP relay.
type Mailer struct {
	Host     string
	Port     int
	From     string
	Password string
}

func (m Mailer) Ready() bool {
	return m.Host != "" && m.Port != 0 && m.From != ""
}

func (m Mailer) Send(to, subject, body string) error {
	if !m.Ready() {
		return errors.New("smtp is not configured")
	}
	if strings.TrimSpace(to) == "" {
		return errors.New("recipient is empty")
	}

	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)

	msg := strings.Builder{}
	fmt.Fprintf(&msg, "From: %s\r\n", m.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", sanitizeHeader(subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	return smtp.SendMail(addr, auth, m.From, []string{to}, []byte(msg.String()))
}

func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
