// Package mailer sends account lifecycle notifications. Delivery is best
// effort: callers log failures and continue.
package mailer

import (
	"fmt"
	"log"
	"net/smtp"
)

type Mailer interface {
	SendApprovalNotice(to, fullName string) error
	SendRejectionNotice(to, fullName, reason string) error
}

type SMTPMailer struct {
	host string
	port int
	from string
	auth smtp.Auth
}

func NewSMTP(host string, port int, from, username, password string) *SMTPMailer {
	m := &SMTPMailer{host: host, port: port, from: from}
	if username != "" {
		m.auth = smtp.PlainAuth("", username, password, host)
	}
	return m
}

func (m *SMTPMailer) SendApprovalNotice(to, fullName string) error {
	body := fmt.Sprintf("Hello %s,\r\n\r\nYour administrator account has been approved. You can now sign in.\r\n", fullName)
	return m.send(to, "Account approved", body)
}

func (m *SMTPMailer) SendRejectionNotice(to, fullName, reason string) error {
	body := fmt.Sprintf("Hello %s,\r\n\r\nYour administrator account request was rejected.\r\nReason: %s\r\n", fullName, reason)
	return m.send(to, "Account request rejected", body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, body)
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	return smtp.SendMail(addr, m.auth, m.from, []string{to}, []byte(msg))
}

// NoopMailer logs instead of sending. Used when SMTP is not configured.
type NoopMailer struct{}

func (NoopMailer) SendApprovalNotice(to, fullName string) error {
	log.Printf("mailer disabled, skipping approval notice to %s", to)
	return nil
}

func (NoopMailer) SendRejectionNotice(to, fullName, reason string) error {
	log.Printf("mailer disabled, skipping rejection notice to %s", to)
	return nil
}
