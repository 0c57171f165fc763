// Package mailer delivers transactional mail over SMTP.
package mailer

import (
	"fmt"
	"net/smtp"
)

// Config holds the SMTP relay settings.
type Config struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// Mailer sends plain-text mail through a single SMTP relay.
type Mailer struct {
	cfg Config
}

// New creates a mailer.
func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send delivers one plain-text message.
func (m *Mailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.cfg.From, to, subject, body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// SendResetCode mails a password reset verification code.
func (m *Mailer) SendResetCode(to, code string) error {
	body := fmt.Sprintf("Your verification code is: %s\n\nThis code will expire in 10 minutes.\n\nIf you did not request a password reset, please ignore this email.", code)
	return m.Send(to, "Password Reset Code", body)
}
