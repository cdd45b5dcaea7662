// Package mail delivers transactional email. The server only ever sends the
// registration OTP, so the interface is a single Send call.
package mail

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// Mailer sends a plain-text email.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends through a plain-auth SMTP relay (Gmail app passwords in
// the original deployment).
type SMTPMailer struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

var _ Mailer = (*SMTPMailer)(nil)

func (m *SMTPMailer) Send(to, subject, body string) error {
	if m.Host == "" || m.Port == "" || m.User == "" || m.Pass == "" {
		return fmt.Errorf("smtp not configured")
	}

	from := m.From
	if from == "" {
		from = m.User
	}

	msg := "From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body + "\r\n"

	auth := smtp.PlainAuth("", m.User, m.Pass, m.Host)
	return smtp.SendMail(m.Host+":"+m.Port, auth, from, []string{to}, []byte(msg))
}

// LogMailer logs instead of sending. Used in development when SMTP is not
// configured, so the OTP still shows up somewhere usable.
type LogMailer struct {
	Log *zap.Logger
}

var _ Mailer = (*LogMailer)(nil)

func (m *LogMailer) Send(to, subject, body string) error {
	m.Log.Info("mail not configured, logging instead",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
