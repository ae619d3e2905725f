package mailer

import (
	"fmt"
	"net/smtp"

	"gig-marketplace/backend/internal/config"
	"gig-marketplace/backend/internal/models"
)

// Sender delivers one-time codes to users. The worker consumes it; tests
// substitute a recording fake.
type Sender interface {
	SendOTP(to, code, purpose string) error
}

type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
	}
}

func (m *SMTPMailer) SendOTP(to, code, purpose string) error {
	subject := "Verify your email"
	intro := "Use this code to verify your email address."
	switch purpose {
	case models.OTPPurposePasswordReset:
		subject = "Reset your password"
		intro = "Use this code to reset your password."
	case models.OTPPurposeEmailChange:
		subject = "Confirm your new email"
		intro = "Use this code to confirm your email change."
	}

	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n\r\nYour code: %s\r\nIt expires in 10 minutes.\r\n",
		m.from, to, subject, intro, code)

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	addr := m.host + ":" + m.port

	if err := smtp.SendMail(addr, auth, m.username, []string{to}, []byte(body)); err != nil {
		return fmt.Errorf("failed to send OTP email to %s: %w", to, err)
	}
	return nil
}
