// Package mailer delivers transactional mail: OTP codes and complaint
// resolution notices. The Sender interface keeps SMTP out of tests.
package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"campus-complaint-backend/config"
)

// Sender delivers a single HTML mail.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// SMTPSender is the real Sender backed by gomail.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender builds a sender from the SMTP config.
func NewSMTPSender(cfg *config.SMTPConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send dials the SMTP server and delivers the message.
func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return s.dialer.DialAndSend(m)
}

// OTPBody renders the verification / password-reset mail.
func OTPBody(otp string, ttlMinutes int) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #4a5568;">Campus Complaint System</h2>
  <p>Your one-time verification code is:</p>
  <h1 style="color: #3182ce; text-align: center;">%s</h1>
  <p>This code is valid for %d minutes.</p>
  <p style="color: #718096;">If you didn't request this, please ignore this email.</p>
</div>`, otp, ttlMinutes)
}

// ResolutionBody renders the "your complaint was resolved" mail.
func ResolutionBody(token, remarks string) string {
	body := fmt.Sprintf(`<h3>Complaint Resolved</h3>
<p>Your complaint with token <strong>%s</strong> has been marked as resolved.</p>`, token)
	if remarks != "" {
		body += fmt.Sprintf("<p><strong>Remarks:</strong> %s</p>", remarks)
	}
	body += "<p>Thank you for using the complaint system.</p>"
	return body
}
