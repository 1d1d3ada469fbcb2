package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/WorkshopServices01/workshop-api/internal/config"
)

// EmailSender delivers over plain SMTP. Unconfigured (empty host) it refuses
// sends, which the dispatcher logs and drops.
type EmailSender struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewEmailSender(cfg *config.Config) *EmailSender {
	return &EmailSender{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.SMTPFrom,
	}
}

func (s *EmailSender) Send(_ context.Context, msg Message) error {
	if s.host == "" {
		return fmt.Errorf("smtp not configured")
	}

	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		s.from, msg.Recipient, msg.Subject, msg.Body,
	)

	var auth smtp.Auth
	if s.user != "" {
		auth = smtp.PlainAuth("", s.user, s.pass, s.host)
	}

	addr := s.host + ":" + s.port
	return smtp.SendMail(addr, auth, s.from, []string{msg.Recipient}, []byte(body))
}

var _ Notifier = (*EmailSender)(nil)
