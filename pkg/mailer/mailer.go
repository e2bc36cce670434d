package mailer

import (
	"fmt"

	"ai-salesagent-be/internal/config"

	"gopkg.in/gomail.v2"
)

// Mailer sends the agent's replies on the email channel.
type Mailer struct {
	dialer     *gomail.Dialer
	email      string
	senderName string
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		dialer:     gomail.NewDialer(cfg.Host, cfg.Port, cfg.Email, cfg.Password),
		email:      cfg.Email,
		senderName: cfg.SenderName,
	}
}

// SendReply delivers the assistant's response as a plain-text email. Subject
// threads onto the inbound message when one was provided.
func (m *Mailer) SendReply(to, subject, body string) error {
	if subject == "" {
		subject = "Re: your message"
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.email, m.senderName))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending email to %s: %w", to, err)
	}
	return nil
}
