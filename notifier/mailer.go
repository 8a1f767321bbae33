package notifier

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// EmailSender delivers rendered emails to a recipient
type EmailSender interface {
	Send(to string, msg *EmailMessage) error
}

// Mailer sends emails over SMTP
type Mailer struct {
	dialer *gomail.Dialer
	sender string
}

// NewMailer creates an SMTP mailer
func NewMailer(host string, port int, username, password, sender string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		sender: sender,
	}
}

// Send delivers one email with HTML and plain-text alternatives
func (m *Mailer) Send(to string, msg *EmailMessage) error {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.sender)
	gm.SetHeader("To", to)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Text)
	gm.AddAlternative("text/html", msg.HTML)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("failed to send email to %s: %v", to, err)
	}
	return nil
}
