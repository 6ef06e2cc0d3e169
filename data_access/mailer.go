package data_access

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	m := &Mailer{from: from}
	if host != "" {
		m.dialer = gomail.NewDialer(host, port, username, password)
	}
	return m
}

func (m *Mailer) SendWelcome(to, firstName string) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Welcome to Streamia! Your account is ready.</p>",
		firstName,
	)
	return m.send(to, "Welcome to Streamia", body)
}

func (m *Mailer) SendPasswordReset(to, token string) error {
	body := fmt.Sprintf(
		"<p>Someone requested a password reset for this account.</p>"+
			"<p>Your reset code is: <b>%s</b></p>"+
			"<p>It expires in 15 minutes. If you did not request this, ignore this email.</p>",
		token,
	)
	return m.send(to, "Streamia password reset", body)
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	if m.dialer == nil {
		return errors.New("mail transport not configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}
