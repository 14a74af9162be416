// Package mailer delivers the launch announcement email over SMTP.
package mailer

import (
	"fmt"
	"log/slog"
	"net/smtp"

	"launchlist/internal/config"
	"launchlist/lib/sl"
)

type Mailer struct {
	host      string
	port      string
	auth      smtp.Auth
	sender    string
	signupURL string
	log       *slog.Logger
}

func New(conf *config.Config, log *slog.Logger) *Mailer {
	m := &Mailer{
		host:      conf.SMTP.Host,
		port:      conf.SMTP.Port,
		sender:    conf.SMTP.Sender,
		signupURL: conf.Waitlist.SignupURL,
		log:       log.With(sl.Module("mailer")),
	}
	if conf.SMTP.Username != "" {
		m.auth = smtp.PlainAuth("", conf.SMTP.Username, conf.SMTP.Password, conf.SMTP.Host)
	}
	return m
}

// SendLaunch emails one waitlist member that the product is live.
func (m *Mailer) SendLaunch(to string) error {
	return m.send(to, launchSubject, launchEmailHTML(to, m.signupURL))
}

func (m *Mailer) send(to, subject, html string) error {
	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.sender, to, subject, html)
	if m.host == "" {
		m.log.Warn("smtp host not configured, not sending email", slog.String("to", to))
		return nil
	}
	err := smtp.SendMail(fmt.Sprintf("%s:%s", m.host, m.port), m.auth, m.sender, []string{to}, []byte(message))
	if err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	m.log.Debug("email sent", slog.String("to", to), slog.String("subject", subject))
	return nil
}
