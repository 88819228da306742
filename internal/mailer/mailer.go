// Package mailer sends the platform's transactional mail over SMTP.
package mailer

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Mailer sends mail to the admin inbox.
type Mailer struct {
	config *mailerConfig
	dialer *gomail.Dialer
	inbox  string
}

// NewMailer creates a Mailer from SMTP_* environment variables; inbox is
// the admin recipient for withdrawal notifications.
func NewMailer(logger *zerolog.Logger, inbox string) *Mailer {
	cfg := newMailerConfig(logger)

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate Mailer configuration")
	}

	dialer := gomail.NewDialer(
		cfg.Host,
		cfg.Port,
		cfg.Username,
		cfg.Password,
	)

	return &Mailer{
		config: cfg,
		dialer: dialer,
		inbox:  inbox,
	}
}

// NotifyWithdrawalRequested mails the admin inbox about a teacher's request
// to leave a post.
func (m *Mailer) NotifyWithdrawalRequested(teacherName, postSubject, note string) error {
	subject := fmt.Sprintf("Withdrawal requested: %s", teacherName)
	body := fmt.Sprintf(
		"Teacher %s has requested withdrawal from the post %q.\n\nNote: %s\n",
		teacherName, postSubject, note,
	)
	return m.send(m.inbox, subject, body)
}

func (m *Mailer) send(to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("no recipient specified")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}

// mailerConfig holds SMTP configuration for sending emails.
type mailerConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

func newMailerConfig(logger *zerolog.Logger) *mailerConfig {
	cfg, err := env.ParseAs[mailerConfig]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	return &cfg
}

func (c *mailerConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("missing SMTP_HOST environment variable")
	}
	if c.Port == 0 {
		return fmt.Errorf("missing SMTP_PORT environment variable")
	}
	if c.From == "" {
		return fmt.Errorf("missing SMTP_FROM environment variable")
	}
	return nil
}
