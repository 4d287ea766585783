package mailer

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/M5Csoftware/m5c-portal-api/pkg/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer dispatches verification email. Implementations must propagate
// transport failures; a verification mail that silently goes nowhere leaves
// the account stuck unverified.
type Mailer interface {
	SendVerification(to, fullName, token string) error
}

// SMTPMailer sends mail through the configured SMTP transport.
type SMTPMailer struct {
	smtp    config.SMTPConfig
	baseURL string
	log     *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		smtp:    cfg.SMTP,
		baseURL: strings.TrimRight(cfg.App.BaseURL, "/"),
		log:     log,
	}
}

// SendVerification composes and sends the verification message. The link
// carries the signed token as a query parameter and lands on the portal's
// verification page.
func (m *SMTPMailer) SendVerification(to, fullName, token string) error {
	if to == "" {
		return fmt.Errorf("send verification: empty recipient")
	}

	link := fmt.Sprintf("%s/verify-email?token=%s", m.baseURL, url.QueryEscape(token))

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.smtp.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Verify your email address")
	msg.SetBody("text/html", fmt.Sprintf(
		"<p>Hello %s,</p><p>Please confirm your email address by clicking the link below. The link expires in 24 hours.</p><p><a href=%q>Verify email</a></p>",
		fullName, link))

	dialer := gomail.NewDialer(m.smtp.Host, m.smtp.Port, m.smtp.User, m.smtp.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		m.log.Error("verification mail dispatch failed",
			zap.String("to", to),
			zap.Error(err))
		return fmt.Errorf("send verification: %w", err)
	}

	m.log.Info("verification mail sent", zap.String("to", to))
	return nil
}
