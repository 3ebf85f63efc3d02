package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/salvadodental/booking-api/pkg/logger"
)

type Service interface {
	SendCustom(ctx context.Context, to string, subject string, content string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPService sends mail through the configured SMTP relay.
func NewSMTPService(cfg SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendCustom(_ context.Context, to, subject, content string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", content)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

type noopService struct {
	logger *logger.Logger
}

// NewNoopService logs instead of sending, for environments without SMTP.
func NewNoopService(logger *logger.Logger) Service {
	return &noopService{logger: logger}
}

func (s *noopService) SendCustom(_ context.Context, to, subject, _ string) error {
	s.logger.Info("email suppressed (no SMTP configured)", "to", to, "subject", subject)
	return nil
}
