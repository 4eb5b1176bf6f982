package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Service sends transactional mail. The only template today is the
// password-reset link.
type Service interface {
	SendPasswordReset(to, token string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	ResetURL string
}

type smtpService struct {
	cfg    Config
	dialer *gomail.Dialer
}

func NewService(cfg Config) Service {
	return &smtpService{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *smtpService) SendPasswordReset(to, token string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Reset your password")
	m.SetBody("text/plain", fmt.Sprintf(
		"A password reset was requested for your account.\n\n"+
			"Open the link below to choose a new password. The link expires in one hour.\n\n"+
			"%s?token=%s\n\n"+
			"If you did not request this, you can ignore this message.",
		s.cfg.ResetURL, token,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}
