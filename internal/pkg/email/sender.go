package email

import (
	"fmt"

	"jobportal_backend/internal/config"
	"jobportal_backend/internal/logger"

	"gopkg.in/gomail.v2"
)

// Sender определяет интерфейс для отправки писем о статусах откликов
type Sender interface {
	// SendStatusNotice уведомляет соискателя об изменении статуса отклика
	SendStatusNotice(to, userName, jobTitle, statusMessage string) error

	// SendSelectionNotice - отдельное письмо при статусе "Selected"
	SendSelectionNotice(to, userName, jobTitle, companyName string) error
}

// SMTPSender отправляет письма через gomail
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
	name   string
}

func NewSMTPSender(cfg config.EmailConfig) (*SMTPSender, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("smtp host is required")
	}

	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.FromEmail,
		name:   cfg.FromName,
	}, nil
}

func (s *SMTPSender) SendStatusNotice(to, userName, jobTitle, statusMessage string) error {
	subject := fmt.Sprintf("Update on your application for %s", jobTitle)
	body := fmt.Sprintf("Hi %s,\n\n%s\n\nBest regards,\nJob Portal Team", userName, statusMessage)
	return s.send(to, subject, body)
}

func (s *SMTPSender) SendSelectionNotice(to, userName, jobTitle, companyName string) error {
	subject := fmt.Sprintf("Congratulations! You have been selected for %s", jobTitle)
	body := fmt.Sprintf(
		"Hi %s,\n\nCongratulations! You have been selected for the %s position at %s. The company will reach out with next steps.\n\nBest regards,\nJob Portal Team",
		userName, jobTitle, companyName,
	)
	return s.send(to, subject, body)
}

func (s *SMTPSender) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.name)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// NoopSender используется, когда SMTP не сконфигурирован:
// письма логируются, но не отправляются
type NoopSender struct{}

func (NoopSender) SendStatusNotice(to, userName, jobTitle, statusMessage string) error {
	logger.Debug("email disabled, skipping status notice", "to", to, "job", jobTitle)
	return nil
}

func (NoopSender) SendSelectionNotice(to, userName, jobTitle, companyName string) error {
	logger.Debug("email disabled, skipping selection notice", "to", to, "job", jobTitle)
	return nil
}
