package email

import (
	"fmt"

	"proforma-backend/internal/config"

	gomail "gopkg.in/gomail.v2"
)

// EmailProvider is an interface for sending quotation emails
type EmailProvider interface {
	Send(to, subject, body string, attachmentPaths ...string) error
}

// SMTPEmailService implements EmailProvider over plain SMTP
type SMTPEmailService struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// NewSMTPEmailService creates a new SMTP email service
func NewSMTPEmailService(cfg *config.Config) *SMTPEmailService {
	return &SMTPEmailService{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}
}

// Send delivers a single email, attaching each given file
func (s *SMTPEmailService) Send(to, subject, body string, attachmentPaths ...string) error {
	if s.Host == "" {
		return fmt.Errorf("SMTP host not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	for _, path := range attachmentPaths {
		m.Attach(path)
	}

	d := gomail.NewDialer(s.Host, s.Port, s.Username, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// MockEmailService is a mock implementation for testing (prints to console)
type MockEmailService struct{}

// NewMockEmailService creates a new mock email service
func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

// Send prints the email to console instead of delivering it
func (s *MockEmailService) Send(to, subject, body string, attachmentPaths ...string) error {
	fmt.Printf("\n========== MOCK EMAIL ==========\n")
	fmt.Printf("To: %s\n", to)
	fmt.Printf("Subject: %s\n", subject)
	fmt.Printf("Body: %s\n", body)
	for _, path := range attachmentPaths {
		fmt.Printf("Attachment: %s\n", path)
	}
	fmt.Printf("================================\n\n")
	return nil
}
