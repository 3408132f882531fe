package notifications

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"campus/internal/shared/config"
)

// EmailService interface for sending emails
type EmailService interface {
	SendNotification(ctx context.Context, notification *EmailNotification) error
	SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// SMTPConfig holds SMTP configuration
type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromEmail   string
	FromName    string
	FrontendURL string
	UseTLS      bool
	Timeout     time.Duration
}

// NewSMTPConfig maps the application email config onto the sender.
func NewSMTPConfig(cfg *config.Config) *SMTPConfig {
	return &SMTPConfig{
		Host:        cfg.Email.SMTPHost,
		Port:        cfg.Email.SMTPPort,
		Username:    cfg.Email.SMTPUsername,
		Password:    cfg.Email.SMTPPassword,
		FromEmail:   cfg.Email.FromEmail,
		FromName:    cfg.Email.FromName,
		FrontendURL: cfg.FrontendURL,
		UseTLS:      true,
		Timeout:     cfg.Email.Timeout,
	}
}

// SMTPEmailService is a real SMTP implementation of the EmailService interface
type SMTPEmailService struct {
	config *SMTPConfig
}

func NewSMTPEmailService(config *SMTPConfig) (*SMTPEmailService, error) {
	if err := validateSMTPConfig(config); err != nil {
		return nil, err
	}
	return &SMTPEmailService{config: config}, nil
}

func validateSMTPConfig(config *SMTPConfig) error {
	if config == nil {
		return fmt.Errorf("SMTP config is nil")
	}

	if config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}

	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("SMTP port must be between 1 and 65535")
	}

	if config.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}

	return nil
}

// SendNotification renders a notification and delivers it via SMTP.
func (s *SMTPEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	htmlBody, textBody := s.renderContent(notification)
	return s.SendHTML(ctx, notification.RecipientEmail, notification.Subject, htmlBody, textBody)
}

// SendHTML sends an HTML email
func (s *SMTPEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	message := s.buildMessage(to, subject, htmlBody, textBody)

	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var err error
	if s.config.UseTLS {
		err = s.sendWithSTARTTLS(addr, auth, to, message)
	} else {
		err = smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	}

	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// sendWithSTARTTLS sends email with STARTTLS encryption
func (s *SMTPEmailService) sendWithSTARTTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Quit()

	tlsconfig := &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         s.config.Host,
	}

	if err = client.StartTLS(tlsconfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	_, err = w.Write(message)
	if err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return w.Close()
}

// buildMessage creates the email message with proper headers
func (s *SMTPEmailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Date"] = time.Now().Format(time.RFC1123Z)

	boundary := "boundary_" + strconv.FormatInt(time.Now().UnixNano(), 10)
	headers["Content-Type"] = fmt.Sprintf("multipart/alternative; boundary=%s", boundary)

	message := ""
	for k, v := range headers {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	message += "\r\n"

	if textBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/plain; charset=UTF-8\r\n"
		message += "\r\n"
		message += textBody + "\r\n"
	}

	if htmlBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/html; charset=UTF-8\r\n"
		message += "\r\n"
		message += htmlBody + "\r\n"
	}

	message += fmt.Sprintf("--%s--\r\n", boundary)

	return []byte(message)
}

// renderContent builds the body for each notification type.
func (s *SMTPEmailService) renderContent(notification *EmailNotification) (string, string) {
	data := notification.TemplateData
	name := notification.RecipientName

	switch notification.Type {
	case NotificationTypeEmailVerification:
		link := fmt.Sprintf("%s/verify-email?token=%v", s.config.FrontendURL, data["token"])
		htmlBody := fmt.Sprintf(`
			<h2>Verify your email address</h2>
			<p>Hi %s,</p>
			<p>Thanks for registering. Please confirm your email address by clicking the link below:</p>
			<p><a href="%s">Verify my email</a></p>
			<p>This link expires at %v. If you did not create an account, you can ignore this message.</p>
			<p>Campus Team</p>
		`, name, link, data["expires_at"])

		textBody := fmt.Sprintf(
			"Hi %s,\n\nThanks for registering. Please confirm your email address by opening:\n%s\n\nThis link expires at %v. If you did not create an account, you can ignore this message.\n\nCampus Team",
			name, link, data["expires_at"],
		)
		return htmlBody, textBody

	case NotificationTypePasswordReset:
		link := fmt.Sprintf("%s/reset-password?token=%v", s.config.FrontendURL, data["token"])
		htmlBody := fmt.Sprintf(`
			<h2>Password reset request</h2>
			<p>Hi %s,</p>
			<p>We received a request to reset your password. Click the link below to choose a new one:</p>
			<p><a href="%s">Reset my password</a></p>
			<p>This link expires at %v. If you did not request a reset, no action is needed.</p>
			<p>Campus Team</p>
		`, name, link, data["expires_at"])

		textBody := fmt.Sprintf(
			"Hi %s,\n\nWe received a request to reset your password. Open this link to choose a new one:\n%s\n\nThis link expires at %v. If you did not request a reset, no action is needed.\n\nCampus Team",
			name, link, data["expires_at"],
		)
		return htmlBody, textBody

	case NotificationTypeWelcome:
		htmlBody := fmt.Sprintf(`
			<h2>Welcome aboard</h2>
			<p>Hi %s,</p>
			<p>Your email is verified and your account is active. You can now sign in.</p>
			<p>Campus Team</p>
		`, name)

		textBody := fmt.Sprintf(
			"Hi %s,\n\nYour email is verified and your account is active. You can now sign in.\n\nCampus Team",
			name,
		)
		return htmlBody, textBody

	default:
		htmlBody := fmt.Sprintf(`
			<h2>%s</h2>
			<p>Hi %s,</p>
			<p>You have a new notification.</p>
			<p>Campus Team</p>
		`, notification.Subject, name)

		textBody := fmt.Sprintf(
			"Hi %s,\n\nYou have a new notification.\n\nCampus Team",
			name,
		)
		return htmlBody, textBody
	}
}

// MockEmailService logs instead of delivering, for local development
// without an SMTP server.
type MockEmailService struct{}

func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

func (s *MockEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	log.Printf("📧 [MOCK] Sending %s notification to %s (%s)",
		notification.Type,
		notification.RecipientEmail,
		notification.RecipientName,
	)
	return nil
}

func (s *MockEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	log.Printf("📧 [MOCK] To: %s, Subject: %s", to, subject)
	log.Printf("📧 [MOCK] Body: %s", strings.TrimSpace(textBody))
	return nil
}
