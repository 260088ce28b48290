// services/email.go
package services

import (
	"fmt"
	"log"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService sends transactional mail. Without SENDGRID_API_KEY it logs
// to the console instead, so development never needs outbound mail.
type EmailService struct {
	fromEmail   string
	fromName    string
	baseURL     string
	sendGridKey string
	useSendGrid bool
}

func NewEmailService() *EmailService {
	key := os.Getenv("SENDGRID_API_KEY")
	baseURL := os.Getenv("APP_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	fromEmail := os.Getenv("EMAIL_FROM")
	if fromEmail == "" {
		fromEmail = "no-reply@crmhub.local"
	}

	if key == "" {
		log.Println("Email service in console-only mode (set SENDGRID_API_KEY for production)")
	}

	return &EmailService{
		fromEmail:   fromEmail,
		fromName:    "CRMHub",
		baseURL:     baseURL,
		sendGridKey: key,
		useSendGrid: key != "",
	}
}

// SendWelcomeEmail greets a freshly registered user. Callers fire and
// forget; a failure is logged and never fails registration.
func (s *EmailService) SendWelcomeEmail(toEmail, toName string) error {
	subject := "Welcome to CRMHub"
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Welcome to CRMHub!</h2>
			<p>Hi %s,</p>
			<p>Your account is ready. Sign in at <a href="%s">%s</a> to start managing your contacts, deals and tasks.</p>
			<p>Thanks,<br>The CRMHub Team</p>
		</body>
		</html>
	`, toName, s.baseURL, s.baseURL)
	plain := fmt.Sprintf("Hi %s,\n\nYour CRMHub account is ready. Sign in at %s to get started.\n\nThanks,\nThe CRMHub Team\n", toName, s.baseURL)

	if s.useSendGrid {
		return s.sendViaSendGrid(toEmail, toName, subject, body, plain)
	}
	return s.logEmailToConsole(toEmail, toName, subject, s.baseURL)
}

// SendPasswordResetEmail sends a reset link. The link expires with the token.
func (s *EmailService) SendPasswordResetEmail(toEmail, toName, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password/%s", s.baseURL, token)

	subject := "Reset your CRMHub password"
	body := fmt.Sprintf(`
		<html>
		<body>
			<p>Hi %s,</p>
			<p>We received a request to reset your password. Click the link below to choose a new one:</p>
			<p><a href="%s">%s</a></p>
			<p><strong>This link will expire in 1 hour.</strong></p>
			<p>If you didn't request this, you can safely ignore this email.</p>
			<p>Thanks,<br>The CRMHub Team</p>
		</body>
		</html>
	`, toName, resetURL, resetURL)
	plain := fmt.Sprintf("Hi %s,\n\nReset your CRMHub password using the link below:\n\n%s\n\nThis link expires in 1 hour. If you didn't request this, ignore this email.\n", toName, resetURL)

	if s.useSendGrid {
		return s.sendViaSendGrid(toEmail, toName, subject, body, plain)
	}
	return s.logEmailToConsole(toEmail, toName, subject, resetURL)
}

func (s *EmailService) sendViaSendGrid(toEmail, toName, subject, htmlBody, plainBody string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainBody, htmlBody)

	client := sendgrid.NewSendClient(s.sendGridKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected message: status %d", response.StatusCode)
	}
	return nil
}

func (s *EmailService) logEmailToConsole(toEmail, toName, subject, link string) error {
	log.Printf("[EMAIL] To: %s <%s> | Subject: %s | Link: %s", toName, toEmail, subject, link)
	return nil
}
