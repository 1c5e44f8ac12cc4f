package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"dayhub-backend/config"
)

// EmailService handles sending emails via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

// MagicLinkData holds the data for magic-link login emails
type MagicLinkData struct {
	FirstName string
	LoginURL  string
	ExpiresIn string
}

// NewEmailService creates a new email service from SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
	}
}

// magicLinkTemplate is the HTML template for login-link emails
const magicLinkTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Your DayHub Login Link</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .button { display: inline-block; padding: 12px 24px; background: #0066cc; color: white; text-decoration: none; border-radius: 4px; }
        .footer { padding: 20px; font-size: 12px; color: #888; text-align: center; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h2>DayHub Interpreter Login</h2>
        </div>
        <div class="content">
            <p>Hi {{.FirstName}},</p>
            <p>Click the button below to log in and manage your interpreter profile. The link is valid for {{.ExpiresIn}} and can be used once.</p>
            <p><a class="button" href="{{.LoginURL}}">Log in to DayHub</a></p>
            <p>If you did not request this email, you can safely ignore it.</p>
        </div>
        <div class="footer">
            <p>If the button does not work, copy this URL into your browser: {{.LoginURL}}</p>
        </div>
    </div>
</body>
</html>`

// SendMagicLink sends a single-use login link to an interpreter
func (s *EmailService) SendMagicLink(toEmail string, data MagicLinkData) error {
	tmpl, err := template.New("magiclink").Parse(magicLinkTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	// Construct MIME message
	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		toEmail,
		"Your DayHub login link",
		body.String(),
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{toEmail}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
