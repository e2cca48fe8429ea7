package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
	appURL    string
	appName   string
}

// NewEmailService only talks to Resend outside development; in development
// messages are logged instead of sent.
func NewEmailService(apiKey, fromEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
		appURL:    appURL,
		appName:   appName,
	}
}

func (s *EmailService) SendWelcomeEmail(email, name string) error {
	subject, body := welcomeEmailTemplate(name, s.appURL, s.appName)
	return s.send("welcome", email, subject, body)
}

func (s *EmailService) SendBadgeUnlockedEmail(email, name string, badges []model.BadgeDefinition) error {
	if len(badges) == 0 {
		return nil
	}
	badgesURL := fmt.Sprintf("%s/api/me/badges", s.appURL)
	subject, body := badgeUnlockedEmailTemplate(name, badges, badgesURL, s.appName)
	return s.send("badge_unlocked", email, subject, body)
}

func (s *EmailService) send(kind, to, subject, body string) error {
	if s.isDev {
		slog.Info("email sent (dev mode)", "type", kind, "to", to, "subject", subject)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}

	slog.Info("email sent", "type", kind, "to", to)
	return nil
}
