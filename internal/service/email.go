package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client    *resend.Client
	fromEmail string
	appName   string
	isDev     bool
}

func NewEmailService(apiKey, fromEmail, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		appName:   appName,
		isDev:     isDev,
	}
}

// SendVerificationCode delivers a one-time signup code to the address.
func (s *EmailService) SendVerificationCode(ctx context.Context, email, code string) error {
	subject := fmt.Sprintf("%s email verification code", s.appName)
	body := fmt.Sprintf("Please enter the verification code below exactly as shown.\n\n%s\n", code)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "verification_code", "to", email, "code", code)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{email},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err == nil {
		slog.Info("email sent", "type", "verification_code", "to", email)
	}
	return err
}
