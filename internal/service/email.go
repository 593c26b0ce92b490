package service

import (
	"context"
	"fmt"

	"anamola-backend/internal/config"
	"anamola-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey     string
	from       string
	fromName   string
	adminEmail string
}

func NewEmailService(cfg config.EmailConfig) EmailService {
	return &emailService{
		apiKey:     cfg.APIKey,
		from:       cfg.From,
		fromName:   cfg.FromName,
		adminEmail: cfg.AdminEmail,
	}
}

func (s *emailService) send(to, toName, subject, body string) error {
	if s.apiKey == "" {
		logger.Debug("Email delivery disabled, skipping", "to", to, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.from)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendWelcomeCredentials(ctx context.Context, email, name, memberID, password string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nWelcome to Anamola! Your membership is now active.\n\nMember ID: %s\nTemporary password: %s\n\nPlease sign in and change your password.\n\nBest regards,\nThe Anamola Team",
		name, memberID, password)
	return s.send(email, name, "Welcome to Anamola - Your Membership Is Active", body)
}

func (s *emailService) SendRenewalReminder(ctx context.Context, email, name string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour Anamola membership is due for renewal. Sign in to your dashboard to renew.\n\nBest regards,\nThe Anamola Team",
		name)
	return s.send(email, name, "Anamola Membership Renewal Reminder", body)
}

func (s *emailService) SendAdminNotification(ctx context.Context, subject, message string) error {
	if s.adminEmail == "" {
		return nil
	}
	return s.send(s.adminEmail, "Admin", subject, message)
}
