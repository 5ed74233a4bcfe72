package service

import (
	"context"
	"fmt"
	"strings"

	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/logger"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// mailSender is the part of *sendgrid.Client we use.
type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type emailService struct {
	client    mailSender
	fromEmail string
	fromName  string
}

// NewEmailService returns a SendGrid-backed sender, or a logging no-op when apiKey is empty.
func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	if apiKey == "" {
		return NewNoopEmailService()
	}
	return newEmailService(sendgrid.NewSendClient(apiKey), fromEmail, fromName)
}

func newEmailService(client mailSender, fromEmail, fromName string) *emailService {
	return &emailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(ctx context.Context, to *domain.Customer, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(to.Name, to.Email)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	logger.ExternalServiceCall("sendgrid", "send", "subject", subject)
	response, err := s.client.SendWithContext(ctx, message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult("sendgrid", "send", err)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func bookingSummary(o *domain.Order) string {
	return fmt.Sprintf("Tool: %s\nDates: %s to %s (%d days)\nTotal: %s",
		o.ToolName, o.StartDate, o.EndDate, o.TotalDays, formatMoney(o.TotalPriceCents))
}

func bookingSummaryHTML(o *domain.Order) string {
	return fmt.Sprintf(`<p><strong>%s</strong><br>%s &ndash; %s (%d days)<br>Total: %s</p>`,
		o.ToolName, o.StartDate, o.EndDate, o.TotalDays, formatMoney(o.TotalPriceCents))
}

// formatMoney renders minor units with two decimals.
func formatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func (s *emailService) SendBookingCreated(ctx context.Context, o *domain.Order) error {
	subject := fmt.Sprintf("Booking #%d received", o.ID)
	plain := fmt.Sprintf("Hello %s,\n\nWe received your booking #%d. We will confirm it shortly.\n\n%s", o.Customer.Name, o.ID, bookingSummary(o))
	html := fmt.Sprintf("<p>Hello %s,</p><p>We received your booking #%d. We will confirm it shortly.</p>%s", o.Customer.Name, o.ID, bookingSummaryHTML(o))
	return s.send(ctx, &o.Customer, subject, plain, html)
}

func (s *emailService) SendBookingConfirmed(ctx context.Context, o *domain.Order) error {
	subject := fmt.Sprintf("Booking #%d confirmed", o.ID)
	plain := fmt.Sprintf("Hello %s,\n\nYour booking #%d is confirmed.\n\n%s", o.Customer.Name, o.ID, bookingSummary(o))
	html := fmt.Sprintf("<p>Hello %s,</p><p>Your booking #%d is confirmed.</p>%s", o.Customer.Name, o.ID, bookingSummaryHTML(o))
	return s.send(ctx, &o.Customer, subject, plain, html)
}

func (s *emailService) SendBookingCancelled(ctx context.Context, o *domain.Order) error {
	subject := fmt.Sprintf("Booking #%d cancelled", o.ID)
	plain := fmt.Sprintf("Hello %s,\n\nYour booking #%d was cancelled.\n\n%s", o.Customer.Name, o.ID, bookingSummary(o))
	html := fmt.Sprintf("<p>Hello %s,</p><p>Your booking #%d was cancelled.</p>%s", o.Customer.Name, o.ID, bookingSummaryHTML(o))
	return s.send(ctx, &o.Customer, subject, plain, html)
}

func (s *emailService) SendBookingReminder(ctx context.Context, o *domain.Order) error {
	subject := fmt.Sprintf("Reminder: %s rental starts %s", o.ToolName, o.StartDate)
	plain := fmt.Sprintf("Hello %s,\n\nYour rental starts tomorrow.\n\n%s", o.Customer.Name, bookingSummary(o))
	html := fmt.Sprintf("<p>Hello %s,</p><p>Your rental starts tomorrow.</p>%s", o.Customer.Name, bookingSummaryHTML(o))
	return s.send(ctx, &o.Customer, subject, plain, html)
}

type noopEmailService struct{}

// NewNoopEmailService logs instead of sending. Used when SendGrid is not configured.
func NewNoopEmailService() EmailService {
	return noopEmailService{}
}

func (noopEmailService) log(ctx context.Context, kind string, o *domain.Order) error {
	logger.DebugContext(ctx, "Email skipped, sender not configured", "kind", kind, "booking_id", o.ID, "to", maskEmail(o.Customer.Email))
	return nil
}

func (n noopEmailService) SendBookingCreated(ctx context.Context, o *domain.Order) error {
	return n.log(ctx, "created", o)
}

func (n noopEmailService) SendBookingConfirmed(ctx context.Context, o *domain.Order) error {
	return n.log(ctx, "confirmed", o)
}

func (n noopEmailService) SendBookingCancelled(ctx context.Context, o *domain.Order) error {
	return n.log(ctx, "cancelled", o)
}

func (n noopEmailService) SendBookingReminder(ctx context.Context, o *domain.Order) error {
	return n.log(ctx, "reminder", o)
}

func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 1 {
		return "***" + email[max(at, 0):]
	}
	return email[:1] + "***" + email[at:]
}
