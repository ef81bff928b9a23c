package service

import (
	"context"
	"fmt"
	"html"
	"time"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/logger"
	"staybook-backend/internal/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sony/gobreaker"
)

// deliverer hands a prepared message to the provider and returns its status code.
type deliverer func(msg *mail.SGMailV3) (int, error)

type emailService struct {
	from    *mail.Email
	deliver deliverer
	cb      *gobreaker.CircuitBreaker
}

// NewEmailService returns a SendGrid backed sender, or a sender that only logs
// when no API key is configured.
func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	if apiKey == "" {
		logger.Warn("SendGrid API key not configured, emails will only be logged")
		return &logEmailService{}
	}
	client := sendgrid.NewSendClient(apiKey)
	return newEmailService(fromEmail, fromName, func(msg *mail.SGMailV3) (int, error) {
		resp, err := client.Send(msg)
		if err != nil {
			return 0, err
		}
		return resp.StatusCode, nil
	})
}

func newEmailService(fromEmail, fromName string, deliver deliverer) *emailService {
	return &emailService{
		from:    mail.NewEmail(fromName, fromEmail),
		deliver: deliver,
		cb:      circuitBreaker("sendgrid"),
	}
}

func circuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(
		gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     10 * time.Second,
			Interval:    0,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 2
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
			},
		},
	)
}

func (s *emailService) SendBookingRequested(ctx context.Context, host, guest *domain.User, property *domain.Property, booking *domain.Booking) error {
	subject := fmt.Sprintf("New booking request: %s", property.Title)
	plain := fmt.Sprintf("%s requested %s from %s to %s for %d guest(s). Total: %.2f",
		guest.Name, property.Title, utils.FormatDay(booking.CheckIn), utils.FormatDay(booking.CheckOut), booking.GuestsCount, booking.TotalAmount)
	return s.send(ctx, host, subject, plain)
}

func (s *emailService) SendBookingStatusChanged(ctx context.Context, guest *domain.User, property *domain.Property, booking *domain.Booking) error {
	subject := fmt.Sprintf("Your booking at %s is %s", property.Title, booking.Status)
	plain := fmt.Sprintf("Your booking #%d at %s from %s to %s is now %s.",
		booking.ID, property.Title, utils.FormatDay(booking.CheckIn), utils.FormatDay(booking.CheckOut), booking.Status)
	return s.send(ctx, guest, subject, plain)
}

func (s *emailService) SendVerificationDecision(ctx context.Context, user *domain.User, req *domain.VerificationRequest) error {
	subject := fmt.Sprintf("Identity verification %s", req.Status)
	plain := fmt.Sprintf("Your identity verification request #%d was %s.", req.ID, req.Status)
	if req.ReviewNote != "" {
		plain += fmt.Sprintf("\n\nReviewer note: %s", req.ReviewNote)
	}
	return s.send(ctx, user, subject, plain)
}

func (s *emailService) send(ctx context.Context, to *domain.User, subject, plain string) error {
	if to == nil || to.Email == "" {
		return nil
	}
	msg := mail.NewSingleEmail(s.from, subject, mail.NewEmail(to.Name, to.Email), plain, htmlBody(subject, plain))

	logger.ExternalServiceCall("sendgrid", "send", "to", to.ID, "subject", subject)
	_, err := s.cb.Execute(func() (interface{}, error) {
		status, err := s.deliver(msg)
		if err != nil {
			return nil, fmt.Errorf("failed to send email: %w", err)
		}
		if status >= 400 {
			return nil, fmt.Errorf("sendgrid error: status %d", status)
		}
		return nil, nil
	})
	logger.ExternalServiceResult("sendgrid", "send", err, "to", to.ID)
	return err
}

func htmlBody(title, plain string) string {
	return fmt.Sprintf("<html><body><h2>%s</h2><p>%s</p></body></html>", html.EscapeString(title), html.EscapeString(plain))
}

// logEmailService records notifications instead of delivering them.
type logEmailService struct{}

func (s *logEmailService) SendBookingRequested(ctx context.Context, host, guest *domain.User, property *domain.Property, booking *domain.Booking) error {
	logger.InfoContext(ctx, "Email skipped: booking requested", "host_id", host.ID, "booking_id", booking.ID)
	return nil
}

func (s *logEmailService) SendBookingStatusChanged(ctx context.Context, guest *domain.User, property *domain.Property, booking *domain.Booking) error {
	logger.InfoContext(ctx, "Email skipped: booking status changed", "guest_id", guest.ID, "booking_id", booking.ID, "status", booking.Status)
	return nil
}

func (s *logEmailService) SendVerificationDecision(ctx context.Context, user *domain.User, req *domain.VerificationRequest) error {
	logger.InfoContext(ctx, "Email skipped: verification decision", "user_id", user.ID, "request_id", req.ID, "status", req.Status)
	return nil
}
