// Package email sends appointment confirmation emails.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/shearbook/shearbook/internal/jobs"
	"github.com/shearbook/shearbook/pkg/config"
)

// Sender delivers a confirmation for one appointment.
type Sender interface {
	SendConfirmation(ctx context.Context, payload jobs.ConfirmationEmailPayload) error
}

// SMTPSender delivers confirmations over SMTP, or logs them when test mode
// is on or the SMTP settings are incomplete.
type SMTPSender struct {
	cfg config.EmailConfig
	log *slog.Logger
}

// NewSMTPSender constructs the sender from configuration.
func NewSMTPSender(cfg config.EmailConfig, log *slog.Logger) *SMTPSender {
	if log == nil {
		log = slog.Default()
	}

	return &SMTPSender{cfg: cfg, log: log}
}

// SendConfirmation sends the confirmation email for one appointment.
func (s *SMTPSender) SendConfirmation(ctx context.Context, payload jobs.ConfirmationEmailPayload) error {
	if s.cfg.TestMode || !s.configured() {
		s.logConfirmation(payload)
		return nil
	}

	body := renderConfirmation(payload)
	msg := strings.Join([]string{
		"From: " + s.cfg.Sender,
		"To: " + payload.ClientEmail,
		"Subject: Barbershop Appointment Confirmation",
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.cfg.Sender, []string{payload.ClientEmail}, []byte(msg)); err != nil {
		s.log.Error("failed to send confirmation email",
			slog.Int64("appointment_id", payload.AppointmentID),
			slog.Any("error", err),
		)
		return fmt.Errorf("send confirmation email: %w", err)
	}

	s.log.Info("confirmation email sent",
		slog.Int64("appointment_id", payload.AppointmentID),
		slog.String("client_email", payload.ClientEmail),
	)

	return nil
}

func (s *SMTPSender) configured() bool {
	return s.cfg.SMTPHost != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.Sender != ""
}

func (s *SMTPSender) logConfirmation(payload jobs.ConfirmationEmailPayload) {
	s.log.Info("confirmation email (test mode)",
		slog.Int64("appointment_id", payload.AppointmentID),
		slog.String("client_email", payload.ClientEmail),
		slog.String("body", renderConfirmation(payload)),
	)
}

func renderConfirmation(payload jobs.ConfirmationEmailPayload) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dear %s,\n\n", payload.ClientName)
	b.WriteString("Your appointment has been confirmed!\n\n")
	fmt.Fprintf(&b, "Date: %s\n", payload.Date)
	fmt.Fprintf(&b, "Time: %s\n", payload.StartTime)
	fmt.Fprintf(&b, "Location: %s\n", payload.LocationName)
	fmt.Fprintf(&b, "Address: %s\n", payload.LocationAddress)

	barber := payload.BarberName
	if barber == "" {
		barber = "Any available specialist"
	}
	fmt.Fprintf(&b, "Barber: %s\n", barber)

	if len(payload.ServiceNames) > 0 {
		b.WriteString("\nServices:\n")
		for _, name := range payload.ServiceNames {
			fmt.Fprintf(&b, "- %s\n", name)
		}
	}

	b.WriteString("\nWe look forward to seeing you!\n")

	return b.String()
}
