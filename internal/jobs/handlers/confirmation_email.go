// Package handlers contains asynq task handlers.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/shearbook/shearbook/internal/email"
	"github.com/shearbook/shearbook/internal/jobs"
)

// ConfirmationEmail processes queued confirmation email tasks.
type ConfirmationEmail struct {
	sender email.Sender
	log    *slog.Logger
}

// NewConfirmationEmail constructs the handler.
func NewConfirmationEmail(sender email.Sender, log *slog.Logger) *ConfirmationEmail {
	if log == nil {
		log = slog.Default()
	}

	return &ConfirmationEmail{sender: sender, log: log}
}

// ProcessTask implements asynq.Handler.
func (h *ConfirmationEmail) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload jobs.ConfirmationEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		// malformed payloads will never succeed, do not retry
		h.log.Error("confirmation email task has malformed payload", slog.Any("error", err))
		return fmt.Errorf("decode confirmation email payload: %v: %w", err, asynq.SkipRetry)
	}

	if err := h.sender.SendConfirmation(ctx, payload); err != nil {
		return fmt.Errorf("send confirmation for appointment %d: %w", payload.AppointmentID, err)
	}

	return nil
}
