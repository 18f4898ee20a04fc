package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TaskTypeConfirmationEmail = "email:confirmation"
)

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// ConfirmationEmailPayload carries everything the confirmation email renders,
// resolved at enqueue time so the worker needs no database access.
type ConfirmationEmailPayload struct {
	AppointmentID   int64    `json:"appointment_id"`
	ClientName      string   `json:"client_name"`
	ClientEmail     string   `json:"client_email"`
	Date            string   `json:"date"`
	StartTime       string   `json:"start_time"`
	LocationName    string   `json:"location_name"`
	LocationAddress string   `json:"location_address"`
	BarberName      string   `json:"barber_name"`
	ServiceNames    []string `json:"service_names"`
}

// NewConfirmationEmailTask builds the queue task for one appointment email.
func NewConfirmationEmailTask(payload ConfirmationEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TaskTypeConfirmationEmail, data, asynq.Queue(QueueDefault), asynq.MaxRetry(3)), nil
}
