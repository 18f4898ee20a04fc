// Package apperrors defines the application error taxonomy.
package apperrors

import "fmt"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type AppError struct {
	Code        string
	Message     string
	UserMessage string
	Severity    Severity
	Retryable   bool
	cause       error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

func NewValidationError(msg string) *AppError {
	return &AppError{
		Code:        "E100",
		Message:     msg,
		UserMessage: fmt.Sprintf("Invalid input. %s", msg),
		Severity:    SeverityLow,
		Retryable:   false,
		cause:       nil,
	}
}

func NewDatabaseError(cause error) *AppError {
	var underlyingMsg string
	if cause != nil {
		underlyingMsg = cause.Error()
	}

	return &AppError{
		Code:        "E200",
		Message:     fmt.Sprintf("Database error: %s", underlyingMsg),
		UserMessage: "We hit a temporary problem, please try again shortly",
		Severity:    SeverityHigh,
		Retryable:   true,
		cause:       cause,
	}
}

func NewEmailError(cause error) *AppError {
	return &AppError{
		Code:        "E300",
		Message:     "Email delivery error",
		UserMessage: "We could not send your confirmation email",
		Severity:    SeverityMedium,
		Retryable:   true,
		cause:       cause,
	}
}

func NewBookingError(msg string, cause error) *AppError {
	return &AppError{
		Code:        "E400",
		Message:     msg,
		UserMessage: "We could not complete your booking",
		Severity:    SeverityMedium,
		Retryable:   false,
		cause:       cause,
	}
}
