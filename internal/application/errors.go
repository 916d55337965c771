package application

import (
	"errors"
	"fmt"
)

// ErrMailNotConfigured is returned when no SMTP host is set. Its message is
// shown to the applicant as-is.
var ErrMailNotConfigured = errors.New("SMTP_HOST is not configured on the server")

// PayloadError reports a submission payload that could not be accepted.
type PayloadError struct {
	Message string
	Cause   error
}

func (e *PayloadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PayloadError) Unwrap() error {
	return e.Cause
}

// DeliveryError wraps a failure of the mail transport.
type DeliveryError struct {
	SubmissionID string
	Cause        error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to deliver submission %s: %v", e.SubmissionID, e.Cause)
}

func (e *DeliveryError) Unwrap() error {
	return e.Cause
}
