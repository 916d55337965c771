package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/application-wizard/internal/application"
	"github.com/jonathan/application-wizard/internal/resume"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation *ErrValidation
		upload     *resume.UploadError
		payload    *application.PayloadError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validation), errors.As(err, &upload), errors.As(err, &payload),
		errors.Is(err, resume.ErrNoText):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the text shown to the applicant for err. Internal
// failures get fallback instead of their details.
func PublicMessage(err error, fallback string) string {
	var (
		validation *ErrValidation
		upload     *resume.UploadError
		payload    *application.PayloadError
	)
	switch {
	case errors.As(err, &validation):
		return validation.Message
	case errors.As(err, &upload):
		return upload.Reason
	case errors.As(err, &payload):
		return payload.Message
	case errors.Is(err, resume.ErrNoText):
		return "Could not extract text from resume."
	case errors.Is(err, application.ErrMailNotConfigured):
		return err.Error() + "."
	default:
		return fallback
	}
}
