package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// LegalText carries the exact notice text the applicant was shown, so the
// generated documents reproduce it verbatim.
type LegalText struct {
	EEONotice          string `json:"eeoNotice,omitempty"`
	DisabilityNotice   string `json:"disabilityNotice,omitempty"`
	VeteranNotice      string `json:"veteranNotice,omitempty"`
	AlcoholDrugProgram string `json:"alcoholDrugProgram,omitempty"`
	RequiredNotice     string `json:"requiredNotice,omitempty"`
}

// ClientMeta is browser-side context attached to a submission.
type ClientMeta struct {
	Timezone  string `json:"timezone,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
	Locale    string `json:"locale,omitempty"`
}

// Signatures holds optional drawn signatures as data URLs.
type Signatures struct {
	DrugAgreementSignatureDataURL string `json:"drugAgreementSignatureDataUrl,omitempty" validate:"omitempty,startswith=data:image"`
}

// SubmissionPayload is the JSON document posted by the review step.
type SubmissionPayload struct {
	Form        *FormState  `json:"form" validate:"required"`
	LegalText   LegalText   `json:"legalText"`
	ClientMeta  ClientMeta  `json:"clientMeta"`
	SubmittedAt string      `json:"submittedAt,omitempty"`
	Signatures  *Signatures `json:"signatures,omitempty"`
}

// SubmissionResponse is returned after a successful submission.
type SubmissionResponse struct {
	Status       string `json:"status"`
	SubmissionID string `json:"submission_id"`
}

// Validate validates the SubmissionPayload using the validator.
func (p *SubmissionPayload) Validate() error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return err
	}
	if len(p.Form.Employment) > MaxEmploymentEntries {
		return &FieldCountError{Field: "form.employment", Max: MaxEmploymentEntries, Got: len(p.Form.Employment)}
	}
	if len(p.Form.References) > MaxReferenceEntries {
		return &FieldCountError{Field: "form.references", Max: MaxReferenceEntries, Got: len(p.Form.References)}
	}
	return nil
}

// FieldCountError reports a repeating section with too many entries.
type FieldCountError struct {
	Field string
	Max   int
	Got   int
}

func (e *FieldCountError) Error() string {
	return fmt.Sprintf("%s has %d entries, at most %d allowed", e.Field, e.Got, e.Max)
}

// AutofillRequest is the body of the server-side merge endpoint.
// Parsed stays untyped until it is normalised, so a section of the wrong
// shape merges nothing instead of failing the request.
type AutofillRequest struct {
	Form   *FormState     `json:"form"`
	Parsed map[string]any `json:"parsed" validate:"required"`
}

// AutofillResponse returns the merged form and the paths that were filled.
type AutofillResponse struct {
	Form   FormState `json:"form"`
	Filled []string  `json:"filled"`
}

// Validate validates the AutofillRequest using the validator.
func (r *AutofillRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
