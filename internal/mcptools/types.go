package mcptools

import (
	"github.com/jonathan/application-wizard/internal/types"
	"github.com/jonathan/application-wizard/internal/wizard"
)

// ParseResumeTextInput is the input of the parse_resume_text tool.
type ParseResumeTextInput struct {
	Text     string `json:"text" jsonschema:"plain text of the resume"`
	Filename string `json:"filename,omitempty" jsonschema:"original file name, reported back in meta"`
}

// ParseResumeTextOutput is the result of the parse_resume_text tool.
type ParseResumeTextOutput struct {
	Parsed types.ParsedResume `json:"parsed"`
	Meta   types.ParseMeta    `json:"meta"`
}

// MergeAutofillInput is the input of the merge_autofill tool. Form uses the
// flat wire shape of the application form.
type MergeAutofillInput struct {
	Form   map[string]any `json:"form,omitempty" jsonschema:"current form state; omitted means a blank form"`
	Parsed map[string]any `json:"parsed,omitempty" jsonschema:"parsed resume, as returned by parse_resume_text; sections of the wrong shape are ignored"`
}

// MergeAutofillOutput is the result of the merge_autofill tool.
type MergeAutofillOutput struct {
	Form   map[string]any `json:"form"`
	Filled []string       `json:"filled"`
}

// WizardViewInput is the input of the wizard_view tool.
type WizardViewInput struct {
	Index     int    `json:"index,omitempty" jsonschema:"0-based step index; out of range values are clamped"`
	StepID    string `json:"stepId,omitempty" jsonschema:"step id to jump to; takes precedence over index"`
	Direction string `json:"direction,omitempty" jsonschema:"forward or back"`
}

// WizardViewOutput is the result of the wizard_view tool.
type WizardViewOutput struct {
	View         wizard.View `json:"view"`
	ActiveBranch string      `json:"activeBranch,omitempty"`
}
