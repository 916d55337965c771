package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonathan/application-wizard/internal/autofill"
	"github.com/jonathan/application-wizard/internal/resume"
	"github.com/jonathan/application-wizard/internal/types"
	"github.com/jonathan/application-wizard/internal/wizard"
)

// Service handles MCP tool calls.
type Service struct {
	resumes   *resume.Service
	catalogue wizard.Catalogue
}

// NewService creates a Service that parses with resumes and navigates the
// default step catalogue.
func NewService(resumes *resume.Service) *Service {
	return &Service{resumes: resumes, catalogue: wizard.DefaultCatalogue()}
}

// ParseResumeText parses resume text with the smart parser when configured
// and the regex fallback otherwise.
func (s *Service) ParseResumeText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ParseResumeTextInput,
) (*mcp.CallToolResult, ParseResumeTextOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, ParseResumeTextOutput{}, fmt.Errorf("text is required")
	}
	filename := input.Filename
	if filename == "" {
		filename = "resume.txt"
	}

	res := s.resumes.ParseText(ctx, filename, input.Text)
	return nil, ParseResumeTextOutput{Parsed: res.Parsed, Meta: res.Meta}, nil
}

// MergeAutofill merges a parsed resume into a form and lists what was filled.
func (s *Service) MergeAutofill(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input MergeAutofillInput,
) (*mcp.CallToolResult, MergeAutofillOutput, error) {
	form := types.NewFormState()
	if len(input.Form) > 0 {
		if err := convert(input.Form, &form); err != nil {
			return nil, MergeAutofillOutput{}, fmt.Errorf("invalid form: %w", err)
		}
	}

	parsed := resume.Normalize(input.Parsed)
	merged, filled := autofill.Report(form, &parsed)
	if filled == nil {
		filled = []string{}
	}

	out := MergeAutofillOutput{Filled: filled}
	if err := convert(merged, &out.Form); err != nil {
		return nil, MergeAutofillOutput{}, fmt.Errorf("failed to encode form: %w", err)
	}
	return nil, out, nil
}

// WizardView returns the navigator view at the requested step.
func (s *Service) WizardView(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input WizardViewInput,
) (*mcp.CallToolResult, WizardViewOutput, error) {
	dir := wizard.Forward
	if input.Direction == string(wizard.Back) {
		dir = wizard.Back
	}

	nav, err := wizard.Restore(s.catalogue, wizard.State{ActiveIndex: input.Index, Direction: dir})
	if err != nil {
		return nil, WizardViewOutput{}, err
	}
	if input.StepID != "" {
		if !nav.GoToStep(input.StepID) {
			return nil, WizardViewOutput{}, fmt.Errorf("unknown step %q", input.StepID)
		}
	}

	out := WizardViewOutput{View: nav.Snapshot()}
	if b, ok := nav.ActiveBranch(nav.ActiveIndex()); ok {
		out.ActiveBranch = b.Label
	}
	return nil, out, nil
}

// convert round-trips v through JSON into dst, so FormState's flat wire
// shape is used on both sides.
func convert(v any, dst any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
