package mcptools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/application-wizard/internal/resume"
	"github.com/jonathan/application-wizard/internal/types"
	"github.com/jonathan/application-wizard/internal/wizard"
)

const sampleResume = `Jane Doe
Hilo, HI 96720
jane.doe@example.com
808-555-0100
`

func newTestService() *Service {
	return NewService(resume.NewService(nil, 0))
}

func TestService_ParseResumeText(t *testing.T) {
	svc := newTestService()

	_, out, err := svc.ParseResumeText(context.Background(), nil, ParseResumeTextInput{Text: sampleResume})
	require.NoError(t, err)

	require.NotNil(t, out.Parsed.Contact)
	assert.Equal(t, "Jane Doe", types.Deref(out.Parsed.Contact.Name))
	assert.Equal(t, "jane.doe@example.com", types.Deref(out.Parsed.Contact.Email))
	assert.Equal(t, "resume.txt", out.Meta.Filename)
	assert.Equal(t, resume.FallbackModel, out.Meta.Model)
}

func TestService_ParseResumeText_Empty(t *testing.T) {
	svc := newTestService()

	_, _, err := svc.ParseResumeText(context.Background(), nil, ParseResumeTextInput{Text: "  \n"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "text is required")
}

func TestService_MergeAutofill(t *testing.T) {
	svc := newTestService()
	input := MergeAutofillInput{
		Form: map[string]any{
			"email":      "a@b.com",
			"employment": []any{map[string]any{"company": "Acme"}},
		},
		Parsed: map[string]any{
			"contact": map[string]any{"name": "Jane", "email": "other@x.com"},
			"employment": []any{
				map[string]any{"company": "Other"},
				map[string]any{"company": "NewCo"},
			},
		},
	}

	_, out, err := svc.MergeAutofill(context.Background(), nil, input)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "employment[1].company"}, out.Filled)
	assert.Equal(t, "Jane", out.Form["name"])
	assert.Equal(t, "a@b.com", out.Form["email"])

	employment, ok := out.Form["employment"].([]any)
	require.True(t, ok)
	require.Len(t, employment, 2)
	assert.Equal(t, "Acme", employment[0].(map[string]any)["company"])
	assert.Equal(t, "NewCo", employment[1].(map[string]any)["company"])
}

func TestService_MergeAutofill_MalformedSections(t *testing.T) {
	tests := []struct {
		name    string
		section string
		value   any
	}{
		{name: "numeric typing speed", section: "skills", value: map[string]any{"typingSpeed": float64(60)}},
		{name: "employment object", section: "employment", value: map[string]any{"company": "Acme"}},
		{name: "education string", section: "education", value: "none"},
	}

	svc := newTestService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := MergeAutofillInput{Parsed: map[string]any{
				"contact":  map[string]any{"name": "Jane Doe"},
				tt.section: tt.value,
			}}

			_, out, err := svc.MergeAutofill(context.Background(), nil, input)
			require.NoError(t, err)

			assert.Equal(t, "Jane Doe", out.Form["name"])
			assert.Contains(t, out.Filled, "name")
			assert.NotContains(t, out.Filled, "employment[0].company")
		})
	}
}

func TestService_MergeAutofill_BlankFormAndNothingFilled(t *testing.T) {
	svc := newTestService()

	_, out, err := svc.MergeAutofill(context.Background(), nil, MergeAutofillInput{})
	require.NoError(t, err)

	assert.NotNil(t, out.Filled)
	assert.Empty(t, out.Filled)
	assert.Equal(t, false, out.Form["drugAgreementAcknowledge"])
}

func TestService_WizardView(t *testing.T) {
	tests := []struct {
		name       string
		input      WizardViewInput
		wantStep   string
		wantBranch string
		wantErr    bool
	}{
		{name: "first step", input: WizardViewInput{}, wantStep: "intro", wantBranch: "Employment Application"},
		{name: "by index", input: WizardViewInput{Index: 12}, wantStep: "disability", wantBranch: "Self-Identification"},
		{name: "clamped", input: WizardViewInput{Index: 99}, wantStep: wizard.ReviewStepID, wantBranch: "Review & Submit"},
		{name: "by step id", input: WizardViewInput{StepID: "alcohol-drug"}, wantStep: "alcohol-drug", wantBranch: "Alcohol & Drug Testing Program"},
		{name: "unknown step", input: WizardViewInput{StepID: "nope"}, wantErr: true},
	}

	svc := newTestService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := svc.WizardView(context.Background(), nil, tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStep, out.View.Active.ID)
			assert.Equal(t, tt.wantBranch, out.ActiveBranch)
		})
	}
}

func TestService_WizardView_Direction(t *testing.T) {
	svc := newTestService()

	_, out, err := svc.WizardView(context.Background(), nil, WizardViewInput{Index: 3, Direction: "back"})
	require.NoError(t, err)
	assert.Equal(t, wizard.Back, out.View.State.Direction)

	_, out, err = svc.WizardView(context.Background(), nil, WizardViewInput{Index: 3, Direction: "sideways"})
	require.NoError(t, err)
	assert.Equal(t, wizard.Forward, out.View.State.Direction)
}
