package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/application-wizard/internal/types"
	"github.com/jonathan/application-wizard/internal/wizard"
)

func newTestModel(t *testing.T, form types.FormState) *Model {
	t.Helper()
	nav, err := wizard.NewNavigator(wizard.DefaultCatalogue())
	require.NoError(t, err)
	return NewModel(nav, form, "Filled 3 fields from resume.pdf", false)
}

func TestNewModel_PadsRepeatingSections(t *testing.T) {
	m := newTestModel(t, types.FormState{Fields: map[string]any{"name": "Jane"}})

	form := m.Form()
	assert.Len(t, form.Employment, types.MaxEmploymentEntries)
	assert.Len(t, form.References, types.MaxReferenceEntries)
	assert.Equal(t, "Jane", form.String("name"))
}

func TestModel_AdvanceStoresValues(t *testing.T) {
	m := newTestModel(t, types.NewFormState())
	assert.Equal(t, "intro", m.nav.Active().ID)

	m.advance()
	m.advance()
	require.Equal(t, "application", m.nav.Active().ID)
	require.Contains(t, m.binding.text, "position")

	*m.binding.text["position"] = "  Field Geologist "
	m.advance()

	assert.Equal(t, "general", m.nav.Active().ID)
	assert.Equal(t, "Field Geologist", m.Form().String("position"))
}

func TestModel_EscGoesBackKeepingValues(t *testing.T) {
	m := newTestModel(t, types.NewFormState())
	require.True(t, m.nav.GoToStep("general"))
	m.buildStep()

	*m.binding.text["email"] = "jane@example.com"
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, "application", m.nav.Active().ID)
	assert.Equal(t, wizard.Back, m.nav.State().Direction)
	assert.Equal(t, "jane@example.com", m.Form().String("email"))
}

func TestModel_EscAtFirstStepIsIgnored(t *testing.T) {
	m := newTestModel(t, types.NewFormState())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.nav.ActiveIndex())
}

func TestModel_BoolFieldsBindToConfirm(t *testing.T) {
	m := newTestModel(t, types.NewFormState())
	require.True(t, m.nav.GoToStep("alcohol-drug"))
	m.buildStep()

	require.Contains(t, m.binding.bools, "drugAgreementAcknowledge")
	*m.binding.bools["drugAgreementAcknowledge"] = true
	m.advance()

	assert.True(t, m.Form().Bool("drugAgreementAcknowledge"))
	assert.Equal(t, wizard.ReviewStepID, m.nav.Active().ID)
}

func TestModel_EmploymentBindsEntries(t *testing.T) {
	form := types.NewFormState()
	form.Employment[1].Company = "Acme"
	m := newTestModel(t, form)
	require.True(t, m.nav.GoToStep("employment"))
	m.buildStep()

	assert.Equal(t, "Acme", m.Form().Employment[1].Company)
	assert.Equal(t, "", form.Employment[0].Company, "caller's form is not shared")
}

func TestModel_ReviewConfirm(t *testing.T) {
	m := newTestModel(t, types.NewFormState())
	require.True(t, m.nav.GoToStep(wizard.ReviewStepID))
	m.buildStep()
	require.NotNil(t, m.binding.confirm)

	*m.binding.confirm = false
	m.advance()
	assert.False(t, m.Finished())
	assert.Equal(t, "alcohol-drug", m.nav.Active().ID)

	m.advance()
	require.NotNil(t, m.binding.confirm)
	*m.binding.confirm = true
	cmd := m.advance()

	assert.True(t, m.Finished())
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestModel_CtrlCAbortsAndKeepsForm(t *testing.T) {
	m := newTestModel(t, types.NewFormState())
	require.True(t, m.nav.GoToStep("general"))
	m.buildStep()
	*m.binding.text["name"] = "Jane Doe"

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.NotNil(t, cmd)
	assert.True(t, m.Aborted())
	assert.False(t, m.Finished())
	assert.Equal(t, "Jane Doe", m.Form().String("name"))
}

func TestModel_ViewShowsProgress(t *testing.T) {
	m := newTestModel(t, types.NewFormState())

	out := m.View()

	assert.Contains(t, out, "Step 1 of 16: Start & Openings")
	assert.Contains(t, out, "esc: back")
}

func TestModel_Summary(t *testing.T) {
	form := types.NewFormState().With("name", "Jane")
	form.Employment[0].Company = "Acme"
	m := newTestModel(t, form)

	summary := m.summary()

	assert.Contains(t, summary, "General Info")
	assert.Contains(t, summary, "Employers listed")
	assert.Regexp(t, `Employers listed\s+1`, summary)
	assert.NotContains(t, summary, "Start & Openings")
}
