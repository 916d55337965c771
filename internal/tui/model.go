package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/jonathan/application-wizard/internal/types"
	"github.com/jonathan/application-wizard/internal/wizard"
)

// Model is the bubbletea model of the terminal wizard. Each step is a
// huh.Form; completing it moves forward, esc moves back.
type Model struct {
	nav     *wizard.Navigator
	form    types.FormState
	styled  bool
	note    string
	binding *binding
	step    *huh.Form

	finished bool
	aborted  bool
}

// binding holds the editable copies of one step's scalar fields.
type binding struct {
	text    map[string]*string
	bools   map[string]*bool
	confirm *bool
}

// NewModel starts the wizard at the first step. note is shown on the resume
// import step, e.g. a summary of what autofill filled in.
func NewModel(nav *wizard.Navigator, form types.FormState, note string, styled bool) *Model {
	form = form.Clone()
	if form.Fields == nil {
		form.Fields = map[string]any{}
	}
	form.Employment = padded(form.Employment, types.MaxEmploymentEntries)
	form.References = padded(form.References, types.MaxReferenceEntries)

	m := &Model{nav: nav, form: form, note: note, styled: styled}
	m.buildStep()
	return m
}

// Form returns the form state collected so far.
func (m *Model) Form() types.FormState {
	return m.form
}

// Finished reports whether the applicant confirmed the review step.
func (m *Model) Finished() bool {
	return m.finished
}

// Aborted reports whether the wizard was quit with ctrl+c.
func (m *Model) Aborted() bool {
	return m.aborted
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.step.Init()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlC:
			m.apply()
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEsc:
			return m, m.back()
		}
	}

	step, cmd := m.step.Update(msg)
	if f, ok := step.(*huh.Form); ok {
		m.step = f
	}

	switch m.step.State {
	case huh.StateCompleted:
		return m, m.advance()
	case huh.StateAborted:
		m.apply()
		m.aborted = true
		return m, tea.Quit
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.finished || m.aborted {
		return ""
	}
	hint := "enter: next  esc: back  ctrl+c: quit"
	if m.styled {
		hint = styleHint.Render(hint)
	}
	return RenderProgress(m.nav.Snapshot(), m.styled) + "\n\n" + m.step.View() + "\n" + hint + "\n"
}

// advance stores the step's values and moves to the next step. Confirming
// the review step finishes the wizard; declining it goes back.
func (m *Model) advance() tea.Cmd {
	m.apply()
	if m.binding.confirm != nil {
		if *m.binding.confirm {
			m.finished = true
			return tea.Quit
		}
		m.nav.GoBack()
		return m.buildStep()
	}
	m.nav.GoNext()
	return m.buildStep()
}

func (m *Model) back() tea.Cmd {
	if m.nav.IsFirst() {
		return nil
	}
	m.apply()
	m.nav.GoBack()
	return m.buildStep()
}

// apply copies bound values into the form state.
func (m *Model) apply() {
	if m.binding == nil {
		return
	}
	for name, v := range m.binding.text {
		m.form.Fields[name] = strings.TrimSpace(*v)
	}
	for name, v := range m.binding.bools {
		m.form.Fields[name] = *v
	}
}

func (m *Model) buildStep() tea.Cmd {
	m.binding, m.step = m.stepForm(m.nav.Active())
	theme := huh.ThemeBase()
	if m.styled {
		theme = huhTheme()
	}
	m.step = m.step.WithTheme(theme).WithShowHelp(false)
	return m.step.Init()
}

func (m *Model) stepForm(step wizard.Step) (*binding, *huh.Form) {
	b := &binding{text: map[string]*string{}, bools: map[string]*bool{}}
	var groups []*huh.Group

	switch step.ID {
	case "intro":
		groups = append(groups, huh.NewGroup(
			huh.NewNote().Title("Employment Application").
				Description("Answer each step; everything stays on this machine until you submit.").
				Next(true),
		))
	case "resume":
		desc := m.note
		if desc == "" {
			desc = "No resume imported. Run with --resume FILE to fill blank fields from a resume."
		}
		groups = append(groups, huh.NewGroup(huh.NewNote().Title("Resume Import").Description(desc).Next(true)))
	case "employment":
		for i := range m.form.Employment {
			e := &m.form.Employment[i]
			groups = append(groups, huh.NewGroup(
				huh.NewInput().Title(fmt.Sprintf("Employer #%d: Company", i+1)).Value(&e.Company),
				huh.NewInput().Title("Position").Value(&e.Position),
				huh.NewInput().Title("Date Employed (From)").Value(&e.DateFrom),
				huh.NewInput().Title("Date Employed (To)").Value(&e.DateTo),
				huh.NewText().Title("Primary Duties").Value(&e.Duties),
			))
		}
	case wizard.ReviewStepID:
		confirm := true
		b.confirm = &confirm
		groups = append(groups, huh.NewGroup(
			huh.NewNote().Title("Review").Description(m.summary()),
			huh.NewConfirm().Title("Finish and save the application?").Affirmative("Finish").Negative("Go back").Value(&confirm),
		))
	}

	if step.ID == "references" {
		for i := range m.form.References {
			r := &m.form.References[i]
			groups = append(groups, huh.NewGroup(
				huh.NewInput().Title(fmt.Sprintf("Reference #%d: Name / Title", i+1)).Value(&r.Name),
				huh.NewInput().Title("Company / Relationship").Value(&r.Company),
				huh.NewInput().Title("Contact No.").Value(&r.Phone),
			))
		}
	}

	var fields []huh.Field
	for _, def := range types.FieldsForStep(step.ID) {
		switch def.Kind {
		case types.KindBool:
			v := m.form.Bool(def.Name)
			b.bools[def.Name] = &v
			fields = append(fields, huh.NewConfirm().Title(def.Label).Value(&v))
		default:
			v := m.form.String(def.Name)
			b.text[def.Name] = &v
			fields = append(fields, huh.NewInput().Title(def.Label).Value(&v))
		}
	}
	if len(fields) > 0 {
		groups = append(groups, huh.NewGroup(fields...).Title(step.Label))
	}

	if len(groups) == 0 {
		groups = append(groups, huh.NewGroup(huh.NewNote().Title(step.Label).Next(true)))
	}
	return b, huh.NewForm(groups...)
}

// summary counts answered fields per step for the review note.
func (m *Model) summary() string {
	var lines []string
	for _, s := range m.nav.Catalogue().Steps {
		defs := types.FieldsForStep(s.ID)
		if len(defs) == 0 {
			continue
		}
		answered := 0
		for _, d := range defs {
			if d.Kind == types.KindBool {
				if m.form.Bool(d.Name) {
					answered++
				}
				continue
			}
			if strings.TrimSpace(m.form.String(d.Name)) != "" {
				answered++
			}
		}
		lines = append(lines, fmt.Sprintf("%-20s %d/%d", s.Label, answered, len(defs)))
	}
	employers := 0
	for _, e := range m.form.Employment {
		if strings.TrimSpace(e.Company) != "" {
			employers++
		}
	}
	lines = append(lines, fmt.Sprintf("%-20s %d", "Employers listed", employers))
	return strings.Join(lines, "\n")
}

func padded[T any](list []T, n int) []T {
	out := make([]T, n)
	copy(out, list)
	return out
}
