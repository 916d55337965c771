package tui

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jonathan/application-wizard/internal/types"
	"github.com/jonathan/application-wizard/internal/wizard"
)

// ErrAborted is returned by Run when the applicant quits before confirming
// the review step. The returned form still holds everything entered.
var ErrAborted = errors.New("wizard aborted")

// RunOptions configures an interactive wizard session.
type RunOptions struct {
	In     io.Reader
	Out    io.Writer
	Styled bool
	// Note is shown on the resume import step.
	Note string
}

// Run walks the applicant through every step of the default catalogue,
// starting from form, and returns the collected form state.
func Run(form types.FormState, opts RunOptions) (types.FormState, error) {
	nav, err := wizard.NewNavigator(wizard.DefaultCatalogue())
	if err != nil {
		return form, err
	}

	var progOpts []tea.ProgramOption
	if opts.In != nil {
		progOpts = append(progOpts, tea.WithInput(opts.In))
	}
	if opts.Out != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Out))
	}

	m := NewModel(nav, form, opts.Note, opts.Styled)
	final, err := tea.NewProgram(m, progOpts...).Run()
	if err != nil {
		return m.Form(), fmt.Errorf("wizard terminated: %w", err)
	}
	if fm, ok := final.(*Model); ok {
		m = fm
	}
	if !m.Finished() {
		return m.Form(), ErrAborted
	}
	return m.Form(), nil
}
