package tui

import (
	"fmt"
	"strings"

	"github.com/jonathan/application-wizard/internal/wizard"
)

// Step markers for plain output.
const (
	markDone    = "[x]"
	markActive  = "[>]"
	markPending = "[ ]"
)

// RenderProgress draws the branch row, the step row of the active branch and
// a position line. With styled false the output has no escape sequences, for
// pipes and logs.
func RenderProgress(v wizard.View, styled bool) string {
	var b strings.Builder

	branches := make([]string, 0, len(v.Branches))
	for _, br := range v.Branches {
		branches = append(branches, branchLabel(br, styled))
	}
	b.WriteString(strings.Join(branches, "  ›  "))
	b.WriteString("\n")

	steps := make([]string, 0, len(v.Steps)+1)
	for _, s := range v.Steps {
		steps = append(steps, stepLabel(s, styled))
	}
	if v.Review != nil {
		steps = append(steps, "|", stepLabel(*v.Review, styled))
	}
	b.WriteString(strings.Join(steps, "  "))
	b.WriteString("\n")

	position := fmt.Sprintf("Step %d of %d: %s", v.Current, v.Total, v.Active.Label)
	if styled {
		position = styleHeader.Render(position)
	}
	b.WriteString(position)
	return b.String()
}

func branchLabel(br wizard.BranchPill, styled bool) string {
	switch {
	case !styled && br.Active:
		return "[" + br.Label + "]"
	case !styled:
		return br.Label
	case br.Active:
		return styleBranchActive.Render(br.Label)
	default:
		return styleBranch.Render(br.Label)
	}
}

func stepLabel(s wizard.StepPill, styled bool) string {
	mark := markPending
	style := styleStep
	switch {
	case s.Active:
		mark, style = markActive, styleStepActive
	case s.Completed:
		mark, style = markDone, styleStepDone
	}
	label := mark + " " + s.Step.Label
	if !styled {
		return label
	}
	return style.Render(label)
}
