package wizard

// BranchPill is one entry of the branch indicator row.
type BranchPill struct {
	Branch
	Active bool `json:"active"`
}

// StepPill is one entry of the step row.
type StepPill struct {
	IndexedStep
	Active    bool `json:"active"`
	Completed bool `json:"completed"`
}

// View is a render-ready snapshot of the navigator.
type View struct {
	State    State        `json:"state"`
	Active   Step         `json:"active"`
	Current  int          `json:"current"`
	Total    int          `json:"total"`
	Branches []BranchPill `json:"branches"`
	Steps    []StepPill   `json:"steps"`
	Review   *StepPill    `json:"review,omitempty"`
}

// Snapshot derives the progress indicator contents from the current state.
func (n *Navigator) Snapshot() View {
	current, total := n.Progress()
	v := View{
		State:   n.state,
		Active:  n.Active(),
		Current: current,
		Total:   total,
	}

	for _, b := range n.cat.Branches {
		v.Branches = append(v.Branches, BranchPill{Branch: b, Active: b.Contains(n.state.ActiveIndex)})
	}
	for _, s := range n.VisibleSteps() {
		v.Steps = append(v.Steps, n.pill(s))
	}
	if r, ok := n.ReviewStep(); ok {
		p := n.pill(r)
		v.Review = &p
	}
	return v
}

func (n *Navigator) pill(s IndexedStep) StepPill {
	return StepPill{
		IndexedStep: s,
		Active:      s.Index == n.state.ActiveIndex,
		Completed:   n.Completed(s.Index),
	}
}
