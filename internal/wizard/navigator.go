package wizard

// Navigator is the single source of truth for the active step.
// It is not safe for concurrent use; a wizard session is driven by one
// caller at a time.
type Navigator struct {
	cat   Catalogue
	state State
}

// NewNavigator validates the catalogue and starts at the first step.
func NewNavigator(cat Catalogue) (*Navigator, error) {
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &Navigator{
		cat:   cat,
		state: State{ActiveIndex: 0, Direction: Forward},
	}, nil
}

// Restore returns a navigator positioned at a previously saved state.
// Out-of-range indexes are clamped into the step list.
func Restore(cat Catalogue, st State) (*Navigator, error) {
	n, err := NewNavigator(cat)
	if err != nil {
		return nil, err
	}
	n.state.ActiveIndex = clamp(st.ActiveIndex, 0, n.lastIndex())
	if st.Direction == Back {
		n.state.Direction = Back
	}
	return n, nil
}

// Catalogue returns the step definitions the navigator was built with.
func (n *Navigator) Catalogue() Catalogue {
	return n.cat
}

// State returns a copy of the current state.
func (n *Navigator) State() State {
	return n.state
}

// ActiveIndex returns the index of the active step.
func (n *Navigator) ActiveIndex() int {
	return n.state.ActiveIndex
}

// Active returns the active step.
func (n *Navigator) Active() Step {
	return n.cat.Steps[n.state.ActiveIndex]
}

// StepCount returns the number of steps.
func (n *Navigator) StepCount() int {
	return len(n.cat.Steps)
}

// IsFirst reports whether the first step is active.
func (n *Navigator) IsFirst() bool {
	return n.state.ActiveIndex == 0
}

// IsLast reports whether the last step is active.
func (n *Navigator) IsLast() bool {
	return n.state.ActiveIndex == n.lastIndex()
}

// GoNext moves one step forward; it is a no-op on the last step apart from
// recording the direction.
func (n *Navigator) GoNext() {
	n.state.ActiveIndex = min(n.state.ActiveIndex+1, n.lastIndex())
	n.state.Direction = Forward
}

// GoBack moves one step back; it is a no-op on the first step apart from
// recording the direction.
func (n *Navigator) GoBack() {
	n.state.ActiveIndex = max(n.state.ActiveIndex-1, 0)
	n.state.Direction = Back
}

// GoTo jumps directly to index. Out-of-range requests are ignored and
// reported as false. Direction is left untouched.
func (n *Navigator) GoTo(index int) bool {
	if index < 0 || index >= len(n.cat.Steps) {
		return false
	}
	n.state.ActiveIndex = index
	return true
}

// GoToStep jumps to the step with the given id; unknown ids are ignored.
func (n *Navigator) GoToStep(id string) bool {
	return n.GoTo(n.cat.IndexOf(id))
}

// GoToBranch jumps to the first step of the branch with the given label.
func (n *Navigator) GoToBranch(label string) bool {
	for _, b := range n.cat.Branches {
		if b.Label == label {
			return n.GoTo(b.From)
		}
	}
	return false
}

// ActiveBranch returns the branch containing index, if any.
func (n *Navigator) ActiveBranch(index int) (Branch, bool) {
	return n.cat.BranchAt(index)
}

// Completed reports whether the step at index lies before the active step.
func (n *Navigator) Completed(index int) bool {
	return index < n.state.ActiveIndex
}

// VisibleSteps returns the steps of the active branch in order, excluding the
// review step, which is reached only through its own pill. When the active
// step belongs to no branch the full list minus the review step is returned.
func (n *Navigator) VisibleSteps() []IndexedStep {
	from, to := 0, n.lastIndex()
	if b, ok := n.ActiveBranch(n.state.ActiveIndex); ok {
		from, to = b.From, b.To
	}

	out := make([]IndexedStep, 0, to-from+1)
	for i := from; i <= to; i++ {
		s := n.cat.Steps[i]
		if n.cat.ReviewID != "" && s.ID == n.cat.ReviewID {
			continue
		}
		out = append(out, IndexedStep{Index: i, Step: s})
	}
	return out
}

// ReviewStep returns the pinned review step and its index.
func (n *Navigator) ReviewStep() (IndexedStep, bool) {
	i := n.cat.IndexOf(n.cat.ReviewID)
	if i < 0 {
		return IndexedStep{}, false
	}
	return IndexedStep{Index: i, Step: n.cat.Steps[i]}, true
}

// IndexedStep pairs a step with its position in the catalogue.
type IndexedStep struct {
	Index int  `json:"index"`
	Step  Step `json:"step"`
}

// Progress reports the 1-based position of the active step and the total.
func (n *Navigator) Progress() (current, total int) {
	return n.state.ActiveIndex + 1, len(n.cat.Steps)
}

func (n *Navigator) lastIndex() int {
	return len(n.cat.Steps) - 1
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
