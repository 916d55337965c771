// Package wizard tracks which step of the application wizard is active and
// derives what the progress indicator should emphasise.
//
// The navigator owns no form data. All operations are total: moves past either
// end are clamped and jumps to unknown steps are ignored.
package wizard

import (
	"fmt"
)

// Direction records which way the last move went. It only affects how a
// transition is presented.
type Direction string

const (
	Forward Direction = "forward"
	Back    Direction = "back"
)

// Step is one screen of the form.
type Step struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Order int    `json:"order"`
}

// Branch is a labelled, contiguous, inclusive range of step indexes.
type Branch struct {
	Label string `json:"label"`
	From  int    `json:"from"`
	To    int    `json:"to"`
}

// Contains reports whether index falls within the branch.
func (b Branch) Contains(index int) bool {
	return index >= b.From && index <= b.To
}

// State is the mutable part of a wizard session.
type State struct {
	ActiveIndex int       `json:"activeIndex"`
	Direction   Direction `json:"direction"`
}

// Catalogue is the static step and branch definition of a wizard.
type Catalogue struct {
	Steps    []Step   `json:"steps"`
	Branches []Branch `json:"branches"`
	// ReviewID names the step that is always reachable through its own pill
	// and never listed inside a branch.
	ReviewID string `json:"reviewId,omitempty"`
}

// OverlapError reports two branches that claim the same step index.
type OverlapError struct {
	First, Second string
	Index         int
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("branches %q and %q overlap at step %d", e.First, e.Second, e.Index)
}

// RangeError reports a branch whose range is inverted or outside the step list.
type RangeError struct {
	Branch    Branch
	StepCount int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("branch %q range [%d,%d] is invalid for %d steps", e.Branch.Label, e.Branch.From, e.Branch.To, e.StepCount)
}

// ValidateBranches checks that every branch lies inside [0, stepCount-1] and
// that no step index belongs to more than one branch. Gaps are allowed.
func ValidateBranches(branches []Branch, stepCount int) error {
	owner := make(map[int]string, stepCount)
	for _, b := range branches {
		if b.From < 0 || b.To >= stepCount || b.From > b.To {
			return &RangeError{Branch: b, StepCount: stepCount}
		}
		for i := b.From; i <= b.To; i++ {
			if prev, taken := owner[i]; taken {
				return &OverlapError{First: prev, Second: b.Label, Index: i}
			}
			owner[i] = b.Label
		}
	}
	return nil
}

// Validate checks the catalogue for duplicate step ids, an unknown review id,
// and overlapping branches.
func (c Catalogue) Validate() error {
	if len(c.Steps) == 0 {
		return fmt.Errorf("catalogue has no steps")
	}
	seen := make(map[string]bool, len(c.Steps))
	for _, s := range c.Steps {
		if s.ID == "" {
			return fmt.Errorf("step at order %d has no id", s.Order)
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate step id %q", s.ID)
		}
		seen[s.ID] = true
	}
	if c.ReviewID != "" && !seen[c.ReviewID] {
		return fmt.Errorf("review step %q is not in the catalogue", c.ReviewID)
	}
	return ValidateBranches(c.Branches, len(c.Steps))
}

// IndexOf returns the index of the step with the given id, or -1.
func (c Catalogue) IndexOf(id string) int {
	for i, s := range c.Steps {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// BranchAt returns the branch containing index. A validated catalogue has at
// most one such branch.
func (c Catalogue) BranchAt(index int) (Branch, bool) {
	for _, b := range c.Branches {
		if b.Contains(index) {
			return b, true
		}
	}
	return Branch{}, false
}
