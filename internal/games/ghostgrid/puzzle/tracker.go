package puzzle

// Tracker detects shape and puzzle completion and keeps the session's
// active period in step with the remaining shapes.
type Tracker struct {
	reg   *Registry
	state *MoveState
}

// NewTracker creates a tracker over the given registry and move state.
func NewTracker(reg *Registry, state *MoveState) *Tracker {
	return &Tracker{reg: reg, state: state}
}

// CheckShape completes s if it sits on a ghost of its own kind.
// The active period is recomputed on every match, even when s was already
// completed. Returns true only when s became completed by this call.
func (t *Tracker) CheckShape(s *Shape) bool {
	newly := false
	for _, g := range t.reg.ghosts {
		if g.Kind != s.Kind || g.Pos != s.Pos {
			continue
		}
		if t.reg.markCompleted(s) {
			newly = true
		}
		t.state.ActivePeriod = t.SmallestActiveKind()
	}
	return newly
}

// SmallestActiveKind returns the kind of the first incomplete shape in
// registry order, or 1 when every shape is completed. This is the smallest
// kind only when shapes are listed in ascending kind order.
func (t *Tracker) SmallestActiveKind() int {
	for _, s := range t.reg.shapes {
		if !t.reg.done[s.ID] {
			return int(s.Kind)
		}
	}
	return 1
}

// PuzzleComplete returns true if every shape is completed.
// A registry with no shapes is complete.
func (t *Tracker) PuzzleComplete() bool {
	return len(t.reg.completed) == len(t.reg.shapes)
}
