package puzzle

// Eligible reports whether a shape of the given kind may move on the turn
// that brought the counter to moveCount, when the counter advances by
// period per turn. Kind 1 always moves. Otherwise the window
// [moveCount-period+1, moveCount] is scanned so that a period boundary
// stepped over by a large increment is still honoured exactly once.
func Eligible(kind Kind, moveCount, period int) bool {
	if kind == 1 {
		return true
	}
	if kind < 1 {
		return false
	}
	for i := 0; i < period; i++ {
		if (moveCount-i)%int(kind) == 0 {
			return true
		}
	}
	return false
}

// Resolver moves shapes for one turn and resolves destination conflicts.
type Resolver struct {
	grid    Grid
	reg     *Registry
	tracker *Tracker
	state   *MoveState
}

// NewResolver creates a resolver over a session's collaborators.
func NewResolver(reg *Registry, tracker *Tracker, state *MoveState) *Resolver {
	return &Resolver{
		grid:    reg.Grid(),
		reg:     reg,
		tracker: tracker,
		state:   state,
	}
}

// Resolve runs one turn in direction dir using the current move count and
// active period. The period is captured before any shape moves, so a
// completion during this turn only affects the next one.
//
// Shapes are processed in registry order and the order decides conflicts:
// an earlier shape claims a free cell first. Cells are reserved in the
// occupied set by
//   - incomplete shapes that are not eligible this turn (before anyone moves),
//   - shapes that moved (their destination),
//   - eligible shapes that were blocked (their current cell).
//
// Returns the events produced and whether the puzzle became complete.
func (r *Resolver) Resolve(dir Vec) ([]Event, bool) {
	moveCount := r.state.MoveCount
	period := r.state.ActivePeriod

	occupied := make(map[Vec]bool, len(r.reg.shapes))
	for _, s := range r.reg.shapes {
		if s.Completed {
			continue
		}
		if !Eligible(s.Kind, moveCount, period) {
			occupied[s.Pos] = true
		}
	}

	events := make([]Event, 0, len(r.reg.shapes))
	complete := false

	for _, s := range r.reg.shapes {
		if s.Completed {
			continue
		}

		if !Eligible(s.Kind, moveCount, period) {
			occupied[s.Pos] = true
			continue
		}

		candidate := r.grid.Wrap(s.Pos, dir)
		if r.grid.InBounds(candidate) && !occupied[candidate] {
			r.reg.moveTo(s, candidate)
			occupied[candidate] = true
			events = append(events, Event{Kind: EventShapeMoved, Shape: s.ID, Pos: candidate})
		} else {
			occupied[s.Pos] = true
			events = append(events, Event{Kind: EventShapeBlocked, Shape: s.ID, Pos: candidate})
		}

		if r.tracker.CheckShape(s) {
			events = append(events, Event{Kind: EventShapeCompleted, Shape: s.ID, Pos: s.Pos})
		}
		if !complete && r.tracker.PuzzleComplete() {
			complete = true
			events = append(events, Event{Kind: EventPuzzleCompleted})
		}
	}

	return events, complete
}
