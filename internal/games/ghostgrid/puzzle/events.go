package puzzle

// EventKind identifies what an Event reports.
type EventKind uint8

const (
	EventMoveCount       EventKind = iota // Move counter advanced; MoveCount is set
	EventShapeMoved                       // Shape committed a new position; Shape and Pos are set
	EventShapeBlocked                     // Eligible shape could not move; Pos is the refused cell
	EventShapeCompleted                   // Shape reached a matching ghost
	EventPuzzleCompleted                  // Every shape is completed
)

// String returns the string representation of an event kind.
func (k EventKind) String() string {
	switch k {
	case EventMoveCount:
		return "MoveCount"
	case EventShapeMoved:
		return "ShapeMoved"
	case EventShapeBlocked:
		return "ShapeBlocked"
	case EventShapeCompleted:
		return "ShapeCompleted"
	case EventPuzzleCompleted:
		return "PuzzleCompleted"
	default:
		return "Unknown"
	}
}

// Event is a single observable change. Fields not relevant to Kind are zero.
type Event struct {
	Kind      EventKind
	Shape     ShapeID
	Pos       Vec
	MoveCount int
}

// StepResult is returned by Session.Step.
type StepResult struct {
	Turn      bool    // A turn was triggered this step
	Direction Vec     // Quantized direction of the turn (zero when Turn is false)
	Events    []Event // Events in the order they happened
	Complete  bool    // Puzzle is complete after this step
}

// Has returns true if any event of the given kind was emitted.
func (r StepResult) Has(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
