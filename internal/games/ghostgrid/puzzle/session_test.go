package puzzle_test

import (
	"testing"

	"github.com/vovakirdan/ghostgrid/internal/games/ghostgrid/puzzle"
)

func TestCooldownGatesTurns(t *testing.T) {
	sess := newSession(t, 8, 1, [][3]int{{1, 0, 0}}, nil)
	right := puzzle.Axis{X: 1}

	steps := []struct {
		dt       float64
		in       puzzle.Axis
		expected bool
	}{
		{0.25, right, true},         // cooldown starts expired
		{0.25, right, false},        // 0.05 left
		{0.25, right, true},         // -0.2
		{0.25, puzzle.Axis{}, false}, // idle input never turns
		{0.25, puzzle.Axis{}, false},
		{0.01, right, true}, // cooldown kept decaying while idle
	}

	for i, st := range steps {
		result := sess.Step(st.dt, st.in)
		if result.Turn != st.expected {
			t.Errorf("step %d: Turn = %v, expected %v", i, result.Turn, st.expected)
		}
	}

	if sess.Turns() != 3 || sess.MoveCount() != 3 {
		t.Errorf("Turns() = %d, MoveCount() = %d, expected 3 and 3", sess.Turns(), sess.MoveCount())
	}
}

func TestCustomCooldown(t *testing.T) {
	grid := puzzle.Grid{W: 4, H: 4}
	sess := puzzle.NewSession(grid, puzzle.Options{Cooldown: 1.0})
	if err := sess.Setup([]puzzle.Kind{1}, []puzzle.Vec{puzzle.V(0, 0)}, nil, nil); err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}

	sess.Step(0.5, puzzle.Axis{Y: 1})
	if sess.State().CooldownRemaining != 1.0 {
		t.Errorf("CooldownRemaining = %v, expected 1.0", sess.State().CooldownRemaining)
	}
	if r := sess.Step(0.5, puzzle.Axis{Y: 1}); r.Turn {
		t.Error("turn triggered before cooldown elapsed")
	}
	if r := sess.Step(0.5, puzzle.Axis{Y: 1}); !r.Turn {
		t.Error("turn not triggered after cooldown elapsed")
	}
}

func TestEventOrder(t *testing.T) {
	sess := newSession(t, 4, 4,
		[][3]int{{1, 0, 0}},
		[][3]int{{1, 1, 0}},
	)

	result := turn(sess, puzzle.Right)

	expected := []puzzle.EventKind{
		puzzle.EventMoveCount,
		puzzle.EventShapeMoved,
		puzzle.EventShapeCompleted,
		puzzle.EventPuzzleCompleted,
	}
	if len(result.Events) != len(expected) {
		t.Fatalf("got %d events, expected %d: %+v", len(result.Events), len(expected), result.Events)
	}
	for i, kind := range expected {
		if result.Events[i].Kind != kind {
			t.Errorf("event %d = %v, expected %v", i, result.Events[i].Kind, kind)
		}
	}
	if result.Events[0].MoveCount != 1 {
		t.Errorf("MoveCount event = %d, expected 1", result.Events[0].MoveCount)
	}
}

func TestNoTurnsAfterCompletion(t *testing.T) {
	sess := newSession(t, 4, 4,
		[][3]int{{1, 0, 0}},
		[][3]int{{1, 1, 0}},
	)
	turn(sess, puzzle.Right)

	result := turn(sess, puzzle.Right)

	if result.Turn {
		t.Error("turn processed after completion")
	}
	if !result.Complete {
		t.Error("StepResult.Complete should stay true")
	}
	if sess.MoveCount() != 1 {
		t.Errorf("MoveCount() = %d, expected 1", sess.MoveCount())
	}
}

func TestCompletionIsMonotonic(t *testing.T) {
	sess := newSession(t, 5, 5,
		[][3]int{{1, 0, 0}, {2, 0, 2}, {1, 0, 4}},
		[][3]int{{1, 1, 0}, {2, 2, 2}, {1, 3, 4}},
	)
	dirs := []puzzle.Vec{puzzle.Right, puzzle.Right, puzzle.Up, puzzle.Right, puzzle.Down, puzzle.Right, puzzle.Left, puzzle.Right}

	prev := map[puzzle.ShapeID]bool{}
	for i, d := range dirs {
		turn(sess, d)
		ids := sess.Registry().CompletedIDs()
		now := map[puzzle.ShapeID]bool{}
		for _, id := range ids {
			now[id] = true
		}
		for id := range prev {
			if !now[id] {
				t.Fatalf("turn %d: shape %d lost completion", i, id)
			}
		}
		prev = now

		tracker := puzzle.NewTracker(sess.Registry(), &puzzle.MoveState{})
		if tracker.PuzzleComplete() != (len(ids) == len(sess.Registry().Shapes())) {
			t.Fatalf("turn %d: PuzzleComplete() disagrees with completed count", i)
		}
	}
}

func TestTrackerOnEmptyRegistry(t *testing.T) {
	reg := puzzle.NewRegistry(puzzle.Grid{W: 2, H: 2})
	state := puzzle.NewMoveState()
	tracker := puzzle.NewTracker(reg, &state)

	if !tracker.PuzzleComplete() {
		t.Error("PuzzleComplete() with no shapes should be true")
	}
	if tracker.SmallestActiveKind() != 1 {
		t.Errorf("SmallestActiveKind() = %d, expected 1", tracker.SmallestActiveKind())
	}
}

func TestCheckShapeIsIdempotent(t *testing.T) {
	reg := puzzle.NewRegistry(puzzle.Grid{W: 4, H: 4})
	a := reg.Place(2, puzzle.V(1, 1))
	reg.Place(4, puzzle.V(3, 3))
	reg.PlaceGhost(2, puzzle.V(1, 1))
	reg.PlaceGhost(2, puzzle.V(1, 1))
	state := puzzle.NewMoveState()
	tracker := puzzle.NewTracker(reg, &state)

	if !tracker.CheckShape(a) {
		t.Fatal("CheckShape() should complete the shape")
	}
	if tracker.CheckShape(a) {
		t.Error("second CheckShape() should not report a new completion")
	}
	if n := reg.CompletedCount(); n != 1 {
		t.Errorf("CompletedCount() = %d, expected 1", n)
	}
	if state.ActivePeriod != 4 {
		t.Errorf("ActivePeriod = %d, expected 4", state.ActivePeriod)
	}
}

func TestKindMismatchDoesNotComplete(t *testing.T) {
	reg := puzzle.NewRegistry(puzzle.Grid{W: 4, H: 4})
	a := reg.Place(3, puzzle.V(2, 2))
	reg.PlaceGhost(2, puzzle.V(2, 2))
	state := puzzle.NewMoveState()
	tracker := puzzle.NewTracker(reg, &state)

	if tracker.CheckShape(a) {
		t.Error("kind 3 shape completed on kind 2 ghost")
	}
	if state.ActivePeriod != 1 {
		t.Errorf("ActivePeriod = %d, expected unchanged 1", state.ActivePeriod)
	}
}

func TestSnapshotDeterminism(t *testing.T) {
	build := func() *puzzle.Session {
		return newSession(t, 6, 5,
			[][3]int{{1, 0, 0}, {2, 3, 3}, {3, 5, 4}},
			[][3]int{{1, 4, 0}, {2, 0, 3}, {3, 1, 1}},
		)
	}
	inputs := []puzzle.Vec{puzzle.Right, puzzle.Up, puzzle.Left, puzzle.Left, puzzle.Down, puzzle.Right}

	a, b := build(), build()
	for _, d := range inputs {
		turn(a, d)
		turn(b, d)
		if a.Snapshot() != b.Snapshot() {
			t.Fatal("identical sessions diverged")
		}
	}

	before := a.Snapshot()
	turn(a, puzzle.Up)
	if a.Snapshot() == before {
		t.Error("Snapshot() did not change after a turn")
	}
}

func TestShapeAndGhostLookup(t *testing.T) {
	sess := newSession(t, 4, 4,
		[][3]int{{2, 1, 2}},
		[][3]int{{2, 3, 0}},
	)

	if s := sess.ShapeAt(puzzle.V(1, 2)); s == nil || s.Kind != 2 {
		t.Errorf("ShapeAt((1,2)) = %v, expected kind 2 shape", s)
	}
	if s := sess.ShapeAt(puzzle.V(0, 0)); s != nil {
		t.Errorf("ShapeAt((0,0)) = %v, expected nil", s)
	}
	if g, ok := sess.GhostAt(puzzle.V(3, 0)); !ok || g.Kind != 2 {
		t.Errorf("GhostAt((3,0)) = %v, %v", g, ok)
	}
}

func TestShapeAtPrefersMovingShape(t *testing.T) {
	// A completes on turn 1; the kind 2 shape then needs two more turns to
	// reach A's cell and is not home there.
	sess := newSession(t, 4, 1,
		[][3]int{{1, 1, 0}, {2, 0, 0}},
		[][3]int{{1, 2, 0}, {2, 3, 0}},
	)

	for i := 0; i < 3; i++ {
		turn(sess, puzzle.Right)
	}

	if got := positions(sess); got[0] != puzzle.V(2, 0) || got[1] != puzzle.V(2, 0) {
		t.Fatalf("positions = %v, expected both shapes at (2,0)", got)
	}

	s := sess.ShapeAt(puzzle.V(2, 0))
	if s == nil || s.Kind != 2 || s.Completed {
		t.Errorf("ShapeAt((2,0)) = %+v, expected the moving kind 2 shape", s)
	}
}
