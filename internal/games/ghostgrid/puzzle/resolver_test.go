package puzzle_test

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/ghostgrid/internal/games/ghostgrid/puzzle"
)

// turnDT is a step long enough to clear any cooldown.
const turnDT = 1.0

// newSession builds a session from (kind, x, y) triples.
func newSession(t *testing.T, w, h int, shapes, ghosts [][3]int) *puzzle.Session {
	t.Helper()
	grid, err := puzzle.NewGrid(w, h)
	if err != nil {
		t.Fatalf("NewGrid() failed: %v", err)
	}
	sess := puzzle.NewSession(grid, puzzle.Options{})
	sk, sp := split(shapes)
	gk, gp := split(ghosts)
	if err := sess.Setup(sk, sp, gk, gp); err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}
	return sess
}

func split(entries [][3]int) ([]puzzle.Kind, []puzzle.Vec) {
	kinds := make([]puzzle.Kind, len(entries))
	positions := make([]puzzle.Vec, len(entries))
	for i, e := range entries {
		kinds[i] = puzzle.Kind(e[0])
		positions[i] = puzzle.V(e[1], e[2])
	}
	return kinds, positions
}

func turn(sess *puzzle.Session, dir puzzle.Vec) puzzle.StepResult {
	return sess.Step(turnDT, puzzle.Axis{X: float64(dir.X), Y: float64(dir.Y)})
}

func positions(sess *puzzle.Session) []puzzle.Vec {
	shapes := sess.Registry().Shapes()
	out := make([]puzzle.Vec, len(shapes))
	for i, s := range shapes {
		out[i] = s.Pos
	}
	return out
}

func TestEligible(t *testing.T) {
	tests := []struct {
		name      string
		kind      puzzle.Kind
		moveCount int
		period    int
		expected  bool
	}{
		{"kind 1 always", 1, 7, 1, true},
		{"kind 1 with large period", 1, 3, 5, true},
		{"kind 2 on boundary", 2, 4, 1, true},
		{"kind 2 off boundary", 2, 3, 1, false},
		{"kind 3 window hits previous", 3, 4, 2, true},
		{"kind 3 window misses", 3, 5, 2, false},
		{"kind 5 skipped boundary", 5, 7, 3, true},
		{"kind 5 window too small", 5, 7, 2, false},
		{"invalid kind", 0, 4, 1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := puzzle.Eligible(tc.kind, tc.moveCount, tc.period); got != tc.expected {
				t.Errorf("Eligible(%d, %d, %d) = %v, expected %v",
					tc.kind, tc.moveCount, tc.period, got, tc.expected)
			}
		})
	}
}

func TestEligibilityWindowKind3Period2(t *testing.T) {
	for mc := 1; mc <= 30; mc++ {
		expected := mc%3 == 0 || (mc-1)%3 == 0
		if got := puzzle.Eligible(3, mc, 2); got != expected {
			t.Errorf("Eligible(3, %d, 2) = %v, expected %v", mc, got, expected)
		}
	}
}

func TestEligibleHonoursEachBoundaryOnce(t *testing.T) {
	// Counter advancing by 2 must let a kind-3 shape through once per
	// multiple of 3 crossed.
	const period = 2
	hits := 0
	for mc := period; mc <= 60; mc += period {
		if puzzle.Eligible(3, mc, period) {
			hits++
		}
	}
	if hits != 20 {
		t.Errorf("kind 3 eligible on %d turns up to 60, expected 20", hits)
	}
}

func TestSingleShapeCompletes(t *testing.T) {
	sess := newSession(t, 4, 4,
		[][3]int{{1, 0, 0}},
		[][3]int{{1, 1, 0}},
	)

	result := turn(sess, puzzle.Right)

	if !result.Turn {
		t.Fatal("expected a turn")
	}
	if got := positions(sess)[0]; got != puzzle.V(1, 0) {
		t.Errorf("shape at %v, expected (1,0)", got)
	}
	if !result.Has(puzzle.EventShapeCompleted) {
		t.Error("expected ShapeCompleted event")
	}
	if !result.Has(puzzle.EventPuzzleCompleted) || !result.Complete || !sess.Complete() {
		t.Error("expected puzzle to be complete")
	}
	if sess.MoveCount() != 1 {
		t.Errorf("MoveCount() = %d, expected 1", sess.MoveCount())
	}
}

func TestPeriodTwoShapeWaits(t *testing.T) {
	sess := newSession(t, 4, 4,
		[][3]int{{2, 0, 0}, {1, 3, 3}},
		nil,
	)

	turn(sess, puzzle.Right)

	pos := positions(sess)
	if pos[0] != puzzle.V(0, 0) {
		t.Errorf("kind 2 shape moved to %v on move 1, expected to stay", pos[0])
	}
	if pos[1] != puzzle.V(0, 3) {
		t.Errorf("kind 1 shape at %v, expected wrap to (0,3)", pos[1])
	}

	turn(sess, puzzle.Right)

	pos = positions(sess)
	if pos[0] != puzzle.V(1, 0) {
		t.Errorf("kind 2 shape at %v on move 2, expected (1,0)", pos[0])
	}
}

func TestFirstInOrderWinsContestedCell(t *testing.T) {
	// Both shapes start on the same cell and want the same destination.
	sess := newSession(t, 4, 4,
		[][3]int{{1, 0, 0}, {1, 0, 0}},
		nil,
	)

	result := turn(sess, puzzle.Right)

	pos := positions(sess)
	if pos[0] != puzzle.V(1, 0) {
		t.Errorf("first shape at %v, expected (1,0)", pos[0])
	}
	if pos[1] != puzzle.V(0, 0) {
		t.Errorf("second shape at %v, expected to remain at (0,0)", pos[1])
	}

	blocked := 0
	for _, e := range result.Events {
		if e.Kind == puzzle.EventShapeBlocked {
			blocked++
			if e.Pos != puzzle.V(1, 0) {
				t.Errorf("blocked event pos = %v, expected (1,0)", e.Pos)
			}
		}
	}
	if blocked != 1 {
		t.Errorf("expected 1 blocked event, got %d", blocked)
	}
}

func TestWaitingShapeReservesCellRegardlessOfOrder(t *testing.T) {
	// The mover is listed before the kind-3 shape it runs into.
	sess := newSession(t, 4, 4,
		[][3]int{{1, 0, 0}, {3, 1, 0}},
		nil,
	)

	turn(sess, puzzle.Right)

	pos := positions(sess)
	if pos[0] != puzzle.V(0, 0) {
		t.Errorf("mover at %v, expected to be blocked at (0,0)", pos[0])
	}
	if pos[1] != puzzle.V(1, 0) {
		t.Errorf("kind 3 shape at %v, expected (1,0)", pos[1])
	}
}

func TestBlockedShapeBlocksFollowers(t *testing.T) {
	sess := newSession(t, 5, 1,
		[][3]int{{1, 1, 0}, {1, 0, 0}, {4, 2, 0}},
		nil,
	)

	turn(sess, puzzle.Right)

	pos := positions(sess)
	expected := []puzzle.Vec{puzzle.V(1, 0), puzzle.V(0, 0), puzzle.V(2, 0)}
	for i := range expected {
		if pos[i] != expected[i] {
			t.Errorf("shape %d at %v, expected %v", i, pos[i], expected[i])
		}
	}
}

func TestTrainOfShapesMovesTogether(t *testing.T) {
	sess := newSession(t, 5, 1,
		[][3]int{{1, 0, 0}, {1, 1, 0}, {1, 2, 0}},
		nil,
	)

	turn(sess, puzzle.Right)

	pos := positions(sess)
	expected := []puzzle.Vec{puzzle.V(1, 0), puzzle.V(2, 0), puzzle.V(3, 0)}
	for i := range expected {
		if pos[i] != expected[i] {
			t.Errorf("shape %d at %v, expected %v", i, pos[i], expected[i])
		}
	}
}

func TestDiagonalOffGridIsBlocked(t *testing.T) {
	sess := newSession(t, 3, 3,
		[][3]int{{1, 2, 2}, {1, 0, 0}},
		nil,
	)

	result := sess.Step(turnDT, puzzle.Axis{X: 0.9, Y: 0.9})

	if result.Direction != puzzle.V(1, 1) {
		t.Fatalf("Direction = %v, expected (1,1)", result.Direction)
	}
	pos := positions(sess)
	if pos[0] != puzzle.V(2, 2) {
		t.Errorf("corner shape at %v, expected to stay at (2,2)", pos[0])
	}
	if pos[1] != puzzle.V(1, 1) {
		t.Errorf("inner shape at %v, expected (1,1)", pos[1])
	}
}

func TestClampDiagonalOption(t *testing.T) {
	grid := puzzle.Grid{W: 3, H: 3}
	sess := puzzle.NewSession(grid, puzzle.Options{ClampDiagonal: true})
	if err := sess.Setup([]puzzle.Kind{1}, []puzzle.Vec{puzzle.V(2, 2)}, nil, nil); err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}

	result := sess.Step(turnDT, puzzle.Axis{X: 0.9, Y: 0.8})

	if result.Direction != puzzle.Right {
		t.Fatalf("Direction = %v, expected Right", result.Direction)
	}
	if got := positions(sess)[0]; got != puzzle.V(0, 2) {
		t.Errorf("shape at %v, expected wrap to (0,2)", got)
	}
}

func TestCompletedShapeNeverMovesAgain(t *testing.T) {
	sess := newSession(t, 4, 4,
		[][3]int{{1, 0, 0}, {1, 0, 2}},
		[][3]int{{1, 1, 0}, {1, 3, 3}},
	)

	turn(sess, puzzle.Right)
	if !sess.Registry().IsCompleted(1) {
		t.Fatal("first shape should be completed")
	}

	turn(sess, puzzle.Right)
	turn(sess, puzzle.Up)

	if got := positions(sess)[0]; got != puzzle.V(1, 0) {
		t.Errorf("completed shape moved to %v", got)
	}
}

func TestCompletedShapeDoesNotReserveItsCell(t *testing.T) {
	// Completed shapes drop out of the turn entirely, so a later shape may
	// slide onto a ghost that is already taken. They never hold their cell,
	// not even on beats where their kind would be gated.
	sess := newSession(t, 4, 1,
		[][3]int{{1, 1, 0}, {1, 0, 0}},
		[][3]int{{1, 2, 0}},
	)

	turn(sess, puzzle.Right)
	if !sess.Registry().IsCompleted(1) {
		t.Fatal("first shape should be completed")
	}

	result := turn(sess, puzzle.Right)

	if got := positions(sess)[1]; got != puzzle.V(2, 0) {
		t.Errorf("second shape at %v, expected (2,0)", got)
	}
	if !result.Complete {
		t.Error("second shape on a matching ghost should complete the puzzle")
	}
}

func TestGatingAdaptsOnNextTurn(t *testing.T) {
	// A completes on turn 1 and raises the period to 3. B would be eligible
	// under period 3 at move 1, but must wait for the next turn.
	sess := newSession(t, 6, 6,
		[][3]int{{1, 0, 0}, {3, 0, 2}},
		[][3]int{{1, 1, 0}},
	)

	turn(sess, puzzle.Right)

	if sess.ActivePeriod() != 3 {
		t.Errorf("ActivePeriod() = %d, expected 3", sess.ActivePeriod())
	}
	if sess.MoveCount() != 1 {
		t.Errorf("MoveCount() = %d, expected 1", sess.MoveCount())
	}
	if got := positions(sess)[1]; got != puzzle.V(0, 2) {
		t.Errorf("kind 3 shape moved to %v on the completing turn", got)
	}

	turn(sess, puzzle.Right)

	if sess.MoveCount() != 4 {
		t.Errorf("MoveCount() = %d, expected 4", sess.MoveCount())
	}
	if got := positions(sess)[1]; got != puzzle.V(1, 2) {
		t.Errorf("kind 3 shape at %v, expected (1,2)", got)
	}
}

func TestPeriodFollowsFirstIncompleteShape(t *testing.T) {
	sess := newSession(t, 6, 6,
		[][3]int{{2, 0, 0}, {3, 0, 2}},
		[][3]int{{2, 1, 0}},
	)

	turn(sess, puzzle.Right) // move 1: nobody eligible
	turn(sess, puzzle.Right) // move 2: kind 2 completes

	if !sess.Registry().IsCompleted(1) {
		t.Fatal("kind 2 shape should be completed")
	}
	if sess.ActivePeriod() != 3 {
		t.Fatalf("ActivePeriod() = %d, expected 3", sess.ActivePeriod())
	}

	turn(sess, puzzle.Right) // move 5: window 5,4,3 hits 3

	if sess.MoveCount() != 5 {
		t.Errorf("MoveCount() = %d, expected 5", sess.MoveCount())
	}
	if got := positions(sess)[1]; got != puzzle.V(1, 2) {
		t.Errorf("kind 3 shape at %v, expected (1,2)", got)
	}
}

func TestBoundsInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	dirs := []puzzle.Axis{
		{X: 1}, {X: -1}, {Y: 1}, {Y: -1},
		{X: 1, Y: 1}, {X: -1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: -1},
	}

	for trial := 0; trial < 20; trial++ {
		w, h := 2+rng.Intn(5), 2+rng.Intn(5)
		shapes := make([][3]int, 1+rng.Intn(5))
		for i := range shapes {
			shapes[i] = [3]int{1 + rng.Intn(4), rng.Intn(w), rng.Intn(h)}
		}
		sess := newSession(t, w, h, shapes, nil)
		grid := sess.Grid()

		for step := 0; step < 100; step++ {
			sess.Step(turnDT, dirs[rng.Intn(len(dirs))])
			for _, s := range sess.Registry().Shapes() {
				if !grid.InBounds(s.Pos) {
					t.Fatalf("trial %d step %d: shape %d at %v outside %dx%d",
						trial, step, s.ID, s.Pos, w, h)
				}
			}
		}
	}
}
