package puzzle_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/ghostgrid/internal/games/ghostgrid/puzzle"
)

func TestPlaceClampsIntoBounds(t *testing.T) {
	reg := puzzle.NewRegistry(puzzle.Grid{W: 4, H: 3})

	s := reg.Place(2, puzzle.V(7, -2))
	if s.Pos != puzzle.V(3, 0) {
		t.Errorf("Place() pos = %v, expected (3,0)", s.Pos)
	}
	g := reg.PlaceGhost(2, puzzle.V(-1, 5))
	if g.Pos != puzzle.V(0, 2) {
		t.Errorf("PlaceGhost() pos = %v, expected (0,2)", g.Pos)
	}
}

func TestPlaceAssignsIDsInOrder(t *testing.T) {
	reg := puzzle.NewRegistry(puzzle.Grid{W: 4, H: 4})

	a := reg.Place(1, puzzle.V(0, 0))
	b := reg.Place(3, puzzle.V(1, 0))

	if a.ID == b.ID {
		t.Fatalf("shapes share ID %d", a.ID)
	}
	shapes := reg.Shapes()
	if len(shapes) != 2 || shapes[0] != a || shapes[1] != b {
		t.Errorf("Shapes() should list shapes in registration order")
	}
	if reg.Shape(b.ID) != b {
		t.Errorf("Shape(%d) did not return the placed shape", b.ID)
	}
	if reg.Shape(99) != nil {
		t.Error("Shape(99) should be nil")
	}
}

func TestRegisterShapesMismatch(t *testing.T) {
	reg := puzzle.NewRegistry(puzzle.Grid{W: 4, H: 4})

	err := reg.RegisterShapes([]puzzle.Kind{1, 2}, []puzzle.Vec{puzzle.V(0, 0)})

	var cfgErr *puzzle.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("RegisterShapes() error = %v, expected ConfigurationError", err)
	}
	if cfgErr.Batch != puzzle.BatchShapes || cfgErr.Kinds != 2 || cfgErr.Positions != 1 {
		t.Errorf("unexpected error fields: %+v", cfgErr)
	}
	if len(reg.Shapes()) != 0 {
		t.Errorf("expected no shapes after rejected batch, got %d", len(reg.Shapes()))
	}
}

func TestRegisterRejectsMissingKind(t *testing.T) {
	reg := puzzle.NewRegistry(puzzle.Grid{W: 4, H: 4})

	err := reg.RegisterGhosts(
		[]puzzle.Kind{1, 0},
		[]puzzle.Vec{puzzle.V(0, 0), puzzle.V(1, 1)},
	)

	var cfgErr *puzzle.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("RegisterGhosts() error = %v, expected ConfigurationError", err)
	}
	if cfgErr.Batch != puzzle.BatchGhosts {
		t.Errorf("Batch = %q, expected %q", cfgErr.Batch, puzzle.BatchGhosts)
	}
	if len(reg.Ghosts()) != 0 {
		t.Errorf("expected no ghosts after rejected batch, got %d", len(reg.Ghosts()))
	}
}

func TestBatchesAreIndependent(t *testing.T) {
	grid := puzzle.Grid{W: 4, H: 4}
	sess := puzzle.NewSession(grid, puzzle.Options{})

	err := sess.Setup(
		[]puzzle.Kind{1, 2}, []puzzle.Vec{puzzle.V(0, 0), puzzle.V(1, 1)},
		[]puzzle.Kind{1, 2}, []puzzle.Vec{puzzle.V(3, 3)},
	)

	var cfgErr *puzzle.ConfigurationError
	if !errors.As(err, &cfgErr) || cfgErr.Batch != puzzle.BatchGhosts {
		t.Fatalf("Setup() error = %v, expected ghost ConfigurationError", err)
	}
	if n := len(sess.Registry().Shapes()); n != 2 {
		t.Errorf("expected 2 shapes to survive the ghost failure, got %d", n)
	}
	if n := len(sess.Registry().Ghosts()); n != 0 {
		t.Errorf("expected 0 ghosts, got %d", n)
	}
}

func TestSetupWithBothBatchesValid(t *testing.T) {
	sess := puzzle.NewSession(puzzle.Grid{W: 4, H: 4}, puzzle.Options{})

	err := sess.Setup(
		[]puzzle.Kind{1}, []puzzle.Vec{puzzle.V(0, 0)},
		[]puzzle.Kind{1}, []puzzle.Vec{puzzle.V(1, 0)},
	)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
}
