package puzzle

import (
	"errors"
	"fmt"
	"hash/fnv"
)

// Options configures a session.
type Options struct {
	Cooldown      float64 // Seconds between turns; <= 0 means DefaultCooldown
	ClampDiagonal bool    // Reduce diagonal input to its dominant axis
}

// Session is one play-through of a puzzle. It owns the registry, the move
// state and the collaborators that mutate them. A Session is not safe for
// concurrent use; the host calls Step once per tick.
type Session struct {
	grid      Grid
	registry  *Registry
	state     MoveState
	scheduler Scheduler
	tracker   *Tracker
	resolver  *Resolver
	complete  bool
	turns     int
}

// NewSession creates an empty session on the given grid.
func NewSession(grid Grid, opts Options) *Session {
	s := &Session{
		grid:      grid,
		registry:  NewRegistry(grid),
		state:     NewMoveState(),
		scheduler: NewScheduler(opts.Cooldown, opts.ClampDiagonal),
	}
	s.tracker = NewTracker(s.registry, &s.state)
	s.resolver = NewResolver(s.registry, s.tracker, &s.state)
	return s
}

// Setup registers the shape batch and the ghost batch. Both batches are
// always attempted; a rejected batch creates nothing and its
// *ConfigurationError is included in the joined result.
func (s *Session) Setup(shapeKinds []Kind, shapePos []Vec, ghostKinds []Kind, ghostPos []Vec) error {
	shapeErr := s.registry.RegisterShapes(shapeKinds, shapePos)
	ghostErr := s.registry.RegisterGhosts(ghostKinds, ghostPos)
	return errors.Join(shapeErr, ghostErr)
}

// Step advances the session by one tick of dt seconds with the given input.
// Once the puzzle is complete Step does nothing.
func (s *Session) Step(dt float64, in Axis) StepResult {
	if s.complete {
		return StepResult{Complete: true}
	}

	dir, turn := s.scheduler.Tick(&s.state, dt, in)
	if !turn {
		return StepResult{}
	}

	s.state.MoveCount += s.state.ActivePeriod
	s.turns++

	events := []Event{{Kind: EventMoveCount, MoveCount: s.state.MoveCount}}
	moved, complete := s.resolver.Resolve(dir)
	events = append(events, moved...)
	s.complete = complete

	s.scheduler.Arm(&s.state)

	return StepResult{
		Turn:      true,
		Direction: dir,
		Events:    events,
		Complete:  s.complete,
	}
}

// Grid returns the session's grid.
func (s *Session) Grid() Grid {
	return s.grid
}

// Registry returns the session's registry for read access.
func (s *Session) Registry() *Registry {
	return s.registry
}

// State returns a copy of the move state.
func (s *Session) State() MoveState {
	return s.state
}

// MoveCount returns the cumulative move counter.
func (s *Session) MoveCount() int {
	return s.state.MoveCount
}

// ActivePeriod returns the period used by the next turn.
func (s *Session) ActivePeriod() int {
	return s.state.ActivePeriod
}

// Turns returns the number of turns taken, which differs from MoveCount
// once the active period grows past 1.
func (s *Session) Turns() int {
	return s.turns
}

// Complete returns true once every shape has reached a ghost.
func (s *Session) Complete() bool {
	return s.complete
}

// ShapeAt returns the shape to show at p, or nil. Completed shapes do not
// hold their cell, so a moving shape can share it; the moving one wins.
func (s *Session) ShapeAt(p Vec) *Shape {
	var found *Shape
	for _, sh := range s.registry.shapes {
		if sh.Pos != p {
			continue
		}
		if !sh.Completed {
			return sh
		}
		if found == nil {
			found = sh
		}
	}
	return found
}

// GhostAt returns the first ghost at p.
func (s *Session) GhostAt(p Vec) (Ghost, bool) {
	for _, g := range s.registry.ghosts {
		if g.Pos == p {
			return g, true
		}
	}
	return Ghost{}, false
}

// Snapshot returns a hash of the session state, for determinism checks.
func (s *Session) Snapshot() uint64 {
	h := fnv.New64a()

	fmt.Fprintf(h, "G:%dx%d;", s.grid.W, s.grid.H)
	fmt.Fprintf(h, "S:")
	for _, sh := range s.registry.shapes {
		fmt.Fprintf(h, "%d:%d:%d:%d:%v,", sh.ID, sh.Kind, sh.Pos.X, sh.Pos.Y, sh.Completed)
	}
	fmt.Fprintf(h, ";M:%d:%d:%d;C:%v", s.state.MoveCount, s.state.ActivePeriod, s.turns, s.complete)

	return h.Sum64()
}
