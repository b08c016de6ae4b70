package puzzle

import "fmt"

// Kind is a shape's edge count. It identifies the visual category and is
// also the shape's movement period: kind 1 moves every turn.
type Kind int

// ShapeID identifies a movable shape within one session.
type ShapeID int

// Shape is a movable piece on the grid.
type Shape struct {
	ID        ShapeID
	Kind      Kind
	Pos       Vec
	Completed bool
}

// Ghost is a stationary target cell for a shape of the same kind.
type Ghost struct {
	Kind Kind
	Pos  Vec
}

// Registry owns the shapes and ghost targets of a session, plus the set of
// completed shape IDs. Shapes are kept in registration order, which is the
// order the resolver and tracker iterate in.
type Registry struct {
	grid      Grid
	shapes    []*Shape
	ghosts    []Ghost
	completed []ShapeID
	done      map[ShapeID]bool
	nextID    ShapeID
}

// NewRegistry creates an empty registry bound to the given grid.
func NewRegistry(grid Grid) *Registry {
	return &Registry{
		grid:   grid,
		done:   make(map[ShapeID]bool),
		nextID: 1,
	}
}

// Grid returns the grid the registry clamps positions into.
func (r *Registry) Grid() Grid {
	return r.grid
}

// Place creates a shape at the requested position, clamped into the grid.
func (r *Registry) Place(kind Kind, requested Vec) *Shape {
	s := &Shape{
		ID:   r.nextID,
		Kind: kind,
		Pos:  r.grid.Clamp(requested),
	}
	r.nextID++
	r.shapes = append(r.shapes, s)
	return s
}

// PlaceGhost creates a ghost target at the requested position, clamped
// into the grid.
func (r *Registry) PlaceGhost(kind Kind, requested Vec) Ghost {
	g := Ghost{Kind: kind, Pos: r.grid.Clamp(requested)}
	r.ghosts = append(r.ghosts, g)
	return g
}

// RegisterShapes places one shape per (kind, position) pair.
// The batch is validated first; on error nothing is created.
func (r *Registry) RegisterShapes(kinds []Kind, positions []Vec) error {
	if err := validateBatch(BatchShapes, kinds, positions); err != nil {
		return err
	}
	for i, k := range kinds {
		r.Place(k, positions[i])
	}
	return nil
}

// RegisterGhosts places one ghost per (kind, position) pair.
// The batch is validated first; on error nothing is created.
func (r *Registry) RegisterGhosts(kinds []Kind, positions []Vec) error {
	if err := validateBatch(BatchGhosts, kinds, positions); err != nil {
		return err
	}
	for i, k := range kinds {
		r.PlaceGhost(k, positions[i])
	}
	return nil
}

func validateBatch(batch string, kinds []Kind, positions []Vec) error {
	if len(kinds) != len(positions) {
		return &ConfigurationError{
			Batch:     batch,
			Kinds:     len(kinds),
			Positions: len(positions),
			Reason:    "kind and position counts do not match",
		}
	}
	for i, k := range kinds {
		if k < 1 {
			return &ConfigurationError{
				Batch:     batch,
				Kinds:     len(kinds),
				Positions: len(positions),
				Reason:    fmt.Sprintf("entry %d has no valid kind (%d)", i, k),
			}
		}
	}
	return nil
}

// Shapes returns the shapes in registration order.
// The returned pointers are live; callers outside the package should treat
// them as read-only.
func (r *Registry) Shapes() []*Shape {
	return r.shapes
}

// Shape returns the shape with the given ID, or nil.
func (r *Registry) Shape(id ShapeID) *Shape {
	for _, s := range r.shapes {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Ghosts returns a copy of the ghost targets.
func (r *Registry) Ghosts() []Ghost {
	out := make([]Ghost, len(r.ghosts))
	copy(out, r.ghosts)
	return out
}

// CompletedIDs returns completed shape IDs in completion order.
func (r *Registry) CompletedIDs() []ShapeID {
	out := make([]ShapeID, len(r.completed))
	copy(out, r.completed)
	return out
}

// IsCompleted reports whether the shape has reached a ghost target.
func (r *Registry) IsCompleted(id ShapeID) bool {
	return r.done[id]
}

// CompletedCount returns the number of completed shapes.
func (r *Registry) CompletedCount() int {
	return len(r.completed)
}

// markCompleted adds id to the completed set. Returns false if it was
// already there.
func (r *Registry) markCompleted(s *Shape) bool {
	if r.done[s.ID] {
		return false
	}
	r.done[s.ID] = true
	r.completed = append(r.completed, s.ID)
	s.Completed = true
	return true
}

// moveTo commits a new position for a shape.
func (r *Registry) moveTo(s *Shape, p Vec) {
	s.Pos = p
}
