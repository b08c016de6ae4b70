package puzzle

import "fmt"

// Grid is the fixed-size toroidal board. Width and height never change
// after construction.
type Grid struct {
	W int
	H int
}

// NewGrid creates a grid with the given dimensions.
func NewGrid(w, h int) (Grid, error) {
	if w <= 0 || h <= 0 {
		return Grid{}, fmt.Errorf("puzzle: invalid grid size %dx%d", w, h)
	}
	return Grid{W: w, H: h}, nil
}

// InBounds returns true if the position lies on the grid.
func (g Grid) InBounds(p Vec) bool {
	return p.X >= 0 && p.X < g.W && p.Y >= 0 && p.Y < g.H
}

// Clamp pulls each coordinate of p into the grid.
func (g Grid) Clamp(p Vec) Vec {
	return Vec{X: clamp(p.X, 0, g.W-1), Y: clamp(p.Y, 0, g.H-1)}
}

// Wrap applies a single step to p, wrapping around the edge the step
// leaves through. Only the four cardinal unit steps wrap; anything else
// (including diagonals) is plain vector addition and may leave the grid.
func (g Grid) Wrap(p Vec, dir Vec) Vec {
	maxX, maxY := g.W-1, g.H-1
	switch {
	case dir == Up && p.Y == maxY:
		return Vec{X: p.X, Y: 0}
	case dir == Down && p.Y == 0:
		return Vec{X: p.X, Y: maxY}
	case dir == Left && p.X == 0:
		return Vec{X: maxX, Y: p.Y}
	case dir == Right && p.X == maxX:
		return Vec{X: 0, Y: p.Y}
	default:
		return p.Add(dir)
	}
}

// Dark reports whether the tile at p uses the dark checkerboard shade.
func (g Grid) Dark(p Vec) bool {
	return (p.X%2 == 0) != (p.Y%2 == 0)
}

// Cells returns the number of cells on the grid.
func (g Grid) Cells() int {
	return g.W * g.H
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
