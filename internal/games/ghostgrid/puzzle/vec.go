// Package puzzle provides the core rules for the ghostgrid sliding puzzle.
// This package is UI-agnostic and deterministic: the platform feeds it elapsed
// time and an input axis, and reads back the events it produced.
package puzzle

import (
	"fmt"
	"math"
)

// Vec is an integer grid vector. X grows to the right, Y grows upward,
// so row 0 is the bottom row of the grid.
type Vec struct {
	X int
	Y int
}

// V is a convenience constructor for Vec.
func V(x, y int) Vec {
	return Vec{X: x, Y: y}
}

// Unit direction vectors.
var (
	Zero  = Vec{}
	Up    = Vec{X: 0, Y: 1}
	Down  = Vec{X: 0, Y: -1}
	Left  = Vec{X: -1, Y: 0}
	Right = Vec{X: 1, Y: 0}
)

// Add returns the component-wise sum of two vectors.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// IsZero reports whether both components are zero.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// String returns a string representation of the vector.
func (v Vec) String() string {
	return fmt.Sprintf("(%d,%d)", v.X, v.Y)
}

// Axis is a continuous 2D input sample, typically in [-1,1] on each axis.
type Axis struct {
	X float64
	Y float64
}

// Quantize converts an input sample into a grid direction.
// Each axis is rounded independently (half to even), so a diagonal sample
// yields a diagonal direction. With clampDiagonal set, only the dominant axis
// survives before rounding; ties keep the horizontal axis.
func Quantize(a Axis, clampDiagonal bool) Vec {
	if clampDiagonal {
		if math.Abs(a.X) >= math.Abs(a.Y) {
			a.Y = 0
		} else {
			a.X = 0
		}
	}
	return Vec{
		X: int(math.RoundToEven(a.X)),
		Y: int(math.RoundToEven(a.Y)),
	}
}
