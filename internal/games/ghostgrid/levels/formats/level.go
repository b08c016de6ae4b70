// Package formats provides pluggable level file format parsers.
// Every format decodes into the same Level shape; the parsers do not check
// that batches are well formed, so broken levels still load and surface
// their problems through validation and session setup.
package formats

import (
	"fmt"

	"github.com/vovakirdan/ghostgrid/internal/games/ghostgrid/puzzle"
)

// DefaultMoveLimit applies when a level does not set move_limit.
const DefaultMoveLimit = 30

// Batch is a pair of parallel kind/position lists.
// Malformed holds the indices of positions that were not [x, y] pairs; they
// are stored as the zero Vec so the lists stay parallel.
type Batch struct {
	Kinds     []puzzle.Kind
	Positions []puzzle.Vec
	Malformed []int
}

// Err returns a *puzzle.ConfigurationError when the batch has malformed
// positions. name is puzzle.BatchShapes or puzzle.BatchGhosts.
func (b Batch) Err(name string) error {
	if len(b.Malformed) == 0 {
		return nil
	}
	return &puzzle.ConfigurationError{
		Batch:     name,
		Kinds:     len(b.Kinds),
		Positions: len(b.Positions),
		Reason:    fmt.Sprintf("position %d is not an [x, y] pair", b.Malformed[0]),
	}
}

// Level represents a parsed level ready for use.
type Level struct {
	ID        string
	Name      string
	Width     int
	Height    int
	MoveLimit int // 0 means unlimited
	Shapes    Batch
	Ghosts    Batch
	Metadata  map[string]string
}

// rawBatch is the on-disk batch form shared by all formats.
type rawBatch struct {
	Kinds     []int   `yaml:"kinds" toml:"kinds"`
	Positions [][]int `yaml:"positions" toml:"positions"`
}

func (b rawBatch) convert() Batch {
	out := Batch{
		Kinds:     make([]puzzle.Kind, len(b.Kinds)),
		Positions: make([]puzzle.Vec, len(b.Positions)),
	}
	for i, k := range b.Kinds {
		out.Kinds[i] = puzzle.Kind(k)
	}
	for i, p := range b.Positions {
		if len(p) != 2 {
			out.Malformed = append(out.Malformed, i)
			continue
		}
		out.Positions[i] = puzzle.V(p[0], p[1])
	}
	return out
}

func build(id, name string, w, h int, moveLimit *int, shapes, ghosts rawBatch, meta map[string]string) Level {
	limit := DefaultMoveLimit
	if moveLimit != nil {
		limit = *moveLimit
	}

	return Level{
		ID:        id,
		Name:      name,
		Width:     w,
		Height:    h,
		MoveLimit: limit,
		Shapes:    shapes.convert(),
		Ghosts:    ghosts.convert(),
		Metadata:  meta,
	}
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".toml"}
}
