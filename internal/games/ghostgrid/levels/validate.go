package levels

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/ghostgrid/internal/games/ghostgrid/levels/formats"
	"github.com/vovakirdan/ghostgrid/internal/games/ghostgrid/puzzle"
)

// Validation codes.
const (
	CodeMissingID      = "MISSING_ID"
	CodeInvalidSize    = "INVALID_SIZE"
	CodeInvalidLimit   = "INVALID_MOVE_LIMIT"
	CodeBatchMismatch  = "BATCH_MISMATCH"
	CodeBadPosition    = "BAD_POSITION"
	CodeOvercrowded    = "OVERCROWDED"
	CodeInvalidKind    = "INVALID_KIND"
	CodeOutOfBounds    = "OUT_OF_BOUNDS"
	CodeNoShapes       = "NO_SHAPES"
	CodeDuplicateStart = "DUPLICATE_START"
	CodeMissingGhost   = "MISSING_GHOST"
	CodeStartsOnGhost  = "STARTS_ON_GHOST"
	CodeGhostShortfall = "GHOST_SHORTFALL"
)

// ValidationError contains details about a validation finding.
// Warnings describe levels that load and play but probably not as intended.
type ValidationError struct {
	Code    string
	Message string
	Warning bool
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks a level and returns every finding, errors first in
// check order. An empty result means the level is clean.
func Validate(l Level) []ValidationError {
	var out []ValidationError
	add := func(code string, warning bool, format string, args ...any) {
		out = append(out, ValidationError{Code: code, Message: fmt.Sprintf(format, args...), Warning: warning})
	}

	if l.ID == "" {
		add(CodeMissingID, false, "level has no id")
	}
	if l.MoveLimit < 0 {
		add(CodeInvalidLimit, false, "move_limit %d is negative", l.MoveLimit)
	}

	grid, err := l.Grid()
	if err != nil {
		add(CodeInvalidSize, false, "grid %dx%d must be at least 1x1", l.Width, l.Height)
		return out
	}

	shapesOK := checkBatch(grid, puzzle.BatchShapes, l.Shapes, add)
	ghostsOK := checkBatch(grid, puzzle.BatchGhosts, l.Ghosts, add)

	if shapesOK && len(l.Shapes.Kinds) == 0 {
		add(CodeNoShapes, true, "level has no shapes and can never be completed")
	}
	if n := len(l.Shapes.Kinds); shapesOK && n > grid.Cells() {
		add(CodeOvercrowded, true, "%d shapes do not fit on a grid of %d cells", n, grid.Cells())
	}
	if !shapesOK || !ghostsOK {
		return out
	}

	// The remaining checks reason about the clamped layout the registry builds.
	ghostsByKind := make(map[puzzle.Kind]int)
	ghostAt := make(map[puzzle.Vec]puzzle.Kind)
	for i, k := range l.Ghosts.Kinds {
		p := grid.Clamp(l.Ghosts.Positions[i])
		ghostsByKind[k]++
		if _, ok := ghostAt[p]; !ok {
			ghostAt[p] = k
		}
	}

	shapesByKind := make(map[puzzle.Kind]int)
	startAt := make(map[puzzle.Vec]int)
	for i, k := range l.Shapes.Kinds {
		p := grid.Clamp(l.Shapes.Positions[i])
		shapesByKind[k]++

		if prev, ok := startAt[p]; ok {
			add(CodeDuplicateStart, true, "shapes %d and %d both start at %v", prev, i, p)
		} else {
			startAt[p] = i
		}
		if gk, ok := ghostAt[p]; ok && gk == k {
			add(CodeStartsOnGhost, true, "shape %d starts on its ghost at %v and completes after the first move attempt", i, p)
		}
	}

	for _, k := range sortedKinds(shapesByKind) {
		switch n := ghostsByKind[k]; {
		case n == 0:
			add(CodeMissingGhost, false, "no ghost of kind %d; shapes of that kind can never complete", k)
		case n < shapesByKind[k]:
			add(CodeGhostShortfall, true, "%d shapes of kind %d share %d ghosts", shapesByKind[k], k, n)
		}
	}

	return out
}

// HasErrors reports whether any finding is not a warning.
func HasErrors(findings []ValidationError) bool {
	for _, f := range findings {
		if !f.Warning {
			return true
		}
	}
	return false
}

func checkBatch(grid puzzle.Grid, name string, b formats.Batch, add func(string, bool, string, ...any)) bool {
	if len(b.Kinds) != len(b.Positions) {
		add(CodeBatchMismatch, false, "%s: %d kinds but %d positions; the batch will be skipped",
			name, len(b.Kinds), len(b.Positions))
		return false
	}

	ok := true
	for _, i := range b.Malformed {
		add(CodeBadPosition, false, "%s entry %d is not an [x, y] pair; the batch will be skipped", name, i)
		ok = false
	}
	for i, k := range b.Kinds {
		if k < 1 {
			add(CodeInvalidKind, false, "%s entry %d has kind %d; kinds start at 1", name, i, k)
			ok = false
		}
	}
	for i, p := range b.Positions {
		if !grid.InBounds(p) {
			add(CodeOutOfBounds, true, "%s entry %d at %v is outside the grid and will be clamped to %v",
				name, i, p, grid.Clamp(p))
		}
	}
	return ok
}

func sortedKinds(m map[puzzle.Kind]int) []puzzle.Kind {
	kinds := make([]puzzle.Kind, 0, len(m))
	for k := range m {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
