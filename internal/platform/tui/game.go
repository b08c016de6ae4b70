package tui

import (
	"github.com/vovakirdan/ghostgrid/internal/core"
	"github.com/vovakirdan/ghostgrid/internal/games/ghostgrid"
)

// Game is the contract between the runner and a game implementation.
// Games contain pure logic with no Bubble Tea dependency; the runner
// handles input mapping, timing and rendering.
type Game interface {
	// ID returns a stable identifier used for logs and screenshots.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	// Called once when the runner starts. Resizes keep the game state.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Reporter is implemented by games that can describe a finished run.
type Reporter interface {
	Result() ghostgrid.Result
}

var _ Reporter = (*ghostgrid.Game)(nil)
var _ Game = (*ghostgrid.Game)(nil)
