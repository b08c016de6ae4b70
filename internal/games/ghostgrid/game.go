// Package ghostgrid adapts the puzzle session to the platform game contract:
// it maps input frames to axis samples, tracks the move limit and score, and
// renders the board into a core.Screen.
package ghostgrid

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ghostgrid/internal/config"
	"github.com/vovakirdan/ghostgrid/internal/core"
	"github.com/vovakirdan/ghostgrid/internal/games/ghostgrid/levels"
	"github.com/vovakirdan/ghostgrid/internal/games/ghostgrid/puzzle"
)

// GameID identifies the game in storage and on the command line.
const GameID = "ghostgrid"

// Result summarizes a finished (or abandoned) play-through.
type Result struct {
	LevelID   string
	LevelName string
	Won       bool
	Score     int
	Moves     int // Cumulative move counter
	Turns     int // Accepted directional inputs
	Shapes    int
	Completed int
	MoveLimit int // 0 means unlimited
}

// Game implements the ghostgrid puzzle for the platform runner.
type Game struct {
	logger *log.Logger
	cfg    config.GhostGridConfig
	level  levels.Level

	session  *puzzle.Session
	setupErr error

	runtime core.RuntimeConfig

	// Status
	moveLimit int
	score     int
	won       bool
	failed    bool
	paused    bool
}

// New creates a game for one level. A nil logger discards output.
func New(level levels.Level, cfg config.GhostGridConfig, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		logger: logger.WithPrefix(GameID),
		cfg:    cfg,
		level:  level,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "GhostGrid: " + g.level.Title()
}

// Reset builds a fresh session from the level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.score = 0
	g.won = false
	g.failed = false
	g.paused = false
	g.moveLimit = g.cfg.Difficulty.Preset.MoveLimit(g.level.MoveLimit)

	g.session, g.setupErr = g.level.NewSession(puzzle.Options{
		Cooldown:      g.cfg.Movement.Cooldown,
		ClampDiagonal: g.cfg.Movement.ClampDiagonal,
	})

	var cfgErr *puzzle.ConfigurationError
	switch {
	case g.session == nil:
		g.logger.Error("level unusable", "level", g.level.ID, "err", g.setupErr)
	case errors.As(g.setupErr, &cfgErr):
		g.logger.Warn("level batch skipped", "level", g.level.ID, "err", g.setupErr)
	}

	g.logger.Debug("session ready",
		"level", g.level.ID,
		"grid", fmt.Sprintf("%dx%d", g.level.Width, g.level.Height),
		"limit", g.moveLimit,
		"preset", g.cfg.Difficulty.Preset,
	)
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if input.Has(core.ActionRestart) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !g.over() {
		g.paused = !g.paused
	}

	if g.over() || g.paused || g.session == nil {
		return core.StepResult{State: g.State()}
	}

	x, y := input.Axis()
	res := g.session.Step(g.runtime.DeltaTime(), puzzle.Axis{X: x, Y: y})
	if res.Turn {
		g.logTurn(res)
	}

	switch {
	case res.Complete:
		g.won = true
		g.score = g.cfg.Scoring.Score(len(g.session.Registry().Shapes()), g.session.MoveCount(), g.moveLimit)
		g.logger.Info("puzzle solved",
			"level", g.level.ID,
			"moves", g.session.MoveCount(),
			"turns", g.session.Turns(),
			"score", g.score,
		)
	case g.moveLimit > 0 && g.session.MoveCount() >= g.moveLimit:
		g.failed = true
		g.logger.Info("move limit reached",
			"level", g.level.ID,
			"moves", g.session.MoveCount(),
			"limit", g.moveLimit,
		)
	}

	return core.StepResult{State: g.State(), Turn: res.Turn}
}

func (g *Game) logTurn(res puzzle.StepResult) {
	g.logger.Debug("turn",
		"dir", res.Direction,
		"moves", g.session.MoveCount(),
		"period", g.session.ActivePeriod(),
	)
	for _, e := range res.Events {
		switch e.Kind {
		case puzzle.EventShapeBlocked:
			g.logger.Debug("shape blocked", "shape", e.Shape, "target", e.Pos)
		case puzzle.EventShapeCompleted:
			g.logger.Info("shape completed", "shape", e.Shape, "moves", g.session.MoveCount())
		}
	}
}

func (g *Game) over() bool {
	return g.won || g.failed
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.over(),
		Won:      g.won,
		Paused:   g.paused,
	}
}

// Level returns the level being played.
func (g *Game) Level() levels.Level {
	return g.level
}

// Session returns the underlying puzzle session, nil if the level could not
// be set up.
func (g *Game) Session() *puzzle.Session {
	return g.session
}

// SetupError returns the error reported while building the session.
func (g *Game) SetupError() error {
	return g.setupErr
}

// MoveLimit returns the limit in effect after the difficulty preset.
func (g *Game) MoveLimit() int {
	return g.moveLimit
}

// Result returns the current outcome.
func (g *Game) Result() Result {
	r := Result{
		LevelID:   g.level.ID,
		LevelName: g.level.Title(),
		Won:       g.won,
		Score:     g.score,
		MoveLimit: g.moveLimit,
	}
	if g.session != nil {
		r.Moves = g.session.MoveCount()
		r.Turns = g.session.Turns()
		r.Shapes = len(g.session.Registry().Shapes())
		r.Completed = g.session.Registry().CompletedCount()
	}
	return r
}

// Summary returns a one-line description of the result.
func (r Result) Summary() string {
	limit := "no limit"
	if r.MoveLimit > 0 {
		limit = fmt.Sprintf("limit %d", r.MoveLimit)
	}
	if r.Won {
		return fmt.Sprintf("GhostGrid %s: solved in %d moves (%d turns, %s), score %d",
			r.LevelName, r.Moves, r.Turns, limit, r.Score)
	}
	return fmt.Sprintf("GhostGrid %s: %d/%d shapes home after %d moves (%s)",
		r.LevelName, r.Completed, r.Shapes, r.Moves, limit)
}
