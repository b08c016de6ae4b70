package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ghostgrid/internal/core"
	"github.com/vovakirdan/ghostgrid/internal/games/ghostgrid"
	"github.com/vovakirdan/ghostgrid/internal/games/ghostgrid/levels"
	"github.com/vovakirdan/ghostgrid/internal/platform/tui"
	"github.com/vovakirdan/ghostgrid/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Play a level",
	Long: `Start playing the specified level.

Controls:
  WASD/Arrows  - Move all shapes (two keys at once move diagonally)
  P            - Pause
  R            - Restart the level
  Esc/B        - Leave (when paused or finished)
  Ctrl+S       - Save a screenshot
  Ctrl+Y       - Copy the result to the clipboard
  Q/Ctrl+C     - Quit

Difficulty options:
  relaxed - No move limit
  normal  - The level's own move limit
  strict  - Three quarters of the level's move limit

Examples:
  ghostgrid play 01-first-steps
  ghostgrid play 03-two-beats --difficulty strict
  ghostgrid play 02-wraparound --config ./my-ghostgrid.yaml
  ghostgrid play ./my-level.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
}

// resolveLevel accepts a level ID from the catalog or a path to a level file.
func resolveLevel(s settings, arg string) (levels.Level, error) {
	if levels.IsLevelFile(arg) {
		if _, err := os.Stat(arg); err == nil {
			return levels.LoadFile(arg)
		}
	}

	lvls, err := loadLevels(s, nil)
	if err != nil {
		return levels.Level{}, err
	}
	return levels.Find(lvls, arg)
}

func runPlay(cmd *cobra.Command, args []string) {
	s := loadSettings()
	logger, closeLog, err := newLogger(s, true)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	level, err := resolveLevel(s, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'ghostgrid list' to see available levels.")
		os.Exit(1)
	}

	gameCfg, err := loadGameConfig(logger)
	if err != nil {
		exitf("%v", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: s.FPS,
	}

	store, err := storage.Open(s.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the puzzle still works
		store = nil
	}

	game := ghostgrid.New(level, gameCfg, logger)
	logger.Info("level started", "level", level.ID, "preset", gameCfg.Difficulty.Preset)

	_, runErr := tui.Run(game, cfg, tui.Options{
		Store:     store,
		Logger:    logger,
		Preset:    string(gameCfg.Difficulty.Preset),
		Clipboard: true,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		exitf("running game: %v", runErr)
	}

	fmt.Println(game.Result().Summary())
}
