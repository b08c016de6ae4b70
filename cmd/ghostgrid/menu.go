package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ghostgrid/internal/core"
	"github.com/vovakirdan/ghostgrid/internal/games/ghostgrid"
	"github.com/vovakirdan/ghostgrid/internal/platform/tui"
	"github.com/vovakirdan/ghostgrid/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a level picker menu",
	Long: `Start GhostGrid in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a level.
After leaving a level, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select level
  Tab          - Scoreboard
  Q            - Quit

Examples:
  ghostgrid menu
  ghostgrid menu --fps 30
  ghostgrid menu --difficulty relaxed`,
	Run: runMenu,
}

func init() {
	addGameFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) {
	s := loadSettings()
	logger, closeLog, err := newLogger(s, true)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	lvls, err := loadLevels(s, logger)
	if err != nil {
		exitf("%v", err)
	}

	gameCfg, err := loadGameConfig(logger)
	if err != nil {
		exitf("%v", err)
	}

	store, err := storage.Open(s.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: s.FPS,
	}

	for {
		menuResult, err := tui.RunMenu(lvls, store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Keep any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(lvls, store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		if menuResult.Level == nil {
			break
		}

		level := *menuResult.Level
		game := ghostgrid.New(level, gameCfg, logger)
		logger.Info("level started", "level", level.ID, "preset", gameCfg.Difficulty.Preset)

		result, runErr := tui.Run(game, cfg, tui.Options{
			Store:     store,
			Logger:    logger,
			Preset:    string(gameCfg.Difficulty.Preset),
			Clipboard: true,
		})
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
			continue
		}
		cfg = result.Config

		if !result.BackToMenu {
			break
		}
	}

	if store != nil {
		store.Close()
	}
}
