package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ghostgrid/internal/games/ghostgrid/levels"
)

var flagWatch bool

var validateCmd = &cobra.Command{
	Use:   "validate [file|dir]...",
	Short: "Check level files for mistakes",
	Long: `Load level files and report problems that would break or spoil them.

Without arguments the full catalog is checked: the builtin levels and the
custom level directory. Errors make the command exit non-zero; warnings
describe levels that play, but probably not as intended.

With --watch the command keeps running and re-checks every level file in
the directory as it is saved.

Examples:
  ghostgrid validate
  ghostgrid validate ./my-level.yaml
  ghostgrid validate ./my-levels --watch`,
	Run: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&flagWatch, "watch", false, "Watch the directory and re-check on every change")
}

func runValidate(_ *cobra.Command, args []string) {
	s := loadSettings()
	logger, closeLog, err := newLogger(s, false)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	if flagWatch {
		dir := s.Levels
		if len(args) > 0 {
			dir = args[0]
		}
		if err := watchLevels(dir, logger); err != nil {
			exitf("%v", err)
		}
		return
	}

	var lvls []levels.Level
	if len(args) == 0 {
		lvls, err = loadLevels(s, logger)
		if err != nil {
			exitf("%v", err)
		}
	} else {
		for _, arg := range args {
			found, loadErr := loadPath(arg)
			if loadErr != nil {
				exitf("%v", loadErr)
			}
			lvls = append(lvls, found...)
		}
	}

	failed := 0
	for _, l := range lvls {
		if !report(l, levels.Validate(l)) {
			failed++
		}
	}

	fmt.Println()
	fmt.Printf("%d levels checked, %d with errors\n", len(lvls), failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// loadPath loads one level file or every level file in a directory. Files
// that fail to parse are fatal here since validation is the point.
func loadPath(p string) ([]levels.Level, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		l, err := levels.LoadFile(p)
		if err != nil {
			return nil, err
		}
		return []levels.Level{l}, nil
	}

	entries, err := os.ReadDir(p)
	if err != nil {
		return nil, err
	}
	var out []levels.Level
	for _, e := range entries {
		if e.IsDir() || !levels.IsLevelFile(e.Name()) {
			continue
		}
		l, err := levels.LoadFile(filepath.Join(p, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// report prints the findings of one level and reports whether it is free
// of errors.
func report(l levels.Level, findings []levels.ValidationError) bool {
	source := l.FilePath
	if source == "" {
		source = "builtin"
	}

	if len(findings) == 0 {
		fmt.Printf("ok    %-20s %s\n", l.ID, source)
		return true
	}

	status := "warn"
	if levels.HasErrors(findings) {
		status = "FAIL"
	}
	fmt.Printf("%-5s %-20s %s\n", status, l.ID, source)
	for _, f := range findings {
		kind := "warning"
		if !f.Warning {
			kind = "error"
		}
		fmt.Printf("      %-7s %s\n", kind, f.Error())
	}
	return status != "FAIL"
}

// watchLevels re-validates level files in dir as they change until
// interrupted.
func watchLevels(dir string, logger *log.Logger) error {
	w, err := levels.NewWatcher(dir)
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	defer w.Stop()

	logger.Info("watching levels", "dir", dir)

	initial, err := loadPath(dir)
	if err != nil {
		logger.Warn("initial check failed", "err", err)
	}
	for _, l := range initial {
		report(l, levels.Validate(l))
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-sig:
			return nil
		case c, ok := <-w.Changes:
			if !ok {
				return nil
			}
			switch {
			case c.Kind == levels.ChangeRemoved:
				logger.Info("level removed", "file", c.File)
			case c.Err != nil:
				logger.Error("level does not load", "file", c.File, "err", c.Err)
			default:
				report(c.Level, levels.Validate(c.Level))
			}
		}
	}
}
