// ghostgrid is a terminal puzzle: slide shapes around a wrapping grid until
// every shape rests on a ghost of its kind.
//
// Usage:
//
//	ghostgrid list                - List available levels
//	ghostgrid play <level>        - Play a level
//	ghostgrid menu                - Pick levels interactively
//	ghostgrid serve               - Start SSH server for remote play
//	ghostgrid scores <level>      - Show best runs for a level
//	ghostgrid validate [paths]    - Check level files
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--db <path>          - Set database path (default: ~/.ghostgrid/ghostgrid.db)
//	--levels <dir>       - Directory with custom levels (default: ~/.ghostgrid/levels)
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--log-file <path>    - Log destination while the UI runs (default: ~/.ghostgrid/ghostgrid.log)
//
// Every global flag can also be set in ~/.ghostgrid/settings.yaml or through
// a GHOSTGRID_* environment variable, e.g. GHOSTGRID_LOG_LEVEL=debug.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/ghostgrid/internal/config"
	"github.com/vovakirdan/ghostgrid/internal/games/ghostgrid/levels"
	"github.com/vovakirdan/ghostgrid/internal/platform/tui"
)

// settings holds the process-wide options. Values come from flags,
// GHOSTGRID_* env vars and the optional settings file, in that order.
type settings struct {
	FPS      int    `mapstructure:"fps"`
	DB       string `mapstructure:"db"`
	Levels   string `mapstructure:"levels"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

var (
	// Flags shared by play, menu and serve.
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ghostgrid",
	Short: "GhostGrid - a sliding shape puzzle for your terminal",
	Long: `GhostGrid is a terminal puzzle played on a grid that wraps around at
its edges. Every move slides all shapes at once, but a shape only moves on
the beats its kind allows. Bring every shape home to a ghost of its kind.

Available commands:
  list      - Show all levels
  play      - Play a specific level
  menu      - Interactive level picker
  serve     - Start SSH server for remote play
  scores    - View the best runs of a level
  validate  - Check level files for mistakes

Examples:
  ghostgrid list
  ghostgrid play 01-first-steps
  ghostgrid menu --difficulty strict
  ghostgrid serve --ssh :2222
  ghostgrid validate ./my-levels --watch`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initSettings)

	flags := rootCmd.PersistentFlags()
	flags.Int("fps", 60, "Tick rate (frames per second)")
	flags.String("db", "~/.ghostgrid/ghostgrid.db", "Path to runs database")
	flags.String("levels", "~/.ghostgrid/levels", "Directory with custom level files")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("log-file", "~/.ghostgrid/ghostgrid.log", "Log file used while the UI is running")

	for key, name := range map[string]string{
		"fps":       "fps",
		"db":        "db",
		"levels":    "levels",
		"log_level": "log-level",
		"log_file":  "log-file",
	} {
		//nolint:errcheck // The flags are defined right above
		viper.BindPFlag(key, flags.Lookup(name))
	}

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(validateCmd)
}

func initSettings() {
	viper.SetConfigName("settings")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".ghostgrid"))
	}

	viper.SetEnvPrefix("GHOSTGRID")
	viper.AutomaticEnv()

	// A missing settings file is fine; flags and env still apply.
	_ = viper.ReadInConfig()
}

// loadSettings returns the effective settings with ~ expanded.
func loadSettings() settings {
	var s settings
	_ = viper.Unmarshal(&s)
	if s.FPS <= 0 {
		s.FPS = 60
	}
	s.DB = expandPath(s.DB)
	s.Levels = expandPath(s.Levels)
	s.LogFile = expandPath(s.LogFile)
	return s
}

// newLogger builds the process logger. UI commands pass toFile so log
// lines do not tear the alternate screen; the returned func closes the file.
func newLogger(s settings, toFile bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", s.LogLevel, err)
	}

	out := os.Stderr
	closeFn := func() {}
	if toFile && s.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(s.LogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "ghostgrid",
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadGameConfig reads the puzzle config and applies --difficulty and the
// configured theme.
func loadGameConfig(logger *log.Logger) (config.GhostGridConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyPreset(&cfg, preset)
	}

	tui.SetTheme(tui.ThemeByName(cfg.Display.Theme))
	logger.Debug("config loaded", "preset", cfg.Difficulty.Preset, "cooldown", cfg.Movement.Cooldown, "theme", cfg.Display.Theme)
	return cfg, nil
}

// loadLevels returns the builtin catalog merged with the user directory.
func loadLevels(s settings, logger *log.Logger) ([]levels.Level, error) {
	lvls, err := levels.LoadCatalog(s.Levels, logger)
	if err != nil {
		return nil, fmt.Errorf("loading levels: %w", err)
	}
	return lvls, nil
}

func expandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: relaxed, normal, strict")
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
