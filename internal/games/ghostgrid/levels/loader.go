// Package levels loads ghostgrid level definitions.
// This package depends on puzzle but puzzle does not depend on levels.
package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ghostgrid/internal/games/ghostgrid/levels/formats"
	"github.com/vovakirdan/ghostgrid/internal/games/ghostgrid/puzzle"
)

// Level represents a complete level definition.
type Level struct {
	ID        string
	Name      string
	Width     int
	Height    int
	MoveLimit int // 0 means unlimited
	Shapes    formats.Batch
	Ghosts    formats.Batch
	Metadata  map[string]string
	FilePath  string
	Builtin   bool
}

// Title returns the display name, falling back to the ID.
func (l *Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// Grid returns the level's grid.
func (l *Level) Grid() (puzzle.Grid, error) {
	return puzzle.NewGrid(l.Width, l.Height)
}

// NewSession builds a puzzle session from the level.
// A batch that fails registration is skipped: the session is still returned
// together with the joined *puzzle.ConfigurationError values. A nil session
// means the grid itself is unusable.
func (l *Level) NewSession(opts puzzle.Options) (*puzzle.Session, error) {
	grid, err := l.Grid()
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", l.ID, err)
	}

	// A batch with malformed positions is rejected before registration.
	shapes, ghosts := l.Shapes, l.Ghosts
	shapeErr := shapes.Err(puzzle.BatchShapes)
	if shapeErr != nil {
		shapes = formats.Batch{}
	}
	ghostErr := ghosts.Err(puzzle.BatchGhosts)
	if ghostErr != nil {
		ghosts = formats.Batch{}
	}

	s := puzzle.NewSession(grid, opts)
	setupErr := s.Setup(shapes.Kinds, shapes.Positions, ghosts.Kinds, ghosts.Positions)
	if err := errors.Join(shapeErr, ghostErr, setupErr); err != nil {
		return s, fmt.Errorf("level %s: %w", l.ID, err)
	}
	return s, nil
}

// Loader loads levels from a file system tree.
type Loader struct {
	FS      fs.FS
	Root    string // Display prefix for FilePath
	Builtin bool

	// Logger receives a warning for every level file that fails to load.
	// Nil disables logging.
	Logger *log.Logger
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{FS: os.DirFS(root), Root: root}
}

// NewBuiltinLoader creates a loader for the level pack compiled into the binary.
func NewBuiltinLoader() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		// Only possible if the embed directive and the directory name diverge.
		panic(fmt.Sprintf("levels: builtin pack: %v", err))
	}
	return &Loader{FS: sub, Root: "builtin", Builtin: true}
}

// LoadAll recursively scans and loads all level files.
// Files that fail to parse are skipped. Returns levels sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsLevelFile(p) {
			return nil
		}

		level, err := l.load(p)
		if err != nil {
			if l.Logger != nil {
				l.Logger.Warn("skipping level file", "path", level.FilePath, "error", err)
			}
			return nil
		}

		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.Root, err)
	}

	sortByID(levels)
	return levels, nil
}

// load reads one file from the loader's FS. The returned Level always
// carries FilePath, even on error.
func (l *Loader) load(p string) (Level, error) {
	display := path.Join(l.Root, p)
	if !l.Builtin {
		display = filepath.Join(l.Root, filepath.FromSlash(p))
	}

	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Level{FilePath: display}, fmt.Errorf("reading file %s: %w", display, err)
	}

	level, err := decode(data, p)
	level.FilePath = display
	level.Builtin = l.Builtin
	if err != nil {
		return level, fmt.Errorf("parsing file %s: %w", display, err)
	}
	return level, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	return Find(levels, id)
}

// LoadFile loads a single level file from disk.
func LoadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{FilePath: p}, fmt.Errorf("reading file %s: %w", p, err)
	}

	level, err := decode(data, p)
	level.FilePath = p
	if err != nil {
		return level, fmt.Errorf("parsing file %s: %w", p, err)
	}
	return level, nil
}

// LoadCatalog returns the builtin levels merged with the levels found in
// userDir. A user level replaces a builtin level with the same ID. A
// missing userDir is not an error.
func LoadCatalog(userDir string, logger *log.Logger) ([]Level, error) {
	builtin := NewBuiltinLoader()
	builtin.Logger = logger
	all, err := builtin.LoadAll()
	if err != nil {
		return nil, err
	}
	if userDir == "" {
		return all, nil
	}

	if _, err := os.Stat(userDir); errors.Is(err, fs.ErrNotExist) {
		return all, nil
	}

	user := NewLoader(userDir)
	user.Logger = logger
	custom, err := user.LoadAll()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(all))
	for i, lvl := range all {
		byID[lvl.ID] = i
	}
	for _, lvl := range custom {
		if i, ok := byID[lvl.ID]; ok {
			all[i] = lvl
			continue
		}
		byID[lvl.ID] = len(all)
		all = append(all, lvl)
	}

	sortByID(all)
	return all, nil
}

// Find returns the level with the given ID.
func Find(levels []Level, id string) (Level, error) {
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("level not found: %s", id)
}

// IsLevelFile reports whether the file name has a supported extension.
func IsLevelFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func sortByID(levels []Level) {
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
}

// decode routes to the correct parser.
func decode(data []byte, name string) (Level, error) {
	var (
		parsed formats.Level
		err    error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		parsed, err = formats.ParseYAML(data)
	case ".toml":
		parsed, err = formats.ParseTOML(data)
	default:
		return Level{}, fmt.Errorf("unsupported extension: %s", filepath.Ext(name))
	}
	if err != nil {
		return Level{}, err
	}

	return Level{
		ID:        parsed.ID,
		Name:      parsed.Name,
		Width:     parsed.Width,
		Height:    parsed.Height,
		MoveLimit: parsed.MoveLimit,
		Shapes:    parsed.Shapes,
		Ghosts:    parsed.Ghosts,
		Metadata:  parsed.Metadata,
	}, nil
}
