package formats

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// TOMLLevel represents the TOML structure for a level file.
//
//	id = "03-corridor"
//	name = "Corridor"
//	move_limit = 20
//
//	[size]
//	w = 6
//	h = 3
//
//	[shapes]
//	kinds = [1, 2]
//	positions = [[0, 1], [5, 1]]
type TOMLLevel struct {
	ID        string            `toml:"id"`
	Name      string            `toml:"name"`
	Size      TOMLSize          `toml:"size"`
	MoveLimit *int              `toml:"move_limit,omitempty"`
	Shapes    rawBatch          `toml:"shapes"`
	Ghosts    rawBatch          `toml:"ghosts"`
	Metadata  map[string]string `toml:"metadata,omitempty"`
}

// TOMLSize represents grid dimensions.
type TOMLSize struct {
	W int `toml:"w"`
	H int `toml:"h"`
}

// ParseTOML parses a TOML level file.
func ParseTOML(data []byte) (Level, error) {
	var tl TOMLLevel
	if err := toml.Unmarshal(data, &tl); err != nil {
		return Level{}, fmt.Errorf("toml unmarshal: %w", err)
	}
	return build(tl.ID, tl.Name, tl.Size.W, tl.Size.H, tl.MoveLimit, tl.Shapes, tl.Ghosts, tl.Metadata), nil
}
