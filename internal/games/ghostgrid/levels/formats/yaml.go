package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name"`
	Size      YAMLSize          `yaml:"size"`
	MoveLimit *int              `yaml:"move_limit,omitempty"`
	Shapes    rawBatch          `yaml:"shapes"`
	Ghosts    rawBatch          `yaml:"ghosts"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return build(yl.ID, yl.Name, yl.Size.W, yl.Size.H, yl.MoveLimit, yl.Shapes, yl.Ghosts, yl.Metadata), nil
}
