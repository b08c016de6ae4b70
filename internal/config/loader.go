package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the name searched for in the config directories.
const ConfigFile = "ghostgrid.yaml"

// Load loads the ghostgrid configuration.
// Search order: customPath -> ~/.ghostgrid/configs/ghostgrid.yaml ->
// ./configs/ghostgrid.yaml -> embedded default -> hardcoded default.
// Only an explicit customPath that cannot be read or parsed is an error.
func Load(customPath string) (GhostGridConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultGhostGridConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultGhostGridConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := UserConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parse(defaultGhostGridYAML); err == nil {
		return cfg, nil
	}
	return DefaultGhostGridConfig(), nil
}

// parse decodes YAML over the hardcoded defaults so partial files work.
func parse(data []byte) (GhostGridConfig, error) {
	cfg := DefaultGhostGridConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.normalize()
	return cfg, nil
}

// UserConfigPath returns the path to a user config file, or empty if home
// is unavailable.
func UserConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ghostgrid", "configs", filename)
}
