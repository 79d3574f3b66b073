package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the search directories.
const FileName = "physbox.yaml"

// Load loads the sandbox configuration.
// Search order: customPath -> ~/.physbox/configs/physbox.yaml -> ./configs/physbox.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the
// keys it names. Values are not normalized; call Normalize on the result.
func Load(customPath string) (PhysboxConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Default(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Default(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultPhysboxYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the hardcoded defaults.
func Parse(data []byte) (PhysboxConfig, error) {
	cfg := Default()
	// A list in the file replaces the default list instead of merging into it.
	cfg.Scenes.Bouncer.Restitutions = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	if cfg.Scenes.Bouncer.Restitutions == nil {
		cfg.Scenes.Bouncer.Restitutions = Default().Scenes.Bouncer.Restitutions
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".physbox", "configs", filename)
}
