package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EmbeddedSource names the built-in defaults in LoadSource results.
const EmbeddedSource = "embedded"

// configNames are tried in order inside each search directory.
var configNames = []string{"ringshot.yaml", "ringshot.yml", "ringshot.toml"}

// Load loads ringshot configuration.
// Search order: customPath -> ~/.ringshot/configs/ringshot.{yaml,yml,toml} ->
// ./configs/ringshot.{yaml,yml,toml} -> embedded default
func Load(customPath string) (RingshotConfig, error) {
	cfg, _, err := LoadSource(customPath)
	return cfg, err
}

// LoadSource is Load that also reports which file the config came from.
// Values missing from a file keep their defaults.
func LoadSource(customPath string) (RingshotConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		cfg := DefaultRingshotConfig()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, customPath, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := decode(data, customPath, &cfg); err != nil {
			return cfg, customPath, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := DefaultRingshotConfig()
		if err := decode(data, path, &cfg); err == nil {
			return cfg, path, nil
		}
	}

	return EmbeddedDefault(), EmbeddedSource, nil
}

// decode picks the format from the file extension; anything not .toml is YAML.
func decode(data []byte, path string, cfg *RingshotConfig) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.Decode(string(data), cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func searchPaths() []string {
	var dirs []string
	if dir := userConfigDir(); dir != "" {
		dirs = append(dirs, dir)
	}
	dirs = append(dirs, "configs")

	paths := make([]string, 0, len(dirs)*len(configNames))
	for _, dir := range dirs {
		for _, name := range configNames {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths
}

// userConfigDir returns ~/.ringshot/configs, or empty if home is unavailable.
func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ringshot", "configs")
}

// Encode serialises cfg as "yaml" or "toml".
func Encode(cfg RingshotConfig, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "yaml", "yml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("config: encode yaml: %w", err)
		}
		return data, nil
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("config: encode toml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("config: unknown format %q (want yaml or toml)", format)
	}
}
