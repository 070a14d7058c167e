package fs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/stratumdoc/stratum/pkg/core"
)

// ConfigFileName is the workspace configuration file looked up at the
// workspace root.
const ConfigFileName = "stratum.yaml"

// DefaultPattern matches the documents picked up inside each layer
// directory.
const DefaultPattern = "**/*.md"

// Config holds the resolved configuration for a filesystem workspace.
type Config struct {
	Root      string
	Pattern   string
	LayerDirs map[core.Layer]string
	Roots     []string // default roots composed when the caller names none
	OutputDir string
	Logger    *slog.Logger
}

// DefaultLayerDirs maps each layer to its conventional directory name.
func DefaultLayerDirs() map[core.Layer]string {
	return map[core.Layer]string{
		core.LayerBase:          "base",
		core.LayerExtension:     "extensions",
		core.LayerLocalOverride: "local",
	}
}

// fileConfig is the on-disk shape of stratum.yaml.
type fileConfig struct {
	Version int `yaml:"version"`
	Layers  struct {
		Base      string `yaml:"base"`
		Extension string `yaml:"extension"`
		Local     string `yaml:"local"`
	} `yaml:"layers"`
	Pattern string   `yaml:"pattern"`
	Roots   []string `yaml:"roots"`
	Output  string   `yaml:"output"`
}

// LoadConfig reads stratum.yaml from the workspace root. A missing file is
// not an error; the returned Config carries the defaults.
func LoadConfig(root string) (Config, error) {
	cfg := Config{
		Root:      root,
		Pattern:   DefaultPattern,
		LayerDirs: DefaultLayerDirs(),
		OutputDir: "out",
	}

	data, err := os.ReadFile(filepath.Join(root, ConfigFileName))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read %s: %w", ConfigFileName, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", ConfigFileName, err)
	}

	if fc.Pattern != "" {
		cfg.Pattern = fc.Pattern
	}
	if fc.Layers.Base != "" {
		cfg.LayerDirs[core.LayerBase] = fc.Layers.Base
	}
	if fc.Layers.Extension != "" {
		cfg.LayerDirs[core.LayerExtension] = fc.Layers.Extension
	}
	if fc.Layers.Local != "" {
		cfg.LayerDirs[core.LayerLocalOverride] = fc.Layers.Local
	}
	if len(fc.Roots) > 0 {
		cfg.Roots = fc.Roots
	}
	if fc.Output != "" {
		cfg.OutputDir = fc.Output
	}

	return cfg, nil
}
