package platform

import (
	"github.com/stratumdoc/stratum/pkg/adapters/fs"
)

// Open builds a Workspace rooted at path. Configuration is resolved in
// two steps: stratum.yaml at the workspace root (if present), then
// functional options on top.
func Open(path string, opts ...Option) (*fs.Workspace, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	cfg, err := fs.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	cfg.Logger = o.logger
	if o.pattern != "" {
		cfg.Pattern = o.pattern
	}
	for layer, dir := range o.layerDirs {
		cfg.LayerDirs[layer] = dir
	}
	if o.outputDir != "" {
		cfg.OutputDir = o.outputDir
	}
	if len(o.roots) > 0 {
		cfg.Roots = o.roots
	}

	return fs.NewWorkspace(cfg)
}
