package platform

import (
	"log/slog"

	"github.com/stratumdoc/stratum/pkg/core"
)

// options holds the internal configuration for opening a workspace.
type options struct {
	logger    *slog.Logger
	pattern   string
	layerDirs map[core.Layer]string
	outputDir string
	roots     []string
}

// Option defines a functional option for configuring a workspace.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		layerDirs: make(map[core.Layer]string),
	}
}

// WithLogger sets the logger for the workspace and its engine.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPattern overrides the document match pattern (e.g. "**/*.prompt").
func WithPattern(pattern string) Option {
	return func(o *options) {
		o.pattern = pattern
	}
}

// WithLayerDir overrides the directory name for one layer.
func WithLayerDir(layer core.Layer, dir string) Option {
	return func(o *options) {
		o.layerDirs[layer] = dir
	}
}

// WithOutputDir overrides where composed documents are written.
func WithOutputDir(dir string) Option {
	return func(o *options) {
		o.outputDir = dir
	}
}

// WithRoots sets the default root identifiers composed when the caller
// names none.
func WithRoots(roots ...string) Option {
	return func(o *options) {
		o.roots = roots
	}
}
