package stratum

import (
	"log/slog"

	"github.com/stratumdoc/stratum/internal/platform"
	"github.com/stratumdoc/stratum/pkg/adapters/fs"
	"github.com/stratumdoc/stratum/pkg/core"
)

// --- Types ---

// Layer identifies the precedence tier a document was loaded from.
type Layer = core.Layer

const (
	LayerBase          = core.LayerBase
	LayerExtension     = core.LayerExtension
	LayerLocalOverride = core.LayerLocalOverride
)

// Source is one input unit for composition: (layer, identifier, raw text).
type Source = core.Source

// Document is a parsed source.
type Document = core.Document

// Metadata is the front matter key-value map.
type Metadata = core.Metadata

// ResolvedDocument is the composed output for one root identifier.
type ResolvedDocument = core.ResolvedDocument

// Engine drives the composition pipeline over in-memory sources.
type Engine = core.Engine

// Workspace discovers and composes layered documents on disk.
type Workspace = fs.Workspace

// --- Errors ---

type (
	DuplicateIdentifierError  = core.DuplicateIdentifierError
	MalformedFrontMatterError = core.MalformedFrontMatterError
	UnresolvedIncludeError    = core.UnresolvedIncludeError
	CyclicIncludeError        = core.CyclicIncludeError
	EmptyRootError            = core.EmptyRootError
)

// --- Configuration ---

// Option defines a functional option for configuring a workspace.
type Option = platform.Option

// WithLogger sets the logger for the workspace and its engine.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithPattern overrides the document match pattern.
func WithPattern(pattern string) Option {
	return platform.WithPattern(pattern)
}

// WithLayerDir overrides the directory name for one layer.
func WithLayerDir(layer Layer, dir string) Option {
	return platform.WithLayerDir(layer, dir)
}

// WithOutputDir overrides where composed documents are written.
func WithOutputDir(dir string) Option {
	return platform.WithOutputDir(dir)
}

// WithRoots sets the default root identifiers.
func WithRoots(roots ...string) Option {
	return platform.WithRoots(roots...)
}

// --- Factory ---

// Open builds a Workspace rooted at path, reading stratum.yaml if present.
func Open(path string, opts ...Option) (*Workspace, error) {
	return platform.Open(path, opts...)
}

// FindWorkspaceRoot recursively looks upwards for a workspace root
// indicator (stratum.yaml or a base layer directory).
func FindWorkspaceRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// --- Operations ---

// Compose resolves roots against in-memory sources without touching disk.
func Compose(sources []Source, roots []string) ([]ResolvedDocument, error) {
	return core.NewEngine().Compose(sources, roots)
}

// ParseFrontMatter splits raw text into metadata and body.
func ParseFrontMatter(raw string) (Metadata, string, error) {
	return core.ParseFrontMatter(raw)
}
