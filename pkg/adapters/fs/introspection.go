package fs

import (
	"github.com/aretw0/introspection"

	"github.com/stratumdoc/stratum/pkg/core"
)

// WorkspaceState exposes internal state for observability.
type WorkspaceState struct {
	Root          string            `json:"root"`
	Pattern       string            `json:"pattern"`
	WatcherActive bool              `json:"watcher_active"`
	LastCompose   core.ComposeStats `json:"last_compose"`
}

// State implements introspection.Introspectable.
func (w *Workspace) State() any {
	return WorkspaceState{
		Root:          w.Root,
		Pattern:       w.config.Pattern,
		WatcherActive: w.WatcherActive(),
		LastCompose:   w.engine.LastStats(),
	}
}

// ComponentType implements introspection.Component.
func (w *Workspace) ComponentType() string {
	return "fs-workspace"
}

var _ introspection.Introspectable = (*Workspace)(nil)
var _ introspection.Component = (*Workspace)(nil)
