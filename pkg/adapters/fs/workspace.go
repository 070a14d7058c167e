package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/stratumdoc/stratum/pkg/core"
)

// Workspace discovers layered documents beneath a root directory and feeds
// them to the composition engine. Layer assignment is inferred from
// directory location: each layer has its own subdirectory, and a file's
// identifier is its slash-separated path relative to the layer directory,
// minus the extension.
type Workspace struct {
	Root   string
	config Config
	engine *core.Engine

	mu            sync.RWMutex
	watcherActive bool
}

// NewWorkspace creates a Workspace rooted at config.Root. The root must
// exist and be a directory; layer directories may be absent (an absent
// layer simply contributes no documents).
func NewWorkspace(config Config) (*Workspace, error) {
	info, err := os.Stat(config.Root)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("workspace path does not exist: %s", config.Root)
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace path is not a directory: %s", config.Root)
	}
	if config.Pattern == "" {
		config.Pattern = DefaultPattern
	}
	if config.LayerDirs == nil {
		config.LayerDirs = DefaultLayerDirs()
	}

	return &Workspace{
		Root:   config.Root,
		config: config,
		engine: core.NewEngine(core.WithLogger(config.Logger)),
	}, nil
}

// Engine returns the workspace's composition engine.
func (w *Workspace) Engine() *core.Engine {
	return w.engine
}

// Config returns the resolved workspace configuration.
func (w *Workspace) Config() Config {
	return w.config
}

// Discover scans the layer directories and returns every matching document
// as a core.Source, layers in ascending precedence and files sorted within
// each layer for deterministic load order.
func (w *Workspace) Discover() ([]core.Source, error) {
	var sources []core.Source

	for _, layer := range []core.Layer{core.LayerBase, core.LayerExtension, core.LayerLocalOverride} {
		dir := filepath.Join(w.Root, w.config.LayerDirs[layer])
		paths, err := w.scanLayerDir(dir)
		if err != nil {
			return nil, err
		}
		sort.Strings(paths)

		for _, rel := range paths {
			data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", rel, err)
			}
			sources = append(sources, core.Source{
				Layer: layer,
				ID:    strings.TrimSuffix(rel, filepath.Ext(rel)),
				Raw:   string(data),
			})
		}
	}

	if w.config.Logger != nil {
		w.config.Logger.Debug("workspace scanned", "documents", len(sources))
	}
	return sources, nil
}

// scanLayerDir returns slash-separated relative paths of the files under
// dir matching the workspace pattern. A missing layer directory yields no
// paths.
func (w *Workspace) scanLayerDir(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("layer path is not a directory: %s", dir)
	}

	var paths []string
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip hidden directories (.git, .stratum, editor droppings).
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		match, err := doublestar.Match(w.config.Pattern, rel)
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", w.config.Pattern, err)
		}
		if match {
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk layer dir %s: %w", dir, err)
	}
	return paths, nil
}

// Compose discovers the current document set and resolves the given roots.
// With no roots given, the workspace's configured default roots are used;
// with neither, every identifier that is not included by another document
// is treated as a root, sorted lexicographically.
func (w *Workspace) Compose(roots []string) ([]core.ResolvedDocument, error) {
	sources, err := w.Discover()
	if err != nil {
		return nil, err
	}

	if len(roots) == 0 {
		roots = w.config.Roots
	}
	if len(roots) == 0 {
		roots, err = impliedRoots(sources)
		if err != nil {
			return nil, err
		}
	}

	return w.engine.Compose(sources, roots)
}

// Effective loads and merges the current document set without expanding
// includes. Used by inspection commands.
func (w *Workspace) Effective() (map[string]core.Document, error) {
	sources, err := w.Discover()
	if err != nil {
		return nil, err
	}
	reg, err := core.Load(sources)
	if err != nil {
		return nil, err
	}
	return core.MergeLayers(reg, w.config.Logger), nil
}

// Check validates the whole workspace: load, front matter, merge, include
// graph. It returns the first error encountered, or nil when the document
// set composes cleanly.
func (w *Workspace) Check() error {
	merged, err := w.Effective()
	if err != nil {
		return err
	}
	_, err = core.BuildGraph(merged)
	return err
}

// impliedRoots derives root identifiers from a source set: every document
// that no other document includes.
func impliedRoots(sources []core.Source) ([]string, error) {
	reg, err := core.Load(sources)
	if err != nil {
		return nil, err
	}
	merged := core.MergeLayers(reg, nil)

	included := make(map[string]bool)
	for _, doc := range merged {
		for _, e := range core.ScanIncludes(doc) {
			included[e.To] = true
		}
	}

	var roots []string
	for id := range merged {
		if !included[id] {
			roots = append(roots, id)
		}
	}
	sort.Strings(roots)
	return roots, nil
}

// resolveID maps an absolute file path back to its layer and identifier.
// Returns ok=false for paths outside the layer directories or not matching
// the workspace pattern.
func (w *Workspace) resolveID(path string) (core.Layer, string, bool) {
	for _, layer := range []core.Layer{core.LayerLocalOverride, core.LayerExtension, core.LayerBase} {
		dir := filepath.Join(w.Root, w.config.LayerDirs[layer])
		rel, err := filepath.Rel(dir, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		rel = filepath.ToSlash(rel)
		if match, err := doublestar.Match(w.config.Pattern, rel); err != nil || !match {
			continue
		}
		return layer, strings.TrimSuffix(rel, filepath.Ext(rel)), true
	}
	return 0, "", false
}

func (w *Workspace) setWatcherActive(active bool) {
	w.mu.Lock()
	w.watcherActive = active
	w.mu.Unlock()
}

// WatcherActive reports whether a change watcher is currently running.
func (w *Workspace) WatcherActive() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.watcherActive
}
