package core

import (
	"log/slog"
	"strings"
	"sync"
)

// Engine drives the full composition pipeline: load, front matter split,
// override merge, include resolution, and per-root expansion. An Engine is
// safe for concurrent use; each Compose call operates on its own freshly
// loaded document set and shares no mutable state with other calls beyond
// the introspection counters.
type Engine struct {
	logger *slog.Logger

	mu   sync.RWMutex
	last ComposeStats
}

// ComposeStats captures the shape of the most recent composition run.
type ComposeStats struct {
	Documents int `json:"documents"`
	Merged    int `json:"merged"`
	Edges     int `json:"edges"`
	Roots     int `json:"roots"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for merge and expansion diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates a composition engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compose resolves the requested roots against the given sources and
// returns one ResolvedDocument per root, in the caller's root order.
//
// Any error aborts the whole call with no partial output: a document set
// feeding an assistant must be complete and correct, and a silently
// truncated instruction set is a worse failure than a loud one.
func (e *Engine) Compose(sources []Source, roots []string) ([]ResolvedDocument, error) {
	reg, err := Load(sources)
	if err != nil {
		return nil, err
	}

	merged := MergeLayers(reg, e.logger)

	graph, err := BuildGraph(merged)
	if err != nil {
		return nil, err
	}

	for _, root := range roots {
		if _, ok := merged[root]; !ok {
			return nil, &EmptyRootError{ID: root}
		}
	}

	resolved := make([]ResolvedDocument, 0, len(roots))
	for _, root := range roots {
		doc, err := expandRoot(root, merged)
		if err != nil {
			return nil, err
		}
		if e.logger != nil {
			e.logger.Debug("root composed",
				"id", root,
				"contributors", len(doc.Contributors),
			)
		}
		resolved = append(resolved, doc)
	}

	e.mu.Lock()
	e.last = ComposeStats{
		Documents: reg.Len(),
		Merged:    len(merged),
		Edges:     graph.EdgeCount(),
		Roots:     len(roots),
	}
	e.mu.Unlock()

	return resolved, nil
}

// LastStats returns the stats of the most recent Compose call.
func (e *Engine) LastStats() ComposeStats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.last
}

// Per-root walk states. A re-visit while in progress would mean a cycle,
// which BuildGraph already rejects; the check here is defense in depth,
// not the primary detection site.
type visitState int

const (
	stateUnvisited visitState = iota
	stateInProgress
	stateEmitted
)

// expandRoot performs the depth-first pre-order expansion of one root:
// each include directive is substituted with the target document's
// expanded body. A repeated include of an identifier already emitted for
// this root substitutes to nothing, so a document reached through several
// branches contributes its body exactly once.
func expandRoot(root string, merged map[string]Document) (ResolvedDocument, error) {
	states := make(map[string]visitState)
	var contributors []string

	var expand func(id string) (string, error)
	expand = func(id string) (string, error) {
		switch states[id] {
		case stateInProgress:
			return "", &CyclicIncludeError{Path: []string{id}}
		case stateEmitted:
			return "", nil
		}

		states[id] = stateInProgress
		contributors = append(contributors, id)

		body := merged[id].Body
		matches := includePattern.FindAllStringSubmatchIndex(body, -1)

		var out strings.Builder
		prev := 0
		for _, m := range matches {
			out.WriteString(body[prev:m[0]])
			sub, err := expand(body[m[2]:m[3]])
			if err != nil {
				return "", err
			}
			out.WriteString(sub)
			prev = m[1]
		}
		out.WriteString(body[prev:])

		states[id] = stateEmitted
		return out.String(), nil
	}

	body, err := expand(root)
	if err != nil {
		return ResolvedDocument{}, err
	}

	return ResolvedDocument{
		ID:           root,
		Metadata:     merged[root].Metadata,
		Body:         body,
		Contributors: contributors,
	}, nil
}
