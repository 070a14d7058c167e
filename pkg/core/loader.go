package core

import (
	"errors"
	"sort"
)

// Registry is the in-memory document set for one composition run, grouped
// by layer. It is built once by Load and never mutated afterwards.
type Registry struct {
	byLayer map[Layer]map[string]Document
}

// Load parses the ordered sources into a Registry. Each source's front
// matter is split off immediately, so a malformed document fails the whole
// load. A duplicate identifier within one layer is a load-time error; the
// same identifier across different layers is the normal override case.
func Load(sources []Source) (*Registry, error) {
	reg := &Registry{byLayer: make(map[Layer]map[string]Document)}

	for _, src := range sources {
		docs := reg.byLayer[src.Layer]
		if docs == nil {
			docs = make(map[string]Document)
			reg.byLayer[src.Layer] = docs
		}

		if _, exists := docs[src.ID]; exists {
			return nil, &DuplicateIdentifierError{Layer: src.Layer, ID: src.ID}
		}

		meta, body, err := ParseFrontMatter(src.Raw)
		if err != nil {
			// Attach document context; the parser itself only sees text.
			var fmErr *MalformedFrontMatterError
			if errors.As(err, &fmErr) {
				fmErr.ID = src.ID
			}
			return nil, err
		}

		docs[src.ID] = Document{
			ID:       src.ID,
			Layer:    src.Layer,
			Raw:      src.Raw,
			Metadata: meta,
			Body:     body,
		}
	}

	return reg, nil
}

// Layer returns the documents loaded into one layer. The returned map is
// the registry's own; callers must not mutate it.
func (r *Registry) Layer(l Layer) map[string]Document {
	return r.byLayer[l]
}

// Len returns the total number of loaded documents across all layers.
func (r *Registry) Len() int {
	n := 0
	for _, docs := range r.byLayer {
		n += len(docs)
	}
	return n
}

// Identifiers returns every distinct identifier present in any layer,
// sorted lexicographically.
func (r *Registry) Identifiers() []string {
	seen := make(map[string]bool)
	for _, docs := range r.byLayer {
		for id := range docs {
			seen[id] = true
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
