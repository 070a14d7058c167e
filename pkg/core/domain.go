// Document is the central entity of the domain.
package core

// Layer identifies the precedence tier a document was loaded from.
// Higher values win when the same identifier exists in several layers.
type Layer int

const (
	LayerBase Layer = iota
	LayerExtension
	LayerLocalOverride
)

// String returns the canonical name of the layer.
func (l Layer) String() string {
	switch l {
	case LayerBase:
		return "base"
	case LayerExtension:
		return "extension"
	case LayerLocalOverride:
		return "local-override"
	default:
		return "unknown"
	}
}

// Metadata represents the flexible key-value pairs associated with a document.
// Values are scalars or lists of strings; nested mappings are rejected at parse time.
type Metadata map[string]any

// Source is one input unit handed to Load: raw text tagged with the layer
// it came from and its logical identifier. Reading the text from disk (or
// anywhere else) is the caller's job; the core never touches I/O.
type Source struct {
	Layer Layer
	ID    string
	Raw   string
}

// Document is a parsed source. Immutable once produced by Load.
type Document struct {
	ID       string
	Layer    Layer
	Raw      string
	Metadata Metadata // nil when the source has no front matter block
	Body     string
}

// IncludeEdge is a directed reference from one document body to another
// document identifier. Line is 1-based, for error reporting.
type IncludeEdge struct {
	From string
	To   string
	Line int
}

// ResolvedDocument is the terminal artifact of composition: the effective,
// post-override, post-include-expansion text for one root identifier.
type ResolvedDocument struct {
	ID       string
	Metadata Metadata // root document's metadata only; included documents do not contribute
	Body     string
	// Contributors lists every identifier whose body was folded into this
	// document, in depth-first first-seen order, without duplicates.
	Contributors []string
}
