package core

import (
	"fmt"
	"strings"
)

// Errors raised by the composition pipeline. All of them abort the whole
// Compose call; none are retried because they are deterministic
// input-validation failures, not transient conditions.

// DuplicateIdentifierError reports the same identifier loaded twice within
// one layer.
type DuplicateIdentifierError struct {
	Layer Layer
	ID    string
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("duplicate identifier %q in layer %s", e.ID, e.Layer)
}

// MalformedFrontMatterError reports an unmatched or invalid front matter
// block. ID is empty when the parser was invoked on bare text without
// document context.
type MalformedFrontMatterError struct {
	ID     string
	Reason string
	Err    error // underlying YAML error, if any
}

func (e *MalformedFrontMatterError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("malformed front matter: %s", e.Reason)
	}
	return fmt.Sprintf("malformed front matter in %q: %s", e.ID, e.Reason)
}

func (e *MalformedFrontMatterError) Unwrap() error { return e.Err }

// UnresolvedIncludeError reports an include directive that names an
// identifier absent from the document set.
type UnresolvedIncludeError struct {
	From    string
	Missing string
	Line    int
}

func (e *UnresolvedIncludeError) Error() string {
	return fmt.Sprintf("document %q includes unknown identifier %q (line %d)", e.From, e.Missing, e.Line)
}

// CyclicIncludeError reports a cycle in the include graph. Path is the
// ordered sequence of identifiers forming the cycle; the last entry
// references the first.
type CyclicIncludeError struct {
	Path []string
}

func (e *CyclicIncludeError) Error() string {
	return fmt.Sprintf("include cycle: %s", strings.Join(e.Path, " -> "))
}

// EmptyRootError reports a requested root identifier with no document in
// any layer.
type EmptyRootError struct {
	ID string
}

func (e *EmptyRootError) Error() string {
	return fmt.Sprintf("root identifier %q has no document", e.ID)
}
