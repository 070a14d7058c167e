// Package stratum validates, merges, and renders layered Markdown
// instruction documents.
//
// A document set is organized in three precedence layers (base, extension,
// local override). Documents carry optional YAML front matter and may
// reference each other with {include:identifier} directives. Composition
// resolves overrides, expands includes depth-first, deduplicates shared
// fragments, and fails loudly on duplicate identifiers, malformed front
// matter, unresolved includes, or cycles.
//
// The core engine is pure and in-memory; the fs adapter discovers layered
// documents on disk and watches them for changes.
//
//	ws, err := stratum.Open("/path/to/workspace")
//	docs, err := ws.Compose([]string{"agents/reviewer"})
package stratum
