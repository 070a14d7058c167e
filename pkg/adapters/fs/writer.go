package fs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/stratumdoc/stratum/pkg/core"
)

// WriteResolved persists each resolved document beneath dir as <id>.md,
// re-serializing the root metadata as front matter. Parent directories are
// created as needed (identifiers may contain slashes).
func WriteResolved(dir string, docs []core.ResolvedDocument, logger *slog.Logger) error {
	for _, doc := range docs {
		out, err := core.EncodeFrontMatter(doc.Metadata, doc.Body)
		if err != nil {
			return fmt.Errorf("failed to serialize %s: %w", doc.ID, err)
		}

		path := filepath.Join(dir, filepath.FromSlash(doc.ID)+".md")
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create directories: %w", err)
		}

		if logger != nil {
			logger.Debug("writing resolved document", "id", doc.ID, "path", path)
		}
		if err := os.WriteFile(path, []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", doc.ID, err)
		}
	}
	return nil
}
