package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/stratumdoc/stratum/pkg/adapters/fs"
	"github.com/stratumdoc/stratum/pkg/core"
)

// FindRoot recursively looks upwards for a workspace root indicator.
// Indicators are: a stratum.yaml file or a base layer directory.
// If found, returns the absolute path to the root.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, fs.ConfigFileName) || hasFile(dir, fs.DefaultLayerDirs()[core.LayerBase]) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("workspace root not found above %s", startDir)
}

func hasFile(dir, name string) bool {
	path := filepath.Join(dir, name)
	_, err := os.Stat(path)
	return err == nil
}
