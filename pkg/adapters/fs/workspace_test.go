package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratumdoc/stratum/pkg/adapters/fs"
	"github.com/stratumdoc/stratum/pkg/core"
)

// writeDoc creates a document file beneath the workspace, making parent
// directories as needed.
func writeDoc(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func openWorkspace(t *testing.T, root string) *fs.Workspace {
	t.Helper()
	cfg, err := fs.LoadConfig(root)
	require.NoError(t, err)
	ws, err := fs.NewWorkspace(cfg)
	require.NoError(t, err)
	return ws
}

func TestDiscover(t *testing.T) {
	tmp := t.TempDir()
	writeDoc(t, tmp, "base/agents/reviewer.md", "review the diff")
	writeDoc(t, tmp, "base/shared/style.md", "be terse")
	writeDoc(t, tmp, "extensions/agents/reviewer.md", "review harder")
	writeDoc(t, tmp, "base/notes.txt", "not matched")

	ws := openWorkspace(t, tmp)
	sources, err := ws.Discover()
	require.NoError(t, err)

	require.Len(t, sources, 3)
	// Base layer first, lexicographic within the layer.
	assert.Equal(t, "agents/reviewer", sources[0].ID)
	assert.Equal(t, core.LayerBase, sources[0].Layer)
	assert.Equal(t, "shared/style", sources[1].ID)
	assert.Equal(t, "agents/reviewer", sources[2].ID)
	assert.Equal(t, core.LayerExtension, sources[2].Layer)
}

func TestDiscoverMissingLayerDirs(t *testing.T) {
	tmp := t.TempDir()
	writeDoc(t, tmp, "base/a.md", "only base exists")

	ws := openWorkspace(t, tmp)
	sources, err := ws.Discover()
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "a", sources[0].ID)
}

func TestWorkspaceCompose(t *testing.T) {
	tmp := t.TempDir()
	writeDoc(t, tmp, "base/agents/reviewer.md", "---\nname: reviewer\n---\n{include:shared/style}\nreview the diff")
	writeDoc(t, tmp, "base/shared/style.md", "be terse")
	writeDoc(t, tmp, "local/shared/style.md", "be thorough")

	ws := openWorkspace(t, tmp)
	docs, err := ws.Compose([]string{"agents/reviewer"})
	require.NoError(t, err)
	require.Len(t, docs, 1)

	// The local override wins inside the expansion.
	assert.Equal(t, "be thorough\nreview the diff", docs[0].Body)
	assert.Equal(t, "reviewer", docs[0].Metadata["name"])
	assert.Equal(t, []string{"agents/reviewer", "shared/style"}, docs[0].Contributors)
}

func TestWorkspaceComposeImpliedRoots(t *testing.T) {
	tmp := t.TempDir()
	writeDoc(t, tmp, "base/root-a.md", "{include:frag}")
	writeDoc(t, tmp, "base/root-b.md", "standalone")
	writeDoc(t, tmp, "base/frag.md", "included text")

	ws := openWorkspace(t, tmp)
	docs, err := ws.Compose(nil)
	require.NoError(t, err)

	// frag is included by root-a, so only the two roots are composed.
	require.Len(t, docs, 2)
	assert.Equal(t, "root-a", docs[0].ID)
	assert.Equal(t, "root-b", docs[1].ID)
}

func TestWorkspaceCheck(t *testing.T) {
	t.Run("Clean Workspace", func(t *testing.T) {
		tmp := t.TempDir()
		writeDoc(t, tmp, "base/a.md", "{include:b}")
		writeDoc(t, tmp, "base/b.md", "ok")

		ws := openWorkspace(t, tmp)
		assert.NoError(t, ws.Check())
	})

	t.Run("Reports Cycle", func(t *testing.T) {
		tmp := t.TempDir()
		writeDoc(t, tmp, "base/a.md", "{include:b}")
		writeDoc(t, tmp, "base/b.md", "{include:a}")

		ws := openWorkspace(t, tmp)
		err := ws.Check()
		require.Error(t, err)
		var cyclic *core.CyclicIncludeError
		assert.ErrorAs(t, err, &cyclic)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults Without File", func(t *testing.T) {
		tmp := t.TempDir()
		cfg, err := fs.LoadConfig(tmp)
		require.NoError(t, err)
		assert.Equal(t, fs.DefaultPattern, cfg.Pattern)
		assert.Equal(t, "base", cfg.LayerDirs[core.LayerBase])
		assert.Empty(t, cfg.Roots)
	})

	t.Run("File Overrides", func(t *testing.T) {
		tmp := t.TempDir()
		configYAML := "version: 1\nlayers:\n  base: core\n  local: overrides\npattern: \"**/*.prompt\"\nroots: [main]\noutput: rendered\n"
		require.NoError(t, os.WriteFile(filepath.Join(tmp, fs.ConfigFileName), []byte(configYAML), 0644))

		cfg, err := fs.LoadConfig(tmp)
		require.NoError(t, err)
		assert.Equal(t, "core", cfg.LayerDirs[core.LayerBase])
		assert.Equal(t, "extensions", cfg.LayerDirs[core.LayerExtension])
		assert.Equal(t, "overrides", cfg.LayerDirs[core.LayerLocalOverride])
		assert.Equal(t, "**/*.prompt", cfg.Pattern)
		assert.Equal(t, []string{"main"}, cfg.Roots)
		assert.Equal(t, "rendered", cfg.OutputDir)
	})

	t.Run("Configured Roots Used By Compose", func(t *testing.T) {
		tmp := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(tmp, fs.ConfigFileName), []byte("roots: [main]\n"), 0644))
		writeDoc(t, tmp, "base/main.md", "the main document")
		writeDoc(t, tmp, "base/other.md", "ignored by default roots")

		ws := openWorkspace(t, tmp)
		docs, err := ws.Compose(nil)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "main", docs[0].ID)
	})
}

func TestWriteResolved(t *testing.T) {
	tmp := t.TempDir()
	out := filepath.Join(tmp, "out")

	err := fs.WriteResolved(out, []core.ResolvedDocument{
		{ID: "agents/reviewer", Metadata: core.Metadata{"name": "reviewer"}, Body: "do the review\n"},
		{ID: "plain", Body: "no metadata\n"},
	}, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "agents", "reviewer.md"))
	require.NoError(t, err)
	meta, body, err := core.ParseFrontMatter(string(data))
	require.NoError(t, err)
	assert.Equal(t, "reviewer", meta["name"])
	assert.Equal(t, "do the review\n", body)

	data, err = os.ReadFile(filepath.Join(out, "plain.md"))
	require.NoError(t, err)
	assert.Equal(t, "no metadata\n", string(data))
}
