package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b.hcl"))
	touch(t, filepath.Join(root, "a.YAML"))
	touch(t, filepath.Join(root, "nested", "c.yml"))
	touch(t, filepath.Join(root, "notes.txt"))

	files, err := FindFilesByExtension(root, ".hcl", ".yaml", ".yml")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.YAML"),
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "nested", "c.yml"),
	}, files)
}

func TestExpand(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "specs")
	touch(t, filepath.Join(dir, "one.hcl"))
	touch(t, filepath.Join(dir, "skip.txt"))
	explicit := filepath.Join(root, "custom.spec")
	touch(t, explicit)

	files, err := Expand([]string{dir, explicit, dir}, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "one.hcl"), explicit}, files)

	_, err = Expand([]string{filepath.Join(root, "missing")}, ".hcl")
	require.ErrorIs(t, err, os.ErrNotExist)
}
