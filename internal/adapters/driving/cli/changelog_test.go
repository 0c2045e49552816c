package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadChangelog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CHANGELOG.md")
	require.NoError(t, os.WriteFile(path, []byte("- Added results\n- Fixed typos\n"), 0600))

	got, err := loadChangelog(path)
	require.NoError(t, err)
	assert.Equal(t, "- Added results\n- Fixed typos", got)

	got, err = loadChangelog("Fixed typos")
	require.NoError(t, err)
	assert.Equal(t, "Fixed typos", got)

	got, err = loadChangelog(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got, "directories are taken literally")

	got, err = loadChangelog("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadChangelogFile_Missing(t *testing.T) {
	_, err := readChangelogFile(filepath.Join(t.TempDir(), "missing.md"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}
