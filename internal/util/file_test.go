package util

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCBZ(t *testing.T) {
	dir := t.TempDir()

	// Deliberately out of order, the archive must sort them.
	names := []string{"page_002.png", "page_001.png", "page_003.png"}
	var files []string
	for _, n := range names {
		p := filepath.Join(dir, n)
		require.NoError(t, os.WriteFile(p, []byte(n), 0644))
		files = append(files, p)
	}

	out := filepath.Join(dir, "chapter.cbz")
	require.NoError(t, CreateCBZ(files, out))

	r, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer func() {
		_ = r.Close()
	}()

	var got []string
	for _, f := range r.File {
		got = append(got, f.Name)
	}
	assert.Equal(t, []string{"page_001.png", "page_002.png", "page_003.png"}, got)
}

func TestCreateCBZNoFiles(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.cbz")

	err := CreateCBZ(nil, out)
	require.Error(t, err)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCleanupUnfinishedTempFolders(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "berserk_c005_tmp"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "keepme"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "berserk_c004.cbz"), []byte("x"), 0644))

	CleanupUnfinishedTempFolders(dir)

	_, err := os.Stat(filepath.Join(dir, "berserk_c005_tmp"))
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(filepath.Join(dir, "keepme"))
	assert.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "berserk_c004.cbz"))
	assert.NoError(t, err)
}
