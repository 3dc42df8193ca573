package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", dir)

	return dir
}

func TestLoadMergedWithoutConfig(t *testing.T) {
	testRoot(t)

	cfg, label, err := LoadMerged(Options{})
	require.NoError(t, err)

	assert.Contains(t, label, "default config in memory")
	assert.Equal(t, ".", cfg.Output)
	assert.Equal(t, 5, cfg.PageWorkers)
	assert.Equal(t, 2, cfg.ChapterWorkers)
	assert.Equal(t, 1900, cfg.YearMin)
}

func TestLoadMergedIgnoreConfig(t *testing.T) {
	testRoot(t)

	cfg, label, err := LoadMerged(Options{IgnoreConfig: true, PageWorkers: 9})
	require.NoError(t, err)

	assert.Equal(t, "(ignored config)", label)
	assert.Equal(t, 9, cfg.PageWorkers)
	assert.Equal(t, 2, cfg.ChapterWorkers)
}

func TestLoadMergedActiveProfile(t *testing.T) {
	testRoot(t)

	path, err := InitDefaultConfig()
	require.NoError(t, err)

	custom := DefaultConfig()
	custom.Username = "reader"
	custom.Password = "secret"
	custom.YearMin = -1
	require.NoError(t, SaveYAML(custom, path))

	cfg, gotPath, err := LoadMerged(Options{})
	require.NoError(t, err)

	assert.Equal(t, path, gotPath)
	assert.Equal(t, "reader", cfg.Username)
	assert.Equal(t, "secret", cfg.Password)

	// A negative year_min disables the filter and survives normalization.
	assert.Equal(t, -1, cfg.YearMin)
}

func TestLoadMergedFlagOverrides(t *testing.T) {
	testRoot(t)

	path, err := InitDefaultConfig()
	require.NoError(t, err)

	custom := DefaultConfig()
	custom.Username = "reader"
	require.NoError(t, SaveYAML(custom, path))

	cfg, _, err := LoadMerged(Options{Username: "cli-user", YearMin: 2000, KeepFolders: true})
	require.NoError(t, err)

	assert.Equal(t, "cli-user", cfg.Username)
	assert.Equal(t, 2000, cfg.YearMin)
	assert.True(t, cfg.KeepFolders)
}

func TestYearMinNormalized(t *testing.T) {
	testRoot(t)

	path, err := InitDefaultConfig()
	require.NoError(t, err)

	custom := DefaultConfig()
	custom.YearMin = 0
	require.NoError(t, SaveYAML(custom, path))

	cfg, _, err := LoadMerged(Options{})
	require.NoError(t, err)
	assert.Equal(t, 1900, cfg.YearMin)
}

func TestSwitchListRemove(t *testing.T) {
	testRoot(t)

	_, err := InitDefaultConfig()
	require.NoError(t, err)

	_, err = CreateEmptyConfig("Alt")
	require.NoError(t, err)
	require.NoError(t, SwitchConfig("Alt"))

	label, err := CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "Alt", label)

	infos, err := ListConfigs()
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "Alt", infos[0].Label)
	assert.True(t, infos[0].Active)
	assert.Equal(t, "Default", infos[1].Label)
	assert.False(t, infos[1].Active)

	// Removing the active profile falls back to Default.
	require.NoError(t, RemoveConfig("Alt", false))
	label, err = CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "Default", label)

	assert.Error(t, RemoveConfig("Default", true))
}

func TestRenameConfig(t *testing.T) {
	testRoot(t)

	_, err := InitDefaultConfig()
	require.NoError(t, err)

	_, err = CreateEmptyConfig("Old")
	require.NoError(t, err)
	require.NoError(t, SwitchConfig("Old"))

	require.NoError(t, RenameConfig("Old", "New"))

	label, err := CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "New", label)

	infos, err := ListConfigs()
	require.NoError(t, err)

	var labels []string
	for _, info := range infos {
		labels = append(labels, info.Label)
	}
	assert.Equal(t, []string{"Default", "New"}, labels)
}

func TestInitDefaultConfigExists(t *testing.T) {
	testRoot(t)

	_, err := InitDefaultConfig()
	require.NoError(t, err)

	_, err = InitDefaultConfig()
	assert.ErrorIs(t, err, os.ErrExist)
}
