// Test Type: Integration Test
// Description: Tests for the flameset CLI - generate, list, resolve against a settings file

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openpipe/flameset/pkg/config"
	"github.com/openpipe/flameset/pkg/errors"
	"github.com/openpipe/flameset/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cliSettings = `
instance = "flame_export"
preset_version = "11"
shot_parent_entity_type = "Sequence"

[templates.flame_shot_render_dpx]
definition = "sequences/{Sequence}/{Shot}/editorial/plates/{segment_name}_{Shot}.v{version}.{SEQ}.dpx"

[templates.flame_shot_render_dpx.keys.SEQ]
type = "int"
format_spec = "04"

[templates.flame_shot_render_dpx.keys.version]
type = "int"
format_spec = "03"

[templates.flame_shot_batch]
definition = "sequences/{Sequence}/{Shot}/editorial/flame/batch/{Shot}.v{version}.batch"

[templates.flame_shot_clip]
definition = "sequences/{Sequence}/{Shot}/editorial/flame/{Shot}.clip"

[templates.flame_segment_clip]
definition = "sequences/{Sequence}/{Shot}/editorial/flame/sources/{segment_name}.clip"

[[plate_presets]]
name = "10 bit DPX"
template = "flame_shot_render_dpx"
publish_type = "Flame Render"
quicktime_template = ""
quicktime_publish_type = "Quicktime"
upload_quicktime = false
batch_template = "flame_shot_batch"
shot_clip_template = "flame_shot_clip"
segment_clip_template = "flame_segment_clip"
`

// setupCLI points the CLI at a temp settings file and cache dir
func setupCLI(t *testing.T) string {
	t.Helper()

	cacheDir := t.TempDir()
	t.Setenv(paths.EnvCacheDir, cacheDir)

	settingsPath := filepath.Join(t.TempDir(), "flameset.toml")
	require.NoError(t, os.WriteFile(settingsPath, []byte(cliSettings), 0644))

	configPath = settingsPath
	t.Cleanup(func() { configPath = "" })

	return cacheDir
}

func TestGenerateCommand(t *testing.T) {
	cacheDir := setupCLI(t)

	err := generateCmd.RunE(generateCmd, []string{"10 bit DPX"})
	require.NoError(t, err)

	written := filepath.Join(cacheDir, "flame_export", paths.ExportPresetFileName)
	info, err := os.Stat(written)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestGenerateCommandUnknownPreset(t *testing.T) {
	setupCLI(t)

	err := generateCmd.RunE(generateCmd, []string{"nope"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPresetNotFound))
}

func TestResolveCommand(t *testing.T) {
	setupCLI(t)

	err := resolveCmd.RunE(resolveCmd,
		[]string{"sequences/aaa_123/sh010/editorial/plates/segA_sh010.v002.0100.dpx"})
	assert.NoError(t, err)
}

func TestResolveCommandNoMatch(t *testing.T) {
	setupCLI(t)

	err := resolveCmd.RunE(resolveCmd, []string{"not/a/render/path.mov"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPresetNotFound))
}

func TestInitCommandWrite(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	initWrite = true
	t.Cleanup(func() { initWrite = false })

	require.NoError(t, initCmd.RunE(initCmd, nil))

	_, err = os.Stat(config.SettingsFileName)
	require.NoError(t, err)

	// a second run must not clobber the file
	err = initCmd.RunE(initCmd, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestListCommand(t *testing.T) {
	setupCLI(t)

	err := listCmd.RunE(listCmd, nil)
	assert.NoError(t, err)
}
