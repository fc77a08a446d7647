// Test Type: Unit Test
// Description: Tests for the config package - layered settings loading

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openpipe/flameset/pkg/config"
	"github.com/openpipe/flameset/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSettings = `
instance = "flame_export"
preset_version = "10"
project_root = "/mnt/projects/alpha"
shot_parent_entity_type = "Scene"

[templates.flame_shot_render_dpx]
definition = "sequences/{Sequence}/{Shot}/editorial/plates/{segment_name}_{Shot}.v{version}.{SEQ}.dpx"

[templates.flame_shot_render_dpx.keys.SEQ]
type = "int"
format_spec = "04"

[templates.flame_shot_render_dpx.keys.version]
type = "int"
format_spec = "03"

[templates.flame_shot_quicktime]
definition = "sequences/{Sequence}/{Shot}/editorial/video/{segment_name}_{Shot}.v{version}.mov"

[templates.flame_shot_quicktime.keys.version]
type = "int"
format_spec = "03"

[[plate_presets]]
name = "10 bit DPX"
template = "flame_shot_render_dpx"
publish_type = "Flame Render"
quicktime_template = "flame_shot_quicktime"
quicktime_publish_type = "Quicktime"
upload_quicktime = true
batch_template = "flame_shot_batch"
shot_clip_template = "flame_shot_clip"
segment_clip_template = "flame_segment_clip"
`

func writeSettings(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeSettings(t, "flameset.toml", sampleSettings)

	settings, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "flame_export", settings.Instance)
	assert.Equal(t, "10", settings.PresetVersion)
	assert.Equal(t, "Scene", settings.ShotParentEntityType)
	assert.Equal(t, "/mnt/projects/alpha", settings.ProjectRoot)

	require.Len(t, settings.PlatePresets, 1)
	p := settings.PlatePresets[0]
	assert.Equal(t, "10 bit DPX", p.Name)
	assert.Equal(t, "flame_shot_render_dpx", p.Template)
	assert.Equal(t, "flame_shot_quicktime", p.QuicktimeTemplate)
	assert.True(t, p.UploadQuicktime)

	require.Contains(t, settings.Templates, "flame_shot_render_dpx")
	assert.Equal(t, "04", settings.Templates["flame_shot_render_dpx"].Keys["SEQ"].FormatSpec)
}

func TestLoadDefaultsOnly(t *testing.T) {
	// Run from an empty directory so no settings file is found
	tempDir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	settings, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "flameset", settings.Instance)
	assert.Equal(t, "Sequence", settings.ShotParentEntityType)
	assert.NotEmpty(t, settings.PresetVersion)
	assert.Empty(t, settings.PlatePresets)
}

func TestLoadYAML(t *testing.T) {
	yamlSettings := `
instance: flame_export
shot_parent_entity_type: Scene
plate_presets:
  - name: DPX Plates
    template: flame_shot_render_dpx
    publish_type: Flame Render
    quicktime_template: ""
`
	path := writeSettings(t, "flameset.yaml", yamlSettings)

	settings, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "flame_export", settings.Instance)
	require.Len(t, settings.PlatePresets, 1)
	assert.Equal(t, "DPX Plates", settings.PlatePresets[0].Name)
	assert.Empty(t, settings.PlatePresets[0].QuicktimeTemplate)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeSettings(t, "flameset.toml", sampleSettings)
	t.Setenv("FLAMESET_INSTANCE", "env_instance")
	t.Setenv("FLAMESET_PRESET_VERSION", "12")

	settings, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env_instance", settings.Instance)
	assert.Equal(t, "12", settings.PresetVersion)
}

func TestLoadBadTOML(t *testing.T) {
	path := writeSettings(t, "flameset.toml", "[broken toml")

	_, err := config.Load(path)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestBuildRegistry(t *testing.T) {
	path := writeSettings(t, "flameset.toml", sampleSettings)

	settings, err := config.Load(path)
	require.NoError(t, err)

	reg, err := settings.BuildRegistry()
	require.NoError(t, err)

	tmpl, err := reg.Get("flame_shot_render_dpx")
	require.NoError(t, err)

	key, err := tmpl.Key("SEQ")
	require.NoError(t, err)
	assert.Equal(t, "04", key.FormatSpec)

	// the registry carries the project root for absolute path matching
	assert.True(t, tmpl.Validate("/mnt/projects/alpha/sequences/aaa/sh010/editorial/plates/segA_sh010.v002.0100.dpx"))
}

func TestBuildRegistryBadTemplate(t *testing.T) {
	settings := &config.Settings{
		Templates: map[string]config.TemplateConfig{
			"broken": {Definition: ""},
		},
	}

	_, err := settings.BuildRegistry()
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateInvalid))
}
