package config

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/openpipe/flameset/pkg/errors"
)

// Sample returns a starter configuration with one DPX plate preset and
// the template set it references. Intended as a skeleton for new
// projects, not as usable defaults.
func Sample() *Settings {
	intKey := func(spec string) KeyConfig {
		return KeyConfig{Type: "int", FormatSpec: spec}
	}

	return &Settings{
		Instance:             "flameset",
		PresetVersion:        "11",
		ShotParentEntityType: "Sequence",
		Templates: map[string]TemplateConfig{
			"flame_shot_render_dpx": {
				Definition: "sequences/{Sequence}/{Shot}/editorial/plates/{segment_name}_{Shot}.v{version}.{SEQ}.dpx",
				Keys:       map[string]KeyConfig{"version": intKey("03"), "SEQ": intKey("04")},
			},
			"flame_shot_quicktime": {
				Definition: "sequences/{Sequence}/{Shot}/editorial/video/{segment_name}_{Shot}.v{version}.mov",
				Keys:       map[string]KeyConfig{"version": intKey("03")},
			},
			"flame_shot_batch": {
				Definition: "sequences/{Sequence}/{Shot}/editorial/flame/batch/{Shot}.v{version}.batch",
				Keys:       map[string]KeyConfig{"version": intKey("03")},
			},
			"flame_shot_clip": {
				Definition: "sequences/{Sequence}/{Shot}/editorial/flame/{Shot}.clip",
			},
			"flame_segment_clip": {
				Definition: "sequences/{Sequence}/{Shot}/editorial/flame/sources/{segment_name}.clip",
			},
		},
		PlatePresets: []PresetConfig{
			{
				Name:                 "10 bit DPX",
				Template:             "flame_shot_render_dpx",
				PublishType:          "Flame Render",
				QuicktimeTemplate:    "flame_shot_quicktime",
				QuicktimePublishType: "Quicktime",
				UploadQuicktime:      true,
				BatchTemplate:        "flame_shot_batch",
				ShotClipTemplate:     "flame_shot_clip",
				SegmentClipTemplate:  "flame_segment_clip",
			},
		},
	}
}

// GenerateSettingsContent renders the sample configuration as TOML
func GenerateSettingsContent() (string, error) {
	data, err := toml.Marshal(Sample())
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to marshal sample settings")
	}
	return string(data), nil
}

// WriteSampleSettings writes the sample configuration to path.
// It refuses to overwrite an existing file.
func WriteSampleSettings(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Newf(errors.ErrInvalidInput, "settings file %s already exists", path)
	}

	content, err := GenerateSettingsContent()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write settings file %s", path)
	}
	return nil
}
