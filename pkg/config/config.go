// Package config loads flameset settings: the scalar export options,
// the path-template definitions, and the list of export preset records.
//
// Settings are layered koanf-style: embedded defaults, then an optional
// settings file (TOML or YAML), then FLAMESET_* environment variables.
package config

import (
	"github.com/openpipe/flameset/pkg/templates"
)

// KeyConfig describes one template field in the settings file
type KeyConfig struct {
	// Type is "str" (default) or "int"
	Type string `koanf:"type" toml:"type"`

	// FormatSpec is the zero-padding width specifier for int fields,
	// e.g. "04"
	FormatSpec string `koanf:"format_spec" toml:"format_spec"`
}

// TemplateConfig describes one named path template
type TemplateConfig struct {
	Definition string               `koanf:"definition" toml:"definition"`
	Keys       map[string]KeyConfig `koanf:"keys" toml:"keys"`
}

// PresetConfig is one raw export preset record
type PresetConfig struct {
	// Name is the unique preset identity used for lookup
	Name string `koanf:"name" toml:"name"`

	// Template names the render output template. Always required.
	Template string `koanf:"template" toml:"template"`

	// PublishType is the publish type label for render output
	PublishType string `koanf:"publish_type" toml:"publish_type"`

	// QuicktimeTemplate names the high-res quicktime template. Empty
	// means no high-res quicktimes are generated for this preset.
	QuicktimeTemplate string `koanf:"quicktime_template" toml:"quicktime_template"`

	// QuicktimePublishType is the publish type label for quicktimes
	QuicktimePublishType string `koanf:"quicktime_publish_type" toml:"quicktime_publish_type"`

	// UploadQuicktime indicates quicktimes should be uploaded to the
	// tracking site
	UploadQuicktime bool `koanf:"upload_quicktime" toml:"upload_quicktime"`

	// Auxiliary templates used only for dialect translation in the
	// generated export preset, never for path matching
	BatchTemplate       string `koanf:"batch_template" toml:"batch_template"`
	ShotClipTemplate    string `koanf:"shot_clip_template" toml:"shot_clip_template"`
	SegmentClipTemplate string `koanf:"segment_clip_template" toml:"segment_clip_template"`
}

// Settings is the full flameset configuration
type Settings struct {
	Instance             string                    `koanf:"instance" toml:"instance"`
	PresetVersion        string                    `koanf:"preset_version" toml:"preset_version"`
	ProjectRoot          string                    `koanf:"project_root" toml:"project_root"`
	ShotParentEntityType string                    `koanf:"shot_parent_entity_type" toml:"shot_parent_entity_type"`
	Templates            map[string]TemplateConfig `koanf:"templates" toml:"templates"`
	PlatePresets         []PresetConfig            `koanf:"plate_presets" toml:"plate_presets"`
}

// BuildRegistry compiles every configured template into a registry
// rooted at the configured project root
func (s *Settings) BuildRegistry() (*templates.Registry, error) {
	reg := templates.NewRegistry(s.ProjectRoot)
	for name, tc := range s.Templates {
		keys := make(map[string]templates.Key, len(tc.Keys))
		for field, kc := range tc.Keys {
			keys[field] = templates.Key{Type: kc.Type, FormatSpec: kc.FormatSpec}
		}
		if _, err := reg.Add(name, tc.Definition, keys); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
