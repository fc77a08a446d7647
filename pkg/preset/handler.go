package preset

import (
	"sort"

	"github.com/openpipe/flameset/pkg/config"
	"github.com/openpipe/flameset/pkg/errors"
	"github.com/openpipe/flameset/pkg/hooks"
	"github.com/openpipe/flameset/pkg/logging"
	"github.com/openpipe/flameset/pkg/paths"
	"github.com/openpipe/flameset/pkg/templates"
)

// Handler wraps the plate_presets configuration structure. It builds
// one Preset per raw record at construction time and is read-only
// afterwards.
//
// Duplicate preset names are last-wins; configurations should not rely
// on that and simply avoid duplicates.
type Handler struct {
	presets map[string]*Preset
}

// NewHandler builds the name-to-preset index from the loaded settings
func NewHandler(settings *config.Settings, registry *templates.Registry,
	hook hooks.VideoPresetHook, cache paths.Paths) *Handler {
	logger := logging.GetLogger("preset.handler")

	presets := make(map[string]*Preset, len(settings.PlatePresets))
	for _, raw := range settings.PlatePresets {
		presets[raw.Name] = New(raw, settings, registry, hook, cache)
		logger.Debug().Str("preset", raw.Name).Str("template", raw.Template).Msg("Loaded export preset")
	}

	return &Handler{presets: presets}
}

// PresetNames returns the names of all export presets defined in the
// configuration
func (h *Handler) PresetNames() []string {
	names := make([]string, 0, len(h.presets))
	for name := range h.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetByName returns the export preset with the given name, or a
// PRESET_NOT_FOUND configuration error
func (h *Handler) PresetByName(name string) (*Preset, error) {
	p, ok := h.presets[name]
	if !ok {
		return nil, errors.Newf(errors.ErrPresetNotFound,
			"export preset handler cannot find preset '%s' in the configuration", name).
			WithDetail("preset", name)
	}
	return p, nil
}

// PresetForRenderPath figures out which export preset was used to
// generate the given render path. Useful in batch mode, where the
// generated path is all that Flame hands back.
//
// Returns nil when no preset's render template validates the path.
// Presets are assumed distinguishable by their template shapes;
// behavior under overlapping templates is first-match and should not
// be relied upon.
func (h *Handler) PresetForRenderPath(path string) *Preset {
	logger := logging.GetLogger("preset.handler")
	logger.Debug().Str("path", path).Msg("Trying to locate an export preset for path")

	for _, name := range h.PresetNames() {
		p := h.presets[name]

		tmpl, err := p.RenderTemplate()
		if err != nil {
			logger.Warn().Err(err).Str("preset", name).Msg("Skipping preset with unresolvable render template")
			continue
		}
		if tmpl.Validate(path) {
			logger.Debug().Str("preset", name).Msg("Matching preset")
			return p
		}
		logger.Debug().Str("preset", name).Msg("Not matching")
	}

	return nil
}
