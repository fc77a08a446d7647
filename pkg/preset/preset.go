// Package preset implements Flame export presets: named configuration
// entries describing how a category of media is exported out of Flame
// and published to the tracking site.
//
// A Preset translates the pipeline's path templates into the Flame
// export preset xml dialect and writes the assembled preset file to the
// instance cache. The Handler indexes all configured presets and
// resolves, from a previously exported render path, which preset
// produced it.
package preset

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/openpipe/flameset/pkg/config"
	"github.com/openpipe/flameset/pkg/errors"
	"github.com/openpipe/flameset/pkg/hooks"
	"github.com/openpipe/flameset/pkg/logging"
	"github.com/openpipe/flameset/pkg/paths"
	"github.com/openpipe/flameset/pkg/templates"
)

// UnknownPublishName is returned when a publish name cannot be derived
// from a path. Name generation is cosmetic, so failures degrade to this
// label instead of erroring.
const UnknownPublishName = "Unknown"

// Preset wraps one raw export preset record. It is immutable after
// construction; all accessors resolve against the injected registry,
// hook and cache paths.
type Preset struct {
	cfg      config.PresetConfig
	settings *config.Settings
	registry *templates.Registry
	hook     hooks.VideoPresetHook
	cache    paths.Paths
	log      zerolog.Logger
}

// New creates a Preset from a raw configuration record. Construction
// is side-effect-free and cannot fail; template names are resolved
// lazily by the accessors.
func New(cfg config.PresetConfig, settings *config.Settings, registry *templates.Registry,
	hook hooks.VideoPresetHook, cache paths.Paths) *Preset {
	return &Preset{
		cfg:      cfg,
		settings: settings,
		registry: registry,
		hook:     hook,
		cache:    cache,
		log:      logging.GetLogger("preset"),
	}
}

// Name returns the name of this export preset
func (p *Preset) Name() string {
	return p.cfg.Name
}

// String implements fmt.Stringer
func (p *Preset) String() string {
	return fmt.Sprintf("<Preset %s>", p.cfg.Name)
}

// RenderTemplate resolves the render output template for this preset
func (p *Preset) RenderTemplate() (*templates.Template, error) {
	return p.registry.Get(p.cfg.Template)
}

// RenderPublishType returns the publish type to use for renders
func (p *Preset) RenderPublishType() string {
	return p.cfg.PublishType
}

// RenderPublishName generates a name suitable for a render publish
func (p *Preset) RenderPublishName(path string) string {
	tmpl, err := p.RenderTemplate()
	if err != nil {
		tmpl = nil
	}
	return p.publishName(tmpl, path)
}

// MakeHighresQuicktime reports whether a high res quicktime should be
// generated for this preset
func (p *Preset) MakeHighresQuicktime() bool {
	tmpl, err := p.QuicktimeTemplate()
	return err == nil && tmpl != nil
}

// QuicktimeTemplate resolves the template for quicktimes on disk.
// It returns nil (without error) when no quicktimes should be written.
func (p *Preset) QuicktimeTemplate() (*templates.Template, error) {
	if p.cfg.QuicktimeTemplate == "" {
		return nil, nil
	}
	return p.registry.Get(p.cfg.QuicktimeTemplate)
}

// QuicktimePathFromRenderPath breaks a render path into the fields of
// the render template and resolves those fields against the quicktime
// template.
//
// The quicktime template's fields therefore need to be a subset of the
// render template's fields: when batch render hooks trigger, the raw
// render path is all that is available, not the metadata that
// originally composed it. This is a configuration contract, not a
// runtime check.
func (p *Preset) QuicktimePathFromRenderPath(renderPath string) (string, error) {
	quicktimeTemplate, err := p.QuicktimeTemplate()
	if err != nil {
		return "", err
	}
	if quicktimeTemplate == nil {
		return "", errors.Newf(errors.ErrNoQuicktimeTemplate,
			"%s: cannot evaluate quicktime path because no quicktime template has been defined", p)
	}

	renderTemplate, err := p.RenderTemplate()
	if err != nil {
		return "", err
	}
	fields, err := renderTemplate.Fields(renderPath)
	if err != nil {
		return "", err
	}

	return quicktimeTemplate.ApplyFields(fields)
}

// QuicktimePublishType returns the publish type to use for quicktimes
func (p *Preset) QuicktimePublishType() string {
	return p.cfg.QuicktimePublishType
}

// QuicktimePublishName generates a name suitable for a quicktime publish
func (p *Preset) QuicktimePublishName(path string) string {
	tmpl, err := p.QuicktimeTemplate()
	if err != nil {
		tmpl = nil
	}
	return p.publishName(tmpl, path)
}

// UploadQuicktime indicates that quicktimes should be pushed to the
// tracking site
func (p *Preset) UploadQuicktime() bool {
	return p.cfg.UploadQuicktime
}

// publishName derives a publish name from a path. The name omits the
// version number so publishes of the same kind group together. A path
// that does not validate yields the fallback label.
func (p *Preset) publishName(tmpl *templates.Template, path string) string {
	if tmpl == nil || !tmpl.Validate(path) {
		p.log.Warn().
			Str("preset", p.cfg.Name).
			Str("path", path).
			Msg("Cannot generate a publish name")
		return UnknownPublishName
	}

	fields, err := tmpl.Fields(path)
	if err != nil {
		return UnknownPublishName
	}
	return fmt.Sprintf("%s, %s", fields["Shot"], fields["segment_name"])
}
