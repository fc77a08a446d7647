package preset

import (
	"os"
	"strings"

	"github.com/beevik/etree"

	"github.com/openpipe/flameset/pkg/errors"
)

// xmlEscaper escapes the characters that would corrupt xml markup. The
// translated templates contain <...> placeholders by construction;
// inside the preset document they are literal text that Flame parses
// itself later, not markup.
var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// flameTemplates holds the dialect-translated template definitions
// spliced into the export preset
type flameTemplates struct {
	plate       string
	batch       string
	shotClip    string
	segmentClip string
}

// XMLPath generates the Flame export preset for this preset and
// returns the path of the written xml file.
//
// The preset is combined from several sources: the scaffold below, the
// video fragment supplied by the video preset hook, and the
// dialect-translated templates. The file lands in the instance cache
// directory so each app instance generates its own set of preset files.
func (p *Preset) XMLPath() (string, error) {
	flame, err := p.resolveFlameTemplates()
	if err != nil {
		return "", err
	}

	// the plate pattern handed to the hook is escaped so its
	// placeholders don't interfere with the fragment's markup
	videoXML, err := p.hook.VideoPreset(p.Name(), xmlEscaper.Replace(flame.plate), true)
	if err != nil {
		return "", err
	}

	renderTemplate, err := p.RenderTemplate()
	if err != nil {
		return "", err
	}

	// align frame and version padding with the render template's
	// numeric format specs; "04" becomes "4"
	seqKey, err := renderTemplate.Key("SEQ")
	if err != nil {
		return "", err
	}
	framePadding := strings.TrimLeft(seqKey.FormatSpec, "0")
	p.log.Debug().
		Str("framePadding", framePadding).
		Str("template", renderTemplate.Name()).
		Msg("Setting frame padding from SEQ key")

	versionKey, err := renderTemplate.Key("version")
	if err != nil {
		return "", err
	}
	versionPadding := strings.TrimLeft(versionKey.FormatSpec, "0")
	p.log.Debug().
		Str("versionPadding", versionPadding).
		Str("template", renderTemplate.Name()).
		Msg("Setting version padding from version key")

	doc, err := p.buildDocument(videoXML, flame, framePadding, versionPadding)
	if err != nil {
		return "", err
	}

	return p.writeDocument(doc)
}

// resolveFlameTemplates converts the preset's templates into Flame
// dialect. The Flame export root corresponds to the project root, so
// both template systems share the same anchor point.
func (p *Preset) resolveFlameTemplates() (*flameTemplates, error) {
	renderTemplate, err := p.RenderTemplate()
	if err != nil {
		return nil, err
	}

	out := &flameTemplates{}
	parts := []struct {
		name   string
		target *string
	}{
		{p.cfg.BatchTemplate, &out.batch},
		{p.cfg.ShotClipTemplate, &out.shotClip},
		{p.cfg.SegmentClipTemplate, &out.segmentClip},
	}

	out.plate = Translate(renderTemplate.Definition(), p.settings.ShotParentEntityType)
	p.log.Debug().Str("pipeline", renderTemplate.Definition()).Str("flame", out.plate).Msg("Translated template")

	for _, part := range parts {
		tmpl, err := p.registry.Get(part.name)
		if err != nil {
			return nil, err
		}
		*part.target = Translate(tmpl.Definition(), p.settings.ShotParentEntityType)
		p.log.Debug().Str("pipeline", tmpl.Definition()).Str("flame", *part.target).Msg("Translated template")
	}

	return out, nil
}

// buildDocument assembles the export preset document: the fixed
// sequence scaffold, the hook-supplied video fragment, and the
// translated naming patterns with frame/version padding.
func (p *Preset) buildDocument(videoXML string, flame *flameTemplates, framePadding, versionPadding string) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("preset")
	root.CreateAttr("version", p.settings.PresetVersion)
	root.CreateElement("type").SetText("sequence")
	root.CreateElement("comment").SetText("Export profile for the flameset shot export")

	seq := root.CreateElement("sequence")
	seq.CreateElement("fileType").SetText("NONE")
	seq.CreateElement("namePattern")
	seq.CreateElement("includeVideo").SetText("True")
	seq.CreateElement("exportVideo").SetText("True")

	videoMedia := seq.CreateElement("videoMedia")
	videoMedia.CreateElement("mediaFileType").SetText("image")
	videoMedia.CreateElement("commit").SetText("Original")
	videoMedia.CreateElement("flatten").SetText("NoChange")
	videoMedia.CreateElement("exportHandles").SetText("True")
	videoMedia.CreateElement("nbHandles").SetText("10")

	seq.CreateElement("includeAudio").SetText("True")
	seq.CreateElement("exportAudio").SetText("False")

	audioMedia := seq.CreateElement("audioMedia")
	audioMedia.CreateElement("mediaFileType").SetText("audio")
	audioMedia.CreateElement("commit").SetText("Original")
	audioMedia.CreateElement("flatten").SetText("NoChange")
	audioMedia.CreateElement("exportHandles").SetText("True")
	audioMedia.CreateElement("nbHandles").SetText("10")

	// splice in the video fragment from the hook as markup
	fragment := etree.NewDocument()
	if err := fragment.ReadFromString(videoXML); err != nil {
		return nil, errors.Wrapf(err, errors.ErrHookExecute,
			"video preset hook for '%s' returned malformed xml", p.cfg.Name)
	}
	fragmentRoot := fragment.Root()
	if fragmentRoot == nil {
		return nil, errors.Newf(errors.ErrHookExecute,
			"video preset hook for '%s' returned an empty fragment", p.cfg.Name)
	}
	root.AddChild(fragmentRoot.Copy())

	name := root.CreateElement("name")
	name.CreateElement("framePadding").SetText(framePadding)
	name.CreateElement("startFrame").SetText("100")
	name.CreateElement("useTimecode").SetText("False")

	openClip := root.CreateElement("createOpenClip")
	openClip.CreateElement("namePattern").SetText(flame.segmentClip)

	version := openClip.CreateElement("version")
	version.CreateElement("index").SetText("0")
	version.CreateElement("padding").SetText(versionPadding)
	version.CreateElement("name").SetText("v<version>")

	batchSetup := openClip.CreateElement("batchSetup")
	batchSetup.CreateElement("namePattern").SetText(flame.batch)
	batchSetup.CreateElement("exportNamePattern").SetText(flame.shotClip)

	root.CreateElement("reImport").CreateElement("namePattern")

	doc.Indent(3)
	return doc, nil
}

// writeDocument writes the preset document to the instance cache and
// returns the file path
func (p *Preset) writeDocument(doc *etree.Document) (string, error) {
	if _, err := p.cache.EnsureInstanceDir(p.settings.Instance); err != nil {
		return "", err
	}

	outPath := p.cache.ExportPresetPath(p.settings.Instance)
	data, err := doc.WriteToBytes()
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "failed to serialize preset '%s'", p.cfg.Name)
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to write preset file %s", outPath)
	}

	p.log.Debug().Str("path", outPath).Str("preset", p.cfg.Name).Msg("Wrote export preset file")
	return outPath, nil
}
