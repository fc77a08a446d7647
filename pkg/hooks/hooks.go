// Package hooks defines the extensibility points of the export preset
// system. Studios replace the default implementations to customize the
// output formats Flame renders, without touching the preset assembly
// logic.
package hooks

import (
	"fmt"

	"github.com/openpipe/flameset/pkg/logging"
)

// VideoPresetHook supplies the video portion of an export preset.
//
// namePattern is the translated plate pattern, already escaped for
// splicing into xml; the returned fragment must be a single well-formed
// xml element (typically <video>) which is inserted verbatim into the
// preset scaffold.
type VideoPresetHook interface {
	VideoPreset(presetName, namePattern string, publishLinked bool) (string, error)
}

// DpxVideoPreset is the default video preset hook. It configures a
// 10-bit DPX image sequence export, which is what most plate pipelines
// round-trip through Flame.
type DpxVideoPreset struct{}

// VideoPreset returns the <video> fragment for a 10-bit DPX export
func (DpxVideoPreset) VideoPreset(presetName, namePattern string, publishLinked bool) (string, error) {
	logger := logging.GetLogger("hooks.video")
	logger.Debug().
		Str("preset", presetName).
		Str("namePattern", namePattern).
		Bool("publishLinked", publishLinked).
		Msg("Generating default DPX video preset")

	xml := fmt.Sprintf(`<video>
   <fileType>Dpx</fileType>
   <codec>923680</codec>
   <codecProfile />
   <namePattern>%s</namePattern>
   <compressionQuality>50</compressionQuality>
   <transferCharacteristic>2</transferCharacteristic>
   <colorimetricSpecification>4</colorimetricSpecification>
   <publishLinked>%s</publishLinked>
   <foregroundPublish>False</foregroundPublish>
   <overwriteWithVersions>False</overwriteWithVersions>
   <resize>
      <resizeType>fit</resizeType>
      <resizeFilter>lanczos</resizeFilter>
      <width>0</width>
      <height>0</height>
      <bitsPerChannel>10</bitsPerChannel>
      <numChannels>3</numChannels>
      <floatingPoint>False</floatingPoint>
      <bigEndian>True</bigEndian>
      <pixelRatio>1</pixelRatio>
      <scanFormat>P</scanFormat>
   </resize>
</video>`, namePattern, flameBool(publishLinked))

	return xml, nil
}

// flameBool renders a bool the way Flame preset files spell them
func flameBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
