// Test Type: Unit Test
// Description: Tests for the preset package - pipeline-to-Flame dialect translation

package preset_test

import (
	"testing"

	"github.com/openpipe/flameset/pkg/preset"
	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name         string
		definition   string
		parentEntity string
		want         string
	}{
		{
			name:         "plate_template",
			definition:   "sequences/{Sequence}/{Shot}/editorial/plates/{segment_name}_{Shot}.v{version}.{SEQ}.dpx",
			parentEntity: "Sequence",
			want:         "sequences/<name>/<shot name>/editorial/plates/<segment name>_<shot name>.v<version>.<frame><ext>",
		},
		{
			name:         "batch_template",
			definition:   "sequences/{Sequence}/{Shot}/editorial/flame/batch/{Shot}.v{version}.batch",
			parentEntity: "Sequence",
			want:         "sequences/<name>/<shot name>/editorial/flame/batch/<shot name>.v<version><ext>",
		},
		{
			name:         "segment_clip_template",
			definition:   "sequences/{Sequence}/{Shot}/editorial/flame/sources/{segment_name}.clip",
			parentEntity: "Sequence",
			want:         "sequences/<name>/<shot name>/editorial/flame/sources/<segment name><ext>",
		},
		{
			name:         "scene_as_parent_entity",
			definition:   "scenes/{Scene}/{Shot}/plates/{segment_name}.{SEQ}.exr",
			parentEntity: "Scene",
			want:         "scenes/<name>/<shot name>/plates/<segment name>.<frame><ext>",
		},
		{
			name:         "parent_entity_token_not_special_cased",
			definition:   "sequences/{Sequence}/{Shot}.clip",
			parentEntity: "Scene",
			want:         "sequences/{Sequence}/<shot name><ext>",
		},
		{
			name:         "date_and_dimension_tokens",
			definition:   "dailies/{YYYY}-{MM}-{DD}/{hh}{mm}{ss}_{width}x{height}.jpg",
			parentEntity: "Sequence",
			want:         "dailies/<YYYY>-<MM>-<DD>/<hh><mm><ss>_<width>x<height><ext>",
		},
		{
			name:         "no_extension",
			definition:   "mondo/{Shot}/{segment_name}",
			parentEntity: "Sequence",
			want:         "mondo/<shot name>/<segment name><ext>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, preset.Translate(tt.definition, tt.parentEntity))
		})
	}
}

func TestTranslateIsIdempotent(t *testing.T) {
	definitions := []string{
		"sequences/{Sequence}/{Shot}/editorial/plates/{segment_name}_{Shot}.v{version}.{SEQ}.dpx",
		"sequences/{Sequence}/{Shot}/editorial/flame/{Shot}.clip",
		"dailies/{YYYY}-{MM}-{DD}/{hh}{mm}{ss}.jpg",
	}

	for _, def := range definitions {
		once := preset.Translate(def, "Sequence")
		twice := preset.Translate(once, "Sequence")
		assert.Equal(t, once, twice, "translation must be stable for %s", def)
	}
}
