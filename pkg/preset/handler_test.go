// Test Type: Unit Test
// Description: Tests for the preset package - handler indexing and reverse path lookup

package preset_test

import (
	"testing"

	"github.com/openpipe/flameset/pkg/config"
	"github.com/openpipe/flameset/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetNames(t *testing.T) {
	handler := newTestHandler(t, testSettings())

	assert.Equal(t, []string{"10 bit DPX", "Mondo EXR"}, handler.PresetNames())
}

func TestPresetByNameRoundTrip(t *testing.T) {
	handler := newTestHandler(t, testSettings())

	for _, name := range handler.PresetNames() {
		p, err := handler.PresetByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, p.Name())
	}
}

func TestPresetByNameUnknown(t *testing.T) {
	handler := newTestHandler(t, testSettings())

	_, err := handler.PresetByName("does not exist")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPresetNotFound))
	assert.Contains(t, err.Error(), "does not exist")
}

func TestPresetForRenderPath(t *testing.T) {
	handler := newTestHandler(t, testSettings())

	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "dpx_plate_path",
			path: "sequences/aaa_123/sh010/editorial/plates/segA_sh010.v002.0100.dpx",
			want: "10 bit DPX",
		},
		{
			name: "mondo_exr_path",
			path: "mondo/sh020/segB.v003.0007.exr",
			want: "Mondo EXR",
		},
		{
			name: "unmatched_path",
			path: "elsewhere/entirely/unrelated.mov",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := handler.PresetForRenderPath(tt.path)
			if tt.want == "" {
				assert.Nil(t, p)
				return
			}
			require.NotNil(t, p)
			assert.Equal(t, tt.want, p.Name())
		})
	}
}

func TestPresetForRenderPathSkipsBrokenPresets(t *testing.T) {
	settings := testSettings()
	settings.PlatePresets = append(settings.PlatePresets, config.PresetConfig{
		Name:     "Broken",
		Template: "no_such_template",
	})
	handler := newTestHandler(t, settings)

	// the broken preset must not abort the scan
	p := handler.PresetForRenderPath("mondo/sh020/segB.v003.0007.exr")
	require.NotNil(t, p)
	assert.Equal(t, "Mondo EXR", p.Name())
}

func TestHandlerDuplicateNamesLastWins(t *testing.T) {
	settings := testSettings()
	settings.PlatePresets = append(settings.PlatePresets, config.PresetConfig{
		Name:        "10 bit DPX",
		Template:    "flame_mondo_render",
		PublishType: "Override Render",
	})
	handler := newTestHandler(t, settings)

	p, err := handler.PresetByName("10 bit DPX")
	require.NoError(t, err)
	assert.Equal(t, "Override Render", p.RenderPublishType())
	assert.Len(t, handler.PresetNames(), 2)
}
