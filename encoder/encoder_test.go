package encoder

import "testing"

func TestPresetParameters(t *testing.T) {
	cases := []struct {
		preset      Preset
		crf         string
		encoderName string
	}{
		{Slow, "10", "veryslow"},
		{Fast, "20", "veryfast"},
	}
	for _, c := range cases {
		if got := c.preset.crf(); got != c.crf {
			t.Errorf("Preset(%d).crf() = %q, want %q", c.preset, got, c.crf)
		}
		if got := c.preset.encoderPreset(); got != c.encoderName {
			t.Errorf("Preset(%d).encoderPreset() = %q, want %q", c.preset, got, c.encoderName)
		}
	}
}
