package colormap

import (
	"strings"
	"testing"
)

func TestLoadReaderValid(t *testing.T) {
	csv := "RGB_r,RGB_g,RGB_b\n0,0,0\n128,64,32\n255,255,255\n"
	m := LoadReader(strings.NewReader(csv))

	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
	if c := m.At(1); c.R != 128 || c.G != 64 || c.B != 32 {
		t.Fatalf("At(1) = %+v, want {128 64 32}", c)
	}
}

func TestLoadReaderEmptyIsSentinel(t *testing.T) {
	m := LoadReader(strings.NewReader("RGB_r,RGB_g,RGB_b\n"))
	if m.Len() != -1 {
		t.Fatalf("Len() = %d, want -1 for empty colormap", m.Len())
	}
}

func TestLoadReaderMalformedIsSentinel(t *testing.T) {
	m := LoadReader(strings.NewReader("RGB_r,RGB_g,RGB_b\nnotanumber,0,0\n"))
	if m.Len() != -1 {
		t.Fatalf("Len() = %d, want -1 for malformed row", m.Len())
	}
}

func TestLoadMissingFileIsSentinel(t *testing.T) {
	m := Load("/nonexistent/path/to/colormap.csv")
	if m.Len() != -1 {
		t.Fatalf("Len() = %d, want -1 for missing file", m.Len())
	}
}
