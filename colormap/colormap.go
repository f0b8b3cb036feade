// Package colormap loads the CSV colormap format of spec §6: a header line
// "RGB_r,RGB_g,RGB_b" followed by rows of three decimal integers in
// [0, 255]. On any failure it returns the sentinel error colormap (Len() ==
// -1), matching the original implementation's "colormap.colors not
// allocated, length -1" contract.
package colormap

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
)

// Color is one row of the colormap: an (r, g, b) byte triple.
type Color struct {
	R uint8 `csv:"RGB_r"`
	G uint8 `csv:"RGB_g"`
	B uint8 `csv:"RGB_b"`
}

// Map is an ordered sequence of colors, assumed equally spaced across the
// value range a caller will colorize against.
type Map struct {
	colors []Color
	failed bool
}

// errMap is the sentinel failure colormap: Len() returns -1.
var errMap = Map{failed: true}

// Len returns the number of colors, or -1 to signal a load failure (spec §7).
func (m Map) Len() int {
	if m.failed {
		return -1
	}
	return len(m.colors)
}

// At returns the i'th color. Callers must not call this on a failed map.
func (m Map) At(i int) Color { return m.colors[i] }

// Load reads a colormap CSV from path. On any error (missing file, wrong
// header, malformed row, out-of-range channel) it returns the sentinel
// failure colormap rather than an error value, per spec §6/§7 — callers
// check Len() < 0.
func Load(path string) Map {
	f, err := os.Open(path)
	if err != nil {
		return errMap
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader parses a colormap from an already-open reader (used by Load
// and directly by tests).
func LoadReader(r io.Reader) Map {
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return errMap
	}
	if strings.TrimRight(header, "\r\n") != "RGB_r,RGB_g,RGB_b" {
		return errMap
	}
	var rows []Color
	if err := gocsv.Unmarshal(io.MultiReader(strings.NewReader(header), br), &rows); err != nil {
		return errMap
	}
	if len(rows) == 0 {
		return errMap
	}
	return Map{colors: rows}
}
