package gridfield

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Food is the optional static second scalar field that contributes
// additively to attraction (spec §3, §4.3, §9). A nil *Food behaves as a
// constant-zero field so sensing has one code path whether or not food is
// in use.
type Food struct {
	W, H int
	data []float64
}

// NewFood allocates a zeroed width x height food field (empty-equivalent).
func NewFood(w, h int) *Food {
	return &Food{W: w, H: h, data: make([]float64, w*h)}
}

// At returns the food value at (row, col), or 0 for a nil field.
func (f *Food) At(row, col int) float64 {
	if f == nil {
		return 0
	}
	return f.data[row*f.W+col]
}

// AtIndex returns the food value at a flat index, or 0 for a nil field.
func (f *Food) AtIndex(idx int) float64 {
	if f == nil {
		return 0
	}
	return f.data[idx]
}

// Set writes a food value at (row, col).
func (f *Food) Set(row, col int, v float64) {
	f.data[row*f.W+col] = v
}

// GenerateNoise seeds a static food field from a single 2-D OpenSimplex
// octave, scale cells per noise unit. Unlike the teacher's animated 4-D FBM
// capacity field, the food field here is sampled once at episode start and
// never advances, per spec §3 ("fixed per episode").
func GenerateNoise(w, h int, seed int64, scale float64) *Food {
	f := NewFood(w, h)
	noise := opensimplex.New(seed)
	if scale <= 0 {
		scale = 1
	}
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			n := noise.Eval2(float64(col)/scale, float64(row)/scale)
			// shift [-1, 1] -> [0, 1]
			f.Set(row, col, (n+1)*0.5)
		}
	}
	return f
}

// LoadRaw reads a width*height food field from a flat little-endian
// float64 dump (row-major, matching Trail's own on-disk-free layout). This
// is the "-food <path>" CLI case: a precomputed field authored offline,
// as opposed to GenerateNoise's procedural one.
func LoadRaw(path string, w, h int) (*Food, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gridfield: reading food field %s: %w", path, err)
	}
	want := w * h * 8
	if len(data) != want {
		return nil, fmt.Errorf("gridfield: food field %s has %d bytes, want %d (%dx%d float64)", path, len(data), want, w, h)
	}

	f := NewFood(w, h)
	for i := range f.data {
		bits := binary.LittleEndian.Uint64(data[i*8 : i*8+8])
		f.data[i] = math.Float64frombits(bits)
	}
	return f, nil
}
