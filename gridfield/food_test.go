package gridfield

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestNilFoodIsConstantZero(t *testing.T) {
	var f *Food
	if f.At(0, 0) != 0 || f.AtIndex(5) != 0 {
		t.Fatalf("nil *Food must read as constant zero")
	}
}

func TestGenerateNoiseInRange(t *testing.T) {
	f := GenerateNoise(8, 8, 42, 3)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			v := f.At(row, col)
			if v < 0 || v > 1 {
				t.Fatalf("food[%d,%d] = %v, want in [0,1]", row, col, v)
			}
		}
	}
}

func TestGenerateNoiseDeterministic(t *testing.T) {
	a := GenerateNoise(6, 6, 7, 4)
	b := GenerateNoise(6, 6, 7, 4)
	for i := range a.data {
		if a.data[i] != b.data[i] {
			t.Fatalf("GenerateNoise with the same seed produced different fields at %d", i)
		}
	}
}

func TestLoadRawRoundTrip(t *testing.T) {
	const w, h = 3, 2
	values := []float64{1, 2, 3, 4, 5, 6}

	path := filepath.Join(t.TempDir(), "food.raw")
	buf := make([]byte, len(values)*8)
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := LoadRaw(path, w, h)
	if err != nil {
		t.Fatalf("LoadRaw: %v", err)
	}
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			want := values[row*w+col]
			if got := f.At(row, col); got != want {
				t.Errorf("food[%d,%d] = %v, want %v", row, col, got, want)
			}
		}
	}
}

func TestLoadRawWrongSizeErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "food.raw")
	if err := os.WriteFile(path, []byte{1, 2, 3}, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadRaw(path, 4, 4); err == nil {
		t.Fatal("expected error for mismatched food field size, got nil")
	}
}
