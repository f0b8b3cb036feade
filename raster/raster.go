// Package raster turns a simulation trail field into a rendered video frame:
// box-filter downscale, clamp-then-colormap-index colorization, and raw PPM
// encoding for piping to the video encoder. Grounded on
// original_source/process_image.c's downscale_image/color_image/color_pixel.
package raster

import (
	"bufio"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/pthm-cable/physarum/colormap"
)

// Downscale box-filters a row-major width*height field by factor, averaging
// each factor*factor block into one output pixel. width and height must be
// multiples of factor.
func Downscale(field []float64, width, height, factor int) []float64 {
	outW, outH := width/factor, height/factor
	out := make([]float64, outW*outH)
	mult := 1.0 / float64(factor*factor)

	for row := 0; row < height; row++ {
		outRow := row / factor
		for col := 0; col < width; col++ {
			outCol := col / factor
			out[outRow*outW+outCol] += mult * field[row*width+col]
		}
	}
	return out
}

// Colorize maps a row-major scalar field to RGB pixels via cm, clamping each
// value to [minval, maxval] before indexing, so out-of-range trail values
// saturate to the colormap's end stops rather than wrapping or panicking.
// Each pixel is independent, so the field is partitioned across
// GOMAXPROCS chunks and colorized in parallel, the same row-chunked
// sync.WaitGroup shape used by the simulation's own parallel kernels.
func Colorize(field []float64, cm colormap.Map, minval, maxval float64) []colormap.Color {
	out := make([]colormap.Color, len(field))
	n := cm.Len()
	if n <= 0 {
		return out
	}

	span := maxval - minval
	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	chunk := (len(field) + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > len(field) {
			end = len(field)
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(i0, i1 int) {
			defer wg.Done()
			for i := i0; i < i1; i++ {
				v := field[i]
				if v < minval {
					v = minval
				} else if v > maxval {
					v = maxval
				}
				idx := 0
				if span > 0 {
					idx = int((v - minval) * float64(n) / span)
				}
				if idx >= n {
					idx = n - 1
				}
				out[i] = cm.At(idx)
			}
		}(start, end)
	}
	wg.Wait()
	return out
}

// WritePPM writes pixels (row-major, width*height) as a binary PPM (P6)
// image: the simplest format the downstream encoder's raw-video input can
// consume without a container.
func WritePPM(w io.Writer, pixels []colormap.Color, width, height int) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d 255\n", width, height); err != nil {
		return fmt.Errorf("raster: write PPM header: %w", err)
	}

	buf := make([]byte, 3*len(pixels))
	for i, p := range pixels {
		buf[3*i] = p.R
		buf[3*i+1] = p.G
		buf[3*i+2] = p.B
	}
	if _, err := bw.Write(buf); err != nil {
		return fmt.Errorf("raster: write PPM body: %w", err)
	}
	return bw.Flush()
}
