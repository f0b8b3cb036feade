// Command physarum runs the slime-mold colony simulation end to end: parses
// and validates its positional CLI arguments, runs the simulation core for
// seconds*fps frames, and streams each frame through the downscale/colorize/
// PPM pipeline to an ffmpeg subprocess. Grounded on
// original_source/slimemold.c's validate-and-echo argument parsing style.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/pthm-cable/physarum/agent"
	"github.com/pthm-cable/physarum/behavior"
	"github.com/pthm-cable/physarum/colormap"
	"github.com/pthm-cable/physarum/config"
	"github.com/pthm-cable/physarum/encoder"
	"github.com/pthm-cable/physarum/gridfield"
	"github.com/pthm-cable/physarum/internal/runlog"
	"github.com/pthm-cable/physarum/metrics"
	"github.com/pthm-cable/physarum/raster"
	"github.com/pthm-cable/physarum/rng"
	"github.com/pthm-cable/physarum/simcore"
)

// positional holds the 16 required CLI arguments, in order (spec §6).
type positional struct {
	width, height     int
	fps               int
	resolutionFactor  int
	seconds           int
	nagents           int
	movementSpeed     float64
	trailDepositRate  float64
	movementNoise     float64
	turnRate          float64
	sensorLength      float64
	sensorAngleFactor float64
	dispersionRate    float64
	evaporationRateExp float64
	evaporationRateLin float64
	outputFile        string
}

const usage = `usage: physarum [flags] width height fps resolution_factor seconds nagents ` +
	`movement_speed trail_deposit_rate movement_noise turn_rate sensor_length ` +
	`sensor_angle_factor dispersion_rate evaporation_rate_exp evaporation_rate_lin output_file`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("physarum", flag.ContinueOnError)
	colormapPath := fs.String("colormap", "", "path to a colormap CSV (RGB_r,RGB_g,RGB_b header)")
	presetName := fs.String("preset", "fast", "encoder preset: slow or fast")
	configPath := fs.String("config", "", "optional YAML config file overriding behavior defaults")
	foodSpec := fs.String("food", "", `optional food field: "noise" for procedural OpenSimplex, `+
		"or a path to a raw little-endian float64 dump sized width*height; empty for none")
	foodSeed := fs.Int64("food-seed", 1, "seed for -food noise")
	foodScale := fs.Float64("food-scale", 32, "cells per noise unit for -food noise")
	metricsPath := fs.String("metrics", "", "optional CSV path for per-frame diagnostics")
	fs.Usage = func() { fmt.Fprintln(os.Stderr, usage) }

	if err := fs.Parse(args); err != nil {
		return 1
	}

	rest := fs.Args()
	if len(rest) != 16 {
		fs.Usage()
		return 1
	}

	p, err := parsePositional(rest)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	preset := encoder.Fast
	if *presetName == "slow" {
		preset = encoder.Slow
	}

	cm := colormap.Map{}
	if *colormapPath != "" {
		cm = colormap.Load(*colormapPath)
		if cm.Len() < 0 {
			fmt.Fprintln(os.Stderr, "Error: failed to load colormap", *colormapPath)
			return 1
		}
	}

	mw, err := metrics.NewWriter(*metricsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	defer mw.Close()

	food, err := resolveFood(*foodSpec, p.width, p.height, *foodSeed, *foodScale)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	if err := simulate(p, cfg, cm, preset, mw, food); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// resolveFood dispatches the -food flag: "" disables the field, "noise"
// generates it procedurally (gridfield.GenerateNoise), and anything else is
// treated as a path to a raw field dump (gridfield.LoadRaw).
func resolveFood(spec string, width, height int, seed int64, scale float64) (*gridfield.Food, error) {
	switch spec {
	case "":
		return nil, nil
	case "noise":
		return gridfield.GenerateNoise(width, height, seed, scale), nil
	default:
		return gridfield.LoadRaw(spec, width, height)
	}
}

// parsePositional parses and validates the 16 positional arguments,
// echoing each as "name=value" on success (original_source/slimemold.c's
// parse_int/parse_float style) and reporting the first violated bound as a
// validation error.
func parsePositional(args []string) (positional, error) {
	var p positional
	var err error

	if p.width, err = parseInt(args[0], "width", 1); err != nil {
		return p, err
	}
	if p.height, err = parseInt(args[1], "height", 1); err != nil {
		return p, err
	}
	if p.fps, err = parseInt(args[2], "fps", 1); err != nil {
		return p, err
	}
	if p.resolutionFactor, err = parseInt(args[3], "resolution_factor", 1); err != nil {
		return p, err
	}
	if p.seconds, err = parseInt(args[4], "seconds", 1); err != nil {
		return p, err
	}
	if p.nagents, err = parseInt(args[5], "nagents", 0); err != nil {
		return p, err
	}
	if p.movementSpeed, err = parseFloat(args[6], "movement_speed", 0); err != nil {
		return p, err
	}
	if p.trailDepositRate, err = parseFloat(args[7], "trail_deposit_rate", 0); err != nil {
		return p, err
	}
	if p.movementNoise, err = parseFloat(args[8], "movement_noise", 0); err != nil {
		return p, err
	}
	if p.turnRate, err = parseFloat(args[9], "turn_rate", 0); err != nil {
		return p, err
	}
	if p.sensorLength, err = parseFloat(args[10], "sensor_length", 0); err != nil {
		return p, err
	}
	if p.sensorAngleFactor, err = parseFloat(args[11], "sensor_angle_factor", 0); err != nil {
		return p, err
	}
	if p.dispersionRate, err = parseFloat(args[12], "dispersion_rate", 0); err != nil {
		return p, err
	}
	if p.evaporationRateExp, err = parseFloat(args[13], "evaporation_rate_exp", 0); err != nil {
		return p, err
	}
	if p.evaporationRateLin, err = parseFloat(args[14], "evaporation_rate_lin", 0); err != nil {
		return p, err
	}
	p.outputFile = args[15]
	return p, nil
}

func parseInt(s, name string, min int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: not an integer: %q", name, s)
	}
	if n < min {
		return 0, fmt.Errorf("%s < %d", name, min)
	}
	runlog.Logf("%s=%d", name, n)
	return n, nil
}

func parseFloat(s, name string, min float64) (float64, error) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: not a number: %q", name, s)
	}
	if n < min {
		return 0, fmt.Errorf("%s < %v", name, min)
	}
	runlog.Logf("%s=%v", name, n)
	return n, nil
}

// simulate runs the full frame loop: initialize state, normalize behavior,
// open the encoder pipe, and for each frame advance resolution_factor
// micro-steps, downscale+colorize+write the trail field, and record
// optional metrics.
func simulate(p positional, cfg *config.Config, cm colormap.Map, preset encoder.Preset, mw *metrics.Writer, food *gridfield.Food) error {
	b := behavior.Behavior{
		MovementSpeed:      p.movementSpeed,
		TrailDepositRate:   p.trailDepositRate,
		MovementNoise:      p.movementNoise,
		TurnRate:           p.turnRate,
		SensorLength:       p.sensorLength,
		SensorAngleFactor:  p.sensorAngleFactor,
		DispersionRate:     p.dispersionRate,
		EvaporationRateExp: p.evaporationRateExp,
		EvaporationRateLin: p.evaporationRateLin,
		TrailMax:           cfg.Behavior.TrailMax,
		MaxPerCell:         cfg.Behavior.MaxPerCell,
	}
	if b.MaxPerCell == 0 {
		b.MaxPerCell = behavior.DefaultMaxPerCell
	}
	normalized := behavior.Normalize(b, p.resolutionFactor, p.fps)

	grid := gridfield.NewTrail(p.width, p.height)
	occ := gridfield.NewOccupancy(p.width, p.height)
	// InitRing places agents geometrically and does not itself respect
	// MaxPerCell; a dense ring can seed a handful of cells above the cap.
	// This is a one-time startup relaxation of invariant 4 (§8.4), not
	// reachable once the step loop's TryEnter admission test takes over.
	pop := agent.InitRing(p.nagents, p.width, p.height, 1)
	for _, a := range pop {
		occ.Seed(int(a.Y), int(a.X))
	}

	downscaleFactor := downscaleFactorFor(p.width, p.height)

	ctx := context.Background()
	pipe, err := encoder.Open(ctx, p.fps, p.outputFile, preset)
	if err != nil {
		return fmt.Errorf("opening encoder pipe: %w", err)
	}

	seeds := rng.NewPool(maxWorkers())
	totalFrames := p.seconds * p.fps

	for frame := 0; frame < totalFrames; frame++ {
		simcore.Frame(grid, pop, occ, food, normalized, seeds, p.resolutionFactor)

		trail := grid.Snapshot()
		small := raster.Downscale(trail, p.width, p.height, downscaleFactor)
		pixels := raster.Colorize(small, cm, cfg.Colormap.MinVal, cfg.Colormap.MaxVal)

		var frameBuf pixelWriter
		if err := raster.WritePPM(&frameBuf, pixels, p.width/downscaleFactor, p.height/downscaleFactor); err != nil {
			_ = pipe.Close()
			return fmt.Errorf("frame %d: rendering: %w", frame, err)
		}
		if err := pipe.Write(frameBuf.buf); err != nil {
			_ = pipe.Close()
			return fmt.Errorf("frame %d: writing to encoder: %w", frame, err)
		}

		if err := mw.Write(metrics.Summarize(frame, trail, len(pop))); err != nil {
			_ = pipe.Close()
			return fmt.Errorf("frame %d: writing metrics: %w", frame, err)
		}
		runlog.Logf("frame %d/%d written", frame+1, totalFrames)
	}

	return pipe.Close()
}

// pixelWriter is an in-memory io.Writer sink used to build one PPM frame
// before handing the bytes to the encoder pipe in one Write call.
type pixelWriter struct {
	buf []byte
}

func (p *pixelWriter) Write(b []byte) (int, error) {
	p.buf = append(p.buf, b...)
	return len(b), nil
}

// downscaleFactorFor picks the largest factor <= 4 that evenly divides both
// dimensions, falling back to 1 (no downscaling) otherwise.
func downscaleFactorFor(width, height int) int {
	for _, f := range []int{4, 2, 1} {
		if width%f == 0 && height%f == 0 {
			return f
		}
	}
	return 1
}

func maxWorkers() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		n = 1
	}
	return n
}
