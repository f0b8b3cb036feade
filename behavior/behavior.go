// Package behavior holds the simulation's tunable parameters and the
// normalizer that rescales them so the physics is invariant under changes
// of grid resolution and frame rate (spec §4.1).
package behavior

import (
	"log/slog"
	"math"
)

// Behavior is the configuration struct of spec.md §3. All fields are
// positive reals unless noted.
type Behavior struct {
	MovementSpeed      float64 // cells advanced per micro-step
	TrailDepositRate   float64 // scalar added to the landing cell each deposit
	MovementNoise      float64 // angular jitter std-dev
	TurnRate           float64 // maximum per-step heading change
	SensorLength       float64 // distance (cells) from agent to sensor point
	SensorAngleFactor  float64 // multiplier of TurnRate giving sensor half-angle
	DispersionRate     float64 // diffusion coefficient, must be <= 0.25 for FTCS stability
	EvaporationRateExp float64 // per-step exponential decay factor in [0, 1]
	EvaporationRateLin float64 // per-step linear subtraction
	TrailMax           float64 // upper clamp on cell trail value

	// MaxPerCell is the movement admission cap (spec §4.4); not rescaled.
	MaxPerCell int
}

// DefaultMaxPerCell is MAX_PER_CELL from spec.md §4.4.
const DefaultMaxPerCell = 2

// cflLimit is the FTCS stability bound d*dt/dx^2 <= 1/4.
const cflLimit = 0.25

// Normalize rescales b by (factor, fps) so the numerics are valid under the
// convention dx = 1, dt = 1, per spec.md §4.1. factor is the subcell
// resolution multiplier (micro-steps per frame); fps is frames per second.
//
// Normalize(b, 1, 1) is the identity (spec §8 law 6).
func Normalize(b Behavior, factor, fps int) Behavior {
	f := float64(factor)
	hz := float64(fps)

	out := b
	out.MovementSpeed = b.MovementSpeed / hz
	out.TrailDepositRate = b.TrailDepositRate * f / hz
	out.MovementNoise = b.MovementNoise / math.Sqrt(f*hz)
	out.TurnRate = b.TurnRate / (f * hz)
	out.SensorLength = b.SensorLength
	out.SensorAngleFactor = b.SensorAngleFactor
	out.DispersionRate = b.DispersionRate * f / hz
	out.EvaporationRateExp = b.EvaporationRateExp / (f * hz)
	out.EvaporationRateLin = b.EvaporationRateLin / (f * hz)
	out.TrailMax = b.TrailMax * f * f
	out.MaxPerCell = b.MaxPerCell

	if out.DispersionRate > cflLimit {
		slog.Warn("normalized dispersion_rate exceeds FTCS stability bound",
			"dispersion_rate", out.DispersionRate, "limit", cflLimit)
	}

	return out
}
