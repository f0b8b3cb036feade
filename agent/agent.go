// Package agent holds the agent population: a contiguous array of
// (direction, x, y) triples, plus the startup initializer (spec §3, §4.7).
package agent

import (
	"math"

	"github.com/pthm-cable/physarum/rng"
)

// Epsilon is the interior margin coordinates must stay strictly within, so
// that floor-indexing into the grid is always safe (spec §3).
const Epsilon = 1e-3

// Agent is a single slime-mold agent.
type Agent struct {
	Direction float64 // radians, unnormalized, used only via cos/sin
	X, Y      float64 // strictly within [Epsilon, width-Epsilon] x [Epsilon, height-Epsilon]
}

// Population is the contiguous agent array.
type Population []Agent

// Shuffle performs an in-place Fisher-Yates shuffle, eliminating systematic
// priority among agents racing for the same cell during the move phase
// (spec §4.4, §9).
func (p Population) Shuffle(w *rng.Worker) {
	w.Shuffle(len(p), func(i, j int) { p[i], p[j] = p[j], p[i] })
}

// InitRing seeds n agents on a ring at ~0.4*min(width,height) from center,
// with +/-5% radius jitter and a uniform heading — the repository's default
// startup distribution (spec §4.7). width and height are grid dimensions; seed
// drives the single-threaded startup RNG.
func InitRing(n, width, height int, seed int64) Population {
	pop := make(Population, n)
	w := rng.NewPoolFromSeed(uint64(seed), 1).Checkout(0)

	cx, cy := float64(width)/2, float64(height)/2
	minDim := float64(width)
	if float64(height) < minDim {
		minDim = float64(height)
	}
	baseRadius := 0.4 * minDim

	for i := range pop {
		jitter := 1 + w.Uniform(-0.05, 0.05)
		radius := baseRadius * jitter
		theta := w.Uniform(0, 2*math.Pi)

		x := clampInterior(cx+radius*math.Cos(theta), float64(width))
		y := clampInterior(cy+radius*math.Sin(theta), float64(height))

		pop[i] = Agent{
			Direction: w.Uniform(0, 2*math.Pi),
			X:         x,
			Y:         y,
		}
	}
	return pop
}

func clampInterior(v, dim float64) float64 {
	if v < Epsilon {
		return Epsilon
	}
	if v > dim-Epsilon {
		return dim - Epsilon
	}
	return v
}
