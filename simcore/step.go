// Package simcore is the simulation engine's step orchestrator: the
// coupled diffusion / evaporation / sensing-and-turning / movement-and-
// deposit micro-step described in spec §4.6.
package simcore

import (
	"sync"

	"github.com/pthm-cable/physarum/agent"
	"github.com/pthm-cable/physarum/behavior"
	"github.com/pthm-cable/physarum/gridfield"
	"github.com/pthm-cable/physarum/rng"
)

// Step advances the simulation by one micro-step, in the fixed order
// required by spec §4.6 / §5:
//
//  1. diffuse trail (produces a fresh buffer; adopted in place)
//  2. evaporate trail (in place)
//  3. sense + turn, in parallel over agents
//  4. shuffle, then move + atomic occupancy/deposit, in parallel over agents
//
// Each numbered phase is a global barrier: all of phase N completes before
// phase N+1 begins. Within a phase, agents/cells are partitioned across
// seeds.Len() workers with no ordering guarantee between them (spec §5).
// food may be nil (treated as a constant-zero field).
func Step(grid *gridfield.Trail, pop agent.Population, occ *gridfield.Occupancy, food *gridfield.Food, b behavior.Behavior, seeds *rng.Pool) {
	workers := seeds.Len()
	if workers < 1 {
		workers = 1
	}

	grid.Disperse(b.DispersionRate, workers)
	grid.Evaporate(b.EvaporationRateExp, b.EvaporationRateLin, workers)

	runChunked(len(pop), workers, seeds, func(i0, i1 int, w *rng.Worker) {
		senseAndTurnChunk(pop, i0, i1, grid, food, b, w)
	})

	// Shuffle with a single worker's RNG: this is a single-threaded,
	// standard Fisher-Yates pass (spec §9), not a parallel phase.
	shuffleWorker := seeds.Checkout(0)
	pop.Shuffle(shuffleWorker)
	shuffleWorker.Commit()

	runChunked(len(pop), workers, seeds, func(i0, i1 int, w *rng.Worker) {
		moveAndDepositChunk(pop, i0, i1, grid, occ, b, w)
	})
}

// Frame runs resolutionFactor micro-steps, the number the step orchestrator
// performs per rendered frame (spec §4.6, glossary "micro-step").
func Frame(grid *gridfield.Trail, pop agent.Population, occ *gridfield.Occupancy, food *gridfield.Food, b behavior.Behavior, seeds *rng.Pool, resolutionFactor int) {
	for i := 0; i < resolutionFactor; i++ {
		Step(grid, pop, occ, food, b, seeds)
	}
}

// runChunked partitions [0, n) into up to workers contiguous ranges and
// runs fn on each in its own goroutine, each with its own checked-out
// worker RNG (copy-out at entry, committed back at exit), waiting for all
// to finish before returning (a phase barrier).
func runChunked(n, workers int, seeds *rng.Pool, fn func(i0, i1 int, w *rng.Worker)) {
	if n == 0 {
		return
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for wID := 0; wID < workers; wID++ {
		start := wID * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(workerID, i0, i1 int) {
			defer wg.Done()
			w := seeds.Checkout(workerID)
			fn(i0, i1, w)
			w.Commit()
		}(wID, start, end)
	}
	wg.Wait()
}
