package agent

import (
	"testing"

	"github.com/pthm-cable/physarum/rng"
)

// invariant 3: every agent is strictly within the interior.
func TestInitRingInteriorInvariant(t *testing.T) {
	pop := InitRing(200, 100, 80, 42)
	for i, a := range pop {
		if a.X < Epsilon || a.X > 100-Epsilon {
			t.Fatalf("agent %d X=%v out of interior bounds", i, a.X)
		}
		if a.Y < Epsilon || a.Y > 80-Epsilon {
			t.Fatalf("agent %d Y=%v out of interior bounds", i, a.Y)
		}
	}
}

func TestInitRingDeterministic(t *testing.T) {
	a := InitRing(10, 50, 50, 7)
	b := InitRing(10, 50, 50, 7)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected deterministic output for same seed, differs at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestShuffleIsPermutationOfPopulation(t *testing.T) {
	pop := make(Population, 20)
	for i := range pop {
		pop[i] = Agent{X: float64(i)}
	}
	w := rng.NewPoolFromSeed(1, 1).Checkout(0)
	pop.Shuffle(w)

	seen := make([]bool, len(pop))
	for _, a := range pop {
		idx := int(a.X)
		if idx < 0 || idx >= len(pop) || seen[idx] {
			t.Fatalf("shuffle broke population identity: %+v", pop)
		}
		seen[idx] = true
	}
}
