package simcore

import (
	"math"

	"github.com/pthm-cable/physarum/agent"
	"github.com/pthm-cable/physarum/behavior"
	"github.com/pthm-cable/physarum/gridfield"
	"github.com/pthm-cable/physarum/rng"
)

// moveAndDepositChunk runs spec §4.4 for pop[i0:i1]: collision-aware move,
// atomic occupancy transfer, atomic trail deposit. The population must
// already be shuffled (see Step) so that racing agents have no systematic
// priority for a contested cell.
func moveAndDepositChunk(pop agent.Population, i0, i1 int, grid *gridfield.Trail, occ *gridfield.Occupancy, b behavior.Behavior, w *rng.Worker) {
	width, height := float64(grid.W), float64(grid.H)
	maxPerCell := int32(b.MaxPerCell)

	for i := i0; i < i1; i++ {
		a := &pop[i]

		oldRow, oldCol := int(a.Y), int(a.X)
		oldIdx := occ.Index(oldRow, oldCol)

		nx := a.X + b.MovementSpeed*math.Cos(a.Direction)
		ny := a.Y + b.MovementSpeed*math.Sin(a.Direction)

		// Wall blocks scatter into the half-plane facing back into the
		// interior (spec glossary: "a half-plane for wall bounces"), as
		// opposed to the full 2pi scatter used for crowd blocks below. x
		// and y are checked independently; a corner hit lets the y-wall
		// scatter take precedence, matching the original implementation's
		// sequential x-then-y collision check.
		scattered := false
		if nx < agent.Epsilon {
			a.Direction = w.ScatterFromLeftWall()
			scattered = true
		} else if nx > width-agent.Epsilon {
			a.Direction = w.ScatterFromRightWall()
			scattered = true
		}
		if ny < agent.Epsilon {
			a.Direction = w.ScatterFromTopWall()
			scattered = true
		} else if ny > height-agent.Epsilon {
			a.Direction = w.ScatterFromBottomWall()
			scattered = true
		}
		if scattered {
			continue
		}

		newRow, newCol := int(ny), int(nx)
		newIdx := occ.Index(newRow, newCol)

		if newIdx != oldIdx {
			// Only a genuine cell change needs the admission test: an agent
			// already resident in a crowded cell isn't "entering" it by
			// staying (spec §8 invariant 11 only blocks *additional*
			// entrants).
			if !occ.TryEnter(newIdx, maxPerCell) {
				a.Direction = w.FullScatter()
				continue
			}
			occ.Leave(oldIdx)
		}

		a.X, a.Y = nx, ny
		grid.DepositCAS(newIdx, b.TrailDepositRate, b.TrailMax)
	}
}
