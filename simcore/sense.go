package simcore

import (
	"math"

	"github.com/pthm-cable/physarum/agent"
	"github.com/pthm-cable/physarum/behavior"
	"github.com/pthm-cable/physarum/gridfield"
	"github.com/pthm-cable/physarum/rng"
)

// senseAndTurnChunk runs spec §4.3 (sensing + turning) for pop[i0:i1].
//
// For each agent, one of the six permutations of {-1, 0, +1} is drawn
// uniformly so tie-breaking among candidate headings doesn't systematically
// favor one side (spec §4.3, §9). The sensor looks
// turn_rate*sensor_angle_factor off axis, but the heading only commits
// turn_rate — the asymmetry spec §9 says is intentional and must be
// preserved.
func senseAndTurnChunk(pop agent.Population, i0, i1 int, grid *gridfield.Trail, food *gridfield.Food, b behavior.Behavior, w *rng.Worker) {
	sensorHalfAngle := b.TurnRate * b.SensorAngleFactor
	width, height := float64(grid.W), float64(grid.H)

	for i := i0; i < i1; i++ {
		a := &pop[i]

		bestDirection := a.Direction
		bestAttraction := math.Inf(-1)

		for _, off := range w.OffsetOrder() {
			sensorDir := a.Direction + float64(off)*sensorHalfAngle
			sx := a.X + b.SensorLength*math.Cos(sensorDir)
			sy := a.Y + b.SensorLength*math.Sin(sensorDir)

			if sx < agent.Epsilon || sx > width-agent.Epsilon ||
				sy < agent.Epsilon || sy > height-agent.Epsilon {
				continue
			}

			row, col := int(sy), int(sx)
			attraction := grid.At(row, col) + food.At(row, col)
			if attraction > bestAttraction {
				bestAttraction = attraction
				bestDirection = a.Direction + float64(off)*b.TurnRate
			}
		}

		a.Direction = bestDirection + w.UniformNoise(b.MovementNoise)
	}
}
