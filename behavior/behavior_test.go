package behavior

import "testing"

func sample() Behavior {
	return Behavior{
		MovementSpeed:      1.2,
		TrailDepositRate:   0.8,
		MovementNoise:      0.3,
		TurnRate:           0.2,
		SensorLength:       3,
		SensorAngleFactor:  2,
		DispersionRate:     0.1,
		EvaporationRateExp: 0.05,
		EvaporationRateLin: 0.01,
		TrailMax:           100,
		MaxPerCell:         DefaultMaxPerCell,
	}
}

const eps = 1e-12

func approxEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < eps
}

// S5 / law 6: Normalize(b, 1, 1) == b field-by-field.
func TestNormalizeIdentityAtUnitScale(t *testing.T) {
	b := sample()
	got := Normalize(b, 1, 1)

	cases := []struct {
		name     string
		got, want float64
	}{
		{"MovementSpeed", got.MovementSpeed, b.MovementSpeed},
		{"TrailDepositRate", got.TrailDepositRate, b.TrailDepositRate},
		{"MovementNoise", got.MovementNoise, b.MovementNoise},
		{"TurnRate", got.TurnRate, b.TurnRate},
		{"SensorLength", got.SensorLength, b.SensorLength},
		{"SensorAngleFactor", got.SensorAngleFactor, b.SensorAngleFactor},
		{"DispersionRate", got.DispersionRate, b.DispersionRate},
		{"EvaporationRateExp", got.EvaporationRateExp, b.EvaporationRateExp},
		{"EvaporationRateLin", got.EvaporationRateLin, b.EvaporationRateLin},
		{"TrailMax", got.TrailMax, b.TrailMax},
	}
	for _, c := range cases {
		if !approxEqual(c.got, c.want) {
			t.Errorf("%s: got %v want %v", c.name, c.got, c.want)
		}
	}
	if got.MaxPerCell != b.MaxPerCell {
		t.Errorf("MaxPerCell: got %d want %d", got.MaxPerCell, b.MaxPerCell)
	}
}

func TestNormalizeRescalesByFactorAndFPS(t *testing.T) {
	b := Behavior{
		MovementSpeed:      10,
		TrailDepositRate:   10,
		MovementNoise:      4,
		TurnRate:           8,
		DispersionRate:     10,
		EvaporationRateExp: 8,
		EvaporationRateLin: 8,
		TrailMax:           1,
	}
	got := Normalize(b, 2, 4) // factor=2, fps=4

	if !approxEqual(got.MovementSpeed, 10.0/4) {
		t.Errorf("MovementSpeed: got %v", got.MovementSpeed)
	}
	if !approxEqual(got.TrailDepositRate, 10.0*2/4) {
		t.Errorf("TrailDepositRate: got %v", got.TrailDepositRate)
	}
	if !approxEqual(got.MovementNoise, 4.0/(2.828427124746190)) { // sqrt(8)
		t.Errorf("MovementNoise: got %v", got.MovementNoise)
	}
	if !approxEqual(got.TurnRate, 8.0/8) {
		t.Errorf("TurnRate: got %v", got.TurnRate)
	}
	if !approxEqual(got.DispersionRate, 10.0*2/4) {
		t.Errorf("DispersionRate: got %v", got.DispersionRate)
	}
	if !approxEqual(got.EvaporationRateExp, 8.0/8) {
		t.Errorf("EvaporationRateExp: got %v", got.EvaporationRateExp)
	}
	if !approxEqual(got.EvaporationRateLin, 8.0/8) {
		t.Errorf("EvaporationRateLin: got %v", got.EvaporationRateLin)
	}
	if !approxEqual(got.TrailMax, 1.0*2*2) {
		t.Errorf("TrailMax: got %v", got.TrailMax)
	}
}

// S6: dispersion_rate = 0.5 > 0.25 after normalization at factor=fps=1; the
// warning is logged but Normalize still returns a usable Behavior (the
// caller proceeds with the step, per spec §7's "non-fatal warning").
func TestNormalizeCFLWarningIsNonFatal(t *testing.T) {
	b := sample()
	b.DispersionRate = 0.5
	got := Normalize(b, 1, 1)
	if got.DispersionRate != 0.5 {
		t.Errorf("expected dispersion_rate to pass through as 0.5, got %v", got.DispersionRate)
	}
}
