// internal/scoring/weights.go
package scoring

import (
	"fmt"
	"math"
)

// Weights are the per-pillar coefficients of the total score.
type Weights struct {
	Cognitive     float64 `json:"cognitive" mapstructure:"cognitive"`
	Operational   float64 `json:"operational" mapstructure:"operational"`
	Strategic     float64 `json:"strategic" mapstructure:"strategic"`
	LivingSystems float64 `json:"livingSystems" mapstructure:"living_systems"`
}

var DefaultWeights = Weights{
	Cognitive:     0.30,
	Operational:   0.30,
	Strategic:     0.30,
	LivingSystems: 0.10,
}

const weightTolerance = 1e-9

func (w Weights) Sum() float64 {
	return w.Cognitive + w.Operational + w.Strategic + w.LivingSystems
}

// Validate requires non-negative weights summing to 1.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"cognitive":     w.Cognitive,
		"operational":   w.Operational,
		"strategic":     w.Strategic,
		"livingSystems": w.LivingSystems,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("weight %s must be a finite non-negative number, got %v", name, v)
		}
	}
	if math.Abs(w.Sum()-1) > weightTolerance {
		return fmt.Errorf("weights must sum to 1, got %v", w.Sum())
	}
	return nil
}

// WeightedTotal applies w to the pillar scores and rounds the sum once.
func WeightedTotal(b Breakdown, w Weights) int {
	sum := float64(b.Cognitive)*w.Cognitive +
		float64(b.Operational)*w.Operational +
		float64(b.Strategic)*w.Strategic +
		float64(b.LivingSystems)*w.LivingSystems
	return roundHalfUp(sum)
}

// roundHalfUp rounds half away from zero after snapping off the binary
// representation error of decimal weights, so 25*0.3 ties like 7.5 does.
func roundHalfUp(x float64) int {
	return int(math.Round(math.Round(x*1e9) / 1e9))
}
