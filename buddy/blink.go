package buddy

import (
	"github.com/lixenwraith/buddy/expression"
	"github.com/lixenwraith/buddy/vmath"
)

// BlinkFactor is the eyelid multiplier over a blink: 1 → 0 at the midpoint → 1
func BlinkFactor(progress float64) float64 {
	p := vmath.Clamp(progress, 0, 1)
	if p < 0.5 {
		return 1 - p*2
	}
	return p*2 - 1
}

// EyeOpenness applies blink and wink to the pose's template openness
func EyeOpenness(pose expression.Pose, s State) (left, right float64) {
	factor := 1.0
	if s.Blinking {
		factor = BlinkFactor(s.BlinkProgress)
	}
	left = pose.Eyes.Openness * factor
	right = left
	if pose.Eyes.WinkLeft {
		left = 0
	}
	return left, right
}
