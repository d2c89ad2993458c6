package buddy

import (
	"github.com/aquilax/go-perlin"
)

// Perlin parameters for gaze micro-motion
const (
	jitterAlpha  = 2.0
	jitterBeta   = 2.0
	jitterOctave = int32(3)
	jitterRate   = 0.9 // noise units per second
)

// GazeJitter adds small, smooth saccade-like offsets to the look direction
type GazeJitter struct {
	noiseX    *perlin.Perlin
	noiseY    *perlin.Perlin
	amplitude float64
}

// NewGazeJitter seeds independent noise per axis
func NewGazeJitter(seed int64, amplitude float64) *GazeJitter {
	return &GazeJitter{
		noiseX:    perlin.NewPerlin(jitterAlpha, jitterBeta, jitterOctave, seed),
		noiseY:    perlin.NewPerlin(jitterAlpha, jitterBeta, jitterOctave, seed+1),
		amplitude: amplitude,
	}
}

// At returns the look offset at animation time secs
func (g *GazeJitter) At(secs float64) (dx, dy float64) {
	if g == nil || g.amplitude == 0 {
		return 0, 0
	}
	x := secs * jitterRate
	return g.noiseX.Noise1D(x) * g.amplitude, g.noiseY.Noise1D(x) * g.amplitude * 0.5
}
