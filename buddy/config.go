// Package buddy implements the expression-blending and timing state machine.
//
// State is a plain value advanced by pure transition functions (Step, Wake,
// Trigger) so a sequence of frames can be replayed deterministically from a
// seed. Machine owns the single live State for a session and serializes
// access from the frame loop and the input layer.
package buddy

import (
	"time"

	"github.com/lixenwraith/buddy/vmath"
)

// Config holds the timing and motion tuning of the state machine
type Config struct {
	FPS int // reference frame rate for duration → frame conversion

	SleepTimeout       time.Duration
	TransitionDuration time.Duration
	BlinkDuration      time.Duration
	BlinkIntervalMin   time.Duration
	BlinkIntervalMax   time.Duration
	NeutralDwellMin    time.Duration
	NeutralDwellMax    time.Duration

	// Easing shapes expression transitions; nil means EaseOutBack
	Easing vmath.EasingFunc

	// Positional drift, in cells
	BounceScale     float64
	BounceFrequency float64 // Hz at Movement.Speed = 1
	DriftScale      float64
	TiltScale       float64
	NoiseFrequency  float64
	NoiseAmplitude  float64
	NoiseSeed       float64
	DriftGain       float64 // fraction of the gap closed per frame
	MaxDriftStep    float64 // per-frame cap per axis

	// Gaze micro-motion amplitude in look units; 0 disables
	GazeJitter float64
}

// DefaultConfig returns the reference tuning at 60 FPS
func DefaultConfig() Config {
	return Config{
		FPS:                60,
		SleepTimeout:       45 * time.Second,
		TransitionDuration: 500 * time.Millisecond,
		BlinkDuration:      300 * time.Millisecond,
		BlinkIntervalMin:   2 * time.Second,
		BlinkIntervalMax:   6 * time.Second,
		NeutralDwellMin:    3 * time.Second,
		NeutralDwellMax:    7 * time.Second,
		Easing:             vmath.EaseOutBack,
		BounceScale:        1.0,
		BounceFrequency:    0.5,
		DriftScale:         10,
		TiltScale:          6,
		NoiseFrequency:     0.4,
		NoiseAmplitude:     0.8,
		NoiseSeed:          0,
		DriftGain:          0.08,
		MaxDriftStep:       0.15,
		GazeJitter:         0.12,
	}
}

func (c Config) easing() vmath.EasingFunc {
	if c.Easing == nil {
		return vmath.EaseOutBack
	}
	return c.Easing
}

func (c Config) frames(d time.Duration) int {
	return vmath.DurationToFrames(d, c.FPS)
}

// transitionStep is the per-frame progress increment
func (c Config) transitionStep() float64 {
	n := c.frames(c.TransitionDuration)
	if n <= 0 {
		return 1
	}
	return 1 / float64(n)
}

func (c Config) blinkStep() float64 {
	n := c.frames(c.BlinkDuration)
	if n <= 0 {
		return 1
	}
	return 1 / float64(n)
}
