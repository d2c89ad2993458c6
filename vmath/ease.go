package vmath

import (
	"math"
	"time"
)

// EasingFunc maps normalized time [0,1] to progress
// Overshooting curves (back, elastic) may leave [0,1] between the endpoints
type EasingFunc func(t float64) float64

// Back-out overshoot constants
const (
	backC1 = 1.70158
	backC3 = backC1 + 1
)

// elasticPeriod is the oscillation period of EaseOutElastic in normalized time
const elasticPeriod = 0.3

// Linear is the identity curve
func Linear(t float64) float64 { return t }

// EaseInOutCubic accelerates for the first half and decelerates for the second
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutBack overshoots past 1 near the end and settles back, giving a "pop"
func EaseOutBack(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	u := t - 1
	return 1 + backC3*u*u*u + backC1*u*u
}

// EaseOutElastic rings around 1 with decaying amplitude
func EaseOutElastic(t float64) float64 {
	if t == 0 || t == 1 {
		return t
	}
	return math.Pow(2, -10*t)*math.Sin((t-elasticPeriod/4)*(2*math.Pi)/elasticPeriod) + 1
}

// EaseOutQuad decelerates quadratically
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// Smoothstep is the Hermite 3t²-2t³ curve
func Smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

var easings = map[string]EasingFunc{
	"linear":         Linear,
	"easeInOutCubic": EaseInOutCubic,
	"easeOutBack":    EaseOutBack,
	"easeOutElastic": EaseOutElastic,
	"easeOutQuad":    EaseOutQuad,
	"smoothstep":     Smoothstep,
}

// Easing resolves a curve by its configuration name
func Easing(name string) (EasingFunc, bool) {
	fn, ok := easings[name]
	return fn, ok
}

// EasingNames returns the names accepted by Easing
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	return names
}

// Lerp interpolates a→b; t is not clamped so eased values extrapolate
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Bounce returns a sine oscillation of the given amplitude and frequency (Hz) at time seconds
func Bounce(time, amplitude, frequency, phase float64) float64 {
	return amplitude * math.Sin(time*frequency*math.Pi*2+phase)
}

// SmoothNoise approximates smooth pseudo-random motion in roughly [-1,1]
// Three sines at incommensurate ratios; deterministic for (time, seed)
func SmoothNoise(time, seed float64) float64 {
	return math.Sin(time*0.7+seed)*0.5 +
		math.Sin(time*1.3+seed*2)*0.3 +
		math.Sin(time*2.1+seed*3)*0.2
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// Unbounded marks a duration that never elapses
const Unbounded time.Duration = math.MaxInt64

// DurationToFrames converts a duration to whole frames at fps
// Positive durations take at least one frame; Unbounded maps to math.MaxInt
func DurationToFrames(d time.Duration, fps int) int {
	if d == Unbounded {
		return math.MaxInt
	}
	if d <= 0 || fps <= 0 {
		return 0
	}
	frames := int(int64(d) / int64(time.Millisecond) * int64(fps) / 1000)
	if frames < 1 {
		frames = 1
	}
	return frames
}
