// Package config loads Buddy's settings from defaults, an optional config
// file, BUDDY_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/buddy/audio"
	"github.com/lixenwraith/buddy/buddy"
	"github.com/lixenwraith/buddy/vmath"
)

// EnvPrefix namespaces environment overrides, e.g. BUDDY_ANIMATION_FPS
const EnvPrefix = "BUDDY"

// RandomHue asks for a hue drawn from the session RNG
const RandomHue = -1

// Config holds all application configuration
type Config struct {
	Animation AnimationConfig `mapstructure:"animation"`
	Render    RenderConfig    `mapstructure:"render"`
	Audio     AudioConfig     `mapstructure:"audio"`
	Log       LogConfig       `mapstructure:"log"`
}

// AnimationConfig tunes the state machine
type AnimationConfig struct {
	FPS                int           `mapstructure:"fps"`
	Seed               int64         `mapstructure:"seed"` // 0 picks one from the clock
	InitialExpression  string        `mapstructure:"initial_expression"`
	SleepTimeout       time.Duration `mapstructure:"sleep_timeout"`
	TransitionDuration time.Duration `mapstructure:"transition_duration"`
	BlinkDuration      time.Duration `mapstructure:"blink_duration"`
	BlinkIntervalMin   time.Duration `mapstructure:"blink_interval_min"`
	BlinkIntervalMax   time.Duration `mapstructure:"blink_interval_max"`
	NeutralDwellMin    time.Duration `mapstructure:"neutral_dwell_min"`
	NeutralDwellMax    time.Duration `mapstructure:"neutral_dwell_max"`
	Easing             string        `mapstructure:"easing"`
	BounceScale        float64       `mapstructure:"bounce_scale"`
	BounceFrequency    float64       `mapstructure:"bounce_frequency"`
	DriftScale         float64       `mapstructure:"drift_scale"`
	TiltScale          float64       `mapstructure:"tilt_scale"`
	NoiseFrequency     float64       `mapstructure:"noise_frequency"`
	NoiseAmplitude     float64       `mapstructure:"noise_amplitude"`
	DriftGain          float64       `mapstructure:"drift_gain"`
	MaxDriftStep       float64       `mapstructure:"max_drift_step"`
	GazeJitter         float64       `mapstructure:"gaze_jitter"`
}

// RenderConfig configures the terminal face
type RenderConfig struct {
	Hue       int    `mapstructure:"hue"`        // 0-359, RandomHue for random
	ColorMode string `mapstructure:"color_mode"` // auto, truecolor, 256
	Debug     bool   `mapstructure:"debug"`
}

// AudioConfig configures chimes
type AudioConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	Volume     float64 `mapstructure:"volume"` // 0.0 - 1.0
	SampleRate int     `mapstructure:"sample_rate"`
}

// LogConfig configures the file logger
type LogConfig struct {
	Level string `mapstructure:"level"`
	Dir   string `mapstructure:"dir"`  // empty means ~/.buddy/logs
	File  string `mapstructure:"file"` // "-" writes to stderr
}

// Default returns the reference configuration
func Default() Config {
	tuning := buddy.DefaultConfig()
	chimes := audio.DefaultConfig()
	return Config{
		Animation: AnimationConfig{
			FPS:                tuning.FPS,
			SleepTimeout:       tuning.SleepTimeout,
			TransitionDuration: tuning.TransitionDuration,
			BlinkDuration:      tuning.BlinkDuration,
			BlinkIntervalMin:   tuning.BlinkIntervalMin,
			BlinkIntervalMax:   tuning.BlinkIntervalMax,
			NeutralDwellMin:    tuning.NeutralDwellMin,
			NeutralDwellMax:    tuning.NeutralDwellMax,
			Easing:             "easeOutBack",
			BounceScale:        tuning.BounceScale,
			BounceFrequency:    tuning.BounceFrequency,
			DriftScale:         tuning.DriftScale,
			TiltScale:          tuning.TiltScale,
			NoiseFrequency:     tuning.NoiseFrequency,
			NoiseAmplitude:     tuning.NoiseAmplitude,
			DriftGain:          tuning.DriftGain,
			MaxDriftStep:       tuning.MaxDriftStep,
			GazeJitter:         tuning.GazeJitter,
		},
		Render: RenderConfig{
			Hue:       RandomHue,
			ColorMode: "auto",
		},
		Audio: AudioConfig{
			Enabled:    chimes.Enabled,
			Volume:     chimes.MasterVolume,
			SampleRate: chimes.SampleRate,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate reports every invalid setting
func (c Config) Validate() error {
	var errs []error
	a := c.Animation

	if a.FPS <= 0 {
		errs = append(errs, fmt.Errorf("animation.fps must be positive, got %d", a.FPS))
	}
	for name, d := range map[string]time.Duration{
		"sleep_timeout":       a.SleepTimeout,
		"transition_duration": a.TransitionDuration,
		"blink_duration":      a.BlinkDuration,
		"blink_interval_min":  a.BlinkIntervalMin,
		"neutral_dwell_min":   a.NeutralDwellMin,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("animation.%s must be positive, got %s", name, d))
		}
	}
	if a.BlinkIntervalMax < a.BlinkIntervalMin {
		errs = append(errs, fmt.Errorf("animation.blink_interval_max %s below min %s", a.BlinkIntervalMax, a.BlinkIntervalMin))
	}
	if a.NeutralDwellMax < a.NeutralDwellMin {
		errs = append(errs, fmt.Errorf("animation.neutral_dwell_max %s below min %s", a.NeutralDwellMax, a.NeutralDwellMin))
	}
	if _, ok := vmath.Easing(a.Easing); !ok {
		errs = append(errs, fmt.Errorf("animation.easing %q unknown (have %s)", a.Easing, strings.Join(vmath.EasingNames(), ", ")))
	}
	if a.DriftGain < 0 || a.DriftGain > 1 {
		errs = append(errs, fmt.Errorf("animation.drift_gain %.2f outside [0,1]", a.DriftGain))
	}
	if a.MaxDriftStep <= 0 {
		errs = append(errs, fmt.Errorf("animation.max_drift_step must be positive, got %.2f", a.MaxDriftStep))
	}

	if c.Render.Hue != RandomHue && (c.Render.Hue < 0 || c.Render.Hue >= 360) {
		errs = append(errs, fmt.Errorf("render.hue %d outside [0,360)", c.Render.Hue))
	}
	switch c.Render.ColorMode {
	case "auto", "truecolor", "256":
	default:
		errs = append(errs, fmt.Errorf("render.color_mode %q unknown", c.Render.ColorMode))
	}

	if err := c.Chimes().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("audio: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Tuning converts the animation section for the state machine
func (c Config) Tuning() buddy.Config {
	a := c.Animation
	ease, ok := vmath.Easing(a.Easing)
	if !ok {
		ease = vmath.EaseOutBack
	}
	return buddy.Config{
		FPS:                a.FPS,
		SleepTimeout:       a.SleepTimeout,
		TransitionDuration: a.TransitionDuration,
		BlinkDuration:      a.BlinkDuration,
		BlinkIntervalMin:   a.BlinkIntervalMin,
		BlinkIntervalMax:   a.BlinkIntervalMax,
		NeutralDwellMin:    a.NeutralDwellMin,
		NeutralDwellMax:    a.NeutralDwellMax,
		Easing:             ease,
		BounceScale:        a.BounceScale,
		BounceFrequency:    a.BounceFrequency,
		DriftScale:         a.DriftScale,
		TiltScale:          a.TiltScale,
		NoiseFrequency:     a.NoiseFrequency,
		NoiseAmplitude:     a.NoiseAmplitude,
		DriftGain:          a.DriftGain,
		MaxDriftStep:       a.MaxDriftStep,
		GazeJitter:         a.GazeJitter,
	}
}

// Chimes converts the audio section for the sound manager
func (c Config) Chimes() audio.Config {
	out := audio.DefaultConfig()
	out.Enabled = c.Audio.Enabled
	out.MasterVolume = c.Audio.Volume
	out.SampleRate = c.Audio.SampleRate
	return out
}
