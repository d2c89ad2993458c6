package audio

import (
	"fmt"
)

// Config controls chime playback
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0.0 - 1.0
	SampleRate   int
	Volumes      map[ChimeType]float64
}

// DefaultConfig returns quiet chimes at 44.1kHz
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   44100,
		Volumes: map[ChimeType]float64{
			ChimeWake: 0.6,
			ChimeBlip: 0.25,
		},
	}
}

// Validate checks ranges
func (c Config) Validate() error {
	if c.MasterVolume < 0 || c.MasterVolume > 1 {
		return fmt.Errorf("master volume %.2f outside [0,1]", c.MasterVolume)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	}
	return nil
}

// volume is the effective linear gain for a chime
func (c Config) volume(kind ChimeType) float64 {
	v, ok := c.Volumes[kind]
	if !ok {
		v = 1
	}
	return v * c.MasterVolume
}
