package audio

import (
	"errors"
	"time"
)

// ChimeType identifies a synthesized cue
type ChimeType int

const (
	ChimeWake ChimeType = iota // rising two-tone on wake
	ChimeBlip                  // soft tick on expression change
	chimeTypeCount
)

func (c ChimeType) String() string {
	switch c {
	case ChimeWake:
		return "wake"
	case ChimeBlip:
		return "blip"
	default:
		return "unknown"
	}
}

// Chime timings
const (
	wakeNoteDuration = 90 * time.Millisecond
	wakeAttack       = 5 * time.Millisecond
	wakeRelease      = 60 * time.Millisecond

	blipDuration = 45 * time.Millisecond
	blipAttack   = 3 * time.Millisecond
	blipRelease  = 35 * time.Millisecond

	speakerBuffer = 100 * time.Millisecond
)

// Chime pitches in Hz
const (
	wakeLowFreq  = 659.25  // E5
	wakeHighFreq = 987.77  // B5
	blipFreq     = 1318.51 // E6
)

// ErrDisabled is returned by Initialize when audio is turned off
var ErrDisabled = errors.New("audio disabled")
