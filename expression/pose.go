// Package expression defines Buddy's poses and the fixed catalog of named
// expressions the state machine cycles through.
package expression

import (
	"github.com/lixenwraith/buddy/vmath"
)

// Eyes describes both eyes; flags apply to the pair
type Eyes struct {
	Openness   float64 `json:"openness"` // 0 closed, 1 open, up to ~1.4 wide
	LookX      float64 `json:"look_x"`   // -1 left, 1 right
	LookY      float64 `json:"look_y"`   // -1 up, 1 down
	Squint     float64 `json:"squint"`
	Asymmetric bool    `json:"asymmetric,omitempty"` // one brow raised
	WinkLeft   bool    `json:"wink_left,omitempty"`
	Sparkle    bool    `json:"sparkle,omitempty"`
}

// Mouth describes mouth shape
type Mouth struct {
	Smile    float64 `json:"smile"` // -1 frown, 1 big smile
	Openness float64 `json:"openness"`
	Width    float64 `json:"width"`            // multiplier
	Offset   float64 `json:"offset,omitempty"` // horizontal bias
}

// Movement describes whole-body motion
type Movement struct {
	Bounce float64 `json:"bounce"` // idle bounce amplitude
	Speed  float64 `json:"speed"`  // bounce frequency multiplier
	TiltX  float64 `json:"tilt_x,omitempty"`
	DriftY float64 `json:"drift_y,omitempty"`
}

// Pose is one visual instant; values are copied, never shared
type Pose struct {
	Name     string   `json:"name,omitempty"`
	Eyes     Eyes     `json:"eyes"`
	Mouth    Mouth    `json:"mouth"`
	Movement Movement `json:"movement"`
}

// Blend interpolates every numeric field from p toward to by eased progress t
// Flags come from the target immediately; the result carries no name
func (p Pose) Blend(to Pose, t float64) Pose {
	return Pose{
		Eyes: Eyes{
			Openness:   vmath.Lerp(p.Eyes.Openness, to.Eyes.Openness, t),
			LookX:      vmath.Lerp(p.Eyes.LookX, to.Eyes.LookX, t),
			LookY:      vmath.Lerp(p.Eyes.LookY, to.Eyes.LookY, t),
			Squint:     vmath.Lerp(p.Eyes.Squint, to.Eyes.Squint, t),
			Asymmetric: to.Eyes.Asymmetric,
			WinkLeft:   to.Eyes.WinkLeft,
			Sparkle:    to.Eyes.Sparkle,
		},
		Mouth: Mouth{
			Smile:    vmath.Lerp(p.Mouth.Smile, to.Mouth.Smile, t),
			Openness: vmath.Lerp(p.Mouth.Openness, to.Mouth.Openness, t),
			Width:    vmath.Lerp(p.Mouth.Width, to.Mouth.Width, t),
			Offset:   vmath.Lerp(p.Mouth.Offset, to.Mouth.Offset, t),
		},
		Movement: Movement{
			Bounce: vmath.Lerp(p.Movement.Bounce, to.Movement.Bounce, t),
			Speed:  vmath.Lerp(p.Movement.Speed, to.Movement.Speed, t),
			TiltX:  vmath.Lerp(p.Movement.TiltX, to.Movement.TiltX, t),
			DriftY: vmath.Lerp(p.Movement.DriftY, to.Movement.DriftY, t),
		},
	}
}
