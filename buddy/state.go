package buddy

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/buddy/expression"
	"github.com/lixenwraith/buddy/vmath"
)

// State is the complete animation state; frame counters are in ticks at Config.FPS
type State struct {
	Current            expression.Pose `json:"current"`
	Target             expression.Pose `json:"target"`
	TransitionProgress float64         `json:"transition_progress"`

	ExpressionTimer    int  `json:"expression_timer"`
	NextExpressionTime int  `json:"next_expression_time"`
	InNeutral          bool `json:"in_neutral"`

	BlinkTimer    int     `json:"blink_timer"`
	NextBlinkTime int     `json:"next_blink_time"`
	Blinking      bool    `json:"blinking"`
	BlinkProgress float64 `json:"blink_progress"`

	OffsetX       float64 `json:"offset_x"`
	OffsetY       float64 `json:"offset_y"`
	TargetOffsetX float64 `json:"target_offset_x"`
	TargetOffsetY float64 `json:"target_offset_y"`

	Sleeping     bool      `json:"sleeping"`
	LastActivity time.Time `json:"last_activity"`
	ZzzStart     time.Time `json:"zzz_start,omitzero"`

	Born  time.Time `json:"born"`
	Frame uint64    `json:"frame"`
}

// Env carries what transitions read but never own
type Env struct {
	Config  Config
	Catalog *expression.Catalog
	Rand    *rand.Rand
}

// NewState seeds a settled neutral state with randomized first intervals
func NewState(now time.Time, env Env) State {
	neutral := env.Catalog.MustLookup(expression.Neutral).Pose
	cfg := env.Config
	return State{
		Current:            neutral,
		Target:             neutral,
		TransitionProgress: 1,
		NextExpressionTime: randomFrames(env.Rand, cfg.NeutralDwellMin, cfg.NeutralDwellMax, cfg.FPS),
		InNeutral:          true,
		NextBlinkTime:      randomFrames(env.Rand, cfg.BlinkIntervalMin, cfg.BlinkIntervalMax, cfg.FPS),
		LastActivity:       now,
		Born:               now,
	}
}

// Resolve returns the pose shown for s
// Settled transitions yield the target exactly, name included
func Resolve(s State, ease vmath.EasingFunc) expression.Pose {
	if s.TransitionProgress >= 1 {
		return s.Target
	}
	if ease == nil {
		ease = vmath.EaseOutBack
	}
	return s.Current.Blend(s.Target, ease(s.TransitionProgress))
}

// retarget anchors the transition at the live pose so in-flight motion is kept
func retarget(s State, target expression.Pose, ease vmath.EasingFunc) State {
	s.Current = Resolve(s, ease)
	s.Target = target
	s.TransitionProgress = 0
	return s
}

// Seconds is the animation clock at now
func (s State) Seconds(now time.Time) float64 {
	return now.Sub(s.Born).Seconds()
}

func randomFrames(rng *rand.Rand, lo, hi time.Duration, fps int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	d := lo + time.Duration(rng.Float64()*float64(hi-lo))
	return vmath.DurationToFrames(d, fps)
}
