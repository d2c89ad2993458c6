package buddy

import (
	"math"
	"time"

	"github.com/lixenwraith/buddy/expression"
	"github.com/lixenwraith/buddy/vmath"
)

const progressEpsilon = 1e-9

// Step advances s by one frame at wall-clock now
func Step(s State, now time.Time, env Env) State {
	cfg := env.Config
	s.Frame++

	if !s.Sleeping && now.Sub(s.LastActivity) >= cfg.SleepTimeout {
		s = fallAsleep(s, now, env)
	}

	if s.TransitionProgress < 1 {
		s.TransitionProgress = advance(s.TransitionProgress, cfg.transitionStep())
	}

	if !s.Sleeping {
		s = cycleExpression(s, env)
		s = cycleBlink(s, env)
	}

	return drift(s, Resolve(s, cfg.easing()), now, cfg)
}

// Wake records activity at now; a sleeping character wakes up surprised
func Wake(s State, now time.Time, env Env) State {
	s.LastActivity = now
	if !s.Sleeping {
		return s
	}

	surprised := env.Catalog.MustLookup(expression.Surprised)
	s.Sleeping = false
	s.ZzzStart = time.Time{}
	s = retarget(s, surprised.Pose, env.Config.easing())
	s.ExpressionTimer = 0
	s.NextExpressionTime = env.Config.frames(surprised.Duration)
	s.InNeutral = false
	return s
}

// Trigger forces a transition to the named expression, overriding dwell timers
// Unknown names leave s unchanged and report false
func Trigger(s State, name string, env Env) (State, bool) {
	e, ok := env.Catalog.Lookup(name)
	if !ok {
		return s, false
	}

	cfg := env.Config
	s = retarget(s, e.Pose, cfg.easing())
	s.ExpressionTimer = 0
	if name == expression.Neutral {
		s.InNeutral = true
		s.NextExpressionTime = randomFrames(env.Rand, cfg.NeutralDwellMin, cfg.NeutralDwellMax, cfg.FPS)
	} else {
		s.InNeutral = false
		s.NextExpressionTime = cfg.frames(e.Duration)
	}
	return s, true
}

func fallAsleep(s State, now time.Time, env Env) State {
	s.Sleeping = true
	s.ZzzStart = now
	s.Blinking = false
	s.BlinkProgress = 0
	return retarget(s, env.Catalog.MustLookup(expression.Sleeping).Pose, env.Config.easing())
}

// cycleExpression alternates between neutral rest and a random transient expression
func cycleExpression(s State, env Env) State {
	cfg := env.Config
	s.ExpressionTimer++
	if s.ExpressionTimer < s.NextExpressionTime {
		return s
	}

	s.ExpressionTimer = 0
	if s.InNeutral {
		next := env.Catalog.Random(env.Rand, s.Target.Name)
		s = retarget(s, next.Pose, cfg.easing())
		s.NextExpressionTime = cfg.frames(next.Duration)
	} else {
		s = retarget(s, env.Catalog.MustLookup(expression.Neutral).Pose, cfg.easing())
		s.NextExpressionTime = randomFrames(env.Rand, cfg.NeutralDwellMin, cfg.NeutralDwellMax, cfg.FPS)
	}
	s.InNeutral = !s.InNeutral
	return s
}

func cycleBlink(s State, env Env) State {
	cfg := env.Config
	if s.Blinking {
		s.BlinkProgress = advance(s.BlinkProgress, cfg.blinkStep())
		if s.BlinkProgress >= 1 {
			s.Blinking = false
			s.BlinkProgress = 0
			s.BlinkTimer = 0
			s.NextBlinkTime = randomFrames(env.Rand, cfg.BlinkIntervalMin, cfg.BlinkIntervalMax, cfg.FPS)
		}
		return s
	}

	s.BlinkTimer++
	if s.BlinkTimer > s.NextBlinkTime {
		s.Blinking = true
		s.BlinkProgress = 0
	}
	return s
}

// advance adds step to a [0,1] progress, snapping accumulated float error at the end
func advance(p, step float64) float64 {
	p = vmath.Clamp(p+step, 0, 1)
	if p > 1-progressEpsilon {
		p = 1
	}
	return p
}

// drift low-pass filters the body offset toward the pose's bounce and tilt
func drift(s State, pose expression.Pose, now time.Time, cfg Config) State {
	secs := s.Seconds(now)
	m := pose.Movement

	s.TargetOffsetY = vmath.Bounce(secs, m.Bounce*cfg.BounceScale, m.Speed*cfg.BounceFrequency, 0) +
		m.DriftY*cfg.DriftScale
	s.TargetOffsetX = m.TiltX*cfg.TiltScale +
		vmath.SmoothNoise(secs*cfg.NoiseFrequency, cfg.NoiseSeed)*cfg.NoiseAmplitude

	limit := math.Abs(cfg.MaxDriftStep)
	s.OffsetX += vmath.Clamp((s.TargetOffsetX-s.OffsetX)*cfg.DriftGain, -limit, limit)
	s.OffsetY += vmath.Clamp((s.TargetOffsetY-s.OffsetY)*cfg.DriftGain, -limit, limit)
	return s
}
