package buddy

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/buddy/expression"
	"github.com/lixenwraith/buddy/vmath"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func testEnv(seed int64) Env {
	return Env{
		Config:  DefaultConfig(),
		Catalog: expression.Default(),
		Rand:    rand.New(rand.NewSource(seed)),
	}
}

func TestNewStateSeedsIntervalsInRange(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		env := testEnv(seed)
		s := NewState(epoch, env)

		assert.Equal(t, expression.Neutral, s.Target.Name)
		assert.Equal(t, 1.0, s.TransitionProgress)
		assert.True(t, s.InNeutral)
		assert.GreaterOrEqual(t, s.NextExpressionTime, 180)
		assert.LessOrEqual(t, s.NextExpressionTime, 420)
		assert.GreaterOrEqual(t, s.NextBlinkTime, 120)
		assert.LessOrEqual(t, s.NextBlinkTime, 360)
	}
}

func TestBlinkFactor(t *testing.T) {
	assert.Equal(t, 1.0, BlinkFactor(0))
	assert.Equal(t, 0.0, BlinkFactor(0.5))
	assert.Equal(t, 1.0, BlinkFactor(1))
	assert.InDelta(t, 0.5, BlinkFactor(0.25), 1e-12)
	assert.InDelta(t, 0.5, BlinkFactor(0.75), 1e-12)
}

func TestEyeOpenness(t *testing.T) {
	c := expression.Default()
	happy := c.MustLookup(expression.Happy).Pose
	wink := c.MustLookup(expression.Wink).Pose

	l, r := EyeOpenness(happy, State{})
	assert.Equal(t, 1.1, l)
	assert.Equal(t, 1.1, r)

	l, r = EyeOpenness(happy, State{Blinking: true, BlinkProgress: 0.5})
	assert.Zero(t, l)
	assert.Zero(t, r)

	l, r = EyeOpenness(wink, State{Blinking: true, BlinkProgress: 0.25})
	assert.Zero(t, l, "wink forces the left eye closed")
	assert.InDelta(t, 0.5, r, 1e-12)
}

func TestResolveLinearMidpoint(t *testing.T) {
	c := expression.Default()
	s := State{
		Current:            c.MustLookup(expression.Neutral).Pose,
		Target:             c.MustLookup(expression.Happy).Pose,
		TransitionProgress: 0.5,
	}

	pose := Resolve(s, vmath.Linear)
	assert.InDelta(t, 0.55, pose.Mouth.Smile, 1e-12)
	assert.Empty(t, pose.Name, "mid-transition pose carries no name")

	s.TransitionProgress = 1
	assert.Equal(t, s.Target, Resolve(s, vmath.Linear))
}

func TestResolveBackEasingOvershoots(t *testing.T) {
	c := expression.Default()
	s := State{
		Current:            c.MustLookup(expression.Neutral).Pose,
		Target:             c.MustLookup(expression.Happy).Pose,
		TransitionProgress: 0.7,
	}
	pose := Resolve(s, nil)
	assert.Greater(t, pose.Mouth.Smile, 0.8)
}

func TestTriggerKnownExpression(t *testing.T) {
	env := testEnv(1)
	s := NewState(epoch, env)

	next, ok := Trigger(s, expression.Happy, env)
	require.True(t, ok)
	assert.Equal(t, env.Catalog.MustLookup(expression.Happy).Pose, next.Target)
	assert.Zero(t, next.TransitionProgress)
	assert.Zero(t, next.ExpressionTimer)
	assert.False(t, next.InNeutral)
	assert.Equal(t, 150, next.NextExpressionTime)
}

func TestTriggerUnknownExpressionIsNoop(t *testing.T) {
	env := testEnv(1)
	s := NewState(epoch, env)
	for i := 0; i < 10; i++ {
		s = Step(s, epoch, env)
	}

	next, ok := Trigger(s, "not-a-real-expression", env)
	assert.False(t, ok)
	assert.Equal(t, s, next)
}

func TestRetargetCapturesInFlightPose(t *testing.T) {
	env := testEnv(2)
	env.Config.Easing = vmath.Linear
	s := NewState(epoch, env)

	s, _ = Trigger(s, expression.Happy, env)
	for i := 0; i < 15; i++ {
		s = Step(s, epoch, env)
	}
	require.InDelta(t, 0.5, s.TransitionProgress, 1e-9)
	live := Resolve(s, env.Config.Easing)

	s, _ = Trigger(s, expression.Surprised, env)
	assert.Equal(t, live, s.Current, "new anchor is the pose on screen")
	assert.Equal(t, live, Resolve(s, env.Config.Easing), "no discontinuity at retarget")
}

func TestResolveStartsExactlyAtAnchor(t *testing.T) {
	env := testEnv(2)
	s := NewState(epoch, env)

	s, _ = Trigger(s, expression.Happy, env)
	require.Zero(t, s.TransitionProgress)
	got := Resolve(s, env.Config.Easing)
	assert.Equal(t, s.Current.Mouth, got.Mouth)
	assert.Equal(t, s.Current.Movement, got.Movement)
	assert.Equal(t, s.Current.Eyes.Openness, got.Eyes.Openness)
	assert.Equal(t, s.Current.Eyes.LookX, got.Eyes.LookX)
	assert.Equal(t, s.Current.Eyes.LookY, got.Eyes.LookY)
}

func TestTransitionCompletesInHalfSecond(t *testing.T) {
	env := testEnv(3)
	s := NewState(epoch, env)
	s.NextExpressionTime = math.MaxInt
	s, _ = Trigger(s, expression.Excited, env)
	s.NextExpressionTime = math.MaxInt

	for i := 0; i < 29; i++ {
		s = Step(s, epoch, env)
		assert.Less(t, s.TransitionProgress, 1.0)
	}
	s = Step(s, epoch, env)
	assert.Equal(t, 1.0, s.TransitionProgress)
	assert.Equal(t, expression.Excited, Resolve(s, nil).Name)
}

func TestZeroElapsedUpdatesHoldUntilDwellThreshold(t *testing.T) {
	env := testEnv(4)
	s := NewState(epoch, env)
	threshold := s.NextExpressionTime

	for i := 1; i < threshold; i++ {
		s = Step(s, epoch, env)
		require.Equal(t, expression.Neutral, s.Target.Name, "frame %d", i)
	}

	s = Step(s, epoch, env)
	assert.NotEqual(t, expression.Neutral, s.Target.Name)
	assert.False(t, s.InNeutral)
	assert.Zero(t, s.ExpressionTimer)
}

func TestDwellCycleAlternates(t *testing.T) {
	env := testEnv(5)
	s := NewState(epoch, env)

	var targets []string
	last := s.Target.Name
	for i := 0; i < 20000 && len(targets) < 10; i++ {
		// Keep the character awake
		s = Wake(s, epoch, env)
		s = Step(s, epoch, env)
		if s.TransitionProgress == 0 || s.Target.Name != last {
			targets = append(targets, s.Target.Name)
			last = s.Target.Name
		}
	}

	require.Len(t, targets, 10)
	for i, name := range targets {
		if i%2 == 0 {
			assert.NotEqual(t, expression.Neutral, name)
			e := env.Catalog.MustLookup(name)
			assert.Positive(t, e.Weight)
		} else {
			assert.Equal(t, expression.Neutral, name)
		}
	}
}

func TestBlinkCycle(t *testing.T) {
	env := testEnv(6)
	s := NewState(epoch, env)
	s.NextExpressionTime = math.MaxInt
	s.NextBlinkTime = 10

	for i := 0; i < 10; i++ {
		s = Step(s, epoch, env)
		require.False(t, s.Blinking)
	}
	s = Step(s, epoch, env)
	require.True(t, s.Blinking)
	assert.Zero(t, s.BlinkProgress)

	// 300ms at 60 FPS
	for i := 0; i < 17; i++ {
		s = Step(s, epoch, env)
		require.True(t, s.Blinking, "frame %d", i)
	}
	s = Step(s, epoch, env)
	assert.False(t, s.Blinking)
	assert.Zero(t, s.BlinkTimer)
	assert.Zero(t, s.BlinkProgress)
	assert.GreaterOrEqual(t, s.NextBlinkTime, 120)
	assert.LessOrEqual(t, s.NextBlinkTime, 360)
}

func TestSleepAfterInactivityAndWake(t *testing.T) {
	env := testEnv(7)
	s := NewState(epoch, env)

	s = Step(s, epoch.Add(44*time.Second), env)
	assert.False(t, s.Sleeping)

	sleepAt := epoch.Add(45 * time.Second)
	s = Step(s, sleepAt, env)
	require.True(t, s.Sleeping)
	assert.Equal(t, expression.Sleeping, s.Target.Name)
	assert.Equal(t, sleepAt, s.ZzzStart)
	assert.False(t, s.Blinking)

	// Sleep suppresses dwell and blink timers
	timer, blink := s.ExpressionTimer, s.BlinkTimer
	for i := 0; i < 1000; i++ {
		s = Step(s, sleepAt.Add(time.Duration(i)*16*time.Millisecond), env)
	}
	assert.Equal(t, timer, s.ExpressionTimer)
	assert.Equal(t, blink, s.BlinkTimer)
	assert.Equal(t, expression.Sleeping, s.Target.Name)

	wakeAt := sleepAt.Add(time.Minute)
	s = Wake(s, wakeAt, env)
	assert.False(t, s.Sleeping)
	assert.Equal(t, env.Catalog.MustLookup(expression.Surprised).Pose, s.Target)
	assert.Zero(t, s.TransitionProgress)
	assert.Zero(t, s.ExpressionTimer)
	assert.False(t, s.InNeutral)
	assert.Equal(t, wakeAt, s.LastActivity)
	assert.True(t, s.ZzzStart.IsZero())
}

func TestWakeWhileAwakeOnlyRecordsActivity(t *testing.T) {
	env := testEnv(8)
	s := NewState(epoch, env)
	later := epoch.Add(10 * time.Second)

	next := Wake(s, later, env)
	assert.Equal(t, later, next.LastActivity)
	next.LastActivity = s.LastActivity
	assert.Equal(t, s, next)
}

func TestDriftIsRateLimited(t *testing.T) {
	env := testEnv(9)
	s := NewState(epoch, env)
	s, _ = Trigger(s, expression.LookLeft, env)

	prevX, prevY := s.OffsetX, s.OffsetY
	now := epoch
	for i := 0; i < 600; i++ {
		now = now.Add(16 * time.Millisecond)
		s = Wake(s, now, env)
		s = Step(s, now, env)
		assert.LessOrEqual(t, math.Abs(s.OffsetX-prevX), env.Config.MaxDriftStep+1e-12)
		assert.LessOrEqual(t, math.Abs(s.OffsetY-prevY), env.Config.MaxDriftStep+1e-12)
		prevX, prevY = s.OffsetX, s.OffsetY
	}
}

func TestDriftStaysNearTargetWithNegativeStep(t *testing.T) {
	env := testEnv(9)
	env.Config.MaxDriftStep = -0.15
	s := NewState(epoch, env)

	now := epoch
	for i := 0; i < 600; i++ {
		now = now.Add(16 * time.Millisecond)
		s = Wake(s, now, env)
		s = Step(s, now, env)
	}
	assert.Less(t, math.Abs(s.OffsetX-s.TargetOffsetX), 1.0)
	assert.Less(t, math.Abs(s.OffsetY-s.TargetOffsetY), 1.0)
}

func TestStepDeterministicForSeed(t *testing.T) {
	run := func() State {
		env := testEnv(99)
		s := NewState(epoch, env)
		now := epoch
		for i := 0; i < 5000; i++ {
			now = now.Add(16 * time.Millisecond)
			if i%700 == 0 {
				s = Wake(s, now, env)
			}
			s = Step(s, now, env)
		}
		return s
	}
	assert.Equal(t, run(), run())
}
