package buddy

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/lixenwraith/buddy/expression"
	"github.com/lixenwraith/buddy/vmath"
)

// zzzPeriod is one float cycle of the sleeping z glyphs
const zzzPeriod = 2400 * time.Millisecond

// Frame is everything the renderer consumes for one tick
type Frame struct {
	Pose     expression.Pose
	OffsetX  float64
	OffsetY  float64
	LeftEye  float64 // effective openness after blink and wink
	RightEye float64
	LookX    float64 // pose look plus gaze jitter
	LookY    float64
	Sleeping bool
	ZzzPhase float64 // [0,1) while sleeping
	Seconds  float64 // animation clock
}

// ChangeKind classifies observable state changes
type ChangeKind int

const (
	ChangeExpression ChangeKind = iota
	ChangeSleep
	ChangeWake
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeSleep:
		return "sleep"
	case ChangeWake:
		return "wake"
	default:
		return "expression"
	}
}

// Change describes a transition observed across an Update, Activity or Trigger
type Change struct {
	Kind ChangeKind
	From string
	To   string
}

// Observer receives changes after the machine lock is released
type Observer func(Change)

// Machine owns the session's single live State
// Update runs on the frame loop; Activity and Trigger may arrive from other goroutines
type Machine struct {
	mu        sync.Mutex
	env       Env
	state     State
	frame     Frame
	jitter    *GazeJitter
	observers []Observer
}

// NewMachine seeds the state at now; rng drives every random choice
func NewMachine(cfg Config, catalog *expression.Catalog, rng *rand.Rand, now time.Time) *Machine {
	if catalog == nil {
		catalog = expression.Default()
	}
	env := Env{Config: cfg, Catalog: catalog, Rand: rng}
	m := &Machine{
		env:    env,
		state:  NewState(now, env),
		jitter: NewGazeJitter(rng.Int63(), cfg.GazeJitter),
	}
	m.frame = m.buildFrame(now)
	return m
}

// Observe registers fn for subsequent changes
func (m *Machine) Observe(fn Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, fn)
}

// Update advances one frame
func (m *Machine) Update(now time.Time) {
	m.mu.Lock()
	before := m.state
	m.state = Step(m.state, now, m.env)
	m.frame = m.buildFrame(now)
	changes, observers := diff(before, m.state), m.observers
	m.mu.Unlock()

	notify(observers, changes)
}

// Activity records user input at now, waking a sleeping character
func (m *Machine) Activity(now time.Time) {
	m.mu.Lock()
	before := m.state
	m.state = Wake(m.state, now, m.env)
	changes, observers := diff(before, m.state), m.observers
	m.mu.Unlock()

	notify(observers, changes)
}

// Trigger forces the named expression; unknown names are ignored
func (m *Machine) Trigger(name string) bool {
	m.mu.Lock()
	before := m.state
	next, ok := Trigger(m.state, name, m.env)
	m.state = next
	changes, observers := diff(before, m.state), m.observers
	m.mu.Unlock()

	notify(observers, changes)
	return ok
}

// State returns a copy of the live state
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Frame returns the render input computed by the last Update
func (m *Machine) Frame() Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frame
}

// Config returns the active tuning
func (m *Machine) Config() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.env.Config
}

// SetConfig swaps tuning; running timers keep their rolled intervals
func (m *Machine) SetConfig(cfg Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.env.Config = cfg
	m.jitter.amplitude = cfg.GazeJitter
}

// Catalog returns the expression registry
func (m *Machine) Catalog() *expression.Catalog {
	return m.env.Catalog
}

func (m *Machine) buildFrame(now time.Time) Frame {
	s := m.state
	pose := Resolve(s, m.env.Config.easing())
	left, right := EyeOpenness(pose, s)
	secs := s.Seconds(now)

	f := Frame{
		Pose:     pose,
		OffsetX:  s.OffsetX,
		OffsetY:  s.OffsetY,
		LeftEye:  left,
		RightEye: right,
		LookX:    pose.Eyes.LookX,
		LookY:    pose.Eyes.LookY,
		Sleeping: s.Sleeping,
		Seconds:  secs,
	}

	if s.Sleeping {
		elapsed := now.Sub(s.ZzzStart)
		f.ZzzPhase = math.Mod(float64(elapsed), float64(zzzPeriod)) / float64(zzzPeriod)
		if f.ZzzPhase < 0 {
			f.ZzzPhase += 1
		}
	} else {
		dx, dy := m.jitter.At(secs)
		f.LookX = vmath.Clamp(f.LookX+dx, -1, 1)
		f.LookY = vmath.Clamp(f.LookY+dy, -1, 1)
	}
	return f
}

func diff(before, after State) []Change {
	var changes []Change
	if !before.Sleeping && after.Sleeping {
		changes = append(changes, Change{Kind: ChangeSleep, From: before.Target.Name, To: after.Target.Name})
	} else if before.Sleeping && !after.Sleeping {
		changes = append(changes, Change{Kind: ChangeWake, From: before.Target.Name, To: after.Target.Name})
	} else if before.Target.Name != after.Target.Name || (after.TransitionProgress == 0 && before.TransitionProgress != 0) {
		changes = append(changes, Change{Kind: ChangeExpression, From: before.Target.Name, To: after.Target.Name})
	}
	return changes
}

func notify(observers []Observer, changes []Change) {
	for _, c := range changes {
		for _, fn := range observers {
			fn(c)
		}
	}
}
