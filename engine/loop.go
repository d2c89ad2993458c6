package engine

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/buddy/buddy"
	"github.com/lixenwraith/buddy/config"
	"github.com/lixenwraith/buddy/expression"
	"github.com/lixenwraith/buddy/render"
	"github.com/lixenwraith/buddy/status"
	"github.com/lixenwraith/buddy/terminal"
)

// Screen is the terminal surface the loop draws on and reads input from
type Screen interface {
	render.Sink
	Show()
	Sync()
	Events() <-chan tcell.Event
}

// Chimes plays audio cues for state changes
type Chimes interface {
	PlayWake()
	PlayBlip()
}

type volumeSetter interface {
	SetVolume(v float64)
}

// frameTimeWeight smooths the frame time gauge
const frameTimeWeight = 0.05

// Loop runs update, draw and input handling on a single goroutine
type Loop struct {
	session *Session
	cfg     config.Config
	machine *buddy.Machine
	face    *render.Face
	screen  Screen
	clock   TimeProvider
	chimes  Chimes
	log     zerolog.Logger
	names   []string
	reload  chan config.Config

	frames    *atomic.Int64
	frameTime *status.AtomicFloat
}

// LoopOption customizes a Loop
type LoopOption func(*Loop)

// WithClock replaces the system clock
func WithClock(clock TimeProvider) LoopOption {
	return func(l *Loop) { l.clock = clock }
}

// WithChimes enables audio cues
func WithChimes(c Chimes) LoopOption {
	return func(l *Loop) { l.chimes = c }
}

// WithLogger sets the loop logger
func WithLogger(log zerolog.Logger) LoopOption {
	return func(l *Loop) { l.log = log }
}

// NewLoop builds the session's machine and wires its observers
func NewLoop(s *Session, screen Screen, opts ...LoopOption) *Loop {
	l := &Loop{
		session: s,
		cfg:     s.Config,
		face:    s.Face(),
		screen:  screen,
		clock:   NewMonotonicTimeProvider(),
		log:     zerolog.Nop(),
		names:   s.Catalog.Names(),
		reload:  make(chan config.Config, 1),
	}
	for _, opt := range opts {
		opt(l)
	}

	l.frames = s.Stats.Ints.Get(status.Frames)
	l.frameTime = s.Stats.Floats.Get(status.FrameTimeMs)

	l.machine = s.NewMachine(l.clock.Now())
	l.machine.Observe(l.onChange)
	return l
}

// Machine returns the session's state machine
func (l *Loop) Machine() *buddy.Machine {
	return l.machine
}

// Reload queues a new configuration for the loop goroutine
// Only the latest pending config is kept
func (l *Loop) Reload(cfg config.Config) {
	select {
	case <-l.reload:
	default:
	}
	select {
	case l.reload <- cfg:
	default:
	}
}

// Run blocks until quit input, a closed event stream, or ctx cancellation
// A panic inside the loop is returned as an error so the caller can restore the terminal
func (l *Loop) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("frame loop panic: %v\n%s", r, debug.Stack())
		}
	}()

	ticker := time.NewTicker(frameInterval(l.cfg.Animation.FPS))
	defer ticker.Stop()

	events := l.screen.Events()
	l.draw()

	l.log.Info().
		Int("fps", l.cfg.Animation.FPS).
		Int64("seed", l.session.Seed).
		Float64("hue", l.face.Palette.Hue).
		Msg("loop started")

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !l.handleEvent(ev) {
				return nil
			}

		case cfg := <-l.reload:
			l.apply(cfg, ticker)

		case <-ticker.C:
			l.tick()
		}
	}
}

func (l *Loop) tick() {
	start := time.Now()
	l.machine.Update(l.clock.Now())
	l.draw()

	l.frames.Add(1)
	l.frameTime.Smooth(float64(time.Since(start).Microseconds())/1000, frameTimeWeight)
}

func (l *Loop) draw() {
	l.face.Draw(l.screen, l.machine.Frame())
	l.screen.Show()
}

// handleEvent returns false when the loop should exit
func (l *Loop) handleEvent(ev tcell.Event) bool {
	in := terminal.Classify(ev, l.names)
	now := l.clock.Now()

	switch in.Kind {
	case terminal.InputQuit:
		l.log.Info().Msg("quit requested")
		return false

	case terminal.InputActivity:
		l.machine.Activity(now)

	case terminal.InputTrigger:
		l.machine.Activity(now)
		if l.machine.Trigger(in.Expression) {
			l.session.Stats.Ints.Get(status.Triggers).Add(1)
			l.log.Debug().Str("expression", in.Expression).Msg("triggered")
		}

	case terminal.InputResize:
		l.screen.Sync()
		l.draw()
	}
	return true
}

func (l *Loop) apply(cfg config.Config, ticker *time.Ticker) {
	l.machine.SetConfig(cfg.Tuning())
	l.face.Debug = cfg.Render.Debug

	if cfg.Render.Hue != config.RandomHue && float64(cfg.Render.Hue) != l.face.Palette.Hue {
		l.face.Palette = render.NewPalette(float64(cfg.Render.Hue))
	}
	if cfg.Animation.FPS != l.cfg.Animation.FPS {
		ticker.Reset(frameInterval(cfg.Animation.FPS))
	}
	if v, ok := l.chimes.(volumeSetter); ok {
		v.SetVolume(cfg.Audio.Volume)
	}

	l.cfg = cfg
	l.log.Info().Int("fps", cfg.Animation.FPS).Bool("debug", cfg.Render.Debug).Msg("config reloaded")
}

func (l *Loop) onChange(c buddy.Change) {
	stats := l.session.Stats.Ints
	switch c.Kind {
	case buddy.ChangeSleep:
		stats.Get(status.Sleeps).Add(1)
		l.log.Info().Str("from", c.From).Msg("fell asleep")

	case buddy.ChangeWake:
		stats.Get(status.Wakes).Add(1)
		l.log.Info().Str("to", c.To).Msg("woke up")
		if l.chimes != nil {
			l.chimes.PlayWake()
		}

	case buddy.ChangeExpression:
		stats.Get(status.ExpressionChanges).Add(1)
		l.log.Debug().Str("from", c.From).Str("to", c.To).Msg("expression")
		if l.chimes != nil && c.To != expression.Neutral {
			l.chimes.PlayBlip()
		}
	}
}

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}
