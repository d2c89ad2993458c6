// Package engine ties a Buddy session together: the seeded session object,
// the clock, and the frame loop that moves input into the state machine and
// frames onto the screen.
package engine

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/buddy/buddy"
	"github.com/lixenwraith/buddy/config"
	"github.com/lixenwraith/buddy/expression"
	"github.com/lixenwraith/buddy/render"
	"github.com/lixenwraith/buddy/status"
)

// Session is created once per process and owns every random choice
type Session struct {
	ID      uuid.UUID
	Seed    int64
	Started time.Time
	Config  config.Config
	Palette render.Palette
	Catalog *expression.Catalog
	Rand    *rand.Rand
	Stats   *status.Registry
}

// NewSession seeds the RNG from the config, or from the clock when the seed is 0
// The palette is drawn before the machine so a seed fixes both
func NewSession(cfg config.Config, clock TimeProvider) *Session {
	now := clock.Now()
	seed := cfg.Animation.Seed
	if seed == 0 {
		seed = now.UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var palette render.Palette
	if cfg.Render.Hue == config.RandomHue {
		palette = render.RandomPalette(rng)
	} else {
		palette = render.NewPalette(float64(cfg.Render.Hue))
	}

	return &Session{
		ID:      uuid.New(),
		Seed:    seed,
		Started: now,
		Config:  cfg,
		Palette: palette,
		Catalog: expression.Default(),
		Rand:    rng,
		Stats:   status.NewRegistry(),
	}
}

// NewMachine builds the session's state machine starting at now
func (s *Session) NewMachine(now time.Time) *buddy.Machine {
	m := buddy.NewMachine(s.Config.Tuning(), s.Catalog, s.Rand, now)
	if name := s.Config.Animation.InitialExpression; name != "" {
		m.Trigger(name)
	}
	return m
}

// Face builds the renderer for this session's palette
func (s *Session) Face() *render.Face {
	return &render.Face{Palette: s.Palette, Debug: s.Config.Render.Debug}
}
