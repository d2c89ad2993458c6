package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/buddy/buddy"
)

// ReplayEpoch is the mock clock origin for headless runs
var ReplayEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// ReplayOptions drives a headless run
type ReplayOptions struct {
	Frames   int
	Step     time.Duration  // mock clock advance per frame
	Every    int            // emit every Nth frame; 0 or 1 emits all
	Activity map[int]bool   // frames that receive user activity before updating
	Triggers map[int]string // frames that trigger an expression after activity
}

// Replay advances a fresh machine on a mock clock and emits sampled states
// The same session seed and options always produce the same sequence
func Replay(s *Session, opts ReplayOptions, emit func(frame int, st buddy.State) error) error {
	if opts.Frames < 0 {
		return fmt.Errorf("replay: negative frame count %d", opts.Frames)
	}
	if opts.Step <= 0 {
		return errors.New("replay: step must be positive")
	}
	every := opts.Every
	if every < 1 {
		every = 1
	}

	clock := NewMockTimeProvider(ReplayEpoch)
	m := s.NewMachine(clock.Now())

	for i := 1; i <= opts.Frames; i++ {
		now := clock.Advance(opts.Step)

		if opts.Activity[i] {
			m.Activity(now)
		}
		if name, ok := opts.Triggers[i]; ok {
			m.Activity(now)
			m.Trigger(name)
		}
		m.Update(now)

		if i%every == 0 {
			if err := emit(i, m.State()); err != nil {
				return fmt.Errorf("replay frame %d: %w", i, err)
			}
		}
	}
	return nil
}
