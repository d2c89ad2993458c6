// Package terminal adapts a tcell screen to the render.Sink interface and
// translates terminal input into Buddy's activity and trigger commands.
package terminal

import (
	"fmt"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/buddy/render"
)

// ColorMode selects terminal color output
type ColorMode string

const (
	ColorAuto      ColorMode = "auto"
	ColorTrueColor ColorMode = "truecolor"
	Color256       ColorMode = "256"
)

// eventBuffer bounds queued input between frames
const eventBuffer = 100

// Screen is a tcell-backed render.Sink
type Screen struct {
	screen tcell.Screen

	once   sync.Once
	events chan tcell.Event

	finiOnce sync.Once
	done     chan struct{}
}

// New creates and initializes the terminal screen
func New(mode ColorMode) (*Screen, error) {
	switch mode {
	case Color256:
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case ColorTrueColor:
		if os.Getenv("COLORTERM") == "" {
			os.Setenv("COLORTERM", "truecolor")
		}
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return Wrap(s)
}

// Wrap initializes an existing tcell screen, such as a simulation screen
func Wrap(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	s.EnableMouse()
	s.HideCursor()
	return &Screen{
		screen: s,
		events: make(chan tcell.Event, eventBuffer),
		done:   make(chan struct{}),
	}, nil
}

// SetCell implements render.Sink
func (s *Screen) SetCell(x, y int, ch rune, fg, bg render.RGB) {
	style := tcell.StyleDefault.Foreground(toColor(fg)).Background(toColor(bg))
	s.screen.SetContent(x, y, ch, nil, style)
}

// Size implements render.Sink
func (s *Screen) Size() (int, int) {
	return s.screen.Size()
}

// Show flushes the frame to the terminal
func (s *Screen) Show() {
	s.screen.Show()
}

// Sync repaints everything, used after resize
func (s *Screen) Sync() {
	s.screen.Sync()
}

// Fini restores the terminal and releases the input pump
func (s *Screen) Fini() {
	s.finiOnce.Do(func() {
		close(s.done)
		s.screen.Fini()
	})
}

// Events starts the input pump on first call and returns its channel
// The channel closes when the screen is finalized
func (s *Screen) Events() <-chan tcell.Event {
	s.once.Do(func() {
		go func() {
			defer close(s.events)
			for {
				ev := s.screen.PollEvent()
				if ev == nil {
					return
				}
				select {
				case s.events <- ev:
				case <-s.done:
					return
				}
			}
		}()
	})
	return s.events
}

func toColor(c render.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
