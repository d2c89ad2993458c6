package terminal

import (
	"github.com/gdamore/tcell/v2"
)

// InputKind is what the frame loop should do with an event
type InputKind uint8

const (
	InputNone InputKind = iota
	InputActivity
	InputTrigger // also counts as activity
	InputResize
	InputQuit
)

// Input is a classified terminal event
type Input struct {
	Kind       InputKind
	Expression string // for InputTrigger
}

// Classify maps a tcell event to an Input
// Digits 1-9 then 0 trigger names[0..9]; Esc, Ctrl-C and q quit
func Classify(ev tcell.Event, names []string) Input {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return Input{Kind: InputQuit}
		case tcell.KeyRune:
			r := ev.Rune()
			if r == 'q' || r == 'Q' {
				return Input{Kind: InputQuit}
			}
			if i, ok := digitSlot(r); ok && i < len(names) {
				return Input{Kind: InputTrigger, Expression: names[i]}
			}
		}
		return Input{Kind: InputActivity}

	case *tcell.EventMouse:
		return Input{Kind: InputActivity}

	case *tcell.EventResize:
		return Input{Kind: InputResize}
	}
	return Input{Kind: InputNone}
}

// digitSlot maps '1'..'9','0' to 0..9
func digitSlot(r rune) (int, bool) {
	switch {
	case r >= '1' && r <= '9':
		return int(r - '1'), true
	case r == '0':
		return 9, true
	}
	return 0, false
}
