// Package input turns terminal key events into per-frame button state.
package input

import "github.com/gdamore/tcell/v2"

// Frame is the set of buttons pressed since the previous tick.
type Frame struct {
	Confirm bool
	Cancel  bool
	Up      bool
	Down    bool
	Left    bool
	Right   bool
	Pause   bool
	Quit    bool
}

// FromKey returns a frame holding the single key event.
func FromKey(ev *tcell.EventKey) Frame {
	var f Frame
	f.AddKey(ev)
	return f
}

// AddKey records a key event. Unmapped keys are ignored.
func (f *Frame) AddKey(ev *tcell.EventKey) {
	if ev == nil {
		return
	}
	switch ev.Key() {
	case tcell.KeyCtrlC:
		f.Quit = true
	case tcell.KeyEnter:
		f.Confirm = true
	case tcell.KeyEscape, tcell.KeyBackspace, tcell.KeyBackspace2:
		f.Cancel = true
	case tcell.KeyUp:
		f.Up = true
	case tcell.KeyDown:
		f.Down = true
	case tcell.KeyLeft:
		f.Left = true
	case tcell.KeyRight:
		f.Right = true
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl != 0 && (ev.Rune() == 'c' || ev.Rune() == 'C') {
			f.Quit = true
			return
		}
		switch ev.Rune() {
		case ' ', 'z', 'Z':
			f.Confirm = true
		case 'x', 'X':
			f.Cancel = true
		case 'k':
			f.Up = true
		case 'j':
			f.Down = true
		case 'h':
			f.Left = true
		case 'l':
			f.Right = true
		case 'p', 'P':
			f.Pause = true
		case 'q', 'Q':
			f.Quit = true
		}
	}
}

// Merge combines two frames; a button is pressed if it is pressed in either.
func (f Frame) Merge(o Frame) Frame {
	return Frame{
		Confirm: f.Confirm || o.Confirm,
		Cancel:  f.Cancel || o.Cancel,
		Up:      f.Up || o.Up,
		Down:    f.Down || o.Down,
		Left:    f.Left || o.Left,
		Right:   f.Right || o.Right,
		Pause:   f.Pause || o.Pause,
		Quit:    f.Quit || o.Quit,
	}
}

// Empty reports whether no button is pressed.
func (f Frame) Empty() bool {
	return f == Frame{}
}
