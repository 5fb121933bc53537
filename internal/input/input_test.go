package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestFromKey(t *testing.T) {
	tests := []struct {
		name     string
		ev       *tcell.EventKey
		expected Frame
	}{
		{"enter confirms", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), Frame{Confirm: true}},
		{"space confirms", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), Frame{Confirm: true}},
		{"escape cancels", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), Frame{Cancel: true}},
		{"x cancels", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), Frame{Cancel: true}},
		{"up arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), Frame{Up: true}},
		{"vim down", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), Frame{Down: true}},
		{"left arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), Frame{Left: true}},
		{"right arrow", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), Frame{Right: true}},
		{"p pauses", tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), Frame{Pause: true}},
		{"q quits", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), Frame{Quit: true}},
		{"unmapped rune", tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone), Frame{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromKey(tt.ev); got != tt.expected {
				t.Errorf("FromKey() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestMergeAndEmpty(t *testing.T) {
	var f Frame
	if !f.Empty() {
		t.Error("zero frame should be empty")
	}
	f.AddKey(nil)
	if !f.Empty() {
		t.Error("nil event should be ignored")
	}

	merged := Frame{Up: true}.Merge(Frame{Confirm: true})
	if !merged.Up || !merged.Confirm || merged.Cancel {
		t.Errorf("Merge() = %+v", merged)
	}
}
