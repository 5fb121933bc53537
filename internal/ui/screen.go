// Package ui draws the battle and menus to the terminal using tcell.
package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Screen wraps tcell.Screen with the handful of calls the game needs.
type Screen struct {
	screen tcell.Screen
}

// NewScreen creates and initializes a terminal screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return wrap(s)
}

// NewSimulationScreen creates an in-memory screen of the given size.
func NewSimulationScreen(width, height int) (*Screen, error) {
	sim := tcell.NewSimulationScreen("UTF-8")
	scr, err := wrap(sim)
	if err != nil {
		return nil, err
	}
	sim.SetSize(width, height)
	return scr, nil
}

func wrap(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.HideCursor()
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close finalizes the screen and restores terminal state. PollEvent
// returns nil afterwards.
func (s *Screen) Close() {
	s.screen.Fini()
}

// PollEvent waits for and returns the next terminal event.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Clear clears the screen buffer.
func (s *Screen) Clear() {
	s.screen.Clear()
}

// Show flushes the screen buffer to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// SetContent sets a single cell's content at the given position.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// Rune returns the primary rune drawn at a position.
func (s *Screen) Rune(x, y int) rune {
	r, _, _, _ := s.screen.GetContent(x, y)
	return r
}

// Size returns the current terminal dimensions.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// Sync forces a complete redraw of the screen.
func (s *Screen) Sync() {
	s.screen.Sync()
}

// DrawText writes text starting at x and returns the column after it.
// Text running past the right edge is cut off.
func (s *Screen) DrawText(x, y int, text string, style tcell.Style) int {
	w, _ := s.Size()
	for _, r := range text {
		if x >= w {
			break
		}
		if x >= 0 {
			s.SetContent(x, y, r, style)
		}
		x++
	}
	return x
}

// DrawCentered writes text centered on the row.
func (s *Screen) DrawCentered(y int, text string, style tcell.Style) {
	w, _ := s.Size()
	s.DrawText((w-uniseg.StringWidth(text))/2, y, text, style)
}

// Fill paints a rectangle with a rune.
func (s *Screen) Fill(x, y, width, height int, r rune, style tcell.Style) {
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			s.SetContent(col, row, r, style)
		}
	}
}

// Box draws a bordered rectangle and clears its interior.
func (s *Screen) Box(x, y, width, height int, style tcell.Style) {
	if width < 2 || height < 2 {
		return
	}
	s.Fill(x+1, y+1, width-2, height-2, ' ', style)
	for col := x + 1; col < x+width-1; col++ {
		s.SetContent(col, y, tcell.RuneHLine, style)
		s.SetContent(col, y+height-1, tcell.RuneHLine, style)
	}
	for row := y + 1; row < y+height-1; row++ {
		s.SetContent(x, row, tcell.RuneVLine, style)
		s.SetContent(x+width-1, row, tcell.RuneVLine, style)
	}
	s.SetContent(x, y, tcell.RuneULCorner, style)
	s.SetContent(x+width-1, y, tcell.RuneURCorner, style)
	s.SetContent(x, y+height-1, tcell.RuneLLCorner, style)
	s.SetContent(x+width-1, y+height-1, tcell.RuneLRCorner, style)
}
