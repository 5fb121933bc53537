package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/samdwyer/bandbattle/internal/battle"
	"github.com/samdwyer/bandbattle/internal/combat"
	"github.com/samdwyer/bandbattle/internal/command"
	"github.com/samdwyer/bandbattle/internal/finish"
)

const (
	panelWidth = 26
	gaugeWidth = 12
	logHeight  = 6
)

// Look is how an actor is drawn.
type Look struct {
	Symbol rune
	Color  tcell.Color
}

var (
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleCursor = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleLow    = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen  *Screen
	printer *message.Printer
	looks   func(a *combat.Actor) Look
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{
		screen:  screen,
		printer: message.NewPrinter(language.English),
	}
}

// SetLooks sets how actors are drawn. Without it actors use the first
// letter of their name.
func (r *Renderer) SetLooks(fn func(a *combat.Actor) Look) {
	r.looks = fn
}

// Number formats n with thousands separators.
func (r *Renderer) Number(n int) string {
	return r.printer.Sprintf("%d", n)
}

func (r *Renderer) look(a *combat.Actor) Look {
	if r.looks != nil {
		if l := r.looks(a); l.Symbol != 0 {
			return l
		}
	}
	sym := '?'
	if name := a.Name(); name != "" {
		sym = []rune(name)[0]
	}
	return Look{Symbol: sym, Color: tcell.ColorWhite}
}

// Clear starts a new frame.
func (r *Renderer) Clear() { r.screen.Clear() }

// Show presents the frame.
func (r *Renderer) Show() { r.screen.Show() }

// DrawBattle draws the battle. sel may be nil.
func (r *Renderer) DrawBattle(title string, s *battle.Session, sel *command.Selector) {
	w, h := r.screen.Size()

	r.screen.DrawText(1, 0, title, styleTitle)
	status := r.printer.Sprintf("%s  %ds  turn %d", s.Config().Pacing, int(s.Elapsed().Seconds()), s.Turns())
	r.screen.DrawText(w-len(status)-1, 0, status, styleDim)

	var selected *combat.Actor
	if sel != nil {
		selected = sel.Selected()
	}
	for _, a := range s.Actors() {
		r.drawActor(a, a == selected)
	}

	r.drawLog(s.Messages(), h-logHeight)
	if sel != nil && sel.Active() {
		r.drawMenu(sel, w-panelWidth-1, h-logHeight)
	}

	switch s.Phase() {
	case battle.PhaseInitial:
		r.banner("Enemies draw near!")
	case battle.PhaseExiting:
		r.banner("The band moves on.")
	case battle.PhaseVictory, battle.PhaseDefeat:
		r.drawOutcome(s.Finish())
	}
}

// drawActor draws the name, vitality and time gauge of one actor at its
// formation origin.
func (r *Renderer) drawActor(a *combat.Actor, selected bool) {
	w, h := r.screen.Size()
	ox, oy := a.Origin()
	x := int(ox*float64(w)) - panelWidth/2
	y := int(oy * float64(h))

	l := r.look(a)
	nameStyle := tcell.StyleDefault.Foreground(l.Color)
	if selected {
		nameStyle = styleCursor
	}
	if !a.IsValid() {
		nameStyle = styleDim
	}

	col := r.screen.DrawText(x, y, string(l.Symbol)+" ", nameStyle.Bold(true))
	r.screen.DrawText(col, y, a.Name(), nameStyle)

	hpStyle := styleText
	if a.HP()*4 <= a.MaxHP() {
		hpStyle = styleLow
	}
	hp := r.printer.Sprintf("%d/%d", a.HP(), a.MaxHP())
	r.screen.DrawText(x+panelWidth-len(hp), y, hp, hpStyle)

	r.drawGauge(x+2, y+1, a)
	r.screen.DrawText(x+gaugeWidth+4, y+1, stateLabel(a), styleDim)
}

// drawGauge shows the progress of the actor's current timer.
func (r *Renderer) drawGauge(x, y int, a *combat.Actor) {
	fill, style := 0.0, tcell.StyleDefault.Foreground(tcell.ColorBlue)
	switch a.State() {
	case combat.StateIdle:
		fill = a.Fraction()
	case combat.StateCommand, combat.StateReady:
		fill, style = 1, tcell.StyleDefault.Foreground(tcell.ColorYellow)
	case combat.StateWarmUp:
		fill, style = a.Fraction(), tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case combat.StateActing:
		fill, style = 1, tcell.StyleDefault.Foreground(tcell.ColorWhite)
	}
	r.screen.DrawText(x, y, gauge(fill, gaugeWidth), style)
}

func gauge(fill float64, width int) string {
	if fill < 0 {
		fill = 0
	}
	if fill > 1 {
		fill = 1
	}
	n := int(fill * float64(width))
	return "[" + strings.Repeat("=", n) + strings.Repeat(" ", width-n) + "]"
}

func stateLabel(a *combat.Actor) string {
	switch a.State() {
	case combat.StateCommand:
		return "READY"
	case combat.StateWarmUp, combat.StateReady, combat.StateActing:
		if act := a.Action(); act != nil {
			return act.Name()
		}
		return a.State().String()
	case combat.StateDying, combat.StateDead:
		return "down"
	default:
		return ""
	}
}

func (r *Renderer) drawLog(msgs []string, y int) {
	w, _ := r.screen.Size()
	r.screen.Box(0, y, w-panelWidth-1, logHeight, styleBorder)
	for i, m := range msgs {
		if i >= logHeight-2 {
			break
		}
		r.screen.DrawText(2, y+1+i, m, styleText)
	}
}

func (r *Renderer) drawMenu(sel *command.Selector, x, y int) {
	r.screen.Box(x, y, panelWidth+1, logHeight, styleBorder)
	r.screen.DrawText(x+2, y, " "+sel.Selected().Name()+" ", styleTitle)

	opts := sel.Options()
	rows := logHeight - 2
	first := 0
	if sel.Cursor() >= rows {
		first = sel.Cursor() - rows + 1
	}
	for i := first; i < len(opts) && i < first+rows; i++ {
		style := styleText
		if i == sel.Cursor() {
			style = styleCursor
		}
		line := opts[i].Label
		if opts[i].Detail != "" && sel.Menu() != command.MenuAction {
			line += " " + opts[i].Detail
		}
		r.screen.DrawText(x+2, y+1+i-first, line, style)
	}
}

func (r *Renderer) banner(text string) {
	_, h := r.screen.Size()
	r.screen.DrawCentered(h/2-logHeight/2, text, styleTitle)
}

// drawOutcome draws the victory tally or the defeat menu.
func (r *Renderer) drawOutcome(sup *finish.Supervisor) {
	w, h := r.screen.Size()
	bw, bh := 44, 12
	x, y := (w-bw)/2, (h-bh)/2-2
	r.screen.Box(x, y, bw, bh, styleBorder)

	if sup.Victorious() {
		r.drawVictory(sup, x+2, y+1)
		return
	}
	r.drawDefeat(sup, x+2, y+1)
}

func (r *Renderer) drawVictory(sup *finish.Supervisor, x, y int) {
	r.screen.DrawText(x, y, "Victory!", styleTitle)
	report := sup.Report()
	ledger := sup.Ledger()

	switch sup.Phase() {
	case finish.PhaseAnnounceResult:
		return
	case finish.PhaseVictoryGrowth:
		r.screen.DrawText(x, y+1, "Experience "+r.Number(sup.ExperienceRemaining()), styleText)
		for i, m := range report.Members {
			gained := 0
			if i < len(ledger.Experience) {
				gained = ledger.Experience[i]
			}
			style := styleText
			if !m.Alive {
				style = styleDim
			}
			line := r.printer.Sprintf("%-10s Lv %-3d +%d", m.Name, m.Level, gained)
			r.screen.DrawText(x, y+3+i, line, style)
		}
	default:
		r.screen.DrawText(x, y+1, "Gold "+r.Number(sup.CurrencyRemaining()), styleText)
		r.screen.DrawText(x, y+2, "Found "+r.Number(ledger.Currency)+" gold", styleText)
		for i, it := range ledger.Items {
			r.screen.DrawText(x, y+4+i, r.printer.Sprintf("%s x%d", it.Name, it.Count), styleText)
		}
		if len(ledger.Items) == 0 && sup.Phase() == finish.PhaseEnd {
			r.screen.DrawText(x, y+4, "No items.", styleDim)
		}
	}
}

func (r *Renderer) drawDefeat(sup *finish.Supervisor, x, y int) {
	r.screen.DrawText(x, y, "The band has fallen.", styleLow)
	if sup.Phase() == finish.PhaseAnnounceResult {
		return
	}

	options := []finish.Option{finish.OptionRetry, finish.OptionRestart, finish.OptionReturn, finish.OptionQuit}
	for i, o := range options {
		style := styleText
		if !sup.OptionEnabled(o) {
			style = styleDim
		}
		if o == sup.Cursor() {
			style = styleCursor
		}
		label := o.Label()
		if o == finish.OptionRetry {
			label = r.printer.Sprintf("%s (%d left)", label, sup.RetriesLeft())
		}
		r.screen.DrawText(x+2, y+2+i, label, style)
	}

	if sup.Phase() == finish.PhaseDefeatConfirm {
		yes, no := styleText, styleCursor
		if sup.ConfirmYes() {
			yes, no = styleCursor, styleText
		}
		col := r.screen.DrawText(x, y+8, "Are you sure?  ", styleText)
		col = r.screen.DrawText(col, y+8, "Yes", yes)
		r.screen.DrawText(col+2, y+8, "No", no)
	}
}

// DrawPause draws the pause overlay on top of the current frame.
func (r *Renderer) DrawPause() {
	w, h := r.screen.Size()
	r.screen.Box(w/2-10, h/2-2, 20, 3, styleBorder)
	r.screen.DrawCentered(h/2-1, "PAUSED", styleTitle)
}
