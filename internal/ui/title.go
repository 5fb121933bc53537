package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/bandbattle/internal/entity"
)

// TitleView is what the title screen shows.
type TitleView struct {
	Options []string
	Cursor  int
	Party   *entity.Party
	// Notice is a one-line status, such as a reload or rewards error.
	Notice string
}

// DrawTitle draws the title menu and the party roster.
func (r *Renderer) DrawTitle(v TitleView) {
	_, h := r.screen.Size()

	r.screen.DrawCentered(2, "B A N D B A T T L E", styleTitle)
	r.screen.DrawCentered(3, "an active time battle", styleDim)

	for i, opt := range v.Options {
		style := styleText
		if i == v.Cursor {
			style = styleCursor
		}
		r.screen.DrawCentered(6+i, " "+opt+" ", style)
	}

	if v.Party != nil {
		r.drawRoster(v.Party, 7+len(v.Options))
	}
	if v.Notice != "" {
		r.screen.DrawCentered(h-1, v.Notice, styleLow)
	}
}

func (r *Renderer) drawRoster(p *entity.Party, y int) {
	w, _ := r.screen.Size()
	x := w/2 - 22

	r.screen.DrawText(x, y, "Gold "+r.Number(p.Currency), styleText)
	for i, m := range p.Members {
		row := y + 2 + i
		style := tcell.StyleDefault.Foreground(m.Color())
		if !m.IsAlive() {
			style = styleDim
		}
		col := r.screen.DrawText(x, row, string(m.Symbol)+" "+m.Name, style)
		next := "max"
		if m.Level < entity.MaxLevel {
			next = r.Number(entity.ExperienceForLevel(m.Level+1) - m.Experience)
		}
		info := r.printer.Sprintf("Lv %d  %d/%d  next %s", m.Level, m.HP, m.MaxHP, next)
		if col < x+10 {
			col = x + 10
		}
		r.screen.DrawText(col+1, row, info, styleText)
	}

	if stacks := p.Inventory.Stacks(); len(stacks) > 0 {
		row := y + 3 + len(p.Members)
		col := x
		for _, s := range stacks {
			col = r.screen.DrawText(col, row, r.printer.Sprintf("%s x%d  ", s.ItemID, s.Count), styleDim)
		}
	}
}
