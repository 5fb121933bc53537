// Package command provides the player's command menu: pick an ability or an
// item, then a target, and hand the resulting action to the character.
package command

import (
	"fmt"
	"time"

	"github.com/samdwyer/bandbattle/internal/action"
	"github.com/samdwyer/bandbattle/internal/audio"
	"github.com/samdwyer/bandbattle/internal/battle"
	"github.com/samdwyer/bandbattle/internal/combat"
	"github.com/samdwyer/bandbattle/internal/entity"
	"github.com/samdwyer/bandbattle/internal/gamedata"
	"github.com/samdwyer/bandbattle/internal/input"
)

// Menu is the page the selector is showing.
type Menu int

const (
	// MenuClosed - no character is choosing a command.
	MenuClosed Menu = iota
	// MenuAction lists the character's abilities and the item entry.
	MenuAction
	// MenuItem lists the items that can still be chosen.
	MenuItem
	// MenuTarget picks who the chosen ability or item affects.
	MenuTarget
)

// String returns a human-readable menu name.
func (m Menu) String() string {
	switch m {
	case MenuClosed:
		return "closed"
	case MenuAction:
		return "action"
	case MenuItem:
		return "item"
	case MenuTarget:
		return "target"
	default:
		return "unknown"
	}
}

// Pack is the inventory the item menu draws from.
type Pack interface {
	action.Stock
	Stacks() []entity.Stack
	Commit()
}

// Option is one menu line.
type Option struct {
	Label  string
	Detail string
}

type choice struct {
	ability *gamedata.AbilityDef
	item    *gamedata.ItemDef
	// openItems marks the "Item" entry of the action menu.
	openItems bool
}

func (c choice) def() *gamedata.AbilityDef {
	if c.item != nil {
		return &c.item.AbilityDef
	}
	return c.ability
}

// Selector implements battle.CommandSelector.
type Selector struct {
	abilities *gamedata.AbilityRegistry
	items     func(id string) *gamedata.ItemDef
	pack      Pack
	cues      audio.Player

	selected *combat.Actor
	menu     Menu
	cursor   int
	actions  []choice
	stock    []choice
	targets  []*combat.Actor
	pending  choice
}

// New creates a selector. pack and items may be nil to disable the item menu.
func New(abilities *gamedata.AbilityRegistry, items func(id string) *gamedata.ItemDef, pack Pack, cues audio.Player) *Selector {
	if cues == nil {
		cues = audio.Nop{}
	}
	return &Selector{abilities: abilities, items: items, pack: pack, cues: cues}
}

// Open starts selection for a character.
func (sel *Selector) Open(a *combat.Actor) bool {
	if a == nil || !a.CanSelectCommand() {
		return false
	}
	var actions []choice
	for _, def := range sel.abilities.GetMultiple(a.Abilities()) {
		actions = append(actions, choice{ability: def})
	}
	if len(sel.itemChoices()) > 0 {
		actions = append(actions, choice{openItems: true})
	}
	if len(actions) == 0 {
		return false
	}

	sel.selected = a
	sel.actions = actions
	sel.show(MenuAction)
	return true
}

// Active reports whether a selection is in progress.
func (sel *Selector) Active() bool { return sel.selected != nil }

// Selected returns the character being served.
func (sel *Selector) Selected() *combat.Actor { return sel.selected }

// Menu returns the page being shown.
func (sel *Selector) Menu() Menu { return sel.menu }

// Cursor returns the highlighted line.
func (sel *Selector) Cursor() int { return sel.cursor }

// Options returns the lines of the current page.
func (sel *Selector) Options() []Option {
	switch sel.menu {
	case MenuAction:
		out := make([]Option, len(sel.actions))
		for i, c := range sel.actions {
			if c.openItems {
				out[i] = Option{Label: "Item"}
				continue
			}
			out[i] = Option{Label: c.ability.Name, Detail: c.ability.Description}
		}
		return out
	case MenuItem:
		out := make([]Option, len(sel.stock))
		for i, c := range sel.stock {
			out[i] = Option{Label: c.item.Name, Detail: fmt.Sprintf("x%d", sel.available(c.item.ID))}
		}
		return out
	case MenuTarget:
		out := make([]Option, len(sel.targets))
		for i, t := range sel.targets {
			out[i] = Option{Label: t.Name(), Detail: fmt.Sprintf("%d/%d", t.HP(), t.MaxHP())}
		}
		return out
	default:
		return nil
	}
}

// Targets returns the candidates of the target page.
func (sel *Selector) Targets() []*combat.Actor { return sel.targets }

// Update handles one tick of menu input.
func (sel *Selector) Update(s *battle.Session, dt time.Duration, in input.Frame) {
	if sel.selected == nil {
		return
	}
	switch {
	case in.Confirm:
		sel.confirm(s)
	case in.Cancel:
		sel.back(s)
	case in.Up || in.Left:
		sel.move(-1)
	case in.Down || in.Right:
		sel.move(1)
	}
}

func (sel *Selector) move(delta int) {
	n := len(sel.Options())
	if n == 0 {
		return
	}
	sel.cursor = (sel.cursor + delta + n) % n
	sel.cues.Play(audio.CueCursor)
}

func (sel *Selector) confirm(s *battle.Session) {
	switch sel.menu {
	case MenuAction:
		c := sel.actions[sel.cursor]
		if c.openItems {
			sel.stock = sel.itemChoices()
			if len(sel.stock) == 0 {
				sel.cues.Play(audio.CueInvalid)
				return
			}
			sel.cues.Play(audio.CueConfirm)
			sel.show(MenuItem)
			return
		}
		sel.choose(s, c)
	case MenuItem:
		sel.choose(s, sel.stock[sel.cursor])
	case MenuTarget:
		sel.finish(s, sel.targets[sel.cursor])
	}
}

// choose either asks for a target or finishes right away.
func (sel *Selector) choose(s *battle.Session, c choice) {
	def := c.def()
	sel.pending = c
	if !def.NeedsTarget() {
		sel.finish(s, nil)
		return
	}
	targets := action.Candidates(s, action.TargetSide(def, sel.selected))
	if len(targets) == 0 {
		sel.cues.Play(audio.CueInvalid)
		return
	}
	sel.targets = targets
	sel.cues.Play(audio.CueConfirm)
	sel.show(MenuTarget)
}

func (sel *Selector) finish(s *battle.Session, target *combat.Actor) {
	var act combat.Action
	if sel.pending.item != nil {
		if it := action.NewItem(sel.pending.item, sel.pack, s, target); it != nil {
			act = it
		}
	} else {
		act = action.NewAbility(sel.pending.ability, s, target)
	}
	if act == nil {
		sel.cues.Play(audio.CueInvalid)
		sel.show(MenuAction)
		return
	}

	c := sel.selected
	if !c.SetAction(act) {
		act.Cancel()
		sel.Close()
		s.NotifyCommandCancel()
		return
	}
	sel.cues.Play(audio.CueConfirm)
	sel.Close()
	s.NotifyCommandComplete(c)
}

func (sel *Selector) back(s *battle.Session) {
	sel.cues.Play(audio.CueCancel)
	switch sel.menu {
	case MenuTarget:
		if sel.pending.item != nil {
			sel.show(MenuItem)
			return
		}
		sel.show(MenuAction)
	case MenuItem:
		sel.show(MenuAction)
	default:
		sel.Close()
		s.NotifyCommandCancel()
	}
}

// NotifyActorDeath drops a fallen actor from the target page and ends the
// selection if the selected character fell.
func (sel *Selector) NotifyActorDeath(a *combat.Actor) {
	if a == nil || sel.selected == nil {
		return
	}
	if a == sel.selected {
		sel.Close()
		return
	}
	for i, t := range sel.targets {
		if t == a {
			sel.targets = append(sel.targets[:i], sel.targets[i+1:]...)
			break
		}
	}
	if sel.menu != MenuTarget {
		return
	}
	if len(sel.targets) == 0 {
		sel.show(MenuAction)
		return
	}
	if sel.cursor >= len(sel.targets) {
		sel.cursor = len(sel.targets) - 1
	}
}

// CommitInventory makes the battle's item use permanent.
func (sel *Selector) CommitInventory() {
	if sel.pack != nil {
		sel.pack.Commit()
	}
}

// Close abandons the selection.
func (sel *Selector) Close() {
	sel.selected = nil
	sel.menu = MenuClosed
	sel.cursor = 0
	sel.actions = nil
	sel.stock = nil
	sel.targets = nil
	sel.pending = choice{}
}

func (sel *Selector) show(m Menu) {
	sel.menu = m
	sel.cursor = 0
	if m != MenuTarget {
		sel.targets = nil
	}
}

func (sel *Selector) itemChoices() []choice {
	if sel.pack == nil || sel.items == nil {
		return nil
	}
	var out []choice
	for _, st := range sel.pack.Stacks() {
		if def := sel.items(st.ItemID); def != nil {
			out = append(out, choice{item: def})
		}
	}
	return out
}

func (sel *Selector) available(id string) int {
	for _, st := range sel.pack.Stacks() {
		if st.ItemID == id {
			return st.Count
		}
	}
	return 0
}

var _ battle.CommandSelector = (*Selector)(nil)
