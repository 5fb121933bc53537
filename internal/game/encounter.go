package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/samdwyer/bandbattle/internal/ai"
	"github.com/samdwyer/bandbattle/internal/battle"
	"github.com/samdwyer/bandbattle/internal/combat"
	"github.com/samdwyer/bandbattle/internal/command"
	"github.com/samdwyer/bandbattle/internal/entity"
	"github.com/samdwyer/bandbattle/internal/finish"
	"github.com/samdwyer/bandbattle/internal/gamedata"
	"github.com/samdwyer/bandbattle/internal/input"
	"github.com/samdwyer/bandbattle/internal/script"
	"github.com/samdwyer/bandbattle/internal/ui"
)

// buildLineup resolves the fixed enemies of an encounter and rolls its
// random ones.
func buildLineup(cat *gamedata.Catalog, def *gamedata.EncounterDef, rng *rand.Rand) ([]*entity.Enemy, error) {
	var defs []*gamedata.EnemyDef
	for _, id := range def.Enemies {
		d := cat.Enemies.GetByID(id)
		if d == nil {
			return nil, fmt.Errorf("game: encounter %s: unknown enemy %q", def.ID, id)
		}
		defs = append(defs, d)
	}
	for i := 0; i < def.RandomEnemies; i++ {
		if d := cat.Enemies.SpawnRandom(rng); d != nil {
			defs = append(defs, d)
		}
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("game: encounter %s has no enemies", def.ID)
	}
	return entity.NewLineup(defs), nil
}

// battleMode runs one encounter session.
type battleMode struct {
	def       *gamedata.EncounterDef
	session   *battle.Session
	selector  *command.Selector
	looks     map[*combat.Actor]ui.Look
	lastPhase battle.Phase
}

func newBattleMode(ctx context.Context, g *Game, def *gamedata.EncounterDef) (*battleMode, error) {
	cfg, err := g.cfg.Battle(def.Pacing)
	if err != nil {
		return nil, fmt.Errorf("game: encounter %s: %w", def.ID, err)
	}
	lineup, err := buildLineup(g.catalog, def, g.rng)
	if err != nil {
		return nil, err
	}

	sel := command.New(g.catalog.Abilities, g.catalog.Item, g.party.Inventory, g.cues)
	s := battle.NewSession(cfg, g.party.Setup(lineup, g.catalog.Item), battle.Collaborators{
		Selector: sel,
		Decider:  ai.NewDecider(g.catalog.Abilities),
		Rewards:  g.party,
		Cues:     g.cues,
		Logger:   g.logger,
	})

	if def.Script != "" {
		sc, err := script.Load(def.Script)
		if err != nil {
			g.logger.Printf("Warning: encounter %s runs without its script: %v", def.ID, err)
		} else {
			sc.SetLogger(g.logger)
			sc.Attach(s)
		}
	}

	if !s.Start(ctx) {
		_ = s.Close()
		return nil, fmt.Errorf("game: encounter %s could not start", def.ID)
	}

	m := &battleMode{
		def:       def,
		session:   s,
		selector:  sel,
		looks:     make(map[*combat.Actor]ui.Look),
		lastPhase: s.Phase(),
	}
	for i, a := range s.Characters() {
		if i < len(g.party.Members) {
			c := g.party.Members[i]
			m.looks[a] = ui.Look{Symbol: c.Symbol, Color: c.Color()}
		}
	}
	for i, a := range s.Enemies() {
		m.looks[a] = ui.Look{Symbol: lineup[i].Symbol, Color: lineup[i].Color()}
	}
	return m, nil
}

func (m *battleMode) Name() string  { return "battle" }
func (m *battleMode) Overlay() bool { return false }

func (m *battleMode) Update(g *Game, dt time.Duration, in input.Frame) {
	m.session.Update(dt, in)
	switch m.session.TakeRequest() {
	case battle.RequestPause:
		g.push(pauseMode{})
		return
	case battle.RequestQuit:
		g.Stop()
		return
	}

	// A retry replays the battle; items spent in the lost attempt return.
	phase := m.session.Phase()
	if m.lastPhase == battle.PhaseDefeat && phase == battle.PhaseInitial {
		g.party.Inventory.Rollback()
	}
	m.lastPhase = phase

	if !m.session.Done() {
		return
	}
	outcome := m.session.Result()
	g.pop()

	switch {
	case outcome.Aborted:
		g.setNotice("The battle could not begin.")
	case outcome.Victory:
		g.setNotice(fmt.Sprintf("%s cleared.", m.def.Name))
	case outcome.Decision == finish.OptionRestart:
		g.restoreSave()
	case outcome.Decision == finish.OptionQuit:
		g.Stop()
	}
}

// Close tears the session down, delivering a victory ledger to the party.
func (m *battleMode) Close(g *Game) {
	if err := m.session.Close(); err != nil {
		g.logger.Printf("Warning: %v", err)
		g.setNotice(err.Error())
	}
	if !m.session.Result().Victory {
		g.party.Inventory.Rollback()
	}
	m.looks = nil
}

func (m *battleMode) look(a *combat.Actor) ui.Look {
	return m.looks[a]
}

func (m *battleMode) Draw(r *ui.Renderer) {
	r.SetLooks(m.look)
	r.DrawBattle(m.def.Name, m.session, m.selector)
}
