package game

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/bandbattle/internal/audio"
	"github.com/samdwyer/bandbattle/internal/entity"
	"github.com/samdwyer/bandbattle/internal/gamedata"
	"github.com/samdwyer/bandbattle/internal/input"
	"github.com/samdwyer/bandbattle/internal/telemetry"
	"github.com/samdwyer/bandbattle/internal/ui"
)

// maxStep caps the time a single tick may simulate, so a stalled terminal
// does not fast-forward the battle.
const maxStep = 250 * time.Millisecond

// Game holds the entire game state.
type Game struct {
	cfg      Config
	logger   *log.Logger
	screen   *ui.Screen
	renderer *ui.Renderer
	catalog  *gamedata.Catalog
	party    *entity.Party
	stack    Stack
	rng      *rand.Rand
	ctx      context.Context

	cues       audio.Player
	closeAudio func()
	watcher    *gamedata.Watcher

	notice    string
	running   bool
	closeOnce sync.Once
}

// New loads the game data and opens the terminal.
func New(ctx context.Context, cfg Config) (*Game, error) {
	if cfg.DataDir != "" {
		gamedata.SetDir(cfg.DataDir)
	}
	catalog, err := gamedata.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	return newGame(cfg, screen, catalog), nil
}

func newGame(cfg Config, screen *ui.Screen, catalog *gamedata.Catalog) *Game {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := log.Default()
	cues, closeAudio := audio.New(cfg.Audio, cfg.Volume, logger)

	g := &Game{
		cfg:        cfg,
		logger:     logger,
		screen:     screen,
		renderer:   ui.NewRenderer(screen),
		catalog:    catalog,
		rng:        rand.New(rand.NewSource(seed)),
		ctx:        context.Background(),
		cues:       cues,
		closeAudio: closeAudio,
		running:    true,
	}
	g.party = entity.NewParty(catalog.Party, catalog.Class)
	g.party.Inventory.SetLogger(logger)
	return g
}

// SetLogger replaces the logger used by the game and its battles.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
		g.party.Inventory.SetLogger(l)
	}
}

// start pushes the title menu, and the configured encounter if any.
func (g *Game) start(ctx context.Context) {
	g.ctx = ctx
	g.stack.Push(&titleMode{g: g})
	if g.cfg.Encounter != "" {
		if err := g.StartEncounter(g.cfg.Encounter); err != nil {
			g.logger.Printf("Warning: %v", err)
			g.setNotice(err.Error())
		}
	}
}

// Run executes the main game loop until the player quits or ctx ends.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	_, initSpan := tracer.Start(ctx, "game.init")
	g.start(ctx)
	initSpan.SetAttributes(
		attribute.Int("party.size", len(g.party.Members)),
		attribute.Int("encounters", len(g.catalog.Encounters)),
		attribute.String("pacing", g.cfg.Pacing.String()),
		attribute.Int("fps", g.cfg.FPS),
		attribute.Bool("data_dir", g.cfg.DataDir != ""),
	)
	initSpan.End()

	if g.cfg.DataDir != "" {
		w, err := gamedata.NewWatcher(g.cfg.DataDir)
		if err != nil {
			g.logger.Printf("Warning: data files will not be reloaded: %v", err)
		} else {
			g.watcher = w
		}
	}

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 16)
	go g.pollEvents(events, done)

	ticker := time.NewTicker(g.cfg.FrameTime())
	defer ticker.Stop()

	last := time.Now()
	var frame input.Frame
	g.draw()
	for g.running {
		select {
		case <-ctx.Done():
			g.running = false
		case ev, ok := <-events:
			if !ok {
				g.running = false
				break
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				frame.AddKey(ev)
			case *tcell.EventResize:
				g.screen.Sync()
			}
		case name := <-g.watchEvents():
			g.reload(ctx, name)
		case err := <-g.watchErrors():
			g.logger.Printf("Warning: data watcher: %v", err)
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			g.step(dt, frame)
			frame = input.Frame{}
			g.draw()
		}
	}
	return nil
}

// pollEvents forwards terminal events until the screen is closed.
func (g *Game) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (g *Game) watchEvents() <-chan string {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Events
}

func (g *Game) watchErrors() <-chan error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Errors
}

// step advances the top mode by one tick.
func (g *Game) step(dt time.Duration, in input.Frame) {
	if dt > maxStep {
		dt = maxStep
	}
	top := g.stack.Top()
	if top == nil {
		g.running = false
		return
	}
	top.Update(g, dt, in)
}

func (g *Game) draw() {
	g.renderer.Clear()
	g.stack.Draw(g.renderer)
	g.renderer.Show()
}

func (g *Game) push(m Mode) {
	g.stack.Push(m)
}

// pop removes the top mode and releases what it holds.
func (g *Game) pop() {
	m := g.stack.Pop()
	if c, ok := m.(closer); ok {
		c.Close(g)
	}
}

// StartEncounter begins the encounter with the given id on top of the
// current mode.
func (g *Game) StartEncounter(id string) error {
	def := g.catalog.Encounter(id)
	if def == nil {
		return fmt.Errorf("game: unknown encounter %q", id)
	}
	if g.party.AliveMemberCount() == 0 {
		g.logger.Printf("Warning: the whole party is down, members rejoin with 1 HP")
	}
	m, err := newBattleMode(g.ctx, g, def)
	if err != nil {
		return err
	}
	g.notice = ""
	g.push(m)
	return nil
}

// restoreSave replaces the party with its starting state.
func (g *Game) restoreSave() {
	g.party = entity.NewParty(g.catalog.Party, g.catalog.Class)
	g.party.Inventory.SetLogger(g.logger)
	g.setNotice("Save restored.")
}

// reload re-reads the data files after an edit. Running battles keep the
// data they started with.
func (g *Game) reload(ctx context.Context, name string) {
	catalog, err := gamedata.LoadCatalog(ctx)
	if err != nil {
		g.logger.Printf("Warning: reload after %s failed: %v", name, err)
		g.setNotice("reload failed: " + name)
		return
	}
	g.catalog = catalog
	g.setNotice("reloaded " + name)
}

func (g *Game) setNotice(msg string) { g.notice = msg }

// Stop ends the main loop after the current tick.
func (g *Game) Stop() { g.running = false }

// Running reports whether the main loop continues.
func (g *Game) Running() bool { return g.running }

// Close releases the terminal, audio and data watcher. It is safe to call
// more than once.
func (g *Game) Close() {
	g.closeOnce.Do(func() {
		for g.stack.Len() > 0 {
			g.pop()
		}
		if g.watcher != nil {
			if err := g.watcher.Close(); err != nil {
				g.logger.Printf("Warning: closing data watcher: %v", err)
			}
		}
		if g.closeAudio != nil {
			g.closeAudio()
		}
		if g.screen != nil {
			g.screen.Close()
		}
	})
}
