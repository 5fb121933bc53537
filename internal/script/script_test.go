package script

import (
	"bytes"
	"context"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/samdwyer/bandbattle/internal/battle"
	"github.com/samdwyer/bandbattle/internal/combat"
	"github.com/samdwyer/bandbattle/internal/input"
)

var quiet = log.New(io.Discard, "", 0)

func init() {
	combat.SetLogger(quiet)
}

func newSession() *battle.Session {
	cfg := battle.DefaultConfig()
	cfg.IntroTime = 0
	cfg.Seed = 3
	setup := battle.Setup{
		Characters: []combat.Spec{{Name: "Kael", Agility: 10, HP: 30}},
		Enemies: []battle.EnemySetup{
			{Spec: combat.Spec{Name: "Goblin A", Agility: 10, HP: 20}},
			{Spec: combat.Spec{Name: "Goblin B", Agility: 10, HP: 20}},
		},
	}
	return battle.NewSession(cfg, setup, battle.Collaborators{Logger: quiet})
}

func mustCompile(t *testing.T, src string) *Script {
	t.Helper()
	sc, err := Compile("test", []byte(src))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	sc.SetLogger(quiet)
	return sc
}

func tick(s *battle.Session, n int) {
	for i := 0; i < n; i++ {
		s.Update(16*time.Millisecond, input.Frame{})
	}
}

func TestCompileDetectsHooks(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantInit bool
		wantTick bool
	}{
		{"both", "on_init := func(engine, state) {}\non_update := func(engine, state, dt_ms) {}", true, true},
		{"init only", "on_init := func(engine, state) {}", true, false},
		{"update only", "  on_update := func(engine, state, dt_ms) {}", false, true},
		{"neither", "x := 1", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := mustCompile(t, tt.src)
			if got := sc.InitHook() != nil; got != tt.wantInit {
				t.Errorf("InitHook() present = %v, want %v", got, tt.wantInit)
			}
			if got := sc.UpdateHook() != nil; got != tt.wantTick {
				t.Errorf("UpdateHook() present = %v, want %v", got, tt.wantTick)
			}
		})
	}
}

func TestCompileError(t *testing.T) {
	_, err := Compile("broken", []byte("on_init := func("))
	if err == nil {
		t.Fatal("Compile() succeeded for invalid source")
	}
	if !strings.Contains(err.Error(), "script: compile broken") {
		t.Errorf("error = %q, want script name prefix", err)
	}
}

func TestInitAnnounces(t *testing.T) {
	sc := mustCompile(t, `
on_init := func(engine, state) {
	engine.announce("Ambush!")
	state.enemies = engine.alive("enemy")
	state.hp = engine.hp("character", 0)
	state.missing = engine.hp("dragon", 0)
}
`)
	s := newSession()
	sc.Attach(s)
	s.Start(context.Background())

	msgs := s.Messages()
	if len(msgs) != 1 || msgs[0] != "Ambush!" {
		t.Errorf("Messages() = %v, want [Ambush!]", msgs)
	}
	if got := sc.State("enemies"); got != int64(2) {
		t.Errorf("state.enemies = %v, want 2", got)
	}
	if got := sc.State("hp"); got != int64(30) {
		t.Errorf("state.hp = %v, want 30", got)
	}
	if got := sc.State("missing"); got != int64(-1) {
		t.Errorf("state.missing = %v, want -1", got)
	}
}

func TestUpdateKeepsState(t *testing.T) {
	sc := mustCompile(t, `
on_init := func(engine, state) {
	state.ticks = 0
}
on_update := func(engine, state, dt_ms) {
	state.ticks += 1
	state.last_dt = dt_ms
}
`)
	s := newSession()
	sc.Attach(s)
	s.Start(context.Background())
	tick(s, 3)

	if got := sc.State("ticks"); got != int64(3) {
		t.Errorf("state.ticks = %v, want 3", got)
	}
	if got := sc.State("last_dt"); got != int64(16) {
		t.Errorf("state.last_dt = %v, want 16", got)
	}
	if sc.State("unset") != nil {
		t.Error("State() of an unknown key should be nil")
	}
}

func TestDamageOnlyWhileActorsRun(t *testing.T) {
	sc := mustCompile(t, `
on_init := func(engine, state) {
	state.early = engine.damage("enemy", 0, 5)
}
on_update := func(engine, state, dt_ms) {
	if engine.phase() == "normal" && !state.done {
		state.dealt = engine.damage("enemy", 0, 5)
		state.healed = engine.heal("enemy", 0, 2)
		state.done = true
	}
}
`)
	s := newSession()
	sc.Attach(s)
	s.Start(context.Background())
	tick(s, 2)

	if got := sc.State("early"); got != int64(0) {
		t.Errorf("damage before the battle = %v, want 0", got)
	}
	if got := sc.State("dealt"); got != int64(5) {
		t.Errorf("damage = %v, want 5", got)
	}
	if got := sc.State("healed"); got != int64(2) {
		t.Errorf("heal = %v, want 2", got)
	}
	if hp := s.Enemies()[0].HP(); hp != 17 {
		t.Errorf("enemy HP = %d, want 17", hp)
	}
}

func TestRuntimeErrorDisablesScript(t *testing.T) {
	var buf bytes.Buffer
	sc := mustCompile(t, `
on_update := func(engine, state, dt_ms) {
	engine.explode()
}
`)
	sc.SetLogger(log.New(&buf, "", 0))
	s := newSession()
	sc.Attach(s)
	s.Start(context.Background())
	tick(s, 3)

	if !sc.Failed() {
		t.Fatal("Failed() = false after a runtime error")
	}
	if n := strings.Count(buf.String(), "Warning: script test disabled"); n != 1 {
		t.Errorf("logged %d warnings, want 1: %q", n, buf.String())
	}
}

func TestLoadEncounterScript(t *testing.T) {
	sc, err := Load("ambush.tengo")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if sc.Name() != "ambush.tengo" {
		t.Errorf("Name() = %q", sc.Name())
	}
	sc.SetLogger(quiet)

	s := newSession()
	sc.Attach(s)
	s.Start(context.Background())
	tick(s, 5)

	if sc.Failed() {
		t.Fatal("ambush script failed")
	}
	if msgs := s.Messages(); len(msgs) == 0 || msgs[0] != "Goblins leap from the brush!" {
		t.Errorf("Messages() = %v", msgs)
	}
}

func TestLoadMissingScript(t *testing.T) {
	if _, err := Load("nope.tengo"); err == nil {
		t.Error("Load() of a missing script succeeded")
	}
}
