// Package script runs tengo encounter scripts as battle hooks.
//
// A script may define on_init(engine, state) and on_update(engine, state,
// dt_ms). state is a map that survives between calls. engine exposes:
//
//	announce(msg)               add a line to the battle log
//	elapsed_ms()                battle time so far
//	phase()                     session phase name
//	turns()                     actions executed so far
//	alive(side)                 valid actors of "character" or "enemy"
//	hp(side, index)             vitality of an actor, -1 if out of range
//	damage(side, index, amount) returns vitality actually lost
//	heal(side, index, amount)   returns vitality actually restored
package script

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/samdwyer/bandbattle/internal/battle"
	"github.com/samdwyer/bandbattle/internal/gamedata"
)

// Script is a compiled encounter script. It is not safe for concurrent use;
// the session tick is its only caller.
type Script struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	hasInit  bool
	hasTick  bool
	failed   bool
	logger   *log.Logger
}

var definition = regexp.MustCompile(`(?m)^\s*(on_init|on_update)\s*:=`)

// dispatch builds the lifecycle switch for the hooks src defines. Calling an
// undefined function is a compile error, so absent hooks are left out.
func dispatch(hasInit, hasTick bool) string {
	var b strings.Builder
	b.WriteString("\n")
	if hasInit {
		b.WriteString("if __phase == \"init\" { on_init(__engine, __state) }\n")
	}
	if hasTick {
		b.WriteString("if __phase == \"update\" { on_update(__engine, __state, __dt_ms) }\n")
	}
	return b.String()
}

// Compile prepares src for running. name is only used in diagnostics.
func Compile(name string, src []byte) (*Script, error) {
	sc := &Script{
		name:   name,
		state:  &tengo.Map{Value: map[string]tengo.Object{}},
		logger: log.Default(),
	}
	for _, m := range definition.FindAllSubmatch(src, -1) {
		switch string(m[1]) {
		case "on_init":
			sc.hasInit = true
		case "on_update":
			sc.hasTick = true
		}
	}

	full := string(src) + dispatch(sc.hasInit, sc.hasTick)
	s := tengo.NewScript([]byte(full))
	_ = s.Add("__phase", "")
	_ = s.Add("__engine", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	_ = s.Add("__dt_ms", 0)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	sc.compiled = compiled
	return sc, nil
}

// Load reads a script from the game data and compiles it.
func Load(name string) (*Script, error) {
	src, err := gamedata.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return Compile(name, src)
}

// SetLogger replaces the logger used for runtime errors.
func (sc *Script) SetLogger(l *log.Logger) {
	if l != nil {
		sc.logger = l
	}
}

// Name returns the script name.
func (sc *Script) Name() string { return sc.name }

// Failed reports whether a runtime error disabled the script.
func (sc *Script) Failed() bool { return sc.failed }

// State returns the value stored under key in the script state, converted
// to a Go value, or nil.
func (sc *Script) State(key string) any {
	v, ok := sc.state.Value[key]
	if !ok {
		return nil
	}
	return tengo.ToInterface(v)
}

// InitHook returns a hook that runs on_init.
func (sc *Script) InitHook() battle.InitHook {
	if !sc.hasInit {
		return nil
	}
	return func(s *battle.Session) {
		sc.run(s, "init", 0)
	}
}

// UpdateHook returns a hook that runs on_update every tick.
func (sc *Script) UpdateHook() battle.UpdateHook {
	if !sc.hasTick {
		return nil
	}
	return func(s *battle.Session, dt time.Duration) {
		sc.run(s, "update", dt)
	}
}

// Attach registers both hooks on the session.
func (sc *Script) Attach(s *battle.Session) {
	s.OnInitialize(sc.InitHook())
	s.OnUpdate(sc.UpdateHook())
}

func (sc *Script) run(s *battle.Session, phase string, dt time.Duration) {
	if sc.failed {
		return
	}
	err := sc.runPhase(phase, engine(s), dt)
	if err != nil {
		sc.failed = true
		sc.logger.Printf("Warning: script %s disabled after %s error: %v", sc.name, phase, err)
	}
}

func (sc *Script) runPhase(phase string, eng *tengo.ImmutableMap, dt time.Duration) error {
	if err := sc.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := sc.compiled.Set("__engine", eng); err != nil {
		return err
	}
	if err := sc.compiled.Set("__state", sc.state); err != nil {
		return err
	}
	if err := sc.compiled.Set("__dt_ms", dt.Milliseconds()); err != nil {
		return err
	}
	return sc.compiled.Run()
}
