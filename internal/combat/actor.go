package combat

import (
	"log"
	"time"
)

// State is the scheduling state of a combat participant.
type State int

const (
	// StateInvalid is the state of an actor that has not entered a battle yet.
	StateInvalid State = iota
	// StateIdle - the actor is recovering; its clock runs for the idle duration.
	StateIdle
	// StateCommand - the player is choosing an action for the character.
	StateCommand
	// StateWarmUp - an action is chosen and is being prepared.
	StateWarmUp
	// StateReady - warm-up finished, waiting in the ready queue.
	StateReady
	// StateActing - the action is executing.
	StateActing
	// StateDying - vitality reached zero, the death sequence is playing.
	StateDying
	// StateDead is terminal for the rest of the battle.
	StateDead
	// StateParalyzed is reserved; no transition currently leads here.
	StateParalyzed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateInvalid:
		return "invalid"
	case StateIdle:
		return "idle"
	case StateCommand:
		return "command"
	case StateWarmUp:
		return "warm_up"
	case StateReady:
		return "ready"
	case StateActing:
		return "acting"
	case StateDying:
		return "dying"
	case StateDead:
		return "dead"
	case StateParalyzed:
		return "paralyzed"
	default:
		return "unknown"
	}
}

// IsTimed reports whether the state runs a clock that can expire.
func (s State) IsTimed() bool {
	switch s {
	case StateIdle, StateWarmUp, StateActing, StateDying:
		return true
	default:
		return false
	}
}

// Side tells which party an actor fights for.
type Side int

const (
	// SideCharacter actors are player controlled.
	SideCharacter Side = iota
	// SideEnemy actors are computer controlled.
	SideEnemy
)

// String returns a human-readable side name.
func (s Side) String() string {
	switch s {
	case SideCharacter:
		return "character"
	case SideEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Handle identifies an actor inside its arena. Handles are invalidated
// when the arena is released.
type Handle int

// NoHandle is returned for actors that do not belong to an arena.
const NoHandle Handle = -1

// Stats are the offensive and defensive ratings consumed by action resolvers.
// The scheduler never reads them.
type Stats struct {
	Attack  int
	Defense int
	Magic   int
}

// Action is something an actor does once the scheduler grants it execution.
type Action interface {
	// Name is the display name of the action.
	Name() string
	// WarmUpTime is how long the actor prepares before becoming ready.
	WarmUpTime() time.Duration
	// ExecutionTime is how long the actor stays acting once execution starts.
	ExecutionTime() time.Duration
	// Execute applies the action's effects. It returns false if the action
	// could not take place (for example every target already died).
	Execute(user *Actor) bool
	// Cancel releases anything the action holds. It is called at most once
	// and never after Execute.
	Cancel()
}

// Observer receives the notifications an actor emits while changing state.
// A battle session implements it.
type Observer interface {
	NotifyReady(a *Actor) bool
	NotifyDeath(a *Actor) bool
	NotifyCommandNeeded(a *Actor)
	DecideAction(a *Actor) Action
}

// Spec describes an actor before it enters a battle.
type Spec struct {
	Name      string
	Side      Side
	Agility   int
	HP        int
	MaxHP     int
	Stats     Stats
	Abilities []string
	DyingTime time.Duration
}

// Actor is a single combat participant. Actors live inside an Arena and are
// referenced elsewhere by pointer or Handle; neither outlives the arena.
type Actor struct {
	handle    Handle
	name      string
	side      Side
	agility   int
	hp        int
	maxHP     int
	startHP   int
	stats     Stats
	abilities []string

	state     State
	clock     Clock
	idleTime  time.Duration
	dyingTime time.Duration
	action    Action
	executed  bool

	originX, originY float64

	observer Observer
}

// NewActor builds an actor in the invalid state.
func NewActor(spec Spec) Actor {
	maxHP := spec.MaxHP
	if maxHP <= 0 {
		maxHP = spec.HP
	}
	hp := spec.HP
	if hp > maxHP {
		hp = maxHP
	}
	agility := spec.Agility
	if agility <= 0 {
		logger.Printf("combat: actor %q has non-positive agility %d, using 1", spec.Name, spec.Agility)
		agility = 1
	}
	return Actor{
		handle:    NoHandle,
		name:      spec.Name,
		side:      spec.Side,
		agility:   agility,
		hp:        hp,
		maxHP:     maxHP,
		startHP:   hp,
		stats:     spec.Stats,
		abilities: append([]string(nil), spec.Abilities...),
		dyingTime: spec.DyingTime,
		state:     StateInvalid,
	}
}

// Handle returns the actor's arena handle.
func (a *Actor) Handle() Handle { return a.handle }

// Name returns the display name.
func (a *Actor) Name() string { return a.name }

// Side returns the actor's party.
func (a *Actor) Side() Side { return a.side }

// IsCharacter reports whether the actor is player controlled.
func (a *Actor) IsCharacter() bool { return a.side == SideCharacter }

// Agility returns the speed rating.
func (a *Actor) Agility() int { return a.agility }

// HP returns current vitality.
func (a *Actor) HP() int { return a.hp }

// MaxHP returns maximum vitality.
func (a *Actor) MaxHP() int { return a.maxHP }

// Stats returns the resolver ratings.
func (a *Actor) Stats() Stats { return a.stats }

// Abilities returns the ability ids the actor may choose from.
func (a *Actor) Abilities() []string { return a.abilities }

// State returns the current scheduling state.
func (a *Actor) State() State { return a.state }

// Clock exposes the actor's timer. Presentation code should only read it.
func (a *Actor) Clock() *Clock { return &a.clock }

// Fraction returns how far the current state's timer has progressed.
func (a *Actor) Fraction() float64 { return a.clock.FractionComplete() }

// IdleTime returns the idle duration derived from agility.
func (a *Actor) IdleTime() time.Duration { return a.idleTime }

// SetIdleTime sets the idle duration. It takes effect the next time the
// actor enters the idle state.
func (a *Actor) SetIdleTime(d time.Duration) {
	if d < 0 {
		d = 0
	}
	a.idleTime = d
}

// Origin returns the screen-space origin assigned by the session.
func (a *Actor) Origin() (float64, float64) { return a.originX, a.originY }

// SetOrigin stores the screen-space origin.
func (a *Actor) SetOrigin(x, y float64) {
	a.originX = x
	a.originY = y
}

// Action returns the action the actor is preparing or executing, or nil.
func (a *Actor) Action() Action { return a.action }

// IsAlive is true for every actor that is not dead.
func (a *Actor) IsAlive() bool { return a.state != StateDead }

// IsValid is true for living actors that are not in their death sequence.
func (a *Actor) IsValid() bool { return a.IsAlive() && a.state != StateDying }

// CanSelectCommand reports whether a command may be chosen for the actor now.
func (a *Actor) CanSelectCommand() bool {
	return a.side == SideCharacter && (a.state == StateIdle || a.state == StateCommand)
}

// Bind attaches the actor to an arena slot and an observer.
func (a *Actor) Bind(h Handle, obs Observer) {
	a.handle = h
	a.observer = obs
}

// SetAction assigns the action the actor will perform. A previously assigned
// action that never executed is cancelled first. Only actors that may select a
// command accept a new action.
func (a *Actor) SetAction(act Action) bool {
	if act == nil {
		logger.Printf("combat: actor %q received nil action", a.name)
		return false
	}
	if a.state != StateIdle && a.state != StateCommand {
		logger.Printf("combat: actor %q cannot take an action while %s", a.name, a.state)
		return false
	}
	a.releaseAction()
	a.action = act
	a.executed = false
	return true
}

// CancelAction cancels and clears any action that has not executed yet.
func (a *Actor) CancelAction() {
	a.releaseAction()
}

func (a *Actor) releaseAction() {
	if a.action != nil && !a.executed {
		a.action.Cancel()
	}
	a.action = nil
	a.executed = false
}

// ChangeState moves the actor to a new state and arms its clock with the
// duration that state requires. Re-entering the current state, leaving the
// dead state, or entering the invalid state are reported and ignored.
func (a *Actor) ChangeState(next State) bool {
	if a.state == next {
		logger.Printf("combat: actor %q was already in state %s", a.name, next)
		return false
	}
	if a.state == StateDead {
		logger.Printf("combat: actor %q is dead and cannot enter %s", a.name, next)
		return false
	}
	if next == StateInvalid {
		logger.Printf("combat: actor %q cannot return to the invalid state", a.name)
		return false
	}
	if next == StateWarmUp && a.action == nil {
		logger.Printf("combat: actor %q has no action to warm up", a.name)
		return false
	}

	a.state = next
	switch next {
	case StateIdle:
		a.releaseAction()
		a.arm(a.idleTime)
	case StateCommand:
		a.disarm()
	case StateWarmUp:
		a.arm(a.action.WarmUpTime())
	case StateReady:
		a.disarm()
		if a.observer != nil {
			a.observer.NotifyReady(a)
		}
	case StateActing:
		var exec time.Duration
		if act := a.action; act != nil {
			a.executed = true
			if !act.Execute(a) {
				logger.Printf("combat: action %q of %q had no effect", act.Name(), a.name)
			}
			// The action may have killed its own user.
			if a.state != StateActing {
				return true
			}
			exec = act.ExecutionTime()
		}
		a.arm(exec)
	case StateDying:
		a.releaseAction()
		a.arm(a.dyingTime)
		if a.observer != nil {
			a.observer.NotifyDeath(a)
		}
	case StateDead, StateParalyzed:
		a.disarm()
	}
	return true
}

func (a *Actor) arm(d time.Duration) {
	a.clock.Reset(d)
	a.clock.Run()
}

func (a *Actor) disarm() {
	a.clock.Reset(0)
	a.clock.Pause()
}

// Update advances the actor's clock by dt and performs the transition the
// current state takes on expiry.
func (a *Actor) Update(dt time.Duration) {
	if !a.clock.IsRunning() {
		return
	}
	a.clock.Advance(dt)
	if !a.clock.IsExpired() {
		return
	}

	switch a.state {
	case StateIdle:
		a.finishIdle()
	case StateWarmUp:
		a.ChangeState(StateReady)
	case StateActing:
		a.ChangeState(StateIdle)
	case StateDying:
		a.ChangeState(StateDead)
	}
}

func (a *Actor) finishIdle() {
	if a.side == SideCharacter {
		if a.action != nil {
			a.ChangeState(StateWarmUp)
			return
		}
		a.ChangeState(StateCommand)
		if a.observer != nil {
			a.observer.NotifyCommandNeeded(a)
		}
		return
	}

	var act Action
	if a.observer != nil {
		act = a.observer.DecideAction(a)
	}
	if act == nil {
		logger.Printf("combat: no action decided for %q, idling again", a.name)
		a.arm(a.idleTime)
		return
	}
	a.action = act
	a.executed = false
	a.ChangeState(StateWarmUp)
}

// TakeDamage reduces vitality and returns the amount actually lost.
// Reaching zero starts the death sequence.
func (a *Actor) TakeDamage(amount int) int {
	if amount <= 0 || !a.IsValid() {
		return 0
	}
	actual := amount
	if actual > a.hp {
		actual = a.hp
	}
	a.hp -= actual
	if a.hp == 0 {
		a.ChangeState(StateDying)
	}
	return actual
}

// Heal restores vitality and returns the amount actually restored.
func (a *Actor) Heal(amount int) int {
	if amount <= 0 || !a.IsValid() {
		return 0
	}
	actual := amount
	if a.hp+actual > a.maxHP {
		actual = a.maxHP - a.hp
	}
	a.hp += actual
	return actual
}

// Reset returns the actor to the state it had before entering the battle.
func (a *Actor) Reset() {
	a.releaseAction()
	a.hp = a.startHP
	a.state = StateInvalid
	a.clock = Clock{}
}

var logger = log.Default()

// SetLogger replaces the logger used for actor diagnostics.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}
