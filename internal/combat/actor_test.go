package combat

import (
	"io"
	"log"
	"testing"
	"time"
)

func init() {
	SetLogger(log.New(io.Discard, "", 0))
}

// mockAction is a test implementation of the Action interface.
type mockAction struct {
	warmUp    time.Duration
	execution time.Duration
	effect    func(user *Actor)
	executed  int
	cancelled int
}

func (m *mockAction) Name() string                 { return "mock" }
func (m *mockAction) WarmUpTime() time.Duration    { return m.warmUp }
func (m *mockAction) ExecutionTime() time.Duration { return m.execution }
func (m *mockAction) Cancel()                      { m.cancelled++ }
func (m *mockAction) Execute(user *Actor) bool {
	m.executed++
	if m.effect != nil {
		m.effect(user)
	}
	return true
}

// mockObserver records actor notifications.
type mockObserver struct {
	queue    ReadyQueue
	deaths   []*Actor
	commands []*Actor
	decide   func(a *Actor) Action
}

func (o *mockObserver) NotifyReady(a *Actor) bool { return o.queue.Push(a) }
func (o *mockObserver) NotifyDeath(a *Actor) bool {
	o.deaths = append(o.deaths, a)
	o.queue.Remove(a)
	return true
}
func (o *mockObserver) NotifyCommandNeeded(a *Actor) { o.commands = append(o.commands, a) }
func (o *mockObserver) DecideAction(a *Actor) Action {
	if o.decide == nil {
		return nil
	}
	return o.decide(a)
}

func newTestActor(side Side, obs Observer) *Actor {
	a := NewActor(Spec{Name: "test", Side: side, Agility: 10, HP: 20, DyingTime: 100 * time.Millisecond})
	a.Bind(0, obs)
	a.SetIdleTime(time.Second)
	return &a
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateInvalid, "invalid"},
		{StateIdle, "idle"},
		{StateCommand, "command"},
		{StateWarmUp, "warm_up"},
		{StateReady, "ready"},
		{StateActing, "acting"},
		{StateDying, "dying"},
		{StateDead, "dead"},
		{StateParalyzed, "paralyzed"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.expected)
		}
	}
}

func TestCharacterTurnCycle(t *testing.T) {
	obs := &mockObserver{}
	a := newTestActor(SideCharacter, obs)

	if !a.ChangeState(StateIdle) {
		t.Fatal("ChangeState(Idle) from invalid failed")
	}
	if a.Clock().Target() != time.Second {
		t.Errorf("idle clock target = %v, want 1s", a.Clock().Target())
	}

	a.Update(time.Second)
	if a.State() != StateCommand {
		t.Fatalf("after idle expiry state = %s, want command", a.State())
	}
	if len(obs.commands) != 1 || obs.commands[0] != a {
		t.Errorf("NotifyCommandNeeded not called once: %v", obs.commands)
	}

	act := &mockAction{warmUp: 200 * time.Millisecond, execution: 300 * time.Millisecond}
	if !a.SetAction(act) {
		t.Fatal("SetAction in command state failed")
	}
	a.ChangeState(StateWarmUp)
	if a.Clock().Target() != act.warmUp {
		t.Errorf("warm-up target = %v, want %v", a.Clock().Target(), act.warmUp)
	}

	a.Update(200 * time.Millisecond)
	if a.State() != StateReady {
		t.Fatalf("after warm-up state = %s, want ready", a.State())
	}
	if obs.queue.Front() != a {
		t.Error("ready actor was not queued")
	}

	a.ChangeState(StateActing)
	if act.executed != 1 {
		t.Errorf("Execute called %d times, want 1", act.executed)
	}
	a.Update(300 * time.Millisecond)
	if a.State() != StateIdle {
		t.Errorf("after execution state = %s, want idle", a.State())
	}
	if a.Action() != nil {
		t.Error("action should be cleared once resolved")
	}
	if act.cancelled != 0 {
		t.Error("executed action must not be cancelled")
	}
}

func TestPreselectedCommandSkipsCommandState(t *testing.T) {
	obs := &mockObserver{}
	a := newTestActor(SideCharacter, obs)
	a.ChangeState(StateIdle)

	act := &mockAction{warmUp: 100 * time.Millisecond}
	if !a.SetAction(act) {
		t.Fatal("SetAction while idle failed")
	}
	a.Update(time.Second)
	if a.State() != StateWarmUp {
		t.Errorf("state = %s, want warm_up", a.State())
	}
	if len(obs.commands) != 0 {
		t.Error("command should not be requested for a preselected action")
	}
}

func TestEnemyDecidesOnIdleExpiry(t *testing.T) {
	act := &mockAction{warmUp: 50 * time.Millisecond}
	obs := &mockObserver{decide: func(*Actor) Action { return act }}
	a := newTestActor(SideEnemy, obs)
	a.ChangeState(StateIdle)

	a.Update(time.Second)
	if a.State() != StateWarmUp {
		t.Fatalf("state = %s, want warm_up", a.State())
	}
	if a.Action() != act {
		t.Error("decided action not assigned")
	}
}

func TestEnemyWithoutDecisionIdlesAgain(t *testing.T) {
	obs := &mockObserver{}
	a := newTestActor(SideEnemy, obs)
	a.ChangeState(StateIdle)

	a.Update(time.Second)
	if a.State() != StateIdle {
		t.Fatalf("state = %s, want idle", a.State())
	}
	if a.Clock().IsExpired() {
		t.Error("idle clock should be rearmed")
	}
}

func TestReenteringStateIsNoop(t *testing.T) {
	a := newTestActor(SideCharacter, &mockObserver{})
	a.ChangeState(StateIdle)
	a.Clock().Advance(300 * time.Millisecond)

	if a.ChangeState(StateIdle) {
		t.Error("ChangeState to the current state should report false")
	}
	if a.Clock().Elapsed() != 300*time.Millisecond {
		t.Error("re-entering a state must not rearm the clock")
	}
}

func TestWarmUpRequiresAction(t *testing.T) {
	a := newTestActor(SideCharacter, &mockObserver{})
	a.ChangeState(StateIdle)
	if a.ChangeState(StateWarmUp) {
		t.Error("warm-up without an action should be rejected")
	}
	if a.State() != StateIdle {
		t.Errorf("state = %s, want idle", a.State())
	}
}

func TestDeathCancelsActionAndNotifies(t *testing.T) {
	obs := &mockObserver{}
	a := newTestActor(SideCharacter, obs)
	a.ChangeState(StateIdle)
	act := &mockAction{warmUp: time.Second}
	a.SetAction(act)
	a.Update(time.Second)

	if got := a.TakeDamage(500); got != 20 {
		t.Errorf("TakeDamage() = %d, want 20", got)
	}
	if a.State() != StateDying {
		t.Fatalf("state = %s, want dying", a.State())
	}
	if act.cancelled != 1 {
		t.Errorf("Cancel called %d times, want 1", act.cancelled)
	}
	if len(obs.deaths) != 1 {
		t.Errorf("NotifyDeath called %d times, want 1", len(obs.deaths))
	}
	if !a.IsAlive() || a.IsValid() {
		t.Error("dying actor should be alive but not valid")
	}

	if a.TakeDamage(5) != 0 {
		t.Error("dying actor should not take more damage")
	}

	a.Update(100 * time.Millisecond)
	if a.State() != StateDead {
		t.Fatalf("state = %s, want dead", a.State())
	}
	if a.IsAlive() {
		t.Error("dead actor reported alive")
	}
	if a.ChangeState(StateIdle) {
		t.Error("dead actor left the dead state")
	}
}

func TestActionKillingItsUser(t *testing.T) {
	obs := &mockObserver{}
	a := newTestActor(SideCharacter, obs)
	a.ChangeState(StateIdle)
	act := &mockAction{
		execution: time.Second,
		effect:    func(user *Actor) { user.TakeDamage(user.HP()) },
	}
	a.SetAction(act)
	a.Update(time.Second)
	a.Update(0)
	if a.State() != StateReady {
		t.Fatalf("setup: state = %s, want ready", a.State())
	}

	if !a.ChangeState(StateActing) {
		t.Fatal("ChangeState(Acting) failed")
	}
	if a.State() != StateDying {
		t.Fatalf("state = %s, want dying", a.State())
	}
	if a.Clock().Target() != 100*time.Millisecond {
		t.Errorf("clock target = %v, want the dying time", a.Clock().Target())
	}
	if act.cancelled != 0 {
		t.Error("executed action must not be cancelled")
	}
	if len(obs.deaths) != 1 {
		t.Errorf("NotifyDeath called %d times, want 1", len(obs.deaths))
	}

	a.Update(100 * time.Millisecond)
	if a.State() != StateDead {
		t.Errorf("state = %s, want dead", a.State())
	}
}

func TestDeathWhileReadyLeavesQueue(t *testing.T) {
	obs := &mockObserver{}
	a := newTestActor(SideEnemy, obs)
	act := &mockAction{}
	obs.decide = func(*Actor) Action { return act }
	a.ChangeState(StateIdle)
	a.Update(time.Second)
	a.Update(0)
	if a.State() != StateReady || obs.queue.Len() != 1 {
		t.Fatalf("setup: state=%s queue=%d", a.State(), obs.queue.Len())
	}

	a.TakeDamage(100)
	if obs.queue.Len() != 0 {
		t.Error("dead actor still queued")
	}
	if act.cancelled != 1 {
		t.Error("queued action was not cancelled")
	}
}

func TestHeal(t *testing.T) {
	a := newTestActor(SideCharacter, &mockObserver{})
	a.ChangeState(StateIdle)
	a.TakeDamage(5)

	if got := a.Heal(10); got != 5 {
		t.Errorf("Heal() = %d, want 5", got)
	}
	if a.HP() != a.MaxHP() {
		t.Errorf("HP = %d, want %d", a.HP(), a.MaxHP())
	}
	if a.Heal(-3) != 0 {
		t.Error("negative heal should be ignored")
	}
}

func TestActorReset(t *testing.T) {
	a := newTestActor(SideCharacter, &mockObserver{})
	a.ChangeState(StateIdle)
	a.TakeDamage(100)
	a.Update(time.Second)

	a.Reset()
	if a.State() != StateInvalid {
		t.Errorf("state after Reset = %s, want invalid", a.State())
	}
	if a.HP() != 20 {
		t.Errorf("HP after Reset = %d, want 20", a.HP())
	}
	if !a.ChangeState(StateIdle) {
		t.Error("reset actor should be able to enter idle again")
	}
}

func TestNonPositiveAgilityClamped(t *testing.T) {
	a := NewActor(Spec{Name: "slow", Agility: 0, HP: 1})
	if a.Agility() != 1 {
		t.Errorf("Agility() = %d, want 1", a.Agility())
	}
}
