package battle

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/bandbattle/internal/audio"
	"github.com/samdwyer/bandbattle/internal/combat"
	"github.com/samdwyer/bandbattle/internal/finish"
	"github.com/samdwyer/bandbattle/internal/input"
	"github.com/samdwyer/bandbattle/internal/telemetry"
)

const maxMessages = 4

// Session is one encounter. It is driven by a single goroutine calling
// Update once per frame; nothing in it is safe for concurrent use.
type Session struct {
	id     string
	cfg    Config
	setup  Setup
	logger *log.Logger
	rng    *rand.Rand
	ctx    context.Context

	arena *combat.Arena
	queue combat.ReadyQueue

	phase          Phase
	lastEnemyDying bool
	pending        []*combat.Actor

	selector   CommandSelector
	decider    Decider
	dialogue   Dialogue
	intro      Sequence
	outro      Sequence
	cues       audio.Player
	supervisor *finish.Supervisor

	initHooks   []InitHook
	updateHooks []UpdateHook

	request  Request
	messages []string
	elapsed  time.Duration
	turns    int
	started  bool
	done     bool
	closed   bool
	outcome  Outcome
}

// NewSession builds the actors for an encounter. The session does nothing
// until Start is called.
func NewSession(cfg Config, setup Setup, c Collaborators) *Session {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Session{
		id:       uuid.NewString(),
		cfg:      cfg,
		setup:    setup,
		logger:   c.Logger,
		rng:      rand.New(rand.NewSource(seed)),
		ctx:      context.Background(),
		selector: c.Selector,
		decider:  c.Decider,
		dialogue: c.Dialogue,
		intro:    c.Intro,
		outro:    c.Outro,
		cues:     c.Cues,
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.selector == nil {
		s.selector = noSelector{}
	}
	if s.intro == nil {
		s.intro = &TimedSequence{Duration: cfg.IntroTime}
	}
	if s.outro == nil {
		s.outro = &TimedSequence{Duration: cfg.OutroTime}
	}
	if s.cues == nil {
		s.cues = audio.Nop{}
	}

	specs := setup.specs()
	for i := range specs {
		if specs[i].DyingTime == 0 {
			specs[i].DyingTime = cfg.DyingTime
		}
	}
	s.arena = combat.NewArena(specs, s)
	assignOrigins(s.arena.Characters(), characterColumn)
	assignOrigins(s.arena.Enemies(), enemyColumn)

	s.supervisor = finish.NewSupervisor(cfg.Finish)
	s.supervisor.SetLogger(s.logger)
	s.supervisor.SetCues(s.cues)
	s.supervisor.SetRewards(c.Rewards)
	return s
}

// OnInitialize registers a hook run once by Start.
func (s *Session) OnInitialize(h InitHook) {
	if h != nil {
		s.initHooks = append(s.initHooks, h)
	}
}

// OnUpdate registers a hook run at the start of every tick.
func (s *Session) OnUpdate(h UpdateHook) {
	if h != nil {
		s.updateHooks = append(s.updateHooks, h)
	}
}

// Start arms every actor and enters the entry sequence. A session without
// characters is aborted and reports Done immediately.
func (s *Session) Start(ctx context.Context) bool {
	if s.started {
		s.logger.Printf("battle: session %s was already started", s.id)
		return false
	}
	s.started = true
	if ctx != nil {
		s.ctx = ctx
	}

	tracer := telemetry.Tracer("battle")
	_, span := tracer.Start(s.ctx, "battle.start")
	span.SetAttributes(
		attribute.String("session.id", s.id),
		attribute.Int("party_size", len(s.arena.Characters())),
		attribute.Int("enemy_count", len(s.arena.Enemies())),
		attribute.String("pacing", s.cfg.Pacing.String()),
	)
	defer span.End()

	if len(s.arena.Characters()) == 0 {
		s.logger.Printf("battle: no characters in the party, aborting session %s", s.id)
		span.SetAttributes(attribute.Bool("aborted", true))
		s.finishWith(Outcome{Aborted: true})
		return false
	}

	s.armActors()
	for _, h := range s.initHooks {
		h(s)
	}
	s.ChangeState(PhaseInitial)
	return true
}

// armActors derives idle durations from agility, enters idle and staggers
// the first turns by up to half an idle period.
func (s *Session) armActors() {
	fastest := s.arena.HighestAgility()
	for _, a := range s.arena.All() {
		idle := s.cfg.IdleTime(a.Agility(), fastest)
		a.SetIdleTime(idle)
		a.ChangeState(combat.StateIdle)
		if half := int64(idle / 2); half > 0 {
			a.Clock().Advance(time.Duration(s.rng.Int63n(half)))
		}
	}
}

// Update runs one tick.
func (s *Session) Update(dt time.Duration, in input.Frame) {
	if s.done || !s.started {
		return
	}

	if in.Quit {
		s.request = RequestQuit
		return
	}
	if in.Pause {
		s.request = RequestPause
		return
	}

	s.elapsed += dt
	for _, h := range s.updateHooks {
		h(s, dt)
	}

	if s.dialogue != nil && s.dialogue.Active() {
		s.dialogue.Update(dt, in)
		if s.dialogue.Active() && s.dialogue.HaltsBattle() {
			return
		}
	}

	switch s.phase {
	case PhaseInitial:
		if s.intro.Update(dt) {
			s.ChangeState(PhaseNormal)
		}
		return
	case PhaseExiting:
		if s.outro.Update(dt) {
			s.finishWith(Outcome{Victory: true})
		}
		return
	case PhaseNormal:
		if s.evaluateTermination() {
			return
		}
		if !s.lastEnemyDying {
			if c := s.characterForKey(in); c != nil {
				s.OpenCommandMenu(c)
			}
		}
		if !s.lastEnemyDying && s.phase == PhaseNormal {
			if c := s.nextPending(); c != nil && s.OpenCommandMenu(c) {
				return
			}
		}
	case PhaseCommand:
		if s.lastEnemyDying {
			s.ChangeState(PhaseNormal)
		} else {
			s.selector.Update(s, dt, in)
		}
	case PhaseEvent:
	case PhaseVictory, PhaseDefeat:
		s.updateOutcome(dt, in)
		return
	}

	if s.lastEnemyDying {
		s.tickDying(dt)
		return
	}

	if s.cfg.Pacing == PacingWait && s.holdForCommand() {
		return
	}

	s.advanceQueue()
	for _, a := range s.arena.All() {
		a.Update(dt)
	}
}

// holdForCommand forces the command menu open for a character waiting on a
// command. A character whose menu cannot open goes back to idle so time keeps
// running.
func (s *Session) holdForCommand() bool {
	for _, c := range s.arena.Characters() {
		if c.State() != combat.StateCommand {
			continue
		}
		if s.phase == PhaseCommand || s.OpenCommandMenu(c) {
			return true
		}
		s.logger.Printf("battle: no command available for %q, returning it to idle", c.Name())
		s.dropPending(c)
		c.ChangeState(combat.StateIdle)
	}
	return false
}

// evaluateTermination switches to an outcome phase when a side has no
// living members and records when the last enemy starts dying.
func (s *Session) evaluateTermination() bool {
	switch {
	case s.arena.CountAlive(combat.SideCharacter) == 0:
		s.ChangeState(PhaseDefeat)
		return true
	case s.arena.CountAlive(combat.SideEnemy) == 0:
		s.ChangeState(PhaseVictory)
		return true
	}
	if !s.lastEnemyDying && s.arena.CountValid(combat.SideEnemy) == 0 {
		s.lastEnemyDying = true
	}
	return false
}

// characterForKey maps the four direction keys to the first four characters.
func (s *Session) characterForKey(in input.Frame) *combat.Actor {
	idx := -1
	switch {
	case in.Up:
		idx = 0
	case in.Down:
		idx = 1
	case in.Left:
		idx = 2
	case in.Right:
		idx = 3
	}
	chars := s.arena.Characters()
	if idx < 0 || idx >= len(chars) {
		return nil
	}
	return chars[idx]
}

// nextPending returns the oldest character still waiting for a command.
func (s *Session) nextPending() *combat.Actor {
	for len(s.pending) > 0 {
		c := s.pending[0]
		if c.State() == combat.StateCommand {
			return c
		}
		s.pending = s.pending[1:]
	}
	return nil
}

func (s *Session) dropPending(a *combat.Actor) {
	for i, p := range s.pending {
		if p == a {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// advanceQueue grants execution to the queue head. Only the head is looked
// at, so no second actor can start acting while it is still acting.
func (s *Session) advanceQueue() {
	head := s.queue.Front()
	if head == nil {
		return
	}
	switch head.State() {
	case combat.StateReady:
		s.traceTurn(head)
		head.ChangeState(combat.StateActing)
		s.turns++
	case combat.StateActing:
	default:
		s.queue.PopFront()
	}
}

func (s *Session) traceTurn(a *combat.Actor) {
	tracer := telemetry.Tracer("battle")
	_, span := tracer.Start(s.ctx, "battle.turn")
	attrs := []attribute.KeyValue{
		attribute.String("session.id", s.id),
		attribute.String("actor", a.Name()),
		attribute.String("side", a.Side().String()),
		attribute.Int("turn", s.turns),
	}
	if act := a.Action(); act != nil {
		attrs = append(attrs, attribute.String("action", act.Name()))
	}
	span.SetAttributes(attrs...)
	span.End()
}

// tickDying lets death sequences finish while everything else is held.
func (s *Session) tickDying(dt time.Duration) {
	for _, a := range s.arena.All() {
		if a.State() == combat.StateDying {
			a.Update(dt)
		}
	}
}

func (s *Session) updateOutcome(dt time.Duration, in input.Frame) {
	s.supervisor.Update(dt, in)
	res, ok := s.supervisor.Result()
	if !ok {
		return
	}
	if res.Victory {
		s.ChangeState(PhaseExiting)
		return
	}
	if res.Option == finish.OptionRetry {
		s.Restart()
		return
	}
	s.finishWith(Outcome{Decision: res.Option})
}

// ChangeState is the only way the session phase changes. Entering the
// current phase is reported and ignored. Entering PhaseCommand without a
// selected character falls back to PhaseNormal.
func (s *Session) ChangeState(next Phase) bool {
	if s.phase == next {
		s.logger.Printf("battle: session was already in phase %s", next)
		return false
	}
	prev := s.phase
	s.phase = next

	switch next {
	case PhaseInitial:
		s.intro.Reset()
	case PhaseNormal:
		if prev == PhaseCommand && s.selector.Active() {
			s.selector.Close()
		}
	case PhaseCommand:
		if s.selector.Selected() == nil {
			s.logger.Printf("battle: no character was selected when entering the command phase")
			s.phase = PhaseNormal
		}
	case PhaseEvent:
	case PhaseVictory:
		for _, c := range s.arena.Characters() {
			c.CancelAction()
		}
		s.selector.CommitInventory()
		s.supervisor.Initialize(s.ctx, true, s.report(true))
	case PhaseDefeat:
		s.supervisor.Initialize(s.ctx, false, s.report(false))
	case PhaseExiting:
		s.outro.Reset()
	default:
		s.logger.Printf("battle: changed to invalid phase %s", next)
	}

	if s.phase != prev {
		tracer := telemetry.Tracer("battle")
		_, span := tracer.Start(s.ctx, "battle.phase")
		span.SetAttributes(
			attribute.String("session.id", s.id),
			attribute.String("from", prev.String()),
			attribute.String("to", s.phase.String()),
		)
		span.End()
	}
	return s.phase == next
}

// report summarizes the battle for the outcome flow. Rewards are only
// collected on victory.
func (s *Session) report(victorious bool) finish.Report {
	var r finish.Report
	for i, c := range s.arena.Characters() {
		m := finish.Member{Name: c.Name(), Alive: c.IsAlive(), HP: c.HP(), MaxHP: c.MaxHP()}
		if i < len(s.setup.Levels) {
			m.Level = s.setup.Levels[i]
		}
		r.Members = append(r.Members, m)
	}
	if !victorious {
		return r
	}
	for _, e := range s.setup.Enemies {
		r.Experience += e.Experience
		r.Currency += e.Currency
	}
	r.Drops = s.setup.rollDrops(s.rng)
	return r
}

// OpenCommandMenu starts command selection for a character that may
// currently choose a command.
func (s *Session) OpenCommandMenu(c *combat.Actor) bool {
	if c == nil {
		s.logger.Printf("battle: OpenCommandMenu received a nil character")
		return false
	}
	if s.phase == PhaseCommand {
		return false
	}
	if !c.CanSelectCommand() {
		return false
	}
	if !s.selector.Open(c) {
		return false
	}
	s.dropPending(c)
	s.cues.Play(audio.CueConfirm)
	return s.ChangeState(PhaseCommand)
}

// NotifyCommandCancel is called by the selector after it closed itself
// without choosing an action.
func (s *Session) NotifyCommandCancel() {
	if s.phase != PhaseCommand {
		s.logger.Printf("battle: command cancel outside the command phase")
		return
	}
	if s.selector.Selected() != nil {
		s.logger.Printf("battle: command cancel while a character is still selected")
		return
	}
	s.ChangeState(PhaseNormal)
}

// NotifyCommandComplete is called by the selector once it assigned an
// action to c. A character waiting in the command state starts warming up;
// one selected ahead of time keeps idling and warms up when idle ends.
func (s *Session) NotifyCommandComplete(c *combat.Actor) {
	if c == nil {
		s.logger.Printf("battle: NotifyCommandComplete received a nil character")
		return
	}
	if c.State() == combat.StateCommand {
		c.ChangeState(combat.StateWarmUp)
	}
	s.dropPending(c)
	s.ChangeState(PhaseNormal)
}

// NotifyReady implements combat.Observer. Duplicates are reported and
// rejected.
func (s *Session) NotifyReady(a *combat.Actor) bool {
	if a == nil {
		s.logger.Printf("battle: NotifyReady received a nil actor")
		return false
	}
	if !s.queue.Push(a) {
		s.logger.Printf("battle: actor %q was already present in the ready queue", a.Name())
		return false
	}
	return true
}

// NotifyDeath implements combat.Observer. It is idempotent.
func (s *Session) NotifyDeath(a *combat.Actor) bool {
	if a == nil {
		s.logger.Printf("battle: NotifyDeath received a nil actor")
		return false
	}
	s.queue.Remove(a)
	s.dropPending(a)

	if s.phase == PhaseCommand {
		s.selector.NotifyActorDeath(a)
		if !s.selector.Active() || s.selector.Selected() == nil {
			s.ChangeState(PhaseNormal)
		}
	}
	if s.phase == PhaseVictory || s.phase == PhaseDefeat {
		s.logger.Printf("battle: actor %q died after the battle was decided", a.Name())
	}
	return true
}

// NotifyCommandNeeded implements combat.Observer.
func (s *Session) NotifyCommandNeeded(a *combat.Actor) {
	if a == nil {
		return
	}
	for _, p := range s.pending {
		if p == a {
			return
		}
	}
	s.pending = append(s.pending, a)
}

// DecideAction implements combat.Observer.
func (s *Session) DecideAction(a *combat.Actor) combat.Action {
	if s.decider == nil {
		return nil
	}
	return s.decider.Decide(s, a)
}

// Restart resets every actor and replays the battle from the entry
// sequence. Retry attempts are still counted by the outcome flow.
func (s *Session) Restart() {
	s.selector.Close()
	for _, a := range s.arena.All() {
		a.Reset()
	}
	s.queue.Clear()
	s.pending = nil
	s.lastEnemyDying = false
	s.messages = nil
	s.turns = 0
	s.armActors()
	s.ChangeState(PhaseInitial)
}

// FreezeTimers pauses every actor clock.
func (s *Session) FreezeTimers() {
	for _, a := range s.arena.All() {
		a.Clock().Pause()
	}
}

// UnfreezeTimers resumes the clocks of actors in timed states. Paralyzed
// actors stay frozen.
func (s *Session) UnfreezeTimers() {
	for _, a := range s.arena.All() {
		if a.State() == combat.StateParalyzed || !a.State().IsTimed() {
			continue
		}
		a.Clock().Run()
	}
}

// Announce appends a line to the battle message log.
func (s *Session) Announce(msg string) {
	s.messages = append(s.messages, msg)
	if len(s.messages) > maxMessages {
		s.messages = s.messages[len(s.messages)-maxMessages:]
	}
}

// Messages returns the most recent battle messages, oldest first.
func (s *Session) Messages() []string { return s.messages }

// TakeRequest returns the pending owner request and clears it.
func (s *Session) TakeRequest() Request {
	r := s.request
	s.request = RequestNone
	return r
}

func (s *Session) finishWith(o Outcome) {
	if s.done {
		return
	}
	s.done = true
	s.outcome = o

	tracer := telemetry.Tracer("battle")
	_, span := tracer.Start(s.ctx, "battle.end")
	span.SetAttributes(
		attribute.String("session.id", s.id),
		attribute.Bool("victory", o.Victory),
		attribute.String("decision", o.Decision.String()),
		attribute.Int("turns_taken", s.turns),
		attribute.Int("attempts", s.supervisor.Attempts()),
		attribute.Int64("elapsed_ms", s.elapsed.Milliseconds()),
	)
	span.End()
}

// Close tears the session down and delivers any victory ledger. Actor
// pointers obtained from the session must not be used afterwards.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.selector.Close()
	err := s.supervisor.Close()
	s.queue.Clear()
	s.pending = nil
	s.arena.Release()
	return err
}

// ID returns the unique session id.
func (s *Session) ID() string { return s.id }

// Config returns the session configuration.
func (s *Session) Config() Config { return s.cfg }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Characters returns the player-controlled actors in formation order.
func (s *Session) Characters() []*combat.Actor { return s.arena.Characters() }

// Enemies returns the computer-controlled actors in formation order.
func (s *Session) Enemies() []*combat.Actor { return s.arena.Enemies() }

// Actors returns every actor, characters first.
func (s *Session) Actors() []*combat.Actor { return s.arena.All() }

// Queue returns the ready queue in order.
func (s *Session) Queue() []*combat.Actor { return s.queue.Actors() }

// LastEnemyDying reports whether the last enemy's death sequence is playing.
func (s *Session) LastEnemyDying() bool { return s.lastEnemyDying }

// Elapsed returns the total time fed to Update.
func (s *Session) Elapsed() time.Duration { return s.elapsed }

// Turns returns how many actions have been granted execution.
func (s *Session) Turns() int { return s.turns }

// Rand returns the session's random source for collaborators that need
// reproducible choices.
func (s *Session) Rand() *rand.Rand { return s.rng }

// Selector returns the command selector.
func (s *Session) Selector() CommandSelector { return s.selector }

// Finish returns the outcome flow, for presentation.
func (s *Session) Finish() *finish.Supervisor { return s.supervisor }

// Intro returns the entry sequence.
func (s *Session) Intro() Sequence { return s.intro }

// Outro returns the exit sequence.
func (s *Session) Outro() Sequence { return s.outro }

// Done reports whether the session has ended.
func (s *Session) Done() bool { return s.done }

// Result returns how the session ended. It is only meaningful once Done.
func (s *Session) Result() Outcome { return s.outcome }
