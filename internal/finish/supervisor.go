package finish

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/bandbattle/internal/audio"
	"github.com/samdwyer/bandbattle/internal/input"
	"github.com/samdwyer/bandbattle/internal/telemetry"
)

// Config parameterizes the outcome flow.
type Config struct {
	// MaxAttempts is how many times a battle may be fought, retries included.
	MaxAttempts int
	// CanRestoreSave enables the load-save option after a defeat.
	CanRestoreSave bool
	Experience     CounterConfig
	Currency       CounterConfig
}

// DefaultConfig allows three attempts and uses the default counters.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		Experience:  DefaultCounterConfig(),
		Currency:    DefaultCounterConfig(),
	}
}

// Result is reported once the flow reaches PhaseEnd.
type Result struct {
	Victory bool
	// Option is the confirmed defeat choice. It is meaningless on victory.
	Option Option
}

// Supervisor owns the outcome flow of one battle across its retries.
// The battle session polls Result instead of sharing phase state with it.
type Supervisor struct {
	cfg      Config
	logger   *log.Logger
	cues     audio.Player
	rewards  Rewards
	ctx      context.Context
	attempts int

	victorious bool
	report     Report
	victory    *victory
	defeat     *defeat
	delivered  bool
}

// NewSupervisor creates a supervisor in the invalid phase.
func NewSupervisor(cfg Config) *Supervisor {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &Supervisor{
		cfg:    cfg,
		logger: log.Default(),
		cues:   audio.Nop{},
		ctx:    context.Background(),
	}
}

// SetLogger replaces the diagnostics logger.
func (s *Supervisor) SetLogger(l *log.Logger) {
	if l != nil {
		s.logger = l
	}
}

// SetCues sets the player used for menu sounds.
func (s *Supervisor) SetCues(p audio.Player) {
	if p != nil {
		s.cues = p
	}
}

// SetRewards sets the collaborator that receives the ledger on Close.
func (s *Supervisor) SetRewards(r Rewards) { s.rewards = r }

// Initialize starts the flow for a decided battle. Each call counts as one
// attempt; attempts beyond the maximum are reported and clamped.
func (s *Supervisor) Initialize(ctx context.Context, victorious bool, report Report) {
	if ctx != nil {
		s.ctx = ctx
	}
	if s.attempts >= s.cfg.MaxAttempts {
		s.logger.Printf("finish: exceeded maximum allowed number of battle attempts (%d)", s.cfg.MaxAttempts)
	} else {
		s.attempts++
	}

	s.victorious = victorious
	s.report = report
	s.delivered = false
	s.victory = nil
	s.defeat = nil
	if victorious {
		s.victory = newVictory(s.cfg, report, s.attempts-1)
		s.cues.Play(audio.CueVictory)
		return
	}
	s.defeat = newDefeat(s.cfg.MaxAttempts-s.attempts, s.cfg.CanRestoreSave)
	s.cues.Play(audio.CueDefeat)
}

// Update advances the active assistant by one tick.
func (s *Supervisor) Update(dt time.Duration, in input.Frame) {
	switch {
	case s.victory != nil:
		s.victory.update(dt, in, s.cues)
	case s.defeat != nil:
		before := s.defeat.phase
		s.defeat.update(in, s.cues)
		if before != PhaseEnd && s.defeat.phase == PhaseEnd {
			s.traceDecision()
		}
	}
}

// Phase returns the current outcome phase.
func (s *Supervisor) Phase() Phase {
	switch {
	case s.victory != nil:
		return s.victory.phase
	case s.defeat != nil:
		return s.defeat.phase
	default:
		return PhaseInvalid
	}
}

// Result returns the outcome once the flow has ended.
func (s *Supervisor) Result() (Result, bool) {
	if s.Phase() != PhaseEnd {
		return Result{}, false
	}
	r := Result{Victory: s.victorious}
	if s.defeat != nil {
		r.Option = s.defeat.cursor
	}
	return r, true
}

// Victorious reports whether the flow is showing a victory.
func (s *Supervisor) Victorious() bool { return s.victorious }

// Attempts returns how many attempts have been counted.
func (s *Supervisor) Attempts() int { return s.attempts }

// RetriesLeft returns how many more retries the defeat menu allows.
func (s *Supervisor) RetriesLeft() int {
	if s.defeat != nil {
		return s.defeat.retriesLeft
	}
	return s.cfg.MaxAttempts - s.attempts
}

// Report returns the report the flow was initialized with.
func (s *Supervisor) Report() Report { return s.report }

// Ledger returns a copy of what has been counted out so far.
func (s *Supervisor) Ledger() Ledger {
	if s.victory == nil {
		return Ledger{}
	}
	return s.victory.ledger.clone()
}

// ExperienceRemaining returns the per-character experience still to count.
func (s *Supervisor) ExperienceRemaining() int {
	if s.victory == nil {
		return 0
	}
	return s.victory.xp.Remaining()
}

// CurrencyRemaining returns the currency still to count.
func (s *Supervisor) CurrencyRemaining() int {
	if s.victory == nil {
		return 0
	}
	return s.victory.currency.Remaining()
}

// Cursor returns the highlighted defeat option.
func (s *Supervisor) Cursor() Option {
	if s.defeat == nil {
		return OptionRetry
	}
	return s.defeat.cursor
}

// OptionEnabled reports whether a defeat option may be confirmed.
func (s *Supervisor) OptionEnabled(o Option) bool {
	if s.defeat == nil || o < 0 || int(o) >= optionCount {
		return false
	}
	return s.defeat.enabled[o]
}

// ConfirmYes reports whether "Yes" is highlighted in the confirm prompt.
func (s *Supervisor) ConfirmYes() bool {
	return s.defeat != nil && s.defeat.confirmYes
}

// Close flushes any pending counts and hands a victory ledger to the rewards
// collaborator. It is safe to call more than once; the ledger is delivered
// at most once per Initialize.
func (s *Supervisor) Close() error {
	if s.victory == nil || s.delivered {
		return nil
	}
	s.victory.flush()
	s.delivered = true

	ledger := s.victory.ledger.clone()
	tracer := telemetry.Tracer("finish")
	_, span := tracer.Start(s.ctx, "finish.rewards")
	defer span.End()
	span.SetAttributes(
		attribute.Int("attempts", s.attempts),
		attribute.Int("currency", ledger.Currency),
		attribute.Int("item_kinds", len(ledger.Items)),
	)

	if s.rewards == nil {
		return nil
	}
	if err := s.rewards.ApplyRewards(ledger); err != nil {
		span.SetAttributes(attribute.Bool("failed", true))
		return fmt.Errorf("finish: apply rewards: %w", err)
	}
	return nil
}

// Reset forgets every attempt. Use it when a different battle begins.
func (s *Supervisor) Reset() {
	s.attempts = 0
	s.victorious = false
	s.report = Report{}
	s.victory = nil
	s.defeat = nil
	s.delivered = false
}

func (s *Supervisor) traceDecision() {
	tracer := telemetry.Tracer("finish")
	_, span := tracer.Start(s.ctx, "finish.decision")
	span.SetAttributes(
		attribute.String("option", s.defeat.cursor.String()),
		attribute.Int("attempts", s.attempts),
		attribute.Int("retries_left", s.defeat.retriesLeft),
	)
	span.End()
}
