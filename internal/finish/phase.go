// Package finish runs the outcome screens shown once a battle is decided:
// the staged reward reveal after a victory and the retry menu after a defeat.
package finish

// Phase is the state of the outcome flow.
type Phase int

const (
	// PhaseInvalid - the supervisor has not been initialized.
	PhaseInvalid Phase = iota
	// PhaseAnnounceResult - the outcome banner is shown for one update.
	PhaseAnnounceResult
	// PhaseVictoryGrowth - experience is being counted out to the characters.
	PhaseVictoryGrowth
	// PhaseVictorySpoils - currency and item drops are being counted out.
	PhaseVictorySpoils
	// PhaseDefeatSelect - the player picks what to do after losing.
	PhaseDefeatSelect
	// PhaseDefeatConfirm - the player confirms the picked option.
	PhaseDefeatConfirm
	// PhaseEnd - the flow is over and a result is available.
	PhaseEnd
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseInvalid:
		return "invalid"
	case PhaseAnnounceResult:
		return "announce_result"
	case PhaseVictoryGrowth:
		return "victory_growth"
	case PhaseVictorySpoils:
		return "victory_spoils"
	case PhaseDefeatSelect:
		return "defeat_select"
	case PhaseDefeatConfirm:
		return "defeat_confirm"
	case PhaseEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Option is a choice offered after a defeat.
type Option int

const (
	// OptionRetry restarts the same battle.
	OptionRetry Option = iota
	// OptionRestart loads the last save.
	OptionRestart
	// OptionReturn goes back to the title menu.
	OptionReturn
	// OptionQuit exits the game.
	OptionQuit

	optionCount = int(OptionQuit) + 1
)

// String returns a human-readable option name.
func (o Option) String() string {
	switch o {
	case OptionRetry:
		return "retry"
	case OptionRestart:
		return "restart"
	case OptionReturn:
		return "return"
	case OptionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Label is the menu text for the option.
func (o Option) Label() string {
	switch o {
	case OptionRetry:
		return "Retry"
	case OptionRestart:
		return "Load Save"
	case OptionReturn:
		return "Title Menu"
	case OptionQuit:
		return "Quit Game"
	default:
		return "?"
	}
}
