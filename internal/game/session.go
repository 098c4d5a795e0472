// Package game implements the tap game: a countdown session in which every
// tap scores a point and moves and recolors the button, followed by a
// cooldown after which the session resets itself.
//
// Machine owns the session state and the two timers. Controller is the
// public entry point that turns host events (tap, suspend, resume, fresh
// start) into machine transitions. Rendering is delegated to a Presenter.
package game

import (
	"github.com/vovakirdan/eastertap/internal/core"
)

// GameID identifies this game in score storage.
const GameID = "eastertap"

// Phase is the session's lifecycle stage.
type Phase int

const (
	// PhaseIdle waits for the first tap, which starts the countdown.
	PhaseIdle Phase = iota
	// PhasePlaying runs the countdown; taps score.
	PhasePlaying
	// PhaseEndWait runs the cooldown; taps are ignored.
	PhaseEndWait
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseEndWait:
		return "end_wait"
	default:
		return "unknown"
	}
}

// CanTransitionTo reports whether next follows p in the session cycle
// Idle -> Playing -> EndWait -> Idle.
func (p Phase) CanTransitionTo(next Phase) bool {
	switch p {
	case PhaseIdle:
		return next == PhasePlaying
	case PhasePlaying:
		return next == PhaseEndWait
	case PhaseEndWait:
		return next == PhaseIdle
	default:
		return false
	}
}

// Bias is the normalized placement of the button in its container.
type Bias struct {
	Horizontal float64
	Vertical   float64
}

// CenterBias places the button in the middle of the field.
var CenterBias = Bias{Horizontal: 0.5, Vertical: 0.5}

// Session is the mutable game state.
type Session struct {
	Score      int
	TimeLeft   int // countdown seconds remaining
	WaitLeft   int // cooldown seconds remaining
	Phase      Phase
	ColorIndex int // cursor into the palette for the next background
	Background core.Color
	Button     core.Color
	Bias       Bias
}

// Snapshot is the state persisted across an interruption.
type Snapshot struct {
	Score    int
	TimeLeft int
}
