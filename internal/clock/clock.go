// Package clock provides the countdown timer service used by the game.
//
// A timer is described by a plain Spec value (duration, tick interval and
// the two callbacks) and started on a Service, which returns a Handle that
// can be cancelled. Cancelling a handle guarantees that none of its
// callbacks are observed afterwards, even if a tick was already due.
package clock

import "time"

// Spec describes a countdown timer.
type Spec struct {
	// Duration is the total countdown length.
	Duration time.Duration

	// Interval is the spacing between OnTick calls.
	Interval time.Duration

	// OnTick receives the time remaining until the countdown finishes.
	OnTick func(remaining time.Duration)

	// OnFinish is called once when the countdown reaches zero.
	OnFinish func()
}

// Handle controls a started timer.
type Handle interface {
	// Cancel stops the timer. Safe to call more than once.
	Cancel()

	// Active reports whether the timer can still fire callbacks.
	Active() bool
}

// Service starts countdown timers.
type Service interface {
	Start(spec Spec) Handle
}

// Seconds converts a remaining duration into whole seconds by truncation,
// so 9999ms reads as 9.
func Seconds(remaining time.Duration) int {
	if remaining <= 0 {
		return 0
	}
	return int(remaining.Milliseconds() / 1000)
}
