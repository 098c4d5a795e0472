package game

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/eastertap/internal/clock"
)

// ErrInvalidSnapshot is returned by ValidateSnapshot for out-of-range values.
var ErrInvalidSnapshot = errors.New("game: invalid snapshot")

// Controller is the public entry point for host events. It routes taps to
// the state machine, keeps the snapshot taken on suspend and validates
// snapshots handed back on resume.
type Controller struct {
	machine  *Machine
	rules    Rules
	logger   *log.Logger
	recorder ScoreRecorder

	suspended bool
	snapshot  Snapshot
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithScoreRecorder stores each finished session's score.
func WithScoreRecorder(r ScoreRecorder) Option {
	return func(c *Controller) {
		c.recorder = r
	}
}

// NewController creates a controller around a new state machine.
// rng drives color and placement draws; nil seeds from the current time.
func NewController(rules Rules, clk clock.Service, view Presenter, rng *rand.Rand, opts ...Option) *Controller {
	c := &Controller{
		machine: NewMachine(rules, clk, view, rng),
		rules:   rules,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.machine.OnSessionEnd(c.sessionEnded)
	return c
}

// OnFreshStart shows a new Idle session. No countdown is started.
func (c *Controller) OnFreshStart() {
	c.suspended = false
	c.snapshot = Snapshot{}
	c.machine.FreshStart()

	s := c.machine.Session()
	c.logger.Debug("fresh start", "score", s.Score, "time_left", s.TimeLeft)
}

// OnTap handles a tap. Taps while suspended or during the cooldown are ignored.
func (c *Controller) OnTap() {
	if c.suspended {
		c.logger.Debug("tap ignored while suspended")
		return
	}
	before := c.machine.Session().Phase
	c.machine.Tap()

	s := c.machine.Session()
	if before == PhaseIdle && s.Phase == PhasePlaying {
		c.logger.Debug("session started", "time_left", s.TimeLeft)
	}
}

// OnSuspend captures {score, time left} and cancels the countdowns.
// Calling it again before OnResume returns the same snapshot.
func (c *Controller) OnSuspend() Snapshot {
	if c.suspended {
		return c.snapshot
	}
	c.snapshot = c.machine.Suspend()
	c.suspended = true

	c.logger.Debug("suspend", "score", c.snapshot.Score, "time_left", c.snapshot.TimeLeft)
	return c.snapshot
}

// OnResume continues from a snapshot. An out-of-range snapshot is discarded
// and a fresh Idle session is shown instead.
func (c *Controller) OnResume(snap Snapshot) {
	if err := ValidateSnapshot(snap, c.rules); err != nil {
		c.logger.Warn("discarding snapshot", "error", err, "score", snap.Score, "time_left", snap.TimeLeft)
		c.OnFreshStart()
		return
	}

	c.suspended = false
	c.snapshot = Snapshot{}
	c.machine.Restore(snap)

	c.logger.Debug("restore", "score", snap.Score, "time_left", snap.TimeLeft, "phase", c.machine.Session().Phase)
}

// Suspended reports whether the controller is between OnSuspend and OnResume.
func (c *Controller) Suspended() bool {
	return c.suspended
}

// Session returns a copy of the current session state.
func (c *Controller) Session() Session {
	return c.machine.Session()
}

// Running reports whether a countdown is active.
func (c *Controller) Running() bool {
	return c.machine.Running()
}

func (c *Controller) sessionEnded(finalScore int) {
	c.logger.Info("session ended", "score", finalScore)

	if c.recorder == nil || finalScore <= 0 {
		return
	}
	if _, err := c.recorder.SaveScore(GameID, finalScore); err != nil {
		c.logger.Warn("could not save score", "error", err)
	}
}

// ValidateSnapshot checks score >= 0 and 0 <= time left <= session length.
func ValidateSnapshot(snap Snapshot, rules Rules) error {
	if snap.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvalidSnapshot, snap.Score)
	}
	if snap.TimeLeft < 0 || snap.TimeLeft > rules.InitialSeconds() {
		return fmt.Errorf("%w: time left %d outside [0, %d]", ErrInvalidSnapshot, snap.TimeLeft, rules.InitialSeconds())
	}
	return nil
}
