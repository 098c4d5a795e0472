package game

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/eastertap/internal/clock"
	"github.com/vovakirdan/eastertap/internal/core"
)

// Colors of a session that has not been tapped yet.
const (
	idleBackground = core.ColorDefault
	idleButton     = core.ColorGray
)

// Machine is the session state machine. It owns the session and the two
// countdowns; at most one countdown is running at any time.
//
// Machine is not safe for concurrent use: the host must deliver taps and
// clock callbacks from a single goroutine.
type Machine struct {
	rules Rules
	clock clock.Service
	view  Presenter
	rng   *rand.Rand

	session Session

	// countdownSpec is the main countdown for the next Idle -> Playing
	// transition. It is rebuilt on every reset and started by the first tap.
	countdownSpec clock.Spec
	countdown     clock.Handle
	cooldown      clock.Handle

	onEnd func(finalScore int)
}

// NewMachine creates a machine in a fresh Idle session.
// Nothing is rendered until FreshStart or Restore is called.
func NewMachine(rules Rules, clk clock.Service, view Presenter, rng *rand.Rand) *Machine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	m := &Machine{
		rules: rules,
		clock: clk,
		view:  view,
		rng:   rng,
	}
	m.session = m.idleSession()
	m.countdownSpec = m.countdownFor(rules.InitialCountdown)
	return m
}

// OnSessionEnd registers a callback receiving the final score whenever the
// countdown runs out.
func (m *Machine) OnSessionEnd(f func(finalScore int)) {
	m.onEnd = f
}

// Session returns a copy of the current session state.
func (m *Machine) Session() Session {
	return m.session
}

// Running reports whether a countdown or the cooldown is active.
func (m *Machine) Running() bool {
	return active(m.countdown) || active(m.cooldown)
}

// FreshStart discards the session and shows a new Idle one.
func (m *Machine) FreshStart() {
	m.cancelTimers()
	m.session = m.idleSession()
	m.countdownSpec = m.countdownFor(m.rules.InitialCountdown)

	m.view.ResetButtonLabel()
	m.view.RenderScore(m.session.Score)
	m.view.RenderTimeLeft(m.session.TimeLeft)
	m.renderTarget()
}

// Tap handles a tap on the button.
func (m *Machine) Tap() {
	switch m.session.Phase {
	case PhaseIdle:
		m.start()
		m.score()
	case PhasePlaying:
		m.score()
	case PhaseEndWait:
		// Ignored until the cooldown resets the session.
	}
}

// Suspend captures the snapshot and cancels both countdowns.
func (m *Machine) Suspend() Snapshot {
	m.cancelTimers()
	return Snapshot{
		Score:    m.session.Score,
		TimeLeft: m.session.TimeLeft,
	}
}

// Restore continues a session from a snapshot. The countdown resumes from
// the saved time left rather than the full duration. A snapshot with no
// time left resumes directly into the cooldown.
func (m *Machine) Restore(snap Snapshot) {
	m.cancelTimers()

	s := m.idleSession()
	s.Score = snap.Score
	s.TimeLeft = snap.TimeLeft
	m.session = s

	m.view.ResetButtonLabel()
	m.view.RenderScore(s.Score)
	m.view.RenderTimeLeft(s.TimeLeft)
	m.renderTarget()

	if snap.TimeLeft <= 0 {
		// The session already ended before the snapshot was taken.
		m.session.Phase = PhasePlaying
		m.finish(false)
		return
	}

	m.countdownSpec = m.countdownFor(time.Duration(snap.TimeLeft) * time.Second)
	m.session.Phase = PhasePlaying
	m.countdown = m.clock.Start(m.countdownSpec)
}

// start moves Idle -> Playing and starts the prepared countdown.
func (m *Machine) start() {
	m.transition(PhasePlaying)
	m.session.TimeLeft = m.rules.InitialSeconds()
	m.cancelTimers()
	m.countdown = m.clock.Start(m.countdownSpec)
}

// score counts an accepted tap and moves the button.
func (m *Machine) score() {
	m.view.PlayTapFeedback()

	m.session.Score++
	m.view.RenderScore(m.session.Score)

	p := m.rules.Palette
	m.session.Background = p.At(m.session.ColorIndex)
	m.session.Button = p.At(m.rng.Intn(len(p)))
	m.session.ColorIndex = p.Next(m.session.ColorIndex)
	m.session.Bias = Bias{
		Horizontal: m.pickBias(),
		Vertical:   m.pickBias(),
	}
	m.renderTarget()
}

func (m *Machine) pickBias() float64 {
	c := m.rules.BiasCandidates
	if len(c) == 0 {
		return CenterBias.Horizontal
	}
	return c[m.rng.Intn(len(c))]
}

func (m *Machine) onCountdownTick(remaining time.Duration) {
	if m.session.Phase != PhasePlaying {
		return
	}
	if secs := clock.Seconds(remaining); secs < m.session.TimeLeft {
		m.session.TimeLeft = secs
	}
	m.view.RenderTimeLeft(m.session.TimeLeft)
}

func (m *Machine) onCountdownFinish() {
	m.countdown = nil
	if m.session.Phase != PhasePlaying {
		return
	}
	m.finish(true)
}

// finish moves Playing -> EndWait and starts the cooldown. report hands the
// final score to the session-end callback.
func (m *Machine) finish(report bool) {
	m.transition(PhaseEndWait)
	m.session.TimeLeft = 0
	m.view.RenderTimeLeft(0)

	m.view.ShowSessionEndNotice(m.session.Score)
	if report && m.onEnd != nil {
		m.onEnd(m.session.Score)
	}

	m.session.Background = m.rules.EndBackground
	m.session.Button = m.rules.EndButton
	m.session.Bias = CenterBias
	m.renderTarget()

	m.session.WaitLeft = clock.Seconds(m.rules.EndWait)
	m.cancelTimers()
	m.cooldown = m.clock.Start(clock.Spec{
		Duration: m.rules.EndWait,
		Interval: m.rules.Interval,
		OnTick:   m.onCooldownTick,
		OnFinish: m.onCooldownFinish,
	})
}

func (m *Machine) onCooldownTick(remaining time.Duration) {
	if m.session.Phase != PhaseEndWait {
		return
	}
	m.session.WaitLeft = clock.Seconds(remaining)
	m.view.RenderWaitLabel(m.session.WaitLeft)
}

// onCooldownFinish moves EndWait -> Idle. The end colors stay on screen
// until the next tap recolors the field.
func (m *Machine) onCooldownFinish() {
	m.cooldown = nil
	if m.session.Phase != PhaseEndWait {
		return
	}
	m.transition(PhaseIdle)

	m.session.Score = 0
	m.session.TimeLeft = m.rules.InitialSeconds()
	m.session.WaitLeft = 0
	m.countdownSpec = m.countdownFor(m.rules.InitialCountdown)

	m.view.ResetButtonLabel()
	m.view.RenderScore(m.session.Score)
	m.view.RenderTimeLeft(m.session.TimeLeft)
}

func (m *Machine) transition(next Phase) {
	if !m.session.Phase.CanTransitionTo(next) {
		panic("game: illegal phase transition " + m.session.Phase.String() + " -> " + next.String())
	}
	m.session.Phase = next
}

func (m *Machine) countdownFor(d time.Duration) clock.Spec {
	return clock.Spec{
		Duration: d,
		Interval: m.rules.Interval,
		OnTick:   m.onCountdownTick,
		OnFinish: m.onCountdownFinish,
	}
}

func (m *Machine) idleSession() Session {
	return Session{
		TimeLeft:   m.rules.InitialSeconds(),
		Phase:      PhaseIdle,
		Background: idleBackground,
		Button:     idleButton,
		Bias:       CenterBias,
	}
}

func (m *Machine) renderTarget() {
	s := m.session
	m.view.RenderTarget(s.Background, s.Button, s.Bias.Horizontal, s.Bias.Vertical)
}

func (m *Machine) cancelTimers() {
	if m.countdown != nil {
		m.countdown.Cancel()
		m.countdown = nil
	}
	if m.cooldown != nil {
		m.cooldown.Cancel()
		m.cooldown = nil
	}
}

func active(h clock.Handle) bool {
	return h != nil && h.Active()
}
