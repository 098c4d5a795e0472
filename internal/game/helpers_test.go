package game

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/eastertap/internal/clock"
	"github.com/vovakirdan/eastertap/internal/core"
)

// recordingPresenter keeps the latest rendered values and a call log.
type recordingPresenter struct {
	calls      []string
	score      int
	timeLeft   int
	waitLabel  int
	labelReset int
	background core.Color
	button     core.Color
	hBias      float64
	vBias      float64
	notices    []int
	feedback   int
}

func (p *recordingPresenter) RenderScore(score int) {
	p.score = score
	p.calls = append(p.calls, fmt.Sprintf("score %d", score))
}

func (p *recordingPresenter) RenderTimeLeft(seconds int) {
	p.timeLeft = seconds
	p.calls = append(p.calls, fmt.Sprintf("time %d", seconds))
}

func (p *recordingPresenter) RenderWaitLabel(seconds int) {
	p.waitLabel = seconds
	p.calls = append(p.calls, fmt.Sprintf("wait %d", seconds))
}

func (p *recordingPresenter) ResetButtonLabel() {
	p.labelReset++
	p.calls = append(p.calls, "label reset")
}

func (p *recordingPresenter) RenderTarget(bg, btn core.Color, h, v float64) {
	p.background, p.button, p.hBias, p.vBias = bg, btn, h, v
	p.calls = append(p.calls, fmt.Sprintf("target %s %s %.2f %.2f", bg, btn, h, v))
}

func (p *recordingPresenter) ShowSessionEndNotice(finalScore int) {
	p.notices = append(p.notices, finalScore)
	p.calls = append(p.calls, fmt.Sprintf("notice %d", finalScore))
}

func (p *recordingPresenter) PlayTapFeedback() {
	p.feedback++
	p.calls = append(p.calls, "feedback")
}

// fakeClock records every started timer and fires callbacks on demand.
type fakeClock struct {
	timers []*fakeTimer
}

type fakeTimer struct {
	spec      clock.Spec
	cancelled bool
	finished  bool
}

func (t *fakeTimer) Cancel()      { t.cancelled = true }
func (t *fakeTimer) Active() bool { return !t.cancelled && !t.finished }

func (c *fakeClock) Start(spec clock.Spec) clock.Handle {
	t := &fakeTimer{spec: spec}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) last() *fakeTimer {
	if len(c.timers) == 0 {
		return nil
	}
	return c.timers[len(c.timers)-1]
}

func (c *fakeClock) tick(remaining time.Duration) {
	if t := c.last(); t != nil && t.Active() {
		t.spec.OnTick(remaining)
	}
}

func (c *fakeClock) finish() {
	if t := c.last(); t != nil && t.Active() {
		t.finished = true
		t.spec.OnFinish()
	}
}

func (c *fakeClock) active() int {
	n := 0
	for _, t := range c.timers {
		if t.Active() {
			n++
		}
	}
	return n
}

type fakeRecorder struct {
	saved []int
	games []string
	err   error
}

func (r *fakeRecorder) SaveScore(gameID string, score int) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.games = append(r.games, gameID)
	r.saved = append(r.saved, score)
	return int64(len(r.saved)), nil
}

// newFakeController builds a controller on a fake clock and shows a fresh session.
func newFakeController(t *testing.T, opts ...Option) (*Controller, *fakeClock, *recordingPresenter) {
	t.Helper()
	clk := &fakeClock{}
	view := &recordingPresenter{}
	c := NewController(DefaultRules(), clk, view, rand.New(rand.NewSource(42)), opts...)
	c.OnFreshStart()
	return c, clk, view
}

// newScheduledController builds a controller on a real scheduler.
func newScheduledController(t *testing.T, opts ...Option) (*Controller, *clock.Scheduler, *recordingPresenter) {
	t.Helper()
	clk := clock.NewScheduler()
	view := &recordingPresenter{}
	c := NewController(DefaultRules(), clk, view, rand.New(rand.NewSource(7)), opts...)
	c.OnFreshStart()
	return c, clk, view
}

func advanceSeconds(s *clock.Scheduler, n int) {
	for i := 0; i < n; i++ {
		s.Advance(time.Second)
	}
}
