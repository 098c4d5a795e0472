package game

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/eastertap/internal/clock"
	"github.com/vovakirdan/eastertap/internal/core"
)

func TestPhaseTransitions(t *testing.T) {
	tests := []struct {
		from, to Phase
		want     bool
	}{
		{PhaseIdle, PhasePlaying, true},
		{PhasePlaying, PhaseEndWait, true},
		{PhaseEndWait, PhaseIdle, true},
		{PhaseIdle, PhaseEndWait, false},
		{PhasePlaying, PhaseIdle, false},
		{PhaseEndWait, PhasePlaying, false},
		{PhaseIdle, PhaseIdle, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestFreshStartRendersIdle(t *testing.T) {
	_, clk, view := newFakeController(t)

	if len(clk.timers) != 0 {
		t.Fatalf("fresh start started %d timers", len(clk.timers))
	}
	if view.score != 0 || view.timeLeft != 10 {
		t.Errorf("rendered score=%d time=%d, want 0 and 10", view.score, view.timeLeft)
	}
	if view.labelReset != 1 {
		t.Errorf("label reset %d times, want 1", view.labelReset)
	}
	if view.hBias != 0.5 || view.vBias != 0.5 {
		t.Errorf("idle bias = (%v, %v), want centered", view.hBias, view.vBias)
	}
}

func TestFirstTapStartsCountdown(t *testing.T) {
	c, clk, view := newFakeController(t)

	c.OnTap()

	s := c.Session()
	if s.Phase != PhasePlaying {
		t.Fatalf("phase = %s, want playing", s.Phase)
	}
	if s.Score != 1 || view.score != 1 {
		t.Errorf("score = %d (rendered %d), want 1", s.Score, view.score)
	}
	if len(clk.timers) != 1 {
		t.Fatalf("started %d timers, want 1", len(clk.timers))
	}
	spec := clk.timers[0].spec
	if spec.Duration != 10*time.Second || spec.Interval != time.Second {
		t.Errorf("countdown = %v/%v, want 10s/1s", spec.Duration, spec.Interval)
	}
	if view.feedback != 1 {
		t.Errorf("feedback played %d times, want 1", view.feedback)
	}
	if s.Background != core.ColorRed {
		t.Errorf("background = %s, want red", s.Background)
	}
	if s.ColorIndex != 1 {
		t.Errorf("color index = %d, want 1", s.ColorIndex)
	}
}

func TestScoreCountsEveryPlayingTap(t *testing.T) {
	for _, n := range []int{1, 2, 7, 25} {
		c, clk, view := newFakeController(t)
		for i := 0; i < n; i++ {
			c.OnTap()
		}
		if got := c.Session().Score; got != n {
			t.Errorf("%d taps: score = %d", n, got)
		}
		if view.score != n {
			t.Errorf("%d taps: rendered score = %d", n, view.score)
		}
		if len(clk.timers) != 1 {
			t.Errorf("%d taps: started %d timers, want 1", n, len(clk.timers))
		}
	}
}

func TestColorIndexCyclesThroughPalette(t *testing.T) {
	c, _, _ := newFakeController(t)
	palette := core.DefaultPalette()

	for i := 0; i < 2*len(palette); i++ {
		c.OnTap()
		s := c.Session()
		if want := palette[i%len(palette)]; s.Background != want {
			t.Fatalf("tap %d: background = %s, want %s", i+1, s.Background, want)
		}
		if want := (i + 1) % len(palette); s.ColorIndex != want {
			t.Fatalf("tap %d: color index = %d, want %d", i+1, s.ColorIndex, want)
		}
	}
	if got := c.Session().ColorIndex; got != 0 {
		t.Errorf("after 14 taps color index = %d, want 0", got)
	}
}

func TestDrawsStayInCandidateSets(t *testing.T) {
	rules := DefaultRules()
	clk := &fakeClock{}
	view := &recordingPresenter{}
	c := NewController(rules, clk, view, rand.New(rand.NewSource(1)))
	c.OnFreshStart()

	seenButtons := map[core.Color]bool{}
	for i := 0; i < 500; i++ {
		c.OnTap()
		s := c.Session()
		if !rules.Palette.Contains(s.Button) {
			t.Fatalf("button %s not in palette", s.Button)
		}
		seenButtons[s.Button] = true
		for _, b := range []float64{s.Bias.Horizontal, s.Bias.Vertical} {
			if b < 0.10 || b > 0.90 {
				t.Fatalf("bias %v outside [0.10, 0.90]", b)
			}
			if scaled := b * 100; math.Abs(scaled-math.Round(scaled)) > 1e-9 {
				t.Fatalf("bias %v is not a whole percent", b)
			}
		}
		if view.hBias != s.Bias.Horizontal || view.vBias != s.Bias.Vertical {
			t.Fatalf("rendered bias (%v, %v) != session bias %+v", view.hBias, view.vBias, s.Bias)
		}
	}
	if len(seenButtons) != len(rules.Palette) {
		t.Errorf("saw %d button colors in 500 taps, want %d", len(seenButtons), len(rules.Palette))
	}
}

func TestCountdownTicksRenderTruncatedSeconds(t *testing.T) {
	c, clk, view := newFakeController(t)
	c.OnTap()

	clk.tick(9999 * time.Millisecond)
	if view.timeLeft != 9 {
		t.Errorf("9999ms rendered as %d, want 9", view.timeLeft)
	}
	clk.tick(4500 * time.Millisecond)
	if got := c.Session().TimeLeft; got != 4 {
		t.Errorf("4500ms: time left = %d, want 4", got)
	}
	clk.tick(999 * time.Millisecond)
	if got := c.Session().TimeLeft; got != 0 {
		t.Errorf("999ms: time left = %d, want 0", got)
	}
}

func TestTimeLeftNeverIncreasesWhilePlaying(t *testing.T) {
	c, sched, _ := newScheduledController(t)
	rng := rand.New(rand.NewSource(99))

	c.OnTap()
	prev := c.Session().TimeLeft
	for c.Session().Phase == PhasePlaying {
		sched.Advance(time.Duration(rng.Intn(700)+1) * time.Millisecond)
		if rng.Intn(3) == 0 {
			c.OnTap()
		}
		s := c.Session()
		if s.Phase != PhasePlaying {
			break
		}
		if s.TimeLeft > prev {
			t.Fatalf("time left went up from %d to %d", prev, s.TimeLeft)
		}
		prev = s.TimeLeft
	}
	if got := c.Session().Phase; got != PhaseEndWait {
		t.Fatalf("phase = %s, want end_wait", got)
	}
}

func TestEndWaitIgnoresTaps(t *testing.T) {
	c, clk, view := newFakeController(t)
	c.OnTap()
	c.OnTap()
	clk.finish()

	before := c.Session()
	if before.Phase != PhaseEndWait {
		t.Fatalf("phase = %s, want end_wait", before.Phase)
	}
	calls := len(view.calls)
	timers := len(clk.timers)

	for i := 0; i < 5; i++ {
		c.OnTap()
	}

	if after := c.Session(); after != before {
		t.Errorf("session changed during end wait:\n got %+v\nwant %+v", after, before)
	}
	if len(view.calls) != calls {
		t.Errorf("presenter received %v during end wait", view.calls[calls:])
	}
	if len(clk.timers) != timers {
		t.Errorf("taps during end wait started a timer")
	}
}

func TestFinishShowsEndState(t *testing.T) {
	c, clk, view := newFakeController(t)
	for i := 0; i < 4; i++ {
		c.OnTap()
	}
	clk.finish()

	s := c.Session()
	if s.TimeLeft != 0 || view.timeLeft != 0 {
		t.Errorf("time left = %d (rendered %d), want 0", s.TimeLeft, view.timeLeft)
	}
	if len(view.notices) != 1 || view.notices[0] != 4 {
		t.Errorf("notices = %v, want [4]", view.notices)
	}
	if s.Background != core.ColorBlue || s.Button != core.ColorPurple {
		t.Errorf("end colors = %s/%s, want blue/purple", s.Background, s.Button)
	}
	if s.Bias != CenterBias {
		t.Errorf("end bias = %+v, want centered", s.Bias)
	}
	if len(clk.timers) != 2 {
		t.Fatalf("started %d timers, want countdown and cooldown", len(clk.timers))
	}
	if d := clk.last().spec.Duration; d != 6*time.Second {
		t.Errorf("cooldown = %v, want 6s", d)
	}
	if clk.active() != 1 {
		t.Errorf("%d timers active, want 1", clk.active())
	}
}

func TestStaleCountdownCallbacksAreIgnored(t *testing.T) {
	c, clk, view := newFakeController(t)
	c.OnTap()
	stale := clk.timers[0].spec

	c.OnFreshStart()
	calls := len(view.calls)

	stale.OnTick(3 * time.Second)
	stale.OnFinish()

	if s := c.Session(); s.Phase != PhaseIdle || s.TimeLeft != 10 {
		t.Errorf("stale callbacks changed session: %+v", s)
	}
	if len(view.calls) != calls {
		t.Errorf("stale callbacks rendered %v", view.calls[calls:])
	}
}

func TestFullCycleOnScheduler(t *testing.T) {
	c, sched, view := newScheduledController(t)

	if c.Running() {
		t.Fatal("idle session reports a running timer")
	}
	c.OnTap()
	if sched.Active() != 1 || !c.Running() {
		t.Fatalf("%d timers active after first tap, want 1", sched.Active())
	}

	var rendered []int
	for i := 0; i < 10; i++ {
		sched.Advance(time.Second)
		if sched.Active() > 1 {
			t.Fatalf("%d timers active at %v", sched.Active(), sched.Now())
		}
		rendered = append(rendered, view.timeLeft)
	}
	want := []int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}
	for i := range want {
		if rendered[i] != want[i] {
			t.Fatalf("time labels = %v, want %v", rendered, want)
		}
	}

	s := c.Session()
	if s.Phase != PhaseEndWait {
		t.Fatalf("phase = %s, want end_wait", s.Phase)
	}
	if sched.Active() != 1 || !c.Running() {
		t.Fatalf("cooldown not the only running timer: %d active", sched.Active())
	}
	if len(view.notices) != 1 || view.notices[0] != 1 {
		t.Errorf("notices = %v, want [1]", view.notices)
	}

	var waits []int
	for i := 0; i < 6; i++ {
		sched.Advance(time.Second)
		if c.Session().Phase == PhaseEndWait {
			waits = append(waits, view.waitLabel)
		}
	}
	wantWaits := []int{5, 4, 3, 2, 1}
	if len(waits) != len(wantWaits) {
		t.Fatalf("wait labels = %v, want %v", waits, wantWaits)
	}
	for i := range wantWaits {
		if waits[i] != wantWaits[i] {
			t.Fatalf("wait labels = %v, want %v", waits, wantWaits)
		}
	}

	s = c.Session()
	if s.Phase != PhaseIdle || s.Score != 0 || s.TimeLeft != 10 {
		t.Errorf("after cooldown session = %+v, want idle 0/10", s)
	}
	if view.score != 0 || view.timeLeft != 10 {
		t.Errorf("after cooldown rendered score=%d time=%d", view.score, view.timeLeft)
	}
	if view.labelReset != 2 {
		t.Errorf("label reset %d times, want 2", view.labelReset)
	}
	if sched.Active() != 0 || c.Running() {
		t.Errorf("%d timers active in idle, want 0", sched.Active())
	}

	// The next tap starts a full-length session again.
	c.OnTap()
	advanceSeconds(sched, 1)
	if got := c.Session().TimeLeft; got != 9 {
		t.Errorf("second session time left = %d, want 9", got)
	}
}

func TestColorIndexSurvivesCooldown(t *testing.T) {
	c, sched, _ := newScheduledController(t)
	for i := 0; i < 3; i++ {
		c.OnTap()
	}
	advanceSeconds(sched, 16)

	s := c.Session()
	if s.Phase != PhaseIdle {
		t.Fatalf("phase = %s, want idle", s.Phase)
	}
	if s.ColorIndex != 3 {
		t.Errorf("color index = %d, want 3", s.ColorIndex)
	}
	c.OnTap()
	if got := c.Session().Background; got != core.ColorGreen {
		t.Errorf("background = %s, want green", got)
	}
}

func TestRulesFromCustomTiming(t *testing.T) {
	rules := DefaultRules()
	rules.InitialCountdown = 3 * time.Second
	rules.EndWait = 2 * time.Second

	sched := clock.NewScheduler()
	view := &recordingPresenter{}
	c := NewController(rules, sched, view, rand.New(rand.NewSource(3)))
	c.OnFreshStart()
	if view.timeLeft != 3 {
		t.Fatalf("idle time label = %d, want 3", view.timeLeft)
	}

	c.OnTap()
	advanceSeconds(sched, 3)
	if got := c.Session().Phase; got != PhaseEndWait {
		t.Fatalf("phase after 3s = %s, want end_wait", got)
	}
	advanceSeconds(sched, 2)
	if got := c.Session(); got.Phase != PhaseIdle || got.TimeLeft != 3 {
		t.Errorf("after cooldown = %+v, want idle with 3s", got)
	}
}
