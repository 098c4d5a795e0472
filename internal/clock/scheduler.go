package clock

import (
	"time"
)

// Scheduler is a Service driven by explicit Advance calls.
//
// All callbacks run synchronously inside Advance on the caller's goroutine,
// so a host that calls Advance from its event loop gets strictly sequential
// event delivery. Tests drive it directly to make timing deterministic.
//
// Tick behavior follows the classic countdown timer: the first Advance after
// Start delivers a tick immediately (9999ms remaining reads as 9), later ticks
// are delivered each time another Interval has elapsed, and once the duration
// has fully elapsed OnFinish is called instead of a tick.
type Scheduler struct {
	now    time.Duration
	timers []*timer
}

type timer struct {
	spec      Spec
	startedAt time.Duration
	nextTick  time.Duration // elapsed time at which the next tick is due
	dead      bool
}

// NewScheduler creates an idle scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Start registers a countdown. It begins at the scheduler's current time and
// does not see any part of an Advance that is already in progress.
func (s *Scheduler) Start(spec Spec) Handle {
	if spec.Interval <= 0 {
		spec.Interval = time.Second
	}
	t := &timer{
		spec:      spec,
		startedAt: s.now,
	}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward by d and fires due callbacks.
func (s *Scheduler) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.now += d

	// Timers started by callbacks during this pass begin at s.now and are
	// not part of the snapshot.
	due := make([]*timer, len(s.timers))
	copy(due, s.timers)

	for _, t := range due {
		if t.dead {
			continue
		}
		elapsed := s.now - t.startedAt
		if elapsed >= t.spec.Duration {
			t.dead = true
			if t.spec.OnFinish != nil {
				t.spec.OnFinish()
			}
			continue
		}
		if elapsed >= t.nextTick {
			t.nextTick = (elapsed/t.spec.Interval + 1) * t.spec.Interval
			if t.spec.OnTick != nil {
				t.spec.OnTick(t.spec.Duration - elapsed)
			}
		}
	}

	s.compact()
}

// Active returns the number of timers that can still fire.
func (s *Scheduler) Active() int {
	n := 0
	for _, t := range s.timers {
		if !t.dead {
			n++
		}
	}
	return n
}

// CancelAll cancels every registered timer.
func (s *Scheduler) CancelAll() {
	for _, t := range s.timers {
		t.dead = true
	}
	s.timers = nil
}

// Now returns the total time advanced so far.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

func (s *Scheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.dead {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = live
}

func (t *timer) Cancel() {
	t.dead = true
}

func (t *timer) Active() bool {
	return !t.dead
}
