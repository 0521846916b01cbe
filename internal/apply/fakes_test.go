package apply

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jonathan/hirehub/internal/types"
)

// manualClock fires timers only when advanced.
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now + d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.fn()
	}
}

func (c *manualClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// recordingHost counts effect calls.
type recordingHost struct {
	mu       sync.Mutex
	locks    int
	unlocks  int
	focuses  int
	binds    int
	unbinds  int
	onEscape func()
}

func (h *recordingHost) LockScroll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.locks++
}

func (h *recordingHost) UnlockScroll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unlocks++
}

func (h *recordingHost) FocusName() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.focuses++
}

func (h *recordingHost) BindEscape(onEscape func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.binds++
	h.onEscape = onEscape
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.unbinds++
		h.onEscape = nil
	}
}

// pressEscape invokes the bound listener, if any.
func (h *recordingHost) pressEscape() bool {
	h.mu.Lock()
	fn := h.onEscape
	h.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}

func (h *recordingHost) counts() (locks, unlocks, focuses, binds, unbinds int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.locks, h.unlocks, h.focuses, h.binds, h.unbinds
}

func (h *recordingHost) scrollLocked() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.locks > h.unlocks
}

// gatedSubmitter blocks until released and records the context it was given.
type gatedSubmitter struct {
	release chan error
	mu      sync.Mutex
	ctx     context.Context
	apps    []types.JobApplication
}

func newGatedSubmitter() *gatedSubmitter {
	return &gatedSubmitter{release: make(chan error, 1)}
}

func (s *gatedSubmitter) Submit(ctx context.Context, app types.JobApplication) (*types.ApplicationReceipt, error) {
	s.mu.Lock()
	s.ctx = ctx
	s.apps = append(s.apps, app)
	s.mu.Unlock()

	select {
	case err := <-s.release:
		if err != nil {
			return nil, err
		}
		return &types.ApplicationReceipt{JobID: app.JobID}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *gatedSubmitter) lastCtx() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

// phaseRecorder collects the phases of published states.
type phaseRecorder struct {
	mu     sync.Mutex
	phases []Phase
}

func (r *phaseRecorder) listen(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phases = append(r.phases, s.Phase)
}

func (r *phaseRecorder) get() []Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Phase(nil), r.phases...)
}
