// Package apply implements the job application form: field state, validation,
// the submission lifecycle, and the UI effects that accompany an open form.
package apply

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonathan/hirehub/internal/types"
)

// Default lifecycle delays.
const (
	DefaultCloseDelay = 2 * time.Second
	DefaultClearDelay = 300 * time.Millisecond
)

// SubmitFailedMessage is shown when the submitter returns an error.
const SubmitFailedMessage = "Failed to submit application. Please try again."

// Phase is the form lifecycle stage.
type Phase int

const (
	PhaseClosed Phase = iota
	PhaseIdle
	PhaseValidating
	PhaseSubmitting
	PhaseSucceeded
)

func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// State is a snapshot of the form.
type State struct {
	Phase       Phase                     `json:"phase"`
	Job         *types.Job                `json:"job,omitempty"`
	Name        string                    `json:"name"`
	Email       string                    `json:"email"`
	Resume      *Resume                   `json:"resume,omitempty"`
	Errors      FieldErrors               `json:"errors"`
	SubmitError string                    `json:"submitError,omitempty"`
	Receipt     *types.ApplicationReceipt `json:"receipt,omitempty"`
}

// IsOpen reports whether the form is visible.
func (s State) IsOpen() bool { return s.Phase != PhaseClosed }

// Form returns the field values.
func (s State) Form() Form {
	return Form{Name: s.Name, Email: s.Email, Resume: s.Resume}
}

// Listener receives every published State.
type Listener func(State)

// Option configures a Controller.
type Option func(*Controller)

// WithHost sets the effect host.
func WithHost(h Host) Option { return func(c *Controller) { c.host = h } }

// WithClock sets the timer source.
func WithClock(clk Clock) Option { return func(c *Controller) { c.clock = clk } }

// WithSubmitter sets the submission backend.
func WithSubmitter(s Submitter) Option { return func(c *Controller) { c.submitter = s } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(c *Controller) { c.logger = l } }

// WithCloseDelay sets how long the success message stays before auto-close.
func WithCloseDelay(d time.Duration) Option { return func(c *Controller) { c.closeDelay = d } }

// WithClearDelay sets how long the target job is retained after close.
func WithClearDelay(d time.Duration) Option { return func(c *Controller) { c.clearDelay = d } }

// WithOnClose sets the callback invoked after every close, including auto-close.
func WithOnClose(fn func()) Option { return func(c *Controller) { c.onClose = fn } }

// Controller drives one application form. Operations are serialized; asynchronous
// work (submission, timers) re-enters through the same serialization and is
// discarded when the form was closed or re-targeted in the meantime.
type Controller struct {
	host       Host
	clock      Clock
	submitter  Submitter
	logger     *slog.Logger
	closeDelay time.Duration
	clearDelay time.Duration
	onClose    func()

	// opMu serializes operations, effects, and notifications.
	opMu sync.Mutex

	mu        sync.RWMutex
	state     State
	listeners map[int]Listener
	nextID    int

	gen          uint64
	engaged      bool
	unbindEscape func()
	cancelSubmit context.CancelFunc
	autoClose    Timer
	clearJob     Timer
	disposed     bool
}

// NewController creates a closed form.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		host:       NopHost{},
		clock:      SystemClock{},
		closeDelay: DefaultCloseDelay,
		clearDelay: DefaultClearDelay,
		logger:     slog.Default(),
		state:      State{Phase: PhaseClosed, Errors: FieldErrors{}},
		listeners:  make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.submitter == nil {
		c.submitter = NewSimulatedSubmitter(DefaultSubmitDelay, c.logger)
	}
	return c
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.state
	s.Errors = c.state.Errors.clone()
	return s
}

// Subscribe registers l for every future State and returns a function that removes it.
func (c *Controller) Subscribe(l Listener) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = l
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

// Open targets job and shows a fresh form. A nil job leaves the form unchanged.
// Re-targeting an open form resets it without repeating the open effects.
func (c *Controller) Open(job *types.Job) error {
	if job == nil {
		return nil
	}
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.disposed {
		return ErrDisposed
	}
	if c.phase() == PhaseSubmitting {
		return ErrSubmissionInFlight
	}

	c.stopTimers()
	c.gen++
	c.set(func(s *State) {
		*s = State{Phase: PhaseIdle, Job: job, Errors: FieldErrors{}}
	})

	if !c.engaged {
		c.engaged = true
		c.host.LockScroll()
		c.unbindEscape = c.host.BindEscape(c.escape)
		c.host.FocusName()
	}
	c.notify()
	return nil
}

// SetName updates the name and clears its error.
func (c *Controller) SetName(v string) {
	c.edit(func(s *State) {
		s.Name = v
		delete(s.Errors, FieldName)
	})
}

// SetEmail updates the email and clears its error.
func (c *Controller) SetEmail(v string) {
	c.edit(func(s *State) {
		s.Email = v
		delete(s.Errors, FieldEmail)
	})
}

// SetResume updates the selected file. A nil resume clears the selection.
func (c *Controller) SetResume(r *Resume) {
	c.edit(func(s *State) {
		s.Resume = r
		if r != nil {
			delete(s.Errors, FieldResume)
		}
	})
}

// edit applies fn only while the form accepts input.
func (c *Controller) edit(fn func(*State)) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.disposed || c.phase() != PhaseIdle {
		return
	}
	c.set(fn)
	c.notify()
}

// Submit validates the form and, if valid, starts the submission in the
// background. Validation failures are reported through State, not the error.
func (c *Controller) Submit() error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.disposed {
		return ErrDisposed
	}
	switch c.phase() {
	case PhaseClosed:
		return ErrNotOpen
	case PhaseSubmitting:
		return ErrSubmissionInFlight
	case PhaseIdle:
	default:
		return nil
	}

	c.set(func(s *State) { s.Phase = PhaseValidating })
	c.notify()

	st := c.State()
	errs := Validate(st.Form())
	if !errs.Valid() {
		c.set(func(s *State) {
			s.Phase = PhaseIdle
			s.Errors = errs
		})
		c.notify()
		return nil
	}

	c.set(func(s *State) {
		s.Phase = PhaseSubmitting
		s.Errors = FieldErrors{}
		s.SubmitError = ""
	})

	ctx, cancel := context.WithCancel(context.Background())
	c.cancelSubmit = cancel
	gen := c.gen
	app := types.JobApplication{
		JobID:          st.Job.ID,
		JobTitle:       st.Job.Title,
		ApplicantName:  st.Name,
		ApplicantEmail: st.Email,
		ResumeName:     st.Resume.Name,
		ResumeSize:     st.Resume.Size,
	}
	c.notify()

	go c.runSubmit(ctx, gen, app)
	return nil
}

func (c *Controller) runSubmit(ctx context.Context, gen uint64, app types.JobApplication) {
	receipt, err := c.submitter.Submit(ctx, app)

	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.disposed || gen != c.gen {
		return
	}
	if c.cancelSubmit != nil {
		c.cancelSubmit()
		c.cancelSubmit = nil
	}

	if err != nil {
		c.logger.Error("failed to submit application", "job_id", app.JobID, "error", err)
		c.set(func(s *State) {
			s.Phase = PhaseIdle
			s.SubmitError = SubmitFailedMessage
		})
		c.notify()
		return
	}

	c.set(func(s *State) {
		s.Phase = PhaseSucceeded
		s.Errors = FieldErrors{}
		s.Receipt = receipt
	})
	c.autoClose = c.clock.AfterFunc(c.closeDelay, func() { c.expire(gen) })
	c.notify()
}

// expire auto-closes after a successful submission.
func (c *Controller) expire(gen uint64) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.disposed || gen != c.gen {
		return
	}
	c.close()
}

// Close dismisses the form. Dismissal is refused while a submission is pending.
func (c *Controller) Close() error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.disposed {
		return ErrDisposed
	}
	switch c.phase() {
	case PhaseClosed:
		return nil
	case PhaseSubmitting:
		return ErrSubmissionInFlight
	}
	c.close()
	return nil
}

func (c *Controller) escape() {
	if err := c.Close(); err != nil {
		c.logger.Debug("escape ignored", "error", err)
	}
}

// close resets the fields, releases effects, fires the close callback, and
// schedules the delayed clear of the target job. Caller holds opMu.
func (c *Controller) close() {
	c.stopTimers()
	c.gen++
	c.set(func(s *State) {
		*s = State{Phase: PhaseClosed, Job: s.Job, Errors: FieldErrors{}}
	})
	c.release()
	c.notify()

	if c.onClose != nil {
		c.onClose()
	}

	gen := c.gen
	c.clearJob = c.clock.AfterFunc(c.clearDelay, func() { c.clear(gen) })
}

func (c *Controller) clear(gen uint64) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.disposed || gen != c.gen {
		return
	}
	c.set(func(s *State) { s.Job = nil })
	c.notify()
}

// Dispose tears the form down: pending work is cancelled, effects are released,
// and no callback or listener fires afterwards.
func (c *Controller) Dispose() {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.disposed {
		return
	}
	c.disposed = true
	c.gen++
	c.stopTimers()
	if c.cancelSubmit != nil {
		c.cancelSubmit()
		c.cancelSubmit = nil
	}
	c.release()
	c.set(func(s *State) {
		*s = State{Phase: PhaseClosed, Errors: FieldErrors{}}
	})

	c.mu.Lock()
	c.listeners = make(map[int]Listener)
	c.mu.Unlock()
}

func (c *Controller) release() {
	if !c.engaged {
		return
	}
	c.engaged = false
	if c.unbindEscape != nil {
		c.unbindEscape()
		c.unbindEscape = nil
	}
	c.host.UnlockScroll()
}

func (c *Controller) stopTimers() {
	if c.autoClose != nil {
		c.autoClose.Stop()
		c.autoClose = nil
	}
	if c.clearJob != nil {
		c.clearJob.Stop()
		c.clearJob = nil
	}
}

func (c *Controller) phase() Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Phase
}

func (c *Controller) set(fn func(*State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
}

func (c *Controller) notify() {
	snapshot := c.State()
	c.mu.RLock()
	listeners := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.RUnlock()

	for _, l := range listeners {
		l(snapshot)
	}
}
