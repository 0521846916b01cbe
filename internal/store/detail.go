package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/jonathan/hirehub/internal/catalog"
	"github.com/jonathan/hirehub/internal/types"
)

// User-facing detail messages.
const (
	NotFoundMessage   = "Job not found"
	DetailFailMessage = "Failed to load job details"
)

// ErrSuperseded is returned by Load when a newer request replaced it before it finished.
var ErrSuperseded = errors.New("detail request superseded")

// Detail is the state of the single-job view.
type Detail struct {
	ID        string     `json:"id"`
	IsLoading bool       `json:"isLoading"`
	Job       *types.Job `json:"job,omitempty"`
	NotFound  bool       `json:"notFound"`
	Error     string     `json:"error,omitempty"`
}

// DetailListener receives every published Detail.
type DetailListener func(Detail)

// DetailLoader loads one job at a time by id. Only the most recent request may
// publish its result; older in-flight requests are cancelled and discarded.
type DetailLoader struct {
	catalog catalog.Accessor
	logger  *slog.Logger

	publishMu sync.Mutex

	mu        sync.Mutex
	gen       uint64
	cancel    context.CancelFunc
	detail    Detail
	listeners map[int]DetailListener
	nextID    int
}

// NewDetailLoader creates a loader backed by acc.
func NewDetailLoader(acc catalog.Accessor, logger *slog.Logger) *DetailLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &DetailLoader{
		catalog:   acc,
		logger:    logger,
		listeners: make(map[int]DetailListener),
	}
}

// Load fetches the job with the given id and blocks until it resolves. It returns
// ErrSuperseded if another Load started first. An empty id resolves to not found
// without a fetch.
func (d *DetailLoader) Load(ctx context.Context, id string) (Detail, error) {
	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var gen uint64
	d.publish(func() bool {
		d.gen++
		gen = d.gen
		if d.cancel != nil {
			d.cancel()
		}
		d.cancel = cancel
		d.detail = Detail{ID: id, IsLoading: id != ""}
		if id == "" {
			d.detail.NotFound = true
			d.detail.Error = NotFoundMessage
		}
		return true
	})
	if id == "" {
		return d.Current(), nil
	}

	job, err := d.catalog.GetJob(reqCtx, id)

	var result Detail
	applied := d.publish(func() bool {
		if gen != d.gen {
			return false
		}
		d.cancel = nil
		switch {
		case err != nil:
			d.logger.Error("failed to fetch job", "id", id, "error", err)
			d.detail = Detail{ID: id, Error: DetailFailMessage}
		case job == nil:
			d.detail = Detail{ID: id, NotFound: true, Error: NotFoundMessage}
		default:
			d.detail = Detail{ID: id, Job: job}
		}
		result = d.detail
		return true
	})
	if !applied {
		return Detail{}, ErrSuperseded
	}
	return result, nil
}

// Current returns the latest published Detail.
func (d *DetailLoader) Current() Detail {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.detail
}

// Cancel aborts any in-flight request. A pending Detail is replaced by an idle
// one for the same id and published; a settled Detail is left as is.
func (d *DetailLoader) Cancel() {
	d.publish(func() bool {
		d.gen++
		if d.cancel != nil {
			d.cancel()
			d.cancel = nil
		}
		if !d.detail.IsLoading {
			return false
		}
		d.detail = Detail{ID: d.detail.ID}
		return true
	})
}

// Subscribe registers l for every future Detail and returns a function that removes it.
func (d *DetailLoader) Subscribe(l DetailListener) (unsubscribe func()) {
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.listeners[id] = l
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			delete(d.listeners, id)
			d.mu.Unlock()
		})
	}
}

func (d *DetailLoader) publish(apply func() bool) bool {
	d.publishMu.Lock()
	defer d.publishMu.Unlock()

	d.mu.Lock()
	if !apply() {
		d.mu.Unlock()
		return false
	}
	detail := d.detail
	listeners := make([]DetailListener, 0, len(d.listeners))
	for _, l := range d.listeners {
		listeners = append(listeners, l)
	}
	d.mu.Unlock()

	for _, l := range listeners {
		l(detail)
	}
	return true
}
