package console

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	v1 "github.com/cloudscheduler/console/api/v1"
)

// DefaultPollInterval is how often the watcher refreshes the task list.
const DefaultPollInterval = 3 * time.Second

// TaskLister is the slice of the console API the watcher polls.
type TaskLister interface {
	ListTasks(ctx context.Context, page int) (*v1.TaskListPayload, error)
}

// TaskDeleter issues delete requests on behalf of the watcher.
type TaskDeleter interface {
	DeleteTask(ctx context.Context, taskUUID string) error
}

// WatcherOption configures a Watcher.
type WatcherOption func(w *Watcher)

func WithPollInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

func WithOnUpdate(fn func(*v1.TaskListPayload)) WatcherOption {
	return func(w *Watcher) {
		w.onUpdate = fn
	}
}

func WithOnError(fn func(error)) WatcherOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// Watcher keeps a page of the task list fresh by polling. Responses are
// sequence stamped on dispatch so a slow poll that settles after a newer
// one cannot roll the view back.
type Watcher struct {
	lister   TaskLister
	deleter  TaskDeleter
	interval time.Duration

	onUpdate func(*v1.TaskListPayload)
	onError  func(error)

	seq     atomic.Uint64
	applied atomic.Uint64

	mu      sync.RWMutex
	page    int
	current *v1.TaskListPayload

	cancel context.CancelFunc
	done   chan struct{}
}

func NewWatcher(lister TaskLister, deleter TaskDeleter, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		lister:   lister,
		deleter:  deleter,
		interval: DefaultPollInterval,
		page:     1,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins polling. The first fetch fires immediately, then one per
// interval until Stop or ctx cancellation.
func (w *Watcher) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})

	go func() {
		defer close(w.done)
		w.poll(ctx)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.poll(ctx)
			}
		}
	}()
}

// Stop halts polling and cancels any in-flight request.
func (w *Watcher) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
}

// SetPage switches the watched page and refreshes right away.
func (w *Watcher) SetPage(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}
	w.mu.Lock()
	w.page = page
	w.mu.Unlock()
	w.poll(ctx)
}

// Current returns the last applied task list, or nil before the first
// successful poll.
func (w *Watcher) Current() *v1.TaskListPayload {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Refresh forces one poll outside the ticker schedule.
func (w *Watcher) Refresh(ctx context.Context) {
	w.poll(ctx)
}

// Delete requests deletion of one task and refreshes the list. The
// outcome, success or failure, always settles the request; errors go to
// the error callback.
func (w *Watcher) Delete(ctx context.Context, taskUUID string) error {
	err := w.deleter.DeleteTask(ctx, taskUUID)
	if err != nil {
		w.reportError(err)
	}
	w.poll(ctx)
	return err
}

func (w *Watcher) poll(ctx context.Context) {
	seq := w.seq.Add(1)

	w.mu.RLock()
	page := w.page
	w.mu.RUnlock()

	payload, err := w.lister.ListTasks(ctx, page)
	if err != nil {
		if ctx.Err() == nil {
			w.reportError(err)
		}
		return
	}
	if !w.apply(seq, payload) {
		return
	}
	if w.onUpdate != nil {
		w.onUpdate(payload)
	}
}

// apply installs a response unless a later poll already landed.
func (w *Watcher) apply(seq uint64, payload *v1.TaskListPayload) bool {
	for {
		last := w.applied.Load()
		if seq <= last {
			return false
		}
		if w.applied.CompareAndSwap(last, seq) {
			break
		}
	}
	w.mu.Lock()
	w.current = payload
	w.mu.Unlock()
	return true
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
