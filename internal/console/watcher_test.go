package console

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	v1 "github.com/cloudscheduler/console/api/v1"
)

type fakeLister struct {
	mu      sync.Mutex
	calls   int
	results []*v1.TaskListPayload
	err     error
	block   chan struct{}
}

func (f *fakeLister) ListTasks(ctx context.Context, page int) (*v1.TaskListPayload, error) {
	f.mu.Lock()
	call := f.calls
	f.calls++
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if call >= len(f.results) {
		call = len(f.results) - 1
	}
	return f.results[call], nil
}

func (f *fakeLister) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeDeleter struct {
	mu      sync.Mutex
	deleted []string
	err     error
}

func (f *fakeDeleter) DeleteTask(ctx context.Context, taskUUID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, taskUUID)
	return f.err
}

func listOf(uuids ...string) *v1.TaskListPayload {
	entries := make([]v1.TaskEntry, 0, len(uuids))
	for _, id := range uuids {
		entries = append(entries, v1.TaskEntry{UUID: id})
	}
	return &v1.TaskListPayload{
		Count:     int64(len(entries)),
		PageCount: 1,
		Entry:     entries,
	}
}

func TestWatcherFetchesImmediately(t *testing.T) {
	lister := &fakeLister{results: []*v1.TaskListPayload{listOf("a")}}
	updates := make(chan *v1.TaskListPayload, 1)

	w := NewWatcher(lister, &fakeDeleter{},
		WithPollInterval(time.Hour),
		WithOnUpdate(func(p *v1.TaskListPayload) { updates <- p }),
	)
	w.Start(context.Background())
	defer w.Stop()

	select {
	case p := <-updates:
		if len(p.Entry) != 1 || p.Entry[0].UUID != "a" {
			t.Fatalf("unexpected payload: %+v", p)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no update before the first tick")
	}

	if got := w.Current(); got == nil || got.Entry[0].UUID != "a" {
		t.Fatalf("Current() = %+v, want the fetched list", got)
	}
}

func TestWatcherPollsOnIntervalUntilStopped(t *testing.T) {
	lister := &fakeLister{results: []*v1.TaskListPayload{listOf("a")}}

	w := NewWatcher(lister, &fakeDeleter{}, WithPollInterval(20*time.Millisecond))
	w.Start(context.Background())

	deadline := time.Now().Add(5 * time.Second)
	for lister.callCount() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if lister.callCount() < 3 {
		t.Fatal("watcher never polled past the initial fetch")
	}

	w.Stop()
	settled := lister.callCount()
	time.Sleep(100 * time.Millisecond)
	if got := lister.callCount(); got != settled {
		t.Fatalf("polled %d times after Stop", got-settled)
	}
}

func TestWatcherDropsStaleResponse(t *testing.T) {
	w := NewWatcher(&fakeLister{}, &fakeDeleter{})

	stale := listOf("old")
	fresh := listOf("new")

	if !w.apply(2, fresh) {
		t.Fatal("newer response was rejected")
	}
	if w.apply(1, stale) {
		t.Fatal("stale response was applied over a newer one")
	}
	if got := w.Current(); got.Entry[0].UUID != "new" {
		t.Fatalf("Current() rolled back to %q", got.Entry[0].UUID)
	}
}

func TestWatcherReportsErrors(t *testing.T) {
	boom := errors.New("connection refused")
	lister := &fakeLister{err: boom}
	errs := make(chan error, 1)

	w := NewWatcher(lister, &fakeDeleter{},
		WithPollInterval(time.Hour),
		WithOnError(func(err error) { errs <- err }),
	)
	w.Start(context.Background())
	defer w.Stop()

	select {
	case err := <-errs:
		if !errors.Is(err, boom) {
			t.Fatalf("got error %v, want %v", err, boom)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("poll error never reached the callback")
	}

	if w.Current() != nil {
		t.Fatal("failed poll must not install a payload")
	}
}

func TestWatcherStopCancelsInFlight(t *testing.T) {
	block := make(chan struct{})
	lister := &fakeLister{results: []*v1.TaskListPayload{listOf("a")}, block: block}

	w := NewWatcher(lister, &fakeDeleter{}, WithPollInterval(time.Hour))
	w.Start(context.Background())

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not cancel the in-flight poll")
	}
}

func TestWatcherDeleteSettlesOnFailure(t *testing.T) {
	boom := errors.New("task not found")
	deleter := &fakeDeleter{err: boom}
	lister := &fakeLister{results: []*v1.TaskListPayload{listOf("a")}}
	errs := make(chan error, 2)

	w := NewWatcher(lister, deleter, WithOnError(func(err error) { errs <- err }))

	if err := w.Delete(context.Background(), "t-1"); !errors.Is(err, boom) {
		t.Fatalf("Delete() = %v, want %v", err, boom)
	}
	select {
	case err := <-errs:
		if !errors.Is(err, boom) {
			t.Fatalf("callback got %v, want %v", err, boom)
		}
	default:
		t.Fatal("delete failure was swallowed")
	}

	// The failed delete still triggered a refresh.
	if lister.callCount() == 0 {
		t.Fatal("Delete did not refresh the list")
	}
	if len(deleter.deleted) != 1 || deleter.deleted[0] != "t-1" {
		t.Fatalf("deleted = %v, want [t-1]", deleter.deleted)
	}
}
