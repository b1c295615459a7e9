package executor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cloudscheduler/console/internal/task/domain/aggregate"
	"github.com/cloudscheduler/console/internal/task/domain/aggregate/vo"
	"github.com/cloudscheduler/console/internal/task/infrastructure/runner"
	"github.com/cloudscheduler/console/pkg/log"
	"github.com/cloudscheduler/console/pkg/page"
)

type fakeTaskRepo struct {
	mu        sync.Mutex
	scheduled []*aggregate.Task
	deleting  []*aggregate.Task
	statuses  map[string]*vo.Status
	finished  map[string]finishRecord
	removed   []string
}

type finishRecord struct {
	status   *vo.Status
	log      string
	exitCode int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{
		statuses: map[string]*vo.Status{},
		finished: map[string]finishRecord{},
	}
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *aggregate.Task) error { return nil }

func (r *fakeTaskRepo) Get(ctx context.Context, uuid, username string) (*aggregate.Task, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeTaskRepo) List(ctx context.Context, username string, p *page.Page) ([]*aggregate.Task, int64, error) {
	return nil, 0, nil
}

func (r *fakeTaskRepo) UpdateStatus(ctx context.Context, uuid string, status *vo.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[uuid] = status
	return nil
}

func (r *fakeTaskRepo) Finish(ctx context.Context, uuid string, status *vo.Status, taskLog string, exitCode int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished[uuid] = finishRecord{status: status, log: taskLog, exitCode: exitCode}
	return nil
}

func (r *fakeTaskRepo) ClaimScheduled(ctx context.Context, limit int) ([]*aggregate.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	claimed := r.scheduled
	if len(claimed) > limit {
		claimed = claimed[:limit]
	}
	r.scheduled = r.scheduled[len(claimed):]
	for _, t := range claimed {
		r.statuses[t.UUID] = vo.Waiting
	}
	return claimed, nil
}

func (r *fakeTaskRepo) ListByStatus(ctx context.Context, status *vo.Status, limit int) ([]*aggregate.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if status == vo.Deleting {
		return r.deleting, nil
	}
	return nil, nil
}

func (r *fakeTaskRepo) Remove(ctx context.Context, uuid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, uuid)
	return nil
}

func (r *fakeTaskRepo) finishedRecord(uuid string) (finishRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.finished[uuid]
	return rec, ok
}

type fakeSettings struct {
	settings map[string]*aggregate.Settings
}

func (f *fakeSettings) Get(ctx context.Context, settingsUUID string) (*aggregate.Settings, error) {
	settings, ok := f.settings[settingsUUID]
	if !ok {
		return nil, errors.New("settings not found")
	}
	return settings, nil
}

type stubRunner struct {
	mu       sync.Mutex
	log      string
	exitCode int
	err      error
	killed   []string
	ran      []string
}

func (r *stubRunner) Run(ctx context.Context, task *aggregate.Task, settings *aggregate.Settings) (string, int, error) {
	r.mu.Lock()
	r.ran = append(r.ran, task.UUID)
	r.mu.Unlock()
	return r.log, r.exitCode, r.err
}

func (r *stubRunner) Logs(ctx context.Context, taskUUID string) (string, error) { return "", nil }

func (r *stubRunner) Kill(ctx context.Context, taskUUID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.killed = append(r.killed, taskUUID)
	return nil
}

func newTestExecutor(repo *fakeTaskRepo, settings *fakeSettings, r *stubRunner) *Executor {
	conf := viper.New()
	conf.Set("app.executor.pool_num", 2)
	conf.Set("app.executor.claim_limit", 4)
	logger := &log.Logger{Logger: zap.NewNop()}
	return NewExecutor(conf, logger, repo, settings, r)
}

func task(uuid, settingsUUID string) *aggregate.Task {
	return &aggregate.Task{
		UUID:     uuid,
		Settings: aggregate.SettingsRef{UUID: settingsUUID},
		Status:   vo.Scheduled,
	}
}

func waitFinished(t *testing.T, repo *fakeTaskRepo, uuid string) finishRecord {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if rec, ok := repo.finishedRecord(uuid); ok {
			return rec
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("task %s never finished", uuid)
	return finishRecord{}
}

func TestDispatchRunsClaimedTask(t *testing.T) {
	repo := newFakeTaskRepo()
	repo.scheduled = []*aggregate.Task{task("t-1", "s-1")}
	settings := &fakeSettings{settings: map[string]*aggregate.Settings{
		"s-1": {UUID: "s-1", TimeLimit: 10},
	}}
	stub := &stubRunner{log: "done", exitCode: 0}
	e := newTestExecutor(repo, settings, stub)
	defer e.pool.Release()

	e.dispatch(context.Background())

	rec := waitFinished(t, repo, "t-1")
	if rec.status != vo.Succeeded {
		t.Fatalf("status = %s, want Succeeded", rec.status.Label())
	}
	if rec.log != "done" || rec.exitCode != 0 {
		t.Fatalf("record = %+v", rec)
	}
}

func TestExecuteStatusMapping(t *testing.T) {
	cases := []struct {
		name     string
		log      string
		exitCode int
		err      error
		want     *vo.Status
	}{
		{"success", "ok", 0, nil, vo.Succeeded},
		{"nonzero exit", "boom", 3, nil, vo.Failed},
		{"runner error", "", -1, errors.New("docker down"), vo.Failed},
		{"time limit", "partial", -1, context.DeadlineExceeded, vo.TimeLimitExceeded},
		{"memory limit", "partial", 137, runner.ErrMemoryExceeded, vo.MemoryLimitExceeded},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			repo := newFakeTaskRepo()
			settings := &fakeSettings{settings: map[string]*aggregate.Settings{
				"s-1": {UUID: "s-1", TimeLimit: 10},
			}}
			e := newTestExecutor(repo, settings, &stubRunner{log: c.log, exitCode: c.exitCode, err: c.err})
			defer e.pool.Release()

			e.execute(context.Background(), task("t-1", "s-1"))

			rec, ok := repo.finishedRecord("t-1")
			if !ok {
				t.Fatal("task not finished")
			}
			if rec.status != c.want {
				t.Fatalf("status = %s, want %s", rec.status.Label(), c.want.Label())
			}
		})
	}
}

func TestExecuteMissingSettingsFails(t *testing.T) {
	repo := newFakeTaskRepo()
	e := newTestExecutor(repo, &fakeSettings{settings: map[string]*aggregate.Settings{}}, &stubRunner{})
	defer e.pool.Release()

	e.execute(context.Background(), task("t-1", "gone"))

	rec, ok := repo.finishedRecord("t-1")
	if !ok {
		t.Fatal("task not finished")
	}
	if rec.status != vo.Failed {
		t.Fatalf("status = %s, want Failed", rec.status.Label())
	}
}

func TestReapKillsAndRemoves(t *testing.T) {
	repo := newFakeTaskRepo()
	repo.deleting = []*aggregate.Task{task("t-1", "s-1"), task("t-2", "s-1")}
	stub := &stubRunner{}
	e := newTestExecutor(repo, &fakeSettings{}, stub)
	defer e.pool.Release()

	e.reap(context.Background())

	if len(stub.killed) != 2 {
		t.Fatalf("killed %d containers, want 2", len(stub.killed))
	}
	if len(repo.removed) != 2 {
		t.Fatalf("removed %d rows, want 2", len(repo.removed))
	}
}
