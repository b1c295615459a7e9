package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/cloudscheduler/console/internal/task/domain/aggregate"
	"github.com/cloudscheduler/console/internal/task/domain/aggregate/vo"
	"github.com/cloudscheduler/console/internal/task/domain/repository"
	"github.com/cloudscheduler/console/pkg/domain"
	"github.com/cloudscheduler/console/pkg/log"
	"github.com/cloudscheduler/console/pkg/page"
)

type fakeTaskRepo struct {
	tasks    map[string]*aggregate.Task
	statuses map[string]*vo.Status
	created  []*aggregate.Task

	listScope string
}

func newFakeTaskRepo(tasks ...*aggregate.Task) *fakeTaskRepo {
	r := &fakeTaskRepo{
		tasks:    map[string]*aggregate.Task{},
		statuses: map[string]*vo.Status{},
	}
	for _, t := range tasks {
		r.tasks[t.UUID] = t
	}
	return r
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *aggregate.Task) error {
	r.created = append(r.created, task)
	r.tasks[task.UUID] = task
	return nil
}

func (r *fakeTaskRepo) Get(ctx context.Context, uuid, username string) (*aggregate.Task, error) {
	task, ok := r.tasks[uuid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if username != "" && task.User != username {
		return nil, repository.ErrNotFound
	}
	return task, nil
}

func (r *fakeTaskRepo) List(ctx context.Context, username string, p *page.Page) ([]*aggregate.Task, int64, error) {
	r.listScope = username
	var out []*aggregate.Task
	for _, t := range r.tasks {
		if username == "" || t.User == username {
			out = append(out, t)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeTaskRepo) UpdateStatus(ctx context.Context, uuid string, status *vo.Status) error {
	if _, ok := r.tasks[uuid]; !ok {
		return repository.ErrNotFound
	}
	r.statuses[uuid] = status
	return nil
}

func (r *fakeTaskRepo) Finish(ctx context.Context, uuid string, status *vo.Status, log string, exitCode int) error {
	return r.UpdateStatus(ctx, uuid, status)
}

func (r *fakeTaskRepo) ClaimScheduled(ctx context.Context, limit int) ([]*aggregate.Task, error) {
	return nil, nil
}

func (r *fakeTaskRepo) ListByStatus(ctx context.Context, status *vo.Status, limit int) ([]*aggregate.Task, error) {
	return nil, nil
}

func (r *fakeTaskRepo) Remove(ctx context.Context, uuid string) error {
	delete(r.tasks, uuid)
	return nil
}

type fakeSettingsRepo struct {
	settings map[string]*aggregate.Settings
}

func (r *fakeSettingsRepo) Create(ctx context.Context, settings *aggregate.Settings) error {
	r.settings[settings.UUID] = settings
	return nil
}

func (r *fakeSettingsRepo) Get(ctx context.Context, uuid string) (*aggregate.Settings, error) {
	settings, ok := r.settings[uuid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return settings, nil
}

func (r *fakeSettingsRepo) List(ctx context.Context, orderBy []string, p *page.Page) ([]*aggregate.Settings, int64, error) {
	return nil, 0, nil
}

func (r *fakeSettingsRepo) Update(ctx context.Context, settings *aggregate.Settings) error {
	return nil
}

func (r *fakeSettingsRepo) Delete(ctx context.Context, uuid string) error {
	return nil
}

type fakeRunner struct {
	logs    string
	logsErr error
	killed  []string
}

func (r *fakeRunner) Run(ctx context.Context, task *aggregate.Task, settings *aggregate.Settings) (string, int, error) {
	return "", 0, nil
}

func (r *fakeRunner) Logs(ctx context.Context, taskUUID string) (string, error) {
	if r.logsErr != nil {
		return "", r.logsErr
	}
	return r.logs, nil
}

func (r *fakeRunner) Kill(ctx context.Context, taskUUID string) error {
	r.killed = append(r.killed, taskUUID)
	return nil
}

func testService() *domain.Service {
	return &domain.Service{Logger: &log.Logger{Logger: zap.NewNop()}}
}

func newTaskService(tasks *fakeTaskRepo, settings *fakeSettingsRepo, r *fakeRunner) *TaskDomainService {
	if settings == nil {
		settings = &fakeSettingsRepo{settings: map[string]*aggregate.Settings{}}
	}
	if r == nil {
		r = &fakeRunner{}
	}
	return NewTaskService(testService(), tasks, settings, r)
}

func TestTaskCreate(t *testing.T) {
	repo := newFakeTaskRepo()
	settings := &fakeSettingsRepo{settings: map[string]*aggregate.Settings{
		"s-1": {UUID: "s-1", Name: "nightly-build"},
	}}
	svc := newTaskService(repo, settings, nil)

	task, err := svc.Create(context.Background(), "alice", "s-1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.UUID == "" {
		t.Fatal("created task has no uuid")
	}
	if task.Status != vo.Scheduled {
		t.Fatalf("status = %s, want Scheduled", task.Status.Label())
	}
	if task.Settings.Name != "nightly-build" || task.User != "alice" {
		t.Fatalf("unexpected task: %+v", task)
	}
	if len(repo.created) != 1 {
		t.Fatalf("created %d rows, want 1", len(repo.created))
	}
}

func TestTaskCreateUnknownSettings(t *testing.T) {
	svc := newTaskService(newFakeTaskRepo(), nil, nil)

	if _, err := svc.Create(context.Background(), "alice", "nope"); !errors.Is(err, ErrSettingsNotFound) {
		t.Fatalf("err = %v, want ErrSettingsNotFound", err)
	}
}

func TestTaskListScoping(t *testing.T) {
	repo := newFakeTaskRepo(
		&aggregate.Task{UUID: "t-1", User: "alice", Status: vo.Running},
		&aggregate.Task{UUID: "t-2", User: "bob", Status: vo.Succeeded},
	)
	svc := newTaskService(repo, nil, nil)

	got, err := svc.List(context.Background(), "alice", false, &page.Page{Page: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if repo.listScope != "alice" {
		t.Fatalf("scope = %q, want alice", repo.listScope)
	}
	if got.Count != 1 {
		t.Fatalf("count = %d, want 1", got.Count)
	}

	got, err = svc.List(context.Background(), "alice", true, &page.Page{Page: 1})
	if err != nil {
		t.Fatalf("List as admin: %v", err)
	}
	if repo.listScope != "" {
		t.Fatalf("admin scope = %q, want empty", repo.listScope)
	}
	if got.Count != 2 {
		t.Fatalf("admin count = %d, want 2", got.Count)
	}
	if got.PageCount != 1 {
		t.Fatalf("page count = %d, want 1", got.PageCount)
	}
}

func TestTaskGetRunningUsesLiveLog(t *testing.T) {
	repo := newFakeTaskRepo(
		&aggregate.Task{UUID: "t-1", User: "alice", Status: vo.Running, Log: "stored"},
	)
	svc := newTaskService(repo, nil, &fakeRunner{logs: "live output"})

	task, err := svc.Get(context.Background(), "alice", false, "t-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if task.Log != "live output" {
		t.Fatalf("log = %q, want live output", task.Log)
	}
}

func TestTaskGetRunningLogFailure(t *testing.T) {
	repo := newFakeTaskRepo(
		&aggregate.Task{UUID: "t-1", User: "alice", Status: vo.Running},
	)
	svc := newTaskService(repo, nil, &fakeRunner{logsErr: errors.New("container gone")})

	task, err := svc.Get(context.Background(), "alice", false, "t-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if task.Log != "Failed to get logs from running task." {
		t.Fatalf("log = %q, want the fallback message", task.Log)
	}
}

func TestTaskGetScope(t *testing.T) {
	repo := newFakeTaskRepo(
		&aggregate.Task{UUID: "t-1", User: "bob", Status: vo.Succeeded},
	)
	svc := newTaskService(repo, nil, nil)

	if _, err := svc.Get(context.Background(), "alice", false, "t-1"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("foreign task: err = %v, want ErrTaskNotFound", err)
	}
	if _, err := svc.Get(context.Background(), "alice", true, "t-1"); err != nil {
		t.Fatalf("admin read: %v", err)
	}
}

func TestTaskDeleteMarksDeleting(t *testing.T) {
	repo := newFakeTaskRepo(
		&aggregate.Task{UUID: "t-1", User: "alice", Status: vo.Running},
	)
	svc := newTaskService(repo, nil, nil)

	if err := svc.Delete(context.Background(), "alice", false, "t-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if repo.statuses["t-1"] != vo.Deleting {
		t.Fatalf("status = %v, want Deleting", repo.statuses["t-1"])
	}
	if _, ok := repo.tasks["t-1"]; !ok {
		t.Fatal("delete must not remove the row, only mark it")
	}
}
