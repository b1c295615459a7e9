package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/cloudscheduler/console/internal/task/domain/aggregate"
	"github.com/cloudscheduler/console/internal/task/domain/aggregate/vo"
	domainrepo "github.com/cloudscheduler/console/internal/task/domain/repository"
	"github.com/cloudscheduler/console/internal/task/infrastructure/model"
	"github.com/cloudscheduler/console/pkg/log"
	"github.com/cloudscheduler/console/pkg/page"
)

func testRepos(t *testing.T) (domainrepo.TaskRepository, domainrepo.SettingsRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	repo := NewRepository(&log.Logger{Logger: zap.NewNop()}, db)
	return NewTaskRepository(repo), NewSettingsRepository(repo), db
}

func seedSettings(t *testing.T, repo domainrepo.SettingsRepository, uuid, name string) *aggregate.Settings {
	t.Helper()
	settings := &aggregate.Settings{
		UUID: uuid,
		Name: name,
		Container: aggregate.ContainerConfig{
			Image:       "alpine:3.20",
			Commands:    []string{"echo hello"},
			MemoryLimit: "128M",
		},
		TimeLimit:   60,
		Replica:     1,
		TTLInterval: 1,
	}
	if err := repo.Create(context.Background(), settings); err != nil {
		t.Fatal(err)
	}
	return settings
}

func seedTask(t *testing.T, repo domainrepo.TaskRepository, uuid, settingsUUID, user string) *aggregate.Task {
	t.Helper()
	task := &aggregate.Task{
		UUID:     uuid,
		Settings: aggregate.SettingsRef{UUID: settingsUUID},
		User:     user,
		Status:   vo.Scheduled,
	}
	if err := repo.Create(context.Background(), task); err != nil {
		t.Fatal(err)
	}
	return task
}

func TestSettingsRoundTrip(t *testing.T) {
	_, settings, _ := testRepos(t)
	ctx := context.Background()

	seedSettings(t, settings, "s-1", "nightly-build")

	got, err := settings.Get(ctx, "s-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "nightly-build" {
		t.Fatalf("name = %q", got.Name)
	}
	if got.Container.Image != "alpine:3.20" || got.Container.MemoryLimit != "128M" {
		t.Fatalf("container config lost: %+v", got.Container)
	}
	if len(got.Container.Commands) != 1 || got.Container.Commands[0] != "echo hello" {
		t.Fatalf("commands lost: %v", got.Container.Commands)
	}

	if _, err := settings.Get(ctx, "missing"); !errors.Is(err, domainrepo.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSettingsDuplicateName(t *testing.T) {
	_, settings, _ := testRepos(t)
	ctx := context.Background()

	seedSettings(t, settings, "s-1", "nightly-build")

	dup := &aggregate.Settings{UUID: "s-2", Name: "nightly-build"}
	if err := settings.Create(ctx, dup); !errors.Is(err, domainrepo.ErrDuplicateName) {
		t.Fatalf("err = %v, want ErrDuplicateName", err)
	}
}

func TestSettingsUpdate(t *testing.T) {
	_, settings, _ := testRepos(t)
	ctx := context.Background()

	s := seedSettings(t, settings, "s-1", "nightly-build")
	s.Name = "hourly-build"
	s.TimeLimit = 300
	s.Container.Image = "debian:12"
	if err := settings.Update(ctx, s); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := settings.Get(ctx, "s-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "hourly-build" || got.TimeLimit != 300 || got.Container.Image != "debian:12" {
		t.Fatalf("update not persisted: %+v", got)
	}

	ghost := &aggregate.Settings{UUID: "missing", Name: "x"}
	if err := settings.Update(ctx, ghost); !errors.Is(err, domainrepo.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSettingsDeleteGuardsReferences(t *testing.T) {
	tasks, settings, _ := testRepos(t)
	ctx := context.Background()

	seedSettings(t, settings, "s-1", "nightly-build")
	seedTask(t, tasks, "t-1", "s-1", "alice")

	if err := settings.Delete(ctx, "s-1"); !errors.Is(err, domainrepo.ErrInUse) {
		t.Fatalf("err = %v, want ErrInUse", err)
	}

	if err := tasks.Remove(ctx, "t-1"); err != nil {
		t.Fatal(err)
	}
	if err := settings.Delete(ctx, "s-1"); err != nil {
		t.Fatalf("Delete after last task removed: %v", err)
	}
	if err := settings.Delete(ctx, "s-1"); !errors.Is(err, domainrepo.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestTaskScoping(t *testing.T) {
	tasks, settings, _ := testRepos(t)
	ctx := context.Background()

	seedSettings(t, settings, "s-1", "nightly-build")
	seedTask(t, tasks, "t-1", "s-1", "alice")
	seedTask(t, tasks, "t-2", "s-1", "bob")

	got, err := tasks.Get(ctx, "t-1", "alice")
	if err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if got.Settings.Name != "nightly-build" {
		t.Fatalf("join lost the settings name: %+v", got.Settings)
	}

	if _, err := tasks.Get(ctx, "t-1", "bob"); !errors.Is(err, domainrepo.ErrNotFound) {
		t.Fatalf("foreign read: err = %v, want ErrNotFound", err)
	}
	if _, err := tasks.Get(ctx, "t-1", ""); err != nil {
		t.Fatalf("admin read: %v", err)
	}

	_, count, err := tasks.List(ctx, "alice", &page.Page{Page: 1})
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("scoped count = %d, want 1", count)
	}
	_, count, err = tasks.List(ctx, "", &page.Page{Page: 1})
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("admin count = %d, want 2", count)
	}
}

func TestTaskListOrder(t *testing.T) {
	tasks, settings, db := testRepos(t)
	ctx := context.Background()

	seedSettings(t, settings, "s-1", "nightly-build")
	seedTask(t, tasks, "t-old", "s-1", "alice")
	seedTask(t, tasks, "t-new", "s-1", "alice")

	base := time.Now().Add(-time.Hour)
	for i, uuid := range []string{"t-old", "t-new"} {
		err := db.Model(&model.TaskInfo{}).
			Where("uuid = ?", uuid).
			Update("create_time", base.Add(time.Duration(i)*time.Minute)).Error
		if err != nil {
			t.Fatal(err)
		}
	}

	entries, _, err := tasks.List(ctx, "alice", &page.Page{Page: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	if entries[0].UUID != "t-new" || entries[1].UUID != "t-old" {
		t.Fatalf("order = [%s %s], want newest first", entries[0].UUID, entries[1].UUID)
	}
}

func TestTaskFinish(t *testing.T) {
	tasks, settings, _ := testRepos(t)
	ctx := context.Background()

	seedSettings(t, settings, "s-1", "nightly-build")
	seedTask(t, tasks, "t-1", "s-1", "alice")

	if err := tasks.Finish(ctx, "t-1", vo.Failed, "exit status 3", 3); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	got, err := tasks.Get(ctx, "t-1", "")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != vo.Failed || got.Log != "exit status 3" {
		t.Fatalf("task = %+v", got)
	}
	if got.ExitCode == nil || *got.ExitCode != 3 {
		t.Fatalf("exit code = %v, want 3", got.ExitCode)
	}

	if err := tasks.Finish(ctx, "missing", vo.Failed, "", -1); !errors.Is(err, domainrepo.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestClaimScheduled(t *testing.T) {
	tasks, settings, _ := testRepos(t)
	ctx := context.Background()

	seedSettings(t, settings, "s-1", "nightly-build")
	seedTask(t, tasks, "t-1", "s-1", "alice")
	seedTask(t, tasks, "t-2", "s-1", "alice")
	seedTask(t, tasks, "t-3", "s-1", "alice")

	claimed, err := tasks.ClaimScheduled(ctx, 2)
	if err != nil {
		t.Fatalf("ClaimScheduled: %v", err)
	}
	if len(claimed) != 2 {
		t.Fatalf("claimed %d, want 2", len(claimed))
	}
	for _, task := range claimed {
		if task.Status != vo.Waiting {
			t.Fatalf("claimed task %s status = %s, want Waiting", task.UUID, task.Status.Label())
		}
	}

	rest, err := tasks.ClaimScheduled(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rest) != 1 {
		t.Fatalf("second claim got %d, want 1", len(rest))
	}

	none, err := tasks.ClaimScheduled(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Fatalf("third claim got %d, want 0", len(none))
	}
}

func TestListByStatus(t *testing.T) {
	tasks, settings, _ := testRepos(t)
	ctx := context.Background()

	seedSettings(t, settings, "s-1", "nightly-build")
	seedTask(t, tasks, "t-1", "s-1", "alice")
	seedTask(t, tasks, "t-2", "s-1", "alice")

	if err := tasks.UpdateStatus(ctx, "t-2", vo.Deleting); err != nil {
		t.Fatal(err)
	}

	deleting, err := tasks.ListByStatus(ctx, vo.Deleting, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(deleting) != 1 || deleting[0].UUID != "t-2" {
		t.Fatalf("deleting = %+v", deleting)
	}
}
