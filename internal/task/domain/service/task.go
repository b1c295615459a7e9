package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cloudscheduler/console/internal/task/domain/aggregate"
	"github.com/cloudscheduler/console/internal/task/domain/aggregate/vo"
	"github.com/cloudscheduler/console/internal/task/domain/repository"
	"github.com/cloudscheduler/console/internal/task/infrastructure/runner"
	"github.com/cloudscheduler/console/pkg/domain"
	"github.com/cloudscheduler/console/pkg/page"
)

var (
	ErrTaskNotFound     = errors.New("[TaskDomainService] task not found")
	ErrSettingsNotFound = errors.New("[TaskDomainService] task settings not found")
)

type TaskDomainService struct {
	*domain.Service
	tasks    repository.TaskRepository
	settings repository.SettingsRepository
	runner   runner.TaskRunner
}

func NewTaskService(
	srv *domain.Service,
	tasks repository.TaskRepository,
	settings repository.SettingsRepository,
	r runner.TaskRunner,
) *TaskDomainService {
	return &TaskDomainService{
		Service:  srv,
		tasks:    tasks,
		settings: settings,
		runner:   r,
	}
}

// List returns one page of tasks, newest first. Admins see every task,
// other users only their own.
func (s *TaskDomainService) List(ctx context.Context, username string, isAdmin bool, p *page.Page) (*aggregate.TaskPage, error) {
	scope := username
	if isAdmin {
		scope = ""
	}
	entries, count, err := s.tasks.List(ctx, scope, p)
	if err != nil {
		return nil, err
	}
	return &aggregate.TaskPage{
		Count:     count,
		PageCount: page.Count(count),
		Entries:   entries,
	}, nil
}

// Create schedules a new task from a settings template. The executor
// picks it up asynchronously.
func (s *TaskDomainService) Create(ctx context.Context, username, settingsUUID string) (*aggregate.Task, error) {
	settings, err := s.settings.Get(ctx, settingsUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}

	task := &aggregate.Task{
		UUID:     uuid.NewString(),
		Settings: aggregate.SettingsRef{UUID: settings.UUID, Name: settings.Name},
		User:     username,
		Status:   vo.Scheduled,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Get returns task detail. For a running task the log is read live from
// the runner instead of the stored row.
func (s *TaskDomainService) Get(ctx context.Context, username string, isAdmin bool, taskUUID string) (*aggregate.Task, error) {
	task, err := s.get(ctx, username, isAdmin, taskUUID)
	if err != nil {
		return nil, err
	}

	if task.Status == vo.Running {
		live, err := s.runner.Logs(ctx, task.UUID)
		if err != nil {
			s.Logger.WithContext(ctx).Warn("[TaskDomainService.Get] live log fetch failed",
				zap.String("task", task.UUID), zap.Error(err))
			task.Log = "Failed to get logs from running task."
		} else {
			task.Log = live
		}
	}
	return task, nil
}

// Delete marks a task Deleting; the executor reaps it afterwards.
func (s *TaskDomainService) Delete(ctx context.Context, username string, isAdmin bool, taskUUID string) error {
	task, err := s.get(ctx, username, isAdmin, taskUUID)
	if err != nil {
		return err
	}
	return s.tasks.UpdateStatus(ctx, task.UUID, vo.Deleting)
}

func (s *TaskDomainService) get(ctx context.Context, username string, isAdmin bool, taskUUID string) (*aggregate.Task, error) {
	scope := username
	if isAdmin {
		scope = ""
	}
	task, err := s.tasks.Get(ctx, taskUUID, scope)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}
