package repository

import (
	"context"

	"github.com/cloudscheduler/console/internal/task/domain/aggregate"
	"github.com/cloudscheduler/console/internal/task/domain/aggregate/vo"
	"github.com/cloudscheduler/console/pkg/page"
)

type TaskRepository interface {
	Create(ctx context.Context, task *aggregate.Task) error
	// Get scopes by owner unless username is empty (admin view).
	Get(ctx context.Context, uuid, username string) (*aggregate.Task, error)
	// List returns one page ordered by create_time desc, then status,
	// scoped like Get, plus the total count of the scoped collection.
	List(ctx context.Context, username string, p *page.Page) ([]*aggregate.Task, int64, error)
	UpdateStatus(ctx context.Context, uuid string, status *vo.Status) error
	// Finish records the terminal status together with the captured log
	// and exit code.
	Finish(ctx context.Context, uuid string, status *vo.Status, log string, exitCode int) error
	// ClaimScheduled atomically moves up to limit Scheduled tasks to
	// Waiting and returns them.
	ClaimScheduled(ctx context.Context, limit int) ([]*aggregate.Task, error)
	ListByStatus(ctx context.Context, status *vo.Status, limit int) ([]*aggregate.Task, error)
	Remove(ctx context.Context, uuid string) error
}

type SettingsRepository interface {
	Create(ctx context.Context, settings *aggregate.Settings) error
	Get(ctx context.Context, uuid string) (*aggregate.Settings, error)
	List(ctx context.Context, orderBy []string, p *page.Page) ([]*aggregate.Settings, int64, error)
	Update(ctx context.Context, settings *aggregate.Settings) error
	Delete(ctx context.Context, uuid string) error
}
