package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cloudscheduler/console/internal/task/domain/aggregate"
	"github.com/cloudscheduler/console/internal/task/domain/aggregate/vo"
	domainrepo "github.com/cloudscheduler/console/internal/task/domain/repository"
	"github.com/cloudscheduler/console/internal/task/infrastructure/model"
	"github.com/cloudscheduler/console/pkg/page"
)

type TaskRepository struct {
	repo *Repository
}

func NewTaskRepository(repo *Repository) domainrepo.TaskRepository {
	if err := repo.db.AutoMigrate(&model.TaskInfo{}, &model.TaskSettings{}); err != nil {
		panic(err)
	}
	return &TaskRepository{repo: repo}
}

// taskRow joins a task with its settings name for list and detail reads.
type taskRow struct {
	model.TaskInfo
	SettingsName string
}

const taskJoin = "LEFT JOIN task_settings ON task_settings.uuid = task_info.settings_uuid"

func (t *TaskRepository) Create(ctx context.Context, task *aggregate.Task) error {
	row := &model.TaskInfo{
		UUID:         task.UUID,
		SettingsUUID: task.Settings.UUID,
		Username:     task.User,
		Status:       task.Status.Code(),
	}
	if err := t.repo.DB(ctx).Create(row).Error; err != nil {
		return err
	}
	task.CreateTime = row.CreateTime
	return nil
}

func (t *TaskRepository) Get(ctx context.Context, uuid, username string) (*aggregate.Task, error) {
	var row taskRow
	q := t.repo.DB(ctx).Table("task_info").
		Select("task_info.*, task_settings.name AS settings_name").
		Joins(taskJoin).
		Where("task_info.uuid = ?", uuid)
	if username != "" {
		q = q.Where("task_info.username = ?", username)
	}
	if err := q.Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrNotFound
		}
		return nil, err
	}
	return rowToTask(&row), nil
}

func (t *TaskRepository) List(ctx context.Context, username string, p *page.Page) ([]*aggregate.Task, int64, error) {
	q := t.repo.DB(ctx).Table("task_info")
	if username != "" {
		q = q.Where("task_info.username = ?", username)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var rows []taskRow
	err := q.Select("task_info.*, task_settings.name AS settings_name").
		Joins(taskJoin).
		Order("task_info.create_time DESC, task_info.status ASC").
		Offset(p.Offset()).
		Limit(page.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	tasks := make([]*aggregate.Task, 0, len(rows))
	for i := range rows {
		tasks = append(tasks, rowToTask(&rows[i]))
	}
	return tasks, count, nil
}

func (t *TaskRepository) UpdateStatus(ctx context.Context, uuid string, status *vo.Status) error {
	res := t.repo.DB(ctx).Model(&model.TaskInfo{}).
		Where("uuid = ?", uuid).
		Update("status", status.Code())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrNotFound
	}
	return nil
}

func (t *TaskRepository) Finish(ctx context.Context, uuid string, status *vo.Status, taskLog string, exitCode int) error {
	res := t.repo.DB(ctx).Model(&model.TaskInfo{}).
		Where("uuid = ?", uuid).
		Updates(map[string]interface{}{
			"status":    status.Code(),
			"log":       taskLog,
			"exit_code": exitCode,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrNotFound
	}
	return nil
}

// ClaimScheduled moves up to limit Scheduled tasks to Waiting inside one
// transaction so concurrent dispatchers never claim the same task twice.
func (t *TaskRepository) ClaimScheduled(ctx context.Context, limit int) ([]*aggregate.Task, error) {
	var claimed []*aggregate.Task
	err := t.repo.Transaction(ctx, func(ctx context.Context) error {
		var rows []taskRow
		err := t.repo.DB(ctx).Table("task_info").
			Select("task_info.*, task_settings.name AS settings_name").
			Joins(taskJoin).
			Where("task_info.status = ?", vo.Scheduled.Code()).
			Order("task_info.create_time ASC").
			Limit(limit).
			Find(&rows).Error
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		uuids := make([]string, 0, len(rows))
		for i := range rows {
			uuids = append(uuids, rows[i].UUID)
		}
		err = t.repo.DB(ctx).Model(&model.TaskInfo{}).
			Where("uuid IN ? AND status = ?", uuids, vo.Scheduled.Code()).
			Update("status", vo.Waiting.Code()).Error
		if err != nil {
			return err
		}

		for i := range rows {
			task := rowToTask(&rows[i])
			task.Status = vo.Waiting
			claimed = append(claimed, task)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

func (t *TaskRepository) ListByStatus(ctx context.Context, status *vo.Status, limit int) ([]*aggregate.Task, error) {
	var rows []taskRow
	err := t.repo.DB(ctx).Table("task_info").
		Select("task_info.*, task_settings.name AS settings_name").
		Joins(taskJoin).
		Where("task_info.status = ?", status.Code()).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	tasks := make([]*aggregate.Task, 0, len(rows))
	for i := range rows {
		tasks = append(tasks, rowToTask(&rows[i]))
	}
	return tasks, nil
}

func (t *TaskRepository) Remove(ctx context.Context, uuid string) error {
	return t.repo.DB(ctx).Where("uuid = ?", uuid).Delete(&model.TaskInfo{}).Error
}

func rowToTask(row *taskRow) *aggregate.Task {
	return &aggregate.Task{
		UUID: row.UUID,
		Settings: aggregate.SettingsRef{
			UUID: row.SettingsUUID,
			Name: row.SettingsName,
		},
		User:       row.Username,
		Status:     vo.StatusByCode(row.Status),
		Log:        row.Log,
		ExitCode:   row.ExitCode,
		CreateTime: row.CreateTime,
	}
}
