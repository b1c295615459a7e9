package aggregate

import (
	"time"

	"github.com/cloudscheduler/console/internal/task/domain/aggregate/vo"
)

// Task is one scheduled run of a task settings template. Created by a
// user, advanced by the executor, removed by the reaper once marked
// Deleting.
type Task struct {
	UUID       string
	Settings   SettingsRef
	User       string
	Status     *vo.Status
	Log        string
	ExitCode   *int
	CreateTime time.Time
}

type SettingsRef struct {
	UUID string
	Name string
}

// TaskPage is one page of the task list plus collection totals.
type TaskPage struct {
	Count     int64
	PageCount int
	Entries   []*Task
}
