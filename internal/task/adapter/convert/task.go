package convert

import (
	"time"

	v1 "github.com/cloudscheduler/console/api/v1"
	"github.com/cloudscheduler/console/internal/task/domain/aggregate"
	"github.com/cloudscheduler/console/internal/task/domain/service"
)

func TaskEntryConvert(task *aggregate.Task) v1.TaskEntry {
	return v1.TaskEntry{
		UUID: task.UUID,
		Settings: v1.SettingsRef{
			UUID: task.Settings.UUID,
			Name: task.Settings.Name,
		},
		User:       task.User,
		Status:     int(task.Status.Code()),
		CreateTime: task.CreateTime.Format(time.RFC3339),
	}
}

func TaskListConvert(p *aggregate.TaskPage) *v1.TaskListPayload {
	entries := make([]v1.TaskEntry, 0, len(p.Entries))
	for _, task := range p.Entries {
		entries = append(entries, TaskEntryConvert(task))
	}
	return &v1.TaskListPayload{
		Count:     p.Count,
		PageCount: p.PageCount,
		Entry:     entries,
	}
}

func TaskDetailConvert(task *aggregate.Task) *v1.TaskDetailPayload {
	return &v1.TaskDetailPayload{
		TaskEntry: TaskEntryConvert(task),
		Log:       task.Log,
		ExitCode:  task.ExitCode,
	}
}

// SettingsEntryConvert renders a settings row; container internals only
// appear for admins.
func SettingsEntryConvert(settings *aggregate.Settings, admin bool) v1.SettingsEntry {
	entry := v1.SettingsEntry{
		UUID:        settings.UUID,
		Name:        settings.Name,
		Description: settings.Description,
		TimeLimit:   settings.TimeLimit,
		CreateTime:  settings.CreateTime.Format(time.RFC3339),
	}
	if admin {
		cc := containerConfigConvert(settings.Container)
		replica := settings.Replica
		ttl := settings.TTLInterval
		sharing := settings.MaxSharingUsers
		entry.ContainerConfig = &cc
		entry.Replica = &replica
		entry.TTLInterval = &ttl
		entry.MaxSharingUsers = &sharing
	}
	return entry
}

func SettingsListConvert(p *aggregate.SettingsPage, admin bool) *v1.SettingsListPayload {
	entries := make([]v1.SettingsEntry, 0, len(p.Entries))
	for _, settings := range p.Entries {
		entries = append(entries, SettingsEntryConvert(settings, admin))
	}
	return &v1.SettingsListPayload{
		Count:     p.Count,
		PageCount: p.PageCount,
		Entry:     entries,
	}
}

func SettingsCreateConvert(req *v1.SettingsCreateRequest) *aggregate.Settings {
	return &aggregate.Settings{
		Name:            req.Name,
		Description:     req.Description,
		Container:       containerConfigFrom(req.ContainerConfig),
		TimeLimit:       req.TimeLimit,
		Replica:         req.Replica,
		TTLInterval:     req.TTLInterval,
		MaxSharingUsers: req.MaxSharingUsers,
	}
}

func SettingsPatchConvert(req *v1.SettingsUpdateRequest) *service.SettingsPatch {
	patch := &service.SettingsPatch{
		Name:            req.Name,
		Description:     req.Description,
		TimeLimit:       req.TimeLimit,
		Replica:         req.Replica,
		TTLInterval:     req.TTLInterval,
		MaxSharingUsers: req.MaxSharingUsers,
	}
	if req.ContainerConfig != nil {
		cc := containerConfigFrom(*req.ContainerConfig)
		patch.Container = &cc
	}
	return patch
}

func containerConfigConvert(cc aggregate.ContainerConfig) v1.ContainerConfig {
	return v1.ContainerConfig{
		Image:       cc.Image,
		Shell:       cc.Shell,
		Commands:    cc.Commands,
		MemoryLimit: cc.MemoryLimit,
		WorkingPath: cc.WorkingPath,
	}
}

func containerConfigFrom(cc v1.ContainerConfig) aggregate.ContainerConfig {
	return aggregate.ContainerConfig{
		Image:       cc.Image,
		Shell:       cc.Shell,
		Commands:    cc.Commands,
		MemoryLimit: cc.MemoryLimit,
		WorkingPath: cc.WorkingPath,
	}
}
