package model

import "time"

type TaskInfo struct {
	ID           uint      `gorm:"primarykey"`
	UUID         string    `gorm:"column:uuid;uniqueIndex;size:36"`
	SettingsUUID string    `gorm:"index;size:36"`
	Username     string    `gorm:"index;size:64"`
	Status       uint8     `gorm:"index"`
	Log          string    `gorm:"type:text"`
	ExitCode     *int      ``
	CreateTime   time.Time `gorm:"autoCreateTime;index"`
}

func (TaskInfo) TableName() string {
	return "task_info"
}

type TaskSettings struct {
	ID              uint      `gorm:"primarykey"`
	UUID            string    `gorm:"column:uuid;uniqueIndex;size:36"`
	Name            string    `gorm:"uniqueIndex;size:128"`
	Description     string    `gorm:"type:text"`
	ContainerConfig string    `gorm:"type:text"` // JSON blob
	TimeLimit       int       ``
	Replica         int       ``
	TTLInterval     int       ``
	MaxSharingUsers int       ``
	CreateTime      time.Time `gorm:"autoCreateTime"`
}

func (TaskSettings) TableName() string {
	return "task_settings"
}
