package aggregate

import "time"

// Settings is the reusable template tasks are created from.
type Settings struct {
	UUID            string
	Name            string
	Description     string
	Container       ContainerConfig
	TimeLimit       int // seconds
	Replica         int
	TTLInterval     int
	MaxSharingUsers int
	CreateTime      time.Time
}

type ContainerConfig struct {
	Image       string
	Shell       string
	Commands    []string
	MemoryLimit string
	WorkingPath string
}

type SettingsPage struct {
	Count     int64
	PageCount int
	Entries   []*Settings
}
