package model

import "time"

type User struct {
	ID         uint      `gorm:"primarykey"`
	Username   string    `gorm:"uniqueIndex;size:64"`
	Email      string    `gorm:"size:128"`
	Role       string    `gorm:"size:16;default:user"`
	Password   string    `gorm:"size:128"`
	CreateTime time.Time `gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
