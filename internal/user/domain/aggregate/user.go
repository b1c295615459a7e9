package aggregate

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID         uint
	Username   string
	Email      string
	Role       Role
	Password   string // bcrypt hash
	CreateTime time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
