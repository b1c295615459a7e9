package repository

import (
	"context"
	"errors"

	"github.com/cloudscheduler/console/internal/user/domain/aggregate"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *aggregate.User) error
	GetByUsername(ctx context.Context, username string) (*aggregate.User, error)
	Update(ctx context.Context, user *aggregate.User) error
}
