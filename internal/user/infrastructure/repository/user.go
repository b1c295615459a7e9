package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/cloudscheduler/console/internal/user/domain/aggregate"
	domainrepo "github.com/cloudscheduler/console/internal/user/domain/repository"
	"github.com/cloudscheduler/console/internal/user/domain/service"
	"github.com/cloudscheduler/console/internal/user/infrastructure/model"
	"github.com/cloudscheduler/console/pkg/cache"
	"github.com/cloudscheduler/console/pkg/cache/client"
	"github.com/cloudscheduler/console/pkg/log"
)

type UserRepository struct {
	db     *gorm.DB
	logger *log.Logger
}

func NewUserRepository(db *gorm.DB, logger *log.Logger) domainrepo.UserRepository {
	if err := db.AutoMigrate(&model.User{}); err != nil {
		panic(err)
	}
	return &UserRepository{db: db, logger: logger}
}

// NewTokenStore backs the revoked-token list with the layered cache so a
// logout is visible to every instance sharing the Redis layer.
func NewTokenStore(conf *viper.Viper, clients []client.Cache) service.TokenStore {
	return cache.NewMultiCache[string](conf, clients)
}

func (r *UserRepository) Create(ctx context.Context, user *aggregate.User) error {
	row := &model.User{
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
		Password: user.Password,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if isDuplicate(err) {
			return domainrepo.ErrDuplicateUsername
		}
		return err
	}
	user.ID = row.ID
	user.CreateTime = row.CreateTime
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*aggregate.User, error) {
	var row model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrNotFound
		}
		return nil, err
	}
	return &aggregate.User{
		ID:         row.ID,
		Username:   row.Username,
		Email:      row.Email,
		Role:       aggregate.Role(row.Role),
		Password:   row.Password,
		CreateTime: row.CreateTime,
	}, nil
}

func (r *UserRepository) Update(ctx context.Context, user *aggregate.User) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"email":    user.Email,
			"password": user.Password,
		}).Error
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}
