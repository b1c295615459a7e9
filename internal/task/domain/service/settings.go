package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/cloudscheduler/console/internal/task/domain/aggregate"
	"github.com/cloudscheduler/console/internal/task/domain/repository"
	"github.com/cloudscheduler/console/pkg/cache"
	"github.com/cloudscheduler/console/pkg/domain"
	"github.com/cloudscheduler/console/pkg/page"
)

var (
	ErrSettingsInUse     = errors.New("[SettingsDomainService] cannot delete task settings associated with tasks")
	ErrDuplicateSettings = errors.New("[SettingsDomainService] settings name duplicates")
)

const settingsCacheTTL = 5 * time.Minute

type SettingsDomainService struct {
	*domain.Service
	settings repository.SettingsRepository
	cache    cache.MultiCache[*aggregate.Settings]
}

func NewSettingsService(
	srv *domain.Service,
	settings repository.SettingsRepository,
	c cache.MultiCache[*aggregate.Settings],
) *SettingsDomainService {
	return &SettingsDomainService{
		Service:  srv,
		settings: settings,
		cache:    c,
	}
}

func (s *SettingsDomainService) List(ctx context.Context, orderBy []string, p *page.Page) (*aggregate.SettingsPage, error) {
	entries, count, err := s.settings.List(ctx, orderBy, p)
	if err != nil {
		return nil, err
	}
	return &aggregate.SettingsPage{
		Count:     count,
		PageCount: page.Count(count),
		Entries:   entries,
	}, nil
}

// Get serves settings detail through the cache; templates change rarely
// but are read on every task dispatch.
func (s *SettingsDomainService) Get(ctx context.Context, settingsUUID string) (*aggregate.Settings, error) {
	if cached, err := s.cache.Get(ctx, settingsUUID); err == nil && cached != nil {
		return cached, nil
	}
	settings, err := s.cache.GetAndSingleSet(ctx, settingsUUID, settingsCacheTTL, func() (*aggregate.Settings, error) {
		return s.settings.Get(ctx, settingsUUID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}
	return settings, nil
}

func (s *SettingsDomainService) Create(ctx context.Context, settings *aggregate.Settings) (*aggregate.Settings, error) {
	settings.UUID = uuid.NewString()
	if settings.TTLInterval < 1 {
		settings.TTLInterval = 1
	}
	if err := s.settings.Create(ctx, settings); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrDuplicateSettings
		}
		return nil, err
	}
	return settings, nil
}

// SettingsPatch is a partial update; nil fields keep the stored value.
type SettingsPatch struct {
	Name            *string
	Description     *string
	Container       *aggregate.ContainerConfig
	TimeLimit       *int
	Replica         *int
	TTLInterval     *int
	MaxSharingUsers *int
}

func (s *SettingsDomainService) Update(ctx context.Context, settingsUUID string, patch *SettingsPatch) (*aggregate.Settings, error) {
	settings, err := s.settings.Get(ctx, settingsUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}

	if patch.Name != nil {
		settings.Name = *patch.Name
	}
	if patch.Description != nil {
		settings.Description = *patch.Description
	}
	if patch.Container != nil {
		settings.Container = *patch.Container
	}
	if patch.TimeLimit != nil {
		settings.TimeLimit = *patch.TimeLimit
	}
	if patch.Replica != nil {
		settings.Replica = *patch.Replica
	}
	if patch.TTLInterval != nil {
		settings.TTLInterval = *patch.TTLInterval
		if settings.TTLInterval < 1 {
			settings.TTLInterval = 1
		}
	}
	if patch.MaxSharingUsers != nil {
		settings.MaxSharingUsers = *patch.MaxSharingUsers
	}

	if err := s.settings.Update(ctx, settings); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrDuplicateSettings
		}
		return nil, err
	}
	_ = s.cache.Del(ctx, settingsUUID)
	return settings, nil
}

func (s *SettingsDomainService) Delete(ctx context.Context, settingsUUID string) error {
	if err := s.settings.Delete(ctx, settingsUUID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrSettingsNotFound
		case errors.Is(err, repository.ErrInUse):
			return ErrSettingsInUse
		default:
			return err
		}
	}
	_ = s.cache.Del(ctx, settingsUUID)
	return nil
}
