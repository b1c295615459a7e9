package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/cloudscheduler/console/internal/task/domain/aggregate"
	domainrepo "github.com/cloudscheduler/console/internal/task/domain/repository"
	"github.com/cloudscheduler/console/internal/task/infrastructure/model"
	"github.com/cloudscheduler/console/pkg/cache"
	"github.com/cloudscheduler/console/pkg/cache/client"
	"github.com/cloudscheduler/console/pkg/page"
)

type SettingsRepository struct {
	repo *Repository
}

func NewSettingsRepository(repo *Repository) domainrepo.SettingsRepository {
	return &SettingsRepository{repo: repo}
}

// NewSettingsCache backs the settings read path; templates are hot on
// every task dispatch but rarely written.
func NewSettingsCache(conf *viper.Viper, clients []client.Cache) cache.MultiCache[*aggregate.Settings] {
	return cache.NewMultiCache[*aggregate.Settings](conf, clients)
}

func (s *SettingsRepository) Create(ctx context.Context, settings *aggregate.Settings) error {
	row, err := settingsToRow(settings)
	if err != nil {
		return err
	}
	if err := s.repo.DB(ctx).Create(row).Error; err != nil {
		if isDuplicate(err) {
			return domainrepo.ErrDuplicateName
		}
		return err
	}
	settings.CreateTime = row.CreateTime
	return nil
}

func (s *SettingsRepository) Get(ctx context.Context, uuid string) (*aggregate.Settings, error) {
	var row model.TaskSettings
	if err := s.repo.DB(ctx).Where("uuid = ?", uuid).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrNotFound
		}
		return nil, err
	}
	return rowToSettings(&row)
}

// allowed order_by columns; anything else falls back to id.
var settingsOrderColumns = map[string]string{
	"id":          "id",
	"name":        "name",
	"create_time": "create_time",
}

func (s *SettingsRepository) List(ctx context.Context, orderBy []string, p *page.Page) ([]*aggregate.Settings, int64, error) {
	q := s.repo.DB(ctx).Model(&model.TaskSettings{})

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	for _, ob := range orderBy {
		col := ob
		desc := false
		if strings.HasPrefix(ob, "-") {
			col = ob[1:]
			desc = true
		}
		name, ok := settingsOrderColumns[col]
		if !ok {
			name = "id"
		}
		if desc {
			name += " DESC"
		}
		q = q.Order(name)
	}

	var rows []model.TaskSettings
	if err := q.Offset(p.Offset()).Limit(page.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*aggregate.Settings, 0, len(rows))
	for i := range rows {
		settings, err := rowToSettings(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, settings)
	}
	return entries, count, nil
}

func (s *SettingsRepository) Update(ctx context.Context, settings *aggregate.Settings) error {
	row, err := settingsToRow(settings)
	if err != nil {
		return err
	}
	res := s.repo.DB(ctx).Model(&model.TaskSettings{}).
		Where("uuid = ?", settings.UUID).
		Updates(map[string]interface{}{
			"name":              row.Name,
			"description":       row.Description,
			"container_config":  row.ContainerConfig,
			"time_limit":        row.TimeLimit,
			"replica":           row.Replica,
			"ttl_interval":      row.TTLInterval,
			"max_sharing_users": row.MaxSharingUsers,
		})
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return domainrepo.ErrDuplicateName
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrNotFound
	}
	return nil
}

// Delete refuses to remove settings that still have tasks, mirroring a
// protected foreign key.
func (s *SettingsRepository) Delete(ctx context.Context, uuid string) error {
	return s.repo.Transaction(ctx, func(ctx context.Context) error {
		var refs int64
		err := s.repo.DB(ctx).Model(&model.TaskInfo{}).
			Where("settings_uuid = ?", uuid).
			Count(&refs).Error
		if err != nil {
			return err
		}
		if refs > 0 {
			return domainrepo.ErrInUse
		}

		res := s.repo.DB(ctx).Where("uuid = ?", uuid).Delete(&model.TaskSettings{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domainrepo.ErrNotFound
		}
		return nil
	})
}

func settingsToRow(settings *aggregate.Settings) (*model.TaskSettings, error) {
	cc, err := sonic.MarshalString(settings.Container)
	if err != nil {
		return nil, err
	}
	return &model.TaskSettings{
		UUID:            settings.UUID,
		Name:            settings.Name,
		Description:     settings.Description,
		ContainerConfig: cc,
		TimeLimit:       settings.TimeLimit,
		Replica:         settings.Replica,
		TTLInterval:     settings.TTLInterval,
		MaxSharingUsers: settings.MaxSharingUsers,
	}, nil
}

func rowToSettings(row *model.TaskSettings) (*aggregate.Settings, error) {
	settings := &aggregate.Settings{
		UUID:            row.UUID,
		Name:            row.Name,
		Description:     row.Description,
		TimeLimit:       row.TimeLimit,
		Replica:         row.Replica,
		TTLInterval:     row.TTLInterval,
		MaxSharingUsers: row.MaxSharingUsers,
		CreateTime:      row.CreateTime,
	}
	if row.ContainerConfig != "" {
		if err := sonic.UnmarshalString(row.ContainerConfig, &settings.Container); err != nil {
			return nil, err
		}
	}
	return settings, nil
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Driver-specific duplicate errors that gorm does not translate.
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}
