package sqlite

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexuspointwg/corectl/internal/pkg/code"
	"github.com/nexuspointwg/corectl/internal/pkg/model"
	"github.com/HappyLadySauce/errors"
)

type configs struct {
	db *gorm.DB
}

func newConfigs(ds *datastore) *configs { return &configs{db: ds.db} }

// AddConfig is a single transaction: insert into configs, then ips. A
// unique violation on configs.public_key maps to ClientAlreadyExists.
func (s *configs) AddConfig(ctx context.Context, cfg *model.Config, addr uint32) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cfg).Error; err != nil {
			return err
		}
		ip := &model.ConfigIP{ConfigID: cfg.ID, Addr: addr}
		return tx.Create(ip).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return errors.WithCode(code.ErrServiceClientAlreadyExists, "config with this public key already exists")
		}
		return errors.WithCode(code.ErrDatabaseDriver, "%s", err.Error())
	}
	return nil
}

const fullConfigSelect = "configs.*, ips.addr as addr, COALESCE(stats_v2.tx, 0) as tx, COALESCE(stats_v2.rx, 0) as rx"

func (s *configs) baseQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("configs").
		Select(fullConfigSelect).
		Joins("JOIN ips ON ips.config_id = configs.id").
		Joins("LEFT JOIN stats_v2 ON stats_v2.public_key = configs.public_key")
}

func (s *configs) GetFull(ctx context.Context, id uuid.UUID) (*model.FullConfig, error) {
	var row model.FullConfig
	if err := s.baseQuery(ctx).Where("configs.id = ?", id).Scan(&row).Error; err != nil {
		return nil, errors.WithCode(code.ErrDatabaseDriver, "%s", err.Error())
	}
	if row.ID == uuid.Nil {
		return nil, errors.WithCode(code.ErrServiceNotFound, "config %s not found", id)
	}
	return &row, nil
}

func (s *configs) GetFullByAddr(ctx context.Context, addr uint32) (*model.FullConfig, error) {
	var row model.FullConfig
	err := s.baseQuery(ctx).
		Where("ips.addr = ? AND configs.deleted = ?", addr, false).
		Scan(&row).Error
	if err != nil {
		return nil, errors.WithCode(code.ErrDatabaseDriver, "%s", err.Error())
	}
	if row.ID == uuid.Nil {
		return nil, errors.WithCode(code.ErrServiceNotFound, "no config assigned that address")
	}
	return &row, nil
}

func (s *configs) ListFullByUser(ctx context.Context, userID uuid.UUID) ([]*model.FullConfig, error) {
	var rows []*model.FullConfig
	if err := s.baseQuery(ctx).
		Where("configs.user_id = ? AND configs.deleted = ?", userID, false).
		Order("configs.created_at").
		Scan(&rows).Error; err != nil {
		return nil, errors.WithCode(code.ErrDatabaseDriver, "%s", err.Error())
	}
	return rows, nil
}

func (s *configs) ListAllNonDeleted(ctx context.Context) ([]*model.FullConfig, error) {
	var rows []*model.FullConfig
	if err := s.baseQuery(ctx).
		Where("configs.deleted = ?", false).
		Order("configs.created_at").
		Scan(&rows).Error; err != nil {
		return nil, errors.WithCode(code.ErrDatabaseDriver, "%s", err.Error())
	}
	return rows, nil
}

func (s *configs) Rename(ctx context.Context, id uuid.UUID, name string) error {
	res := s.db.WithContext(ctx).Model(&model.Config{}).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		return errors.WithCode(code.ErrDatabaseDriver, "%s", res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return errors.WithCode(code.ErrServiceNotFound, "config %s not found", id)
	}
	return nil
}

func (s *configs) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Model(&model.Config{}).Where("id = ?", id).Update("deleted", true)
	if res.Error != nil {
		return errors.WithCode(code.ErrDatabaseDriver, "%s", res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return errors.WithCode(code.ErrServiceNotFound, "config %s not found", id)
	}
	return nil
}

func (s *configs) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Config{}).Count(&count).Error; err != nil {
		return 0, errors.WithCode(code.ErrDatabaseDriver, "%s", err.Error())
	}
	return count, nil
}
