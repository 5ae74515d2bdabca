package sqlite

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexuspointwg/corectl/internal/pkg/code"
	"github.com/nexuspointwg/corectl/internal/pkg/model"
	"github.com/HappyLadySauce/errors"
)

type roles struct {
	db *gorm.DB
}

func newRoles(ds *datastore) *roles { return &roles{db: ds.db} }

func (s *roles) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserRole{}).
		Where("user_id = ? AND role_id = ?", userID, model.AdminRoleID).
		Count(&count).Error
	if err != nil {
		return false, errors.WithCode(code.ErrDatabaseDriver, "%s", err.Error())
	}
	return count > 0, nil
}

func (s *roles) AddAdmin(ctx context.Context, userID uuid.UUID) error {
	row := &model.UserRole{UserID: userID, RoleID: model.AdminRoleID}
	if err := s.db.WithContext(ctx).FirstOrCreate(row, "user_id = ? AND role_id = ?", userID, model.AdminRoleID).Error; err != nil {
		return errors.WithCode(code.ErrDatabaseDriver, "%s", err.Error())
	}
	return nil
}

func (s *roles) RemoveAdmin(ctx context.Context, userID uuid.UUID) error {
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND role_id = ?", userID, model.AdminRoleID).
		Delete(&model.UserRole{}).Error; err != nil {
		return errors.WithCode(code.ErrDatabaseDriver, "%s", err.Error())
	}
	return nil
}
