package sqlite

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexuspointwg/corectl/internal/pkg/code"
	"github.com/nexuspointwg/corectl/internal/pkg/model"
	"github.com/HappyLadySauce/errors"
)

type users struct {
	db *gorm.DB
}

func newUsers(ds *datastore) *users { return &users{db: ds.db} }

func (s *users) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithCode(code.ErrServiceNotFound, "user %s not found", id)
		}
		return nil, errors.WithCode(code.ErrDatabaseDriver, "%s", err.Error())
	}
	return &u, nil
}
