package sqlite

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexuspointwg/corectl/internal/pkg/code"
	"github.com/nexuspointwg/corectl/internal/pkg/model"
	"github.com/HappyLadySauce/errors"
)

type requests struct {
	db *gorm.DB
}

func newRequests(ds *datastore) *requests { return &requests{db: ds.db} }

func (s *requests) Create(ctx context.Context, req *model.Request) error {
	if err := s.db.WithContext(ctx).Create(req).Error; err != nil {
		return errors.WithCode(code.ErrDatabaseDriver, "%s", err.Error())
	}
	return nil
}

func (s *requests) Get(ctx context.Context, id uuid.UUID) (*model.Request, error) {
	var req model.Request
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithCode(code.ErrServiceNotFound, "request %s not found", id)
		}
		return nil, errors.WithCode(code.ErrDatabaseDriver, "%s", err.Error())
	}
	return &req, nil
}

func (s *requests) ListPending(ctx context.Context) ([]*model.Request, error) {
	var reqs []*model.Request
	if err := s.db.WithContext(ctx).
		Where("status = ?", model.RequestStatusPending).
		Order("created_at").
		Find(&reqs).Error; err != nil {
		return nil, errors.WithCode(code.ErrDatabaseDriver, "%s", err.Error())
	}
	return reqs, nil
}
