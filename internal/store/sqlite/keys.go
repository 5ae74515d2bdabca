package sqlite

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nexuspointwg/corectl/internal/pkg/code"
	"github.com/nexuspointwg/corectl/internal/pkg/model"
	"github.com/HappyLadySauce/errors"
)

type keys struct {
	db *gorm.DB
}

func newKeys(ds *datastore) *keys { return &keys{db: ds.db} }

func (s *keys) Get(ctx context.Context, publicKey []byte) (*model.Key, error) {
	var k model.Key
	if err := s.db.WithContext(ctx).Where("public_key = ?", publicKey).First(&k).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithCode(code.ErrServiceNotFound, "key not found")
		}
		return nil, errors.WithCode(code.ErrDatabaseDriver, "%s", err.Error())
	}
	return &k, nil
}

func (s *keys) EnsureKey(ctx context.Context, key *model.Key) error {
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(key).Error; err != nil {
		return errors.WithCode(code.ErrDatabaseDriver, "%s", err.Error())
	}
	return nil
}

func (s *keys) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Key, error) {
	var ks []*model.Key
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&ks).Error; err != nil {
		return nil, errors.WithCode(code.ErrDatabaseDriver, "%s", err.Error())
	}
	return ks, nil
}
