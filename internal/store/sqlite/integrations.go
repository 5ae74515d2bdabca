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

type integrations struct {
	db *gorm.DB
}

func newIntegrations(ds *datastore) *integrations { return &integrations{db: ds.db} }

func (s *integrations) Resolve(ctx context.Context, system string, externalID int64) (*model.User, error) {
	var integ model.Integration
	err := s.db.WithContext(ctx).
		Where("system = ? AND external_id = ?", system, externalID).
		First(&integ).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithCode(code.ErrServiceNotFound, "no user bound to %s:%d", system, externalID)
		}
		return nil, errors.WithCode(code.ErrDatabaseDriver, "%s", err.Error())
	}

	var u model.User
	if err := s.db.WithContext(ctx).Where("id = ?", integ.UserID).First(&u).Error; err != nil {
		return nil, errors.WithCode(code.ErrDatabaseDriver, "%s", err.Error())
	}
	return &u, nil
}

// EnsureUser implements add_user: insert the user (ON CONFLICT DO NOTHING)
// and the integration row in a single transaction, returning the resolved
// user whether it was just created or already existed.
func (s *integrations) EnsureUser(ctx context.Context, system string, externalID int64) (*model.User, error) {
	if u, err := s.Resolve(ctx, system, externalID); err == nil {
		return u, nil
	} else if !errors.IsCode(err, code.ErrServiceNotFound) {
		return nil, err
	}

	user := model.User{ID: uuid.New()}
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error; err != nil {
			return err
		}
		integ := &model.Integration{UserID: user.ID, System: system, ExternalID: externalID}
		return tx.Create(integ).Error
	})
	if txErr != nil {
		if isUniqueConstraintError(txErr) {
			// Lost a race against a concurrent first-contact; resolve the
			// winner's row instead of failing.
			return s.Resolve(ctx, system, externalID)
		}
		return nil, errors.WithCode(code.ErrDatabaseDriver, "%s", txErr.Error())
	}
	return &user, nil
}

// Bind writes an integration row for an already-existing user. Unlike
// EnsureUser it never creates a user row and it treats a pre-existing
// binding as an error rather than a no-op.
func (s *integrations) Bind(ctx context.Context, userID uuid.UUID, system string, externalID int64) error {
	integ := &model.Integration{UserID: userID, System: system, ExternalID: externalID}
	if err := s.db.WithContext(ctx).Create(integ).Error; err != nil {
		if isUniqueConstraintError(err) {
			return errors.WithCode(code.ErrServiceClientAlreadyExists, "chat identity already bound to a user")
		}
		return errors.WithCode(code.ErrDatabaseDriver, "%s", err.Error())
	}
	return nil
}
