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

type peerSettings struct {
	db *gorm.DB
}

func newPeerSettings(ds *datastore) *peerSettings { return &peerSettings{db: ds.db} }

func (s *peerSettings) Set(ctx context.Context, configID uuid.UUID, enabled bool) error {
	row := model.PeerSetting{ConfigID: configID, DoubleVPN: enabled}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "config_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"double_vpn": enabled}),
	}).Create(&row).Error
	if err != nil {
		return errors.WithCode(code.ErrDatabaseDriver, "%s", err.Error())
	}
	return nil
}

func (s *peerSettings) Get(ctx context.Context, configID uuid.UUID) (bool, error) {
	var row model.PeerSetting
	err := s.db.WithContext(ctx).Where("config_id = ?", configID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, errors.WithCode(code.ErrDatabaseDriver, "%s", err.Error())
	}
	return row.DoubleVPN, nil
}

func (s *peerSettings) ListEnabled(ctx context.Context) ([]uuid.UUID, error) {
	var rows []model.PeerSetting
	if err := s.db.WithContext(ctx).Where("double_vpn = ?", true).Find(&rows).Error; err != nil {
		return nil, errors.WithCode(code.ErrDatabaseDriver, "%s", err.Error())
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ConfigID)
	}
	return ids, nil
}
