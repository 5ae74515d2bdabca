package sqlite

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nexuspointwg/corectl/internal/pkg/code"
	"github.com/nexuspointwg/corectl/internal/pkg/model"
	"github.com/nexuspointwg/corectl/internal/store"
	"github.com/HappyLadySauce/errors"
)

type stats struct {
	db *gorm.DB
}

func newStats(ds *datastore) *stats { return &stats{db: ds.db} }

// UpdatePeersStats upserts every delta in one transaction, accumulating
// rather than overwriting: tx = tx + excluded.tx, rx = rx + excluded.rx.
func (s *stats) UpdatePeersStats(ctx context.Context, deltas []store.StatDelta) error {
	if len(deltas) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, d := range deltas {
			row := model.Stat{PublicKey: d.PublicKey, Tx: d.DTx, Rx: d.DRx}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "public_key"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"tx": gorm.Expr("tx + ?", d.DTx),
					"rx": gorm.Expr("rx + ?", d.DRx),
				}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.WithCode(code.ErrDatabaseDriver, "%s", err.Error())
	}
	return nil
}

func (s *stats) Get(ctx context.Context, publicKey []byte) (uint64, uint64, error) {
	var row model.Stat
	err := s.db.WithContext(ctx).Where("public_key = ?", publicKey).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, nil
		}
		return 0, 0, errors.WithCode(code.ErrDatabaseDriver, "%s", err.Error())
	}
	return row.Tx, row.Rx, nil
}
