package sqlite

import (
	"sync"

	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/nexuspointwg/corectl/internal/pkg/db"
	"github.com/nexuspointwg/corectl/internal/pkg/model"
	"github.com/nexuspointwg/corectl/internal/store"
	"github.com/nexuspointwg/corectl/pkg/options"
	"github.com/HappyLadySauce/errors"
)

type datastore struct {
	db *gorm.DB
}

func (ds *datastore) Users() store.UserStore               { return newUsers(ds) }
func (ds *datastore) Roles() store.RoleStore                { return newRoles(ds) }
func (ds *datastore) Integrations() store.IntegrationStore  { return newIntegrations(ds) }
func (ds *datastore) Keys() store.KeyStore                  { return newKeys(ds) }
func (ds *datastore) Configs() store.ConfigStore             { return newConfigs(ds) }
func (ds *datastore) Stats() store.StatStore                { return newStats(ds) }
func (ds *datastore) Requests() store.RequestStore          { return newRequests(ds) }
func (ds *datastore) PeerSettings() store.PeerSettingStore  { return newPeerSettings(ds) }

func (ds *datastore) Close() error {
	sqlDB, err := ds.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql db")
	}
	return sqlDB.Close()
}

var (
	sqliteFactory store.Factory
	once          sync.Once
)

// GetSqliteFactoryOr returns the process-wide sqlite-backed store,
// creating and migrating it on first call.
func GetSqliteFactoryOr(opts *options.SqliteOptions) (store.Factory, error) {
	if opts == nil {
		opts = options.NewSqliteOptions()
	}

	var err error
	var dbIns *gorm.DB
	once.Do(func() {
		dbOpts := &db.Options{DataSourceName: opts.DataSourceName}
		dbIns, err = db.New(dbOpts)
		if err != nil {
			klog.V(1).InfoS("failed to create sqlite database", "dataSource", opts.DataSourceName, "error", err)
			err = errors.Wrap(err, "failed to create sqlite db with data source")
			return
		}

		if migrateErr := dbIns.AutoMigrate(
			&model.User{},
			&model.Role{},
			&model.UserRole{},
			&model.Integration{},
			&model.Key{},
			&model.Config{},
			&model.ConfigIP{},
			&model.PeerSetting{},
			&model.Stat{},
			&model.Request{},
		); migrateErr != nil {
			klog.V(1).InfoS("failed to auto migrate database schema", "dataSource", opts.DataSourceName, "error", migrateErr)
			err = errors.Wrap(migrateErr, "failed to auto migrate database schema")
			return
		}
		klog.V(1).InfoS("database schema migrated successfully", "dataSource", opts.DataSourceName)

		if seedErr := dbIns.FirstOrCreate(&model.Role{ID: model.AdminRoleID}, "id = ?", model.AdminRoleID).Error; seedErr != nil {
			klog.Errorf("failed to seed admin role row: %+v", seedErr)
		}

		sqliteFactory = &datastore{dbIns}
	})

	if sqliteFactory == nil {
		if err != nil {
			return nil, errors.Wrap(err, "failed to get sqlite factory")
		}
		return nil, errors.New("failed to get sqlite factory: sqliteFactory is nil but no error was returned")
	}

	return sqliteFactory, nil
}
