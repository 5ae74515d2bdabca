package db

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// Options configures the pure-Go (no cgo) SQLite connection used by the
// persistent store (C4).
type Options struct {
	DataSourceName string
}

// New opens a GORM database handle over the glebarez/sqlite driver.
func New(opts *Options) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Dialector{
		DSN: opts.DataSourceName,
	}, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}
