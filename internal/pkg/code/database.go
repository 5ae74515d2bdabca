package code

// Database: persistent store errors (C4).
// Code must start with 1xxxxx.
const (
	// ErrDatabaseMigration - 500: schema migration failed.
	ErrDatabaseMigration int = iota + 120101

	// ErrDatabaseDriver - 500: unclassified database driver error.
	ErrDatabaseDriver

	// ErrDatabaseInvalidPubkeyData - 500: a stored public key blob had the wrong length or shape.
	ErrDatabaseInvalidPubkeyData

	// ErrDatabaseInvalidUUIDData - 500: a stored identifier blob failed to parse as a UUID.
	ErrDatabaseInvalidUUIDData
)
