package sqlite

import "strings"

// isUniqueConstraintError detects a unique-constraint violation across the
// handful of driver message shapes gorm's sqlite dialects surface:
// - "UNIQUE constraint failed: ..." (glebarez/modernc sqlite)
// - "Duplicate entry '...' for key '...'" (mysql-flavored drivers)
// - SQLITE_CONSTRAINT_UNIQUE
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}

	errMsg := strings.ToLower(err.Error())

	patterns := []string{
		"unique constraint failed",
		"duplicate entry",
		"sqlite_constraint_unique",
	}

	for _, pattern := range patterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}

	return false
}
