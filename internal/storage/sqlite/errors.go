package sqlite

import (
	"errors"
	"fmt"

	driver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/billwise/internal/storage"
)

// wrapErr prefixes err with what failed, marking constraint faults with
// storage.ErrConstraint so callers can tell them apart.
func wrapErr(what string, err error) error {
	if isConstraint(err) {
		return fmt.Errorf("failed to %s: %w: %w", what, storage.ErrConstraint, err)
	}
	return fmt.Errorf("failed to %s: %w", what, err)
}

// isConstraint reports whether err is any SQLITE_CONSTRAINT result.
// Extended codes (PRIMARYKEY, UNIQUE, FOREIGNKEY, ...) share the low byte.
func isConstraint(err error) bool {
	var sqliteErr *driver.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}
