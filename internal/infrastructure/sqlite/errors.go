package sqlite

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// isConstraintViolation verifica si un error del driver es una violación de
// integridad (CHECK, NOT NULL, FOREIGN KEY, UNIQUE).
func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
