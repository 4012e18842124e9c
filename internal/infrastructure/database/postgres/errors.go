package postgres

import (
	"errors"

	appErrors "freight-backoffice/pkg/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// translate turns unique-constraint violations into DuplicateKeyError and
// leaves every other error alone.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &appErrors.DuplicateKeyError{Constraint: pgErr.ConstraintName, Err: err}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &appErrors.DuplicateKeyError{Err: err}
	}
	return err
}
