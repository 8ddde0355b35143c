package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique violation, optionally of the named constraint.
func IsUniqueViolation(err error, constraint ...string) bool {
	var pgError *pgconn.PgError
	if !errors.As(err, &pgError) || pgError.Code != uniqueViolation {
		return false
	}

	if len(constraint) == 0 {
		return true
	}

	for _, name := range constraint {
		if pgError.ConstraintName == name {
			return true
		}
	}

	return false
}

const foreignKeyViolation = "23503"

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == foreignKeyViolation
}
