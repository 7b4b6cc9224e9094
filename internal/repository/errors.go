package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateKey signals a unique-constraint violation. Callers decide
// whether it means a benign race (booking upsert) or a true conflict
// (duplicate email).
var ErrDuplicateKey = errors.New("duplicate key")

// postgres unique_violation
const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
