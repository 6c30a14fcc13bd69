package database

import (
	"database/sql"
	"database/sql/driver"
	"net"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/tair/production-costing/pkg/apperr"
)

// SQLSTATE codes the service reacts to.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeAdminShutdown        = "57P01"
	codeCannotConnectNow     = "57P03"
)

// Classify marks driver errors with the matching apperr kind. Errors that
// need no classification are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	if code, constraint, ok := sqlState(err); ok {
		switch {
		case code == codeUniqueViolation:
			return apperr.Wrap(err, apperr.ErrAlreadyExists, "unique constraint %s", constraint)
		case code == codeForeignKeyViolation:
			return apperr.Wrap(err, apperr.ErrInvalidInput, "foreign key %s", constraint)
		case code == codeSerializationFailure, code == codeDeadlockDetected,
			code == codeAdminShutdown, code == codeCannotConnectNow,
			len(code) == 5 && code[:2] == "08":
			return apperr.Wrap(err, apperr.ErrStoreUnavailable, "sqlstate %s", code)
		}
		return err
	}

	var connectErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case errors.As(err, &connectErr),
		errors.As(err, &netErr),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		pgconn.SafeToRetry(err):
		return apperr.Wrap(err, apperr.ErrStoreUnavailable, "database unreachable")
	}
	return err
}

func sqlState(err error) (code, constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName, true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint, true
	}
	return "", "", false
}

// IsUniqueViolation reports whether err came from a unique index.
func IsUniqueViolation(err error) bool {
	return errors.Is(Classify(err), apperr.ErrAlreadyExists)
}
