package gateway

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Kind classifies a failure for the HTTP layer. KindValidation is a value
// the store refused (NOT NULL, CHECK, out of range, too long).
type Kind string

const (
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindConflict    Kind = "conflict"
	KindUnavailable Kind = "unavailable"
	KindStore       Kind = "store"
)

var (
	ErrNotFound = errors.New("registro no encontrado")
)

// Error is a classified store failure. Its message is the underlying
// driver message, unchanged.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of err, KindStore for unclassified errors.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return classify(err)
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var ge *Error
	if errors.As(err, &ge) {
		return err
	}
	return &Error{Kind: classify(err), Op: op, Err: err}
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return KindNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return KindConflict
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled),
		errors.Is(err, driver.ErrBadConn), errors.Is(err, mysql.ErrInvalidConn):
		return KindUnavailable
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062, 1216, 1217, 1451, 1452:
			return KindConflict
		case 1048, 1264, 1265, 1292, 1366, 1406, 3819:
			return KindValidation
		case 1205, 1213, 1040, 2002, 2003, 2006, 2013:
			return KindUnavailable
		}
		return KindStore
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "22"), pgErr.Code == "23502", pgErr.Code == "23514":
			return KindValidation
		case strings.HasPrefix(pgErr.Code, "23"):
			return KindConflict
		case pgErr.Code == "P0002":
			return KindNotFound
		case strings.HasPrefix(pgErr.Code, "08"), strings.HasPrefix(pgErr.Code, "57"), pgErr.Code == "40001", pgErr.Code == "40P01":
			return KindUnavailable
		}
		return KindStore
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return KindValidation
		}
		switch liteErr.Code() & 0xff {
		case sqlite3.SQLITE_MISMATCH, sqlite3.SQLITE_TOOBIG:
			return KindValidation
		case sqlite3.SQLITE_CONSTRAINT:
			return KindConflict
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return KindUnavailable
		}
		return KindStore
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindUnavailable
	}
	return KindStore
}
