package database

import (
	"database/sql"
	"errors"
	"fmt"
)

var ErrUnknownProcedure = errors.New("unknown procedure")

// Dialect renders procedure calls for one kind of store.
type Dialect interface {
	Name() string
	// Statement returns the SQL for c. returnsRows is set for calls whose
	// result set is read.
	Statement(c Call, returnsRows bool) (string, error)
	// LastInsertIDQuery returns the connection-scoped "last generated id" query.
	LastInsertIDQuery() string
	// TxOptions returns the options write transactions are opened with.
	TxOptions() *sql.TxOptions
	// CountsRows reports whether a call's rows-affected count reflects the
	// rows the procedure changed.
	CountsRows() bool
}

var readCommitted = &sql.TxOptions{Isolation: sql.LevelReadCommitted}

type mysqlDialect struct{}

func MySQL() Dialect { return mysqlDialect{} }

func (mysqlDialect) Name() string { return "mysql" }

func (mysqlDialect) Statement(c Call, _ bool) (string, error) {
	return "CALL " + c.String(), nil
}

func (mysqlDialect) LastInsertIDQuery() string { return "SELECT LAST_INSERT_ID()" }

func (mysqlDialect) TxOptions() *sql.TxOptions { return readCommitted }

// The server reports the count of the procedure's last statement.
func (mysqlDialect) CountsRows() bool { return true }

// PostgreSQL procedures cannot return result sets, so reads are served by
// set-returning functions of the same name.
type postgresDialect struct{}

func Postgres() Dialect { return postgresDialect{} }

func (postgresDialect) Name() string { return "postgres" }

func (postgresDialect) Statement(c Call, returnsRows bool) (string, error) {
	if returnsRows {
		return "SELECT * FROM " + c.String(), nil
	}
	return "CALL " + c.String(), nil
}

func (postgresDialect) LastInsertIDQuery() string { return "SELECT lastval()" }

func (postgresDialect) TxOptions() *sql.TxOptions { return readCommitted }

// CALL completes with a bare "CALL" command tag.
func (postgresDialect) CountsRows() bool { return false }

// sqliteDialect serves development and tests. SQLite has no stored
// procedures; each procedure name resolves to an equivalent statement from
// the bundled catalog.
type sqliteDialect struct {
	catalog map[string]string
}

func SQLite() Dialect { return sqliteDialect{catalog: sqliteCatalog} }

func (sqliteDialect) Name() string { return "sqlite" }

func (d sqliteDialect) Statement(c Call, _ bool) (string, error) {
	stmt, ok := d.catalog[c.Procedure]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownProcedure, c.Procedure)
	}
	return stmt, nil
}

func (sqliteDialect) LastInsertIDQuery() string { return "SELECT last_insert_rowid()" }

// SQLite transactions are serializable; the driver rejects other levels.
func (sqliteDialect) TxOptions() *sql.TxOptions { return nil }

func (sqliteDialect) CountsRows() bool { return true }
