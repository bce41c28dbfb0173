package repository

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect adapts the SQL repository to a database engine.
type Dialect interface {
	Name() string
	// Rebind rewrites "?" placeholders into the engine's syntax.
	Rebind(query string) string
	// LockClause is appended to reads made inside a transaction.
	LockClause() string
	IsConstraintViolation(err error) bool
}

// Postgres works with both the lib/pq and the pgx stdlib drivers.
type Postgres struct{}

func (Postgres) Name() string { return "postgres" }

func (Postgres) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (Postgres) LockClause() string { return " FOR UPDATE" }

// IsConstraintViolation matches SQLSTATE class 23 (integrity constraint violation).
func (Postgres) IsConstraintViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "23"
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}
	return false
}

// SQLite targets modernc.org/sqlite. Writers are serialized by the
// connection pool, so reads need no lock clause.
type SQLite struct{}

func (SQLite) Name() string { return "sqlite" }

func (SQLite) Rebind(query string) string { return query }

func (SQLite) LockClause() string { return "" }

func (SQLite) IsConstraintViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}
