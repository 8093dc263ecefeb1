package db

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
	sqliteConstraint     = 19
	sqliteConstraintFK   = 787
	sqliteConstraintPK   = 1555
	sqliteConstraintUniq = 2067
)

// sqliteError matches the error type of the pure-Go SQLite driver.
type sqliteError interface {
	error
	Code() int
}

// IsUniqueViolation reports whether err is a unique-constraint failure on any
// supported dialect.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}

	var liteErr sqliteError
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqliteConstraintUniq, sqliteConstraintPK:
			return true
		case sqliteConstraint:
			return strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
		}
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsForeignKeyViolation reports whether err is a foreign-key failure, either
// an insert referencing a missing parent or a delete of a referenced parent.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlRowIsReferenced || myErr.Number == mysqlNoReferencedRow
	}

	var liteErr sqliteError
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqliteConstraintFK:
			return true
		case sqliteConstraint:
			return strings.Contains(liteErr.Error(), "FOREIGN KEY constraint failed")
		}
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
