package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeSQLiteError struct {
	msg  string
	code int
}

func (e *fakeSQLiteError) Error() string { return e.msg }
func (e *fakeSQLiteError) Code() int     { return e.code }

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"gorm translated", gorm.ErrDuplicatedKey, true},
		{"postgres unique", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{"postgres fk", &pgconn.PgError{Code: "23503"}, false},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062}, true},
		{"sqlite extended", &fakeSQLiteError{msg: "constraint failed", code: 2067}, true},
		{"sqlite primary", &fakeSQLiteError{msg: "UNIQUE constraint failed: users.email", code: 19}, true},
		{"plain text", errors.New("UNIQUE constraint failed: users.email (2067)"), true},
		{"other", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsUniqueViolation(tt.err))
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"gorm translated", fmt.Errorf("delete: %w", gorm.ErrForeignKeyViolated), true},
		{"postgres fk", &pgconn.PgError{Code: "23503"}, true},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, false},
		{"mysql parent referenced", &mysql.MySQLError{Number: 1451}, true},
		{"mysql missing parent", &mysql.MySQLError{Number: 1452}, true},
		{"sqlite extended", &fakeSQLiteError{msg: "constraint failed", code: 787}, true},
		{"sqlite primary", &fakeSQLiteError{msg: "FOREIGN KEY constraint failed", code: 19}, true},
		{"other", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsForeignKeyViolation(tt.err))
		})
	}
}
