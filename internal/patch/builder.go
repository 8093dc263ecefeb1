// Package patch builds parameterized UPDATE statements from sparse input.
//
// Only column names from a fixed allow-list are written into the statement
// text; every value travels as a bound parameter.
package patch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoFields is returned when no field is present.
	ErrNoFields = errors.New("no fields to update")
	// ErrUnknownColumn is returned for a column outside the allow-list.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrDuplicateColumn is returned when a column is set twice.
	ErrDuplicateColumn = errors.New("duplicate column")
)

// Field is one candidate assignment. Absent fields are skipped.
type Field struct {
	Column  string
	Value   interface{}
	present bool
}

// Present reports whether the field takes part in the update.
func (f Field) Present() bool {
	return f.present
}

// Value turns an optional input into a Field; a nil pointer is absent.
func Value[T any](column string, v *T) Field {
	if v == nil {
		return Field{Column: column}
	}
	return Field{Column: column, Value: *v, present: true}
}

// Set is a field that is always present.
func Set(column string, v interface{}) Field {
	return Field{Column: column, Value: v, present: true}
}

// Count returns how many fields are present.
func Count(fields ...Field) int {
	n := 0
	for _, f := range fields {
		if f.present {
			n++
		}
	}
	return n
}

// Statement is SQL text with its positional arguments. Placeholders are "?"
// so GORM rebinds them for the active dialect.
type Statement struct {
	SQL  string
	Args []interface{}
}

// Builder produces UPDATE statements for one table.
type Builder struct {
	table    string
	idColumn string
	allowed  map[string]struct{}
}

// NewBuilder creates a builder for table accepting only the listed columns.
func NewBuilder(table string, columns ...string) *Builder {
	allowed := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		allowed[c] = struct{}{}
	}
	return &Builder{table: table, idColumn: "id", allowed: allowed}
}

// Build renders "UPDATE table SET a = ?, b = ? WHERE id = ?". Assignments keep
// the order of fields and the id argument is always last.
func (b *Builder) Build(id interface{}, fields ...Field) (Statement, error) {
	sets := make([]string, 0, len(fields))
	args := make([]interface{}, 0, len(fields)+1)
	seen := make(map[string]struct{}, len(fields))

	for _, f := range fields {
		if !f.present {
			continue
		}
		if _, ok := b.allowed[f.Column]; !ok {
			return Statement{}, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, b.table, f.Column)
		}
		if _, dup := seen[f.Column]; dup {
			return Statement{}, fmt.Errorf("%w: %s.%s", ErrDuplicateColumn, b.table, f.Column)
		}
		seen[f.Column] = struct{}{}
		sets = append(sets, f.Column+" = ?")
		args = append(args, f.Value)
	}

	if len(sets) == 0 {
		return Statement{}, ErrNoFields
	}

	var sql strings.Builder
	sql.WriteString("UPDATE ")
	sql.WriteString(b.table)
	sql.WriteString(" SET ")
	sql.WriteString(strings.Join(sets, ", "))
	sql.WriteString(" WHERE ")
	sql.WriteString(b.idColumn)
	sql.WriteString(" = ?")

	args = append(args, id)
	return Statement{SQL: sql.String(), Args: args}, nil
}
