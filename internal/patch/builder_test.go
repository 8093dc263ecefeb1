package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestBuilder_Build(t *testing.T) {
	b := NewBuilder("restaurants", "name", "cuisine", "rating")

	tests := []struct {
		name         string
		fields       []Field
		expectedSQL  string
		expectedArgs []interface{}
		expectedErr  error
	}{
		{
			name:         "single field",
			fields:       []Field{Value("name", ptr("X")), Value[string]("cuisine", nil), Value[float64]("rating", nil)},
			expectedSQL:  "UPDATE restaurants SET name = ? WHERE id = ?",
			expectedArgs: []interface{}{"X", uint(7)},
		},
		{
			name:         "insertion order kept",
			fields:       []Field{Value("rating", ptr(4.5)), Value("name", ptr("Y"))},
			expectedSQL:  "UPDATE restaurants SET rating = ?, name = ? WHERE id = ?",
			expectedArgs: []interface{}{4.5, "Y", uint(7)},
		},
		{
			name:         "zero values are present",
			fields:       []Field{Value("rating", ptr(0.0)), Value("cuisine", ptr(""))},
			expectedSQL:  "UPDATE restaurants SET rating = ?, cuisine = ? WHERE id = ?",
			expectedArgs: []interface{}{0.0, "", uint(7)},
		},
		{
			name:        "nothing present",
			fields:      []Field{Value[string]("name", nil)},
			expectedErr: ErrNoFields,
		},
		{
			name:        "column outside allow-list",
			fields:      []Field{Set("owner_id", 3)},
			expectedErr: ErrUnknownColumn,
		},
		{
			name:         "absent unknown column is ignored",
			fields:       []Field{Value[int]("owner_id; DROP TABLE users", nil), Set("name", "Z")},
			expectedSQL:  "UPDATE restaurants SET name = ? WHERE id = ?",
			expectedArgs: []interface{}{"Z", uint(7)},
		},
		{
			name:        "duplicate column",
			fields:      []Field{Set("name", "A"), Set("name", "B")},
			expectedErr: ErrDuplicateColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := b.Build(uint(7), tt.fields...)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedSQL, stmt.SQL)
			assert.Equal(t, tt.expectedArgs, stmt.Args)
		})
	}
}

func TestBuilder_ValuesNeverInterpolated(t *testing.T) {
	b := NewBuilder("users", "name")
	hostile := "x'; DROP TABLE users; --"

	stmt, err := b.Build(1, Value("name", &hostile))
	require.NoError(t, err)

	assert.NotContains(t, stmt.SQL, "DROP")
	assert.Equal(t, []interface{}{hostile, 1}, stmt.Args)
}

func TestCount(t *testing.T) {
	assert.Equal(t, 0, Count())
	assert.Equal(t, 0, Count(Value[string]("name", nil)))
	assert.Equal(t, 2, Count(Set("a", 1), Value[string]("b", nil), Value("c", ptr(false))))
}
