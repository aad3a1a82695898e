package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/taskapi/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockResult implements sql.Result for testing
type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) { return 0, nil }

func (m mockResult) RowsAffected() (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.rowsAffected, nil
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		contains string
	}{
		{name: "nil_error", err: nil},
		{name: "sql_no_rows", err: sql.ErrNoRows, sentinel: store.ErrNotFound},
		{
			name:     "unique_violation",
			err:      &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_email_key"},
			sentinel: store.ErrDuplicate,
		},
		{
			name:     "foreign_key_violation",
			err:      &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "tasks_user_id_fkey"},
			sentinel: store.ErrInvalidEntity,
			contains: "tasks_user_id_fkey",
		},
		{
			name:     "check_violation",
			err:      &pgconn.PgError{Code: checkViolationCode, ConstraintName: "tasks_status_len"},
			sentinel: store.ErrInvalidEntity,
			contains: "check constraint violation",
		},
		{
			name:     "not_null_violation",
			err:      &pgconn.PgError{Code: notNullViolationCode, ColumnName: "description"},
			sentinel: store.ErrInvalidEntity,
			contains: "description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}
			require.Error(t, got)
			assert.ErrorIs(t, got, tt.sentinel)
			if tt.contains != "" {
				assert.Contains(t, got.Error(), tt.contains)
			}
		})
	}

	t.Run("unmapped_error_passes_through", func(t *testing.T) {
		original := errors.New("connection reset by peer")
		assert.Equal(t, original, MapError(original))
	})
}

func TestViolationHelpers(t *testing.T) {
	unique := &pgconn.PgError{Code: uniqueViolationCode}
	fk := &pgconn.PgError{Code: foreignKeyViolationCode}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(errors.New("plain")))
}

func TestCheckRowsAffected(t *testing.T) {
	assert.NoError(t, CheckRowsAffected(mockResult{rowsAffected: 1}, store.ErrTaskNotFound))
	assert.Equal(t, store.ErrTaskNotFound, CheckRowsAffected(mockResult{}, store.ErrTaskNotFound))
	assert.Equal(t, store.ErrNotFound, CheckRowsAffected(mockResult{}, nil))

	err := CheckRowsAffected(mockResult{err: errors.New("driver")}, store.ErrTaskNotFound)
	assert.ErrorContains(t, err, "failed to get rows affected")

	assert.Error(t, CheckRowsAffected(nil, store.ErrTaskNotFound))
}

func TestDBErrorWrapsStoreError(t *testing.T) {
	err := dbError("task", "create", &pgconn.PgError{Code: checkViolationCode})

	var storeErr *store.StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "task", storeErr.Entity)
	assert.Equal(t, "create", storeErr.Operation)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}
