package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telegram-suite/identity-hub/internal/domain"
)

func pgError(code, constraint string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		wantErr error
	}{
		{
			name:    "nil passes through",
			err:     nil,
			wantErr: nil,
		},
		{
			name:    "no rows maps to not found",
			err:     sql.ErrNoRows,
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "unique violation maps to invalid data",
			err:     pgError(pgerrcode.UniqueViolation, "uq_users_chat_id"),
			wantErr: domain.ErrInvalidData,
		},
		{
			name:    "foreign key violation maps to invalid data",
			err:     pgError(pgerrcode.ForeignKeyViolation, ""),
			wantErr: domain.ErrInvalidData,
		},
		{
			name:    "numeric overflow maps to invalid data",
			err:     pgError(pgerrcode.NumericValueOutOfRange, ""),
			wantErr: domain.ErrInvalidData,
		},
		{
			name:    "connection failure maps to unavailable",
			err:     pgError(pgerrcode.ConnectionFailure, ""),
			wantErr: domain.ErrUnavailable,
		},
		{
			name:    "admin shutdown maps to unavailable",
			err:     pgError(pgerrcode.AdminShutdown, ""),
			wantErr: domain.ErrUnavailable,
		},
		{
			name:    "bad connection maps to unavailable",
			err:     driver.ErrBadConn,
			wantErr: domain.ErrUnavailable,
		},
		{
			name:    "cancelled context maps to unavailable",
			err:     context.Canceled,
			wantErr: domain.ErrUnavailable,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify("storage.Test", tc.err)
			if tc.wantErr == nil {
				assert.NoError(t, got)
				return
			}
			require.Error(t, got)
			assert.ErrorIs(t, got, tc.wantErr)
			assert.Contains(t, got.Error(), "storage.Test")
		})
	}
}

func TestClassifyUnknownErrorPassesThrough(t *testing.T) {
	cause := errors.New("boom")

	got := classify("storage.Test", cause)

	require.Error(t, got)
	assert.ErrorIs(t, got, cause)
	assert.False(t, errors.Is(got, domain.ErrInvalidData))
	assert.False(t, errors.Is(got, domain.ErrUnavailable))
}

func TestIsUniqueViolation(t *testing.T) {
	uq := pgError(pgerrcode.UniqueViolation, "uq_user_subscription_active")

	assert.True(t, isUniqueViolation(uq, "uq_user_subscription_active"))
	assert.True(t, isUniqueViolation(uq, ""))
	assert.True(t, isUniqueViolation(fmt.Errorf("wrapped: %w", uq), "uq_user_subscription_active"))
	assert.False(t, isUniqueViolation(uq, "uq_users_chat_id"))
	assert.False(t, isUniqueViolation(pgError(pgerrcode.ForeignKeyViolation, ""), ""))
	assert.False(t, isUniqueViolation(errors.New("not a pg error"), ""))
}

func TestBuildUpdate(t *testing.T) {
	lang := "en"
	cols := []string{"username", "language"}
	args := []any{"alice", lang}

	query, outArgs := buildUpdate("users", cols, args, "id", int64(7), "id, username")

	assert.Equal(t,
		"UPDATE users SET username = $1, language = $2 WHERE id = $3 RETURNING id, username",
		query)
	assert.Equal(t, []any{"alice", lang, int64(7)}, outArgs)
}

func TestBuildUpdateWithoutReturning(t *testing.T) {
	query, outArgs := buildUpdate("services", []string{"description"}, []any{"bot"}, "id", int64(3), "")

	assert.Equal(t, "UPDATE services SET description = $1 WHERE id = $2", query)
	assert.Equal(t, []any{"bot", int64(3)}, outArgs)
}
