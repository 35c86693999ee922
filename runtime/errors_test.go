package runtime

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueryErrorFormatting(t *testing.T) {
	err := NewQueryError("insert", "users", ErrEmptyValues)
	require.Equal(t, "insert on users: invalid argument: empty column values", err.Error())

	bare := NewQueryError("query", "", errors.New("boom"))
	require.Equal(t, "query: boom", bare.Error())
}

func TestQueryErrorUnwrapsToSentinel(t *testing.T) {
	err := NewQueryError("update", "users", ErrMissingPrimaryKey)

	require.ErrorIs(t, err, ErrMissingPrimaryKey)
	require.Equal(t, ErrMissingPrimaryKey, errors.Unwrap(err))
}

func TestInvalidArgumentFamily(t *testing.T) {
	for _, err := range []error{ErrEmptyValues, ErrEmptyInList, ErrInvalidDirection} {
		require.ErrorIs(t, err, ErrInvalidArgument)
		require.True(t, IsInvalidArgument(err))
	}
	require.False(t, IsInvalidArgument(ErrNotFound))
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Table: "users", ID: 42}

	require.Equal(t, "no record in users with id 42", err.Error())
	require.True(t, IsNotFound(err))
	require.True(t, IsNotFound(fmt.Errorf("find: %w", err)))
	require.False(t, IsNotFound(ErrInvalidArgument))
}

func TestQueryErrorWrappingStorageFailure(t *testing.T) {
	driverErr := errors.New("UNIQUE constraint failed: users.email")
	err := &QueryError{
		Operation: "exec",
		Cause:     driverErr,
		Query:     `INSERT INTO "users" ("email") VALUES (?)`,
		Args:      []interface{}{"john@example.com"},
	}

	require.ErrorIs(t, err, driverErr)
	require.Contains(t, err.Error(), "UNIQUE constraint failed")
}
