package utils_test

import (
	"errors"
	"gonotes/utils"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestInsertUser(t *testing.T) {
	mock := newTestDB(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("alice", "alice@example.com", "hashed").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, utils.InsertUser("alice", "alice@example.com", "hashed", mock))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertUserDuplicate(t *testing.T) {
	mock := newTestDB(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("alice", "alice@example.com", "hashed").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	err := utils.InsertUser("alice", "alice@example.com", "hashed", mock)
	require.ErrorIs(t, err, utils.ErrDuplicateUser)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertUserOtherErrorPassesThrough(t *testing.T) {
	mock := newTestDB(t)

	dbErr := errors.New("connection reset")
	mock.ExpectExec("INSERT INTO users").
		WithArgs("alice", "alice@example.com", "hashed").
		WillReturnError(dbErr)

	err := utils.InsertUser("alice", "alice@example.com", "hashed", mock)
	require.ErrorIs(t, err, dbErr)
	require.NotErrorIs(t, err, utils.ErrDuplicateUser)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByUsername(t *testing.T) {
	mock := newTestDB(t)

	mock.ExpectQuery("FROM users WHERE username").
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "password", "verified"}).
			AddRow(42, "alice", "alice@example.com", "hashed", true))

	user, err := utils.GetUserByUsername("alice", mock)
	require.NoError(t, err)
	require.Equal(t, 42, user.ID)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, "alice@example.com", user.Email)
	require.Equal(t, "hashed", user.PasswordHash)
	require.True(t, user.Verified)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByUsernameUnknown(t *testing.T) {
	mock := newTestDB(t)

	mock.ExpectQuery("FROM users WHERE username").
		WithArgs("nobody").
		WillReturnError(pgx.ErrNoRows)

	user, err := utils.GetUserByUsername("nobody", mock)
	require.ErrorIs(t, err, pgx.ErrNoRows)
	require.Nil(t, user)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkVerified(t *testing.T) {
	mock := newTestDB(t)

	mock.ExpectExec("UPDATE users SET verified").
		WithArgs("alice@example.com").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, utils.MarkVerified("alice@example.com", mock))
	require.NoError(t, mock.ExpectationsWereMet())
}
