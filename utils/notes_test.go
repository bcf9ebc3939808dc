package utils_test

import (
	"gonotes/utils"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func TestListNotes(t *testing.T) {
	mock := newTestDB(t)

	mock.ExpectQuery("SELECT id, user_id, title, COALESCE").
		WithArgs(42).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "title", "content"}).
			AddRow(2, 42, "Second", "").
			AddRow(1, 42, "First", "body"))

	notes, err := utils.ListNotes(42, mock)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	require.Equal(t, "Second", notes[0].Title)
	require.Equal(t, "body", notes[1].Content)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListNotesEmpty(t *testing.T) {
	mock := newTestDB(t)

	mock.ExpectQuery("SELECT id, user_id, title, COALESCE").
		WithArgs(42).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "title", "content"}))

	notes, err := utils.ListNotes(42, mock)
	require.NoError(t, err)
	require.Empty(t, notes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertNote(t *testing.T) {
	mock := newTestDB(t)

	mock.ExpectExec("INSERT INTO notes").
		WithArgs(42, "Groceries", "milk, eggs").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, utils.InsertNote(42, "Groceries", "milk, eggs", mock))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNoteOwnedByAnotherUser(t *testing.T) {
	mock := newTestDB(t)

	mock.ExpectQuery("SELECT id, user_id, title, COALESCE").
		WithArgs(7, 99).
		WillReturnError(pgx.ErrNoRows)

	note, err := utils.GetNote(7, 99, mock)
	require.ErrorIs(t, err, utils.ErrNoteNotFound)
	require.Nil(t, note)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNoteOwnedByAnotherUser(t *testing.T) {
	mock := newTestDB(t)

	mock.ExpectExec("UPDATE notes SET title").
		WithArgs("Stolen", "content", 7, 99).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := utils.UpdateNote(7, 99, "Stolen", "content", mock)
	require.ErrorIs(t, err, utils.ErrNoteNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNote(t *testing.T) {
	mock := newTestDB(t)

	mock.ExpectExec("UPDATE notes SET title").
		WithArgs("Groceries", "milk", 7, 42).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, utils.UpdateNote(7, 42, "Groceries", "milk", mock))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNoteOwnedByAnotherUser(t *testing.T) {
	mock := newTestDB(t)

	mock.ExpectExec("DELETE FROM notes").
		WithArgs(7, 99).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := utils.DeleteNote(7, 99, mock)
	require.ErrorIs(t, err, utils.ErrNoteNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNote(t *testing.T) {
	mock := newTestDB(t)

	mock.ExpectExec("DELETE FROM notes").
		WithArgs(7, 42).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, utils.DeleteNote(7, 42, mock))
	require.NoError(t, mock.ExpectationsWereMet())
}
