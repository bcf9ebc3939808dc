package utils

import (
	"context"
	"errors"
	"gonotes/models"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
)

// ErrNoteNotFound covers both a missing note id and a note owned by another
// user; callers cannot tell the two apart.
var ErrNoteNotFound = errors.New("note not found")

// ListNotes returns all notes owned by the user, newest first.
func ListNotes(userID int, db DB) ([]models.Note, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "SELECT id, user_id, title, COALESCE(content, '') FROM notes WHERE user_id = $1 ORDER BY id DESC;"
	rows, err := db.Query(ctx, stmt, userID)
	if err != nil {
		log.Println("Error querying notes:", err)
		return nil, errors.New("error querying notes")
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		n := models.Note{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content); err != nil {
			log.Println("Error scanning note row:", err)
			return nil, errors.New("error processing notes")
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		log.Println("Error after scanning all rows:", err)
		return nil, errors.New("error processing notes")
	}

	return notes, nil
}

func InsertNote(userID int, title string, content string, db DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "INSERT INTO notes (user_id, title, content) VALUES ($1, $2, NULLIF($3, ''));"
	_, err := db.Exec(ctx, stmt, userID, title, content)
	if err != nil {
		log.Println("Error inserting note:", err)
		return err
	}
	return nil
}

// GetNote loads a single note scoped by owner.
func GetNote(noteID int, userID int, db DB) (*models.Note, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "SELECT id, user_id, title, COALESCE(content, '') FROM notes WHERE id = $1 AND user_id = $2;"
	n := models.Note{}
	err := db.QueryRow(ctx, stmt, noteID, userID).Scan(&n.ID, &n.UserID, &n.Title, &n.Content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		log.Println("Error querying note:", err)
		return nil, err
	}
	return &n, nil
}

func UpdateNote(noteID int, userID int, title string, content string, db DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "UPDATE notes SET title = $1, content = NULLIF($2, '') WHERE id = $3 AND user_id = $4;"
	tag, err := db.Exec(ctx, stmt, title, content, noteID, userID)
	if err != nil {
		log.Println("Error updating note:", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// DeleteNote removes the note only when it belongs to the user; ownership is
// re-checked by the WHERE clause of the delete itself.
func DeleteNote(noteID int, userID int, db DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "DELETE FROM notes WHERE id = $1 AND user_id = $2;"
	tag, err := db.Exec(ctx, stmt, noteID, userID)
	if err != nil {
		log.Println("Failed to delete note:", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoteNotFound
	}
	return nil
}
