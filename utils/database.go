package utils

import (
	"context"
	"errors"
	"fmt"
	"gonotes/models"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateUser is returned when an insert hits the unique constraint on
// username or email. No row is committed in that case.
var ErrDuplicateUser = errors.New("username or email already registered")

// DB is the subset of pgxpool.Pool the query helpers need.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func OpenDB(dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		fmt.Printf("Error parsing DSN: %v\n", err)
		return nil, err
	}

	config.MaxConns = 100
	config.MaxConnIdleTime = 20 * time.Second
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		fmt.Printf("Unable to create connection pool: %v\n", err)
		return nil, err
	}

	// Test the connection
	err = pool.Ping(context.Background())
	if err != nil {
		return nil, err
	}

	return pool, nil
}

// InitSchema creates the users and notes tables if they are missing.
func InitSchema(db DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			verified BOOLEAN NOT NULL DEFAULT FALSE
		);`,
		`CREATE TABLE IF NOT EXISTS notes (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			content TEXT
		);`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("error creating schema: %w", err)
		}
	}
	return nil
}

func InsertUser(username string, email string, passwordHash string, db DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "INSERT INTO users (username, email, password) VALUES ($1, $2, $3);"
	_, err := db.Exec(ctx, stmt, username, email, passwordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateUser
		}
		log.Println("Error adding user:", err)
		return err
	}
	return nil
}

func GetUserByUsername(username string, db DB) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "SELECT id, username, email, password, verified FROM users WHERE username = $1;"
	return scanUser(db.QueryRow(ctx, stmt, username))
}

func GetUserByEmail(email string, db DB) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "SELECT id, username, email, password, verified FROM users WHERE email = $1;"
	return scanUser(db.QueryRow(ctx, stmt, email))
}

func GetUserByID(userID int, db DB) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "SELECT id, username, email, password, verified FROM users WHERE id = $1;"
	return scanUser(db.QueryRow(ctx, stmt, userID))
}

func scanUser(row pgx.Row) (*models.User, error) {
	u := models.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Verified)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// MarkVerified flips the verified flag for the given email. Running it on an
// already-verified account leaves the row unchanged.
func MarkVerified(email string, db DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "UPDATE users SET verified = TRUE WHERE email = $1;"
	_, err := db.Exec(ctx, stmt, email)
	if err != nil {
		log.Println("Error marking user verified:", err)
		return err
	}
	return nil
}
