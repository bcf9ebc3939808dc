package models

type User struct {
	ID           int    `db:"id"`
	Username     string `db:"username"`
	Email        string `db:"email"`
	PasswordHash string `db:"password"`
	Verified     bool   `db:"verified"`
}
