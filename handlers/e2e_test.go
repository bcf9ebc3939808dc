package handlers_test

import (
	"gonotes/handlers"
	"gonotes/utils"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

// TestRegisterVerifyLoginNotesFlow walks the whole happy path: register an
// account, confirm it through the emailed link, log in, add a note and see
// it listed.
func TestRegisterVerifyLoginNotesFlow(t *testing.T) {
	app, mock := newTestEnv(t)

	const (
		username = "alice"
		email    = "alice@example.com"
		password = "SecureP@ss123"
	)

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	var link string
	app.Mail = func(to string, l string) error {
		require.Equal(t, email, to)
		link = l
		return nil
	}

	// Register.
	mock.ExpectExec("INSERT INTO users").
		WithArgs(username, email, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	rec := httptest.NewRecorder()
	handlers.Register(rec, postForm("/register", url.Values{
		"username": {username},
		"email":    {email},
		"password": {password},
	}), app)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
	require.NotEmpty(t, link)

	// Follow the emailed confirmation link.
	token := strings.TrimPrefix(link, app.BaseURL+"/verify_email/")
	require.NotEqual(t, link, token)

	mock.ExpectQuery("FROM users WHERE email").
		WithArgs(email).
		WillReturnRows(userRows(1, username, email, hash, false))
	mock.ExpectExec("UPDATE users SET verified").
		WithArgs(email).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	rec = httptest.NewRecorder()
	handlers.VerifyEmail(rec, httptest.NewRequest(http.MethodGet, "/verify_email/"+token, nil), app)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/notes", rec.Header().Get("Location"))

	// Log in from a fresh browser.
	mock.ExpectQuery("FROM users WHERE username").
		WithArgs(username).
		WillReturnRows(userRows(1, username, email, hash, true))

	rec = httptest.NewRecorder()
	handlers.Login(rec, postForm("/login", url.Values{
		"username": {username},
		"password": {password},
	}), app)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/notes", rec.Header().Get("Location"))

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)

	// Add a note.
	mock.ExpectQuery("FROM users WHERE id").
		WithArgs(1).
		WillReturnRows(userRows(1, username, email, hash, true))
	mock.ExpectExec("INSERT INTO notes").
		WithArgs(1, "Milk", "2 litres").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	req := postForm("/add_note", url.Values{
		"title":   {"Milk"},
		"content": {"2 litres"},
	})
	req.AddCookie(cookie)

	rec = httptest.NewRecorder()
	handlers.Protect(app, handlers.LoginAndVerified, handlers.AddNote)(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/notes", rec.Header().Get("Location"))

	// The note shows up on the list page.
	mock.ExpectQuery("FROM users WHERE id").
		WithArgs(1).
		WillReturnRows(userRows(1, username, email, hash, true))
	mock.ExpectQuery("SELECT id, user_id, title, COALESCE").
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "title", "content"}).
			AddRow(1, 1, "Milk", "2 litres"))

	req = httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.AddCookie(cookie)

	rec = httptest.NewRecorder()
	handlers.Protect(app, handlers.LoginAndVerified, handlers.Notes)(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "<strong>Milk</strong>")
	require.Contains(t, rec.Body.String(), "2 litres")

	require.NoError(t, mock.ExpectationsWereMet())
}
