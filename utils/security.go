package utils

import (
	"errors"
	"gonotes/models"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// SessionCookie names the cookie carrying the opaque session token.
const SessionCookie = "session_token"

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

// EstablishSession writes the user's identity into Redis and sets the session
// cookie. The previous session, if any, is left to expire on its own.
func EstablishSession(w http.ResponseWriter, user *models.User, client *redis.Client) error {
	token := uuid.NewString()

	now := time.Now().Format(time.RFC3339)
	session := models.Session{
		Token:        token,
		UserID:       user.ID,
		Username:     user.Username,
		CreatedAt:    now,
		LastActivity: now,
	}

	// Store first: the browser must never end up with a cookie holding a
	// token Redis does not know about.
	if err := StoreSession(client, session); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
	})
	return nil
}

// ClearSession deletes the server-side session and expires the cookie.
func ClearSession(w http.ResponseWriter, r *http.Request, client *redis.Client) {
	if CookieExists(r, SessionCookie) {
		st, _ := r.Cookie(SessionCookie)
		if err := DeleteSession(client, st.Value); err != nil {
			log.Println("Failed to delete session:", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

// CurrentSession resolves the request's identity from the cookie without a
// database round-trip. Absence of a session means anonymous.
func CurrentSession(r *http.Request, client *redis.Client) (*models.Session, error) {
	if !CookieExists(r, SessionCookie) {
		return nil, errors.New("unauthorized: missing or empty session token")
	}
	st, _ := r.Cookie(SessionCookie)
	return GetSession(client, st.Value)
}

// TouchSession refreshes both the Redis TTL and the cookie lifetime.
func TouchSession(w http.ResponseWriter, client *redis.Client, token string) {
	if err := RefreshSession(client, token); err != nil {
		log.Println("Failed to refresh session:", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
	})
}
