package handlers

import (
	"gonotes/models"
	"gonotes/utils"
	"log"
	"net/http"
)

// Policy selects how much a route demands from the caller.
type Policy int

const (
	// LoginOnly requires an active session, verified or not.
	LoginOnly Policy = iota
	// LoginAndVerified additionally requires the email to be confirmed.
	LoginAndVerified
)

// AuthedHandler is a handler that only ever runs with a resolved session.
type AuthedHandler func(w http.ResponseWriter, r *http.Request, app *App, session *models.Session)

// Protect gates a route behind the given policy. The check runs before any
// handler body; anonymous callers never reach business logic. Every pass
// through the guard slides the session expiry forward.
func Protect(app *App, policy Policy, h AuthedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := utils.CurrentSession(r, app.Redis)
		if err != nil {
			utils.SetFlash(w, "Please log in to continue.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		utils.TouchSession(w, app.Redis, session.Token)

		if policy == LoginAndVerified {
			user, err := utils.GetUserByID(session.UserID, app.DB)
			if err != nil {
				log.Println("Error loading user for session:", err)
				utils.ClearSession(w, r, app.Redis)
				utils.SetFlash(w, "Please log in to continue.")
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			if !user.Verified {
				http.Redirect(w, r, "/unconfirmed", http.StatusSeeOther)
				return
			}
		}

		h(w, r, app, session)
	}
}
