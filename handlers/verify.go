package handlers

import (
	"errors"
	"gonotes/models"
	"gonotes/utils"
	"log"
	"net/http"
	"path"
)

// VerifyEmail handles the link from the confirmation email. Tokens are single
// use only by side effect: replaying one inside its window is idempotent.
func VerifyEmail(w http.ResponseWriter, r *http.Request, app *App) {
	token := path.Base(r.URL.Path)
	if token == "" || token == "verify_email" {
		utils.SetFlash(w, "The confirmation link is invalid.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	email, err := utils.ValidateEmailToken(token, app.Secret)
	if errors.Is(err, utils.ErrTokenExpired) {
		utils.SetFlash(w, "The confirmation link has expired. Request a new one.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err != nil {
		utils.SetFlash(w, "The confirmation link is invalid.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := utils.GetUserByEmail(email, app.DB)
	if err != nil {
		log.Println("No account for verified email:", email)
		utils.SetFlash(w, "The confirmation link is invalid.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if user.Verified {
		utils.SetFlash(w, "Account already confirmed. Please log in.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := utils.MarkVerified(email, app.DB); err != nil {
		utils.SetFlash(w, "Internal error. Please try again.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	// Auto-login right after confirmation.
	if err := utils.EstablishSession(w, user, app.Redis); err != nil {
		log.Println("Failed to establish session:", err)
		utils.SetFlash(w, "Email confirmed. Please log in.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	log.Println("Email confirmed for user:", user.Username)
	utils.SetFlash(w, "Email confirmed. Welcome!")
	http.Redirect(w, r, "/notes", http.StatusSeeOther)
}

func Unconfirmed(w http.ResponseWriter, r *http.Request, app *App) {
	render(w, "unconfirmed", models.PageData{Flash: utils.PopFlash(w, r)})
}

// ResendVerification re-issues a token for the session's account. Guarded
// with LoginOnly so unverified sessions can still reach it.
func ResendVerification(w http.ResponseWriter, r *http.Request, app *App, session *models.Session) {
	user, err := utils.GetUserByID(session.UserID, app.DB)
	if err != nil {
		log.Println("No account for session user:", session.UserID)
		utils.SetFlash(w, "Account not found. Please register again.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if user.Verified {
		utils.SetFlash(w, "Your email address is already confirmed.")
		http.Redirect(w, r, "/notes", http.StatusSeeOther)
		return
	}

	if err := sendVerificationLink(user.Email, app); err != nil {
		log.Println("Error resending verification email to:", user.Email, " |error:", err)
		utils.SetFlash(w, "The confirmation email could not be sent. Please try again later.")
	} else {
		utils.SetFlash(w, "A new confirmation email has been sent.")
	}
	http.Redirect(w, r, "/unconfirmed", http.StatusSeeOther)
}
