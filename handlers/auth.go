package handlers

import (
	"errors"
	"gonotes/models"
	"gonotes/utils"
	"log"
	"net/http"
	"strings"
)

// Index sends authenticated callers to their notes and everyone else to login.
func Index(w http.ResponseWriter, r *http.Request, app *App) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if _, err := utils.CurrentSession(r, app.Redis); err == nil {
		http.Redirect(w, r, "/notes", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func Register(w http.ResponseWriter, r *http.Request, app *App) {
	if _, err := utils.CurrentSession(r, app.Redis); err == nil {
		http.Redirect(w, r, "/notes", http.StatusSeeOther)
		return
	}

	switch r.Method {
	case http.MethodGet:
		render(w, "register", models.PageData{Flash: utils.PopFlash(w, r)})

	case http.MethodPost:
		username := strings.TrimSpace(r.FormValue("username"))
		email := strings.TrimSpace(r.FormValue("email"))
		password := r.FormValue("password")

		if username == "" || email == "" || password == "" {
			render(w, "register", models.PageData{Flash: "All fields are required."})
			return
		}
		if err := utils.ValidateEmail(email); err != nil {
			render(w, "register", models.PageData{Flash: "Please enter a valid email address."})
			return
		}
		if err := utils.ValidatePassword(password); err != nil {
			render(w, "register", models.PageData{Flash: "Passwords must be at least 8 characters in length and contain: one uppercase letter, one lowercase letter, one special character, one digit."})
			return
		}

		passwordHash, err := utils.HashPassword(password)
		if err != nil {
			log.Println("Error hashing password:", err)
			render(w, "register", models.PageData{Flash: "Error creating account. Please try again."})
			return
		}

		err = utils.InsertUser(username, email, passwordHash, app.DB)
		if errors.Is(err, utils.ErrDuplicateUser) {
			render(w, "register", models.PageData{Flash: "Username or email already registered. Please choose a different one."})
			return
		}
		if err != nil {
			render(w, "register", models.PageData{Flash: "Error creating account. Please try again."})
			return
		}

		// Registration is committed at this point; a mail failure only changes
		// the message the user sees, never the stored account.
		if err := sendVerificationLink(email, app); err != nil {
			log.Println("Error sending verification email to:", email, " |error:", err)
			utils.SetFlash(w, "Account created, but the confirmation email could not be sent. Log in to request a new one.")
		} else {
			utils.SetFlash(w, "Registration successful! Check your email to confirm your account.")
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func Login(w http.ResponseWriter, r *http.Request, app *App) {
	if _, err := utils.CurrentSession(r, app.Redis); err == nil {
		http.Redirect(w, r, "/notes", http.StatusSeeOther)
		return
	}

	switch r.Method {
	case http.MethodGet:
		render(w, "login", models.PageData{Flash: utils.PopFlash(w, r)})

	case http.MethodPost:
		username := strings.TrimSpace(r.FormValue("username"))
		password := r.FormValue("password")

		if username == "" || password == "" {
			render(w, "login", models.PageData{Flash: "Missing credentials."})
			return
		}

		user, err := utils.GetUserByUsername(username, app.DB)
		if err != nil || !utils.CheckPasswordHash(password, user.PasswordHash) {
			// Same message whether the username exists or not.
			log.Println("Login rejected for username:", username)
			render(w, "login", models.PageData{Flash: "Invalid username or password. Please try again."})
			return
		}

		if !user.Verified {
			utils.SetFlash(w, "Please confirm your email address before logging in.")
			http.Redirect(w, r, "/unconfirmed", http.StatusSeeOther)
			return
		}

		if err := utils.EstablishSession(w, user, app.Redis); err != nil {
			log.Println("Failed to establish session:", err)
			render(w, "login", models.PageData{Flash: "Internal error. Please try again."})
			return
		}

		log.Println("Login successful for user:", username)
		utils.SetFlash(w, "Logged in successfully!")
		http.Redirect(w, r, "/notes", http.StatusSeeOther)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func Logout(w http.ResponseWriter, r *http.Request, app *App) {
	utils.ClearSession(w, r, app.Redis)
	utils.SetFlash(w, "You have been logged out.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func sendVerificationLink(email string, app *App) error {
	token, err := utils.IssueEmailToken(email, app.Secret, utils.EmailTokenTTL)
	if err != nil {
		return err
	}
	return app.Mail(email, app.BaseURL+"/verify_email/"+token)
}
