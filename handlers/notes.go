package handlers

import (
	"errors"
	"gonotes/models"
	"gonotes/utils"
	"log"
	"net/http"
	"path"
	"strconv"
	"strings"
)

// Notes lists the session user's notes, newest first.
func Notes(w http.ResponseWriter, r *http.Request, app *App, session *models.Session) {
	notes, err := utils.ListNotes(session.UserID, app.DB)
	if err != nil {
		log.Println("Error retrieving notes for user:", session.UserID, ": ", err)
		http.Error(w, "Error displaying notes", http.StatusInternalServerError)
		return
	}

	render(w, "notes", models.PageData{
		Flash:    utils.PopFlash(w, r),
		Username: session.Username,
		Notes:    notes,
	})
}

func AddNote(w http.ResponseWriter, r *http.Request, app *App, session *models.Session) {
	switch r.Method {
	case http.MethodGet:
		render(w, "add_note", models.PageData{Flash: utils.PopFlash(w, r)})

	case http.MethodPost:
		title := strings.TrimSpace(r.FormValue("title"))
		content := r.FormValue("content")

		if err := utils.ValidateNoteTitle(title); err != nil {
			render(w, "add_note", models.PageData{Flash: "Note title is required, must be at most 255 characters and cannot contain <>\"'."})
			return
		}

		if err := utils.InsertNote(session.UserID, title, content, app.DB); err != nil {
			render(w, "add_note", models.PageData{Flash: "Error saving note. Please try again."})
			return
		}

		utils.SetFlash(w, "Note added successfully!")
		http.Redirect(w, r, "/notes", http.StatusSeeOther)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func EditNote(w http.ResponseWriter, r *http.Request, app *App, session *models.Session) {
	noteID, err := noteIDFromPath(r)
	if err != nil {
		utils.SetFlash(w, "Note not found or you do not have permission to edit it.")
		http.Redirect(w, r, "/notes", http.StatusSeeOther)
		return
	}

	// The note is loaded scoped by owner before any mutation is allowed.
	note, err := utils.GetNote(noteID, session.UserID, app.DB)
	if err != nil {
		utils.SetFlash(w, "Note not found or you do not have permission to edit it.")
		http.Redirect(w, r, "/notes", http.StatusSeeOther)
		return
	}

	switch r.Method {
	case http.MethodGet:
		render(w, "edit_note", models.PageData{Flash: utils.PopFlash(w, r), Note: note})

	case http.MethodPost:
		title := strings.TrimSpace(r.FormValue("title"))
		content := r.FormValue("content")

		if err := utils.ValidateNoteTitle(title); err != nil {
			render(w, "edit_note", models.PageData{Flash: "Note title is required, must be at most 255 characters and cannot contain <>\"'.", Note: note})
			return
		}

		err := utils.UpdateNote(noteID, session.UserID, title, content, app.DB)
		if errors.Is(err, utils.ErrNoteNotFound) {
			utils.SetFlash(w, "Note not found or you do not have permission to edit it.")
			http.Redirect(w, r, "/notes", http.StatusSeeOther)
			return
		}
		if err != nil {
			render(w, "edit_note", models.PageData{Flash: "Error saving note. Please try again.", Note: note})
			return
		}

		utils.SetFlash(w, "Note updated successfully!")
		http.Redirect(w, r, "/notes", http.StatusSeeOther)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func DeleteNote(w http.ResponseWriter, r *http.Request, app *App, session *models.Session) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	noteID, err := noteIDFromPath(r)
	if err != nil {
		utils.SetFlash(w, "Note not found or you do not have permission to delete it.")
		http.Redirect(w, r, "/notes", http.StatusSeeOther)
		return
	}

	err = utils.DeleteNote(noteID, session.UserID, app.DB)
	if errors.Is(err, utils.ErrNoteNotFound) {
		utils.SetFlash(w, "Note not found or you do not have permission to delete it.")
		http.Redirect(w, r, "/notes", http.StatusSeeOther)
		return
	}
	if err != nil {
		utils.SetFlash(w, "Error deleting note. Please try again.")
		http.Redirect(w, r, "/notes", http.StatusSeeOther)
		return
	}

	utils.SetFlash(w, "Note deleted successfully!")
	http.Redirect(w, r, "/notes", http.StatusSeeOther)
}

func noteIDFromPath(r *http.Request) (int, error) {
	return strconv.Atoi(path.Base(r.URL.Path))
}
