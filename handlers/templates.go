package handlers

import (
	"gonotes/models"
	"html/template"
	"log"
	"net/http"
)

// Pages are deliberately minimal: just enough markup to drive the form flows.
const pagesHTML = `
{{define "head"}}<!DOCTYPE html>
<html><head><title>Gonotes</title></head><body>
{{if .Flash}}<p class="flash">{{.Flash}}</p>{{end}}{{end}}

{{define "foot"}}</body></html>{{end}}

{{define "register"}}{{template "head" .}}
<h1>Register</h1>
<form method="post" action="/register">
  <input name="username" placeholder="Username">
  <input name="email" placeholder="Email">
  <input type="password" name="password" placeholder="Password">
  <button type="submit">Register</button>
</form>
<p><a href="/login">Already have an account? Log in</a></p>
{{template "foot" .}}{{end}}

{{define "login"}}{{template "head" .}}
<h1>Log in</h1>
<form method="post" action="/login">
  <input name="username" placeholder="Username">
  <input type="password" name="password" placeholder="Password">
  <button type="submit">Log in</button>
</form>
<p><a href="/register">Need an account? Register</a></p>
{{template "foot" .}}{{end}}

{{define "unconfirmed"}}{{template "head" .}}
<h1>Email not confirmed</h1>
<p>Please confirm your email address with the link we sent you.</p>
<p><a href="/resend_verification_email">Resend the confirmation email</a></p>
<p><a href="/login">Back to login</a></p>
{{template "foot" .}}{{end}}

{{define "notes"}}{{template "head" .}}
<h1>{{.Username}}'s notes</h1>
<p><a href="/add_note">Add a note</a> | <a href="/logout">Log out</a></p>
<ul>
{{range .Notes}}
  <li>
    <strong>{{.Title}}</strong> {{.Content}}
    <a href="/edit_note/{{.ID}}">edit</a>
    <form method="post" action="/delete_note/{{.ID}}"><button type="submit">delete</button></form>
  </li>
{{else}}
  <li>No notes yet.</li>
{{end}}
</ul>
{{template "foot" .}}{{end}}

{{define "add_note"}}{{template "head" .}}
<h1>Add note</h1>
<form method="post" action="/add_note">
  <input name="title" placeholder="Title">
  <textarea name="content" placeholder="Content"></textarea>
  <button type="submit">Save</button>
</form>
<p><a href="/notes">Back to notes</a></p>
{{template "foot" .}}{{end}}

{{define "edit_note"}}{{template "head" .}}
<h1>Edit note</h1>
<form method="post" action="/edit_note/{{.Note.ID}}">
  <input name="title" value="{{.Note.Title}}">
  <textarea name="content">{{.Note.Content}}</textarea>
  <button type="submit">Save</button>
</form>
<p><a href="/notes">Back to notes</a></p>
{{template "foot" .}}{{end}}
`

var pageTemplates = template.Must(template.New("pages").Parse(pagesHTML))

func render(w http.ResponseWriter, name string, data models.PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		log.Println("Error rendering template:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
