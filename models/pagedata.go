package models

type PageData struct {
	Flash    string
	Username string
	Notes    []Note
	Note     *Note
}
