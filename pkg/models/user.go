package models

const (
	RolePatron    = "patron"
	RoleLibrarian = "librarian"
)

type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}
