package models

type Author struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Alive     bool   `json:"alive"`
	Birthdate string `json:"birthdate,omitempty"`
	DeathDate string `json:"death_date,omitempty"`
	Bio       string `json:"bio"`
}
