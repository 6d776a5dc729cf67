package author

import (
	"context"
	"database/sql"
	"fmt"

	"libraryhub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) Create(ctx context.Context, a models.Author) error {
	var deathDate any
	if a.DeathDate != "" {
		deathDate = a.DeathDate
	}
	var birthdate any
	if a.Birthdate != "" {
		birthdate = a.Birthdate
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO authors (id, first_name, last_name, alive, birthdate, death_date, bio)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.FirstName, a.LastName, a.Alive, birthdate, deathDate, a.Bio)
	if err != nil {
		return fmt.Errorf("create author: %w", err)
	}
	return nil
}

func (r *Repo) List(ctx context.Context) ([]models.Author, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, first_name, last_name, alive,
		       COALESCE(birthdate, ''), COALESCE(death_date, ''), bio
		FROM authors
		ORDER BY last_name, first_name
	`)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	var out []models.Author
	for rows.Next() {
		var a models.Author
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Alive,
			&a.Birthdate, &a.DeathDate, &a.Bio); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}
