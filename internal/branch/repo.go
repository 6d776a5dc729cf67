package branch

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

// List returns every branch; the dataset stays small enough to ship
// whole to the client for the city/branch cascade.
func (r *Repo) List(ctx context.Context) ([]models.Branch, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, city, address
		FROM branches
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	var out []models.Branch
	for rows.Next() {
		var b models.Branch
		if err := rows.Scan(&b.ID, &b.City, &b.Address); err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) Create(ctx context.Context, b models.Branch) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO branches (id, city, address)
		VALUES (?, ?, ?)
	`, b.ID, b.City, b.Address)
	if err != nil {
		return fmt.Errorf("create branch: %w", err)
	}
	return nil
}
