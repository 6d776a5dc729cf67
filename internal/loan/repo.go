package loan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"libraryhub/pkg/models"
)

// ErrNoCopyAvailable is the commit-time conflict: every candidate copy
// was taken before this request could reserve one.
var ErrNoCopyAvailable = errors.New("no available copy")

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

type reservedCopy struct {
	ID       string
	BranchID string
}

// Reserve flips one available copy to on_loan and records the loan in
// a single transaction. Candidates are tried preferred-branch first,
// then preferred-city, then any branch; the guarded UPDATE is the
// check-and-decrement, so two requests can never take the same copy.
// The second return value is the branch the copy was reserved at.
func (r *Repo) Reserve(ctx context.Context, isbn, patronID, preferredBranchID, preferredCity string) (*models.Loan, string, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, "", fmt.Errorf("begin reserve: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `
		SELECT c.id, c.branch_id
		FROM copies c
		JOIN branches b ON b.id = c.branch_id
		WHERE c.isbn = ? AND c.status = ?
		ORDER BY (c.branch_id = ?) DESC, (b.city = ?) DESC, c.rowid
	`, isbn, models.CopyAvailable, preferredBranchID, preferredCity)
	if err != nil {
		return nil, "", fmt.Errorf("candidate copies query: %w", err)
	}

	var candidates []reservedCopy
	for rows.Next() {
		var c reservedCopy
		if err := rows.Scan(&c.ID, &c.BranchID); err != nil {
			rows.Close()
			return nil, "", fmt.Errorf("scan candidate copy: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, "", fmt.Errorf("rows err: %w", err)
	}
	rows.Close()

	var chosen *reservedCopy
	for i := range candidates {
		res, err := tx.ExecContext(ctx, `
			UPDATE copies SET status = ?
			WHERE id = ? AND status = ?
		`, models.CopyOnLoan, candidates[i].ID, models.CopyAvailable)
		if err != nil {
			return nil, "", fmt.Errorf("reserve copy %s: %w", candidates[i].ID, err)
		}
		if n, _ := res.RowsAffected(); n == 1 {
			chosen = &candidates[i]
			break
		}
	}
	if chosen == nil {
		return nil, "", ErrNoCopyAvailable
	}

	l := models.Loan{
		ID:          uuid.NewString(),
		CopyID:      chosen.ID,
		ISBN:        isbn,
		PatronID:    patronID,
		RequestedAt: time.Now().UTC(),
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO loans (id, copy_id, isbn, patron_id, requested_at)
		VALUES (?, ?, ?, ?, ?)
	`, l.ID, l.CopyID, l.ISBN, l.PatronID, l.RequestedAt); err != nil {
		return nil, "", fmt.Errorf("insert loan: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, "", fmt.Errorf("commit reserve: %w", err)
	}

	return &l, chosen.BranchID, nil
}

func (r *Repo) AddCopy(ctx context.Context, c models.Copy) error {
	if !models.IsValidCopyStatus(c.Status) {
		return fmt.Errorf("invalid copy status %q", c.Status)
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO copies (id, isbn, branch_id, status)
		VALUES (?, ?, ?, ?)
	`, c.ID, c.ISBN, c.BranchID, c.Status)
	if err != nil {
		return fmt.Errorf("add copy: %w", err)
	}
	return nil
}

// RecentLoans feeds the librarian dashboard's initial view.
func (r *Repo) RecentLoans(ctx context.Context, limit int) ([]models.Loan, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, copy_id, isbn, patron_id, requested_at
		FROM loans
		ORDER BY requested_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent loans: %w", err)
	}
	defer rows.Close()

	out := make([]models.Loan, 0, limit)
	for rows.Next() {
		var l models.Loan
		if err := rows.Scan(&l.ID, &l.CopyID, &l.ISBN, &l.PatronID, &l.RequestedAt); err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}
