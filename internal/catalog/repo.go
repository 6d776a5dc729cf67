package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"libraryhub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

type ListQuery struct {
	Q      string // keyword search in title
	Limit  int
	Offset int
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// BookAuthorRows fetches the flat book/publisher/author join for one
// ISBN. LEFT JOINs keep a book visible when it has no publisher or no
// authors; ba.rowid preserves the order authors were attached.
func (r *Repo) BookAuthorRows(ctx context.Context, isbn string) ([]BookAuthorRow, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT b.isbn, b.title, COALESCE(p.name, ''), b.blurb,
		       ba.author_id, a.first_name, a.last_name
		FROM books b
		LEFT JOIN publishers p ON p.id = b.publisher_id
		LEFT JOIN book_authors ba ON ba.isbn = b.isbn
		LEFT JOIN authors a ON a.id = ba.author_id
		WHERE b.isbn = ?
		ORDER BY ba.rowid
	`, isbn)
	if err != nil {
		return nil, fmt.Errorf("book author rows query: %w", err)
	}
	defer rows.Close()

	var out []BookAuthorRow
	for rows.Next() {
		var (
			row         BookAuthorRow
			authorID    sql.NullString
			authorFirst sql.NullString
			authorLast  sql.NullString
		)
		if err := rows.Scan(
			&row.ISBN, &row.Title, &row.Publisher, &row.Blurb,
			&authorID, &authorFirst, &authorLast,
		); err != nil {
			return nil, fmt.Errorf("scan book author row: %w", err)
		}
		row.AuthorID = authorID.String
		row.AuthorFirst = authorFirst.String
		row.AuthorLast = authorLast.String
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// CountAvailable counts copies shelved anywhere; the displayed count is
// deliberately global, a preferred branch never filters it.
func (r *Repo) CountAvailable(ctx context.Context, isbn string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM copies
		WHERE isbn = ? AND status = ?
	`, isbn, models.CopyAvailable).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count available: %w", err)
	}
	return n, nil
}

func (r *Repo) Count(ctx context.Context, q ListQuery) (int, error) {
	sqlStr, args := buildListSQL(q, true)
	var total int
	if err := r.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count scan: %w", err)
	}
	return total, nil
}

func (r *Repo) List(ctx context.Context, q ListQuery) ([]models.Book, error) {
	sqlStr, args := buildListSQL(q, false)

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	out := make([]models.Book, 0, q.Limit)
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ISBN, &b.Title, &b.Publisher, &b.Blurb); err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func buildListSQL(q ListQuery, countOnly bool) (string, []any) {
	baseSelect := `
		SELECT b.isbn, b.title, COALESCE(p.name, ''), b.blurb
		FROM books b
		LEFT JOIN publishers p ON p.id = b.publisher_id
	`
	if countOnly {
		baseSelect = `SELECT COUNT(*) FROM books b`
	}

	var where []string
	var args []any

	if strings.TrimSpace(q.Q) != "" {
		where = append(where, "LOWER(b.title) LIKE ?")
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(q.Q))+"%")
	}

	sqlStr := baseSelect
	if len(where) > 0 {
		sqlStr += " WHERE " + strings.Join(where, " AND ")
	}

	if !countOnly {
		sqlStr += " ORDER BY b.title ASC LIMIT ? OFFSET ?"
		limit := q.Limit
		if limit <= 0 || limit > 100 {
			limit = 20
		}
		offset := q.Offset
		if offset < 0 {
			offset = 0
		}
		args = append(args, limit, offset)
	}

	return sqlStr, args
}

// CreateBook inserts a book with its publisher (created on first use)
// and attaches authors in the given order, all in one transaction.
func (r *Repo) CreateBook(ctx context.Context, b models.Book, authorIDs []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create book: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var publisherID any
	if b.Publisher != "" {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO publishers (name) VALUES (?)
			ON CONFLICT(name) DO NOTHING
		`, b.Publisher); err != nil {
			return fmt.Errorf("upsert publisher: %w", err)
		}
		var id int64
		if err := tx.QueryRowContext(ctx,
			`SELECT id FROM publishers WHERE name = ?`, b.Publisher,
		).Scan(&id); err != nil {
			return fmt.Errorf("resolve publisher: %w", err)
		}
		publisherID = id
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO books (isbn, title, publisher_id, blurb)
		VALUES (?, ?, ?, ?)
	`, b.ISBN, b.Title, publisherID, b.Blurb); err != nil {
		return fmt.Errorf("insert book: %w", err)
	}

	for _, authorID := range authorIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO book_authors (isbn, author_id) VALUES (?, ?)
		`, b.ISBN, authorID); err != nil {
			return fmt.Errorf("attach author %s: %w", authorID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create book: %w", err)
	}
	return nil
}
