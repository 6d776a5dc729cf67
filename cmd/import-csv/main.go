package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"libraryhub/pkg/database"
)

func main() {
	var (
		branchesIn = flag.String("branches", "data/branches.csv", "input CSV path for branches")
		authorsIn  = flag.String("authors", "data/authors.csv", "input CSV path for authors")
		booksIn    = flag.String("books", "data/books.csv", "input CSV path for books")
		linksIn    = flag.String("book-authors", "data/book_authors.csv", "input CSV path for book/author links")
		copiesIn   = flag.String("copies", "data/copies.csv", "input CSV path for copies")
		usersIn    = flag.String("users", "", "optional CSV path for users (username,password,role)")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := importBranches(ctx, db, *branchesIn); err != nil {
		log.Fatalf("import branches failed: %v", err)
	}
	if err := importAuthors(ctx, db, *authorsIn); err != nil {
		log.Fatalf("import authors failed: %v", err)
	}
	if err := importBooks(ctx, db, *booksIn); err != nil {
		log.Fatalf("import books failed: %v", err)
	}
	if err := importBookAuthors(ctx, db, *linksIn); err != nil {
		log.Fatalf("import book/author links failed: %v", err)
	}
	if err := importCopies(ctx, db, *copiesIn); err != nil {
		log.Fatalf("import copies failed: %v", err)
	}
	if *usersIn != "" {
		if err := importUsers(ctx, db, *usersIn); err != nil {
			log.Fatalf("import users failed: %v", err)
		}
	}

	log.Println("import complete")
}

type headerIndex map[string]int

func readHeader(r *csv.Reader) (headerIndex, error) {
	row, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(headerIndex, len(row))
	for i, name := range row {
		idx[name] = i
	}
	return idx, nil
}

func (h headerIndex) get(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func forEachRow(path string, fn func(h headerIndex, row []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return err
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}
		if err := fn(header, row); err != nil {
			return err
		}
	}
}

func importBranches(ctx context.Context, db *sql.DB, path string) error {
	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO branches (id, city, address)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  city = excluded.city,
		  address = excluded.address
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	return forEachRow(path, func(h headerIndex, row []string) error {
		id := h.get(row, "id")
		if id == "" {
			id = uuid.NewString()
		}
		_, err := stmt.ExecContext(ctx, id, h.get(row, "city"), h.get(row, "address"))
		return err
	})
}

func importAuthors(ctx context.Context, db *sql.DB, path string) error {
	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO authors (id, first_name, last_name, alive, birthdate, death_date, bio)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  first_name = excluded.first_name,
		  last_name = excluded.last_name,
		  alive = excluded.alive,
		  birthdate = excluded.birthdate,
		  death_date = excluded.death_date,
		  bio = excluded.bio
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	return forEachRow(path, func(h headerIndex, row []string) error {
		deathDate := h.get(row, "death_date")
		// a recorded death date always implies not alive
		alive := h.get(row, "alive") != "0" && deathDate == ""

		var birth, death any
		if v := h.get(row, "birthdate"); v != "" {
			birth = v
		}
		if deathDate != "" {
			death = deathDate
		}

		_, err := stmt.ExecContext(ctx,
			h.get(row, "id"), h.get(row, "first_name"), h.get(row, "last_name"),
			alive, birth, death, h.get(row, "bio"))
		return err
	})
}

func importBooks(ctx context.Context, db *sql.DB, path string) error {
	pubStmt, err := db.PrepareContext(ctx, `
		INSERT INTO publishers (name) VALUES (?)
		ON CONFLICT(name) DO NOTHING
	`)
	if err != nil {
		return err
	}
	defer pubStmt.Close()

	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO books (isbn, title, publisher_id, blurb)
		VALUES (?, ?, (SELECT id FROM publishers WHERE name = ?), ?)
		ON CONFLICT(isbn) DO UPDATE SET
		  title = excluded.title,
		  publisher_id = excluded.publisher_id,
		  blurb = excluded.blurb
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	return forEachRow(path, func(h headerIndex, row []string) error {
		publisher := h.get(row, "publisher")
		if publisher != "" {
			if _, err := pubStmt.ExecContext(ctx, publisher); err != nil {
				return err
			}
		}
		_, err := stmt.ExecContext(ctx,
			h.get(row, "isbn"), h.get(row, "title"), publisher, h.get(row, "blurb"))
		return err
	})
}

func importBookAuthors(ctx context.Context, db *sql.DB, path string) error {
	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO book_authors (isbn, author_id)
		VALUES (?, ?)
		ON CONFLICT(isbn, author_id) DO NOTHING
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	return forEachRow(path, func(h headerIndex, row []string) error {
		_, err := stmt.ExecContext(ctx, h.get(row, "isbn"), h.get(row, "author_id"))
		return err
	})
}

func importCopies(ctx context.Context, db *sql.DB, path string) error {
	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO copies (id, isbn, branch_id, status)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  isbn = excluded.isbn,
		  branch_id = excluded.branch_id,
		  status = excluded.status
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	return forEachRow(path, func(h headerIndex, row []string) error {
		id := h.get(row, "id")
		if id == "" {
			id = uuid.NewString()
		}
		status := h.get(row, "status")
		if status == "" {
			status = "available"
		}
		_, err := stmt.ExecContext(ctx, id, h.get(row, "isbn"), h.get(row, "branch_id"), status)
		return err
	})
}

// importUsers provisions accounts, librarians included; passwords come
// in plain in the CSV and are hashed here.
func importUsers(ctx context.Context, db *sql.DB, path string) error {
	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO users (id, username, password_hash, role)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET
		  password_hash = excluded.password_hash,
		  role = excluded.role
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	return forEachRow(path, func(h headerIndex, row []string) error {
		role := h.get(row, "role")
		if role != "librarian" {
			role = "patron"
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(h.get(row, "password")), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		_, err = stmt.ExecContext(ctx, uuid.NewString(), h.get(row, "username"), string(hash), role)
		return err
	})
}
