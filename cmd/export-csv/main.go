package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"libraryhub/pkg/database"
)

// Exports the loan ledger for reporting.
func main() {
	var (
		loansOut = flag.String("loans", "data/loans.csv", "output CSV path for loans")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := exportLoans(ctx, db, *loansOut); err != nil {
		log.Fatalf("export loans failed: %v", err)
	}

	log.Printf("exported loans to %s", *loansOut)
}

func exportLoans(ctx context.Context, db *sql.DB, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "isbn", "title", "patron", "branch_city", "branch_address", "requested_at"}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT l.id, l.isbn, b.title, u.username, br.city, br.address, l.requested_at
		FROM loans l
		JOIN books b ON b.isbn = l.isbn
		JOIN users u ON u.id = l.patron_id
		JOIN copies c ON c.id = l.copy_id
		JOIN branches br ON br.id = c.branch_id
		ORDER BY l.requested_at DESC
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, isbn, title, patron, city, address string
			requestedAt                            time.Time
		)
		if err := rows.Scan(&id, &isbn, &title, &patron, &city, &address, &requestedAt); err != nil {
			return err
		}
		if err := w.Write([]string{
			id, isbn, title, patron, city, address,
			requestedAt.UTC().Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}
