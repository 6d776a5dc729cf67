package database

import (
	"database/sql"
	"fmt"
	"os"
)

// SchemaPath returns the schema file to apply. Overridable so tests
// running from package directories can point back at the repo copy.
func SchemaPath() string {
	if p := os.Getenv("LIBRARYHUB_SCHEMA"); p != "" {
		return p
	}
	return "docs/schema.sql"
}

func Migrate(db *sql.DB) error {
	path := SchemaPath()
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if _, err := db.Exec(string(b)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
