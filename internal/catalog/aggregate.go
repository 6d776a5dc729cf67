package catalog

import "libraryhub/pkg/models"

// BookAuthorRow is one row of the book/publisher/author join: one row
// per (book, author) pair, or a single row with empty author columns
// when a book has no recorded authors.
type BookAuthorRow struct {
	ISBN        string
	Title       string
	Publisher   string
	Blurb       string
	AuthorID    string // empty when the author columns were NULL
	AuthorFirst string
	AuthorLast  string
}

// Aggregate folds flat join rows into one BookView per ISBN. Authors
// keep the order they first appear in the rows; a book whose rows all
// carry empty author columns gets an empty author list, never a
// placeholder entry.
func Aggregate(rows []BookAuthorRow) map[string]models.BookView {
	views := make(map[string]models.BookView, len(rows))
	seen := make(map[string]map[string]bool, len(rows))

	for _, row := range rows {
		view, ok := views[row.ISBN]
		if !ok {
			view = models.BookView{
				ISBN:      row.ISBN,
				Title:     row.Title,
				Publisher: row.Publisher,
				Blurb:     row.Blurb,
				Authors:   []models.AuthorRef{},
			}
			seen[row.ISBN] = make(map[string]bool)
		}

		if row.AuthorID != "" && !seen[row.ISBN][row.AuthorID] {
			seen[row.ISBN][row.AuthorID] = true
			view.Authors = append(view.Authors, models.AuthorRef{
				First: row.AuthorFirst,
				Last:  row.AuthorLast,
			})
		}

		views[row.ISBN] = view
	}

	return views
}

// Lookup distinguishes "ISBN absent from the result" from "ISBN
// present with no authors"; callers must treat !ok as not found and
// skip the detail render.
func Lookup(views map[string]models.BookView, isbn string) (models.BookView, bool) {
	view, ok := views[isbn]
	return view, ok
}
