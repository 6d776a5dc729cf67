package models

// Book is the catalog row as stored: one book per ISBN, publisher
// resolved by join.
type Book struct {
	ISBN      string `json:"isbn"`
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	Blurb     string `json:"blurb"`
}

// AuthorRef is the slice of an author a book view needs.
type AuthorRef struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

// BookView is the read model for one ISBN: book columns plus its
// authors in the order they were attached to the book.
type BookView struct {
	ISBN      string      `json:"isbn"`
	Title     string      `json:"title"`
	Publisher string      `json:"publisher"`
	Blurb     string      `json:"blurb"`
	Authors   []AuthorRef `json:"authors"`
}
