package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryhub/pkg/models"
)

func TestAggregate_GroupsRowsByISBN(t *testing.T) {
	rows := []BookAuthorRow{
		{ISBN: "0001", Title: "Dune", Publisher: "Ace", Blurb: "...", AuthorID: "a1", AuthorFirst: "Frank", AuthorLast: "Herbert"},
		{ISBN: "0002", Title: "Good Omens", Publisher: "Gollancz", Blurb: "...", AuthorID: "a2", AuthorFirst: "Terry", AuthorLast: "Pratchett"},
		{ISBN: "0002", Title: "Good Omens", Publisher: "Gollancz", Blurb: "...", AuthorID: "a3", AuthorFirst: "Neil", AuthorLast: "Gaiman"},
	}

	views := Aggregate(rows)

	require.Len(t, views, 2)
	assert.Len(t, views["0001"].Authors, 1)
	assert.Len(t, views["0002"].Authors, 2)
}

func TestAggregate_AuthorsKeepFirstSeenOrder(t *testing.T) {
	rows := []BookAuthorRow{
		{ISBN: "0002", Title: "Good Omens", AuthorID: "a2", AuthorFirst: "Terry", AuthorLast: "Pratchett"},
		{ISBN: "0002", Title: "Good Omens", AuthorID: "a3", AuthorFirst: "Neil", AuthorLast: "Gaiman"},
		// duplicate pair must not produce a second entry
		{ISBN: "0002", Title: "Good Omens", AuthorID: "a2", AuthorFirst: "Terry", AuthorLast: "Pratchett"},
	}

	views := Aggregate(rows)

	require.Contains(t, views, "0002")
	require.Len(t, views["0002"].Authors, 2)
	assert.Equal(t, "Pratchett", views["0002"].Authors[0].Last)
	assert.Equal(t, "Gaiman", views["0002"].Authors[1].Last)
}

func TestAggregate_BookWithoutAuthorsGetsEmptyList(t *testing.T) {
	rows := []BookAuthorRow{
		{ISBN: "0003", Title: "Anonymous Work", Publisher: "Unknown"},
	}

	views := Aggregate(rows)

	require.Contains(t, views, "0003")
	assert.NotNil(t, views["0003"].Authors)
	assert.Empty(t, views["0003"].Authors)
}

func TestLookup_MissingISBNIsNotFound(t *testing.T) {
	views := map[string]models.BookView{
		"0003": {ISBN: "0003", Title: "Anonymous Work", Authors: []models.AuthorRef{}},
	}

	_, ok := Lookup(views, "9999")
	assert.False(t, ok, "absent ISBN must be reported as not found")

	view, ok := Lookup(views, "0003")
	assert.True(t, ok, "present ISBN with zero authors is still found")
	assert.Empty(t, view.Authors)
}

func TestAggregate_SingleRowExample(t *testing.T) {
	rows := []BookAuthorRow{
		{ISBN: "0001", Title: "Dune", Publisher: "Ace", Blurb: "...", AuthorID: "1", AuthorFirst: "Frank", AuthorLast: "Herbert"},
	}

	views := Aggregate(rows)

	require.Len(t, views, 1)
	view := views["0001"]
	assert.Equal(t, "Dune", view.Title)
	assert.Equal(t, "Ace", view.Publisher)
	require.Len(t, view.Authors, 1)
	assert.Equal(t, models.AuthorRef{First: "Frank", Last: "Herbert"}, view.Authors[0])
}

func TestAvailableText(t *testing.T) {
	assert.Equal(t, "None", availableText(0))
	assert.Equal(t, "3", availableText(3))
}
