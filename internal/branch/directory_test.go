package branch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryhub/pkg/models"
)

func TestCities_FirstSeenOrderNoDuplicates(t *testing.T) {
	branches := []models.Branch{
		{ID: "b1", City: "Athens", Address: "1 Main St"},
		{ID: "b2", City: "Patras", Address: "2 Harbor Rd"},
		{ID: "b3", City: "Athens", Address: "3 Side St"},
	}

	cities := Cities(branches)

	assert.Equal(t, []string{"Athens", "Patras"}, cities)
}

func TestFilterByCity_CaseSensitiveNoLossNoDuplication(t *testing.T) {
	branches := []models.Branch{
		{ID: "b1", City: "Athens", Address: "1 Main St"},
		{ID: "b2", City: "athens", Address: "2 Lowercase Ln"},
		{ID: "b3", City: "Athens", Address: "3 Side St"},
		{ID: "b4", City: "Patras", Address: "4 Harbor Rd"},
	}

	filtered := FilterByCity(branches, "Athens")

	require.Len(t, filtered, 2)
	assert.Equal(t, "b1", filtered[0].ID)
	assert.Equal(t, "b3", filtered[1].ID)

	// every branch is either in the filtered set or has a different city
	for _, b := range branches {
		in := false
		for _, f := range filtered {
			if f.ID == b.ID {
				in = true
			}
		}
		assert.Equal(t, b.City == "Athens", in)
	}
}
