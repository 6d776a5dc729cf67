package loan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_MissingPatronIsValidationFailure(t *testing.T) {
	// validation fails before the repo is ever touched
	svc := NewService(nil, nil)

	result, err := svc.Request(context.Background(), Request{
		ISBN:          "0001",
		PatronID:      "",
		PreferredCity: NoPreference,
	})

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.NotEmpty(t, result.Message)
	assert.Empty(t, result.LoanID)
}

func TestRequest_MissingISBNIsValidationFailure(t *testing.T) {
	svc := NewService(nil, nil)

	result, err := svc.Request(context.Background(), Request{
		ISBN:     "   ",
		PatronID: "patron-a",
	})

	require.NoError(t, err)
	assert.False(t, result.OK)
}

func TestRequest_ConflictIsUserFacingNotError(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)
	// no copies at all

	svc := NewService(NewRepo(db), nil)

	result, err := svc.Request(context.Background(), Request{
		ISBN:          "0001",
		PatronID:      "patron-a",
		PreferredCity: NoPreference,
	})

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Contains(t, result.Message, "No copy")
}
