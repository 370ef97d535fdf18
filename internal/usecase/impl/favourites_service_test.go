package impl

import (
	"context"
	"testing"

	domainerrors "streamverse/internal/domain/errors"
	"streamverse/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFavouritesFixture() usecase.FavouritesUsecase {
	return &favouritesService{
		favouriteRepo: newFakeFavouriteRepo(),
		logger:        testLogger(),
	}
}

func movieInput(id, title string) usecase.AddFavouriteInput {
	return usecase.AddFavouriteInput{
		ItemID:      id,
		Type:        "movie",
		Title:       title,
		Description: "A heist thriller",
		Image:       "https://img.example.com/" + id + ".jpg",
		Status:      "released",
	}
}

func TestFavouritesService_AddAndList(t *testing.T) {
	svc := newFavouritesFixture()
	userID := uuid.New()

	output, err := svc.Add(context.Background(), userID, movieInput("m-1", "Heat"))
	require.NoError(t, err)
	assert.True(t, output.Created)
	require.Len(t, output.Items, 1)
	assert.Equal(t, "m-1", output.Items[0].ItemID)
	assert.False(t, output.Items[0].AddedAt.IsZero())

	output, err = svc.Add(context.Background(), userID, movieInput("m-2", "Ronin"))
	require.NoError(t, err)
	assert.True(t, output.Created)
	require.Len(t, output.Items, 2)

	// Insertion order is preserved.
	items, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "m-1", items[0].ItemID)
	assert.Equal(t, "m-2", items[1].ItemID)
}

func TestFavouritesService_AddIsIdempotent(t *testing.T) {
	svc := newFavouritesFixture()
	userID := uuid.New()

	first, err := svc.Add(context.Background(), userID, movieInput("m-1", "Heat"))
	require.NoError(t, err)
	assert.True(t, first.Created)

	// Re-adding the same item is a no-op, not an error.
	second, err := svc.Add(context.Background(), userID, movieInput("m-1", "Heat"))
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Len(t, second.Items, 1)
}

func TestFavouritesService_AddValidation(t *testing.T) {
	svc := newFavouritesFixture()
	userID := uuid.New()

	// Every field is required; blanking any one of them rejects the whole item.
	mutations := map[string]func(*usecase.AddFavouriteInput){
		"missing item id":     func(in *usecase.AddFavouriteInput) { in.ItemID = "" },
		"missing type":        func(in *usecase.AddFavouriteInput) { in.Type = "" },
		"unknown type":        func(in *usecase.AddFavouriteInput) { in.Type = "sitcom" },
		"missing title":       func(in *usecase.AddFavouriteInput) { in.Title = "" },
		"missing description": func(in *usecase.AddFavouriteInput) { in.Description = "" },
		"missing image":       func(in *usecase.AddFavouriteInput) { in.Image = "" },
		"missing status":      func(in *usecase.AddFavouriteInput) { in.Status = "   " },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			input := movieInput("m-1", "Heat")
			mutate(&input)

			_, err := svc.Add(context.Background(), userID, input)
			assert.ErrorIs(t, err, domainerrors.ErrInvalidFavourite)
		})
	}

	// Nothing invalid was persisted.
	items, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Type matching is case-insensitive.
	input := movieInput("p-1", "Serial")
	input.Type = "Podcast"
	output, err := svc.Add(context.Background(), userID, input)
	require.NoError(t, err)
	assert.Equal(t, "podcast", output.Items[0].Type.String())
}

func TestFavouritesService_Remove(t *testing.T) {
	svc := newFavouritesFixture()
	userID := uuid.New()

	_, err := svc.Add(context.Background(), userID, movieInput("m-1", "Heat"))
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), userID, movieInput("m-2", "Ronin"))
	require.NoError(t, err)

	items, err := svc.Remove(context.Background(), userID, "m-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "m-2", items[0].ItemID)

	// Removing an absent item is a no-op.
	items, err = svc.Remove(context.Background(), userID, "m-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = svc.Remove(context.Background(), userID, "  ")
	assert.ErrorIs(t, err, domainerrors.ErrMissingFavouriteID)
}

func TestFavouritesService_ListsAreIsolatedPerUser(t *testing.T) {
	svc := newFavouritesFixture()
	alice := uuid.New()
	bob := uuid.New()

	_, err := svc.Add(context.Background(), alice, movieInput("m-1", "Heat"))
	require.NoError(t, err)

	items, err := svc.List(context.Background(), bob)
	require.NoError(t, err)
	assert.Empty(t, items)
}
