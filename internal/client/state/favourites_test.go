package state

import (
	"context"
	"sync"
	"testing"

	"streamverse/internal/client/api"
	"streamverse/internal/client/session"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedAPI answers favourites calls from injectable functions.
type scriptedAPI struct {
	listFn   func() ([]api.FavouriteItem, error)
	addFn    func(item api.FavouriteItem) ([]api.FavouriteItem, error)
	removeFn func(itemID string) ([]api.FavouriteItem, error)
}

func (s *scriptedAPI) ListFavourites(context.Context, string) ([]api.FavouriteItem, error) {
	return s.listFn()
}

func (s *scriptedAPI) AddFavourite(_ context.Context, _ string, item api.FavouriteItem) ([]api.FavouriteItem, error) {
	return s.addFn(item)
}

func (s *scriptedAPI) RemoveFavourite(_ context.Context, _ string, itemID string) ([]api.FavouriteItem, error) {
	return s.removeFn(itemID)
}

func loggedInStore() *Store {
	store := NewStore()
	store.Dispatch(SetSession{Session: &session.Session{Token: "tok", ID: "user-1"}})

	return store
}

func TestFavouritesStore_RequiresLogin(t *testing.T) {
	store := NewStore()
	favourites := NewFavouritesStore(&scriptedAPI{}, store)

	assert.ErrorIs(t, favourites.Refresh(context.Background()), ErrNotLoggedIn)
	assert.ErrorIs(t, favourites.Add(context.Background(), api.FavouriteItem{ID: "m-1"}), ErrNotLoggedIn)
	assert.ErrorIs(t, favourites.Remove(context.Background(), "m-1"), ErrNotLoggedIn)
}

func TestFavouritesStore_RefreshReplacesWholesale(t *testing.T) {
	store := loggedInStore()
	store.Dispatch(SetFavourites{Items: []api.FavouriteItem{{ID: "stale"}}})

	favourites := NewFavouritesStore(&scriptedAPI{
		listFn: func() ([]api.FavouriteItem, error) {
			return []api.FavouriteItem{{ID: "m-1"}, {ID: "m-2"}}, nil
		},
	}, store)

	require.NoError(t, favourites.Refresh(context.Background()))

	items := store.State().Favourites
	require.Len(t, items, 2)
	assert.Equal(t, "m-1", items[0].ID)
}

func TestFavouritesStore_FailureLeavesLocalCopy(t *testing.T) {
	store := loggedInStore()
	store.Dispatch(SetFavourites{Items: []api.FavouriteItem{{ID: "m-1"}}})

	favourites := NewFavouritesStore(&scriptedAPI{
		listFn: func() ([]api.FavouriteItem, error) {
			return nil, errors.New("connection refused")
		},
		addFn: func(api.FavouriteItem) ([]api.FavouriteItem, error) {
			return nil, &api.APIError{Status: 400, Message: "Invalid favourite payload."}
		},
	}, store)

	assert.Error(t, favourites.Refresh(context.Background()))
	assert.Error(t, favourites.Add(context.Background(), api.FavouriteItem{ID: "m-2"}))

	// The local list is exactly as it was.
	items := store.State().Favourites
	require.Len(t, items, 1)
	assert.Equal(t, "m-1", items[0].ID)
}

func TestFavouritesStore_StaleAnswerIsDiscarded(t *testing.T) {
	store := loggedInStore()
	favourites := NewFavouritesStore(&scriptedAPI{}, store)

	// Two requests start in order; the later one's answer lands first.
	first := favourites.begin()
	second := favourites.begin()

	favourites.apply(second, []api.FavouriteItem{{ID: "m-1"}, {ID: "m-2"}})
	favourites.apply(first, []api.FavouriteItem{{ID: "m-1"}})

	// The older answer must not roll the list back.
	items := store.State().Favourites
	require.Len(t, items, 2)
}

func TestFavouritesStore_OverlappingRequests(t *testing.T) {
	store := loggedInStore()

	release := make(chan struct{})
	var once sync.Once

	scripted := &scriptedAPI{
		addFn: func(item api.FavouriteItem) ([]api.FavouriteItem, error) {
			if item.ID == "slow" {
				// Park the first request until the second finished.
				<-release

				return []api.FavouriteItem{{ID: "slow"}}, nil
			}
			defer once.Do(func() { close(release) })

			return []api.FavouriteItem{{ID: "slow"}, {ID: "fast"}}, nil
		},
	}
	favourites := NewFavouritesStore(scripted, store)

	var wg sync.WaitGroup
	wg.Add(2)
	started := make(chan struct{})

	go func() {
		defer wg.Done()
		close(started)
		_ = favourites.Add(context.Background(), api.FavouriteItem{ID: "slow"})
	}()
	go func() {
		defer wg.Done()
		<-started
		_ = favourites.Add(context.Background(), api.FavouriteItem{ID: "fast"})
	}()
	wg.Wait()

	// Whichever answer carried the higher sequence number wins; the slow
	// request's single-item answer must never overwrite the newer two-item
	// one after it finally lands.
	items := store.State().Favourites
	assert.NotEmpty(t, items)
	if len(items) == 1 {
		assert.Equal(t, "slow", items[0].ID)
	}
}

func TestFavouritesStore_Toggle(t *testing.T) {
	store := loggedInStore()

	var added, removed []string
	scripted := &scriptedAPI{
		addFn: func(item api.FavouriteItem) ([]api.FavouriteItem, error) {
			added = append(added, item.ID)

			return []api.FavouriteItem{{ID: item.ID}}, nil
		},
		removeFn: func(itemID string) ([]api.FavouriteItem, error) {
			removed = append(removed, itemID)

			return nil, nil
		},
	}
	favourites := NewFavouritesStore(scripted, store)

	require.NoError(t, favourites.Toggle(context.Background(), api.FavouriteItem{ID: "m-1"}))
	assert.Equal(t, []string{"m-1"}, added)

	require.NoError(t, favourites.Toggle(context.Background(), api.FavouriteItem{ID: "m-1"}))
	assert.Equal(t, []string{"m-1"}, removed)
	assert.Empty(t, store.State().Favourites)
}
