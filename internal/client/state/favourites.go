package state

import (
	"context"
	"sync"

	"streamverse/internal/client/api"

	"github.com/pkg/errors"
)

// ErrNotLoggedIn is returned by favourites operations when no session is active.
var ErrNotLoggedIn = errors.New("not logged in")

// favouritesAPI is the slice of the server client the store needs.
type favouritesAPI interface {
	ListFavourites(ctx context.Context, token string) ([]api.FavouriteItem, error)
	AddFavourite(ctx context.Context, token string, item api.FavouriteItem) ([]api.FavouriteItem, error)
	RemoveFavourite(ctx context.Context, token, itemID string) ([]api.FavouriteItem, error)
}

// FavouritesStore keeps the local favourites list in step with the server.
// Every server answer carries the complete list, and the local copy is only
// ever replaced wholesale by such an answer. Each request is numbered when it
// starts; an answer is dropped if a later-numbered one already landed, so two
// overlapping toggles cannot roll the list back in time.
type FavouritesStore struct {
	client favouritesAPI
	store  *Store

	mu         sync.Mutex
	nextSeq    uint64
	appliedSeq uint64
}

// NewFavouritesStore creates a favourites store bound to the shared state.
func NewFavouritesStore(client favouritesAPI, store *Store) *FavouritesStore {
	return &FavouritesStore{client: client, store: store}
}

// begin numbers an outbound request.
func (f *FavouritesStore) begin() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextSeq++

	return f.nextSeq
}

// apply installs a server answer unless a newer one was already applied.
func (f *FavouritesStore) apply(seq uint64, items []api.FavouriteItem) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if seq <= f.appliedSeq {
		return
	}
	f.appliedSeq = seq

	f.store.Dispatch(SetFavourites{Items: items})
}

// token returns the active session token, gating every operation on login.
func (f *FavouritesStore) token() (string, error) {
	snapshot := f.store.State()
	if !snapshot.LoggedIn() {
		return "", ErrNotLoggedIn
	}

	return snapshot.Session.Token, nil
}

// Refresh fetches the list from the server and replaces the local copy. On
// failure the local copy is left untouched.
func (f *FavouritesStore) Refresh(ctx context.Context) error {
	token, err := f.token()
	if err != nil {
		return err
	}

	seq := f.begin()
	items, err := f.client.ListFavourites(ctx, token)
	if err != nil {
		return err
	}

	f.apply(seq, items)

	return nil
}

// Add saves the item on the server and replaces the local list with the
// server's answer. Adding an item that is already saved is a harmless no-op.
func (f *FavouritesStore) Add(ctx context.Context, item api.FavouriteItem) error {
	token, err := f.token()
	if err != nil {
		return err
	}

	seq := f.begin()
	items, err := f.client.AddFavourite(ctx, token, item)
	if err != nil {
		return err
	}

	f.apply(seq, items)

	return nil
}

// Remove drops the item on the server and replaces the local list with the
// server's answer. Removing an absent item is a harmless no-op.
func (f *FavouritesStore) Remove(ctx context.Context, itemID string) error {
	token, err := f.token()
	if err != nil {
		return err
	}

	seq := f.begin()
	items, err := f.client.RemoveFavourite(ctx, token, itemID)
	if err != nil {
		return err
	}

	f.apply(seq, items)

	return nil
}

// Toggle adds the item if it is not in the local list, otherwise removes it.
func (f *FavouritesStore) Toggle(ctx context.Context, item api.FavouriteItem) error {
	if f.contains(item.ID) {
		return f.Remove(ctx, item.ID)
	}

	return f.Add(ctx, item)
}

func (f *FavouritesStore) contains(itemID string) bool {
	for _, existing := range f.store.State().Favourites {
		if existing.ID == itemID {
			return true
		}
	}

	return false
}
