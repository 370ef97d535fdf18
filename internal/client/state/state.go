// Package state holds the client's in-memory application state. State changes
// flow through a reducer so every transition is explicit and testable.
package state

import (
	"sync"

	"streamverse/internal/client/api"
	"streamverse/internal/client/session"
)

// State is an immutable snapshot of the client.
type State struct {
	Session    *session.Session
	Favourites []api.FavouriteItem
	Theme      string
}

// LoggedIn reports whether the snapshot holds an active session.
func (s State) LoggedIn() bool {
	return s.Session != nil && s.Session.Token != ""
}

// Action mutates state inside the reducer.
type Action interface {
	isAction()
}

// SetSession installs a session after login, register or cache restore.
type SetSession struct{ Session *session.Session }

// ClearSession drops the session and everything gated on it.
type ClearSession struct{}

// SetFavourites replaces the favourites list wholesale with a server answer.
type SetFavourites struct{ Items []api.FavouriteItem }

// SetTheme records the theme preference.
type SetTheme struct{ Theme string }

func (SetSession) isAction()    {}
func (ClearSession) isAction()  {}
func (SetFavourites) isAction() {}
func (SetTheme) isAction()      {}

// Reduce applies one action to a snapshot and returns the next snapshot.
// It never mutates its input.
func Reduce(current State, action Action) State {
	next := current

	switch a := action.(type) {
	case SetSession:
		next.Session = a.Session
	case ClearSession:
		// Favourites belong to the session, so they go with it.
		next.Session = nil
		next.Favourites = nil
	case SetFavourites:
		items := make([]api.FavouriteItem, len(a.Items))
		copy(items, a.Items)
		next.Favourites = items
	case SetTheme:
		next.Theme = a.Theme
	}

	return next
}

// Store serialises state transitions for concurrent use.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore creates a store with the zero state.
func NewStore() *Store {
	return &Store{state: State{Theme: session.ThemeLight}}
}

// Dispatch applies the action and returns the resulting snapshot.
func (s *Store) Dispatch(action Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, action)

	return s.state
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}
