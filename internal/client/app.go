// Package client wires the API client, the local cache and the state store
// into one application facade the CLI drives.
package client

import (
	"context"
	"database/sql"
	"net/http"

	"streamverse/internal/client/api"
	"streamverse/internal/client/session"
	"streamverse/internal/client/state"

	"github.com/pkg/errors"
)

// App is the client application. All methods are safe for concurrent use.
type App struct {
	api        *api.Client
	db         *sql.DB
	cache      *session.Cache
	store      *state.Store
	favourites *state.FavouritesStore
}

// New opens the local database and assembles the application.
func New(ctx context.Context, serverURL, dbPath string) (*App, error) {
	db, err := session.OpenDatabase(ctx, dbPath)
	if err != nil {
		return nil, err
	}

	apiClient := api.New(serverURL)
	store := state.NewStore()

	return &App{
		api:        apiClient,
		db:         db,
		cache:      session.NewCache(session.NewKVStore(db)),
		store:      store,
		favourites: state.NewFavouritesStore(apiClient, store),
	}, nil
}

// Close releases the local database.
func (a *App) Close() error {
	return a.db.Close()
}

// State returns the current application snapshot.
func (a *App) State() state.State {
	return a.store.State()
}

// Favourites exposes the reconciling favourites store.
func (a *App) Favourites() *state.FavouritesStore {
	return a.favourites
}

// Bootstrap restores persisted state on startup. Without a cached session the
// client stays fully offline: no network call is made. With one, the
// favourites are fetched; a 401 means the session died server-side (expired
// token or deleted account) and the stale session is discarded, while a
// transport failure keeps the session so the user stays logged in offline.
func (a *App) Bootstrap(ctx context.Context) error {
	theme, err := a.cache.Theme(ctx)
	if err != nil {
		return err
	}
	a.store.Dispatch(state.SetTheme{Theme: theme})

	sess, err := a.cache.Load(ctx)
	if err != nil {
		return err
	}
	if sess == nil {
		return nil
	}

	a.store.Dispatch(state.SetSession{Session: sess})

	if err := a.favourites.Refresh(ctx); err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return a.Logout(ctx)
		}

		var transportErr *api.TransportError
		if errors.As(err, &transportErr) {
			return nil
		}

		return err
	}

	return nil
}

// Register creates an account and logs straight into it.
func (a *App) Register(ctx context.Context, req api.RegisterRequest) error {
	resp, err := a.api.Register(ctx, req)
	if err != nil {
		return err
	}

	return a.installSession(ctx, resp)
}

// Login starts a session and loads the account's favourites.
func (a *App) Login(ctx context.Context, identifier, password string) error {
	resp, err := a.api.Login(ctx, identifier, password)
	if err != nil {
		return err
	}

	return a.installSession(ctx, resp)
}

func (a *App) installSession(ctx context.Context, resp *api.AuthResponse) error {
	sess := &session.Session{
		Token:     resp.Token,
		ID:        resp.User.ID,
		Email:     resp.User.Email,
		Username:  resp.User.Username,
		FirstName: resp.User.FirstName,
		LastName:  resp.User.LastName,
		AvatarURL: resp.User.AvatarURL,
	}

	if err := a.cache.Save(ctx, sess); err != nil {
		return err
	}
	a.store.Dispatch(state.SetSession{Session: sess})

	return a.favourites.Refresh(ctx)
}

// Logout drops the session locally. Tokens are stateless so there is nothing
// to revoke server-side.
func (a *App) Logout(ctx context.Context) error {
	if err := a.cache.Clear(ctx); err != nil {
		return err
	}
	a.store.Dispatch(state.ClearSession{})

	return nil
}

// UpdateProfile submits profile changes and refreshes the cached session.
func (a *App) UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) error {
	snapshot := a.store.State()
	if !snapshot.LoggedIn() {
		return state.ErrNotLoggedIn
	}

	user, err := a.api.UpdateProfile(ctx, snapshot.Session.Token, req)
	if err != nil {
		return err
	}

	sess := *snapshot.Session
	sess.Email = user.Email
	sess.Username = user.Username
	sess.FirstName = user.FirstName
	sess.LastName = user.LastName
	sess.AvatarURL = user.AvatarURL

	if err := a.cache.Save(ctx, &sess); err != nil {
		return err
	}
	a.store.Dispatch(state.SetSession{Session: &sess})

	return nil
}

// DeleteAccount destroys the account server-side and logs out locally.
func (a *App) DeleteAccount(ctx context.Context) error {
	snapshot := a.store.State()
	if !snapshot.LoggedIn() {
		return state.ErrNotLoggedIn
	}

	if err := a.api.DeleteAccount(ctx, snapshot.Session.Token); err != nil {
		return err
	}

	return a.Logout(ctx)
}

// SetTheme persists the preference and applies it to the state.
func (a *App) SetTheme(ctx context.Context, theme string) error {
	if err := a.cache.SetTheme(ctx, theme); err != nil {
		return err
	}
	a.store.Dispatch(state.SetTheme{Theme: theme})

	return nil
}

// Ping reports whether the server answers its health endpoint.
func (a *App) Ping(ctx context.Context) error {
	return a.api.Ping(ctx)
}
