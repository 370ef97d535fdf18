package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	deliverycontext "streamverse/internal/delivery/context"
	"streamverse/internal/delivery/http/validator"
	"streamverse/internal/domain/entity"
	domainerrors "streamverse/internal/domain/errors"
	"streamverse/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testUser() *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		Username:     "alice",
		PasswordHash: "$2a$10$secret",
		FirstName:    "Alice",
		LastName:     "Miller",
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
}

// newContext builds an echo context carrying a JSON body, with the request
// validator installed the way the server installs it.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

// --- auth handler ---

type fakeAuthUC struct {
	registerFn func(usecase.RegisterInput) (*usecase.AuthOutput, error)
	loginFn    func(usecase.LoginInput) (*usecase.AuthOutput, error)
}

func (f *fakeAuthUC) Register(_ context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	return f.registerFn(input)
}

func (f *fakeAuthUC) Login(_ context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	return f.loginFn(input)
}

func TestAuthHandler_Register(t *testing.T) {
	user := testUser()
	handler := NewAuthHandler(&fakeAuthUC{
		registerFn: func(input usecase.RegisterInput) (*usecase.AuthOutput, error) {
			assert.Equal(t, "alice@example.com", input.Email)

			return &usecase.AuthOutput{Token: "tok", User: user}, nil
		},
	}, testLogger())

	body := `{"email":"alice@example.com","username":"alice","password":"pw","firstName":"Alice","lastName":"Miller"}`
	c, rec := newContext(http.MethodPost, "/api/auth/register", body)

	require.NoError(t, handler.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.JSONEq(t, `"tok"`, string(resp["token"]))

	// The password hash must never appear on the wire.
	assert.NotContains(t, rec.Body.String(), "secret")
	assert.NotContains(t, rec.Body.String(), "passwordHash")
}

func TestAuthHandler_RegisterErrorPassesThrough(t *testing.T) {
	handler := NewAuthHandler(&fakeAuthUC{
		registerFn: func(usecase.RegisterInput) (*usecase.AuthOutput, error) {
			return nil, domainerrors.ErrUserConflict
		},
	}, testLogger())

	body := `{"email":"alice@example.com","username":"alice","password":"pw","firstName":"Alice","lastName":"Miller"}`
	c, _ := newContext(http.MethodPost, "/api/auth/register", body)

	err := handler.Register(c)
	assert.ErrorIs(t, err, domainerrors.ErrUserConflict)
}

func TestAuthHandler_RegisterRejectsIncompleteBody(t *testing.T) {
	handler := NewAuthHandler(&fakeAuthUC{
		registerFn: func(usecase.RegisterInput) (*usecase.AuthOutput, error) {
			t.Fatal("usecase must not be reached")

			return nil, nil
		},
	}, testLogger())

	c, _ := newContext(http.MethodPost, "/api/auth/register", `{"email":"alice@example.com"}`)

	err := handler.Register(c)
	assert.ErrorIs(t, err, domainerrors.ErrMissingFields)
}

func TestAuthHandler_LoginRejectsIncompleteBody(t *testing.T) {
	handler := NewAuthHandler(&fakeAuthUC{
		loginFn: func(usecase.LoginInput) (*usecase.AuthOutput, error) {
			t.Fatal("usecase must not be reached")

			return nil, nil
		},
	}, testLogger())

	tests := []struct {
		name string
		body string
	}{
		{"no password", `{"identifier":"alice"}`},
		{"no identifier in any spelling", `{"password":"pw"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/api/auth/login", tt.body)

			err := handler.Login(c)
			assert.ErrorIs(t, err, domainerrors.ErrMissingCredentials)
		})
	}
}

func TestAuthHandler_LoginIdentifierFallback(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"identifier", `{"identifier":"alice","password":"pw"}`, "alice"},
		{"username fallback", `{"username":"alice_un","password":"pw"}`, "alice_un"},
		{"email fallback", `{"email":"alice@example.com","password":"pw"}`, "alice@example.com"},
		{"identifier wins", `{"identifier":"id","username":"un","email":"em","password":"pw"}`, "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := testUser()
			handler := NewAuthHandler(&fakeAuthUC{
				loginFn: func(input usecase.LoginInput) (*usecase.AuthOutput, error) {
					assert.Equal(t, tt.want, input.Identifier)
					assert.Equal(t, "pw", input.Password)

					return &usecase.AuthOutput{Token: "tok", User: user}, nil
				},
			}, testLogger())

			c, rec := newContext(http.MethodPost, "/api/auth/login", tt.body)
			require.NoError(t, handler.Login(c))
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

// --- profile handler ---

type fakeProfileUC struct {
	updateFn func(*entity.User, usecase.UpdateProfileInput) (*entity.User, error)
	deleteFn func(*entity.User) error
}

func (f *fakeProfileUC) Update(_ context.Context, user *entity.User, input usecase.UpdateProfileInput) (*entity.User, error) {
	return f.updateFn(user, input)
}

func (f *fakeProfileUC) DeleteAccount(_ context.Context, user *entity.User) error {
	return f.deleteFn(user)
}

func TestProfileHandler_Me(t *testing.T) {
	user := testUser()
	handler := NewProfileHandler(&fakeProfileUC{}, testLogger())

	c, rec := newContext(http.MethodGet, "/api/profile/me", "")
	deliverycontext.SetUser(c, user)

	require.NoError(t, handler.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
	assert.NotContains(t, rec.Body.String(), "passwordHash")
}

func TestProfileHandler_MeWithoutUser(t *testing.T) {
	handler := NewProfileHandler(&fakeProfileUC{}, testLogger())

	c, _ := newContext(http.MethodGet, "/api/profile/me", "")

	err := handler.Me(c)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestProfileHandler_Update(t *testing.T) {
	user := testUser()
	handler := NewProfileHandler(&fakeProfileUC{
		updateFn: func(got *entity.User, input usecase.UpdateProfileInput) (*entity.User, error) {
			assert.Equal(t, user.ID, got.ID)
			assert.Equal(t, "newalice", input.Username)

			updated := *got
			updated.Username = input.Username

			return &updated, nil
		},
	}, testLogger())

	c, rec := newContext(http.MethodPut, "/api/profile", `{"username":"newalice"}`)
	deliverycontext.SetUser(c, user)

	require.NoError(t, handler.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"newalice"`)
}

func TestProfileHandler_Delete(t *testing.T) {
	user := testUser()
	deleted := false
	handler := NewProfileHandler(&fakeProfileUC{
		deleteFn: func(got *entity.User) error {
			deleted = true
			assert.Equal(t, user.ID, got.ID)

			return nil
		},
	}, testLogger())

	c, rec := newContext(http.MethodDelete, "/api/profile", "")
	deliverycontext.SetUser(c, user)

	require.NoError(t, handler.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, deleted)
	assert.Empty(t, rec.Body.String())
}

// --- favourites handler ---

type fakeFavouritesUC struct {
	listFn   func(uuid.UUID) ([]*entity.FavouriteEntry, error)
	addFn    func(uuid.UUID, usecase.AddFavouriteInput) (*usecase.AddFavouriteOutput, error)
	removeFn func(uuid.UUID, string) ([]*entity.FavouriteEntry, error)
}

func (f *fakeFavouritesUC) List(_ context.Context, userID uuid.UUID) ([]*entity.FavouriteEntry, error) {
	return f.listFn(userID)
}

func (f *fakeFavouritesUC) Add(_ context.Context, userID uuid.UUID, input usecase.AddFavouriteInput) (*usecase.AddFavouriteOutput, error) {
	return f.addFn(userID, input)
}

func (f *fakeFavouritesUC) Remove(_ context.Context, userID uuid.UUID, itemID string) ([]*entity.FavouriteEntry, error) {
	return f.removeFn(userID, itemID)
}

func sampleEntries() []*entity.FavouriteEntry {
	return []*entity.FavouriteEntry{
		{ItemID: "m-1", Type: entity.CatalogueTypeMovie, Title: "Heat", AddedAt: time.Now().UTC()},
	}
}

func TestFavouritesHandler_List(t *testing.T) {
	user := testUser()
	handler := NewFavouritesHandler(&fakeFavouritesUC{
		listFn: func(userID uuid.UUID) ([]*entity.FavouriteEntry, error) {
			assert.Equal(t, user.ID, userID)

			return sampleEntries(), nil
		},
	}, testLogger())

	c, rec := newContext(http.MethodGet, "/api/favourites", "")
	deliverycontext.SetUser(c, user)

	require.NoError(t, handler.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	// The catalogue item id is exposed as "id" on the wire.
	assert.Contains(t, rec.Body.String(), `"id":"m-1"`)
	assert.NotContains(t, rec.Body.String(), "itemId")
}

func TestFavouritesHandler_ListEmpty(t *testing.T) {
	user := testUser()
	handler := NewFavouritesHandler(&fakeFavouritesUC{
		listFn: func(uuid.UUID) ([]*entity.FavouriteEntry, error) {
			return nil, nil
		},
	}, testLogger())

	c, rec := newContext(http.MethodGet, "/api/favourites", "")
	deliverycontext.SetUser(c, user)

	require.NoError(t, handler.List(c))
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
}

func TestFavouritesHandler_AddStatusReflectsCreation(t *testing.T) {
	tests := []struct {
		name       string
		created    bool
		wantStatus int
	}{
		{"new entry", true, http.StatusCreated},
		{"already saved", false, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := testUser()
			handler := NewFavouritesHandler(&fakeFavouritesUC{
				addFn: func(_ uuid.UUID, input usecase.AddFavouriteInput) (*usecase.AddFavouriteOutput, error) {
					assert.Equal(t, "m-1", input.ItemID)

					return &usecase.AddFavouriteOutput{Items: sampleEntries(), Created: tt.created}, nil
				},
			}, testLogger())

			// The catalogue item id arrives under "id", matching the list shape.
			body := `{"id":"m-1","type":"movie","title":"Heat","description":"A heist thriller","image":"https://img.example.com/m-1.jpg","status":"released"}`
			c, rec := newContext(http.MethodPost, "/api/favourites", body)
			deliverycontext.SetUser(c, user)

			require.NoError(t, handler.Add(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"items"`)
		})
	}
}

func TestFavouritesHandler_AddRejectsIncompleteBody(t *testing.T) {
	user := testUser()
	handler := NewFavouritesHandler(&fakeFavouritesUC{
		addFn: func(uuid.UUID, usecase.AddFavouriteInput) (*usecase.AddFavouriteOutput, error) {
			t.Fatal("usecase must not be reached")

			return nil, nil
		},
	}, testLogger())

	tests := []struct {
		name string
		body string
	}{
		{"no id", `{"type":"movie","title":"Heat","description":"d","image":"i","status":"s"}`},
		{"id under the wrong key", `{"itemId":"m-1","type":"movie","title":"Heat","description":"d","image":"i","status":"s"}`},
		{"no description", `{"id":"m-1","type":"movie","title":"Heat","image":"i","status":"s"}`},
		{"no image", `{"id":"m-1","type":"movie","title":"Heat","description":"d","status":"s"}`},
		{"no status", `{"id":"m-1","type":"movie","title":"Heat","description":"d","image":"i"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/api/favourites", tt.body)
			deliverycontext.SetUser(c, user)

			err := handler.Add(c)
			assert.ErrorIs(t, err, domainerrors.ErrInvalidFavourite)
		})
	}
}

func TestFavouritesHandler_Remove(t *testing.T) {
	user := testUser()
	handler := NewFavouritesHandler(&fakeFavouritesUC{
		removeFn: func(_ uuid.UUID, itemID string) ([]*entity.FavouriteEntry, error) {
			assert.Equal(t, "m-1", itemID)

			return nil, nil
		},
	}, testLogger())

	c, rec := newContext(http.MethodDelete, "/api/favourites/m-1", "")
	c.SetParamNames("itemId")
	c.SetParamValues("m-1")
	deliverycontext.SetUser(c, user)

	require.NoError(t, handler.Remove(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
}

func TestHealthCheck(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/health", "")

	require.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
