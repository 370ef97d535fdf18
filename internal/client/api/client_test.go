package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice", body["identifier"])
		assert.Equal(t, "pw", body["password"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"jwt","user":{"id":"user-1","email":"alice@example.com","username":"alice"}}`))
	}))
	defer server.Close()

	client := New(server.URL)

	resp, err := client.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "jwt", resp.Token)
	assert.Equal(t, "user-1", resp.User.ID)
	assert.Equal(t, "alice", resp.User.Username)
}

func TestClient_ErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials."}`))
	}))
	defer server.Close()

	client := New(server.URL)

	_, err := client.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials.", apiErr.Message)
}

func TestClient_ErrorWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := New(server.URL)

	err := client.Ping(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
}

func TestClient_TransportError(t *testing.T) {
	// A server that is already gone.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := New(server.URL)

	err := client.Ping(context.Background())
	require.Error(t, err)

	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestClient_AuthorizationHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer jwt", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	client := New(server.URL)

	items, err := client.ListFavourites(context.Background(), "jwt")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClient_AddAndRemoveFavourite(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/favourites":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			// The item id travels as "id" in both directions.
			assert.Equal(t, "m-1", body["id"])
			assert.NotContains(t, body, "itemId")

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"items":[{"id":"m-1","type":"movie","title":"Heat"}]}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/api/favourites/m-1":
			_, _ = w.Write([]byte(`{"items":[]}`))
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	client := New(server.URL)

	items, err := client.AddFavourite(context.Background(), "jwt", FavouriteItem{ID: "m-1", Type: "movie", Title: "Heat"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "m-1", items[0].ID)

	items, err = client.RemoveFavourite(context.Background(), "jwt", "m-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}
