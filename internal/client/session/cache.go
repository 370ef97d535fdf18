package session

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

const (
	// sessionKey carries the legacy storage name so existing installs keep
	// their session across upgrades.
	sessionKey = "streambox_user"
	themeKey   = "streamverse_theme_preference"
)

// Theme modes accepted by the preference store.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Session is the locally cached login. It is the flat token-plus-profile
// object the server returns, persisted verbatim.
type Session struct {
	Token     string `json:"token"`
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Cache reads and writes the persisted session and preferences.
type Cache struct {
	store *KVStore
}

// NewCache wraps a key-value store.
func NewCache(store *KVStore) *Cache {
	return &Cache{store: store}
}

// Load returns the cached session, or nil when there is none. A record that
// cannot be parsed or is missing the token or user id is treated as garbage:
// it is deleted and the client starts logged out rather than failing.
func (c *Cache) Load(ctx context.Context) (*Session, error) {
	raw, err := c.store.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil || sess.Token == "" || sess.ID == "" {
		if delErr := c.store.Delete(ctx, sessionKey); delErr != nil {
			return nil, delErr
		}

		return nil, nil
	}

	return &sess, nil
}

// Save persists the session.
func (c *Cache) Save(ctx context.Context, sess *Session) error {
	if sess == nil || sess.Token == "" || sess.ID == "" {
		return errors.New("refusing to save incomplete session")
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "failed to encode session")
	}

	return c.store.Set(ctx, sessionKey, raw)
}

// Clear removes the persisted session.
func (c *Cache) Clear(ctx context.Context) error {
	return c.store.Delete(ctx, sessionKey)
}

// Theme returns the stored theme preference. An absent value falls back to
// light; an unrecognized one is purged from the store and also falls back.
func (c *Cache) Theme(ctx context.Context) (string, error) {
	raw, err := c.store.Get(ctx, themeKey)
	if err != nil {
		return "", err
	}

	theme := string(raw)
	if theme != ThemeLight && theme != ThemeDark {
		if len(raw) > 0 {
			if err := c.store.Delete(ctx, themeKey); err != nil {
				return "", err
			}
		}

		return ThemeLight, nil
	}

	return theme, nil
}

// SetTheme stores the theme preference. Only light and dark are accepted.
func (c *Cache) SetTheme(ctx context.Context, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return errors.Errorf("unknown theme %q", theme)
	}

	return c.store.Set(ctx, themeKey, []byte(theme))
}
