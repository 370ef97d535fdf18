package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"streamverse/internal/domain/entity"
	"streamverse/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users[id]; ok {
		clone := *user

		return &clone, nil
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByIdentifier(_ context.Context, identifier string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == identifier || user.Username == identifier {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmailOrUsername(_ context.Context, email, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email || user.Username == username {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsOtherWithEmail(_ context.Context, email string, excludeID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, user := range r.users {
		if id != excludeID && user.Email == email {
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeUserRepo) ExistsOtherWithUsername(_ context.Context, username string, excludeID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, user := range r.users {
		if id != excludeID && user.Username == username {
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	user.UpdatedAt = time.Now().UTC()

	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)

	return nil
}

// fakeFavouriteRepo is an in-memory FavouriteRepository preserving insertion order.
type fakeFavouriteRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID][]*entity.FavouriteEntry
}

func newFakeFavouriteRepo() *fakeFavouriteRepo {
	return &fakeFavouriteRepo{entries: make(map[uuid.UUID][]*entity.FavouriteEntry)}
}

func (r *fakeFavouriteRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]*entity.FavouriteEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := make([]*entity.FavouriteEntry, 0, len(r.entries[userID]))
	for _, entry := range r.entries[userID] {
		clone := *entry
		list = append(list, &clone)
	}

	return list, nil
}

func (r *fakeFavouriteRepo) Add(_ context.Context, userID uuid.UUID, entry *entity.FavouriteEntry) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.entries[userID] {
		if existing.ItemID == entry.ItemID {
			return false, nil
		}
	}

	clone := *entry
	r.entries[userID] = append(r.entries[userID], &clone)

	return true, nil
}

func (r *fakeFavouriteRepo) Remove(_ context.Context, userID uuid.UUID, itemID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.entries[userID]
	for i, existing := range list {
		if existing.ItemID == itemID {
			r.entries[userID] = append(list[:i], list[i+1:]...)

			return true, nil
		}
	}

	return false, nil
}

// fakeRepoFactory hands out the shared fakes inside a "transaction".
type fakeRepoFactory struct {
	userRepo      *fakeUserRepo
	favouriteRepo *fakeFavouriteRepo
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository {
	return f.userRepo
}

func (f *fakeRepoFactory) FavouriteRepo() repository.FavouriteRepository {
	return f.favouriteRepo
}

// fakeTxManager runs the callback against the shared fakes without any
// transactional semantics.
type fakeTxManager struct {
	factory *fakeRepoFactory
}

func (tm *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(tm.factory)
}

// fakeHasher hashes reversibly so tests can assert the stored value.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokenService issues parseable tokens without any signing.
type fakeTokenService struct{}

func (fakeTokenService) Generate(userID uuid.UUID) (string, error) {
	return "token-for-" + userID.String(), nil
}

func (fakeTokenService) Validate(tokenString string) (uuid.UUID, error) {
	raw, ok := strings.CutPrefix(tokenString, "token-for-")
	if !ok {
		return uuid.Nil, errors.New("malformed token")
	}

	return uuid.Parse(raw)
}

func (fakeTokenService) TokenDuration() time.Duration {
	return 7 * 24 * time.Hour
}

// fakeAvatarStore records uploads and deletes.
type fakeAvatarStore struct {
	mu       sync.Mutex
	uploads  map[uuid.UUID]string
	deletes  []uuid.UUID
	uploadFn func(dataURI string) (string, error)
}

func newFakeAvatarStore() *fakeAvatarStore {
	return &fakeAvatarStore{uploads: make(map[uuid.UUID]string)}
}

func (s *fakeAvatarStore) Upload(_ context.Context, userID uuid.UUID, dataURI string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.uploadFn != nil {
		return s.uploadFn(dataURI)
	}

	s.uploads[userID] = dataURI

	return "https://cdn.example.com/avatars/" + userID.String(), nil
}

func (s *fakeAvatarStore) Delete(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deletes = append(s.deletes, userID)

	return nil
}
