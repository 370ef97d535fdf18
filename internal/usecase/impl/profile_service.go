package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "streamverse/internal/delivery/context"
	"streamverse/internal/domain/entity"
	domainerrors "streamverse/internal/domain/errors"
	"streamverse/internal/domain/repository"
	"streamverse/internal/domain/service"
	"streamverse/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager   repository.TransactionManager
	userRepo    repository.UserRepository
	avatarStore service.AvatarStore
	logger      *slog.Logger
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	UserRepo    repository.UserRepository
	AvatarStore service.AvatarStore
	Logger      *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager:   params.TxManager,
		userRepo:    params.UserRepo,
		avatarStore: params.AvatarStore,
		logger:      params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Update applies the non-empty input fields to the user's profile. Email and
// username changes are checked for uniqueness against every other account
// before the write; a new avatar image is uploaded first so the stored URL
// only ever points at an object that exists.
func (srv *profileService) Update(ctx context.Context, user *entity.User, input usecase.UpdateProfileInput) (*entity.User, error) {
	updated := *user

	if email := strings.ToLower(strings.TrimSpace(input.Email)); email != "" && email != user.Email {
		taken, err := srv.userRepo.ExistsOtherWithEmail(ctx, email, user.ID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to check email uniqueness")
		}
		if taken {
			return nil, domainerrors.ErrEmailTaken
		}

		updated.Email = email
	}

	if username := strings.ToLower(strings.TrimSpace(input.Username)); username != "" && username != user.Username {
		taken, err := srv.userRepo.ExistsOtherWithUsername(ctx, username, user.ID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to check username uniqueness")
		}
		if taken {
			return nil, domainerrors.ErrUsernameTaken
		}

		updated.Username = username
	}

	if firstName := strings.TrimSpace(input.FirstName); firstName != "" {
		updated.FirstName = firstName
	}
	if lastName := strings.TrimSpace(input.LastName); lastName != "" {
		updated.LastName = lastName
	}

	if input.AvatarBase64 != "" {
		url, err := srv.avatarStore.Upload(ctx, user.ID, input.AvatarBase64)
		if err != nil {
			return nil, err
		}

		updated.AvatarURL = url
	}

	if err := srv.userRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Profile updated", slog.String("user_id", user.ID.String()))

	return &updated, nil
}

// DeleteAccount removes the account row, which cascades to the favourites,
// then best-effort deletes the stored avatar. A failed avatar delete only
// leaves an orphaned object behind, so it is logged rather than surfaced.
func (srv *profileService) DeleteAccount(ctx context.Context, user *entity.User) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.UserRepo().Delete(ctx, user.ID)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete account")
	}

	if err := srv.avatarStore.Delete(ctx, user.ID); err != nil {
		srv.log(ctx).Warn("Failed to delete avatar after account removal",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()))
	}

	srv.log(ctx).Info("Account deleted", slog.String("user_id", user.ID.String()))

	return nil
}
