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

const bearerPrefix = "Bearer "

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	userRepo     repository.UserRepository
	tokenService service.TokenService
	logger       *slog.Logger
}

// SessionServiceParams holds dependencies for sessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		userRepo:     params.UserRepo,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Authenticate resolves a bearer token into a live account. A valid signature
// is not enough: the subject is looked up on every call, so tokens minted for
// since-deleted accounts are rejected just like forged ones.
func (srv *sessionService) Authenticate(ctx context.Context, authorizationHeader string) (*entity.User, error) {
	if authorizationHeader == "" {
		return nil, domainerrors.ErrTokenMissing
	}
	if !strings.HasPrefix(authorizationHeader, bearerPrefix) {
		return nil, domainerrors.ErrTokenMissing
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(authorizationHeader, bearerPrefix))
	if tokenString == "" {
		return nil, domainerrors.ErrTokenMissing
	}

	userID, err := srv.tokenService.Validate(tokenString)
	if err != nil {
		srv.log(ctx).Debug("Token validation failed", slog.String("error", err.Error()))

		return nil, domainerrors.ErrTokenInvalid
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}

		return nil, errors.Wrap(err, "failed to load token subject")
	}

	return user, nil
}
