package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "streamverse/internal/delivery/context"
	"streamverse/internal/domain/entity"
	domainerrors "streamverse/internal/domain/errors"
	"streamverse/internal/domain/repository"
	"streamverse/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// favouritesService implements the FavouritesUsecase interface.
type favouritesService struct {
	favouriteRepo repository.FavouriteRepository
	logger        *slog.Logger
}

// FavouritesServiceParams holds dependencies for favouritesService, injected by Fx.
type FavouritesServiceParams struct {
	fx.In

	FavouriteRepo repository.FavouriteRepository
	Logger        *slog.Logger
}

// NewFavouritesService is the constructor for favouritesService.
func NewFavouritesService(params FavouritesServiceParams) usecase.FavouritesUsecase {
	return &favouritesService{
		favouriteRepo: params.FavouriteRepo,
		logger:        params.Logger,
	}
}

func (srv *favouritesService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns the user's favourites in the order they were added.
func (srv *favouritesService) List(ctx context.Context, userID uuid.UUID) ([]*entity.FavouriteEntry, error) {
	return srv.favouriteRepo.ListByUserID(ctx, userID)
}

// Add saves the item unless it is already in the user's list. Adding a
// duplicate is a no-op, not an error, and both paths return the complete
// resulting list.
func (srv *favouritesService) Add(ctx context.Context, userID uuid.UUID, input usecase.AddFavouriteInput) (*usecase.AddFavouriteOutput, error) {
	entry, err := buildFavouriteEntry(input)
	if err != nil {
		return nil, err
	}

	created, err := srv.favouriteRepo.Add(ctx, userID, entry)
	if err != nil {
		return nil, errors.Wrap(err, "failed to add favourite")
	}

	items, err := srv.favouriteRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list favourites after add")
	}

	if created {
		srv.log(ctx).Info("Favourite added",
			slog.String("user_id", userID.String()),
			slog.String("item_id", entry.ItemID))
	}

	return &usecase.AddFavouriteOutput{Items: items, Created: created}, nil
}

// Remove drops the item from the user's list if present. Removing an absent
// item is a no-op, and the complete resulting list is returned either way.
func (srv *favouritesService) Remove(ctx context.Context, userID uuid.UUID, itemID string) ([]*entity.FavouriteEntry, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return nil, domainerrors.ErrMissingFavouriteID
	}

	removed, err := srv.favouriteRepo.Remove(ctx, userID, itemID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to remove favourite")
	}

	if removed {
		srv.log(ctx).Info("Favourite removed",
			slog.String("user_id", userID.String()),
			slog.String("item_id", itemID))
	}

	items, err := srv.favouriteRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list favourites after remove")
	}

	return items, nil
}

// buildFavouriteEntry validates the raw input and normalises it into a
// domain entry. Every field is mandatory, including the display fields, and
// the type must be one of the recognised catalogue kinds.
func buildFavouriteEntry(input usecase.AddFavouriteInput) (*entity.FavouriteEntry, error) {
	itemID := strings.TrimSpace(input.ItemID)
	if itemID == "" {
		return nil, domainerrors.ErrInvalidFavourite
	}

	catType := entity.CatalogueType(strings.ToLower(strings.TrimSpace(input.Type)))
	if !catType.IsValid() {
		return nil, domainerrors.ErrInvalidFavourite
	}

	for _, field := range []string{input.Title, input.Description, input.Image, input.Status} {
		if strings.TrimSpace(field) == "" {
			return nil, domainerrors.ErrInvalidFavourite
		}
	}

	return &entity.FavouriteEntry{
		ItemID:      itemID,
		Type:        catType,
		Title:       input.Title,
		Description: input.Description,
		Image:       input.Image,
		Status:      input.Status,
		AddedAt:     time.Now().UTC(),
	}, nil
}
