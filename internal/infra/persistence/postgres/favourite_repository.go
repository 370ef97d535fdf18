package postgres

import (
	"context"

	"streamverse/internal/domain/entity"
	"streamverse/internal/domain/repository"
	"streamverse/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// favouriteRepository implements the repository.FavouriteRepository interface using GORM.
type favouriteRepository struct {
	db *gorm.DB
}

// NewFavouriteRepository is the constructor for favouriteRepository.
func NewFavouriteRepository(db *gorm.DB) repository.FavouriteRepository {
	return &favouriteRepository{db: db}
}

// ListByUserID returns the user's favourites in insertion order. The
// auto-increment primary key preserves the order entries were added.
func (repo *favouriteRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.FavouriteEntry, error) {
	var favM []model.FavouriteModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&favM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list favourites")
	}

	entries := make([]*entity.FavouriteEntry, 0, len(favM))
	for i := range favM {
		entries = append(entries, toFavouriteDomain(&favM[i]))
	}

	return entries, nil
}

// Add inserts the entry unless the user already has a favourite with the same
// item id. The ON CONFLICT DO NOTHING clause makes the push-if-absent check
// atomic, so concurrent adds of the same item cannot produce duplicates.
// The returned bool reports whether a row was actually inserted.
func (repo *favouriteRepository) Add(ctx context.Context, userID uuid.UUID, entry *entity.FavouriteEntry) (bool, error) {
	favM := fromFavouriteDomain(userID, entry)

	result := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "item_id"}},
			DoNothing: true,
		}).
		Create(favM)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to add favourite")
	}

	return result.RowsAffected > 0, nil
}

// Remove deletes the user's favourite with the given item id. The returned
// bool reports whether a row existed to remove.
func (repo *favouriteRepository) Remove(ctx context.Context, userID uuid.UUID, itemID string) (bool, error) {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Delete(&model.FavouriteModel{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to remove favourite")
	}

	return result.RowsAffected > 0, nil
}

func toFavouriteDomain(data *model.FavouriteModel) *entity.FavouriteEntry {
	return &entity.FavouriteEntry{
		ItemID:      data.ItemID,
		Type:        entity.CatalogueType(data.Type),
		Title:       data.Title,
		Description: data.Description,
		Image:       data.Image,
		Status:      data.Status,
		AddedAt:     data.AddedAt,
	}
}

func fromFavouriteDomain(userID uuid.UUID, data *entity.FavouriteEntry) *model.FavouriteModel {
	return &model.FavouriteModel{
		UserID:      userID,
		ItemID:      data.ItemID,
		Type:        data.Type.String(),
		Title:       data.Title,
		Description: data.Description,
		Image:       data.Image,
		Status:      data.Status,
		AddedAt:     data.AddedAt,
	}
}
