package model

import (
	"time"

	"github.com/google/uuid"
)

// FavouriteModel mirrors the 'favourites' table. The surrogate key is
// monotonic, which gives the insertion ordering the list endpoint promises;
// the composite unique index on (user_id, item_id) is what makes add
// idempotent at the storage layer.
type FavouriteModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favourites_user_item"`
	ItemID      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_favourites_user_item"`
	Type        string    `gorm:"type:varchar(20);not null"`
	Title       string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text;not null"`
	Image       string    `gorm:"type:text;not null"`
	Status      string    `gorm:"type:varchar(100);not null"`
	AddedAt     time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (FavouriteModel) TableName() string {
	return "favourites"
}
