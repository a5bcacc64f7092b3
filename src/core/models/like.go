package models

import "github.com/google/uuid"

// Like is unique per (photo, user); the composite index is what keeps two
// concurrent toggles from double-inserting.
type Like struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	PhotoID uuid.UUID `gorm:"column:photo_id;type:uuid;not null;uniqueIndex:idx_likes_photo_user" json:"photo_id"`
	UserID  uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_likes_photo_user" json:"user_id"`
}

func (Like) TableName() string {
	return "likes"
}
