package models

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	Content   string    `gorm:"column:content;type:text;not null" json:"content"`
	PhotoID   uuid.UUID `gorm:"column:photo_id;type:uuid;not null;index" json:"photo_id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}
