package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a wall ("mural") entry, optionally carrying a sticker.
type Message struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	Content   string    `gorm:"column:content;type:text" json:"content"`
	StickerID string    `gorm:"column:sticker_id;type:text" json:"sticker_id,omitempty"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}
