package models

import (
	"time"

	"github.com/google/uuid"
)

type Photo struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	URL       string    `gorm:"column:url;type:text;not null" json:"url"`
	Caption   string    `gorm:"column:caption;type:text" json:"caption,omitempty"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Photo) TableName() string {
	return "photos"
}
