package models

import (
	"time"

	"github.com/google/uuid"
)

const NotificationTypeLike = "like"

type Notification struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	Type      string     `gorm:"column:type;type:varchar(20);not null" json:"type"`
	Message   string     `gorm:"column:message;type:text;not null" json:"message"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"` // Recipient of the notification
	ActorID   uuid.UUID  `gorm:"column:actor_id;type:uuid;not null" json:"actor_id"`     // Who triggered it
	PhotoID   *uuid.UUID `gorm:"column:photo_id;type:uuid" json:"photo_id,omitempty"`
	Read      bool       `gorm:"column:read;default:false" json:"read"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
