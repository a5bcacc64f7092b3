package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a guest of the party. Rows are created by the authentication
// module; every other module only reads name/image from here.
type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	Name      string    `gorm:"column:name;type:text;not null" json:"name"`
	Email     string    `gorm:"column:email;type:text;unique;not null" json:"email"`
	Image     string    `gorm:"column:image;type:text" json:"image"`
	Password  string    `gorm:"column:password;type:text;not null" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
